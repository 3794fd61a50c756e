package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elevatemedia/invoicer/internal/app"
	"github.com/elevatemedia/invoicer/internal/domain"
	"github.com/elevatemedia/invoicer/internal/service"
)

type retainerState int

const (
	retainerStateLoading retainerState = iota
	retainerStateReady
	retainerStateSubmitting
)

// retainer focus order: month is a cycle selector, not a text input
const (
	retainerFieldSendTo = iota
	retainerFieldMonth
	retainerFieldYear
	retainerFieldDate
	retainerFieldDescription
	retainerFieldCount
)

type retainerLoadedMsg struct {
	client *domain.Client
}

type retainerSubmittedMsg struct {
	err error
}

type retainerBannerExpiredMsg struct{}

// RetainerModel is the flat-retainer invoice form. Unlike the hourly form
// it works without a client record: the configured recipient list covers
// the missing email.
type RetainerModel struct {
	app    *app.App
	client *domain.Client

	state retainerState

	sendTo      textinput.Model
	year        textinput.Model
	invoiceDate textinput.Model
	description textarea.Model

	monthIndex int
	fieldFocus int

	bannerMsg string
	err       error
}

// NewRetainerModel creates the retainer form for a client (which may be nil)
func NewRetainerModel(a *app.App, client *domain.Client) tea.Model {
	return &RetainerModel{
		app:    a,
		client: client,
		state:  retainerStateLoading,
	}
}

// IsCapturingInput returns true whenever the form is on screen
func (m *RetainerModel) IsCapturingInput() bool {
	return true
}

func (m *RetainerModel) Init() tea.Cmd {
	return m.loadClient()
}

// loadClient refreshes the client record when one was given. A failed fetch
// is not fatal here; the form falls back to the configured recipients.
func (m *RetainerModel) loadClient() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil || m.client.ID == "" {
			return retainerLoadedMsg{client: m.client}
		}
		client, err := m.app.Clients.GetClient(context.Background(), m.client.ID)
		if err != nil {
			return retainerLoadedMsg{client: m.client}
		}
		return retainerLoadedMsg{client: client}
	}
}

func (m *RetainerModel) initForm(defaults service.RetainerForm) {
	m.sendTo = textinput.New()
	m.sendTo.Placeholder = "invoices@example.com"
	m.sendTo.CharLimit = 300
	m.sendTo.Width = 60
	m.sendTo.SetValue(defaults.SendTo)

	m.year = textinput.New()
	m.year.Placeholder = "2025"
	m.year.CharLimit = 4
	m.year.Width = 8
	m.year.SetValue(strconv.Itoa(defaults.RetainerYear))

	m.invoiceDate = textinput.New()
	m.invoiceDate.Placeholder = "2025-01-31"
	m.invoiceDate.CharLimit = 10
	m.invoiceDate.Width = 14
	m.invoiceDate.SetValue(defaults.InvoiceDate)

	m.description = textarea.New()
	m.description.CharLimit = 1000
	m.description.SetWidth(64)
	m.description.SetHeight(7)
	m.description.SetValue(defaults.Description)

	if idx, err := domain.MonthIndex(defaults.RetainerMonth); err == nil {
		m.monthIndex = idx
	}

	m.fieldFocus = retainerFieldSendTo
	m.sendTo.Focus()
}

// currentYear parses the year field, falling back to the current year
func (m *RetainerModel) currentYear() int {
	year, err := strconv.Atoi(m.year.Value())
	if err != nil || year == 0 {
		return time.Now().Year()
	}
	return year
}

// refreshDescription replaces the description with the template for the
// currently selected period
func (m *RetainerModel) refreshDescription() {
	m.description.SetValue(domain.RetainerDescription(domain.Months[m.monthIndex], m.currentYear()))
}

func (m *RetainerModel) focusInput(index int) tea.Cmd {
	m.sendTo.Blur()
	m.year.Blur()
	m.invoiceDate.Blur()
	m.description.Blur()

	m.fieldFocus = index
	switch index {
	case retainerFieldSendTo:
		return m.sendTo.Focus()
	case retainerFieldYear:
		return m.year.Focus()
	case retainerFieldDate:
		return m.invoiceDate.Focus()
	case retainerFieldDescription:
		return m.description.Focus()
	}
	return nil // month selector has no text input
}

func (m *RetainerModel) submit() tea.Cmd {
	form := service.RetainerForm{
		Client:        m.client,
		SendTo:        m.sendTo.Value(),
		RetainerMonth: domain.Months[m.monthIndex],
		RetainerYear:  m.currentYear(),
		InvoiceDate:   m.invoiceDate.Value(),
		Description:   m.description.Value(),
	}
	// Catch validation failures here so the form never flashes into Submitting
	if _, err := m.app.Invoices.BuildRetainer(form); err != nil {
		m.err = err
		return nil
	}

	m.state = retainerStateSubmitting
	m.err = nil
	return func() tea.Msg {
		_, err := m.app.Invoices.SubmitRetainer(context.Background(), form)
		return retainerSubmittedMsg{err: err}
	}
}

func (m *RetainerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case retainerLoadedMsg:
		m.client = msg.client
		m.state = retainerStateReady
		m.initForm(m.app.Invoices.RetainerDefaults(m.client, time.Now()))
		return m, textinput.Blink

	case retainerSubmittedMsg:
		m.state = retainerStateReady
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// The form keeps its values; the same period is often re-sent after edits
		m.bannerMsg = "Invoice submitted"
		return m, tea.Tick(
			time.Duration(m.app.Config.Forms.SuccessBannerSeconds)*time.Second,
			func(time.Time) tea.Msg { return retainerBannerExpiredMsg{} },
		)

	case retainerBannerExpiredMsg:
		m.bannerMsg = ""
		return m, nil

	case tea.KeyMsg:
		if m.state != retainerStateReady {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }

		case "tab":
			return m, m.focusInput((m.fieldFocus + 1) % retainerFieldCount)

		case "shift+tab":
			return m, m.focusInput((m.fieldFocus - 1 + retainerFieldCount) % retainerFieldCount)

		case "left":
			if m.fieldFocus == retainerFieldMonth {
				m.monthIndex = (m.monthIndex - 1 + len(domain.Months)) % len(domain.Months)
				m.refreshDescription()
				return m, nil
			}

		case "right":
			if m.fieldFocus == retainerFieldMonth {
				m.monthIndex = (m.monthIndex + 1) % len(domain.Months)
				m.refreshDescription()
				return m, nil
			}

		case "enter":
			if m.fieldFocus == retainerFieldMonth {
				return m, m.focusInput(retainerFieldYear)
			}
			if m.fieldFocus == retainerFieldDescription {
				break // newline inside the textarea
			}

		case "ctrl+s":
			return m, m.submit()
		}
	}

	if m.state != retainerStateReady {
		return m, nil
	}

	// Update the focused input; a year edit re-renders the description
	var cmd tea.Cmd
	switch m.fieldFocus {
	case retainerFieldSendTo:
		m.sendTo, cmd = m.sendTo.Update(msg)
	case retainerFieldYear:
		before := m.year.Value()
		m.year, cmd = m.year.Update(msg)
		if m.year.Value() != before {
			m.refreshDescription()
		}
	case retainerFieldDate:
		m.invoiceDate, cmd = m.invoiceDate.Update(msg)
	case retainerFieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m *RetainerModel) View() string {
	if m.state == retainerStateLoading {
		return "Loading..."
	}

	var s string
	name := "Retainer Invoice"
	if m.client != nil {
		name = fmt.Sprintf("Retainer Invoice - %s", m.client.Name)
	}
	s += titleStyle.Render(name) + "\n\n"

	if m.bannerMsg != "" {
		s += successBannerStyle.Render("  "+m.bannerMsg) + "\n\n"
	}

	s += m.renderField(retainerFieldSendTo, "Send to:", m.sendTo.View())
	s += m.renderField(retainerFieldMonth, "Retainer month:", m.renderMonthSelector())
	s += m.renderField(retainerFieldYear, "Retainer year:", m.year.View())
	s += m.renderField(retainerFieldDate, "Invoice date:", m.invoiceDate.View())

	billingMonth, billingYear, err := domain.BillingPeriod(domain.Months[m.monthIndex], m.currentYear())
	if err == nil {
		s += subtitleStyle.Render(fmt.Sprintf("  Billing period: %s %d", billingMonth, billingYear)) + "\n\n"
	}

	s += m.renderField(retainerFieldDescription, "Description:", m.description.View())

	if m.state == retainerStateSubmitting {
		s += warningStyle().Render("  Submitting...") + "\n\n"
	}

	if m.err != nil {
		s += errorBannerStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab: next field  ←/→: change month  ctrl+s: submit  esc: back")

	return s
}

func (m *RetainerModel) renderMonthSelector() string {
	month := fmt.Sprintf("< %s >", domain.Months[m.monthIndex])
	if m.fieldFocus == retainerFieldMonth {
		return titleStyle.Render(month)
	}
	return month
}

func (m *RetainerModel) renderField(index int, label, input string) string {
	indicator := "  "
	labelStyle := subtitleStyle
	if index == m.fieldFocus {
		indicator = "> "
		labelStyle = titleStyle
	}
	return fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), input)
}
