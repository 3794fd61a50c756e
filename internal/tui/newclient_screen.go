package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elevatemedia/invoicer/internal/app"
	"github.com/elevatemedia/invoicer/internal/service"
)

// intake form field indices
const (
	intakeFieldName = iota
	intakeFieldBillingContact
	intakeFieldBillingEmail
	intakeFieldBillingPhone
	intakeFieldAddressLine1
	intakeFieldAddressLine2
	intakeFieldCity
	intakeFieldState
	intakeFieldZip
	intakeFieldSendToName
	intakeFieldSendToEmail
	intakeFieldDefaultRate
	intakeFieldPaymentTerms
	intakeFieldNotes
	intakeFieldCount
)

var intakeLabels = []string{
	"Client name:",
	"Billing contact:",
	"Billing email:",
	"Billing phone:",
	"Address line 1:",
	"Address line 2:",
	"City:",
	"State:",
	"Zip:",
	"Send-to name:",
	"Send-to email:",
	"Default rate ($/hr):",
	"Payment terms:",
	"Notes:",
}

var intakePlaceholders = []string{
	"Acme Media", "Jane Doe", "ap@acme.com", "808-555-0100",
	"123 Main St", "Suite 4", "Honolulu", "HI", "96813",
	"Jane Doe", "invoices@acme.com", "150.00", "Net 30", "",
}

type clientSavedMsg struct {
	name string
	err  error
}

type intakeRedirectMsg struct{}

// NewClientModel is the client intake form
type NewClientModel struct {
	app *app.App

	fields     []textinput.Model
	fieldFocus int

	saving   bool
	saved    bool
	savedMsg string
	err      error
}

// NewNewClientModel creates the intake form
func NewNewClientModel(a *app.App) tea.Model {
	m := &NewClientModel{app: a}
	m.initForm()
	return m
}

// IsCapturingInput returns true whenever the form is on screen
func (m *NewClientModel) IsCapturingInput() bool {
	return true
}

func (m *NewClientModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *NewClientModel) initForm() {
	m.fields = make([]textinput.Model, intakeFieldCount)
	for i := range m.fields {
		m.fields[i] = textinput.New()
		m.fields[i].Placeholder = intakePlaceholders[i]
		m.fields[i].CharLimit = 200
		m.fields[i].Width = 40
	}
	m.fields[intakeFieldDefaultRate].CharLimit = 10
	m.fields[intakeFieldDefaultRate].Width = 12

	m.fieldFocus = intakeFieldName
	m.fields[intakeFieldName].Focus()
}

func (m *NewClientModel) saveClient() tea.Cmd {
	rateStr := m.fields[intakeFieldDefaultRate].Value()
	rate := 0.0
	if rateStr != "" {
		parsed, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			m.err = fmt.Errorf("invalid rate: %s", rateStr)
			return nil
		}
		rate = parsed
	}

	form := service.NewClientForm{
		Name:                m.fields[intakeFieldName].Value(),
		BillingContactName:  m.fields[intakeFieldBillingContact].Value(),
		BillingEmail:        m.fields[intakeFieldBillingEmail].Value(),
		BillingPhone:        m.fields[intakeFieldBillingPhone].Value(),
		BillingAddressLine1: m.fields[intakeFieldAddressLine1].Value(),
		BillingAddressLine2: m.fields[intakeFieldAddressLine2].Value(),
		BillingCity:         m.fields[intakeFieldCity].Value(),
		BillingState:        m.fields[intakeFieldState].Value(),
		BillingZip:          m.fields[intakeFieldZip].Value(),
		SendToName:          m.fields[intakeFieldSendToName].Value(),
		SendToEmail:         m.fields[intakeFieldSendToEmail].Value(),
		DefaultRate:         rate,
		PaymentTerms:        m.fields[intakeFieldPaymentTerms].Value(),
		Notes:               m.fields[intakeFieldNotes].Value(),
	}

	m.saving = true
	m.err = nil
	return func() tea.Msg {
		client, err := m.app.Clients.CreateClient(context.Background(), form)
		if err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: client.Name}
	}
}

func (m *NewClientModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		m.saving = false
		if msg.err != nil {
			// The store's own message shows as-is; "duplicate name" and
			// friends come straight from the server
			m.err = msg.err
			return m, nil
		}
		m.saved = true
		m.savedMsg = fmt.Sprintf("Saved: %s", msg.name)
		return m, tea.Tick(
			time.Duration(m.app.Config.Forms.RedirectDelaySeconds)*time.Second,
			func(time.Time) tea.Msg { return intakeRedirectMsg{} },
		)

	case intakeRedirectMsg:
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }

	case tea.KeyMsg:
		if m.saving || m.saved {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % intakeFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + intakeFieldCount) % intakeFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == intakeFieldCount-1 {
				return m, m.saveClient()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveClient()
		}
	}

	if m.saving || m.saved {
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *NewClientModel) View() string {
	var s string
	s += titleStyle.Render("New Client") + "\n\n"

	if m.saved {
		s += successBannerStyle.Render("  "+m.savedMsg) + "\n"
		s += subtitleStyle.Render("  Returning to dashboard...") + "\n"
		return s
	}

	for i, label := range intakeLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s %s\n", indicator, labelStyle.Render(fmt.Sprintf("%-22s", label)), m.fields[i].View())
	}
	s += "\n"

	if m.saving {
		s += warningStyle().Render("  Saving...") + "\n\n"
	}

	if m.err != nil {
		s += errorBannerStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  esc: cancel")

	return s
}
