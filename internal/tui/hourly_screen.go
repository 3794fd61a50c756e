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
	"github.com/elevatemedia/invoicer/internal/domain"
	"github.com/elevatemedia/invoicer/internal/service"
)

type hourlyState int

const (
	hourlyStateLoading hourlyState = iota
	hourlyStateReady
	hourlyStateSubmitting
)

// fixed field indices; expense rows follow at hourlyFieldCount + 2*row
const (
	hourlyFieldSendTo = iota
	hourlyFieldWeek1
	hourlyFieldWeek2
	hourlyFieldDescription
	hourlyFieldCount
)

type expenseRow struct {
	description textinput.Model
	amount      textinput.Model
}

type hourlyLoadedMsg struct {
	client *domain.Client
	err    error
}

type hourlySubmittedMsg struct {
	err error
}

type hourlyBannerExpiredMsg struct{}

// HourlyModel is the hourly invoice form. It re-fetches the client record
// when it opens; a fetch failure blocks the form entirely.
type HourlyModel struct {
	app    *app.App
	client *domain.Client

	state   hourlyState
	loadErr error

	fields     []textinput.Model
	expenses   []expenseRow
	fieldFocus int

	bannerMsg string
	err       error
}

// NewHourlyModel creates the hourly form for a client
func NewHourlyModel(a *app.App, client *domain.Client) tea.Model {
	return &HourlyModel{
		app:    a,
		client: client,
		state:  hourlyStateLoading,
	}
}

// IsCapturingInput returns true whenever the form is on screen
func (m *HourlyModel) IsCapturingInput() bool {
	return m.state != hourlyStateLoading || m.loadErr == nil
}

func (m *HourlyModel) Init() tea.Cmd {
	return m.loadClient()
}

// loadClient re-reads the client from the store so the form opens against
// the current record, not the dashboard's snapshot
func (m *HourlyModel) loadClient() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return hourlyLoadedMsg{err: service.ErrClientRequired}
		}
		if m.client.ID == "" {
			return hourlyLoadedMsg{client: m.client}
		}
		client, err := m.app.Clients.GetClient(context.Background(), m.client.ID)
		if err != nil {
			return hourlyLoadedMsg{err: err}
		}
		return hourlyLoadedMsg{client: client}
	}
}

func (m *HourlyModel) initForm(defaults service.HourlyForm) {
	m.fields = make([]textinput.Model, hourlyFieldCount)

	m.fields[hourlyFieldSendTo] = textinput.New()
	m.fields[hourlyFieldSendTo].Placeholder = "invoices@example.com"
	m.fields[hourlyFieldSendTo].CharLimit = 200
	m.fields[hourlyFieldSendTo].Width = 50
	m.fields[hourlyFieldSendTo].SetValue(defaults.SendTo)

	m.fields[hourlyFieldWeek1] = textinput.New()
	m.fields[hourlyFieldWeek1].Placeholder = "40"
	m.fields[hourlyFieldWeek1].CharLimit = 6
	m.fields[hourlyFieldWeek1].Width = 10
	m.fields[hourlyFieldWeek1].SetValue(formatHoursInput(defaults.Week1Hours))

	m.fields[hourlyFieldWeek2] = textinput.New()
	m.fields[hourlyFieldWeek2].Placeholder = "40"
	m.fields[hourlyFieldWeek2].CharLimit = 6
	m.fields[hourlyFieldWeek2].Width = 10
	m.fields[hourlyFieldWeek2].SetValue(formatHoursInput(defaults.Week2Hours))

	m.fields[hourlyFieldDescription] = textinput.New()
	m.fields[hourlyFieldDescription].Placeholder = "Project description"
	m.fields[hourlyFieldDescription].CharLimit = 500
	m.fields[hourlyFieldDescription].Width = 60
	m.fields[hourlyFieldDescription].SetValue(defaults.ProjectDescription)

	m.expenses = nil
	for range defaults.Expenses {
		m.expenses = append(m.expenses, newExpenseRow())
	}
	if len(m.expenses) == 0 {
		m.expenses = append(m.expenses, newExpenseRow())
	}

	m.fieldFocus = hourlyFieldSendTo
	m.fields[hourlyFieldSendTo].Focus()
}

func newExpenseRow() expenseRow {
	desc := textinput.New()
	desc.Placeholder = "Expense description"
	desc.CharLimit = 120
	desc.Width = 40

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 10
	amount.Width = 12

	return expenseRow{description: desc, amount: amount}
}

// fieldTotal counts the fixed fields plus two inputs per expense row
func (m *HourlyModel) fieldTotal() int {
	return hourlyFieldCount + 2*len(m.expenses)
}

func (m *HourlyModel) focusInput(index int) tea.Cmd {
	m.blurAll()
	m.fieldFocus = index
	if index < hourlyFieldCount {
		return m.fields[index].Focus()
	}
	row, col := (index-hourlyFieldCount)/2, (index-hourlyFieldCount)%2
	if col == 0 {
		return m.expenses[row].description.Focus()
	}
	return m.expenses[row].amount.Focus()
}

func (m *HourlyModel) blurAll() {
	for i := range m.fields {
		m.fields[i].Blur()
	}
	for i := range m.expenses {
		m.expenses[i].description.Blur()
		m.expenses[i].amount.Blur()
	}
}

func (m *HourlyModel) buildForm() (service.HourlyForm, error) {
	form := service.HourlyForm{
		Client:             m.client,
		SendTo:             m.fields[hourlyFieldSendTo].Value(),
		ProjectDescription: m.fields[hourlyFieldDescription].Value(),
	}

	var err error
	if form.Week1Hours, err = parseHours(m.fields[hourlyFieldWeek1].Value()); err != nil {
		return form, fmt.Errorf("week 1 hours: %w", err)
	}
	if form.Week2Hours, err = parseHours(m.fields[hourlyFieldWeek2].Value()); err != nil {
		return form, fmt.Errorf("week 2 hours: %w", err)
	}

	for i, row := range m.expenses {
		item := domain.ExpenseItem{Description: row.description.Value()}
		amountStr := row.amount.Value()
		if amountStr != "" {
			item.Amount, err = strconv.ParseFloat(amountStr, 64)
			if err != nil {
				return form, fmt.Errorf("expense %d amount: invalid number %q", i+1, amountStr)
			}
		}
		form.Expenses = append(form.Expenses, item)
	}

	return form, nil
}

func parseHours(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return hours, nil
}

func (m *HourlyModel) submit() tea.Cmd {
	form, err := m.buildForm()
	if err != nil {
		m.err = err
		return nil
	}
	// Catch validation failures here so the form never flashes into Submitting
	if _, err := m.app.Invoices.BuildHourly(form); err != nil {
		m.err = err
		return nil
	}

	m.state = hourlyStateSubmitting
	m.err = nil
	return func() tea.Msg {
		_, err := m.app.Invoices.SubmitHourly(context.Background(), form)
		return hourlySubmittedMsg{err: err}
	}
}

func (m *HourlyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hourlyLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		m.client = msg.client
		m.state = hourlyStateReady
		m.initForm(m.app.Invoices.HourlyDefaults(m.client))
		return m, textinput.Blink

	case hourlySubmittedMsg:
		m.state = hourlyStateReady
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Fresh form for the next invoice
		m.initForm(m.app.Invoices.HourlyDefaults(m.client))
		m.bannerMsg = "Invoice sent"
		return m, tea.Tick(
			time.Duration(m.app.Config.Forms.SuccessBannerSeconds)*time.Second,
			func(time.Time) tea.Msg { return hourlyBannerExpiredMsg{} },
		)

	case hourlyBannerExpiredMsg:
		m.bannerMsg = ""
		return m, nil

	case tea.KeyMsg:
		if m.loadErr != nil {
			if msg.String() == "esc" {
				return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }
			}
			return m, nil
		}
		if m.state != hourlyStateReady {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }

		case "tab", "down":
			return m, m.focusInput((m.fieldFocus + 1) % m.fieldTotal())

		case "shift+tab", "up":
			return m, m.focusInput((m.fieldFocus - 1 + m.fieldTotal()) % m.fieldTotal())

		case "enter":
			if m.fieldFocus == m.fieldTotal()-1 {
				return m, m.submit()
			}
			return m, m.focusInput(m.fieldFocus + 1)

		case "ctrl+a":
			m.expenses = append(m.expenses, newExpenseRow())
			return m, m.focusInput(hourlyFieldCount + 2*(len(m.expenses)-1))

		case "ctrl+x":
			if m.fieldFocus >= hourlyFieldCount && len(m.expenses) > 1 {
				row := (m.fieldFocus - hourlyFieldCount) / 2
				m.expenses = append(m.expenses[:row], m.expenses[row+1:]...)
				return m, m.focusInput(hourlyFieldCount)
			}
			return m, nil

		case "ctrl+s":
			return m, m.submit()
		}
	}

	if m.state != hourlyStateReady {
		return m, nil
	}

	// Update the focused input
	var cmd tea.Cmd
	if m.fieldFocus < hourlyFieldCount {
		m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
		return m, cmd
	}
	row, col := (m.fieldFocus-hourlyFieldCount)/2, (m.fieldFocus-hourlyFieldCount)%2
	if col == 0 {
		m.expenses[row].description, cmd = m.expenses[row].description.Update(msg)
	} else {
		m.expenses[row].amount, cmd = m.expenses[row].amount.Update(msg)
	}
	return m, cmd
}

func (m *HourlyModel) View() string {
	if m.loadErr != nil {
		return errorBannerStyle.Render(fmt.Sprintf("Could not load client: %v", m.loadErr)) +
			"\n\n" + helpStyle.Render("  esc: back to dashboard")
	}
	if m.state == hourlyStateLoading {
		return "Loading client..."
	}

	var s string
	name := "Hourly Invoice"
	if m.client != nil {
		name = fmt.Sprintf("Hourly Invoice - %s", m.client.Name)
	}
	s += titleStyle.Render(name) + "\n\n"

	if m.bannerMsg != "" {
		s += successBannerStyle.Render("  "+m.bannerMsg) + "\n\n"
	}

	labels := []string{"Send to:", "Week 1 hours:", "Week 2 hours:", "Description:"}
	for i, label := range labels {
		s += m.renderField(i, label, m.fields[i].View())
	}

	s += subtitleStyle.Render("  Expenses") + "\n"
	for i, row := range m.expenses {
		descIdx := hourlyFieldCount + 2*i
		s += m.renderField(descIdx, fmt.Sprintf("Expense %d:", i+1), row.description.View())
		s += m.renderField(descIdx+1, "Amount:", row.amount.View())
	}

	if m.state == hourlyStateSubmitting {
		s += warningStyle().Render("  Submitting...") + "\n\n"
	}

	if m.err != nil {
		s += errorBannerStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab: next field  ctrl+a: add expense  ctrl+x: remove expense  ctrl+s: submit  esc: back")

	return s
}

func (m *HourlyModel) renderField(index int, label, input string) string {
	indicator := "  "
	labelStyle := subtitleStyle
	if index == m.fieldFocus {
		indicator = "> "
		labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	}
	return fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), input)
}

func warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(warningColor)
}
