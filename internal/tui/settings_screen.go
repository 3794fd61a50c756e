package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elevatemedia/invoicer/internal/app"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldBaseURL = iota
	settingsFieldWeekHours
	settingsFieldHourlyRecipients
	settingsFieldRetainerRecipients
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	m.fields[settingsFieldBaseURL] = textinput.New()
	m.fields[settingsFieldBaseURL].Placeholder = "https://example.supabase.co"
	m.fields[settingsFieldBaseURL].CharLimit = 256
	m.fields[settingsFieldBaseURL].Width = 60
	m.fields[settingsFieldBaseURL].SetValue(cfg.RecordStore.BaseURL)

	m.fields[settingsFieldWeekHours] = textinput.New()
	m.fields[settingsFieldWeekHours].Placeholder = "40"
	m.fields[settingsFieldWeekHours].CharLimit = 6
	m.fields[settingsFieldWeekHours].Width = 10
	m.fields[settingsFieldWeekHours].SetValue(formatHoursInput(cfg.Forms.DefaultWeekHours))

	m.fields[settingsFieldHourlyRecipients] = textinput.New()
	m.fields[settingsFieldHourlyRecipients].Placeholder = "billing@example.com"
	m.fields[settingsFieldHourlyRecipients].CharLimit = 300
	m.fields[settingsFieldHourlyRecipients].Width = 60
	m.fields[settingsFieldHourlyRecipients].SetValue(cfg.Forms.HourlyRecipients)

	m.fields[settingsFieldRetainerRecipients] = textinput.New()
	m.fields[settingsFieldRetainerRecipients].Placeholder = "one@example.com, two@example.com"
	m.fields[settingsFieldRetainerRecipients].CharLimit = 300
	m.fields[settingsFieldRetainerRecipients].Width = 60
	m.fields[settingsFieldRetainerRecipients].SetValue(cfg.Forms.RetainerRecipients)

	m.fieldFocus = settingsFieldBaseURL
	m.fields[settingsFieldBaseURL].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		baseURL := m.fields[settingsFieldBaseURL].Value()
		hoursStr := m.fields[settingsFieldWeekHours].Value()

		if baseURL == "" {
			return settingsSavedMsg{err: fmt.Errorf("record store URL is required")}
		}

		hours, err := strconv.ParseFloat(hoursStr, 64)
		if err != nil || hours < 0 {
			return settingsSavedMsg{err: fmt.Errorf("default hours must be a non-negative number")}
		}

		m.app.Config.RecordStore.BaseURL = baseURL
		m.app.Config.Forms.DefaultWeekHours = hours
		m.app.Config.Forms.HourlyRecipients = m.fields[settingsFieldHourlyRecipients].Value()
		m.app.Config.Forms.RetainerRecipients = m.fields[settingsFieldRetainerRecipients].Value()

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		if msg.String() == "enter" {
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(24)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Record Store:"), valueStyle.Render(cfg.RecordStore.BaseURL))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Default Week Hours:"), valueStyle.Render(formatHoursInput(cfg.Forms.DefaultWeekHours)))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Hourly Recipients:"), valueStyle.Render(cfg.Forms.HourlyRecipients))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Retainer Recipients:"), valueStyle.Render(truncateStr(cfg.Forms.RetainerRecipients, 60)))

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"Record Store URL:", "Default Week Hours:", "Hourly Recipients:", "Retainer Recipients:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
