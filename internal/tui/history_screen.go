package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elevatemedia/invoicer/internal/app"
	"github.com/elevatemedia/invoicer/internal/domain"
)

const historyLimit = 50

// HistoryModel lists past invoice submissions from the local log
type HistoryModel struct {
	app *app.App

	submissions []*domain.Submission
	cursor      int

	loading bool
	err     error
}

type historyDataMsg struct {
	submissions []*domain.Submission
	err         error
}

// NewHistoryModel creates a new history screen model
func NewHistoryModel(a *app.App) tea.Model {
	return &HistoryModel{
		app:     a,
		loading: true,
	}
}

func (m *HistoryModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *HistoryModel) loadData() tea.Cmd {
	return func() tea.Msg {
		if m.app.Submissions == nil {
			return historyDataMsg{err: errors.New("history is unavailable")}
		}
		submissions, err := m.app.Submissions.ListRecent(context.Background(), historyLimit)
		if err != nil {
			return historyDataMsg{err: err}
		}
		return historyDataMsg{submissions: submissions}
	}
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.submissions = msg.submissions
			if m.cursor >= len(m.submissions) {
				m.cursor = max(0, len(m.submissions)-1)
			}
		}
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.submissions)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Refresh):
			m.loading = true
			return m, m.loadData()
		}
	}

	return m, nil
}

func (m *HistoryModel) View() string {
	if m.loading {
		return "Loading history..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Submission History") + "\n\n"

	if len(m.submissions) == 0 {
		s += subtitleStyle.Render("  No submissions yet") + "\n"
		return s
	}

	for i, sub := range m.submissions {
		s += m.renderSubmission(i, sub) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  r: refresh")

	return s
}

func (m *HistoryModel) renderSubmission(index int, sub *domain.Submission) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	status := successBannerStyle.Render("sent")
	if !sub.OK {
		status = errorBannerStyle.Render("failed")
	}

	name := sub.ClientName
	if name == "" {
		name = "(no client)"
	}

	line1 := fmt.Sprintf("%s%s  %-20s %-9s %s",
		indicator,
		sub.SubmittedAt.Local().Format("2006-01-02 15:04"),
		truncateStr(name, 20),
		sub.Variant,
		status,
	)

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	result := nameStyle.Render(line1)
	line2 := fmt.Sprintf("    to %s", truncateStr(sub.Recipient, 60))
	if sub.Error != "" && selected {
		line2 += "\n    " + truncateStr(sub.Error, 70)
	}
	result += "\n" + subtitleStyle.Render(line2)

	return result
}
