package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elevatemedia/invoicer/internal/app"
	"github.com/elevatemedia/invoicer/internal/domain"
)

const recentSubmissionLimit = 5

// DashboardModel lists the recurring clients and recent invoice activity
type DashboardModel struct {
	app *app.App

	clients []*domain.Client
	recent  []*domain.Submission
	cursor  int

	loading bool
	err     error
}

type dashboardDataMsg struct {
	clients []*domain.Client
	recent  []*domain.Submission
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.Clients.ListRecurring(ctx)
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		// History is optional context on the dashboard; ignore load errors
		var recent []*domain.Submission
		if m.app.Submissions != nil {
			recent, _ = m.app.Submissions.ListRecent(ctx, recentSubmissionLimit)
		}

		return dashboardDataMsg{clients: clients, recent: recent}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.recent = msg.recent
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
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
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				client := m.clients[m.cursor]
				variant := m.app.Router.FormRoute(client.Name)
				return m, func() tea.Msg {
					return OpenInvoiceFormMsg{Client: client, Variant: variant}
				}
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, func() tea.Msg { return OpenNewClientFormMsg{} }
		case key.Matches(msg, DefaultKeyMap.Refresh):
			m.loading = true
			return m, m.loadData()
		}
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading clients..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Recurring Clients") + "\n\n"

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No recurring clients yet. Press 'n' to add one.") + "\n"
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	s += "\n" + m.renderRecent()
	s += "\n" + helpStyle.Render("  j/k: navigate  enter: invoice  n: new client  r: refresh")

	return s
}

func (m *DashboardModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	variant := m.app.Router.FormRoute(client.Name)
	detail := "hourly billing"
	if variant == domain.VariantRetainer {
		detail = "monthly retainer"
	}
	if client.DefaultRate != nil {
		detail += fmt.Sprintf("  |  %s/hr", formatMoney(*client.DefaultRate))
	}
	if email := client.PreferredEmail(); email != "" {
		detail += "  |  " + truncateStr(email, 36)
	}

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(indicator+client.Name) + "\n" +
		subtitleStyle.Render("    "+detail)
}

func (m *DashboardModel) renderRecent() string {
	header := "  Recent Submissions\n"
	if len(m.recent) == 0 {
		return header + subtitleStyle.Render("  No submissions yet") + "\n"
	}

	s := header
	for _, sub := range m.recent {
		status := successBannerStyle.Render("sent")
		if !sub.OK {
			status = errorBannerStyle.Render("failed")
		}
		name := sub.ClientName
		if name == "" {
			name = "(no client)"
		}
		s += fmt.Sprintf("  %-7s %-20s %-9s %s\n",
			sub.SubmittedAt.Local().Format("Jan 2"),
			truncateStr(name, 20),
			sub.Variant,
			status,
		)
	}

	return s
}
