package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobdeck/jobdeck/internal/board"
)

func (m *Model) clampAppSelection() {
	count := len(m.snapshot.Applications)
	if count == 0 {
		m.selectedApp = 0
		return
	}
	if m.selectedApp >= count {
		m.selectedApp = count - 1
	}
}

func (m Model) selectedApplication() *board.Application {
	apps := m.snapshot.Applications
	if len(apps) == 0 || m.selectedApp >= len(apps) {
		return nil
	}
	return &apps[m.selectedApp]
}

// handleApplicationsKey processes keys on the applications screen.
func (m Model) handleApplicationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Applications)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedApp < count-1 {
			m.selectedApp++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedApp > 0 {
			m.selectedApp--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedApp = 0
	case key.Matches(msg, m.keys.Bottom):
		if count > 0 {
			m.selectedApp = count - 1
		}
	}
	return m, nil
}

// renderApplications renders the applications table with a cover-letter
// preview for the selected row.
func (m Model) renderApplications() string {
	styles := m.theme.Styles()
	apps := m.snapshot.Applications
	contentHeight := m.contentHeight()

	if len(apps) == 0 {
		empty := styles.Text.Bold(true).Render("No applications yet") + "\n" +
			styles.MutedText.Render("Apply for jobs to see them here (press b to browse)")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	titleWidth := m.width * 35 / 100
	companyWidth := m.width * 20 / 100

	var b strings.Builder
	header := fmt.Sprintf(" %-*s %-*s %-13s %s",
		titleWidth, "Job Title", companyWidth, "Company", "Status", "Applied")
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")

	for i, app := range apps {
		title := truncate(app.Title(), titleWidth)
		company := app.Company()
		if company == "" {
			company = "N/A"
		}
		company = truncate(company, companyWidth)
		applied := ""
		if at := app.SubmittedAt(); !at.IsZero() {
			applied = at.Format("Jan 2, 2006")
		}

		row := fmt.Sprintf(" %-*s %-*s ", titleWidth, title, companyWidth, company)
		badge := styles.StatusStyle(app.Status).Render(app.Status)
		line := row + badge + "  " + styles.FaintText.Render(applied)

		if i == m.selectedApp {
			b.WriteString(styles.Selected.Render(fmt.Sprintf(" %-*s %-*s ", titleWidth, title, companyWidth, company)))
			b.WriteString(badge)
			b.WriteString("  ")
			b.WriteString(styles.FaintText.Render(applied))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if app := m.selectedApplication(); app != nil && strings.TrimSpace(app.CoverLetter) != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Cover letter"))
		b.WriteString("\n")
		preview := styles.Box.Width(m.width - 4).Render(
			styles.Text.Render(truncate(app.CoverLetter, 600)),
		)
		b.WriteString(preview)
	}

	return b.String()
}
