package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobdeck/jobdeck/internal/board"
)

// visibleJobs returns the cached jobs narrowed by the search query.
func (m Model) visibleJobs() []board.Job {
	return FilterJobs(m.snapshot.Jobs, m.searchInput.Value())
}

// selectedJobItem returns the job under the cursor, nil when the list is
// empty.
func (m Model) selectedJobItem() *board.Job {
	jobs := m.visibleJobs()
	if len(jobs) == 0 || m.selectedJob >= len(jobs) {
		return nil
	}
	return &jobs[m.selectedJob]
}

func (m *Model) clampJobSelection() {
	count := len(m.visibleJobs())
	if count == 0 {
		m.selectedJob = 0
		return
	}
	if m.selectedJob >= count {
		m.selectedJob = count - 1
	}
}

// handleJobsKey processes keys on the jobs screen.
func (m Model) handleJobsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	jobs := m.visibleJobs()

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		if job := m.selectedJobItem(); job != nil {
			m.openApplyDialog(*job)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedJob < len(jobs)-1 {
			m.selectedJob++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedJob > 0 {
			m.selectedJob--
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedJob = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(jobs) > 0 {
			m.selectedJob = len(jobs) - 1
		}
		return m, nil
	}
	return m, nil
}

// handleSearchKey processes keys while the search input owns the
// keyboard. The filter recomputes on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.clampJobSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.clampJobSelection()
	return m, cmd
}

// renderJobs renders the jobs screen: list pane plus detail pane.
func (m Model) renderJobs() string {
	styles := m.theme.Styles()
	jobs := m.visibleJobs()
	contentHeight := m.contentHeight()

	if !m.snapshot.JobsLoaded && m.snapshot.LastError == nil {
		loading := styles.MutedText.Render("Loading jobs...")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, loading)
	}

	searchLine := m.searchInput.View()

	if len(jobs) == 0 {
		empty := styles.Text.Bold(true).Render("No jobs found") + "\n" +
			styles.MutedText.Render("Try adjusting your search criteria")
		body := lipgloss.Place(m.width, contentHeight-1, lipgloss.Center, lipgloss.Center, empty)
		return searchLine + "\n" + body
	}

	listWidth := m.width * 40 / 100
	detailWidth := m.width - listWidth - 1

	list := m.renderJobList(jobs, listWidth, contentHeight-1)
	detail := m.renderJobDetail(detailWidth)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)
	return searchLine + "\n" + panes
}

func (m Model) renderJobList(jobs []board.Job, width, height int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	start := 0
	if m.selectedJob >= height {
		start = m.selectedJob - height + 1
	}
	end := start + height
	if end > len(jobs) {
		end = len(jobs)
	}

	for i := start; i < end; i++ {
		job := jobs[i]
		line := fmt.Sprintf("%s — %s", job.Title, job.CompanyName)
		line = truncate(line, width-2)
		if i == m.selectedJob {
			b.WriteString(styles.Selected.Width(width).Render(" " + line))
		} else {
			b.WriteString(styles.Text.Render(" " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m Model) renderJobDetail(width int) string {
	styles := m.theme.Styles()
	job := m.selectedJobItem()
	if job == nil {
		return styles.MutedText.Render("Select a job")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(job.Title))
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render(job.CompanyName))
	b.WriteString("\n\n")

	var badges []string
	if job.Location != "" {
		badges = append(badges, styles.InfoText.Render(job.Location))
	}
	if job.JobType != "" {
		badges = append(badges, styles.SuccessText.Render(job.JobType))
	}
	if job.Salary != "" {
		badges = append(badges, styles.WarningText.Render(job.Salary))
	}
	if len(badges) > 0 {
		b.WriteString(strings.Join(badges, styles.FaintText.Render("  •  ")))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.Text.Width(width - 2).Render(job.Description))
	b.WriteString("\n\n")
	if posted := job.PostedAt(); !posted.IsZero() {
		b.WriteString(styles.FaintText.Render("Posted " + posted.Format("Jan 2, 2006")))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("enter Apply"))

	return m.theme.Styles().Box.Width(width).Render(b.String())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
