package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobdeck/jobdeck/internal/board"
)

// applyDialog is the application submission form, shown over the jobs
// screen for one target job.
type applyDialog struct {
	job    board.Job
	cover  textarea.Model
	resume textinput.Model
	focus  int // 0 = cover letter, 1 = resume path
}

func newApplyDialog(job board.Job) *applyDialog {
	cover := textarea.New()
	cover.Placeholder = "Tell us why you're a great fit for this position..."
	cover.CharLimit = 4000
	cover.SetWidth(60)
	cover.SetHeight(8)
	cover.Focus()

	resume := textinput.New()
	resume.Placeholder = "Path to resume (optional)"
	resume.CharLimit = 512
	resume.Prompt = "> "

	return &applyDialog{job: job, cover: cover, resume: resume}
}

// openApplyDialog opens the dialog for a job, or redirects a guest to
// the login screen without opening anything.
func (m *Model) openApplyDialog(job board.Job) {
	if !m.session.Authenticated() {
		m.screen = ScreenLogin
		m.login = newLoginForm()
		m.notice = notice{text: "Please login to apply", kind: noticeInfo}
		return
	}
	m.dialog = newApplyDialog(job)
	m.notice = notice{}
}

// handleDialogKey processes keys while the dialog is open.
func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog

	switch {
	case key.Matches(msg, m.keys.Escape):
		// Cancel: discard the draft, no network call.
		m.dialog = nil
		return m, nil

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		d.focus = 1 - d.focus
		if d.focus == 0 {
			d.resume.Blur()
			return m, d.cover.Focus()
		}
		d.cover.Blur()
		return m, d.resume.Focus()

	case key.Matches(msg, m.keys.Submit):
		letter := strings.TrimSpace(d.cover.Value())
		if letter == "" {
			m.notice = notice{text: "Cover letter is required", kind: noticeError}
			return m, nil
		}
		return m, m.submitApplicationCmd(d.job, letter, strings.TrimSpace(d.resume.Value()))
	}

	var cmd tea.Cmd
	if d.focus == 0 {
		d.cover, cmd = d.cover.Update(msg)
	} else {
		d.resume, cmd = d.resume.Update(msg)
	}
	return m, cmd
}

// submitApplicationCmd builds the multipart submission and posts it. On
// success the caller refreshes the applications list so the canonical
// server record replaces any local guess.
func (m Model) submitApplicationCmd(job board.Job, coverLetter, resumePath string) tea.Cmd {
	api, sess, ctx := m.api, m.session, m.ctx
	return func() tea.Msg {
		sub := board.Submission{
			JobID:       job.ID,
			CoverLetter: coverLetter,
		}
		if resumePath != "" {
			data, err := os.ReadFile(resumePath)
			if err != nil {
				return submitDoneMsg{err: board.ValidationError("Cannot read resume file: " + err.Error())}
			}
			sub.Resume = data
			sub.ResumeName = filepath.Base(resumePath)
		}

		rctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		_, err := api.SubmitApplication(rctx, sess.Token(), sub)
		return submitDoneMsg{err: err}
	}
}

// renderDialog renders the dialog centered over a dimmed jobs screen.
func (m Model) renderDialog() string {
	styles := m.theme.Styles()
	d := m.dialog

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Apply for: " + d.job.Title))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(d.job.CompanyName))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Cover letter *"))
	b.WriteString("\n")
	b.WriteString(d.cover.View())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Resume (optional)"))
	b.WriteString("\n")
	b.WriteString(d.resume.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("ctrl+s Submit  •  tab Switch field  •  esc Cancel"))

	if m.notice.text != "" {
		b.WriteString("\n\n")
		b.WriteString(m.renderNotice())
	}

	box := styles.Box.BorderForeground(lipgloss.Color(m.theme.Accent)).Width(66).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
