package ui

import (
	"fmt"
	"strings"
)

// renderMain renders the full UI: header, command bar, active screen.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.screen {
	case ScreenJobs:
		b.WriteString(m.renderJobs())
	case ScreenApplications:
		b.WriteString(m.renderApplications())
	case ScreenLogin:
		b.WriteString(m.renderLogin())
	case ScreenRegister:
		b.WriteString(m.renderRegister())
	case ScreenPostJob:
		b.WriteString(m.renderPostJob())
	}
	return b.String()
}

// contentHeight is the rows left after the header and command bar.
func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		return 1
	}
	return h
}

// renderHeader renders the top status line: logo, auth state, counts,
// and the transient notice.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("jobdeck")}

	if user := m.session.User(); user != nil {
		parts = append(parts, styles.SuccessText.Render("● "+user.Username))
		parts = append(parts, styles.MutedText.Render(
			fmt.Sprintf("Applications: %d", len(m.snapshot.Applications))))
	} else {
		parts = append(parts, styles.MutedText.Render("guest"))
	}

	parts = append(parts, styles.MutedText.Render(
		fmt.Sprintf("Jobs: %d", len(m.snapshot.Jobs))))

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render(m.snapshot.LastUpdated.Format("15:04:05")))
	}

	if m.notice.text != "" {
		parts = append(parts, m.renderNotice())
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderNotice() string {
	styles := m.theme.Styles()
	text := truncate(m.notice.text, 80)
	switch m.notice.kind {
	case noticeSuccess:
		return styles.SuccessText.Render(text)
	case noticeError:
		return styles.DangerText.Render("ERROR ") + styles.DangerText.Render(text)
	default:
		return styles.InfoText.Render(text)
	}
}

// renderCommandBar renders the key hints for the active screen and auth
// state. Auth-gated actions are simply absent for guests.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.screen {
	case ScreenLogin, ScreenRegister:
		commands = []cmd{
			{"enter", "Submit"},
			{"tab", "Next field"},
			{"esc", "Back"},
		}
	case ScreenApplications:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"R", "Refresh"},
			{"b", "Jobs"},
			{"?", "Help"},
		}
	case ScreenPostJob:
		commands = []cmd{
			{"b/esc", "Back to jobs"},
		}
	default: // ScreenJobs
		commands = []cmd{
			{"j/k", "Navigate"},
			{"/", "Search"},
			{"enter", "Apply"},
			{"R", "Refresh"},
		}
		if m.session.Authenticated() {
			commands = append(commands,
				cmd{"a", "Applications"},
				cmd{"p", "Post job"},
				cmd{"x", "Logout"},
			)
		} else {
			commands = append(commands,
				cmd{"l", "Login"},
				cmd{"r", "Register"},
			)
		}
		commands = append(commands, cmd{"?", "Help"})
	}

	parts := make([]string, 0, len(commands))
	for _, c := range commands {
		parts = append(parts,
			styles.WarningText.Render(c.key)+" "+styles.MutedText.Render(c.desc))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderPostJob renders the post-job placeholder screen.
func (m Model) renderPostJob() string {
	styles := m.theme.Styles()
	content := styles.Text.Bold(true).Render("Post a New Job") + "\n\n" +
		styles.MutedText.Render("Job posting is not available in this client yet.") + "\n\n" +
		styles.FaintText.Render("esc Back to jobs")
	return m.centerBox(content, 50)
}
