package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginForm holds the login screen inputs.
type loginForm struct {
	inputs [2]textinput.Model // username, password
	focus  int
}

func newLoginForm() loginForm {
	var f loginForm
	f.inputs[0] = newField("Username")
	f.inputs[1] = newField("Password")
	f.inputs[1].EchoMode = textinput.EchoPassword
	f.inputs[0].Focus()
	return f
}

func (f *loginForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

// registerForm holds the register screen inputs.
type registerForm struct {
	inputs [4]textinput.Model // username, email, password, confirm
	focus  int
}

func newRegisterForm() registerForm {
	var f registerForm
	f.inputs[0] = newField("Username")
	f.inputs[1] = newField("Email")
	f.inputs[2] = newField("Password")
	f.inputs[2].EchoMode = textinput.EchoPassword
	f.inputs[3] = newField("Confirm password")
	f.inputs[3].EchoMode = textinput.EchoPassword
	f.inputs[0].Focus()
	return f
}

func (f *registerForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func newField(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Prompt = "> "
	return ti
}

// handleLoginKey processes keys while the login screen is active.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenJobs
		m.notice = notice{}
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.login.focus = cycleFocus(m.login.focus, len(m.login.inputs), 1)
		return m, refocus(m.login.inputs[:], m.login.focus)

	case key.Matches(msg, m.keys.PrevField):
		m.login.focus = cycleFocus(m.login.focus, len(m.login.inputs), -1)
		return m, refocus(m.login.inputs[:], m.login.focus)

	case key.Matches(msg, m.keys.Confirm):
		username := strings.TrimSpace(m.login.inputs[0].Value())
		password := m.login.inputs[1].Value()
		if username == "" || password == "" {
			m.notice = notice{text: "Username and password are required", kind: noticeError}
			return m, nil
		}
		return m, m.loginCmd(username, password)
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

// handleRegisterKey processes keys while the register screen is active.
func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenJobs
		m.notice = notice{}
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.register.focus = cycleFocus(m.register.focus, len(m.register.inputs), 1)
		return m, refocus(m.register.inputs[:], m.register.focus)

	case key.Matches(msg, m.keys.PrevField):
		m.register.focus = cycleFocus(m.register.focus, len(m.register.inputs), -1)
		return m, refocus(m.register.inputs[:], m.register.focus)

	case key.Matches(msg, m.keys.Confirm):
		username := strings.TrimSpace(m.register.inputs[0].Value())
		email := strings.TrimSpace(m.register.inputs[1].Value())
		password := m.register.inputs[2].Value()
		confirm := m.register.inputs[3].Value()
		return m, m.registerCmd(username, email, password, confirm)
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func cycleFocus(current, count, dir int) int {
	return (current + dir + count) % count
}

func refocus(inputs []textinput.Model, focus int) tea.Cmd {
	for i := range inputs {
		if i == focus {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
	return textinput.Blink
}

// renderLogin renders the login screen.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Login"))
	b.WriteString("\n\n")
	for i, label := range []string{"Username", "Password"} {
		b.WriteString(styles.MutedText.Render(label))
		b.WriteString("\n")
		b.WriteString(m.login.inputs[i].View())
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("enter Login  •  tab Next field  •  esc Back"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Don't have an account? Press esc, then r to register."))

	return m.centerBox(b.String(), 46)
}

// renderRegister renders the register screen.
func (m Model) renderRegister() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Register"))
	b.WriteString("\n\n")
	for i, label := range []string{"Username", "Email", "Password", "Confirm password"} {
		b.WriteString(styles.MutedText.Render(label))
		b.WriteString("\n")
		b.WriteString(m.register.inputs[i].View())
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("enter Register  •  tab Next field  •  esc Back"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Already have an account? Press esc, then l to login."))

	return m.centerBox(b.String(), 46)
}

// centerBox puts content in a bordered box centered in the content area.
func (m Model) centerBox(content string, width int) string {
	styles := m.theme.Styles()
	box := styles.Box.Width(width).Render(content)
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, box)
}
