package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jobdeck/jobdeck/internal/board"
	"github.com/jobdeck/jobdeck/internal/session"
	"github.com/jobdeck/jobdeck/internal/state"
)

// Screen identifies the active screen. The set is closed: navigation is
// only possible between these five.
type Screen int

const (
	ScreenJobs Screen = iota
	ScreenApplications
	ScreenLogin
	ScreenRegister
	ScreenPostJob
)

const fetchTimeout = 15 * time.Second

// Options configures the UI.
type Options struct {
	Context context.Context
	API     board.API
	Session *session.Session
	Store   *state.Store
	Theme   string
	Log     *zap.Logger
}

// Model is the root application state for Bubble Tea. It owns the
// current screen, the apply dialog, and every transition between them.
type Model struct {
	ctx     context.Context
	api     board.API
	session *session.Session
	store   *state.Store
	log     *zap.Logger

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	screen   Screen
	snapshot state.Snapshot
	notice   notice
	showHelp bool

	// Jobs screen
	selectedJob int
	searchInput textinput.Model
	searching   bool

	// Applications screen
	selectedApp int

	// Auth forms
	login    loginForm
	register registerForm

	// Apply dialog; nil when closed.
	dialog *applyDialog
}

// notice is the transient status line shown in the header.
type notice struct {
	text string
	kind noticeKind
}

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeError
)

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	search := textinput.New()
	search.Placeholder = "Search jobs..."
	search.CharLimit = 100
	search.Prompt = "/ "

	return Model{
		ctx:         ctx,
		api:         opts.API,
		session:     opts.Session,
		store:       opts.Store,
		log:         log,
		keys:        defaultKeyMap(),
		theme:       GetTheme(opts.Theme),
		screen:      ScreenJobs,
		searchInput: search,
		login:       newLoginForm(),
		register:    newRegisterForm(),
	}
}

// Init implements tea.Model: restore any persisted session and load the
// job list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.restoreSessionCmd(),
		m.refreshJobsCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case sessionRestoredMsg:
		if msg.authenticated {
			// Pull the user's applications now that the token is known good.
			return m, m.refreshApplicationsCmd()
		}
		return m, nil

	case jobsRefreshedMsg:
		m.snapshot = m.store.Snapshot()
		m.clampJobSelection()
		if msg.err != nil {
			m.notice = errorNotice(msg.err, "Failed to load jobs. Is the server running?")
		}
		return m, nil

	case applicationsRefreshedMsg:
		m.snapshot = m.store.Snapshot()
		m.clampAppSelection()
		if msg.err != nil {
			m.notice = errorNotice(msg.err, "Failed to load applications")
		}
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			m.notice = errorNotice(msg.err, "Login failed: Invalid credentials")
			return m, nil
		}
		m.screen = ScreenJobs
		m.login = newLoginForm()
		m.notice = notice{text: "Logged in as " + m.username(), kind: noticeSuccess}
		return m, m.refreshApplicationsCmd()

	case registerDoneMsg:
		if msg.err != nil {
			m.notice = errorNotice(msg.err, "Registration failed")
			return m, nil
		}
		m.screen = ScreenLogin
		m.register = newRegisterForm()
		m.notice = notice{text: "Registration successful! Please login.", kind: noticeSuccess}
		return m, nil

	case submitDoneMsg:
		if msg.err != nil {
			// Keep the dialog open so the user can retry.
			m.notice = errorNotice(msg.err, "Failed to submit application")
			return m, nil
		}
		m.dialog = nil
		m.notice = notice{text: "Application submitted successfully!", kind: noticeSuccess}
		return m, m.refreshApplicationsCmd()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.dialog != nil {
		return m.renderDialog()
	}
	return m.renderMain()
}

// handleKey routes keyboard input: dialog first, then auth forms, then
// the search input, then global bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, whatever owns the keyboard.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.dialog != nil {
		return m.handleDialogKey(msg)
	}

	switch m.screen {
	case ScreenLogin:
		return m.handleLoginKey(msg)
	case ScreenRegister:
		return m.handleRegisterKey(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, nil

	case key.Matches(msg, m.keys.GoJobs), key.Matches(msg, m.keys.Escape):
		m.screen = ScreenJobs
		m.notice = notice{}
		return m, m.refreshJobsCmd()

	case key.Matches(msg, m.keys.GoApplications):
		// Gated: the binding is inert for guests, mirroring a nav
		// control that is not rendered when logged out.
		if !m.session.Authenticated() {
			return m, nil
		}
		m.screen = ScreenApplications
		m.notice = notice{}
		return m, nil

	case key.Matches(msg, m.keys.GoPostJob):
		if !m.session.Authenticated() {
			return m, nil
		}
		m.screen = ScreenPostJob
		m.notice = notice{}
		return m, nil

	case key.Matches(msg, m.keys.GoLogin):
		if m.session.Authenticated() {
			return m, nil
		}
		m.screen = ScreenLogin
		m.login = newLoginForm()
		m.notice = notice{}
		return m, m.login.focusCmd()

	case key.Matches(msg, m.keys.GoRegister):
		if m.session.Authenticated() {
			return m, nil
		}
		m.screen = ScreenRegister
		m.register = newRegisterForm()
		m.notice = notice{}
		return m, m.register.focusCmd()

	case key.Matches(msg, m.keys.Logout):
		if !m.session.Authenticated() {
			return m, nil
		}
		m.session.Logout()
		m.store.ClearApplications()
		m.snapshot = m.store.Snapshot()
		m.dialog = nil
		m.searchInput.SetValue("")
		m.screen = ScreenJobs
		m.notice = notice{text: "Logged out", kind: noticeInfo}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.screen == ScreenApplications {
			return m, m.refreshApplicationsCmd()
		}
		return m, m.refreshJobsCmd()
	}

	switch m.screen {
	case ScreenJobs:
		return m.handleJobsKey(msg)
	case ScreenApplications:
		return m.handleApplicationsKey(msg)
	}
	return m, nil
}

func (m Model) username() string {
	if u := m.session.User(); u != nil {
		return u.Username
	}
	return ""
}

// errorNotice converts a classified client error into the status line,
// preferring server-provided detail over the generic fallback.
func errorNotice(err error, fallback string) notice {
	be := board.AsError(err)
	if be == nil {
		return notice{}
	}
	return notice{text: be.Message(fallback), kind: noticeError}
}

// Messages

type sessionRestoredMsg struct{ authenticated bool }

type jobsRefreshedMsg struct{ err error }

type applicationsRefreshedMsg struct{ err error }

type loginDoneMsg struct{ err error }

type registerDoneMsg struct{ err error }

type submitDoneMsg struct{ err error }

// Commands

func (m Model) restoreSessionCmd() tea.Cmd {
	sess := m.session
	ctx := m.ctx
	return func() tea.Msg {
		rctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		sess.Restore(rctx)
		return sessionRestoredMsg{authenticated: sess.Authenticated()}
	}
}

func (m Model) refreshJobsCmd() tea.Cmd {
	api, store, ctx := m.api, m.store, m.ctx
	return func() tea.Msg {
		rctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		jobs, err := api.Jobs(rctx)
		if err != nil {
			store.Fail(err)
			return jobsRefreshedMsg{err: err}
		}
		store.SetJobs(jobs)
		return jobsRefreshedMsg{}
	}
}

func (m Model) refreshApplicationsCmd() tea.Cmd {
	api, store, sess, ctx := m.api, m.store, m.session, m.ctx
	return func() tea.Msg {
		token := sess.Token()
		if token == "" {
			return applicationsRefreshedMsg{}
		}
		rctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		apps, err := api.MyApplications(rctx, token)
		if err != nil {
			store.Fail(err)
			return applicationsRefreshedMsg{err: err}
		}
		store.SetApplications(apps)
		return applicationsRefreshedMsg{}
	}
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		rctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		return loginDoneMsg{err: sess.Login(rctx, username, password)}
	}
}

func (m Model) registerCmd(username, email, password, confirm string) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		rctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		return registerDoneMsg{err: sess.Register(rctx, username, email, password, confirm)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
