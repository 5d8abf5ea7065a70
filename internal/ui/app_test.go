package ui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdeck/jobdeck/internal/board"
	"github.com/jobdeck/jobdeck/internal/creds"
	"github.com/jobdeck/jobdeck/internal/session"
	"github.com/jobdeck/jobdeck/internal/state"
)

// fakeAPI implements board.API with canned responses and call counters.
type fakeAPI struct {
	jobs []board.Job
	apps []board.Application

	loginErr  error
	submitErr error

	jobsCalls     int
	appsCalls     int
	loginCalls    int
	registerCalls int
	submitCalls   int
}

func (f *fakeAPI) Me(context.Context, string) (*board.UserProfile, error) {
	return &board.UserProfile{ID: 1, Username: "ada"}, nil
}

func (f *fakeAPI) Jobs(context.Context) ([]board.Job, error) {
	f.jobsCalls++
	return f.jobs, nil
}

func (f *fakeAPI) MyApplications(context.Context, string) ([]board.Application, error) {
	f.appsCalls++
	return f.apps, nil
}

func (f *fakeAPI) Login(_ context.Context, username, _ string) (*board.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &board.LoginResult{Access: "tok", User: board.UserProfile{ID: 1, Username: username}}, nil
}

func (f *fakeAPI) Register(context.Context, string, string, string) error {
	f.registerCalls++
	return nil
}

func (f *fakeAPI) SubmitApplication(context.Context, string, board.Submission) (*board.Application, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &board.Application{ID: 9, Status: board.StatusPending}, nil
}

func newTestModel(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	slot := creds.NewSlot(filepath.Join(t.TempDir(), "token.json"))
	sess := session.New(api, slot, nil)
	m := New(Options{API: api, Session: sess, Store: &state.Store{}})
	m.ready = true
	m.width = 120
	m.height = 40
	return m
}

// drive applies a message and returns the updated model plus the
// command it produced.
func drive(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

// runCmd executes a command synchronously and feeds the message back.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return drive(t, m, cmd())
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestLogin_SuccessLandsOnJobsAndRefreshesApplications(t *testing.T) {
	api := &fakeAPI{apps: []board.Application{{ID: 1, JobTitle: "Engineer"}}}
	m := newTestModel(t, api)

	m, _ = drive(t, m, keyRune('l'))
	if m.screen != ScreenLogin {
		t.Fatalf("screen = %v, want ScreenLogin", m.screen)
	}

	m.login.inputs[0].SetValue("ada")
	m.login.inputs[1].SetValue("pw")
	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Login command runs, then its result is folded back in.
	m, refresh := runCmd(t, m, cmd)
	if m.screen != ScreenJobs {
		t.Fatalf("screen = %v after login, want ScreenJobs", m.screen)
	}
	if !m.session.Authenticated() {
		t.Fatal("session not authenticated after successful login")
	}

	// Exactly one applications refresh follows.
	m, _ = runCmd(t, m, refresh)
	if api.appsCalls != 1 {
		t.Fatalf("appsCalls = %d, want 1", api.appsCalls)
	}
	if len(m.snapshot.Applications) != 1 {
		t.Fatalf("applications = %#v, want the fetched list", m.snapshot.Applications)
	}
}

func TestLogin_FailureStaysOnLogin(t *testing.T) {
	api := &fakeAPI{loginErr: &board.Error{Kind: board.KindAuth, Detail: "Invalid credentials"}}
	m := newTestModel(t, api)

	m, _ = drive(t, m, keyRune('l'))
	m.login.inputs[0].SetValue("ada")
	m.login.inputs[1].SetValue("wrong")
	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, next := runCmd(t, m, cmd)

	if m.screen != ScreenLogin {
		t.Fatalf("screen = %v, want ScreenLogin preserved", m.screen)
	}
	if m.session.Authenticated() {
		t.Fatal("session authenticated after failed login")
	}
	if m.notice.kind != noticeError || m.notice.text != "Invalid credentials" {
		t.Fatalf("notice = %+v, want the server detail", m.notice)
	}
	if next != nil {
		t.Fatal("failed login produced a follow-up command, want none")
	}
}

func TestRegister_MismatchStaysAndMakesNoCalls(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	m, _ = drive(t, m, keyRune('r'))
	if m.screen != ScreenRegister {
		t.Fatalf("screen = %v, want ScreenRegister", m.screen)
	}

	m.register.inputs[0].SetValue("ada")
	m.register.inputs[1].SetValue("a@b.c")
	m.register.inputs[2].SetValue("one")
	m.register.inputs[3].SetValue("two")
	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = runCmd(t, m, cmd)

	if m.screen != ScreenRegister {
		t.Fatalf("screen = %v, want ScreenRegister preserved", m.screen)
	}
	if api.registerCalls != 0 {
		t.Fatalf("registerCalls = %d, want 0 on local mismatch", api.registerCalls)
	}
	if m.notice.kind != noticeError {
		t.Fatalf("notice = %+v, want validation error", m.notice)
	}
}

func TestRegister_SuccessLandsOnLogin(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	m, _ = drive(t, m, keyRune('r'))
	m.register.inputs[0].SetValue("ada")
	m.register.inputs[1].SetValue("a@b.c")
	m.register.inputs[2].SetValue("pw")
	m.register.inputs[3].SetValue("pw")
	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = runCmd(t, m, cmd)

	if m.screen != ScreenLogin {
		t.Fatalf("screen = %v, want ScreenLogin after registration", m.screen)
	}
	if m.session.Authenticated() {
		t.Fatal("registration must not authenticate")
	}
	if api.registerCalls != 1 {
		t.Fatalf("registerCalls = %d, want 1", api.registerCalls)
	}
}

func TestApply_UnauthenticatedRedirectsToLogin(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	m.store.SetJobs([]board.Job{{ID: 1, Title: "Engineer", CompanyName: "Acme"}})
	m.snapshot = m.store.Snapshot()

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != ScreenLogin {
		t.Fatalf("screen = %v, want ScreenLogin redirect", m.screen)
	}
	if m.dialog != nil {
		t.Fatal("dialog opened for a guest")
	}
	if api.submitCalls != 0 {
		t.Fatalf("submitCalls = %d, want 0", api.submitCalls)
	}
}

func TestApply_AuthenticatedOpensDialog(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	if err := m.session.Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("seed login: %v", err)
	}
	m.store.SetJobs([]board.Job{{ID: 1, Title: "Engineer"}})
	m.snapshot = m.store.Snapshot()

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != ScreenJobs {
		t.Fatalf("screen = %v, want ScreenJobs with dialog", m.screen)
	}
	if m.dialog == nil || m.dialog.job.ID != 1 {
		t.Fatalf("dialog = %+v, want it open for job 1", m.dialog)
	}
	if m.dialog.cover.Value() != "" {
		t.Fatalf("cover letter = %q, want empty draft", m.dialog.cover.Value())
	}
}

func TestSubmit_SuccessClosesDialogAndRefreshesOnce(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	if err := m.session.Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("seed login: %v", err)
	}
	m.dialog = newApplyDialog(board.Job{ID: 1, Title: "Engineer"})
	m.dialog.cover.SetValue("hire me")

	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, refresh := runCmd(t, m, cmd)

	if m.dialog != nil {
		t.Fatal("dialog still open after successful submit")
	}
	if api.submitCalls != 1 {
		t.Fatalf("submitCalls = %d, want 1", api.submitCalls)
	}

	_, _ = runCmd(t, m, refresh)
	if api.appsCalls != 1 {
		t.Fatalf("appsCalls = %d, want exactly 1 refresh after submit", api.appsCalls)
	}
}

func TestSubmit_FailureKeepsDialogOpenAndSkipsRefresh(t *testing.T) {
	api := &fakeAPI{submitErr: &board.Error{Kind: board.KindServer, Detail: "cover letter required"}}
	m := newTestModel(t, api)
	if err := m.session.Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("seed login: %v", err)
	}
	m.dialog = newApplyDialog(board.Job{ID: 1})
	m.dialog.cover.SetValue("hire me")

	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, next := runCmd(t, m, cmd)

	if m.dialog == nil {
		t.Fatal("dialog closed on failure, want it kept for retry")
	}
	if next != nil {
		t.Fatal("failed submit produced a follow-up command, want none")
	}
	if api.appsCalls != 0 {
		t.Fatalf("appsCalls = %d, want 0 after failure", api.appsCalls)
	}
	if m.notice.text != "cover letter required" {
		t.Fatalf("notice = %q, want server detail", m.notice.text)
	}
}

func TestSubmit_EmptyCoverLetterBlocksLocally(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	if err := m.session.Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("seed login: %v", err)
	}
	m.dialog = newApplyDialog(board.Job{ID: 1})

	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatal("empty cover letter produced a command, want local rejection")
	}
	if api.submitCalls != 0 {
		t.Fatalf("submitCalls = %d, want 0", api.submitCalls)
	}
	if m.dialog == nil {
		t.Fatal("dialog closed on local validation failure")
	}
}

func TestDialogCancel_DiscardsWithoutNetwork(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	if err := m.session.Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("seed login: %v", err)
	}
	m.dialog = newApplyDialog(board.Job{ID: 1})
	m.dialog.cover.SetValue("draft text")

	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.dialog != nil {
		t.Fatal("dialog still open after cancel")
	}
	if api.submitCalls != 0 {
		t.Fatalf("submitCalls = %d, want 0 after cancel", api.submitCalls)
	}
}

func TestLogout_ResetsViewStateAndClearsApplications(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	if err := m.session.Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("seed login: %v", err)
	}
	m.store.SetApplications([]board.Application{{ID: 1}})
	m.snapshot = m.store.Snapshot()
	m.screen = ScreenApplications

	m, _ = drive(t, m, keyRune('x'))

	if m.screen != ScreenJobs {
		t.Fatalf("screen = %v, want ScreenJobs after logout", m.screen)
	}
	if m.session.Authenticated() {
		t.Fatal("session still authenticated after logout")
	}
	if len(m.snapshot.Applications) != 0 {
		t.Fatalf("applications = %#v, want cleared", m.snapshot.Applications)
	}

	// Idempotent: a second logout key is inert for a guest.
	m, _ = drive(t, m, keyRune('x'))
	if m.screen != ScreenJobs || m.session.Authenticated() {
		t.Fatal("second logout changed state")
	}
}

func TestNav_AuthGatedBindingsInertForGuests(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	m, _ = drive(t, m, keyRune('a'))
	if m.screen != ScreenJobs {
		t.Fatalf("screen = %v, want guests unable to reach applications", m.screen)
	}
	m, _ = drive(t, m, keyRune('p'))
	if m.screen != ScreenJobs {
		t.Fatalf("screen = %v, want guests unable to reach post-job", m.screen)
	}
}

func TestNav_JobsKeyTriggersRefresh(t *testing.T) {
	api := &fakeAPI{jobs: []board.Job{{ID: 1}}}
	m := newTestModel(t, api)
	m.screen = ScreenPostJob

	m, cmd := drive(t, m, keyRune('b'))
	if m.screen != ScreenJobs {
		t.Fatalf("screen = %v, want ScreenJobs", m.screen)
	}
	m, _ = runCmd(t, m, cmd)
	if api.jobsCalls != 1 {
		t.Fatalf("jobsCalls = %d, want 1", api.jobsCalls)
	}
	if len(m.snapshot.Jobs) != 1 {
		t.Fatalf("jobs = %#v, want the fetched list", m.snapshot.Jobs)
	}
}

func TestSessionRestore_TriggersApplicationsFetch(t *testing.T) {
	api := &fakeAPI{apps: []board.Application{{ID: 3}}}
	m := newTestModel(t, api)
	if err := m.session.Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("seed login: %v", err)
	}

	m, cmd := drive(t, m, sessionRestoredMsg{authenticated: true})
	m, _ = runCmd(t, m, cmd)
	if api.appsCalls != 1 {
		t.Fatalf("appsCalls = %d, want 1 after restore", api.appsCalls)
	}
	if len(m.snapshot.Applications) != 1 {
		t.Fatalf("applications = %#v, want fetched list", m.snapshot.Applications)
	}
}

func TestSessionRestore_GuestMakesNoFetch(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)

	_, cmd := drive(t, m, sessionRestoredMsg{authenticated: false})
	if cmd != nil {
		t.Fatal("guest restore produced a command, want none")
	}
	if api.appsCalls != 0 {
		t.Fatalf("appsCalls = %d, want 0", api.appsCalls)
	}
}

func TestJobsRefreshFailure_KeepsCacheAndShowsNotice(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api)
	m.store.SetJobs([]board.Job{{ID: 1, Title: "Engineer"}})
	m.snapshot = m.store.Snapshot()

	m.store.Fail(&board.Error{Kind: board.KindNetwork})
	m, _ = drive(t, m, jobsRefreshedMsg{err: &board.Error{Kind: board.KindNetwork}})

	if len(m.snapshot.Jobs) != 1 {
		t.Fatalf("jobs = %#v, want previous cache retained", m.snapshot.Jobs)
	}
	if m.notice.kind != noticeError {
		t.Fatalf("notice = %+v, want error notice", m.notice)
	}
}
