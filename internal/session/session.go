// Package session holds the client's record of the authenticated user:
// the bearer token and the profile behind it. The token outlives the
// process through a creds.Slot; everything else is in-memory.
package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jobdeck/jobdeck/internal/board"
	"github.com/jobdeck/jobdeck/internal/creds"
)

// Session is authenticated iff both token and user are set. A token
// without a user exists only transiently while Restore verifies it.
type Session struct {
	api  board.API
	slot *creds.Slot
	log  *zap.Logger

	mu    sync.RWMutex
	token string
	user  *board.UserProfile
}

// New builds an empty, logged-out session.
func New(api board.API, slot *creds.Slot, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{api: api, slot: slot, log: log}
}

// Restore verifies a persisted token against the identity endpoint. Any
// failure (expired slot, rejected token, unreachable service) degrades
// silently to logged-out and discards the slot; nothing surfaces to the
// caller.
func (s *Session) Restore(ctx context.Context) {
	token, err := s.slot.Load()
	if err != nil {
		return
	}
	profile, err := s.api.Me(ctx, token)
	if err != nil {
		s.log.Info("session restore failed", zap.Error(err))
		_ = s.slot.Clear()
		return
	}
	s.mu.Lock()
	s.token = token
	s.user = profile
	s.mu.Unlock()
	s.log.Info("session restored", zap.String("user", profile.Username))
}

// Login exchanges credentials for a token, persists it, and populates
// the session. On failure the session is untouched and the classified
// error comes back for display.
func (s *Session) Login(ctx context.Context, username, password string) error {
	res, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.slot.Save(res.Access); err != nil {
		// The login itself worked; a failed write only costs persistence.
		s.log.Warn("persist token failed", zap.Error(err))
	}
	user := res.User
	s.mu.Lock()
	s.token = res.Access
	s.user = &user
	s.mu.Unlock()
	s.log.Info("logged in", zap.String("user", user.Username))
	return nil
}

// Register creates an account. Password confirmation is checked locally
// before any request; success does not authenticate.
func (s *Session) Register(ctx context.Context, username, email, password, confirm string) error {
	if password != confirm {
		return board.ValidationError("Passwords do not match")
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return board.ValidationError("All fields are required")
	}
	return s.api.Register(ctx, username, email, password)
}

// Logout clears the slot and the in-memory session. It has no failure
// mode and is idempotent.
func (s *Session) Logout() {
	_ = s.slot.Clear()
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.log.Info("logged out")
}

// Token returns the current bearer credential, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated profile, nil when logged out.
func (s *Session) User() *board.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether both token and profile are present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}
