// Package creds persists the bearer credential across restarts. One
// durable slot: ~/.config/jobdeck/token.json.
package creds

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// defaultTTL is assumed when the token carries no exp claim.
const defaultTTL = 24 * time.Hour

// Slot is a single durable token location.
type Slot struct {
	path string
}

// NewSlot returns a slot backed by the given file path.
func NewSlot(path string) *Slot {
	return &Slot{path: path}
}

// Save writes the token with its expiry. The access token is a JWT on the
// reference deployment; the exp claim is read without validation so an
// expired token can be refused at load time.
func (s *Slot) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: token, ExpiresAt: expiry(token)})
}

// Load returns the persisted token. A missing file, unreadable content,
// or an expired token all come back as an error; callers treat every
// failure as "logged out".
func (s *Slot) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", errors.New("no valid token (login required)")
	}
	return tf.AccessToken, nil
}

// Clear removes the slot. Removing an absent slot is not an error.
func (s *Slot) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func expiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(defaultTTL)
}
