package board

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure so the UI can decide what to show
// and whether session state has to change.
type Kind int

const (
	// KindValidation is a local check that failed before any request.
	KindValidation Kind = iota
	// KindAuth covers 401/403 responses and invalid credentials.
	KindAuth
	// KindNetwork covers transport-level failures (service unreachable).
	KindNetwork
	// KindServer covers other 4xx/5xx responses.
	KindServer
)

// Error is the failure type every client call returns. It is never fatal
// to the caller; the presentation layer converts it to user-visible text.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, zero for local and transport errors
	Detail string // server-provided message when decodable
	cause  error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.cause != nil:
		return e.cause.Error()
	default:
		return fmt.Sprintf("request failed (status %d)", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Message returns the server detail when present, otherwise the given
// fallback. Screens pass the generic wording they would show anyway.
func (e *Error) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

// ValidationError builds a local validation failure.
func ValidationError(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

// AsError reports the *Error inside err, or wraps err as a network
// failure so callers always see a classified error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	return &Error{Kind: KindNetwork, cause: err}
}
