package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a local snapshot (timeline cache) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrFormat indicates an export file does not start with the expected framing.
	ErrFormat = errors.New("unexpected export format")

	// ErrAlreadyGone indicates the remote item was already deleted or unliked.
	// Callers treat it as success.
	ErrAlreadyGone = errors.New("already gone")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is an application-level error reported by the remote API,
// independent of the transport status.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
	}
	return "api error: " + e.Message
}
