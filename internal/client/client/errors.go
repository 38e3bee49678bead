package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the session is missing or was rejected. A 403
	// for an invalid or expired token counts too; other 403s are ErrForbidden.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// APIError carries the server's status and {"message"} body. It unwraps to
// one of the sentinels above where one applies.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }
