// Package common defines shared constants and sentinel errors used across
// the server and client layers of fileshare. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Credential errors.
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorForbidden       = errors.New("forbidden")
	ErrorInvalidRole     = errors.New("invalid role")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Upload errors.
	ErrorNoFile          = errors.New("no file uploaded")
	ErrorPayloadTooLarge = errors.New("file too large")
)
