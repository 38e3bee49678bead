// Package client talks to the fileshare HTTP API on behalf of the CLI.
//
// Client is the transport-agnostic contract; HTTPClient implements it over
// net/http and keeps the session token for subsequent calls. Server errors
// come back as *APIError and match ErrUnauthorized, ErrForbidden or
// ErrNotFound with errors.Is; connection failures match ErrUnavailable.
package client
