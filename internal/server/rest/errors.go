package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/fileshare/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends the {"message": ...} error body used by every endpoint.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// statusFor maps service sentinels to a status and a short public message.
// Anything unrecognised is a 500 with no detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorNoFile):
		return http.StatusBadRequest, "No file uploaded"
	case errors.Is(err, common.ErrorPayloadTooLarge):
		return http.StatusBadRequest, "File too large"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, common.ErrorUnauthenticated):
		return http.StatusUnauthorized, "Access token required"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusForbidden, common.InvalidTokenMessage
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "Admin access required"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "File not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	writeError(w, status, msg)
}
