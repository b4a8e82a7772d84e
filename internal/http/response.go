package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"sumstra/internal/core"
	"sumstra/internal/records"
	"sumstra/internal/session"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Error: message})
}

var validationErrors = []error{
	core.ErrAmountOutOfRange,
	core.ErrDescriptionEmpty,
	core.ErrDescriptionTooLong,
	core.ErrInvalidCategory,
	core.ErrZeroDate,
	core.ErrEmptyUserID,
	core.ErrEmptyUpdate,
}

// statusFromError maps store and repository failures onto status codes.
// Anything that is not a session, not-found or validation problem is a
// backend failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, session.ErrNoSession):
		return http.StatusUnauthorized
	case records.IsNotFound(err):
		return http.StatusNotFound
	default:
		for _, verr := range validationErrors {
			if errors.Is(err, verr) {
				return http.StatusBadRequest
			}
		}
		return http.StatusBadGateway
	}
}

// writeStoreError reports the store's most recent error for a failed
// mutation.
func writeStoreError(w http.ResponseWriter, err error) {
	if err == nil {
		writeError(w, http.StatusInternalServerError, "operation failed")
		return
	}
	writeError(w, statusFromError(err), err.Error())
}
