package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/illodev/technical-test-go/internal/apperr"
)

// apiError is the normalized error payload: a numeric status, the HTTP
// reason phrase, a human-readable message, and per-field violations for
// validation failures.
type apiError struct {
	StatusCode int                `json:"statusCode"`
	Error      string             `json:"error"`
	Message    string             `json:"message"`
	Errors     []apperr.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeNotFound sends the handler-supplied plain message. Missing
// entities deliberately skip the structured error shape.
func writeNotFound(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(message))
}

// writeAPIError maps any failure to the fixed response table. A failure
// carrying field errors is always a 422 regardless of its kind or
// message; anything unrecognized becomes a generic 400 so internal
// detail never reaches the client.
func writeAPIError(w http.ResponseWriter, err error) {
	e, ok := apperr.From(err)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{
			StatusCode: http.StatusBadRequest,
			Error:      "Bad Request",
			Message:    "An error occurred",
		})
		return
	}

	if len(e.Fields) > 0 || e.Kind == apperr.KindValidation {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{
			StatusCode: http.StatusUnprocessableEntity,
			Error:      "Unprocessable Entity",
			Message:    e.Message,
			Errors:     e.Fields,
		})
		return
	}

	switch e.Kind {
	case apperr.KindUnauthorized:
		writeJSON(w, http.StatusUnauthorized, apiError{
			StatusCode: http.StatusUnauthorized,
			Error:      "Unauthorized",
			Message:    e.Message,
		})
	case apperr.KindForbidden:
		writeJSON(w, http.StatusForbidden, apiError{
			StatusCode: http.StatusForbidden,
			Error:      "Forbidden",
			Message:    e.Message,
		})
	case apperr.KindNotFound:
		writeNotFound(w, e.Message)
	default:
		writeJSON(w, http.StatusBadRequest, apiError{
			StatusCode: http.StatusBadRequest,
			Error:      "Bad Request",
			Message:    e.Message,
		})
	}
}
