// Package apperr defines the failure taxonomy shared by services and
// handlers. Services return typed errors instead of raising ad-hoc ones,
// and the HTTP layer maps each kind to a fixed response shape.
package apperr

import "errors"

// Kind classifies a failure for response mapping.
type Kind int

const (
	// KindDomain is a generic business-rule violation (HTTP 400).
	KindDomain Kind = iota

	// KindValidation is a structured per-field input failure (HTTP 422).
	KindValidation

	// KindUnauthorized is an authentication failure (HTTP 401).
	KindUnauthorized

	// KindForbidden is an authorization failure (HTTP 403).
	KindForbidden

	// KindNotFound indicates a missing entity (HTTP 404).
	KindNotFound
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified failure. Fields is populated only for
// validation failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

// Domain constructs a generic business-rule failure.
func Domain(message string) *Error {
	return &Error{Kind: KindDomain, Message: message}
}

// Validation constructs a structured input failure.
func Validation(message string, fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Unauthorized constructs an authentication failure.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden constructs an authorization failure.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound constructs a missing-entity failure.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// From extracts the typed error from err, if any.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNotFound reports whether err is a missing-entity failure.
func IsNotFound(err error) bool {
	if e, ok := From(err); ok {
		return e.Kind == KindNotFound
	}
	return false
}
