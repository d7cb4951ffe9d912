// Package validate checks request input against declarative rule sets
// and reports per-field violations in the apperr structured shape.
package validate

import (
	"fmt"
	"regexp"

	"github.com/illodev/technical-test-go/internal/apperr"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Pattern pairs a regular expression with the violation message reported
// when the expectation does not hold.
type Pattern struct {
	Regexp  *regexp.Regexp
	Message string
}

// StringRules declares the constraints applied to a single string field.
type StringRules struct {
	// Required rejects the empty string.
	Required bool

	// MinLen and MaxLen bound the length in bytes. Zero means unbounded.
	MinLen int
	MaxLen int

	// Email requires a plausible email shape.
	Email bool

	// MustMatch lists patterns the value has to satisfy.
	MustMatch []Pattern

	// MustNotMatch lists patterns the value must not satisfy.
	MustNotMatch []Pattern
}

// Violations accumulates field errors across a request's inputs.
type Violations []apperr.FieldError

// Add records a violation for the named field.
func (v *Violations) Add(field, message string) {
	*v = append(*v, apperr.FieldError{Field: field, Message: message})
}

// Err returns a validation error carrying the collected violations,
// or nil when none were recorded.
func (v Violations) Err(message string) error {
	if len(v) == 0 {
		return nil
	}
	return apperr.Validation(message, v)
}

// String applies rules to value and records any violations for field.
func String(v *Violations, field, value string, rules StringRules) {
	if value == "" {
		if rules.Required {
			v.Add(field, "is required")
		}
		return
	}
	if rules.MinLen > 0 && len(value) < rules.MinLen {
		v.Add(field, fmt.Sprintf("must be at least %d characters", rules.MinLen))
	}
	if rules.MaxLen > 0 && len(value) > rules.MaxLen {
		v.Add(field, fmt.Sprintf("must be at most %d characters", rules.MaxLen))
	}
	if rules.Email && !emailPattern.MatchString(value) {
		v.Add(field, "must be a valid email address")
	}
	for _, p := range rules.MustMatch {
		if !p.Regexp.MatchString(value) {
			v.Add(field, p.Message)
		}
	}
	for _, p := range rules.MustNotMatch {
		if p.Regexp.MatchString(value) {
			v.Add(field, p.Message)
		}
	}
}

// Enum records a violation for every element of values that is not a
// member of allowed.
func Enum(v *Violations, field string, values, allowed []string) {
	for _, value := range values {
		ok := false
		for _, candidate := range allowed {
			if value == candidate {
				ok = true
				break
			}
		}
		if !ok {
			v.Add(field, fmt.Sprintf("%q is not a valid value", value))
		}
	}
}
