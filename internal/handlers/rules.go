package handlers

import (
	"regexp"

	"github.com/illodev/technical-test-go/internal/validate"
)

// Input constraints, declared once as data and applied by the request
// parsers below. Matches the documented account and post rules.
var (
	emailRules = validate.StringRules{Required: true, Email: true}

	nameRules = validate.StringRules{MinLen: 1}

	passwordRules = validate.StringRules{
		Required: true,
		MinLen:   8,
		MaxLen:   64,
		MustMatch: []validate.Pattern{
			{Regexp: regexp.MustCompile(`[a-z]`), Message: "must contain at least one lowercase letter"},
			{Regexp: regexp.MustCompile(`[A-Z]`), Message: "must contain at least one uppercase letter"},
			{Regexp: regexp.MustCompile(`[0-9]`), Message: "must contain at least one digit"},
		},
		MustNotMatch: []validate.Pattern{
			{Regexp: regexp.MustCompile(`\s`), Message: "must not contain whitespace"},
		},
	}

	titleRules   = validate.StringRules{Required: true, MinLen: 1}
	contentRules = validate.StringRules{Required: true, MinLen: 1}
)

const validationFailedMessage = "Validation failed"
