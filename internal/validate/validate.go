// Package validate checks candidate contact records before they are
// persisted. Validation is an explicit function of the record and the
// current date, so the same rules can be exercised from handlers and from
// tests without a running server.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gitlab.com/akravets/contact-book/internal/errs"
	"gitlab.com/akravets/contact-book/internal/model"
)

const (
	maxNameLength = 15
	maxInfoLength = 250
)

// phonePattern accepts the following layouts, with an optional country code
// of one or two digits:
//
//	123-456-7890
//	(123) 456-7890
//	123 456 7890
//	123.456.7890
//	+12 (345) 678-9012
var phonePattern = regexp.MustCompile(`^(\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}$`)

// checker provides the email syntax rule. The instance is stateless and
// safe for concurrent use.
var checker = validator.New()

// FieldError describes a single violated rule on a named field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) String() string {
	return e.Field + " " + e.Reason
}

// Contact checks every field-level rule independently and returns one
// FieldError per violation. An empty result means the record is accepted.
// The phone number is stored in whatever accepted layout was submitted; no
// canonicalization happens here.
func Contact(c model.Contact, today model.Date) []FieldError {
	var violations []FieldError

	violations = append(violations, checkText("first_name", c.FirstName, maxNameLength)...)
	violations = append(violations, checkText("last_name", c.LastName, maxNameLength)...)

	if c.Email == "" {
		violations = append(violations, FieldError{"email", "must not be empty"})
	} else if checker.Var(c.Email, "email") != nil {
		violations = append(violations, FieldError{"email", "is not a valid email address"})
	}

	if c.ContactNumber == "" {
		violations = append(violations, FieldError{"contact_number", "must not be empty"})
	} else if !phonePattern.MatchString(c.ContactNumber) {
		violations = append(violations, FieldError{"contact_number", "is not a valid phone number"})
	}

	if c.BirthDate.IsZero() {
		violations = append(violations, FieldError{"birth_date", "must not be empty"})
	} else if c.BirthDate.After(today) {
		violations = append(violations, FieldError{"birth_date", "must not be in the future"})
	}

	violations = append(violations, checkText("additional_information", c.AdditionalInformation, maxInfoLength)...)

	return violations
}

// ContactErr runs Contact and folds the violations into a single EINVALID
// error suitable for returning to the HTTP layer.
func ContactErr(c model.Contact, today model.Date) error {
	violations := Contact(c, today)
	if len(violations) == 0 {
		return nil
	}
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return errs.Errorf(errs.EINVALID, "validation failed: %s", strings.Join(parts, "; "))
}

func checkText(field, value string, max int) []FieldError {
	if value == "" {
		return []FieldError{{field, "must not be empty"}}
	}
	if utf8.RuneCountInString(value) > max {
		return []FieldError{{field, "is too long"}}
	}
	return nil
}
