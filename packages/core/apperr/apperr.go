// Package apperr defines the error values the service layer hands back to
// HTTP handlers, so handlers can map them to status codes without matching
// on error strings.
package apperr

import (
	"errors"
	"strings"
)

// ErrNoTournament is returned when a staff account with no pinned tournament
// attempts a tournament-scoped write. Such writes must never fall back to a
// default tournament.
var ErrNoTournament = errors.New("no tournament is assigned to your profile")

// ErrForbidden is returned when the caller is authenticated but not allowed
// to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrNotFound is returned when a record does not exist or sits outside the
// caller's visible set. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")

// FieldError attaches a validation message to a single field. An empty Field
// means the error concerns the record as a whole.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		if fe.Field == "" {
			parts[i] = fe.Message
		} else {
			parts[i] = fe.Field + ": " + fe.Message
		}
	}
	return strings.Join(parts, "; ")
}

// Map renders the errors as a field -> message map for JSON responses.
// Record-level errors end up under the "record" key.
func (e FieldErrors) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, fe := range e {
		key := fe.Field
		if key == "" {
			key = "record"
		}
		m[key] = fe.Message
	}
	return m
}

// Field builds a single field-level validation error.
func Field(field, message string) FieldErrors {
	return FieldErrors{{Field: field, Message: message}}
}

// Record builds a single record-level validation error.
func Record(message string) FieldErrors {
	return FieldErrors{{Message: message}}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}
