package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is the single login failure surfaced to clients,
	// whatever the underlying cause.
	ErrInvalidCredentials = errors.New("invalid email/password combination")
	// ErrUnauthorized is returned by the access gate. Expired and missing
	// sessions are indistinguishable.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionNotFound is returned by session stores for unknown or expired tokens.
	ErrSessionNotFound = errors.New("session not found")
	// ErrMalformedRequest is returned when a form omits a required field entirely.
	ErrMalformedRequest = errors.New("malformed request")
	ErrEmptyIdentity    = errors.New("session identity must not be empty")
)

// FieldError is a single user-facing validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every failing field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid fields: " + strings.Join(names, ", ")
}

// Messages returns the user-facing messages in field order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// StoreError wraps a failure of a persistence backend. It is fatal to the
// request and never retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
