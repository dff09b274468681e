// Package apperror holds the error kinds the HTTP layer maps to responses.
package apperror

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a username, slug or id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a mutation the actor is not allowed to perform.
	// Handlers treat it as a silent no-op.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials is returned by login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries per-field messages for form redisplay.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{Fields: map[string]string{}}
	v.Add(field, message)
	return v
}

// Add records a message for field, keeping the first message per field.
func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = map[string]string{}
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = message
	}
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
