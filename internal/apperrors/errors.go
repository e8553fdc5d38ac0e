// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks lookups that matched no record. Handlers map it to 404.
var ErrNotFound = errors.New("record not found")

// ErrInvalidCredentials marks a failed admin login. It is deliberately not an
// HTTP error: the login endpoint answers 200 with success=false, which is the
// contract the admin UI depends on.
var ErrInvalidCredentials = errors.New("invalid credentials")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the set of constraint violations for a write.
// Handlers map it to 400.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ExternalError wraps a failure from the managed backup service or another
// third-party dependency. Handlers map it to 500; callers never retry.
type ExternalError struct {
	Op  string
	Err error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

func AsExternal(err error) (*ExternalError, bool) {
	var xerr *ExternalError
	ok := errors.As(err, &xerr)
	return xerr, ok
}
