package apperrors

import (
	"errors"
	"fmt"
)

// AppError wraps a lower-level error with an HTTP-ish status code and a
// message safe to log. Repositories use it to attach context to database
// failures without leaking driver details to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// Is lets AppError participate in errors.Is chains through its wrapped error.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
