package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrConfiguration indicates administrator-authored configuration (such as an
// auto-posting template) is broken. Distinct from user input errors so callers
// can surface and log it at elevated severity.
var ErrConfiguration = errors.New("configuration error")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
