// Package apperror holds the error taxonomy shared by services, repositories and the HTTP adapter.
package apperror

import (
	"errors"
	"fmt"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeDangling   = "DANGLING_REFERENCE"
	CodeInternal   = "INTERNAL_ERROR"
)

// AppError is an error carrying a machine readable code and, for validation
// failures, the form field it belongs to.
type AppError struct {
	Code    string
	Field   string
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

// NewValidationError reports an invalid or missing form field.
func NewValidationError(field, message string) *AppError {
	return &AppError{Code: CodeValidation, Field: field, Message: message}
}

// NewForbiddenError reports that the acting user may not touch the resource.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string, key interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, key),
	}
}

// NewConflictError wraps a uniqueness breach reported by the store.
func NewConflictError(message string, err error) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Err: err}
}

// NewDanglingReferenceError wraps a foreign key breach: the row points at
// something that no longer exists.
func NewDanglingReferenceError(message string, err error) *AppError {
	return &AppError{Code: CodeDangling, Message: message, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal server error", Err: err}
}

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func IsValidation(err error) bool { return err != nil && CodeOf(err) == CodeValidation }
func IsForbidden(err error) bool  { return err != nil && CodeOf(err) == CodeForbidden }
func IsNotFound(err error) bool   { return err != nil && CodeOf(err) == CodeNotFound }
func IsConflict(err error) bool   { return err != nil && CodeOf(err) == CodeConflict }
func IsDangling(err error) bool   { return err != nil && CodeOf(err) == CodeDangling }
