package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure taxonomy. Document and inference failures abort an extraction and
// are surfaced verbatim; they are never converted into an empty record.
// DuplicateInvoice is rejected before any row is written and is reported
// distinctly from generic storage errors.
var (
	ErrDocumentUnreadable   = errors.New("document unreadable")
	ErrInferenceUnavailable = errors.New("inference unavailable")
	ErrDuplicateInvoice     = errors.New("duplicate invoice")
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDatabase             = errors.New("database error")
)

// NewAppError constructs an AppError with the given code, message and cause.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapError annotates err with a message, preserving the chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
