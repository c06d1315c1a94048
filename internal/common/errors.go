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

// Error codes surfaced to users and logs.
const (
	CodeInput      = "INPUT_ERROR"
	CodeExtraction = "EXTRACTION_ERROR"
	CodeService    = "SERVICE_ERROR"
	CodeDatabase   = "DATABASE_ERROR"
)

// Common application errors
var (
	ErrInput        = errors.New("invalid input")
	ErrExtraction   = errors.New("text extraction failed")
	ErrService      = errors.New("generative service failed")
	ErrInvalidInput = errors.New("invalid configuration")
	ErrDatabase     = errors.New("database error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InputError reports a missing file, bad path or unsupported upload. It aborts
// only the operation that received the input.
func InputError(message string, cause error) error {
	return NewAppError(CodeInput, message, joinCause(ErrInput, cause))
}

// ExtractionError reports a document that could not be turned into text.
func ExtractionError(path string, cause error) error {
	return NewAppError(CodeExtraction, path, joinCause(ErrExtraction, cause))
}

// ServiceError reports a failed call to the generative-text provider.
func ServiceError(provider string, cause error) error {
	return NewAppError(CodeService, provider, joinCause(ErrService, cause))
}

// DatabaseError reports a record store failure.
func DatabaseError(message string, cause error) error {
	return NewAppError(CodeDatabase, message, joinCause(ErrDatabase, cause))
}

func joinCause(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ErrorCode returns the AppError code anywhere in err's chain, or "".
func ErrorCode(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
