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

// Sentinel errors for the extraction request lifecycle. Collaborator failures
// (source fetch, OCR) terminate the request; hint and field-validation
// failures are recovered inside the engine and never reach the caller.
var (
	ErrUnreachableSource      = errors.New("image source unreachable")
	ErrOCRUnavailable         = errors.New("ocr engine unavailable")
	ErrMalformedHint          = errors.New("llm hint contained no parseable JSON object")
	ErrValidationFailed       = errors.New("field failed format validation")
	ErrEssentialFieldsMissing = errors.New("essential fields missing")
	ErrAlreadyExists          = errors.New("record already exists")
	ErrInvalidInput           = errors.New("invalid input")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
