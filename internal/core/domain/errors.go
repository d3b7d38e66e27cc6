package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeTransport         = "TRANSPORT_ERROR"
	ErrCodeMalformedResponse = "MALFORMED_RESPONSE"
	ErrCodeAmbiguousBenefit  = "AMBIGUOUS_BENEFIT"
	ErrCodePayerNotFound     = "PAYER_NOT_FOUND"
)

func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

func NewMalformedResponseError(message string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedResponse,
		Message: message,
		Err:     err,
	}
}

func NewAmbiguousBenefitError(detail string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAmbiguousBenefit,
		Message: "verify manually: " + detail,
	}
}

func NewPayerNotFoundError(name string) *DomainError {
	return &DomainError{
		Code:    ErrCodePayerNotFound,
		Message: fmt.Sprintf("payer %q is not configured", name),
	}
}

// TransportError is returned once every configured clearinghouse endpoint
// has been tried. It describes the last attempt.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("clearinghouse %s failed after %d attempt(s) (status: %d): %v", e.Endpoint, e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("clearinghouse %s failed after %d attempt(s): %v", e.Endpoint, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// ErrorCode returns the code carried by err, or "" for unclassified errors.
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return ErrCodeTransport
	}
	return ""
}
