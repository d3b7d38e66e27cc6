package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
)

// ErrorCategory represents the nature of an error for logging and HTTP mapping
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines the error category of a failed check
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		switch code := transportErr.StatusCode; {
		case code == 0, code >= 500:
			return CategoryTransient
		case code == http.StatusUnauthorized, code == http.StatusForbidden:
			return CategoryInfrastructure
		default:
			return CategoryPermanent
		}
	}

	switch domain.ErrorCode(err) {
	case domain.ErrCodeValidation, domain.ErrCodePayerNotFound:
		return CategoryClientError
	case domain.ErrCodeAmbiguousBenefit:
		return CategoryBusinessRule
	case domain.ErrCodeMalformedResponse:
		return CategoryPermanent
	}

	return CategoryInfrastructure
}
