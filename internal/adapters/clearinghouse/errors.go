package clearinghouse

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
)

// StatusError is a non-2xx reply from one endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return "unexpected status " + http.StatusText(e.StatusCode) + ": " + e.Body
}

// ErrAttemptTimeout marks an attempt cut short by the per-attempt deadline.
var ErrAttemptTimeout = errors.New("attempt timed out")

// shouldFailover reports whether the next endpoint may be tried after err.
// Connection failures, attempt timeouts, auth rejections and 5xx move on;
// anything else is final.
func shouldFailover(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var transportErr *domain.TransportError
	if !errors.As(err, &transportErr) {
		return false
	}

	switch code := transportErr.StatusCode; {
	case code == 0:
		return true
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return true
	case code >= 500:
		return true
	}
	return false
}
