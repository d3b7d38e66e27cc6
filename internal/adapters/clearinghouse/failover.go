package clearinghouse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/ports"
)

// Endpoint is one clearinghouse the failover client can try.
type Endpoint interface {
	ports.Clearinghouse
	Name() string
}

// FailoverClient tries each endpoint in order, once, and stops at the first
// success or at the first error that another clearinghouse would not fix.
type FailoverClient struct {
	endpoints []Endpoint
	logger    *slog.Logger
}

func NewFailoverClient(logger *slog.Logger, endpoints ...Endpoint) *FailoverClient {
	return &FailoverClient{
		endpoints: endpoints,
		logger:    logger,
	}
}

func (f *FailoverClient) Submit(ctx context.Context, payload string) (*ports.Exchange, error) {
	if len(f.endpoints) == 0 {
		return nil, errors.New("no clearinghouse endpoints configured")
	}

	var lastErr error
	attempts := 0
	start := time.Now()

	for i, ep := range f.endpoints {
		select {
		case <-ctx.Done():
			return nil, f.exhausted(ep.Name(), attempts, ctx.Err())
		default:
		}

		attempts++
		exchange, err := ep.Submit(ctx, payload)
		if err == nil {
			exchange.Attempts = attempts
			exchange.Latency = time.Since(start)
			if i > 0 {
				f.logger.Info("clearinghouse failover succeeded",
					"clearinghouse", ep.Name(),
					"attempts", attempts,
					"latency", exchange.Latency,
				)
			}
			return exchange, nil
		}

		lastErr = err

		if ctx.Err() != nil || !shouldFailover(err) {
			return nil, f.exhausted(ep.Name(), attempts, err)
		}

		if i < len(f.endpoints)-1 {
			f.logger.Warn("clearinghouse attempt failed, failing over",
				"clearinghouse", ep.Name(),
				"next", f.endpoints[i+1].Name(),
				"error", err,
			)
		}
	}

	return nil, f.exhausted(f.endpoints[len(f.endpoints)-1].Name(), attempts, lastErr)
}

// exhausted stamps the total attempt count onto the last transport error.
func (f *FailoverClient) exhausted(name string, attempts int, err error) error {
	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		return &domain.TransportError{
			Endpoint:   transportErr.Endpoint,
			StatusCode: transportErr.StatusCode,
			Attempts:   attempts,
			Err:        transportErr.Err,
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &domain.TransportError{Endpoint: name, Attempts: attempts, Err: err}
	}
	return fmt.Errorf("clearinghouse %s: %w", name, err)
}
