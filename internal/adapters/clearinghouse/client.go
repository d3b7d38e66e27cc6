package clearinghouse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/config"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/ports"
	"github.com/DanielPopoola/eligibility-gateway/internal/envelope"
)

// maxResponseBytes bounds how much of a reply is read into memory.
const maxResponseBytes = 10 << 20

// HTTPClient posts one enveloped inquiry to a single clearinghouse endpoint.
type HTTPClient struct {
	name           string
	endpoint       string
	adapter        envelope.Adapter
	attemptTimeout time.Duration
	httpClient     *http.Client
}

func NewHTTPClient(cfg config.ClearinghouseConfig, transport config.TransportConfig) (*HTTPClient, error) {
	adapter, err := envelope.New(cfg.Format, envelope.Credentials{
		Username:   cfg.Username,
		Password:   cfg.Password,
		SenderID:   cfg.SenderID,
		ReceiverID: cfg.ReceiverID,
	})
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		name:           cfg.Name,
		endpoint:       cfg.Endpoint,
		adapter:        adapter,
		attemptTimeout: transport.AttemptTimeout,
		httpClient:     &http.Client{},
	}, nil
}

func (c *HTTPClient) Name() string {
	return c.name
}

// Submit makes exactly one POST, bounded by the per-attempt timeout.
func (c *HTTPClient) Submit(ctx context.Context, payload string) (*ports.Exchange, error) {
	encoded, err := c.adapter.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding envelope: %w", err)
	}

	attemptCtx := ctx
	if c.attemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(encoded.Body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", encoded.ContentType)
	for k, v := range encoded.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.attemptError(ctx, attemptCtx, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.attemptError(ctx, attemptCtx, 0, fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.attemptError(ctx, attemptCtx, resp.StatusCode, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), 512),
		})
	}

	elapsed := time.Since(start)
	return &ports.Exchange{
		Body:           body,
		ContentType:    resp.Header.Get("Content-Type"),
		Clearinghouse:  c.name,
		PayloadID:      encoded.PayloadID,
		Latency:        elapsed,
		AttemptLatency: elapsed,
		Attempts:       1,
	}, nil
}

func (c *HTTPClient) attemptError(ctx, attemptCtx context.Context, status int, err error) error {
	switch {
	case ctx.Err() != nil:
		err = ctx.Err()
	case errors.Is(attemptCtx.Err(), context.DeadlineExceeded):
		err = fmt.Errorf("%w after %s: %w", ErrAttemptTimeout, c.attemptTimeout, attemptCtx.Err())
	}
	return &domain.TransportError{
		Endpoint:   c.name,
		StatusCode: status,
		Attempts:   1,
		Err:        err,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
