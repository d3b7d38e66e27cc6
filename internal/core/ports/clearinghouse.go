package ports

import (
	"context"
	"time"
)

// Exchange is the raw outcome of one successful clearinghouse round trip.
// Latency covers every attempt, failed ones included; AttemptLatency is the
// successful attempt alone.
type Exchange struct {
	Body           []byte
	ContentType    string
	Clearinghouse  string
	PayloadID      string
	Latency        time.Duration
	AttemptLatency time.Duration
	Attempts       int
}

// Clearinghouse defines the behavior of the real-time EDI transport.
type Clearinghouse interface {
	Submit(ctx context.Context, payload string) (*Exchange, error)
}
