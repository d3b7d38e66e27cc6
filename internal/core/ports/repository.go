package ports

import (
	"context"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
)

// PayerResolver looks up the clearinghouse-specific configuration of a payer.
type PayerResolver interface {
	FindByName(ctx context.Context, name string) (*domain.PayerConfig, error)
}

// ResultRecorder consumes finished inquiries.
type ResultRecorder interface {
	Record(ctx context.Context, record *domain.CheckRecord) error
}
