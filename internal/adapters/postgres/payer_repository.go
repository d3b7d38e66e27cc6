package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PayerRepository stores per-payer inquiry requirements.
type PayerRepository struct {
	q Executor
}

func NewPayerRepository(db *DB) *PayerRepository {
	return &PayerRepository{q: db.Pool}
}

// FindByName looks a payer up case-insensitively.
func (r *PayerRepository) FindByName(ctx context.Context, name string) (*domain.PayerConfig, error) {
	query := `
			SELECT name, payer_code, required_fields, optional_fields, date_format, gender_required
			FROM payers
			WHERE LOWER(name) = LOWER($1)
			`

	var p domain.PayerConfig
	err := r.q.QueryRow(ctx, query, name).Scan(
		&p.Name,
		&p.PayerCode,
		&p.RequiredFields,
		&p.OptionalFields,
		&p.DateFormat,
		&p.GenderRequired,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPayerNotFoundError(name)
		}
		return nil, fmt.Errorf("failed to find payer: %w", err)
	}
	return &p, nil
}

// Upsert creates or replaces a payer configuration.
func (r *PayerRepository) Upsert(ctx context.Context, p *domain.PayerConfig) error {
	query := `
			INSERT INTO payers (name, payer_code, required_fields, optional_fields, date_format, gender_required)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO UPDATE SET
				payer_code = EXCLUDED.payer_code,
				required_fields = EXCLUDED.required_fields,
				optional_fields = EXCLUDED.optional_fields,
				date_format = EXCLUDED.date_format,
				gender_required = EXCLUDED.gender_required,
				updated_at = NOW()
			`

	_, err := r.q.Exec(ctx, query,
		p.Name,
		p.PayerCode,
		nonNil(p.RequiredFields),
		nonNil(p.OptionalFields),
		p.ServiceDateQualifier(),
		p.GenderRequired,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewValidationError("name", fmt.Sprintf("payer %q differs from an existing payer only by case", p.Name))
		}
		return fmt.Errorf("failed to upsert payer: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
