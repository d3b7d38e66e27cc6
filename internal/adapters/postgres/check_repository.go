package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

const defaultListLimit = 20

// CheckRepository keeps an audit trail of eligibility checks.
type CheckRepository struct {
	q Executor
}

func NewCheckRepository(db *DB) *CheckRepository {
	return &CheckRepository{q: db.Pool}
}

func (r *CheckRepository) Record(ctx context.Context, rec *domain.CheckRecord) error {
	query := `INSERT INTO eligibility_checks (
				id, external_patient_id, payer_name, control_number, clearinghouse,
				enrolled, verified, manual_review, result,
				error_code, error_message, latency_ms, checked_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var (
		enrolled, verified, manualReview *bool
		result                           []byte
	)
	if rec.Result != nil {
		enrolled = &rec.Result.Enrolled
		verified = &rec.Result.Verified
		manualReview = &rec.Result.ManualReview

		var err error
		result, err = json.Marshal(rec.Result)
		if err != nil {
			return fmt.Errorf("error marshalling result: %w", err)
		}
	}

	_, err := r.q.Exec(ctx, query,
		rec.ID,
		rec.ExternalPatientID,
		rec.PayerName,
		rec.ControlNumber,
		rec.Clearinghouse,
		enrolled,
		verified,
		manualReview,
		result,
		rec.ErrorCode,
		rec.ErrorMessage,
		rec.Latency.Milliseconds(),
		rec.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record eligibility check: %w", err)
	}
	return nil
}

// ListByPatient returns the most recent checks for a caller patient reference.
func (r *CheckRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]*domain.CheckRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
			SELECT id, external_patient_id, payer_name, control_number, clearinghouse,
				result, error_code, error_message, latency_ms, checked_at
			FROM eligibility_checks
			WHERE external_patient_id = $1
			ORDER BY checked_at DESC
			LIMIT $2
			`

	rows, err := r.q.Query(ctx, query, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("query checks by patient: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.CheckRecord, error) {
		var (
			rec       domain.CheckRecord
			result    []byte
			latencyMs int64
		)
		err := row.Scan(
			&rec.ID,
			&rec.ExternalPatientID,
			&rec.PayerName,
			&rec.ControlNumber,
			&rec.Clearinghouse,
			&result,
			&rec.ErrorCode,
			&rec.ErrorMessage,
			&latencyMs,
			&rec.CheckedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Latency = time.Duration(latencyMs) * time.Millisecond
		if len(result) > 0 {
			rec.Result = &domain.EligibilityResult{}
			if err := json.Unmarshal(result, rec.Result); err != nil {
				return nil, fmt.Errorf("error unmarshalling result: %w", err)
			}
		}
		return &rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning rows: %w", err)
	}
	return records, nil
}
