package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/ports"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/rules"
	"github.com/DanielPopoola/eligibility-gateway/internal/envelope"
	"github.com/DanielPopoola/eligibility-gateway/internal/x12"
)

// EligibilityService runs one inquiry end to end: build the 270, send it,
// unwrap and read the 271, then apply the enrollment rules.
type EligibilityService struct {
	builder   *x12.Builder
	transport ports.Clearinghouse
	engine    *rules.Engine
	payers    ports.PayerResolver
	recorder  ports.ResultRecorder
	logger    *slog.Logger
}

// NewEligibilityService wires the pipeline. payers and recorder may be nil
// when payer configs are passed inline and results are not persisted.
func NewEligibilityService(
	builder *x12.Builder,
	transport ports.Clearinghouse,
	engine *rules.Engine,
	payers ports.PayerResolver,
	recorder ports.ResultRecorder,
	logger *slog.Logger,
) *EligibilityService {
	return &EligibilityService{
		builder:   builder,
		transport: transport,
		engine:    engine,
		payers:    payers,
		recorder:  recorder,
		logger:    logger,
	}
}

// CheckEligibilityByPayer resolves the payer by name before checking.
func (s *EligibilityService) CheckEligibilityByPayer(ctx context.Context, query domain.PatientQuery, payerName string) (*domain.EligibilityResult, error) {
	if s.payers == nil {
		return nil, domain.NewPayerNotFoundError(payerName)
	}
	payer, err := s.payers.FindByName(ctx, payerName)
	if err != nil {
		return nil, err
	}
	return s.CheckEligibility(ctx, query, *payer)
}

// CheckEligibility returns the enrollment verdict for one patient at one payer.
// A result is also returned alongside an AMBIGUOUS_BENEFIT error.
func (s *EligibilityService) CheckEligibility(ctx context.Context, query domain.PatientQuery, payer domain.PayerConfig) (*domain.EligibilityResult, error) {
	start := time.Now()

	result, err := s.check(ctx, query, payer)
	if result != nil {
		result.Latency = time.Since(start)
		result.CheckedAt = start.UTC()
	}

	logger := s.logger.With(
		"payer", payer.Name,
		"patient_ref", query.ExternalPatientID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		logger.Warn("eligibility check failed",
			"error", err,
			"category", CategorizeError(err),
		)
	} else {
		logger.Info("eligibility check completed",
			"enrolled", result.Enrolled,
			"verified", result.Verified,
			"clearinghouse", result.Clearinghouse,
			"control_number", result.ControlNumber,
		)
	}

	s.record(ctx, domain.NewCheckRecord(query, payer, result, err))

	return result, err
}

func (s *EligibilityService) check(ctx context.Context, query domain.PatientQuery, payer domain.PayerConfig) (*domain.EligibilityResult, error) {
	tx, err := s.builder.Build(query, payer)
	if err != nil {
		return nil, err
	}

	exchange, err := s.transport.Submit(ctx, tx.Payload())
	if err != nil {
		return nil, err
	}

	resp, err := envelope.ExtractPayload(exchange.Body, exchange.ContentType)
	if err != nil {
		return nil, err
	}

	benefits := x12.Extract(resp.Document)
	result, err := s.engine.Evaluate(benefits)
	if result != nil {
		result.ControlNumber = tx.ControlNumber
		result.Clearinghouse = exchange.Clearinghouse
	}
	if err != nil {
		return result, fmt.Errorf("evaluating benefits: %w", err)
	}
	return result, nil
}

// record persists the check. Failures are logged and never reach the caller.
func (s *EligibilityService) record(ctx context.Context, rec *domain.CheckRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.Error("failed to record eligibility check",
			"check_id", rec.ID,
			"error", err,
		)
	}
}
