package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/go-playground/validator"
)

type EligibilityChecker interface {
	CheckEligibilityByPayer(ctx context.Context, query domain.PatientQuery, payerName string) (*domain.EligibilityResult, error)
}

type CheckHistory interface {
	ListByPatient(ctx context.Context, patientID string, limit int) ([]*domain.CheckRecord, error)
}

// HealthChecker is satisfied by the database pool. Nil means always healthy.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type EligibilityHandler struct {
	checker  EligibilityChecker
	history  CheckHistory
	health   HealthChecker
	validate *validator.Validate
	logger   *slog.Logger
}

func NewEligibilityHandler(
	checker EligibilityChecker,
	history CheckHistory,
	health HealthChecker,
	logger *slog.Logger,
) *EligibilityHandler {
	return &EligibilityHandler{
		checker:  checker,
		history:  history,
		health:   health,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *EligibilityHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /eligibility/check", h.HandleCheck)
	mux.HandleFunc("GET /eligibility/checks", h.HandleListChecks)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}
