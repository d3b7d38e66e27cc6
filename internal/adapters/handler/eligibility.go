package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const maxListLimit = 100

type CheckRequest struct {
	PayerName    string              `json:"payer_name" validate:"required,max=120" example:"State Medicaid"`
	FirstName    string              `json:"first_name" validate:"max=60" example:"Jane"`
	LastName     string              `json:"last_name" validate:"max=60" example:"Doe"`
	MiddleName   string              `json:"middle_name,omitempty" validate:"max=25"`
	DateOfBirth  openapi_types.Date  `json:"date_of_birth" example:"1985-03-14"`
	MemberID     string              `json:"member_id,omitempty" validate:"omitempty,max=80" example:"M123456"`
	SSN          string              `json:"ssn,omitempty" validate:"omitempty,numeric,min=4,max=9"`
	Gender       string              `json:"gender,omitempty" validate:"omitempty,oneof=M F U"`
	ServiceDate  *openapi_types.Date `json:"service_date,omitempty"`
	ServiceTypes []string            `json:"service_types,omitempty" validate:"omitempty,max=10,dive,alphanum,max=2"`
	PatientRef   string              `json:"patient_ref,omitempty" validate:"omitempty,max=64"`
}

func (req CheckRequest) toQuery() domain.PatientQuery {
	q := domain.PatientQuery{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		MiddleName:        req.MiddleName,
		DateOfBirth:       req.DateOfBirth.Time,
		MemberID:          req.MemberID,
		SSN:               req.SSN,
		Gender:            req.Gender,
		ServiceTypes:      req.ServiceTypes,
		ExternalPatientID: req.PatientRef,
	}
	if req.ServiceDate != nil {
		q.ServiceDate = req.ServiceDate.Time
	}
	return q
}

// HandleCheck runs a real-time eligibility inquiry
// @Summary      Check eligibility
// @Description  Sends a 270 to the configured clearinghouse and applies the enrollment rules to the 271.
// @Tags         eligibility
// @Accept       json
// @Produce      json
// @Param        request  body      CheckRequest  true  "Patient and payer"
// @Success      200      {object}  APIResponse   "Eligibility verdict"
// @Failure      400      {object}  APIResponse   "Invalid request parameters"
// @Failure      404      {object}  APIResponse   "Payer not configured"
// @Failure      422      {object}  APIResponse   "Ambiguous benefits, verify manually"
// @Failure      502      {object}  APIResponse   "Clearinghouse unavailable or malformed reply"
// @Failure      504      {object}  APIResponse   "Clearinghouse timed out"
// @Router       /eligibility/check [post]
func (h *EligibilityHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, domain.NewValidationError("body", err.Error()))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, domain.NewValidationError("request", err.Error()))
		return
	}

	result, err := h.checker.CheckEligibilityByPayer(r.Context(), req.toQuery(), req.PayerName)
	if err != nil {
		if result != nil && domain.IsErrorCode(err, domain.ErrCodeAmbiguousBenefit) {
			status, code, message := statusFor(err)
			respondWithPartial(w, status, result, &APIError{Code: code, Message: message})
			return
		}
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type CheckSummary struct {
	ID            string                    `json:"id"`
	PayerName     string                    `json:"payer_name"`
	ControlNumber string                    `json:"control_number,omitempty"`
	Clearinghouse string                    `json:"clearinghouse,omitempty"`
	Result        *domain.EligibilityResult `json:"result,omitempty"`
	ErrorCode     string                    `json:"error_code,omitempty"`
	ErrorMessage  string                    `json:"error_message,omitempty"`
	LatencyMs     int64                     `json:"latency_ms"`
	CheckedAt     time.Time                 `json:"checked_at"`
}

// HandleListChecks returns recent checks for a patient reference
// @Summary      List checks
// @Tags         eligibility
// @Produce      json
// @Param        patient_id  query     string  true   "Caller patient reference"
// @Param        limit       query     int     false  "Maximum rows (1-100)"
// @Success      200         {object}  APIResponse
// @Failure      400         {object}  APIResponse
// @Router       /eligibility/checks [get]
func (h *EligibilityHandler) HandleListChecks(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")
	if patientID == "" {
		respondWithError(w, domain.NewValidationError("patient_id", "is required"))
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			respondWithError(w, domain.NewValidationError("limit", "must be between 1 and 100"))
			return
		}
		limit = n
	}

	if h.history == nil {
		respondWithError(w, errors.New("check history is not configured"))
		return
	}

	records, err := h.history.ListByPatient(r.Context(), patientID, limit)
	if err != nil {
		h.logger.Error("failed to list checks", "patient_ref", patientID, "error", err)
		respondWithError(w, err)
		return
	}

	out := make([]CheckSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, CheckSummary{
			ID:            rec.ID.String(),
			PayerName:     rec.PayerName,
			ControlNumber: rec.ControlNumber,
			Clearinghouse: rec.Clearinghouse,
			Result:        rec.Result,
			ErrorCode:     rec.ErrorCode,
			ErrorMessage:  rec.ErrorMessage,
			LatencyMs:     rec.Latency.Milliseconds(),
			CheckedAt:     rec.CheckedAt,
		})
	}

	respondWithJSON(w, http.StatusOK, out)
}

// HandleHealth reports liveness and database reachability
// @Summary      Health check
// @Tags         ops
// @Produce      json
// @Success      200  {object}  APIResponse
// @Failure      500  {object}  APIResponse
// @Router       /healthz [get]
func (h *EligibilityHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			respondWithError(w, err)
			return
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
