package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	checkFn func(ctx context.Context, query domain.PatientQuery, payerName string) (*domain.EligibilityResult, error)
}

func (m *mockChecker) CheckEligibilityByPayer(ctx context.Context, query domain.PatientQuery, payerName string) (*domain.EligibilityResult, error) {
	return m.checkFn(ctx, query, payerName)
}

type mockHistory struct {
	listFn func(ctx context.Context, patientID string, limit int) ([]*domain.CheckRecord, error)
}

func (m *mockHistory) ListByPatient(ctx context.Context, patientID string, limit int) ([]*domain.CheckRecord, error) {
	return m.listFn(ctx, patientID, limit)
}

type mockHealth struct{ err error }

func (m mockHealth) Ping(context.Context) error { return m.err }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) (APIResponse, map[string]any) {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data, _ := resp.Data.(map[string]any)
	return resp, data
}

func checkBody(payer string) *bytes.Buffer {
	return bytes.NewBufferString(fmt.Sprintf(`{
		"payer_name": %q,
		"first_name": "Jane",
		"last_name": "Doe",
		"date_of_birth": "1985-03-14",
		"member_id": "M123456",
		"service_date": "2026-10-01",
		"service_types": ["MH"],
		"patient_ref": "pt-42"
	}`, payer))
}

func TestHandleCheck_Success(t *testing.T) {
	var got domain.PatientQuery
	checker := &mockChecker{
		checkFn: func(_ context.Context, q domain.PatientQuery, payerName string) (*domain.EligibilityResult, error) {
			got = q
			assert.Equal(t, "State Medicaid", payerName)
			return &domain.EligibilityResult{Enrolled: true, Verified: true, Program: "FFS Behavioral Health"}, nil
		},
	}
	h := NewEligibilityHandler(checker, nil, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/eligibility/check", checkBody("State Medicaid"))
	rr := httptest.NewRecorder()
	h.HandleCheck(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp, data := decode(t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, true, data["enrolled"])
	assert.Equal(t, "FFS Behavioral Health", data["program"])

	assert.Equal(t, time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC), got.DateOfBirth)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), got.ServiceDate)
	assert.Equal(t, []string{"MH"}, got.ServiceTypes)
	assert.Equal(t, "pt-42", got.ExternalPatientID)
}

func TestHandleCheck_RejectsBadInput(t *testing.T) {
	checker := &mockChecker{
		checkFn: func(context.Context, domain.PatientQuery, string) (*domain.EligibilityResult, error) {
			t.Fatal("checker must not be called")
			return nil, nil
		},
	}
	h := NewEligibilityHandler(checker, nil, nil, testLogger())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"payer_name":`},
		{"missing payer", `{"first_name":"Jane","date_of_birth":"1985-03-14"}`},
		{"bad gender", `{"payer_name":"X","date_of_birth":"1985-03-14","gender":"Q"}`},
		{"non numeric ssn", `{"payer_name":"X","date_of_birth":"1985-03-14","ssn":"12-34"}`},
		{"bad date", `{"payer_name":"X","date_of_birth":"03/14/1985"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.HandleCheck(rr, httptest.NewRequest(http.MethodPost, "/eligibility/check", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			resp, _ := decode(t, rr)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, domain.ErrCodeValidation, resp.Error.Code)
		})
	}
}

func TestHandleCheck_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("dob", "date of birth is required"), http.StatusBadRequest, domain.ErrCodeValidation},
		{"unknown payer", domain.NewPayerNotFoundError("Nope"), http.StatusNotFound, domain.ErrCodePayerNotFound},
		{"malformed reply", domain.NewMalformedResponseError("functional acknowledgment only", nil), http.StatusBadGateway, domain.ErrCodeMalformedResponse},
		{"transport", &domain.TransportError{Endpoint: "secondary", Attempts: 2, Err: errors.New("connection refused")}, http.StatusBadGateway, domain.ErrCodeTransport},
		{"transport timeout", &domain.TransportError{Endpoint: "secondary", Attempts: 2, Err: fmt.Errorf("attempt timed out: %w", context.DeadlineExceeded)}, http.StatusGatewayTimeout, domain.ErrCodeTransport},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &mockChecker{
				checkFn: func(context.Context, domain.PatientQuery, string) (*domain.EligibilityResult, error) {
					return nil, tt.err
				},
			}
			h := NewEligibilityHandler(checker, nil, nil, testLogger())

			rr := httptest.NewRecorder()
			h.HandleCheck(rr, httptest.NewRequest(http.MethodPost, "/eligibility/check", checkBody("State Medicaid")))

			assert.Equal(t, tt.status, rr.Code)
			resp, _ := decode(t, rr)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestHandleCheck_AmbiguousReturnsResultAndError(t *testing.T) {
	checker := &mockChecker{
		checkFn: func(context.Context, domain.PatientQuery, string) (*domain.EligibilityResult, error) {
			return &domain.EligibilityResult{ManualReview: true, Reason: "conflicting benefits"},
				domain.NewAmbiguousBenefitError("conflicting benefits")
		},
	}
	h := NewEligibilityHandler(checker, nil, nil, testLogger())

	rr := httptest.NewRecorder()
	h.HandleCheck(rr, httptest.NewRequest(http.MethodPost, "/eligibility/check", checkBody("State Medicaid")))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	resp, data := decode(t, rr)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.ErrCodeAmbiguousBenefit, resp.Error.Code)
	assert.Equal(t, true, data["manual_review"])
}

func TestHandleListChecks(t *testing.T) {
	id := uuid.New()
	history := &mockHistory{
		listFn: func(_ context.Context, patientID string, limit int) ([]*domain.CheckRecord, error) {
			assert.Equal(t, "pt-42", patientID)
			assert.Equal(t, 5, limit)
			return []*domain.CheckRecord{{
				ID:            id,
				PayerName:     "State Medicaid",
				ControlNumber: "000000123",
				Result:        &domain.EligibilityResult{Enrolled: true},
				Latency:       1500 * time.Millisecond,
			}}, nil
		},
	}
	h := NewEligibilityHandler(nil, history, nil, testLogger())

	rr := httptest.NewRecorder()
	h.HandleListChecks(rr, httptest.NewRequest(http.MethodGet, "/eligibility/checks?patient_id=pt-42&limit=5", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success bool           `json:"success"`
		Data    []CheckSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, id.String(), resp.Data[0].ID)
	assert.Equal(t, int64(1500), resp.Data[0].LatencyMs)
	assert.True(t, resp.Data[0].Result.Enrolled)
}

func TestHandleListChecks_InvalidQuery(t *testing.T) {
	h := NewEligibilityHandler(nil, &mockHistory{}, nil, testLogger())

	for _, target := range []string{
		"/eligibility/checks",
		"/eligibility/checks?patient_id=pt-42&limit=0",
		"/eligibility/checks?patient_id=pt-42&limit=abc",
		"/eligibility/checks?patient_id=pt-42&limit=500",
	} {
		rr := httptest.NewRecorder()
		h.HandleListChecks(rr, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestHandleHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	NewEligibilityHandler(nil, nil, mockHealth{}, testLogger()).
		HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	NewEligibilityHandler(nil, nil, mockHealth{err: errors.New("pool closed")}, testLogger()).
		HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	NewEligibilityHandler(nil, nil, nil, testLogger()).RegisterRoutes(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/eligibility/check", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
