package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDocsRoutes(t *testing.T) {
	mux := http.NewServeMux()
	RegisterDocsRoutes(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/docs/swagger.json", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/eligibility/check")
}

func TestLoadOpenAPI3(t *testing.T) {
	doc, err := LoadOpenAPI3()
	require.NoError(t, err)

	assert.Empty(t, doc.Servers)
	require.NotNil(t, doc.Paths.Find("/eligibility/check"))
	assert.NotNil(t, doc.Paths.Find("/eligibility/check").Post.RequestBody)
	assert.Contains(t, doc.Components.Schemas, "handler.CheckRequest")
}

func newValidated(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	mw, err := RequestValidator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	reached := false
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	})), &reached
}

func TestRequestValidator(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		status  int
		reached bool
	}{
		{
			name:    "valid check request",
			method:  http.MethodPost,
			target:  "/eligibility/check",
			body:    `{"payer_name":"State Medicaid","date_of_birth":"1985-03-14","member_id":"M1"}`,
			status:  http.StatusNoContent,
			reached: true,
		},
		{
			name:   "missing payer name",
			method: http.MethodPost,
			target: "/eligibility/check",
			body:   `{"date_of_birth":"1985-03-14"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "gender outside enum",
			method: http.MethodPost,
			target: "/eligibility/check",
			body:   `{"payer_name":"X","date_of_birth":"1985-03-14","gender":"Z"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing patient id",
			method: http.MethodGet,
			target: "/eligibility/checks",
			status: http.StatusBadRequest,
		},
		{
			name:   "non integer limit",
			method: http.MethodGet,
			target: "/eligibility/checks?patient_id=pt-1&limit=ten",
			status: http.StatusBadRequest,
		},
		{
			name:    "undocumented path passes through",
			method:  http.MethodGet,
			target:  "/docs/swagger.json",
			status:  http.StatusNoContent,
			reached: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, reached := newValidated(t)

			var body io.Reader
			if tt.body != "" {
				body = bytes.NewBufferString(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.reached, *reached)
			if tt.status == http.StatusBadRequest {
				assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR")
			}
		})
	}
}

func TestRequestValidator_PreservesBody(t *testing.T) {
	mw, err := RequestValidator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	payload := `{"payer_name":"State Medicaid","date_of_birth":"1985-03-14"}`
	var seen string
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
	}))

	req := httptest.NewRequest(http.MethodPost, "/eligibility/check", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.JSONEq(t, payload, seen)
}
