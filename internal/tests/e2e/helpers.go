package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/adapters/handler"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/stretchr/testify/require"
)

// TestClient wraps HTTP calls to gateway
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Two clearinghouse attempts plus envelope handling.
			Timeout: 30 * time.Second,
		},
	}
}

// CheckResponse is the gateway envelope around one verdict.
type CheckResponse struct {
	StatusCode int
	Success    bool
	Result     *domain.EligibilityResult
	Error      *handler.APIError
}

// Check calls POST /eligibility/check
func (c *TestClient) Check(t *testing.T, req handler.CheckRequest) *CheckResponse {
	body, err := json.Marshal(req)
	require.NoError(t, err)

	return c.checkRaw(t, body)
}

func (c *TestClient) checkRaw(t *testing.T, body []byte) *CheckResponse {
	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/eligibility/check", bytes.NewReader(body))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Success bool                      `json:"success"`
		Data    *domain.EligibilityResult `json:"data"`
		Error   *handler.APIError         `json:"error"`
	}
	require.NoError(t, json.Unmarshal(bodyBytes, &envelope), "body: %s", bodyBytes)

	return &CheckResponse{
		StatusCode: resp.StatusCode,
		Success:    envelope.Success,
		Result:     envelope.Data,
		Error:      envelope.Error,
	}
}

// ListChecks calls GET /eligibility/checks
func (c *TestClient) ListChecks(t *testing.T, patientRef string, limit int) []handler.CheckSummary {
	q := url.Values{}
	q.Set("patient_id", patientRef)
	q.Set("limit", strconv.Itoa(limit))

	resp, err := c.httpClient.Get(c.baseURL + "/eligibility/checks?" + q.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []handler.CheckSummary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

// Get returns the status code of a plain GET.
func (c *TestClient) Get(t *testing.T, path string) int {
	resp, err := c.httpClient.Get(c.baseURL + path)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}
