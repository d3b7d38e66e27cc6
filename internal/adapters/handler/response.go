package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := APIResponse{
		Success: status >= 200 && status < 300,
	}

	if response.Success {
		response.Data = data
	} else {
		if apiErr, ok := data.(*APIError); ok {
			response.Error = apiErr
		}
	}

	_ = json.NewEncoder(w).Encode(response)
}

// respondWithPartial sends a low-confidence result together with the error
// explaining why it needs manual review.
func respondWithPartial(w http.ResponseWriter, status int, data interface{}, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Data:    data,
		Error:   apiErr,
	})
}

func statusFor(err error) (status int, code, message string) {
	var domainErr *domain.DomainError
	var transportErr *domain.TransportError

	switch {
	case errors.As(err, &transportErr):
		status = http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		return status, domain.ErrCodeTransport, transportErr.Error()
	case errors.As(err, &domainErr):
		switch domainErr.Code {
		case domain.ErrCodeValidation:
			status = http.StatusBadRequest
		case domain.ErrCodePayerNotFound:
			status = http.StatusNotFound
		case domain.ErrCodeMalformedResponse:
			status = http.StatusBadGateway
		case domain.ErrCodeAmbiguousBenefit:
			status = http.StatusUnprocessableEntity
		default:
			status = http.StatusBadRequest
		}
		return status, domainErr.Code, domainErr.Message
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
}

func respondWithError(w http.ResponseWriter, err error) {
	status, code, message := statusFor(err)

	respondWithJSON(w, status, &APIError{
		Code:    code,
		Message: message,
	})
}
