package domain

import (
	"time"

	"github.com/google/uuid"
)

// EligibilityResult is the final verdict handed back to the caller.
type EligibilityResult struct {
	Enrolled     bool   `json:"enrolled"`
	Program      string `json:"program,omitempty"`
	Verified     bool   `json:"verified"`
	ManualReview bool   `json:"manual_review"`
	Reason       string `json:"reason,omitempty"`
	CarveOut     string `json:"carve_out,omitempty"`

	Copay          *float64       `json:"copay,omitempty"`
	Deductible     *float64       `json:"deductible,omitempty"`
	Coinsurance    *float64       `json:"coinsurance,omitempty"`
	CopayBreakdown []ServiceCopay `json:"copay_breakdown,omitempty"`

	Payers     []string    `json:"payers,omitempty"`
	Rejections []Rejection `json:"rejections,omitempty"`

	ControlNumber string        `json:"control_number,omitempty"`
	Clearinghouse string        `json:"clearinghouse,omitempty"`
	Latency       time.Duration `json:"latency_ns,omitempty"`
	CheckedAt     time.Time     `json:"checked_at"`
}

// AttachCostShare copies the cost share figures onto the result.
func (r *EligibilityResult) AttachCostShare(cs CostShare) {
	r.Copay = cs.Copay
	r.Deductible = cs.Deductible
	r.Coinsurance = cs.Coinsurance
	r.CopayBreakdown = cs.CopayBreakdown
}

// CheckRecord is what gets logged for every inquiry, successful or not.
// It carries no SSN and no date of birth.
type CheckRecord struct {
	ID                uuid.UUID
	ExternalPatientID string
	PayerName         string
	ControlNumber     string
	Clearinghouse     string
	Result            *EligibilityResult
	ErrorCode         string
	ErrorMessage      string
	Latency           time.Duration
	CheckedAt         time.Time
}

// NewCheckRecord builds the log entry for a finished inquiry.
func NewCheckRecord(query PatientQuery, payer PayerConfig, result *EligibilityResult, err error) *CheckRecord {
	rec := &CheckRecord{
		ID:                uuid.New(),
		ExternalPatientID: query.ExternalPatientID,
		PayerName:         payer.Name,
		Result:            result,
		CheckedAt:         time.Now().UTC(),
	}
	if result != nil {
		rec.ControlNumber = result.ControlNumber
		rec.Clearinghouse = result.Clearinghouse
		rec.Latency = result.Latency
		if !result.CheckedAt.IsZero() {
			rec.CheckedAt = result.CheckedAt
		}
	}
	if err != nil {
		rec.ErrorCode = ErrorCode(err)
		if rec.ErrorCode == "" {
			rec.ErrorCode = "INTERNAL_ERROR"
		}
		rec.ErrorMessage = err.Error()
	}
	return rec
}
