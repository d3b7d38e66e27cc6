package domain

// EligibilityStatus is the coarse meaning of an EB01 code.
type EligibilityStatus string

const (
	StatusActive        EligibilityStatus = "ACTIVE"
	StatusInactive      EligibilityStatus = "INACTIVE"
	StatusLimited       EligibilityStatus = "LIMITED"
	StatusBenefitDetail EligibilityStatus = "BENEFIT_DETAIL"
	StatusOther         EligibilityStatus = "OTHER"
)

// EligibilityStatusFromCode maps an EB01 eligibility or benefit information code.
func EligibilityStatusFromCode(code string) EligibilityStatus {
	switch code {
	case "1", "2", "3", "4", "5":
		return StatusActive
	case "6", "7", "8", "V":
		return StatusInactive
	case "F", "I", "N", "CB":
		return StatusLimited
	case "A", "B", "C", "G", "J", "Y":
		return StatusBenefitDetail
	default:
		return StatusOther
	}
}

// CoverageModel is how the benefit is administered.
type CoverageModel string

const (
	ModelManagedCare   CoverageModel = "MANAGED_CARE"
	ModelFeeForService CoverageModel = "FEE_FOR_SERVICE"
	ModelUnknown       CoverageModel = "UNKNOWN"
)

// CoverageModelFromInsuranceType maps an EB04 insurance type code.
func CoverageModelFromInsuranceType(code string) CoverageModel {
	switch code {
	case "HM", "HN":
		return ModelManagedCare
	case "MC":
		return ModelFeeForService
	default:
		return ModelUnknown
	}
}

// BenefitRecord is one EB statement of a 271 response.
type BenefitRecord struct {
	Payer           string
	EligibilityCode string
	Status          EligibilityStatus
	CoverageLevel   string
	ServiceTypes    []string
	InsuranceType   string
	CoverageModel   CoverageModel
	BenefitText     string

	// EB07 and EB08 as sent.
	Amount  *float64
	Percent *float64

	Copay       *float64
	Deductible  *float64
	Coinsurance *float64
}

// ServiceCopay is one line of the per-service copay breakdown.
type ServiceCopay struct {
	ServiceType string  `json:"service_type"`
	Payer       string  `json:"payer,omitempty"`
	Amount      float64 `json:"amount"`
}

// CostShare is the patient responsibility summary taken from all records.
type CostShare struct {
	Copay          *float64
	Deductible     *float64
	Coinsurance    *float64
	CopayBreakdown []ServiceCopay
}

// Rejection is an AAA request validation segment.
type Rejection struct {
	Code       string `json:"code"`
	Action     string `json:"action,omitempty"`
	Loop       string `json:"loop,omitempty"`
	Definition string `json:"definition,omitempty"`
}

// Benefits is everything the extractor pulls out of one 271.
type Benefits struct {
	Records    []BenefitRecord
	CostShare  CostShare
	Payers     []string
	Rejections []Rejection
}
