// Package rules decides program enrollment from extracted 271 benefits.
package rules

import (
	"fmt"
	"slices"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
)

const (
	ReasonNoActiveCoverage      = "no active coverage found"
	ReasonBehavioralManagedCare = "mental health services under managed care"
	ReasonMedicalManagedCare    = "medical services under managed care"
	ReasonUnknownCoverageModel  = "active coverage found but coverage type was not reported"

	CarveOutBehavioralFFS = "behavioral health is carved out of the managed care medical plan and paid fee-for-service"
)

// behavioralServiceTypes are the EB03 codes that describe mental health and
// substance use services.
var behavioralServiceTypes = []string{
	"MH", "A4", "A6", "A7", "A8", "AI", "AJ", "AK", "CE", "CF", "CG", "CH",
}

const defaultServiceType = "30"

// IsBehavioral reports whether a service type code is a behavioral health code.
func IsBehavioral(serviceType string) bool {
	return slices.Contains(behavioralServiceTypes, serviceType)
}

type Policy struct {
	ProgramName string
}

type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// partition collects the active coverage models reported for one group of
// services, keyed by service type code.
type partition struct {
	records int
	byCode  map[string]map[domain.CoverageModel]bool
}

func (p *partition) add(serviceType string, m domain.CoverageModel) {
	if p.byCode == nil {
		p.byCode = map[string]map[domain.CoverageModel]bool{}
	}
	p.records++
	if m == domain.ModelUnknown {
		return
	}
	if p.byCode[serviceType] == nil {
		p.byCode[serviceType] = map[domain.CoverageModel]bool{}
	}
	p.byCode[serviceType][m] = true
}

// conflict returns a service type code that carries both managed care and
// fee-for-service. Codes are checked in sorted order so the answer is stable.
func (p *partition) conflict() (string, bool) {
	codes := make([]string, 0, len(p.byCode))
	for code := range p.byCode {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		if len(p.byCode[code]) > 1 {
			return code, true
		}
	}
	return "", false
}

func (p *partition) has(m domain.CoverageModel) bool {
	for _, models := range p.byCode {
		if models[m] {
			return true
		}
	}
	return false
}

// single returns the one known model reported for code, if exactly one.
func (p *partition) single(code string) (domain.CoverageModel, bool) {
	if len(p.byCode[code]) != 1 {
		return domain.ModelUnknown, false
	}
	for m := range p.byCode[code] {
		return m, true
	}
	return domain.ModelUnknown, false
}

// Evaluate produces the enrollment verdict. A negative verdict is not an
// error; the only error is *domain.DomainError with AMBIGUOUS_BENEFIT, which
// comes together with a low-confidence result flagged for manual review.
func (e *Engine) Evaluate(benefits *domain.Benefits) (*domain.EligibilityResult, error) {
	if benefits == nil {
		benefits = &domain.Benefits{}
	}

	result := &domain.EligibilityResult{
		Payers:     benefits.Payers,
		Rejections: benefits.Rejections,
	}
	result.AttachCostShare(benefits.CostShare)

	var behavioral, medical partition
	for _, r := range benefits.Records {
		if r.Status != domain.StatusActive && r.Status != domain.StatusLimited {
			continue
		}
		services := r.ServiceTypes
		if len(services) == 0 {
			services = []string{defaultServiceType}
		}
		for _, st := range services {
			if IsBehavioral(st) {
				behavioral.add(st, r.CoverageModel)
			} else {
				medical.add(st, r.CoverageModel)
			}
		}
	}

	if behavioral.records == 0 && medical.records == 0 {
		result.Verified = true
		result.Reason = ReasonNoActiveCoverage
		return result, nil
	}

	if code, ok := behavioral.conflict(); ok {
		return e.ambiguous(result, fmt.Sprintf("behavioral service type %s reports both managed care and fee-for-service", code))
	}

	// Fee-for-service on any behavioral code wins over managed care elsewhere.
	switch {
	case behavioral.has(domain.ModelFeeForService):
		result.Enrolled = true
		result.Verified = true
		result.Program = e.policy.ProgramName
		if medical.has(domain.ModelManagedCare) || behavioral.has(domain.ModelManagedCare) {
			result.CarveOut = CarveOutBehavioralFFS
		}
		return result, nil
	case behavioral.has(domain.ModelManagedCare):
		result.Verified = true
		result.Reason = ReasonBehavioralManagedCare
		return result, nil
	}

	if code, ok := medical.conflict(); ok {
		return e.ambiguous(result, fmt.Sprintf("medical service type %s reports both managed care and fee-for-service", code))
	}

	medicalModel := domain.ModelUnknown
	switch ffs, mc := medical.has(domain.ModelFeeForService), medical.has(domain.ModelManagedCare); {
	case ffs && mc:
		// Different medical codes disagree; the plan-level code 30 settles it.
		m, ok := medical.single(defaultServiceType)
		if !ok {
			return e.ambiguous(result, "medical service types disagree on managed care and no plan-level coverage type was reported")
		}
		medicalModel = m
	case ffs:
		medicalModel = domain.ModelFeeForService
	case mc:
		medicalModel = domain.ModelManagedCare
	}

	switch medicalModel {
	case domain.ModelFeeForService:
		result.Enrolled = true
		result.Verified = true
		result.Program = e.policy.ProgramName
	case domain.ModelManagedCare:
		result.Verified = true
		result.Reason = ReasonMedicalManagedCare
	default:
		result.Enrolled = true
		result.Program = e.policy.ProgramName
		result.ManualReview = true
		result.Reason = ReasonUnknownCoverageModel
	}
	return result, nil
}

func (e *Engine) ambiguous(result *domain.EligibilityResult, detail string) (*domain.EligibilityResult, error) {
	err := domain.NewAmbiguousBenefitError(detail)
	result.Enrolled = false
	result.Verified = false
	result.ManualReview = true
	result.Reason = err.Message
	return result, err
}
