package x12

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
)

var (
	copayPattern       = regexp.MustCompile(`(?i)\b(?:CO-?PAY(?:MENT)?|CO)\s*[:=]?\s*\$?\s*(\d+(?:\.\d{1,2})?)`)
	deductiblePattern  = regexp.MustCompile(`(?i)\b(?:DEDUCTIBLE|DED)\s*[:=]?\s*\$?\s*(\d+(?:\.\d{1,2})?)`)
	coinsurancePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// TextAmounts are the figures ScanBenefitText found in free text.
type TextAmounts struct {
	Copay       *float64
	Deductible  *float64
	Coinsurance *float64
}

// ScanBenefitText pulls copay, deductible and coinsurance out of free-form
// benefit text such as "COPAY$25" or "COINSURANCE 20%". Unmatched figures stay nil.
func ScanBenefitText(text string) TextAmounts {
	var out TextAmounts
	if text == "" {
		return out
	}
	out.Copay = firstNumber(copayPattern, text)
	out.Deductible = firstNumber(deductiblePattern, text)
	out.Coinsurance = firstNumber(coinsurancePattern, text)
	return out
}

func firstNumber(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

// Extract maps a tokenized 271 onto benefit records and a cost share summary.
func Extract(doc *Document) *domain.Benefits {
	out := &domain.Benefits{}
	if doc == nil {
		return out
	}

	var (
		payer   string
		current *domain.BenefitRecord
		loop    string
	)
	flush := func() {
		if current != nil {
			finishRecord(current)
			out.Records = append(out.Records, *current)
			current = nil
		}
	}

	for _, s := range doc.Segments {
		switch s.ID {
		case "HL":
			flush()
			loop = s.Element(3)
		case "NM1":
			if s.Element(1) == "PR" {
				flush()
				payer = strings.TrimSpace(s.Element(3))
				if payer != "" && !contains(out.Payers, payer) {
					out.Payers = append(out.Payers, payer)
				}
			}
		case "EB":
			flush()
			current = newRecord(s, doc.Delimiters, payer)
		case "MSG":
			if current != nil {
				current.BenefitText = joinText(current.BenefitText, s.Element(1))
			}
		case "AAA":
			out.Rejections = append(out.Rejections, domain.Rejection{
				Code:       s.Element(3),
				Action:     s.Element(4),
				Loop:       loop,
				Definition: rejectionText(s.Element(3)),
			})
		case "SE", "LS", "LE":
			flush()
		}
	}
	flush()

	out.CostShare = Summarize(out.Records)
	return out
}

func newRecord(s Segment, d Delimiters, payer string) *domain.BenefitRecord {
	code := strings.TrimSpace(s.Element(1))
	insurance := strings.TrimSpace(s.Element(4))
	rec := &domain.BenefitRecord{
		Payer:           payer,
		EligibilityCode: code,
		Status:          domain.EligibilityStatusFromCode(code),
		CoverageLevel:   strings.TrimSpace(s.Element(2)),
		ServiceTypes:    s.Repeats(3, d),
		InsuranceType:   insurance,
		CoverageModel:   domain.CoverageModelFromInsuranceType(insurance),
		BenefitText:     strings.TrimSpace(s.Element(5)),
		Amount:          parseNumber(s.Element(7)),
		Percent:         parseNumber(s.Element(8)),
	}
	// Some payers put the amount in words ("COPAY$25") into EB06 or EB07.
	// EB06 is otherwise a two-character time period qualifier.
	if period := strings.TrimSpace(s.Element(6)); len(period) > 2 && parseNumber(period) == nil {
		rec.BenefitText = joinText(rec.BenefitText, period)
	}
	if amount := strings.TrimSpace(s.Element(7)); amount != "" && rec.Amount == nil {
		rec.BenefitText = joinText(rec.BenefitText, amount)
	}
	if rec.Percent != nil && *rec.Percent <= 1 {
		pct := *rec.Percent * 100
		rec.Percent = &pct
	}
	return rec
}

// finishRecord fills the parsed amounts. Structured EB07/EB08 win over text.
func finishRecord(rec *domain.BenefitRecord) {
	switch rec.EligibilityCode {
	case "B":
		rec.Copay = rec.Amount
	case "C":
		rec.Deductible = rec.Amount
	case "A":
		rec.Coinsurance = rec.Percent
	}

	text := ScanBenefitText(rec.BenefitText)
	if rec.Copay == nil {
		rec.Copay = text.Copay
	}
	if rec.Deductible == nil {
		rec.Deductible = text.Deductible
	}
	if rec.Coinsurance == nil {
		rec.Coinsurance = text.Coinsurance
	}
}

// Summarize folds per-record amounts into one cost share: the highest copay
// with a per-service breakdown, the first individual deductible (any
// deductible when none is individual), and the highest coinsurance.
func Summarize(records []domain.BenefitRecord) domain.CostShare {
	var (
		cs            domain.CostShare
		anyDeductible *float64
	)
	for _, r := range records {
		if r.Copay != nil {
			if cs.Copay == nil || *r.Copay > *cs.Copay {
				cs.Copay = ptr(*r.Copay)
			}
			services := r.ServiceTypes
			if len(services) == 0 {
				services = []string{serviceTypeHealthPlan}
			}
			for _, st := range services {
				cs.CopayBreakdown = append(cs.CopayBreakdown, domain.ServiceCopay{
					ServiceType: st,
					Payer:       r.Payer,
					Amount:      *r.Copay,
				})
			}
		}
		if r.Deductible != nil {
			if anyDeductible == nil {
				anyDeductible = ptr(*r.Deductible)
			}
			if cs.Deductible == nil && r.CoverageLevel == "IND" {
				cs.Deductible = ptr(*r.Deductible)
			}
		}
		if r.Coinsurance != nil {
			if cs.Coinsurance == nil || *r.Coinsurance > *cs.Coinsurance {
				cs.Coinsurance = ptr(*r.Coinsurance)
			}
		}
	}
	if cs.Deductible == nil {
		cs.Deductible = anyDeductible
	}
	return cs
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func joinText(a, b string) string {
	b = strings.TrimSpace(b)
	switch {
	case b == "":
		return a
	case a == "":
		return b
	}
	return a + " " + b
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func ptr(v float64) *float64 { return &v }

// Common AAA03 reject reasons for 270/271.
var rejectionReasons = map[string]string{
	"15": "required application data missing",
	"41": "authorization/access restrictions",
	"42": "unable to respond at current time",
	"43": "invalid/missing provider identification",
	"45": "invalid/missing provider specialty",
	"47": "invalid/missing provider state",
	"48": "invalid/missing referring provider identification number",
	"49": "provider is not primary care physician",
	"51": "provider not on file",
	"52": "service dates not within provider plan enrollment",
	"56": "inappropriate date",
	"57": "invalid/missing date(s) of service",
	"58": "invalid/missing date-of-birth",
	"60": "date of birth follows date(s) of service",
	"61": "date of death precedes date(s) of service",
	"62": "date of service not within allowable inquiry period",
	"63": "date of service in future",
	"71": "patient birth date does not match that for the patient on the database",
	"72": "invalid/missing subscriber/insured ID",
	"73": "invalid/missing subscriber/insured name",
	"74": "invalid/missing subscriber/insured gender code",
	"75": "subscriber/insured not found",
	"76": "duplicate subscriber/insured ID number",
	"78": "subscriber/insured not in group/plan identified",
	"79": "invalid participant identification",
}

func rejectionText(code string) string {
	return rejectionReasons[code]
}
