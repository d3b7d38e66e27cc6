package x12

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
)

const (
	implementationReference = "005010X279A1"
	versionNumber           = "00501"
	serviceTypeHealthPlan   = "30"
)

// Submitter identifies the sending side of the interchange.
type Submitter struct {
	SenderID        string
	ReceiverID      string
	UsageIndicator  string // P or T
	ProviderName    string
	ProviderNPI     string
	TraceOriginator string
}

// Transaction is a built 270 ready to be enveloped.
type Transaction struct {
	ControlNumber string
	TraceNumber   string
	SenderID      string
	ReceiverID    string
	Segments      []Segment
	Delimiters    Delimiters
}

// Payload renders the interchange as the wire string.
func (t *Transaction) Payload() string {
	return Render(t.Segments, t.Delimiters)
}

// Builder produces 270 inquiries for any payer described by a PayerConfig.
type Builder struct {
	submitter Submitter
	controls  *ControlNumbers
	now       func() time.Time
}

// NewBuilder creates a builder. controls may be shared across builders.
func NewBuilder(submitter Submitter, controls *ControlNumbers) *Builder {
	if controls == nil {
		controls = NewControlNumbers(nil)
	}
	if submitter.UsageIndicator == "" {
		submitter.UsageIndicator = "P"
	}
	return &Builder{
		submitter: submitter,
		controls:  controls,
		now:       time.Now,
	}
}

// Build turns a patient query into a verified 270 transaction.
func (b *Builder) Build(query domain.PatientQuery, payer domain.PayerConfig) (*Transaction, error) {
	if query.DateOfBirth.IsZero() {
		return nil, domain.NewValidationError(domain.FieldDOB, "date of birth is required")
	}
	if strings.TrimSpace(payer.PayerCode) == "" {
		return nil, domain.NewValidationError("payer_code", "payer "+payer.Name+" has no payer code")
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if missing := query.Missing(payer); len(missing) > 0 {
		return nil, domain.NewValidationError(missing[0],
			fmt.Sprintf("required by payer %s: %s", payer.Name, strings.Join(missing, ", ")))
	}
	id, err := query.CanonicalIdentifier(payer)
	if err != nil {
		return nil, err
	}

	now := b.now()
	n := b.controls.Next()
	control := FormatControlNumber(n)
	groupControl := strings.TrimLeft(control, "0")
	setControl := FormatSetControlNumber(n)
	trace := strings.ReplaceAll(uuid.NewString(), "-", "")

	serviceDate := query.ServiceDate
	if serviceDate.IsZero() {
		serviceDate = now
	}

	isa := NewSegment("ISA",
		"00", strings.Repeat(" ", 10),
		"00", strings.Repeat(" ", 10),
		"ZZ", padRight(b.submitter.SenderID, 15),
		"ZZ", padRight(b.submitter.ReceiverID, 15),
		now.Format("060102"), now.Format("1504"),
		string(DefaultDelimiters.Repetition), versionNumber, control,
		"0", b.submitter.UsageIndicator, string(DefaultDelimiters.Component),
	)

	segments := []Segment{
		isa,
		NewSegment("GS", "HS", clean(b.submitter.SenderID), clean(b.submitter.ReceiverID),
			now.Format("20060102"), now.Format("1504"), groupControl, "X", implementationReference),
		NewSegment("ST", "270", setControl, implementationReference),
		NewSegment("BHT", "0022", "13", trace[:30], now.Format("20060102"), now.Format("1504")),
		NewSegment("HL", "1", "", "20", "1"),
		NewSegment("NM1", "PR", "2", clean(payer.Name), "", "", "", "", "PI", clean(payer.PayerCode)),
		NewSegment("HL", "2", "1", "21", "1"),
		NewSegment("NM1", "1P", "2", clean(b.submitter.ProviderName), "", "", "", "", "XX", clean(b.submitter.ProviderNPI)),
		NewSegment("HL", "3", "2", "22", "0"),
		NewSegment("TRN", "1", trace, clean(b.submitter.TraceOriginator)),
		b.subscriberName(query, id),
	}

	if id.Kind == domain.IdentifierSSN {
		segments = append(segments, NewSegment("REF", "SY", id.Value))
	}

	segments = append(segments,
		NewSegment("DMG", "D8", query.DateOfBirth.Format("20060102"), query.Gender),
		serviceDateSegment(serviceDate, payer),
		NewSegment("EQ", serviceTypeHealthPlan),
	)
	for _, st := range query.ServiceTypes {
		st = clean(st)
		if st == "" || st == serviceTypeHealthPlan {
			continue
		}
		segments = append(segments, NewSegment("EQ", st))
	}

	stIndex := 2
	count := len(segments) - stIndex + 1
	segments = append(segments,
		NewSegment("SE", strconv.Itoa(count), setControl),
		NewSegment("GE", "1", groupControl),
		NewSegment("IEA", "1", control),
	)

	if err := Verify(segments); err != nil {
		return nil, fmt.Errorf("built 270 failed verification: %w", err)
	}

	return &Transaction{
		ControlNumber: control,
		TraceNumber:   trace,
		SenderID:      b.submitter.SenderID,
		ReceiverID:    b.submitter.ReceiverID,
		Segments:      segments,
		Delimiters:    DefaultDelimiters,
	}, nil
}

func (b *Builder) subscriberName(query domain.PatientQuery, id domain.Identifier) Segment {
	qualifier, value := "", ""
	if id.Kind == domain.IdentifierMemberID {
		qualifier, value = "MI", clean(id.Value)
	}
	return NewSegment("NM1", "IL", "1",
		clean(query.LastName), clean(query.FirstName), clean(query.MiddleName), "", "",
		qualifier, value)
}

func serviceDateSegment(date time.Time, payer domain.PayerConfig) Segment {
	if payer.ServiceDateQualifier() == domain.DateFormatRange {
		first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		last := first.AddDate(0, 1, -1)
		return NewSegment("DTP", "291", domain.DateFormatRange,
			first.Format("20060102")+"-"+last.Format("20060102"))
	}
	return NewSegment("DTP", "291", domain.DateFormatSingle, date.Format("20060102"))
}

// Verify checks the envelope invariants of a rendered segment list: matching
// ISA13/IEA02, GS06/GE02, ST02/SE02 and an SE01 equal to the ST..SE count.
func Verify(segments []Segment) error {
	var (
		isa, gs, st Segment
		stAt        = -1
		seen        = map[string]bool{}
	)
	for i, s := range segments {
		switch s.ID {
		case "ISA":
			isa = s
		case "GS":
			gs = s
		case "ST":
			st, stAt = s, i
		case "SE":
			if stAt < 0 {
				return fmt.Errorf("SE without ST")
			}
			if s.Element(2) != st.Element(2) {
				return fmt.Errorf("SE02 %q does not match ST02 %q", s.Element(2), st.Element(2))
			}
			want := strconv.Itoa(i - stAt + 1)
			if s.Element(1) != want {
				return fmt.Errorf("SE01 is %s, counted %s segments", s.Element(1), want)
			}
		case "GE":
			if s.Element(2) != gs.Element(6) {
				return fmt.Errorf("GE02 %q does not match GS06 %q", s.Element(2), gs.Element(6))
			}
		case "IEA":
			if s.Element(2) != isa.Element(13) {
				return fmt.Errorf("IEA02 %q does not match ISA13 %q", s.Element(2), isa.Element(13))
			}
		}
		seen[s.ID] = true
	}
	for _, id := range []string{"ISA", "GS", "ST", "SE", "GE", "IEA"} {
		if !seen[id] {
			return fmt.Errorf("missing %s segment", id)
		}
	}
	return nil
}

var stripper = strings.NewReplacer(
	"*", "", "~", "", "^", "", ":", "",
	"<", "", ">", "", "&", "", "\"", "", "'", "",
)

// clean upper-cases a value and removes characters that would break the
// interchange or its XML envelope.
func clean(s string) string {
	return strings.ToUpper(strings.TrimSpace(stripper.Replace(s)))
}

func padRight(s string, n int) string {
	s = clean(s)
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}
