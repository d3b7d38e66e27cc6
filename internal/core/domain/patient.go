// Package domain holds the eligibility types shared by every stage of the
// inquiry pipeline.
package domain

import (
	"slices"
	"strings"
	"time"
)

// Field names used by PayerConfig to list required and optional inputs.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldDOB       = "dob"
	FieldMemberID  = "member_id"
	FieldSSN       = "ssn"
	FieldGender    = "gender"
)

// IdentifierKind says which identifier goes out on the subscriber loop.
type IdentifierKind string

const (
	IdentifierMemberID    IdentifierKind = "MEMBER_ID"
	IdentifierSSN         IdentifierKind = "SSN"
	IdentifierDemographic IdentifierKind = "DEMOGRAPHIC"
)

// PatientQuery is the caller's description of the patient being checked.
type PatientQuery struct {
	FirstName   string
	LastName    string
	MiddleName  string
	DateOfBirth time.Time
	MemberID    string
	SSN         string
	Gender      string

	// ServiceDate defaults to the day the inquiry is built.
	ServiceDate time.Time
	// ServiceTypes are inquired in addition to 30 (health benefit plan coverage).
	ServiceTypes []string

	// ExternalPatientID is an opaque caller reference. It never goes on the wire.
	ExternalPatientID string
}

// Identifier is the single identifier chosen for transmission.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

func (q PatientQuery) hasDemographics() bool {
	return strings.TrimSpace(q.FirstName) != "" &&
		strings.TrimSpace(q.LastName) != "" &&
		!q.DateOfBirth.IsZero()
}

// Validate checks that the query can identify a patient at all.
func (q PatientQuery) Validate() error {
	if q.DateOfBirth.IsZero() {
		return NewValidationError(FieldDOB, "date of birth is required")
	}
	if q.MemberID == "" && q.SSN == "" && !q.hasDemographics() {
		return NewValidationError("identifier", "member ID, SSN, or first name + last name + date of birth is required")
	}
	if q.SSN != "" && !isDigits(q.SSN) {
		return NewValidationError(FieldSSN, "ssn must contain digits only")
	}
	switch q.Gender {
	case "", "M", "F", "U":
	default:
		return NewValidationError(FieldGender, "gender must be one of M, F, U")
	}
	return nil
}

// CanonicalIdentifier picks exactly one identifier according to the payer's rules.
// Member ID wins when the payer requires it or when it is present; SSN is used
// only for payers that accept it; otherwise the inquiry is a demographic search.
func (q PatientQuery) CanonicalIdentifier(payer PayerConfig) (Identifier, error) {
	if payer.Requires(FieldMemberID) {
		if q.MemberID == "" {
			return Identifier{}, NewValidationError(FieldMemberID, "member ID is required by payer "+payer.Name)
		}
		return Identifier{Kind: IdentifierMemberID, Value: q.MemberID}, nil
	}
	if payer.Requires(FieldSSN) && q.SSN == "" {
		return Identifier{}, NewValidationError(FieldSSN, "ssn is required by payer "+payer.Name)
	}

	if q.MemberID != "" {
		return Identifier{Kind: IdentifierMemberID, Value: q.MemberID}, nil
	}
	if q.SSN != "" && payer.Accepts(FieldSSN) {
		return Identifier{Kind: IdentifierSSN, Value: q.SSN}, nil
	}
	if q.hasDemographics() {
		return Identifier{Kind: IdentifierDemographic}, nil
	}
	return Identifier{}, NewValidationError("identifier", "no identifier accepted by payer "+payer.Name)
}

// Missing returns the payer-required fields the query leaves empty.
func (q PatientQuery) Missing(payer PayerConfig) []string {
	var missing []string
	for _, f := range payer.RequiredFields {
		if !q.has(f) {
			missing = append(missing, f)
		}
	}
	if payer.GenderRequired && q.Gender == "" && !slices.Contains(missing, FieldGender) {
		missing = append(missing, FieldGender)
	}
	return missing
}

func (q PatientQuery) has(field string) bool {
	switch field {
	case FieldFirstName:
		return strings.TrimSpace(q.FirstName) != ""
	case FieldLastName:
		return strings.TrimSpace(q.LastName) != ""
	case FieldDOB:
		return !q.DateOfBirth.IsZero()
	case FieldMemberID:
		return q.MemberID != ""
	case FieldSSN:
		return q.SSN != ""
	case FieldGender:
		return q.Gender != ""
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
