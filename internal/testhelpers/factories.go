package testhelpers

import (
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
)

// PayerFixture returns a member-ID payer; overrides are applied in order.
func PayerFixture(name string, overrides ...func(*domain.PayerConfig)) *domain.PayerConfig {
	p := &domain.PayerConfig{
		Name:           name,
		PayerCode:      "PC" + name[:1],
		RequiredFields: []string{domain.FieldMemberID, domain.FieldDOB},
		OptionalFields: []string{domain.FieldSSN},
		DateFormat:     domain.DateFormatSingle,
	}
	for _, o := range overrides {
		o(p)
	}
	return p
}

// QueryFixture returns a query that satisfies PayerFixture.
func QueryFixture(patientRef string) domain.PatientQuery {
	return domain.PatientQuery{
		FirstName:         "Jane",
		LastName:          "Doe",
		DateOfBirth:       time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
		MemberID:          "M123456",
		ExternalPatientID: patientRef,
	}
}
