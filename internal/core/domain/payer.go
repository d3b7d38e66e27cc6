package domain

import "slices"

// Date qualifiers accepted for DTP*291.
const (
	DateFormatSingle = "D8"
	DateFormatRange  = "RD8"
)

// PayerConfig is what the configuration resolver returns for one payer.
type PayerConfig struct {
	Name           string
	PayerCode      string
	RequiredFields []string
	OptionalFields []string
	DateFormat     string
	GenderRequired bool
}

func (p PayerConfig) Requires(field string) bool {
	return slices.Contains(p.RequiredFields, field)
}

// Accepts reports whether the payer takes the field at all.
func (p PayerConfig) Accepts(field string) bool {
	return p.Requires(field) || slices.Contains(p.OptionalFields, field)
}

// ServiceDateQualifier falls back to a single date when the flag is unset or unknown.
func (p PayerConfig) ServiceDateQualifier() string {
	if p.DateFormat == DateFormatRange {
		return DateFormatRange
	}
	return DateFormatSingle
}
