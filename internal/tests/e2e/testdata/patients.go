package testdata

// Patient is a subscriber known to a clearinghouse sandbox.
type Patient struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	MemberID    string
	Gender      string
	Description string
}

var (
	ActiveMember = Patient{
		FirstName:   "JOHN",
		LastName:    "DOE",
		DateOfBirth: "1970-01-01",
		MemberID:    "0000000001",
		Gender:      "M",
		Description: "Active coverage in the trading partner test environment",
	}

	UnknownMember = Patient{
		FirstName:   "NOBODY",
		LastName:    "KNOWN",
		DateOfBirth: "1901-01-01",
		MemberID:    "9999999999",
		Description: "Subscriber the payer rejects with AAA*N**75",
	}
)
