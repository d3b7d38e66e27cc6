// Package envelope wraps X12 payloads in CAQH CORE transport envelopes and
// unwraps clearinghouse replies.
package envelope

import (
	"time"

	"github.com/google/uuid"
)

const (
	PayloadType270    = "X12_270_Request_005010X279A1"
	PayloadType271    = "X12_271_Response_005010X279A1"
	ProcessingMode    = "RealTime"
	CORERuleVersion   = "2.2.0"
	FormatSOAP        = "soap"
	FormatMIME        = "mime"
	timestampLayout   = "2006-01-02T15:04:05Z07:00"
	soapAction        = "RealTimeTransaction"
	soapContentType   = `application/soap+xml; charset=utf-8; action="` + soapAction + `"`
	payloadElementTag = "Payload"
)

// Credentials are the per-clearinghouse identity fields carried in every envelope.
type Credentials struct {
	Username   string
	Password   string
	SenderID   string
	ReceiverID string
}

// Request is the CORE envelope metadata for one submission.
type Request struct {
	PayloadType     string
	ProcessingMode  string
	PayloadID       string
	TimeStamp       string
	SenderID        string
	ReceiverID      string
	CORERuleVersion string
	Payload         string
}

// Encoded is a ready-to-send HTTP body.
type Encoded struct {
	Body        []byte
	ContentType string
	Headers     map[string]string
	PayloadID   string
	TimeStamp   string
}

// Adapter turns an X12 payload into one envelope format. Implementations must
// leave every byte of the payload untouched.
type Adapter interface {
	Name() string
	Encode(payload string) (*Encoded, error)
}

// New returns the adapter for a configured format.
func New(format string, creds Credentials) (Adapter, error) {
	switch format {
	case FormatSOAP, "":
		return NewSOAPAdapter(creds), nil
	case FormatMIME:
		return NewMIMEAdapter(creds), nil
	}
	return nil, &UnknownFormatError{Format: format}
}

// UnknownFormatError is returned by New for unsupported envelope formats.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return "envelope: unknown format " + e.Format
}

func newRequest(payload string, creds Credentials, now time.Time) Request {
	return Request{
		PayloadType:     PayloadType270,
		ProcessingMode:  ProcessingMode,
		PayloadID:       uuid.NewString(),
		TimeStamp:       now.UTC().Truncate(time.Second).Format(timestampLayout),
		SenderID:        creds.SenderID,
		ReceiverID:      creds.ReceiverID,
		CORERuleVersion: CORERuleVersion,
		Payload:         payload,
	}
}
