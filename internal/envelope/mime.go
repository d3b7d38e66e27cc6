package envelope

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"time"
)

// MIMEAdapter produces CORE HTTP MIME multipart/form-data submissions.
type MIMEAdapter struct {
	creds Credentials
	now   func() time.Time
}

func NewMIMEAdapter(creds Credentials) *MIMEAdapter {
	return &MIMEAdapter{creds: creds, now: time.Now}
}

func (a *MIMEAdapter) Name() string { return FormatMIME }

func (a *MIMEAdapter) Encode(payload string) (*Encoded, error) {
	req := newRequest(payload, a.creds, a.now())

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"PayloadType", req.PayloadType},
		{"ProcessingMode", req.ProcessingMode},
		{"PayloadID", req.PayloadID},
		{"TimeStamp", req.TimeStamp},
		{"UserName", a.creds.Username},
		{"Password", a.creds.Password},
		{"SenderID", req.SenderID},
		{"ReceiverID", req.ReceiverID},
		{"CORERuleVersion", req.CORERuleVersion},
		{payloadElementTag, req.Payload},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("error writing %s part: %w", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("error closing multipart body: %w", err)
	}

	return &Encoded{
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
		PayloadID:   req.PayloadID,
		TimeStamp:   req.TimeStamp,
	}, nil
}
