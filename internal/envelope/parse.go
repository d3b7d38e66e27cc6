package envelope

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"mime"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/DanielPopoola/eligibility-gateway/internal/x12"
)

// Response is what a clearinghouse sent back, unwrapped.
type Response struct {
	PayloadType  string
	PayloadID    string
	ErrorCode    string
	ErrorMessage string
	Payload      string
	Document     *x12.Document
}

var (
	payloadCDATA = regexp.MustCompile(`(?s)<(?:[\w-]+:)?Payload[^>]*>\s*<!\[CDATA\[(.*?)\]\]>\s*</(?:[\w-]+:)?Payload>`)
	payloadPlain = regexp.MustCompile(`(?s)<(?:[\w-]+:)?Payload[^>]*>(.*?)</(?:[\w-]+:)?Payload>`)
)

// ExtractPayload unwraps a SOAP, MIME or bare X12 reply and requires a 271
// transaction set inside it.
func ExtractPayload(body []byte, contentType string) (*Response, error) {
	resp, err := unwrap(body, contentType)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(resp.Payload) == "" {
		if resp.ErrorCode != "" || resp.ErrorMessage != "" {
			return nil, domain.NewMalformedResponseError(
				fmt.Sprintf("clearinghouse error %s: %s", resp.ErrorCode, resp.ErrorMessage), nil)
		}
		return nil, domain.NewMalformedResponseError("response carries no payload", nil)
	}

	doc, err := x12.Parse(resp.Payload)
	if err != nil {
		return nil, domain.NewMalformedResponseError("payload is not valid X12", err)
	}
	if !doc.HasTransactionSet("271") {
		if doc.HasTransactionSet("999") || doc.HasTransactionSet("997") {
			return nil, domain.NewMalformedResponseError("functional acknowledgment only", nil)
		}
		return nil, domain.NewMalformedResponseError(
			fmt.Sprintf("no 271 transaction set (found %v)", doc.TransactionSets()), nil)
	}

	resp.Document = doc
	return resp, nil
}

func unwrap(body []byte, contentType string) (*Response, error) {
	mediaType, params, _ := mime.ParseMediaType(contentType)
	if strings.HasPrefix(mediaType, "multipart/") {
		return unwrapMultipart(body, params["boundary"])
	}

	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0:
		return nil, domain.NewMalformedResponseError("response body is empty", nil)
	case bytes.HasPrefix(trimmed, []byte("ISA")):
		return &Response{Payload: string(trimmed)}, nil
	case trimmed[0] == '<':
		resp, err := unwrapXML(trimmed)
		if err == nil {
			return resp, nil
		}
		if fallback, ok := unwrapRegex(trimmed); ok {
			return fallback, nil
		}
		return nil, domain.NewMalformedResponseError("response is not well-formed XML", err)
	}
	return nil, domain.NewMalformedResponseError("unrecognised response format", nil)
}

func unwrapMultipart(body []byte, boundary string) (*Response, error) {
	if boundary == "" {
		return nil, domain.NewMalformedResponseError("multipart response without boundary", nil)
	}

	resp := &Response{}
	r := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewMalformedResponseError("error reading multipart response", err)
		}
		value, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, domain.NewMalformedResponseError("error reading multipart part", err)
		}
		assign(resp, part.FormName(), string(value))
	}
	return resp, nil
}

// unwrapXML walks the token stream so any namespace prefix and both escaped
// and CDATA payloads are accepted.
func unwrapXML(body []byte) (*Response, error) {
	resp := &Response{}
	d := xml.NewDecoder(bytes.NewReader(body))
	inFault := false

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if name == "Fault" {
				inFault = true
				continue
			}
			if inFault {
				if err := readFault(d, t, resp); err != nil {
					return nil, err
				}
				continue
			}
			switch name {
			case "PayloadType", "PayloadID", "ErrorCode", "ErrorMessage", payloadElementTag:
				var v string
				if err := d.DecodeElement(&v, &t); err != nil {
					return nil, err
				}
				assign(resp, name, v)
			}
		case xml.EndElement:
			if t.Name.Local == "Fault" {
				inFault = false
			}
		}
	}
	return resp, nil
}

// readFault maps SOAP 1.1 and 1.2 fault children onto the error fields.
func readFault(d *xml.Decoder, t xml.StartElement, resp *Response) error {
	switch t.Name.Local {
	case "faultcode", "Value":
		var v string
		if err := d.DecodeElement(&v, &t); err != nil {
			return err
		}
		if resp.ErrorCode == "" {
			resp.ErrorCode = strings.TrimSpace(v)
		}
	case "faultstring", "Text":
		var v string
		if err := d.DecodeElement(&v, &t); err != nil {
			return err
		}
		if resp.ErrorMessage == "" {
			resp.ErrorMessage = strings.TrimSpace(v)
		}
	}
	return nil
}

func unwrapRegex(body []byte) (*Response, bool) {
	if m := payloadCDATA.FindSubmatch(body); m != nil {
		return &Response{Payload: string(m[1])}, true
	}
	if m := payloadPlain.FindSubmatch(body); m != nil {
		return &Response{Payload: html.UnescapeString(string(m[1]))}, true
	}
	return nil, false
}

func assign(resp *Response, field, value string) {
	switch field {
	case "PayloadType":
		resp.PayloadType = strings.TrimSpace(value)
	case "PayloadID":
		resp.PayloadID = strings.TrimSpace(value)
	case "ErrorCode":
		resp.ErrorCode = strings.TrimSpace(value)
	case "ErrorMessage":
		resp.ErrorMessage = strings.TrimSpace(value)
	case payloadElementTag:
		resp.Payload = strings.TrimSpace(value)
	}
}
