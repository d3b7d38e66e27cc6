package envelope

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

const (
	nsSOAP = "http://www.w3.org/2003/05/soap-envelope"
	nsCORE = "http://www.caqh.org/SOAP/WSDL/CORERule2.2.0.xsd"
	nsWSSE = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"

	passwordTextType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText"
)

type soapEnvelope struct {
	XMLName xml.Name   `xml:"soapenv:Envelope"`
	SOAPNS  string     `xml:"xmlns:soapenv,attr"`
	CORENS  string     `xml:"xmlns:cor,attr"`
	Header  soapHeader `xml:"soapenv:Header"`
	Body    soapBody   `xml:"soapenv:Body"`
}

type soapHeader struct {
	Security wsseSecurity `xml:"wsse:Security"`
}

type wsseSecurity struct {
	WSSENS         string        `xml:"xmlns:wsse,attr"`
	MustUnderstand string        `xml:"soapenv:mustUnderstand,attr"`
	UsernameToken  usernameToken `xml:"wsse:UsernameToken"`
}

type usernameToken struct {
	Username string       `xml:"wsse:Username"`
	Password wssePassword `xml:"wsse:Password"`
}

type wssePassword struct {
	Type  string `xml:"Type,attr"`
	Value string `xml:",chardata"`
}

type soapBody struct {
	Request coreRealTimeRequest `xml:"cor:COREEnvelopeRealTimeRequest"`
}

type coreRealTimeRequest struct {
	PayloadType     string    `xml:"PayloadType"`
	ProcessingMode  string    `xml:"ProcessingMode"`
	PayloadID       string    `xml:"PayloadID"`
	TimeStamp       string    `xml:"TimeStamp"`
	SenderID        string    `xml:"SenderID"`
	ReceiverID      string    `xml:"ReceiverID"`
	CORERuleVersion string    `xml:"CORERuleVersion"`
	Payload         cdataText `xml:"Payload"`
}

type cdataText struct {
	Value string `xml:",cdata"`
}

// SOAPAdapter produces CORE Rule 2.2.0 SOAP 1.2 envelopes with a WS-Security
// UsernameToken header. The payload travels in a CDATA section.
type SOAPAdapter struct {
	creds Credentials
	now   func() time.Time
}

func NewSOAPAdapter(creds Credentials) *SOAPAdapter {
	return &SOAPAdapter{creds: creds, now: time.Now}
}

func (a *SOAPAdapter) Name() string { return FormatSOAP }

func (a *SOAPAdapter) Encode(payload string) (*Encoded, error) {
	req := newRequest(payload, a.creds, a.now())

	env := soapEnvelope{
		SOAPNS: nsSOAP,
		CORENS: nsCORE,
		Header: soapHeader{Security: wsseSecurity{
			WSSENS:         nsWSSE,
			MustUnderstand: "true",
			UsernameToken: usernameToken{
				Username: a.creds.Username,
				Password: wssePassword{Type: passwordTextType, Value: a.creds.Password},
			},
		}},
		Body: soapBody{Request: coreRealTimeRequest{
			PayloadType:     req.PayloadType,
			ProcessingMode:  req.ProcessingMode,
			PayloadID:       req.PayloadID,
			TimeStamp:       req.TimeStamp,
			SenderID:        req.SenderID,
			ReceiverID:      req.ReceiverID,
			CORERuleVersion: req.CORERuleVersion,
			Payload:         cdataText{Value: req.Payload},
		}},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("error encoding soap envelope: %w", err)
	}

	return &Encoded{
		Body:        buf.Bytes(),
		ContentType: soapContentType,
		Headers:     map[string]string{"SOAPAction": soapAction},
		PayloadID:   req.PayloadID,
		TimeStamp:   req.TimeStamp,
	}, nil
}
