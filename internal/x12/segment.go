// Package x12 builds 270 eligibility inquiries and reads 271 responses.
package x12

import (
	"fmt"
	"strings"
)

// Delimiters are the four separators of an interchange.
type Delimiters struct {
	Element    byte
	Repetition byte
	Component  byte
	Segment    byte
}

// DefaultDelimiters are the separators this package writes.
var DefaultDelimiters = Delimiters{
	Element:    '*',
	Repetition: '^',
	Component:  ':',
	Segment:    '~',
}

// isaLength is the fixed length of an ISA segment, terminator excluded.
const isaLength = 105

// DetectDelimiters reads the separators from a fixed-width ISA header and
// falls back to the defaults when the body does not start with one.
func DetectDelimiters(body string) Delimiters {
	body = strings.TrimLeft(body, " \r\n\t")
	if len(body) <= isaLength || !strings.HasPrefix(body, "ISA") {
		return DefaultDelimiters
	}
	return Delimiters{
		Element:    body[3],
		Repetition: body[82],
		Component:  body[104],
		Segment:    body[isaLength],
	}
}

// Segment is one tokenized segment. Elements[0] is EB01 for an EB segment.
type Segment struct {
	ID       string
	Elements []string
}

// NewSegment builds a segment from its ID and element values.
func NewSegment(id string, elements ...string) Segment {
	return Segment{ID: id, Elements: elements}
}

// Element returns the n-th element using X12 numbering (EB01 is Element(1)),
// or "" when the segment is shorter.
func (s Segment) Element(n int) string {
	if n < 1 || n > len(s.Elements) {
		return ""
	}
	return s.Elements[n-1]
}

// Repeats splits the n-th element on the repetition separator.
func (s Segment) Repeats(n int, d Delimiters) []string {
	raw := s.Element(n)
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, string(d.Repetition)) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// String renders the segment with trailing empty elements dropped and the
// segment terminator appended. ISA keeps every element because it is fixed width.
func (s Segment) String(d Delimiters) string {
	elems := s.Elements
	if s.ID != "ISA" {
		for len(elems) > 0 && elems[len(elems)-1] == "" {
			elems = elems[:len(elems)-1]
		}
	}
	var b strings.Builder
	b.WriteString(s.ID)
	for _, e := range elems {
		b.WriteByte(d.Element)
		b.WriteString(e)
	}
	b.WriteByte(d.Segment)
	return b.String()
}

// Document is a tokenized interchange.
type Document struct {
	Delimiters Delimiters
	Segments   []Segment
}

// Parse tokenizes an interchange into segments, tolerating line breaks
// between segments.
func Parse(body string) (*Document, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("x12: body is empty")
	}

	d := DetectDelimiters(body)
	doc := &Document{Delimiters: d}

	for _, raw := range strings.Split(body, string(d.Segment)) {
		raw = strings.Trim(raw, " \r\n\t")
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, string(d.Element))
		id := strings.TrimSpace(parts[0])
		if id == "" || len(id) > 3 {
			return nil, fmt.Errorf("x12: invalid segment identifier %q", id)
		}
		doc.Segments = append(doc.Segments, Segment{ID: id, Elements: parts[1:]})
	}

	if len(doc.Segments) == 0 {
		return nil, fmt.Errorf("x12: no segments found")
	}
	return doc, nil
}

// TransactionSets returns the ST01 value of every transaction set in order.
func (d *Document) TransactionSets() []string {
	var sets []string
	for _, s := range d.Segments {
		if s.ID == "ST" {
			sets = append(sets, s.Element(1))
		}
	}
	return sets
}

// HasTransactionSet reports whether any ST segment carries the given code.
func (d *Document) HasTransactionSet(code string) bool {
	for _, set := range d.TransactionSets() {
		if set == code {
			return true
		}
	}
	return false
}

// Render joins segments with the given delimiters.
func Render(segments []Segment, d Delimiters) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.String(d))
	}
	return b.String()
}
