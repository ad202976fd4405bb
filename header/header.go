package header

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the named field is
	// not set.
	ErrNoSuchField = errors.New("no such header field")

	// ErrManyFields is returned by Header methods that expect a single field
	// when the named field appears more than once.
	ErrManyFields = errors.New("many header fields found")
)

// These are the header fields this package has typed accessors for.
const (
	Bcc       = "Bcc"
	Cc        = "Cc"
	Date      = "Date"
	From      = "From"
	MessageID = "Message-ID"
	ReplyTo   = "Reply-To"
	Sender    = "Sender"
	Subject   = "Subject"
	To        = "To"
)

// Field is a single header field with an unfolded body.
type Field struct {
	Name string
	Body string
}

// String returns the field as it appears in a header, without a line ending.
func (f Field) String() string {
	return f.Name + ": " + f.Body
}

// Header is an ordered list of header fields. The zero value is an empty
// header that uses CRLF line endings.
type Header struct {
	lb     Break
	fields []Field
}

// Break returns the line ending used when writing the header.
func (h *Header) Break() Break {
	if h.lb == "" {
		return CRLF
	}
	return h.lb
}

// SetBreak changes the line ending used when writing the header.
func (h *Header) SetBreak(lb Break) {
	h.lb = lb
}

// Len returns the number of fields in the header.
func (h *Header) Len() int {
	return len(h.fields)
}

// Fields returns a copy of all the fields in order.
func (h *Header) Fields() []Field {
	fs := make([]Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	return &Header{lb: h.lb, fields: h.Fields()}
}

// indexes returns the positions of the fields with the given name.
func (h *Header) indexes(name string) []int {
	var ixs []int
	for i, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			ixs = append(ixs, i)
		}
	}
	return ixs
}

// Get returns the body of the named field.
//
// If the named field is not set, it returns an empty string with
// ErrNoSuchField. If it is set more than once, it returns the first body
// along with ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	ixs := h.indexes(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.fields[ixs[0]].Body
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// GetAll returns the bodies of every field with the given name. It returns nil
// with ErrNoSuchField if there are none.
func (h *Header) GetAll(name string) ([]string, error) {
	ixs := h.indexes(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(ixs))
	for i, ix := range ixs {
		bs[i] = h.fields[ix].Body
	}
	return bs, nil
}

// Add appends a new field to the end of the header.
func (h *Header) Add(name, body string) {
	h.fields = append(h.fields, Field{Name: name, Body: body})
}

// Set replaces the named field with a single field holding body. The first
// existing field keeps its position and any others are removed. If there is no
// such field, it is appended.
func (h *Header) Set(name, body string) {
	h.SetAll(name, body)
}

// SetAll replaces the named fields with one field per body. Existing fields
// are reused in order, extra bodies are appended to the end, and extra fields
// are removed.
func (h *Header) SetAll(name string, bodies ...string) {
	ixs := h.indexes(name)

	for i, b := range bodies {
		if i < len(ixs) {
			h.fields[ixs[i]] = Field{Name: name, Body: b}
			continue
		}
		h.Add(name, b)
	}

	for i := len(ixs) - 1; i >= len(bodies); i-- {
		h.deleteAt(ixs[i])
	}
}

// Delete removes every field with the given name and returns how many were
// removed.
func (h *Header) Delete(name string) int {
	ixs := h.indexes(name)
	for i := len(ixs) - 1; i >= 0; i-- {
		h.deleteAt(ixs[i])
	}
	return len(ixs)
}

func (h *Header) deleteAt(n int) {
	h.fields = append(h.fields[:n], h.fields[n+1:]...)
}

// Bytes returns the header followed by the blank line that ends it.
func (h *Header) Bytes() []byte {
	lb := h.Break().Bytes()

	var buf bytes.Buffer
	for _, f := range h.fields {
		buf.WriteString(f.String())
		buf.Write(lb)
	}
	buf.Write(lb)

	return buf.Bytes()
}

// String returns the header as a string.
func (h *Header) String() string {
	return string(h.Bytes())
}

// WriteTo writes the header, including the terminating blank line, to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.Bytes())
	return int64(n), err
}

// GetSubject returns the Subject field.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// SetSubject replaces the Subject field.
func (h *Header) SetSubject(s string) {
	h.Set(Subject, s)
}

// GetMessageID returns the Message-ID field, including its angle brackets.
func (h *Header) GetMessageID() (string, error) {
	return h.Get(MessageID)
}

// SetMessageID replaces the Message-ID field. The id should include its angle
// brackets, as returned by msgid.Generator.
func (h *Header) SetMessageID(id string) {
	h.Set(MessageID, id)
}
