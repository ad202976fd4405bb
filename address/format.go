package address

import (
	"strings"
)

// Entry is a single address with its optional display name.
type Entry struct {
	// Name is the display name, unquoted and unescaped. It is only meaningful
	// when HasName is true.
	Name string

	// HasName is false for bare addresses like bob@example.com and anonymous
	// bracketed addresses like <bob@example.com>.
	HasName bool

	// Address is the address itself, without angle brackets.
	Address string
}

// New returns an Entry with no display name.
func New(address string) Entry {
	return Entry{Address: address}
}

// NewNamed returns an Entry with a display name.
func NewNamed(name, address string) Entry {
	return Entry{Name: name, HasName: true, Address: address}
}

// String formats the entry for use in a header field.
//
// A name is only quoted when it contains a '"'. Names containing commas are
// left unquoted and will not parse back as a single entry.
func (e Entry) String() string {
	if !e.HasName {
		return e.Address
	}

	if e.Name == "" {
		return "<" + e.Address + ">"
	}

	name := e.Name
	if strings.ContainsRune(name, '"') {
		name = quote(name)
	}

	return name + " <" + e.Address + ">"
}

// quote wraps s in double quotes, escaping quotes and backslashes.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// List is an ordered list of address entries. Order and duplicates are kept
// exactly as found in the source.
type List []Entry

// Addresses returns just the addresses of the list, in order.
func (l List) Addresses() []string {
	as := make([]string, len(l))
	for i, e := range l {
		as[i] = e.Address
	}
	return as
}

// String is the same as FormatList(l).
func (l List) String() string {
	return FormatList(l)
}

// FormatList formats the list as a header field value with entries separated
// by ", ". It never fails and performs no validation of the addresses.
func FormatList(l List) string {
	strs := make([]string, len(l))
	for i, e := range l {
		strs[i] = e.String()
	}
	return strings.Join(strs, ", ")
}
