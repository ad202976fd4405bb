package header

import (
	"bytes"
	"fmt"
)

// BadStartError is returned by Parse when the text before the first field
// does not look like a header field. The header is still parsed.
type BadStartError struct {
	Skipped []byte // the lines before the first field, line endings included
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return fmt.Sprintf("skipped %d bytes of non-header text before the first field", len(err.Skipped))
}

// startsField reports whether line begins a new field. The name before the
// colon must be a single word, though whitespace may trail it.
func startsField(line []byte) bool {
	if len(line) == 0 || line[0] == ' ' || line[0] == '\t' {
		return false
	}

	name, _, found := bytes.Cut(line, []byte{':'})
	name = bytes.TrimRight(name, " \t")
	return found && len(name) > 0 && bytes.IndexAny(name, " \t") < 0
}

// newField splits an unfolded field line at its first colon.
func newField(line []byte) Field {
	name, body, _ := bytes.Cut(line, []byte{':'})
	return Field{
		Name: string(bytes.TrimSpace(name)),
		Body: string(bytes.TrimSpace(body)),
	}
}

// Parse reads the header in m, which must contain only the header (everything
// up to, but not including, the blank line that ends it). Lines are separated
// by lb. Continuation lines, and lines with no colon, are unfolded into the
// field before them.
//
// If the text starts with lines that are not header fields, they are skipped
// and a *BadStartError is returned along with the parsed header.
func Parse(m []byte, lb Break) (*Header, error) {
	h := &Header{lb: lb}

	var (
		skipped []byte
		cur     []byte // the field being unfolded, nil before the first one
	)
	for rest := m; len(rest) > 0; {
		line, after, _ := bytes.Cut(rest, lb.Bytes())
		raw := rest[:len(rest)-len(after)]
		rest = after

		switch {
		case startsField(line):
			if cur != nil {
				h.fields = append(h.fields, newField(cur))
			}
			cur = append([]byte(nil), line...)
		case cur == nil:
			skipped = append(skipped, raw...)
		default:
			cur = append(cur, line...)
		}
	}
	if cur != nil {
		h.fields = append(h.fields, newField(cur))
	}

	if skipped != nil {
		return h, &BadStartError{Skipped: skipped}
	}

	return h, nil
}

// detectBreak guesses the line ending of m from its first line.
func detectBreak(m []byte) Break {
	i := bytes.IndexByte(m, '\n')
	switch {
	case i > 0 && m[i-1] == '\r':
		return CRLF
	case i >= 0:
		return LF
	case bytes.IndexByte(m, '\r') >= 0:
		return CR
	default:
		return LF
	}
}

// Split separates a whole message into its parsed header and its body. The
// line ending is detected from the first line, and the header ends at the
// first blank line. Without a blank line, all of m is header and the body is
// empty.
//
// As with Parse, a *BadStartError may be returned alongside the header.
func Split(m []byte) (*Header, []byte, error) {
	lb := detectBreak(m)
	lbb := lb.Bytes()

	var head, body []byte
	switch {
	case bytes.HasPrefix(m, lbb):
		body = m[len(lbb):]
	default:
		end := bytes.Index(m, append(append([]byte(nil), lbb...), lbb...))
		if end < 0 {
			head = m
			break
		}
		head = m[:end+len(lbb)]
		body = m[end+2*len(lbb):]
	}

	h, err := Parse(head, lb)
	return h, body, err
}
