package header

// Break is the line ending used between header fields.
type Break string

// Line endings. Mail on the wire uses CRLF; files on disk usually use LF.
const (
	CRLF Break = "\r\n"
	LF   Break = "\n"
	CR   Break = "\r"
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}
