package address

import (
	"github.com/zostay/go-mailutil/internal/scanner"
)

// Kind identifies the type of a Token.
type Kind int

// These are the kinds of tokens produced by Tokenize.
const (
	KindString Kind = iota // a bare word, quoted string, or bracketed address
	KindComma              // ,
	KindLAngle             // <
	KindRAngle             // >
	KindEnd                // end of input, always the last token
)

// String returns a short description of the kind for use in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindComma:
		return "','"
	case KindLAngle:
		return "'<'"
	case KindRAngle:
		return "'>'"
	case KindEnd:
		return "end of list"
	default:
		return "unknown token"
	}
}

// Token is a single lexical unit of an address list. Only tokens of
// KindString carry Text.
type Token struct {
	Kind Kind
	Text string
}

// tokenizer is the state kept between calls to split.
type tokenizer struct {
	kind    Kind // kind of the token most recently returned
	bracket bool // a '<' was just returned, so the next token is its content
	closing bool // the bracket content was just returned and its '>' is next
}

// Tokenize breaks the input up into tokens. It never fails. Malformed input,
// such as an unterminated quoted string or a '<' without a matching '>',
// produces the best tokens it can and leaves it up to Parse to decide whether
// they make sense. The returned slice always ends with a KindEnd token.
func Tokenize(input string) []Token {
	t := &tokenizer{}
	sc := scanner.NewStringScanner(input, t.split)

	tokens := make([]Token, 0, 8)
	for sc.Scan() {
		tok := Token{Kind: t.kind}
		if t.kind == KindString {
			tok.Text = sc.Text()
		}
		tokens = append(tokens, tok)
	}

	// The scanner buffer holds all of input, so there is no error to report.

	return append(tokens, Token{Kind: KindEnd})
}

// split is the bufio.SplitFunc for address tokens. It returns (n, nil, nil)
// to discard whitespace and (0, nil, nil) when it needs to see more input.
func (t *tokenizer) split(data []byte, atEOF bool) (int, []byte, error) {
	if t.bracket {
		return t.splitBracket(data, atEOF)
	}
	if t.closing {
		t.closing = false
		t.kind = KindRAngle
		return 1, data[:1], nil
	}

	if len(data) == 0 {
		return 0, nil, nil
	}

	switch c := data[0]; {
	case c <= ' ':
		return 1, nil, nil
	case c == '"':
		return t.splitQuoted(data, atEOF)
	case c == ',':
		t.kind = KindComma
		return 1, data[:1], nil
	case c == '<':
		t.kind = KindLAngle
		t.bracket = true
		return 1, data[:1], nil
	}

	return t.splitWord(data, atEOF)
}

// splitBracket returns the text between a '<' and the first unescaped '>'.
// The '>' is left in place to be returned next as a KindRAngle token. Without a
// closing '>' the rest of the input is returned.
func (t *tokenizer) splitBracket(data []byte, atEOF bool) (int, []byte, error) {
	escaped := false
	for i, c := range data {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '>':
			t.bracket = false
			t.closing = true
			t.kind = KindString
			return i, data[:i], nil
		}
	}

	if !atEOF {
		return 0, nil, nil
	}

	t.bracket = false
	t.kind = KindString
	if data == nil {
		data = []byte{}
	}
	return len(data), data, nil
}

// splitQuoted returns the unescaped contents of the quoted string at the start
// of data. A backslash makes the character after it literal. An unterminated
// quoted string returns everything accumulated up to the end of input.
func (t *tokenizer) splitQuoted(data []byte, atEOF bool) (int, []byte, error) {
	// data holds the rest of the input, so buf is grown rather than sized to it
	buf := make([]byte, 0, 32)
	escaped := false
	for i := 1; i < len(data); i++ {
		c := data[i]
		switch {
		case escaped:
			buf = append(buf, c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			t.kind = KindString
			return i + 1, buf, nil
		default:
			buf = append(buf, c)
		}
	}

	if !atEOF {
		return 0, nil, nil
	}

	t.kind = KindString
	return len(data), buf, nil
}

// splitWord returns the bare word at the start of data, which runs up to the
// next whitespace, '<', '>', or ','. A '>' that starts the word belongs to it.
func (t *tokenizer) splitWord(data []byte, atEOF bool) (int, []byte, error) {
	for i := 1; i < len(data); i++ {
		if c := data[i]; c <= ' ' || c == '<' || c == '>' || c == ',' {
			t.kind = KindString
			return i, data[:i], nil
		}
	}

	if !atEOF {
		return 0, nil, nil
	}

	t.kind = KindString
	return len(data), data, nil
}
