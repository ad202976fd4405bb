package address

import (
	"fmt"
	"strings"
)

// SyntaxError is returned by Parse and ParseList when the tokens do not form a
// valid address list.
type SyntaxError struct {
	Pos   int    // index of the offending token
	Token Token  // the offending token
	Msg   string // what was wrong
}

// Error returns the error message.
func (err *SyntaxError) Error() string {
	return fmt.Sprintf("address list syntax error at token %d: %s", err.Pos, err.Msg)
}

// parser is a recursive descent parser over the grammar:
//
//	list    := address (',' address)* End
//	address := String
//	         | String+ '<' String '>'
//	         | '<' String '>'
type parser struct {
	tokens []Token
	pos    int
}

// peek returns the current token. Running off the end of the tokens is
// treated as though a KindEnd token were there.
func (p *parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: KindEnd}
}

// next returns the current token and moves past it.
func (p *parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// errorAt builds a SyntaxError for the token at pos.
func (p *parser) errorAt(pos int, format string, args ...any) error {
	tok := Token{Kind: KindEnd}
	if pos < len(p.tokens) {
		tok = p.tokens[pos]
	}

	return &SyntaxError{
		Pos:   pos,
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// Parse reduces the given tokens, usually the output of Tokenize, to a List.
// It returns a *SyntaxError if the tokens are not a valid address list. No
// partial list is returned on error.
//
// An empty list is not valid: tokens containing nothing but KindEnd are a
// syntax error.
func Parse(tokens []Token) (List, error) {
	p := &parser{tokens: tokens}

	list := make(List, 0, 1)
	for {
		e, err := p.entry()
		if err != nil {
			return nil, err
		}

		list = append(list, e)

		pos := p.pos
		switch tok := p.next(); tok.Kind {
		case KindComma:
			continue
		case KindEnd:
			return list, nil
		default:
			return nil, p.errorAt(pos, "expected ',' or end of list, found %s", tok.Kind)
		}
	}
}

// entry parses a single address with its optional display name.
func (p *parser) entry() (Entry, error) {
	start := p.pos
	switch tok := p.peek(); tok.Kind {
	case KindLAngle:
		p.next()
		a, err := p.bracketed()
		if err != nil {
			return Entry{}, err
		}
		return Entry{Address: a}, nil

	case KindString:
		words := make([]string, 0, 2)
		for p.peek().Kind == KindString {
			words = append(words, p.next().Text)
		}

		if p.peek().Kind == KindLAngle {
			p.next()
			a, err := p.bracketed()
			if err != nil {
				return Entry{}, err
			}
			return Entry{
				Name:    strings.Join(words, " "),
				HasName: true,
				Address: a,
			}, nil
		}

		if len(words) > 1 {
			return Entry{}, p.errorAt(start+1, "unexpected %q after address %q", words[1], words[0])
		}

		if words[0] == "" {
			return Entry{}, p.errorAt(start, "empty address")
		}

		return Entry{Address: words[0]}, nil

	case KindEnd:
		if start == 0 {
			return Entry{}, p.errorAt(start, "empty address list")
		}
		return Entry{}, p.errorAt(start, "missing address after ','")

	case KindComma:
		return Entry{}, p.errorAt(start, "empty address before ','")

	default:
		return Entry{}, p.errorAt(start, "unexpected %s", tok.Kind)
	}
}

// bracketed parses the String '>' following a '<'. Whitespace around the
// address inside the brackets is dropped.
func (p *parser) bracketed() (string, error) {
	pos := p.pos
	tok := p.next()
	if tok.Kind != KindString {
		return "", p.errorAt(pos, "expected address after '<', found %s", tok.Kind)
	}

	a := strings.TrimSpace(tok.Text)
	if a == "" {
		return "", p.errorAt(pos, "empty address in '<>'")
	}

	pos = p.pos
	if end := p.next(); end.Kind != KindRAngle {
		return "", p.errorAt(pos, "missing '>' after %q", a)
	}

	return a, nil
}

// ParseList tokenizes and parses the raw header value into a List. It returns
// a *SyntaxError if the value is not a valid address list, including when the
// value is empty.
func ParseList(raw string) (List, error) {
	return Parse(Tokenize(raw))
}
