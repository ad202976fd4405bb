package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailutil/address"
)

func str(s string) address.Token {
	return address.Token{Kind: address.KindString, Text: s}
}

var (
	comma  = address.Token{Kind: address.KindComma}
	langle = address.Token{Kind: address.KindLAngle}
	rangle = address.Token{Kind: address.KindRAngle}
	end    = address.Token{Kind: address.KindEnd}
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		tokens []address.Token
	}{
		{
			name:   "empty",
			input:  "",
			tokens: []address.Token{end},
		},
		{
			name:   "only whitespace",
			input:  " \t\r\n ",
			tokens: []address.Token{end},
		},
		{
			name:   "bare address",
			input:  "bob@example.com",
			tokens: []address.Token{str("bob@example.com"), end},
		},
		{
			name:   "bare addresses",
			input:  "  bob@example.com ,alice@example.com  ",
			tokens: []address.Token{str("bob@example.com"), comma, str("alice@example.com"), end},
		},
		{
			name:  "quoted name and bracketed address",
			input: `"Bob Smith" <bob@example.com>, alice@example.com`,
			tokens: []address.Token{
				str("Bob Smith"), langle, str("bob@example.com"), rangle,
				comma, str("alice@example.com"), end,
			},
		},
		{
			name:  "unquoted name",
			input: "Bob Smith<bob@example.com>",
			tokens: []address.Token{
				str("Bob"), str("Smith"), langle, str("bob@example.com"), rangle, end,
			},
		},
		{
			name:   "escaped quote",
			input:  `"Na\"me" <c@x.com>`,
			tokens: []address.Token{str(`Na"me`), langle, str("c@x.com"), rangle, end},
		},
		{
			name:   "escaped backslash",
			input:  `"a\\b"`,
			tokens: []address.Token{str(`a\b`), end},
		},
		{
			name:   "quoted comma and brackets",
			input:  `"Smith, <Bob>"`,
			tokens: []address.Token{str("Smith, <Bob>"), end},
		},
		{
			name:   "empty quoted string",
			input:  `""`,
			tokens: []address.Token{str(""), end},
		},
		{
			name:   "unterminated quote",
			input:  `"Bob Smith <bob@example.com>`,
			tokens: []address.Token{str("Bob Smith <bob@example.com>"), end},
		},
		{
			name:   "bracket with whitespace inside",
			input:  "< bob@example.com >",
			tokens: []address.Token{langle, str(" bob@example.com "), rangle, end},
		},
		{
			name:   "escaped bracket",
			input:  `<a\>b>`,
			tokens: []address.Token{langle, str(`a\>b`), rangle, end},
		},
		{
			name:   "empty brackets",
			input:  "<>",
			tokens: []address.Token{langle, str(""), rangle, end},
		},
		{
			name:   "unterminated bracket",
			input:  "<unterminated",
			tokens: []address.Token{langle, str("unterminated"), end},
		},
		{
			name:   "lone bracket",
			input:  "<",
			tokens: []address.Token{langle, str(""), end},
		},
		{
			name:   "stray closing bracket",
			input:  "a>b",
			tokens: []address.Token{str("a"), str(">b"), end},
		},
		{
			name:   "lone closing bracket",
			input:  ">",
			tokens: []address.Token{str(">"), end},
		},
		{
			name:   "doubled brackets",
			input:  "<<a@x.com>> , b",
			tokens: []address.Token{langle, str("<a@x.com"), rangle, str(">"), comma, str("b"), end},
		},
		{
			name:   "consecutive commas",
			input:  ",,",
			tokens: []address.Token{comma, comma, end},
		},
		{
			name:   "utf-8 name",
			input:  "Jörg <jörg@example.com>",
			tokens: []address.Token{str("Jörg"), langle, str("jörg@example.com"), rangle, end},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.tokens, address.Tokenize(tc.input))
		})
	}
}

func TestTokenize_LongInput(t *testing.T) {
	t.Parallel()

	// longer than the default bufio.Scanner token limit
	long := make([]byte, 100000)
	for i := range long {
		long[i] = 'a'
	}

	tokens := address.Tokenize(string(long) + "@example.com")
	assert.Equal(t, []address.Token{str(string(long) + "@example.com"), end}, tokens)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", address.KindString.String())
	assert.Equal(t, "','", address.KindComma.String())
	assert.Equal(t, "'<'", address.KindLAngle.String())
	assert.Equal(t, "'>'", address.KindRAngle.String())
	assert.Equal(t, "end of list", address.KindEnd.String())
}
