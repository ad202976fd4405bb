// Package scanner holds helpers for driving a bufio.Scanner with the stateful
// split functions used by the tokenizers in this module.
package scanner

import (
	"bufio"
	"strings"
)

// The built-in bufio.Scanner hands control back to its own loop every time a
// SplitFunc consumes input without producing a token. That is fine, but it
// means a split function that wants to discard something (like the whitespace
// between address tokens) either has to carry its own inner loop or has to be
// careful to return exactly the right advance so the scanner comes back to it.
//
// SkipUntilToken moves that inner loop here so the split function can simply
// return (n, nil, nil) to throw away n bytes.

// SkipUntilToken wraps split so that a call which advances over input without
// returning a token is immediately retried on the remaining data. The wrapped
// function returns to the scanner when split returns a token, returns an error,
// asks for more data (advance == 0), or has consumed all of the data it was
// given.
func SkipUntilToken(split bufio.SplitFunc) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		total := 0
		for {
			advance, token, err := split(data, atEOF)

			// advance is accumulated so the outer loop moves forward by the
			// whole amount skipped, not just the final step
			if token != nil || err != nil || advance == 0 || advance >= len(data) {
				return total + advance, token, err
			}

			data = data[advance:]
			total += advance
		}
	}
}

// NewStringScanner returns a bufio.Scanner over s with a buffer large enough
// to hold all of s, so that the scanner can never fail with bufio.ErrTooLong
// regardless of how far a split function needs to look ahead.
func NewStringScanner(s string, split bufio.SplitFunc) *bufio.Scanner {
	sc := bufio.NewScanner(strings.NewReader(s))

	// one extra byte leaves room for the final read that reports io.EOF
	size := len(s) + 1
	sc.Buffer(make([]byte, 0, size), size)
	sc.Split(SkipUntilToken(split))

	return sc
}
