// Package address parses and formats the address lists found in email header
// fields such as To, From, and Cc.
//
// The parser handles the practical subset of RFC 822 addresses that shows up
// in real mail: an optional display name (quoted or not), an optional
// angle-bracketed address, and comma-separated lists of these. Comments,
// groups, and encoded-words are not supported.
//
// Parsing happens in two steps. Tokenize turns a raw header value into a flat
// slice of Token values and never fails. Parse reduces those tokens into a
// List, failing with a *SyntaxError when they do not form a valid address
// list. ParseList does both.
//
// FormatList (or List.String) goes the other way, producing a header value
// from a List. For well-formed input the two directions round-trip.
//
// All the functions in this package are pure and safe for concurrent use.
package address
