// Package mailutil is a small toolkit for the parts of email that sit around a
// message rather than inside it.
//
// The address package is the core. It tokenizes and parses the address lists
// found in From, To, Cc and similar header fields, and formats them back
// again. It handles the practical subset of RFC 5322 that turns up in real
// mail: bare addresses, addresses in angle brackets, and display names that
// may be quoted. Strict validation is left to github.com/zostay/go-addr, which
// the address package can convert to and from.
//
// Around that core:
//
//   - header holds an ordered list of header fields with typed accessors for
//     address lists, dates and message IDs.
//   - msgid generates Message-ID values and MIME boundaries.
//   - dns finds the mail exchangers of a domain and the name of the local host.
//   - sasl answers CRAM-MD5 challenges.
//   - submit sends a message through a relay or straight to the recipients'
//     mail exchangers.
//
// The mailutil command in cmd/mailutil exposes each of these from the shell.
package mailutil
