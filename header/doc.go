// Package header composes and decomposes email message headers.
//
// A Header is an ordered list of fields. Names are matched without regard to
// case and the original order and spelling are kept for output. On top of the
// plain string accessors, it provides typed accessors for the fields this
// module cares about: address lists (From, To, Cc, ...) via the address
// package, the Date field, and the Message-ID field.
//
// Parse reads an existing header, unfolding continuation lines. WriteTo
// renders a header for transmission.
package header
