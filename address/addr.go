package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// ErrInvalidAddress is returned by Validate when an address fails a strict
// RFC 5322 addr-spec parse.
var ErrInvalidAddress = errors.New("invalid email address")

// Validate strictly checks that the entry's address is an RFC 5322 addr-spec.
// ParseList is lenient about what goes in the address, so use this when the
// address needs to be deliverable.
func (e Entry) Validate() error {
	if _, err := addr.ParseEmailAddrSpec(e.Address); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidAddress, e.Address, err)
	}
	return nil
}

// Validate runs Validate on every entry and returns the first failure.
func (l List) Validate() error {
	for _, e := range l {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// addrSpec parses the address strictly, falling back to a naive split on the
// last @ for addresses the strict parser will not accept.
func addrSpec(a string) *addr.AddrSpec {
	as, err := addr.ParseEmailAddrSpec(a)
	if err == nil {
		return as
	}

	if i := strings.LastIndex(a, "@"); i > -1 {
		return addr.NewAddrSpecParsed(a[:i], a[i+1:], a)
	}

	return addr.NewAddrSpecParsed(a, "", a)
}

// Mailbox converts the entry into a go-addr mailbox, for use with code that
// works with github.com/zostay/go-addr types.
func (e Entry) Mailbox() (*addr.Mailbox, error) {
	return addr.NewMailboxParsed(e.Name, addrSpec(e.Address), "", e.String())
}

// AddressList converts the list into a go-addr address list.
func (l List) AddressList() (addr.AddressList, error) {
	al := make(addr.AddressList, 0, len(l))
	for _, e := range l {
		mb, err := e.Mailbox()
		if err != nil {
			return nil, fmt.Errorf("converting %q: %w", e.Address, err)
		}
		al = append(al, mb)
	}
	return al, nil
}

// FromAddressList converts a go-addr address list into a List. Groups are
// skipped as this package does not represent them.
func FromAddressList(al addr.AddressList) List {
	l := make(List, 0, len(al))
	for _, a := range al {
		switch v := a.(type) {
		case *addr.Mailbox:
			e := New(v.Address())
			if dn := v.DisplayName(); dn != "" {
				e = NewNamed(dn, e.Address)
			}
			l = append(l, e)
		case *addr.AddrSpec:
			l = append(l, New(v.Address()))
		}
	}
	return l
}
