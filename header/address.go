package header

import (
	"errors"
	"fmt"

	"github.com/zostay/go-mailutil/address"
)

// GetAddressList parses the named field as an address list.
//
// It returns nil with ErrNoSuchField if the field is not set and
// ErrManyFields if it is set more than once. If the body is not a valid
// address list, the *address.SyntaxError is returned wrapped.
func (h *Header) GetAddressList(name string) (address.List, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	l, err := address.ParseList(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s field: %w", name, err)
	}

	return l, nil
}

// SetAddressList replaces the named field with the formatted address list.
// An empty list removes the field.
func (h *Header) SetAddressList(name string, l address.List) {
	if len(l) == 0 {
		h.Delete(name)
		return
	}
	h.Set(name, address.FormatList(l))
}

// GetFrom returns the From field as an address list.
func (h *Header) GetFrom() (address.List, error) {
	return h.GetAddressList(From)
}

// SetFrom replaces the From field.
func (h *Header) SetFrom(l address.List) {
	h.SetAddressList(From, l)
}

// GetSender returns the Sender field as an address list.
func (h *Header) GetSender() (address.List, error) {
	return h.GetAddressList(Sender)
}

// SetSender replaces the Sender field.
func (h *Header) SetSender(l address.List) {
	h.SetAddressList(Sender, l)
}

// GetReplyTo returns the Reply-To field as an address list.
func (h *Header) GetReplyTo() (address.List, error) {
	return h.GetAddressList(ReplyTo)
}

// SetReplyTo replaces the Reply-To field.
func (h *Header) SetReplyTo(l address.List) {
	h.SetAddressList(ReplyTo, l)
}

// GetTo returns the To field as an address list.
func (h *Header) GetTo() (address.List, error) {
	return h.GetAddressList(To)
}

// SetTo replaces the To field.
func (h *Header) SetTo(l address.List) {
	h.SetAddressList(To, l)
}

// GetCc returns the Cc field as an address list.
func (h *Header) GetCc() (address.List, error) {
	return h.GetAddressList(Cc)
}

// SetCc replaces the Cc field.
func (h *Header) SetCc(l address.List) {
	h.SetAddressList(Cc, l)
}

// GetBcc returns the Bcc field as an address list.
func (h *Header) GetBcc() (address.List, error) {
	return h.GetAddressList(Bcc)
}

// SetBcc replaces the Bcc field.
func (h *Header) SetBcc(l address.List) {
	h.SetAddressList(Bcc, l)
}

// AllRecipients returns the addresses of the To, Cc, and Bcc fields, in that
// order. Missing fields are skipped. Any other error is returned.
func (h *Header) AllRecipients() (address.List, error) {
	var all address.List
	for _, name := range []string{To, Cc, Bcc} {
		l, err := h.GetAddressList(name)
		if errors.Is(err, ErrNoSuchField) {
			continue
		} else if err != nil {
			return nil, err
		}
		all = append(all, l...)
	}
	return all, nil
}
