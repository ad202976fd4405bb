package header

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"
)

// Date formats beyond what net/mail and dateparse understand.
const (
	// RFC5322Date is the layout used when writing dates. It is the date-time
	// production of RFC 5322 section 3.3 with a numeric zone.
	RFC5322Date = "Mon, 02 Jan 2006 15:04:05 -0700"

	// UnixDateWithEarlyYear is a weird one, eh?
	UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"
)

// FormatTime renders t for use in the Date field.
func FormatTime(t time.Time) string {
	return t.Format(RFC5322Date)
}

// ParseTime parses a date field body. It tries the RFC 5322 format first and
// then falls back to the many formats found in the wild.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime parses the named field as a date.
//
// It returns the zero time with ErrNoSuchField if the field is not set and
// ErrManyFields if it is set more than once.
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	return ParseTime(body)
}

// SetTime replaces the named field with the formatted date.
func (h *Header) SetTime(name string, t time.Time) {
	h.Set(name, FormatTime(t))
}

// GetDate returns the Date field.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate replaces the Date field.
func (h *Header) SetDate(t time.Time) {
	h.SetTime(Date, t)
}
