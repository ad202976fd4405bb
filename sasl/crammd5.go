// Package sasl provides the CRAM-MD5 SASL mechanism (RFC 2195) as a client for
// github.com/emersion/go-sasl, which does not ship one.
package sasl

import (
	"bytes"
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	gosasl "github.com/emersion/go-sasl"
)

// CRAMMD5 is the SASL mechanism name.
const CRAMMD5 = "CRAM-MD5"

// Errors returned by the CRAM-MD5 client.
var (
	// ErrInvalidChallenge is returned when the server challenge is not of
	// the form <anything@host>.
	ErrInvalidChallenge = errors.New("invalid CRAM-MD5 challenge")

	// ErrUnexpectedChallenge is returned when the server sends another
	// challenge after the response was already sent.
	ErrUnexpectedChallenge = errors.New("unexpected CRAM-MD5 challenge")
)

// CRAMMD5Response computes the client response to a CRAM-MD5 challenge: the
// username, a space, and the lower-case hex HMAC-MD5 of the challenge keyed
// with the shared secret.
func CRAMMD5Response(username, secret string, challenge []byte) []byte {
	mac := hmac.New(md5.New, []byte(secret))
	_, _ = mac.Write(challenge)

	resp := make([]byte, 0, len(username)+1+md5.Size*2)
	resp = append(resp, username...)
	resp = append(resp, ' ')
	return append(resp, hex.EncodeToString(mac.Sum(nil))...)
}

type cramMD5Client struct {
	username string
	secret   string
	done     bool
}

var _ gosasl.Client = (*cramMD5Client)(nil)

// NewCRAMMD5Client returns a CRAM-MD5 client for use with anything that takes
// a go-sasl client, such as (*smtp.Client).Auth from go-smtp.
func NewCRAMMD5Client(username, secret string) gosasl.Client {
	return &cramMD5Client{username: username, secret: secret}
}

// Start begins authentication. CRAM-MD5 has no initial response.
func (c *cramMD5Client) Start() (string, []byte, error) {
	c.done = false
	return CRAMMD5, nil, nil
}

// Next answers the server challenge.
func (c *cramMD5Client) Next(challenge []byte) ([]byte, error) {
	if c.done {
		return nil, ErrUnexpectedChallenge
	}

	if err := checkChallenge(challenge); err != nil {
		return nil, err
	}

	c.done = true
	return CRAMMD5Response(c.username, c.secret, challenge), nil
}

// checkChallenge verifies the challenge looks like a msg-id, which RFC 2195
// requires.
func checkChallenge(challenge []byte) error {
	if len(challenge) < 2 || challenge[0] != '<' || challenge[len(challenge)-1] != '>' {
		return fmt.Errorf("%w: missing angle brackets", ErrInvalidChallenge)
	}

	inner := challenge[1 : len(challenge)-1]
	at := bytes.LastIndexByte(inner, '@')
	if at <= 0 || at == len(inner)-1 {
		return fmt.Errorf("%w: expected <id@host>", ErrInvalidChallenge)
	}

	return nil
}
