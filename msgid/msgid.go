// Package msgid generates unique Message-ID header values and MIME multipart
// boundaries.
//
// Uniqueness comes from a random UUID mixed with a per-generator counter, run
// through MD5 to give a fixed-length hex token. The counter keeps values
// distinct even when the random source is not.
package msgid

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultHost is used for the right-hand side of message IDs when the
// generator has no Host set.
const DefaultHost = "localhost"

// BoundaryPrefix starts every boundary returned by Boundary. It contains
// characters that cannot appear in quoted-printable or base64 output, so the
// boundary is never found inside an encoded part.
const BoundaryPrefix = "----=_Part_"

// Generator creates message IDs and boundaries. The zero value is ready to use.
// A Generator is safe for concurrent use, but must not be copied after first
// use.
type Generator struct {
	// Host is the domain part of generated message IDs. Usually the FQDN of the
	// sending host.
	Host string

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time

	// Rand is the source of randomness. It defaults to crypto/rand.Reader.
	Rand io.Reader

	seq atomic.Uint64
}

// New returns a Generator for the given host.
func New(host string) *Generator {
	return &Generator{Host: host}
}

func (g *Generator) host() string {
	if g.Host == "" {
		return DefaultHost
	}
	return g.Host
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) rand() io.Reader {
	if g.Rand == nil {
		return rand.Reader
	}
	return g.Rand
}

// token returns 32 hex digits unique to this call.
func (g *Generator) token() (string, error) {
	u, err := uuid.NewRandomFromReader(g.rand())
	if err != nil {
		return "", fmt.Errorf("generating unique id: %w", err)
	}

	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], g.seq.Add(1))

	h := md5.New()
	_, _ = h.Write(u[:])
	_, _ = h.Write(seq[:])

	return hex.EncodeToString(h.Sum(nil)), nil
}

// MessageID returns a new value for the Message-ID header, including the angle
// brackets, like <20260102150405.0123456789abcdef0123456789abcdef@host>.
func (g *Generator) MessageID() (string, error) {
	tok, err := g.token()
	if err != nil {
		return "", err
	}

	ts := g.now().UTC().Format("20060102150405")
	return "<" + ts + "." + tok + "@" + g.host() + ">", nil
}

// Boundary returns a new MIME multipart boundary.
func (g *Generator) Boundary() (string, error) {
	tok, err := g.token()
	if err != nil {
		return "", err
	}

	return BoundaryPrefix + tok, nil
}
