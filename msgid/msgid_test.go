package msgid_test

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailutil/msgid"
)

// zeros is a random source that is not random at all.
type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

type failing struct{}

func (failing) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestGenerator_MessageID(t *testing.T) {
	t.Parallel()

	g := &msgid.Generator{
		Host: "mail.example.com",
		Now: func() time.Time {
			return time.Date(2022, 12, 5, 16, 46, 38, 0, time.FixedZone("EST", -5*3600))
		},
	}

	id, err := g.MessageID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^<20221205214638\.[0-9a-f]{32}@mail\.example\.com>$`), id)

	other, err := g.MessageID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestGenerator_Zero(t *testing.T) {
	t.Parallel()

	var g msgid.Generator
	id, err := g.MessageID()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, "@"+msgid.DefaultHost+">"))
}

func TestGenerator_Counter(t *testing.T) {
	t.Parallel()

	// the counter keeps ids apart even when the random source repeats
	g := &msgid.Generator{Rand: zeros{}}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		b, err := g.Boundary()
		require.NoError(t, err)
		assert.False(t, seen[b])
		seen[b] = true
	}

	// and separate generators with the same source are deterministic
	a, err := (&msgid.Generator{Rand: zeros{}}).Boundary()
	require.NoError(t, err)
	b, err := (&msgid.Generator{Rand: bytes.NewReader(make([]byte, 16))}).Boundary()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerator_Boundary(t *testing.T) {
	t.Parallel()

	g := msgid.New("example.com")
	b, err := g.Boundary()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(b, msgid.BoundaryPrefix))
	assert.LessOrEqual(t, len(b), 70)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-Za-z'()+_,\-./:=?]+$`), b)
}

func TestGenerator_RandError(t *testing.T) {
	t.Parallel()

	g := &msgid.Generator{Rand: failing{}}

	_, err := g.MessageID()
	assert.ErrorContains(t, err, "generating unique id")

	_, err = g.Boundary()
	assert.Error(t, err)
}
