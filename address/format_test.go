package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailutil/address"
)

func TestFormatList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@x.com, B <b@x.com>", address.FormatList(address.List{
		address.New("a@x.com"),
		address.NewNamed("B", "b@x.com"),
	}))

	assert.Equal(t, `"Na\"me" <c@x.com>`, address.FormatList(address.List{
		address.NewNamed(`Na"me`, "c@x.com"),
	}))

	assert.Equal(t, "", address.FormatList(nil))
	assert.Equal(t, "a@x.com", address.FormatList(address.List{address.New("a@x.com")}))
}

func TestEntry_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bob@example.com", address.New("bob@example.com").String())
	assert.Equal(t, "Bob Smith <bob@example.com>", address.NewNamed("Bob Smith", "bob@example.com").String())
	assert.Equal(t, "<bob@example.com>", address.NewNamed("", "bob@example.com").String())
	assert.Equal(t, `"a \"b\" \\c" <bob@example.com>`, address.NewNamed(`a "b" \c`, "bob@example.com").String())

	// only a quote triggers quoting, so commas are left as-is
	assert.Equal(t, "Smith, Bob <bob@example.com>", address.NewNamed("Smith, Bob", "bob@example.com").String())
}

func TestList_String(t *testing.T) {
	t.Parallel()

	l := address.List{
		address.NewNamed("Bob", "bob@example.com"),
		address.New("alice@example.com"),
	}
	assert.Equal(t, "Bob <bob@example.com>, alice@example.com", l.String())
	assert.Equal(t, []string{"bob@example.com", "alice@example.com"}, l.Addresses())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"bob@example.com",
		`"Bob Smith" <bob@example.com>, alice@example.com`,
		"<bob@example.com>",
		`"Na\"me" <c@x.com>, d@x.com, d@x.com`,
		`"back\\slash \"quoted\"" <e@x.com>`,
		"Bob Q. Smith <bob@example.com>",
	}

	for _, in := range inputs {
		list, err := address.ParseList(in)
		require.NoError(t, err, in)

		again, err := address.ParseList(address.FormatList(list))
		require.NoError(t, err, in)

		assert.Equal(t, list, again, in)
	}
}

func TestRoundTrip_AnonymousName(t *testing.T) {
	t.Parallel()

	// a present but empty name formats as an anonymous bracketed address
	list, err := address.ParseList(address.FormatList(address.List{
		address.NewNamed("", "bob@example.com"),
	}))
	require.NoError(t, err)
	assert.Equal(t, address.List{address.New("bob@example.com")}, list)
}
