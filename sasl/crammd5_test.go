package sasl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailutil/sasl"
)

// The example exchange from RFC 2195.
const (
	rfcUser      = "tim"
	rfcSecret    = "tanstaaftanstaaf"
	rfcChallenge = "<1896.697170952@postoffice.reston.mci.net>"
	rfcResponse  = "tim b913a602c7eda7a495b4e6e7334d3890"
)

func TestCRAMMD5Response(t *testing.T) {
	t.Parallel()

	resp := sasl.CRAMMD5Response(rfcUser, rfcSecret, []byte(rfcChallenge))
	assert.Equal(t, rfcResponse, string(resp))
}

func TestCRAMMD5Client(t *testing.T) {
	t.Parallel()

	c := sasl.NewCRAMMD5Client(rfcUser, rfcSecret)

	mech, ir, err := c.Start()
	require.NoError(t, err)
	assert.Equal(t, sasl.CRAMMD5, mech)
	assert.Nil(t, ir)

	resp, err := c.Next([]byte(rfcChallenge))
	require.NoError(t, err)
	assert.Equal(t, rfcResponse, string(resp))

	_, err = c.Next([]byte(rfcChallenge))
	assert.ErrorIs(t, err, sasl.ErrUnexpectedChallenge)

	// restarting allows another exchange
	_, _, err = c.Start()
	require.NoError(t, err)
	_, err = c.Next([]byte(rfcChallenge))
	assert.NoError(t, err)
}

func TestCRAMMD5Client_InvalidChallenge(t *testing.T) {
	t.Parallel()

	for _, challenge := range []string{
		"",
		"<",
		"1896.697170952@postoffice.reston.mci.net",
		"<1896.697170952>",
		"<@postoffice.reston.mci.net>",
		"<1896.697170952@>",
	} {
		c := sasl.NewCRAMMD5Client(rfcUser, rfcSecret)
		_, _, err := c.Start()
		require.NoError(t, err)

		_, err = c.Next([]byte(challenge))
		assert.ErrorIs(t, err, sasl.ErrInvalidChallenge, challenge)
	}
}
