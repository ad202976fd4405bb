package cmd

import (
	"bytes"
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zostay/go-mailutil/header"
)

// run executes the root command. The commands share package state, so these
// tests do not run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", `"Smith, John" <john@example.com>, bob@example.com`)
	require.NoError(t, err)
	assert.Equal(t, "Smith, John <john@example.com>\nbob@example.com\n", out)

	out, err = run(t, "parse", "--addresses", "Alice <alice@example.com>, <bob@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com\nbob@example.com\n", out)
	parseAddressesOnly = false

	_, err = run(t, "parse", "alice@example.com,")
	assert.ErrorContains(t, err, "missing address after ','")

	_, err = run(t, "parse", "--validate", "not-an-address")
	assert.Error(t, err)
	parseValidate = false
}

func TestFormatCommand(t *testing.T) {
	out, err := run(t, "format", "Alice Smith=alice@example.com", "bob@example.com", "=carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith <alice@example.com>, bob@example.com, <carol@example.com>\n", out)
}

func TestCRAMMD5Command(t *testing.T) {
	challenge := base64.StdEncoding.EncodeToString([]byte("<1896.697170952@postoffice.reston.mci.net>"))

	out, err := run(t, "cram-md5", "tim", "tanstaaftanstaaf", challenge)
	require.NoError(t, err)

	resp, err := base64.StdEncoding.DecodeString(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "tim b913a602c7eda7a495b4e6e7334d3890", string(resp))

	_, err = run(t, "cram-md5", "tim", "secret", "%%%")
	assert.ErrorContains(t, err, "decoding challenge")
}

func TestDateCommand(t *testing.T) {
	out, err := run(t, "date", "2023-03-04T15:06:07Z")
	require.NoError(t, err)
	assert.Equal(t, "Sat, 04 Mar 2023 15:06:07 +0000\n", out)

	_, err = run(t, "date", "whenever")
	assert.Error(t, err)
}

func TestMsgIDCommand(t *testing.T) {
	out, err := run(t, "msgid", "--host", "example.com")
	require.NoError(t, err)
	assert.Regexp(t, `^<[0-9]{14}\.[0-9a-f]{32}@example\.com>\n$`, out)

	out, err = run(t, "msgid", "--boundary")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "----=_Part_"))
	msgidBoundary = false
}

func TestSendCommand_NeedsSender(t *testing.T) {
	_, err := run(t, "send", "--to", "bob@example.com")
	assert.ErrorContains(t, err, "--from is required")
	sendTo = nil
}

func TestReadMessage_BodyOnly(t *testing.T) {
	h, body, err := readMessage(strings.NewReader("Subject: not a header\n\nhi\n"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, "Subject: not a header\n\nhi\n", string(body))
}

func TestReadMessage_WithHeader(t *testing.T) {
	logger = zaptest.NewLogger(t)

	const raw = "From nobody\nFrom: alice@example.com\nTo: bob@example.com\nSubject: original\nX-Mailer: test\n\nhello\n"

	h, body, err := readMessage(strings.NewReader(raw), true)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(body))
	assert.Equal(t, header.CRLF, h.Break())

	sendTo = []string{"Carol <carol@example.com>", "dave@example.com"}
	sendSubject = "replaced"
	defer func() {
		sendTo = nil
		sendSubject = ""
	}()
	require.NoError(t, applyFlags(h))

	assert.Equal(t, []header.Field{
		{Name: "From", Body: "alice@example.com"},
		{Name: "To", Body: "Carol <carol@example.com>, dave@example.com"},
		{Name: "Subject", Body: "replaced"},
		{Name: "X-Mailer", Body: "test"},
	}, h.Fields())
}

func TestApplyFlags_BadList(t *testing.T) {
	sendCc = []string{"carol@example.com,"}
	defer func() { sendCc = nil }()

	err := applyFlags(&header.Header{})
	assert.ErrorContains(t, err, "parsing --cc")
}
