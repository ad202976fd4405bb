package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailutil/internal/scanner"
)

// splitWords splits on spaces, discarding each space with a zero-token advance.
func splitWords(data []byte, atEOF bool) (int, []byte, error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	if data[0] == ' ' {
		return 1, nil, nil
	}

	for i, c := range data {
		if c == ' ' {
			return i, data[:i], nil
		}
	}

	if !atEOF {
		return 0, nil, nil
	}

	return len(data), data, nil
}

func TestSkipUntilToken(t *testing.T) {
	t.Parallel()

	split := scanner.SkipUntilToken(splitWords)

	advance, token, err := split([]byte("   abc def"), true)
	require.NoError(t, err)
	assert.Equal(t, 6, advance)
	assert.Equal(t, []byte("abc"), token)

	advance, token, err = split([]byte("    "), true)
	require.NoError(t, err)
	assert.Equal(t, 4, advance)
	assert.Nil(t, token)

	advance, token, err = split([]byte("  abc"), false)
	require.NoError(t, err)
	assert.Equal(t, 2, advance)
	assert.Nil(t, token)
}

func TestNewStringScanner(t *testing.T) {
	t.Parallel()

	sc := scanner.NewStringScanner("  one two   three ", splitWords)

	var words []string
	for sc.Scan() {
		words = append(words, sc.Text())
	}

	require.NoError(t, sc.Err())
	assert.Equal(t, []string{"one", "two", "three"}, words)
}

func TestNewStringScanner_Empty(t *testing.T) {
	t.Parallel()

	sc := scanner.NewStringScanner("", splitWords)
	assert.False(t, sc.Scan())
	assert.NoError(t, sc.Err())
}
