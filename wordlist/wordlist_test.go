package wordlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsEmptyCanonical(t *testing.T) {
	wl := New()
	_, ok := wl.Add("1234", 1)
	assert.False(t, ok, "all-digit word should be rejected")
	assert.Equal(t, 0, wl.Len())

	idx, ok := wl.Add("Hello!", 1)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "_hello_", wl.At(0).Canonical)
}

func TestInsertionOrderPreserved(t *testing.T) {
	wl := New()
	for _, w := range []string{"zebra", "apple", "mango"} {
		_, ok := wl.Add(w, 1)
		require.True(t, ok)
	}
	require.Equal(t, 3, wl.Len())
	assert.Equal(t, "zebra", wl.At(0).Original)
	assert.Equal(t, "apple", wl.At(1).Original)
	assert.Equal(t, "mango", wl.At(2).Original)
}

func TestSortByScoreDoesNotMutateInsertionOrder(t *testing.T) {
	wl := New()
	wl.Add("low", 1)
	wl.Add("high", 100)
	wl.Add("mid", 50)

	idx := wl.SortByScore()
	require.Len(t, idx, 3)
	assert.Equal(t, "high", wl.At(idx[0]).Original)
	assert.Equal(t, "mid", wl.At(idx[1]).Original)
	assert.Equal(t, "low", wl.At(idx[2]).Original)

	// insertion order itself is untouched.
	assert.Equal(t, "low", wl.At(0).Original)
	assert.Equal(t, "high", wl.At(1).Original)
	assert.Equal(t, "mid", wl.At(2).Original)
}

func TestSortByCanonicalIsStable(t *testing.T) {
	wl := New()
	wl.Add("banana", 1)
	wl.Add("apple", 1)
	wl.Add("apple", 1) // duplicate canonical form, different insertion slot

	idx := wl.SortByCanonical()
	require.Len(t, idx, 3)
	assert.Equal(t, "_apple_", wl.At(idx[0]).Canonical)
	assert.Equal(t, "_apple_", wl.At(idx[1]).Canonical)
	assert.Equal(t, "_banana_", wl.At(idx[2]).Canonical)
	// ties keep insertion order: index 1 (first "apple") before index 2.
	assert.Equal(t, 1, idx[0])
	assert.Equal(t, 2, idx[1])
}

func TestReadSplitsLeadingScore(t *testing.T) {
	input := "10 hello\n5\tworld\nplain\n\n"
	wl, err := read(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, wl.Len())

	assert.Equal(t, "hello", wl.At(0).Original)
	assert.Equal(t, 10, wl.At(0).Score)

	assert.Equal(t, "world", wl.At(1).Original)
	assert.Equal(t, 5, wl.At(1).Score)

	assert.Equal(t, "plain", wl.At(2).Original)
	assert.Equal(t, 1, wl.At(2).Score)
}

func TestDebugReportsCount(t *testing.T) {
	wl := New()
	wl.Add("one", 1)
	wl.Add("two", 1)
	assert.Contains(t, wl.Debug(), "2")
}
