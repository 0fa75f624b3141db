package ioboundary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineReaderStripsTerminator(t *testing.T) {
	r := NewLineReader(strings.NewReader("one\ntwo\r\nthree"))

	line, ok := r.ReadLine()
	require.True(t, ok)
	require.Equal(t, "one", line)

	line, ok = r.ReadLine()
	require.True(t, ok)
	require.Equal(t, "two", line)

	line, ok = r.ReadLine()
	require.True(t, ok)
	require.Equal(t, "three", line)

	_, ok = r.ReadLine()
	require.False(t, ok)
}

func TestLineReaderEmptyInput(t *testing.T) {
	r := NewLineReader(strings.NewReader(""))
	_, ok := r.ReadLine()
	require.False(t, ok)
}
