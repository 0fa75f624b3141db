package frame

import (
	"testing"

	"github.com/mna/ippcode23/lang/value"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndLookupGlobal(t *testing.T) {
	f := New()
	require.NoError(t, f.Declare(Global, "x"))

	err := f.Declare(Global, "x")
	require.Error(t, err)
	require.Equal(t, 52, err.(ExitCoder).ExitCode())

	s, err := f.Lookup(Global, "x")
	require.NoError(t, err)
	_, init := s.Get()
	require.False(t, init)

	s.Set(value.Int(42))
	got, init := s.Get()
	require.True(t, init)
	require.Equal(t, value.Int(42), got)
}

func TestLookupMissingVariable(t *testing.T) {
	f := New()
	_, err := f.Lookup(Global, "nope")
	require.Error(t, err)
	require.Equal(t, 54, err.(ExitCoder).ExitCode())
}

func TestTemporaryFrameLifecycle(t *testing.T) {
	f := New()

	_, err := f.Lookup(Temporary, "x")
	require.Error(t, err)
	require.Equal(t, 55, err.(ExitCoder).ExitCode())

	f.CreateFrame()
	require.NoError(t, f.Declare(Temporary, "x"))

	require.NoError(t, f.PushFrame())
	_, err = f.Lookup(Temporary, "x")
	require.Equal(t, 55, err.(ExitCoder).ExitCode())

	s, err := f.Lookup(Local, "x")
	require.NoError(t, err)
	s.Set(value.Str("hi"))

	require.NoError(t, f.PopFrame())
	s, err = f.Lookup(Temporary, "x")
	require.NoError(t, err)
	got, _ := s.Get()
	require.Equal(t, value.Str("hi"), got)

	err = f.PopFrame()
	require.Error(t, err)
	require.Equal(t, 55, err.(ExitCoder).ExitCode())
}

func TestPushFrameWithoutCreate(t *testing.T) {
	f := New()
	err := f.PushFrame()
	require.Error(t, err)
	require.Equal(t, 55, err.(ExitCoder).ExitCode())
}

func TestNestedLocalFrames(t *testing.T) {
	f := New()

	f.CreateFrame()
	require.NoError(t, f.Declare(Temporary, "outer"))
	require.NoError(t, f.PushFrame())

	f.CreateFrame()
	require.NoError(t, f.Declare(Temporary, "inner"))
	require.NoError(t, f.PushFrame())

	_, err := f.Lookup(Local, "outer")
	require.Error(t, err)

	s, err := f.Lookup(Local, "inner")
	require.NoError(t, err)
	require.NotNil(t, s)

	require.NoError(t, f.PopFrame())
	s, err = f.Lookup(Temporary, "inner")
	require.NoError(t, err)
	require.NotNil(t, s)

	require.NoError(t, f.PopFrame())
	s, err = f.Lookup(Temporary, "outer")
	require.NoError(t, err)
	require.NotNil(t, s)
}
