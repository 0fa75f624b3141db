package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcreteTypes(t *testing.T) {
	require.Equal(t, "42", Int(42).String())
	require.Equal(t, "int", Int(42).Type())
	require.Equal(t, TagInt, Int(42).Tag())

	require.Equal(t, "true", True.String())
	require.Equal(t, "false", False.String())
	require.Equal(t, "bool", True.Type())

	require.Equal(t, "hi", Str("hi").String())
	require.Equal(t, "string", Str("hi").Type())

	require.Equal(t, "", Nil.String())
	require.Equal(t, "nil", Nil.Type())
	require.Equal(t, TagNil, Nil.Tag())
}

func TestTagString(t *testing.T) {
	require.Equal(t, "", TagNone.String())
	for tag := TagInt; tag <= TagNil; tag++ {
		require.NotEmpty(t, tag.String())
	}
}
