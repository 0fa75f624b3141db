package resolve

import (
	"testing"

	"github.com/mna/ippcode23/lang/frame"
	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/value"
	"github.com/stretchr/testify/require"
)

func TestValueLiteral(t *testing.T) {
	v, err := Value(ir.Arg{Type: ir.TypeInt, Literal: ir.LiteralValue{Int: 7}}, frame.New())
	require.NoError(t, err)
	require.Equal(t, value.Int(7), v)
}

func TestValueVariable(t *testing.T) {
	f := frame.New()
	require.NoError(t, f.Declare(frame.Global, "x"))
	s, err := f.Lookup(frame.Global, "x")
	require.NoError(t, err)
	s.Set(value.Str("hi"))

	arg := ir.Arg{Type: ir.TypeVar, Var: ir.VarRef{Scope: frame.Global, Name: "x"}}
	v, err := Value(arg, f)
	require.NoError(t, err)
	require.Equal(t, value.Str("hi"), v)
}

func TestValueUninitialized(t *testing.T) {
	f := frame.New()
	require.NoError(t, f.Declare(frame.Global, "x"))
	arg := ir.Arg{Type: ir.TypeVar, Var: ir.VarRef{Scope: frame.Global, Name: "x"}}
	_, err := Value(arg, f)
	require.Error(t, err)
	require.Equal(t, 56, err.(frame.ExitCoder).ExitCode())
}

func TestValueMissingVariable(t *testing.T) {
	f := frame.New()
	arg := ir.Arg{Type: ir.TypeVar, Var: ir.VarRef{Scope: frame.Global, Name: "nope"}}
	_, err := Value(arg, f)
	require.Error(t, err)
	require.Equal(t, 54, err.(frame.ExitCoder).ExitCode())
}

func TestSlot(t *testing.T) {
	f := frame.New()
	require.NoError(t, f.Declare(frame.Global, "x"))
	arg := ir.Arg{Type: ir.TypeVar, Var: ir.VarRef{Scope: frame.Global, Name: "x"}}
	s, err := Slot(arg, f)
	require.NoError(t, err)
	s.Set(value.Int(1))
	got, _ := s.Get()
	require.Equal(t, value.Int(1), got)
}
