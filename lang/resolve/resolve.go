// Package resolve reduces a load-time ir.Arg, together with the live
// frame.Frames it runs against, to the concrete runtime shape lang/machine
// needs: a value.Value for a read operand, or a *frame.Slot for a write
// destination.
package resolve

import (
	"fmt"

	"github.com/mna/ippcode23/lang/frame"
	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/value"
)

// Value resolves a ClassSymb (or literal) argument to its value.Value,
// raising frame/variable errors (54/55) or, for an uninitialized
// variable operand, a missing-value error (56).
func Value(a ir.Arg, frames *frame.Frames) (value.Value, error) {
	if a.Type == ir.TypeVar {
		slot, err := frames.Lookup(a.Var.Scope, a.Var.Name)
		if err != nil {
			return nil, err
		}
		v, init := slot.Get()
		if !init {
			return nil, &frame.MissingValueError{Frame: a.Var.Scope.String(), Name: a.Var.Name}
		}
		return v, nil
	}
	return literalValue(a)
}

func literalValue(a ir.Arg) (value.Value, error) {
	switch a.Type {
	case ir.TypeInt:
		return value.Int(a.Literal.Int), nil
	case ir.TypeString:
		return value.Str(a.Literal.Str), nil
	case ir.TypeBool:
		return value.Bool(a.Literal.Bool), nil
	case ir.TypeNil:
		return value.Nil, nil
	default:
		return nil, fmt.Errorf("resolve: arg type %v is not a value", a.Type)
	}
}

// Slot resolves a ClassVar argument to its writable storage cell,
// declaring nothing: the variable must already exist (DEFVAR is what
// creates it).
func Slot(a ir.Arg, frames *frame.Frames) (*frame.Slot, error) {
	return frames.Lookup(a.Var.Scope, a.Var.Name)
}
