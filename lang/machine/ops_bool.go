package machine

import (
	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/resolve"
	"github.com/mna/ippcode23/lang/value"
)

func (m *Interpreter) opBoolean(inst ir.Instruction) error {
	if inst.Opcode == ir.NOT {
		a, err := resolve.Value(inst.Args[1], m.frames)
		if err != nil {
			return err
		}
		result, err := boolUnary(a)
		if err != nil {
			return err
		}
		slot, err := resolve.Slot(inst.Args[0], m.frames)
		if err != nil {
			return err
		}
		slot.Set(result)
		return nil
	}

	a, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	b, err := resolve.Value(inst.Args[2], m.frames)
	if err != nil {
		return err
	}
	result, err := boolBinary(inst.Opcode, a, b)
	if err != nil {
		return err
	}
	slot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	slot.Set(result)
	return nil
}

func (m *Interpreter) opBooleanS(inst ir.Instruction) error {
	base := stackOpBase(inst.Opcode)
	if base == ir.NOT {
		a, err := m.popData()
		if err != nil {
			return err
		}
		result, err := boolUnary(a)
		if err != nil {
			return err
		}
		m.dataStack = append(m.dataStack, result)
		return nil
	}

	b, err := m.popData()
	if err != nil {
		return err
	}
	a, err := m.popData()
	if err != nil {
		return err
	}
	result, err := boolBinary(base, a, b)
	if err != nil {
		return err
	}
	m.dataStack = append(m.dataStack, result)
	return nil
}

func boolUnary(a value.Value) (value.Value, error) {
	ab, ok := asBool(a)
	if !ok {
		return nil, typeErrf("NOT: expected bool operand, got %s", a.Type())
	}
	return value.Bool(!ab), nil
}

func boolBinary(op ir.Opcode, a, b value.Value) (value.Value, error) {
	ab, ok := asBool(a)
	if !ok {
		return nil, typeErrf("%s: expected bool operand, got %s", op, a.Type())
	}
	bb, ok := asBool(b)
	if !ok {
		return nil, typeErrf("%s: expected bool operand, got %s", op, b.Type())
	}
	switch op {
	case ir.AND:
		return value.Bool(ab && bb), nil
	case ir.OR:
		return value.Bool(ab || bb), nil
	default:
		return nil, typeErrf("%s: not a boolean opcode", op)
	}
}
