package machine

import (
	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/resolve"
	"github.com/mna/ippcode23/lang/value"
)

func (m *Interpreter) opArith(inst ir.Instruction) error {
	a, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	b, err := resolve.Value(inst.Args[2], m.frames)
	if err != nil {
		return err
	}
	result, err := arith(inst.Opcode, a, b)
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

func (m *Interpreter) opArithS(inst ir.Instruction) error {
	b, err := m.popData()
	if err != nil {
		return err
	}
	a, err := m.popData()
	if err != nil {
		return err
	}
	result, err := arith(stackOpBase(inst.Opcode), a, b)
	if err != nil {
		return err
	}
	m.dataStack = append(m.dataStack, result)
	return nil
}

func arith(op ir.Opcode, a, b value.Value) (value.Value, error) {
	ai, ok := asInt(a)
	if !ok {
		return nil, typeErrf("%s: expected int operand, got %s", op, a.Type())
	}
	bi, ok := asInt(b)
	if !ok {
		return nil, typeErrf("%s: expected int operand, got %s", op, b.Type())
	}
	switch op {
	case ir.ADD, ir.ADDS:
		return value.Int(ai + bi), nil
	case ir.SUB, ir.SUBS:
		return value.Int(ai - bi), nil
	case ir.MUL, ir.MULS:
		return value.Int(ai * bi), nil
	case ir.IDIV, ir.IDIVS:
		if bi == 0 {
			return nil, &ValueError{Msg: "IDIV: division by zero"}
		}
		return value.Int(ai / bi), nil
	default:
		return nil, typeErrf("%s: not an arithmetic opcode", op)
	}
}

// stackOpBase maps a stack-variant arithmetic/comparison/boolean opcode
// to the three-address opcode that shares its semantics, so arith/compare
// helpers don't need a second copy of the switch.
func stackOpBase(op ir.Opcode) ir.Opcode {
	switch op {
	case ir.ADDS:
		return ir.ADD
	case ir.SUBS:
		return ir.SUB
	case ir.MULS:
		return ir.MUL
	case ir.IDIVS:
		return ir.IDIV
	case ir.LTS:
		return ir.LT
	case ir.GTS:
		return ir.GT
	case ir.EQS:
		return ir.EQ
	case ir.ANDS:
		return ir.AND
	case ir.ORS:
		return ir.OR
	case ir.NOTS:
		return ir.NOT
	case ir.INT2CHARS:
		return ir.INT2CHAR
	case ir.STRI2INTS:
		return ir.STRI2INT
	default:
		return op
	}
}
