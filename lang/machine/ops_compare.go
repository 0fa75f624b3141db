package machine

import (
	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/resolve"
	"github.com/mna/ippcode23/lang/value"
)

func (m *Interpreter) opCompare(inst ir.Instruction) error {
	a, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	b, err := resolve.Value(inst.Args[2], m.frames)
	if err != nil {
		return err
	}
	result, err := compare(inst.Opcode, a, b)
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

func (m *Interpreter) opCompareS(inst ir.Instruction) error {
	b, err := m.popData()
	if err != nil {
		return err
	}
	a, err := m.popData()
	if err != nil {
		return err
	}
	result, err := compare(stackOpBase(inst.Opcode), a, b)
	if err != nil {
		return err
	}
	m.dataStack = append(m.dataStack, result)
	return nil
}

func compare(op ir.Opcode, a, b value.Value) (value.Value, error) {
	switch op {
	case ir.LT:
		lt, _, err := orderedCompare("LT", a, b)
		return value.Bool(lt), err
	case ir.GT:
		_, gt, err := orderedCompare("GT", a, b)
		return value.Bool(gt), err
	case ir.EQ:
		eq, err := valuesEqual(a, b)
		return value.Bool(eq), err
	default:
		return nil, typeErrf("%s: not a comparison opcode", op)
	}
}

func (m *Interpreter) opJumpIfS(inst ir.Instruction, wantEqual bool) (bool, error) {
	label := inst.Args[0].Symbol
	b, err := m.popData()
	if err != nil {
		return false, err
	}
	a, err := m.popData()
	if err != nil {
		return false, err
	}
	eq, err := valuesEqual(a, b)
	if err != nil {
		return false, err
	}
	if eq == wantEqual {
		if err := m.jumpTo(label); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
