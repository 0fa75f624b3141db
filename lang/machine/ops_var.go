package machine

import (
	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/resolve"
	"github.com/mna/ippcode23/lang/value"
)

func (m *Interpreter) opDefvar(inst ir.Instruction) error {
	ref := inst.Args[0].Var
	m.stats.RecordVar(ref)
	return m.frames.Declare(ref.Scope, ref.Name)
}

func (m *Interpreter) opMove(inst ir.Instruction) error {
	v, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	slot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	slot.Set(v)
	return nil
}

func (m *Interpreter) opPushs(inst ir.Instruction) error {
	v, err := resolve.Value(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	m.dataStack = append(m.dataStack, v)
	return nil
}

func (m *Interpreter) opPops(inst ir.Instruction) error {
	v, err := m.popData()
	if err != nil {
		return err
	}
	slot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	slot.Set(v)
	return nil
}

// popData pops and returns the top of the data stack, or a missing-value
// error (56) on underflow.
func (m *Interpreter) popData() (v value.Value, err error) {
	if len(m.dataStack) == 0 {
		return nil, &stackUnderflowError{}
	}
	n := len(m.dataStack) - 1
	top := m.dataStack[n]
	m.dataStack[n] = nil
	m.dataStack = m.dataStack[:n]
	return top, nil
}

type stackUnderflowError struct{}

func (e *stackUnderflowError) Error() string { return "machine: data stack underflow" }
func (e *stackUnderflowError) ExitCode() int { return 56 }
