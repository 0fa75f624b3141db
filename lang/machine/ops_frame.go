package machine

import (
	"fmt"

	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/resolve"
)

func (m *Interpreter) opCreateFrame(inst ir.Instruction) error {
	m.frames.CreateFrame()
	return nil
}

func (m *Interpreter) opPushFrame(inst ir.Instruction) error {
	return m.frames.PushFrame()
}

func (m *Interpreter) opPopFrame(inst ir.Instruction) error {
	return m.frames.PopFrame()
}

func (m *Interpreter) opCall(inst ir.Instruction) error {
	label := inst.Args[0].Symbol
	target, ok := m.prog.Labels[label]
	if !ok {
		return &SemanticError{Msg: fmt.Sprintf("undefined label %q", label)}
	}
	m.callStack = append(m.callStack, m.pc+1)
	m.pc = target
	return nil
}

func (m *Interpreter) opReturn(inst ir.Instruction) error {
	if len(m.callStack) == 0 {
		return &frameStackEmptyError{}
	}
	n := len(m.callStack) - 1
	m.pc = m.callStack[n]
	m.callStack = m.callStack[:n]
	return nil
}

// frameStackEmptyError reports RETURN with an empty call stack: there is
// no return address to resume, a missing-value condition. Exit code 56.
type frameStackEmptyError struct{}

func (e *frameStackEmptyError) Error() string { return "machine: RETURN with empty call stack" }
func (e *frameStackEmptyError) ExitCode() int { return 56 }

func (m *Interpreter) opJump(inst ir.Instruction) error {
	return m.jumpTo(inst.Args[0].Symbol)
}

func (m *Interpreter) opJumpIf(inst ir.Instruction, wantEqual bool) (bool, error) {
	label := inst.Args[0].Symbol
	a, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return false, err
	}
	b, err := resolve.Value(inst.Args[2], m.frames)
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

func (m *Interpreter) opExit(inst ir.Instruction) error {
	v, err := resolve.Value(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	iv, ok := asInt(v)
	if !ok {
		return typeErrf("EXIT: expected int operand, got %s", v.Type())
	}
	if iv < 0 || iv > 49 {
		return &ValueError{Msg: fmt.Sprintf("EXIT: status %d out of range [0,49]", iv)}
	}
	return &exitSignal{code: int(iv)}
}

func (m *Interpreter) opBreak(inst ir.Instruction) error {
	listing := ir.Disassemble(&ir.Program{Instructions: []ir.Instruction{inst}})
	fmt.Fprintf(m.diag, "BREAK at instruction %d: PC=%d, data stack depth=%d, call stack depth=%d\n%s",
		inst.Order, m.pc+1, len(m.dataStack), len(m.callStack), listing)
	return nil
}
