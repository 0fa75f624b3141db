// Package machine implements the dispatch loop and opcode semantics that
// execute a loaded ir.Program: the program counter, the data stack, the
// call stack, and the live frame.Frames.
package machine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mna/ippcode23/lang/frame"
	"github.com/mna/ippcode23/lang/ioboundary"
	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/value"
)

// Interpreter holds all mutable state of one program run. It is not safe
// for concurrent use: the PC, stacks, and frames are mutated in place by
// a single dispatch loop, with no synchronization.
type Interpreter struct {
	prog   *ir.Program
	pc     int // 0-based index into prog.Instructions; pc == len(Instructions) halts normally
	frames *frame.Frames

	dataStack []value.Value
	callStack []int

	stdin  *ioboundary.LineReader
	stdout io.Writer
	diag   io.Writer

	stats *ioboundary.Stats
}

// New returns an Interpreter ready to Run prog.
func New(prog *ir.Program, stdin io.Reader, stdout, diag io.Writer) *Interpreter {
	return &Interpreter{
		prog:   prog,
		frames: frame.New(),
		stdin:  ioboundary.NewLineReader(stdin),
		stdout: stdout,
		diag:   diag,
		stats:  ioboundary.NewStats(),
	}
}

// Stats returns the run's instruction/variable counters, populated as a
// side effect of Run.
func (m *Interpreter) Stats() *ioboundary.Stats { return m.stats }

// exitSignal is raised by the EXIT opcode to unwind Run with a specific,
// successful-looking status code rather than a failure.
type exitSignal struct{ code int }

func (e *exitSignal) Error() string { return fmt.Sprintf("machine: exit(%d)", e.code) }
func (e *exitSignal) ExitCode() int { return e.code }

// ExitCoder is implemented by every error that maps to a specific
// interpreter exit status, whether raised by this package or by
// lang/frame, lang/resolve, or lang/ir.
type ExitCoder interface {
	error
	ExitCode() int
}

// canceledError reports that ctx was canceled mid-run. It deliberately
// does not implement ExitCoder: external cancellation has no interpreter
// exit status of its own, it is a forced halt imposed by the caller (for
// example to stop a program stuck in an infinite loop), not an outcome
// the engine itself ever chooses.
type canceledError struct{ cause error }

func (e *canceledError) Error() string { return fmt.Sprintf("machine: canceled: %v", e.cause) }
func (e *canceledError) Unwrap() error { return e.cause }

// Run executes the program from its first instruction until it falls off
// the end, an EXIT opcode fires, a semantic error occurs, or ctx is
// canceled. An error that implements ExitCoder is returned as its exit
// code with a nil err; a non-nil err (with code -1) is a cancellation or
// a failure that has no interpreter exit status, such as a host I/O error.
func (m *Interpreter) Run(ctx context.Context) (int, error) {
	for m.pc < len(m.prog.Instructions) {
		select {
		case <-ctx.Done():
			return -1, &canceledError{cause: context.Cause(ctx)}
		default:
		}

		inst := m.prog.Instructions[m.pc]
		m.stats.RecordInstruction(m.pc, inst)

		err := m.step(inst)
		if err != nil {
			var sig *exitSignal
			if errors.As(err, &sig) {
				return sig.code, nil
			}
			var ec ExitCoder
			if errors.As(err, &ec) {
				return ec.ExitCode(), nil
			}
			return -1, err
		}
	}
	return 0, nil
}

// step executes one instruction and advances m.pc, unless the
// instruction itself sets pc explicitly (jumps, CALL, RETURN).
func (m *Interpreter) step(inst ir.Instruction) error {
	jumped, err := m.dispatch(inst)
	if err != nil {
		return err
	}
	if !jumped {
		m.pc++
	}
	return nil
}

// dispatch runs inst's semantics, returning whether it set m.pc itself.
func (m *Interpreter) dispatch(inst ir.Instruction) (bool, error) {
	switch inst.Opcode {
	case ir.MOVE:
		return false, m.opMove(inst)
	case ir.CREATEFRAME:
		return false, m.opCreateFrame(inst)
	case ir.PUSHFRAME:
		return false, m.opPushFrame(inst)
	case ir.POPFRAME:
		return false, m.opPopFrame(inst)
	case ir.DEFVAR:
		return false, m.opDefvar(inst)
	case ir.CALL:
		return true, m.opCall(inst)
	case ir.RETURN:
		return true, m.opReturn(inst)
	case ir.LABEL:
		return false, nil
	case ir.JUMP:
		return true, m.opJump(inst)
	case ir.JUMPIFEQ:
		return m.opJumpIf(inst, true)
	case ir.JUMPIFNEQ:
		return m.opJumpIf(inst, false)
	case ir.EXIT:
		return false, m.opExit(inst)
	case ir.DPRINT:
		return false, m.opDprint(inst)
	case ir.BREAK:
		return false, m.opBreak(inst)

	case ir.PUSHS:
		return false, m.opPushs(inst)
	case ir.POPS:
		return false, m.opPops(inst)
	case ir.CLEARS:
		m.dataStack = m.dataStack[:0]
		return false, nil

	case ir.ADD, ir.SUB, ir.MUL, ir.IDIV:
		return false, m.opArith(inst)
	case ir.ADDS, ir.SUBS, ir.MULS, ir.IDIVS:
		return false, m.opArithS(inst)

	case ir.LT, ir.GT, ir.EQ:
		return false, m.opCompare(inst)
	case ir.LTS, ir.GTS, ir.EQS:
		return false, m.opCompareS(inst)

	case ir.AND, ir.OR, ir.NOT:
		return false, m.opBoolean(inst)
	case ir.ANDS, ir.ORS, ir.NOTS:
		return false, m.opBooleanS(inst)

	case ir.INT2CHAR:
		return false, m.opInt2Char(inst)
	case ir.INT2CHARS:
		return false, m.opInt2CharS(inst)
	case ir.STRI2INT:
		return false, m.opStri2Int(inst)
	case ir.STRI2INTS:
		return false, m.opStri2IntS(inst)
	case ir.CONCAT:
		return false, m.opConcat(inst)
	case ir.STRLEN:
		return false, m.opStrlen(inst)
	case ir.GETCHAR:
		return false, m.opGetchar(inst)
	case ir.SETCHAR:
		return false, m.opSetchar(inst)
	case ir.TYPE:
		return false, m.opType(inst)

	case ir.READ:
		return false, m.opRead(inst)
	case ir.WRITE:
		return false, m.opWrite(inst)

	case ir.JUMPIFEQS:
		return m.opJumpIfS(inst, true)
	case ir.JUMPIFNEQS:
		return m.opJumpIfS(inst, false)

	default:
		return false, fmt.Errorf("machine: unimplemented opcode %s", inst.Opcode)
	}
}

// jumpTo resolves a label argument and sets m.pc to its target. An
// undefined label reached at run time is a semantic error, exit code 52,
// the same status a redefined label gets at load time.
func (m *Interpreter) jumpTo(label string) error {
	idx, ok := m.prog.Labels[label]
	if !ok {
		return &SemanticError{Msg: fmt.Sprintf("undefined label %q", label)}
	}
	m.pc = idx
	return nil
}
