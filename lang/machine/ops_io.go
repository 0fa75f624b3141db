package machine

import (
	"strconv"
	"strings"

	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/resolve"
	"github.com/mna/ippcode23/lang/value"
)

func (m *Interpreter) opRead(inst ir.Instruction) error {
	slot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	typeTag := inst.Args[1].Symbol

	line, ok := m.stdin.ReadLine()
	if !ok {
		slot.Set(value.Nil)
		return nil
	}

	switch typeTag {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			slot.Set(value.Nil)
			return nil
		}
		slot.Set(value.Int(n))
	case "bool":
		slot.Set(value.Bool(strings.EqualFold(line, "true")))
	case "string":
		slot.Set(value.Str(line))
	default:
		return typeErrf("READ: unknown target type %q", typeTag)
	}
	return nil
}

func (m *Interpreter) opWrite(inst ir.Instruction) error {
	v, err := resolve.Value(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	_, err = m.stdout.Write([]byte(v.String()))
	return err
}

func (m *Interpreter) opDprint(inst ir.Instruction) error {
	v, err := resolve.Value(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	_, err = m.diag.Write([]byte(v.String()))
	return err
}
