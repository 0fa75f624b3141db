package machine

import (
	"unicode/utf8"

	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/resolve"
	"github.com/mna/ippcode23/lang/value"
)

func (m *Interpreter) opInt2Char(inst ir.Instruction) error {
	a, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	result, err := int2char(a)
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

func (m *Interpreter) opInt2CharS(inst ir.Instruction) error {
	a, err := m.popData()
	if err != nil {
		return err
	}
	result, err := int2char(a)
	if err != nil {
		return err
	}
	m.dataStack = append(m.dataStack, result)
	return nil
}

func int2char(a value.Value) (value.Value, error) {
	n, ok := asInt(a)
	if !ok {
		return nil, typeErrf("INT2CHAR: expected int operand, got %s", a.Type())
	}
	if n < 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return nil, &StringOpError{Msg: "INT2CHAR: value is not a valid Unicode code point"}
	}
	return value.Str(string(rune(n))), nil
}

func (m *Interpreter) opStri2Int(inst ir.Instruction) error {
	s, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	i, err := resolve.Value(inst.Args[2], m.frames)
	if err != nil {
		return err
	}
	result, err := stri2int(s, i)
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

func (m *Interpreter) opStri2IntS(inst ir.Instruction) error {
	i, err := m.popData()
	if err != nil {
		return err
	}
	s, err := m.popData()
	if err != nil {
		return err
	}
	result, err := stri2int(s, i)
	if err != nil {
		return err
	}
	m.dataStack = append(m.dataStack, result)
	return nil
}

func stri2int(s, i value.Value) (value.Value, error) {
	str, ok := asStr(s)
	if !ok {
		return nil, typeErrf("STRI2INT: expected string operand, got %s", s.Type())
	}
	idx, ok := asInt(i)
	if !ok {
		return nil, typeErrf("STRI2INT: expected int index, got %s", i.Type())
	}
	runes := []rune(str)
	if idx < 0 || idx >= int64(len(runes)) {
		return nil, &StringOpError{Msg: "STRI2INT: index out of range"}
	}
	return value.Int(runes[idx]), nil
}

func (m *Interpreter) opConcat(inst ir.Instruction) error {
	a, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	b, err := resolve.Value(inst.Args[2], m.frames)
	if err != nil {
		return err
	}
	as, ok := asStr(a)
	if !ok {
		return typeErrf("CONCAT: expected string operand, got %s", a.Type())
	}
	bs, ok := asStr(b)
	if !ok {
		return typeErrf("CONCAT: expected string operand, got %s", b.Type())
	}
	slot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	slot.Set(value.Str(as + bs))
	return nil
}

func (m *Interpreter) opStrlen(inst ir.Instruction) error {
	a, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	s, ok := asStr(a)
	if !ok {
		return typeErrf("STRLEN: expected string operand, got %s", a.Type())
	}
	slot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	slot.Set(value.Int(utf8.RuneCountInString(s)))
	return nil
}

func (m *Interpreter) opGetchar(inst ir.Instruction) error {
	a, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	b, err := resolve.Value(inst.Args[2], m.frames)
	if err != nil {
		return err
	}
	s, ok := asStr(a)
	if !ok {
		return typeErrf("GETCHAR: expected string operand, got %s", a.Type())
	}
	idx, ok := asInt(b)
	if !ok {
		return typeErrf("GETCHAR: expected int index, got %s", b.Type())
	}
	runes := []rune(s)
	if idx < 0 || idx >= int64(len(runes)) {
		return &StringOpError{Msg: "GETCHAR: index out of range"}
	}
	slot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	slot.Set(value.Str(string(runes[idx])))
	return nil
}

func (m *Interpreter) opSetchar(inst ir.Instruction) error {
	dst, err := resolve.Value(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	base, ok := asStr(dst)
	if !ok {
		return typeErrf("SETCHAR: destination must currently hold a string, got %s", dst.Type())
	}
	i, err := resolve.Value(inst.Args[1], m.frames)
	if err != nil {
		return err
	}
	idx, ok := asInt(i)
	if !ok {
		return typeErrf("SETCHAR: expected int index, got %s", i.Type())
	}
	ch, err := resolve.Value(inst.Args[2], m.frames)
	if err != nil {
		return err
	}
	chs, ok := asStr(ch)
	if !ok {
		return typeErrf("SETCHAR: expected string operand, got %s", ch.Type())
	}
	chRunes := []rune(chs)
	if len(chRunes) == 0 {
		return &StringOpError{Msg: "SETCHAR: replacement character is empty"}
	}

	runes := []rune(base)
	if idx < 0 || idx >= int64(len(runes)) {
		return &StringOpError{Msg: "SETCHAR: index out of range"}
	}
	runes[idx] = chRunes[0]

	slot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	slot.Set(value.Str(string(runes)))
	return nil
}

// opType implements TYPE's one exception to the engine's usual rule:
// reading an uninitialized variable does not raise the missing-value
// error here, it yields the empty tag string.
func (m *Interpreter) opType(inst ir.Instruction) error {
	src := inst.Args[1]
	var tag string
	if src.Type == ir.TypeVar {
		slot, err := resolve.Slot(src, m.frames)
		if err != nil {
			return err
		}
		if v, init := slot.Get(); init {
			tag = v.Type()
		}
	} else {
		v, err := resolve.Value(src, m.frames)
		if err != nil {
			return err
		}
		tag = v.Type()
	}

	dstSlot, err := resolve.Slot(inst.Args[0], m.frames)
	if err != nil {
		return err
	}
	dstSlot.Set(value.Str(tag))
	return nil
}
