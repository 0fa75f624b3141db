package ir

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

var rootAttrs = map[string]bool{"language": true, "name": true, "description": true}

// Load parses and validates an XML program document from r, producing a
// Program ready for lang/machine. It enforces every structural rule
// root/instruction/argument shape, opcode whitelist, arity, and operand
// class admissibility, as well as ordering and label-table construction.
func Load(r io.Reader) (*Program, error) {
	dec := xml.NewDecoder(r)

	root, err := nextStart(dec)
	if err != nil {
		return nil, err
	}
	if root.Name.Local != "program" {
		return nil, structuref("root element must be <program>, got <%s>", root.Name.Local)
	}
	if err := checkAttrs(root, rootAttrs); err != nil {
		return nil, err
	}
	lang := attrValue(root, "language")
	if !strings.EqualFold(lang, "IPPcode23") {
		return nil, structuref("program language attribute must be IPPcode23, got %q", lang)
	}

	var rawInsts []rawInstruction
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedXMLError{Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "instruction" {
				return nil, structuref("unexpected element <%s> inside <program>", t.Name.Local)
			}
			ri, err := parseInstruction(dec, t)
			if err != nil {
				return nil, err
			}
			rawInsts = append(rawInsts, ri)
		case xml.EndElement:
			// end of <program>
		}
	}

	return buildProgram(rawInsts)
}

type rawInstruction struct {
	order  int
	opcode string
	args   [3]*rawArg // index 0..2 for arg1..arg3, nil if absent
}

type rawArg struct {
	typ  string
	text string
}

var instAttrs = map[string]bool{"order": true, "opcode": true}

func parseInstruction(dec *xml.Decoder, start xml.StartElement) (rawInstruction, error) {
	var ri rawInstruction
	if err := checkAttrs(start, instAttrs); err != nil {
		return ri, err
	}
	orderStr := attrValue(start, "order")
	order, err := strconv.Atoi(orderStr)
	if err != nil || order <= 0 {
		return ri, structuref("instruction order must be a positive integer, got %q", orderStr)
	}
	ri.order = order
	ri.opcode = attrValue(start, "opcode")

	for {
		tok, err := dec.Token()
		if err != nil {
			return ri, &MalformedXMLError{Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			idx, ok := argIndex(t.Name.Local)
			if !ok {
				return ri, structuref("unexpected element <%s> inside <instruction>", t.Name.Local)
			}
			if ri.args[idx] != nil {
				return ri, structuref("duplicate %s in instruction order=%d", t.Name.Local, ri.order)
			}
			typ := attrValue(t, "type")
			text, err := readCharData(dec)
			if err != nil {
				return ri, err
			}
			ri.args[idx] = &rawArg{typ: typ, text: text}
		case xml.EndElement:
			return ri, nil
		}
	}
}

func argIndex(name string) (int, bool) {
	switch name {
	case "arg1":
		return 0, true
	case "arg2":
		return 1, true
	case "arg3":
		return 2, true
	default:
		return 0, false
	}
}

func readCharData(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", &MalformedXMLError{Err: err}
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			return sb.String(), nil
		case xml.StartElement:
			return "", structuref("unexpected nested element <%s>", t.Name.Local)
		}
	}
}

func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, structuref("empty document")
		}
		if err != nil {
			return xml.StartElement{}, &MalformedXMLError{Err: err}
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func checkAttrs(se xml.StartElement, allowed map[string]bool) error {
	seen := map[string]bool{}
	for _, a := range se.Attr {
		if !allowed[a.Name.Local] {
			return structuref("element <%s> has unexpected attribute %q", se.Name.Local, a.Name.Local)
		}
		if seen[a.Name.Local] {
			return structuref("element <%s> has duplicate attribute %q", se.Name.Local, a.Name.Local)
		}
		seen[a.Name.Local] = true
	}
	return nil
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// buildProgram validates opcodes, arity, operand classes, orders and
// renumbers instructions, then builds the label table.
func buildProgram(raw []rawInstruction) (*Program, error) {
	seenOrder := map[int]bool{}
	for _, ri := range raw {
		if seenOrder[ri.order] {
			return nil, structuref("duplicate instruction order=%d", ri.order)
		}
		seenOrder[ri.order] = true
	}

	sort.SliceStable(raw, func(i, j int) bool { return raw[i].order < raw[j].order })

	insts := make([]Instruction, 0, len(raw))
	for _, ri := range raw {
		inst, err := convertInstruction(ri)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}

	labels := make(map[string]int, 8)
	for i, inst := range insts {
		if inst.Opcode != LABEL {
			continue
		}
		name := inst.Args[0].Symbol
		if _, dup := labels[name]; dup {
			return nil, &LabelError{Msg: fmt.Sprintf("label %q redefined", name)}
		}
		labels[name] = i
	}

	return &Program{Instructions: insts, Labels: labels}, nil
}

func convertInstruction(ri rawInstruction) (Instruction, error) {
	opName := strings.ToUpper(ri.opcode)
	op, ok := LookupOpcode(opName)
	if !ok {
		return Instruction{}, structuref("unknown opcode %q (order=%d)", ri.opcode, ri.order)
	}

	arity := op.Arity()
	args := make([]Arg, arity)
	for i := 0; i < arity; i++ {
		ra := ri.args[i]
		if ra == nil {
			return Instruction{}, structuref("%s (order=%d) missing arg%d", opName, ri.order, i+1)
		}
		class, _ := op.OperandClass(i)
		arg, err := convertArg(opName, ri.order, i, *ra, class)
		if err != nil {
			return Instruction{}, err
		}
		args[i] = arg
	}
	for i := arity; i < 3; i++ {
		if ri.args[i] != nil {
			return Instruction{}, structuref("%s (order=%d) has extra arg%d", opName, ri.order, i+1)
		}
	}

	return Instruction{Opcode: op, Args: args, Order: ri.order}, nil
}

func convertArg(opName string, order, pos int, ra rawArg, class OperandClass) (Arg, error) {
	typ, ok := LookupArgType(ra.typ)
	if !ok {
		return Arg{}, structuref("%s (order=%d) arg%d has unknown type %q", opName, order, pos+1, ra.typ)
	}

	switch class {
	case ClassVar:
		if typ != TypeVar {
			return Arg{}, typeErrf(opName, order, pos, "a variable", ra.typ)
		}
	case ClassLabel:
		if typ != TypeLabel {
			return Arg{}, typeErrf(opName, order, pos, "a label", ra.typ)
		}
	case ClassType:
		if typ != TypeType {
			return Arg{}, typeErrf(opName, order, pos, "a type tag", ra.typ)
		}
	case ClassSymb:
		if typ != TypeVar && typ != TypeInt && typ != TypeString && typ != TypeBool && typ != TypeNil {
			return Arg{}, typeErrf(opName, order, pos, "a variable or literal", ra.typ)
		}
	}

	arg := Arg{Type: typ}
	switch typ {
	case TypeVar:
		scope, name, err := parseVarRef(opName, order, pos, ra.text)
		if err != nil {
			return Arg{}, err
		}
		arg.Var = VarRef{Scope: scope, Name: name}
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(ra.text), 10, 64)
		if err != nil {
			return Arg{}, structuref("%s (order=%d) arg%d: invalid int literal %q", opName, order, pos+1, ra.text)
		}
		arg.Literal.Int = n
	case TypeString:
		s, err := decodeStringLiteral(ra.text)
		if err != nil {
			return Arg{}, err
		}
		arg.Literal.Str = s
	case TypeBool:
		switch ra.text {
		case "true":
			arg.Literal.Bool = true
		case "false":
			arg.Literal.Bool = false
		default:
			return Arg{}, structuref("%s (order=%d) arg%d: invalid bool literal %q", opName, order, pos+1, ra.text)
		}
	case TypeNil:
		if ra.text != "nil" {
			return Arg{}, structuref("%s (order=%d) arg%d: invalid nil literal %q", opName, order, pos+1, ra.text)
		}
		arg.Literal.HasNil = true
	case TypeLabel, TypeType:
		arg.Symbol = ra.text
	}
	return arg, nil
}

func typeErrf(opName string, order, pos int, want, got string) error {
	return &OperandTypeError{Msg: fmt.Sprintf(
		"%s (order=%d) arg%d: expected %s, got type %q", opName, order, pos+1, want, got)}
}
