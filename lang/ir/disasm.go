package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble renders a Program back to a human-readable text form, one
// instruction per line. BREAK uses it to log the current instruction to
// the diagnostic stream; tests use it to assert on load-time structure
// without re-parsing XML. Its grammar is fixed by testdata/disasm.ebnf.
func Disassemble(p *Program) string {
	var sb strings.Builder
	for i, inst := range p.Instructions {
		fmt.Fprintf(&sb, "%04d %s", i+1, inst.Opcode)
		for _, a := range inst.Args {
			sb.WriteByte(' ')
			sb.WriteString(argText(a))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func argText(a Arg) string {
	switch a.Type {
	case TypeVar:
		return fmt.Sprintf("var:%s@%s", a.Var.Scope, a.Var.Name)
	case TypeInt:
		return "int:" + strconv.FormatInt(a.Literal.Int, 10)
	case TypeString:
		return "string:" + escapeDisasm(a.Literal.Str)
	case TypeBool:
		return "bool:" + strconv.FormatBool(a.Literal.Bool)
	case TypeNil:
		return "nil:nil"
	case TypeLabel:
		return "label:" + a.Symbol
	case TypeType:
		return "type:" + a.Symbol
	default:
		return "?"
	}
}

// escapeDisasm re-escapes characters the disasm grammar treats as
// delimiters (space and newline) so a disassembled string argument stays
// on one whitespace-delimited token.
func escapeDisasm(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case ' ':
			sb.WriteString("\\032")
		case '\n':
			sb.WriteString("\\010")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
