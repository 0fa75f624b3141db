package ir

import "github.com/mna/ippcode23/lang/frame"

// ArgType is the XML "type" attribute of an <argN> element.
type ArgType byte

const (
	TypeVar ArgType = iota
	TypeInt
	TypeString
	TypeBool
	TypeNil
	TypeLabel
	TypeType
)

var argTypeNames = map[string]ArgType{
	"var":    TypeVar,
	"int":    TypeInt,
	"string": TypeString,
	"bool":   TypeBool,
	"nil":    TypeNil,
	"label":  TypeLabel,
	"type":   TypeType,
}

// LookupArgType resolves an XML type attribute value to an ArgType.
func LookupArgType(s string) (ArgType, bool) {
	t, ok := argTypeNames[s]
	return t, ok
}

func (t ArgType) String() string {
	for name, v := range argTypeNames {
		if v == t {
			return name
		}
	}
	return "unknown"
}

// VarRef is the parsed form of a "prefix@name" variable operand, resolved
// once at load time rather than re-parsed on every use.
type VarRef struct {
	Scope frame.Scope
	Name  string
}

// Arg is one operand of an Instruction: its declared type and, for
// variable operands, its pre-parsed VarRef. Literal text has already
// been decoded into a LiteralValue by the loader; lang/resolve turns it
// into a value.Value at run time.
type Arg struct {
	Type ArgType

	// Var holds the parsed reference when Type == TypeVar.
	Var VarRef

	// Literal holds the decoded literal value when Type is Int, String,
	// Bool, or Nil.
	Literal LiteralValue

	// Symbol holds the raw text when Type is Label or Type (a label name
	// or a type-tag symbol, respectively).
	Symbol string
}

// LiteralValue is the decoded literal carried by a non-variable Arg.
// It is defined in this package (rather than referencing value.Value
// directly in Arg) so the loader can build it before any frame exists.
type LiteralValue struct {
	Int    int64
	Str    string
	Bool   bool
	HasNil bool
}

// Instruction is one fully-parsed, validated program step.
type Instruction struct {
	Opcode Opcode
	Args   []Arg

	// Order is the original XML "order" attribute, retained for
	// diagnostics after instructions have been sorted and renumbered.
	Order int
}

// Program is a fully loaded and validated instruction stream.
type Program struct {
	Instructions []Instruction

	// Labels maps a label name to the 0-based index into Instructions it
	// refers to.
	Labels map[string]int
}
