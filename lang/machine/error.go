package machine

import "fmt"

// SemanticError reports an undefined jump target or other load-surviving
// semantic violation discovered only at run time. Exit code 52.
type SemanticError struct{ Msg string }

func (e *SemanticError) Error() string { return "machine: " + e.Msg }
func (e *SemanticError) ExitCode() int { return 52 }

// TypeError reports an operand whose runtime tag is not admissible for
// the opcode being executed. Exit code 53.
type TypeError struct{ Msg string }

func (e *TypeError) Error() string { return "machine: " + e.Msg }
func (e *TypeError) ExitCode() int { return 53 }

func typeErrf(format string, args ...any) error {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// ValueError reports an otherwise well-typed operand with an illegal
// value: division by zero or EXIT out of [0,49]. Exit code 57.
type ValueError struct{ Msg string }

func (e *ValueError) Error() string { return "machine: " + e.Msg }
func (e *ValueError) ExitCode() int { return 57 }

// StringOpError reports an out-of-range string index, an empty operand
// to a character operation, or an INT2CHAR value that is not a valid
// Unicode code point. Exit code 58.
type StringOpError struct{ Msg string }

func (e *StringOpError) Error() string { return "machine: " + e.Msg }
func (e *StringOpError) ExitCode() int { return 58 }

var (
	_ ExitCoder = (*SemanticError)(nil)
	_ ExitCoder = (*TypeError)(nil)
	_ ExitCoder = (*ValueError)(nil)
	_ ExitCoder = (*StringOpError)(nil)
	_ ExitCoder = (*exitSignal)(nil)
)
