package ir

import (
	"strings"

	"github.com/mna/ippcode23/lang/frame"
	"github.com/mna/ippcode23/lang/value"
)

// parseVarRef splits a "prefix@name" variable operand into its frame
// scope and bare name. Malformed references (missing '@', unknown
// prefix) are a structural error: the grammar itself is violated, not
// just an admissible-type mismatch.
func parseVarRef(opName string, order, pos int, text string) (frame.Scope, string, error) {
	prefix, name, ok := strings.Cut(text, "@")
	if !ok || name == "" {
		return 0, "", structuref("%s (order=%d) arg%d: malformed variable reference %q", opName, order, pos+1, text)
	}
	var scope frame.Scope
	switch prefix {
	case "GF":
		scope = frame.Global
	case "LF":
		scope = frame.Local
	case "TF":
		scope = frame.Temporary
	default:
		return 0, "", structuref("%s (order=%d) arg%d: unknown frame prefix %q", opName, order, pos+1, prefix)
	}
	return scope, name, nil
}

func decodeStringLiteral(text string) (string, error) {
	s, err := value.DecodeString(text)
	if err != nil {
		return "", &StructureError{Msg: err.Error()}
	}
	return s, nil
}
