package machine

import "github.com/mna/ippcode23/lang/value"

func asInt(v value.Value) (int64, bool) {
	i, ok := v.(value.Int)
	return int64(i), ok
}

func asStr(v value.Value) (string, bool) {
	s, ok := v.(value.Str)
	return string(s), ok
}

func asBool(v value.Value) (bool, bool) {
	b, ok := v.(value.Bool)
	return bool(b), ok
}

func isNil(v value.Value) bool {
	_, ok := v.(value.NilType)
	return ok
}

// valuesEqual implements EQ/JUMPIFEQ's comparison rule: same tag, or
// either side nil (nil==nil is true, nil==anything-else is false).
func valuesEqual(a, b value.Value) (bool, error) {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b), nil
	}
	if a.Tag() != b.Tag() {
		return false, typeErrf("EQ: operands have different tags %s and %s", a.Type(), b.Type())
	}
	switch av := a.(type) {
	case value.Int:
		bv, _ := asInt(b)
		return int64(av) == bv, nil
	case value.Str:
		bv, _ := asStr(b)
		return string(av) == bv, nil
	case value.Bool:
		bv, _ := asBool(b)
		return bool(av) == bv, nil
	default:
		return false, typeErrf("EQ: unsupported operand type %s", a.Type())
	}
}

// orderedCompare implements LT/GT's comparison rule: same tag, tag among
// {int, string, bool}, nil disallowed on either side.
func orderedCompare(op string, a, b value.Value) (lt bool, gt bool, err error) {
	if isNil(a) || isNil(b) {
		return false, false, typeErrf("%s: nil is not an orderable operand", op)
	}
	if a.Tag() != b.Tag() {
		return false, false, typeErrf("%s: operands have different tags %s and %s", op, a.Type(), b.Type())
	}
	switch av := a.(type) {
	case value.Int:
		bv, _ := asInt(b)
		return int64(av) < bv, int64(av) > bv, nil
	case value.Str:
		bv, _ := asStr(b)
		return string(av) < bv, string(av) > bv, nil
	case value.Bool:
		bv, _ := asBool(b)
		return !bool(av) && bv, bool(av) && !bv, nil
	default:
		return false, false, typeErrf("%s: unsupported operand type %s", op, a.Type())
	}
}
