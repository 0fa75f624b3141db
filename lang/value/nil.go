package value

// NilType is the type of the IPPcode23 nil value. Its only legal value is
// Nil. It is represented as a byte, not struct{}, so that Nil may be a
// package-level constant.
type NilType byte

// Nil is the sole Value of type NilType.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "" }
func (NilType) Type() string   { return "nil" }
func (NilType) Tag() Tag       { return TagNil }
