package value

import "strconv"

// Int is the type of IPPcode23 integer values: signed, at least 64-bit.
type Int int64

var _ Value = Int(0)

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Type() string   { return "int" }
func (i Int) Tag() Tag       { return TagInt }
