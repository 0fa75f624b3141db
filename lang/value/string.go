package value

// Str is the type of IPPcode23 text values: a sequence of Unicode code
// points, always produced already decoded (XML entities and \DDD escapes
// resolved — see decode.go).
type Str string

var _ Value = Str("")

func (s Str) String() string { return string(s) }
func (s Str) Type() string   { return "string" }
func (s Str) Tag() Tag       { return TagString }
