package frame

import "github.com/dolthub/swiss"

// A Frame is a named variable table: a single GF, TF, or LF entry.
// If you know the eventual number of declared variables, NewFrame(n) with
// a non-zero size avoids backing-store growth.
type Frame struct {
	m *swiss.Map[string, *Slot]
}

// NewFrame returns an empty frame with capacity for at least size
// variables.
func NewFrame(size int) *Frame {
	return &Frame{m: swiss.NewMap[string, *Slot](uint32(size))}
}

// Declare adds a new, uninitialized slot named name. It reports whether
// the variable did not already exist; the caller raises exit code 52 on
// redefinition.
func (f *Frame) Declare(name string) (*Slot, bool) {
	if _, ok := f.m.Get(name); ok {
		return nil, false
	}
	s := &Slot{}
	f.m.Put(name, s)
	return s, true
}

// Lookup returns the slot named name, if declared.
func (f *Frame) Lookup(name string) (*Slot, bool) {
	return f.m.Get(name)
}
