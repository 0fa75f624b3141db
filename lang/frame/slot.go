// Package frame implements the GF/TF/LF variable memory model: a global
// frame that always exists, an optional temporary frame created and
// discarded by CREATEFRAME/PUSHFRAME/POPFRAME, and a stack of local frames
// pushed and popped alongside function calls.
package frame

import "github.com/mna/ippcode23/lang/value"

// Slot is a declared variable's storage cell. A freshly declared slot
// holds no value until its first write; reading it before that is an
// error the caller (lang/resolve) is responsible for raising as exit
// code 56.
type Slot struct {
	v    value.Value
	init bool
}

// Get returns the slot's current value and whether it has been written at
// least once.
func (s *Slot) Get() (value.Value, bool) {
	return s.v, s.init
}

// Set stores v in the slot, marking it initialized.
func (s *Slot) Set(v value.Value) {
	s.v = v
	s.init = true
}
