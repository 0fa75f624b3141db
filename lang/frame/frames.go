package frame

// Scope names a variable's home frame, as encoded in its IPPcode23
// identifier prefix (GF@, LF@, TF@).
type Scope byte

const (
	Global Scope = iota
	Local
	Temporary
)

func (s Scope) String() string {
	switch s {
	case Global:
		return "GF"
	case Local:
		return "LF"
	case Temporary:
		return "TF"
	default:
		return "?F"
	}
}

// Frames owns the three frame scopes a running program sees: GF, which
// exists for the whole run, an optional TF, and a stack of LFs pushed and
// popped by PUSHFRAME/POPFRAME/CALL-adjacent CREATEFRAME sequences.
type Frames struct {
	global *Frame
	temp   *Frame // nil when no TF exists
	locals []*Frame
}

// New returns a Frames with an empty, ready-to-use global frame.
func New() *Frames {
	return &Frames{global: NewFrame(0)}
}

// CreateFrame discards any existing TF and replaces it with a fresh, empty
// one. Mirrors CREATEFRAME.
func (f *Frames) CreateFrame() {
	f.temp = NewFrame(0)
}

// PushFrame moves the current TF onto the top of the LF stack, becoming
// the new innermost local frame, and clears TF. Mirrors PUSHFRAME.
func (f *Frames) PushFrame() error {
	if f.temp == nil {
		return &NoSuchFrameError{Frame: "TF"}
	}
	f.locals = append(f.locals, f.temp)
	f.temp = nil
	return nil
}

// PopFrame moves the innermost local frame back into TF, removing it from
// the LF stack. Mirrors POPFRAME.
func (f *Frames) PopFrame() error {
	if len(f.locals) == 0 {
		return &NoSuchFrameError{Frame: "LF"}
	}
	n := len(f.locals) - 1
	f.temp = f.locals[n]
	f.locals[n] = nil
	f.locals = f.locals[:n]
	return nil
}

// frameFor resolves a Scope to its Frame, or a NoSuchFrameError if the
// scope currently has none (TF not created, or LF empty).
func (f *Frames) frameFor(s Scope) (*Frame, error) {
	switch s {
	case Global:
		return f.global, nil
	case Temporary:
		if f.temp == nil {
			return nil, &NoSuchFrameError{Frame: "TF"}
		}
		return f.temp, nil
	case Local:
		if len(f.locals) == 0 {
			return nil, &NoSuchFrameError{Frame: "LF"}
		}
		return f.locals[len(f.locals)-1], nil
	default:
		return nil, &NoSuchFrameError{Frame: s.String()}
	}
}

// Declare declares name in the frame identified by scope. Mirrors DEFVAR.
func (f *Frames) Declare(scope Scope, name string) error {
	fr, err := f.frameFor(scope)
	if err != nil {
		return err
	}
	if _, ok := fr.Declare(name); !ok {
		return &RedefinedError{Name: name}
	}
	return nil
}

// Lookup resolves name in the frame identified by scope, returning its
// Slot for both read and write access.
func (f *Frames) Lookup(scope Scope, name string) (*Slot, error) {
	fr, err := f.frameFor(scope)
	if err != nil {
		return nil, err
	}
	s, ok := fr.Lookup(name)
	if !ok {
		return nil, &NoSuchVariableError{Frame: scope.String(), Name: name}
	}
	return s, nil
}
