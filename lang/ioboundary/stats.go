package ioboundary

import (
	"fmt"
	"io"

	"github.com/mna/ippcode23/lang/ir"
)

// Counter identifies one of the --stats flags a CLI invocation may
// request, in the order they were given on the command line: ordering
// only affects Print/Report output, not what is counted.
type Counter byte

const (
	CounterInsts Counter = iota
	CounterVars
	CounterHot
	CounterFrequent
)

// Stats accumulates the counters a --stats run may report. The engine's
// only obligation is to keep these counters correct as it executes;
// formatting and flag-order bookkeeping live here, external to
// lang/machine.
type Stats struct {
	insts int
	vars  map[string]bool

	// hot tracks, per instruction index, how many times it executed, to
	// answer --hot (the most frequently executed instruction).
	hot map[int]int

	// requested preserves --insts/--vars/--hot/--frequent/--print/--eol in
	// the order the CLI parsed them, each paired with its literal text for
	// --print.
	requested []requestedFlag
}

type requestedFlag struct {
	counter Counter
	print   string // literal text for a --print=STR entry; unused otherwise
	isPrint bool
	isEOL   bool
}

// NewStats returns an empty counter set.
func NewStats() *Stats {
	return &Stats{vars: map[string]bool{}, hot: map[int]int{}}
}

// RecordInstruction is called by lang/machine once per executed
// instruction (order attribute preserved for --hot reporting).
func (s *Stats) RecordInstruction(index int, inst ir.Instruction) {
	s.insts++
	s.hot[index]++
}

// RecordVar is called by lang/machine on every DEFVAR, tracking the set
// of distinct declared variables across all frames for --vars.
func (s *Stats) RecordVar(ref ir.VarRef) {
	s.vars[fmt.Sprintf("%s@%s", ref.Scope, ref.Name)] = true
}

// RequestInsts appends an --insts entry to the reporting order.
func (s *Stats) RequestInsts() { s.requested = append(s.requested, requestedFlag{counter: CounterInsts}) }

// RequestVars appends a --vars entry to the reporting order.
func (s *Stats) RequestVars() { s.requested = append(s.requested, requestedFlag{counter: CounterVars}) }

// RequestHot appends a --hot entry to the reporting order.
func (s *Stats) RequestHot() { s.requested = append(s.requested, requestedFlag{counter: CounterHot}) }

// RequestFrequent appends a --frequent entry to the reporting order.
func (s *Stats) RequestFrequent() {
	s.requested = append(s.requested, requestedFlag{counter: CounterFrequent})
}

// RequestPrint appends a literal --print=STR entry to the reporting order.
func (s *Stats) RequestPrint(text string) {
	s.requested = append(s.requested, requestedFlag{isPrint: true, print: text})
}

// RequestEOL appends a --eol entry (a bare newline) to the reporting
// order.
func (s *Stats) RequestEOL() {
	s.requested = append(s.requested, requestedFlag{isEOL: true})
}

// mostFrequentInstruction returns the 0-based instruction index executed
// the most times, or -1 if none executed.
func (s *Stats) mostFrequentInstruction() int {
	best, bestN := -1, 0
	for idx, n := range s.hot {
		if n > bestN || (n == bestN && (best == -1 || idx < best)) {
			best, bestN = idx, n
		}
	}
	return best
}

// WriteReport emits every requested counter, in request order, to w:
// one line per --insts/--vars/--hot/--frequent entry, the literal text
// for --print, and a bare newline for --eol.
func (s *Stats) WriteReport(w io.Writer, prog *ir.Program) error {
	for _, r := range s.requested {
		var line string
		switch {
		case r.isPrint:
			line = r.print
		case r.isEOL:
			line = ""
		default:
			switch r.counter {
			case CounterInsts:
				line = fmt.Sprintf("%d", s.insts)
			case CounterVars:
				line = fmt.Sprintf("%d", len(s.vars))
			case CounterHot:
				idx := s.mostFrequentInstruction()
				if idx < 0 {
					line = ""
				} else {
					line = fmt.Sprintf("%d", prog.Instructions[idx].Order)
				}
			case CounterFrequent:
				line = s.frequentLabels(prog)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// frequentLabels lists, space-separated, every label whose target
// instruction executed at least once, most-executed first.
func (s *Stats) frequentLabels(prog *ir.Program) string {
	type hit struct {
		label string
		n     int
	}
	var hits []hit
	for label, idx := range prog.Labels {
		if n := s.hot[idx]; n > 0 {
			hits = append(hits, hit{label: label, n: n})
		}
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j-1].n < hits[j].n; j-- {
			hits[j-1], hits[j] = hits[j], hits[j-1]
		}
	}
	out := ""
	for i, h := range hits {
		if i > 0 {
			out += " "
		}
		out += h.label
	}
	return out
}
