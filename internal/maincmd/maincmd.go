// Package maincmd implements the CLI contract of the ipp23 interpreter:
// flag parsing, opening the two input streams, and translating the
// engine's exit-code taxonomy to a process exit status.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mna/ippcode23/lang/ioboundary"
	"github.com/mna/ippcode23/lang/ir"
	"github.com/mna/ippcode23/lang/machine"
	"github.com/mna/mainer"
)

const binName = "ipp23"

var longUsage = fmt.Sprintf(`usage: %s [--source=PATH] [--input=PATH] [--stats=PATH [<counter>...]]
       %[1]s -h|--help

Interprets an XML-encoded IPPcode23 program.

       --source=PATH             Path to the XML program (default: stdin).
       --input=PATH              Path to the program-input stream (default:
                                 stdin). At least one of --source/--input
                                 must be given.
       --stats=PATH              Path to write statistics to; must be
                                 followed by any number of counter flags,
                                 reported in the order given:
       --insts                   Number of executed instructions.
       --vars                    Number of distinct declared variables.
       --hot                     Order of the most frequently executed
                                 instruction.
       --frequent                Labels reached at least once, most
                                 frequently executed first.
       --print=STR               Emit STR literally.
       --eol                     Emit a blank line.

       -h --help                 Show this help and exit.
`, binName)

// Cmd holds the parsed CLI configuration for one interpreter invocation.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help bool `flag:"h,help"`

	Source string `flag:"source"`
	Input  string `flag:"input"`
	Stats  string `flag:"stats"`

	// The individual counter/print/eol flags are declared so mainer's
	// parser accepts them; their command-line ORDER (which --stats must
	// preserve) is recovered separately in orderedStatFlags, since a struct
	// of booleans cannot represent "which came first".
	Insts     bool   `flag:"insts"`
	Vars      bool   `flag:"vars"`
	Hot       bool   `flag:"hot"`
	Frequent  bool   `flag:"frequent"`
	Print     string `flag:"print"`
	EOL       bool   `flag:"eol"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string)        { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help {
		for name := range c.flags {
			if name != "h" && name != "help" {
				return errors.New("--help must not be combined with any other flag")
			}
		}
		return nil
	}
	if c.Source == "" && c.Input == "" {
		return errors.New("at least one of --source or --input must be given")
	}
	statFlags := c.Insts || c.Vars || c.Hot || c.Frequent || c.Print != "" || c.EOL
	if statFlags && c.Stats == "" {
		return errors.New("counter flags require --stats=PATH")
	}
	return nil
}

// Main is the mainer.Cmd entry point: parse flags, run the interpreter,
// translate its result to a process exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n", err)
		return mainer.ExitCode(10)
	}

	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.ExitCode(0)
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	code, err := c.run(ctx, stdio, args)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
	}
	return mainer.ExitCode(code)
}

func (c *Cmd) run(ctx context.Context, stdio mainer.Stdio, rawArgs []string) (int, error) {
	sourceR, closeSource, err := openOrStdin(c.Source, stdio.Stdin)
	if err != nil {
		return 11, err
	}
	defer closeSource()

	inputR, closeInput, err := openOrStdin(c.Input, stdio.Stdin)
	if err != nil {
		return 11, err
	}
	defer closeInput()

	prog, err := ir.Load(sourceR)
	if err != nil {
		if ec, ok := err.(machine.ExitCoder); ok {
			return ec.ExitCode(), err
		}
		return 1, err
	}

	m := machine.New(prog, inputR, stdio.Stdout, stdio.Stderr)
	code, err := m.Run(ctx)
	if err != nil {
		return 1, err
	}

	if c.Stats != "" {
		if err := c.writeStats(m.Stats(), prog, rawArgs); err != nil {
			return 1, err
		}
	}
	return code, nil
}

func (c *Cmd) writeStats(stats *ioboundary.Stats, prog *ir.Program, rawArgs []string) error {
	for _, flag := range orderedStatFlags(rawArgs) {
		switch {
		case flag == "--insts":
			stats.RequestInsts()
		case flag == "--vars":
			stats.RequestVars()
		case flag == "--hot":
			stats.RequestHot()
		case flag == "--frequent":
			stats.RequestFrequent()
		case flag == "--eol":
			stats.RequestEOL()
		case strings.HasPrefix(flag, "--print="):
			stats.RequestPrint(strings.TrimPrefix(flag, "--print="))
		}
	}

	f, err := os.Create(c.Stats)
	if err != nil {
		return err
	}
	defer f.Close()
	return stats.WriteReport(f, prog)
}

// orderedStatFlags re-scans the raw argument list for the counter flags,
// in the order they were given: struct-tag flag parsing collapses
// repeated/ordered flags into single fields, so ordering is recovered
// here instead.
func orderedStatFlags(args []string) []string {
	var out []string
	for _, a := range args {
		switch {
		case a == "--insts", a == "--vars", a == "--hot", a == "--frequent", a == "--eol":
			out = append(out, a)
		case strings.HasPrefix(a, "--print="):
			out = append(out, a)
		}
	}
	return out
}

func openOrStdin(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}
