package ir

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestDisasmGrammar(t *testing.T) {
	f, err := os.Open("testdata/disasm.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("disasm.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
