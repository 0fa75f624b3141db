package machine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mna/ippcode23/lang/ir"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, doc, stdin string) (exitCode int, stdout, diag string) {
	t.Helper()
	prog, err := ir.Load(strings.NewReader(doc))
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	m := New(prog, strings.NewReader(stdin), &out, &errOut)
	code, err := m.Run(context.Background())
	require.NoError(t, err)
	return code, out.String(), errOut.String()
}

func TestScenarioA_MoveAndWrite(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="2" opcode="MOVE">
			<arg1 type="var">GF@x</arg1>
			<arg2 type="int">42</arg2>
		</instruction>
		<instruction order="3" opcode="WRITE"><arg1 type="var">GF@x</arg1></instruction>
	</program>`
	code, out, _ := run(t, doc, "")
	require.Equal(t, 0, code)
	require.Equal(t, "42", out)
}

func TestScenarioB_StringEscapes(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@a</arg1></instruction>
		<instruction order="2" opcode="MOVE">
			<arg1 type="var">GF@a</arg1>
			<arg2 type="string">ahoj\032sv\011t</arg2>
		</instruction>
		<instruction order="3" opcode="WRITE"><arg1 type="var">GF@a</arg1></instruction>
	</program>`
	code, out, _ := run(t, doc, "")
	require.Equal(t, 0, code)
	require.Equal(t, "ahoj sv\x0bt", out)
}

func TestScenarioC_DivByZero(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="2" opcode="MOVE">
			<arg1 type="var">GF@x</arg1><arg2 type="int">7</arg2>
		</instruction>
		<instruction order="3" opcode="IDIV">
			<arg1 type="var">GF@x</arg1>
			<arg2 type="var">GF@x</arg2>
			<arg3 type="int">0</arg3>
		</instruction>
	</program>`
	code, out, _ := run(t, doc, "")
	require.Equal(t, 57, code)
	require.Empty(t, out)
}

func TestScenarioE_UninitializedRead(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="2" opcode="WRITE"><arg1 type="var">GF@x</arg1></instruction>
	</program>`
	code, _, _ := run(t, doc, "")
	require.Equal(t, 56, code)
}

func TestScenarioF_FrameLifecycle(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="CREATEFRAME"></instruction>
		<instruction order="2" opcode="DEFVAR"><arg1 type="var">TF@y</arg1></instruction>
		<instruction order="3" opcode="PUSHFRAME"></instruction>
		<instruction order="4" opcode="MOVE">
			<arg1 type="var">LF@y</arg1><arg2 type="int">1</arg2>
		</instruction>
		<instruction order="5" opcode="POPFRAME"></instruction>
		<instruction order="6" opcode="WRITE"><arg1 type="var">TF@y</arg1></instruction>
	</program>`
	code, out, _ := run(t, doc, "")
	require.Equal(t, 0, code)
	require.Equal(t, "1", out)
}

func TestScenarioG_ReadParseFailure(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@n</arg1></instruction>
		<instruction order="2" opcode="READ">
			<arg1 type="var">GF@n</arg1><arg2 type="type">int</arg2>
		</instruction>
		<instruction order="3" opcode="DEFVAR"><arg1 type="var">GF@t</arg1></instruction>
		<instruction order="4" opcode="TYPE">
			<arg1 type="var">GF@t</arg1><arg2 type="var">GF@n</arg2>
		</instruction>
		<instruction order="5" opcode="WRITE"><arg1 type="var">GF@t</arg1></instruction>
	</program>`
	code, out, _ := run(t, doc, "abc\n")
	require.Equal(t, 0, code)
	require.Equal(t, "nil", out)
}

func TestJumpLoopCanceledExternally(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="LABEL"><arg1 type="label">l</arg1></instruction>
		<instruction order="2" opcode="JUMP"><arg1 type="label">l</arg1></instruction>
	</program>`
	prog, err := ir.Load(strings.NewReader(doc))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(prog, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	_, err = m.Run(ctx)
	require.Error(t, err)
}

func TestExitOutOfRange(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="EXIT"><arg1 type="int">99</arg1></instruction>
	</program>`
	code, _, _ := run(t, doc, "")
	require.Equal(t, 57, code)
}

func TestExitInRange(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="EXIT"><arg1 type="int">7</arg1></instruction>
	</program>`
	code, _, _ := run(t, doc, "")
	require.Equal(t, 7, code)
}

func TestBreakLogsDisassembledInstruction(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="BREAK"></instruction>
	</program>`
	code, _, diag := run(t, doc, "")
	require.Equal(t, 0, code)
	require.Contains(t, diag, "BREAK at instruction 1")
	require.Contains(t, diag, "0001 BREAK")
}
