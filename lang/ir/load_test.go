package ir

import (
	"strings"
	"testing"

	"github.com/mna/ippcode23/lang/frame"
	"github.com/stretchr/testify/require"
)

func TestLoadValidProgram(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode23">
	<instruction order="2" opcode="WRITE">
		<arg1 type="var">GF@x</arg1>
	</instruction>
	<instruction order="1" opcode="MOVE">
		<arg1 type="var">GF@x</arg1>
		<arg2 type="int">42</arg2>
	</instruction>
</program>`

	p, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, p.Instructions, 2)

	require.Equal(t, MOVE, p.Instructions[0].Opcode)
	require.Equal(t, 1, p.Instructions[0].Order)
	require.Equal(t, WRITE, p.Instructions[1].Opcode)
	require.Equal(t, 2, p.Instructions[1].Order)

	arg := p.Instructions[0].Args[0]
	require.Equal(t, TypeVar, arg.Type)
	require.Equal(t, frame.Global, arg.Var.Scope)
	require.Equal(t, "x", arg.Var.Name)

	lit := p.Instructions[0].Args[1]
	require.Equal(t, TypeInt, lit.Type)
	require.EqualValues(t, 42, lit.Literal.Int)
}

func TestLoadBadLanguage(t *testing.T) {
	const doc = `<program language="nope"></program>`
	_, err := Load(strings.NewReader(doc))
	requireExitCode(t, err, 32)
}

func TestLoadUnknownOpcode(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="FROBNICATE"></instruction>
	</program>`
	_, err := Load(strings.NewReader(doc))
	requireExitCode(t, err, 32)
}

func TestLoadArgTypeMismatch(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR">
			<arg1 type="label">x</arg1>
		</instruction>
	</program>`
	_, err := Load(strings.NewReader(doc))
	requireExitCode(t, err, 53)
}

func TestLoadDuplicateOrder(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="CREATEFRAME"></instruction>
		<instruction order="1" opcode="PUSHFRAME"></instruction>
	</program>`
	_, err := Load(strings.NewReader(doc))
	requireExitCode(t, err, 32)
}

func TestLoadDuplicateLabel(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="LABEL"><arg1 type="label">l</arg1></instruction>
		<instruction order="2" opcode="LABEL"><arg1 type="label">l</arg1></instruction>
	</program>`
	_, err := Load(strings.NewReader(doc))
	requireExitCode(t, err, 52)
}

func TestLoadPositionalGap(t *testing.T) {
	const doc = `<program language="IPPcode23">
		<instruction order="1" opcode="ADD">
			<arg1 type="var">GF@x</arg1>
			<arg3 type="int">1</arg3>
		</instruction>
	</program>`
	_, err := Load(strings.NewReader(doc))
	requireExitCode(t, err, 32)
}

func TestLoadMalformedXML(t *testing.T) {
	_, err := Load(strings.NewReader(`<program language="IPPcode23">`))
	requireExitCode(t, err, 31)
}

func TestLoadDeterministicLabelsRegardlessOfOrder(t *testing.T) {
	const docA = `<program language="IPPcode23">
		<instruction order="1" opcode="LABEL"><arg1 type="label">l1</arg1></instruction>
		<instruction order="2" opcode="LABEL"><arg1 type="label">l2</arg1></instruction>
	</program>`
	const docB = `<program language="IPPcode23">
		<instruction order="20" opcode="LABEL"><arg1 type="label">l2</arg1></instruction>
		<instruction order="10" opcode="LABEL"><arg1 type="label">l1</arg1></instruction>
	</program>`

	pa, err := Load(strings.NewReader(docA))
	require.NoError(t, err)
	pb, err := Load(strings.NewReader(docB))
	require.NoError(t, err)
	require.Equal(t, pa.Labels, pb.Labels)
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	ec, ok := err.(ExitCoder)
	require.True(t, ok, "error %v does not implement ExitCoder", err)
	require.Equal(t, code, ec.ExitCode())
}
