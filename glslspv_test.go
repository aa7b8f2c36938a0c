package glslspv

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/diag"
	"github.com/gogpu/glslspv/spirv"
)

var voidType = &ast.Type{Basic: ast.BasicVoid}

func entry(body ...ast.Node) *ast.Aggregate {
	return &ast.Aggregate{
		Header: ast.Header{Type: voidType},
		Op:     ast.OpFunction,
		Name:   "main(",
		Sequence: []ast.Node{
			&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpParameters},
			&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: body},
		},
	}
}

func program(stage ast.Stage, children ...ast.Node) *ast.Program {
	return &ast.Program{
		Stage:        stage,
		EntryPoint:   "main",
		EntryMangled: "main(",
		Version:      450,
		Root:         &ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: children},
	}
}

func decodeFixture(t *testing.T) *ast.Program {
	t.Helper()
	f, err := os.Open("ast/testdata/uniform_block.yaml")
	require.NoError(t, err)
	defer f.Close()
	prog, err := ast.Decode(f)
	require.NoError(t, err)
	return prog
}

func TestLowerFixture(t *testing.T) {
	m, err := Lower(decodeFixture(t), DefaultOptions())
	require.NoError(t, err)

	words := m.Words()
	require.GreaterOrEqual(t, len(words), 5)
	assert.Equal(t, uint32(spirv.MagicNumber), words[0])
	assert.Equal(t, words, Dump(m))
	assert.Empty(t, m.Diagnostics())

	data := m.Bytes()
	require.Len(t, data, 4*len(words))
	assert.Equal(t, uint32(spirv.MagicNumber), binary.LittleEndian.Uint32(data))

	var buf bytes.Buffer
	require.NoError(t, m.Disassemble(&buf))
	listing := buf.String()
	assert.Contains(t, listing, `OpEntryPoint Fragment`)
	assert.Contains(t, listing, `OpName`)
	assert.Contains(t, listing, `"Material"`)
	assert.Contains(t, listing, `Block`)
}

func TestLowerDebugInfo(t *testing.T) {
	prog := decodeFixture(t)
	prog.SourceText = "#version 450\nvoid main() {}\n"

	opts := DefaultOptions()
	opts.EmitDebugSourceText = true
	opts.GenerateLineInstructions = true
	m, err := Lower(prog, opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Disassemble(&buf))
	assert.Contains(t, buf.String(), `"shader.frag"`)
	assert.Contains(t, buf.String(), "OpLine")

	plain, err := Lower(decodeFixture(t), DefaultOptions())
	require.NoError(t, err)
	assert.Greater(t, len(m.Words()), len(plain.Words()))
}

func TestLowerRejectsInvalidPrograms(t *testing.T) {
	_, err := Lower(nil, DefaultOptions())
	assert.Error(t, err)

	prog := program(ast.StageVertex)
	prog.EntryMangled = "other("
	prog.Root.Sequence = []ast.Node{entry()}
	_, err = Lower(prog, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.False(t, IsFatal(err))
}

func TestLowerReturnsInvariantViolation(t *testing.T) {
	bad := &ast.Type{Basic: ast.BasicFloat, VectorSize: 1, Arrays: []ast.ArraySize{{Size: -1}}}
	bad.Qualifier.Storage = ast.StorageGlobal
	sym := &ast.Symbol{Header: ast.Header{Type: bad}, ID: 1, Name: "a"}
	linker := &ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpLinkerObjects, Sequence: []ast.Node{sym}}

	m, err := Lower(program(ast.StageFragment, entry(), linker), DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, m)
	assert.True(t, IsFatal(err))
}

func TestDiagnosticsReachSink(t *testing.T) {
	intType := &ast.Type{Basic: ast.BasicInt, VectorSize: 1}
	label := &ast.Branch{
		Header:     ast.Header{Loc: ast.Loc{Line: 4}, Type: voidType},
		Op:         ast.OpCase,
		Expression: &ast.Constant{Header: ast.Header{Type: intType}, Values: []ast.ConstValue{{Int: 1}}},
	}
	var bag diag.Bag
	opts := DefaultOptions()
	opts.Sink = &bag

	m, err := Lower(program(ast.StageFragment, entry(label)), opts)
	require.NoError(t, err)

	require.Len(t, m.Diagnostics(), 1)
	assert.Equal(t, MissingFunctionality, m.Diagnostics()[0].Kind)
	assert.Equal(t, m.Diagnostics(), bag.Items())
}

func TestLowerAll(t *testing.T) {
	stages := []ast.Stage{ast.StageVertex, ast.StageFragment, ast.StageCompute}
	progs := make([]*ast.Program, len(stages))
	for i, stage := range stages {
		progs[i] = program(stage, entry())
		if stage == ast.StageCompute {
			progs[i].Compute.LocalSize = [3]int{8, 8, 1}
		}
	}

	modules, err := LowerAll(context.Background(), progs, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, modules, len(progs))

	models := []spirv.ExecutionModel{spirv.ExecutionModelVertex, spirv.ExecutionModelFragment, spirv.ExecutionModelGLCompute}
	for i, m := range modules {
		require.NotNil(t, m)
		var buf bytes.Buffer
		require.NoError(t, m.Disassemble(&buf))
		assert.Contains(t, buf.String(), "OpEntryPoint "+models[i].String(), "program %d", i)
	}
}

func TestLowerAllStopsOnError(t *testing.T) {
	bad := program(ast.StageFragment)
	progs := []*ast.Program{program(ast.StageFragment, entry()), bad}

	_, err := LowerAll(context.Background(), progs, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program 1")
}
