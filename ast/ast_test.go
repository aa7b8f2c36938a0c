package ast

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFile(t *testing.T, name string) *Program {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	defer f.Close()
	prog, err := Decode(f)
	require.NoError(t, err)
	return prog
}

func TestDecodeProgramSettings(t *testing.T) {
	prog := decodeFile(t, "uniform_block.yaml")

	assert.Equal(t, StageFragment, prog.Stage)
	assert.Equal(t, 450, prog.Version)
	assert.Equal(t, "main", prog.EntryPoint)
	assert.Equal(t, "main(", prog.EntryMangled)
	assert.Equal(t, "shader.frag", prog.SourceFile)
	require.NotNil(t, prog.Root)
	assert.Equal(t, OpSequence, prog.Root.Op)
	assert.Len(t, prog.Root.Sequence, 2)
}

func TestDecodeSharesStructsAndSymbolTypes(t *testing.T) {
	prog := decodeFile(t, "uniform_block.yaml")

	linker := prog.Root.Sequence[1].(*Aggregate)
	require.Equal(t, OpLinkerObjects, linker.Op)
	mat := linker.Sequence[0].(*Symbol)

	fn := prog.Root.Sequence[0].(*Aggregate)
	body := fn.Sequence[1].(*Aggregate)
	assign := body.Sequence[0].(*Binary)
	index := assign.Right.(*Binary)
	use := index.Left.(*Symbol)

	assert.Same(t, use.Type, mat.Type, "repeated symbol ids reuse the declared type")
	require.NotNil(t, mat.Type.Struct)
	assert.Equal(t, "Material", mat.Type.TypeName)
	assert.Equal(t, BasicBlock, mat.Type.Basic)
	assert.Equal(t, StorageUniform, mat.Type.Qualifier.Storage)
	assert.Equal(t, PackingStd140, mat.Type.Qualifier.Packing)
	require.NotNil(t, mat.Type.Qualifier.Binding)
	assert.Equal(t, 0, *mat.Type.Qualifier.Binding)

	members := mat.Type.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "color", members[0].FieldName)
	assert.Equal(t, 4, members[0].VectorSize)
	assert.True(t, members[1].IsScalar())

	assert.Equal(t, 7, assign.Loc.Line)
	assert.Equal(t, OpAssign, assign.Op)
	assert.Equal(t, int64(0), index.Right.(*Constant).Values[0].Int)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", "stage: vertex\nbogus: 1\n", "bogus"},
		{"unknown stage", "stage: mesh\n", `unknown stage "mesh"`},
		{"unknown operator", "stage: vertex\nroot: {kind: aggregate, op: Frobnicate}\n", `unknown operator "Frobnicate"`},
		{"undeclared struct", "stage: vertex\nroot: {kind: aggregate, op: Sequence, type: {basic: struct, struct: S}}\n", `undeclared struct "S"`},
		{"untyped symbol", "stage: vertex\nroot: {kind: aggregate, op: Sequence, children: [{kind: symbol, id: 4}]}\n", "has no type"},
		{"root kind", "stage: vertex\nroot: {kind: symbol, id: 1, type: {basic: int}}\n", "root must be an aggregate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeConstValues(t *testing.T) {
	src := `stage: compute
root:
  kind: aggregate
  op: Sequence
  children:
    - {kind: constant, type: {basic: bool}, values: [true]}
    - {kind: constant, type: {basic: float}, values: [1.5]}
    - {kind: constant, type: {basic: uint}, values: [0xFFFFFFFF]}
    - {kind: constant, type: {basic: int}, values: [-3]}
`
	prog, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	seq := prog.Root.Sequence

	assert.True(t, seq[0].(*Constant).Values[0].Bool)
	assert.InDelta(t, 1.5, seq[1].(*Constant).Values[0].Float, 0)
	assert.Equal(t, uint64(0xFFFFFFFF), seq[2].(*Constant).Values[0].Uint)
	assert.Equal(t, int64(-3), seq[3].(*Constant).Values[0].Int)
}

func TestTypeQueries(t *testing.T) {
	mat := &Type{Basic: BasicFloat, MatrixCols: 3, MatrixRows: 2}
	assert.True(t, mat.IsMatrix())
	assert.False(t, mat.IsVector())
	assert.Equal(t, 2, mat.Column(false).VectorSize)
	assert.Equal(t, 3, mat.Column(true).VectorSize)
	assert.Equal(t, 6, mat.Components())

	arr := &Type{Basic: BasicFloat, VectorSize: 4, Arrays: []ArraySize{{Size: 0}, {Size: 3}}}
	assert.True(t, arr.IsRuntimeSized())
	elem := arr.Element()
	assert.Equal(t, 3, elem.OuterArraySize())
	assert.Len(t, arr.Arrays, 2, "Element leaves the receiver unchanged")
	assert.False(t, elem.Element().IsArray())

	sampler := &Type{Basic: BasicSampler}
	st := &Struct{Members: []*Type{{Basic: BasicInt, VectorSize: 1}, sampler}}
	holder := &Type{Basic: BasicStruct, Struct: st}
	assert.True(t, holder.ContainsOpaque())
	assert.True(t, holder.ContainsBasic(BasicInt))
	assert.False(t, holder.ContainsBasic(BasicDouble))
}

func TestParseOperator(t *testing.T) {
	for _, op := range []Operator{OpAssign, OpTextureGatherOffsets, OpSparseTextureGradOffsetClamp, OpConvToFloat16} {
		got, err := ParseOperator(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}
	assert.True(t, OpRightShiftAssign.IsAssignment())
	assert.False(t, OpAdd.IsAssignment())
	assert.True(t, OpTextureQueryLod.IsTexture())
	assert.True(t, OpSubpassLoadMS.IsImage())
	assert.True(t, OpConvToBool.IsConversion())
	assert.True(t, OpConstructTextureSampler.IsConstructor())
}
