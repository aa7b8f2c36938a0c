package spirv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder() *Builder {
	b := NewBuilder(Version1_0, ToolID<<16|GeneratorVersion, nil)
	b.AddCapability(CapabilityShader)
	return b
}

// globalsOf returns the module-scope instructions with the given opcode.
func globalsOf(b *Builder, op OpCode) []*Instruction {
	var out []*Instruction
	for _, inst := range b.globals {
		if inst.Opcode == op {
			out = append(out, inst)
		}
	}
	return out
}

func TestTypeInterning(t *testing.T) {
	b := newTestBuilder()

	f32 := b.MakeFloatType(32)
	assert.Equal(t, f32, b.MakeFloatType(32))
	vec4 := b.MakeVectorType(f32, 4)
	assert.Equal(t, vec4, b.MakeVectorType(f32, 4))
	assert.NotEqual(t, vec4, b.MakeVectorType(f32, 3))

	mat := b.MakeMatrixType(f32, 3, 4)
	assert.Equal(t, mat, b.MakeMatrixType(f32, 3, 4))
	assert.Equal(t, 3, b.TypeNumColumns(mat))
	assert.Equal(t, 4, b.TypeNumRows(mat))

	ptr := b.MakePointer(StorageClassFunction, vec4)
	assert.Equal(t, ptr, b.MakePointer(StorageClassFunction, vec4))
	assert.NotEqual(t, ptr, b.MakePointer(StorageClassPrivate, vec4))

	assert.Equal(t, b.MakeIntType(32), b.MakeIntType(32))
	assert.NotEqual(t, b.MakeIntType(32), b.MakeUintType(32))
	assert.True(t, b.IsIntType(b.MakeIntType(32)))
	assert.True(t, b.IsUintType(b.MakeUintType(32)))
	assert.Len(t, globalsOf(b, OpTypeFloat), 1)
}

func TestStructsAndStridedArraysAreDistinct(t *testing.T) {
	b := newTestBuilder()
	f32 := b.MakeFloatType(32)

	s1 := b.MakeStructType([]ID{f32}, "S")
	s2 := b.MakeStructType([]ID{f32}, "S")
	assert.NotEqual(t, s1, s2)

	four := b.MakeUintConst(4)
	plain := b.MakeArrayType(f32, four, 0)
	assert.Equal(t, plain, b.MakeArrayType(f32, four, 0))
	strided1 := b.MakeArrayType(f32, four, 16)
	strided2 := b.MakeArrayType(f32, four, 16)
	assert.NotEqual(t, strided1, strided2)
	assert.NotEqual(t, plain, strided1)

	assert.NotEqual(t, b.MakeRuntimeArray(f32), b.MakeRuntimeArray(f32))
	assert.Equal(t, 4, b.NumTypeConstituents(plain))
}

func TestWidthCapabilities(t *testing.T) {
	b := newTestBuilder()
	b.MakeFloatType(64)
	b.MakeIntType(16)
	b.MakeUintType(64)
	b.MakeFloatType(16)

	assert.True(t, b.HasCapability(CapabilityFloat64))
	assert.True(t, b.HasCapability(CapabilityInt16))
	assert.True(t, b.HasCapability(CapabilityInt64))
	assert.True(t, b.HasCapability(CapabilityFloat16))
	assert.Equal(t, []Capability{CapabilityShader, CapabilityFloat16, CapabilityFloat64, CapabilityInt64, CapabilityInt16}, b.Capabilities())
}

func TestImageCapabilities(t *testing.T) {
	tests := []struct {
		name    string
		dim     Dim
		arrayed bool
		ms      bool
		sampled uint32
		want    []Capability
	}{
		{"sampled buffer", DimBuffer, false, false, 1, []Capability{CapabilitySampledBuffer}},
		{"image buffer", DimBuffer, false, false, 2, []Capability{CapabilityImageBuffer}},
		{"sampled 1D", Dim1D, false, false, 1, []Capability{CapabilitySampled1D}},
		{"image 1D", Dim1D, false, false, 2, []Capability{CapabilityImage1D}},
		{"cube array", DimCube, true, false, 1, []Capability{CapabilitySampledCubeArray}},
		{"image cube array", DimCube, true, false, 2, []Capability{CapabilityImageCubeArray}},
		{"rect", DimRect, false, false, 1, []Capability{CapabilitySampledRect}},
		{"subpass", DimSubpassData, false, true, 2, []Capability{CapabilityInputAttachment}},
		{"storage ms array", Dim2D, true, true, 2, []Capability{CapabilityStorageImageMultisample, CapabilityImageMSArray}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()
			b.MakeImageType(b.MakeFloatType(32), tt.dim, false, tt.arrayed, tt.ms, tt.sampled, ImageFormatUnknown)
			for _, c := range tt.want {
				assert.True(t, b.HasCapability(c), "missing %s", CapabilityName(c))
			}
			assert.Len(t, b.Capabilities(), len(tt.want)+1)
		})
	}
}

func TestConstantPooling(t *testing.T) {
	b := newTestBuilder()

	one := b.MakeIntConst(1)
	assert.Equal(t, one, b.MakeIntConst(1))
	assert.NotEqual(t, one, b.MakeUintConst(1))
	assert.NotEqual(t, one, b.MakeIntConst(2))

	assert.Equal(t, b.MakeBoolConstant(true, false), b.MakeBoolConstant(true, false))
	assert.NotEqual(t, b.MakeBoolConstant(true, false), b.MakeBoolConstant(false, false))

	spec1 := b.MakeIntConstant(b.MakeIntType(32), 1, true)
	spec2 := b.MakeIntConstant(b.MakeIntType(32), 1, true)
	assert.NotEqual(t, spec1, spec2)
	assert.True(t, b.IsSpecConstant(spec1))
	assert.False(t, b.IsConstantScalar(spec1))
	assert.True(t, b.IsConstantScalar(one))

	d := b.MakeDoubleConstant(1.5, false)
	assert.Equal(t, []uint32{0, 0x3FF80000}, b.Instruction(d).Operands)
	assert.True(t, b.HasCapability(CapabilityFloat64))

	ivec2 := b.MakeVectorType(b.MakeIntType(32), 2)
	c1 := b.MakeCompositeConstant(ivec2, []ID{one, one}, false)
	assert.Equal(t, c1, b.MakeCompositeConstant(ivec2, []ID{one, one}, false))
	assert.NotEqual(t, c1, b.MakeCompositeConstant(ivec2, []ID{one, one}, true))
}

func TestCompositeConstantComparesType(t *testing.T) {
	b := newTestBuilder()
	f32 := b.MakeFloatType(32)
	one := b.MakeFloatConst(1)

	four := b.MakeUintConst(2)
	arr := b.MakeArrayType(f32, four, 0)
	vec := b.MakeVectorType(f32, 2)
	s1 := b.MakeStructType([]ID{f32, f32}, "A")
	s2 := b.MakeStructType([]ID{f32, f32}, "B")

	assert.NotEqual(t, b.MakeCompositeConstant(s1, []ID{one, one}, false), b.MakeCompositeConstant(s2, []ID{one, one}, false))
	assert.NotEqual(t, b.MakeCompositeConstant(arr, []ID{one, one}, false), b.MakeCompositeConstant(vec, []ID{one, one}, false))
}

func TestFunctionEntryAllocation(t *testing.T) {
	b := newTestBuilder()
	void := b.MakeVoidType()
	f32 := b.MakeFloatType(32)

	fn, entry := b.MakeFunctionEntry(DecorationRelaxedPrecision, f32, "f(f1;", []ID{f32, f32}, []Decoration{DecorationMax, DecorationRelaxedPrecision})
	require.NotNil(t, fn)
	assert.Same(t, entry, b.BuildPoint())
	assert.Equal(t, []ID{fn.FunctionType + 1, fn.FunctionType + 2}, fn.Params())
	assert.Equal(t, fn.FunctionType+3, fn.ID)
	assert.Equal(t, fn.ID+1, entry.ID)
	assert.Equal(t, OpTypeFunction, b.TypeClass(fn.FunctionType))
	assert.NotEqual(t, void, fn.ReturnType)

	// Function precision and the second parameter's precision.
	assert.Len(t, b.Decorations(), 2)
}

func TestLeaveFunctionAddsReturn(t *testing.T) {
	b := newTestBuilder()
	f32 := b.MakeFloatType(32)
	fn, entry := b.MakeFunctionEntry(DecorationMax, f32, "g", nil, nil)
	b.LeaveFunction()

	insts := entry.Instructions()
	require.Len(t, insts, 2)
	assert.Equal(t, OpUndef, insts[0].Opcode)
	assert.Equal(t, OpReturnValue, insts[1].Opcode)
	assert.Len(t, fn.Blocks(), 1)
}

func TestExplicitReturnStartsUnreachableBlock(t *testing.T) {
	b := newTestBuilder()
	fn := b.MakeEntryPoint("main")
	b.MakeReturn(false, NoResult)
	b.CreateUndefined(b.MakeFloatType(32))
	b.LeaveFunction()

	require.Len(t, fn.Blocks(), 2)
	assert.True(t, fn.Blocks()[1].IsUnreachable())
	assert.Len(t, readableOrder(fn), 1)
}

func TestCreateVariableHoistsLocals(t *testing.T) {
	b := newTestBuilder()
	fn := b.MakeEntryPoint("main")
	f32 := b.MakeFloatType(32)

	ifb := b.NewIf(b.MakeBoolConstant(true, false), SelectionControlNone)
	local := b.CreateVariable(StorageClassFunction, f32, "x")
	ifb.MakeEndIf()
	global := b.CreateVariable(StorageClassPrivate, f32, "g")

	require.Len(t, fn.EntryBlock().Locals(), 1)
	assert.Equal(t, local, fn.EntryBlock().Locals()[0].ResultID)
	assert.Equal(t, StorageClassFunction, b.StorageClassOf(local))
	assert.Equal(t, StorageClassPrivate, b.StorageClassOf(global))
	assert.Len(t, globalsOf(b, OpVariable), 1)
}

func TestIfElseStructure(t *testing.T) {
	b := newTestBuilder()
	fn := b.MakeEntryPoint("main")
	header := b.BuildPoint()

	cond := b.MakeBoolConstant(true, false)
	ifb := b.NewIf(cond, SelectionControlNone)
	then := b.BuildPoint()
	ifb.MakeBeginElse()
	els := b.BuildPoint()
	ifb.MakeEndIf()
	merge := b.BuildPoint()
	b.LeaveFunction()

	hi := header.Instructions()
	require.Len(t, hi, 2)
	assert.Equal(t, OpSelectionMerge, hi[0].Opcode)
	assert.Equal(t, merge.ID, hi[0].Operand(0))
	assert.Equal(t, OpBranchConditional, hi[1].Opcode)
	assert.Equal(t, []uint32{cond, then.ID, els.ID}, hi[1].Operands)

	order := readableOrder(fn)
	assert.Equal(t, []*Block{header, then, els, merge}, order)
	assert.Equal(t, []*Block{then, els}, merge.Predecessors())
}

func TestIfWithoutElseBranchesToMerge(t *testing.T) {
	b := newTestBuilder()
	b.MakeEntryPoint("main")
	header := b.BuildPoint()
	cond := b.MakeBoolConstant(false, false)
	ifb := b.NewIf(cond, SelectionControlFlatten)
	then := b.BuildPoint()
	ifb.MakeEndIf()
	merge := b.BuildPoint()

	br := header.Instructions()[1]
	assert.Equal(t, []uint32{cond, then.ID, merge.ID}, br.Operands)
	assert.Equal(t, uint32(SelectionControlFlatten), header.Instructions()[0].Operand(1))
}

func TestSwitchSegments(t *testing.T) {
	b := newTestBuilder()
	fn := b.MakeEntryPoint("main")
	header := b.BuildPoint()
	selector := b.MakeIntConst(3)

	// case 1: ; case 2: default: break;
	segments := b.MakeSwitch(selector, SelectionControlNone, 2, []int{1, 2}, []int{0, 1}, 1)
	b.NextSwitchSegment(segments, 0)
	b.NextSwitchSegment(segments, 1)
	b.AddSwitchBreak()
	b.EndSwitch()
	merge := b.BuildPoint()
	b.LeaveFunction()

	sw := header.Instructions()[1]
	require.Equal(t, OpSwitch, sw.Opcode)
	assert.Equal(t, []uint32{selector, segments[1].ID, 1, segments[0].ID, 2, segments[1].ID}, sw.Operands)

	// Segment 0 falls through into segment 1.
	fall := segments[0].Instructions()
	require.Len(t, fall, 1)
	assert.Equal(t, OpBranch, fall[0].Opcode)
	assert.Equal(t, segments[1].ID, fall[0].Operand(0))

	order := readableOrder(fn)
	assert.Equal(t, []*Block{header, segments[1], segments[0], merge}, order)
}

func TestLoopBlocks(t *testing.T) {
	b := newTestBuilder()
	fn := b.MakeEntryPoint("main")
	entry := b.BuildPoint()

	loop := b.MakeNewLoop()
	b.CreateBranch(loop.Head)
	b.SetBuildPoint(loop.Head)
	b.CreateLoopMerge(loop.Merge, loop.ContinueTarget, LoopControlNone)
	b.CreateBranch(loop.Body)
	b.SetBuildPoint(loop.Body)
	b.CreateLoopExit()
	b.CreateBranch(loop.ContinueTarget)
	b.SetBuildPoint(loop.ContinueTarget)
	b.CreateBranch(loop.Head)
	b.CloseLoop()
	b.SetBuildPoint(loop.Merge)
	b.LeaveFunction()

	assert.False(t, b.InLoop())
	order := readableOrder(fn)
	assert.Equal(t, []*Block{entry, loop.Head, loop.Body, loop.ContinueTarget, loop.Merge}, order)
	assert.Len(t, unreachableBlocks(fn), 1)
}

func TestEliminateDeadDecorations(t *testing.T) {
	b := newTestBuilder()
	b.MakeEntryPoint("main")
	f32 := b.MakeFloatType(32)
	live := b.CreateUndefined(f32)
	b.SetPrecision(live, DecorationRelaxedPrecision)
	b.MakeReturn(false, NoResult)
	dead := b.CreateUndefined(f32)
	b.SetPrecision(dead, DecorationRelaxedPrecision)
	b.AddName(dead, "dead")
	b.LeaveFunction()

	b.EliminateDeadDecorations()
	require.Len(t, b.Decorations(), 1)
	assert.Equal(t, live, b.Decorations()[0].Operand(0))
	for _, n := range b.Names() {
		assert.NotEqual(t, dead, n.Operand(0))
	}
}

func TestSpecConstantMode(t *testing.T) {
	b := newTestBuilder()
	i32 := b.MakeIntType(32)
	a := b.MakeIntConstant(i32, 3, true)
	c := b.MakeIntConst(4)

	scope := b.EnterSpecConstantScope()
	scope.TurnOn()
	sum := b.CreateBinOp(OpIAdd, i32, a, c)
	ivec2 := b.MakeVectorType(i32, 2)
	smeared := b.SmearScalar(DecorationMax, c, ivec2)
	built := b.CreateCompositeConstruct(ivec2, []ID{a, c})
	scope.Restore()

	assert.False(t, b.InSpecConstantMode())
	inst := b.Instruction(sum)
	assert.Equal(t, OpSpecConstantOp, inst.Opcode)
	assert.Equal(t, []uint32{uint32(OpIAdd), a, c}, inst.Operands)
	assert.Equal(t, OpConstantComposite, b.Instruction(smeared).Opcode)
	assert.Equal(t, OpSpecConstantComposite, b.Instruction(built).Opcode)
}

func TestEntryPointHeader(t *testing.T) {
	b := newTestBuilder()
	fn := b.MakeEntryPoint("main")
	b.AddEntryPoint(ExecutionModelGLCompute, fn, "main")
	b.AddExecutionMode(fn, ExecutionModeLocalSize, 8, 8, 1)
	b.LeaveFunction()

	words := b.Dump()
	require.GreaterOrEqual(t, len(words), 5)
	assert.Equal(t, uint32(MagicNumber), words[0])
	assert.Equal(t, uint32(0x00010000), words[1])
	assert.Equal(t, b.Bound(), words[3])
	assert.Equal(t, uint32(0), words[4])

	// The first instruction after the header is OpCapability Shader.
	assert.Equal(t, uint32(2<<16|uint32(OpCapability)), words[5])
	assert.Equal(t, uint32(CapabilityShader), words[6])
}

func TestSourceTextSplitsAcrossContinued(t *testing.T) {
	b := newTestBuilder()
	b.SetSource(SourceLanguageGLSL, 450)
	b.SetSourceFile("big.comp")
	text := make([]byte, sourceBytesPerInstruction+10)
	for i := range text {
		text[i] = 'a'
	}
	b.SetSourceText(string(text))

	out := b.appendSource(nil)
	first := int(out[0] >> 16)
	require.LessOrEqual(t, first, maxWordCount)
	assert.Equal(t, uint32(OpSource), out[0]&0xFFFF)
	cont := out[first:]
	assert.Equal(t, uint32(OpSourceContinued), cont[0]&0xFFFF)
	s, _ := DecodeString(cont[1:])
	assert.Len(t, s, 10)
}

func TestStringWords(t *testing.T) {
	assert.Equal(t, []uint32{0x6E69616D, 0}, StringWords("main"))
	assert.Equal(t, []uint32{0x00636261}, StringWords("abc"))

	s, n := DecodeString(StringWords("GLSL.std.450"))
	assert.Equal(t, "GLSL.std.450", s)
	assert.Equal(t, 4, n)

	// NFC composes e + combining acute into a single code point.
	assert.Equal(t, StringWords("é"), StringWords("é"))
}

func TestBytesRoundTrip(t *testing.T) {
	words := []uint32{MagicNumber, 0x00010000}
	data := WordsToBytes(words)
	assert.Equal(t, []byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0}, data)

	back, err := BytesToWords(data)
	require.NoError(t, err)
	assert.Equal(t, words, back)

	_, err = BytesToWords([]byte{1, 2, 3})
	assert.Error(t, err)
}
