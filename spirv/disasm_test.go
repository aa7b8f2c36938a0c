package spirv

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisassembleMinimalFragment(t *testing.T) {
	b := NewBuilder(Version1_0, 1, nil)
	b.AddCapability(CapabilityShader)
	b.Import(GLSLstd450Name)
	fn := b.MakeEntryPoint("main")
	b.AddEntryPoint(ExecutionModelFragment, fn, "main")
	b.AddExecutionMode(fn, ExecutionModeOriginUpperLeft)
	b.LeaveFunction()

	var buf bytes.Buffer
	require.NoError(t, Disassemble(&buf, b.Dump()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "minimal_fragment", buf.Bytes())
}

func TestDisassembleRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Disassemble(&buf, []uint32{1, 2}))
	assert.Error(t, Disassemble(&buf, []uint32{0xDEADBEEF, 0, 0, 0, 0}))
	assert.Error(t, Disassemble(&buf, []uint32{MagicNumber, 0x10000, 0, 1, 0, 5<<16 | uint32(OpCapability)}))
}

func TestDisassembleInstructionForms(t *testing.T) {
	d := disassembler{extSets: map[ID]string{1: GLSLstd450Name}}

	tests := []struct {
		name string
		op   OpCode
		ops  []uint32
		want string
	}{
		{"decorate builtin", OpDecorate, []uint32{7, uint32(DecorationBuiltIn), uint32(BuiltInFragCoord)}, "               OpDecorate %7 BuiltIn FragCoord"},
		{"member offset", OpMemberDecorate, []uint32{3, 1, uint32(DecorationOffset), 16}, "               OpMemberDecorate %3 1 Offset 16"},
		{"pointer", OpTypePointer, []uint32{9, uint32(StorageClassUniform), 3}, "          %9 = OpTypePointer Uniform %3"},
		{"ext inst", OpExtInst, []uint32{2, 10, 1, uint32(GLSLstd450Sqrt), 8}, "         %10 = OpExtInst %2 %1 Sqrt %8"},
		{"switch", OpSwitch, []uint32{4, 5, 0xFFFFFFFF, 6}, "               OpSwitch %4 %5 -1 %6"},
		{"sample bias", OpImageSampleImplicitLod, []uint32{2, 12, 10, 11, uint32(ImageOperandsBias), 13}, "         %12 = OpImageSampleImplicitLod %2 %10 %11 Bias %13"},
		{"spec op", OpSpecConstantOp, []uint32{2, 14, uint32(OpIAdd), 3, 4}, "         %14 = OpSpecConstantOp %2 OpIAdd %3 %4"},
		{"loop merge", OpLoopMerge, []uint32{5, 6, uint32(LoopControlUnroll)}, "               OpLoopMerge %5 %6 Unroll"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.instruction(tt.op, tt.ops))
		})
	}
}
