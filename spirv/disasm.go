package spirv

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Disassemble writes a textual listing of a SPIR-V binary to w.
func Disassemble(w io.Writer, words []uint32) error {
	if len(words) < 5 {
		return fmt.Errorf("spirv: module has %d words, want at least 5", len(words))
	}
	if words[0] != MagicNumber {
		return fmt.Errorf("spirv: invalid magic 0x%08X", words[0])
	}

	var sb strings.Builder
	v := wordToVersion(words[1])
	fmt.Fprintf(&sb, "; SPIR-V\n")
	fmt.Fprintf(&sb, "; Version: %d.%d\n", v.Major, v.Minor)
	fmt.Fprintf(&sb, "; Generator: 0x%08X\n", words[2])
	fmt.Fprintf(&sb, "; Bound: %d\n", words[3])
	fmt.Fprintf(&sb, "; Schema: %d\n", words[4])

	d := disassembler{extSets: make(map[ID]string)}
	for offset := 5; offset < len(words); {
		wordCount := int(words[offset] >> 16)
		op := OpCode(words[offset] & 0xFFFF)
		if wordCount == 0 || offset+wordCount > len(words) {
			return fmt.Errorf("spirv: invalid word count %d at word %d", wordCount, offset)
		}
		sb.WriteString(d.instruction(op, words[offset+1:offset+wordCount]))
		sb.WriteByte('\n')
		offset += wordCount
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

type disassembler struct {
	extSets map[ID]string
}

func id(n uint32) string {
	return "%" + strconv.FormatUint(uint64(n), 10)
}

func quoted(words []uint32) (string, int) {
	s, n := DecodeString(words)
	return strconv.Quote(s), n
}

// hasResultType reports the result-id and result-type layout of op.
func hasResultType(op OpCode) (hasType, hasResult bool) {
	switch op {
	case OpNop, OpSourceContinued, OpSource, OpSourceExtension, OpName, OpMemberName,
		OpLine, OpNoLine, OpExtension, OpMemoryModel, OpEntryPoint, OpExecutionMode,
		OpCapability, OpFunctionEnd, OpStore, OpCopyMemory, OpDecorate, OpMemberDecorate,
		OpImageWrite, OpEmitVertex, OpEndPrimitive, OpEmitStreamVertex, OpEndStreamPrimitive,
		OpControlBarrier, OpMemoryBarrier, OpAtomicStore, OpLoopMerge, OpSelectionMerge,
		OpBranch, OpBranchConditional, OpSwitch, OpKill, OpReturn, OpReturnValue, OpUnreachable:
		return false, false
	case OpString, OpExtInstImport, OpLabel, OpTypeVoid, OpTypeBool, OpTypeInt, OpTypeFloat,
		OpTypeVector, OpTypeMatrix, OpTypeImage, OpTypeSampler, OpTypeSampledImage,
		OpTypeArray, OpTypeRuntimeArray, OpTypeStruct, OpTypeOpaque, OpTypePointer, OpTypeFunction:
		return false, true
	}
	return true, true
}

//nolint:gocyclo,cyclop,funlen // one case per operand layout
func (d *disassembler) instruction(op OpCode, ops []uint32) string {
	hasType, hasResult := hasResultType(op)
	var typeID, resultID ID
	if hasType && len(ops) > 0 {
		typeID, ops = ops[0], ops[1:]
	}
	if hasResult && len(ops) > 0 {
		resultID, ops = ops[0], ops[1:]
	}

	parts := []string{op.String()}
	if hasType {
		parts = append(parts, id(typeID))
	}
	ids := func(from int) {
		for _, o := range ops[from:] {
			parts = append(parts, id(o))
		}
	}
	literals := func(from int) {
		for _, o := range ops[from:] {
			parts = append(parts, strconv.FormatUint(uint64(o), 10))
		}
	}

	switch op {
	case OpCapability:
		parts = append(parts, CapabilityName(Capability(ops[0])))
	case OpExtension, OpSourceExtension, OpSourceContinued, OpString:
		s, _ := quoted(ops)
		parts = append(parts, s)
	case OpExtInstImport:
		s, _ := quoted(ops)
		name, _ := DecodeString(ops)
		d.extSets[resultID] = name
		parts = append(parts, s)
	case OpMemoryModel:
		parts = append(parts, AddressingModel(ops[0]).String(), MemoryModel(ops[1]).String())
	case OpEntryPoint:
		s, n := quoted(ops[2:])
		parts = append(parts, ExecutionModel(ops[0]).String(), id(ops[1]), s)
		ids(2 + n)
	case OpExecutionMode:
		parts = append(parts, id(ops[0]), ExecutionMode(ops[1]).String())
		literals(2)
	case OpSource:
		parts = append(parts, SourceLanguage(ops[0]).String(), strconv.FormatUint(uint64(ops[1]), 10))
		if len(ops) > 2 {
			parts = append(parts, id(ops[2]))
		}
		if len(ops) > 3 {
			s, _ := quoted(ops[3:])
			parts = append(parts, s)
		}
	case OpName:
		s, _ := quoted(ops[1:])
		parts = append(parts, id(ops[0]), s)
	case OpMemberName:
		s, _ := quoted(ops[2:])
		parts = append(parts, id(ops[0]), strconv.FormatUint(uint64(ops[1]), 10), s)
	case OpLine:
		parts = append(parts, id(ops[0]))
		literals(1)
	case OpDecorate:
		parts = append(parts, id(ops[0]), Decoration(ops[1]).String())
		parts = append(parts, decorationOperands(Decoration(ops[1]), ops[2:])...)
	case OpMemberDecorate:
		parts = append(parts, id(ops[0]), strconv.FormatUint(uint64(ops[1]), 10), Decoration(ops[2]).String())
		parts = append(parts, decorationOperands(Decoration(ops[2]), ops[3:])...)
	case OpTypeInt, OpTypeFloat:
		literals(0)
	case OpTypeVector, OpTypeMatrix:
		parts = append(parts, id(ops[0]), strconv.FormatUint(uint64(ops[1]), 10))
	case OpTypeImage:
		parts = append(parts, id(ops[0]), Dim(ops[1]).String())
		for _, o := range ops[2:6] {
			parts = append(parts, strconv.FormatUint(uint64(o), 10))
		}
		parts = append(parts, ImageFormat(ops[6]).String())
	case OpTypePointer:
		parts = append(parts, StorageClass(ops[0]).String(), id(ops[1]))
	case OpConstant, OpSpecConstant:
		literals(0)
	case OpFunction:
		parts = append(parts, functionControlName(FunctionControl(ops[0])), id(ops[1]))
	case OpVariable:
		parts = append(parts, StorageClass(ops[0]).String())
		ids(1)
	case OpCompositeExtract:
		parts = append(parts, id(ops[0]))
		literals(1)
	case OpCompositeInsert:
		parts = append(parts, id(ops[0]), id(ops[1]))
		literals(2)
	case OpVectorShuffle:
		parts = append(parts, id(ops[0]), id(ops[1]))
		literals(2)
	case OpArrayLength:
		parts = append(parts, id(ops[0]))
		literals(1)
	case OpExtInst:
		parts = append(parts, id(ops[0]))
		if d.extSets[ops[0]] == GLSLstd450Name {
			parts = append(parts, GLSLstd450(ops[1]).String())
		} else {
			parts = append(parts, strconv.FormatUint(uint64(ops[1]), 10))
		}
		ids(2)
	case OpSpecConstantOp:
		parts = append(parts, OpCode(ops[0]).String())
		ids(1)
	case OpSelectionMerge:
		parts = append(parts, id(ops[0]), selectionControlName(SelectionControl(ops[1])))
	case OpLoopMerge:
		parts = append(parts, id(ops[0]), id(ops[1]), loopControlName(LoopControl(ops[2])))
	case OpSwitch:
		parts = append(parts, id(ops[0]), id(ops[1]))
		for i := 2; i+1 < len(ops); i += 2 {
			parts = append(parts, strconv.FormatInt(int64(int32(ops[i])), 10), id(ops[i+1]))
		}
	default:
		if mask, at, ok := imageOperandsIndex(op, ops); ok {
			for _, o := range ops[:at] {
				parts = append(parts, id(o))
			}
			parts = append(parts, imageOperandsName(ImageOperands(mask)))
			ids(at + 1)
		} else {
			ids(0)
		}
	}

	line := strings.Join(parts, " ")
	if hasResult {
		return fmt.Sprintf("%12s = %s", id(resultID), line)
	}
	return "               " + line
}

func decorationOperands(dec Decoration, ops []uint32) []string {
	var out []string
	for _, o := range ops {
		if dec == DecorationBuiltIn {
			out = append(out, BuiltIn(o).String())
		} else {
			out = append(out, strconv.FormatUint(uint64(o), 10))
		}
	}
	return out
}

// imageOperandsIndex locates the image operands mask of sampling, fetch
// and read instructions.
func imageOperandsIndex(op OpCode, ops []uint32) (uint32, int, bool) {
	var at int
	switch op {
	case OpImageSampleImplicitLod, OpImageSampleExplicitLod, OpImageSampleProjImplicitLod,
		OpImageSampleProjExplicitLod, OpImageFetch, OpImageRead,
		OpImageSparseSampleImplicitLod, OpImageSparseSampleExplicitLod,
		OpImageSparseSampleProjImplicitLod, OpImageSparseSampleProjExplicitLod,
		OpImageSparseFetch, OpImageSparseRead:
		at = 2
	case OpImageSampleDrefImplicitLod, OpImageSampleDrefExplicitLod, OpImageSampleProjDrefImplicitLod,
		OpImageSampleProjDrefExplicitLod, OpImageGather, OpImageDrefGather,
		OpImageSparseSampleDrefImplicitLod, OpImageSparseSampleDrefExplicitLod,
		OpImageSparseSampleProjDrefImplicitLod, OpImageSparseSampleProjDrefExplicitLod,
		OpImageSparseGather, OpImageSparseDrefGather:
		at = 3
	default:
		return 0, 0, false
	}
	if len(ops) <= at {
		return 0, 0, false
	}
	return ops[at], at, true
}

func maskName(v uint32, names []string) string {
	if v == 0 {
		return "None"
	}
	var set []string
	for bit, name := range names {
		if v&(1<<bit) != 0 {
			set = append(set, name)
		}
	}
	return strings.Join(set, "|")
}

func imageOperandsName(m ImageOperands) string {
	return maskName(uint32(m), []string{"Bias", "Lod", "Grad", "ConstOffset", "Offset", "ConstOffsets", "Sample", "MinLod"})
}

func functionControlName(c FunctionControl) string {
	return maskName(uint32(c), []string{"Inline", "DontInline", "Pure", "Const"})
}

func selectionControlName(c SelectionControl) string {
	return maskName(uint32(c), []string{"Flatten", "DontFlatten"})
}

func loopControlName(c LoopControl) string {
	return maskName(uint32(c), []string{"Unroll", "DontUnroll"})
}
