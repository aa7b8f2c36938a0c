package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

// miscOperation emits a builtin of two or more operands. Operands at
// the operator's l-value positions are pointers.
//
//nolint:gocyclo,cyclop,funlen // one case per builtin
func (s *Session) miscOperation(op ast.Operator, precision spirv.Decoration, typeID spirv.ID,
	operands []spirv.ID, proxy ast.BasicType,
) spirv.ID {
	info := Lookup(op)
	for _, c := range info.Capabilities {
		s.b.AddCapability(c)
	}

	code := spirv.OpNop
	inst := spirv.GLSLstd450Bad
	consumed := len(operands)
	last := len(operands) - 1

	var resultMember spirv.ID
	var exponentType, exponentPointee spirv.ID

	switch op {
	case ast.OpMin, ast.OpMax, ast.OpStep:
		inst = info.Inst(proxy)
		operands[0], operands[last] = s.b.PromoteScalar(precision, operands[0], operands[last])

	case ast.OpClamp:
		inst = info.Inst(proxy)
		operands[0], operands[1] = s.b.PromoteScalar(precision, operands[0], operands[1])
		operands[0], operands[2] = s.b.PromoteScalar(precision, operands[0], operands[2])

	case ast.OpMix:
		if s.b.IsBoolType(s.b.ScalarTypeID(s.b.TypeID(operands[last]))) {
			// mix(x, y, a) with a bool selector picks y where a is set.
			code = spirv.OpSelect
			operands[0], operands[last] = operands[last], operands[0]
		} else {
			inst = spirv.GLSLstd450FMix
		}
		operands[0], operands[last] = s.b.PromoteScalar(precision, operands[0], operands[last])

	case ast.OpSmoothStep:
		inst = info.Inst(proxy)
		operands[0], operands[2] = s.b.PromoteScalar(precision, operands[0], operands[2])
		operands[1], operands[2] = s.b.PromoteScalar(precision, operands[1], operands[2])

	case ast.OpAtan:
		inst = spirv.GLSLstd450Atan2

	case ast.OpAddCarry, ast.OpSubBorrow, ast.OpUMulExtended, ast.OpIMulExtended:
		code = info.Opcode(proxy)
		resultMember = s.b.TypeID(operands[0])
		typeID = s.b.MakeStructResultType(resultMember, resultMember)
		consumed = 2

	case ast.OpFrexp:
		inst = spirv.GLSLstd450FrexpStruct
		exponentPointee = s.b.DerefTypeID(operands[1])
		signed := s.b.MakeIntegerType(uint32(s.b.ScalarTypeWidth(exponentPointee)), true)
		exponentType = signed
		if n := s.b.NumComponents(operands[0]); n > 1 {
			exponentType = s.b.MakeVectorType(signed, n)
		}
		resultMember = s.b.TypeID(operands[0])
		typeID = s.b.MakeStructResultType(resultMember, exponentType)
		consumed = 1

	case ast.OpBitfieldExtract, ast.OpBitfieldInsert, ast.OpDot:
		code = info.Opcode(proxy)

	default:
		if info.Category != CategoryMisc && info.Category != CategoryExtInst {
			return spirv.NoResult
		}
		inst = info.Inst(proxy)
		if inst == spirv.GLSLstd450Bad {
			return spirv.NoResult
		}
	}

	var id spirv.ID
	switch {
	case inst != spirv.GLSLstd450Bad:
		id = s.b.CreateBuiltinCall(typeID, s.stdBuiltins, uint32(inst), operands[:consumed])
	case consumed == 2:
		id = s.b.CreateBinOp(code, typeID, operands[0], operands[1])
	default:
		id = s.b.CreateOp(code, typeID, operands)
	}

	// Struct results are split: one member is the value, the rest go
	// to the l-value operands.
	switch op {
	case ast.OpAddCarry, ast.OpSubBorrow:
		s.b.CreateStore(s.b.CreateCompositeExtract(id, resultMember, 1), operands[2])
		id = s.b.CreateCompositeExtract(id, resultMember, 0)
	case ast.OpUMulExtended, ast.OpIMulExtended:
		s.b.CreateStore(s.b.CreateCompositeExtract(id, resultMember, 0), operands[3])
		s.b.CreateStore(s.b.CreateCompositeExtract(id, resultMember, 1), operands[2])
	case ast.OpFrexp:
		exponent := s.b.CreateCompositeExtract(id, exponentType, 1)
		if s.b.IsFloatType(s.b.ScalarTypeID(exponentPointee)) {
			exponent = s.b.CreateUnaryOp(spirv.OpConvertSToF, exponentPointee, exponent)
		}
		s.b.CreateStore(exponent, operands[1])
		id = s.b.CreateCompositeExtract(id, resultMember, 0)
	}

	return s.b.SetPrecision(id, precision)
}

// noArgOperation emits vertex emission and barrier builtins. None of
// them has a result.
func (s *Session) noArgOperation(op ast.Operator) {
	info := Lookup(op)
	switch info.Category {
	case CategoryNoArg:
		s.b.CreateNoResultOp(info.Signed)
	case CategoryBarrier:
		if info.Control {
			s.b.CreateControlBarrier(spirv.ScopeWorkgroup, spirv.ScopeDevice, info.Semantics)
		} else {
			s.b.CreateMemoryBarrier(spirv.ScopeDevice, info.Semantics)
		}
	default:
		s.missing("unknown operation with no arguments")
	}
}

// atomicOperation emits an atomic on the pointer operands[0]. Scope and
// semantics operands are inserted after the pointer; compare-exchange
// takes its value and comparator in the opposite order.
func (s *Session) atomicOperation(op ast.Operator, typeID spirv.ID, operands []spirv.ID, proxy ast.BasicType) spirv.ID {
	code := Lookup(op).Opcode(proxy)

	args := []spirv.ID{
		operands[0],
		s.b.MakeUintConst(uint32(spirv.ScopeDevice)),
		s.b.MakeUintConst(uint32(spirv.MemorySemanticsNone)),
	}
	rest := operands[1:]
	if code == spirv.OpAtomicCompareExchange {
		args = append(args, s.b.MakeUintConst(uint32(spirv.MemorySemanticsNone)), rest[1], rest[0])
		rest = rest[2:]
	}
	args = append(args, rest...)

	return s.b.CreateOp(code, typeID, args)
}
