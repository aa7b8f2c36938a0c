package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

// binaryOperation emits a two-operand operator. proxy is the basic type
// that selects the float, signed or unsigned form. It returns NoResult
// for operators it does not know.
func (s *Session) binaryOperation(op ast.Operator, precision, noContraction spirv.Decoration,
	typeID, left, right spirv.ID, proxy ast.BasicType, reduce bool,
) spirv.ID {
	info := Lookup(op)

	switch info.Category {
	case CategoryBinary, CategoryLogical:
		code := info.Opcode(proxy)
		if code == spirv.OpNop {
			return spirv.NoResult
		}
		matching := info.Matching

		if op == ast.OpVectorTimesScalar && proxy.IsFloat() {
			if s.b.IsVector(left) || s.b.IsVector(right) {
				if s.b.IsVector(right) {
					left, right = right, left
				}
				matching = false
			} else {
				code = spirv.OpFMul
			}
		}

		if s.b.IsMatrix(left) || s.b.IsMatrix(right) {
			return s.binaryMatrixOperation(code, precision, noContraction, typeID, left, right)
		}
		if matching {
			left, right = s.b.PromoteScalar(precision, left, right)
		}
		id := s.b.CreateBinOp(code, typeID, left, right)
		s.b.AddDecoration(id, noContraction)
		return s.b.SetPrecision(id, precision)

	case CategoryCompare:
		if reduce && info.ReduceComparison &&
			(s.b.IsVector(left) || s.b.IsMatrix(left) || s.b.IsAggregate(left)) {
			return s.b.CreateCompositeCompare(precision, left, right, op == ast.OpEqual)
		}
		code := info.Opcode(proxy)
		if code == spirv.OpNop {
			return spirv.NoResult
		}
		id := s.b.CreateBinOp(code, typeID, left, right)
		s.b.AddDecoration(id, noContraction)
		return s.b.SetPrecision(id, precision)
	}
	return spirv.NoResult
}

// binaryMatrixOperation emits the matrix forms of binary operators.
// Products are first-class instructions; component-wise arithmetic
// is done column by column.
func (s *Session) binaryMatrixOperation(code spirv.OpCode, precision, noContraction spirv.Decoration,
	typeID, left, right spirv.ID,
) spirv.ID {
	firstClass := true
	switch code {
	case spirv.OpFDiv:
		if s.b.IsMatrix(left) && s.b.IsScalar(right) {
			// m / x is m * (1 / x).
			scalarType := s.b.TypeID(right)
			right = s.b.CreateBinOp(spirv.OpFDiv, scalarType, s.fpConstant(scalarType, 1), right)
			code = spirv.OpMatrixTimesScalar
		} else {
			firstClass = false
		}
	case spirv.OpMatrixTimesScalar:
		if s.b.IsMatrix(right) {
			left, right = right, left
		}
	case spirv.OpVectorTimesMatrix, spirv.OpMatrixTimesVector, spirv.OpMatrixTimesMatrix, spirv.OpOuterProduct:
	default:
		firstClass = false
	}

	if firstClass {
		id := s.b.CreateBinOp(code, typeID, left, right)
		s.b.AddDecoration(id, noContraction)
		return s.b.SetPrecision(id, precision)
	}

	switch code {
	case spirv.OpFAdd, spirv.OpFSub, spirv.OpFDiv, spirv.OpFMod, spirv.OpFMul:
	default:
		s.missing("matrix operation %d", code)
		return s.b.CreateUndefined(typeID)
	}

	leftMat := s.b.IsMatrix(left)
	rightMat := s.b.IsMatrix(right)
	matrix := right
	if leftMat {
		matrix = left
	}
	cols := s.b.NumColumns(matrix)
	vecType := s.b.MakeVectorType(s.b.ScalarTypeID(typeID), s.b.NumRows(matrix))

	smear := spirv.NoResult
	switch {
	case s.b.IsScalar(left):
		smear = s.b.SmearScalar(precision, left, vecType)
	case s.b.IsScalar(right):
		smear = s.b.SmearScalar(precision, right, vecType)
	}

	columns := make([]spirv.ID, 0, cols)
	for c := range cols {
		l, r := smear, smear
		if leftMat {
			l = s.b.CreateCompositeExtract(left, vecType, s.word(c))
		}
		if rightMat {
			r = s.b.CreateCompositeExtract(right, vecType, s.word(c))
		}
		id := s.b.CreateBinOp(code, vecType, l, r)
		s.b.AddDecoration(id, noContraction)
		columns = append(columns, s.b.SetPrecision(id, precision))
	}
	return s.b.SetPrecision(s.b.CreateCompositeConstruct(typeID, columns), precision)
}

// unaryOperation emits a one-operand operator or builtin. It returns
// NoResult for operators that need special handling.
func (s *Session) unaryOperation(op ast.Operator, precision, noContraction spirv.Decoration,
	typeID, operand spirv.ID, proxy ast.BasicType,
) spirv.ID {
	info := Lookup(op)
	for _, c := range info.Capabilities {
		s.b.AddCapability(c)
	}

	var id spirv.ID
	switch info.Category {
	case CategoryUnary:
		code := info.Opcode(proxy)
		if code == spirv.OpNop {
			return spirv.NoResult
		}
		if code == spirv.OpFNegate && s.b.IsMatrixType(typeID) {
			return s.unaryMatrixOperation(code, precision, noContraction, typeID, operand)
		}
		id = s.b.CreateUnaryOp(code, typeID, operand)

	case CategoryExtInst:
		inst := info.Inst(proxy)
		if inst == spirv.GLSLstd450Bad {
			return spirv.NoResult
		}
		id = s.b.CreateBuiltinCall(typeID, s.stdBuiltins, uint32(inst), []spirv.ID{operand})

	case CategoryAtomic:
		return s.atomicOperation(op, typeID, []spirv.ID{operand}, proxy)

	case CategoryInvocation:
		s.missing("shader invocation operation %s", op)
		return s.b.CreateUndefined(typeID)

	default:
		return spirv.NoResult
	}

	s.b.AddDecoration(id, noContraction)
	return s.b.SetPrecision(id, precision)
}

// unaryMatrixOperation applies code to each column of a matrix.
func (s *Session) unaryMatrixOperation(code spirv.OpCode, precision, noContraction spirv.Decoration,
	typeID, operand spirv.ID,
) spirv.ID {
	cols := s.b.NumColumns(operand)
	rows := s.b.NumRows(operand)
	srcVec := s.b.MakeVectorType(s.b.ScalarTypeID(s.b.TypeID(operand)), rows)
	dstVec := s.b.MakeVectorType(s.b.ScalarTypeID(typeID), rows)

	columns := make([]spirv.ID, 0, cols)
	for c := range cols {
		col := s.b.CreateCompositeExtract(operand, srcVec, s.word(c))
		id := s.b.CreateUnaryOp(code, dstVec, col)
		s.b.AddDecoration(id, noContraction)
		columns = append(columns, s.b.SetPrecision(id, precision))
	}
	return s.b.SetPrecision(s.b.CreateCompositeConstruct(typeID, columns), precision)
}

func intWidth(b ast.BasicType) uint32 {
	if b.Is64() {
		return 64
	}
	return 32
}

// zeroOfWidth is an unsigned zero as wide as integer type b.
func (s *Session) zeroOfWidth(b ast.BasicType) spirv.ID {
	if b.Is64() {
		return s.b.MakeInt64Constant(s.b.MakeUintType(64), 0, false)
	}
	return s.b.MakeUintConst(0)
}

// conversion emits a numeric or boolean conversion of operand, whose
// basic type is from, to dest.
//
//nolint:gocyclo,cyclop // one case per conversion family
func (s *Session) conversion(precision, noContraction spirv.Decoration, dest *ast.Type,
	destID, operand spirv.ID, from ast.BasicType,
) spirv.ID {
	to := dest.Basic
	n := s.vectorWidth(operand)

	var code spirv.OpCode
	switch {
	case to == from:
		return operand

	case to == ast.BasicBool:
		if from.IsFloat() {
			zero := s.smearedConstant(s.scalarOf(from, 0), n)
			return s.b.CreateBinOp(spirv.OpFOrdNotEqual, destID, operand, zero)
		}
		return s.b.CreateBinOp(spirv.OpINotEqual, destID, operand, s.smearedConstant(s.zeroOfWidth(from), n))

	case from == ast.BasicBool:
		zero := s.smearedConstant(s.scalarOf(to, 0), n)
		one := s.smearedConstant(s.scalarOf(to, 1), n)
		return s.b.CreateTriOp(spirv.OpSelect, destID, operand, one, zero)

	case from.IsInteger() && to.IsFloat():
		code = spirv.OpConvertSToF
		if from.IsUnsigned() {
			code = spirv.OpConvertUToF
		}

	case from.IsFloat() && to.IsFloat():
		if s.b.IsMatrixType(destID) {
			return s.unaryMatrixOperation(spirv.OpFConvert, precision, noContraction, destID, operand)
		}
		code = spirv.OpFConvert

	case from.IsFloat() && to.IsInteger():
		code = spirv.OpConvertFToS
		if to.IsUnsigned() {
			code = spirv.OpConvertFToU
		}

	case from.IsInteger() && to.IsInteger():
		width := intWidth(to)
		if intWidth(from) == width {
			return s.signCast(destID, operand, n, to)
		}
		code = spirv.OpSConvert
		if from.IsUnsigned() {
			code = spirv.OpUConvert
		}
		if from.IsUnsigned() != to.IsUnsigned() {
			// Change width keeping the source signedness, then
			// reinterpret.
			mid := s.b.MakeIntegerType(width, !from.IsUnsigned())
			if n > 0 {
				mid = s.b.MakeVectorType(mid, n)
			}
			widened := s.b.SetPrecision(s.b.CreateUnaryOp(code, mid, operand), precision)
			return s.signCast(destID, widened, n, to)
		}

	default:
		s.missing("conversion from %s to %s", from, to)
		return s.b.CreateUndefined(destID)
	}

	id := s.b.CreateUnaryOp(code, destID, operand)
	s.b.AddDecoration(id, noContraction)
	return s.b.SetPrecision(id, precision)
}

// signCast reinterprets an integer as the other signedness. Spec
// constant expressions cannot bitcast, so they add zero instead.
func (s *Session) signCast(destID, operand spirv.ID, n int, to ast.BasicType) spirv.ID {
	if s.b.InSpecConstantMode() {
		return s.b.CreateBinOp(spirv.OpIAdd, destID, operand, s.smearedConstant(s.zeroOfWidth(to), n))
	}
	return s.b.CreateUnaryOp(spirv.OpBitcast, destID, operand)
}
