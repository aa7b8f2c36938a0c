package spirv

// maxMatrixSize is the largest column or row count of a matrix.
const maxMatrixSize = 4

// CreateCompositeConstruct builds typeID from constituents. In
// spec-constant mode the result is a constant composite, and it is a
// spec constant only if one of the constituents is.
func (b *Builder) CreateCompositeConstruct(typeID ID, constituents []ID) ID {
	if b.specConstantMode {
		spec := false
		for _, c := range constituents {
			if b.IsSpecConstant(c) {
				spec = true
				break
			}
		}
		return b.MakeCompositeConstant(typeID, constituents, spec)
	}
	return b.CreateOp(OpCompositeConstruct, typeID, constituents)
}

// SmearScalar replicates scalar into every component of vectorType.
func (b *Builder) SmearScalar(precision Decoration, scalar, vectorType ID) ID {
	n := b.NumTypeComponents(vectorType)
	if n == 1 {
		return scalar
	}
	members := make([]ID, n)
	for i := range members {
		members[i] = scalar
	}
	if b.specConstantMode {
		// A front-end constant smeared inside a spec expression stays a
		// plain constant.
		return b.SetPrecision(b.MakeCompositeConstant(vectorType, members, b.IsSpecConstant(scalar)), precision)
	}
	inst := NewInstruction(b.UniqueID(), vectorType, OpCompositeConstruct)
	inst.AddIDOperands(members)
	b.addInstruction(inst)
	return b.SetPrecision(inst.ResultID, precision)
}

// PromoteScalar smears whichever operand is the scalar so both operands
// have the same component count.
func (b *Builder) PromoteScalar(precision Decoration, left, right ID) (ID, ID) {
	direction := b.NumComponents(right) - b.NumComponents(left)
	switch {
	case direction > 0:
		left = b.SmearScalar(precision, left, b.MakeVectorType(b.TypeID(left), b.NumComponents(right)))
	case direction < 0:
		right = b.SmearScalar(precision, right, b.MakeVectorType(b.TypeID(right), b.NumComponents(left)))
	}
	return left, right
}

// CreateCompositeCompare compares two values of the same type for
// equality or inequality and reduces the result to a single bool.
func (b *Builder) CreateCompositeCompare(precision Decoration, value1, value2 ID, equal bool) ID {
	boolType := b.MakeBoolType()
	valueType := b.TypeID(value1)
	numConstituents := b.NumTypeConstituents(valueType)

	if b.IsScalarType(valueType) || b.IsVectorType(valueType) {
		var op OpCode
		switch b.MostBasicTypeClass(valueType) {
		case OpTypeFloat:
			op = pick(equal, OpFOrdEqual, OpFOrdNotEqual)
		case OpTypeBool:
			op = pick(equal, OpLogicalEqual, OpLogicalNotEqual)
			precision = DecorationMax
		default:
			op = pick(equal, OpIEqual, OpINotEqual)
		}

		if b.IsScalarType(valueType) {
			return b.SetPrecision(b.CreateBinOp(op, boolType, value1, value2), precision)
		}
		result := b.CreateBinOp(op, b.MakeVectorType(boolType, numConstituents), value1, value2)
		b.SetPrecision(result, precision)
		result = b.CreateUnaryOp(pick(equal, OpAll, OpAny), boolType, result)
		return b.SetPrecision(result, precision)
	}

	// Structs, arrays and matrices reduce across constituents.
	result := NoResult
	for i := 0; i < numConstituents; i++ {
		c1 := b.CreateCompositeExtract(value1, b.ContainedTypeID(b.TypeID(value1), i), uint32(i))
		c2 := b.CreateCompositeExtract(value2, b.ContainedTypeID(b.TypeID(value2), i), uint32(i))
		sub := b.CreateCompositeCompare(precision, c1, c2, equal)
		if i == 0 {
			result = sub
		} else {
			result = b.SetPrecision(b.CreateBinOp(pick(equal, OpLogicalAnd, OpLogicalOr), boolType, result, sub), precision)
		}
	}
	return result
}

func pick(cond bool, a, b OpCode) OpCode {
	if cond {
		return a
	}
	return b
}

// CreateConstructor builds a scalar or vector of resultType from the
// components of sources, consuming them in order.
func (b *Builder) CreateConstructor(precision Decoration, sources []ID, resultType ID) ID {
	numTarget := b.NumTypeComponents(resultType)
	if len(sources) == 1 && b.IsScalar(sources[0]) && numTarget > 1 {
		return b.SmearScalar(precision, sources[0], resultType)
	}

	result := NoResult
	var constituents []ID
	scalarType := b.ScalarTypeID(resultType)
	target := 0

	latch := func(comp ID) {
		if numTarget > 1 {
			constituents = append(constituents, comp)
		} else {
			result = comp
		}
		target++
	}

	for _, source := range sources {
		switch {
		case b.IsScalar(source) || b.IsPointer(source):
			latch(source)
		case b.IsVector(source):
			use := min(b.NumComponents(source), numTarget-target)
			for s := 0; s < use; s++ {
				latch(b.CreateRvalueSwizzle(precision, scalarType, source, []uint32{uint32(s)}))
			}
		case b.IsMatrix(source):
			rows := b.NumRows(source)
			use := min(b.NumColumns(source)*rows, numTarget-target)
			col, row := 0, 0
			for s := 0; s < use; s++ {
				if row >= rows {
					row = 0
					col++
				}
				latch(b.CreateCompositeExtract(source, scalarType, uint32(col), uint32(row)))
				row++
			}
		}
		if target >= numTarget {
			break
		}
	}

	if len(constituents) > 0 {
		result = b.CreateCompositeConstruct(resultType, constituents)
	}
	return b.SetPrecision(result, precision)
}

// CreateMatrixConstructor builds a matrix of resultType. A scalar sets the
// diagonal, a matrix copies the overlapping block over identity, and
// other arguments fill components in column-major order.
func (b *Builder) CreateMatrixConstructor(precision Decoration, sources []ID, resultType ID) ID {
	componentType := b.ScalarTypeID(resultType)
	numCols := b.TypeNumColumns(resultType)
	numRows := b.TypeNumRows(resultType)
	columnType := b.ContainedTypeID(resultType, 0)
	double := b.ScalarTypeWidth(componentType) == 64

	// A larger source matrix only needs column truncation.
	if b.IsMatrix(sources[0]) && b.NumColumns(sources[0]) >= numCols && b.NumRows(sources[0]) >= numRows {
		matrix := sources[0]
		sourceColumnType := b.ContainedTypeID(b.TypeID(matrix), 0)
		channels := make([]uint32, numRows)
		for r := range channels {
			channels[r] = uint32(r)
		}
		columns := make([]ID, 0, numCols)
		for col := 0; col < numCols; col++ {
			column := b.SetPrecision(b.CreateCompositeExtract(matrix, sourceColumnType, uint32(col)), precision)
			if numRows != b.NumRows(matrix) {
				column = b.CreateRvalueSwizzle(precision, columnType, column, channels)
			}
			columns = append(columns, column)
		}
		return b.SetPrecision(b.CreateCompositeConstruct(resultType, columns), precision)
	}

	var one, zero ID
	if double {
		one, zero = b.MakeDoubleConstant(1, false), b.MakeDoubleConstant(0, false)
	} else {
		one, zero = b.MakeFloatConstant(1, false), b.MakeFloatConstant(0, false)
	}
	var ids [maxMatrixSize][maxMatrixSize]ID
	for col := range ids {
		for row := range ids[col] {
			if col == row {
				ids[col][row] = one
			} else {
				ids[col][row] = zero
			}
		}
	}

	switch {
	case len(sources) == 1 && b.IsScalar(sources[0]):
		for d := 0; d < maxMatrixSize; d++ {
			ids[d][d] = sources[0]
		}
	case b.IsMatrix(sources[0]):
		matrix := sources[0]
		minCols := min(numCols, b.NumColumns(matrix))
		minRows := min(numRows, b.NumRows(matrix))
		for col := 0; col < minCols; col++ {
			for row := 0; row < minRows; row++ {
				ids[col][row] = b.SetPrecision(b.CreateCompositeExtract(matrix, componentType, uint32(col), uint32(row)), precision)
			}
		}
	default:
		row, col := 0, 0
	fill:
		for _, source := range sources {
			n := b.NumComponents(source)
			for comp := 0; comp < n; comp++ {
				if col >= numCols {
					break fill
				}
				value := source
				if n > 1 {
					value = b.SetPrecision(b.CreateCompositeExtract(source, componentType, uint32(comp)), precision)
				}
				ids[col][row] = value
				row++
				if row == numRows {
					row = 0
					col++
				}
			}
		}
	}

	columns := make([]ID, 0, numCols)
	for col := 0; col < numCols; col++ {
		components := make([]ID, numRows)
		copy(components, ids[col][:numRows])
		columns = append(columns, b.SetPrecision(b.CreateCompositeConstruct(columnType, components), precision))
	}
	return b.SetPrecision(b.CreateCompositeConstruct(resultType, columns), precision)
}
