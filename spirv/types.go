package spirv

import "fmt"

// findType returns an existing type of the given class whose operands
// equal ops, or nil.
func (b *Builder) findType(class OpCode, ops []uint32) *Instruction {
	for _, t := range b.groupedTypes[class] {
		if equalOperands(t.Operands, ops) {
			return t
		}
	}
	return nil
}

func equalOperands(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// makeType interns a type of the given class.
func (b *Builder) makeType(class OpCode, ops ...uint32) ID {
	if t := b.findType(class, ops); t != nil {
		return t.ResultID
	}
	return b.newType(class, ops...)
}

// newType creates a type that is never shared with an existing one.
func (b *Builder) newType(class OpCode, ops ...uint32) ID {
	inst := NewInstruction(b.UniqueID(), NoType, class)
	inst.AddImmediateOperands(ops)
	b.groupedTypes[class] = append(b.groupedTypes[class], inst)
	b.addGlobal(inst)
	return inst.ResultID
}

// MakeVoidType returns OpTypeVoid.
func (b *Builder) MakeVoidType() ID {
	return b.makeType(OpTypeVoid)
}

// MakeBoolType returns OpTypeBool.
func (b *Builder) MakeBoolType() ID {
	return b.makeType(OpTypeBool)
}

// MakeSamplerType returns OpTypeSampler.
func (b *Builder) MakeSamplerType() ID {
	return b.makeType(OpTypeSampler)
}

// MakeIntegerType returns OpTypeInt of the given width and signedness.
func (b *Builder) MakeIntegerType(width uint32, signed bool) ID {
	var sign uint32
	if signed {
		sign = 1
	}
	if t := b.findType(OpTypeInt, []uint32{width, sign}); t != nil {
		return t.ResultID
	}
	switch width {
	case 16:
		b.AddCapability(CapabilityInt16)
	case 64:
		b.AddCapability(CapabilityInt64)
	}
	return b.newType(OpTypeInt, width, sign)
}

// MakeIntType returns a signed integer type.
func (b *Builder) MakeIntType(width uint32) ID {
	return b.MakeIntegerType(width, true)
}

// MakeUintType returns an unsigned integer type.
func (b *Builder) MakeUintType(width uint32) ID {
	return b.MakeIntegerType(width, false)
}

// MakeFloatType returns OpTypeFloat of the given width.
func (b *Builder) MakeFloatType(width uint32) ID {
	if t := b.findType(OpTypeFloat, []uint32{width}); t != nil {
		return t.ResultID
	}
	switch width {
	case 16:
		b.AddCapability(CapabilityFloat16)
	case 64:
		b.AddCapability(CapabilityFloat64)
	}
	return b.newType(OpTypeFloat, width)
}

// MakeStructType always creates a new struct type. Struct identity is
// decided by the caller's cache, since decorations differ per use.
func (b *Builder) MakeStructType(members []ID, name string) ID {
	id := b.newType(OpTypeStruct, members...)
	if name != "" {
		b.AddName(id, name)
	}
	return id
}

// MakeStructResultType creates the two-member struct returned by
// instructions such as OpIAddCarry or sparse image reads.
func (b *Builder) MakeStructResultType(type0, type1 ID) ID {
	for _, t := range b.groupedTypes[OpTypeStruct] {
		if equalOperands(t.Operands, []uint32{type0, type1}) {
			return t.ResultID
		}
	}
	return b.MakeStructType([]ID{type0, type1}, "ResType")
}

// MakeVectorType returns OpTypeVector.
func (b *Builder) MakeVectorType(component ID, size int) ID {
	return b.makeType(OpTypeVector, component, uint32(size))
}

// MakeMatrixType returns OpTypeMatrix with the given columns of rows.
func (b *Builder) MakeMatrixType(component ID, cols, rows int) ID {
	column := b.MakeVectorType(component, rows)
	return b.makeType(OpTypeMatrix, column, uint32(cols))
}

// MakeArrayType returns OpTypeArray. Arrays with a non-zero stride are
// distinct types, since the stride is a decoration on the type.
func (b *Builder) MakeArrayType(element, sizeID ID, stride int) ID {
	if stride == 0 {
		if t := b.findType(OpTypeArray, []uint32{element, sizeID}); t != nil {
			return t.ResultID
		}
	}
	return b.newType(OpTypeArray, element, sizeID)
}

// MakeRuntimeArray always creates a new OpTypeRuntimeArray.
func (b *Builder) MakeRuntimeArray(element ID) ID {
	return b.newType(OpTypeRuntimeArray, element)
}

// MakeFunctionType returns OpTypeFunction.
func (b *Builder) MakeFunctionType(returnType ID, params []ID) ID {
	ops := append([]uint32{returnType}, params...)
	return b.makeType(OpTypeFunction, ops...)
}

// MakePointer returns OpTypePointer.
func (b *Builder) MakePointer(storage StorageClass, pointee ID) ID {
	return b.makeType(OpTypePointer, uint32(storage), pointee)
}

// MakeImageType returns OpTypeImage and declares the capabilities its
// dimensionality and sampling imply.
func (b *Builder) MakeImageType(sampledType ID, dim Dim, depth, arrayed, ms bool, sampled uint32, format ImageFormat) ID {
	ops := []uint32{sampledType, uint32(dim), boolWord(depth), boolWord(arrayed), boolWord(ms), sampled, uint32(format)}
	if t := b.findType(OpTypeImage, ops); t != nil {
		return t.ResultID
	}
	id := b.newType(OpTypeImage, ops...)

	switch dim {
	case DimBuffer:
		if sampled == 1 {
			b.AddCapability(CapabilitySampledBuffer)
		} else {
			b.AddCapability(CapabilityImageBuffer)
		}
	case Dim1D:
		if sampled == 1 {
			b.AddCapability(CapabilitySampled1D)
		} else {
			b.AddCapability(CapabilityImage1D)
		}
	case DimCube:
		if arrayed {
			if sampled == 1 {
				b.AddCapability(CapabilitySampledCubeArray)
			} else {
				b.AddCapability(CapabilityImageCubeArray)
			}
		}
	case DimRect:
		if sampled == 1 {
			b.AddCapability(CapabilitySampledRect)
		} else {
			b.AddCapability(CapabilityImageRect)
		}
	case DimSubpassData:
		b.AddCapability(CapabilityInputAttachment)
	}

	if ms && sampled == 2 {
		// Subpass inputs are not storage images.
		if dim != DimSubpassData {
			b.AddCapability(CapabilityStorageImageMultisample)
		}
		if arrayed {
			b.AddCapability(CapabilityImageMSArray)
		}
	}
	return id
}

// MakeSampledImageType returns OpTypeSampledImage.
func (b *Builder) MakeSampledImageType(image ID) ID {
	return b.makeType(OpTypeSampledImage, image)
}

func boolWord(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// TypeClass returns the opcode that defined typeID.
func (b *Builder) TypeClass(typeID ID) OpCode {
	inst := b.Instruction(typeID)
	if inst == nil {
		return OpNop
	}
	return inst.Opcode
}

// ContainedTypeID returns the element type of an aggregate, vector,
// matrix or pointer type. For structs, member selects the member.
func (b *Builder) ContainedTypeID(typeID ID, member int) ID {
	inst := b.Instruction(typeID)
	switch inst.Opcode {
	case OpTypeVector, OpTypeMatrix, OpTypeArray, OpTypeRuntimeArray:
		return inst.Operand(0)
	case OpTypePointer:
		return inst.Operand(1)
	case OpTypeStruct:
		return inst.Operand(member)
	default:
		panic(fmt.Sprintf("spirv: type %d (opcode %d) has no contained type", typeID, inst.Opcode))
	}
}

// ElementTypeID is ContainedTypeID for non-struct types.
func (b *Builder) ElementTypeID(typeID ID) ID {
	return b.ContainedTypeID(typeID, 0)
}

// NumTypeConstituents returns the number of members, columns, components
// or elements of a type.
func (b *Builder) NumTypeConstituents(typeID ID) int {
	inst := b.Instruction(typeID)
	switch inst.Opcode {
	case OpTypeBool, OpTypeInt, OpTypeFloat:
		return 1
	case OpTypeVector, OpTypeMatrix:
		return int(inst.Operand(1))
	case OpTypeArray:
		length := b.Instruction(inst.Operand(1))
		if length.Opcode == OpConstant || length.Opcode == OpSpecConstant {
			return int(length.Operand(0))
		}
		return 0
	case OpTypeStruct:
		return inst.NumOperands()
	default:
		return 1
	}
}

// NumTypeComponents returns the component count of a scalar or vector type.
func (b *Builder) NumTypeComponents(typeID ID) int {
	return b.NumTypeConstituents(typeID)
}

// ScalarTypeID returns the innermost scalar type of typeID.
func (b *Builder) ScalarTypeID(typeID ID) ID {
	inst := b.Instruction(typeID)
	switch inst.Opcode {
	case OpTypeVoid, OpTypeBool, OpTypeInt, OpTypeFloat, OpTypeStruct:
		return typeID
	case OpTypeVector, OpTypeMatrix, OpTypeArray, OpTypeRuntimeArray, OpTypePointer:
		return b.ScalarTypeID(b.ContainedTypeID(typeID, 0))
	default:
		return NoResult
	}
}

// MostBasicTypeClass returns the class of the innermost scalar.
func (b *Builder) MostBasicTypeClass(typeID ID) OpCode {
	return b.TypeClass(b.ScalarTypeID(typeID))
}

// ScalarTypeWidth returns the bit width of the innermost scalar.
func (b *Builder) ScalarTypeWidth(typeID ID) int {
	scalar := b.Instruction(b.ScalarTypeID(typeID))
	if scalar.Opcode == OpTypeBool {
		return 1
	}
	return int(scalar.Operand(0))
}

// TypeNumColumns returns the column count of a matrix type.
func (b *Builder) TypeNumColumns(typeID ID) int {
	return b.NumTypeConstituents(typeID)
}

// TypeNumRows returns the row count of a matrix type.
func (b *Builder) TypeNumRows(typeID ID) int {
	return b.NumTypeComponents(b.ContainedTypeID(typeID, 0))
}

// Type predicates
func (b *Builder) IsPointerType(t ID) bool      { return b.TypeClass(t) == OpTypePointer }
func (b *Builder) IsScalarType(t ID) bool       { c := b.TypeClass(t); return c == OpTypeBool || c == OpTypeInt || c == OpTypeFloat }
func (b *Builder) IsVectorType(t ID) bool       { return b.TypeClass(t) == OpTypeVector }
func (b *Builder) IsMatrixType(t ID) bool       { return b.TypeClass(t) == OpTypeMatrix }
func (b *Builder) IsStructType(t ID) bool       { return b.TypeClass(t) == OpTypeStruct }
func (b *Builder) IsArrayType(t ID) bool        { return b.TypeClass(t) == OpTypeArray }
func (b *Builder) IsAggregateType(t ID) bool    { return b.IsArrayType(t) || b.IsStructType(t) }
func (b *Builder) IsBoolType(t ID) bool         { return b.TypeClass(t) == OpTypeBool }
func (b *Builder) IsFloatType(t ID) bool        { return b.TypeClass(t) == OpTypeFloat }
func (b *Builder) IsImageType(t ID) bool        { return b.TypeClass(t) == OpTypeImage }
func (b *Builder) IsSampledImageType(t ID) bool { return b.TypeClass(t) == OpTypeSampledImage }

// IsIntType reports a signed integer type.
func (b *Builder) IsIntType(t ID) bool {
	return b.TypeClass(t) == OpTypeInt && b.Instruction(t).Operand(1) != 0
}

// IsUintType reports an unsigned integer type.
func (b *Builder) IsUintType(t ID) bool {
	return b.TypeClass(t) == OpTypeInt && b.Instruction(t).Operand(1) == 0
}

// Value predicates
func (b *Builder) IsPointer(id ID) bool      { return b.IsPointerType(b.TypeID(id)) }
func (b *Builder) IsScalar(id ID) bool       { return b.IsScalarType(b.TypeID(id)) }
func (b *Builder) IsVector(id ID) bool       { return b.IsVectorType(b.TypeID(id)) }
func (b *Builder) IsMatrix(id ID) bool       { return b.IsMatrixType(b.TypeID(id)) }
func (b *Builder) IsAggregate(id ID) bool    { return b.IsAggregateType(b.TypeID(id)) }
func (b *Builder) IsSampledImage(id ID) bool { return b.IsSampledImageType(b.TypeID(id)) }

// NumComponents returns the component count of a scalar or vector value.
func (b *Builder) NumComponents(id ID) int {
	return b.NumTypeComponents(b.TypeID(id))
}

// NumColumns returns the column count of a matrix value.
func (b *Builder) NumColumns(id ID) int {
	return b.TypeNumColumns(b.TypeID(id))
}

// NumRows returns the row count of a matrix value.
func (b *Builder) NumRows(id ID) int {
	return b.TypeNumRows(b.TypeID(id))
}

// StorageClassOf returns the storage class of a pointer value.
func (b *Builder) StorageClassOf(pointer ID) StorageClass {
	return StorageClass(b.Instruction(b.TypeID(pointer)).Operand(0))
}

// DerefTypeID returns the pointee type of a pointer value.
func (b *Builder) DerefTypeID(pointer ID) ID {
	return b.ContainedTypeID(b.TypeID(pointer), 0)
}

// ImageTypeOf returns the image type of an image or sampled image value.
func (b *Builder) ImageTypeOf(resultID ID) ID {
	typeID := b.TypeID(resultID)
	if b.IsSampledImageType(typeID) {
		return b.Instruction(typeID).Operand(0)
	}
	return typeID
}

// ImageTypeFormat returns the format operand of an image type.
func (b *Builder) ImageTypeFormat(typeID ID) ImageFormat {
	return ImageFormat(b.Instruction(typeID).Operand(6))
}

// ImageTypeDim returns the dimensionality operand of an image type.
func (b *Builder) ImageTypeDim(typeID ID) Dim {
	return Dim(b.Instruction(typeID).Operand(1))
}

// ImageTypeIsArrayed reports the arrayed operand of an image type.
func (b *Builder) ImageTypeIsArrayed(typeID ID) bool {
	return b.Instruction(typeID).Operand(3) != 0
}

// ImageTypeIsMultisampled reports the MS operand of an image type.
func (b *Builder) ImageTypeIsMultisampled(typeID ID) bool {
	return b.Instruction(typeID).Operand(4) != 0
}
