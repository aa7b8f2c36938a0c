package spirv

import "math"

// findScalarConstant returns a pooled scalar constant with the given
// opcode, type and literal words.
func (b *Builder) findScalarConstant(class OpCode, opcode OpCode, typeID ID, words ...uint32) ID {
	for _, c := range b.groupedConstants[class] {
		if c.Opcode == opcode && c.TypeID == typeID && equalOperands(c.Operands, words) {
			return c.ResultID
		}
	}
	return NoResult
}

// findCompositeConstant returns a pooled composite of the same type and
// constituents.
func (b *Builder) findCompositeConstant(class OpCode, typeID ID, members []ID) ID {
	for _, c := range b.groupedConstants[class] {
		if c.Opcode == OpConstantComposite && c.TypeID == typeID && equalOperands(c.Operands, members) {
			return c.ResultID
		}
	}
	return NoResult
}

func (b *Builder) addConstant(class OpCode, inst *Instruction, pooled bool) ID {
	b.addGlobal(inst)
	if pooled {
		b.groupedConstants[class] = append(b.groupedConstants[class], inst)
	}
	return inst.ResultID
}

func (b *Builder) makeScalarConstant(typeID ID, spec bool, words ...uint32) ID {
	opcode := OpConstant
	if spec {
		opcode = OpSpecConstant
	}
	class := b.TypeClass(typeID)
	if !spec {
		if existing := b.findScalarConstant(class, opcode, typeID, words...); existing != NoResult {
			return existing
		}
	}
	inst := NewInstruction(b.UniqueID(), typeID, opcode)
	inst.AddImmediateOperands(words)
	return b.addConstant(class, inst, !spec)
}

// MakeBoolConstant returns a boolean constant. Spec constants are never
// shared.
func (b *Builder) MakeBoolConstant(value, spec bool) ID {
	typeID := b.MakeBoolType()
	var opcode OpCode
	switch {
	case spec && value:
		opcode = OpSpecConstantTrue
	case spec:
		opcode = OpSpecConstantFalse
	case value:
		opcode = OpConstantTrue
	default:
		opcode = OpConstantFalse
	}

	if !spec {
		for _, c := range b.groupedConstants[OpTypeBool] {
			if c.Opcode == opcode && c.TypeID == typeID {
				return c.ResultID
			}
		}
	}
	return b.addConstant(OpTypeBool, NewInstruction(b.UniqueID(), typeID, opcode), !spec)
}

// MakeIntConstant returns a 32-bit or narrower integer constant of typeID.
func (b *Builder) MakeIntConstant(typeID ID, value uint32, spec bool) ID {
	return b.makeScalarConstant(typeID, spec, value)
}

// MakeInt64Constant returns a 64-bit integer constant of typeID.
func (b *Builder) MakeInt64Constant(typeID ID, value uint64, spec bool) ID {
	return b.makeScalarConstant(typeID, spec, uint32(value), uint32(value>>32))
}

// MakeIntConst is a signed 32-bit constant.
func (b *Builder) MakeIntConst(value int32) ID {
	return b.MakeIntConstant(b.MakeIntType(32), uint32(value), false)
}

// MakeUintConst is an unsigned 32-bit constant.
func (b *Builder) MakeUintConst(value uint32) ID {
	return b.MakeIntConstant(b.MakeUintType(32), value, false)
}

// MakeFloatConstant returns a 32-bit float constant.
func (b *Builder) MakeFloatConstant(value float32, spec bool) ID {
	return b.makeScalarConstant(b.MakeFloatType(32), spec, math.Float32bits(value))
}

// MakeDoubleConstant returns a 64-bit float constant, low word first.
func (b *Builder) MakeDoubleConstant(value float64, spec bool) ID {
	bits := math.Float64bits(value)
	return b.makeScalarConstant(b.MakeFloatType(64), spec, uint32(bits), uint32(bits>>32))
}

// MakeFloat16Constant returns a 16-bit float constant from its raw bits.
func (b *Builder) MakeFloat16Constant(bits uint16, spec bool) ID {
	return b.makeScalarConstant(b.MakeFloatType(16), spec, uint32(bits))
}

// MakeFloatConst is a non-spec 32-bit float constant.
func (b *Builder) MakeFloatConst(value float32) ID {
	return b.MakeFloatConstant(value, false)
}

// MakeCompositeConstant returns an OpConstantComposite of typeID, or a
// fresh OpSpecConstantComposite when spec is set.
func (b *Builder) MakeCompositeConstant(typeID ID, members []ID, spec bool) ID {
	class := b.TypeClass(typeID)
	switch class {
	case OpTypeVector, OpTypeArray, OpTypeStruct, OpTypeMatrix:
	default:
		panic("spirv: composite constant of non-composite type")
	}

	if !spec {
		if existing := b.findCompositeConstant(class, typeID, members); existing != NoResult {
			return existing
		}
	}

	opcode := OpConstantComposite
	if spec {
		opcode = OpSpecConstantComposite
	}
	inst := NewInstruction(b.UniqueID(), typeID, opcode)
	inst.AddIDOperands(members)
	return b.addConstant(class, inst, !spec)
}

// MakeNullConstant returns OpConstantNull of typeID.
func (b *Builder) MakeNullConstant(typeID ID) ID {
	for _, c := range b.groupedConstants[OpConstantNull] {
		if c.TypeID == typeID {
			return c.ResultID
		}
	}
	return b.addConstant(OpConstantNull, NewInstruction(b.UniqueID(), typeID, OpConstantNull), true)
}

// IsConstant reports whether id is defined by a constant instruction.
func (b *Builder) IsConstant(id ID) bool {
	inst := b.Instruction(id)
	return inst != nil && inst.Opcode.IsConstant()
}

// IsConstantScalar reports whether id is a non-spec scalar OpConstant.
func (b *Builder) IsConstantScalar(id ID) bool {
	inst := b.Instruction(id)
	return inst != nil && inst.Opcode == OpConstant
}

// IsSpecConstant reports whether id is defined by a spec constant
// instruction.
func (b *Builder) IsSpecConstant(id ID) bool {
	inst := b.Instruction(id)
	return inst != nil && inst.Opcode.IsSpecConstant()
}

// ConstantScalar returns the low literal word of a scalar constant.
func (b *Builder) ConstantScalar(id ID) uint32 {
	return b.Instruction(id).Operand(0)
}
