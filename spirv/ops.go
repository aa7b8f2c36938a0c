package spirv

// CreateSpecConstantOp emits OpSpecConstantOp at module scope.
func (b *Builder) CreateSpecConstantOp(opcode OpCode, typeID ID, operands []ID, literals []uint32) ID {
	inst := NewInstruction(b.UniqueID(), typeID, OpSpecConstantOp)
	inst.AddImmediateOperand(uint32(opcode))
	inst.AddIDOperands(operands)
	inst.AddImmediateOperands(literals)
	b.addGlobal(inst)
	return inst.ResultID
}

// CreateLoad emits OpLoad through pointer.
func (b *Builder) CreateLoad(pointer ID) ID {
	inst := NewInstruction(b.UniqueID(), b.DerefTypeID(pointer), OpLoad)
	inst.AddIDOperand(pointer)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateStore emits OpStore.
func (b *Builder) CreateStore(value, pointer ID) {
	inst := NewInstruction(NoResult, NoType, OpStore)
	inst.AddIDOperand(pointer)
	inst.AddIDOperand(value)
	b.addInstruction(inst)
}

// CreateAccessChain emits OpAccessChain. The result pointer keeps the
// base's storage class and points at the type reached by the indices.
func (b *Builder) CreateAccessChain(storage StorageClass, base ID, offsets []ID) ID {
	typeID := b.DerefTypeID(base)
	for _, offset := range offsets {
		if b.IsStructType(typeID) {
			typeID = b.ContainedTypeID(typeID, int(b.ConstantScalar(offset)))
		} else {
			typeID = b.ContainedTypeID(typeID, 0)
		}
	}
	pointer := b.MakePointer(storage, typeID)

	inst := NewInstruction(b.UniqueID(), pointer, OpAccessChain)
	inst.AddIDOperand(base)
	inst.AddIDOperands(offsets)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateArrayLength emits OpArrayLength for a runtime array member.
func (b *Builder) CreateArrayLength(base ID, member uint32) ID {
	inst := NewInstruction(b.UniqueID(), b.MakeIntType(32), OpArrayLength)
	inst.AddIDOperand(base)
	inst.AddImmediateOperand(member)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateCompositeExtract extracts a constituent of composite.
func (b *Builder) CreateCompositeExtract(composite, typeID ID, indexes ...uint32) ID {
	if b.specConstantMode {
		return b.CreateSpecConstantOp(OpCompositeExtract, typeID, []ID{composite}, indexes)
	}
	inst := NewInstruction(b.UniqueID(), typeID, OpCompositeExtract)
	inst.AddIDOperand(composite)
	inst.AddImmediateOperands(indexes)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateCompositeInsert replaces a constituent of composite with object.
func (b *Builder) CreateCompositeInsert(object, composite, typeID ID, indexes ...uint32) ID {
	if b.specConstantMode {
		return b.CreateSpecConstantOp(OpCompositeInsert, typeID, []ID{object, composite}, indexes)
	}
	inst := NewInstruction(b.UniqueID(), typeID, OpCompositeInsert)
	inst.AddIDOperand(object)
	inst.AddIDOperand(composite)
	inst.AddImmediateOperands(indexes)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateVectorExtractDynamic extracts a component by a runtime index.
func (b *Builder) CreateVectorExtractDynamic(vector, typeID, index ID) ID {
	inst := NewInstruction(b.UniqueID(), typeID, OpVectorExtractDynamic)
	inst.AddIDOperand(vector)
	inst.AddIDOperand(index)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateVectorInsertDynamic inserts a component by a runtime index.
func (b *Builder) CreateVectorInsertDynamic(vector, typeID, component, index ID) ID {
	inst := NewInstruction(b.UniqueID(), typeID, OpVectorInsertDynamic)
	inst.AddIDOperand(vector)
	inst.AddIDOperand(component)
	inst.AddIDOperand(index)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateNoResultOp emits an instruction with no result or type.
func (b *Builder) CreateNoResultOp(opcode OpCode, operands ...ID) {
	inst := NewInstruction(NoResult, NoType, opcode)
	inst.AddIDOperands(operands)
	b.addInstruction(inst)
}

// CreateControlBarrier emits OpControlBarrier.
func (b *Builder) CreateControlBarrier(execution, memory Scope, semantics MemorySemantics) {
	inst := NewInstruction(NoResult, NoType, OpControlBarrier)
	inst.AddIDOperand(b.MakeUintConst(uint32(execution)))
	inst.AddIDOperand(b.MakeUintConst(uint32(memory)))
	inst.AddIDOperand(b.MakeUintConst(uint32(semantics)))
	b.addInstruction(inst)
}

// CreateMemoryBarrier emits OpMemoryBarrier.
func (b *Builder) CreateMemoryBarrier(execution Scope, semantics MemorySemantics) {
	inst := NewInstruction(NoResult, NoType, OpMemoryBarrier)
	inst.AddIDOperand(b.MakeUintConst(uint32(execution)))
	inst.AddIDOperand(b.MakeUintConst(uint32(semantics)))
	b.addInstruction(inst)
}

// CreateUnaryOp emits a one-operand instruction, or OpSpecConstantOp in
// spec-constant mode.
func (b *Builder) CreateUnaryOp(opcode OpCode, typeID, operand ID) ID {
	if b.specConstantMode {
		return b.CreateSpecConstantOp(opcode, typeID, []ID{operand}, nil)
	}
	inst := NewInstruction(b.UniqueID(), typeID, opcode)
	inst.AddIDOperand(operand)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateBinOp emits a two-operand instruction.
func (b *Builder) CreateBinOp(opcode OpCode, typeID, left, right ID) ID {
	if b.specConstantMode {
		return b.CreateSpecConstantOp(opcode, typeID, []ID{left, right}, nil)
	}
	inst := NewInstruction(b.UniqueID(), typeID, opcode)
	inst.AddIDOperand(left)
	inst.AddIDOperand(right)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateTriOp emits a three-operand instruction.
func (b *Builder) CreateTriOp(opcode OpCode, typeID, op1, op2, op3 ID) ID {
	if b.specConstantMode {
		return b.CreateSpecConstantOp(opcode, typeID, []ID{op1, op2, op3}, nil)
	}
	inst := NewInstruction(b.UniqueID(), typeID, opcode)
	inst.AddIDOperand(op1)
	inst.AddIDOperand(op2)
	inst.AddIDOperand(op3)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateOp emits an instruction with any number of id operands.
func (b *Builder) CreateOp(opcode OpCode, typeID ID, operands []ID) ID {
	if b.specConstantMode {
		return b.CreateSpecConstantOp(opcode, typeID, operands, nil)
	}
	inst := NewInstruction(b.UniqueID(), typeID, opcode)
	inst.AddIDOperands(operands)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateFunctionCall emits OpFunctionCall.
func (b *Builder) CreateFunctionCall(fn *Function, args []ID) ID {
	inst := NewInstruction(b.UniqueID(), fn.ReturnType, OpFunctionCall)
	inst.AddIDOperand(fn.ID)
	inst.AddIDOperands(args)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateBuiltinCall emits OpExtInst from an imported instruction set.
func (b *Builder) CreateBuiltinCall(typeID, set ID, entry uint32, args []ID) ID {
	inst := NewInstruction(b.UniqueID(), typeID, OpExtInst)
	inst.AddIDOperand(set)
	inst.AddImmediateOperand(entry)
	inst.AddIDOperands(args)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateRvalueSwizzle selects channels of source into a value of typeID.
// A single channel is a composite extract.
func (b *Builder) CreateRvalueSwizzle(precision Decoration, typeID, source ID, channels []uint32) ID {
	if len(channels) == 1 {
		return b.SetPrecision(b.CreateCompositeExtract(source, typeID, channels[0]), precision)
	}
	if b.specConstantMode {
		literals := append([]uint32(nil), channels...)
		return b.SetPrecision(b.CreateSpecConstantOp(OpVectorShuffle, typeID, []ID{source, source}, literals), precision)
	}

	inst := NewInstruction(b.UniqueID(), typeID, OpVectorShuffle)
	inst.AddIDOperand(source)
	inst.AddIDOperand(source)
	inst.AddImmediateOperands(channels)
	b.addInstruction(inst)
	return b.SetPrecision(inst.ResultID, precision)
}

// CreateLvalueSwizzle writes source into the channels of target and
// returns the updated vector.
func (b *Builder) CreateLvalueSwizzle(typeID, target, source ID, channels []uint32) ID {
	if len(channels) == 1 && b.NumComponents(source) == 1 {
		return b.CreateCompositeInsert(source, target, typeID, channels[0])
	}

	inst := NewInstruction(b.UniqueID(), typeID, OpVectorShuffle)
	inst.AddIDOperand(target)
	inst.AddIDOperand(source)

	// Identity from target, then punch in the source channels.
	size := b.NumTypeComponents(typeID)
	components := make([]uint32, size)
	for i := range components {
		components[i] = uint32(i)
	}
	for i, ch := range channels {
		components[ch] = uint32(size + i)
	}
	inst.AddImmediateOperands(components)
	b.addInstruction(inst)
	return inst.ResultID
}
