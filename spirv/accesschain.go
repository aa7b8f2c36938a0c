package spirv

import "slices"

// AccessChain describes an l-value or r-value under construction. Indexes
// accumulate until the chain is loaded, stored or collapsed, so nested
// dereferences turn into a single OpAccessChain or OpCompositeExtract.
type AccessChain struct {
	Base       ID
	IndexChain []ID
	// Instr caches the collapsed OpAccessChain.
	Instr ID
	// Swizzle is applied after the indexes; Component is a dynamic
	// single-component selection applied after the swizzle.
	Swizzle            []uint32
	Component          ID
	PreSwizzleBaseType ID
	IsRValue           bool
}

func (c AccessChain) clone() AccessChain {
	c.IndexChain = slices.Clone(c.IndexChain)
	c.Swizzle = slices.Clone(c.Swizzle)
	return c
}

// ClearAccessChain resets the current chain.
func (b *Builder) ClearAccessChain() {
	b.chain = AccessChain{}
}

// GetAccessChain returns a copy of the current chain.
func (b *Builder) GetAccessChain() AccessChain {
	return b.chain.clone()
}

// SetAccessChain replaces the current chain.
func (b *Builder) SetAccessChain(chain AccessChain) {
	b.chain = chain.clone()
}

// SetAccessChainLValue starts a chain at a pointer.
func (b *Builder) SetAccessChainLValue(lvalue ID) {
	b.chain.Base = lvalue
}

// SetAccessChainRValue starts a chain at a value.
func (b *Builder) SetAccessChainRValue(rvalue ID) {
	b.chain.IsRValue = true
	b.chain.Base = rvalue
}

// AccessChainPush appends an index.
func (b *Builder) AccessChainPush(offset ID) {
	b.chain.IndexChain = append(b.chain.IndexChain, offset)
}

// AccessChainPushSwizzle composes swizzle with any pending swizzle.
func (b *Builder) AccessChainPushSwizzle(swizzle []uint32, preSwizzleBaseType ID) {
	if b.chain.PreSwizzleBaseType == NoType {
		b.chain.PreSwizzleBaseType = preSwizzleBaseType
	}
	if len(b.chain.Swizzle) > 0 {
		old := b.chain.Swizzle
		composed := make([]uint32, len(swizzle))
		for i, s := range swizzle {
			composed[i] = old[s]
		}
		b.chain.Swizzle = composed
	} else {
		b.chain.Swizzle = slices.Clone(swizzle)
	}
	b.simplifyAccessChainSwizzle()
}

// AccessChainPushComponent selects one component by a runtime index. It
// is ignored when a single-channel swizzle already selected a component.
func (b *Builder) AccessChainPushComponent(component, preSwizzleBaseType ID) {
	if len(b.chain.Swizzle) != 1 {
		b.chain.Component = component
		if b.chain.PreSwizzleBaseType == NoType {
			b.chain.PreSwizzleBaseType = preSwizzleBaseType
		}
	}
}

// simplifyAccessChainSwizzle drops an identity swizzle covering the whole
// vector.
func (b *Builder) simplifyAccessChainSwizzle() {
	if b.NumTypeComponents(b.chain.PreSwizzleBaseType) > len(b.chain.Swizzle) {
		return
	}
	for i, s := range b.chain.Swizzle {
		if uint32(i) != s {
			return
		}
	}
	b.chain.Swizzle = nil
	if b.chain.Component == NoResult {
		b.chain.PreSwizzleBaseType = NoType
	}
}

// transferAccessChainSwizzle moves a single-component selection into the
// index chain. Dynamic selections only move when dynamic is set, since
// r-value chains prefer composite extracts.
func (b *Builder) transferAccessChainSwizzle(dynamic bool) {
	if len(b.chain.Swizzle) == 0 && b.chain.Component == NoResult {
		return
	}
	if len(b.chain.Swizzle) > 1 {
		return
	}
	// Boolean vectors in interface blocks are not addressable per component.
	if b.chain.PreSwizzleBaseType != NoType && b.IsBoolType(b.ScalarTypeID(b.chain.PreSwizzleBaseType)) {
		return
	}

	if len(b.chain.Swizzle) == 1 {
		b.chain.IndexChain = append(b.chain.IndexChain, b.MakeUintConst(b.chain.Swizzle[0]))
		b.chain.Swizzle = nil
		b.chain.PreSwizzleBaseType = NoType
		b.chain.Component = NoResult
	} else if dynamic && b.chain.Component != NoResult {
		b.chain.IndexChain = append(b.chain.IndexChain, b.chain.Component)
		b.chain.PreSwizzleBaseType = NoType
		b.chain.Component = NoResult
	}
}

// remapDynamicSwizzle routes a dynamic component through a pending
// multi-channel swizzle with a constant lookup vector.
func (b *Builder) remapDynamicSwizzle() {
	if b.chain.Component == NoResult || len(b.chain.Swizzle) <= 1 {
		return
	}
	uintType := b.MakeUintType(32)
	components := make([]ID, len(b.chain.Swizzle))
	for i, s := range b.chain.Swizzle {
		components[i] = b.MakeUintConst(s)
	}
	mapType := b.MakeVectorType(uintType, len(b.chain.Swizzle))
	lookup := b.MakeCompositeConstant(mapType, components, false)
	b.chain.Component = b.CreateVectorExtractDynamic(lookup, uintType, b.chain.Component)
	b.chain.Swizzle = nil
}

// collapseAccessChain emits the OpAccessChain for an l-value chain and
// returns the resulting pointer. Pending multi-channel swizzles stay.
func (b *Builder) collapseAccessChain() ID {
	if b.chain.Instr != NoResult {
		return b.chain.Instr
	}

	b.remapDynamicSwizzle()
	if b.chain.Component != NoResult {
		b.chain.IndexChain = append(b.chain.IndexChain, b.chain.Component)
		b.chain.Component = NoResult
	}

	if len(b.chain.IndexChain) == 0 {
		return b.chain.Base
	}
	storage := b.StorageClassOf(b.chain.Base)
	b.chain.Instr = b.CreateAccessChain(storage, b.chain.Base, b.chain.IndexChain)
	return b.chain.Instr
}

// AccessChainLoad loads the value named by the current chain.
func (b *Builder) AccessChainLoad(precision Decoration, resultType ID) ID {
	var id ID

	if b.chain.IsRValue {
		b.transferAccessChainSwizzle(false)
		if len(b.chain.IndexChain) > 0 {
			swizzleBase := resultType
			if b.chain.PreSwizzleBaseType != NoType {
				swizzleBase = b.chain.PreSwizzleBaseType
			}

			indexes := make([]uint32, 0, len(b.chain.IndexChain))
			constant := true
			for _, index := range b.chain.IndexChain {
				if !b.IsConstantScalar(index) {
					constant = false
					break
				}
				indexes = append(indexes, b.ConstantScalar(index))
			}

			if constant {
				id = b.CreateCompositeExtract(b.chain.Base, swizzleBase, indexes...)
			} else {
				// Dynamic indexing of a value needs memory.
				lvalue := b.CreateVariable(StorageClassFunction, b.TypeID(b.chain.Base), "indexable")
				b.CreateStore(b.chain.Base, lvalue)
				b.chain.Base = lvalue
				b.chain.IsRValue = false
				id = b.CreateLoad(b.collapseAccessChain())
			}
			b.SetPrecision(id, precision)
		} else {
			id = b.chain.Base
		}
	} else {
		b.transferAccessChainSwizzle(true)
		id = b.CreateLoad(b.collapseAccessChain())
		b.SetPrecision(id, precision)
	}

	if len(b.chain.Swizzle) == 0 && b.chain.Component == NoResult {
		return id
	}

	if len(b.chain.Swizzle) > 0 {
		swizzledType := b.ScalarTypeID(b.TypeID(id))
		if len(b.chain.Swizzle) > 1 {
			swizzledType = b.MakeVectorType(swizzledType, len(b.chain.Swizzle))
		}
		id = b.CreateRvalueSwizzle(precision, swizzledType, id, b.chain.Swizzle)
	}

	if b.chain.Component != NoResult {
		id = b.SetPrecision(b.CreateVectorExtractDynamic(id, resultType, b.chain.Component), precision)
	}
	return id
}

// AccessChainStore stores rvalue through the current l-value chain,
// merging it into the target vector when a swizzle remains.
func (b *Builder) AccessChainStore(rvalue ID) {
	b.transferAccessChainSwizzle(true)
	base := b.collapseAccessChain()
	source := rvalue

	if len(b.chain.Swizzle) > 0 {
		target := b.CreateLoad(base)
		source = b.CreateLvalueSwizzle(b.TypeID(target), target, source, b.chain.Swizzle)
	}
	b.CreateStore(source, base)
}

// AccessChainGetLValue collapses the chain to a pointer.
func (b *Builder) AccessChainGetLValue() ID {
	b.transferAccessChainSwizzle(true)
	return b.collapseAccessChain()
}

// AccessChainGetInferredType returns the type the chain would load.
func (b *Builder) AccessChainGetInferredType() ID {
	if b.chain.Base == NoResult {
		return NoType
	}
	typeID := b.TypeID(b.chain.Base)
	if !b.chain.IsRValue {
		typeID = b.ContainedTypeID(typeID, 0)
	}
	for _, index := range b.chain.IndexChain {
		if b.IsStructType(typeID) {
			typeID = b.ContainedTypeID(typeID, int(b.ConstantScalar(index)))
		} else {
			typeID = b.ContainedTypeID(typeID, 0)
		}
	}
	switch {
	case len(b.chain.Swizzle) == 1:
		typeID = b.ContainedTypeID(typeID, 0)
	case len(b.chain.Swizzle) > 1:
		typeID = b.MakeVectorType(b.ContainedTypeID(typeID, 0), len(b.chain.Swizzle))
	}
	if b.chain.Component != NoResult {
		typeID = b.ContainedTypeID(typeID, 0)
	}
	return typeID
}
