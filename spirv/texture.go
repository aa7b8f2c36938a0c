package spirv

// TextureParameters are the operands of an image sampling or fetch.
// Unused operands are NoResult.
type TextureParameters struct {
	Sampler   ID
	Coords    ID
	Bias      ID
	Lod       ID
	Dref      ID
	Offset    ID
	Offsets   ID
	GradX     ID
	GradY     ID
	Sample    ID
	Component ID
	TexelOut  ID
	LodClamp  ID
}

// TextureKind selects the image instruction family.
type TextureKind struct {
	Sparse bool
	Fetch  bool
	Proj   bool
	Gather bool
	// NoImplicitLod forces an explicit zero lod outside fragment shaders.
	NoImplicitLod bool
}

// CreateTextureCall emits an image sample, fetch or gather. Sparse
// variants store the texel through TexelOut and return the residency
// code.
func (b *Builder) CreateTextureCall(precision Decoration, resultType ID, kind TextureKind, params TextureParameters) ID {
	fixed := []ID{params.Sampler, params.Coords}
	if params.Dref != NoResult {
		fixed = append(fixed, params.Dref)
	}
	if params.Component != NoResult {
		fixed = append(fixed, params.Component)
	}

	var mask ImageOperands
	var optional []ID
	explicitLod := false

	if params.Bias != NoResult {
		mask |= ImageOperandsBias
		optional = append(optional, params.Bias)
	}
	switch {
	case params.Lod != NoResult:
		mask |= ImageOperandsLod
		optional = append(optional, params.Lod)
		explicitLod = true
	case params.GradX != NoResult:
		mask |= ImageOperandsGrad
		optional = append(optional, params.GradX, params.GradY)
		explicitLod = true
	case kind.NoImplicitLod && !kind.Fetch && !kind.Gather:
		mask |= ImageOperandsLod
		optional = append(optional, b.MakeFloatConstant(0, false))
		explicitLod = true
	}
	if params.Offset != NoResult {
		if b.IsConstant(params.Offset) {
			mask |= ImageOperandsConstOffset
		} else {
			b.AddCapability(CapabilityImageGatherExtended)
			mask |= ImageOperandsOffset
		}
		optional = append(optional, params.Offset)
	}
	if params.Offsets != NoResult {
		b.AddCapability(CapabilityImageGatherExtended)
		mask |= ImageOperandsConstOffsets
		optional = append(optional, params.Offsets)
	}
	if params.Sample != NoResult {
		mask |= ImageOperandsSample
		optional = append(optional, params.Sample)
	}
	if params.LodClamp != NoResult {
		b.AddCapability(CapabilityMinLod)
		mask |= ImageOperandsMinLod
		optional = append(optional, params.LodClamp)
	}

	opcode := textureOpcode(kind, explicitLod, params.Dref != NoResult)

	// Legacy shadow lookups return a vec4 built from the scalar depth.
	smearedType := resultType
	if !b.IsScalarType(resultType) {
		switch opcode {
		case OpImageSampleDrefImplicitLod, OpImageSampleDrefExplicitLod,
			OpImageSampleProjDrefImplicitLod, OpImageSampleProjDrefExplicitLod:
			resultType = b.ScalarTypeID(resultType)
		}
	}

	var texelType, valueType ID
	if kind.Sparse {
		valueType = resultType
		texelType = b.DerefTypeID(params.TexelOut)
		resultType = b.MakeStructResultType(valueType, texelType)
	}

	inst := NewInstruction(b.UniqueID(), resultType, opcode)
	inst.AddIDOperands(fixed)
	if mask != ImageOperandsNone {
		inst.AddImmediateOperand(uint32(mask))
		inst.AddIDOperands(optional)
	}
	b.SetPrecision(inst.ResultID, precision)
	b.addInstruction(inst)
	result := inst.ResultID

	if kind.Sparse {
		b.AddCapability(CapabilitySparseResidency)
		b.CreateStore(b.CreateCompositeExtract(result, texelType, 1), params.TexelOut)
		return b.SetPrecision(b.CreateCompositeExtract(result, valueType, 0), precision)
	}
	if resultType != smearedType {
		result = b.SmearScalar(precision, result, smearedType)
	}
	return result
}

func textureOpcode(kind TextureKind, explicitLod, dref bool) OpCode {
	sparse := kind.Sparse
	switch {
	case kind.Fetch:
		return pick(sparse, OpImageSparseFetch, OpImageFetch)
	case kind.Gather && dref:
		return pick(sparse, OpImageSparseDrefGather, OpImageDrefGather)
	case kind.Gather:
		return pick(sparse, OpImageSparseGather, OpImageGather)
	}

	switch {
	case explicitLod && dref && kind.Proj:
		return pick(sparse, OpImageSparseSampleProjDrefExplicitLod, OpImageSampleProjDrefExplicitLod)
	case explicitLod && dref:
		return pick(sparse, OpImageSparseSampleDrefExplicitLod, OpImageSampleDrefExplicitLod)
	case explicitLod && kind.Proj:
		return pick(sparse, OpImageSparseSampleProjExplicitLod, OpImageSampleProjExplicitLod)
	case explicitLod:
		return pick(sparse, OpImageSparseSampleExplicitLod, OpImageSampleExplicitLod)
	case dref && kind.Proj:
		return pick(sparse, OpImageSparseSampleProjDrefImplicitLod, OpImageSampleProjDrefImplicitLod)
	case dref:
		return pick(sparse, OpImageSparseSampleDrefImplicitLod, OpImageSampleDrefImplicitLod)
	case kind.Proj:
		return pick(sparse, OpImageSparseSampleProjImplicitLod, OpImageSampleProjImplicitLod)
	default:
		return pick(sparse, OpImageSparseSampleImplicitLod, OpImageSampleImplicitLod)
	}
}

// CreateTextureQueryCall emits an image size, lod, levels or samples
// query.
func (b *Builder) CreateTextureQueryCall(opcode OpCode, params TextureParameters, unsignedResult bool) ID {
	b.AddCapability(CapabilityImageQuery)

	intType := b.MakeIntType(32)
	if unsignedResult {
		intType = b.MakeUintType(32)
	}

	var resultType ID
	switch opcode {
	case OpImageQuerySize, OpImageQuerySizeLod:
		imageType := b.ImageTypeOf(params.Sampler)
		var n int
		switch b.ImageTypeDim(imageType) {
		case Dim1D, DimBuffer:
			n = 1
		case Dim2D, DimCube, DimRect, DimSubpassData:
			n = 2
		case Dim3D:
			n = 3
		}
		if b.ImageTypeIsArrayed(imageType) {
			n++
		}
		if n == 1 {
			resultType = intType
		} else {
			resultType = b.MakeVectorType(intType, n)
		}
	case OpImageQueryLod:
		resultType = b.MakeVectorType(b.MakeFloatType(32), 2)
	case OpImageQueryLevels, OpImageQuerySamples:
		resultType = intType
	default:
		panic("spirv: unsupported image query")
	}

	inst := NewInstruction(b.UniqueID(), resultType, opcode)
	inst.AddIDOperand(params.Sampler)
	if params.Coords != NoResult {
		inst.AddIDOperand(params.Coords)
	}
	if params.Lod != NoResult {
		inst.AddIDOperand(params.Lod)
	}
	b.addInstruction(inst)
	return inst.ResultID
}
