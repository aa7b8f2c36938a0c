package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

// textureFlags completes an operator's texture flags for a sampler:
// fetches from mipmapped images take an explicit lod.
func textureFlags(op ast.Operator, sampler ast.Sampler) TexFlags {
	flags := Lookup(op).Tex
	if flags.Has(TexFetch) && !sampler.MS {
		switch sampler.Dim {
		case ast.Dim1D, ast.Dim2D, ast.Dim3D:
			flags |= TexLod
		}
	}
	return flags
}

func isCubeCompare(sampler ast.Sampler) bool {
	return sampler.Dim == ast.DimCube && sampler.Arrayed && sampler.Shadow
}

// texelOutIndex returns the position of the residency texel argument
// of a sparse texture call.
func texelOutIndex(flags TexFlags, sampler ast.Sampler) int {
	i := 2
	if isCubeCompare(sampler) || (sampler.Shadow && flags.Has(TexGather)) {
		i++
	}
	if flags.Has(TexLod) {
		i++
	}
	if sampler.MS {
		i++
	}
	if flags.Has(TexGrad) {
		i += 2
	}
	if flags.Has(TexOffset) || flags.Has(TexOffsets) {
		i++
	}
	if flags.Has(TexLodClamp) {
		i++
	}
	return i
}

// textureArguments evaluates the arguments of a texture or image call.
// Pointers are produced for atomic targets and sparse texel outputs.
func (s *Session) textureArguments(op ast.Operator, args []ast.Node, sampler ast.Sampler) []spirv.ID {
	info := Lookup(op)
	flags := textureFlags(op, sampler)

	lvalue := -1
	switch {
	case info.Category == CategoryImage && info.IsLValueArg(0):
		lvalue = 0
	case op == ast.OpSparseImageLoad:
		lvalue = 2
		if sampler.MS {
			lvalue = 3
		}
	case info.Category == CategoryTexture && flags.Has(TexSparse):
		lvalue = texelOutIndex(flags, sampler)
	}

	ids := make([]spirv.ID, 0, len(args))
	for i, arg := range args {
		s.b.ClearAccessChain()
		ast.Walk(s, arg)
		if i == lvalue {
			ids = append(ids, s.b.AccessChainGetLValue())
		} else {
			ids = append(ids, s.accessChainLoad(arg.NodeType()))
		}
	}
	return ids
}

// textureCall lowers texture sampling, queries and image access. The
// bool result is false when op is not a texture or image operator.
// Image stores return NoResult.
func (s *Session) textureCall(op ast.Operator, result *ast.Type, args []ast.Node) (spirv.ID, bool) {
	info := Lookup(op)
	if info.Category != CategoryTexture && info.Category != CategoryImage {
		return spirv.NoResult, false
	}
	if len(args) == 0 {
		s.missing("texture operation %s without arguments", op)
		return spirv.NoResult, true
	}

	var sampler ast.Sampler
	if t := args[0].NodeType(); t != nil {
		sampler = t.Sampler
	}
	arguments := s.textureArguments(op, args, sampler)
	precision := precisionDecoration(result)
	resultType := s.convertType(result)

	if info.Tex.Has(TexQuery) {
		return s.textureQuery(op, arguments, result.Basic.IsUnsigned()), true
	}
	if info.Category == CategoryImage {
		return s.imageCall(op, precision, resultType, arguments, sampler, result.Basic), true
	}
	return s.sample(op, precision, resultType, arguments, sampler), true
}

func (s *Session) textureQuery(op ast.Operator, arguments []spirv.ID, unsigned bool) spirv.ID {
	params := spirv.TextureParameters{Sampler: arguments[0]}

	if op == ast.OpSparseTexelsResident {
		return s.b.CreateUnaryOp(spirv.OpImageSparseTexelsResident, s.b.MakeBoolType(), arguments[0])
	}
	// Only the lod query works on the sampled image itself.
	if op != ast.OpTextureQueryLod && s.b.IsSampledImage(params.Sampler) {
		params.Sampler = s.b.CreateUnaryOp(spirv.OpImage, s.b.ImageTypeOf(params.Sampler), params.Sampler)
	}

	switch op {
	case ast.OpImageQuerySize, ast.OpTextureQuerySize:
		if len(arguments) > 1 {
			params.Lod = arguments[1]
			return s.b.CreateTextureQueryCall(spirv.OpImageQuerySizeLod, params, unsigned)
		}
		return s.b.CreateTextureQueryCall(spirv.OpImageQuerySize, params, unsigned)
	case ast.OpImageQuerySamples, ast.OpTextureQuerySamples:
		return s.b.CreateTextureQueryCall(spirv.OpImageQuerySamples, params, unsigned)
	case ast.OpTextureQueryLod:
		params.Coords = arguments[1]
		return s.b.CreateTextureQueryCall(spirv.OpImageQueryLod, params, unsigned)
	case ast.OpTextureQueryLevels:
		return s.b.CreateTextureQueryCall(spirv.OpImageQueryLevels, params, unsigned)
	}
	s.missing("texture query %s", op)
	return spirv.NoResult
}

// withoutFormat declares the capability for storage image access
// through an image declared without a format.
func (s *Session) withoutFormat(image spirv.ID, capability spirv.Capability) {
	if s.b.ImageTypeFormat(s.b.ImageTypeOf(image)) == spirv.ImageFormatUnknown {
		s.b.AddCapability(capability)
	}
}

//nolint:funlen // one case per image operation
func (s *Session) imageCall(op ast.Operator, precision spirv.Decoration, resultType spirv.ID,
	arguments []spirv.ID, sampler ast.Sampler, proxy ast.BasicType,
) spirv.ID {
	image := arguments[0]
	operands := []spirv.ID{image}
	next := 1

	if Lookup(op).Tex.Has(TexSubpass) {
		zero := s.b.MakeIntConst(0)
		ivec2 := s.b.MakeVectorType(s.b.MakeIntType(32), 2)
		operands = append(operands, s.b.MakeCompositeConstant(ivec2, []spirv.ID{zero, zero}, false))
		if sampler.MS {
			operands = append(operands, spirv.ID(spirv.ImageOperandsSample), arguments[next])
		}
		return s.b.SetPrecision(s.b.CreateOp(spirv.OpImageRead, resultType, operands), precision)
	}

	operands = append(operands, arguments[next])
	next++

	switch op {
	case ast.OpImageLoad:
		if sampler.MS {
			operands = append(operands, spirv.ID(spirv.ImageOperandsSample), arguments[next])
		}
		s.withoutFormat(image, spirv.CapabilityStorageImageReadWithoutFormat)
		return s.b.SetPrecision(s.b.CreateOp(spirv.OpImageRead, resultType, operands), precision)

	case ast.OpImageStore:
		if sampler.MS {
			operands = append(operands, arguments[next+1], spirv.ID(spirv.ImageOperandsSample), arguments[next])
		} else {
			operands = append(operands, arguments[next])
		}
		s.b.CreateNoResultOp(spirv.OpImageWrite, operands...)
		s.withoutFormat(image, spirv.CapabilityStorageImageWriteWithoutFormat)
		return spirv.NoResult

	case ast.OpSparseImageLoad:
		s.b.AddCapability(spirv.CapabilitySparseResidency)
		s.withoutFormat(image, spirv.CapabilityStorageImageReadWithoutFormat)
		if sampler.MS {
			operands = append(operands, spirv.ID(spirv.ImageOperandsSample), arguments[next])
			next++
		}

		// The residency code is the result; the texel goes out
		// through the last argument.
		texelOut := arguments[next]
		texelType := s.b.DerefTypeID(texelOut)
		structType := s.b.MakeStructResultType(resultType, texelType)
		id := s.b.CreateOp(spirv.OpImageSparseRead, structType, operands)
		s.b.CreateStore(s.b.CreateCompositeExtract(id, texelType, 1), texelOut)
		return s.b.CreateCompositeExtract(id, resultType, 0)
	}

	// Image atomics operate through a texel pointer.
	if sampler.MS {
		operands = append(operands, arguments[next])
		next++
	} else {
		operands = append(operands, s.b.MakeUintConst(0))
	}
	pointerType := s.b.MakePointer(spirv.StorageClassImage, resultType)
	pointer := s.b.CreateOp(spirv.OpImageTexelPointer, pointerType, operands)

	atomicOperands := append([]spirv.ID{pointer}, arguments[next:]...)
	return s.atomicOperation(op, resultType, atomicOperands, proxy)
}

// sample lowers the sampling, fetch and gather families.
//
//nolint:gocyclo,cyclop,funlen // operand positions depend on many flags
func (s *Session) sample(op ast.Operator, precision spirv.Decoration, resultType spirv.ID,
	arguments []spirv.ID, sampler ast.Sampler,
) spirv.ID {
	flags := textureFlags(op, sampler)
	sparse := flags.Has(TexSparse)
	cubeCompare := isCubeCompare(sampler)

	bias := false
	if !flags.Has(TexLod) && !flags.Has(TexGather) && !flags.Has(TexGrad) && !flags.Has(TexFetch) && !cubeCompare {
		nonBias := 2
		if flags.Has(TexOffset) || flags.Has(TexOffsets) {
			nonBias++
		}
		if flags.Has(TexLodClamp) {
			nonBias++
		}
		if sparse {
			nonBias++
		}
		bias = len(arguments) > nonBias
	}

	params := spirv.TextureParameters{Sampler: arguments[0], Coords: arguments[1]}
	if flags.Has(TexFetch) && s.b.IsSampledImage(params.Sampler) {
		params.Sampler = s.b.CreateUnaryOp(spirv.OpImage, s.b.ImageTypeOf(params.Sampler), params.Sampler)
	}

	extra := 0
	switch {
	case cubeCompare, sampler.Shadow && flags.Has(TexGather):
		params.Dref = arguments[2]
		extra++
	case sampler.Shadow:
		// Projective shadow lookups take the reference from the third
		// component, others from the last.
		comp := s.b.NumComponents(params.Coords) - 1
		if flags.Has(TexProj) {
			comp = 2
		}
		scalar := s.b.ScalarTypeID(s.b.TypeID(params.Coords))
		params.Dref = s.b.CreateCompositeExtract(params.Coords, scalar, s.word(comp))
	}

	noImplicitLod := false
	if flags.Has(TexLod) {
		params.Lod = arguments[2+extra]
		extra++
	} else if s.prog.Stage != ast.StageFragment {
		noImplicitLod = true
	}

	if sampler.MS {
		params.Sample = arguments[2+extra]
		extra++
	}
	if flags.Has(TexGrad) {
		params.GradX = arguments[2+extra]
		params.GradY = arguments[3+extra]
		extra += 2
	}
	switch {
	case flags.Has(TexOffset):
		params.Offset = arguments[2+extra]
		extra++
	case flags.Has(TexOffsets):
		params.Offsets = arguments[2+extra]
		extra++
	}
	if flags.Has(TexLodClamp) {
		params.LodClamp = arguments[2+extra]
		extra++
	}
	if sparse {
		params.TexelOut = arguments[2+extra]
		extra++
	}
	if flags.Has(TexGather) && !sampler.Shadow {
		if 2+extra < len(arguments) {
			params.Component = arguments[2+extra]
			extra++
		} else {
			params.Component = s.b.MakeIntConst(0)
		}
	}
	if bias {
		params.Bias = arguments[2+extra]
	}

	if flags.Has(TexProj) {
		source := s.b.NumComponents(params.Coords) - 1
		target := source
		switch sampler.Dim {
		case ast.Dim1D:
			target = 1
		case ast.Dim2D, ast.DimRect:
			target = 2
		}
		if target != source {
			coordsType := s.b.TypeID(params.Coords)
			q := s.b.CreateCompositeExtract(params.Coords, s.b.ScalarTypeID(coordsType), s.word(source))
			params.Coords = s.b.CreateCompositeInsert(q, params.Coords, coordsType, s.word(target))
		}
	}

	kind := spirv.TextureKind{
		Sparse:        sparse,
		Fetch:         flags.Has(TexFetch),
		Proj:          flags.Has(TexProj),
		Gather:        flags.Has(TexGather),
		NoImplicitLod: noImplicitLod,
	}
	return s.b.CreateTextureCall(precision, resultType, kind, params)
}
