package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/layout"
	"github.com/gogpu/glslspv/spirv"
)

// explicitLayout returns the packing that gives t explicit offsets and
// strides: std140 or std430 on uniform and buffer blocks, else none.
func explicitLayout(t *ast.Type) ast.Packing {
	if t.Basic != ast.BasicBlock || !t.Qualifier.IsUniformOrBuffer() {
		return ast.PackingNone
	}
	if t.Qualifier.IsStd() {
		return t.Qualifier.Packing
	}
	return ast.PackingNone
}

// hasNonLayoutQualifiers reports qualifiers that members inherit and
// that change member decorations without being part of the layout.
// Structs carrying them are never shared.
func hasNonLayoutQualifiers(t *ast.Type, q *ast.Qualifier) bool {
	return q.Invariant || (q.Location != nil && t.Basic == ast.BasicBlock)
}

// inheritQualifiers copies the parent qualifiers a struct member picks
// up when it does not set its own.
func inheritQualifiers(child *ast.Qualifier, parent *ast.Qualifier) {
	if parent.Interpolation != ast.InterpolationSmooth {
		child.Interpolation = parent.Interpolation
	}
	child.Centroid = child.Centroid || parent.Centroid
	child.Patch = child.Patch || parent.Patch
	child.Sample = child.Sample || parent.Sample
	child.Invariant = child.Invariant || parent.Invariant
	child.Coherent = child.Coherent || parent.Coherent
	child.Volatile = child.Volatile || parent.Volatile
	child.Restrict = child.Restrict || parent.Restrict
	child.ReadOnly = child.ReadOnly || parent.ReadOnly
	child.WriteOnly = child.WriteOnly || parent.WriteOnly
	if child.MatrixLayout == ast.LayoutMatrixNone {
		child.MatrixLayout = parent.MatrixLayout
	}
}

// storageClass picks the SPIR-V storage class of a variable of type t.
func (s *Session) storageClass(t *ast.Type) spirv.StorageClass {
	q := &t.Qualifier
	switch {
	case q.IsPipeInput():
		return spirv.StorageClassInput
	case q.IsPipeOutput():
		return spirv.StorageClassOutput
	case t.Basic == ast.BasicAtomicUint:
		return spirv.StorageClassAtomicCounter
	case t.ContainsOpaque():
		return spirv.StorageClassUniformConstant
	case s.prog.UseStorageBuffer && q.Storage == ast.StorageBuffer:
		s.b.AddExtension(spirv.ExtStorageBufferStorageClass)
		return spirv.StorageClassStorageBuffer
	case q.IsUniformOrBuffer():
		if q.PushConstant {
			return spirv.StorageClassPushConstant
		}
		if t.Basic == ast.BasicBlock {
			return spirv.StorageClassUniform
		}
		return spirv.StorageClassUniformConstant
	}

	switch q.Storage {
	case ast.StorageShared:
		return spirv.StorageClassWorkgroup
	case ast.StorageGlobal:
		return spirv.StorageClassPrivate
	default:
		return spirv.StorageClassFunction
	}
}

// convertType returns the SPIR-V type of t under the layout t itself
// implies.
func (s *Session) convertType(t *ast.Type) spirv.ID {
	return s.convertTypeLayout(t, explicitLayout(t), &t.Qualifier)
}

// convertTypeLayout returns the SPIR-V type of t as a member of a
// container with the given explicit layout and inherited qualifier.
func (s *Session) convertTypeLayout(t *ast.Type, packing ast.Packing, q *ast.Qualifier) spirv.ID {
	var id spirv.ID

	switch t.Basic {
	case ast.BasicVoid:
		id = s.b.MakeVoidType()
	case ast.BasicFloat:
		id = s.b.MakeFloatType(32)
	case ast.BasicDouble:
		id = s.b.MakeFloatType(64)
	case ast.BasicFloat16:
		id = s.b.MakeFloatType(16)
	case ast.BasicBool:
		// Booleans in memory with an explicit layout are 32-bit words,
		// non-zero meaning true.
		if packing != ast.PackingNone {
			id = s.b.MakeUintType(32)
		} else {
			id = s.b.MakeBoolType()
		}
	case ast.BasicInt:
		id = s.b.MakeIntType(32)
	case ast.BasicUint:
		id = s.b.MakeUintType(32)
	case ast.BasicInt64:
		id = s.b.MakeIntType(64)
	case ast.BasicUint64:
		id = s.b.MakeUintType(64)
	case ast.BasicAtomicUint:
		s.b.AddCapability(spirv.CapabilityAtomicStorage)
		id = s.b.MakeUintType(32)
	case ast.BasicSampler:
		id = s.convertSampler(t.Sampler)
	case ast.BasicStruct, ast.BasicBlock:
		key := structKey{members: t.Struct, layout: packing, matrixLayout: q.MatrixLayout}
		shared := !hasNonLayoutQualifiers(t, q)
		if shared {
			id = s.structMap[key]
		}
		if id == spirv.NoResult {
			id = s.convertStruct(t, packing, q)
			if shared {
				s.structMap[key] = id
			}
		}
	}

	if t.IsMatrix() {
		id = s.b.MakeMatrixType(id, t.MatrixCols, t.MatrixRows)
	} else if t.VectorSize > 1 {
		id = s.b.MakeVectorType(id, t.VectorSize)
	}

	if t.IsArray() {
		id = s.convertArrays(t, id, packing, q)
	}
	return id
}

// convertArrays wraps element in t's array dimensions, innermost first.
// Under an explicit layout each dimension's stride is the inner stride
// times the inner dimension's size.
func (s *Session) convertArrays(t *ast.Type, element spirv.ID, packing ast.Packing, q *ast.Qualifier) spirv.ID {
	strided := packing != ast.PackingNone && t.Basic != ast.BasicBlock
	std140 := packing == ast.PackingStd140
	rowMajor := q.MatrixLayout == ast.LayoutRowMajor
	dims := len(t.Arrays)

	stride := 0
	if strided {
		innermost := t.Unarrayed()
		innermost.Arrays = t.Arrays[dims-1:]
		_, _, stride = layout.BaseAlignment(innermost, std140, rowMajor)
	}

	id := element
	for dim := dims - 1; dim > 0; dim-- {
		id = s.b.MakeArrayType(id, s.arraySizeID(t.Arrays[dim]), stride)
		if stride > 0 {
			s.b.AddDecoration(id, spirv.DecorationArrayStride, s.word(stride))
		}
		stride *= t.Arrays[dim].Size
	}

	if t.IsRuntimeSized() {
		id = s.b.MakeRuntimeArray(id)
	} else {
		id = s.b.MakeArrayType(id, s.arraySizeID(t.Arrays[0]), stride)
	}
	if stride > 0 {
		s.b.AddDecoration(id, spirv.DecorationArrayStride, s.word(stride))
	}
	return id
}

// arraySizeID returns the length operand of one array dimension. A
// size given by a specialization constant expression is lowered here.
func (s *Session) arraySizeID(dim ast.ArraySize) spirv.ID {
	if dim.Spec == nil {
		return s.b.MakeUintConst(s.word(dim.Size))
	}
	saved := s.b.GetAccessChain()
	s.b.ClearAccessChain()
	ast.Walk(s, dim.Spec)
	id := s.accessChainLoad(dim.Spec.NodeType())
	s.b.SetAccessChain(saved)
	return id
}

func (s *Session) convertSampler(sampler ast.Sampler) spirv.ID {
	if sampler.IsPureSampler() {
		return s.b.MakeSamplerType()
	}

	var sampled spirv.ID
	switch sampler.Type {
	case ast.BasicInt:
		sampled = s.b.MakeIntType(32)
	case ast.BasicUint:
		sampled = s.b.MakeUintType(32)
	default:
		sampled = s.b.MakeFloatType(32)
	}

	usage := uint32(1)
	if sampler.IsImage() {
		usage = 2
	}
	id := s.b.MakeImageType(sampled, spirv.Dim(sampler.Dim), sampler.Shadow, sampler.Arrayed, sampler.MS,
		usage, s.imageFormat(sampler.Format))
	if sampler.IsCombined() {
		id = s.b.MakeSampledImageType(id)
	}
	return id
}

// imageFormat maps a format qualifier, declaring the extended formats
// capability for formats outside the base set.
func (s *Session) imageFormat(f ast.ImageFormat) spirv.ImageFormat {
	format := spirv.ImageFormat(f)
	switch {
	case format >= spirv.ImageFormatRg32f && format <= spirv.ImageFormatR8Snorm,
		format >= spirv.ImageFormatRg32i && format <= spirv.ImageFormatR8i,
		format >= spirv.ImageFormatRgb10a2ui && format <= spirv.ImageFormatR8ui:
		s.b.AddCapability(spirv.CapabilityStorageImageExtendedFormats)
	}
	return format
}

// convertStruct creates a new struct type for t's members and
// decorates it. Hidden and filtered members are left out and map to -1.
func (s *Session) convertStruct(t *ast.Type, packing ast.Packing, q *ast.Qualifier) spirv.ID {
	members := t.Members()
	remap := make([]int, len(members))
	ids := make([]spirv.ID, 0, len(members))

	delta := 0
	for i, m := range members {
		if m.Hidden || (t.Basic == ast.BasicBlock && s.filterMember(m)) {
			delta++
			remap[i] = -1
			continue
		}
		remap[i] = i - delta

		mq := m.Qualifier
		inheritQualifiers(&mq, q)
		if mq.Location == nil {
			mq.Location = q.Location
		}
		ids = append(ids, s.convertTypeLayout(m, packing, &mq))
	}
	s.memberRemapper[t.Struct] = remap

	id := s.b.MakeStructType(ids, t.TypeName)
	s.decorateStruct(t, id, packing, q)
	return id
}

// memberIndex maps a front-end member index to the emitted one.
func (s *Session) memberIndex(st *ast.Struct, member int) int {
	if remap, ok := s.memberRemapper[st]; ok && member < len(remap) {
		return remap[member]
	}
	return member
}
