package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/layout"
	"github.com/gogpu/glslspv/spirv"
)

func precisionDecoration(t *ast.Type) spirv.Decoration {
	if t != nil && t.Qualifier.IsRelaxed() {
		return spirv.DecorationRelaxedPrecision
	}
	return spirv.DecorationMax
}

func (s *Session) blockDecoration(t *ast.Type) spirv.Decoration {
	if t.Basic != ast.BasicBlock {
		return spirv.DecorationMax
	}
	switch t.Qualifier.Storage {
	case ast.StorageUniform, ast.StorageVaryingIn, ast.StorageVaryingOut:
		return spirv.DecorationBlock
	case ast.StorageBuffer:
		if s.prog.UseStorageBuffer {
			return spirv.DecorationBlock
		}
		return spirv.DecorationBufferBlock
	}
	return spirv.DecorationMax
}

func layoutDecoration(t *ast.Type, matrixLayout ast.MatrixLayout) spirv.Decoration {
	if t.IsMatrix() {
		switch matrixLayout {
		case ast.LayoutRowMajor:
			return spirv.DecorationRowMajor
		case ast.LayoutColumnMajor:
			return spirv.DecorationColMajor
		}
		return spirv.DecorationMax
	}
	if t.Basic == ast.BasicBlock && t.Qualifier.IsUniformOrBuffer() {
		switch t.Qualifier.Packing {
		case ast.PackingShared:
			return spirv.DecorationGLSLShared
		case ast.PackingPacked:
			return spirv.DecorationGLSLPacked
		}
	}
	return spirv.DecorationMax
}

func interpolationDecoration(q *ast.Qualifier) spirv.Decoration {
	switch q.Interpolation {
	case ast.InterpolationFlat:
		return spirv.DecorationFlat
	case ast.InterpolationNoPerspective:
		return spirv.DecorationNoPerspective
	}
	return spirv.DecorationMax
}

func (s *Session) auxiliaryDecoration(q *ast.Qualifier) spirv.Decoration {
	switch {
	case q.Patch:
		return spirv.DecorationPatch
	case q.Centroid:
		return spirv.DecorationCentroid
	case q.Sample:
		s.b.AddCapability(spirv.CapabilitySampleRateShading)
		return spirv.DecorationSample
	}
	return spirv.DecorationMax
}

func invariantDecoration(q *ast.Qualifier) spirv.Decoration {
	if q.Invariant {
		return spirv.DecorationInvariant
	}
	return spirv.DecorationMax
}

func noContractionDecoration(q *ast.Qualifier) spirv.Decoration {
	if q.Precise {
		return spirv.DecorationNoContraction
	}
	return spirv.DecorationMax
}

func memoryDecorations(q *ast.Qualifier) []spirv.Decoration {
	var out []spirv.Decoration
	if q.Coherent {
		out = append(out, spirv.DecorationCoherent)
	}
	if q.Volatile {
		out = append(out, spirv.DecorationVolatile)
	}
	if q.Restrict {
		out = append(out, spirv.DecorationRestrict)
	}
	if q.ReadOnly {
		out = append(out, spirv.DecorationNonWritable)
	}
	if q.WriteOnly {
		out = append(out, spirv.DecorationNonReadable)
	}
	return out
}

// isDescriptorResource reports whether a variable of type t is bound
// through a descriptor set.
func isDescriptorResource(t *ast.Type) bool {
	switch t.Basic {
	case ast.BasicBlock:
		return t.Qualifier.IsUniformOrBuffer() && !t.Qualifier.PushConstant
	case ast.BasicSampler:
		return t.Qualifier.IsUniformOrBuffer()
	}
	return false
}

// translateBuiltIn maps a built-in tag and declares what it requires.
// A member declaration does not declare the capabilities of built-ins
// that only matter once used.
func (s *Session) translateBuiltIn(builtIn ast.BuiltIn, member bool) spirv.BuiltIn {
	switch builtIn {
	case ast.BuiltInNone:
		return spirv.BuiltInMax
	case ast.BuiltInPosition:
		return spirv.BuiltInPosition
	case ast.BuiltInPointSize:
		if !member {
			switch s.prog.Stage {
			case ast.StageGeometry:
				s.b.AddCapability(spirv.CapabilityGeometryPointSize)
			case ast.StageTessControl, ast.StageTessEvaluation:
				s.b.AddCapability(spirv.CapabilityTessellationPointSize)
			}
		}
		return spirv.BuiltInPointSize
	case ast.BuiltInClipDistance:
		if !member {
			s.b.AddCapability(spirv.CapabilityClipDistance)
		}
		return spirv.BuiltInClipDistance
	case ast.BuiltInCullDistance:
		if !member {
			s.b.AddCapability(spirv.CapabilityCullDistance)
		}
		return spirv.BuiltInCullDistance
	case ast.BuiltInViewportIndex:
		s.b.AddCapability(spirv.CapabilityMultiViewport)
		return spirv.BuiltInViewportIndex
	case ast.BuiltInSampleID:
		s.b.AddCapability(spirv.CapabilitySampleRateShading)
		return spirv.BuiltInSampleID
	case ast.BuiltInSamplePosition:
		s.b.AddCapability(spirv.CapabilitySampleRateShading)
		return spirv.BuiltInSamplePosition
	case ast.BuiltInSampleMask:
		s.b.AddCapability(spirv.CapabilitySampleRateShading)
		return spirv.BuiltInSampleMask
	case ast.BuiltInLayer:
		if s.prog.Stage != ast.StageGeometry {
			s.b.AddCapability(spirv.CapabilityGeometry)
		}
		return spirv.BuiltInLayer
	case ast.BuiltInVertexID:
		return spirv.BuiltInVertexID
	case ast.BuiltInInstanceID:
		return spirv.BuiltInInstanceID
	case ast.BuiltInVertexIndex:
		return spirv.BuiltInVertexIndex
	case ast.BuiltInInstanceIndex:
		return spirv.BuiltInInstanceIndex
	case ast.BuiltInBaseVertex:
		s.drawParameters()
		return spirv.BuiltInBaseVertex
	case ast.BuiltInBaseInstance:
		s.drawParameters()
		return spirv.BuiltInBaseInstance
	case ast.BuiltInDrawID:
		s.drawParameters()
		return spirv.BuiltInDrawIndex
	case ast.BuiltInPrimitiveID:
		if s.prog.Stage == ast.StageFragment {
			s.b.AddCapability(spirv.CapabilityGeometry)
		}
		return spirv.BuiltInPrimitiveID
	case ast.BuiltInInvocationID:
		return spirv.BuiltInInvocationID
	case ast.BuiltInTessLevelInner:
		return spirv.BuiltInTessLevelInner
	case ast.BuiltInTessLevelOuter:
		return spirv.BuiltInTessLevelOuter
	case ast.BuiltInTessCoord:
		return spirv.BuiltInTessCoord
	case ast.BuiltInPatchVertices:
		return spirv.BuiltInPatchVertices
	case ast.BuiltInFragCoord:
		return spirv.BuiltInFragCoord
	case ast.BuiltInPointCoord:
		return spirv.BuiltInPointCoord
	case ast.BuiltInFace:
		return spirv.BuiltInFrontFacing
	case ast.BuiltInFragDepth:
		return spirv.BuiltInFragDepth
	case ast.BuiltInHelperInvocation:
		return spirv.BuiltInHelperInvocation
	case ast.BuiltInNumWorkGroups:
		return spirv.BuiltInNumWorkgroups
	case ast.BuiltInWorkGroupSize:
		return spirv.BuiltInWorkgroupSize
	case ast.BuiltInWorkGroupID:
		return spirv.BuiltInWorkgroupID
	case ast.BuiltInLocalInvocationID:
		return spirv.BuiltInLocalInvocationID
	case ast.BuiltInLocalInvocationIndex:
		return spirv.BuiltInLocalInvocationIndex
	case ast.BuiltInGlobalInvocationID:
		return spirv.BuiltInGlobalInvocationID
	case ast.BuiltInSubGroupSize:
		s.ballot()
		return spirv.BuiltInSubgroupSize
	case ast.BuiltInSubGroupInvocation:
		s.ballot()
		return spirv.BuiltInSubgroupLocalInvocationID
	case ast.BuiltInSubGroupEqMask:
		s.ballot()
		return spirv.BuiltInSubgroupEqMaskKHR
	case ast.BuiltInSubGroupGeMask:
		s.ballot()
		return spirv.BuiltInSubgroupGeMaskKHR
	case ast.BuiltInSubGroupGtMask:
		s.ballot()
		return spirv.BuiltInSubgroupGtMaskKHR
	case ast.BuiltInSubGroupLeMask:
		s.ballot()
		return spirv.BuiltInSubgroupLeMaskKHR
	case ast.BuiltInSubGroupLtMask:
		s.ballot()
		return spirv.BuiltInSubgroupLtMaskKHR
	case ast.BuiltInDeviceIndex:
		s.b.AddExtension(spirv.ExtDeviceGroup)
		s.b.AddCapability(spirv.CapabilityDeviceGroup)
		return spirv.BuiltInDeviceIndex
	case ast.BuiltInViewIndex:
		s.b.AddExtension(spirv.ExtMultiview)
		s.b.AddCapability(spirv.CapabilityMultiView)
		return spirv.BuiltInViewIndex
	}
	s.missing("built-in %s", builtIn)
	return spirv.BuiltInMax
}

func (s *Session) drawParameters() {
	s.b.AddExtension(spirv.ExtShaderDrawParameters)
	s.b.AddCapability(spirv.CapabilityDrawParameters)
}

func (s *Session) ballot() {
	s.b.AddExtension(spirv.ExtShaderBallot)
	s.b.AddCapability(spirv.CapabilitySubgroupBallotKHR)
}

// filterMember reports block members whose extension was not requested.
func (s *Session) filterMember(m *ast.Type) bool {
	switch m.Qualifier.BuiltIn {
	case ast.BuiltInViewportMaskNV:
		return !s.prog.HasExtension("GL_NV_viewport_array2")
	case ast.BuiltInSecondaryPositionNV, ast.BuiltInSecondaryViewportMaskNV:
		return !s.prog.HasExtension("GL_NV_stereo_view_rendering")
	case ast.BuiltInPositionPerViewNV, ast.BuiltInViewportMaskPerViewNV:
		return !s.prog.HasExtension("GL_NVX_multiview_per_view_attributes")
	}
	return false
}

// declareUseOfStructMember declares the capabilities of a built-in
// member once it is accessed.
func (s *Session) declareUseOfStructMember(members []*ast.Type, index int) {
	if index < 0 || index >= len(members) {
		return
	}
	switch b := members[index].Qualifier.BuiltIn; b {
	case ast.BuiltInClipDistance, ast.BuiltInCullDistance, ast.BuiltInPointSize:
		s.translateBuiltIn(b, false)
	}
}

// decorateStruct names and decorates the members of a struct type
// made from t, then the struct itself.
func (s *Session) decorateStruct(t *ast.Type, id spirv.ID, packing ast.Packing, q *ast.Qualifier) {
	placement := &layout.Placement{
		Std140:      packing == ast.PackingStd140,
		HLSLOffsets: s.prog.HLSLOffsets && t.TypeName != "$Global",
	}
	pipe := t.Qualifier.Storage == ast.StorageVaryingIn || t.Qualifier.Storage == ast.StorageVaryingOut

	for i, m := range t.Members() {
		member := s.memberIndex(t.Struct, i)
		if member < 0 {
			continue
		}
		mq := m.Qualifier
		inheritQualifiers(&mq, q)

		s.b.AddMemberName(id, member, m.FieldName)
		s.b.AddMemberDecoration(id, member, layoutDecoration(m, mq.MatrixLayout))
		s.b.AddMemberDecoration(id, member, precisionDecoration(m))
		if pipe && (t.Basic == ast.BasicBlock || s.prog.Language == ast.LanguageHLSL) {
			s.b.AddMemberDecoration(id, member, interpolationDecoration(&mq))
			s.b.AddMemberDecoration(id, member, s.auxiliaryDecoration(&mq))
		}
		s.b.AddMemberDecoration(id, member, invariantDecoration(&mq))
		if q.Storage == ast.StorageBuffer {
			for _, d := range memoryDecorations(&mq) {
				s.b.AddMemberDecoration(id, member, d)
			}
		}

		if loc := m.Qualifier.Location; loc != nil && !m.IsArray() && !t.IsArray() {
			s.b.AddMemberDecoration(id, member, spirv.DecorationLocation, s.word(*loc))
		}
		if c := m.Qualifier.Component; c != nil {
			s.b.AddMemberDecoration(id, member, spirv.DecorationComponent, s.word(*c))
		}

		rowMajor := mq.MatrixLayout == ast.LayoutRowMajor
		if xfb := m.Qualifier.XfbOffset; xfb != nil {
			s.b.AddMemberDecoration(id, member, spirv.DecorationOffset, s.word(*xfb))
		} else if packing != ast.PackingNone {
			offset := placement.Place(m, m.Qualifier.Offset, rowMajor)
			s.b.AddMemberDecoration(id, member, spirv.DecorationOffset, s.word(offset))
		}
		if m.IsMatrix() && packing != ast.PackingNone {
			stride := layout.MatrixStride(m, packing == ast.PackingStd140, rowMajor)
			s.b.AddMemberDecoration(id, member, spirv.DecorationMatrixStride, s.word(stride))
		}

		if builtIn := s.translateBuiltIn(m.Qualifier.BuiltIn, true); builtIn != spirv.BuiltInMax {
			s.b.AddMemberDecoration(id, member, spirv.DecorationBuiltIn, uint32(builtIn))
		}
	}

	s.b.AddDecoration(id, layoutDecoration(t, q.MatrixLayout))
	s.b.AddDecoration(id, s.blockDecoration(t))
	if stream := t.Qualifier.Stream; stream != nil && s.prog.MultiStream {
		s.b.AddCapability(spirv.CapabilityGeometryStreams)
		s.b.AddDecoration(id, spirv.DecorationStream, s.word(*stream))
	}
	if s.prog.XfbMode {
		s.b.AddCapability(spirv.CapabilityTransformFeedback)
		s.xfbLayout(id, &t.Qualifier)
	}
}

func (s *Session) xfbLayout(id spirv.ID, q *ast.Qualifier) {
	if q.XfbStride != nil {
		s.b.AddDecoration(id, spirv.DecorationXfbStride, s.word(*q.XfbStride))
	}
	if q.XfbBuffer != nil {
		s.b.AddDecoration(id, spirv.DecorationXfbBuffer, s.word(*q.XfbBuffer))
	}
}

// decorateSymbol attaches a variable's decorations. It runs once, when
// the variable is created.
func (s *Session) decorateSymbol(sym *ast.Symbol, id spirv.ID) {
	t := sym.Type
	q := &t.Qualifier

	if t.Basic != ast.BasicBlock {
		s.b.AddDecoration(id, precisionDecoration(t))
		s.b.AddDecoration(id, interpolationDecoration(q))
		s.b.AddDecoration(id, s.auxiliaryDecoration(q))
		if q.SpecID != nil {
			s.b.AddDecoration(id, spirv.DecorationSpecID, s.word(*q.SpecID))
		}
		if q.Index != nil {
			s.b.AddDecoration(id, spirv.DecorationIndex, s.word(*q.Index))
		}
		if q.Component != nil {
			s.b.AddDecoration(id, spirv.DecorationComponent, s.word(*q.Component))
		}
		if s.prog.XfbMode {
			s.b.AddCapability(spirv.CapabilityTransformFeedback)
			s.xfbLayout(id, q)
			if q.XfbOffset != nil {
				s.b.AddDecoration(id, spirv.DecorationOffset, s.word(*q.XfbOffset))
			}
		}
		// atomic counter offsets
		if q.Offset != nil {
			s.b.AddDecoration(id, spirv.DecorationOffset, s.word(*q.Offset))
		}
	}

	if q.Location != nil {
		s.b.AddDecoration(id, spirv.DecorationLocation, s.word(*q.Location))
	}
	s.b.AddDecoration(id, invariantDecoration(q))
	if q.Stream != nil && s.prog.MultiStream {
		s.b.AddCapability(spirv.CapabilityGeometryStreams)
		s.b.AddDecoration(id, spirv.DecorationStream, s.word(*q.Stream))
	}
	if q.Set != nil {
		s.b.AddDecoration(id, spirv.DecorationDescriptorSet, s.word(*q.Set))
	} else if isDescriptorResource(t) {
		s.b.AddDecoration(id, spirv.DecorationDescriptorSet, 0)
	}
	if q.Binding != nil {
		s.b.AddDecoration(id, spirv.DecorationBinding, s.word(*q.Binding))
	}
	if q.InputAttachmentIndex != nil {
		s.b.AddDecoration(id, spirv.DecorationInputAttachmentIndex, s.word(*q.InputAttachmentIndex))
	}
	if s.prog.XfbMode && t.Basic == ast.BasicBlock {
		s.b.AddCapability(spirv.CapabilityTransformFeedback)
		s.xfbLayout(id, q)
	}

	if t.Basic == ast.BasicSampler && t.Sampler.IsImage() {
		for _, d := range memoryDecorations(q) {
			s.b.AddDecoration(id, d)
		}
	}

	if builtIn := s.translateBuiltIn(q.BuiltIn, false); builtIn != spirv.BuiltInMax {
		s.b.AddDecoration(id, spirv.DecorationBuiltIn, uint32(builtIn))
	}
	s.b.AddDecoration(id, noContractionDecoration(q))
}
