package ast

// Storage is the storage qualifier of a variable or parameter.
type Storage uint8

const (
	StorageTemporary Storage = iota
	StorageGlobal
	StorageConst
	StorageVaryingIn
	StorageVaryingOut
	StorageUniform
	StorageBuffer
	StorageShared
	StorageIn
	StorageOut
	StorageInOut
	StorageConstReadOnly
)

var storageNames = map[Storage]string{
	StorageTemporary:     "temp",
	StorageGlobal:        "global",
	StorageConst:         "const",
	StorageVaryingIn:     "in",
	StorageVaryingOut:    "out",
	StorageUniform:       "uniform",
	StorageBuffer:        "buffer",
	StorageShared:        "shared",
	StorageIn:            "param_in",
	StorageOut:           "param_out",
	StorageInOut:         "param_inout",
	StorageConstReadOnly: "const_in",
}

func (s Storage) String() string { return storageNames[s] }

// Precision is a GLSL precision qualifier.
type Precision uint8

const (
	PrecisionNone Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

var precisionNames = map[Precision]string{
	PrecisionNone:   "",
	PrecisionLow:    "lowp",
	PrecisionMedium: "mediump",
	PrecisionHigh:   "highp",
}

// MatrixLayout is the row/column major layout qualifier.
type MatrixLayout uint8

const (
	LayoutMatrixNone MatrixLayout = iota
	LayoutColumnMajor
	LayoutRowMajor
)

var matrixLayoutNames = map[MatrixLayout]string{
	LayoutMatrixNone:  "",
	LayoutColumnMajor: "column_major",
	LayoutRowMajor:    "row_major",
}

// Packing is the block packing layout qualifier.
type Packing uint8

const (
	PackingNone Packing = iota
	PackingShared
	PackingStd140
	PackingStd430
	PackingPacked
)

var packingNames = map[Packing]string{
	PackingNone:   "",
	PackingShared: "shared",
	PackingStd140: "std140",
	PackingStd430: "std430",
	PackingPacked: "packed",
}

// Interpolation is the interpolation qualifier of a varying.
type Interpolation uint8

const (
	InterpolationSmooth Interpolation = iota
	InterpolationFlat
	InterpolationNoPerspective
)

var interpolationNames = map[Interpolation]string{
	InterpolationSmooth:        "",
	InterpolationFlat:          "flat",
	InterpolationNoPerspective: "noperspective",
}

// BuiltIn tags a variable or member as a built-in.
type BuiltIn uint8

const (
	BuiltInNone BuiltIn = iota
	BuiltInPosition
	BuiltInPointSize
	BuiltInClipDistance
	BuiltInCullDistance
	BuiltInVertexID
	BuiltInInstanceID
	BuiltInVertexIndex
	BuiltInInstanceIndex
	BuiltInBaseVertex
	BuiltInBaseInstance
	BuiltInDrawID
	BuiltInPrimitiveID
	BuiltInInvocationID
	BuiltInLayer
	BuiltInViewportIndex
	BuiltInTessLevelOuter
	BuiltInTessLevelInner
	BuiltInTessCoord
	BuiltInPatchVertices
	BuiltInFragCoord
	BuiltInPointCoord
	BuiltInFace
	BuiltInSampleID
	BuiltInSamplePosition
	BuiltInSampleMask
	BuiltInFragDepth
	BuiltInHelperInvocation
	BuiltInNumWorkGroups
	BuiltInWorkGroupSize
	BuiltInWorkGroupID
	BuiltInLocalInvocationID
	BuiltInGlobalInvocationID
	BuiltInLocalInvocationIndex
	BuiltInSubGroupSize
	BuiltInSubGroupInvocation
	BuiltInSubGroupEqMask
	BuiltInSubGroupGeMask
	BuiltInSubGroupGtMask
	BuiltInSubGroupLeMask
	BuiltInSubGroupLtMask
	BuiltInDeviceIndex
	BuiltInViewIndex
	BuiltInViewportMaskNV
	BuiltInSecondaryPositionNV
	BuiltInSecondaryViewportMaskNV
	BuiltInPositionPerViewNV
	BuiltInViewportMaskPerViewNV
)

var builtInNames = map[BuiltIn]string{
	BuiltInNone:                    "",
	BuiltInPosition:                "Position",
	BuiltInPointSize:               "PointSize",
	BuiltInClipDistance:            "ClipDistance",
	BuiltInCullDistance:            "CullDistance",
	BuiltInVertexID:                "VertexId",
	BuiltInInstanceID:              "InstanceId",
	BuiltInVertexIndex:             "VertexIndex",
	BuiltInInstanceIndex:           "InstanceIndex",
	BuiltInBaseVertex:              "BaseVertex",
	BuiltInBaseInstance:            "BaseInstance",
	BuiltInDrawID:                  "DrawId",
	BuiltInPrimitiveID:             "PrimitiveId",
	BuiltInInvocationID:            "InvocationId",
	BuiltInLayer:                   "Layer",
	BuiltInViewportIndex:           "ViewportIndex",
	BuiltInTessLevelOuter:          "TessLevelOuter",
	BuiltInTessLevelInner:          "TessLevelInner",
	BuiltInTessCoord:               "TessCoord",
	BuiltInPatchVertices:           "PatchVertices",
	BuiltInFragCoord:               "FragCoord",
	BuiltInPointCoord:              "PointCoord",
	BuiltInFace:                    "Face",
	BuiltInSampleID:                "SampleId",
	BuiltInSamplePosition:          "SamplePosition",
	BuiltInSampleMask:              "SampleMask",
	BuiltInFragDepth:               "FragDepth",
	BuiltInHelperInvocation:        "HelperInvocation",
	BuiltInNumWorkGroups:           "NumWorkGroups",
	BuiltInWorkGroupSize:           "WorkGroupSize",
	BuiltInWorkGroupID:             "WorkGroupId",
	BuiltInLocalInvocationID:       "LocalInvocationId",
	BuiltInGlobalInvocationID:      "GlobalInvocationId",
	BuiltInLocalInvocationIndex:    "LocalInvocationIndex",
	BuiltInSubGroupSize:            "SubGroupSize",
	BuiltInSubGroupInvocation:      "SubGroupInvocation",
	BuiltInSubGroupEqMask:          "SubGroupEqMask",
	BuiltInSubGroupGeMask:          "SubGroupGeMask",
	BuiltInSubGroupGtMask:          "SubGroupGtMask",
	BuiltInSubGroupLeMask:          "SubGroupLeMask",
	BuiltInSubGroupLtMask:          "SubGroupLtMask",
	BuiltInDeviceIndex:             "DeviceIndex",
	BuiltInViewIndex:               "ViewIndex",
	BuiltInViewportMaskNV:          "ViewportMaskNV",
	BuiltInSecondaryPositionNV:     "SecondaryPositionNV",
	BuiltInSecondaryViewportMaskNV: "SecondaryViewportMaskNV",
	BuiltInPositionPerViewNV:       "PositionPerViewNV",
	BuiltInViewportMaskPerViewNV:   "ViewportMaskPerViewNV",
}

func (b BuiltIn) String() string { return builtInNames[b] }

// Qualifier carries storage, precision, layout and decoration
// information. Optional layout values are nil when not given.
type Qualifier struct {
	Storage      Storage
	Precision    Precision
	MatrixLayout MatrixLayout
	Packing      Packing
	PushConstant bool

	Location             *int
	Component            *int
	Index                *int
	Binding              *int
	Set                  *int
	Offset               *int
	SpecID               *int
	InputAttachmentIndex *int
	XfbBuffer            *int
	XfbStride            *int
	XfbOffset            *int
	Stream               *int

	Interpolation Interpolation
	Centroid      bool
	Patch         bool
	Sample        bool
	Invariant     bool
	Precise       bool

	Coherent  bool
	Volatile  bool
	Restrict  bool
	ReadOnly  bool
	WriteOnly bool

	SpecConstant bool
	BuiltIn      BuiltIn
}

// IsPipeInput reports whether the qualifier names a stage input.
func (q *Qualifier) IsPipeInput() bool { return q.Storage == StorageVaryingIn }

// IsPipeOutput reports whether the qualifier names a stage output.
func (q *Qualifier) IsPipeOutput() bool { return q.Storage == StorageVaryingOut }

// IsUniformOrBuffer reports uniform and shader storage buffer storage.
func (q *Qualifier) IsUniformOrBuffer() bool {
	return q.Storage == StorageUniform || q.Storage == StorageBuffer
}

// IsParamOutput reports out and inout parameters.
func (q *Qualifier) IsParamOutput() bool {
	return q.Storage == StorageOut || q.Storage == StorageInOut
}

// IsParamInput reports in and inout parameters.
func (q *Qualifier) IsParamInput() bool {
	return q.Storage == StorageIn || q.Storage == StorageInOut
}

// IsRelaxed reports lowp and mediump precision.
func (q *Qualifier) IsRelaxed() bool {
	return q.Precision == PrecisionLow || q.Precision == PrecisionMedium
}

// HasMemoryQualifiers reports whether any memory access qualifier is set.
func (q *Qualifier) HasMemoryQualifiers() bool {
	return q.Coherent || q.Volatile || q.Restrict || q.ReadOnly || q.WriteOnly
}

// HasXfb reports whether any transform feedback layout is given.
func (q *Qualifier) HasXfb() bool {
	return q.XfbBuffer != nil || q.XfbStride != nil || q.XfbOffset != nil
}

// IsStd reports std140 or std430 packing.
func (q *Qualifier) IsStd() bool {
	return q.Packing == PackingStd140 || q.Packing == PackingStd430
}

// Int returns a pointer to v, for building qualifiers.
func Int(v int) *int { return &v }
