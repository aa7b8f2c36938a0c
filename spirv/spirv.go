// Package spirv builds SPIR-V binary modules.
//
// The Builder owns id allocation, type and constant interning, the
// function/block model and the access-chain machinery used by the lowering
// engine. Dump serializes the accumulated module to a SPIR-V word stream.
package spirv

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// SPIR-V magic number and generator word parts.
const (
	MagicNumber = 0x07230203

	// ToolID is the registered tool id placed in the high half of the
	// generator word. Zero marks an unregistered generator.
	ToolID = 0
	// GeneratorVersion is bumped when generated code changes shape.
	GeneratorVersion = 1
)

// ID is a SPIR-V result id. Zero means "no id".
type ID = uint32

// NoResult and NoType mark an absent result id or type id.
const (
	NoResult ID = 0
	NoType   ID = 0
)

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes
const (
	OpNop                                  OpCode = 0
	OpUndef                                OpCode = 1
	OpSourceContinued                      OpCode = 2
	OpSource                               OpCode = 3
	OpSourceExtension                      OpCode = 4
	OpName                                 OpCode = 5
	OpMemberName                           OpCode = 6
	OpString                               OpCode = 7
	OpLine                                 OpCode = 8
	OpExtension                            OpCode = 10
	OpExtInstImport                        OpCode = 11
	OpExtInst                              OpCode = 12
	OpMemoryModel                          OpCode = 14
	OpEntryPoint                           OpCode = 15
	OpExecutionMode                        OpCode = 16
	OpCapability                           OpCode = 17
	OpTypeVoid                             OpCode = 19
	OpTypeBool                             OpCode = 20
	OpTypeInt                              OpCode = 21
	OpTypeFloat                            OpCode = 22
	OpTypeVector                           OpCode = 23
	OpTypeMatrix                           OpCode = 24
	OpTypeImage                            OpCode = 25
	OpTypeSampler                          OpCode = 26
	OpTypeSampledImage                     OpCode = 27
	OpTypeArray                            OpCode = 28
	OpTypeRuntimeArray                     OpCode = 29
	OpTypeStruct                           OpCode = 30
	OpTypeOpaque                           OpCode = 31
	OpTypePointer                          OpCode = 32
	OpTypeFunction                         OpCode = 33
	OpConstantTrue                         OpCode = 41
	OpConstantFalse                        OpCode = 42
	OpConstant                             OpCode = 43
	OpConstantComposite                    OpCode = 44
	OpConstantSampler                      OpCode = 45
	OpConstantNull                         OpCode = 46
	OpSpecConstantTrue                     OpCode = 48
	OpSpecConstantFalse                    OpCode = 49
	OpSpecConstant                         OpCode = 50
	OpSpecConstantComposite                OpCode = 51
	OpSpecConstantOp                       OpCode = 52
	OpFunction                             OpCode = 54
	OpFunctionParameter                    OpCode = 55
	OpFunctionEnd                          OpCode = 56
	OpFunctionCall                         OpCode = 57
	OpVariable                             OpCode = 59
	OpImageTexelPointer                    OpCode = 60
	OpLoad                                 OpCode = 61
	OpStore                                OpCode = 62
	OpCopyMemory                           OpCode = 63
	OpAccessChain                          OpCode = 65
	OpInBoundsAccessChain                  OpCode = 66
	OpArrayLength                          OpCode = 68
	OpDecorate                             OpCode = 71
	OpMemberDecorate                       OpCode = 72
	OpVectorExtractDynamic                 OpCode = 77
	OpVectorInsertDynamic                  OpCode = 78
	OpVectorShuffle                        OpCode = 79
	OpCompositeConstruct                   OpCode = 80
	OpCompositeExtract                     OpCode = 81
	OpCompositeInsert                      OpCode = 82
	OpCopyObject                           OpCode = 83
	OpTranspose                            OpCode = 84
	OpSampledImage                         OpCode = 86
	OpImageSampleImplicitLod               OpCode = 87
	OpImageSampleExplicitLod               OpCode = 88
	OpImageSampleDrefImplicitLod           OpCode = 89
	OpImageSampleDrefExplicitLod           OpCode = 90
	OpImageSampleProjImplicitLod           OpCode = 91
	OpImageSampleProjExplicitLod           OpCode = 92
	OpImageSampleProjDrefImplicitLod       OpCode = 93
	OpImageSampleProjDrefExplicitLod       OpCode = 94
	OpImageFetch                           OpCode = 95
	OpImageGather                          OpCode = 96
	OpImageDrefGather                      OpCode = 97
	OpImageRead                            OpCode = 98
	OpImageWrite                           OpCode = 99
	OpImage                                OpCode = 100
	OpImageQueryFormat                     OpCode = 101
	OpImageQueryOrder                      OpCode = 102
	OpImageQuerySizeLod                    OpCode = 103
	OpImageQuerySize                       OpCode = 104
	OpImageQueryLod                        OpCode = 105
	OpImageQueryLevels                     OpCode = 106
	OpImageQuerySamples                    OpCode = 107
	OpConvertFToU                          OpCode = 109
	OpConvertFToS                          OpCode = 110
	OpConvertSToF                          OpCode = 111
	OpConvertUToF                          OpCode = 112
	OpUConvert                             OpCode = 113
	OpSConvert                             OpCode = 114
	OpFConvert                             OpCode = 115
	OpQuantizeToF16                        OpCode = 116
	OpBitcast                              OpCode = 124
	OpSNegate                              OpCode = 126
	OpFNegate                              OpCode = 127
	OpIAdd                                 OpCode = 128
	OpFAdd                                 OpCode = 129
	OpISub                                 OpCode = 130
	OpFSub                                 OpCode = 131
	OpIMul                                 OpCode = 132
	OpFMul                                 OpCode = 133
	OpUDiv                                 OpCode = 134
	OpSDiv                                 OpCode = 135
	OpFDiv                                 OpCode = 136
	OpUMod                                 OpCode = 137
	OpSRem                                 OpCode = 138
	OpSMod                                 OpCode = 139
	OpFRem                                 OpCode = 140
	OpFMod                                 OpCode = 141
	OpVectorTimesScalar                    OpCode = 142
	OpMatrixTimesScalar                    OpCode = 143
	OpVectorTimesMatrix                    OpCode = 144
	OpMatrixTimesVector                    OpCode = 145
	OpMatrixTimesMatrix                    OpCode = 146
	OpOuterProduct                         OpCode = 147
	OpDot                                  OpCode = 148
	OpIAddCarry                            OpCode = 149
	OpISubBorrow                           OpCode = 150
	OpUMulExtended                         OpCode = 151
	OpSMulExtended                         OpCode = 152
	OpAny                                  OpCode = 154
	OpAll                                  OpCode = 155
	OpIsNan                                OpCode = 156
	OpIsInf                                OpCode = 157
	OpIsFinite                             OpCode = 158
	OpIsNormal                             OpCode = 159
	OpSignBitSet                           OpCode = 160
	OpLogicalEqual                         OpCode = 164
	OpLogicalNotEqual                      OpCode = 165
	OpLogicalOr                            OpCode = 166
	OpLogicalAnd                           OpCode = 167
	OpLogicalNot                           OpCode = 168
	OpSelect                               OpCode = 169
	OpIEqual                               OpCode = 170
	OpINotEqual                            OpCode = 171
	OpUGreaterThan                         OpCode = 172
	OpSGreaterThan                         OpCode = 173
	OpUGreaterThanEqual                    OpCode = 174
	OpSGreaterThanEqual                    OpCode = 175
	OpULessThan                            OpCode = 176
	OpSLessThan                            OpCode = 177
	OpULessThanEqual                       OpCode = 178
	OpSLessThanEqual                       OpCode = 179
	OpFOrdEqual                            OpCode = 180
	OpFUnordEqual                          OpCode = 181
	OpFOrdNotEqual                         OpCode = 182
	OpFUnordNotEqual                       OpCode = 183
	OpFOrdLessThan                         OpCode = 184
	OpFUnordLessThan                       OpCode = 185
	OpFOrdGreaterThan                      OpCode = 186
	OpFUnordGreaterThan                    OpCode = 187
	OpFOrdLessThanEqual                    OpCode = 188
	OpFUnordLessThanEqual                  OpCode = 189
	OpFOrdGreaterThanEqual                 OpCode = 190
	OpFUnordGreaterThanEqual               OpCode = 191
	OpShiftRightLogical                    OpCode = 194
	OpShiftRightArithmetic                 OpCode = 195
	OpShiftLeftLogical                     OpCode = 196
	OpBitwiseOr                            OpCode = 197
	OpBitwiseXor                           OpCode = 198
	OpBitwiseAnd                           OpCode = 199
	OpNot                                  OpCode = 200
	OpBitFieldInsert                       OpCode = 201
	OpBitFieldSExtract                     OpCode = 202
	OpBitFieldUExtract                     OpCode = 203
	OpBitReverse                           OpCode = 204
	OpBitCount                             OpCode = 205
	OpDPdx                                 OpCode = 207
	OpDPdy                                 OpCode = 208
	OpFwidth                               OpCode = 209
	OpDPdxFine                             OpCode = 210
	OpDPdyFine                             OpCode = 211
	OpFwidthFine                           OpCode = 212
	OpDPdxCoarse                           OpCode = 213
	OpDPdyCoarse                           OpCode = 214
	OpFwidthCoarse                         OpCode = 215
	OpEmitVertex                           OpCode = 218
	OpEndPrimitive                         OpCode = 219
	OpEmitStreamVertex                     OpCode = 220
	OpEndStreamPrimitive                   OpCode = 221
	OpControlBarrier                       OpCode = 224
	OpMemoryBarrier                        OpCode = 225
	OpAtomicLoad                           OpCode = 227
	OpAtomicStore                          OpCode = 228
	OpAtomicExchange                       OpCode = 229
	OpAtomicCompareExchange                OpCode = 230
	OpAtomicCompareExchangeWeak            OpCode = 231
	OpAtomicIIncrement                     OpCode = 232
	OpAtomicIDecrement                     OpCode = 233
	OpAtomicIAdd                           OpCode = 234
	OpAtomicISub                           OpCode = 235
	OpAtomicSMin                           OpCode = 236
	OpAtomicUMin                           OpCode = 237
	OpAtomicSMax                           OpCode = 238
	OpAtomicUMax                           OpCode = 239
	OpAtomicAnd                            OpCode = 240
	OpAtomicOr                             OpCode = 241
	OpAtomicXor                            OpCode = 242
	OpPhi                                  OpCode = 245
	OpLoopMerge                            OpCode = 246
	OpSelectionMerge                       OpCode = 247
	OpLabel                                OpCode = 248
	OpBranch                               OpCode = 249
	OpBranchConditional                    OpCode = 250
	OpSwitch                               OpCode = 251
	OpKill                                 OpCode = 252
	OpReturn                               OpCode = 253
	OpReturnValue                          OpCode = 254
	OpUnreachable                          OpCode = 255
	OpImageSparseSampleImplicitLod         OpCode = 305
	OpImageSparseSampleExplicitLod         OpCode = 306
	OpImageSparseSampleDrefImplicitLod     OpCode = 307
	OpImageSparseSampleDrefExplicitLod     OpCode = 308
	OpImageSparseSampleProjImplicitLod     OpCode = 309
	OpImageSparseSampleProjExplicitLod     OpCode = 310
	OpImageSparseSampleProjDrefImplicitLod OpCode = 311
	OpImageSparseSampleProjDrefExplicitLod OpCode = 312
	OpImageSparseFetch                     OpCode = 313
	OpImageSparseGather                    OpCode = 314
	OpImageSparseDrefGather                OpCode = 315
	OpImageSparseTexelsResident            OpCode = 316
	OpNoLine                               OpCode = 317
	OpImageSparseRead                      OpCode = 320
)

// IsTerminator reports whether the opcode ends a basic block.
func (op OpCode) IsTerminator() bool {
	switch op {
	case OpBranch, OpBranchConditional, OpSwitch, OpKill, OpReturn, OpReturnValue, OpUnreachable:
		return true
	}
	return false
}

// IsConstant reports whether the opcode defines a constant or an undef.
func (op OpCode) IsConstant() bool {
	switch op {
	case OpUndef, OpConstantTrue, OpConstantFalse, OpConstant, OpConstantComposite,
		OpConstantSampler, OpConstantNull, OpSpecConstantTrue, OpSpecConstantFalse,
		OpSpecConstant, OpSpecConstantComposite, OpSpecConstantOp:
		return true
	}
	return false
}

// IsSpecConstant reports whether the opcode defines a specialization constant.
func (op OpCode) IsSpecConstant() bool {
	switch op {
	case OpSpecConstantTrue, OpSpecConstantFalse, OpSpecConstant,
		OpSpecConstantComposite, OpSpecConstantOp:
		return true
	}
	return false
}

// Capability represents a SPIR-V capability.
type Capability uint32

// Capabilities
const (
	CapabilityMatrix                         Capability = 0
	CapabilityShader                         Capability = 1
	CapabilityGeometry                       Capability = 2
	CapabilityTessellation                   Capability = 3
	CapabilityAddresses                      Capability = 4
	CapabilityLinkage                        Capability = 5
	CapabilityKernel                         Capability = 6
	CapabilityFloat16                        Capability = 9
	CapabilityFloat64                        Capability = 10
	CapabilityInt64                          Capability = 11
	CapabilityInt64Atomics                   Capability = 12
	CapabilityAtomicStorage                  Capability = 21
	CapabilityInt16                          Capability = 22
	CapabilityTessellationPointSize          Capability = 23
	CapabilityGeometryPointSize              Capability = 24
	CapabilityImageGatherExtended            Capability = 25
	CapabilityStorageImageMultisample        Capability = 27
	CapabilityClipDistance                   Capability = 32
	CapabilityCullDistance                   Capability = 33
	CapabilityImageCubeArray                 Capability = 34
	CapabilitySampleRateShading              Capability = 35
	CapabilityImageRect                      Capability = 36
	CapabilitySampledRect                    Capability = 37
	CapabilityInputAttachment                Capability = 40
	CapabilitySparseResidency                Capability = 41
	CapabilityMinLod                         Capability = 42
	CapabilitySampled1D                      Capability = 43
	CapabilityImage1D                        Capability = 44
	CapabilitySampledCubeArray               Capability = 45
	CapabilitySampledBuffer                  Capability = 46
	CapabilityImageBuffer                    Capability = 47
	CapabilityImageMSArray                   Capability = 48
	CapabilityStorageImageExtendedFormats    Capability = 49
	CapabilityImageQuery                     Capability = 50
	CapabilityDerivativeControl              Capability = 51
	CapabilityInterpolationFunction          Capability = 52
	CapabilityTransformFeedback              Capability = 53
	CapabilityGeometryStreams                Capability = 54
	CapabilityStorageImageReadWithoutFormat  Capability = 55
	CapabilityStorageImageWriteWithoutFormat Capability = 56
	CapabilityMultiViewport                  Capability = 57
	CapabilitySubgroupBallotKHR              Capability = 4423
	CapabilityDrawParameters                 Capability = 4427
	CapabilityDeviceGroup                    Capability = 4437
	CapabilityMultiView                      Capability = 4439
)

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Decorations
const (
	DecorationRelaxedPrecision     Decoration = 0
	DecorationSpecID               Decoration = 1
	DecorationBlock                Decoration = 2
	DecorationBufferBlock          Decoration = 3
	DecorationRowMajor             Decoration = 4
	DecorationColMajor             Decoration = 5
	DecorationArrayStride          Decoration = 6
	DecorationMatrixStride         Decoration = 7
	DecorationGLSLShared           Decoration = 8
	DecorationGLSLPacked           Decoration = 9
	DecorationBuiltIn              Decoration = 11
	DecorationNoPerspective        Decoration = 13
	DecorationFlat                 Decoration = 14
	DecorationPatch                Decoration = 15
	DecorationCentroid             Decoration = 16
	DecorationSample               Decoration = 17
	DecorationInvariant            Decoration = 18
	DecorationRestrict             Decoration = 19
	DecorationAliased              Decoration = 20
	DecorationVolatile             Decoration = 21
	DecorationConstant             Decoration = 22
	DecorationCoherent             Decoration = 23
	DecorationNonWritable          Decoration = 24
	DecorationNonReadable          Decoration = 25
	DecorationUniform              Decoration = 26
	DecorationStream               Decoration = 29
	DecorationLocation             Decoration = 30
	DecorationComponent            Decoration = 31
	DecorationIndex                Decoration = 32
	DecorationBinding              Decoration = 33
	DecorationDescriptorSet        Decoration = 34
	DecorationOffset               Decoration = 35
	DecorationXfbBuffer            Decoration = 36
	DecorationXfbStride            Decoration = 37
	DecorationNoContraction        Decoration = 42
	DecorationInputAttachmentIndex Decoration = 43

	// DecorationMax is the "no decoration" sentinel; decorating with it is a no-op.
	DecorationMax Decoration = 0x7fffffff
)

// BuiltIn represents a SPIR-V built-in variable tag.
type BuiltIn uint32

// Built-ins
const (
	BuiltInPosition                  BuiltIn = 0
	BuiltInPointSize                 BuiltIn = 1
	BuiltInClipDistance              BuiltIn = 3
	BuiltInCullDistance              BuiltIn = 4
	BuiltInVertexID                  BuiltIn = 5
	BuiltInInstanceID                BuiltIn = 6
	BuiltInPrimitiveID               BuiltIn = 7
	BuiltInInvocationID              BuiltIn = 8
	BuiltInLayer                     BuiltIn = 9
	BuiltInViewportIndex             BuiltIn = 10
	BuiltInTessLevelOuter            BuiltIn = 11
	BuiltInTessLevelInner            BuiltIn = 12
	BuiltInTessCoord                 BuiltIn = 13
	BuiltInPatchVertices             BuiltIn = 14
	BuiltInFragCoord                 BuiltIn = 15
	BuiltInPointCoord                BuiltIn = 16
	BuiltInFrontFacing               BuiltIn = 17
	BuiltInSampleID                  BuiltIn = 18
	BuiltInSamplePosition            BuiltIn = 19
	BuiltInSampleMask                BuiltIn = 20
	BuiltInFragDepth                 BuiltIn = 22
	BuiltInHelperInvocation          BuiltIn = 23
	BuiltInNumWorkgroups             BuiltIn = 24
	BuiltInWorkgroupSize             BuiltIn = 25
	BuiltInWorkgroupID               BuiltIn = 26
	BuiltInLocalInvocationID         BuiltIn = 27
	BuiltInGlobalInvocationID        BuiltIn = 28
	BuiltInLocalInvocationIndex      BuiltIn = 29
	BuiltInSubgroupSize              BuiltIn = 36
	BuiltInSubgroupLocalInvocationID BuiltIn = 41
	BuiltInVertexIndex               BuiltIn = 42
	BuiltInInstanceIndex             BuiltIn = 43
	BuiltInSubgroupEqMaskKHR         BuiltIn = 4416
	BuiltInSubgroupGeMaskKHR         BuiltIn = 4417
	BuiltInSubgroupGtMaskKHR         BuiltIn = 4418
	BuiltInSubgroupLeMaskKHR         BuiltIn = 4419
	BuiltInSubgroupLtMaskKHR         BuiltIn = 4420
	BuiltInBaseVertex                BuiltIn = 4424
	BuiltInBaseInstance              BuiltIn = 4425
	BuiltInDrawIndex                 BuiltIn = 4426
	BuiltInDeviceIndex               BuiltIn = 4438
	BuiltInViewIndex                 BuiltIn = 4440

	// BuiltInMax marks "not a built-in".
	BuiltInMax BuiltIn = 0x7fffffff
)

// StorageClass represents a SPIR-V storage class.
type StorageClass uint32

// Storage classes
const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// ExecutionModel represents a SPIR-V execution model.
type ExecutionModel uint32

// Execution models
const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
)

// ExecutionMode represents a SPIR-V execution mode.
type ExecutionMode uint32

// Execution modes
const (
	ExecutionModeInvocations             ExecutionMode = 0
	ExecutionModeSpacingEqual            ExecutionMode = 1
	ExecutionModeSpacingFractionalEven   ExecutionMode = 2
	ExecutionModeSpacingFractionalOdd    ExecutionMode = 3
	ExecutionModeVertexOrderCw           ExecutionMode = 4
	ExecutionModeVertexOrderCcw          ExecutionMode = 5
	ExecutionModePixelCenterInteger      ExecutionMode = 6
	ExecutionModeOriginUpperLeft         ExecutionMode = 7
	ExecutionModeOriginLowerLeft         ExecutionMode = 8
	ExecutionModeEarlyFragmentTests      ExecutionMode = 9
	ExecutionModePointMode               ExecutionMode = 10
	ExecutionModeXfb                     ExecutionMode = 11
	ExecutionModeDepthReplacing          ExecutionMode = 12
	ExecutionModeDepthGreater            ExecutionMode = 14
	ExecutionModeDepthLess               ExecutionMode = 15
	ExecutionModeDepthUnchanged          ExecutionMode = 16
	ExecutionModeLocalSize               ExecutionMode = 17
	ExecutionModeLocalSizeHint           ExecutionMode = 18
	ExecutionModeInputPoints             ExecutionMode = 19
	ExecutionModeInputLines              ExecutionMode = 20
	ExecutionModeInputLinesAdjacency     ExecutionMode = 21
	ExecutionModeTriangles               ExecutionMode = 22
	ExecutionModeInputTrianglesAdjacency ExecutionMode = 23
	ExecutionModeQuads                   ExecutionMode = 24
	ExecutionModeIsolines                ExecutionMode = 25
	ExecutionModeOutputVertices          ExecutionMode = 26
	ExecutionModeOutputPoints            ExecutionMode = 27
	ExecutionModeOutputLineStrip         ExecutionMode = 28
	ExecutionModeOutputTriangleStrip     ExecutionMode = 29
)

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

// Addressing models
const (
	AddressingModelLogical    AddressingModel = 0
	AddressingModelPhysical32 AddressingModel = 1
	AddressingModelPhysical64 AddressingModel = 2
)

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

// Memory models
const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
)

// SourceLanguage identifies the language recorded in OpSource.
type SourceLanguage uint32

// Source languages
const (
	SourceLanguageUnknown SourceLanguage = 0
	SourceLanguageESSL    SourceLanguage = 1
	SourceLanguageGLSL    SourceLanguage = 2
	SourceLanguageOpenCLC SourceLanguage = 3
	SourceLanguageHLSL    SourceLanguage = 5
)

// Dim is the dimensionality of an image type.
type Dim uint32

// Image dimensionalities
const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
)

// ImageFormat is the texel format of a storage image.
type ImageFormat uint32

// Image formats
const (
	ImageFormatUnknown      ImageFormat = 0
	ImageFormatRgba32f      ImageFormat = 1
	ImageFormatRgba16f      ImageFormat = 2
	ImageFormatR32f         ImageFormat = 3
	ImageFormatRgba8        ImageFormat = 4
	ImageFormatRgba8Snorm   ImageFormat = 5
	ImageFormatRg32f        ImageFormat = 6
	ImageFormatRg16f        ImageFormat = 7
	ImageFormatR11fG11fB10f ImageFormat = 8
	ImageFormatR16f         ImageFormat = 9
	ImageFormatRgba16       ImageFormat = 10
	ImageFormatRgb10A2      ImageFormat = 11
	ImageFormatRg16         ImageFormat = 12
	ImageFormatRg8          ImageFormat = 13
	ImageFormatR16          ImageFormat = 14
	ImageFormatR8           ImageFormat = 15
	ImageFormatRgba16Snorm  ImageFormat = 16
	ImageFormatRg16Snorm    ImageFormat = 17
	ImageFormatRg8Snorm     ImageFormat = 18
	ImageFormatR16Snorm     ImageFormat = 19
	ImageFormatR8Snorm      ImageFormat = 20
	ImageFormatRgba32i      ImageFormat = 21
	ImageFormatRgba16i      ImageFormat = 22
	ImageFormatRgba8i       ImageFormat = 23
	ImageFormatR32i         ImageFormat = 24
	ImageFormatRg32i        ImageFormat = 25
	ImageFormatRg16i        ImageFormat = 26
	ImageFormatRg8i         ImageFormat = 27
	ImageFormatR16i         ImageFormat = 28
	ImageFormatR8i          ImageFormat = 29
	ImageFormatRgba32ui     ImageFormat = 30
	ImageFormatRgba16ui     ImageFormat = 31
	ImageFormatRgba8ui      ImageFormat = 32
	ImageFormatR32ui        ImageFormat = 33
	ImageFormatRgb10a2ui    ImageFormat = 34
	ImageFormatRg32ui       ImageFormat = 35
	ImageFormatRg16ui       ImageFormat = 36
	ImageFormatRg8ui        ImageFormat = 37
	ImageFormatR16ui        ImageFormat = 38
	ImageFormatR8ui         ImageFormat = 39
)

// ImageOperands is the image operand mask.
type ImageOperands uint32

// Image operand bits
const (
	ImageOperandsNone         ImageOperands = 0
	ImageOperandsBias         ImageOperands = 0x1
	ImageOperandsLod          ImageOperands = 0x2
	ImageOperandsGrad         ImageOperands = 0x4
	ImageOperandsConstOffset  ImageOperands = 0x8
	ImageOperandsOffset       ImageOperands = 0x10
	ImageOperandsConstOffsets ImageOperands = 0x20
	ImageOperandsSample       ImageOperands = 0x40
	ImageOperandsMinLod       ImageOperands = 0x80
)

// SelectionControl is the OpSelectionMerge control mask.
type SelectionControl uint32

// Selection controls
const (
	SelectionControlNone        SelectionControl = 0
	SelectionControlFlatten     SelectionControl = 1
	SelectionControlDontFlatten SelectionControl = 2
)

// LoopControl is the OpLoopMerge control mask.
type LoopControl uint32

// Loop controls
const (
	LoopControlNone       LoopControl = 0
	LoopControlUnroll     LoopControl = 1
	LoopControlDontUnroll LoopControl = 2
)

// FunctionControl is the OpFunction control mask.
type FunctionControl uint32

// Function controls
const (
	FunctionControlNone       FunctionControl = 0
	FunctionControlInline     FunctionControl = 1
	FunctionControlDontInline FunctionControl = 2
	FunctionControlPure       FunctionControl = 4
	FunctionControlConst      FunctionControl = 8
)

// Scope is an execution or memory scope.
type Scope uint32

// Scopes
const (
	ScopeCrossDevice Scope = 0
	ScopeDevice      Scope = 1
	ScopeWorkgroup   Scope = 2
	ScopeSubgroup    Scope = 3
	ScopeInvocation  Scope = 4
)

// MemorySemantics is the memory semantics mask.
type MemorySemantics uint32

// Memory semantics bits
const (
	MemorySemanticsNone                   MemorySemantics = 0
	MemorySemanticsAcquire                MemorySemantics = 0x2
	MemorySemanticsRelease                MemorySemantics = 0x4
	MemorySemanticsAcquireRelease         MemorySemantics = 0x8
	MemorySemanticsSequentiallyConsistent MemorySemantics = 0x10
	MemorySemanticsUniformMemory          MemorySemantics = 0x40
	MemorySemanticsSubgroupMemory         MemorySemantics = 0x80
	MemorySemanticsWorkgroupMemory        MemorySemantics = 0x100
	MemorySemanticsCrossWorkgroupMemory   MemorySemantics = 0x200
	MemorySemanticsAtomicCounterMemory    MemorySemantics = 0x400
	MemorySemanticsImageMemory            MemorySemantics = 0x800

	MemorySemanticsAllMemory = MemorySemanticsUniformMemory | MemorySemanticsWorkgroupMemory |
		MemorySemanticsAtomicCounterMemory | MemorySemanticsImageMemory
)

// Extensions the builder may declare.
const (
	ExtStorageBufferStorageClass = "SPV_KHR_storage_buffer_storage_class"
	ExtShaderDrawParameters      = "SPV_KHR_shader_draw_parameters"
	ExtShaderBallot              = "SPV_KHR_shader_ballot"
	ExtDeviceGroup               = "SPV_KHR_device_group"
	ExtMultiview                 = "SPV_KHR_multiview"
)
