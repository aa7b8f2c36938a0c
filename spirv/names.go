package spirv

import "fmt"

var opcodeNames = map[OpCode]string{
	OpNop:                                  "OpNop",
	OpUndef:                                "OpUndef",
	OpSourceContinued:                      "OpSourceContinued",
	OpSource:                               "OpSource",
	OpSourceExtension:                      "OpSourceExtension",
	OpName:                                 "OpName",
	OpMemberName:                           "OpMemberName",
	OpString:                               "OpString",
	OpLine:                                 "OpLine",
	OpExtension:                            "OpExtension",
	OpExtInstImport:                        "OpExtInstImport",
	OpExtInst:                              "OpExtInst",
	OpMemoryModel:                          "OpMemoryModel",
	OpEntryPoint:                           "OpEntryPoint",
	OpExecutionMode:                        "OpExecutionMode",
	OpCapability:                           "OpCapability",
	OpTypeVoid:                             "OpTypeVoid",
	OpTypeBool:                             "OpTypeBool",
	OpTypeInt:                              "OpTypeInt",
	OpTypeFloat:                            "OpTypeFloat",
	OpTypeVector:                           "OpTypeVector",
	OpTypeMatrix:                           "OpTypeMatrix",
	OpTypeImage:                            "OpTypeImage",
	OpTypeSampler:                          "OpTypeSampler",
	OpTypeSampledImage:                     "OpTypeSampledImage",
	OpTypeArray:                            "OpTypeArray",
	OpTypeRuntimeArray:                     "OpTypeRuntimeArray",
	OpTypeStruct:                           "OpTypeStruct",
	OpTypeOpaque:                           "OpTypeOpaque",
	OpTypePointer:                          "OpTypePointer",
	OpTypeFunction:                         "OpTypeFunction",
	OpConstantTrue:                         "OpConstantTrue",
	OpConstantFalse:                        "OpConstantFalse",
	OpConstant:                             "OpConstant",
	OpConstantComposite:                    "OpConstantComposite",
	OpConstantSampler:                      "OpConstantSampler",
	OpConstantNull:                         "OpConstantNull",
	OpSpecConstantTrue:                     "OpSpecConstantTrue",
	OpSpecConstantFalse:                    "OpSpecConstantFalse",
	OpSpecConstant:                         "OpSpecConstant",
	OpSpecConstantComposite:                "OpSpecConstantComposite",
	OpSpecConstantOp:                       "OpSpecConstantOp",
	OpFunction:                             "OpFunction",
	OpFunctionParameter:                    "OpFunctionParameter",
	OpFunctionEnd:                          "OpFunctionEnd",
	OpFunctionCall:                         "OpFunctionCall",
	OpVariable:                             "OpVariable",
	OpImageTexelPointer:                    "OpImageTexelPointer",
	OpLoad:                                 "OpLoad",
	OpStore:                                "OpStore",
	OpCopyMemory:                           "OpCopyMemory",
	OpAccessChain:                          "OpAccessChain",
	OpInBoundsAccessChain:                  "OpInBoundsAccessChain",
	OpArrayLength:                          "OpArrayLength",
	OpDecorate:                             "OpDecorate",
	OpMemberDecorate:                       "OpMemberDecorate",
	OpVectorExtractDynamic:                 "OpVectorExtractDynamic",
	OpVectorInsertDynamic:                  "OpVectorInsertDynamic",
	OpVectorShuffle:                        "OpVectorShuffle",
	OpCompositeConstruct:                   "OpCompositeConstruct",
	OpCompositeExtract:                     "OpCompositeExtract",
	OpCompositeInsert:                      "OpCompositeInsert",
	OpCopyObject:                           "OpCopyObject",
	OpTranspose:                            "OpTranspose",
	OpSampledImage:                         "OpSampledImage",
	OpImageSampleImplicitLod:               "OpImageSampleImplicitLod",
	OpImageSampleExplicitLod:               "OpImageSampleExplicitLod",
	OpImageSampleDrefImplicitLod:           "OpImageSampleDrefImplicitLod",
	OpImageSampleDrefExplicitLod:           "OpImageSampleDrefExplicitLod",
	OpImageSampleProjImplicitLod:           "OpImageSampleProjImplicitLod",
	OpImageSampleProjExplicitLod:           "OpImageSampleProjExplicitLod",
	OpImageSampleProjDrefImplicitLod:       "OpImageSampleProjDrefImplicitLod",
	OpImageSampleProjDrefExplicitLod:       "OpImageSampleProjDrefExplicitLod",
	OpImageFetch:                           "OpImageFetch",
	OpImageGather:                          "OpImageGather",
	OpImageDrefGather:                      "OpImageDrefGather",
	OpImageRead:                            "OpImageRead",
	OpImageWrite:                           "OpImageWrite",
	OpImage:                                "OpImage",
	OpImageQueryFormat:                     "OpImageQueryFormat",
	OpImageQueryOrder:                      "OpImageQueryOrder",
	OpImageQuerySizeLod:                    "OpImageQuerySizeLod",
	OpImageQuerySize:                       "OpImageQuerySize",
	OpImageQueryLod:                        "OpImageQueryLod",
	OpImageQueryLevels:                     "OpImageQueryLevels",
	OpImageQuerySamples:                    "OpImageQuerySamples",
	OpConvertFToU:                          "OpConvertFToU",
	OpConvertFToS:                          "OpConvertFToS",
	OpConvertSToF:                          "OpConvertSToF",
	OpConvertUToF:                          "OpConvertUToF",
	OpUConvert:                             "OpUConvert",
	OpSConvert:                             "OpSConvert",
	OpFConvert:                             "OpFConvert",
	OpQuantizeToF16:                        "OpQuantizeToF16",
	OpBitcast:                              "OpBitcast",
	OpSNegate:                              "OpSNegate",
	OpFNegate:                              "OpFNegate",
	OpIAdd:                                 "OpIAdd",
	OpFAdd:                                 "OpFAdd",
	OpISub:                                 "OpISub",
	OpFSub:                                 "OpFSub",
	OpIMul:                                 "OpIMul",
	OpFMul:                                 "OpFMul",
	OpUDiv:                                 "OpUDiv",
	OpSDiv:                                 "OpSDiv",
	OpFDiv:                                 "OpFDiv",
	OpUMod:                                 "OpUMod",
	OpSRem:                                 "OpSRem",
	OpSMod:                                 "OpSMod",
	OpFRem:                                 "OpFRem",
	OpFMod:                                 "OpFMod",
	OpVectorTimesScalar:                    "OpVectorTimesScalar",
	OpMatrixTimesScalar:                    "OpMatrixTimesScalar",
	OpVectorTimesMatrix:                    "OpVectorTimesMatrix",
	OpMatrixTimesVector:                    "OpMatrixTimesVector",
	OpMatrixTimesMatrix:                    "OpMatrixTimesMatrix",
	OpOuterProduct:                         "OpOuterProduct",
	OpDot:                                  "OpDot",
	OpIAddCarry:                            "OpIAddCarry",
	OpISubBorrow:                           "OpISubBorrow",
	OpUMulExtended:                         "OpUMulExtended",
	OpSMulExtended:                         "OpSMulExtended",
	OpAny:                                  "OpAny",
	OpAll:                                  "OpAll",
	OpIsNan:                                "OpIsNan",
	OpIsInf:                                "OpIsInf",
	OpIsFinite:                             "OpIsFinite",
	OpIsNormal:                             "OpIsNormal",
	OpSignBitSet:                           "OpSignBitSet",
	OpLogicalEqual:                         "OpLogicalEqual",
	OpLogicalNotEqual:                      "OpLogicalNotEqual",
	OpLogicalOr:                            "OpLogicalOr",
	OpLogicalAnd:                           "OpLogicalAnd",
	OpLogicalNot:                           "OpLogicalNot",
	OpSelect:                               "OpSelect",
	OpIEqual:                               "OpIEqual",
	OpINotEqual:                            "OpINotEqual",
	OpUGreaterThan:                         "OpUGreaterThan",
	OpSGreaterThan:                         "OpSGreaterThan",
	OpUGreaterThanEqual:                    "OpUGreaterThanEqual",
	OpSGreaterThanEqual:                    "OpSGreaterThanEqual",
	OpULessThan:                            "OpULessThan",
	OpSLessThan:                            "OpSLessThan",
	OpULessThanEqual:                       "OpULessThanEqual",
	OpSLessThanEqual:                       "OpSLessThanEqual",
	OpFOrdEqual:                            "OpFOrdEqual",
	OpFUnordEqual:                          "OpFUnordEqual",
	OpFOrdNotEqual:                         "OpFOrdNotEqual",
	OpFUnordNotEqual:                       "OpFUnordNotEqual",
	OpFOrdLessThan:                         "OpFOrdLessThan",
	OpFUnordLessThan:                       "OpFUnordLessThan",
	OpFOrdGreaterThan:                      "OpFOrdGreaterThan",
	OpFUnordGreaterThan:                    "OpFUnordGreaterThan",
	OpFOrdLessThanEqual:                    "OpFOrdLessThanEqual",
	OpFUnordLessThanEqual:                  "OpFUnordLessThanEqual",
	OpFOrdGreaterThanEqual:                 "OpFOrdGreaterThanEqual",
	OpFUnordGreaterThanEqual:               "OpFUnordGreaterThanEqual",
	OpShiftRightLogical:                    "OpShiftRightLogical",
	OpShiftRightArithmetic:                 "OpShiftRightArithmetic",
	OpShiftLeftLogical:                     "OpShiftLeftLogical",
	OpBitwiseOr:                            "OpBitwiseOr",
	OpBitwiseXor:                           "OpBitwiseXor",
	OpBitwiseAnd:                           "OpBitwiseAnd",
	OpNot:                                  "OpNot",
	OpBitFieldInsert:                       "OpBitFieldInsert",
	OpBitFieldSExtract:                     "OpBitFieldSExtract",
	OpBitFieldUExtract:                     "OpBitFieldUExtract",
	OpBitReverse:                           "OpBitReverse",
	OpBitCount:                             "OpBitCount",
	OpDPdx:                                 "OpDPdx",
	OpDPdy:                                 "OpDPdy",
	OpFwidth:                               "OpFwidth",
	OpDPdxFine:                             "OpDPdxFine",
	OpDPdyFine:                             "OpDPdyFine",
	OpFwidthFine:                           "OpFwidthFine",
	OpDPdxCoarse:                           "OpDPdxCoarse",
	OpDPdyCoarse:                           "OpDPdyCoarse",
	OpFwidthCoarse:                         "OpFwidthCoarse",
	OpEmitVertex:                           "OpEmitVertex",
	OpEndPrimitive:                         "OpEndPrimitive",
	OpEmitStreamVertex:                     "OpEmitStreamVertex",
	OpEndStreamPrimitive:                   "OpEndStreamPrimitive",
	OpControlBarrier:                       "OpControlBarrier",
	OpMemoryBarrier:                        "OpMemoryBarrier",
	OpAtomicLoad:                           "OpAtomicLoad",
	OpAtomicStore:                          "OpAtomicStore",
	OpAtomicExchange:                       "OpAtomicExchange",
	OpAtomicCompareExchange:                "OpAtomicCompareExchange",
	OpAtomicCompareExchangeWeak:            "OpAtomicCompareExchangeWeak",
	OpAtomicIIncrement:                     "OpAtomicIIncrement",
	OpAtomicIDecrement:                     "OpAtomicIDecrement",
	OpAtomicIAdd:                           "OpAtomicIAdd",
	OpAtomicISub:                           "OpAtomicISub",
	OpAtomicSMin:                           "OpAtomicSMin",
	OpAtomicUMin:                           "OpAtomicUMin",
	OpAtomicSMax:                           "OpAtomicSMax",
	OpAtomicUMax:                           "OpAtomicUMax",
	OpAtomicAnd:                            "OpAtomicAnd",
	OpAtomicOr:                             "OpAtomicOr",
	OpAtomicXor:                            "OpAtomicXor",
	OpPhi:                                  "OpPhi",
	OpLoopMerge:                            "OpLoopMerge",
	OpSelectionMerge:                       "OpSelectionMerge",
	OpLabel:                                "OpLabel",
	OpBranch:                               "OpBranch",
	OpBranchConditional:                    "OpBranchConditional",
	OpSwitch:                               "OpSwitch",
	OpKill:                                 "OpKill",
	OpReturn:                               "OpReturn",
	OpReturnValue:                          "OpReturnValue",
	OpUnreachable:                          "OpUnreachable",
	OpImageSparseSampleImplicitLod:         "OpImageSparseSampleImplicitLod",
	OpImageSparseSampleExplicitLod:         "OpImageSparseSampleExplicitLod",
	OpImageSparseSampleDrefImplicitLod:     "OpImageSparseSampleDrefImplicitLod",
	OpImageSparseSampleDrefExplicitLod:     "OpImageSparseSampleDrefExplicitLod",
	OpImageSparseSampleProjImplicitLod:     "OpImageSparseSampleProjImplicitLod",
	OpImageSparseSampleProjExplicitLod:     "OpImageSparseSampleProjExplicitLod",
	OpImageSparseSampleProjDrefImplicitLod: "OpImageSparseSampleProjDrefImplicitLod",
	OpImageSparseSampleProjDrefExplicitLod: "OpImageSparseSampleProjDrefExplicitLod",
	OpImageSparseFetch:                     "OpImageSparseFetch",
	OpImageSparseGather:                    "OpImageSparseGather",
	OpImageSparseDrefGather:                "OpImageSparseDrefGather",
	OpImageSparseTexelsResident:            "OpImageSparseTexelsResident",
	OpNoLine:                               "OpNoLine",
	OpImageSparseRead:                      "OpImageSparseRead",
}

var capabilityNames = map[Capability]string{
	CapabilityMatrix:                         "Matrix",
	CapabilityShader:                         "Shader",
	CapabilityGeometry:                       "Geometry",
	CapabilityTessellation:                   "Tessellation",
	CapabilityAddresses:                      "Addresses",
	CapabilityLinkage:                        "Linkage",
	CapabilityKernel:                         "Kernel",
	CapabilityFloat16:                        "Float16",
	CapabilityFloat64:                        "Float64",
	CapabilityInt64:                          "Int64",
	CapabilityInt64Atomics:                   "Int64Atomics",
	CapabilityAtomicStorage:                  "AtomicStorage",
	CapabilityInt16:                          "Int16",
	CapabilityTessellationPointSize:          "TessellationPointSize",
	CapabilityGeometryPointSize:              "GeometryPointSize",
	CapabilityImageGatherExtended:            "ImageGatherExtended",
	CapabilityStorageImageMultisample:        "StorageImageMultisample",
	CapabilityClipDistance:                   "ClipDistance",
	CapabilityCullDistance:                   "CullDistance",
	CapabilityImageCubeArray:                 "ImageCubeArray",
	CapabilitySampleRateShading:              "SampleRateShading",
	CapabilityImageRect:                      "ImageRect",
	CapabilitySampledRect:                    "SampledRect",
	CapabilityInputAttachment:                "InputAttachment",
	CapabilitySparseResidency:                "SparseResidency",
	CapabilityMinLod:                         "MinLod",
	CapabilitySampled1D:                      "Sampled1D",
	CapabilityImage1D:                        "Image1D",
	CapabilitySampledCubeArray:               "SampledCubeArray",
	CapabilitySampledBuffer:                  "SampledBuffer",
	CapabilityImageBuffer:                    "ImageBuffer",
	CapabilityImageMSArray:                   "ImageMSArray",
	CapabilityStorageImageExtendedFormats:    "StorageImageExtendedFormats",
	CapabilityImageQuery:                     "ImageQuery",
	CapabilityDerivativeControl:              "DerivativeControl",
	CapabilityInterpolationFunction:          "InterpolationFunction",
	CapabilityTransformFeedback:              "TransformFeedback",
	CapabilityGeometryStreams:                "GeometryStreams",
	CapabilityStorageImageReadWithoutFormat:  "StorageImageReadWithoutFormat",
	CapabilityStorageImageWriteWithoutFormat: "StorageImageWriteWithoutFormat",
	CapabilityMultiViewport:                  "MultiViewport",
	CapabilitySubgroupBallotKHR:              "SubgroupBallotKHR",
	CapabilityDrawParameters:                 "DrawParameters",
	CapabilityDeviceGroup:                    "DeviceGroup",
	CapabilityMultiView:                      "MultiView",
}

var decorationNames = map[Decoration]string{
	DecorationRelaxedPrecision:     "RelaxedPrecision",
	DecorationSpecID:               "SpecID",
	DecorationBlock:                "Block",
	DecorationBufferBlock:          "BufferBlock",
	DecorationRowMajor:             "RowMajor",
	DecorationColMajor:             "ColMajor",
	DecorationArrayStride:          "ArrayStride",
	DecorationMatrixStride:         "MatrixStride",
	DecorationGLSLShared:           "GLSLShared",
	DecorationGLSLPacked:           "GLSLPacked",
	DecorationBuiltIn:              "BuiltIn",
	DecorationNoPerspective:        "NoPerspective",
	DecorationFlat:                 "Flat",
	DecorationPatch:                "Patch",
	DecorationCentroid:             "Centroid",
	DecorationSample:               "Sample",
	DecorationInvariant:            "Invariant",
	DecorationRestrict:             "Restrict",
	DecorationAliased:              "Aliased",
	DecorationVolatile:             "Volatile",
	DecorationConstant:             "Constant",
	DecorationCoherent:             "Coherent",
	DecorationNonWritable:          "NonWritable",
	DecorationNonReadable:          "NonReadable",
	DecorationUniform:              "Uniform",
	DecorationStream:               "Stream",
	DecorationLocation:             "Location",
	DecorationComponent:            "Component",
	DecorationIndex:                "Index",
	DecorationBinding:              "Binding",
	DecorationDescriptorSet:        "DescriptorSet",
	DecorationOffset:               "Offset",
	DecorationXfbBuffer:            "XfbBuffer",
	DecorationXfbStride:            "XfbStride",
	DecorationNoContraction:        "NoContraction",
	DecorationInputAttachmentIndex: "InputAttachmentIndex",
}

var builtInNames = map[BuiltIn]string{
	BuiltInPosition:                  "Position",
	BuiltInPointSize:                 "PointSize",
	BuiltInClipDistance:              "ClipDistance",
	BuiltInCullDistance:              "CullDistance",
	BuiltInVertexID:                  "VertexID",
	BuiltInInstanceID:                "InstanceID",
	BuiltInPrimitiveID:               "PrimitiveID",
	BuiltInInvocationID:              "InvocationID",
	BuiltInLayer:                     "Layer",
	BuiltInViewportIndex:             "ViewportIndex",
	BuiltInTessLevelOuter:            "TessLevelOuter",
	BuiltInTessLevelInner:            "TessLevelInner",
	BuiltInTessCoord:                 "TessCoord",
	BuiltInPatchVertices:             "PatchVertices",
	BuiltInFragCoord:                 "FragCoord",
	BuiltInPointCoord:                "PointCoord",
	BuiltInFrontFacing:               "FrontFacing",
	BuiltInSampleID:                  "SampleID",
	BuiltInSamplePosition:            "SamplePosition",
	BuiltInSampleMask:                "SampleMask",
	BuiltInFragDepth:                 "FragDepth",
	BuiltInHelperInvocation:          "HelperInvocation",
	BuiltInNumWorkgroups:             "NumWorkgroups",
	BuiltInWorkgroupSize:             "WorkgroupSize",
	BuiltInWorkgroupID:               "WorkgroupID",
	BuiltInLocalInvocationID:         "LocalInvocationID",
	BuiltInGlobalInvocationID:        "GlobalInvocationID",
	BuiltInLocalInvocationIndex:      "LocalInvocationIndex",
	BuiltInSubgroupSize:              "SubgroupSize",
	BuiltInSubgroupLocalInvocationID: "SubgroupLocalInvocationID",
	BuiltInVertexIndex:               "VertexIndex",
	BuiltInInstanceIndex:             "InstanceIndex",
	BuiltInSubgroupEqMaskKHR:         "SubgroupEqMaskKHR",
	BuiltInSubgroupGeMaskKHR:         "SubgroupGeMaskKHR",
	BuiltInSubgroupGtMaskKHR:         "SubgroupGtMaskKHR",
	BuiltInSubgroupLeMaskKHR:         "SubgroupLeMaskKHR",
	BuiltInSubgroupLtMaskKHR:         "SubgroupLtMaskKHR",
	BuiltInBaseVertex:                "BaseVertex",
	BuiltInBaseInstance:              "BaseInstance",
	BuiltInDrawIndex:                 "DrawIndex",
	BuiltInDeviceIndex:               "DeviceIndex",
	BuiltInViewIndex:                 "ViewIndex",
}

var storageClassNames = map[StorageClass]string{
	StorageClassUniformConstant: "UniformConstant",
	StorageClassInput:           "Input",
	StorageClassUniform:         "Uniform",
	StorageClassOutput:          "Output",
	StorageClassWorkgroup:       "Workgroup",
	StorageClassCrossWorkgroup:  "CrossWorkgroup",
	StorageClassPrivate:         "Private",
	StorageClassFunction:        "Function",
	StorageClassGeneric:         "Generic",
	StorageClassPushConstant:    "PushConstant",
	StorageClassAtomicCounter:   "AtomicCounter",
	StorageClassImage:           "Image",
	StorageClassStorageBuffer:   "StorageBuffer",
}

var executionModelNames = map[ExecutionModel]string{
	ExecutionModelVertex:                 "Vertex",
	ExecutionModelTessellationControl:    "TessellationControl",
	ExecutionModelTessellationEvaluation: "TessellationEvaluation",
	ExecutionModelGeometry:               "Geometry",
	ExecutionModelFragment:               "Fragment",
	ExecutionModelGLCompute:              "GLCompute",
	ExecutionModelKernel:                 "Kernel",
}

var executionModeNames = map[ExecutionMode]string{
	ExecutionModeInvocations:             "Invocations",
	ExecutionModeSpacingEqual:            "SpacingEqual",
	ExecutionModeSpacingFractionalEven:   "SpacingFractionalEven",
	ExecutionModeSpacingFractionalOdd:    "SpacingFractionalOdd",
	ExecutionModeVertexOrderCw:           "VertexOrderCw",
	ExecutionModeVertexOrderCcw:          "VertexOrderCcw",
	ExecutionModePixelCenterInteger:      "PixelCenterInteger",
	ExecutionModeOriginUpperLeft:         "OriginUpperLeft",
	ExecutionModeOriginLowerLeft:         "OriginLowerLeft",
	ExecutionModeEarlyFragmentTests:      "EarlyFragmentTests",
	ExecutionModePointMode:               "PointMode",
	ExecutionModeXfb:                     "Xfb",
	ExecutionModeDepthReplacing:          "DepthReplacing",
	ExecutionModeDepthGreater:            "DepthGreater",
	ExecutionModeDepthLess:               "DepthLess",
	ExecutionModeDepthUnchanged:          "DepthUnchanged",
	ExecutionModeLocalSize:               "LocalSize",
	ExecutionModeLocalSizeHint:           "LocalSizeHint",
	ExecutionModeInputPoints:             "InputPoints",
	ExecutionModeInputLines:              "InputLines",
	ExecutionModeInputLinesAdjacency:     "InputLinesAdjacency",
	ExecutionModeTriangles:               "Triangles",
	ExecutionModeInputTrianglesAdjacency: "InputTrianglesAdjacency",
	ExecutionModeQuads:                   "Quads",
	ExecutionModeIsolines:                "Isolines",
	ExecutionModeOutputVertices:          "OutputVertices",
	ExecutionModeOutputPoints:            "OutputPoints",
	ExecutionModeOutputLineStrip:         "OutputLineStrip",
	ExecutionModeOutputTriangleStrip:     "OutputTriangleStrip",
}

var addressingModelNames = map[AddressingModel]string{
	AddressingModelLogical:    "Logical",
	AddressingModelPhysical32: "Physical32",
	AddressingModelPhysical64: "Physical64",
}

var memoryModelNames = map[MemoryModel]string{
	MemoryModelSimple:  "Simple",
	MemoryModelGLSL450: "GLSL450",
	MemoryModelOpenCL:  "OpenCL",
}

var sourceLanguageNames = map[SourceLanguage]string{
	SourceLanguageUnknown: "Unknown",
	SourceLanguageESSL:    "ESSL",
	SourceLanguageGLSL:    "GLSL",
	SourceLanguageOpenCLC: "OpenCLC",
	SourceLanguageHLSL:    "HLSL",
}

var dimNames = map[Dim]string{
	Dim1D:          "1D",
	Dim2D:          "2D",
	Dim3D:          "3D",
	DimCube:        "Cube",
	DimRect:        "Rect",
	DimBuffer:      "Buffer",
	DimSubpassData: "SubpassData",
}

var imageFormatNames = map[ImageFormat]string{
	ImageFormatUnknown:      "Unknown",
	ImageFormatRgba32f:      "Rgba32f",
	ImageFormatRgba16f:      "Rgba16f",
	ImageFormatR32f:         "R32f",
	ImageFormatRgba8:        "Rgba8",
	ImageFormatRgba8Snorm:   "Rgba8Snorm",
	ImageFormatRg32f:        "Rg32f",
	ImageFormatRg16f:        "Rg16f",
	ImageFormatR11fG11fB10f: "R11fG11fB10f",
	ImageFormatR16f:         "R16f",
	ImageFormatRgba16:       "Rgba16",
	ImageFormatRgb10A2:      "Rgb10A2",
	ImageFormatRg16:         "Rg16",
	ImageFormatRg8:          "Rg8",
	ImageFormatR16:          "R16",
	ImageFormatR8:           "R8",
	ImageFormatRgba16Snorm:  "Rgba16Snorm",
	ImageFormatRg16Snorm:    "Rg16Snorm",
	ImageFormatRg8Snorm:     "Rg8Snorm",
	ImageFormatR16Snorm:     "R16Snorm",
	ImageFormatR8Snorm:      "R8Snorm",
	ImageFormatRgba32i:      "Rgba32i",
	ImageFormatRgba16i:      "Rgba16i",
	ImageFormatRgba8i:       "Rgba8i",
	ImageFormatR32i:         "R32i",
	ImageFormatRg32i:        "Rg32i",
	ImageFormatRg16i:        "Rg16i",
	ImageFormatRg8i:         "Rg8i",
	ImageFormatR16i:         "R16i",
	ImageFormatR8i:          "R8i",
	ImageFormatRgba32ui:     "Rgba32ui",
	ImageFormatRgba16ui:     "Rgba16ui",
	ImageFormatRgba8ui:      "Rgba8ui",
	ImageFormatR32ui:        "R32ui",
	ImageFormatRgb10a2ui:    "Rgb10a2ui",
	ImageFormatRg32ui:       "Rg32ui",
	ImageFormatRg16ui:       "Rg16ui",
	ImageFormatRg8ui:        "Rg8ui",
	ImageFormatR16ui:        "R16ui",
	ImageFormatR8ui:         "R8ui",
}

var glslstd450Names = map[GLSLstd450]string{
	GLSLstd450Round:                 "Round",
	GLSLstd450RoundEven:             "RoundEven",
	GLSLstd450Trunc:                 "Trunc",
	GLSLstd450FAbs:                  "FAbs",
	GLSLstd450SAbs:                  "SAbs",
	GLSLstd450FSign:                 "FSign",
	GLSLstd450SSign:                 "SSign",
	GLSLstd450Floor:                 "Floor",
	GLSLstd450Ceil:                  "Ceil",
	GLSLstd450Fract:                 "Fract",
	GLSLstd450Radians:               "Radians",
	GLSLstd450Degrees:               "Degrees",
	GLSLstd450Sin:                   "Sin",
	GLSLstd450Cos:                   "Cos",
	GLSLstd450Tan:                   "Tan",
	GLSLstd450Asin:                  "Asin",
	GLSLstd450Acos:                  "Acos",
	GLSLstd450Atan:                  "Atan",
	GLSLstd450Sinh:                  "Sinh",
	GLSLstd450Cosh:                  "Cosh",
	GLSLstd450Tanh:                  "Tanh",
	GLSLstd450Asinh:                 "Asinh",
	GLSLstd450Acosh:                 "Acosh",
	GLSLstd450Atanh:                 "Atanh",
	GLSLstd450Atan2:                 "Atan2",
	GLSLstd450Pow:                   "Pow",
	GLSLstd450Exp:                   "Exp",
	GLSLstd450Log:                   "Log",
	GLSLstd450Exp2:                  "Exp2",
	GLSLstd450Log2:                  "Log2",
	GLSLstd450Sqrt:                  "Sqrt",
	GLSLstd450InverseSqrt:           "InverseSqrt",
	GLSLstd450Determinant:           "Determinant",
	GLSLstd450MatrixInverse:         "MatrixInverse",
	GLSLstd450Modf:                  "Modf",
	GLSLstd450ModfStruct:            "ModfStruct",
	GLSLstd450FMin:                  "FMin",
	GLSLstd450UMin:                  "UMin",
	GLSLstd450SMin:                  "SMin",
	GLSLstd450FMax:                  "FMax",
	GLSLstd450UMax:                  "UMax",
	GLSLstd450SMax:                  "SMax",
	GLSLstd450FClamp:                "FClamp",
	GLSLstd450UClamp:                "UClamp",
	GLSLstd450SClamp:                "SClamp",
	GLSLstd450FMix:                  "FMix",
	GLSLstd450IMix:                  "IMix",
	GLSLstd450Step:                  "Step",
	GLSLstd450SmoothStep:            "SmoothStep",
	GLSLstd450Fma:                   "Fma",
	GLSLstd450Frexp:                 "Frexp",
	GLSLstd450FrexpStruct:           "FrexpStruct",
	GLSLstd450Ldexp:                 "Ldexp",
	GLSLstd450PackSnorm4x8:          "PackSnorm4x8",
	GLSLstd450PackUnorm4x8:          "PackUnorm4x8",
	GLSLstd450PackSnorm2x16:         "PackSnorm2x16",
	GLSLstd450PackUnorm2x16:         "PackUnorm2x16",
	GLSLstd450PackHalf2x16:          "PackHalf2x16",
	GLSLstd450PackDouble2x32:        "PackDouble2x32",
	GLSLstd450UnpackSnorm2x16:       "UnpackSnorm2x16",
	GLSLstd450UnpackUnorm2x16:       "UnpackUnorm2x16",
	GLSLstd450UnpackHalf2x16:        "UnpackHalf2x16",
	GLSLstd450UnpackSnorm4x8:        "UnpackSnorm4x8",
	GLSLstd450UnpackUnorm4x8:        "UnpackUnorm4x8",
	GLSLstd450UnpackDouble2x32:      "UnpackDouble2x32",
	GLSLstd450Length:                "Length",
	GLSLstd450Distance:              "Distance",
	GLSLstd450Cross:                 "Cross",
	GLSLstd450Normalize:             "Normalize",
	GLSLstd450FaceForward:           "FaceForward",
	GLSLstd450Reflect:               "Reflect",
	GLSLstd450Refract:               "Refract",
	GLSLstd450FindILsb:              "FindILsb",
	GLSLstd450FindSMsb:              "FindSMsb",
	GLSLstd450FindUMsb:              "FindUMsb",
	GLSLstd450InterpolateAtCentroid: "InterpolateAtCentroid",
	GLSLstd450InterpolateAtSample:   "InterpolateAtSample",
	GLSLstd450InterpolateAtOffset:   "InterpolateAtOffset",
	GLSLstd450NMin:                  "NMin",
	GLSLstd450NMax:                  "NMax",
	GLSLstd450NClamp:                "NClamp",
}

func enumName[T ~uint32 | ~uint16](names map[T]string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("%d", v)
}

// String returns the opcode mnemonic, or "Op<n>" when unknown.
func (op OpCode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op%d", uint16(op))
}

// CapabilityName returns the capability enumerant name.
func CapabilityName(c Capability) string { return enumName(capabilityNames, c) }

func (d Decoration) String() string      { return enumName(decorationNames, d) }
func (b BuiltIn) String() string         { return enumName(builtInNames, b) }
func (s StorageClass) String() string    { return enumName(storageClassNames, s) }
func (m ExecutionModel) String() string  { return enumName(executionModelNames, m) }
func (m ExecutionMode) String() string   { return enumName(executionModeNames, m) }
func (a AddressingModel) String() string { return enumName(addressingModelNames, a) }
func (m MemoryModel) String() string     { return enumName(memoryModelNames, m) }
func (l SourceLanguage) String() string  { return enumName(sourceLanguageNames, l) }
func (d Dim) String() string             { return enumName(dimNames, d) }
func (f ImageFormat) String() string     { return enumName(imageFormatNames, f) }
func (c Capability) String() string      { return CapabilityName(c) }
func (g GLSLstd450) String() string      { return enumName(glslstd450Names, g) }
