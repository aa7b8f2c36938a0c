package ast

import "fmt"

// Operator is the operation a Binary, Unary, Aggregate or Branch node performs.
type Operator uint16

// Operators
const (
	// Structure
	OpNull Operator = iota
	OpSequence
	OpLinkerObjects
	OpFunction
	OpParameters
	OpFunctionCall
	OpComma

	// Unary
	OpNegative
	OpLogicalNot
	OpVectorLogicalNot
	OpBitwiseNot
	OpPostIncrement
	OpPostDecrement
	OpPreIncrement
	OpPreDecrement
	OpArrayLength

	// Conversions keyed by the target type; the source comes from the operand
	OpConvToBool
	OpConvToInt
	OpConvToUint
	OpConvToInt64
	OpConvToUint64
	OpConvToFloat
	OpConvToDouble
	OpConvToFloat16

	// Binary
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpRightShift
	OpLeftShift
	OpAnd
	OpInclusiveOr
	OpExclusiveOr
	OpEqual
	OpNotEqual
	OpVectorEqual
	OpVectorNotEqual
	OpLessThan
	OpGreaterThan
	OpLessThanEqual
	OpGreaterThanEqual
	OpVectorTimesScalar
	OpVectorTimesMatrix
	OpMatrixTimesVector
	OpMatrixTimesScalar
	OpLogicalOr
	OpLogicalXor
	OpLogicalAnd
	OpIndexDirect
	OpIndexIndirect
	OpIndexDirectStruct
	OpVectorSwizzle
	OpMatrixSwizzle

	// Angle, trigonometry and exponential
	OpRadians
	OpDegrees
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpSinh
	OpCosh
	OpTanh
	OpAsinh
	OpAcosh
	OpAtanh
	OpPow
	OpExp
	OpLog
	OpExp2
	OpLog2
	OpSqrt
	OpInverseSqrt

	// Common
	OpAbs
	OpSign
	OpFloor
	OpTrunc
	OpRound
	OpRoundEven
	OpCeil
	OpFract
	OpModf
	OpMin
	OpMax
	OpClamp
	OpMix
	OpStep
	OpSmoothStep
	OpIsNan
	OpIsInf
	OpFma
	OpFrexp
	OpLdexp

	// Bit casts and packing
	OpFloatBitsToInt
	OpFloatBitsToUint
	OpIntBitsToFloat
	OpUintBitsToFloat
	OpDoubleBitsToInt64
	OpDoubleBitsToUint64
	OpInt64BitsToDouble
	OpUint64BitsToDouble
	OpPackSnorm2x16
	OpUnpackSnorm2x16
	OpPackUnorm2x16
	OpUnpackUnorm2x16
	OpPackSnorm4x8
	OpUnpackSnorm4x8
	OpPackUnorm4x8
	OpUnpackUnorm4x8
	OpPackHalf2x16
	OpUnpackHalf2x16
	OpPackDouble2x32
	OpUnpackDouble2x32
	OpPackInt2x32
	OpUnpackInt2x32
	OpPackUint2x32
	OpUnpackUint2x32

	// Geometric
	OpLength
	OpDistance
	OpDot
	OpCross
	OpNormalize
	OpFaceForward
	OpReflect
	OpRefract

	// Derivatives and interpolation
	OpDPdx
	OpDPdy
	OpFwidth
	OpDPdxFine
	OpDPdyFine
	OpFwidthFine
	OpDPdxCoarse
	OpDPdyCoarse
	OpFwidthCoarse
	OpInterpolateAtCentroid
	OpInterpolateAtSample
	OpInterpolateAtOffset

	// Matrix
	OpMatrixTimesMatrix
	OpOuterProduct
	OpDeterminant
	OpMatrixInverse
	OpTranspose

	// Geometry streams
	OpEmitVertex
	OpEndPrimitive
	OpEmitStreamVertex
	OpEndStreamPrimitive

	// Barriers
	OpBarrier
	OpMemoryBarrier
	OpMemoryBarrierAtomicCounter
	OpMemoryBarrierBuffer
	OpMemoryBarrierImage
	OpMemoryBarrierShared
	OpGroupMemoryBarrier

	// Invocation groups
	OpBallot
	OpReadInvocation
	OpReadFirstInvocation
	OpAnyInvocation
	OpAllInvocations
	OpAllInvocationsEqual

	// Vector relations
	OpAny
	OpAll

	// Integer
	OpAddCarry
	OpSubBorrow
	OpUMulExtended
	OpIMulExtended
	OpBitfieldExtract
	OpBitfieldInsert
	OpBitFieldReverse
	OpBitCount
	OpFindLSB
	OpFindMSB

	// Atomics
	OpAtomicAdd
	OpAtomicMin
	OpAtomicMax
	OpAtomicAnd
	OpAtomicOr
	OpAtomicXor
	OpAtomicExchange
	OpAtomicCompSwap
	OpAtomicCounterIncrement
	OpAtomicCounterDecrement
	OpAtomicCounter

	// Branches
	OpKill
	OpReturn
	OpBreak
	OpContinue
	OpCase
	OpDefault

	// Constructors; the node type gives the constructed shape
	OpConstruct
	OpConstructMatrix
	OpConstructStruct
	OpConstructTextureSampler

	// Assignment
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpVectorTimesMatrixAssign
	OpVectorTimesScalarAssign
	OpMatrixTimesScalarAssign
	OpMatrixTimesMatrixAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpInclusiveOrAssign
	OpExclusiveOrAssign
	OpLeftShiftAssign
	OpRightShiftAssign

	// Images
	OpImageQuerySize
	OpImageQuerySamples
	OpImageLoad
	OpImageStore
	OpImageAtomicAdd
	OpImageAtomicMin
	OpImageAtomicMax
	OpImageAtomicAnd
	OpImageAtomicOr
	OpImageAtomicXor
	OpImageAtomicExchange
	OpImageAtomicCompSwap
	OpSubpassLoad
	OpSubpassLoadMS
	OpSparseImageLoad

	// Texture queries
	OpTextureQuerySize
	OpTextureQueryLod
	OpTextureQueryLevels
	OpTextureQuerySamples

	// Texture sampling
	OpTexture
	OpTextureProj
	OpTextureLod
	OpTextureOffset
	OpTextureFetch
	OpTextureFetchOffset
	OpTextureProjOffset
	OpTextureLodOffset
	OpTextureProjLod
	OpTextureProjLodOffset
	OpTextureGrad
	OpTextureGradOffset
	OpTextureProjGrad
	OpTextureProjGradOffset
	OpTextureGather
	OpTextureGatherOffset
	OpTextureGatherOffsets
	OpTextureClamp
	OpTextureOffsetClamp
	OpTextureGradClamp
	OpTextureGradOffsetClamp

	// Sparse texture sampling
	OpSparseTexture
	OpSparseTextureLod
	OpSparseTextureOffset
	OpSparseTextureFetch
	OpSparseTextureFetchOffset
	OpSparseTextureLodOffset
	OpSparseTextureGrad
	OpSparseTextureGradOffset
	OpSparseTextureGather
	OpSparseTextureGatherOffset
	OpSparseTextureGatherOffsets
	OpSparseTexelsResident
	OpSparseTextureClamp
	OpSparseTextureOffsetClamp
	OpSparseTextureGradClamp
	OpSparseTextureGradOffsetClamp
)

var operatorNames = [...]string{
	OpNull:                         "Null",
	OpSequence:                     "Sequence",
	OpLinkerObjects:                "LinkerObjects",
	OpFunction:                     "Function",
	OpParameters:                   "Parameters",
	OpFunctionCall:                 "FunctionCall",
	OpComma:                        "Comma",
	OpNegative:                     "Negative",
	OpLogicalNot:                   "LogicalNot",
	OpVectorLogicalNot:             "VectorLogicalNot",
	OpBitwiseNot:                   "BitwiseNot",
	OpPostIncrement:                "PostIncrement",
	OpPostDecrement:                "PostDecrement",
	OpPreIncrement:                 "PreIncrement",
	OpPreDecrement:                 "PreDecrement",
	OpArrayLength:                  "ArrayLength",
	OpConvToBool:                   "ConvToBool",
	OpConvToInt:                    "ConvToInt",
	OpConvToUint:                   "ConvToUint",
	OpConvToInt64:                  "ConvToInt64",
	OpConvToUint64:                 "ConvToUint64",
	OpConvToFloat:                  "ConvToFloat",
	OpConvToDouble:                 "ConvToDouble",
	OpConvToFloat16:                "ConvToFloat16",
	OpAdd:                          "Add",
	OpSub:                          "Sub",
	OpMul:                          "Mul",
	OpDiv:                          "Div",
	OpMod:                          "Mod",
	OpRightShift:                   "RightShift",
	OpLeftShift:                    "LeftShift",
	OpAnd:                          "And",
	OpInclusiveOr:                  "InclusiveOr",
	OpExclusiveOr:                  "ExclusiveOr",
	OpEqual:                        "Equal",
	OpNotEqual:                     "NotEqual",
	OpVectorEqual:                  "VectorEqual",
	OpVectorNotEqual:               "VectorNotEqual",
	OpLessThan:                     "LessThan",
	OpGreaterThan:                  "GreaterThan",
	OpLessThanEqual:                "LessThanEqual",
	OpGreaterThanEqual:             "GreaterThanEqual",
	OpVectorTimesScalar:            "VectorTimesScalar",
	OpVectorTimesMatrix:            "VectorTimesMatrix",
	OpMatrixTimesVector:            "MatrixTimesVector",
	OpMatrixTimesScalar:            "MatrixTimesScalar",
	OpLogicalOr:                    "LogicalOr",
	OpLogicalXor:                   "LogicalXor",
	OpLogicalAnd:                   "LogicalAnd",
	OpIndexDirect:                  "IndexDirect",
	OpIndexIndirect:                "IndexIndirect",
	OpIndexDirectStruct:            "IndexDirectStruct",
	OpVectorSwizzle:                "VectorSwizzle",
	OpMatrixSwizzle:                "MatrixSwizzle",
	OpRadians:                      "Radians",
	OpDegrees:                      "Degrees",
	OpSin:                          "Sin",
	OpCos:                          "Cos",
	OpTan:                          "Tan",
	OpAsin:                         "Asin",
	OpAcos:                         "Acos",
	OpAtan:                         "Atan",
	OpSinh:                         "Sinh",
	OpCosh:                         "Cosh",
	OpTanh:                         "Tanh",
	OpAsinh:                        "Asinh",
	OpAcosh:                        "Acosh",
	OpAtanh:                        "Atanh",
	OpPow:                          "Pow",
	OpExp:                          "Exp",
	OpLog:                          "Log",
	OpExp2:                         "Exp2",
	OpLog2:                         "Log2",
	OpSqrt:                         "Sqrt",
	OpInverseSqrt:                  "InverseSqrt",
	OpAbs:                          "Abs",
	OpSign:                         "Sign",
	OpFloor:                        "Floor",
	OpTrunc:                        "Trunc",
	OpRound:                        "Round",
	OpRoundEven:                    "RoundEven",
	OpCeil:                         "Ceil",
	OpFract:                        "Fract",
	OpModf:                         "Modf",
	OpMin:                          "Min",
	OpMax:                          "Max",
	OpClamp:                        "Clamp",
	OpMix:                          "Mix",
	OpStep:                         "Step",
	OpSmoothStep:                   "SmoothStep",
	OpIsNan:                        "IsNan",
	OpIsInf:                        "IsInf",
	OpFma:                          "Fma",
	OpFrexp:                        "Frexp",
	OpLdexp:                        "Ldexp",
	OpFloatBitsToInt:               "FloatBitsToInt",
	OpFloatBitsToUint:              "FloatBitsToUint",
	OpIntBitsToFloat:               "IntBitsToFloat",
	OpUintBitsToFloat:              "UintBitsToFloat",
	OpDoubleBitsToInt64:            "DoubleBitsToInt64",
	OpDoubleBitsToUint64:           "DoubleBitsToUint64",
	OpInt64BitsToDouble:            "Int64BitsToDouble",
	OpUint64BitsToDouble:           "Uint64BitsToDouble",
	OpPackSnorm2x16:                "PackSnorm2x16",
	OpUnpackSnorm2x16:              "UnpackSnorm2x16",
	OpPackUnorm2x16:                "PackUnorm2x16",
	OpUnpackUnorm2x16:              "UnpackUnorm2x16",
	OpPackSnorm4x8:                 "PackSnorm4x8",
	OpUnpackSnorm4x8:               "UnpackSnorm4x8",
	OpPackUnorm4x8:                 "PackUnorm4x8",
	OpUnpackUnorm4x8:               "UnpackUnorm4x8",
	OpPackHalf2x16:                 "PackHalf2x16",
	OpUnpackHalf2x16:               "UnpackHalf2x16",
	OpPackDouble2x32:               "PackDouble2x32",
	OpUnpackDouble2x32:             "UnpackDouble2x32",
	OpPackInt2x32:                  "PackInt2x32",
	OpUnpackInt2x32:                "UnpackInt2x32",
	OpPackUint2x32:                 "PackUint2x32",
	OpUnpackUint2x32:               "UnpackUint2x32",
	OpLength:                       "Length",
	OpDistance:                     "Distance",
	OpDot:                          "Dot",
	OpCross:                        "Cross",
	OpNormalize:                    "Normalize",
	OpFaceForward:                  "FaceForward",
	OpReflect:                      "Reflect",
	OpRefract:                      "Refract",
	OpDPdx:                         "DPdx",
	OpDPdy:                         "DPdy",
	OpFwidth:                       "Fwidth",
	OpDPdxFine:                     "DPdxFine",
	OpDPdyFine:                     "DPdyFine",
	OpFwidthFine:                   "FwidthFine",
	OpDPdxCoarse:                   "DPdxCoarse",
	OpDPdyCoarse:                   "DPdyCoarse",
	OpFwidthCoarse:                 "FwidthCoarse",
	OpInterpolateAtCentroid:        "InterpolateAtCentroid",
	OpInterpolateAtSample:          "InterpolateAtSample",
	OpInterpolateAtOffset:          "InterpolateAtOffset",
	OpMatrixTimesMatrix:            "MatrixTimesMatrix",
	OpOuterProduct:                 "OuterProduct",
	OpDeterminant:                  "Determinant",
	OpMatrixInverse:                "MatrixInverse",
	OpTranspose:                    "Transpose",
	OpEmitVertex:                   "EmitVertex",
	OpEndPrimitive:                 "EndPrimitive",
	OpEmitStreamVertex:             "EmitStreamVertex",
	OpEndStreamPrimitive:           "EndStreamPrimitive",
	OpBarrier:                      "Barrier",
	OpMemoryBarrier:                "MemoryBarrier",
	OpMemoryBarrierAtomicCounter:   "MemoryBarrierAtomicCounter",
	OpMemoryBarrierBuffer:          "MemoryBarrierBuffer",
	OpMemoryBarrierImage:           "MemoryBarrierImage",
	OpMemoryBarrierShared:          "MemoryBarrierShared",
	OpGroupMemoryBarrier:           "GroupMemoryBarrier",
	OpBallot:                       "Ballot",
	OpReadInvocation:               "ReadInvocation",
	OpReadFirstInvocation:          "ReadFirstInvocation",
	OpAnyInvocation:                "AnyInvocation",
	OpAllInvocations:               "AllInvocations",
	OpAllInvocationsEqual:          "AllInvocationsEqual",
	OpAny:                          "Any",
	OpAll:                          "All",
	OpAddCarry:                     "AddCarry",
	OpSubBorrow:                    "SubBorrow",
	OpUMulExtended:                 "UMulExtended",
	OpIMulExtended:                 "IMulExtended",
	OpBitfieldExtract:              "BitfieldExtract",
	OpBitfieldInsert:               "BitfieldInsert",
	OpBitFieldReverse:              "BitFieldReverse",
	OpBitCount:                     "BitCount",
	OpFindLSB:                      "FindLSB",
	OpFindMSB:                      "FindMSB",
	OpAtomicAdd:                    "AtomicAdd",
	OpAtomicMin:                    "AtomicMin",
	OpAtomicMax:                    "AtomicMax",
	OpAtomicAnd:                    "AtomicAnd",
	OpAtomicOr:                     "AtomicOr",
	OpAtomicXor:                    "AtomicXor",
	OpAtomicExchange:               "AtomicExchange",
	OpAtomicCompSwap:               "AtomicCompSwap",
	OpAtomicCounterIncrement:       "AtomicCounterIncrement",
	OpAtomicCounterDecrement:       "AtomicCounterDecrement",
	OpAtomicCounter:                "AtomicCounter",
	OpKill:                         "Kill",
	OpReturn:                       "Return",
	OpBreak:                        "Break",
	OpContinue:                     "Continue",
	OpCase:                         "Case",
	OpDefault:                      "Default",
	OpConstruct:                    "Construct",
	OpConstructMatrix:              "ConstructMatrix",
	OpConstructStruct:              "ConstructStruct",
	OpConstructTextureSampler:      "ConstructTextureSampler",
	OpAssign:                       "Assign",
	OpAddAssign:                    "AddAssign",
	OpSubAssign:                    "SubAssign",
	OpMulAssign:                    "MulAssign",
	OpVectorTimesMatrixAssign:      "VectorTimesMatrixAssign",
	OpVectorTimesScalarAssign:      "VectorTimesScalarAssign",
	OpMatrixTimesScalarAssign:      "MatrixTimesScalarAssign",
	OpMatrixTimesMatrixAssign:      "MatrixTimesMatrixAssign",
	OpDivAssign:                    "DivAssign",
	OpModAssign:                    "ModAssign",
	OpAndAssign:                    "AndAssign",
	OpInclusiveOrAssign:            "InclusiveOrAssign",
	OpExclusiveOrAssign:            "ExclusiveOrAssign",
	OpLeftShiftAssign:              "LeftShiftAssign",
	OpRightShiftAssign:             "RightShiftAssign",
	OpImageQuerySize:               "ImageQuerySize",
	OpImageQuerySamples:            "ImageQuerySamples",
	OpImageLoad:                    "ImageLoad",
	OpImageStore:                   "ImageStore",
	OpImageAtomicAdd:               "ImageAtomicAdd",
	OpImageAtomicMin:               "ImageAtomicMin",
	OpImageAtomicMax:               "ImageAtomicMax",
	OpImageAtomicAnd:               "ImageAtomicAnd",
	OpImageAtomicOr:                "ImageAtomicOr",
	OpImageAtomicXor:               "ImageAtomicXor",
	OpImageAtomicExchange:          "ImageAtomicExchange",
	OpImageAtomicCompSwap:          "ImageAtomicCompSwap",
	OpSubpassLoad:                  "SubpassLoad",
	OpSubpassLoadMS:                "SubpassLoadMS",
	OpSparseImageLoad:              "SparseImageLoad",
	OpTextureQuerySize:             "TextureQuerySize",
	OpTextureQueryLod:              "TextureQueryLod",
	OpTextureQueryLevels:           "TextureQueryLevels",
	OpTextureQuerySamples:          "TextureQuerySamples",
	OpTexture:                      "Texture",
	OpTextureProj:                  "TextureProj",
	OpTextureLod:                   "TextureLod",
	OpTextureOffset:                "TextureOffset",
	OpTextureFetch:                 "TextureFetch",
	OpTextureFetchOffset:           "TextureFetchOffset",
	OpTextureProjOffset:            "TextureProjOffset",
	OpTextureLodOffset:             "TextureLodOffset",
	OpTextureProjLod:               "TextureProjLod",
	OpTextureProjLodOffset:         "TextureProjLodOffset",
	OpTextureGrad:                  "TextureGrad",
	OpTextureGradOffset:            "TextureGradOffset",
	OpTextureProjGrad:              "TextureProjGrad",
	OpTextureProjGradOffset:        "TextureProjGradOffset",
	OpTextureGather:                "TextureGather",
	OpTextureGatherOffset:          "TextureGatherOffset",
	OpTextureGatherOffsets:         "TextureGatherOffsets",
	OpTextureClamp:                 "TextureClamp",
	OpTextureOffsetClamp:           "TextureOffsetClamp",
	OpTextureGradClamp:             "TextureGradClamp",
	OpTextureGradOffsetClamp:       "TextureGradOffsetClamp",
	OpSparseTexture:                "SparseTexture",
	OpSparseTextureLod:             "SparseTextureLod",
	OpSparseTextureOffset:          "SparseTextureOffset",
	OpSparseTextureFetch:           "SparseTextureFetch",
	OpSparseTextureFetchOffset:     "SparseTextureFetchOffset",
	OpSparseTextureLodOffset:       "SparseTextureLodOffset",
	OpSparseTextureGrad:            "SparseTextureGrad",
	OpSparseTextureGradOffset:      "SparseTextureGradOffset",
	OpSparseTextureGather:          "SparseTextureGather",
	OpSparseTextureGatherOffset:    "SparseTextureGatherOffset",
	OpSparseTextureGatherOffsets:   "SparseTextureGatherOffsets",
	OpSparseTexelsResident:         "SparseTexelsResident",
	OpSparseTextureClamp:           "SparseTextureClamp",
	OpSparseTextureOffsetClamp:     "SparseTextureOffsetClamp",
	OpSparseTextureGradClamp:       "SparseTextureGradClamp",
	OpSparseTextureGradOffsetClamp: "SparseTextureGradOffsetClamp",
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorNames))
	for op, name := range operatorNames {
		m[name] = Operator(op)
	}
	return m
}()

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", op)
}

// ParseOperator returns the operator with the given name.
func ParseOperator(name string) (Operator, error) {
	op, ok := operatorsByName[name]
	if !ok {
		return OpNull, fmt.Errorf("unknown operator %q", name)
	}
	return op, nil
}

// IsAssignment reports whether op stores into its left operand.
func (op Operator) IsAssignment() bool {
	return op >= OpAssign && op <= OpRightShiftAssign
}

// IsTexture reports whether op is a texture sampling or query builtin.
func (op Operator) IsTexture() bool {
	return op >= OpTextureQuerySize && op <= OpSparseTextureGradOffsetClamp
}

// IsImage reports whether op is an image load, store, atomic or subpass read.
func (op Operator) IsImage() bool {
	return op >= OpImageQuerySize && op <= OpSparseImageLoad
}

// IsConversion reports whether op converts between basic types.
func (op Operator) IsConversion() bool {
	return op >= OpConvToBool && op <= OpConvToFloat16
}

// IsConstructor reports whether op builds a value from its arguments.
func (op Operator) IsConstructor() bool {
	return op >= OpConstruct && op <= OpConstructTextureSampler
}
