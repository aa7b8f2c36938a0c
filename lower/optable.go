package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

// Category is the lowering path an operator takes.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryStructure
	CategoryAssign
	CategoryIndex
	CategoryBinary
	CategoryCompare
	CategoryLogical
	CategoryUnary
	CategoryConversion
	CategoryExtInst
	CategoryMisc
	CategoryNoArg
	CategoryBarrier
	CategoryAtomic
	CategoryStream
	CategoryBranch
	CategoryConstructor
	CategoryTexture
	CategoryImage
	CategoryInvocation
)

var categoryNames = map[Category]string{
	CategoryNone:        "none",
	CategoryStructure:   "structure",
	CategoryAssign:      "assign",
	CategoryIndex:       "index",
	CategoryBinary:      "binary",
	CategoryCompare:     "compare",
	CategoryLogical:     "logical",
	CategoryUnary:       "unary",
	CategoryConversion:  "conversion",
	CategoryExtInst:     "ext-inst",
	CategoryMisc:        "misc",
	CategoryNoArg:       "no-arg",
	CategoryBarrier:     "barrier",
	CategoryAtomic:      "atomic",
	CategoryStream:      "stream",
	CategoryBranch:      "branch",
	CategoryConstructor: "constructor",
	CategoryTexture:     "texture",
	CategoryImage:       "image",
	CategoryInvocation:  "invocation",
}

func (c Category) String() string { return categoryNames[c] }

// TexFlags describe the operand shape of a texture or image builtin.
type TexFlags uint16

const (
	TexQuery TexFlags = 1 << iota
	TexProj
	TexLod
	TexFetch
	TexOffset
	TexOffsets
	TexGather
	TexGrad
	TexSubpass
	TexLodClamp
	TexSparse
)

// Has reports whether every flag in f is set.
func (t TexFlags) Has(f TexFlags) bool { return t&f == f }

// OpInfo is the lowering recipe of one operator. Opcode and
// instruction fields that do not apply are zero.
type OpInfo struct {
	Category Category

	// Opcodes selected by the operand's basic type.
	Float    spirv.OpCode
	Signed   spirv.OpCode
	Unsigned spirv.OpCode
	Bool     spirv.OpCode

	// GLSL.std.450 instructions selected by the operand's basic type.
	FloatInst    spirv.GLSLstd450
	SignedInst   spirv.GLSLstd450
	UnsignedInst spirv.GLSLstd450

	// Binary is the arithmetic operator a compound assignment applies.
	Binary ast.Operator
	// LValueArgs are argument positions passed by pointer.
	LValueArgs []int
	// Matching smears a scalar operand to the other operand's width.
	Matching bool
	// ReduceComparison lowers == and != on composites to one bool.
	ReduceComparison bool
	Capabilities     []spirv.Capability

	// Control barriers also synchronize execution.
	Control   bool
	Semantics spirv.MemorySemantics

	Tex TexFlags
}

// Opcode picks the opcode for operands of basic type b.
func (i OpInfo) Opcode(b ast.BasicType) spirv.OpCode {
	switch {
	case b.IsFloat() && i.Float != spirv.OpNop:
		return i.Float
	case b == ast.BasicBool && i.Bool != spirv.OpNop:
		return i.Bool
	case b.IsUnsigned() && i.Unsigned != spirv.OpNop:
		return i.Unsigned
	case b.IsFloat():
		return i.Float
	}
	return i.Signed
}

// Inst picks the extended instruction for operands of basic type b.
func (i OpInfo) Inst(b ast.BasicType) spirv.GLSLstd450 {
	switch {
	case b.IsFloat():
		return i.FloatInst
	case b.IsUnsigned() && i.UnsignedInst != spirv.GLSLstd450Bad:
		return i.UnsignedInst
	}
	return i.SignedInst
}

// IsLValueArg reports whether argument n is passed by pointer.
func (i OpInfo) IsLValueArg(n int) bool {
	for _, a := range i.LValueArgs {
		if a == n {
			return true
		}
	}
	return false
}

var opTable = buildOpTable()

// Lookup returns the lowering recipe of op. Unknown operators report
// CategoryNone.
func Lookup(op ast.Operator) OpInfo {
	return opTable[op]
}

func arith(f, s, u spirv.OpCode) OpInfo {
	return OpInfo{Category: CategoryBinary, Float: f, Signed: s, Unsigned: u, Matching: true}
}

func compare(f, s, u, b spirv.OpCode) OpInfo {
	return OpInfo{Category: CategoryCompare, Float: f, Signed: s, Unsigned: u, Bool: b}
}

func ext(f, s, u spirv.GLSLstd450) OpInfo {
	return OpInfo{Category: CategoryExtInst, FloatInst: f, SignedInst: s, UnsignedInst: u}
}

func fext(inst spirv.GLSLstd450) OpInfo { return ext(inst, inst, inst) }

func unary(op spirv.OpCode) OpInfo {
	return OpInfo{Category: CategoryUnary, Float: op, Signed: op, Unsigned: op, Bool: op}
}

func misc(inst spirv.GLSLstd450) OpInfo {
	return OpInfo{Category: CategoryMisc, FloatInst: inst, SignedInst: inst, UnsignedInst: inst}
}

func miscOp(op spirv.OpCode) OpInfo {
	return OpInfo{Category: CategoryMisc, Float: op, Signed: op, Unsigned: op}
}

func barrier(control bool, sem spirv.MemorySemantics) OpInfo {
	return OpInfo{Category: CategoryBarrier, Control: control, Semantics: sem}
}

func atomic(s, u spirv.OpCode) OpInfo {
	return OpInfo{Category: CategoryAtomic, Signed: s, Unsigned: u, LValueArgs: []int{0}}
}

func texture(flags TexFlags) OpInfo {
	return OpInfo{Category: CategoryTexture, Tex: flags}
}

func image(flags TexFlags) OpInfo {
	return OpInfo{Category: CategoryImage, Tex: flags}
}

//nolint:funlen // one entry per operator
func buildOpTable() map[ast.Operator]OpInfo {
	t := map[ast.Operator]OpInfo{
		ast.OpSequence:      {Category: CategoryStructure},
		ast.OpLinkerObjects: {Category: CategoryStructure},
		ast.OpFunction:      {Category: CategoryStructure},
		ast.OpParameters:    {Category: CategoryStructure},
		ast.OpFunctionCall:  {Category: CategoryStructure},
		ast.OpComma:         {Category: CategoryStructure},

		ast.OpNegative:         {Category: CategoryUnary, Float: spirv.OpFNegate, Signed: spirv.OpSNegate, Unsigned: spirv.OpSNegate},
		ast.OpLogicalNot:       unary(spirv.OpLogicalNot),
		ast.OpVectorLogicalNot: unary(spirv.OpLogicalNot),
		ast.OpBitwiseNot:       unary(spirv.OpNot),
		ast.OpPostIncrement:    {Category: CategoryUnary, Binary: ast.OpAdd},
		ast.OpPostDecrement:    {Category: CategoryUnary, Binary: ast.OpSub},
		ast.OpPreIncrement:     {Category: CategoryUnary, Binary: ast.OpAdd},
		ast.OpPreDecrement:     {Category: CategoryUnary, Binary: ast.OpSub},
		ast.OpArrayLength:      {Category: CategoryUnary},

		ast.OpConvToBool:    {Category: CategoryConversion},
		ast.OpConvToInt:     {Category: CategoryConversion},
		ast.OpConvToUint:    {Category: CategoryConversion},
		ast.OpConvToInt64:   {Category: CategoryConversion},
		ast.OpConvToUint64:  {Category: CategoryConversion},
		ast.OpConvToFloat:   {Category: CategoryConversion},
		ast.OpConvToDouble:  {Category: CategoryConversion},
		ast.OpConvToFloat16: {Category: CategoryConversion},

		ast.OpAdd:           arith(spirv.OpFAdd, spirv.OpIAdd, spirv.OpIAdd),
		ast.OpSub:           arith(spirv.OpFSub, spirv.OpISub, spirv.OpISub),
		ast.OpMul:           arith(spirv.OpFMul, spirv.OpIMul, spirv.OpIMul),
		ast.OpDiv:           arith(spirv.OpFDiv, spirv.OpSDiv, spirv.OpUDiv),
		ast.OpMod:           arith(spirv.OpFMod, spirv.OpSMod, spirv.OpUMod),
		ast.OpRightShift:    arith(spirv.OpNop, spirv.OpShiftRightArithmetic, spirv.OpShiftRightLogical),
		ast.OpLeftShift:     arith(spirv.OpNop, spirv.OpShiftLeftLogical, spirv.OpShiftLeftLogical),
		ast.OpAnd:           arith(spirv.OpNop, spirv.OpBitwiseAnd, spirv.OpBitwiseAnd),
		ast.OpInclusiveOr:   arith(spirv.OpNop, spirv.OpBitwiseOr, spirv.OpBitwiseOr),
		ast.OpExclusiveOr:   arith(spirv.OpNop, spirv.OpBitwiseXor, spirv.OpBitwiseXor),
		ast.OpVectorTimesScalar: {
			Category: CategoryBinary, Float: spirv.OpVectorTimesScalar,
			Signed: spirv.OpIMul, Unsigned: spirv.OpIMul, Matching: true,
		},
		ast.OpVectorTimesMatrix: {Category: CategoryBinary, Float: spirv.OpVectorTimesMatrix},
		ast.OpMatrixTimesVector: {Category: CategoryBinary, Float: spirv.OpMatrixTimesVector},
		ast.OpMatrixTimesScalar: {Category: CategoryBinary, Float: spirv.OpMatrixTimesScalar},
		ast.OpMatrixTimesMatrix: {Category: CategoryBinary, Float: spirv.OpMatrixTimesMatrix},
		ast.OpOuterProduct:      {Category: CategoryBinary, Float: spirv.OpOuterProduct},

		ast.OpLogicalAnd: {Category: CategoryLogical, Bool: spirv.OpLogicalAnd},
		ast.OpLogicalOr:  {Category: CategoryLogical, Bool: spirv.OpLogicalOr},
		ast.OpLogicalXor: {Category: CategoryLogical, Bool: spirv.OpLogicalNotEqual},

		ast.OpLessThan:         compare(spirv.OpFOrdLessThan, spirv.OpSLessThan, spirv.OpULessThan, spirv.OpNop),
		ast.OpGreaterThan:      compare(spirv.OpFOrdGreaterThan, spirv.OpSGreaterThan, spirv.OpUGreaterThan, spirv.OpNop),
		ast.OpLessThanEqual:    compare(spirv.OpFOrdLessThanEqual, spirv.OpSLessThanEqual, spirv.OpULessThanEqual, spirv.OpNop),
		ast.OpGreaterThanEqual: compare(spirv.OpFOrdGreaterThanEqual, spirv.OpSGreaterThanEqual, spirv.OpUGreaterThanEqual, spirv.OpNop),
		ast.OpVectorEqual:      compare(spirv.OpFOrdEqual, spirv.OpIEqual, spirv.OpIEqual, spirv.OpLogicalEqual),
		ast.OpVectorNotEqual:   compare(spirv.OpFOrdNotEqual, spirv.OpINotEqual, spirv.OpINotEqual, spirv.OpLogicalNotEqual),

		ast.OpIndexDirect:       {Category: CategoryIndex},
		ast.OpIndexIndirect:     {Category: CategoryIndex},
		ast.OpIndexDirectStruct: {Category: CategoryIndex},
		ast.OpVectorSwizzle:     {Category: CategoryIndex},
		ast.OpMatrixSwizzle:     {Category: CategoryIndex},

		ast.OpRadians:     fext(spirv.GLSLstd450Radians),
		ast.OpDegrees:     fext(spirv.GLSLstd450Degrees),
		ast.OpSin:         fext(spirv.GLSLstd450Sin),
		ast.OpCos:         fext(spirv.GLSLstd450Cos),
		ast.OpTan:         fext(spirv.GLSLstd450Tan),
		ast.OpAsin:        fext(spirv.GLSLstd450Asin),
		ast.OpAcos:        fext(spirv.GLSLstd450Acos),
		ast.OpAtan:        {Category: CategoryExtInst, FloatInst: spirv.GLSLstd450Atan, SignedInst: spirv.GLSLstd450Atan, UnsignedInst: spirv.GLSLstd450Atan},
		ast.OpSinh:        fext(spirv.GLSLstd450Sinh),
		ast.OpCosh:        fext(spirv.GLSLstd450Cosh),
		ast.OpTanh:        fext(spirv.GLSLstd450Tanh),
		ast.OpAsinh:       fext(spirv.GLSLstd450Asinh),
		ast.OpAcosh:       fext(spirv.GLSLstd450Acosh),
		ast.OpAtanh:       fext(spirv.GLSLstd450Atanh),
		ast.OpPow:         misc(spirv.GLSLstd450Pow),
		ast.OpExp:         fext(spirv.GLSLstd450Exp),
		ast.OpLog:         fext(spirv.GLSLstd450Log),
		ast.OpExp2:        fext(spirv.GLSLstd450Exp2),
		ast.OpLog2:        fext(spirv.GLSLstd450Log2),
		ast.OpSqrt:        fext(spirv.GLSLstd450Sqrt),
		ast.OpInverseSqrt: fext(spirv.GLSLstd450InverseSqrt),

		ast.OpAbs:        ext(spirv.GLSLstd450FAbs, spirv.GLSLstd450SAbs, spirv.GLSLstd450SAbs),
		ast.OpSign:       ext(spirv.GLSLstd450FSign, spirv.GLSLstd450SSign, spirv.GLSLstd450SSign),
		ast.OpFloor:      fext(spirv.GLSLstd450Floor),
		ast.OpTrunc:      fext(spirv.GLSLstd450Trunc),
		ast.OpRound:      fext(spirv.GLSLstd450Round),
		ast.OpRoundEven:  fext(spirv.GLSLstd450RoundEven),
		ast.OpCeil:       fext(spirv.GLSLstd450Ceil),
		ast.OpFract:      fext(spirv.GLSLstd450Fract),
		ast.OpModf:       {Category: CategoryMisc, FloatInst: spirv.GLSLstd450Modf, LValueArgs: []int{1}},
		ast.OpMin:        {Category: CategoryMisc, FloatInst: spirv.GLSLstd450FMin, SignedInst: spirv.GLSLstd450SMin, UnsignedInst: spirv.GLSLstd450UMin, Matching: true},
		ast.OpMax:        {Category: CategoryMisc, FloatInst: spirv.GLSLstd450FMax, SignedInst: spirv.GLSLstd450SMax, UnsignedInst: spirv.GLSLstd450UMax, Matching: true},
		ast.OpClamp:      {Category: CategoryMisc, FloatInst: spirv.GLSLstd450FClamp, SignedInst: spirv.GLSLstd450SClamp, UnsignedInst: spirv.GLSLstd450UClamp, Matching: true},
		ast.OpMix:        {Category: CategoryMisc, FloatInst: spirv.GLSLstd450FMix, Bool: spirv.OpSelect, Matching: true},
		ast.OpStep:       {Category: CategoryMisc, FloatInst: spirv.GLSLstd450Step, Matching: true},
		ast.OpSmoothStep: {Category: CategoryMisc, FloatInst: spirv.GLSLstd450SmoothStep, Matching: true},
		ast.OpIsNan:      unary(spirv.OpIsNan),
		ast.OpIsInf:      unary(spirv.OpIsInf),
		ast.OpFma:        misc(spirv.GLSLstd450Fma),
		ast.OpFrexp:      {Category: CategoryMisc, FloatInst: spirv.GLSLstd450FrexpStruct, LValueArgs: []int{1}},
		ast.OpLdexp:      misc(spirv.GLSLstd450Ldexp),

		ast.OpFloatBitsToInt:     unary(spirv.OpBitcast),
		ast.OpFloatBitsToUint:    unary(spirv.OpBitcast),
		ast.OpIntBitsToFloat:     unary(spirv.OpBitcast),
		ast.OpUintBitsToFloat:    unary(spirv.OpBitcast),
		ast.OpDoubleBitsToInt64:  unary(spirv.OpBitcast),
		ast.OpDoubleBitsToUint64: unary(spirv.OpBitcast),
		ast.OpInt64BitsToDouble:  unary(spirv.OpBitcast),
		ast.OpUint64BitsToDouble: unary(spirv.OpBitcast),
		ast.OpPackSnorm2x16:      fext(spirv.GLSLstd450PackSnorm2x16),
		ast.OpUnpackSnorm2x16:    fext(spirv.GLSLstd450UnpackSnorm2x16),
		ast.OpPackUnorm2x16:      fext(spirv.GLSLstd450PackUnorm2x16),
		ast.OpUnpackUnorm2x16:    fext(spirv.GLSLstd450UnpackUnorm2x16),
		ast.OpPackSnorm4x8:       fext(spirv.GLSLstd450PackSnorm4x8),
		ast.OpUnpackSnorm4x8:     fext(spirv.GLSLstd450UnpackSnorm4x8),
		ast.OpPackUnorm4x8:       fext(spirv.GLSLstd450PackUnorm4x8),
		ast.OpUnpackUnorm4x8:     fext(spirv.GLSLstd450UnpackUnorm4x8),
		ast.OpPackHalf2x16:       fext(spirv.GLSLstd450PackHalf2x16),
		ast.OpUnpackHalf2x16:     fext(spirv.GLSLstd450UnpackHalf2x16),
		ast.OpPackDouble2x32:     fext(spirv.GLSLstd450PackDouble2x32),
		ast.OpUnpackDouble2x32:   fext(spirv.GLSLstd450UnpackDouble2x32),
		ast.OpPackInt2x32:        unary(spirv.OpBitcast),
		ast.OpUnpackInt2x32:      unary(spirv.OpBitcast),
		ast.OpPackUint2x32:       unary(spirv.OpBitcast),
		ast.OpUnpackUint2x32:     unary(spirv.OpBitcast),

		ast.OpLength:      fext(spirv.GLSLstd450Length),
		ast.OpDistance:    misc(spirv.GLSLstd450Distance),
		ast.OpDot:         miscOp(spirv.OpDot),
		ast.OpCross:       misc(spirv.GLSLstd450Cross),
		ast.OpNormalize:   fext(spirv.GLSLstd450Normalize),
		ast.OpFaceForward: misc(spirv.GLSLstd450FaceForward),
		ast.OpReflect:     misc(spirv.GLSLstd450Reflect),
		ast.OpRefract:     misc(spirv.GLSLstd450Refract),

		ast.OpDPdx:   unary(spirv.OpDPdx),
		ast.OpDPdy:   unary(spirv.OpDPdy),
		ast.OpFwidth: unary(spirv.OpFwidth),
		ast.OpInterpolateAtCentroid: {
			Category: CategoryExtInst, FloatInst: spirv.GLSLstd450InterpolateAtCentroid,
			LValueArgs: []int{0}, Capabilities: []spirv.Capability{spirv.CapabilityInterpolationFunction},
		},
		ast.OpInterpolateAtSample: {
			Category: CategoryMisc, FloatInst: spirv.GLSLstd450InterpolateAtSample,
			LValueArgs: []int{0}, Capabilities: []spirv.Capability{spirv.CapabilityInterpolationFunction},
		},
		ast.OpInterpolateAtOffset: {
			Category: CategoryMisc, FloatInst: spirv.GLSLstd450InterpolateAtOffset,
			LValueArgs: []int{0}, Capabilities: []spirv.Capability{spirv.CapabilityInterpolationFunction},
		},

		ast.OpDeterminant:   fext(spirv.GLSLstd450Determinant),
		ast.OpMatrixInverse: fext(spirv.GLSLstd450MatrixInverse),
		ast.OpTranspose:     unary(spirv.OpTranspose),

		ast.OpEmitVertex:         {Category: CategoryNoArg, Signed: spirv.OpEmitVertex},
		ast.OpEndPrimitive:       {Category: CategoryNoArg, Signed: spirv.OpEndPrimitive},
		ast.OpEmitStreamVertex:   {Category: CategoryStream, Signed: spirv.OpEmitStreamVertex},
		ast.OpEndStreamPrimitive: {Category: CategoryStream, Signed: spirv.OpEndStreamPrimitive},

		ast.OpBarrier:                    barrier(true, spirv.MemorySemanticsNone),
		ast.OpMemoryBarrier:              barrier(false, spirv.MemorySemanticsAllMemory),
		ast.OpMemoryBarrierAtomicCounter: barrier(false, spirv.MemorySemanticsAtomicCounterMemory),
		ast.OpMemoryBarrierBuffer:        barrier(false, spirv.MemorySemanticsUniformMemory),
		ast.OpMemoryBarrierImage:         barrier(false, spirv.MemorySemanticsImageMemory),
		ast.OpMemoryBarrierShared:        barrier(false, spirv.MemorySemanticsWorkgroupMemory),
		ast.OpGroupMemoryBarrier:         barrier(false, spirv.MemorySemanticsCrossWorkgroupMemory),

		ast.OpBallot:              {Category: CategoryInvocation},
		ast.OpReadInvocation:      {Category: CategoryInvocation},
		ast.OpReadFirstInvocation: {Category: CategoryInvocation},
		ast.OpAnyInvocation:       {Category: CategoryInvocation},
		ast.OpAllInvocations:      {Category: CategoryInvocation},
		ast.OpAllInvocationsEqual: {Category: CategoryInvocation},

		ast.OpAny: unary(spirv.OpAny),
		ast.OpAll: unary(spirv.OpAll),

		ast.OpAddCarry:       {Category: CategoryMisc, Signed: spirv.OpIAddCarry, Unsigned: spirv.OpIAddCarry, LValueArgs: []int{2}},
		ast.OpSubBorrow:      {Category: CategoryMisc, Signed: spirv.OpISubBorrow, Unsigned: spirv.OpISubBorrow, LValueArgs: []int{2}},
		ast.OpUMulExtended:   {Category: CategoryMisc, Signed: spirv.OpUMulExtended, Unsigned: spirv.OpUMulExtended, LValueArgs: []int{2, 3}},
		ast.OpIMulExtended:   {Category: CategoryMisc, Signed: spirv.OpSMulExtended, Unsigned: spirv.OpSMulExtended, LValueArgs: []int{2, 3}},
		ast.OpBitfieldExtract: {Category: CategoryMisc, Signed: spirv.OpBitFieldSExtract, Unsigned: spirv.OpBitFieldUExtract},
		ast.OpBitfieldInsert: miscOp(spirv.OpBitFieldInsert),
		ast.OpBitFieldReverse: unary(spirv.OpBitReverse),
		ast.OpBitCount:       unary(spirv.OpBitCount),
		ast.OpFindLSB:        fext(spirv.GLSLstd450FindILsb),
		ast.OpFindMSB:        ext(spirv.GLSLstd450Bad, spirv.GLSLstd450FindSMsb, spirv.GLSLstd450FindUMsb),

		ast.OpAtomicAdd:              atomic(spirv.OpAtomicIAdd, spirv.OpAtomicIAdd),
		ast.OpAtomicMin:              atomic(spirv.OpAtomicSMin, spirv.OpAtomicUMin),
		ast.OpAtomicMax:              atomic(spirv.OpAtomicSMax, spirv.OpAtomicUMax),
		ast.OpAtomicAnd:              atomic(spirv.OpAtomicAnd, spirv.OpAtomicAnd),
		ast.OpAtomicOr:               atomic(spirv.OpAtomicOr, spirv.OpAtomicOr),
		ast.OpAtomicXor:              atomic(spirv.OpAtomicXor, spirv.OpAtomicXor),
		ast.OpAtomicExchange:         atomic(spirv.OpAtomicExchange, spirv.OpAtomicExchange),
		ast.OpAtomicCompSwap:         atomic(spirv.OpAtomicCompareExchange, spirv.OpAtomicCompareExchange),
		ast.OpAtomicCounterIncrement: atomic(spirv.OpAtomicIIncrement, spirv.OpAtomicIIncrement),
		ast.OpAtomicCounterDecrement: atomic(spirv.OpAtomicIDecrement, spirv.OpAtomicIDecrement),
		ast.OpAtomicCounter:          atomic(spirv.OpAtomicLoad, spirv.OpAtomicLoad),

		ast.OpKill:     {Category: CategoryBranch},
		ast.OpReturn:   {Category: CategoryBranch},
		ast.OpBreak:    {Category: CategoryBranch},
		ast.OpContinue: {Category: CategoryBranch},
		ast.OpCase:     {Category: CategoryBranch},
		ast.OpDefault:  {Category: CategoryBranch},

		ast.OpConstruct:               {Category: CategoryConstructor},
		ast.OpConstructMatrix:         {Category: CategoryConstructor},
		ast.OpConstructStruct:         {Category: CategoryConstructor},
		ast.OpConstructTextureSampler: {Category: CategoryConstructor},

		ast.OpImageQuerySize:      image(TexQuery),
		ast.OpImageQuerySamples:   image(TexQuery),
		ast.OpImageLoad:           image(0),
		ast.OpImageStore:          image(0),
		ast.OpSubpassLoad:         image(TexSubpass),
		ast.OpSubpassLoadMS:       image(TexSubpass),
		ast.OpSparseImageLoad:     image(TexSparse),
		ast.OpImageAtomicAdd:      atomicImage(spirv.OpAtomicIAdd, spirv.OpAtomicIAdd),
		ast.OpImageAtomicMin:      atomicImage(spirv.OpAtomicSMin, spirv.OpAtomicUMin),
		ast.OpImageAtomicMax:      atomicImage(spirv.OpAtomicSMax, spirv.OpAtomicUMax),
		ast.OpImageAtomicAnd:      atomicImage(spirv.OpAtomicAnd, spirv.OpAtomicAnd),
		ast.OpImageAtomicOr:       atomicImage(spirv.OpAtomicOr, spirv.OpAtomicOr),
		ast.OpImageAtomicXor:      atomicImage(spirv.OpAtomicXor, spirv.OpAtomicXor),
		ast.OpImageAtomicExchange: atomicImage(spirv.OpAtomicExchange, spirv.OpAtomicExchange),
		ast.OpImageAtomicCompSwap: atomicImage(spirv.OpAtomicCompareExchange, spirv.OpAtomicCompareExchange),

		ast.OpTextureQuerySize:    texture(TexQuery),
		ast.OpTextureQueryLod:     texture(TexQuery),
		ast.OpTextureQueryLevels:  texture(TexQuery),
		ast.OpTextureQuerySamples: texture(TexQuery),
		ast.OpSparseTexelsResident: texture(TexQuery),

		ast.OpTexture:                texture(0),
		ast.OpTextureProj:            texture(TexProj),
		ast.OpTextureLod:             texture(TexLod),
		ast.OpTextureOffset:          texture(TexOffset),
		ast.OpTextureFetch:           texture(TexFetch),
		ast.OpTextureFetchOffset:     texture(TexFetch | TexOffset),
		ast.OpTextureProjOffset:      texture(TexProj | TexOffset),
		ast.OpTextureLodOffset:       texture(TexLod | TexOffset),
		ast.OpTextureProjLod:         texture(TexProj | TexLod),
		ast.OpTextureProjLodOffset:   texture(TexProj | TexLod | TexOffset),
		ast.OpTextureGrad:            texture(TexGrad),
		ast.OpTextureGradOffset:      texture(TexGrad | TexOffset),
		ast.OpTextureProjGrad:        texture(TexProj | TexGrad),
		ast.OpTextureProjGradOffset:  texture(TexProj | TexGrad | TexOffset),
		ast.OpTextureGather:          texture(TexGather),
		ast.OpTextureGatherOffset:    texture(TexGather | TexOffset),
		ast.OpTextureGatherOffsets:   texture(TexGather | TexOffsets),
		ast.OpTextureClamp:           texture(TexLodClamp),
		ast.OpTextureOffsetClamp:     texture(TexOffset | TexLodClamp),
		ast.OpTextureGradClamp:       texture(TexGrad | TexLodClamp),
		ast.OpTextureGradOffsetClamp: texture(TexGrad | TexOffset | TexLodClamp),

		ast.OpSparseTexture:              texture(TexSparse),
		ast.OpSparseTextureLod:           texture(TexSparse | TexLod),
		ast.OpSparseTextureOffset:        texture(TexSparse | TexOffset),
		ast.OpSparseTextureFetch:         texture(TexSparse | TexFetch),
		ast.OpSparseTextureFetchOffset:   texture(TexSparse | TexFetch | TexOffset),
		ast.OpSparseTextureLodOffset:     texture(TexSparse | TexLod | TexOffset),
		ast.OpSparseTextureGrad:          texture(TexSparse | TexGrad),
		ast.OpSparseTextureGradOffset:    texture(TexSparse | TexGrad | TexOffset),
		ast.OpSparseTextureGather:        texture(TexSparse | TexGather),
		ast.OpSparseTextureGatherOffset:  texture(TexSparse | TexGather | TexOffset),
		ast.OpSparseTextureGatherOffsets: texture(TexSparse | TexGather | TexOffsets),
		ast.OpSparseTextureClamp:         texture(TexSparse | TexLodClamp),
		ast.OpSparseTextureOffsetClamp:   texture(TexSparse | TexOffset | TexLodClamp),
		ast.OpSparseTextureGradClamp:     texture(TexSparse | TexGrad | TexLodClamp),
		ast.OpSparseTextureGradOffsetClamp: texture(TexSparse | TexGrad | TexOffset | TexLodClamp),
	}

	for _, op := range []ast.Operator{ast.OpDPdxFine, ast.OpDPdyFine, ast.OpFwidthFine, ast.OpDPdxCoarse, ast.OpDPdyCoarse, ast.OpFwidthCoarse} {
		t[op] = OpInfo{Category: CategoryUnary, Capabilities: []spirv.Capability{spirv.CapabilityDerivativeControl}}
	}
	setUnary(t, ast.OpDPdxFine, spirv.OpDPdxFine)
	setUnary(t, ast.OpDPdyFine, spirv.OpDPdyFine)
	setUnary(t, ast.OpFwidthFine, spirv.OpFwidthFine)
	setUnary(t, ast.OpDPdxCoarse, spirv.OpDPdxCoarse)
	setUnary(t, ast.OpDPdyCoarse, spirv.OpDPdyCoarse)
	setUnary(t, ast.OpFwidthCoarse, spirv.OpFwidthCoarse)

	// Equal and NotEqual compare whole composites down to one bool.
	t[ast.OpEqual] = reduced(compare(spirv.OpFOrdEqual, spirv.OpIEqual, spirv.OpIEqual, spirv.OpLogicalEqual))
	t[ast.OpNotEqual] = reduced(compare(spirv.OpFOrdNotEqual, spirv.OpINotEqual, spirv.OpINotEqual, spirv.OpLogicalNotEqual))

	compound := map[ast.Operator]ast.Operator{
		ast.OpAddAssign:               ast.OpAdd,
		ast.OpSubAssign:               ast.OpSub,
		ast.OpMulAssign:               ast.OpMul,
		ast.OpVectorTimesMatrixAssign: ast.OpVectorTimesMatrix,
		ast.OpVectorTimesScalarAssign: ast.OpVectorTimesScalar,
		ast.OpMatrixTimesScalarAssign: ast.OpMatrixTimesScalar,
		ast.OpMatrixTimesMatrixAssign: ast.OpMatrixTimesMatrix,
		ast.OpDivAssign:               ast.OpDiv,
		ast.OpModAssign:               ast.OpMod,
		ast.OpAndAssign:               ast.OpAnd,
		ast.OpInclusiveOrAssign:       ast.OpInclusiveOr,
		ast.OpExclusiveOrAssign:       ast.OpExclusiveOr,
		ast.OpLeftShiftAssign:         ast.OpLeftShift,
		ast.OpRightShiftAssign:        ast.OpRightShift,
	}
	t[ast.OpAssign] = OpInfo{Category: CategoryAssign}
	for assign, op := range compound {
		info := t[op]
		info.Category = CategoryAssign
		info.Binary = op
		t[assign] = info
	}
	return t
}

func setUnary(t map[ast.Operator]OpInfo, op ast.Operator, code spirv.OpCode) {
	info := t[op]
	info.Float, info.Signed, info.Unsigned = code, code, code
	t[op] = info
}

func reduced(i OpInfo) OpInfo {
	i.ReduceComparison = true
	return i
}

func atomicImage(s, u spirv.OpCode) OpInfo {
	i := atomic(s, u)
	i.Category = CategoryImage
	return i
}
