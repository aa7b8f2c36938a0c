package lower

import (
	"strings"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

// specScope enters spec-constant code generation for nodes whose
// type is a specialization constant. Callers defer Restore.
func (s *Session) specScope(t *ast.Type) spirv.SpecConstantScope {
	scope := s.b.EnterSpecConstantScope()
	if t != nil && t.Qualifier.SpecConstant {
		scope.TurnOn()
	}
	return scope
}

// VisitSymbol materializes the symbol on first use and starts a new
// access chain at it.
func (s *Session) VisitSymbol(n *ast.Symbol) {
	s.at(n)
	scope := s.specScope(n.Type)
	defer scope.Restore()

	id := s.symbolID(n)

	if s.b.IsPointer(id) {
		switch s.b.StorageClassOf(id) {
		case spirv.StorageClassInput, spirv.StorageClassOutput:
			s.ioSet[id] = struct{}{}
		}
	}

	q := &n.Type.Qualifier
	if s.linkageOnly && !q.SpecConstant {
		return
	}

	s.b.ClearAccessChain()
	_, byValue := s.rValueParameters[n.ID]
	if q.SpecConstant || byValue || !s.b.IsPointer(id) {
		s.b.SetAccessChainRValue(id)
	} else {
		s.b.SetAccessChainLValue(id)
	}
}

// symbolID returns the id a symbol is bound to, creating and
// decorating the variable or constant when it is first seen.
func (s *Session) symbolID(n *ast.Symbol) spirv.ID {
	if id, ok := s.symbolValues[n.ID]; ok {
		return id
	}

	var id spirv.ID
	switch n.Type.Qualifier.Storage {
	case ast.StorageConst, ast.StorageConstReadOnly:
		id = s.constantOf(n)
	default:
		name := n.Name
		if strings.HasPrefix(name, "anon@") {
			name = ""
		}
		id = s.b.CreateVariable(s.storageClass(n.Type), s.convertType(n.Type), name)
	}
	s.symbolValues[n.ID] = id
	s.decorateSymbol(n, id)
	return id
}

// VisitConstant leaves the folded constant as an r-value.
func (s *Session) VisitConstant(n *ast.Constant) {
	next := 0
	id := s.constantFromValues(n.Type, n.Values, &next, false)
	s.b.ClearAccessChain()
	s.b.SetAccessChainRValue(id)
}

// VisitBinary lowers assignments, indexing and binary operators.
//
//nolint:gocyclo,cyclop,funlen // one case per operator family
func (s *Session) VisitBinary(pre bool, n *ast.Binary) bool {
	if !pre {
		return true
	}
	s.at(n)
	scope := s.specScope(n.Type)
	defer scope.Restore()

	info := Lookup(n.Op)
	precision := precisionDecoration(n.Type)
	noContraction := noContractionDecoration(&n.Type.Qualifier)

	switch info.Category {
	case CategoryAssign:
		// The left side is evaluated once, before the right side.
		s.b.ClearAccessChain()
		ast.Walk(s, n.Left)
		lvalue := s.b.GetAccessChain()

		s.b.ClearAccessChain()
		ast.Walk(s, n.Right)
		rvalue := s.accessChainLoad(n.Right.NodeType())

		if n.Op != ast.OpAssign {
			s.b.SetAccessChain(lvalue)
			left := s.accessChainLoad(n.Left.NodeType())
			rvalue = s.binaryOperation(info.Binary, precision, noContraction,
				s.convertType(n.Type), left, rvalue, n.Type.Basic, true)
		}

		s.b.SetAccessChain(lvalue)
		s.multiTypeStore(n.Type, rvalue)

		s.b.ClearAccessChain()
		s.b.SetAccessChainRValue(rvalue)
		return false

	case CategoryIndex:
		return s.index(n)

	case CategoryLogical:
		if n.Op != ast.OpLogicalXor && !s.isTrivial(n.Right) {
			result := s.shortCircuit(n.Op, n.Left, n.Right)
			s.b.ClearAccessChain()
			s.b.SetAccessChainRValue(result)
			return false
		}
	}

	s.b.ClearAccessChain()
	ast.Walk(s, n.Left)
	left := s.accessChainLoad(n.Left.NodeType())

	s.b.ClearAccessChain()
	ast.Walk(s, n.Right)
	right := s.accessChainLoad(n.Right.NodeType())

	s.at(n)
	result := s.binaryOperation(n.Op, precision, noContraction, s.convertType(n.Type),
		left, right, n.Left.NodeType().Basic, true)

	s.b.ClearAccessChain()
	if result == spirv.NoResult {
		s.missing("unknown binary operation %s", n.Op)
		return true
	}
	s.b.SetAccessChainRValue(result)
	return false
}

// index extends the access chain built for the left operand.
func (s *Session) index(n *ast.Binary) bool {
	left := n.Left.NodeType()

	switch n.Op {
	case ast.OpIndexDirect, ast.OpIndexDirectStruct:
		ast.Walk(s, n.Left)
		member := constantIndex(n.Right)

		if !left.IsArray() && left.IsVector() && n.Op == ast.OpIndexDirect {
			// A constant vector index is a one-channel swizzle.
			s.b.AccessChainPushSwizzle([]uint32{s.word(member)}, s.convertType(left))
			return false
		}

		index := member
		if left.Basic == ast.BasicBlock && n.Op == ast.OpIndexDirectStruct {
			index = s.memberIndex(left.Struct, member)
		}
		s.b.AccessChainPush(s.b.MakeIntConst(int32(index)))

		if left.IsStruct() && !left.IsArray() {
			s.declareUseOfStructMember(left.Members(), member)
		}
		return false

	case ast.OpIndexIndirect:
		ast.Walk(s, n.Left)
		partial := s.b.GetAccessChain()

		s.b.ClearAccessChain()
		ast.Walk(s, n.Right)
		index := s.accessChainLoad(n.Right.NodeType())

		s.b.SetAccessChain(partial)
		if !left.IsArray() && left.IsVector() {
			s.b.AccessChainPushComponent(index, s.convertType(left))
		} else {
			s.b.AccessChainPush(index)
		}
		return false

	case ast.OpVectorSwizzle:
		ast.Walk(s, n.Left)
		s.b.AccessChainPushSwizzle(s.swizzle(n.Right), s.convertType(left))
		return false
	}

	s.missing("matrix swizzle")
	return true
}

// swizzle reads the channel list of a swizzle selector sequence.
func (s *Session) swizzle(selectors ast.Node) []uint32 {
	agg, ok := selectors.(*ast.Aggregate)
	if !ok {
		return []uint32{s.word(constantIndex(selectors))}
	}
	channels := make([]uint32, 0, len(agg.Sequence))
	for _, c := range agg.Sequence {
		channels = append(channels, s.word(constantIndex(c)))
	}
	return channels
}

// constantIndex returns the first scalar of a folded constant.
func constantIndex(n ast.Node) int {
	c, ok := n.(*ast.Constant)
	if !ok || len(c.Values) == 0 {
		return 0
	}
	v := c.Values[0]
	if c.Type != nil && c.Type.Basic.IsUnsigned() {
		return int(v.Uint)
	}
	return int(v.Int)
}

// VisitUnary lowers texture queries, conversions, unary operators and
// increments.
//
//nolint:gocyclo,cyclop,funlen // one case per operator family
func (s *Session) VisitUnary(pre bool, n *ast.Unary) bool {
	if !pre {
		return true
	}
	s.at(n)
	scope := s.specScope(n.Type)
	defer scope.Restore()

	info := Lookup(n.Op)
	if info.Category == CategoryTexture || info.Category == CategoryImage {
		if result, ok := s.textureCall(n.Op, n.Type, []ast.Node{n.Operand}); ok {
			if result != spirv.NoResult {
				s.b.ClearAccessChain()
				s.b.SetAccessChainRValue(result)
			}
			return false
		}
	}

	if n.Op == ast.OpArrayLength {
		// The operand is block.member with a runtime-sized member.
		member, ok := n.Operand.(*ast.Binary)
		if !ok {
			s.missing("array length of a non-member operand")
			return true
		}
		ast.Walk(s, member.Left)
		index := s.memberIndex(member.Left.NodeType().Struct, constantIndex(member.Right))
		length := s.b.CreateArrayLength(s.b.AccessChainGetLValue(), s.word(index))
		s.b.ClearAccessChain()
		s.b.SetAccessChainRValue(length)
		return false
	}

	inverted := spirv.NoType
	resultType := func() spirv.ID {
		if inverted != spirv.NoType {
			return inverted
		}
		return s.convertType(n.Type)
	}
	if n.Op == ast.OpInterpolateAtCentroid {
		inverted = s.invertedSwizzleType(n.Operand)
	}

	s.b.ClearAccessChain()
	if inverted != spirv.NoType {
		ast.Walk(s, n.Operand.(*ast.Binary).Left)
	} else {
		ast.Walk(s, n.Operand)
	}

	var operand spirv.ID
	if info.IsLValueArg(0) {
		operand = s.b.AccessChainGetLValue()
	} else {
		operand = s.accessChainLoad(n.Operand.NodeType())
	}

	precision := precisionDecoration(n.Type)
	noContraction := noContractionDecoration(&n.Type.Qualifier)
	from := n.Operand.NodeType().Basic

	var result spirv.ID
	if info.Category == CategoryConversion {
		result = s.conversion(precision, noContraction, n.Type, resultType(), operand, from)
	} else {
		result = s.unaryOperation(n.Op, precision, noContraction, resultType(), operand, from)
	}
	if result != spirv.NoResult {
		if inverted != spirv.NoType {
			result = s.invertedSwizzle(precision, n.Operand, result)
		}
		s.b.ClearAccessChain()
		s.b.SetAccessChainRValue(result)
		return false
	}

	switch n.Op {
	case ast.OpPostIncrement, ast.OpPostDecrement, ast.OpPreIncrement, ast.OpPreDecrement:
		one := s.one(n.Type.Basic)
		result := s.binaryOperation(info.Binary, precision, noContraction, s.convertType(n.Type),
			operand, one, n.Type.Basic, true)

		// The new value is always stored; pre forms yield it, post forms
		// yield the old one.
		s.b.AccessChainStore(result)
		s.b.ClearAccessChain()
		if n.Op == ast.OpPreIncrement || n.Op == ast.OpPreDecrement {
			s.b.SetAccessChainRValue(result)
		} else {
			s.b.SetAccessChainRValue(operand)
		}
		return false

	case ast.OpEmitStreamVertex, ast.OpEndStreamPrimitive:
		s.b.CreateNoResultOp(info.Signed, operand)
		return false
	}

	s.missing("unknown unary operation %s", n.Op)
	return true
}

// one is the literal 1 with the exact width and signedness of basic.
func (s *Session) one(basic ast.BasicType) spirv.ID {
	return s.scalarOf(basic, 1)
}

// scalarOf returns the constant v of the given basic type.
func (s *Session) scalarOf(basic ast.BasicType, v int) spirv.ID {
	w := s.word(v)
	switch basic {
	case ast.BasicFloat:
		return s.b.MakeFloatConstant(float32(v), false)
	case ast.BasicDouble:
		return s.b.MakeDoubleConstant(float64(v), false)
	case ast.BasicFloat16:
		return s.b.MakeFloat16Constant(halfBits(float64(v)), false)
	case ast.BasicInt64:
		return s.b.MakeInt64Constant(s.b.MakeIntType(64), uint64(w), false)
	case ast.BasicUint64:
		return s.b.MakeInt64Constant(s.b.MakeUintType(64), uint64(w), false)
	case ast.BasicUint:
		return s.b.MakeUintConst(w)
	case ast.BasicBool:
		return s.b.MakeBoolConstant(v != 0, false)
	}
	return s.b.MakeIntConst(int32(w))
}

// fpConstant returns v in the float type floatType.
func (s *Session) fpConstant(floatType spirv.ID, v float64) spirv.ID {
	switch s.b.ScalarTypeWidth(floatType) {
	case 64:
		return s.b.MakeDoubleConstant(v, false)
	case 16:
		return s.b.MakeFloat16Constant(halfBits(v), false)
	}
	return s.b.MakeFloatConstant(float32(v), false)
}

// smearedConstant replicates a scalar constant into a vector of n
// components; n of zero keeps the scalar.
func (s *Session) smearedConstant(c spirv.ID, n int) spirv.ID {
	if n == 0 {
		return c
	}
	members := make([]spirv.ID, n)
	for i := range members {
		members[i] = c
	}
	vec := s.b.MakeVectorType(s.b.TypeID(c), n)
	return s.b.MakeCompositeConstant(vec, members, s.b.InSpecConstantMode())
}

// vectorWidth returns the component count of id when it is a vector,
// else zero.
func (s *Session) vectorWidth(id spirv.ID) int {
	if s.b.IsVector(id) {
		return s.b.NumComponents(id)
	}
	return 0
}

// accessChainLoad loads the chain as a value of t. Booleans held in
// memory as integers come back as bool.
func (s *Session) accessChainLoad(t *ast.Type) spirv.ID {
	nominal := s.b.AccessChainGetInferredType()
	loaded := s.b.AccessChainLoad(precisionDecoration(t), nominal)

	if t == nil || t.Basic != ast.BasicBool {
		return loaded
	}
	boolType := s.b.MakeBoolType()
	switch {
	case s.b.IsScalarType(nominal):
		if nominal != boolType {
			loaded = s.b.CreateBinOp(spirv.OpINotEqual, boolType, loaded, s.b.MakeUintConst(0))
		}
	case s.b.IsVectorType(nominal):
		n := s.b.NumTypeComponents(nominal)
		bvec := s.b.MakeVectorType(boolType, n)
		if nominal != bvec {
			loaded = s.b.CreateBinOp(spirv.OpINotEqual, bvec, loaded, s.smearedConstant(s.b.MakeUintConst(0), n))
		}
	}
	return loaded
}

// accessChainStore stores rvalue through the chain as a value of t,
// converting between bool and its integer memory form.
func (s *Session) accessChainStore(t *ast.Type, rvalue spirv.ID) {
	if t.Basic == ast.BasicBool {
		nominal := s.b.AccessChainGetInferredType()
		boolType := s.b.MakeBoolType()
		switch {
		case s.b.IsScalarType(nominal):
			if nominal != boolType {
				rvalue = s.b.CreateTriOp(spirv.OpSelect, nominal, rvalue, s.b.MakeUintConst(1), s.b.MakeUintConst(0))
			} else if s.b.TypeID(rvalue) != boolType {
				rvalue = s.b.CreateBinOp(spirv.OpINotEqual, boolType, rvalue, s.b.MakeUintConst(0))
			}
		case s.b.IsVectorType(nominal):
			n := s.b.NumTypeComponents(nominal)
			bvec := s.b.MakeVectorType(boolType, n)
			if nominal != bvec {
				one := s.smearedConstant(s.b.MakeUintConst(1), n)
				zero := s.smearedConstant(s.b.MakeUintConst(0), n)
				rvalue = s.b.CreateTriOp(spirv.OpSelect, nominal, rvalue, one, zero)
			} else if s.b.TypeID(rvalue) != bvec {
				rvalue = s.b.CreateBinOp(spirv.OpINotEqual, bvec, rvalue, s.smearedConstant(s.b.MakeUintConst(0), n))
			}
		}
	}
	s.b.AccessChainStore(rvalue)
}

// multiTypeStore stores an aggregate whose SPIR-V type differs from
// the target's, as happens when one source type is laid out twice. The
// copy goes member by member.
func (s *Session) multiTypeStore(t *ast.Type, rvalue spirv.ID) {
	if !t.IsStruct() && !t.IsArray() {
		s.accessChainStore(t, rvalue)
		return
	}

	rType := s.b.TypeID(rvalue)
	lvalue := s.b.AccessChainGetLValue()
	lType := s.b.ContainedTypeID(s.b.TypeID(lvalue), 0)
	if lType == rType {
		s.accessChainStore(t, rvalue)
		return
	}

	if t.IsArray() {
		elem := t.Element()
		elemType := s.b.ContainedTypeID(rType, 0)
		for i := range t.OuterArraySize() {
			v := s.b.CreateCompositeExtract(rvalue, elemType, s.word(i))
			s.b.ClearAccessChain()
			s.b.SetAccessChainLValue(lvalue)
			s.b.AccessChainPush(s.b.MakeIntConst(int32(i)))
			s.multiTypeStore(elem, v)
		}
		return
	}

	for m, member := range t.Members() {
		memberType := s.b.ContainedTypeID(rType, m)
		v := s.b.CreateCompositeExtract(rvalue, memberType, s.word(m))
		s.b.ClearAccessChain()
		s.b.SetAccessChainLValue(lvalue)
		s.b.AccessChainPush(s.b.MakeIntConst(int32(m)))
		s.multiTypeStore(member, v)
	}
}

// isTrivialLeaf reports constants and symbols whose read has no side
// effects.
func isTrivialLeaf(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Constant:
		return true
	case *ast.Symbol:
		switch n.Type.Qualifier.Storage {
		case ast.StorageTemporary, ast.StorageGlobal, ast.StorageIn,
			ast.StorageConst, ast.StorageConstReadOnly, ast.StorageUniform:
			return true
		}
	}
	return false
}

// isTrivial reports whether n is cheap and side-effect free enough to
// evaluate unconditionally as the right side of && or ||. HLSL never
// short-circuits, so every HLSL operand is trivial.
func (s *Session) isTrivial(n ast.Node) bool {
	if n == nil {
		return false
	}
	if s.prog.Language == ast.LanguageHLSL {
		return true
	}
	// IsScalar accepts vector size 1, so vec1 counts as a scalar here.
	if t := n.NodeType(); t != nil && !t.IsScalar() {
		return true
	}
	if isTrivialLeaf(n) {
		return true
	}

	var op ast.Operator
	switch n := n.(type) {
	case *ast.Binary:
		if !isTrivialLeaf(n.Left) || !isTrivialLeaf(n.Right) {
			return false
		}
		op = n.Op
	case *ast.Unary:
		if !isTrivialLeaf(n.Operand) {
			return false
		}
		op = n.Op
	default:
		return false
	}

	switch op {
	case ast.OpLogicalNot, ast.OpConvToBool,
		ast.OpEqual, ast.OpNotEqual, ast.OpLessThan, ast.OpGreaterThan,
		ast.OpLessThanEqual, ast.OpGreaterThanEqual,
		ast.OpIndexDirect, ast.OpIndexDirectStruct, ast.OpLogicalXor,
		ast.OpAny, ast.OpAll:
		return true
	}
	return false
}

// shortCircuit evaluates right only when left does not decide the
// result, joining the two with OpPhi.
func (s *Session) shortCircuit(op ast.Operator, left, right ast.Node) spirv.ID {
	boolType := s.b.MakeBoolType()

	s.b.ClearAccessChain()
	ast.Walk(s, left)
	leftID := s.accessChainLoad(left.NodeType())
	phi := []spirv.ID{leftID, s.b.BuildPoint().ID}

	// a || b is "if (!a) result = b"; a && b is "if (a) result = b".
	if op == ast.OpLogicalOr {
		leftID = s.b.CreateUnaryOp(spirv.OpLogicalNot, boolType, leftID)
	}

	ifb := s.b.NewIf(leftID, spirv.SelectionControlNone)
	s.b.ClearAccessChain()
	ast.Walk(s, right)
	rightID := s.accessChainLoad(right.NodeType())
	phi = append(phi, rightID, s.b.BuildPoint().ID)
	ifb.MakeEndIf()

	return s.b.CreateOp(spirv.OpPhi, boolType, phi)
}

// invertedSwizzleType returns the type of a swizzle's base when n is a
// swizzle, else NoType.
func (s *Session) invertedSwizzleType(n ast.Node) spirv.ID {
	if bin, ok := n.(*ast.Binary); ok && bin.Op == ast.OpVectorSwizzle {
		return s.convertType(bin.Left.NodeType())
	}
	return spirv.NoType
}

// invertedSwizzle applies the swizzle of n to a result computed on the
// swizzle's base.
func (s *Session) invertedSwizzle(precision spirv.Decoration, n ast.Node, result spirv.ID) spirv.ID {
	bin, ok := n.(*ast.Binary)
	if !ok || bin.Op != ast.OpVectorSwizzle {
		return result
	}
	return s.b.CreateRvalueSwizzle(precision, s.convertType(n.NodeType()), result, s.swizzle(bin.Right))
}
