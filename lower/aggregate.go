package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

// VisitAggregate lowers sequences, functions, calls, constructors and
// the builtins that take several operands.
//
//nolint:gocyclo,cyclop,funlen // one case per aggregate operator
func (s *Session) VisitAggregate(pre bool, n *ast.Aggregate) bool {
	switch n.Op {
	case ast.OpSequence:
		if !pre {
			s.sequenceDepth--
			return true
		}
		s.sequenceDepth++
		if s.sequenceDepth == 1 {
			// Every function is declared before any body is lowered so
			// calls can reference them. Global initializers go first
			// into the entry point.
			s.makeFunctions(n.Sequence)
			s.makeGlobalInitializers(n.Sequence)
			s.visitFunctions(n.Sequence)
			return false
		}
		return true

	case ast.OpLinkerObjects:
		s.linkageOnly = pre
		return true

	case ast.OpFunction:
		if pre {
			s.enterFunction(n)
			return true
		}
		if s.inEntryPoint {
			s.entryPointTerminated = true
		}
		s.b.LeaveFunction()
		s.inEntryPoint = false
		return true

	case ast.OpParameters:
		// Parameters were bound by makeFunctions.
		return false
	}

	if !pre {
		return true
	}
	s.at(n)
	scope := s.specScope(n.Type)
	defer scope.Restore()

	if result, ok := s.textureCall(n.Op, n.Type, n.Sequence); ok {
		if result != spirv.NoResult {
			s.b.ClearAccessChain()
			s.b.SetAccessChainRValue(result)
		}
		return false
	}

	precision := precisionDecoration(n.Type)
	noContraction := noContractionDecoration(&n.Type.Qualifier)
	info := Lookup(n.Op)

	switch n.Op {
	case ast.OpComma:
		// The right-most operand is left in the access chain.
		for _, child := range n.Sequence {
			ast.Walk(s, child)
		}
		return false

	case ast.OpFunctionCall:
		var result spirv.ID
		if n.UserDefined {
			result = s.userFunctionCall(n)
		}
		if result == spirv.NoResult {
			s.missing("missing user function %s", n.Name)
			return false
		}
		s.b.ClearAccessChain()
		s.b.SetAccessChainRValue(result)
		return false
	}

	if info.Category == CategoryConstructor {
		s.b.ClearAccessChain()
		s.b.SetAccessChainRValue(s.construct(n, precision))
		return false
	}

	binOp := ast.OpNull
	reduce := true
	switch n.Op {
	case ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEqual, ast.OpGreaterThanEqual,
		ast.OpVectorEqual, ast.OpVectorNotEqual:
		// Component-wise compares with a bool vector result.
		binOp = n.Op
		reduce = false
	case ast.OpMul, ast.OpOuterProduct, ast.OpMod:
		binOp = n.Op
	case ast.OpDot:
		if len(n.Sequence) == 2 && n.Sequence[0].NodeType().VectorSize <= 1 {
			binOp = ast.OpMul
		}
	}

	if binOp != ast.OpNull && len(n.Sequence) == 2 {
		left, right := n.Sequence[0], n.Sequence[1]

		s.b.ClearAccessChain()
		ast.Walk(s, left)
		leftID := s.accessChainLoad(left.NodeType())

		s.b.ClearAccessChain()
		ast.Walk(s, right)
		rightID := s.accessChainLoad(right.NodeType())

		s.at(n)
		result := s.binaryOperation(binOp, precision, noContraction, s.convertType(n.Type),
			leftID, rightID, left.NodeType().Basic, reduce)
		s.b.ClearAccessChain()
		s.b.SetAccessChainRValue(result)
		return false
	}

	inverted := spirv.NoType
	operands := make([]spirv.ID, 0, len(n.Sequence))
	for i, arg := range n.Sequence {
		lvalue := info.IsLValueArg(i)
		if i == 0 && lvalue && (n.Op == ast.OpInterpolateAtSample || n.Op == ast.OpInterpolateAtOffset) {
			inverted = s.invertedSwizzleType(arg)
		}

		s.b.ClearAccessChain()
		if i == 0 && inverted != spirv.NoType {
			ast.Walk(s, arg.(*ast.Binary).Left)
		} else {
			ast.Walk(s, arg)
		}
		if lvalue {
			operands = append(operands, s.b.AccessChainGetLValue())
		} else {
			s.at(n)
			operands = append(operands, s.accessChainLoad(arg.NodeType()))
		}
	}

	resultType := inverted
	if resultType == spirv.NoType {
		resultType = s.convertType(n.Type)
	}

	s.at(n)
	var result spirv.ID
	switch {
	case info.Category == CategoryAtomic:
		result = s.atomicOperation(n.Op, resultType, operands, n.Type.Basic)
	case len(operands) == 0:
		s.noArgOperation(n.Op)
		return false
	case len(operands) == 1:
		result = s.unaryOperation(n.Op, precision, noContraction, resultType, operands[0], n.Sequence[0].NodeType().Basic)
	default:
		result = s.miscOperation(n.Op, precision, resultType, operands, n.Type.Basic)
	}
	if inverted != spirv.NoType && result != spirv.NoResult {
		result = s.invertedSwizzle(precision, n.Sequence[0], result)
	}

	if result == spirv.NoResult {
		if n.Type.Basic == ast.BasicVoid {
			return false
		}
		s.missing("unknown aggregate operation %s", n.Op)
		return true
	}
	s.b.ClearAccessChain()
	s.b.SetAccessChainRValue(result)
	return false
}

// construct lowers constructor calls.
func (s *Session) construct(n *ast.Aggregate, precision spirv.Decoration) spirv.ID {
	args := make([]spirv.ID, 0, len(n.Sequence))
	for _, arg := range n.Sequence {
		s.b.ClearAccessChain()
		ast.Walk(s, arg)
		args = append(args, s.accessChainLoad(arg.NodeType()))
	}
	s.at(n)

	resultType := s.convertType(n.Type)
	switch {
	case n.Op == ast.OpConstructTextureSampler:
		return s.b.CreateOp(spirv.OpSampledImage, resultType, args)
	case n.Op == ast.OpConstructStruct || n.Type.IsArray():
		return s.b.CreateCompositeConstruct(resultType, args)
	case n.Op == ast.OpConstructMatrix:
		return s.b.CreateMatrixConstructor(precision, args, resultType)
	}
	return s.b.CreateConstructor(precision, args, resultType)
}

// isEntry reports whether a function definition is the shader entry
// point.
func (s *Session) isEntry(fn *ast.Aggregate) bool {
	return fn.Name == s.prog.EntryMangled
}

// parameters returns the parameter symbols of a function definition.
func parameters(fn *ast.Aggregate) []*ast.Symbol {
	if len(fn.Sequence) == 0 {
		return nil
	}
	list, ok := fn.Sequence[0].(*ast.Aggregate)
	if !ok {
		return nil
	}
	params := make([]*ast.Symbol, 0, len(list.Sequence))
	for _, p := range list.Sequence {
		if sym, ok := p.(*ast.Symbol); ok {
			params = append(params, sym)
		}
	}
	return params
}

// passByPointer reports parameter types passed as a pointer into the
// caller's storage.
func passByPointer(t *ast.Type) bool {
	return t.ContainsOpaque() || (t.Basic == ast.BasicBlock && t.Qualifier.Storage == ast.StorageBuffer)
}

// makeFunctions declares every user function of the top-level
// sequence.
func (s *Session) makeFunctions(top []ast.Node) {
	for _, node := range top {
		fn, ok := node.(*ast.Aggregate)
		if !ok || fn.Op != ast.OpFunction || s.isEntry(fn) {
			continue
		}

		// Parameters other than const in are passed as pointers to a
		// caller-side copy, which gives copy-in copy-out behavior.
		params := parameters(fn)
		types := make([]spirv.ID, 0, len(params))
		precisions := make([]spirv.Decoration, 0, len(params))
		for _, p := range params {
			t := s.convertType(p.Type)
			switch {
			case passByPointer(p.Type):
				t = s.b.MakePointer(s.storageClass(p.Type), t)
			case p.Type.Qualifier.Storage != ast.StorageConstReadOnly:
				t = s.b.MakePointer(spirv.StorageClassFunction, t)
			default:
				s.rValueParameters[p.ID] = struct{}{}
			}
			types = append(types, t)
			precisions = append(precisions, precisionDecoration(p.Type))
		}

		function, _ := s.b.MakeFunctionEntry(precisionDecoration(fn.Type), s.convertType(fn.Type),
			fn.Name, types, precisions)
		s.functionMap[fn.Name] = function

		for i, p := range params {
			s.symbolValues[p.ID] = function.Param(i)
			s.b.AddName(function.Param(i), p.Name)
		}
		s.logger.Debug("declared function", "name", fn.Name, "params", len(params))
	}
}

// makeGlobalInitializers lowers top-level aggregates that are not
// functions at the start of the entry point.
func (s *Session) makeGlobalInitializers(top []ast.Node) {
	s.b.SetBuildPoint(lastBlock(s.shaderEntry))
	for _, node := range top {
		agg, ok := node.(*ast.Aggregate)
		if ok && agg.Op != ast.OpFunction && agg.Op != ast.OpLinkerObjects {
			ast.Walk(s, agg)
		}
	}
}

// visitFunctions lowers function bodies and linker objects.
func (s *Session) visitFunctions(top []ast.Node) {
	for _, node := range top {
		agg, ok := node.(*ast.Aggregate)
		if ok && (agg.Op == ast.OpFunction || agg.Op == ast.OpLinkerObjects) {
			ast.Walk(s, agg)
		}
	}
}

func (s *Session) enterFunction(fn *ast.Aggregate) {
	if s.isEntry(fn) {
		s.inEntryPoint = true
		s.currentFunction = s.shaderEntry
		s.b.SetBuildPoint(lastBlock(s.shaderEntry))
		return
	}
	function, ok := s.functionMap[fn.Name]
	if !ok {
		// Defined in a nested sequence, so not seen by makeFunctions.
		s.makeFunctions([]ast.Node{fn})
		function = s.functionMap[fn.Name]
	}
	s.currentFunction = function
	s.b.SetBuildPoint(function.EntryBlock())
}

func lastBlock(fn *spirv.Function) *spirv.Block {
	blocks := fn.Blocks()
	return blocks[len(blocks)-1]
}
