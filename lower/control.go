package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

func selectionControl(c ast.SelectionControl) spirv.SelectionControl {
	switch c {
	case ast.SelectionFlatten:
		return spirv.SelectionControlFlatten
	case ast.SelectionDontFlatten:
		return spirv.SelectionControlDontFlatten
	}
	return spirv.SelectionControlNone
}

func loopControl(n *ast.Loop) spirv.LoopControl {
	switch {
	case n.Unroll:
		return spirv.LoopControlUnroll
	case n.DontUnroll:
		return spirv.LoopControlDontUnroll
	}
	return spirv.LoopControlNone
}

// selectOperand reports a ?: operand that is safe to evaluate
// unconditionally.
func selectOperand(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Symbol, *ast.Constant:
		return true
	case nil:
		return false
	default:
		t := n.NodeType()
		return t != nil && (t.Qualifier.Storage == ast.StorageConst || t.Qualifier.Storage == ast.StorageConstReadOnly)
	}
}

// selectable reports whether a selection can be an OpSelect instead
// of control flow.
func selectable(n *ast.Selection) bool {
	t := n.Type
	if t == nil || t.Basic == ast.BasicVoid || !t.IsScalarOrVector() {
		return false
	}
	if n.True == nil || n.False == nil {
		return false
	}
	return selectOperand(n.True) && selectOperand(n.False)
}

// VisitSelection lowers if statements and ?: expressions.
func (s *Session) VisitSelection(pre bool, n *ast.Selection) bool {
	if !pre {
		return true
	}
	s.at(n)

	if selectable(n) {
		scope := s.specScope(n.Type)
		defer scope.Restore()

		s.b.ClearAccessChain()
		ast.Walk(s, n.Cond)
		cond := s.accessChainLoad(n.Cond.NodeType())
		s.b.ClearAccessChain()
		ast.Walk(s, n.True)
		trueValue := s.accessChainLoad(n.True.NodeType())
		s.b.ClearAccessChain()
		ast.Walk(s, n.False)
		falseValue := s.accessChainLoad(n.True.NodeType())

		s.at(n)
		if s.b.IsVector(trueValue) {
			bvec := s.b.MakeVectorType(s.b.MakeBoolType(), s.b.NumComponents(trueValue))
			cond = s.b.SmearScalar(spirv.DecorationMax, cond, bvec)
		}
		id := s.b.CreateTriOp(spirv.OpSelect, s.convertType(n.Type), cond, trueValue, falseValue)
		s.b.ClearAccessChain()
		s.b.SetAccessChainRValue(id)
		return false
	}

	// Results of control-flow selections go through a variable.
	result := spirv.NoResult
	if n.Type != nil && n.Type.Basic != ast.BasicVoid {
		result = s.b.CreateVariable(spirv.StorageClassFunction, s.convertType(n.Type), "")
	}

	s.b.ClearAccessChain()
	ast.Walk(s, n.Cond)
	cond := s.accessChainLoad(n.Cond.NodeType())
	ifb := s.b.NewIf(cond, selectionControl(n.Control))

	if n.True != nil {
		ast.Walk(s, n.True)
		if result != spirv.NoResult {
			s.b.CreateStore(s.accessChainLoad(n.True.NodeType()), result)
		}
	}
	if n.False != nil {
		ifb.MakeBeginElse()
		ast.Walk(s, n.False)
		if result != spirv.NoResult {
			s.b.CreateStore(s.accessChainLoad(n.False.NodeType()), result)
		}
	}
	ifb.MakeEndIf()

	if result != spirv.NoResult {
		s.b.ClearAccessChain()
		s.b.SetAccessChainLValue(result)
	}
	return false
}

// switchLayout splits a switch body into code segments. Case labels
// map to the segment that follows them; a label with no code after it
// gets an empty segment.
type switchLayout struct {
	segments       []ast.Node
	caseValues     []int
	valueToSegment []int
	defaultSegment int
}

func layoutSwitch(body *ast.Aggregate) switchLayout {
	l := switchLayout{defaultSegment: -1}
	if body == nil {
		return l
	}
	for _, child := range body.Sequence {
		br, ok := child.(*ast.Branch)
		switch {
		case ok && br.Op == ast.OpDefault:
			l.defaultSegment = len(l.segments)
		case ok && br.Op == ast.OpCase:
			l.valueToSegment = append(l.valueToSegment, len(l.segments))
			l.caseValues = append(l.caseValues, constantIndex(br.Expression))
		default:
			l.segments = append(l.segments, child)
		}
	}

	lastCase := len(l.caseValues) > 0 && l.valueToSegment[len(l.valueToSegment)-1] == len(l.segments)
	if lastCase || l.defaultSegment == len(l.segments) {
		l.segments = append(l.segments, nil)
	}
	return l
}

// VisitSwitch lowers a switch with fallthrough between segments.
func (s *Session) VisitSwitch(pre bool, n *ast.Switch) bool {
	if !pre {
		return true
	}
	s.at(n)

	s.b.ClearAccessChain()
	ast.Walk(s, n.Cond)
	selector := s.accessChainLoad(n.Cond.NodeType())

	l := layoutSwitch(n.Body)
	blocks := s.b.MakeSwitch(selector, selectionControl(n.Control), len(l.segments),
		l.caseValues, l.valueToSegment, l.defaultSegment)

	s.breakForLoop = append(s.breakForLoop, false)
	for i, segment := range l.segments {
		s.b.NextSwitchSegment(blocks, i)
		if segment != nil {
			ast.Walk(s, segment)
		} else {
			s.b.AddSwitchBreak()
		}
	}
	s.breakForLoop = s.breakForLoop[:len(s.breakForLoop)-1]

	s.b.EndSwitch()
	return false
}

// VisitLoop lowers for, while and do-while loops. The header block
// holds only the merge and a branch; the test gets its own block.
func (s *Session) VisitLoop(pre bool, n *ast.Loop) bool {
	if !pre {
		return true
	}
	s.at(n)

	blocks := s.b.MakeNewLoop()
	s.b.CreateBranch(blocks.Head)
	s.b.SetBuildPoint(blocks.Head)
	s.b.CreateLoopMerge(blocks.Merge, blocks.ContinueTarget, loopControl(n))

	s.loopExits = append(s.loopExits, false)

	if n.TestFirst && n.Test != nil {
		test := s.b.MakeNewBlock()
		s.b.CreateBranch(test)

		s.b.SetBuildPoint(test)
		s.b.ClearAccessChain()
		ast.Walk(s, n.Test)
		cond := s.accessChainLoad(n.Test.NodeType())
		s.b.CreateConditionalBranch(cond, blocks.Body, blocks.Merge)

		s.b.SetBuildPoint(blocks.Body)
		s.loopBody(n, blocks)

		s.b.SetBuildPoint(blocks.ContinueTarget)
		ast.Walk(s, n.Terminal)
		s.b.CreateBranch(blocks.Head)
	} else {
		s.b.CreateBranch(blocks.Body)

		s.b.SetBuildPoint(blocks.Body)
		s.loopBody(n, blocks)

		s.b.SetBuildPoint(blocks.ContinueTarget)
		ast.Walk(s, n.Terminal)
		if n.Test != nil {
			s.b.ClearAccessChain()
			ast.Walk(s, n.Test)
			cond := s.accessChainLoad(n.Test.NodeType())
			s.b.CreateConditionalBranch(cond, blocks.Head, blocks.Merge)
		} else {
			if !s.loopExits[len(s.loopExits)-1] {
				s.warn("potential infinite loop")
			}
			s.b.CreateBranch(blocks.Head)
		}
	}

	s.loopExits = s.loopExits[:len(s.loopExits)-1]
	s.b.SetBuildPoint(blocks.Merge)
	s.b.CloseLoop()
	return false
}

func (s *Session) loopBody(n *ast.Loop, blocks spirv.LoopBlocks) {
	s.breakForLoop = append(s.breakForLoop, true)
	ast.Walk(s, n.Body)
	s.b.CreateBranch(blocks.ContinueTarget)
	s.breakForLoop = s.breakForLoop[:len(s.breakForLoop)-1]
}

// markLoopExit records that the innermost loop, or with all set every
// open loop, can be left.
func (s *Session) markLoopExit(all bool) {
	if len(s.loopExits) == 0 {
		return
	}
	if !all {
		s.loopExits[len(s.loopExits)-1] = true
		return
	}
	for i := range s.loopExits {
		s.loopExits[i] = true
	}
}

// VisitBranch lowers jumps.
func (s *Session) VisitBranch(pre bool, n *ast.Branch) bool {
	if !pre {
		return true
	}
	if n.Expression != nil {
		ast.Walk(s, n.Expression)
	}
	s.at(n)

	switch n.Op {
	case ast.OpKill:
		s.b.MakeDiscard()

	case ast.OpBreak:
		if len(s.breakForLoop) > 0 && s.breakForLoop[len(s.breakForLoop)-1] {
			s.markLoopExit(false)
			s.b.CreateLoopExit()
		} else {
			s.b.AddSwitchBreak()
		}

	case ast.OpContinue:
		s.b.CreateLoopContinue()

	case ast.OpReturn:
		s.markLoopExit(true)
		if n.Expression == nil {
			s.b.MakeReturn(false, spirv.NoResult)
		} else {
			t := n.Expression.NodeType()
			value := s.accessChainLoad(t)
			if returnType := s.currentFunction.ReturnType; s.b.TypeID(value) != returnType {
				// Same source type, different layout: copy through a
				// variable of the declared return type.
				s.b.ClearAccessChain()
				copied := s.b.CreateVariable(spirv.StorageClassFunction, returnType, "")
				s.b.SetAccessChainLValue(copied)
				s.multiTypeStore(t, value)
				value = s.b.CreateLoad(copied)
			}
			s.b.MakeReturn(false, value)
		}
		s.b.ClearAccessChain()

	default:
		s.missing("branch %s outside a switch", n.Op)
	}
	return false
}
