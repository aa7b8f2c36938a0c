package spirv

// If builds a structured if/else. Create it at the header block after the
// condition is computed, emit the then body, optionally call MakeBeginElse
// and emit the else body, then call MakeEndIf.
type If struct {
	b         *Builder
	condition ID
	control   SelectionControl

	header *Block
	then   *Block
	els    *Block
	merge  *Block
}

// NewIf opens a selection construct and moves the build point into the
// then block.
func (b *Builder) NewIf(condition ID, control SelectionControl) *If {
	ifb := &If{
		b:         b,
		condition: condition,
		control:   control,
		header:    b.buildPoint,
	}
	ifb.then = b.createBlock()
	ifb.merge = b.createBlock()
	b.addBlock(ifb.then)
	b.SetBuildPoint(ifb.then)
	return ifb
}

// MakeBeginElse closes the then body and starts the else body.
func (ifb *If) MakeBeginElse() {
	b := ifb.b
	b.CreateBranch(ifb.merge)
	ifb.els = b.createBlock()
	b.addBlock(ifb.els)
	b.SetBuildPoint(ifb.els)
}

// MakeEndIf closes the construct, emits the header's merge and branch,
// and continues in the merge block.
func (ifb *If) MakeEndIf() {
	b := ifb.b
	b.CreateBranch(ifb.merge)

	b.SetBuildPoint(ifb.header)
	b.CreateSelectionMerge(ifb.merge, ifb.control)
	if ifb.els != nil {
		b.CreateConditionalBranch(ifb.condition, ifb.then, ifb.els)
	} else {
		b.CreateConditionalBranch(ifb.condition, ifb.then, ifb.merge)
	}

	b.addBlock(ifb.merge)
	b.SetBuildPoint(ifb.merge)
}

// MakeSwitch emits OpSelectionMerge and OpSwitch for numSegments case
// segments. caseValues[i] selects segment valueIndexToSegment[i];
// defaultSegment is -1 when there is no default. The created segment
// blocks are returned; call NextSwitchSegment before each body.
func (b *Builder) MakeSwitch(selector ID, control SelectionControl, numSegments int, caseValues, valueIndexToSegment []int, defaultSegment int) []*Block {
	segments := make([]*Block, numSegments)
	for s := range segments {
		segments[s] = b.createBlock()
	}
	merge := b.createBlock()

	b.CreateSelectionMerge(merge, control)

	sw := NewInstruction(NoResult, NoType, OpSwitch)
	sw.AddIDOperand(selector)
	defaultBlock := merge
	if defaultSegment >= 0 {
		defaultBlock = segments[defaultSegment]
	}
	sw.AddIDOperand(defaultBlock.ID)
	b.buildPoint.addSuccessor(defaultBlock)
	for i, value := range caseValues {
		target := segments[valueIndexToSegment[i]]
		sw.AddImmediateOperand(uint32(int32(value)))
		sw.AddIDOperand(target.ID)
		b.buildPoint.addSuccessor(target)
	}
	b.addInstruction(sw)

	b.switchMerges = append(b.switchMerges, merge)
	return segments
}

// AddSwitchBreak branches to the innermost switch merge.
func (b *Builder) AddSwitchBreak() {
	b.CreateBranch(b.switchMerges[len(b.switchMerges)-1])
	b.createAndSetNoPredecessorBlock()
}

// NextSwitchSegment falls through into segments[next].
func (b *Builder) NextSwitchSegment(segments []*Block, next int) {
	if next > 0 && !b.buildPoint.IsTerminated() {
		b.CreateBranch(segments[next])
	}
	b.addBlock(segments[next])
	b.SetBuildPoint(segments[next])
}

// EndSwitch closes the innermost switch.
func (b *Builder) EndSwitch() {
	if !b.buildPoint.IsTerminated() {
		b.AddSwitchBreak()
	}
	merge := b.switchMerges[len(b.switchMerges)-1]
	b.addBlock(merge)
	b.SetBuildPoint(merge)
	b.switchMerges = b.switchMerges[:len(b.switchMerges)-1]
}

// LoopBlocks are the four blocks of a structured loop.
type LoopBlocks struct {
	Head           *Block
	Body           *Block
	Merge          *Block
	ContinueTarget *Block
}

// MakeNewLoop creates the blocks of a loop and makes it the innermost.
func (b *Builder) MakeNewLoop() LoopBlocks {
	loop := LoopBlocks{
		Head:           b.MakeNewBlock(),
		Body:           b.MakeNewBlock(),
		Merge:          b.MakeNewBlock(),
		ContinueTarget: b.MakeNewBlock(),
	}
	b.loops = append(b.loops, loop)
	return loop
}

// CloseLoop pops the innermost loop.
func (b *Builder) CloseLoop() {
	b.loops = b.loops[:len(b.loops)-1]
}

// InLoop reports whether a loop is open.
func (b *Builder) InLoop() bool {
	return len(b.loops) > 0
}

// CreateLoopContinue branches to the innermost continue target.
func (b *Builder) CreateLoopContinue() {
	b.CreateBranch(b.loops[len(b.loops)-1].ContinueTarget)
	b.createAndSetNoPredecessorBlock()
}

// CreateLoopExit branches to the innermost loop merge.
func (b *Builder) CreateLoopExit() {
	b.CreateBranch(b.loops[len(b.loops)-1].Merge)
	b.createAndSetNoPredecessorBlock()
}
