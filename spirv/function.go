package spirv

// Block is a basic block: an OpLabel followed by instructions ending in a
// terminator.
type Block struct {
	ID     ID
	parent *Function

	label        *Instruction
	instructions []*Instruction
	locals       []*Instruction // OpVariable in Function storage, entry block only

	predecessors []*Block
	successors   []*Block

	// Merge and continue targets declared by this block's merge instruction
	merge          *Block
	continueTarget *Block

	unreachable bool
}

func newBlock(id ID, parent *Function) *Block {
	return &Block{
		ID:     id,
		parent: parent,
		label:  NewInstruction(id, NoType, OpLabel),
	}
}

// Parent returns the owning function.
func (blk *Block) Parent() *Function {
	return blk.parent
}

// Instructions returns the instructions after the label, excluding locals.
func (blk *Block) Instructions() []*Instruction {
	return blk.instructions
}

// Locals returns the function-scope variables hoisted into this block.
func (blk *Block) Locals() []*Instruction {
	return blk.locals
}

// Predecessors returns the blocks that branch here.
func (blk *Block) Predecessors() []*Block {
	return blk.predecessors
}

// Successors returns the branch targets of this block.
func (blk *Block) Successors() []*Block {
	return blk.successors
}

// IsUnreachable reports whether the block was created after a terminator
// with no way to reach it.
func (blk *Block) IsUnreachable() bool {
	return blk.unreachable
}

func (blk *Block) addInstruction(inst *Instruction) {
	blk.instructions = append(blk.instructions, inst)
}

func (blk *Block) addLocal(inst *Instruction) {
	blk.locals = append(blk.locals, inst)
}

func (blk *Block) addSuccessor(next *Block) {
	blk.successors = append(blk.successors, next)
	next.predecessors = append(next.predecessors, blk)
}

// IsTerminated reports whether the last instruction ends the block.
func (blk *Block) IsTerminated() bool {
	if len(blk.instructions) == 0 {
		return false
	}
	return blk.instructions[len(blk.instructions)-1].Opcode.IsTerminator()
}

// Function is an OpFunction with its parameters and blocks.
type Function struct {
	ID           ID
	ReturnType   ID
	FunctionType ID
	Control      FunctionControl

	params []*Instruction
	blocks []*Block
}

// Params returns the parameter ids.
func (fn *Function) Params() []ID {
	ids := make([]ID, len(fn.params))
	for i, p := range fn.params {
		ids[i] = p.ResultID
	}
	return ids
}

// Param returns parameter i.
func (fn *Function) Param(i int) ID {
	return fn.params[i].ResultID
}

// Blocks returns the blocks in creation order.
func (fn *Function) Blocks() []*Block {
	return fn.blocks
}

// EntryBlock returns the first block.
func (fn *Function) EntryBlock() *Block {
	return fn.blocks[0]
}

func (fn *Function) addBlock(blk *Block) {
	fn.blocks = append(fn.blocks, blk)
}

// MakeFunctionEntry creates a function, its parameters and an entry block,
// and moves the build point into the entry block. The function type is
// allocated before the parameter ids so results stay deterministic.
func (b *Builder) MakeFunctionEntry(precision Decoration, returnType ID, name string, paramTypes []ID, paramPrecisions []Decoration) (*Function, *Block) {
	typeID := b.MakeFunctionType(returnType, paramTypes)
	firstParam := NoResult
	if len(paramTypes) > 0 {
		firstParam = b.UniqueIDs(len(paramTypes))
	}

	fn := &Function{
		ID:           b.UniqueID(),
		ReturnType:   returnType,
		FunctionType: typeID,
	}
	b.mapInstruction(NewInstruction(fn.ID, returnType, OpFunction))
	b.SetPrecision(fn.ID, precision)

	for i, pt := range paramTypes {
		param := NewInstruction(firstParam+ID(i), pt, OpFunctionParameter)
		fn.params = append(fn.params, param)
		b.mapInstruction(param)
		if i < len(paramPrecisions) {
			b.SetPrecision(param.ResultID, paramPrecisions[i])
		}
	}

	entry := newBlock(b.UniqueID(), fn)
	b.mapInstruction(entry.label)
	fn.addBlock(entry)
	b.SetBuildPoint(entry)

	if name != "" {
		b.AddName(fn.ID, name)
	}
	b.functions = append(b.functions, fn)
	return fn, entry
}

// MakeEntryPoint creates the void, parameterless entry-point function.
func (b *Builder) MakeEntryPoint(name string) *Function {
	fn, _ := b.MakeFunctionEntry(DecorationMax, b.MakeVoidType(), name, nil, nil)
	b.entryFunction = fn
	return fn
}

// MakeNewBlock creates a block in the build point's function.
func (b *Builder) MakeNewBlock() *Block {
	fn := b.buildPoint.parent
	blk := newBlock(b.UniqueID(), fn)
	b.mapInstruction(blk.label)
	fn.addBlock(blk)
	return blk
}

// createBlock makes a block that is added to its function explicitly later.
func (b *Builder) createBlock() *Block {
	blk := newBlock(b.UniqueID(), b.buildPoint.parent)
	b.mapInstruction(blk.label)
	return blk
}

func (b *Builder) addBlock(blk *Block) {
	blk.parent.addBlock(blk)
}

// createAndSetNoPredecessorBlock continues emission after a terminator.
// The block stays in the function so stray code has a home, but is never
// reachable.
func (b *Builder) createAndSetNoPredecessorBlock() {
	blk := b.MakeNewBlock()
	blk.unreachable = true
	b.SetBuildPoint(blk)
}

// LeaveFunction closes the current function, adding the implicit return
// when the last block is open.
func (b *Builder) LeaveFunction() {
	blk := b.buildPoint
	fn := blk.parent
	if !blk.IsTerminated() {
		if b.TypeClass(fn.ReturnType) == OpTypeVoid {
			b.MakeReturn(true, NoResult)
		} else {
			b.MakeReturn(true, b.CreateUndefined(fn.ReturnType))
		}
	}
}

// MakeReturn emits OpReturn or OpReturnValue. An explicit return starts a
// fresh unreachable block.
func (b *Builder) MakeReturn(implicit bool, retVal ID) {
	if retVal != NoResult {
		inst := NewInstruction(NoResult, NoType, OpReturnValue)
		inst.AddIDOperand(retVal)
		b.addInstruction(inst)
	} else {
		b.addInstruction(NewInstruction(NoResult, NoType, OpReturn))
	}
	if !implicit {
		b.createAndSetNoPredecessorBlock()
	}
}

// MakeDiscard emits OpKill.
func (b *Builder) MakeDiscard() {
	b.addInstruction(NewInstruction(NoResult, NoType, OpKill))
	b.createAndSetNoPredecessorBlock()
}

// CreateVariable declares a variable. Function storage is hoisted into
// the entry block; other storage classes are module scope.
func (b *Builder) CreateVariable(storage StorageClass, typeID ID, name string) ID {
	pointer := b.MakePointer(storage, typeID)
	inst := NewInstruction(b.UniqueID(), pointer, OpVariable)
	inst.AddImmediateOperand(uint32(storage))

	if storage == StorageClassFunction {
		b.buildPoint.parent.EntryBlock().addLocal(inst)
		b.mapInstruction(inst)
	} else {
		b.addGlobal(inst)
	}
	if name != "" {
		b.AddName(inst.ResultID, name)
	}
	return inst.ResultID
}

// CreateUndefined emits OpUndef of typeID at the build point.
func (b *Builder) CreateUndefined(typeID ID) ID {
	inst := NewInstruction(b.UniqueID(), typeID, OpUndef)
	b.addInstruction(inst)
	return inst.ResultID
}

// CreateBranch emits an unconditional branch to target.
func (b *Builder) CreateBranch(target *Block) {
	inst := NewInstruction(NoResult, NoType, OpBranch)
	inst.AddIDOperand(target.ID)
	b.addInstruction(inst)
	b.buildPoint.addSuccessor(target)
}

// CreateConditionalBranch emits OpBranchConditional.
func (b *Builder) CreateConditionalBranch(condition ID, thenBlock, elseBlock *Block) {
	inst := NewInstruction(NoResult, NoType, OpBranchConditional)
	inst.AddIDOperand(condition)
	inst.AddIDOperand(thenBlock.ID)
	inst.AddIDOperand(elseBlock.ID)
	b.addInstruction(inst)
	b.buildPoint.addSuccessor(thenBlock)
	b.buildPoint.addSuccessor(elseBlock)
}

// CreateSelectionMerge emits OpSelectionMerge.
func (b *Builder) CreateSelectionMerge(merge *Block, control SelectionControl) {
	inst := NewInstruction(NoResult, NoType, OpSelectionMerge)
	inst.AddIDOperand(merge.ID)
	inst.AddImmediateOperand(uint32(control))
	b.addInstruction(inst)
	b.buildPoint.merge = merge
}

// CreateLoopMerge emits OpLoopMerge.
func (b *Builder) CreateLoopMerge(merge, continueTarget *Block, control LoopControl) {
	inst := NewInstruction(NoResult, NoType, OpLoopMerge)
	inst.AddIDOperand(merge.ID)
	inst.AddIDOperand(continueTarget.ID)
	inst.AddImmediateOperand(uint32(control))
	b.addInstruction(inst)
	b.buildPoint.merge = merge
	b.buildPoint.continueTarget = continueTarget
}

// readableOrder returns the blocks of fn in a structured depth-first
// order: each block precedes the blocks it dominates, and merge and
// continue targets come after the constructs that branch to them.
// Unreachable blocks are omitted unless some construct names them as a
// merge or continue target.
func readableOrder(fn *Function) []*Block {
	if len(fn.blocks) == 0 {
		return nil
	}

	visited := make(map[*Block]bool)
	delayed := make(map[*Block]bool)
	order := make([]*Block, 0, len(fn.blocks))

	var visit func(blk *Block)
	visit = func(blk *Block) {
		if visited[blk] {
			return
		}
		visited[blk] = true
		order = append(order, blk)

		if blk.merge != nil {
			delayed[blk.merge] = true
		}
		if blk.continueTarget != nil {
			delayed[blk.continueTarget] = true
		}
		for _, succ := range blk.successors {
			if !delayed[succ] {
				visit(succ)
			}
		}
		if blk.continueTarget != nil {
			delayed[blk.continueTarget] = false
			visit(blk.continueTarget)
		}
		if blk.merge != nil {
			delayed[blk.merge] = false
			visit(blk.merge)
		}
	}
	visit(fn.blocks[0])
	return order
}

// unreachableBlocks returns the blocks of fn not emitted by readableOrder.
func unreachableBlocks(fn *Function) []*Block {
	emitted := make(map[*Block]bool)
	for _, blk := range readableOrder(fn) {
		emitted[blk] = true
	}
	var dead []*Block
	for _, blk := range fn.blocks {
		if !emitted[blk] {
			dead = append(dead, blk)
		}
	}
	return dead
}
