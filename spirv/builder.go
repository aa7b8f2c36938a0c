package spirv

import (
	"io"
	"log/slog"
	"slices"
)

// Builder accumulates one SPIR-V module. A Builder is owned by a single
// lowering session and is not safe for concurrent use.
type Builder struct {
	version   Version
	generator uint32
	logger    *slog.Logger

	// ID allocation; defs is indexed by result id
	nextID ID
	defs   []*Instruction

	capabilities     map[Capability]struct{}
	extensions       map[string]struct{}
	sourceExtensions []string

	addressing AddressingModel
	memory     MemoryModel

	// Debug source information
	source        SourceLanguage
	sourceVersion uint32
	sourceFileID  ID
	sourceText    string
	emitOpLines   bool
	currentLine   int

	// Sections (ordered per SPIR-V spec)
	imports        []*Instruction
	entryPoints    []*Instruction
	executionModes []*Instruction
	strings        []*Instruction
	names          []*Instruction
	decorations    []*Instruction
	globals        []*Instruction // types, constants and module-scope variables in creation order
	functions      []*Function

	groupedTypes     map[OpCode][]*Instruction
	groupedConstants map[OpCode][]*Instruction

	buildPoint       *Block
	entryFunction    *Function
	specConstantMode bool

	chain        AccessChain
	switchMerges []*Block
	loops        []LoopBlocks
}

// NewBuilder creates an empty module builder.
func NewBuilder(version Version, generator uint32, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Builder{
		version:          version,
		generator:        generator,
		logger:           logger,
		nextID:           1,
		defs:             make([]*Instruction, 1, 64),
		capabilities:     make(map[Capability]struct{}),
		extensions:       make(map[string]struct{}),
		addressing:       AddressingModelLogical,
		memory:           MemoryModelGLSL450,
		groupedTypes:     make(map[OpCode][]*Instruction),
		groupedConstants: make(map[OpCode][]*Instruction),
	}
	b.ClearAccessChain()
	return b
}

// Version returns the SPIR-V version written in the header.
func (b *Builder) Version() Version {
	return b.version
}

// UniqueID allocates a new result id.
func (b *Builder) UniqueID() ID {
	id := b.nextID
	b.nextID++
	return id
}

// UniqueIDs allocates n consecutive ids and returns the first.
func (b *Builder) UniqueIDs(n int) ID {
	first := b.nextID
	for i := 0; i < n; i++ {
		b.nextID++
	}
	return first
}

// Bound returns one past the largest allocated id.
func (b *Builder) Bound() uint32 {
	return b.nextID
}

func (b *Builder) mapInstruction(inst *Instruction) {
	id := int(inst.ResultID)
	for len(b.defs) <= id {
		b.defs = append(b.defs, nil)
	}
	b.defs[id] = inst
}

// Instruction returns the instruction defining id, or nil.
func (b *Builder) Instruction(id ID) *Instruction {
	if int(id) >= len(b.defs) {
		return nil
	}
	return b.defs[id]
}

// TypeID returns the type of the value defined by resultID.
func (b *Builder) TypeID(resultID ID) ID {
	inst := b.Instruction(resultID)
	if inst == nil {
		return NoType
	}
	return inst.TypeID
}

// addGlobal places a type, constant or module-scope variable.
func (b *Builder) addGlobal(inst *Instruction) {
	b.globals = append(b.globals, inst)
	b.mapInstruction(inst)
}

// addInstruction appends to the current build point.
func (b *Builder) addInstruction(inst *Instruction) {
	b.buildPoint.addInstruction(inst)
	if inst.ResultID != NoResult {
		b.mapInstruction(inst)
	}
}

// AddCapability declares a capability once.
func (b *Builder) AddCapability(c Capability) {
	if _, ok := b.capabilities[c]; ok {
		return
	}
	b.capabilities[c] = struct{}{}
	b.logger.Debug("capability added", "capability", CapabilityName(c))
}

// HasCapability reports whether c was declared.
func (b *Builder) HasCapability(c Capability) bool {
	_, ok := b.capabilities[c]
	return ok
}

// Capabilities returns the declared capabilities in ascending order.
func (b *Builder) Capabilities() []Capability {
	caps := make([]Capability, 0, len(b.capabilities))
	for c := range b.capabilities {
		caps = append(caps, c)
	}
	slices.Sort(caps)
	return caps
}

// AddExtension declares an extension once.
func (b *Builder) AddExtension(name string) {
	b.extensions[name] = struct{}{}
}

// HasExtension reports whether the extension was declared.
func (b *Builder) HasExtension(name string) bool {
	_, ok := b.extensions[name]
	return ok
}

// Extensions returns the declared extensions in lexical order.
func (b *Builder) Extensions() []string {
	exts := make([]string, 0, len(b.extensions))
	for e := range b.extensions {
		exts = append(exts, e)
	}
	slices.Sort(exts)
	return exts
}

// AddSourceExtension records a front-end extension for OpSourceExtension.
func (b *Builder) AddSourceExtension(name string) {
	b.sourceExtensions = append(b.sourceExtensions, name)
}

// Import imports an extended instruction set.
func (b *Builder) Import(name string) ID {
	inst := NewInstruction(b.UniqueID(), NoType, OpExtInstImport)
	inst.AddStringOperand(name)
	b.imports = append(b.imports, inst)
	b.mapInstruction(inst)
	return inst.ResultID
}

// SetMemoryModel sets the memory model.
func (b *Builder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	b.addressing = addressing
	b.memory = memory
}

// SetSource records the OpSource language and version.
func (b *Builder) SetSource(lang SourceLanguage, version uint32) {
	b.source = lang
	b.sourceVersion = version
}

// SetSourceFile creates the OpString naming the source file.
func (b *Builder) SetSourceFile(file string) {
	inst := NewInstruction(b.UniqueID(), NoType, OpString)
	inst.AddStringOperand(file)
	b.sourceFileID = inst.ResultID
	b.strings = append(b.strings, inst)
	b.mapInstruction(inst)
}

// SetSourceText records text emitted with OpSource.
func (b *Builder) SetSourceText(text string) {
	b.sourceText = text
}

// SetEmitOpLines enables OpLine emission on line changes.
func (b *Builder) SetEmitOpLines() {
	b.emitOpLines = true
}

// SetLine notes the current source line, emitting OpLine when enabled
// and a source file string exists.
func (b *Builder) SetLine(line int) {
	if line == 0 || line == b.currentLine {
		return
	}
	b.currentLine = line
	if b.emitOpLines && b.buildPoint != nil && b.sourceFileID != NoResult {
		b.AddLine(b.sourceFileID, uint32(line), 0)
	}
}

// AddLine emits OpLine at the build point.
func (b *Builder) AddLine(file ID, line, column uint32) {
	inst := NewInstruction(NoResult, NoType, OpLine)
	inst.AddIDOperand(file)
	inst.AddImmediateOperand(line)
	inst.AddImmediateOperand(column)
	b.addInstruction(inst)
}

// AddEntryPoint declares fn as an entry point. Interface ids are appended
// to the returned instruction later.
func (b *Builder) AddEntryPoint(model ExecutionModel, fn *Function, name string) *Instruction {
	inst := NewInstruction(NoResult, NoType, OpEntryPoint)
	inst.AddImmediateOperand(uint32(model))
	inst.AddIDOperand(fn.ID)
	inst.AddStringOperand(name)
	b.entryPoints = append(b.entryPoints, inst)
	return inst
}

// AddExecutionMode adds an execution mode with literal operands.
func (b *Builder) AddExecutionMode(fn *Function, mode ExecutionMode, values ...uint32) {
	inst := NewInstruction(NoResult, NoType, OpExecutionMode)
	inst.AddIDOperand(fn.ID)
	inst.AddImmediateOperand(uint32(mode))
	inst.AddImmediateOperands(values)
	b.executionModes = append(b.executionModes, inst)
}

// AddName adds a debug name.
func (b *Builder) AddName(id ID, name string) {
	inst := NewInstruction(NoResult, NoType, OpName)
	inst.AddIDOperand(id)
	inst.AddStringOperand(name)
	b.names = append(b.names, inst)
}

// AddMemberName adds a debug member name.
func (b *Builder) AddMemberName(id ID, member int, name string) {
	inst := NewInstruction(NoResult, NoType, OpMemberName)
	inst.AddIDOperand(id)
	inst.AddImmediateOperand(uint32(member))
	inst.AddStringOperand(name)
	b.names = append(b.names, inst)
}

// AddDecoration decorates id. DecorationMax is ignored.
func (b *Builder) AddDecoration(id ID, decoration Decoration, values ...uint32) {
	if decoration == DecorationMax {
		return
	}
	inst := NewInstruction(NoResult, NoType, OpDecorate)
	inst.AddIDOperand(id)
	inst.AddImmediateOperand(uint32(decoration))
	inst.AddImmediateOperands(values)
	b.decorations = append(b.decorations, inst)
}

// AddMemberDecoration decorates a struct member. DecorationMax is ignored.
func (b *Builder) AddMemberDecoration(id ID, member int, decoration Decoration, values ...uint32) {
	if decoration == DecorationMax {
		return
	}
	inst := NewInstruction(NoResult, NoType, OpMemberDecorate)
	inst.AddIDOperand(id)
	inst.AddImmediateOperand(uint32(member))
	inst.AddImmediateOperand(uint32(decoration))
	inst.AddImmediateOperands(values)
	b.decorations = append(b.decorations, inst)
}

// Decorations returns the decoration instructions emitted so far.
func (b *Builder) Decorations() []*Instruction {
	return b.decorations
}

// Names returns the debug name instructions emitted so far.
func (b *Builder) Names() []*Instruction {
	return b.names
}

// SetPrecision decorates id with a precision decoration and returns id.
func (b *Builder) SetPrecision(id ID, precision Decoration) ID {
	if precision != DecorationMax && id != NoResult {
		b.AddDecoration(id, precision)
	}
	return id
}

// BuildPoint returns the block receiving new instructions.
func (b *Builder) BuildPoint() *Block {
	return b.buildPoint
}

// SetBuildPoint redirects new instructions to block.
func (b *Builder) SetBuildPoint(block *Block) {
	b.buildPoint = block
}

// EntryFunction returns the function created by MakeEntryPoint.
func (b *Builder) EntryFunction() *Function {
	return b.entryFunction
}

// Functions returns every function in creation order.
func (b *Builder) Functions() []*Function {
	return b.functions
}

// InSpecConstantMode reports whether operations emit OpSpecConstantOp.
func (b *Builder) InSpecConstantMode() bool {
	return b.specConstantMode
}

// SpecConstantScope saves the spec-constant code-gen mode on entry and
// puts it back on Restore.
type SpecConstantScope struct {
	b        *Builder
	previous bool
}

// EnterSpecConstantScope opens a scope; callers defer Restore.
func (b *Builder) EnterSpecConstantScope() SpecConstantScope {
	return SpecConstantScope{b: b, previous: b.specConstantMode}
}

// TurnOn switches the builder into spec-constant code-gen mode.
func (s SpecConstantScope) TurnOn() {
	s.b.specConstantMode = true
}

// Restore returns the builder to the mode seen at scope entry.
func (s SpecConstantScope) Restore() {
	s.b.specConstantMode = s.previous
}
