package spirv

import "golang.org/x/text/unicode/norm"

// sourceBytesPerInstruction is how many source text bytes fit in one
// OpSource or OpSourceContinued next to the fixed operands and the
// terminating null.
const sourceBytesPerInstruction = 4*(maxWordCount-4) - 1

// EliminateDeadDecorations removes decorations and debug names that
// target results defined in unreachable blocks. Those blocks are not
// emitted, so the ids would otherwise dangle.
func (b *Builder) EliminateDeadDecorations() {
	dead := make(map[ID]bool)
	for _, fn := range b.functions {
		for _, blk := range unreachableBlocks(fn) {
			dead[blk.ID] = true
			for _, inst := range blk.instructions {
				if inst.ResultID != NoResult {
					dead[inst.ResultID] = true
				}
			}
		}
	}
	if len(dead) == 0 {
		return
	}

	keep := func(list []*Instruction) []*Instruction {
		out := list[:0]
		for _, inst := range list {
			if !dead[inst.Operand(0)] {
				out = append(out, inst)
			}
		}
		return out
	}
	b.decorations = keep(b.decorations)
	b.names = keep(b.names)
}

// Dump serializes the module in the logical layout order.
func (b *Builder) Dump() []uint32 {
	out := make([]uint32, 0, 1024)
	out = append(out, MagicNumber, versionToWord(b.version), b.generator, b.Bound(), 0)

	for _, c := range b.Capabilities() {
		inst := NewInstruction(NoResult, NoType, OpCapability)
		inst.AddImmediateOperand(uint32(c))
		out = inst.AppendTo(out)
	}
	for _, e := range b.Extensions() {
		inst := NewInstruction(NoResult, NoType, OpExtension)
		inst.AddStringOperand(e)
		out = inst.AppendTo(out)
	}
	out = appendAll(out, b.imports)

	mm := NewInstruction(NoResult, NoType, OpMemoryModel)
	mm.AddImmediateOperand(uint32(b.addressing))
	mm.AddImmediateOperand(uint32(b.memory))
	out = mm.AppendTo(out)

	out = appendAll(out, b.entryPoints)
	out = appendAll(out, b.executionModes)

	out = appendAll(out, b.strings)
	out = b.appendSource(out)
	for _, e := range b.sourceExtensions {
		inst := NewInstruction(NoResult, NoType, OpSourceExtension)
		inst.AddStringOperand(e)
		out = inst.AppendTo(out)
	}
	out = appendAll(out, b.names)
	out = appendAll(out, b.decorations)
	out = appendAll(out, b.globals)

	for _, fn := range b.functions {
		out = appendFunction(out, fn)
	}
	return out
}

func appendAll(out []uint32, list []*Instruction) []uint32 {
	for _, inst := range list {
		out = inst.AppendTo(out)
	}
	return out
}

// appendSource emits OpSource, splitting long source text across
// OpSourceContinued instructions.
func (b *Builder) appendSource(out []uint32) []uint32 {
	if b.source == SourceLanguageUnknown {
		return out
	}
	src := NewInstruction(NoResult, NoType, OpSource)
	src.AddImmediateOperand(uint32(b.source))
	src.AddImmediateOperand(b.sourceVersion)
	if b.sourceFileID == NoResult {
		return src.AppendTo(out)
	}
	src.AddIDOperand(b.sourceFileID)
	if b.sourceText == "" {
		return src.AppendTo(out)
	}

	text := norm.NFC.String(b.sourceText)
	for next := 0; next < len(text); next += sourceBytesPerInstruction {
		chunk := text[next:min(next+sourceBytesPerInstruction, len(text))]
		if next == 0 {
			src.Operands = append(src.Operands, rawStringWords(chunk)...)
			out = src.AppendTo(out)
			continue
		}
		cont := NewInstruction(NoResult, NoType, OpSourceContinued)
		cont.Operands = append(cont.Operands, rawStringWords(chunk)...)
		out = cont.AppendTo(out)
	}
	return out
}

func appendFunction(out []uint32, fn *Function) []uint32 {
	def := NewInstruction(fn.ID, fn.ReturnType, OpFunction)
	def.AddImmediateOperand(uint32(fn.Control))
	def.AddIDOperand(fn.FunctionType)
	out = def.AppendTo(out)

	out = appendAll(out, fn.params)
	for _, blk := range readableOrder(fn) {
		out = blk.label.AppendTo(out)
		out = appendAll(out, blk.locals)
		out = appendAll(out, blk.instructions)
	}
	return NewInstruction(NoResult, NoType, OpFunctionEnd).AppendTo(out)
}
