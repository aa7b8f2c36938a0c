package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/diag"
	"github.com/gogpu/glslspv/spirv"
)

var (
	voidType  = &ast.Type{Basic: ast.BasicVoid}
	intType   = &ast.Type{Basic: ast.BasicInt, VectorSize: 1}
	floatType = &ast.Type{Basic: ast.BasicFloat, VectorSize: 1}
	boolType  = &ast.Type{Basic: ast.BasicBool, VectorSize: 1}
)

func entry(body ...ast.Node) *ast.Aggregate {
	return &ast.Aggregate{
		Header: ast.Header{Type: voidType},
		Op:     ast.OpFunction,
		Name:   "main(",
		Sequence: []ast.Node{
			&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpParameters},
			&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: body},
		},
	}
}

func linker(symbols ...ast.Node) *ast.Aggregate {
	return &ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpLinkerObjects, Sequence: symbols}
}

func program(children ...ast.Node) *ast.Program {
	return &ast.Program{
		Stage:        ast.StageFragment,
		EntryPoint:   "main",
		EntryMangled: "main(",
		Version:      450,
		Root:         &ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: children},
	}
}

func intConst(v int64) *ast.Constant {
	return &ast.Constant{Header: ast.Header{Type: intType}, Values: []ast.ConstValue{{Int: v}}}
}

func symbol(id int, name string, t *ast.Type) *ast.Symbol {
	return &ast.Symbol{Header: ast.Header{Type: t}, ID: id, Name: name}
}

func withStorage(t *ast.Type, storage ast.Storage) *ast.Type {
	c := *t
	c.Qualifier.Storage = storage
	return &c
}

func assign(op ast.Operator, t *ast.Type, left, right ast.Node) *ast.Binary {
	return &ast.Binary{Header: ast.Header{Type: t}, Op: op, Left: left, Right: right}
}

// inst is one decoded instruction.
type inst struct {
	op       spirv.OpCode
	operands []uint32
}

func decode(t *testing.T, words []uint32) []inst {
	t.Helper()
	require.GreaterOrEqual(t, len(words), 5)
	require.Equal(t, uint32(spirv.MagicNumber), words[0])

	var out []inst
	for i := 5; i < len(words); {
		count := int(words[i] >> 16)
		require.Positive(t, count, "zero word count at %d", i)
		require.LessOrEqual(t, i+count, len(words))
		out = append(out, inst{op: spirv.OpCode(words[i] & 0xffff), operands: words[i+1 : i+count]})
		i += count
	}
	return out
}

func lowerProgram(t *testing.T, prog *ast.Program, sink diag.Sink) []inst {
	t.Helper()
	b := Lower(prog, Options{Sink: sink})
	return decode(t, b.Dump())
}

func filter(insts []inst, op spirv.OpCode) []inst {
	var out []inst
	for _, in := range insts {
		if in.op == op {
			out = append(out, in)
		}
	}
	return out
}

func TestEmptyEntryPoint(t *testing.T) {
	insts := lowerProgram(t, program(entry()), nil)

	require.Len(t, filter(insts, spirv.OpEntryPoint), 1)
	assert.Equal(t, uint32(spirv.ExecutionModelFragment), filter(insts, spirv.OpEntryPoint)[0].operands[0])
	assert.Len(t, filter(insts, spirv.OpFunction), 1)
	assert.Len(t, filter(insts, spirv.OpReturn), 1)
	assert.Len(t, filter(insts, spirv.OpFunctionEnd), 1)

	modes := filter(insts, spirv.OpExecutionMode)
	require.Len(t, modes, 1)
	assert.Equal(t, uint32(spirv.ExecutionModeOriginLowerLeft), modes[0].operands[1])
}

func TestOutputJoinsInterface(t *testing.T) {
	vec4 := &ast.Type{Basic: ast.BasicFloat, VectorSize: 4}
	out := symbol(1, "color", withStorage(vec4, ast.StorageVaryingOut))
	one := &ast.Constant{Header: ast.Header{Type: vec4}, Values: []ast.ConstValue{{Float: 1}, {Float: 1}, {Float: 1}, {Float: 1}}}

	insts := lowerProgram(t, program(entry(assign(ast.OpAssign, vec4, out, one))), nil)

	var output uint32
	for _, v := range filter(insts, spirv.OpVariable) {
		if v.operands[2] == uint32(spirv.StorageClassOutput) {
			output = v.operands[1]
		}
	}
	require.NotZero(t, output)

	ep := filter(insts, spirv.OpEntryPoint)[0]
	assert.Equal(t, output, ep.operands[len(ep.operands)-1])
	assert.Len(t, filter(insts, spirv.OpStore), 1)
	assert.Len(t, filter(insts, spirv.OpConstantComposite), 1)
}

func TestStructSharing(t *testing.T) {
	st := &ast.Struct{Name: "S", Members: []*ast.Type{{Basic: ast.BasicFloat, VectorSize: 1, FieldName: "a"}}}
	plain := &ast.Type{Basic: ast.BasicStruct, Struct: st, TypeName: "S", Qualifier: ast.Qualifier{Storage: ast.StorageGlobal}}

	t.Run("same layout", func(t *testing.T) {
		insts := lowerProgram(t, program(entry(), linker(symbol(1, "s1", plain), symbol(2, "s2", plain))), nil)
		assert.Len(t, filter(insts, spirv.OpTypeStruct), 1)
	})

	t.Run("invariant", func(t *testing.T) {
		invariant := *plain
		invariant.Qualifier.Invariant = true
		insts := lowerProgram(t, program(entry(), linker(symbol(1, "s1", plain), symbol(2, "s2", &invariant))), nil)
		assert.Len(t, filter(insts, spirv.OpTypeStruct), 2)
	})

	t.Run("explicit layout", func(t *testing.T) {
		member := &ast.Type{Basic: ast.BasicStruct, Struct: st, TypeName: "S", FieldName: "m"}
		block := &ast.Type{
			Basic:    ast.BasicBlock,
			Struct:   &ast.Struct{Name: "B", Members: []*ast.Type{member}},
			TypeName: "B",
			Qualifier: ast.Qualifier{
				Storage: ast.StorageUniform,
				Packing: ast.PackingStd140,
			},
		}
		insts := lowerProgram(t, program(entry(), linker(symbol(1, "s1", plain), symbol(2, "b", block))), nil)
		// S without layout, S under std140, and the block
		assert.Len(t, filter(insts, spirv.OpTypeStruct), 3)
	})
}

func TestArrayOfArraysStride(t *testing.T) {
	member := &ast.Type{
		Basic:      ast.BasicFloat,
		VectorSize: 1,
		Arrays:     []ast.ArraySize{{Size: 2}, {Size: 3}},
		FieldName:  "grid",
	}
	block := &ast.Type{
		Basic:     ast.BasicBlock,
		Struct:    &ast.Struct{Name: "B", Members: []*ast.Type{member}},
		TypeName:  "B",
		Qualifier: ast.Qualifier{Storage: ast.StorageBuffer, Packing: ast.PackingStd430},
	}
	insts := lowerProgram(t, program(entry(), linker(symbol(1, "b", block))), nil)

	var strides []uint32
	for _, d := range filter(insts, spirv.OpDecorate) {
		if d.operands[1] == uint32(spirv.DecorationArrayStride) {
			strides = append(strides, d.operands[2])
		}
	}
	assert.ElementsMatch(t, []uint32{4, 12}, strides)
}

func TestBoolInMemory(t *testing.T) {
	flag := &ast.Type{Basic: ast.BasicBool, VectorSize: 1, FieldName: "flag"}
	block := &ast.Type{
		Basic:     ast.BasicBlock,
		Struct:    &ast.Struct{Name: "B", Members: []*ast.Type{flag}},
		TypeName:  "B",
		Qualifier: ast.Qualifier{Storage: ast.StorageBuffer, Packing: ast.PackingStd430},
	}
	b := symbol(1, "b", block)
	field := &ast.Binary{Header: ast.Header{Type: boolType}, Op: ast.OpIndexDirectStruct, Left: b, Right: intConst(0)}
	local := symbol(2, "x", boolType)
	truth := &ast.Constant{Header: ast.Header{Type: boolType}, Values: []ast.ConstValue{{Bool: true}}}

	t.Run("load", func(t *testing.T) {
		insts := lowerProgram(t, program(entry(assign(ast.OpAssign, boolType, local, field))), nil)
		assert.Len(t, filter(insts, spirv.OpINotEqual), 1)
		assert.Empty(t, filter(insts, spirv.OpSelect))
	})

	t.Run("store", func(t *testing.T) {
		insts := lowerProgram(t, program(entry(assign(ast.OpAssign, boolType, field, truth))), nil)
		assert.Len(t, filter(insts, spirv.OpSelect), 1)
		assert.Empty(t, filter(insts, spirv.OpINotEqual))
	})
}

func TestCompoundAssignEvaluatesLeftOnce(t *testing.T) {
	arrType := &ast.Type{Basic: ast.BasicInt, VectorSize: 1, Arrays: []ast.ArraySize{{Size: 2}}}
	arr := symbol(1, "arr", arrType)
	i := symbol(2, "i", intType)
	inc := &ast.Unary{Header: ast.Header{Type: intType}, Op: ast.OpPostIncrement, Operand: i}
	element := &ast.Binary{Header: ast.Header{Type: intType}, Op: ast.OpIndexIndirect, Left: arr, Right: inc}

	insts := lowerProgram(t, program(entry(assign(ast.OpAddAssign, intType, element, intConst(1)))), nil)

	// One add for i++ and one for +=.
	assert.Len(t, filter(insts, spirv.OpIAdd), 2)
}

func TestAccessChainOrder(t *testing.T) {
	vec4 := &ast.Type{Basic: ast.BasicFloat, VectorSize: 4}
	arrType := &ast.Type{Basic: ast.BasicFloat, VectorSize: 4, Arrays: []ast.ArraySize{{Size: 3}}}
	arr := symbol(1, "arr", arrType)
	out := symbol(2, "o", withStorage(floatType, ast.StorageVaryingOut))

	element := &ast.Binary{Header: ast.Header{Type: vec4}, Op: ast.OpIndexDirect, Left: arr, Right: intConst(1)}
	component := &ast.Binary{Header: ast.Header{Type: floatType}, Op: ast.OpIndexDirect, Left: element, Right: intConst(2)}

	insts := lowerProgram(t, program(entry(assign(ast.OpAssign, floatType, out, component))), nil)

	var arrID, one uint32
	for _, v := range filter(insts, spirv.OpVariable) {
		if v.operands[2] == uint32(spirv.StorageClassFunction) {
			arrID = v.operands[1]
		}
	}
	for _, c := range filter(insts, spirv.OpConstant) {
		if c.operands[2] == 1 {
			one = c.operands[1]
		}
	}
	require.NotZero(t, arrID)
	require.NotZero(t, one)

	chains := filter(insts, spirv.OpAccessChain)
	require.NotEmpty(t, chains)
	assert.Equal(t, arrID, chains[0].operands[2])
	assert.Equal(t, one, chains[0].operands[3])
}

func TestDiagnostics(t *testing.T) {
	t.Run("missing functionality", func(t *testing.T) {
		stray := &ast.Branch{Header: ast.Header{Loc: ast.Loc{Line: 7}, Type: voidType}, Op: ast.OpCase, Expression: intConst(1)}
		var bag diag.Bag
		insts := lowerProgram(t, program(entry(stray)), &bag)

		require.True(t, bag.Has(diag.MissingFunctionality))
		assert.Equal(t, 7, bag.Items()[0].Loc.Line)
		// Lowering went on and closed the function.
		assert.Len(t, filter(insts, spirv.OpFunctionEnd), 1)
	})

	t.Run("infinite loop", func(t *testing.T) {
		loop := &ast.Loop{Header: ast.Header{Type: voidType}}
		var bag diag.Bag
		insts := lowerProgram(t, program(entry(loop)), &bag)

		assert.True(t, bag.Has(diag.Warning))
		assert.Len(t, filter(insts, spirv.OpLoopMerge), 1)
	})

	t.Run("loop with break", func(t *testing.T) {
		brk := &ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpBreak}
		loop := &ast.Loop{Header: ast.Header{Type: voidType}, Body: brk}
		var bag diag.Bag
		lowerProgram(t, program(entry(loop)), &bag)

		assert.False(t, bag.Has(diag.Warning))
	})

	t.Run("loop with discard", func(t *testing.T) {
		kill := &ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpKill}
		loop := &ast.Loop{Header: ast.Header{Type: voidType}, Body: kill}
		var bag diag.Bag
		insts := lowerProgram(t, program(entry(loop)), &bag)

		assert.True(t, bag.Has(diag.Warning))
		assert.Len(t, filter(insts, spirv.OpKill), 1)
	})
}

func TestSpecConstantWithoutValue(t *testing.T) {
	spec := *intType
	spec.Qualifier = ast.Qualifier{Storage: ast.StorageConst, SpecConstant: true}
	prog := program(entry(symbol(1, "k", &spec)))

	defer func() {
		r := recover()
		fatal, ok := r.(*diag.Fatal)
		require.True(t, ok, "panic value %v", r)
		assert.Equal(t, diag.InvariantViolation, fatal.Kind)
		assert.Contains(t, fatal.Message, "Neither a front-end constant nor a spec constant")
	}()
	Lower(prog, Options{})
}

func TestSwitchLayout(t *testing.T) {
	caseOf := func(v int64) ast.Node {
		return &ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpCase, Expression: intConst(v)}
	}
	stmt := func() ast.Node {
		return &ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpBreak}
	}
	def := &ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpDefault}

	tests := []struct {
		name     string
		body     []ast.Node
		segments int
		values   []int
		toSeg    []int
		dflt     int
	}{
		{"case then code", []ast.Node{caseOf(1), stmt()}, 1, []int{1}, []int{0}, -1},
		{"trailing case", []ast.Node{caseOf(1), stmt(), caseOf(2)}, 2, []int{1, 2}, []int{0, 1}, -1},
		{"trailing default", []ast.Node{caseOf(3), stmt(), def}, 2, []int{3}, []int{0}, 1},
		{"shared segment", []ast.Node{caseOf(1), caseOf(2), stmt()}, 1, []int{1, 2}, []int{0, 0}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layoutSwitch(&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: tt.body})
			assert.Len(t, l.segments, tt.segments)
			assert.Equal(t, tt.values, l.caseValues)
			assert.Equal(t, tt.toSeg, l.valueToSegment)
			assert.Equal(t, tt.dflt, l.defaultSegment)
		})
	}
}

func TestSwitchLowering(t *testing.T) {
	sel := symbol(1, "i", intType)
	body := &ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: []ast.Node{
		&ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpCase, Expression: intConst(4)},
		&ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpBreak},
		&ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpDefault},
	}}
	sw := &ast.Switch{Header: ast.Header{Type: voidType}, Cond: sel, Body: body}

	var bag diag.Bag
	insts := lowerProgram(t, program(entry(sw)), &bag)

	assert.Zero(t, bag.Len())
	switches := filter(insts, spirv.OpSwitch)
	require.Len(t, switches, 1)
	// selector, default, then one literal and label pair
	assert.Len(t, switches[0].operands, 4)
	assert.Equal(t, uint32(4), switches[0].operands[2])
}

func TestHalfBits(t *testing.T) {
	tests := []struct {
		in   float64
		want uint16
	}{
		{0, 0x0000},
		{1, 0x3c00},
		{0.5, 0x3800},
		{-2, 0xc000},
		{65504, 0x7bff},
		{1e6, 0x7c00},
		{0x1p-24, 0x0001},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, halfBits(tt.in), "halfBits(%v)", tt.in)
	}
}

func TestOperatorTable(t *testing.T) {
	assert.Equal(t, CategoryNone, Lookup(ast.OpNull).Category)
	for op := ast.OpNull + 1; op <= ast.OpSparseTextureGradOffsetClamp; op++ {
		assert.NotEqual(t, CategoryNone, Lookup(op).Category, "operator %s", op)
	}

	add := Lookup(ast.OpAdd)
	assert.Equal(t, spirv.OpFAdd, add.Opcode(ast.BasicFloat))
	assert.Equal(t, spirv.OpIAdd, add.Opcode(ast.BasicUint))

	div := Lookup(ast.OpDivAssign)
	assert.Equal(t, CategoryAssign, div.Category)
	assert.Equal(t, ast.OpDiv, div.Binary)
	assert.Equal(t, spirv.OpUDiv, div.Opcode(ast.BasicUint))

	assert.True(t, Lookup(ast.OpEqual).ReduceComparison)
	assert.False(t, Lookup(ast.OpVectorEqual).ReduceComparison)
	assert.True(t, Lookup(ast.OpAtomicAdd).IsLValueArg(0))
	assert.True(t, Lookup(ast.OpSparseTextureGather).Tex.Has(TexSparse|TexGather))
}

func TestCallCopiesInAndOut(t *testing.T) {
	x := symbol(10, "x", withStorage(intType, ast.StorageInOut))
	inc := &ast.Aggregate{
		Header: ast.Header{Type: voidType},
		Op:     ast.OpFunction,
		Name:   "inc(i1;",
		Sequence: []ast.Node{
			&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpParameters, Sequence: []ast.Node{x}},
			&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: []ast.Node{
				assign(ast.OpAddAssign, intType, x, intConst(1)),
			}},
		},
	}
	v := symbol(1, "v", intType)
	call := &ast.Aggregate{
		Header:          ast.Header{Type: voidType},
		Op:              ast.OpFunctionCall,
		Name:            "inc(i1;",
		UserDefined:     true,
		ParamQualifiers: []ast.Storage{ast.StorageInOut},
		Sequence:        []ast.Node{v},
	}

	var bag diag.Bag
	insts := lowerProgram(t, program(inc, entry(assign(ast.OpAssign, intType, v, intConst(0)), call)), &bag)
	assert.Zero(t, bag.Len())

	names := map[string]uint32{}
	for _, in := range filter(insts, spirv.OpName) {
		name, _ := spirv.DecodeString(in.operands[1:])
		names[name] = in.operands[0]
	}
	require.Contains(t, names, "v")
	require.Contains(t, names, "param")

	assert.Len(t, filter(insts, spirv.OpFunction), 2)
	assert.Len(t, filter(insts, spirv.OpFunctionParameter), 1)
	calls := filter(insts, spirv.OpFunctionCall)
	require.Len(t, calls, 1)
	require.Len(t, calls[0].operands, 4)
	assert.Equal(t, names["param"], calls[0].operands[3])

	callAt, lastStoreToV := -1, -1
	storesToParam := 0
	for i, in := range insts {
		switch {
		case in.op == spirv.OpFunctionCall:
			callAt = i
		case in.op == spirv.OpStore && in.operands[0] == names["v"]:
			lastStoreToV = i
		case in.op == spirv.OpStore && in.operands[0] == names["param"]:
			storesToParam++
		}
	}
	assert.Equal(t, 1, storesToParam)
	assert.Greater(t, lastStoreToV, callAt, "copy-out follows the call")
}

// nameIDs maps debug names to the ids they name.
func nameIDs(insts []inst) map[string]uint32 {
	names := map[string]uint32{}
	for _, in := range filter(insts, spirv.OpName) {
		name, _ := spirv.DecodeString(in.operands[1:])
		names[name] = in.operands[0]
	}
	return names
}

// blockOf returns the label of the block holding insts[at].
func blockOf(insts []inst, at int) uint32 {
	for i := at; i >= 0; i-- {
		if insts[i].op == spirv.OpLabel {
			return insts[i].operands[0]
		}
	}
	return 0
}

// terminatorOf returns the branch ending the block labeled label.
func terminatorOf(t *testing.T, insts []inst, label uint32) inst {
	t.Helper()
	for i, in := range insts {
		if in.op != spirv.OpLabel || in.operands[0] != label {
			continue
		}
		for _, next := range insts[i+1:] {
			switch next.op {
			case spirv.OpBranch, spirv.OpBranchConditional, spirv.OpSwitch,
				spirv.OpReturn, spirv.OpReturnValue, spirv.OpKill, spirv.OpUnreachable:
				return next
			}
		}
	}
	require.Failf(t, "no terminator", "block %d", label)
	return inst{}
}

func TestShortCircuit(t *testing.T) {
	a := symbol(1, "a", boolType)
	x := symbol(2, "x", intType)
	y := symbol(3, "y", intType)
	r := symbol(4, "r", boolType)

	compare := func(left ast.Node) ast.Node {
		return &ast.Binary{Header: ast.Header{Type: boolType}, Op: ast.OpLessThan, Left: left, Right: y}
	}
	costly := compare(&ast.Binary{Header: ast.Header{Type: intType}, Op: ast.OpAdd, Left: x, Right: intConst(1)})
	cheap := compare(x)

	tests := []struct {
		name     string
		language ast.Language
		op       ast.Operator
		right    ast.Node
		phis     int
		logical  spirv.OpCode
		folded   int
		nots     int
	}{
		{"glsl and costly", ast.LanguageGLSL, ast.OpLogicalAnd, costly, 1, spirv.OpLogicalAnd, 0, 0},
		{"hlsl and costly", ast.LanguageHLSL, ast.OpLogicalAnd, costly, 0, spirv.OpLogicalAnd, 1, 0},
		{"glsl and cheap", ast.LanguageGLSL, ast.OpLogicalAnd, cheap, 0, spirv.OpLogicalAnd, 1, 0},
		{"glsl or costly", ast.LanguageGLSL, ast.OpLogicalOr, costly, 1, spirv.OpLogicalOr, 0, 1},
		{"hlsl or costly", ast.LanguageHLSL, ast.OpLogicalOr, costly, 0, spirv.OpLogicalOr, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logical := &ast.Binary{Header: ast.Header{Type: boolType}, Op: tt.op, Left: a, Right: tt.right}
			prog := program(entry(assign(ast.OpAssign, boolType, r, logical)))
			prog.Language = tt.language

			insts := lowerProgram(t, prog, nil)

			assert.Len(t, filter(insts, spirv.OpPhi), tt.phis)
			assert.Len(t, filter(insts, spirv.OpSelectionMerge), tt.phis)
			assert.Len(t, filter(insts, spirv.OpLogicalNot), tt.nots)
			assert.Len(t, filter(insts, tt.logical), tt.folded)
			assert.Len(t, filter(insts, spirv.OpSLessThan), 1)
		})
	}

	t.Run("phi joins both paths", func(t *testing.T) {
		logical := &ast.Binary{Header: ast.Header{Type: boolType}, Op: ast.OpLogicalAnd, Left: a, Right: costly}
		insts := lowerProgram(t, program(entry(assign(ast.OpAssign, boolType, r, logical))), nil)

		phis := filter(insts, spirv.OpPhi)
		require.Len(t, phis, 1)
		// type, result, then two value and parent pairs
		require.Len(t, phis[0].operands, 6)
		compares := filter(insts, spirv.OpSLessThan)
		require.Len(t, compares, 1)
		assert.Equal(t, compares[0].operands[1], phis[0].operands[4])
	})
}

func TestSelection(t *testing.T) {
	vec4 := &ast.Type{Basic: ast.BasicFloat, VectorSize: 4}
	c := symbol(1, "c", boolType)
	p := symbol(2, "p", vec4)
	q := symbol(3, "q", vec4)
	r := symbol(4, "r", vec4)

	t.Run("select", func(t *testing.T) {
		sel := &ast.Selection{Header: ast.Header{Type: vec4}, Cond: c, True: p, False: q}
		insts := lowerProgram(t, program(entry(assign(ast.OpAssign, vec4, r, sel))), nil)

		assert.Empty(t, filter(insts, spirv.OpSelectionMerge))
		selects := filter(insts, spirv.OpSelect)
		require.Len(t, selects, 1)

		// The scalar condition is smeared to a bvec4.
		smears := filter(insts, spirv.OpCompositeConstruct)
		require.Len(t, smears, 1)
		require.Len(t, smears[0].operands, 6)
		assert.Equal(t, smears[0].operands[1], selects[0].operands[2])
	})

	t.Run("control flow", func(t *testing.T) {
		sum := &ast.Binary{Header: ast.Header{Type: vec4}, Op: ast.OpAdd, Left: p, Right: q}
		sel := &ast.Selection{Header: ast.Header{Type: vec4}, Cond: c, True: sum, False: q}
		insts := lowerProgram(t, program(entry(assign(ast.OpAssign, vec4, r, sel))), nil)

		assert.Empty(t, filter(insts, spirv.OpSelect))
		assert.Len(t, filter(insts, spirv.OpSelectionMerge), 1)

		named := map[uint32]bool{}
		for _, id := range nameIDs(insts) {
			named[id] = true
		}
		var temp uint32
		for _, v := range filter(insts, spirv.OpVariable) {
			if v.operands[2] == uint32(spirv.StorageClassFunction) && !named[v.operands[1]] {
				require.Zero(t, temp, "one unnamed temporary")
				temp = v.operands[1]
			}
		}
		require.NotZero(t, temp)

		stores, loads := 0, 0
		for _, in := range insts {
			switch {
			case in.op == spirv.OpStore && in.operands[0] == temp:
				stores++
			case in.op == spirv.OpLoad && in.operands[2] == temp:
				loads++
			}
		}
		assert.Equal(t, 2, stores, "one store per branch")
		assert.Equal(t, 1, loads, "the result is read back as an l-value")
	})
}

func TestLoopStructure(t *testing.T) {
	c := symbol(1, "c", boolType)

	// loopMerge returns the loop header, merge and continue labels.
	loopMerge := func(t *testing.T, insts []inst) (head, merge, cont uint32) {
		t.Helper()
		for i, in := range insts {
			if in.op == spirv.OpLoopMerge {
				return blockOf(insts, i), in.operands[0], in.operands[1]
			}
		}
		require.Fail(t, "no OpLoopMerge")
		return 0, 0, 0
	}

	t.Run("test first", func(t *testing.T) {
		loop := &ast.Loop{Header: ast.Header{Type: voidType}, Test: c, TestFirst: true}
		insts := lowerProgram(t, program(entry(loop)), nil)
		head, merge, cont := loopMerge(t, insts)

		// The header only branches to a separate test block.
		toTest := terminatorOf(t, insts, head)
		require.Equal(t, spirv.OpBranch, toTest.op)
		test := toTest.operands[0]
		assert.NotEqual(t, cont, test)

		cond := terminatorOf(t, insts, test)
		require.Equal(t, spirv.OpBranchConditional, cond.op)
		assert.Equal(t, merge, cond.operands[2])
		body := cond.operands[1]

		assert.Equal(t, []uint32{cont}, terminatorOf(t, insts, body).operands)
		assert.Equal(t, []uint32{head}, terminatorOf(t, insts, cont).operands)
	})

	t.Run("do while", func(t *testing.T) {
		loop := &ast.Loop{Header: ast.Header{Type: voidType}, Test: c}
		insts := lowerProgram(t, program(entry(loop)), nil)
		head, merge, cont := loopMerge(t, insts)

		toBody := terminatorOf(t, insts, head)
		require.Equal(t, spirv.OpBranch, toBody.op)
		assert.Equal(t, []uint32{cont}, terminatorOf(t, insts, toBody.operands[0]).operands)

		// The test runs in the continue block and loops back to the header.
		back := terminatorOf(t, insts, cont)
		require.Equal(t, spirv.OpBranchConditional, back.op)
		assert.Equal(t, head, back.operands[1])
		assert.Equal(t, merge, back.operands[2])
	})

	t.Run("continue", func(t *testing.T) {
		next := &ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpContinue}
		loop := &ast.Loop{Header: ast.Header{Type: voidType}, Test: c, TestFirst: true, Body: next}
		insts := lowerProgram(t, program(entry(loop)), nil)
		head, _, cont := loopMerge(t, insts)

		test := terminatorOf(t, insts, head).operands[0]
		body := terminatorOf(t, insts, test).operands[1]
		jump := terminatorOf(t, insts, body)
		assert.Equal(t, spirv.OpBranch, jump.op)
		assert.Equal(t, []uint32{cont}, jump.operands)
	})
}

func TestBreakInSwitchInsideLoop(t *testing.T) {
	sel := symbol(1, "i", intType)
	body := &ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: []ast.Node{
		&ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpCase, Expression: intConst(1)},
		&ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpBreak},
	}}
	sw := &ast.Switch{Header: ast.Header{Type: voidType}, Cond: sel, Body: body}
	loop := &ast.Loop{Header: ast.Header{Type: voidType}, Body: sw}

	var bag diag.Bag
	insts := lowerProgram(t, program(entry(loop)), &bag)

	var loopExit, switchExit uint32
	var segment uint32
	for i, in := range insts {
		switch in.op {
		case spirv.OpLoopMerge:
			loopExit = in.operands[0]
		case spirv.OpSwitch:
			require.Equal(t, spirv.OpSelectionMerge, insts[i-1].op)
			switchExit = insts[i-1].operands[0]
			segment = in.operands[3]
		}
	}
	require.NotZero(t, loopExit)
	require.NotZero(t, switchExit)
	assert.NotEqual(t, loopExit, switchExit)

	brk := terminatorOf(t, insts, segment)
	assert.Equal(t, spirv.OpBranch, brk.op)
	assert.Equal(t, []uint32{switchExit}, brk.operands)

	// Leaving the switch does not leave the loop.
	assert.True(t, bag.Has(diag.Warning))
}

func TestSideEffectOrder(t *testing.T) {
	returning := func(name string, t *ast.Type, value ast.Node) *ast.Aggregate {
		ret := &ast.Branch{Header: ast.Header{Type: voidType}, Op: ast.OpReturn, Expression: value}
		return &ast.Aggregate{
			Header: ast.Header{Type: t},
			Op:     ast.OpFunction,
			Name:   name,
			Sequence: []ast.Node{
				&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpParameters},
				&ast.Aggregate{Header: ast.Header{Type: voidType}, Op: ast.OpSequence, Sequence: []ast.Node{ret}},
			},
		}
	}
	call := func(name string, t *ast.Type) *ast.Aggregate {
		return &ast.Aggregate{Header: ast.Header{Type: t}, Op: ast.OpFunctionCall, Name: name, UserDefined: true}
	}
	half := &ast.Constant{Header: ast.Header{Type: floatType}, Values: []ast.ConstValue{{Float: 0.5}}}
	f := returning("f(", intType, intConst(1))
	g := returning("g(", floatType, half)

	// a[f()].b = g()
	st := &ast.Struct{Name: "S", Members: []*ast.Type{{Basic: ast.BasicFloat, VectorSize: 1, FieldName: "b"}}}
	element := &ast.Type{Basic: ast.BasicStruct, Struct: st, TypeName: "S"}
	arrType := *element
	arrType.Arrays = []ast.ArraySize{{Size: 3}}
	a := symbol(1, "a", &arrType)
	indexed := &ast.Binary{Header: ast.Header{Type: element}, Op: ast.OpIndexIndirect, Left: a, Right: call("f(", intType)}
	member := &ast.Binary{Header: ast.Header{Type: floatType}, Op: ast.OpIndexDirectStruct, Left: indexed, Right: intConst(0)}

	var bag diag.Bag
	insts := lowerProgram(t, program(f, g, entry(assign(ast.OpAssign, floatType, member, call("g(", floatType)))), &bag)
	assert.Zero(t, bag.Len())

	names := nameIDs(insts)
	require.Contains(t, names, "f(")
	require.Contains(t, names, "g(")

	calls := filter(insts, spirv.OpFunctionCall)
	require.Len(t, calls, 2)
	assert.Equal(t, names["f("], calls[0].operands[2], "the index is evaluated first")
	assert.Equal(t, names["g("], calls[1].operands[2])

	chains := filter(insts, spirv.OpAccessChain)
	require.Len(t, chains, 1)
	require.Len(t, chains[0].operands, 5)
	assert.Equal(t, names["a"], chains[0].operands[2])
	assert.Equal(t, calls[0].operands[1], chains[0].operands[3])

	var stored bool
	for _, in := range filter(insts, spirv.OpStore) {
		if in.operands[0] == chains[0].operands[1] {
			stored = true
			assert.Equal(t, calls[1].operands[1], in.operands[1])
		}
	}
	assert.True(t, stored, "g() is stored through the chain")
}

func TestMatrixArrayStride(t *testing.T) {
	mat3 := func(name string, dims ...int) *ast.Type {
		m := &ast.Type{Basic: ast.BasicFloat, MatrixCols: 3, MatrixRows: 3, FieldName: name}
		for _, d := range dims {
			m.Arrays = append(m.Arrays, ast.ArraySize{Size: d})
		}
		return m
	}
	block := &ast.Type{
		Basic:     ast.BasicBlock,
		Struct:    &ast.Struct{Name: "B", Members: []*ast.Type{mat3("m1", 3), mat3("m2", 2, 3)}},
		TypeName:  "B",
		Qualifier: ast.Qualifier{Storage: ast.StorageUniform, Packing: ast.PackingStd140},
	}
	insts := lowerProgram(t, program(entry(), linker(symbol(1, "b", block))), nil)

	var strides []uint32
	for _, d := range filter(insts, spirv.OpDecorate) {
		if d.operands[1] == uint32(spirv.DecorationArrayStride) {
			strides = append(strides, d.operands[2])
		}
	}
	// mat3[3], then mat3[2][3] innermost and outermost
	assert.ElementsMatch(t, []uint32{48, 48, 144}, strides)

	matrixStrides := map[uint32]uint32{}
	offsets := map[uint32]uint32{}
	for _, d := range filter(insts, spirv.OpMemberDecorate) {
		switch d.operands[2] {
		case uint32(spirv.DecorationMatrixStride):
			matrixStrides[d.operands[1]] = d.operands[3]
		case uint32(spirv.DecorationOffset):
			offsets[d.operands[1]] = d.operands[3]
		}
	}
	assert.Equal(t, map[uint32]uint32{0: 16, 1: 16}, matrixStrides)
	assert.Equal(t, map[uint32]uint32{0: 0, 1: 144}, offsets)
}

func TestSpecConstantSubtree(t *testing.T) {
	id := 3
	spec := *intType
	spec.Qualifier = ast.Qualifier{Storage: ast.StorageConst, SpecConstant: true, SpecID: &id}
	k := &ast.Symbol{Header: ast.Header{Type: &spec}, ID: 1, Name: "k", ConstArray: []ast.ConstValue{{Int: 4}}}
	x := symbol(2, "x", intType)
	y := symbol(3, "y", intType)

	// x = k * 2 folds into a spec constant; y = x + 1 is ordinary code.
	product := &ast.Binary{Header: ast.Header{Type: &spec}, Op: ast.OpMul, Left: k, Right: intConst(2)}
	sum := &ast.Binary{Header: ast.Header{Type: intType}, Op: ast.OpAdd, Left: x, Right: intConst(1)}

	insts := lowerProgram(t, program(entry(
		assign(ast.OpAssign, intType, x, product),
		assign(ast.OpAssign, intType, y, sum),
	)), nil)

	specs := filter(insts, spirv.OpSpecConstant)
	require.Len(t, specs, 1)
	ops := filter(insts, spirv.OpSpecConstantOp)
	require.Len(t, ops, 1)
	assert.Equal(t, uint32(spirv.OpIMul), ops[0].operands[2])
	assert.Equal(t, specs[0].operands[1], ops[0].operands[3])

	assert.Empty(t, filter(insts, spirv.OpIMul))
	assert.Len(t, filter(insts, spirv.OpIAdd), 1)

	var specID bool
	for _, d := range filter(insts, spirv.OpDecorate) {
		if d.operands[0] == specs[0].operands[1] && d.operands[1] == uint32(spirv.DecorationSpecID) {
			specID = true
			assert.Equal(t, uint32(3), d.operands[2])
		}
	}
	assert.True(t, specID)
}
