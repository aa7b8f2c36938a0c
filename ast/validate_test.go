package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	voidType = &Type{Basic: BasicVoid}
	intType  = &Type{Basic: BasicInt, VectorSize: 1}
)

func entry(body ...Node) *Aggregate {
	return &Aggregate{
		Header: Header{Type: voidType},
		Op:     OpFunction,
		Name:   "main(",
		Sequence: []Node{
			&Aggregate{Header: Header{Type: voidType}, Op: OpParameters},
			&Aggregate{Header: Header{Type: voidType}, Op: OpSequence, Sequence: body},
		},
	}
}

func program(children ...Node) *Program {
	return &Program{
		Stage:        StageFragment,
		EntryPoint:   "main",
		EntryMangled: "main(",
		Root:         &Aggregate{Header: Header{Type: voidType}, Op: OpSequence, Sequence: children},
	}
}

func intConst(v int64) *Constant {
	return &Constant{Header: Header{Type: intType}, Values: []ConstValue{{Int: v}}}
}

func TestValidateValidProgram(t *testing.T) {
	errs, err := Validate(program(entry()))
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateNil(t *testing.T) {
	_, err := Validate(nil)
	assert.Error(t, err)
	_, err = Validate(&Program{})
	assert.Error(t, err)
}

func TestValidateMissingEntryPoint(t *testing.T) {
	prog := program()
	errs, err := Validate(prog)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `entry point "main(" is not defined`)
}

func TestValidateCaseLabels(t *testing.T) {
	floatCase := &Constant{Header: Header{Type: &Type{Basic: BasicFloat, VectorSize: 1}}, Values: []ConstValue{{Float: 1}}}
	sw := &Switch{
		Header: Header{Loc: Loc{Line: 3}, Type: voidType},
		Cond:   intConst(1),
		Body: &Aggregate{Header: Header{Type: voidType}, Op: OpSequence, Sequence: []Node{
			&Branch{Header: Header{Type: voidType}, Op: OpCase, Expression: intConst(1)},
			&Branch{Header: Header{Type: voidType}, Op: OpCase, Expression: floatCase},
			&Branch{Header: Header{Type: voidType}, Op: OpDefault},
			&Branch{Header: Header{Type: voidType}, Op: OpBreak},
		}},
	}
	errs, err := Validate(program(entry(sw)))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "case label must be an integer constant", errs[0].Message)
	assert.Equal(t, "main(", errs[0].Function)
}

func TestValidateSpecConstantSource(t *testing.T) {
	spec := &Type{Basic: BasicInt, VectorSize: 1, Qualifier: Qualifier{Storage: StorageConst, SpecConstant: true}}
	bare := &Symbol{Header: Header{Type: spec}, ID: 1, Name: "k"}
	valued := &Symbol{Header: Header{Type: spec}, ID: 2, Name: "n", ConstArray: []ConstValue{{Int: 4}}}
	linker := &Aggregate{Header: Header{Type: voidType}, Op: OpLinkerObjects, Sequence: []Node{bare, valued}}

	errs, err := Validate(program(entry(), linker))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `"k"`)
}

func TestValidateStructMembers(t *testing.T) {
	st := &Struct{Name: "S", Members: []*Type{{Basic: BasicInt, VectorSize: 1}}}
	sym := &Symbol{Header: Header{Type: &Type{Basic: BasicStruct, Struct: st}}, ID: 1, Name: "s"}
	again := &Symbol{Header: Header{Type: &Type{Basic: BasicStruct, Struct: st}}, ID: 1, Name: "s"}

	errs, err := Validate(program(entry(sym, again)))
	require.NoError(t, err)
	require.Len(t, errs, 1, "each struct is checked once")
	assert.Contains(t, errs[0].Message, "member 0 has no name")
}

type recorder struct {
	order []string
}

func (r *recorder) VisitSymbol(n *Symbol)     { r.order = append(r.order, "sym:"+n.Name) }
func (r *recorder) VisitConstant(n *Constant) { r.order = append(r.order, "const") }
func (r *recorder) VisitBinary(pre bool, n *Binary) bool {
	r.order = append(r.order, prefix(pre)+n.Op.String())
	return true
}
func (r *recorder) VisitUnary(pre bool, n *Unary) bool {
	r.order = append(r.order, prefix(pre)+n.Op.String())
	return false
}
func (r *recorder) VisitAggregate(pre bool, n *Aggregate) bool {
	r.order = append(r.order, prefix(pre)+n.Op.String())
	return true
}
func (r *recorder) VisitSelection(bool, *Selection) bool { return true }
func (r *recorder) VisitSwitch(bool, *Switch) bool       { return true }
func (r *recorder) VisitLoop(bool, *Loop) bool           { return true }
func (r *recorder) VisitBranch(bool, *Branch) bool       { return true }

func prefix(pre bool) string {
	if pre {
		return "pre:"
	}
	return "post:"
}

func TestWalkOrder(t *testing.T) {
	a := &Symbol{Header: Header{Type: intType}, Name: "a"}
	neg := &Unary{Header: Header{Type: intType}, Op: OpNegative, Operand: &Symbol{Header: Header{Type: intType}, Name: "hidden"}}
	add := &Binary{Header: Header{Type: intType}, Op: OpAdd, Left: a, Right: neg}
	seq := &Aggregate{Header: Header{Type: voidType}, Op: OpSequence, Sequence: []Node{add, intConst(2)}}

	r := &recorder{}
	Walk(r, seq)
	assert.Equal(t, []string{
		"pre:Sequence", "pre:Add", "sym:a", "pre:Negative", "post:Add", "const", "post:Sequence",
	}, r.order)
}
