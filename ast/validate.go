package ast

import (
	"fmt"
)

// ValidationError describes a program that breaks the front end's
// contract with the lowering.
type ValidationError struct {
	Message string
	Loc     Loc
	// Function is the mangled name of the enclosing function, if any.
	Function string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("%s: in function %s: %s", e.Loc, e.Function, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// Validator checks a program before lowering.
type Validator struct {
	program  *Program
	errors   []ValidationError
	function string
	seen     map[*Struct]bool
}

// Validate checks the program for contract violations.
// Returns validation errors if any, or nil if the program is valid.
func Validate(prog *Program) ([]ValidationError, error) {
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	if prog.Root == nil {
		return nil, fmt.Errorf("program has no root sequence")
	}

	v := &Validator{
		program: prog,
		errors:  make([]ValidationError, 0),
		seen:    make(map[*Struct]bool),
	}
	v.validateEntryPoint()
	Walk(v, prog.Root)

	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

func (v *Validator) addError(loc Loc, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		Message:  fmt.Sprintf(format, args...),
		Loc:      loc,
		Function: v.function,
	})
}

// validateEntryPoint requires a definition of the entry function among
// the top-level function definitions.
func (v *Validator) validateEntryPoint() {
	var found bool
	var visit func(n *Aggregate)
	visit = func(n *Aggregate) {
		for _, child := range n.Sequence {
			agg, ok := child.(*Aggregate)
			if !ok {
				continue
			}
			switch agg.Op {
			case OpSequence:
				visit(agg)
			case OpFunction:
				if agg.Name == v.program.EntryMangled {
					found = true
				}
			}
		}
	}
	visit(v.program.Root)
	if !found {
		v.addError(v.program.Root.Loc, "entry point %q is not defined", v.program.EntryMangled)
	}
}

func (v *Validator) validateType(loc Loc, t *Type) {
	if t == nil {
		v.addError(loc, "node has no type")
		return
	}
	if t.IsStruct() && t.Struct == nil {
		v.addError(loc, "%s type %q has no member list", t.Basic, t.TypeName)
	}
	if t.Struct == nil || v.seen[t.Struct] {
		return
	}
	v.seen[t.Struct] = true
	for i, m := range t.Struct.Members {
		if m == nil {
			v.addError(loc, "struct %q member %d has no type", t.Struct.Name, i)
			continue
		}
		if m.FieldName == "" {
			v.addError(loc, "struct %q member %d has no name", t.Struct.Name, i)
		}
		v.validateType(loc, m)
	}
}

// VisitSymbol checks that specialization constants have a value source.
func (v *Validator) VisitSymbol(n *Symbol) {
	v.validateType(n.Loc, n.Type)
	if n.Type == nil {
		return
	}
	q := &n.Type.Qualifier
	if q.SpecConstant && q.BuiltIn != BuiltInWorkGroupSize && len(n.ConstArray) == 0 && n.ConstSubtree == nil {
		v.addError(n.Loc, "specialization constant %q has neither a value nor a defining expression", n.Name)
	}
}

// VisitConstant checks that a constant carries values.
func (v *Validator) VisitConstant(n *Constant) {
	v.validateType(n.Loc, n.Type)
	if len(n.Values) == 0 {
		v.addError(n.Loc, "constant has no values")
	}
}

// VisitBinary checks operand presence.
func (v *Validator) VisitBinary(pre bool, n *Binary) bool {
	if pre {
		v.validateType(n.Loc, n.Type)
		if n.Left == nil || n.Right == nil {
			v.addError(n.Loc, "binary %s is missing an operand", n.Op)
			return false
		}
	}
	return true
}

// VisitUnary checks operand presence.
func (v *Validator) VisitUnary(pre bool, n *Unary) bool {
	if pre {
		v.validateType(n.Loc, n.Type)
		if n.Operand == nil {
			v.addError(n.Loc, "unary %s has no operand", n.Op)
			return false
		}
	}
	return true
}

// VisitAggregate tracks the enclosing function and checks call shapes.
func (v *Validator) VisitAggregate(pre bool, n *Aggregate) bool {
	if !pre {
		if n.Op == OpFunction {
			v.function = ""
		}
		return true
	}
	v.validateType(n.Loc, n.Type)
	switch n.Op {
	case OpFunction:
		v.function = n.Name
		if n.Name == "" {
			v.addError(n.Loc, "function definition has no name")
		}
	case OpFunctionCall:
		if n.Name == "" {
			v.addError(n.Loc, "function call has no callee name")
		}
		if n.UserDefined && len(n.ParamQualifiers) != len(n.Sequence) {
			v.addError(n.Loc, "call to %s has %d arguments but %d parameter qualifiers",
				n.Name, len(n.Sequence), len(n.ParamQualifiers))
		}
	}
	for i, child := range n.Sequence {
		if child == nil {
			v.addError(n.Loc, "%s operand %d is nil", n.Op, i)
		}
	}
	return true
}

// VisitSelection checks for a condition.
func (v *Validator) VisitSelection(pre bool, n *Selection) bool {
	if pre && n.Cond == nil {
		v.addError(n.Loc, "selection has no condition")
		return false
	}
	return true
}

// VisitSwitch checks the body and that case labels are integer constants.
func (v *Validator) VisitSwitch(pre bool, n *Switch) bool {
	if !pre {
		return true
	}
	if n.Cond == nil || n.Body == nil {
		v.addError(n.Loc, "switch needs a selector and a body")
		return false
	}
	defaults := 0
	for _, child := range n.Body.Sequence {
		br, ok := child.(*Branch)
		if !ok {
			continue
		}
		switch br.Op {
		case OpDefault:
			defaults++
		case OpCase:
			c, ok := br.Expression.(*Constant)
			if !ok || c.Type == nil || len(c.Values) == 0 ||
				(c.Type.Basic != BasicInt && c.Type.Basic != BasicUint) {
				v.addError(br.Loc, "case label must be an integer constant")
			}
		}
	}
	if defaults > 1 {
		v.addError(n.Loc, "switch has %d default labels", defaults)
	}
	return true
}

// VisitLoop checks that a loop has a body or a test.
func (v *Validator) VisitLoop(pre bool, n *Loop) bool {
	if pre && n.Body == nil && n.Test == nil {
		v.addError(n.Loc, "loop has neither a body nor a test")
	}
	return true
}

// VisitBranch checks branch operators.
func (v *Validator) VisitBranch(pre bool, n *Branch) bool {
	if !pre {
		return true
	}
	switch n.Op {
	case OpKill, OpReturn, OpBreak, OpContinue, OpCase, OpDefault:
	default:
		v.addError(n.Loc, "%s is not a branch operator", n.Op)
	}
	return true
}
