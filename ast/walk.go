package ast

// Visitor receives nodes during Walk. A pre-visit that returns false
// has handled the node's children itself.
type Visitor interface {
	VisitSymbol(*Symbol)
	VisitConstant(*Constant)
	VisitBinary(pre bool, n *Binary) bool
	VisitUnary(pre bool, n *Unary) bool
	VisitAggregate(pre bool, n *Aggregate) bool
	VisitSelection(pre bool, n *Selection) bool
	VisitSwitch(pre bool, n *Switch) bool
	VisitLoop(pre bool, n *Loop) bool
	VisitBranch(pre bool, n *Branch) bool
}

// Walk traverses n in pre-visit, children, post-visit order.
// A nil node is ignored.
//
//nolint:gocyclo,cyclop // one case per node kind
func Walk(v Visitor, n Node) {
	switch n := n.(type) {
	case nil:
	case *Symbol:
		if n != nil {
			v.VisitSymbol(n)
		}
	case *Constant:
		if n != nil {
			v.VisitConstant(n)
		}
	case *Binary:
		if n == nil || !v.VisitBinary(true, n) {
			return
		}
		Walk(v, n.Left)
		Walk(v, n.Right)
		v.VisitBinary(false, n)
	case *Unary:
		if n == nil || !v.VisitUnary(true, n) {
			return
		}
		Walk(v, n.Operand)
		v.VisitUnary(false, n)
	case *Aggregate:
		if n == nil || !v.VisitAggregate(true, n) {
			return
		}
		for _, child := range n.Sequence {
			Walk(v, child)
		}
		v.VisitAggregate(false, n)
	case *Selection:
		if n == nil || !v.VisitSelection(true, n) {
			return
		}
		Walk(v, n.Cond)
		Walk(v, n.True)
		Walk(v, n.False)
		v.VisitSelection(false, n)
	case *Switch:
		if n == nil || !v.VisitSwitch(true, n) {
			return
		}
		Walk(v, n.Cond)
		if n.Body != nil {
			Walk(v, n.Body)
		}
		v.VisitSwitch(false, n)
	case *Loop:
		if n == nil || !v.VisitLoop(true, n) {
			return
		}
		Walk(v, n.Test)
		Walk(v, n.Body)
		Walk(v, n.Terminal)
		v.VisitLoop(false, n)
	case *Branch:
		if n == nil || !v.VisitBranch(true, n) {
			return
		}
		Walk(v, n.Expression)
		v.VisitBranch(false, n)
	}
}
