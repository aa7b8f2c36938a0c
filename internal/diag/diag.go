// Package diag collects the diagnostics a lowering session reports.
package diag

import (
	"fmt"
	"sync"

	"github.com/gogpu/glslspv/ast"
)

// Kind classifies a diagnostic.
type Kind uint8

const (
	// MissingFunctionality marks a construct the lowering cannot
	// translate. Lowering continues past it.
	MissingFunctionality Kind = iota
	// Warning marks suspicious but valid input.
	Warning
	// InvariantViolation marks input that breaks the front end's
	// contract. Lowering stops.
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case MissingFunctionality:
		return "missing functionality"
	case Warning:
		return "warning"
	case InvariantViolation:
		return "error"
	}
	return "unknown"
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind    Kind
	Message string
	Loc     ast.Loc
}

func (d Diagnostic) String() string {
	if d.Loc.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Loc, d.Kind, d.Message)
}

// Sink receives diagnostics.
type Sink interface {
	Report(Diagnostic)
}

// Bag collects diagnostics. It is safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Report implements Sink.
func (b *Bag) Report(d Diagnostic) {
	b.mu.Lock()
	b.items = append(b.items, d)
	b.mu.Unlock()
}

// Items returns a copy of the collected diagnostics in report order.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Diagnostic(nil), b.items...)
}

// Len returns the number of diagnostics.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Has reports whether any diagnostic of kind k was collected.
func (b *Bag) Has(k Kind) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range b.items {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// Discard drops every diagnostic.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Tee reports to every sink in order.
func Tee(sinks ...Sink) Sink { return tee(sinks) }

type tee []Sink

func (t tee) Report(d Diagnostic) {
	for _, s := range t {
		s.Report(d)
	}
}

// Fatal is the panic value raised for an invariant violation. The
// public entry points recover it and return it as an error.
type Fatal struct {
	Diagnostic
}

func (f *Fatal) Error() string { return f.Diagnostic.String() }

// Panic raises a Fatal for an invariant violation at loc.
func Panic(loc ast.Loc, format string, args ...any) {
	panic(&Fatal{Diagnostic{Kind: InvariantViolation, Message: fmt.Sprintf(format, args...), Loc: loc}})
}
