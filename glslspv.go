// Package glslspv lowers a type-checked GLSL or HLSL syntax tree to a
// SPIR-V module.
//
// The input is an [ast.Program] produced by a front end (or decoded from
// YAML with [ast.Decode]). Lowering walks the tree once and emits a
// module for the program's single entry point:
//
//	prog, err := ast.Decode(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	module, err := glslspv.Lower(prog, glslspv.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("shader.spv", module.Bytes(), 0o644)
//
// Constructs the lowering does not support are reported as diagnostics
// and skipped; the module is still produced. Programs that break the
// front end's contract are rejected with an error.
package glslspv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/diag"
	"github.com/gogpu/glslspv/lower"
	"github.com/gogpu/glslspv/spirv"
)

// Diagnostic is one problem reported while lowering.
type Diagnostic = diag.Diagnostic

// Sink receives diagnostics as they are reported.
type Sink = diag.Sink

// Diagnostic kinds.
const (
	MissingFunctionality = diag.MissingFunctionality
	Warning              = diag.Warning
	InvariantViolation   = diag.InvariantViolation
)

// Options configures lowering.
type Options struct {
	// EmitDebugSourceText embeds the program source with OpSource and
	// OpSourceContinued.
	EmitDebugSourceText bool

	// GenerateLineInstructions emits OpLine before instructions from a
	// new source line.
	GenerateLineInstructions bool

	// Version is the SPIR-V version written in the module header.
	Version spirv.Version

	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger

	// Sink receives diagnostics in addition to the module's own list.
	// LowerAll reports from several goroutines at once.
	Sink Sink
}

// DefaultOptions returns options for a SPIR-V 1.0 module without debug
// information.
func DefaultOptions() Options {
	return Options{
		Version: spirv.Version1_0,
	}
}

// Module is a lowered SPIR-V module.
type Module struct {
	builder     *spirv.Builder
	words       []uint32
	diagnostics []Diagnostic
}

// Words returns the module as SPIR-V words.
func (m *Module) Words() []uint32 { return m.words }

// Bytes returns the module as a little-endian SPIR-V binary.
func (m *Module) Bytes() []byte { return spirv.WordsToBytes(m.words) }

// Diagnostics returns the diagnostics reported while lowering, in
// report order.
func (m *Module) Diagnostics() []Diagnostic { return m.diagnostics }

// Builder returns the builder the module was assembled in.
func (m *Module) Builder() *spirv.Builder { return m.builder }

// Disassemble writes a textual listing of the module to w.
func (m *Module) Disassemble(w io.Writer) error {
	return spirv.Disassemble(w, m.words)
}

// Lower validates prog and lowers it to a SPIR-V module.
//
// An invariant violation found during lowering is returned as an error
// with no module.
func Lower(prog *ast.Program, opts Options) (module *Module, err error) {
	errs, err := ast.Validate(prog)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %w", &errs[0])
	}

	bag := &diag.Bag{}
	sink := Sink(bag)
	if opts.Sink != nil {
		sink = diag.Tee(bag, opts.Sink)
	}

	defer func() {
		if r := recover(); r != nil {
			fatal, ok := r.(*diag.Fatal)
			if !ok {
				panic(r)
			}
			module, err = nil, fatal
		}
	}()

	b := lower.Lower(prog, lower.Options{
		SourceText: opts.EmitDebugSourceText,
		Lines:      opts.GenerateLineInstructions,
		Version:    opts.Version,
		Logger:     opts.Logger,
		Sink:       sink,
	})
	return &Module{
		builder:     b,
		words:       b.Dump(),
		diagnostics: bag.Items(),
	}, nil
}

// Dump returns the SPIR-V words of m.
func Dump(m *Module) []uint32 {
	return m.Words()
}

// LowerAll lowers independent programs in parallel. Results are in
// input order. The first error cancels the remaining work.
func LowerAll(ctx context.Context, progs []*ast.Program, opts Options) ([]*Module, error) {
	modules := make([]*Module, len(progs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, prog := range progs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := Lower(prog, opts)
			if err != nil {
				return fmt.Errorf("program %d: %w", i, err)
			}
			modules[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return modules, nil
}

// IsFatal reports whether err carries an invariant violation.
func IsFatal(err error) bool {
	var fatal *diag.Fatal
	return errors.As(err, &fatal)
}
