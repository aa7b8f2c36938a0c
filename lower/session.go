package lower

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"fortio.org/safecast"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/diag"
	"github.com/gogpu/glslspv/spirv"
)

// Options configure one lowering session.
type Options struct {
	// SourceText emits the program source with OpSource.
	SourceText bool
	// Lines emits OpLine instructions on source line changes.
	Lines bool
	// Version is the SPIR-V version written in the header.
	Version spirv.Version
	Logger  *slog.Logger
	Sink    diag.Sink
}

// structKey identifies a converted struct type. Struct identity is
// the member list plus the layout it was converted under.
type structKey struct {
	members      *ast.Struct
	layout       ast.Packing
	matrixLayout ast.MatrixLayout
}

// Session lowers one program into one SPIR-V module. A session is
// used once and is not safe for concurrent use.
type Session struct {
	prog   *ast.Program
	opts   Options
	b      *spirv.Builder
	logger *slog.Logger
	sink   diag.Sink

	// Source position of the node being lowered
	loc ast.Loc

	// GLSL.std.450 import id
	stdBuiltins spirv.ID

	shaderEntry     *spirv.Function
	currentFunction *spirv.Function
	entryPoint      *spirv.Instruction

	sequenceDepth        int
	inEntryPoint         bool
	entryPointTerminated bool
	// linkageOnly is set while visiting linker object lists, which
	// declare symbols without using them.
	linkageOnly bool

	// Input and output variables for the entry point interface
	ioSet map[spirv.ID]struct{}

	// Symbol ID → materialized id
	symbolValues map[int]spirv.ID
	// Symbol IDs of parameters passed by value
	rValueParameters map[int]struct{}
	// Mangled name → function
	functionMap map[string]*spirv.Function

	// Converted structs and their member index remapping
	structMap      map[structKey]spirv.ID
	memberRemapper map[*ast.Struct][]int

	// One entry per open loop or switch; true for loops
	breakForLoop []bool
	// One entry per open loop; set when a break or return was seen
	loopExits []bool
}

// NewSession prepares a session for prog. The module header, source
// information and execution modes are emitted immediately.
func NewSession(prog *ast.Program, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sink := opts.Sink
	if sink == nil {
		sink = diag.Discard
	}
	s := &Session{
		prog:             prog,
		opts:             opts,
		b:                spirv.NewBuilder(opts.Version, spirv.ToolID<<16|spirv.GeneratorVersion, logger),
		logger:           logger,
		sink:             sink,
		ioSet:            make(map[spirv.ID]struct{}),
		symbolValues:     make(map[int]spirv.ID),
		rValueParameters: make(map[int]struct{}),
		functionMap:      make(map[string]*spirv.Function),
		structMap:        make(map[structKey]spirv.ID),
		memberRemapper:   make(map[*ast.Struct][]int),
	}
	s.setup()
	return s
}

// Builder returns the module builder the session writes into.
func (s *Session) Builder() *spirv.Builder { return s.b }

// Lower lowers prog into a new builder. Invariant violations panic with
// a *diag.Fatal.
func Lower(prog *ast.Program, opts Options) *spirv.Builder {
	s := NewSession(prog, opts)
	s.Run()
	return s.b
}

// Run walks the program tree and finishes the module.
func (s *Session) Run() {
	s.logger.Debug("lowering started",
		"stage", s.prog.Stage.String(),
		"entry", s.prog.EntryPoint,
	)
	ast.Walk(s, s.prog.Root)
	s.finish()
	s.logger.Debug("lowering finished",
		"bound", s.b.Bound(),
		"capabilities", len(s.b.Capabilities()),
	)
}

func (s *Session) setup() {
	p := s.prog

	s.b.SetSource(sourceLanguage(p), s.word(p.Version))
	if s.opts.SourceText || s.opts.Lines {
		if p.SourceFile != "" {
			s.b.SetSourceFile(p.SourceFile)
		}
	}
	if s.opts.SourceText {
		s.b.SetSourceText(p.SourceText)
	}
	if s.opts.Lines {
		s.b.SetEmitOpLines()
	}
	for _, ext := range p.Extensions {
		s.b.AddSourceExtension(ext)
	}

	s.stdBuiltins = s.b.Import(spirv.GLSLstd450Name)
	s.b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	s.shaderEntry = s.b.MakeEntryPoint(p.EntryPoint)
	s.entryPoint = s.b.AddEntryPoint(executionModel(p.Stage), s.shaderEntry, p.EntryPoint)

	if p.XfbMode {
		s.b.AddCapability(spirv.CapabilityTransformFeedback)
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeXfb)
	}

	switch p.Stage {
	case ast.StageVertex:
		s.b.AddCapability(spirv.CapabilityShader)

	case ast.StageTessControl, ast.StageTessEvaluation:
		s.b.AddCapability(spirv.CapabilityTessellation)
		s.tessellationModes()

	case ast.StageGeometry:
		s.b.AddCapability(spirv.CapabilityGeometry)
		s.geometryModes()

	case ast.StageFragment:
		s.b.AddCapability(spirv.CapabilityShader)
		s.fragmentModes()

	case ast.StageCompute:
		s.b.AddCapability(spirv.CapabilityShader)
		size := p.Compute.LocalSize
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeLocalSize,
			s.word(size[0]), s.word(size[1]), s.word(size[2]))
	}
}

func (s *Session) tessellationModes() {
	t := s.prog.Tess
	if s.prog.Stage == ast.StageTessControl {
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeOutputVertices, s.word(t.Vertices))
	} else {
		switch t.Primitive {
		case ast.PrimitiveTriangles:
			s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeTriangles)
		case ast.PrimitiveQuads:
			s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeQuads)
		case ast.PrimitiveIsolines:
			s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeIsolines)
		}
	}

	switch t.Spacing {
	case ast.SpacingEqual:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeSpacingEqual)
	case ast.SpacingFractionalEven:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeSpacingFractionalEven)
	case ast.SpacingFractionalOdd:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeSpacingFractionalOdd)
	}

	switch t.Order {
	case ast.OrderCw:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeVertexOrderCw)
	case ast.OrderCcw:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeVertexOrderCcw)
	}

	if t.PointMode {
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModePointMode)
	}
}

func (s *Session) geometryModes() {
	g := s.prog.Geometry
	switch g.Input {
	case ast.PrimitivePoints:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeInputPoints)
	case ast.PrimitiveLines:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeInputLines)
	case ast.PrimitiveLinesAdjacency:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeInputLinesAdjacency)
	case ast.PrimitiveTriangles:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeTriangles)
	case ast.PrimitiveTrianglesAdjacency:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeInputTrianglesAdjacency)
	}

	s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeInvocations, s.word(max(g.Invocations, 1)))

	switch g.Output {
	case ast.PrimitivePoints:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeOutputPoints)
	case ast.PrimitiveLineStrip:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeOutputLineStrip)
	case ast.PrimitiveTriangleStrip:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeOutputTriangleStrip)
	}
	s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeOutputVertices, s.word(g.Vertices))
}

func (s *Session) fragmentModes() {
	f := s.prog.Fragment
	if f.PixelCenterInteger {
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModePixelCenterInteger)
	}
	if f.OriginUpperLeft {
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeOriginUpperLeft)
	} else {
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeOriginLowerLeft)
	}
	if f.EarlyFragmentTests {
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeEarlyFragmentTests)
	}

	switch f.Depth {
	case ast.DepthGreater:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeDepthGreater)
	case ast.DepthLess:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeDepthLess)
	case ast.DepthUnchanged:
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeDepthUnchanged)
	}
	if f.DepthReplacing {
		s.b.AddExecutionMode(s.shaderEntry, spirv.ExecutionModeDepthReplacing)
	}
}

// finish closes the entry point, completes its interface list and drops
// decorations on ids that were never emitted.
func (s *Session) finish() {
	if !s.entryPointTerminated {
		blocks := s.shaderEntry.Blocks()
		s.b.SetBuildPoint(blocks[len(blocks)-1])
		s.b.LeaveFunction()
	}

	ids := make([]spirv.ID, 0, len(s.ioSet))
	for id := range s.ioSet {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	s.entryPoint.AddIDOperands(ids)

	s.b.EliminateDeadDecorations()
}

func sourceLanguage(p *ast.Program) spirv.SourceLanguage {
	switch {
	case p.Language == ast.LanguageHLSL:
		return spirv.SourceLanguageHLSL
	case p.Profile == ast.ProfileES:
		return spirv.SourceLanguageESSL
	default:
		return spirv.SourceLanguageGLSL
	}
}

func executionModel(stage ast.Stage) spirv.ExecutionModel {
	switch stage {
	case ast.StageTessControl:
		return spirv.ExecutionModelTessellationControl
	case ast.StageTessEvaluation:
		return spirv.ExecutionModelTessellationEvaluation
	case ast.StageGeometry:
		return spirv.ExecutionModelGeometry
	case ast.StageFragment:
		return spirv.ExecutionModelFragment
	case ast.StageCompute:
		return spirv.ExecutionModelGLCompute
	default:
		return spirv.ExecutionModelVertex
	}
}

// missing reports a construct that cannot be lowered. Lowering goes on.
func (s *Session) missing(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.logger.Debug("missing functionality", "message", msg, "loc", s.loc.String())
	s.sink.Report(diag.Diagnostic{Kind: diag.MissingFunctionality, Message: msg, Loc: s.loc})
}

func (s *Session) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.logger.Warn(msg, "loc", s.loc.String())
	s.sink.Report(diag.Diagnostic{Kind: diag.Warning, Message: msg, Loc: s.loc})
}

// word converts a non-negative front-end integer to a literal word.
func (s *Session) word(v int) uint32 {
	w, err := safecast.Conv[uint32](v)
	if err != nil {
		diag.Panic(s.loc, "value %d does not fit a literal word: %v", v, err)
	}
	return w
}

// at records n's position as the current location and notes its line.
func (s *Session) at(n ast.Node) {
	if loc := n.Pos(); loc.Line != 0 {
		s.loc = loc
		s.b.SetLine(loc.Line)
	}
}
