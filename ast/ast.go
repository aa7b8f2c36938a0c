package ast

import "fmt"

// Stage is the pipeline stage a program is compiled for.
type Stage uint8

const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute
)

var stageNames = map[Stage]string{
	StageVertex:         "vertex",
	StageTessControl:    "tesscontrol",
	StageTessEvaluation: "tesseval",
	StageGeometry:       "geometry",
	StageFragment:       "fragment",
	StageCompute:        "compute",
}

func (s Stage) String() string { return stageNames[s] }

// Language is the source language of the front end.
type Language uint8

const (
	LanguageGLSL Language = iota
	LanguageHLSL
)

// Profile is the GLSL profile.
type Profile uint8

const (
	ProfileNone Profile = iota
	ProfileCore
	ProfileCompatibility
	ProfileES
)

// Primitive is an input or output primitive layout.
type Primitive uint8

const (
	PrimitiveNone Primitive = iota
	PrimitivePoints
	PrimitiveLines
	PrimitiveLinesAdjacency
	PrimitiveTriangles
	PrimitiveTrianglesAdjacency
	PrimitiveQuads
	PrimitiveIsolines
	PrimitiveLineStrip
	PrimitiveTriangleStrip
)

var primitiveNames = map[Primitive]string{
	PrimitiveNone:               "",
	PrimitivePoints:             "points",
	PrimitiveLines:              "lines",
	PrimitiveLinesAdjacency:     "lines_adjacency",
	PrimitiveTriangles:          "triangles",
	PrimitiveTrianglesAdjacency: "triangles_adjacency",
	PrimitiveQuads:              "quads",
	PrimitiveIsolines:           "isolines",
	PrimitiveLineStrip:          "line_strip",
	PrimitiveTriangleStrip:      "triangle_strip",
}

// Spacing is the tessellation vertex spacing.
type Spacing uint8

const (
	SpacingNone Spacing = iota
	SpacingEqual
	SpacingFractionalEven
	SpacingFractionalOdd
)

// VertexOrder is the tessellation winding order.
type VertexOrder uint8

const (
	OrderNone VertexOrder = iota
	OrderCw
	OrderCcw
)

// DepthMode is the fragment depth layout qualifier.
type DepthMode uint8

const (
	DepthNone DepthMode = iota
	DepthAny
	DepthGreater
	DepthLess
	DepthUnchanged
)

// TessParams are the tessellation stage layout settings.
type TessParams struct {
	Vertices  int
	Primitive Primitive
	Spacing   Spacing
	Order     VertexOrder
	PointMode bool
}

// GeometryParams are the geometry stage layout settings.
type GeometryParams struct {
	Input       Primitive
	Output      Primitive
	Invocations int // 0 when not set
	Vertices    int
}

// FragmentParams are the fragment stage layout settings.
type FragmentParams struct {
	PixelCenterInteger bool
	OriginUpperLeft    bool
	EarlyFragmentTests bool
	Depth              DepthMode
	DepthReplacing     bool
}

// ComputeParams are the compute stage layout settings.
type ComputeParams struct {
	LocalSize [3]int
	// LocalSizeSpecID gives the specialization id of each dimension, if any.
	LocalSizeSpecID [3]*int
}

// Program is one linked stage as produced by the front end.
type Program struct {
	Stage Stage
	// EntryPoint is the entry point name; EntryMangled is the mangled
	// name of its function definition.
	EntryPoint   string
	EntryMangled string

	Language   Language
	Profile    Profile
	Version    int
	SourceFile string
	SourceText string
	Extensions []string

	UseStorageBuffer bool
	HLSLOffsets      bool
	XfbMode          bool
	MultiStream      bool

	Tess     TessParams
	Geometry GeometryParams
	Fragment FragmentParams
	Compute  ComputeParams

	Root *Aggregate
}

// HasExtension reports whether the front end requested ext.
func (p *Program) HasExtension(ext string) bool {
	for _, e := range p.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Loc is a source position.
type Loc struct {
	Line   int
	Column int
}

func (l Loc) String() string { return fmt.Sprintf("%d:%d", l.Line, l.Column) }

// Node is any tree node.
type Node interface {
	Pos() Loc
	NodeType() *Type
	node()
}

// Header holds the fields every node has.
type Header struct {
	Loc  Loc
	Type *Type
}

// Pos returns the node's source position.
func (h *Header) Pos() Loc { return h.Loc }

// NodeType returns the node's type.
func (h *Header) NodeType() *Type { return h.Type }

// Symbol references a variable, parameter or named constant. Symbols
// with the same ID are the same variable.
type Symbol struct {
	Header
	ID   int
	Name string
	// ConstArray holds the flattened value of a constant or
	// specialization-constant symbol.
	ConstArray []ConstValue
	// ConstSubtree is the defining expression of a specialization
	// constant built from other constants.
	ConstSubtree Node
}

func (*Symbol) node() {}

// ConstValue is one scalar of a front-end constant. The field read
// depends on the basic type at that position.
type ConstValue struct {
	Int   int64
	Uint  uint64
	Float float64
	Bool  bool
}

// Constant is a folded constant value.
type Constant struct {
	Header
	Values []ConstValue
	// Literal marks a constant written directly in the source.
	Literal bool
}

func (*Constant) node() {}

// Binary is a two-operand operation.
type Binary struct {
	Header
	Op    Operator
	Left  Node
	Right Node
}

func (*Binary) node() {}

// Unary is a one-operand operation.
type Unary struct {
	Header
	Op      Operator
	Operand Node
}

func (*Unary) node() {}

// Aggregate is a sequence, function, call, constructor or builtin
// call with any number of operands.
type Aggregate struct {
	Header
	Op       Operator
	Sequence []Node
	// Name is the mangled name of a function definition or call.
	Name string
	// ParamQualifiers are the callee's parameter storage qualifiers.
	ParamQualifiers []Storage
	UserDefined     bool
}

func (*Aggregate) node() {}

// SelectionControl is a flatten hint on a branch.
type SelectionControl uint8

const (
	SelectionNone SelectionControl = iota
	SelectionFlatten
	SelectionDontFlatten
)

// Selection is an if statement or a ?: expression.
type Selection struct {
	Header
	Cond    Node
	True    Node
	False   Node
	Control SelectionControl
}

func (*Selection) node() {}

// Switch is a switch statement. Body holds case and default Branch
// labels interleaved with statements.
type Switch struct {
	Header
	Cond    Node
	Body    *Aggregate
	Control SelectionControl
}

func (*Switch) node() {}

// Loop is a for, while or do-while loop.
type Loop struct {
	Header
	Test       Node
	Body       Node
	Terminal   Node
	TestFirst  bool
	Unroll     bool
	DontUnroll bool
}

func (*Loop) node() {}

// Branch is a jump or a case label.
type Branch struct {
	Header
	Op         Operator
	Expression Node
}

func (*Branch) node() {}
