package ast

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// The YAML form mirrors the node tree. Struct member lists are declared
// once under "structs" and referenced by name so every use shares one
// *Struct. Symbol nodes repeating an id may omit their type.

type programDoc struct {
	Stage            string      `yaml:"stage"`
	Entry            string      `yaml:"entry"`
	EntryMangled     string      `yaml:"entryMangled"`
	Language         string      `yaml:"language"`
	Profile          string      `yaml:"profile"`
	Version          int         `yaml:"version"`
	SourceFile       string      `yaml:"sourceFile"`
	SourceText       string      `yaml:"sourceText"`
	Extensions       []string    `yaml:"extensions"`
	UseStorageBuffer bool        `yaml:"useStorageBuffer"`
	HLSLOffsets      bool        `yaml:"hlslOffsets"`
	XfbMode          bool        `yaml:"xfb"`
	MultiStream      bool        `yaml:"multiStream"`
	Tess             tessDoc     `yaml:"tess"`
	Geometry         geometryDoc `yaml:"geometry"`
	Fragment         fragmentDoc `yaml:"fragment"`
	Compute          computeDoc  `yaml:"compute"`
	Structs          yaml.Node   `yaml:"structs"`
	Root             *nodeDoc    `yaml:"root"`
}

type tessDoc struct {
	Vertices  int    `yaml:"vertices"`
	Primitive string `yaml:"primitive"`
	Spacing   string `yaml:"spacing"`
	Order     string `yaml:"order"`
	PointMode bool   `yaml:"pointMode"`
}

type geometryDoc struct {
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Invocations int    `yaml:"invocations"`
	Vertices    int    `yaml:"vertices"`
}

type fragmentDoc struct {
	PixelCenterInteger bool   `yaml:"pixelCenterInteger"`
	OriginUpperLeft    bool   `yaml:"originUpperLeft"`
	EarlyFragmentTests bool   `yaml:"earlyFragmentTests"`
	Depth              string `yaml:"depth"`
	DepthReplacing     bool   `yaml:"depthReplacing"`
}

type computeDoc struct {
	LocalSize       [3]int  `yaml:"localSize"`
	LocalSizeSpecID [3]*int `yaml:"localSizeSpecId"`
}

type memberDoc struct {
	Name    string  `yaml:"name"`
	TypeDoc typeDoc `yaml:",inline"`
}

type typeDoc struct {
	Basic     string       `yaml:"basic"`
	Vector    int          `yaml:"vector"`
	Matrix    []int        `yaml:"matrix"`
	Arrays    []arrayDoc   `yaml:"arrays"`
	Struct    string       `yaml:"struct"`
	TypeName  string       `yaml:"typeName"`
	Hidden    bool         `yaml:"hidden"`
	Qualifier qualifierDoc `yaml:"qualifier"`
	Sampler   *samplerDoc  `yaml:"sampler"`
}

type arrayDoc struct {
	Size int
	Spec *nodeDoc
}

// UnmarshalYAML accepts either a literal size or {spec: node}.
func (a *arrayDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		return n.Decode(&a.Size)
	}
	var m struct {
		Size int      `yaml:"size"`
		Spec *nodeDoc `yaml:"spec"`
	}
	if err := n.Decode(&m); err != nil {
		return err
	}
	a.Size, a.Spec = m.Size, m.Spec
	return nil
}

type samplerDoc struct {
	Kind    string `yaml:"kind"`
	Type    string `yaml:"type"`
	Dim     string `yaml:"dim"`
	Arrayed bool   `yaml:"arrayed"`
	Shadow  bool   `yaml:"shadow"`
	MS      bool   `yaml:"ms"`
	Format  string `yaml:"format"`
}

type qualifierDoc struct {
	Storage              string `yaml:"storage"`
	Precision            string `yaml:"precision"`
	Matrix               string `yaml:"matrix"`
	Packing              string `yaml:"packing"`
	PushConstant         bool   `yaml:"pushConstant"`
	Location             *int   `yaml:"location"`
	Component            *int   `yaml:"component"`
	Index                *int   `yaml:"index"`
	Binding              *int   `yaml:"binding"`
	Set                  *int   `yaml:"set"`
	Offset               *int   `yaml:"offset"`
	SpecID               *int   `yaml:"specId"`
	InputAttachmentIndex *int   `yaml:"inputAttachmentIndex"`
	XfbBuffer            *int   `yaml:"xfbBuffer"`
	XfbStride            *int   `yaml:"xfbStride"`
	XfbOffset            *int   `yaml:"xfbOffset"`
	Stream               *int   `yaml:"stream"`
	Interpolation        string `yaml:"interpolation"`
	Centroid             bool   `yaml:"centroid"`
	Patch                bool   `yaml:"patch"`
	Sample               bool   `yaml:"sample"`
	Invariant            bool   `yaml:"invariant"`
	Precise              bool   `yaml:"precise"`
	Coherent             bool   `yaml:"coherent"`
	Volatile             bool   `yaml:"volatile"`
	Restrict             bool   `yaml:"restrict"`
	ReadOnly             bool   `yaml:"readonly"`
	WriteOnly            bool   `yaml:"writeonly"`
	SpecConstant         bool   `yaml:"specConstant"`
	BuiltIn              string `yaml:"builtin"`
}

type nodeDoc struct {
	Kind   string   `yaml:"kind"`
	Line   int      `yaml:"line"`
	Column int      `yaml:"column"`
	Type   *typeDoc `yaml:"type"`
	Op     string   `yaml:"op"`

	ID       int          `yaml:"id"`
	Name     string       `yaml:"name"`
	Values   []ConstValue `yaml:"values"`
	Literal  bool         `yaml:"literal"`
	Subtree  *nodeDoc     `yaml:"subtree"`
	Left     *nodeDoc     `yaml:"left"`
	Right    *nodeDoc     `yaml:"right"`
	Operand  *nodeDoc     `yaml:"operand"`
	Children []*nodeDoc   `yaml:"children"`
	Params   []string     `yaml:"params"`
	User     bool         `yaml:"user"`

	Cond       *nodeDoc `yaml:"cond"`
	Then       *nodeDoc `yaml:"then"`
	Else       *nodeDoc `yaml:"else"`
	Control    string   `yaml:"control"`
	Body       *nodeDoc `yaml:"body"`
	Test       *nodeDoc `yaml:"test"`
	Terminal   *nodeDoc `yaml:"terminal"`
	TestFirst  bool     `yaml:"testFirst"`
	Unroll     bool     `yaml:"unroll"`
	DontUnroll bool     `yaml:"dontUnroll"`
	Expr       *nodeDoc `yaml:"expr"`
}

// UnmarshalYAML reads a scalar constant. Integers fill every numeric
// field so the element type can pick the one it reads.
func (c *ConstValue) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: constant value must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!bool":
		return n.Decode(&c.Bool)
	case "!!float":
		return n.Decode(&c.Float)
	}
	if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
		*c = ConstValue{Int: i, Uint: uint64(i), Float: float64(i), Bool: i != 0}
		return nil
	}
	if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
		*c = ConstValue{Int: int64(u), Uint: u, Float: float64(u), Bool: u != 0}
		return nil
	}
	return fmt.Errorf("line %d: invalid constant %q", n.Line, n.Value)
}

// Decode reads a program in its YAML form.
func Decode(r io.Reader) (*Program, error) {
	var doc programDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	d := &decoder{
		structs: make(map[string]*Struct),
		symbols: make(map[int]*Type),
	}
	prog, err := d.program(&doc)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

type decoder struct {
	structs map[string]*Struct
	symbols map[int]*Type
	errs    []error
}

func (d *decoder) fail(format string, args ...any) {
	d.errs = append(d.errs, fmt.Errorf(format, args...))
}

func lookup[T comparable](d *decoder, what string, names map[T]string, s string) T {
	for v, name := range names {
		if name == s {
			return v
		}
	}
	var zero T
	d.fail("unknown %s %q", what, s)
	return zero
}

func (d *decoder) program(doc *programDoc) (*Program, error) {
	p := &Program{
		EntryPoint:       doc.Entry,
		EntryMangled:     doc.EntryMangled,
		Version:          doc.Version,
		SourceFile:       doc.SourceFile,
		SourceText:       doc.SourceText,
		Extensions:       doc.Extensions,
		UseStorageBuffer: doc.UseStorageBuffer,
		HLSLOffsets:      doc.HLSLOffsets,
		XfbMode:          doc.XfbMode,
		MultiStream:      doc.MultiStream,
	}
	if p.EntryPoint == "" {
		p.EntryPoint = "main"
	}
	if p.EntryMangled == "" {
		p.EntryMangled = p.EntryPoint + "("
	}
	p.Stage = lookup(d, "stage", stageNames, doc.Stage)
	switch doc.Language {
	case "", "glsl":
		p.Language = LanguageGLSL
	case "hlsl":
		p.Language = LanguageHLSL
	default:
		d.fail("unknown language %q", doc.Language)
	}
	p.Profile = lookup(d, "profile", map[Profile]string{
		ProfileNone: "", ProfileCore: "core", ProfileCompatibility: "compatibility", ProfileES: "es",
	}, doc.Profile)

	p.Tess = TessParams{
		Vertices:  doc.Tess.Vertices,
		Primitive: lookup(d, "primitive", primitiveNames, doc.Tess.Primitive),
		Spacing: lookup(d, "spacing", map[Spacing]string{
			SpacingNone: "", SpacingEqual: "equal_spacing",
			SpacingFractionalEven: "fractional_even_spacing", SpacingFractionalOdd: "fractional_odd_spacing",
		}, doc.Tess.Spacing),
		Order:     lookup(d, "vertex order", map[VertexOrder]string{OrderNone: "", OrderCw: "cw", OrderCcw: "ccw"}, doc.Tess.Order),
		PointMode: doc.Tess.PointMode,
	}
	p.Geometry = GeometryParams{
		Input:       lookup(d, "primitive", primitiveNames, doc.Geometry.Input),
		Output:      lookup(d, "primitive", primitiveNames, doc.Geometry.Output),
		Invocations: doc.Geometry.Invocations,
		Vertices:    doc.Geometry.Vertices,
	}
	p.Fragment = FragmentParams{
		PixelCenterInteger: doc.Fragment.PixelCenterInteger,
		OriginUpperLeft:    doc.Fragment.OriginUpperLeft,
		EarlyFragmentTests: doc.Fragment.EarlyFragmentTests,
		Depth: lookup(d, "depth mode", map[DepthMode]string{
			DepthNone: "", DepthAny: "depth_any", DepthGreater: "depth_greater",
			DepthLess: "depth_less", DepthUnchanged: "depth_unchanged",
		}, doc.Fragment.Depth),
		DepthReplacing: doc.Fragment.DepthReplacing,
	}
	p.Compute = ComputeParams{LocalSize: doc.Compute.LocalSize, LocalSizeSpecID: doc.Compute.LocalSizeSpecID}

	if err := d.declareStructs(&doc.Structs); err != nil {
		return nil, err
	}
	if doc.Root != nil {
		root, ok := d.node(doc.Root).(*Aggregate)
		if !ok {
			d.fail("root must be an aggregate")
		}
		p.Root = root
	}
	if len(d.errs) > 0 {
		return nil, errors.Join(d.errs...)
	}
	return p, nil
}

// declareStructs creates every *Struct before decoding any member so
// members may reference structs declared later.
func (d *decoder) declareStructs(n *yaml.Node) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: structs must be a mapping", n.Line)
	}
	members := make(map[string][]memberDoc, len(n.Content)/2)
	var order []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		var list []memberDoc
		if err := n.Content[i+1].Decode(&list); err != nil {
			return fmt.Errorf("struct %s: %w", name, err)
		}
		d.structs[name] = &Struct{Name: name}
		members[name] = list
		order = append(order, name)
	}
	for _, name := range order {
		st := d.structs[name]
		for i := range members[name] {
			m := &members[name][i]
			t := d.typ(&m.TypeDoc)
			t.FieldName = m.Name
			st.Members = append(st.Members, t)
		}
	}
	return nil
}

func (d *decoder) typ(doc *typeDoc) *Type {
	t := &Type{
		Basic:      lookup(d, "basic type", basicTypeNames, doc.Basic),
		VectorSize: max(doc.Vector, 1),
		TypeName:   doc.TypeName,
		Hidden:     doc.Hidden,
		Qualifier:  d.qualifier(&doc.Qualifier),
	}
	switch len(doc.Matrix) {
	case 0:
	case 2:
		t.MatrixCols, t.MatrixRows = doc.Matrix[0], doc.Matrix[1]
		t.VectorSize = 0
	default:
		d.fail("matrix must be [columns, rows]")
	}
	for _, a := range doc.Arrays {
		size := ArraySize{Size: a.Size}
		if a.Spec != nil {
			size.Spec = d.node(a.Spec)
		}
		t.Arrays = append(t.Arrays, size)
	}
	if doc.Struct != "" {
		st, ok := d.structs[doc.Struct]
		if !ok {
			d.fail("undeclared struct %q", doc.Struct)
		}
		t.Struct = st
		if t.TypeName == "" {
			t.TypeName = doc.Struct
		}
	}
	if doc.Sampler != nil {
		t.Sampler = Sampler{
			Kind:    lookup(d, "sampler kind", samplerKindNames, doc.Sampler.Kind),
			Type:    lookup(d, "sampled type", basicTypeNames, doc.Sampler.Type),
			Dim:     lookup(d, "sampler dim", samplerDimNames, doc.Sampler.Dim),
			Arrayed: doc.Sampler.Arrayed,
			Shadow:  doc.Sampler.Shadow,
			MS:      doc.Sampler.MS,
			Format:  lookup(d, "image format", imageFormatNames, doc.Sampler.Format),
		}
	}
	return t
}

func (d *decoder) qualifier(doc *qualifierDoc) Qualifier {
	return Qualifier{
		Storage:              lookup(d, "storage", storageNames, orDefault(doc.Storage, "temp")),
		Precision:            lookup(d, "precision", precisionNames, doc.Precision),
		MatrixLayout:         lookup(d, "matrix layout", matrixLayoutNames, doc.Matrix),
		Packing:              lookup(d, "packing", packingNames, doc.Packing),
		PushConstant:         doc.PushConstant,
		Location:             doc.Location,
		Component:            doc.Component,
		Index:                doc.Index,
		Binding:              doc.Binding,
		Set:                  doc.Set,
		Offset:               doc.Offset,
		SpecID:               doc.SpecID,
		InputAttachmentIndex: doc.InputAttachmentIndex,
		XfbBuffer:            doc.XfbBuffer,
		XfbStride:            doc.XfbStride,
		XfbOffset:            doc.XfbOffset,
		Stream:               doc.Stream,
		Interpolation:        lookup(d, "interpolation", interpolationNames, doc.Interpolation),
		Centroid:             doc.Centroid,
		Patch:                doc.Patch,
		Sample:               doc.Sample,
		Invariant:            doc.Invariant,
		Precise:              doc.Precise,
		Coherent:             doc.Coherent,
		Volatile:             doc.Volatile,
		Restrict:             doc.Restrict,
		ReadOnly:             doc.ReadOnly,
		WriteOnly:            doc.WriteOnly,
		SpecConstant:         doc.SpecConstant,
		BuiltIn:              lookup(d, "builtin", builtInNames, doc.BuiltIn),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (d *decoder) op(s string) Operator {
	op, err := ParseOperator(s)
	if err != nil {
		d.errs = append(d.errs, err)
	}
	return op
}

func (d *decoder) header(doc *nodeDoc) Header {
	h := Header{Loc: Loc{Line: doc.Line, Column: doc.Column}}
	if doc.Type != nil {
		h.Type = d.typ(doc.Type)
	} else {
		h.Type = &Type{Basic: BasicVoid}
	}
	return h
}

func (d *decoder) optional(doc *nodeDoc) Node {
	if doc == nil {
		return nil
	}
	return d.node(doc)
}

//nolint:gocyclo,cyclop,funlen // one case per node kind
func (d *decoder) node(doc *nodeDoc) Node {
	if doc == nil {
		d.fail("missing node")
		return nil
	}
	switch doc.Kind {
	case "symbol":
		h := d.header(doc)
		if doc.Type == nil {
			if t, ok := d.symbols[doc.ID]; ok {
				h.Type = t
			} else {
				d.fail("line %d: symbol %d (%s) has no type", doc.Line, doc.ID, doc.Name)
			}
		} else if _, ok := d.symbols[doc.ID]; !ok {
			d.symbols[doc.ID] = h.Type
		}
		return &Symbol{
			Header:       h,
			ID:           doc.ID,
			Name:         doc.Name,
			ConstArray:   doc.Values,
			ConstSubtree: d.optional(doc.Subtree),
		}
	case "constant":
		return &Constant{Header: d.header(doc), Values: doc.Values, Literal: doc.Literal}
	case "binary":
		return &Binary{Header: d.header(doc), Op: d.op(doc.Op), Left: d.node(doc.Left), Right: d.node(doc.Right)}
	case "unary":
		return &Unary{Header: d.header(doc), Op: d.op(doc.Op), Operand: d.node(doc.Operand)}
	case "aggregate":
		agg := &Aggregate{Header: d.header(doc), Op: d.op(doc.Op), Name: doc.Name, UserDefined: doc.User}
		for _, c := range doc.Children {
			agg.Sequence = append(agg.Sequence, d.node(c))
		}
		for _, s := range doc.Params {
			agg.ParamQualifiers = append(agg.ParamQualifiers, lookup(d, "storage", storageNames, s))
		}
		return agg
	case "selection":
		return &Selection{
			Header:  d.header(doc),
			Cond:    d.node(doc.Cond),
			True:    d.optional(doc.Then),
			False:   d.optional(doc.Else),
			Control: d.selectionControl(doc.Control),
		}
	case "switch":
		sw := &Switch{Header: d.header(doc), Cond: d.node(doc.Cond), Control: d.selectionControl(doc.Control)}
		body, ok := d.node(doc.Body).(*Aggregate)
		if !ok {
			d.fail("line %d: switch body must be an aggregate", doc.Line)
		}
		sw.Body = body
		return sw
	case "loop":
		return &Loop{
			Header:     d.header(doc),
			Test:       d.optional(doc.Test),
			Body:       d.optional(doc.Body),
			Terminal:   d.optional(doc.Terminal),
			TestFirst:  doc.TestFirst,
			Unroll:     doc.Unroll,
			DontUnroll: doc.DontUnroll,
		}
	case "branch":
		return &Branch{Header: d.header(doc), Op: d.op(doc.Op), Expression: d.optional(doc.Expr)}
	}
	d.fail("line %d: unknown node kind %q", doc.Line, doc.Kind)
	return nil
}

func (d *decoder) selectionControl(s string) SelectionControl {
	return lookup(d, "selection control", map[SelectionControl]string{
		SelectionNone: "", SelectionFlatten: "flatten", SelectionDontFlatten: "dont_flatten",
	}, s)
}
