package ast

// BasicType is the scalar or opaque kind at the bottom of a type.
type BasicType uint8

const (
	BasicVoid BasicType = iota
	BasicFloat
	BasicDouble
	BasicFloat16
	BasicInt
	BasicUint
	BasicInt64
	BasicUint64
	BasicBool
	BasicAtomicUint
	BasicSampler
	BasicStruct
	BasicBlock
)

var basicTypeNames = map[BasicType]string{
	BasicVoid:       "void",
	BasicFloat:      "float",
	BasicDouble:     "double",
	BasicFloat16:    "float16",
	BasicInt:        "int",
	BasicUint:       "uint",
	BasicInt64:      "int64",
	BasicUint64:     "uint64",
	BasicBool:       "bool",
	BasicAtomicUint: "atomic_uint",
	BasicSampler:    "sampler",
	BasicStruct:     "struct",
	BasicBlock:      "block",
}

func (b BasicType) String() string { return basicTypeNames[b] }

// IsFloat reports whether b is a floating-point kind.
func (b BasicType) IsFloat() bool {
	return b == BasicFloat || b == BasicDouble || b == BasicFloat16
}

// IsInteger reports whether b is a signed or unsigned integer kind.
func (b BasicType) IsInteger() bool {
	return b == BasicInt || b == BasicUint || b == BasicInt64 || b == BasicUint64
}

// IsUnsigned reports whether b is an unsigned integer kind.
func (b BasicType) IsUnsigned() bool {
	return b == BasicUint || b == BasicUint64 || b == BasicAtomicUint
}

// Is64 reports whether b is a 64-bit kind.
func (b BasicType) Is64() bool {
	return b == BasicDouble || b == BasicInt64 || b == BasicUint64
}

// SamplerDim is the dimensionality of a texture or image.
type SamplerDim uint8

const (
	Dim1D SamplerDim = iota
	Dim2D
	Dim3D
	DimCube
	DimRect
	DimBuffer
	DimSubpass
)

var samplerDimNames = map[SamplerDim]string{
	Dim1D:      "1D",
	Dim2D:      "2D",
	Dim3D:      "3D",
	DimCube:    "Cube",
	DimRect:    "Rect",
	DimBuffer:  "Buffer",
	DimSubpass: "Subpass",
}

func (d SamplerDim) String() string { return samplerDimNames[d] }

// SamplerKind separates combined samplers from separate textures,
// storage images and pure samplers.
type SamplerKind uint8

const (
	SamplerCombined SamplerKind = iota
	SamplerTexture
	SamplerImage
	SamplerPure
)

var samplerKindNames = map[SamplerKind]string{
	SamplerCombined: "combined",
	SamplerTexture:  "texture",
	SamplerImage:    "image",
	SamplerPure:     "sampler",
}

// ImageFormat is the layout format qualifier of a storage image.
type ImageFormat uint8

const (
	FormatNone ImageFormat = iota
	FormatRgba32f
	FormatRgba16f
	FormatR32f
	FormatRgba8
	FormatRgba8Snorm
	FormatRg32f
	FormatRg16f
	FormatR11fG11fB10f
	FormatR16f
	FormatRgba16
	FormatRgb10A2
	FormatRg16
	FormatRg8
	FormatR16
	FormatR8
	FormatRgba16Snorm
	FormatRg16Snorm
	FormatRg8Snorm
	FormatR16Snorm
	FormatR8Snorm
	FormatRgba32i
	FormatRgba16i
	FormatRgba8i
	FormatR32i
	FormatRg32i
	FormatRg16i
	FormatRg8i
	FormatR16i
	FormatR8i
	FormatRgba32ui
	FormatRgba16ui
	FormatRgba8ui
	FormatR32ui
	FormatRgb10a2ui
	FormatRg32ui
	FormatRg16ui
	FormatRg8ui
	FormatR16ui
	FormatR8ui
)

var imageFormatNames = map[ImageFormat]string{
	FormatNone:         "",
	FormatRgba32f:      "rgba32f",
	FormatRgba16f:      "rgba16f",
	FormatR32f:         "r32f",
	FormatRgba8:        "rgba8",
	FormatRgba8Snorm:   "rgba8_snorm",
	FormatRg32f:        "rg32f",
	FormatRg16f:        "rg16f",
	FormatR11fG11fB10f: "r11f_g11f_b10f",
	FormatR16f:         "r16f",
	FormatRgba16:       "rgba16",
	FormatRgb10A2:      "rgb10_a2",
	FormatRg16:         "rg16",
	FormatRg8:          "rg8",
	FormatR16:          "r16",
	FormatR8:           "r8",
	FormatRgba16Snorm:  "rgba16_snorm",
	FormatRg16Snorm:    "rg16_snorm",
	FormatRg8Snorm:     "rg8_snorm",
	FormatR16Snorm:     "r16_snorm",
	FormatR8Snorm:      "r8_snorm",
	FormatRgba32i:      "rgba32i",
	FormatRgba16i:      "rgba16i",
	FormatRgba8i:       "rgba8i",
	FormatR32i:         "r32i",
	FormatRg32i:        "rg32i",
	FormatRg16i:        "rg16i",
	FormatRg8i:         "rg8i",
	FormatR16i:         "r16i",
	FormatR8i:          "r8i",
	FormatRgba32ui:     "rgba32ui",
	FormatRgba16ui:     "rgba16ui",
	FormatRgba8ui:      "rgba8ui",
	FormatR32ui:        "r32ui",
	FormatRgb10a2ui:    "rgb10_a2ui",
	FormatRg32ui:       "rg32ui",
	FormatRg16ui:       "rg16ui",
	FormatRg8ui:        "rg8ui",
	FormatR16ui:        "r16ui",
	FormatR8ui:         "r8ui",
}

// Sampler describes an opaque texture, image or sampler type.
type Sampler struct {
	Kind    SamplerKind
	Type    BasicType // sampled type: float, int or uint
	Dim     SamplerDim
	Arrayed bool
	Shadow  bool
	MS      bool
	Format  ImageFormat
}

// IsPureSampler reports whether s is a sampler with no image.
func (s Sampler) IsPureSampler() bool { return s.Kind == SamplerPure }

// IsImage reports whether s is a storage image.
func (s Sampler) IsImage() bool { return s.Kind == SamplerImage }

// IsCombined reports whether s is a combined image and sampler.
func (s Sampler) IsCombined() bool { return s.Kind == SamplerCombined }

// IsSubpass reports whether s is a subpass input.
func (s Sampler) IsSubpass() bool { return s.Dim == DimSubpass }

// ArraySize is one array dimension. A zero Size with no Spec is
// an unsized (runtime) dimension.
type ArraySize struct {
	Size int
	// Spec is the specialization-constant expression giving the size.
	Spec Node
}

// Struct is a member list. Types that share a *Struct share the
// declaration; identity is by pointer.
type Struct struct {
	Name    string
	Members []*Type
}

// Type is the type of a node, symbol or struct member.
type Type struct {
	Basic      BasicType
	VectorSize int // 1 for scalars
	MatrixCols int
	MatrixRows int
	// Arrays lists array dimensions outermost first.
	Arrays    []ArraySize
	Struct    *Struct
	TypeName  string
	FieldName string
	Qualifier Qualifier
	Sampler   Sampler
	// Hidden members are present in the front end's type but are
	// not part of the emitted block.
	Hidden bool
}

// IsArray reports whether t has array dimensions.
func (t *Type) IsArray() bool { return len(t.Arrays) > 0 }

// IsMatrix reports whether t, ignoring arrays, is a matrix.
func (t *Type) IsMatrix() bool { return t.MatrixCols > 0 }

// IsVector reports whether t, ignoring arrays, is a vector.
func (t *Type) IsVector() bool { return t.VectorSize > 1 && !t.IsMatrix() }

// IsScalar reports whether t is a non-array scalar.
func (t *Type) IsScalar() bool {
	return !t.IsArray() && !t.IsMatrix() && t.VectorSize <= 1 && !t.IsStruct() &&
		t.Basic != BasicVoid && t.Basic != BasicSampler
}

// IsScalarOrVector reports whether t is a non-array scalar or vector.
func (t *Type) IsScalarOrVector() bool {
	return t.IsScalar() || (!t.IsArray() && t.IsVector())
}

// IsStruct reports whether t, ignoring arrays, is a struct or block.
func (t *Type) IsStruct() bool { return t.Basic == BasicStruct || t.Basic == BasicBlock }

// IsRuntimeSized reports whether the outermost dimension is unsized.
func (t *Type) IsRuntimeSized() bool {
	return t.IsArray() && t.Arrays[0].Size == 0 && t.Arrays[0].Spec == nil
}

// OuterArraySize is the literal size of the outermost dimension.
func (t *Type) OuterArraySize() int { return t.Arrays[0].Size }

// Element returns t with its outermost array dimension removed.
func (t *Type) Element() *Type {
	e := *t
	e.Arrays = t.Arrays[1:]
	if len(e.Arrays) == 0 {
		e.Arrays = nil
	}
	return &e
}

// Unarrayed returns t with every array dimension removed.
func (t *Type) Unarrayed() *Type {
	e := *t
	e.Arrays = nil
	return &e
}

// Column returns the vector type of one matrix column, or of one row
// when rowMajor is set.
func (t *Type) Column(rowMajor bool) *Type {
	c := *t
	c.Arrays = nil
	c.MatrixCols, c.MatrixRows = 0, 0
	if rowMajor {
		c.VectorSize = t.MatrixCols
	} else {
		c.VectorSize = t.MatrixRows
	}
	return &c
}

// Members returns the struct member list, or nil.
func (t *Type) Members() []*Type {
	if t.Struct == nil {
		return nil
	}
	return t.Struct.Members
}

// IsOpaque reports whether t itself is a sampler or atomic counter.
func (t *Type) IsOpaque() bool {
	return t.Basic == BasicSampler || t.Basic == BasicAtomicUint
}

// ContainsOpaque reports whether t or any member is opaque.
func (t *Type) ContainsOpaque() bool {
	if t.IsOpaque() {
		return true
	}
	for _, m := range t.Members() {
		if m.ContainsOpaque() {
			return true
		}
	}
	return false
}

// ContainsBasic reports whether t or any member has basic type b.
func (t *Type) ContainsBasic(b BasicType) bool {
	if t.Basic == b {
		return true
	}
	for _, m := range t.Members() {
		if m.ContainsBasic(b) {
			return true
		}
	}
	return false
}

// Components is the number of scalar components of a non-array
// scalar, vector or matrix.
func (t *Type) Components() int {
	if t.IsMatrix() {
		return t.MatrixCols * t.MatrixRows
	}
	return max(t.VectorSize, 1)
}
