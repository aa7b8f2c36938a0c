package lower

import (
	"math"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/diag"
	"github.com/gogpu/glslspv/spirv"
)

// constantFromValues builds the constant of type t from the flattened
// scalar list values, consuming from *next. Scalars past the end of the
// list are zero. Only a scalar leaf carries spec.
func (s *Session) constantFromValues(t *ast.Type, values []ast.ConstValue, next *int, spec bool) spirv.ID {
	typeID := s.convertType(t)
	var members []spirv.ID

	switch {
	case t.IsArray():
		elem := t.Element()
		for range t.OuterArraySize() {
			members = append(members, s.constantFromValues(elem, values, next, false))
		}
	case t.IsMatrix():
		column := t.Column(false)
		for range t.MatrixCols {
			members = append(members, s.constantFromValues(column, values, next, false))
		}
	case t.IsStruct():
		for _, m := range t.Members() {
			members = append(members, s.constantFromValues(m, values, next, false))
		}
	case t.VectorSize > 1:
		for range t.VectorSize {
			members = append(members, s.scalarConstant(t.Basic, values, next, false))
		}
	default:
		return s.scalarConstant(t.Basic, values, next, spec)
	}
	return s.b.MakeCompositeConstant(typeID, members, false)
}

func (s *Session) scalarConstant(basic ast.BasicType, values []ast.ConstValue, next *int, spec bool) spirv.ID {
	var v ast.ConstValue
	if *next < len(values) {
		v = values[*next]
	}
	*next++

	switch basic {
	case ast.BasicInt:
		return s.b.MakeIntConstant(s.b.MakeIntType(32), uint32(int32(v.Int)), spec)
	case ast.BasicUint:
		return s.b.MakeIntConstant(s.b.MakeUintType(32), uint32(v.Uint), spec)
	case ast.BasicInt64:
		return s.b.MakeInt64Constant(s.b.MakeIntType(64), uint64(v.Int), spec)
	case ast.BasicUint64:
		return s.b.MakeInt64Constant(s.b.MakeUintType(64), v.Uint, spec)
	case ast.BasicFloat:
		return s.b.MakeFloatConstant(float32(v.Float), spec)
	case ast.BasicDouble:
		return s.b.MakeDoubleConstant(v.Float, spec)
	case ast.BasicFloat16:
		return s.b.MakeFloat16Constant(halfBits(v.Float), spec)
	case ast.BasicBool:
		return s.b.MakeBoolConstant(v.Bool, spec)
	}
	s.missing("constant of basic type %s", basic)
	return s.b.MakeIntConst(0)
}

// constantOf returns the id of a named constant or specialization
// constant symbol.
func (s *Session) constantOf(sym *ast.Symbol) spirv.ID {
	q := &sym.Type.Qualifier
	next := 0
	if !q.SpecConstant {
		return s.constantFromValues(sym.Type, sym.ConstArray, &next, false)
	}

	// gl_WorkGroupSize is assembled from the local size layout, each
	// dimension specializable on its own.
	if q.BuiltIn == ast.BuiltInWorkGroupSize {
		u32 := s.b.MakeUintType(32)
		dims := make([]spirv.ID, 3)
		for d := range dims {
			specID := s.prog.Compute.LocalSizeSpecID[d]
			dims[d] = s.b.MakeIntConstant(u32, s.word(s.prog.Compute.LocalSize[d]), specID != nil)
			if specID != nil {
				s.b.AddDecoration(dims[d], spirv.DecorationSpecID, s.word(*specID))
			}
		}
		return s.b.MakeCompositeConstant(s.b.MakeVectorType(u32, 3), dims, true)
	}

	if sym.ConstSubtree != nil {
		saved := s.b.GetAccessChain()
		s.b.ClearAccessChain()
		ast.Walk(s, sym.ConstSubtree)
		id := s.accessChainLoad(sym.ConstSubtree.NodeType())
		s.b.SetAccessChain(saved)
		return id
	}
	if len(sym.ConstArray) > 0 {
		id := s.constantFromValues(sym.Type, sym.ConstArray, &next, true)
		s.b.AddName(id, sym.Name)
		return id
	}

	diag.Panic(sym.Loc, "Neither a front-end constant nor a spec constant.")
	return spirv.NoResult
}

// halfBits converts v to IEEE 754 binary16 bits, rounding to nearest
// even.
func halfBits(v float64) uint16 {
	f := math.Float32bits(float32(v))
	sign := uint16(f>>16) & 0x8000
	biased := f >> 23 & 0xff
	mant := f & 0x7fffff

	switch {
	case f&0x7fffffff == 0:
		return sign
	case biased == 0xff:
		if mant != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	}

	exp := int(biased) - 127 + 15
	switch {
	case exp >= 0x1f:
		return sign | 0x7c00
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		shift := uint(14 - exp)
		half := mant >> shift
		rem := mant & (1<<shift - 1)
		halfway := uint32(1) << (shift - 1)
		if rem > halfway || (rem == halfway && half&1 == 1) {
			half++
		}
		return sign | uint16(half)
	}

	half := uint32(exp)<<10 | mant>>13
	rem := mant & 0x1fff
	if rem > 0x1000 || (rem == 0x1000 && half&1 == 1) {
		half++
	}
	return sign | uint16(half)
}
