// Package layout computes std140 and std430 block member alignment,
// size and stride.
package layout

import "github.com/gogpu/glslspv/ast"

// vec4Alignment is the std140 minimum alignment of arrays and structs.
const vec4Alignment = 16

// ScalarAlignment returns the alignment and size of one component of t.
func ScalarAlignment(t *ast.Type) (alignment, size int) {
	switch t.Basic {
	case ast.BasicDouble, ast.BasicInt64, ast.BasicUint64:
		return 8, 8
	case ast.BasicFloat16:
		return 2, 2
	default:
		return 4, 4
	}
}

// BaseAlignment returns the base alignment, size and stride of t under
// std140 (std140 true) or std430 rules. Stride is the array element or
// matrix column stride, zero for other types. rowMajor selects the
// matrix layout.
func BaseAlignment(t *ast.Type, std140, rowMajor bool) (alignment, size, stride int) {
	if t.IsArray() {
		alignment, size, _ = BaseAlignment(t.Element(), std140, rowMajor)
		if std140 {
			alignment = max(alignment, vec4Alignment)
		}
		size = RoundUp(size, alignment)
		stride = size
		return alignment, stride * t.OuterArraySize(), stride
	}

	if t.IsStruct() {
		maxAlignment := 0
		if std140 {
			maxAlignment = vec4Alignment
		}
		for _, m := range t.Members() {
			memberRowMajor := rowMajor
			switch m.Qualifier.MatrixLayout {
			case ast.LayoutRowMajor:
				memberRowMajor = true
			case ast.LayoutColumnMajor:
				memberRowMajor = false
			}
			a, s, _ := BaseAlignment(m, std140, memberRowMajor)
			maxAlignment = max(maxAlignment, a)
			size = RoundUp(size, a) + s
		}
		return maxAlignment, RoundUp(size, maxAlignment), 0
	}

	if t.IsMatrix() {
		alignment, size, _ = BaseAlignment(t.Column(rowMajor), std140, rowMajor)
		if std140 {
			alignment = max(alignment, vec4Alignment)
		}
		stride = RoundUp(size, alignment)
		if rowMajor {
			return alignment, stride * t.MatrixRows, stride
		}
		return alignment, stride * t.MatrixCols, stride
	}

	scalarAlignment, scalarSize := ScalarAlignment(t)
	switch {
	case t.VectorSize <= 1:
		return scalarAlignment, scalarSize, 0
	case t.VectorSize == 2:
		return 2 * scalarAlignment, 2 * scalarSize, 0
	default:
		return 4 * scalarAlignment, t.VectorSize * scalarSize, 0
	}
}

// ImproperStraddle reports whether a vector of the given size placed
// at offset crosses a 16-byte boundary it may not cross.
func ImproperStraddle(t *ast.Type, size, offset int) bool {
	if !t.IsVector() || t.IsArray() {
		return false
	}
	if size <= 16 {
		return offset/16 != (offset+size-1)/16
	}
	return offset%16 != 0
}

// RoundUp rounds v up to a multiple of the power-of-two alignment.
func RoundUp(v, alignment int) int {
	if alignment <= 1 {
		return v
	}
	return (v + alignment - 1) &^ (alignment - 1)
}

// MatrixStride returns the stride between the columns (or rows, when
// rowMajor) of a matrix type, ignoring any array dimensions.
func MatrixStride(t *ast.Type, std140, rowMajor bool) int {
	_, _, stride := BaseAlignment(t.Unarrayed(), std140, rowMajor)
	return stride
}

// Placement tracks the running offset while members of a block are
// laid out in order.
type Placement struct {
	Std140 bool
	// HLSLOffsets lets a small vector take scalar alignment, as HLSL
	// constant buffer packing does.
	HLSLOffsets bool

	next int
}

// Place returns the offset of the next member of type t. A non-nil
// explicit offset overrides the running offset. rowMajor is the
// member's matrix layout.
func (p *Placement) Place(t *ast.Type, explicit *int, rowMajor bool) int {
	offset := p.next
	if explicit != nil {
		offset = *explicit
	}

	alignment, size, _ := BaseAlignment(t, p.Std140, rowMajor)
	if p.HLSLOffsets && t.IsVector() && !t.IsArray() {
		if component, _ := ScalarAlignment(t); component <= 4 {
			alignment = component
		}
	}

	offset = RoundUp(max(offset, 0), alignment)
	if ImproperStraddle(t, size, offset) {
		offset = RoundUp(offset, 16)
	}
	p.next = offset + size
	return offset
}
