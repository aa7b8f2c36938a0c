package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/glslspv/ast"
)

func scalar(b ast.BasicType) *ast.Type { return &ast.Type{Basic: b, VectorSize: 1} }

func vec(n int) *ast.Type { return &ast.Type{Basic: ast.BasicFloat, VectorSize: n} }

func mat(cols, rows int) *ast.Type {
	return &ast.Type{Basic: ast.BasicFloat, MatrixCols: cols, MatrixRows: rows}
}

func array(t *ast.Type, n int) *ast.Type {
	a := *t
	a.Arrays = append([]ast.ArraySize{{Size: n}}, t.Arrays...)
	return &a
}

func TestBaseAlignment(t *testing.T) {
	tests := []struct {
		name                string
		typ                 *ast.Type
		std140, rowMajor    bool
		align, size, stride int
	}{
		{"float", scalar(ast.BasicFloat), true, false, 4, 4, 0},
		{"double", scalar(ast.BasicDouble), false, false, 8, 8, 0},
		{"half", scalar(ast.BasicFloat16), false, false, 2, 2, 0},
		{"vec2", vec(2), false, false, 8, 8, 0},
		{"vec3", vec(3), false, false, 16, 12, 0},
		{"dvec3", &ast.Type{Basic: ast.BasicDouble, VectorSize: 3}, false, false, 32, 24, 0},
		{"float[2] std140", array(scalar(ast.BasicFloat), 2), true, false, 16, 32, 16},
		{"float[2] std430", array(scalar(ast.BasicFloat), 2), false, false, 4, 8, 4},
		{"mat3 std140", mat(3, 3), true, false, 16, 48, 16},
		{"mat2 std430", mat(2, 2), false, false, 8, 16, 8},
		{"mat2x3 row major std430", mat(2, 3), false, true, 8, 24, 8},
		{"vec3[2][3] std430", array(array(vec(3), 3), 2), false, false, 16, 96, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			align, size, stride := BaseAlignment(tt.typ, tt.std140, tt.rowMajor)
			assert.Equal(t, tt.align, align, "alignment")
			assert.Equal(t, tt.size, size, "size")
			assert.Equal(t, tt.stride, stride, "stride")
		})
	}
}

func TestStructAlignment(t *testing.T) {
	st := &ast.Type{Basic: ast.BasicStruct, Struct: &ast.Struct{Members: []*ast.Type{vec(2), scalar(ast.BasicFloat)}}}

	align, size, _ := BaseAlignment(st, false, false)
	assert.Equal(t, 8, align)
	assert.Equal(t, 16, size)

	align, size, _ = BaseAlignment(st, true, false)
	assert.Equal(t, 16, align)
	assert.Equal(t, 16, size)
}

func TestPlacementStd140(t *testing.T) {
	p := &Placement{Std140: true}
	members := []*ast.Type{
		scalar(ast.BasicFloat),
		vec(3),
		scalar(ast.BasicFloat),
		vec(2),
		mat(3, 3),
		array(scalar(ast.BasicFloat), 2),
	}
	var got []int
	for _, m := range members {
		got = append(got, p.Place(m, nil, false))
	}
	assert.Equal(t, []int{0, 16, 28, 32, 48, 96}, got)
}

func TestPlacementExplicitOffset(t *testing.T) {
	p := &Placement{}
	assert.Equal(t, 0, p.Place(scalar(ast.BasicFloat), nil, false))
	assert.Equal(t, 32, p.Place(scalar(ast.BasicFloat), ast.Int(32), false))
	assert.Equal(t, 36, p.Place(scalar(ast.BasicInt), nil, false))
	assert.Equal(t, 48, p.Place(vec(4), ast.Int(44), false), "explicit offsets are still aligned")
}

func TestPlacementHLSLOffsets(t *testing.T) {
	p := &Placement{Std140: true, HLSLOffsets: true}
	assert.Equal(t, 0, p.Place(scalar(ast.BasicFloat), nil, false))
	assert.Equal(t, 4, p.Place(vec(3), nil, false), "vec3 packs after a float")
	assert.Equal(t, 16, p.Place(vec(2), nil, false))

	p = &Placement{Std140: true, HLSLOffsets: true}
	for range 3 {
		p.Place(scalar(ast.BasicFloat), nil, false)
	}
	assert.Equal(t, 16, p.Place(vec(2), nil, false), "a straddling vec2 moves to the next vec4")
}

func TestImproperStraddle(t *testing.T) {
	assert.False(t, ImproperStraddle(scalar(ast.BasicFloat), 4, 14))
	assert.True(t, ImproperStraddle(vec(2), 8, 12))
	assert.False(t, ImproperStraddle(vec(4), 16, 16))
	assert.True(t, ImproperStraddle(&ast.Type{Basic: ast.BasicDouble, VectorSize: 3}, 24, 8))
	assert.False(t, ImproperStraddle(array(vec(2), 2), 8, 12))
}

func TestMatrixStrideIgnoresArrays(t *testing.T) {
	assert.Equal(t, 16, MatrixStride(array(mat(4, 4), 3), false, false))
	assert.Equal(t, 16, MatrixStride(mat(2, 2), true, false))
	assert.Equal(t, 8, MatrixStride(mat(2, 2), false, false))
}

func TestRoundUp(t *testing.T) {
	assert.Equal(t, 0, RoundUp(0, 16))
	assert.Equal(t, 16, RoundUp(1, 16))
	assert.Equal(t, 32, RoundUp(32, 16))
	assert.Equal(t, 7, RoundUp(7, 1))
}
