package diag

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glslspv/ast"
)

func TestBagCollectsInOrder(t *testing.T) {
	var b Bag
	b.Report(Diagnostic{Kind: Warning, Message: "first"})
	b.Report(Diagnostic{Kind: MissingFunctionality, Message: "second", Loc: ast.Loc{Line: 3, Column: 1}})

	items := b.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "3:1: missing functionality: second", items[1].String())
	assert.True(t, b.Has(Warning))
	assert.False(t, b.Has(InvariantViolation))

	items[0].Message = "changed"
	assert.Equal(t, "first", b.Items()[0].Message, "Items returns a copy")
}

func TestBagConcurrentReports(t *testing.T) {
	var b Bag
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				b.Report(Diagnostic{Kind: Warning})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, b.Len())
}

func TestTee(t *testing.T) {
	var a, b Bag
	sink := Tee(&a, Discard, &b)
	sink.Report(Diagnostic{Message: "x"})
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestPanicRaisesFatal(t *testing.T) {
	defer func() {
		r := recover()
		f, ok := r.(*Fatal)
		require.True(t, ok, "panic value is *Fatal")
		assert.Equal(t, InvariantViolation, f.Kind)
		assert.Equal(t, "4:2: error: bad node 7", f.Error())

		var err error = f
		var target *Fatal
		assert.True(t, errors.As(err, &target))
	}()
	Panic(ast.Loc{Line: 4, Column: 2}, "bad node %d", 7)
}

func TestFormatAlignsCaret(t *testing.T) {
	color.NoColor = true
	src := "void main() {\n\tfoo(名, bar);\n}\n"
	var sb strings.Builder
	err := Format(&sb, "a.frag", src, Diagnostic{
		Kind:    MissingFunctionality,
		Message: "matrix swizzle",
		Loc:     ast.Loc{Line: 2, Column: 11},
	})
	require.NoError(t, err)

	want := "missing functionality: matrix swizzle\n" +
		"  --> a.frag:2:11\n" +
		"   |\n" +
		"  2|     foo(名, bar);\n" +
		"   | " + strings.Repeat(" ", 12) + "^\n"
	assert.Equal(t, want, sb.String())
}

func TestFormatWithoutLocation(t *testing.T) {
	color.NoColor = true
	var sb strings.Builder
	require.NoError(t, FormatAll(&sb, "b.vert", "", []Diagnostic{
		{Kind: Warning, Message: "one"},
		{Kind: InvariantViolation, Message: "two"},
	}))
	assert.Equal(t, "warning: one\n  --> b.vert\n\nerror: two\n  --> b.vert\n", sb.String())
}
