package glslspv

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/lower"
	"github.com/gogpu/glslspv/spirv"
)

// benchFixture is the uniform block fragment shader used by the tests.
func benchFixture(b *testing.B) []byte {
	b.Helper()
	data, err := os.ReadFile("ast/testdata/uniform_block.yaml")
	if err != nil {
		b.Fatalf("read fixture: %v", err)
	}
	return data
}

func benchProgram(b *testing.B, data []byte) *ast.Program {
	b.Helper()
	prog, err := ast.Decode(bytes.NewReader(data))
	if err != nil {
		b.Fatalf("decode failed: %v", err)
	}
	return prog
}

// BenchmarkLower benchmarks validation, lowering and serialization.
func BenchmarkLower(b *testing.B) {
	prog := benchProgram(b, benchFixture(b))
	debug := DefaultOptions()
	debug.EmitDebugSourceText = true
	debug.GenerateLineInstructions = true
	configs := []struct {
		name string
		opts Options
	}{
		{"Plain", DefaultOptions()},
		{"Debug", debug},
	}
	for _, cfg := range configs {
		b.Run(cfg.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			var m *Module
			for i := 0; i < b.N; i++ {
				var err error
				m, err = Lower(prog, cfg.opts)
				if err != nil {
					b.Fatalf("lower failed: %v", err)
				}
			}
			runtime.KeepAlive(m)
		})
	}
}

// BenchmarkFullPipeline benchmarks YAML decode through SPIR-V words.
func BenchmarkFullPipeline(b *testing.B) {
	data := benchFixture(b)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	var words []uint32
	for i := 0; i < b.N; i++ {
		m, err := Lower(benchProgram(b, data), DefaultOptions())
		if err != nil {
			b.Fatalf("lower failed: %v", err)
		}
		words = m.Words()
	}
	runtime.KeepAlive(words)
}

// BenchmarkValidate benchmarks the front end contract checks alone.
func BenchmarkValidate(b *testing.B) {
	prog := benchProgram(b, benchFixture(b))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		errs, err := ast.Validate(prog)
		if err != nil || len(errs) > 0 {
			b.Fatalf("validate failed: %v %v", err, errs)
		}
	}
}

// BenchmarkGenerateSPIRV benchmarks the session without validation or
// serialization.
func BenchmarkGenerateSPIRV(b *testing.B) {
	prog := benchProgram(b, benchFixture(b))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		builder := lower.Lower(prog, lower.Options{Version: spirv.Version1_0})
		runtime.KeepAlive(builder)
	}
}

// BenchmarkLowerAll benchmarks parallel lowering of a batch.
func BenchmarkLowerAll(b *testing.B) {
	data := benchFixture(b)
	progs := make([]*ast.Program, 4*runtime.GOMAXPROCS(0))
	for i := range progs {
		progs[i] = benchProgram(b, data)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		modules, err := LowerAll(context.Background(), progs, DefaultOptions())
		if err != nil {
			b.Fatalf("lower all failed: %v", err)
		}
		runtime.KeepAlive(modules)
	}
}
