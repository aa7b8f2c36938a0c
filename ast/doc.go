// Package ast defines the typed tree a GLSL or HLSL front end hands to
// the SPIR-V lowering.
//
// # Structure
//
// A Program holds the program-wide settings the lowering queries:
//   - Stage, entry point name and mangled entry function name
//   - Source language, profile, version, file name and text
//   - Requested extensions and storage/offset/transform feedback modes
//   - Per-stage layout parameters (tessellation, geometry, fragment, compute)
//
// Program.Root is the top-level sequence. Its children are the global
// initializers, the function definitions and a linker object list that
// declares every global variable.
//
// Nodes are Symbol, Constant, Binary, Unary, Aggregate, Selection,
// Switch, Loop and Branch. Each has a source position and a *Type.
// Types that share a *Struct share one struct declaration, which the
// lowering uses as its struct cache key.
//
// # Input format
//
// Decode reads the YAML rendering of a program:
//
//	stage: fragment
//	version: 450
//	structs:
//	  Light:
//	    - {name: color, basic: float, vector: 4}
//	root:
//	  kind: aggregate
//	  op: Sequence
//	  children: [...]
//
// Validate checks the contract the lowering relies on before any
// SPIR-V is built.
package ast
