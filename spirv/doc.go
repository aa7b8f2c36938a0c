// Package spirv builds SPIR-V modules.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs.
//
// # Builder
//
// Builder owns one module under construction. It interns types and
// constants, places instructions into the current basic block, and
// provides structured control flow helpers:
//
//	b := spirv.NewBuilder(spirv.Version1_0, spirv.ToolID<<16|spirv.GeneratorVersion, nil)
//	b.AddCapability(spirv.CapabilityShader)
//	fn := b.MakeEntryPoint("main")
//	ep := b.AddEntryPoint(spirv.ExecutionModelFragment, fn, "main")
//
//	vec4 := b.MakeVectorType(b.MakeFloatType(32), 4)
//	color := b.CreateVariable(spirv.StorageClassOutput, vec4, "color")
//	ep.AddIDOperand(color)
//
//	one := b.MakeFloatConstant(1, false)
//	b.CreateStore(b.MakeCompositeConstant(vec4, []spirv.ID{one, one, one, one}, false), color)
//
//	b.LeaveFunction()
//	words := b.Dump()
//
// Types are shared by structure, except structs and explicitly strided
// arrays which are always distinct. Non-spec constants are shared by
// type and value.
//
// # Access chains
//
// Dereferences accumulate in an AccessChain until the value is loaded
// or stored, so a.b[i].xy becomes a single OpAccessChain followed by a
// swizzle:
//
//	b.ClearAccessChain()
//	b.SetAccessChainLValue(variable)
//	b.AccessChainPush(b.MakeIntConst(1))
//	value := b.AccessChainLoad(spirv.DecorationMax, resultType)
//
// # Module layout
//
// Dump writes sections in the order SPIR-V requires:
//   - Header (magic, version, generator, bound, schema)
//   - Capabilities and extensions
//   - Extended instruction imports
//   - Memory model
//   - Entry points and execution modes
//   - Debug information (strings, source, names)
//   - Annotations (decorations)
//   - Types, constants and global variables
//   - Functions, with blocks in structured order
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
