// Command glslspv lowers syntax trees decoded from YAML to SPIR-V.
//
// Usage:
//
//	glslspv compile [flags] <program.yaml>...
//	glslspv dis <module.spv|program.yaml>
//	glslspv version
//
// Examples:
//
//	glslspv compile shader.yaml                  # writes shader.spv next to the input
//	glslspv compile -o - shader.yaml | xxd       # module on stdout
//	glslspv compile --lines --source-text *.yaml  # with debug info
//	glslspv dis shader.spv                       # textual listing
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
