package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/glslspv"
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

// NewDisCommand creates the dis command.
func NewDisCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dis <module.spv|program.yaml>",
		Short: "Print a textual listing of a SPIR-V module",
		Long: `Print a textual listing of a SPIR-V module.

A .yaml or .yml input is lowered with default options first. "-" reads
a binary module from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := loadWords(cmd.InOrStdin(), args[0], rootOpts)
			if err != nil {
				return err
			}
			return spirv.Disassemble(cmd.OutOrStdout(), words)
		},
	}
}

func loadWords(stdin io.Reader, path string, rootOpts *RootOptions) ([]uint32, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		prog, err := ast.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		opts := glslspv.DefaultOptions()
		opts.Logger = rootOpts.Logger
		m, err := glslspv.Lower(prog, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m.Words(), nil
	}

	words, err := spirv.BytesToWords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
