package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/glslspv/spirv"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the tool and generator versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			fmt.Fprintf(out, "%s %s\n", bold.Sprint("glslspv"), toolVersion)
			fmt.Fprintf(out, "generator: 0x%08X\n", uint32(spirv.ToolID<<16|spirv.GeneratorVersion))
			fmt.Fprintf(out, "spir-v:    %d.%d through %d.%d\n",
				spirv.Version1_0.Major, spirv.Version1_0.Minor, spirv.Version1_6.Major, spirv.Version1_6.Minor)
			if rootOpts.Verbose {
				fmt.Fprintf(out, "session:   %s\n", rootOpts.Session)
			}
			return nil
		},
	}
}
