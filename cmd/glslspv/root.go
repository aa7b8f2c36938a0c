package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// toolVersion is reported by the version command and --version.
const toolVersion = "0.1.0-dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Color   string // "auto" | "always" | "never"

	// Set by the root pre-run.
	Session uuid.UUID
	Logger  *slog.Logger
}

// NewRootCommand creates the root command of the CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "glslspv",
		Short:        "Lower GLSL and HLSL syntax trees to SPIR-V",
		Long:         "glslspv lowers type-checked shader syntax trees, decoded from YAML, to SPIR-V modules.",
		Version:      toolVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "auto", "colorize output (auto|always|never)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewDisCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

func (opts *RootOptions) setup(cmd *cobra.Command) error {
	switch opts.Color {
	case "auto":
		// fatih/color decides from stdout already.
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid color mode %q: must be auto, always or never", opts.Color)
	}

	session, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}
	opts.Session = session

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	opts.Logger = slog.New(handler).With("session_id", session.String())
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
