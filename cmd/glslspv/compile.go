package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/glslspv"
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/cache"
	"github.com/gogpu/glslspv/internal/config"
	"github.com/gogpu/glslspv/internal/diag"
	"github.com/gogpu/glslspv/spirv"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output     string // output file, "-" for stdout
	OutDir     string
	ConfigPath string
	SourceText bool
	Lines      bool
	Version    string
	Jobs       int
	NoCache    bool
}

// compiled is the outcome for one input.
type compiled struct {
	input       string
	file        string // file name shown in diagnostics
	source      string
	words       []uint32
	diagnostics []diag.Diagnostic
	cached      bool
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <program.yaml>...",
		Short: "Lower syntax trees to SPIR-V modules",
		Long: `Lower each YAML syntax tree to a SPIR-V module.

Settings come from the nearest glslspv.toml above the first input;
flags override them. Each module is written as <name>.spv into the
output directory, or next to its input when none is configured.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", `output file for a single input ("-" for stdout)`)
	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "d", "", "output directory")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "project file (default: nearest "+config.FileName+")")
	cmd.Flags().BoolVar(&opts.SourceText, "source-text", false, "embed the program source")
	cmd.Flags().BoolVar(&opts.Lines, "lines", false, "emit OpLine instructions")
	cmd.Flags().StringVar(&opts.Version, "target-env-version", "", `SPIR-V version as "major.minor"`)
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "programs compiled in parallel (default: one per CPU)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "bypass the module cache")

	return cmd
}

func runCompile(cmd *cobra.Command, opts *CompileOptions, inputs []string) error {
	if opts.Output != "" && len(inputs) > 1 {
		return errors.New("--output needs exactly one input")
	}
	out := cmd.OutOrStdout()
	if opts.Output == "-" && isTerminal(out) {
		return errors.New("refusing to write a binary module to a terminal")
	}

	cfg, err := opts.config(cmd, filepath.Dir(inputs[0]))
	if err != nil {
		return err
	}
	major, minor, err := config.ParseVersion(cfg.Output.Version)
	if err != nil {
		return err
	}
	lowerOpts := glslspv.DefaultOptions()
	lowerOpts.EmitDebugSourceText = cfg.Debug.SourceText
	lowerOpts.GenerateLineInstructions = cfg.Debug.Lines
	lowerOpts.Version = spirv.Version{Major: major, Minor: minor}
	lowerOpts.Logger = opts.Logger
	fingerprint := fmt.Sprintf("spirv=%d.%d source=%t lines=%t generator=%d",
		major, minor, cfg.Debug.SourceText, cfg.Debug.Lines, spirv.GeneratorVersion)

	store := opts.openCache(cfg)

	jobs := cfg.Jobs
	if jobs == 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*compiled, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, input := range inputs {
		g.Go(func() error {
			r, err := opts.compileOne(ctx, store, input, lowerOpts, fingerprint)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var fatal *diag.Fatal
		if errors.As(err, &fatal) {
			_ = diag.Format(cmd.ErrOrStderr(), "", "", fatal.Diagnostic)
		}
		return err
	}

	for _, r := range results {
		if len(r.diagnostics) > 0 {
			if err := diag.FormatAll(cmd.ErrOrStderr(), r.file, r.source, r.diagnostics); err != nil {
				return err
			}
		}
		dest, err := writeModule(out, r, opts.Output, cfg.Output.Dir)
		if err != nil {
			return err
		}
		opts.Logger.Debug("wrote module", "input", r.input, "output", dest, "words", len(r.words), "cached", r.cached)
		if dest != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s -> %s (%d words)\n",
				color.New(color.FgGreen, color.Bold).Sprint("compiled"), r.input, dest, len(r.words))
		}
	}
	return nil
}

// config loads the project file and applies flag overrides.
func (opts *CompileOptions) config(cmd *cobra.Command, startDir string) (config.Config, error) {
	var (
		cfg  config.Config
		path string
		err  error
	)
	if opts.ConfigPath != "" {
		path = opts.ConfigPath
		cfg, err = config.Load(path)
	} else {
		cfg, path, err = config.LoadNearest(startDir)
	}
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		opts.Logger.Debug("loaded project file", "path", path)
	}

	flags := cmd.Flags()
	if flags.Changed("source-text") {
		cfg.Debug.SourceText = opts.SourceText
	}
	if flags.Changed("lines") {
		cfg.Debug.Lines = opts.Lines
	}
	if flags.Changed("target-env-version") {
		cfg.Output.Version = opts.Version
	}
	if flags.Changed("out-dir") {
		cfg.Output.Dir = opts.OutDir
	}
	if flags.Changed("jobs") {
		if opts.Jobs < 0 {
			return config.Config{}, errors.New("--jobs must not be negative")
		}
		cfg.Jobs = opts.Jobs
	}
	if opts.NoCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// openCache returns nil when the cache is disabled or unusable. A nil
// cache always misses.
func (opts *CompileOptions) openCache(cfg config.Config) *cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	var (
		store *cache.Cache
		err   error
	)
	if cfg.Cache.Dir != "" {
		store, err = cache.Open(cfg.Cache.Dir)
	} else {
		store, err = cache.OpenDefault("glslspv")
	}
	if err != nil {
		opts.Logger.Warn("module cache disabled", "err", err)
		return nil
	}
	opts.Logger.Debug("module cache", "dir", store.Dir())
	return store
}

func (opts *CompileOptions) compileOne(ctx context.Context, store *cache.Cache, input string, lowerOpts glslspv.Options, fingerprint string) (*compiled, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	prog, err := ast.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	r := &compiled{input: input, file: prog.SourceFile, source: prog.SourceText}
	if r.file == "" {
		r.file = input
	}

	key := cache.NewKey(data, fingerprint)
	entry, ok, err := store.Get(key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "input", input, "err", err)
	}
	if ok {
		opts.Logger.Debug("cache hit", "input", input, "key", key.String(), "producer", entry.Session)
		r.words, r.diagnostics, r.cached = entry.Words, entry.Items(), true
		return r, nil
	}

	lowerOpts.Logger = lowerOpts.Logger.With("input", input)
	m, err := glslspv.Lower(prog, lowerOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	r.words, r.diagnostics = m.Words(), m.Diagnostics()
	if err := store.Put(key, cache.NewEntry(opts.Session, r.words, r.diagnostics)); err != nil {
		opts.Logger.Warn("cache write failed", "input", input, "err", err)
	}
	return r, nil
}

// writeModule writes r to output, or to <dir>/<name>.spv. It returns the
// destination.
func writeModule(stdout io.Writer, r *compiled, output, dir string) (string, error) {
	data := spirv.WordsToBytes(r.words)
	if output == "-" {
		_, err := stdout.Write(data)
		return output, err
	}

	dest := output
	if dest == "" {
		name := strings.TrimSuffix(filepath.Base(r.input), filepath.Ext(r.input)) + ".spv"
		if dir == "" {
			dir = filepath.Dir(r.input)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		dest = filepath.Join(dir, name)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("writing output: %w", err)
	}
	return dest, nil
}
