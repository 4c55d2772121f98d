package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dhimmel/disease-ontology/internal/app"
	"github.com/dhimmel/disease-ontology/internal/config"
	"github.com/dhimmel/disease-ontology/internal/export"
	"github.com/spf13/cobra"
)

// flags holds the values bound to persistent and per-command flags.
type flags struct {
	configPath    string
	oboPath       string
	relationships []string
	logLevel      string
	logFormat     string

	types      []string
	format     string
	outputPath string
	port       int
	watch      bool
}

// Execute runs the command tree with args. Every failure is returned as an
// *ExitError carrying the process exit code.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra rejects before a command runs is a usage problem.
	return usageError(err)
}

// NewRootCommand builds the dotool command tree. Command results go to outW
// and logs to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "dotool",
		Short: "Load the Disease Ontology and explore its hierarchy as a graph",
		Long: `dotool parses an OBO file such as the Disease Ontology's doid.obo and
converts it into a directed multigraph: one node per non-obsolete term and one
edge per kept relationship, pointing from the specific term to the general one.

Settings come from built-in defaults, then an optional HCL config file
(--config), then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Path to an .hcl config file, a directory of them, or a glob such as conf/**/*.hcl.")
	pf.StringVar(&f.oboPath, "obo", "", "Path to the OBO file to load.")
	pf.StringSliceVarP(&f.relationships, "relationship", "r", nil, "Relationship type to keep (repeatable). Default: is_a.")
	pf.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		buildCommand(f, outW, errW),
		relativesCommand(f, outW, errW, "ancestors", "List every term more general than ID", (*app.App).Ancestors),
		relativesCommand(f, outW, errW, "descendants", "List every term more specific than ID", (*app.App).Descendants),
		exportCommand(f, outW, errW),
		serveCommand(f, outW, errW),
	)
	return root
}

func buildCommand(f *flags, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the graph and print a summary",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := f.newApp(cmd, outW, errW)
			if err != nil {
				return err
			}
			return runtimeError(a.Summary(cmd.Context()))
		},
	}
}

type relativesFunc func(a *app.App, ctx context.Context, id string, types ...string) error

func relativesCommand(f *flags, outW, errW io.Writer, name, short string, walk relativesFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " ID",
		Short: short,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := f.newApp(cmd, outW, errW)
			if err != nil {
				return err
			}
			return runtimeError(walk(a, cmd.Context(), args[0], f.types...))
		},
	}
	cmd.Flags().StringSliceVarP(&f.types, "type", "t", nil, "Only follow edges of this relationship type (repeatable).")
	return cmd
}

func exportCommand(f *flags, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the graph as a JSON or YAML node/edge document",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(f.format)
			if err != nil {
				return usageError(err)
			}

			w := outW
			if f.outputPath != "" {
				file, err := os.Create(f.outputPath)
				if err != nil {
					return runtimeError(err)
				}
				defer file.Close()
				w = file
			}

			a, err := f.newApp(cmd, w, errW)
			if err != nil {
				return err
			}
			return runtimeError(a.Export(cmd.Context(), format))
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", string(export.FormatJSON), "Output format. Options: 'json' or 'yaml'.")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Write to this file instead of standard output.")
	return cmd
}

func serveCommand(f *flags, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph over HTTP with Prometheus metrics",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := f.newApp(cmd, outW, errW)
			if err != nil {
				return err
			}
			return runtimeError(a.Serve(cmd.Context()))
		},
	}
	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "HTTP port. Overrides the config file.")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Rebuild the graph when the OBO file changes.")
	return cmd
}

// newApp resolves the configuration for cmd and creates the app.
func (f *flags) newApp(cmd *cobra.Command, outW, errW io.Writer) (*app.App, error) {
	cfg, err := f.resolve(cmd)
	if err != nil {
		return nil, err
	}
	return app.NewApp(outW, errW, cfg), nil
}

// resolve layers the config file and changed flags over the defaults, then
// validates the result.
func (f *flags) resolve(cmd *cobra.Command) (*config.Config, error) {
	logger := slog.Default()
	base := config.Default()
	cfg := &base

	if f.configPath != "" {
		loaded, err := config.NewHCLLoader().Load(cmd.Context(), base, f.configPath)
		if err != nil {
			return nil, usageError(err)
		}
		cfg = loaded
		logger.Debug("Config file applied.", "path", f.configPath)
	}

	set := cmd.Flags()
	if set.Changed("obo") {
		cfg.OntologyPath = f.oboPath
	}
	if set.Changed("relationship") {
		cfg.Relationships = f.relationships
	}
	if set.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}
	if set.Changed("log-format") {
		cfg.LogFormat = strings.ToLower(f.logFormat)
	}
	if set.Changed("port") {
		cfg.ServerPort = f.port
	}
	if set.Changed("watch") {
		cfg.Watch = f.watch
	}

	if err := cfg.Validate(); err != nil {
		return nil, usageError(err)
	}
	logger.Debug("CLI configuration resolved.", "config", cfg)
	return cfg, nil
}

// usageArgs turns an argument validation failure into a usage error.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
