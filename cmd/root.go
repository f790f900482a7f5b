// Package cmd implements the doxy-next-gen command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"doxy-next-gen/pkg/ast"
	"doxy-next-gen/pkg/config"
	"doxy-next-gen/pkg/document"
	"doxy-next-gen/pkg/formatter"
	"doxy-next-gen/pkg/frontend"
	"doxy-next-gen/pkg/logging"
)

// Version information
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return version
}

// SetVersionInfo records the build information printed by version.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// app is the state shared by one command tree.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the command tree. Every tree has its own viper
// instance, so flags and config of one run never leak into another.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "doxy-next-gen [file]...",
		Short: "Associate C++ documentation comments with their declarations",
		Long: `doxy-next-gen extracts documentation comments (/** */, /*! */, ///, //!
and the back-referencing /*< */ and //<) from C++ source files and associates
every block with the class, constructor or method it documents.

The documentation model of each file is written to standard output in
argument order. Warnings about comments that cannot be attached go to
standard error.`,
		Args:          cobra.MinimumNArgs(1),
		Version:       getVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Load(a.v, a.cfgFile)
		},
		RunE: a.runReport,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.DefaultFile+".yaml)")
	flags.String("frontend", "native", fmt.Sprintf("C++ front end %v", frontend.Names()))
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error, disabled)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.BoolVar(&color.NoColor, "no-color", color.NoColor, "disable colored output")
	rootCmd.Flags().StringP("format", "f", "text", fmt.Sprintf("report format %v", formatter.Formats()))
	rootCmd.Flags().String("delimiter", formatter.DefaultDelimiter, "record delimiter of the text report")
	rootCmd.Flags().Bool("consume", false, "let a comment document at most one declaration")
	rootCmd.Flags().Bool("merge", false, "drop undocumented duplicates of documented declarations")
	rootCmd.Flags().IntP("jobs", "j", 4, "files processed concurrently")

	for key, flag := range map[string]string{
		"frontend":   "frontend",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}
	for key, flag := range map[string]string{
		"report.format":    "format",
		"report.delimiter": "delimiter",
		"match.consume":    "consume",
		"model.merge":      "merge",
		"jobs":             "jobs",
	} {
		_ = a.v.BindPFlag(key, rootCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(a.newParseCmd())
	rootCmd.AddCommand(a.newTokensCmd())
	rootCmd.AddCommand(a.newLookupCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the command line.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) runReport(cmd *cobra.Command, args []string) error {
	cfg, log, err := a.setup(cmd)
	if err != nil {
		return err
	}
	renderer, err := formatter.New(cfg.Report.Format, formatter.Options{Delimiter: cfg.Report.Delimiter})
	if err != nil {
		return err
	}
	opts, err := documentOptions(cfg, log)
	if err != nil {
		return err
	}

	docs, err := document.NewService(opts, cfg.Jobs).ProcessFiles(cmd.Context(), args)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := renderer.Render(cmd.OutOrStdout(), doc.Model()); err != nil {
			return fmt.Errorf("failed to render %s: %w", doc.Filename(), err)
		}
	}
	return nil
}

// setup reads the configuration and builds the logger. Logs always go to
// standard error.
func (a *app) setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.New(a.v)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}

func (a *app) frontend(cmd *cobra.Command) (ast.Frontend, zerolog.Logger, error) {
	cfg, log, err := a.setup(cmd)
	if err != nil {
		return nil, log, err
	}
	fe, err := frontend.New(cfg.Frontend, log)
	return fe, log, err
}

func documentOptions(cfg *config.Config, log zerolog.Logger) (document.Options, error) {
	fe, err := frontend.New(cfg.Frontend, log)
	if err != nil {
		return document.Options{}, err
	}
	return document.Options{
		Frontend: fe,
		Consume:  cfg.Match.Consume,
		Merge:    cfg.Model.Merge,
		Logger:   log,
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "doxy-next-gen %s\n", getVersionString())
			fmt.Fprintf(out, "  Version: %s\n", version)
			fmt.Fprintf(out, "  Commit:  %s\n", commit)
			fmt.Fprintf(out, "  Date:    %s\n", date)
		},
	}
}
