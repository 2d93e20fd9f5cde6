package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codec-generator/internal/analyze"
	"codec-generator/internal/config"
	"codec-generator/internal/decl"
	"codec-generator/internal/diagnostic"
	"codec-generator/internal/driver"
	"codec-generator/internal/manifest"
)

// errDiagnostics is returned when a run reported error diagnostics; they
// have already been printed.
var errDiagnostics = errors.New("errors reported")

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	color      string
	jobs       int
	manifest   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "codec-generator",
		Short:         "Generate JSON codecs from reconciled value-type properties",
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: ./.codecgen.yaml when present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	flags.StringVar(&opts.color, "color", "", "colorize diagnostics (auto|always|never)")
	flags.IntVar(&opts.jobs, "jobs", 0, "types processed in parallel (0: config or GOMAXPROCS)")
	flags.StringVar(&opts.manifest, "manifest", "", "read declarations from a YAML manifest instead of Go packages")

	cmd.AddCommand(
		newGenCmd(opts),
		newNamesCmd(opts),
		newCheckCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// session is the resolved state one subcommand runs with.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
	color  bool
}

func (o *rootOptions) session(cmd *cobra.Command) (*session, error) {
	cfg, path, err := config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: o.configPath})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if flags.Changed("color") {
		cfg.Color = config.ColorMode(o.color)
	}

	if flags.Changed("jobs") {
		cfg.Jobs = o.jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}

	s.logger = log.NewWithOptions(s.stderr, log.Options{
		Prefix: "codec-generator",
		Level:  cfg.Level(),
	})

	switch cfg.Color {
	case config.ColorAlways:
		s.color = true
	case config.ColorAuto:
		s.color = !color.NoColor && s.stderr == os.Stderr
	}

	if path != "" {
		s.logger.Debug("loaded config", "path", path)
	}

	return s, nil
}

// snapshot loads declarations from the manifest flag or from package patterns.
func (s *session) snapshot(ctx context.Context, manifestPath string, patterns []string) (*decl.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if manifestPath != "" {
		if len(patterns) > 0 {
			return nil, errors.New("package patterns and --manifest are mutually exclusive")
		}

		f, err := manifest.LoadFile(manifestPath)
		if err != nil {
			return nil, err
		}

		s.logger.Debug("loaded manifest", "path", manifestPath, "types", len(f.Types))

		return f.Snapshot(manifestPath)
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	snap, err := analyze.NewLoader(s.cfg.AnalyzeOptions()).Load(patterns...)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("loaded packages", "patterns", patterns, "types", len(snap.Types))

	return snap, nil
}

func (s *session) driver() *driver.Driver {
	return driver.New(driver.Options{
		Jobs:   s.cfg.Workers(),
		Names:  s.cfg.NamesOptions(),
		Logger: s.logger,
	})
}

// report prints diags and converts error diagnostics into errDiagnostics.
func (s *session) report(diags diagnostic.Diagnostics) error {
	if err := diags.Fprint(s.stderr, s.color); err != nil {
		return fmt.Errorf("writing diagnostics: %w", err)
	}

	if diags.HasErrors() {
		return errDiagnostics
	}

	return nil
}
