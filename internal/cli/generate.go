package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/config"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/errors"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/gotest"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/logging"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/project"
	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
	"github.com/AndreyAkinshin/gotest-ctrf/pkg/exitcode"
)

// generate reads test output and writes the CTRF report.
func (a *app) generate(cmd *cobra.Command, f *rootFlags) error {
	a.out.SetQuiet(f.quiet)
	log := logging.New(a.stderr, f.effectiveLogLevel(), f.logFormat)
	defer func() { _ = log.Sync() }()

	wd, err := a.getwd()
	if err != nil {
		return errors.Environment("cannot determine working directory", err)
	}

	mod, err := project.FindModule(wd)
	if err != nil {
		log.Debug("Test file paths limited to absolute paths in output", zap.Error(err))
		mod = nil
	}

	cfg, err := a.loadConfig(cmd, f, wd, mod, log)
	if err != nil {
		return err
	}

	in, name, closeInput, err := a.openInput(f.input)
	if err != nil {
		return err
	}
	defer closeInput()

	reporter, err := ctrf.New(cfg.Options(log))
	if err != nil {
		return errors.Environment("cannot prepare report output", err)
	}

	opts := gotest.Options{Module: mod, Logger: log}
	if f.passthrough {
		opts.Passthrough = a.out.Out()
	}

	replay := gotest.Replay
	if cfg.Format == config.FormatText {
		replay = gotest.ReplayText
	}
	stats, readErr := replay(in, reporter, opts)

	log.Debug("Test output read",
		zap.Int("lines", stats.Lines),
		zap.Int("ignored", stats.Ignored),
		zap.Int("tests", stats.Tests),
		zap.Int("unfinished", stats.Unfinished),
	)

	if readErr != nil {
		return errors.Input(name, readErr)
	}
	if err := reporter.WriteErr(); err != nil {
		return errors.Wrap(err, "failed to write CTRF report")
	}

	if stats.Unfinished > 0 {
		a.out.Warning("%d test(s) did not finish; recorded with status %q", stats.Unfinished, ctrf.StatusOther)
	}
	switch {
	case stats.Tests > 0:
	case cfg.Format == config.FormatJSON && stats.Lines > 0 && stats.Ignored == stats.Lines:
		a.out.Warning("no test events found in input; use 'go test -json ./...', or --format text for plain output")
	default:
		a.out.Warning("no test results found in input")
	}

	report := reporter.Report()
	if f.summary && !f.quiet {
		printSummary(a.out, &report)
	}

	if f.failOnFailure && report.Results.Summary.Failed > 0 {
		a.exit = exitcode.Failure
	}
	return nil
}

// loadConfig merges the config file, environment and flag layers.
func (a *app) loadConfig(cmd *cobra.Command, f *rootFlags, wd string, mod *project.Module, log *zap.Logger) (*config.Config, error) {
	cfg := &config.Config{}

	path := f.configFile
	if path == "" {
		dirs := []string{wd}
		if mod != nil && mod.Root != wd {
			dirs = append(dirs, mod.Root)
		}
		path, _ = config.Discover(dirs...)
	}
	if path != "" {
		fileCfg, warnings, err := config.Load(path)
		if err != nil {
			return nil, errors.ConfigFile(path, err)
		}
		for _, w := range warnings {
			a.out.Warning("%s: %s", path, w)
		}
		log.Debug("Loaded config file", zap.String("path", path))
		cfg.Merge(fileCfg)
	}

	lookup, err := config.EnvLookup(f.envFile)
	if err != nil {
		return nil, errors.ConfigFile(f.envFile, err)
	}
	envCfg, err := config.FromEnv(lookup)
	if err != nil {
		return nil, errors.Configf("%v", err)
	}
	cfg.Merge(envCfg)
	cfg.Merge(f.layer(cmd.Flags()))

	if err := cfg.Complete(); err != nil {
		errs := multierr.Errors(err)
		for _, e := range errs[1:] {
			a.out.ErrorPrefix("%v", e)
		}
		return nil, errors.Configf("invalid configuration: %v", errs[0])
	}
	return cfg, nil
}

// openInput opens the test output source. "-" and "" mean stdin.
func (a *app) openInput(path string) (io.Reader, string, func(), error) {
	if path == "" || path == "-" {
		return a.stdin, "stdin", func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, path, nil, errors.Input(path, err)
	}
	return file, path, func() { _ = file.Close() }, nil
}
