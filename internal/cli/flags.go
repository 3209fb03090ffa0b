package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/config"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/logging"
	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
)

// rootFlags holds the flags of the root command.
type rootFlags struct {
	configFile string
	envFile    string
	input      string

	outputFile string
	outputDir  string
	minimal    bool
	testType   string
	toolName   string
	format     string

	passthrough   bool
	summary       bool
	failOnFailure bool

	logLevel  string
	logFormat string
	quiet     bool
}

func (f *rootFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.StringVar(&f.configFile, "config", "", "config file (default: .ctrf.{json,yaml,yml,toml} in the working directory or module root)")
	fs.StringVar(&f.envFile, "env-file", "", "dotenv file with CTRF_* variables")
	fs.StringVarP(&f.input, "input", "i", "-", `file with go test output ("-" for stdin)`)

	fs.StringVarP(&f.outputFile, "output-file", "o", "", fmt.Sprintf("report file name (default %q)", ctrf.DefaultOutputFile))
	fs.StringVarP(&f.outputDir, "output-dir", "d", "", fmt.Sprintf("report directory (default %q)", ctrf.DefaultOutputDir))
	fs.BoolVar(&f.minimal, "minimal", false, "write only name, status and duration for each test")
	fs.StringVar(&f.testType, "test-type", "", fmt.Sprintf("type recorded on every test (default %q)", ctrf.DefaultTestType))
	fs.StringVar(&f.toolName, "tool-name", "", fmt.Sprintf("tool name recorded in the report (default %q)", ctrf.DefaultToolName))
	fs.StringVar(&f.format, "format", "", `input format: "json" for go test -json, "text" for go test -v (default "json")`)

	fs.BoolVar(&f.passthrough, "passthrough", false, "echo test output to stdout while reading it")
	fs.BoolVar(&f.summary, "summary", false, "print a test summary after writing the report")
	fs.BoolVar(&f.failOnFailure, "fail-on-failure", false, "exit with status 1 when any test failed")

	fs.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", logging.FormatConsole, `log format ("console" or "json")`)
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")

	for _, ef := range config.EnvFields {
		fs.String(ef.Flag, "", ef.Help+" (env "+ef.Env+")")
	}
	fs.SortFlags = false
}

// layer returns the settings given on the command line. Only flags that
// were explicitly set take part.
func (f *rootFlags) layer(fs *pflag.FlagSet) *config.Config {
	cfg := &config.Config{}
	if fs.Changed("output-file") {
		cfg.OutputFile = f.outputFile
	}
	if fs.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if fs.Changed("minimal") {
		minimal := f.minimal
		cfg.Minimal = &minimal
	}
	if fs.Changed("test-type") {
		cfg.TestType = f.testType
	}
	if fs.Changed("tool-name") {
		cfg.ToolName = f.toolName
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	for _, ef := range config.EnvFields {
		if fs.Changed(ef.Flag) {
			v, _ := fs.GetString(ef.Flag)
			ef.Set(&cfg.Environment, v)
		}
	}
	return cfg
}

// effectiveLogLevel returns the log level after --quiet is applied.
func (f *rootFlags) effectiveLogLevel() string {
	if f.quiet {
		return "error"
	}
	return f.logLevel
}
