// Package cli implements the gotest-ctrf command line.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/errors"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/output"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/version"
	"github.com/AndreyAkinshin/gotest-ctrf/pkg/exitcode"
)

// app holds the streams and state of one CLI invocation.
type app struct {
	stdin  io.Reader
	stderr io.Writer
	out    *output.Writer
	// getwd locates the working directory; tests replace it.
	getwd func() (string, error)

	// exit is returned when the command itself succeeds.
	exit int
}

func newApp(stdin io.Reader, out *output.Writer, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stderr: stderr,
		out:    out,
		getwd:  os.Getwd,
		exit:   exitcode.Success,
	}
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return newApp(os.Stdin, output.New(), os.Stderr).run(args)
}

func (a *app) run(args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.out.Out())
	root.SetErr(a.stderr)

	if err := root.Execute(); err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	return a.exit
}

// newRootCmd creates the root command. Running it without a subcommand
// converts test output into a CTRF report.
func (a *app) newRootCmd() *cobra.Command {
	var f rootFlags

	rootCmd := &cobra.Command{
		Use:   "gotest-ctrf",
		Short: "Write go test results as a CTRF report",
		Long: `gotest-ctrf - write go test results as a Common Test Report Format (CTRF) report

Reads the output of go test -json (or plain go test -v with --format text) from
stdin or --input and writes one CTRF JSON report. Settings come from a
.ctrf.json, .ctrf.yaml or .ctrf.toml file, CTRF_* environment variables and
flags, in increasing order of precedence.`,
		Example: `  go test -json ./... | gotest-ctrf
  go test -json ./... | gotest-ctrf --passthrough --summary --fail-on-failure
  go test -v ./... 2>&1 | gotest-ctrf --format text --output-dir reports
  gotest-ctrf summary ctrf/ctrf-report.json`,
		Version:       version.FullVersion(),
		Args:          cobra.NoArgs,
		SilenceErrors: true, // Run prints errors with the gotest-ctrf prefix
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, &f)
		},
	}
	rootCmd.SetVersionTemplate("gotest-ctrf {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Configf("%v", err)
	})

	f.register(rootCmd)

	rootCmd.AddCommand(
		a.newSummaryCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
