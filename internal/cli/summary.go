package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/errors"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/output"
	"github.com/AndreyAkinshin/gotest-ctrf/internal/schema"
	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
	"github.com/AndreyAkinshin/gotest-ctrf/pkg/exitcode"
)

func (a *app) newSummaryCmd() *cobra.Command {
	defaultPath := filepath.Join(ctrf.DefaultOutputDir, ctrf.DefaultOutputFile)

	return &cobra.Command{
		Use:   "summary [report.json]",
		Short: "Print a summary of a CTRF report",
		Long: `Reads a CTRF report, checks it against the report schema and prints the test
counts and every failed test. Exits with status 1 when the report contains
failed tests.`,
		Example: `  gotest-ctrf summary
  gotest-ctrf summary reports/ctrf-report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPath
			if len(args) == 1 {
				path = args[0]
			}
			return a.summary(path)
		},
	}
}

func (a *app) summary(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Report(path, err)
	}
	if err := schema.ValidateReport(data); err != nil {
		return errors.Report(path, err)
	}
	report, err := ctrf.DecodeReport(data)
	if err != nil {
		return errors.Report(path, err)
	}

	printSummary(a.out, report)

	if report.Results.Summary.Failed > 0 {
		a.exit = exitcode.Failure
	}
	return nil
}

// summaryStatuses are printed in this order.
var summaryStatuses = []ctrf.Status{
	ctrf.StatusPassed,
	ctrf.StatusFailed,
	ctrf.StatusSkipped,
	ctrf.StatusPending,
	ctrf.StatusOther,
}

// printSummary prints a formatted test summary.
func printSummary(out *output.Writer, report *ctrf.Report) {
	res := report.Results
	s := res.Summary
	title := cases.Title(language.English)

	out.SummaryHeader("Test Summary")
	out.SummaryItem("Tool", res.Tool.Name)
	out.SummaryItem("Tests", strconv.Itoa(s.Tests))

	counts := map[ctrf.Status]int{
		ctrf.StatusPassed:  s.Passed,
		ctrf.StatusFailed:  s.Failed,
		ctrf.StatusSkipped: s.Skipped,
		ctrf.StatusPending: s.Pending,
		ctrf.StatusOther:   s.Other,
	}
	for _, status := range summaryStatuses {
		n := counts[status]
		label := title.String(string(status))
		value := strconv.Itoa(n)
		switch {
		case status == ctrf.StatusPassed:
			out.SummaryPassed(label, value)
		case n == 0:
			out.SummaryItem(label, value)
		case status == ctrf.StatusFailed:
			out.SummaryFailed(label, value)
		default:
			out.SummaryWarning(label, value)
		}
	}
	if s.Stop >= s.Start {
		out.SummaryItem("Duration", formatMillis(s.Stop-s.Start))
	}

	var failed []ctrf.Test
	for _, t := range res.Tests {
		if t.Status == ctrf.StatusFailed {
			failed = append(failed, t)
		}
	}
	if len(failed) > 0 {
		out.SummarySectionLabel("Failed Tests:")
		for _, t := range failed {
			out.SummaryTest(t.Name, false, formatMillis(t.Duration), failureHeadline(t))
		}
	}

	switch {
	case s.Failed > 0:
		out.FinalFailure("%d of %d tests failed.", s.Failed, s.Tests)
	case s.Passed == s.Tests:
		out.FinalSuccess("All %d tests passed.", s.Tests)
	default:
		out.FinalSuccess("No failed tests (%d passed of %d).", s.Passed, s.Tests)
	}
}

// failureHeadline returns the first line of a failed test's message, with
// its location when known.
func failureHeadline(t ctrf.Test) string {
	if t.TestDiagnostics == nil {
		return ""
	}
	msg, _, _ := strings.Cut(strings.TrimSpace(t.Message), "\n")
	msg = strings.TrimSpace(msg)
	if t.FilePath != "" && t.Line != nil {
		loc := fmt.Sprintf("%s:%d", filepath.Base(t.FilePath), *t.Line)
		if msg == "" {
			return loc
		}
		return loc + ": " + msg
	}
	return msg
}

func formatMillis(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}
