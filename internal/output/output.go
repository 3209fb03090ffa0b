// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a Writer on stdout and stderr, with color when stdout is a terminal.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(os.Stdout),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Out returns the writer for standard output.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...any) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...any) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Success prints a success message (skipped in quiet mode).
func (w *Writer) Success(format string, args ...any) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println(green+format+reset, args...)
	} else {
		w.Println(format, args...)
	}
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...any) {
	if w.color {
		w.Errorln(yellow+"warning: "+format+reset, args...)
	} else {
		w.Errorln("warning: "+format, args...)
	}
}

// ErrorPrefix prints an error message with the gotest-ctrf prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%sgotest-ctrf:%s %s", red, reset, msg)
	} else {
		w.Errorln("gotest-ctrf: %s", msg)
	}
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s", dim, label, reset, value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryPassed prints a passed/success items summary.
func (w *Writer) SummaryPassed(label, value string) {
	w.summaryColored(green, label, value)
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	w.summaryColored(red, label, value)
}

// SummaryWarning prints a skipped or otherwise incomplete items summary.
func (w *Writer) SummaryWarning(label, value string) {
	w.summaryColored(yellow, label, value)
}

func (w *Writer) summaryColored(color, label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, color, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummarySectionLabel prints a label for a summary section (e.g., "Failed Tests:").
func (w *Writer) SummarySectionLabel(label string) {
	w.Println("")
	if w.color {
		w.Println("  %s%s%s", dim, label, reset)
	} else {
		w.Println("  %s", label)
	}
}

// SummaryTest prints one test with status indicator, name, duration, and optional message.
func (w *Writer) SummaryTest(name string, passed bool, duration string, message string) {
	if w.color {
		mark, color := "✓", green
		if !passed {
			mark, color = "✗", red
		}
		w.Print("    %s%s%s %s %s%s%s", color, mark, reset, name, dim, duration, reset)
		if message != "" {
			w.Print("  %s(%s)%s", dim, message, reset)
		}
	} else {
		mark := "+"
		if !passed {
			mark = "x"
		}
		w.Print("    %s %s %s", mark, name, duration)
		if message != "" {
			w.Print("  (%s)", message)
		}
	}
	w.Print("\n")
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...any) {
	w.final(green, format, args...)
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...any) {
	w.final(red, format, args...)
}

func (w *Writer) final(color, format string, args ...any) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", color, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// isTerminal returns true if f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)
