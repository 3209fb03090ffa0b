package output

import (
	"bytes"
	"strings"
	"testing"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter(color bool) (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return NewWithWriters(stdout, stderr, color), stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil || w.err == nil {
		t.Error("New() left a writer nil")
	}
}

func TestWriter_Print(t *testing.T) {
	w, stdout, _ := newTestWriter(false)
	w.Print("hello %s", "world")
	if got := stdout.String(); got != "hello world" {
		t.Errorf("Print() = %q, want %q", got, "hello world")
	}
	if w.Out() != stdout {
		t.Error("Out() did not return stdout")
	}
}

func TestWriter_Info(t *testing.T) {
	w, stdout, _ := newTestWriter(false)
	w.Info("visible")
	w.SetQuiet(true)
	w.Info("hidden")
	w.Success("hidden too")

	if got := stdout.String(); got != "visible\n" {
		t.Errorf("output = %q, want %q", got, "visible\n")
	}
}

func TestWriter_Success(t *testing.T) {
	tests := []struct {
		color bool
		want  string
	}{
		{false, "done\n"},
		{true, "\033[32mdone\033[0m\n"},
	}
	for _, tt := range tests {
		w, stdout, _ := newTestWriter(tt.color)
		w.Success("done")
		if got := stdout.String(); got != tt.want {
			t.Errorf("Success(color=%v) = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestWriter_WarningGoesToStderr(t *testing.T) {
	w, stdout, stderr := newTestWriter(false)
	w.SetQuiet(true)
	w.Warning("unknown field %q", "x")

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if got := stderr.String(); got != "warning: unknown field \"x\"\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestWriter_ErrorPrefix(t *testing.T) {
	w, _, stderr := newTestWriter(false)
	w.ErrorPrefix("config: %s", "bad")
	if got := stderr.String(); got != "gotest-ctrf: config: bad\n" {
		t.Errorf("ErrorPrefix() = %q", got)
	}

	w, _, stderr = newTestWriter(true)
	w.ErrorPrefix("bad")
	if got := stderr.String(); !strings.Contains(got, red+"gotest-ctrf:"+reset) {
		t.Errorf("ErrorPrefix() with color = %q", got)
	}
}

func TestWriter_Summary(t *testing.T) {
	w, stdout, _ := newTestWriter(false)
	w.SummaryHeader("Test Summary")
	w.SummaryItem("Tests", "3")
	w.SummaryPassed("Passed", "1")
	w.SummaryFailed("Failed", "1")
	w.SummaryWarning("Skipped", "1")
	w.SummarySectionLabel("Failed Tests:")
	w.SummaryTest("p.TestA", false, "12ms", "boom")
	w.SummaryTest("p.TestB", true, "1ms", "")
	w.FinalFailure("%d test(s) failed", 1)

	want := `
=== Test Summary ===

  Tests: 3
  Passed: 1
  Failed: 1
  Skipped: 1

  Failed Tests:
    x p.TestA 12ms  (boom)
    + p.TestB 1ms

1 test(s) failed
`
	if got := stdout.String(); got != want {
		t.Errorf("summary output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriter_SummaryColors(t *testing.T) {
	w, stdout, _ := newTestWriter(true)
	w.SummaryPassed("Passed", "2")
	w.SummaryFailed("Failed", "1")
	w.SummaryTest("p.TestA", false, "1ms", "")
	w.FinalSuccess("ok")

	got := stdout.String()
	for _, want := range []string{green + "2" + reset, red + "1" + reset, red + "✗" + reset, green + "ok" + reset} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%q", want, got)
		}
	}
}
