package gotest

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
)

// Static regexes for failure output, compiled once at package init.
var (
	// "    foo_test.go:15: expected 42, got 0" from t.Error and friends.
	logLineRegex = regexp.MustCompile(`^(\s+)(\S+\.go):(\d+): ?(.*)$`)
	// Unindented "panic: ..." line that starts a goroutine dump.
	panicRegex = regexp.MustCompile(`^panic: (.*)$`)
)

// failures holds the errors recovered from a failed test's output.
type failures struct {
	errors []ctrf.TestError
	// file is the absolute path of the test's source file, if found.
	file string
}

// logBlock is one t.Error message with its continuation lines.
type logBlock struct {
	indent string
	file   string
	line   string
	lines  []string
}

// extractFailures turns captured test output into errors. pkgDir is the
// package's source directory, or empty when unknown.
func extractFailures(output []string, pkgDir string) failures {
	var f failures
	var cur *logBlock

	flush := func() {
		if cur == nil {
			return
		}
		path := cur.file
		if pkgDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(pkgDir, path)
		}
		message := strings.TrimRight(strings.TrimLeft(strings.Join(cur.lines, "\n"), "\n"), " \t\n")
		f.errors = append(f.errors, ctrf.TestError{
			Message: message,
			Stack:   "\t" + path + ":" + cur.line,
		})
		if f.file == "" && filepath.IsAbs(path) {
			f.file = path
		}
		cur = nil
	}

	for i, raw := range output {
		line := strings.TrimRight(raw, "\r")

		if isBoilerplate(line) {
			flush()
			continue
		}

		if m := panicRegex.FindStringSubmatch(line); m != nil {
			flush()
			stack := collectStack(output[i+1:])
			f.errors = append(f.errors, ctrf.TestError{
				Message: "panic: " + strings.TrimSuffix(m[1], " [recovered]"),
				Stack:   stack,
			})
			if f.file == "" {
				f.file = testFileFromStack(stack, pkgDir)
			}
			return f
		}

		if m := logLineRegex.FindStringSubmatch(line); m != nil {
			flush()
			cur = &logBlock{indent: m[1], file: m[2], line: m[3], lines: []string{m[4]}}
			continue
		}

		if cur != nil && isContinuation(line, cur.indent) {
			rest := strings.TrimPrefix(line, cur.indent)
			cur.lines = append(cur.lines, strings.TrimPrefix(rest, "    "))
			continue
		}

		flush()
	}
	flush()

	if len(f.errors) == 0 {
		if msg := plainOutput(output); msg != "" {
			f.errors = append(f.errors, ctrf.TestError{Message: msg})
		}
	}

	return f
}

// isContinuation reports whether line is indented deeper than a log header.
func isContinuation(line, indent string) bool {
	if !strings.HasPrefix(line, indent) || len(line) == len(indent) {
		return false
	}
	c := line[len(indent)]
	return c == ' ' || c == '\t'
}

// isBoilerplate reports lines the go test command prints around test output.
func isBoilerplate(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "PASS", trimmed == "FAIL":
		return true
	case strings.HasPrefix(trimmed, "=== RUN"),
		strings.HasPrefix(trimmed, "=== PAUSE"),
		strings.HasPrefix(trimmed, "=== CONT"),
		strings.HasPrefix(trimmed, "=== NAME"),
		strings.HasPrefix(trimmed, "--- PASS:"),
		strings.HasPrefix(trimmed, "--- FAIL:"),
		strings.HasPrefix(trimmed, "--- SKIP:"),
		strings.HasPrefix(trimmed, "--- BENCH:"),
		strings.HasPrefix(trimmed, "exit status "),
		strings.HasPrefix(trimmed, "FAIL\t"),
		strings.HasPrefix(trimmed, "ok  \t"):
		return true
	}
	return false
}

// collectStack returns the goroutine dump that follows a panic line.
func collectStack(lines []string) string {
	var kept []string
	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		if isBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), " \t\n")
}

// testFileFromStack finds the first _test.go frame, preferring frames in pkgDir.
func testFileFromStack(stack, pkgDir string) string {
	var fallback string
	for _, fr := range ctrf.ParseStackTrace(stack) {
		if !strings.HasSuffix(fr.File, "_test.go") || !filepath.IsAbs(fr.File) {
			continue
		}
		if pkgDir == "" || filepath.Dir(fr.File) == pkgDir {
			return fr.File
		}
		if fallback == "" {
			fallback = fr.File
		}
	}
	return fallback
}

// plainOutput joins the non-boilerplate lines of output.
func plainOutput(output []string) string {
	var kept []string
	for _, raw := range output {
		line := strings.TrimSpace(raw)
		if line == "" || isBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
