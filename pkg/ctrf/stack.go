package ctrf

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Frame is one parsed stack trace line.
type Frame struct {
	// File is empty when the line names no file.
	File string
	// Line is 1-based; 0 means the line number is unknown.
	Line int
}

// Stack line shapes, compiled once at package init.
var (
	// at fn (/path/file.js:10:2), at /path/file.js:10, at fn (file.js)
	jsFrameRegex = regexp.MustCompile(`^\s*at\s+(?:(.+?)\s+\()?(.*?)(?::(\d+))?(?::(\d+))?\)?\s*$`)
	// \t/path/file_test.go:42 +0x1d, or testify's "Error Trace: /path/file_test.go:42"
	goFrameRegex = regexp.MustCompile(`^\s*(?:Error Trace:\s*)?(\S+\.go):(\d+)(?:\s+\+0x[0-9a-fA-F]+)?\s*$`)
)

// ParseStackTrace extracts frames from trace text in line order. Lines that
// do not look like stack frames are dropped.
func ParseStackTrace(trace string) []Frame {
	var frames []Frame
	for _, line := range strings.Split(trace, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := jsFrameRegex.FindStringSubmatch(line); m != nil {
			frames = append(frames, Frame{File: m[2], Line: atoiOrZero(m[3])})
			continue
		}
		if m := goFrameRegex.FindStringSubmatch(line); m != nil {
			frames = append(frames, Frame{File: m[1], Line: atoiOrZero(m[2])})
		}
	}
	return frames
}

// ResolveLine returns the line of the first frame whose file is testFile.
// Both paths are compared in absolute form.
func ResolveLine(frames []Frame, testFile string) (int, bool) {
	want, err := absPath(testFile)
	if err != nil {
		return 0, false
	}
	for _, f := range frames {
		if f.File == "" {
			continue
		}
		got, err := absPath(f.File)
		if err != nil {
			return 0, false
		}
		if got == want {
			if f.Line <= 0 {
				return 0, false
			}
			return f.Line, true
		}
	}
	return 0, false
}

func absPath(p string) (string, error) {
	p = strings.TrimPrefix(p, "file://")
	return filepath.Abs(p)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
