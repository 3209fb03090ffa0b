// Package gotest drives a ctrf.Observer from the output of the go test
// command, either the `go test -json` event stream or plain `go test -v` text.
package gotest

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Event represents a single event from go test -json output.
type Event struct {
	Time    string  `json:"Time"`
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test"`
	Elapsed float64 `json:"Elapsed"`
	Output  string  `json:"Output"`
}

// Actions emitted by test2json.
const (
	ActionStart  = "start"
	ActionRun    = "run"
	ActionPause  = "pause"
	ActionCont   = "cont"
	ActionPass   = "pass"
	ActionBench  = "bench"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionOutput = "output"
)

// decodeEvent parses one line of go test -json output. Lines that are not
// test2json objects (build output, "# pkg" headers) report false.
func decodeEvent(line []byte) (Event, bool) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, false
	}
	if ev.Action == "" {
		return Event{}, false
	}
	return ev, true
}

// isTerminal reports whether action completes a test or package.
func isTerminal(action string) bool {
	switch action {
	case ActionPass, ActionFail, ActionSkip, ActionBench:
		return true
	}
	return false
}

// elapsed converts test2json's float seconds into a duration.
func (e Event) elapsed() time.Duration {
	if e.Elapsed <= 0 {
		return 0
	}
	ns := e.Elapsed * float64(time.Second)
	if ns >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(ns)
}

// qualifiedName joins the package import path and test name.
func qualifiedName(pkg, test string) string {
	if pkg == "" {
		return test
	}
	return pkg + "." + test
}

// testKey identifies a test across packages.
func testKey(pkg, test string) string {
	return pkg + "\x00" + test
}

// splitLines splits captured output into lines without trailing newlines.
func splitLines(chunks []string) []string {
	joined := strings.Join(chunks, "")
	joined = strings.TrimSuffix(joined, "\n")
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "\n")
}
