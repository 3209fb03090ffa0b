package gotest

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
)

// Static regexes for plain go test output parsing.
// Compiled once at package init for performance.
var (
	goRunRegex     = regexp.MustCompile(`^=== (RUN|PAUSE|CONT|NAME)\s+(\S+)`)
	goResultRegex  = regexp.MustCompile(`^(\s*)--- (PASS|FAIL|SKIP): (\S+) \((\d+(?:\.\d+)?)s\)`)
	goPackageRegex = regexp.MustCompile(`^(ok|FAIL|\?)\s+(\S+)(?:\s|$)`)
)

// textConverter turns plain go test output into test2json-style events.
// Test lines carry no package name, so events are buffered until the
// package's summary line ("ok  \tpkg\t0.01s") names it.
type textConverter struct {
	pending []Event
	started map[string]bool // tests with a "=== RUN" line in the pending block
	current string          // test receiving output lines

	// Last "--- FAIL" line of a test without a RUN line. Non-verbose output
	// prints the failure messages after it, indented deeper.
	failIdx    int
	failIndent int
}

func newTextConverter() *textConverter {
	return &textConverter{started: make(map[string]bool), failIdx: -1}
}

// ReplayText reads `go test` or `go test -v` output from r and drives obs
// the same way Replay does for JSON input.
func ReplayText(r io.Reader, obs ctrf.Observer, opts Options) (Stats, error) {
	passthrough := opts.Passthrough
	opts.Passthrough = nil
	rp := newReplayer(obs, opts)
	conv := newTextConverter()
	obs.OnRunStart()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		rp.stats.Lines++
		line := scanner.Text()
		if passthrough != nil {
			_, _ = io.WriteString(passthrough, line+"\n")
		}
		if !conv.line(line, rp) {
			rp.stats.Ignored++
		}
	}

	conv.flush("", "", rp)
	rp.finish()
	obs.OnRunEnd()
	return rp.stats, scanner.Err()
}

// line converts one line of output. It reports false for lines that were
// attributed to no test and no package.
func (c *textConverter) line(line string, rp *replayer) bool {
	if m := goRunRegex.FindStringSubmatch(line); m != nil {
		c.failIdx = -1
		c.current = m[2]
		switch m[1] {
		case "RUN":
			c.started[m[2]] = true
			c.pending = append(c.pending, Event{Action: ActionRun, Test: m[2]})
		case "PAUSE":
			c.pending = append(c.pending, Event{Action: ActionPause, Test: m[2]})
		case "CONT":
			c.pending = append(c.pending, Event{Action: ActionCont, Test: m[2]})
		}
		return true
	}

	if m := goResultRegex.FindStringSubmatch(line); m != nil {
		elapsed, _ := strconv.ParseFloat(m[4], 64)
		name := m[3]
		c.failIdx = -1
		if m[2] == "FAIL" && !c.started[name] {
			c.pending = append(c.pending, Event{Action: ActionRun, Test: name})
			c.failIdx = len(c.pending)
			c.failIndent = len(m[1])
		}
		c.pending = append(c.pending, Event{Action: strings.ToLower(m[2]), Test: name, Elapsed: elapsed})
		return true
	}

	if m := goPackageRegex.FindStringSubmatch(line); m != nil {
		action := ActionPass
		switch m[1] {
		case "FAIL":
			action = ActionFail
		case "?":
			action = ActionSkip
		}
		c.flush(m[2], action, rp)
		return true
	}

	if c.failIdx >= 0 && indentOf(line) > c.failIndent {
		fail := c.pending[c.failIdx]
		ev := Event{Action: ActionOutput, Test: fail.Test, Output: line + "\n"}
		c.pending = append(c.pending[:c.failIdx+1], c.pending[c.failIdx:]...)
		c.pending[c.failIdx] = ev
		c.failIdx++
		return true
	}

	if c.current != "" {
		c.pending = append(c.pending, Event{Action: ActionOutput, Test: c.current, Output: line + "\n"})
		return true
	}
	return false
}

// flush stamps pkg on the buffered events and replays them. A non-empty
// action also completes the package.
func (c *textConverter) flush(pkg, action string, rp *replayer) {
	for _, ev := range c.pending {
		ev.Package = pkg
		rp.handle(ev)
	}
	if action != "" {
		rp.handle(Event{Action: action, Package: pkg})
	}
	c.pending = c.pending[:0]
	c.started = make(map[string]bool)
	c.current = ""
	c.failIdx = -1
}

// indentOf returns the number of leading spaces and tabs in line.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
