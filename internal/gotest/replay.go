package gotest

import (
	"bufio"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/project"
	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
)

// maxLineSize bounds a single line of input. test2json emits one JSON object
// per output line, and some tests print very long lines.
const maxLineSize = 16 << 20

// Options configures a replay.
type Options struct {
	// Module maps package import paths to source directories. When nil,
	// test file paths are only known from absolute paths in the output.
	Module *project.Module
	// Passthrough receives the raw test output, if set.
	Passthrough io.Writer
	Logger      *zap.Logger
}

// Stats describes a finished replay.
type Stats struct {
	Lines      int // Input lines read
	Ignored    int // Lines that were not test2json events
	Tests      int // Test cases reported to the observer
	Unfinished int // Tests reported because they never completed
}

// testState accumulates one running test.
type testState struct {
	pkg    string
	name   string
	action string
	output []string
}

// replayer turns a stream of events into observer calls.
type replayer struct {
	obs     ctrf.Observer
	opts    Options
	log     *zap.Logger
	running map[string]*testState
	order   []string // keys of running tests, in start order
	stats   Stats

	// testFuncs caches project.TestFuncs per package directory.
	testFuncs map[string]map[string]string
}

func newReplayer(obs ctrf.Observer, opts Options) *replayer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &replayer{
		obs:     obs,
		opts:    opts,
		log:     log,
		running: make(map[string]*testState),

		testFuncs: make(map[string]map[string]string),
	}
}

// Replay reads go test -json output from r and drives obs through one run:
// OnRunStart before reading, OnTestCaseComplete for every finished test in
// stream order, and OnRunEnd once input is exhausted. A read error is
// returned after OnRunEnd has been called.
func Replay(r io.Reader, obs ctrf.Observer, opts Options) (Stats, error) {
	rp := newReplayer(obs, opts)
	obs.OnRunStart()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		rp.stats.Lines++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		ev, ok := decodeEvent(line)
		if !ok {
			rp.stats.Ignored++
			rp.log.Debug("Ignoring non-event line", zap.ByteString("line", line))
			continue
		}
		rp.handle(ev)
	}

	rp.finish()
	obs.OnRunEnd()
	return rp.stats, scanner.Err()
}

func (rp *replayer) handle(ev Event) {
	if ev.Action == ActionOutput && rp.opts.Passthrough != nil {
		_, _ = io.WriteString(rp.opts.Passthrough, ev.Output)
	}

	// Package-level events carry no test name.
	if ev.Test == "" {
		if isTerminal(ev.Action) {
			rp.flushPackage(ev.Package)
		}
		return
	}

	key := testKey(ev.Package, ev.Test)
	st := rp.running[key]
	if st == nil && ev.Action == ActionOutput {
		// Output for a test that already completed or never started.
		return
	}
	if st == nil {
		st = &testState{pkg: ev.Package, name: ev.Test, action: ActionRun}
		rp.running[key] = st
		rp.order = append(rp.order, key)
	}

	switch ev.Action {
	case ActionOutput:
		st.output = append(st.output, ev.Output)
	case ActionRun, ActionPause, ActionCont:
		st.action = ev.Action
	default:
		if isTerminal(ev.Action) {
			delete(rp.running, key)
			rp.complete(st, ev.Action, ev.elapsed())
		}
	}
}

// complete reports one finished test to the observer.
func (rp *replayer) complete(st *testState, action string, elapsed time.Duration) {
	tc := ctrf.TestCase{
		Name:       qualifiedName(st.pkg, st.name),
		Diagnostic: &ctrf.Diagnostic{Duration: elapsed},
		Result:     ctrf.Result{State: action},
	}

	pkgDir := rp.packageDir(st.pkg)
	tc.FilePath = rp.declaringFile(pkgDir, st.name)
	if action == ActionFail {
		f := extractFailures(splitLines(st.output), pkgDir)
		tc.Result.Errors = f.errors
		if tc.FilePath == "" {
			tc.FilePath = f.file
		}
	}

	rp.stats.Tests++
	rp.obs.OnTestCaseComplete(tc)
}

// flushPackage reports tests of pkg that never completed, in start order.
func (rp *replayer) flushPackage(pkg string) {
	rp.flush(func(st *testState) bool { return st.pkg == pkg })
}

// finish reports every test that never completed.
func (rp *replayer) finish() {
	rp.flush(func(*testState) bool { return true })
}

func (rp *replayer) flush(match func(*testState) bool) {
	remaining := rp.order[:0]
	for _, key := range rp.order {
		st, ok := rp.running[key]
		if !ok {
			continue
		}
		if !match(st) {
			remaining = append(remaining, key)
			continue
		}
		delete(rp.running, key)
		rp.stats.Unfinished++
		rp.log.Debug("Test did not complete", zap.String("package", st.pkg), zap.String("test", st.name))
		rp.complete(st, st.action, 0)
	}
	rp.order = remaining
}

// declaringFile returns the _test.go file in pkgDir that declares the
// top-level test of name, or "" when it is not found.
func (rp *replayer) declaringFile(pkgDir, name string) string {
	if pkgDir == "" {
		return ""
	}
	funcs, ok := rp.testFuncs[pkgDir]
	if !ok {
		var err error
		funcs, err = project.TestFuncs(pkgDir)
		if err != nil {
			rp.log.Debug("Cannot parse test files", zap.String("dir", pkgDir), zap.Error(err))
		}
		rp.testFuncs[pkgDir] = funcs
	}
	top, _, _ := strings.Cut(name, "/")
	return funcs[top]
}

func (rp *replayer) packageDir(pkg string) string {
	if rp.opts.Module == nil {
		return ""
	}
	dir, ok := rp.opts.Module.PackageDir(pkg)
	if !ok {
		return ""
	}
	return dir
}
