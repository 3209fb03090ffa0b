package ctrf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/logging"
)

// Reporter accumulates one run's results and writes them as a CTRF report
// when the run ends. A Reporter is not safe for concurrent use; hosts call
// it from a single timeline.
type Reporter struct {
	opts     Options
	log      *zap.Logger
	report   Report
	writeErr error
}

var _ Observer = (*Reporter)(nil)

// New creates a Reporter and ensures its output directory exists.
func New(opts Options) (*Reporter, error) {
	opts = opts.resolve()

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", opts.OutputDir, err)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}

	return &Reporter{
		opts: opts,
		log:  log,
		report: Report{
			Results: Results{
				Tool:  Tool{Name: opts.ToolName},
				Tests: []Test{},
			},
		},
	}, nil
}

// Path returns the file the report is written to.
func (r *Reporter) Path() string {
	return filepath.Join(r.opts.OutputDir, r.opts.OutputFile)
}

// Report returns a snapshot of the report collected so far.
func (r *Reporter) Report() Report {
	snapshot := r.report
	snapshot.Results.Tests = append([]Test(nil), r.report.Results.Tests...)
	return snapshot
}

// WriteErr returns the error from the last report write, if any.
func (r *Reporter) WriteErr() error {
	return r.writeErr
}

// OnRunStart records the start time and attaches environment metadata.
func (r *Reporter) OnRunStart() {
	r.report.Results.Summary.Start = r.opts.Now().UnixMilli()
	if env := r.opts.Environment; !env.IsEmpty() {
		r.report.Results.Environment = &env
	}
}

// OnTestCaseComplete appends a record for tc and updates the counters.
func (r *Reporter) OnTestCaseComplete(tc TestCase) {
	status := MapStatus(tc.Result.State)

	test := Test{
		Name:     tc.Name,
		Duration: durationMillis(tc.Diagnostic),
		Status:   status,
	}
	if !r.opts.Minimal {
		test.TestDiagnostics = r.diagnostics(tc, status)
	}

	r.report.Results.Tests = append(r.report.Results.Tests, test)
	r.report.Results.Summary.count(status)
}

// OnRunEnd records the stop time and writes the report. Write failures are
// logged and kept in WriteErr; they never reach the host.
func (r *Reporter) OnRunEnd() {
	stop := r.opts.Now().UnixMilli()
	if stop < r.report.Results.Summary.Start {
		stop = r.report.Results.Summary.Start
	}
	r.report.Results.Summary.Stop = stop

	path := r.Path()
	if err := r.write(path); err != nil {
		r.writeErr = err
		r.log.Error("Failed to write CTRF report", zap.String("path", path), zap.Error(err))
		return
	}
	r.writeErr = nil
	r.log.Info("CTRF report written", zap.String("dir", r.opts.OutputDir), zap.String("file", r.opts.OutputFile))
}

func (r *Reporter) write(path string) error {
	data, err := Marshal(&r.report)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// diagnostics builds the optional part of a record. A panic while extracting
// failure details leaves the failure fields empty.
func (r *Reporter) diagnostics(tc TestCase, status Status) *TestDiagnostics {
	d := &TestDiagnostics{
		RawStatus: tc.Result.State,
		Type:      r.opts.TestType,
		FilePath:  tc.FilePath,
		Suite:     tc.Name,
	}
	if tc.Diagnostic != nil {
		d.Retries = max(tc.Diagnostic.RetryCount, 0)
		d.Flaky = tc.Diagnostic.Flaky
	}
	if status == StatusFailed {
		details := r.safeExtract(tc)
		d.Message = details.Message
		d.Trace = details.Trace
		d.Line = details.Line
	}
	return d
}

func (r *Reporter) safeExtract(tc TestCase) (details FailureDetails) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Debug("Failure extraction panicked", zap.String("test", tc.Name), zap.Any("panic", p))
			details = FailureDetails{}
		}
	}()
	return ExtractFailureDetails(tc)
}

func durationMillis(d *Diagnostic) int64 {
	if d == nil || d.Duration < 0 {
		return 0
	}
	return d.Duration.Milliseconds()
}

// Marshal encodes a report as two-space indented JSON with a trailing newline.
// HTML characters are not escaped.
func Marshal(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}
