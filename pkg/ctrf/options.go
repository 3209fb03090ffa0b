package ctrf

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Default option values.
const (
	DefaultOutputFile = "ctrf-report.json"
	DefaultOutputDir  = "ctrf"
	DefaultTestType   = "unit"
	DefaultToolName   = "gotest"
)

// Options configures a Reporter. Zero values fall back to the defaults above.
type Options struct {
	OutputFile string
	OutputDir  string
	// Minimal drops every optional field from test records.
	Minimal  bool
	TestType string
	ToolName string

	Environment Environment

	// Logger receives the write confirmation and write errors. When nil, a
	// console logger on stderr is used.
	Logger *zap.Logger
	// Now is the clock used for summary timestamps; nil means time.Now.
	Now func() time.Time
}

// resolve returns a copy of o with defaults applied and the file name
// normalized.
func (o Options) resolve() Options {
	if o.OutputFile == "" {
		o.OutputFile = DefaultOutputFile
	}
	o.OutputFile = NormalizeFilename(o.OutputFile)
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.TestType == "" {
		o.TestType = DefaultTestType
	}
	if o.ToolName == "" {
		o.ToolName = DefaultToolName
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// NormalizeFilename appends ".json" to name unless it already ends with it.
func NormalizeFilename(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}
