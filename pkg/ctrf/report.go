// Package ctrf collects test results into Common Test Report Format documents.
//
// A Reporter is driven through the three Observer callbacks by a host test
// runner and writes a single JSON report when the run ends.
package ctrf

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report is the root of a CTRF document.
type Report struct {
	Results Results `json:"results"`
}

// Results holds everything collected during one run.
type Results struct {
	Tool        Tool         `json:"tool"`
	Summary     Summary      `json:"summary"`
	Tests       []Test       `json:"tests"`
	Environment *Environment `json:"environment,omitempty"`
}

// Tool identifies the test runner that produced the results.
type Tool struct {
	Name string `json:"name"`
}

// Summary holds aggregate counters and the run's wall-clock bounds.
// Start and Stop are Unix epoch milliseconds.
type Summary struct {
	Tests   int   `json:"tests"`
	Passed  int   `json:"passed"`
	Failed  int   `json:"failed"`
	Pending int   `json:"pending"`
	Skipped int   `json:"skipped"`
	Other   int   `json:"other"`
	Start   int64 `json:"start"`
	Stop    int64 `json:"stop"`
}

// count increments the total and the counter matching status.
func (s *Summary) count(status Status) {
	s.Tests++
	switch status {
	case StatusPassed:
		s.Passed++
	case StatusFailed:
		s.Failed++
	case StatusPending:
		s.Pending++
	case StatusSkipped:
		s.Skipped++
	default:
		s.Other++
	}
}

// Test is one completed test case.
//
// The embedded diagnostics group is nil in minimal mode, in which case none
// of its keys are serialized.
type Test struct {
	Name     string `json:"name"`
	Duration int64  `json:"duration"`
	Status   Status `json:"status"`

	*TestDiagnostics
}

// TestDiagnostics is the optional part of a Test record.
type TestDiagnostics struct {
	Message   string `json:"message"`
	Trace     string `json:"trace"`
	Line      *int   `json:"line,omitempty"`
	RawStatus string `json:"rawStatus"`
	Type      string `json:"type"`
	FilePath  string `json:"filePath,omitempty"`
	Retries   int    `json:"retries"`
	Flaky     bool   `json:"flaky"`
	Suite     string `json:"suite"`
}

// Environment describes where the run happened. Only non-empty fields are
// serialized.
type Environment struct {
	AppName         string `json:"appName,omitempty"`
	AppVersion      string `json:"appVersion,omitempty"`
	OSPlatform      string `json:"osPlatform,omitempty"`
	OSRelease       string `json:"osRelease,omitempty"`
	OSVersion       string `json:"osVersion,omitempty"`
	BuildName       string `json:"buildName,omitempty"`
	BuildNumber     string `json:"buildNumber,omitempty"`
	BuildURL        string `json:"buildUrl,omitempty"`
	RepositoryName  string `json:"repositoryName,omitempty"`
	RepositoryURL   string `json:"repositoryUrl,omitempty"`
	BranchName      string `json:"branchName,omitempty"`
	TestEnvironment string `json:"testEnvironment,omitempty"`
}

// IsEmpty reports whether no field of e is set.
func (e Environment) IsEmpty() bool {
	return e == Environment{}
}

// ReadReport reads and decodes a CTRF report from path.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	r, err := DecodeReport(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return r, nil
}

// DecodeReport decodes a CTRF report from JSON.
func DecodeReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
