package ctrf

import "time"

// Observer receives the lifecycle of one test run. A host calls OnRunStart
// once, OnTestCaseComplete once per finished test, then OnRunEnd once.
// Calls are never made concurrently.
type Observer interface {
	OnRunStart()
	OnTestCaseComplete(tc TestCase)
	OnRunEnd()
}

// TestCase is the host's view of a finished test.
type TestCase struct {
	// Name is the fully-qualified test name.
	Name string
	// FilePath is the file that defines the test, if known.
	FilePath string
	// Diagnostic is nil when the host has no timing or retry data.
	Diagnostic *Diagnostic
	Result     Result
}

// Diagnostic carries optional timing and retry data for a test.
type Diagnostic struct {
	Duration   time.Duration
	RetryCount int
	Flaky      bool
}

// Result is the native outcome of a test.
type Result struct {
	// State is the runner's own status string, e.g. "pass" or "fail".
	State  string
	Errors []TestError
}

// TestError is one error attached to a test result.
type TestError struct {
	Message string
	// Stack is empty when the error carries no trace.
	Stack string
}
