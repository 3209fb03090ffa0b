// Package errors classifies CLI failures so that each maps to one exit code
// from pkg/exitcode.
package errors

import (
	"errors"
	"fmt"

	"github.com/AndreyAkinshin/gotest-ctrf/pkg/exitcode"
)

// Kind says which part of a run failed.
type Kind int

const (
	// KindRuntime covers everything without a more specific kind.
	KindRuntime Kind = iota
	// KindConfig is a bad config file, environment variable or flag.
	KindConfig
	// KindEnvironment means the report cannot be written where configured.
	KindEnvironment
	// KindInput means the test output or a report could not be read.
	KindInput
)

// Error is a classified CLI error. Path names the file involved, if any.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for the error's kind.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return exitcode.ConfigError
	case KindEnvironment:
		return exitcode.EnvError
	default:
		return exitcode.Failure
	}
}

// Configf returns a configuration error.
func Configf(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// ConfigFile returns a configuration error for the file at path.
func ConfigFile(path string, cause error) *Error {
	return &Error{Kind: KindConfig, Message: "invalid configuration", Path: path, Cause: cause}
}

// Environment returns an error for a reporter that cannot be set up.
func Environment(message string, cause error) *Error {
	return &Error{Kind: KindEnvironment, Message: message, Cause: cause}
}

// Input returns an error for test output that could not be read.
func Input(path string, cause error) *Error {
	return &Error{Kind: KindInput, Message: "failed to read test events", Path: path, Cause: cause}
}

// Report returns an error for a CTRF report file that cannot be used.
func Report(path string, cause error) *Error {
	return &Error{Kind: KindInput, Message: "cannot read CTRF report", Path: path, Cause: cause}
}

// Wrap returns a runtime error with message as context for err.
func Wrap(err error, message string) *Error {
	return &Error{Kind: KindRuntime, Message: message, Cause: err}
}

// GetExitCode returns the exit code for err. Errors that are not *Error,
// directly or wrapped, are runtime failures.
func GetExitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return exitcode.Failure
}
