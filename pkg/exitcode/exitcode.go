// Package exitcode defines the exit codes returned by the gotest-ctrf CLI,
// so CI scripts can check them symbolically.
package exitcode

const (
	// Success indicates the report was produced (or the command completed).
	Success = 0

	// Failure indicates a runtime failure, or failed tests when
	// --fail-on-failure is set.
	Failure = 1

	// ConfigError indicates an invalid configuration file, environment
	// value, or flag.
	ConfigError = 2

	// EnvError indicates the environment cannot host the reporter, e.g. the
	// output directory cannot be created.
	EnvError = 3
)
