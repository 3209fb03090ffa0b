// Package config loads gotest-ctrf settings from config files, CTRF_*
// environment variables and command-line flags.
package config

import "github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"

// Input formats accepted by the CLI.
const (
	FormatJSON = "json" // go test -json
	FormatText = "text" // go test or go test -v
)

// Config is the complete set of reporter settings. Empty strings and a nil
// Minimal mean "not set" so that layers can be merged.
type Config struct {
	OutputFile  string           `json:"outputFile,omitempty"`
	OutputDir   string           `json:"outputDir,omitempty"`
	Minimal     *bool            `json:"minimal,omitempty"`
	TestType    string           `json:"testType,omitempty"`
	ToolName    string           `json:"toolName,omitempty"`
	Format      string           `json:"format,omitempty"`
	Environment ctrf.Environment `json:"environment"`
}

// EnvField describes one environment metadata field and the names it goes by
// in each configuration layer.
type EnvField struct {
	Key  string // JSON key in config files and reports
	Env  string // environment variable
	Flag string // command-line flag
	Help string
	ptr  func(*ctrf.Environment) *string
}

// Get returns the field's value in e.
func (f EnvField) Get(e *ctrf.Environment) string { return *f.ptr(e) }

// Set stores v in e.
func (f EnvField) Set(e *ctrf.Environment, v string) { *f.ptr(e) = v }

// EnvFields lists the environment metadata fields in report order.
var EnvFields = []EnvField{
	{"appName", "CTRF_APP_NAME", "app-name", "application name", func(e *ctrf.Environment) *string { return &e.AppName }},
	{"appVersion", "CTRF_APP_VERSION", "app-version", "application version", func(e *ctrf.Environment) *string { return &e.AppVersion }},
	{"osPlatform", "CTRF_OS_PLATFORM", "os-platform", "operating system platform", func(e *ctrf.Environment) *string { return &e.OSPlatform }},
	{"osRelease", "CTRF_OS_RELEASE", "os-release", "operating system release", func(e *ctrf.Environment) *string { return &e.OSRelease }},
	{"osVersion", "CTRF_OS_VERSION", "os-version", "operating system version", func(e *ctrf.Environment) *string { return &e.OSVersion }},
	{"buildName", "CTRF_BUILD_NAME", "build-name", "CI build name", func(e *ctrf.Environment) *string { return &e.BuildName }},
	{"buildNumber", "CTRF_BUILD_NUMBER", "build-number", "CI build number", func(e *ctrf.Environment) *string { return &e.BuildNumber }},
	{"buildUrl", "CTRF_BUILD_URL", "build-url", "CI build URL", func(e *ctrf.Environment) *string { return &e.BuildURL }},
	{"repositoryName", "CTRF_REPOSITORY_NAME", "repository-name", "repository name", func(e *ctrf.Environment) *string { return &e.RepositoryName }},
	{"repositoryUrl", "CTRF_REPOSITORY_URL", "repository-url", "repository URL", func(e *ctrf.Environment) *string { return &e.RepositoryURL }},
	{"branchName", "CTRF_BRANCH_NAME", "branch-name", "branch name", func(e *ctrf.Environment) *string { return &e.BranchName }},
	{"testEnvironment", "CTRF_TEST_ENVIRONMENT", "test-environment", "test environment name", func(e *ctrf.Environment) *string { return &e.TestEnvironment }},
}
