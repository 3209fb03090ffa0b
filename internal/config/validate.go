package config

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/multierr"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors. All problems are reported;
// use multierr.Errors to split the result.
func Validate(cfg *Config) error {
	var err error
	err = multierr.Append(err, ValidateOutputFile(cfg.OutputFile))
	err = multierr.Append(err, required("outputDir", cfg.OutputDir))
	err = multierr.Append(err, required("testType", cfg.TestType))
	err = multierr.Append(err, required("toolName", cfg.ToolName))
	err = multierr.Append(err, validateFormat(cfg.Format))
	err = multierr.Append(err, validateURL("environment.buildUrl", cfg.Environment.BuildURL))
	err = multierr.Append(err, validateURL("environment.repositoryUrl", cfg.Environment.RepositoryURL))
	return err
}

// ValidateOutputFile checks that name is a plain file name.
func ValidateOutputFile(name string) error {
	switch {
	case name == "":
		return &ValidationError{Field: "outputFile", Message: "is required"}
	case strings.ContainsAny(name, `/\`):
		return &ValidationError{Field: "outputFile", Message: "must be a file name without directories (use outputDir)"}
	case name == "." || name == "..":
		return &ValidationError{Field: "outputFile", Message: fmt.Sprintf("%q is not a file name", name)}
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case FormatJSON, FormatText:
		return nil
	}
	return &ValidationError{Field: "format", Message: fmt.Sprintf("must be %q or %q, got %q", FormatJSON, FormatText, format)}
}

// validateURL accepts an empty value or an absolute URL with a host.
func validateURL(field, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be an absolute URL, got %q", value)}
	}
	return nil
}
