package config

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
)

func validConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Environment = ctrf.Environment{
		BuildURL:      "https://ci.example.com/builds/42",
		RepositoryURL: "https://github.com/example/calc",
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty output file", func(c *Config) { c.OutputFile = "" }, "outputFile"},
		{"output file with slash", func(c *Config) { c.OutputFile = "a/b.json" }, "outputFile"},
		{"output file with backslash", func(c *Config) { c.OutputFile = `a\b.json` }, "outputFile"},
		{"output file dot dot", func(c *Config) { c.OutputFile = ".." }, "outputFile"},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "outputDir"},
		{"blank test type", func(c *Config) { c.TestType = "  " }, "testType"},
		{"empty tool name", func(c *Config) { c.ToolName = "" }, "toolName"},
		{"unknown format", func(c *Config) { c.Format = "xml" }, "format"},
		{"relative build url", func(c *Config) { c.Environment.BuildURL = "builds/42" }, "environment.buildUrl"},
		{"repository url without host", func(c *Config) { c.Environment.RepositoryURL = "file:///src/calc" }, "environment.repositoryUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error type = %T, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	t.Parallel()
	cfg := &Config{Format: FormatJSON}

	errs := multierr.Errors(Validate(cfg))
	var fields []string
	for _, err := range errs {
		var verr *ValidationError
		if errors.As(err, &verr) {
			fields = append(fields, verr.Field)
		}
	}
	want := "outputFile,outputDir,testType,toolName"
	if got := strings.Join(fields, ","); got != want {
		t.Errorf("fields = %s, want %s", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()
	err := &ValidationError{Field: "outputDir", Message: "is required"}
	if got := err.Error(); got != "outputDir: is required" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidateOutputFile(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"ctrf-report.json", "report", "my report.json", ".hidden.json"} {
		if err := ValidateOutputFile(name); err != nil {
			t.Errorf("ValidateOutputFile(%q) = %v, want nil", name, err)
		}
	}
}
