package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func boolPtr(b bool) *bool { return &b }

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	want := &Config{
		OutputFile: "results.json",
		OutputDir:  "out",
		Minimal:    boolPtr(true),
		TestType:   "integration",
		Environment: ctrf.Environment{
			AppName:     "calc",
			BuildNumber: "42",
		},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: ".ctrf.json",
			content: `{
				"outputFile": "results.json",
				"outputDir": "out",
				"minimal": true,
				"testType": "integration",
				"environment": {"appName": "calc", "buildNumber": "42"}
			}`,
		},
		{
			name: "yaml",
			file: ".ctrf.yaml",
			content: `outputFile: results.json
outputDir: out
minimal: true
testType: integration
environment:
  appName: calc
  buildNumber: "42"
`,
		},
		{
			name: "yml",
			file: ".ctrf.yml",
			content: `outputFile: results.json
outputDir: out
minimal: true
testType: integration
environment: {appName: calc, buildNumber: "42"}
`,
		},
		{
			name: "toml",
			file: ".ctrf.toml",
			content: `outputFile = "results.json"
outputDir = "out"
minimal = true
testType = "integration"

[environment]
appName = "calc"
buildNumber = "42"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			cfg, warnings, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(warnings) != 0 {
				t.Errorf("warnings = %v, want none", warnings)
			}
			if diff := cmp.Diff(want, cfg); diff != "" {
				t.Errorf("Config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_EmptyDocuments(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"empty.yaml", "empty.toml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), name, "")
			cfg, _, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(&Config{}, cfg); diff != "" {
				t.Errorf("Config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "malformed json", file: "c.json", content: `{"outputDir":`, wantErr: "invalid JSON"},
		{name: "malformed yaml", file: "c.yaml", content: "outputDir: [unclosed", wantErr: "failed to parse config file"},
		{name: "malformed toml", file: "c.toml", content: "outputDir = ", wantErr: "failed to parse config file"},
		{name: "schema violation", file: "c.json", content: `{"minimal": "yes"}`, wantErr: "config validation failed"},
		{name: "output file with directory", file: "c.yaml", content: "outputFile: reports/out.json\n", wantErr: "config validation failed"},
		{name: "unsupported extension", file: "c.ini", content: "outputDir=out", wantErr: "unsupported config file extension"},
		{name: "yaml list root", file: "c.yaml", content: "- a\n- b\n", wantErr: "config validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, _, err := Load(path)
			if err == nil {
				t.Fatalf("Load() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()
	_, _, err := Load("/nonexistent/path/.ctrf.json")
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoad_UnknownFieldWarnings(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), ".ctrf.yaml", "outputDir: out\nreporter: junit\nenvironment:\n  commit: abc\n")

	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want out", cfg.OutputDir)
	}
	want := []string{
		`unknown field "commit" in environment (ignored)`,
		`unknown field "reporter" at root level (ignored)`,
	}
	if diff := cmp.Diff(want, warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &Config{
		OutputFile:  "base.json",
		OutputDir:   "base",
		Minimal:     boolPtr(true),
		TestType:    "unit",
		Environment: ctrf.Environment{AppName: "calc", BranchName: "main"},
	}
	overlay := &Config{
		OutputDir:   "overlay",
		Minimal:     boolPtr(false),
		Format:      FormatText,
		Environment: ctrf.Environment{BranchName: "feature", BuildNumber: "7"},
	}

	base.Merge(overlay)
	base.Merge(nil)

	want := &Config{
		OutputFile:  "base.json",
		OutputDir:   "overlay",
		Minimal:     boolPtr(false),
		TestType:    "unit",
		Format:      FormatText,
		Environment: ctrf.Environment{AppName: "calc", BranchName: "feature", BuildNumber: "7"},
	}
	if diff := cmp.Diff(want, base); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	// The merged Minimal must not alias the overlay's pointer.
	*overlay.Minimal = true
	if *base.Minimal {
		t.Error("Merge() aliased overlay.Minimal")
	}
}

func TestComplete_Defaults(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	if err := cfg.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	want := &Config{
		OutputFile: ctrf.DefaultOutputFile,
		OutputDir:  ctrf.DefaultOutputDir,
		Minimal:    boolPtr(false),
		TestType:   ctrf.DefaultTestType,
		ToolName:   ctrf.DefaultToolName,
		Format:     FormatJSON,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Complete() mismatch (-want +got):\n%s", diff)
	}
}

func TestComplete_KeepsSetValues(t *testing.T) {
	t.Parallel()
	cfg := &Config{OutputFile: "custom", Minimal: boolPtr(true), Format: FormatText}
	if err := cfg.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if cfg.OutputFile != "custom" || !*cfg.Minimal || cfg.Format != FormatText {
		t.Errorf("Complete() overwrote set values: %+v", cfg)
	}
}

func TestComplete_Invalid(t *testing.T) {
	t.Parallel()
	cfg := &Config{OutputFile: "../escape.json"}
	if err := cfg.Complete(); err == nil {
		t.Error("Complete() error = nil, want error")
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()
	log := zap.NewNop()
	cfg := &Config{
		OutputFile:  "r.json",
		OutputDir:   "out",
		Minimal:     boolPtr(true),
		TestType:    "e2e",
		ToolName:    "gotestsum",
		Environment: ctrf.Environment{AppName: "calc"},
	}

	opts := cfg.Options(log)
	if opts.OutputFile != "r.json" || opts.OutputDir != "out" || !opts.Minimal ||
		opts.TestType != "e2e" || opts.ToolName != "gotestsum" || opts.Environment.AppName != "calc" {
		t.Errorf("Options() = %+v", opts)
	}
	if opts.Logger != log {
		t.Error("Options() did not pass the logger through")
	}

	if (&Config{}).Options(nil).Minimal {
		t.Error("unset Minimal should convert to false")
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("first name wins within a directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, ".ctrf.toml", "")
		want := writeFile(t, dir, ".ctrf.yaml", "")

		got, ok := Discover(dir)
		if !ok || got != want {
			t.Errorf("Discover() = %q, %v, want %q", got, ok, want)
		}
	})

	t.Run("earlier directory wins", func(t *testing.T) {
		t.Parallel()
		first, second := t.TempDir(), t.TempDir()
		want := writeFile(t, first, ".ctrf.toml", "")
		writeFile(t, second, ".ctrf.json", "{}")

		got, ok := Discover("", first, second)
		if !ok || got != want {
			t.Errorf("Discover() = %q, %v, want %q", got, ok, want)
		}
	})

	t.Run("directories named like config files are skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, ".ctrf.json"), 0755); err != nil {
			t.Fatal(err)
		}
		if got, ok := Discover(dir); ok {
			t.Errorf("Discover() = %q, want not found", got)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Parallel()
		if got, ok := Discover(t.TempDir()); ok {
			t.Errorf("Discover() = %q, want not found", got)
		}
	})
}
