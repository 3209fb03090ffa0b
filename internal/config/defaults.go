package config

import "github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"

// DefaultFormat is the input format used when none is configured.
const DefaultFormat = FormatJSON

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.OutputFile == "" {
		cfg.OutputFile = ctrf.DefaultOutputFile
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = ctrf.DefaultOutputDir
	}
	if cfg.TestType == "" {
		cfg.TestType = ctrf.DefaultTestType
	}
	if cfg.ToolName == "" {
		cfg.ToolName = ctrf.DefaultToolName
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Minimal == nil {
		minimal := false
		cfg.Minimal = &minimal
	}
}
