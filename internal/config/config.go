package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/schema"
	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
)

// Load reads a config file, validates it against the config schema and
// returns warnings about unknown fields. JSON, YAML and TOML files are
// accepted, chosen by extension.
func Load(path string) (*Config, []string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data, err := toJSON(path, raw)
	if err != nil {
		return nil, nil, err
	}

	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, err
	}

	return LoadWithWarnings(path, data)
}

// Merge overlays the settings of o that are set onto c.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	mergeString(&c.OutputFile, o.OutputFile)
	mergeString(&c.OutputDir, o.OutputDir)
	mergeString(&c.TestType, o.TestType)
	mergeString(&c.ToolName, o.ToolName)
	mergeString(&c.Format, o.Format)
	if o.Minimal != nil {
		v := *o.Minimal
		c.Minimal = &v
	}
	for _, f := range EnvFields {
		if v := f.Get(&o.Environment); v != "" {
			f.Set(&c.Environment, v)
		}
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Complete fills unset fields with defaults and validates the result.
func (c *Config) Complete() error {
	applyDefaults(c)
	return Validate(c)
}

// Options converts c into reporter options.
func (c *Config) Options(log *zap.Logger) ctrf.Options {
	return ctrf.Options{
		OutputFile:  c.OutputFile,
		OutputDir:   c.OutputDir,
		Minimal:     c.Minimal != nil && *c.Minimal,
		TestType:    c.TestType,
		ToolName:    c.ToolName,
		Environment: c.Environment,
		Logger:      log,
	}
}
