package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables for the reporter settings. Environment metadata
// variables are listed in EnvFields.
const (
	EnvOutputFile = "CTRF_OUTPUT_FILE"
	EnvOutputDir  = "CTRF_OUTPUT_DIR"
	EnvMinimal    = "CTRF_MINIMAL"
	EnvTestType   = "CTRF_TEST_TYPE"
	EnvToolName   = "CTRF_TOOL_NAME"
	EnvFormat     = "CTRF_FORMAT"
)

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup over the process environment. When envFile is
// set, variables from that dotenv file fill in whatever the process
// environment does not define. The process environment is not modified.
func EnvLookup(envFile string) (LookupFunc, error) {
	if envFile == "" {
		return os.LookupEnv, nil
	}
	values, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

// FromEnv builds the environment layer. Variables that are unset or empty
// leave the corresponding setting unset.
func FromEnv(lookup LookupFunc) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	cfg := &Config{
		OutputFile: get(EnvOutputFile),
		OutputDir:  get(EnvOutputDir),
		TestType:   get(EnvTestType),
		ToolName:   get(EnvToolName),
		Format:     get(EnvFormat),
	}

	if v := get(EnvMinimal); v != "" {
		minimal, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &ValidationError{Field: EnvMinimal, Message: fmt.Sprintf("must be a boolean, got %q", v)}
		}
		cfg.Minimal = &minimal
	}

	for _, f := range EnvFields {
		f.Set(&cfg.Environment, get(f.Env))
	}

	return cfg, nil
}
