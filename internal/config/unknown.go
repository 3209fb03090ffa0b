package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/gotest-ctrf/pkg/ctrf"
)

// LoadWithWarnings decodes JSON config data and returns any unknown field
// warnings. path is only used in error messages.
func LoadWithWarnings(path string, data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, detectUnknownFields(data), nil
}

// detectUnknownFields compares raw JSON with known struct fields.
// Warnings are sorted so that output is stable.
func detectUnknownFields(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// The data was already decoded into a Config, so this is unexpected.
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	var warnings []string
	known := getJSONFields(reflect.TypeOf(Config{}))
	for key := range raw {
		if key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if envRaw, ok := raw["environment"]; ok {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(envRaw, &fields); err == nil {
			knownEnv := getJSONFields(reflect.TypeOf(ctrf.Environment{}))
			for key := range fields {
				if !knownEnv[key] {
					warnings = append(warnings, fmt.Sprintf("unknown field %q in environment (ignored)", key))
				}
			}
		}
	}

	sort.Strings(warnings)
	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			fields[name] = true
		}
	}
	return fields
}
