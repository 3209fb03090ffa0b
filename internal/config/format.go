package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// toJSON normalizes a config file's contents to JSON so that every format
// goes through the same schema validation and decoding.
func toJSON(path string, data []byte) ([]byte, error) {
	var v any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return data, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		v = m
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (want .json, .yaml, .yml or .toml)", ext)
	}

	// An empty YAML or TOML document is an empty config.
	if v == nil {
		return []byte("{}"), nil
	}
	if m, ok := v.(map[string]any); ok && m == nil {
		return []byte("{}"), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config file to JSON: %w", err)
	}
	return data, nil
}
