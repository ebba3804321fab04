package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// neonSchema compiles the embedded JSON schema once.
func neonSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("neon.schema.json", bytes.NewReader(neonSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("config: cannot load schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("neon.schema.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("config: cannot compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// ValidateNeon checks a YAML tuning document against the embedded schema.
// Unknown keys, wrong types and out-of-range values are reported.
func ValidateNeon(data []byte) error {
	s, err := neonSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: invalid yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: cannot convert to json: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("config: cannot convert to json: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("config: schema violation: %w", err)
	}
	return nil
}

// ParseNeon validates a YAML document and decodes it over the defaults,
// so a file only needs the keys it changes.
func ParseNeon(data []byte) (NeonConfig, error) {
	cfg := DefaultNeonConfig()
	if err := ValidateNeon(data); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot decode: %w", err)
	}
	return cfg, nil
}

// LoadNeon loads the engine tuning.
// Search order: customPath -> ~/.neonrunner/configs/neon.yaml -> ./configs/neon.yaml -> embedded default
func LoadNeon(customPath string) (NeonConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultNeonConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseNeon(data)
		if err != nil {
			return DefaultNeonConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("neon.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseNeon(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/neon.yaml"); err == nil {
		if cfg, err := ParseNeon(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseNeon(defaultNeonYAML)
	if err != nil {
		return DefaultNeonConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neonrunner", "configs", filename)
}

// MarshalNeon renders a tuning as YAML, e.g. for `config print`.
func MarshalNeon(cfg NeonConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}
