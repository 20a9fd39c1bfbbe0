package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// parseJSON reads the JSON configuration file at path and decodes it into a
// fresh *StructuredConfig. Unknown fields are rejected so that typos in the
// file surface as errors instead of silently falling back to defaults.
func parseJSON(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading json config file: %w", err)
	}

	cfg := &StructuredConfig{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err = dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("error decoding json config file %s: %w", path, err)
	}

	return cfg, nil
}

// DefaultJSON renders the built-in defaults as indented JSON, suitable for
// redirecting into a config file and editing (-defconfig).
func DefaultJSON() string {
	out, err := json.MarshalIndent(Defaults(), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}
