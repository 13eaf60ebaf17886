// Package config reads movie cleaning settings from YAML, TOML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/moviejanitor/pkg/movies"
)

// Load reads path and overlays it on movies.DefaultConfig. Keys absent from
// the file keep their default; a list present in the file replaces the
// default list. The format is chosen by extension.
func Load(path string) (movies.Config, error) {
	cfg := movies.DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := Decode(filepath.Ext(path), b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals b into cfg using the format named by ext.
func Decode(ext string, b []byte, cfg *movies.Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".toml":
		return toml.Unmarshal(b, cfg)
	case ".json":
		return json.Unmarshal(b, cfg)
	}
	return fmt.Errorf("unsupported config format %q", ext)
}
