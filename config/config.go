package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config mirrors the optional rolodex config file.
type Config struct {
	DBPath           string  `yaml:"db_path"`           // BadgerDB directory
	PageSize         int     `yaml:"page_size"`         // Contacts per page in list output
	SuggestionCutoff float64 `yaml:"suggestion_cutoff"` // Max normalized distance for did-you-mean
}

// fileConfig is the parse target for the YAML file. Pointer fields
// distinguish a key that is absent from one explicitly set to its zero
// value, so `suggestion_cutoff: 0` disables suggestions instead of
// silently restoring the default.
type fileConfig struct {
	DBPath           *string  `yaml:"db_path"`
	PageSize         *int     `yaml:"page_size"`
	SuggestionCutoff *float64 `yaml:"suggestion_cutoff"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DBPath:           defaultDBPath(),
		PageSize:         5,
		SuggestionCutoff: 0.6,
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rolodex.yaml"
	}
	return filepath.Join(home, ".rolodex.yaml")
}

// Load reads the config file at path and fills absent keys with
// defaults. A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var parsed fileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return parsed.withDefaults(), nil
}

// withDefaults fills absent keys with default values. Keys present in
// the file keep their value, including explicit zeros.
func (f fileConfig) withDefaults() Config {
	result := Default()
	if f.DBPath != nil && *f.DBPath != "" {
		result.DBPath = *f.DBPath
	}
	if f.PageSize != nil {
		result.PageSize = *f.PageSize
	}
	if f.SuggestionCutoff != nil {
		result.SuggestionCutoff = *f.SuggestionCutoff
	}
	return result
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rolodex-db"
	}
	return filepath.Join(home, ".rolodex", "db")
}
