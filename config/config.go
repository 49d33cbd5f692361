// Package config loads optional engine tunables from a stamp.yml file.
// Nothing in the engine requires a config file; callers that keep one get
// shared exclusion patterns and monitor defaults without threading them
// through every construction site.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/stamp/errors"
)

// ConfigFileName is the file LoadDefault looks for in a directory.
const ConfigFileName = "stamp.yml"

// Config is the parsed stamp.yml.
type Config struct {
	Version string        `yaml:"version"`
	Monitor MonitorConfig `yaml:"monitor"`

	// Extensions captures unrecognized top-level sections so tools built
	// on the engine can keep their own configuration in the same file.
	Extensions map[string]interface{} `yaml:",inline"`
}

// MonitorConfig holds defaults applied to monitors built from this config.
type MonitorConfig struct {
	// Exclude holds docker-style patterns hiding matched glob entries.
	Exclude []string `yaml:"exclude"`
	// CheckValueChanged enables the value-only-changed reporting mode.
	CheckValueChanged bool `yaml:"check_value_changed"`
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ConfigInvalid(err.Error()).WithDetail("path", path)
	}
	return &cfg, nil
}

// LoadDefault loads stamp.yml from dir, returning an empty config when the
// file does not exist.
func LoadDefault(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, ConfigFileName))
	if errors.Is(err, errors.ErrCodeConfigNotFound) {
		return &Config{}, nil
	}
	return cfg, err
}

// UnmarshalExtension decodes a specific extension's configuration into the
// provided target struct. The target must be a pointer. A missing key is
// not an error; the target simply stays zero-valued.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	// Decode the generic map into the strongly-typed target, reusing the
	// yaml tags so extension structs only declare their names once.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
