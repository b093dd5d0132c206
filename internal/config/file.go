package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFile merges a YAML/TOML/JSON config file into cfg. CLI flags are bound
// to the same fields by the CLI layer and win because they are applied after
// the file is merged.
func LoadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
