// Package config loads the tool configuration file and supplies defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when
// no explicit path is given.
const DefaultFile = ".brp-mutate.yaml"

// Config holds connection and analysis settings. Flags override file
// values; file values override defaults.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Transport  string `yaml:"transport"`
	DepthLimit int    `yaml:"depth_limit"`
	CacheSize  int    `yaml:"cache_size"`
	LogLevel   string `yaml:"log_level"`
	Reports    string `yaml:"reports"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Host:      "127.0.0.1",
		Port:      15702,
		Transport: "http",
		LogLevel:  "warn",
		Reports:   ".brp-mutate",
	}
}

// Load reads the file at path over the defaults. When explicit is false a
// missing file is not an error, so the default file may simply be absent.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}

		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}
