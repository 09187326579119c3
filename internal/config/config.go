// Package config holds the server configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"uniquelist/pkg/key"
)

// Config is the root configuration for the uniquelist server.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Logger     LoggerConfig    `yaml:"logger"`
	Tolerances ToleranceConfig `yaml:"tolerances"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// ToleranceConfig sets the comparator defaults applied to collections
// created without explicit tolerances.
type ToleranceConfig struct {
	RTol float64 `yaml:"rtol"`
	ATol float64 `yaml:"atol"`
}

// Default returns a baseline development config.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Logger: LoggerConfig{
			Level: "INFO",
			JSON:  false,
		},
		Tolerances: ToleranceConfig{
			RTol: key.DefaultRTol,
			ATol: key.DefaultATol,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
