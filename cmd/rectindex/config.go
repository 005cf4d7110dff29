package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/peterstace/rstar"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Mode        string `json:"mode"`
	MinChildren int    `json:"min_children"`
	MaxChildren int    `json:"max_children"`
	Workers     int    `json:"workers"`
}

func defaultConfig() *Config {
	return &Config{
		Mode:        "production",
		MinChildren: rstar.DefaultMinChildren,
		MaxChildren: rstar.DefaultMaxChildren,
		Workers:     4,
	}
}

func (c Config) Development() bool {
	return c.Mode == "development"
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":         c.Mode,
		"min_children": c.MinChildren,
		"max_children": c.MaxChildren,
		"workers":      c.Workers,
	}
}

func (c Config) validate() error {
	if c.MinChildren < 2 || c.MinChildren > c.MaxChildren/2 {
		return fmt.Errorf("invalid node shape min=%d max=%d: need 2 <= min <= max/2",
			c.MinChildren, c.MaxChildren)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}
	return nil
}

// loadConfig reads the config file at path over the defaults. An empty path
// keeps the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path != "" {
		configBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
		if err := json.Unmarshal(configBytes, config); err != nil {
			return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}
