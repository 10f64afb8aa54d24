// Package config loads client settings from HTTAG_* environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"httag-cli/internal/tagl"
)

// Prefix is the environment variable prefix.
const Prefix = "HTTAG"

type Config struct {
	// Server is the httagd URL. Only scheme and host are used as the request origin.
	Server string `envconfig:"SERVER" default:"http://localhost:2112"`
	// SubRelation is the relation used by create-child.
	SubRelation string `envconfig:"SUB_RELATION" default:"_sub"`
	// Journal is the SQLite journal path; empty disables it.
	Journal string `envconfig:"JOURNAL"`
	Format  string `envconfig:"FORMAT" default:"text"`

	Log LogConfig
}

type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"warn"`
	Development bool   `envconfig:"DEV" default:"false"`
	// File receives TUI logs; the TUI logs nothing when empty.
	File string `envconfig:"FILE"`
}

// Load reads the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault returns Default when the environment cannot be parsed.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

func Default() *Config {
	return &Config{
		Server:      "http://localhost:2112",
		SubRelation: tagl.SubRelation,
		Format:      "text",
		Log:         LogConfig{Level: "warn"},
	}
}
