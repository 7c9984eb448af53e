// Package config loads the UDF runtime configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/tidb-hackathon-2020-wasm-udf/tikv/store"
)

// validate is a package-level singleton; constructing a validator per call
// is expensive.
var validate = validator.New()

// Config is the on-disk runtime configuration.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Engine EngineConfig `toml:"engine"`
}

// StoreConfig configures durable module storage.
type StoreConfig struct {
	// Dir is the directory module files live under.
	Dir string `toml:"dir" validate:"required"`
}

// EngineConfig configures per-call execution.
type EngineConfig struct {
	// MemoryLimitPages caps guest memory per call in 64KB pages.
	// 0 keeps the engine default.
	MemoryLimitPages uint32 `toml:"memory-limit-pages" validate:"max=65536"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Dir: store.DefaultDir},
	}
}

// Load parses and validates the TOML file at path. Fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}
