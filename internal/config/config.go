// Package config loads application settings from defaults, an optional
// YAML file, environment variables, and command-line flags, in that
// order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "INSIGHTTRACK_"

// Config holds all runtime settings.
type Config struct {
	// DataDir is where the chosen storage backend keeps its files.
	DataDir string `koanf:"data-dir" validate:"required"`

	// Storage selects the key-value backend.
	Storage string `koanf:"storage" validate:"required,oneof=badger sqlite"`

	// Listen is the local address the web UI binds to.
	Listen string `koanf:"listen" validate:"required,hostname_port"`

	// LogLevel controls slog verbosity.
	LogLevel string `koanf:"log-level" validate:"required,oneof=debug info warn error"`

	// ReposDir is where imported git note repositories are checked out.
	ReposDir string `koanf:"repos-dir" validate:"required"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:  "data",
		Storage:  "badger",
		Listen:   "127.0.0.1:8484",
		LogLevel: "info",
		ReposDir: "repos",
	}
}

// Load layers the optional YAML file at path, INSIGHTTRACK_* env vars,
// and the given flag set over the defaults, then validates the result.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	// Defaults go in first so unchanged flags don't shadow them.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data-dir":  cfg.DataDir,
		"storage":   cfg.Storage,
		"listen":    cfg.Listen,
		"log-level": cfg.LogLevel,
		"repos-dir": cfg.ReposDir,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	// INSIGHTTRACK_LOG_LEVEL -> log-level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
