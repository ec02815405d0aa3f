// Package config loads blockgraph configuration from file and
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the graph store and its tools.
type Config struct {
	// Storage backend
	Store struct {
		Type   string `mapstructure:"type"`   // badger, redis, mem
		Badger string `mapstructure:"badger"` // directory for badger
		Redis  string `mapstructure:"redis"`  // redis URL
	} `mapstructure:"store"`

	// CSV import settings
	Import struct {
		BatchSize int `mapstructure:"batch_size"` // writes per store commit
	} `mapstructure:"import"`

	// HTTP API settings
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
}

// SetDefaults sets viper defaults for blockgraph configuration.
func (c *Config) SetDefaults(v *viper.Viper) {
	v.SetDefault("store.type", "badger")
	v.SetDefault("store.badger", "~/.blockgraph/store")
	v.SetDefault("store.redis", "redis://localhost:6379/0")

	v.SetDefault("import.batch_size", 1000)

	v.SetDefault("server.port", 8080)
}

// Load reads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - ./config.yaml
//   - ~/.blockgraph/config.yaml
//   - /etc/blockgraph/config.yaml
//
// Environment variables override config file values with prefix
// "BLOCKGRAPH_". Example: BLOCKGRAPH_STORE_TYPE=redis overrides
// store.type.
func Load() (*Config, error) {
	v := viper.New()
	cfg := &Config{}

	cfg.SetDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.blockgraph")
	v.AddConfigPath("/etc/blockgraph")

	v.SetEnvPrefix("BLOCKGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - use defaults and env vars
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Store.Badger = expandPath(cfg.Store.Badger)

	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
