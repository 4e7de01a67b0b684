// Package config loads floweave settings from a TOML file.
//
// Configuration is optional: every field has a working default, and a
// missing config file is not an error. The CLI looks for
// ~/.config/floweave/config.toml unless given an explicit path; flags
// override file values, file values override defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/floweave/floweave/pkg/errors"
	"github.com/floweave/floweave/pkg/layout"
)

// Config is the root of the TOML document.
type Config struct {
	Log    LogConfig     `toml:"log"`
	Layout layout.Config `toml:"layout"`
	Cache  CacheConfig   `toml:"cache"`
	Server ServerConfig  `toml:"server"`
	Store  StoreConfig   `toml:"store"`
}

// LogConfig controls CLI and server logging.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // null, memory, file, redis
	Dir     string `toml:"dir"`     // file backend; defaults under the user cache dir

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	Backend       string `toml:"backend"` // memory, mongo
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Layout: layout.DefaultConfig(),
		Cache:  CacheConfig{Backend: "file", RedisAddr: "localhost:6379"},
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Backend: "memory", MongoURI: "mongodb://localhost:27017", MongoDatabase: "floweave"},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "floweave", "config.toml"), nil
}

// Load reads the config file at path, layered over Default. If path is
// empty the standard location is used; a missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values that a TOML decode cannot.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "null", "memory", "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case "memory", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown log level %q", c.Log.Level)
	}
	if c.Layout.DX <= 0 || c.Layout.DY <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout spacing must be positive")
	}
	return nil
}

// CacheDir returns the directory for the file cache backend, creating a
// default under the user cache dir when unset.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return filepath.Join(base, "floweave"), nil
}
