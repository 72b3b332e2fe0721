// Package config loads project configuration from archscope.toml.
//
// The file is optional: every field has a default, and commands work with
// no config at all. A complete file looks like:
//
//	description = "Shop service architecture"
//
//	[style]
//	shape = "box"
//	[style.colors]
//	Domain = "steelblue"
//
//	[[rules.dependency]]
//	from = "Domain"
//	to = "Infrastructure"
//	allowed = false
//	reason = "Domain must not depend on infrastructure"
//
//	[docs]
//	paths = ["README.md", "docs/ARCHITECTURE.md"]
//
//	[server]
//	addr = ":8080"
//	cache_backend = "redis"   # none | file | redis
//	redis_addr = "localhost:6379"
//	cache_ttl = "24h"
//
//	[snapshot]
//	backend = "file"          # file | mongo
//	dir = ""                  # file backend, empty for the default dir
//	uri = "mongodb://localhost:27017"
//	database = "archscope"
//	collection = "snapshots"
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/archscope/archscope/pkg/errors"
)

// DefaultPath is the config file name probed in the working directory.
const DefaultPath = "archscope.toml"

// Cache backends accepted by [server].cache_backend.
const (
	CacheBackendNone  = "none"
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

// Snapshot backends accepted by [snapshot].backend.
const (
	SnapshotBackendFile  = "file"
	SnapshotBackendMongo = "mongo"
)

// Config is the root of archscope.toml.
type Config struct {
	Description string         `toml:"description"`
	Style       StyleConfig    `toml:"style"`
	Rules       RulesConfig    `toml:"rules"`
	Docs        DocsConfig     `toml:"docs"`
	Server      ServerConfig   `toml:"server"`
	Snapshot    SnapshotConfig `toml:"snapshot"`
}

// StyleConfig overrides the visual style.
type StyleConfig struct {
	// Colors maps layer names to fill colors, overriding the defaults
	// per layer. Unknown layer names are ignored (parsed leniently, the
	// same as everywhere else layers are read).
	Colors map[string]string `toml:"colors"`

	// Shape is the node shape for DOT exports.
	Shape string `toml:"shape"`
}

// RulesConfig overrides the advisory dependency rules.
type RulesConfig struct {
	Dependency []DependencyRuleConfig `toml:"dependency"`
}

// DependencyRuleConfig is one layer dependency rule.
type DependencyRuleConfig struct {
	From    string `toml:"from"`
	To      string `toml:"to"`
	Allowed bool   `toml:"allowed"`
	Reason  string `toml:"reason"`
}

// DocsConfig lists documents for agent packs.
type DocsConfig struct {
	Paths []string `toml:"paths"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	CacheBackend string        `toml:"cache_backend"`
	CacheDir     string        `toml:"cache_dir"`
	RedisAddr    string        `toml:"redis_addr"`
	CacheTTL     time.Duration `toml:"cache_ttl"`
}

// SnapshotConfig configures snapshot storage.
type SnapshotConfig struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns a config with every default applied.
func Default() *Config {
	c := &Config{}
	_ = c.ValidateAndSetDefaults() // defaults alone never fail validation
	return c
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config file: %s", path)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := c.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadOrDefault loads the config at path, or probes DefaultPath when path
// is empty. A missing probed file yields the defaults; a missing explicit
// path is an error.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); err != nil {
		return Default(), nil
	}
	return Load(DefaultPath)
}

// ValidateAndSetDefaults fills in defaults and rejects invalid settings.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Style.Shape == "" {
		c.Style.Shape = "box"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.CacheBackend == "" {
		c.Server.CacheBackend = CacheBackendNone
	}
	switch c.Server.CacheBackend {
	case CacheBackendNone, CacheBackendFile, CacheBackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend: %q (must be one of: none, file, redis)", c.Server.CacheBackend)
	}
	if c.Server.RedisAddr == "" {
		c.Server.RedisAddr = "localhost:6379"
	}
	if c.Server.CacheTTL <= 0 {
		c.Server.CacheTTL = 24 * time.Hour
	}

	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = SnapshotBackendFile
	}
	switch c.Snapshot.Backend {
	case SnapshotBackendFile, SnapshotBackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid snapshot backend: %q (must be one of: file, mongo)", c.Snapshot.Backend)
	}

	return nil
}
