// Package config loads pinboard settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/pinboard/config.toml (or
// ~/.config/pinboard/config.toml). Every key is optional; a missing file is
// the same as an empty one. Command-line flags override file values.
//
//	[solver]
//	max_iterations = 10000
//	weights = { d0 = 4.0, d1 = 2.0, d2 = 1.0 }
//
//	[generate]
//	workers = 8
//	max_components = 10
//	output_dir = "generated-designs"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/slide"
	"github.com/matzehuels/pinboard/pkg/solver"
	"github.com/matzehuels/pinboard/pkg/variant"
)

const appName = "pinboard"

// Backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreDir   = "dir"
	StoreMongo = "mongo"
)

type Config struct {
	Solver   Solver   `toml:"solver"`
	Generate Generate `toml:"generate"`
	Cache    Cache    `toml:"cache"`
	Store    Store    `toml:"store"`
	Server   Server   `toml:"server"`
}

type Solver struct {
	MaxIterations int           `toml:"max_iterations"`
	Weights       slide.Weights `toml:"weights"`
}

type Generate struct {
	Workers       int    `toml:"workers"`
	MaxComponents int    `toml:"max_components"`
	Filter        bool   `toml:"filter"`
	OutputDir     string `toml:"output_dir"`
}

type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

type Store struct {
	Backend    string `toml:"backend"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Solver: Solver{
			MaxIterations: solver.DefaultMaxIterations,
			Weights:       slide.DefaultWeights,
		},
		Generate: Generate{
			MaxComponents: variant.DefaultMaxComponents,
			Filter:        true,
			OutputDir:     "generated-designs",
		},
		Cache:  Cache{Backend: CacheFile, Prefix: appName + ":"},
		Store:  Store{Backend: StoreDir},
		Server: Server{Addr: ":8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads path over the defaults. A missing file is not an error;
// unknown keys are.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and backend names.
func (c Config) Validate() error {
	if err := errors.ValidateWeights(c.Solver.Weights.D0, c.Solver.Weights.D1, c.Solver.Weights.D2); err != nil {
		return err
	}
	if c.Generate.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "generate.workers must not be negative, got %d", c.Generate.Workers)
	}
	if c.Generate.MaxComponents < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "generate.max_components must not be negative, got %d", c.Generate.MaxComponents)
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	if !slices.Contains([]string{StoreDir, StoreMongo}, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
