package cache

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Bounds on Config fields, per spec.md §3.
const (
	MinImageCount = 10
	MaxImageCount = 1000
	MinThreads    = 1
	MaxThreads    = 32

	// DefaultMaxImageCount and DefaultThreadCount match ferrite-config's
	// CacheConfig::default().
	DefaultMaxImageCount = 100
	DefaultThreadCount   = 4
)

// Config bounds the cache's size and parallelism.
type Config struct {
	MaxImageCount int `toml:"max_image_count"`
	ThreadCount   int `toml:"thread_count"`
}

// DefaultConfig returns the reference defaults.
func DefaultConfig() Config {
	return Config{
		MaxImageCount: DefaultMaxImageCount,
		ThreadCount:   DefaultThreadCount,
	}
}

// Validate checks both fields against their documented ranges.
func (c Config) Validate() error {
	if c.ThreadCount < MinThreads || c.ThreadCount > MaxThreads {
		return newError(ErrConfigInvalid, "", fmt.Errorf(
			"thread_count must be between %d and %d, got %d",
			MinThreads, MaxThreads, c.ThreadCount))
	}
	if c.MaxImageCount < MinImageCount || c.MaxImageCount > MaxImageCount {
		return newError(ErrConfigInvalid, "", fmt.Errorf(
			"max_image_count must be between %d and %d, got %d",
			MinImageCount, MaxImageCount, c.MaxImageCount))
	}
	return nil
}

// LoadConfig reads a TOML configuration file and validates it. A missing
// file is not an error: DefaultConfig is returned instead, mirroring how a
// viewer falls back to built-in defaults when the user has not customized
// their cache settings.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, newError(ErrConfigInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
