package tempio

import (
	"os"

	"github.com/shini4i/extra-io/pkg/retry"
)

// Config captures where temporary resources are created and how hard to try.
type Config struct {
	// Root is the directory new resources are created in. Empty means the
	// platform temp root, resolved on every creation.
	Root     string
	Attempts int
}

// ConfigOption mutates a Config during construction.
type ConfigOption func(*Config)

// NewConfig creates a Config with defaults and applies provided options.
func NewConfig(opts ...ConfigOption) Config {
	cfg := Config{
		Attempts: retry.DefaultAttempts,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithRoot creates resources within path instead of the platform temp root.
func WithRoot(path string) ConfigOption {
	return func(cfg *Config) {
		cfg.Root = path
	}
}

// WithAttempts overrides the creation attempt budget. Values below one are clamped to one.
func WithAttempts(attempts int) ConfigOption {
	return func(cfg *Config) {
		if attempts < 1 {
			attempts = 1
		}
		cfg.Attempts = attempts
	}
}

func (c Config) root() string {
	if c.Root != "" {
		return c.Root
	}
	return os.TempDir()
}
