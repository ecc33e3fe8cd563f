package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds verifier settings read from the environment. Every field has
// a default, so an empty environment reproduces the stock run.
type Config struct {
	BaseURL         string        `env:"VERIFY_BASE_URL" envDefault:"http://localhost:3000"`
	OutputDir       string        `env:"VERIFY_OUTPUT_DIR" envDefault:"verification"`
	NavTimeout      time.Duration `env:"VERIFY_NAV_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"VERIFY_IDLE_TIMEOUT" envDefault:"30s"`
	SelectorTimeout time.Duration `env:"VERIFY_SELECTOR_TIMEOUT" envDefault:"30s"`
	ProxyURL        string        `env:"VERIFY_PROXY"`
	ShowUI          bool          `env:"VERIFY_SHOW_UI" envDefault:"false"`
	ChromeBin       string        `env:"CHROME_BIN"`
	NoSandbox       bool          `env:"VERIFY_NO_SANDBOX" envDefault:"false"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the verifier cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL: %q", c.BaseURL)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir is required")
	}
	for name, d := range map[string]time.Duration{
		"navigation":   c.NavTimeout,
		"network idle": c.IdleTimeout,
		"selector":     c.SelectorTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s timeout must be positive, got %s", name, d)
		}
	}
	return nil
}
