// Package config loads CLI defaults from REEL_* environment variables.
// Command-line flags override whatever is loaded here.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-provided defaults of the reel command.
type Config struct {
	// ScriptsDir is the directory of *.yaml scenes. Empty means the built-in library.
	ScriptsDir string `env:"REEL_SCRIPTS_DIR"`
	// Speed scales every wait; 2 plays twice as fast.
	Speed float64 `env:"REEL_SPEED" envDefault:"1"`
	Debug bool    `env:"REEL_DEBUG"`
	// RedisAddr enables the Redis completion sink when set.
	RedisAddr    string `env:"REEL_REDIS_ADDR"`
	RedisPrefix  string `env:"REEL_REDIS_PREFIX" envDefault:"reel:"`
	RedisHistory int64  `env:"REEL_REDIS_HISTORY" envDefault:"100"`
	HTTPAddr     string `env:"REEL_HTTP_ADDR" envDefault:"127.0.0.1:8680"`
	// MetricsAddr serves /metrics on its own listener when set.
	MetricsAddr string `env:"REEL_METRICS_ADDR"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Speed <= 0 {
		return Config{}, fmt.Errorf("parse env: REEL_SPEED must be positive, got %v", cfg.Speed)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
