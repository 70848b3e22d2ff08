// Package config maps environment variables into a typed, read-only
// configuration struct. Loaded once in main and passed to components
// via constructors.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the gazette server.
type Config struct {
	// HTTP listen address.
	Addr string `env:"GAZETTE_ADDR" envDefault:":8080"`

	// Badger database directory.
	DBPath string `env:"GAZETTE_DB_PATH" envDefault:"data/badger"`

	// Directory for uploaded post images.
	MediaDir string `env:"GAZETTE_MEDIA_DIR" envDefault:"data/media"`

	// Base path for the app/views template tree.
	ViewsDir string `env:"GAZETTE_VIEWS_DIR" envDefault:"."`

	// Logging knobs: level and an optional shared log file. The console
	// target is always on.
	LogLevel string `env:"GAZETTE_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"GAZETTE_LOG_FILE"`

	// Admin credentials for the post-management endpoints. The password
	// is supplied as a bcrypt hash, never in plain text.
	AdminUser         string `env:"GAZETTE_ADMIN_USER" envDefault:"admin"`
	AdminPasswordHash string `env:"GAZETTE_ADMIN_PASSWORD_HASH"`

	// Session token signing.
	JWTSecret string        `env:"GAZETTE_JWT_SECRET" envDefault:"dev-only-secret"`
	TokenTTL  time.Duration `env:"GAZETTE_TOKEN_TTL" envDefault:"12h"`
}

// Load parses environment variables into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment: %w", err)
	}
	return cfg, nil
}
