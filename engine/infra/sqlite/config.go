package sqlite

import (
	"time"

	"github.com/techtrends/techtrends/pkg/config"
)

const defaultBusyTimeout = 5 * time.Second

// Config captures SQLite store configuration derived from application settings.
type Config struct {
	// Path is the database file. Every operation opens its own connection, so ":memory:"
	// would yield an empty database per call and is not useful here.
	Path string

	// BusyTimeout configures sqlite busy timeout via PRAGMA busy_timeout.
	BusyTimeout time.Duration
}

// ConfigFrom derives the store configuration from the application config.
func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Path:        cfg.Database.Path,
		BusyTimeout: cfg.Database.BusyTimeout,
	}
}
