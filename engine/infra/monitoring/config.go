package monitoring

import (
	"fmt"
	"slices"
	"strings"

	"github.com/techtrends/techtrends/engine/infra/server/routes"
	"github.com/techtrends/techtrends/pkg/config"
)

// Config holds configuration for monitoring service
type Config struct {
	Enabled bool
	Path    string
}

// DefaultConfig returns default monitoring configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled: false,
		Path:    "/prometheus",
	}
}

// ConfigFrom derives the monitoring configuration from the application config.
func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Enabled: cfg.Monitoring.Enabled,
		Path:    cfg.Monitoring.Path,
	}
}

// Validate validates the monitoring configuration
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("monitoring path cannot be empty")
	}
	if c.Path[0] != '/' {
		return fmt.Errorf("monitoring path must start with '/': got %s", c.Path)
	}
	if slices.Contains(routes.Reserved(), c.Path) {
		return fmt.Errorf("monitoring path cannot be %s; it is served by the blog", c.Path)
	}
	if strings.ContainsRune(c.Path, '?') {
		return fmt.Errorf("monitoring path cannot contain query parameters")
	}
	return nil
}
