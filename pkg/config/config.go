package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Database   DatabaseConfig   `koanf:"database"   validate:"required"`
	Logging    LoggingConfig    `koanf:"logging"`
	Monitoring MonitoringConfig `koanf:"monitoring"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"        env:"SERVER_HOST"`
	Port            int           `koanf:"port"             validate:"min=1,max=65535" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `koanf:"read_timeout"                                env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `koanf:"write_timeout"                               env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"                                env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"                            env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig locates the SQLite file backing the posts table.
type DatabaseConfig struct {
	Path        string        `koanf:"path"         validate:"required" env:"DB_PATH"`
	BusyTimeout time.Duration `koanf:"busy_timeout"                     env:"DB_BUSY_TIMEOUT"`
}

// LoggingConfig controls the stdout sink. The stderr sink is always fixed at ERROR.
type LoggingConfig struct {
	Level     string `koanf:"level"      env:"APP_LOGGERLEVEL"`
	JSON      bool   `koanf:"json"       env:"LOG_JSON"`
	AddSource bool   `koanf:"add_source" env:"LOG_SOURCE"`
}

// MonitoringConfig toggles the Prometheus exporter. Path must not collide with the blog's
// own routes.
type MonitoringConfig struct {
	Enabled bool   `koanf:"enabled" env:"MONITORING_ENABLED"`
	Path    string `koanf:"path"    validate:"required,startswith=/,ne=/,ne=/about,ne=/create,ne=/healthz,ne=/metrics" env:"MONITORING_PATH"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3111,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Path:        "database.db",
			BusyTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "DEBUG",
		},
		Monitoring: MonitoringConfig{
			Enabled: false,
			Path:    "/prometheus",
		},
	}
}
