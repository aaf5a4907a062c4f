package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type SourceType string

const (
	SourceDefault SourceType = "default"
	SourceDotenv  SourceType = "dotenv"
	SourceEnv     SourceType = "env"
	SourceCLI     SourceType = "cli"
)

// rank orders sources by precedence; higher ranks are applied later and win.
func (s SourceType) rank() int {
	switch s {
	case SourceDefault:
		return 0
	case SourceDotenv:
		return 1
	case SourceEnv:
		return 2
	case SourceCLI:
		return 3
	default:
		return 1
	}
}

// Source supplies a nested configuration map.
type Source interface {
	Load() (map[string]any, error)
	Type() SourceType
}

// cliProvider implements Source for command line flags.
type cliProvider struct {
	flags map[string]any
}

// flagToPath maps CLI flag names onto config paths.
var flagToPath = map[string]string{
	"host":       "server.host",
	"port":       "server.port",
	"db":         "database.path",
	"log-level":  "logging.level",
	"log-json":   "logging.json",
	"log-source": "logging.add_source",
	"monitoring": "monitoring.enabled",
}

// NewCLIProvider creates a configuration source from explicitly set flags.
func NewCLIProvider(flags map[string]any) Source {
	return &cliProvider{flags: flags}
}

func (c *cliProvider) Load() (map[string]any, error) {
	config := make(map[string]any)
	for key, value := range c.flags {
		path, ok := flagToPath[key]
		if !ok {
			continue
		}
		if err := setNested(config, path, value); err != nil {
			return nil, fmt.Errorf("failed to set CLI flag %s: %w", key, err)
		}
	}
	return config, nil
}

func (c *cliProvider) Type() SourceType {
	return SourceCLI
}

// dotenvProvider reads a .env file and maps its variables through the env struct tags,
// leaving the process environment untouched.
type dotenvProvider struct {
	path     string
	required bool
}

// NewDotenvProvider creates a source for the given .env file. A missing file is an error
// only when required is set.
func NewDotenvProvider(path string, required bool) Source {
	return &dotenvProvider{path: path, required: required}
}

func (d *dotenvProvider) Load() (map[string]any, error) {
	if d.path == "" {
		return map[string]any{}, nil
	}
	if _, err := os.Stat(d.path); err != nil {
		if os.IsNotExist(err) && !d.required {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to stat env file %s: %w", d.path, err)
	}
	vars, err := godotenv.Read(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", d.path, err)
	}
	envToPath := GenerateEnvToConfigMap()
	config := make(map[string]any)
	for key, value := range vars {
		path, ok := envToPath[key]
		if !ok {
			continue
		}
		if err := setNested(config, path, value); err != nil {
			return nil, fmt.Errorf("failed to set env file key %s: %w", key, err)
		}
	}
	return config, nil
}

func (d *dotenvProvider) Type() SourceType {
	return SourceDotenv
}

// setNested sets a value in a nested map structure using dot notation.
func setNested(m map[string]any, path string, value any) error {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if _, exists := current[part]; !exists {
			current[part] = make(map[string]any)
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return fmt.Errorf("configuration conflict: key %q is not a map", strings.Join(parts[:i+1], "."))
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

// flattenMap flattens a nested map into dot-notation keys
func flattenMap(prefix string, m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nestedMap, ok := v.(map[string]any); ok {
			for fk, fv := range flattenMap(key, nestedMap) {
				result[fk] = fv
			}
		} else {
			result[key] = v
		}
	}
	return result
}
