// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for restmodel configuration.
	DefaultConfigDir = ".restmodel"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"

	// DefaultPort is the port the API listens on when nothing is configured.
	DefaultPort = 4567
)

var validate = validator.New()

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Server ServerConfig `yaml:"server,omitempty"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Host  string `yaml:"host,omitempty" validate:"required"`
	Port  int    `yaml:"port,omitempty" validate:"required,min=1,max=65535"`
	Debug bool   `yaml:"debug,omitempty"`
	Seed  bool   `yaml:"seed,omitempty"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: DefaultPort,
			Seed: true,
		},
	}
}

// Load loads configuration from the .restmodel directory in the given path.
// A missing config file is not an error: defaults apply, adjusted by any
// environment overrides.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigFilePath(basePath))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if host := os.Getenv("RESTMODEL_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("RESTMODEL_PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("parsing RESTMODEL_PORT: %w", err)
		}
		c.Server.Port = parsed
	}
	return nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

// ConfigDir returns the path to the .restmodel config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a restmodel config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
