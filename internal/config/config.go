// Package config loads and writes shed's settings file (shed.yaml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default configuration file name.
const ConfigFileName = "shed.yaml"

// ErrConfigExists is returned by Write when the target file already exists.
var ErrConfigExists = errors.New("config file already exists")

// Config holds shed's runtime settings.
type Config struct {
	// LogLevel is the minimum log level: "debug", "info", "warn", "error".
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// LogsDir enables file logging when non-empty.
	LogsDir string `mapstructure:"logs_dir" yaml:"logs_dir,omitempty"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig controls log file rotation.
type LoggingConfig struct {
	MaxSizeMB  int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxAgeDays int `mapstructure:"max_age_days" yaml:"max_age_days"`
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Logging: LoggingConfig{
			MaxSizeMB:  10,
			MaxAgeDays: 7,
			MaxBackups: 3,
		},
	}
}

// Loader handles loading and parsing of the shed configuration.
type Loader struct {
	workDir string
	viper   *viper.Viper
}

// NewLoader creates a new configuration loader for the given working directory.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir: workDir,
		viper:   viper.New(),
	}
}

// Load reads shed.yaml from the working directory, layered over defaults
// and SHED_* environment variables. A missing file is not an error: the
// defaults apply.
func (l *Loader) Load() (*Config, error) {
	defaults := DefaultConfig()
	l.viper.SetDefault("log_level", defaults.LogLevel)
	l.viper.SetDefault("logs_dir", defaults.LogsDir)
	l.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	l.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	l.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	l.viper.SetEnvPrefix("SHED")
	l.viper.AutomaticEnv()

	configPath := filepath.Join(l.workDir, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		l.viper.SetConfigFile(configPath)
		l.viper.SetConfigType("yaml")
		if err := l.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Write marshals cfg to shed.yaml in dir. Refuses to overwrite an existing
// file (wrapped ErrConfigExists) so `shed init` is safe to re-run.
func Write(cfg *Config, dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return path, nil
}
