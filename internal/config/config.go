package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/repo-sync-config/internal/logging"
)

const (
	defaultLogLevel    = "warn"
	defaultLogEncoding = logging.EncodingConsole

	envLogLevel    = "REPOCFG_LOG_LEVEL"
	envLogEncoding = "REPOCFG_LOG_ENCODING"
	envTemplate    = "REPOCFG_TEMPLATE"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > settings YAML > Environment variables > Defaults
type Config struct {
	// DocumentPath is the YAML document that is parsed and queried.
	DocumentPath string
	// TemplatePath is read as raw text to tell an empty document apart from
	// one whose sections are commented out. Defaults to DocumentPath.
	TemplatePath string
	// LookupKey is the glob pattern matched against flattened key paths.
	LookupKey   string
	LogLevel    string
	LogEncoding string
}

// yamlSettings represents the optional tool settings file.
type yamlSettings struct {
	LogLevel    string `yaml:"log_level"`
	LogEncoding string `yaml:"log_encoding"`
	Template    string `yaml:"template"`
}

// CLIOverrides holds command-line arguments and flag overrides.
type CLIOverrides struct {
	SettingsFile string
	DocumentPath string
	LookupKey    string
	TemplatePath *string
	LogLevel     *string
	LogEncoding  *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > settings YAML > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	applyEnvConfig(&cfg)

	if overrides != nil && overrides.SettingsFile != "" {
		settings, err := loadFromFile(overrides.SettingsFile)
		if err != nil {
			return Config{}, fmt.Errorf("load settings file: %w", err)
		}
		applyYAMLSettings(&cfg, settings)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if cfg.TemplatePath == "" {
		cfg.TemplatePath = cfg.DocumentPath
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		LogLevel:    defaultLogLevel,
		LogEncoding: defaultLogEncoding,
	}
}

// loadFromFile loads tool settings from a YAML file.
func loadFromFile(path string) (*yamlSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var settings yamlSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &settings, nil
}

// applyYAMLSettings applies the settings file to the Config struct.
func applyYAMLSettings(cfg *Config, settings *yamlSettings) {
	if v := strings.TrimSpace(settings.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(settings.LogEncoding); v != "" {
		cfg.LogEncoding = v
	}
	if v := strings.TrimSpace(settings.Template); v != "" {
		cfg.TemplatePath = v
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogEncoding)); v != "" {
		cfg.LogEncoding = v
	}
	if v := strings.TrimSpace(os.Getenv(envTemplate)); v != "" {
		cfg.TemplatePath = v
	}
}

// applyCLIOverrides applies positional arguments and flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	cfg.DocumentPath = overrides.DocumentPath
	cfg.LookupKey = overrides.LookupKey

	if overrides.TemplatePath != nil && *overrides.TemplatePath != "" {
		cfg.TemplatePath = *overrides.TemplatePath
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.LogEncoding != nil && *overrides.LogEncoding != "" {
		cfg.LogEncoding = *overrides.LogEncoding
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.DocumentPath == "" {
		return fmt.Errorf("document path cannot be empty")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	switch cfg.LogEncoding {
	case logging.EncodingConsole, logging.EncodingJSON:
	default:
		return fmt.Errorf("log encoding must be %q or %q, got %q",
			logging.EncodingConsole, logging.EncodingJSON, cfg.LogEncoding)
	}
	return nil
}
