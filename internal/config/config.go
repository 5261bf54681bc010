// Package config provides configuration management for searchcore.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the searchcore configuration.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Enhancement EnhancementConfig `yaml:"enhancement"`
	Insights    InsightsConfig    `yaml:"insights"`
	History     HistoryConfig     `yaml:"history"`
	Storage     StorageConfig     `yaml:"storage"`
	Profile     ProfileConfig     `yaml:"profile"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (empty = stderr)
}

// SuggestionsConfig holds suggestion pipeline settings.
type SuggestionsConfig struct {
	MaxResults      int `yaml:"max_results"`       // Max ranked suggestions returned
	MinPrefixLength int `yaml:"min_prefix_length"` // Shortest prefix worth suggesting for
	SourceTimeoutMs int `yaml:"source_timeout_ms"` // Per-source budget before it is skipped
	CacheTTLMs      int `yaml:"cache_ttl_ms"`      // Suggestion cache time-to-live in ms

	TrendingTopics []string `yaml:"trending_topics"` // Overrides the built-in trending list
}

// EnhancementConfig holds query enhancement settings.
type EnhancementConfig struct {
	Enabled bool `yaml:"enabled"` // Master toggle for query rewriting
}

// InsightsConfig holds result analysis settings.
type InsightsConfig struct {
	MaxInsights     int `yaml:"max_insights"`      // Max insights per analysis
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"` // Insight cache lifetime
}

// HistoryConfig holds search history settings.
type HistoryConfig struct {
	Capacity      int `yaml:"capacity"`       // Max stored history records
	RetentionDays int `yaml:"retention_days"` // Prune records older than this
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"` // SQLite path (empty = default)
}

// ProfileConfig holds per-user personalization settings.
type ProfileConfig struct {
	Interests []string `yaml:"interests"` // Topics the user follows
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Suggestions: SuggestionsConfig{
			MaxResults:      10,
			MinPrefixLength: 2,
			SourceTimeoutMs: 500,
			CacheTTLMs:      30000,
		},
		Enhancement: EnhancementConfig{
			Enabled: true,
		},
		Insights: InsightsConfig{
			MaxInsights:     5,
			CacheTTLMinutes: 30,
		},
		History: HistoryConfig{
			Capacity:      1000,
			RetentionDays: 30,
		},
		Storage: StorageConfig{
			DatabasePath: "",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration. Hard errors are reserved for values
// with no sensible fallback; recoverable ones are fixed in place with a
// warning.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got: %s)", c.Logging.Level)
	}

	if c.History.Capacity < 0 {
		return errors.New("history.capacity must be >= 0")
	}
	if c.History.RetentionDays < 0 {
		return errors.New("history.retention_days must be >= 0")
	}

	c.ValidateAndFix()
	return nil
}

// ValidationWarning represents a config validation warning.
type ValidationWarning struct {
	Field   string
	Message string
}

// ValidateAndFix fixes recoverable out-of-range values by falling back to
// defaults or clamping. Returns the warnings for diagnostics; validation
// never prevents startup.
func (c *Config) ValidateAndFix() []ValidationWarning {
	defaults := DefaultConfig()
	var warnings []ValidationWarning

	warn := func(field, msg string) {
		warnings = append(warnings, ValidationWarning{Field: field, Message: msg})
		slog.Warn("config value fixed", "field", field, "detail", msg)
	}

	if c.Suggestions.MaxResults < 1 {
		warn("suggestions.max_results", fmt.Sprintf("must be >= 1, got %d; falling back to default %d",
			c.Suggestions.MaxResults, defaults.Suggestions.MaxResults))
		c.Suggestions.MaxResults = defaults.Suggestions.MaxResults
	}

	if c.Suggestions.MinPrefixLength < 1 {
		warn("suggestions.min_prefix_length", fmt.Sprintf("must be >= 1, got %d; falling back to default %d",
			c.Suggestions.MinPrefixLength, defaults.Suggestions.MinPrefixLength))
		c.Suggestions.MinPrefixLength = defaults.Suggestions.MinPrefixLength
	}

	if c.Suggestions.SourceTimeoutMs < 1 {
		warn("suggestions.source_timeout_ms", fmt.Sprintf("must be >= 1, got %d; falling back to default %d",
			c.Suggestions.SourceTimeoutMs, defaults.Suggestions.SourceTimeoutMs))
		c.Suggestions.SourceTimeoutMs = defaults.Suggestions.SourceTimeoutMs
	}

	if c.Suggestions.CacheTTLMs < 1 {
		warn("suggestions.cache_ttl_ms", fmt.Sprintf("must be >= 1, got %d; falling back to default %d",
			c.Suggestions.CacheTTLMs, defaults.Suggestions.CacheTTLMs))
		c.Suggestions.CacheTTLMs = defaults.Suggestions.CacheTTLMs
	}

	if c.Insights.MaxInsights < 1 {
		warn("insights.max_insights", fmt.Sprintf("must be >= 1, got %d; falling back to default %d",
			c.Insights.MaxInsights, defaults.Insights.MaxInsights))
		c.Insights.MaxInsights = defaults.Insights.MaxInsights
	}

	if c.Insights.CacheTTLMinutes < 1 {
		warn("insights.cache_ttl_minutes", fmt.Sprintf("must be >= 1, got %d; falling back to default %d",
			c.Insights.CacheTTLMinutes, defaults.Insights.CacheTTLMinutes))
		c.Insights.CacheTTLMinutes = defaults.Insights.CacheTTLMinutes
	}

	// A zero capacity or retention means "use the default", not "disable".
	if c.History.Capacity == 0 {
		c.History.Capacity = defaults.History.Capacity
	}
	if c.History.RetentionDays == 0 {
		c.History.RetentionDays = defaults.History.RetentionDays
	}

	return warnings
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables override config file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SEARCHCORE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Logging.Level = "debug"
		}
	}
	if v := os.Getenv("SEARCHCORE_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Logging.Level = v
		}
	}
	if v := os.Getenv("SEARCHCORE_DB_PATH"); v != "" {
		c.Storage.DatabasePath = v
	}
	if v := os.Getenv("SEARCHCORE_ENHANCEMENT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enhancement.Enabled = b
		}
	}
}
