package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Suggestions.MaxResults != 10 {
		t.Errorf("Suggestions.MaxResults = %d, want 10", cfg.Suggestions.MaxResults)
	}
	if cfg.Suggestions.MinPrefixLength != 2 {
		t.Errorf("Suggestions.MinPrefixLength = %d, want 2", cfg.Suggestions.MinPrefixLength)
	}
	if cfg.Suggestions.SourceTimeoutMs != 500 {
		t.Errorf("Suggestions.SourceTimeoutMs = %d, want 500", cfg.Suggestions.SourceTimeoutMs)
	}
	if cfg.Insights.MaxInsights != 5 {
		t.Errorf("Insights.MaxInsights = %d, want 5", cfg.Insights.MaxInsights)
	}
	if cfg.Insights.CacheTTLMinutes != 30 {
		t.Errorf("Insights.CacheTTLMinutes = %d, want 30", cfg.Insights.CacheTTLMinutes)
	}
	if cfg.History.Capacity != 1000 {
		t.Errorf("History.Capacity = %d, want 1000", cfg.History.Capacity)
	}
	if cfg.History.RetentionDays != 30 {
		t.Errorf("History.RetentionDays = %d, want 30", cfg.History.RetentionDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Suggestions.MaxResults != 10 {
		t.Errorf("missing file should yield defaults, got MaxResults = %d", cfg.Suggestions.MaxResults)
	}
}

func TestLoadFromFile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
suggestions:
  max_results: 5
  min_prefix_length: 3
history:
  capacity: 200
profile:
  interests:
    - climate policy
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Suggestions.MaxResults != 5 {
		t.Errorf("Suggestions.MaxResults = %d, want 5", cfg.Suggestions.MaxResults)
	}
	if cfg.Suggestions.MinPrefixLength != 3 {
		t.Errorf("Suggestions.MinPrefixLength = %d, want 3", cfg.Suggestions.MinPrefixLength)
	}
	if cfg.History.Capacity != 200 {
		t.Errorf("History.Capacity = %d, want 200", cfg.History.Capacity)
	}
	if len(cfg.Profile.Interests) != 1 || cfg.Profile.Interests[0] != "climate policy" {
		t.Errorf("Profile.Interests = %v, want [climate policy]", cfg.Profile.Interests)
	}
	// Untouched sections keep defaults.
	if cfg.Insights.MaxInsights != 5 {
		t.Errorf("Insights.MaxInsights = %d, want default 5", cfg.Insights.MaxInsights)
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("suggestions: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("LoadFromFile() on malformed YAML should fail")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject unknown log level")
	}
}

func TestValidateAndFix_OutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Suggestions.MaxResults = -3
	cfg.Suggestions.SourceTimeoutMs = 0
	cfg.Insights.MaxInsights = 0

	warnings := cfg.ValidateAndFix()
	if len(warnings) != 3 {
		t.Errorf("len(warnings) = %d, want 3", len(warnings))
	}
	if cfg.Suggestions.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want restored default 10", cfg.Suggestions.MaxResults)
	}
	if cfg.Suggestions.SourceTimeoutMs != 500 {
		t.Errorf("SourceTimeoutMs = %d, want restored default 500", cfg.Suggestions.SourceTimeoutMs)
	}
	if cfg.Insights.MaxInsights != 5 {
		t.Errorf("MaxInsights = %d, want restored default 5", cfg.Insights.MaxInsights)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Suggestions.MaxResults = 7
	cfg.Profile.Interests = []string{"healthcare reform"}
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Suggestions.MaxResults != 7 {
		t.Errorf("MaxResults = %d, want 7", loaded.Suggestions.MaxResults)
	}
	if len(loaded.Profile.Interests) != 1 || loaded.Profile.Interests[0] != "healthcare reform" {
		t.Errorf("Interests = %v, want [healthcare reform]", loaded.Profile.Interests)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SEARCHCORE_LOG_LEVEL", "debug")
	t.Setenv("SEARCHCORE_DB_PATH", "/tmp/test.db")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Storage.DatabasePath != "/tmp/test.db" {
		t.Errorf("Storage.DatabasePath = %q, want /tmp/test.db", cfg.Storage.DatabasePath)
	}
}

func TestDefaultPaths(t *testing.T) {
	p := DefaultPaths()
	if p.ConfigDir == "" || p.DataDir == "" || p.CacheDir == "" {
		t.Errorf("DefaultPaths() has empty members: %+v", p)
	}
	if p.ConfigFile() == "" || p.DatabaseFile() == "" {
		t.Error("path accessors returned empty strings")
	}
}
