package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/capitolstream/searchcore/internal/config"
	"github.com/capitolstream/searchcore/internal/embed"
	"github.com/capitolstream/searchcore/internal/engine"
	"github.com/capitolstream/searchcore/internal/history"
	"github.com/capitolstream/searchcore/internal/storage"
)

// loadConfig reads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// newLogger builds the process logger from the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runtimeDeps bundles everything a command needs torn down afterwards.
type runtimeDeps struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *engine.Engine
	db     *storage.Store
	hist   *history.Store
}

func (d *runtimeDeps) close() {
	if d.hist != nil {
		d.hist.Close()
	}
	if d.engine != nil {
		d.engine.Close()
	}
	if d.db != nil {
		d.db.Close()
	}
}

// buildEngine wires the full stack: SQLite-backed history feeding an engine
// with the local embedding provider.
func buildEngine() (*runtimeDeps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	dbPath := cfg.Storage.DatabasePath
	if dbPath == "" {
		paths := config.DefaultPaths()
		if err := os.MkdirAll(filepath.Dir(paths.DatabaseFile()), 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dbPath = paths.DatabaseFile()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	hist, err := history.NewStore(history.Config{
		Capacity:  cfg.History.Capacity,
		Retention: time24h(cfg.History.RetentionDays),
	}, history.NewKVBackend(db), logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open history store: %w", err)
	}

	eng, err := engine.New(engine.Options{
		Config:   cfg,
		Logger:   logger,
		History:  hist,
		Embedder: embed.NewHashingProvider(0),
	})
	if err != nil {
		hist.Close()
		db.Close()
		return nil, fmt.Errorf("build engine: %w", err)
	}

	return &runtimeDeps{cfg: cfg, logger: logger, engine: eng, db: db, hist: hist}, nil
}

func time24h(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
