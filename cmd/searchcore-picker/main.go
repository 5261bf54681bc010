// Package main is the interactive query picker for searchcore. It renders a
// Bubble Tea TUI on /dev/tty, streams suggestions as the user types, and
// prints the selected query on stdout so shell integrations can capture it
// with $(searchcore-picker ...).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/capitolstream/searchcore/internal/config"
	"github.com/capitolstream/searchcore/internal/embed"
	"github.com/capitolstream/searchcore/internal/engine"
	"github.com/capitolstream/searchcore/internal/history"
	"github.com/capitolstream/searchcore/internal/picker"
	"github.com/capitolstream/searchcore/internal/storage"
)

// Version information (set via ldflags during build).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes.
// These match the expectations of shell scripts:
//
//	0 = selection made (use the result)
//	1 = cancelled by user (keep original input)
//	2 = fallback (no TTY, error, etc.)
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitFallback  = 2
)

// maxQueryLen is the maximum length of a query string in bytes.
const maxQueryLen = 4096

type pickerOpts struct {
	query     string
	configYml string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the main entry point, returning an exit code.
// It is separated from main() to enable testing.
func run(args []string) int {
	if err := checkTTY(); err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: %v\n", err)
		return exitFallback
	}
	if err := checkTERM(); err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: %v\n", err)
		return exitFallback
	}
	if err := checkTermWidth(); err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: %v\n", err)
		return exitFallback
	}

	paths := config.DefaultPaths()
	cacheDir := paths.CacheDir
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: failed to create cache directory: %v\n", err)
		return exitFallback
	}

	// Only one picker at a time; they share the SQLite history database.
	lockFd, err := acquireLock(filepath.Join(cacheDir, "picker.lock"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: %v\n", err)
		return exitFallback
	}
	defer releaseLock(lockFd)

	opts, code, done := parseFlags(args)
	if done {
		return code
	}

	var cfg *config.Config
	if opts.configYml != "" {
		cfg, err = config.LoadFromFile(opts.configYml)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: failed to load config: %v\n", err)
		return exitFallback
	}

	return runPicker(cfg, opts)
}

// parseFlags parses the command line. The third return value reports whether
// the process should exit immediately with the returned code.
func parseFlags(args []string) (*pickerOpts, int, bool) {
	fs := flag.NewFlagSet("searchcore-picker", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := &pickerOpts{}
	showVersion := false
	fs.StringVar(&opts.query, "query", "", "initial partial query (max 4096 bytes)")
	fs.StringVar(&opts.configYml, "config", "", "config file (default: XDG config dir)")
	fs.BoolVar(&showVersion, "version", false, "print version information")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, exitSuccess, true
		}
		return nil, exitFallback, true
	}

	if showVersion {
		fmt.Printf("searchcore-picker %s\n", Version)
		fmt.Printf("  commit: %s\n", GitCommit)
		fmt.Printf("  built:  %s\n", BuildDate)
		return nil, exitSuccess, true
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "searchcore-picker: unexpected argument: %s\n", fs.Arg(0))
		return nil, exitFallback, true
	}

	sanitized, err := sanitizeQuery(opts.query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: --query: %v\n", err)
		return nil, exitFallback, true
	}
	opts.query = sanitized

	return opts, exitSuccess, false
}

// sanitizeQuery strips control characters and validates the query string.
func sanitizeQuery(q string) (string, error) {
	if q == "" {
		return "", nil
	}

	// Reject newlines before stripping.
	if strings.ContainsAny(q, "\n\r") {
		return "", fmt.Errorf("query must not contain newlines")
	}

	// Strip control characters (0x00-0x1F) except tab (0x09).
	var b strings.Builder
	b.Grow(len(q))
	for _, r := range q {
		if r >= 0x00 && r <= 0x1F && r != 0x09 {
			continue
		}
		b.WriteRune(r)
	}
	result := b.String()

	if len(result) > maxQueryLen {
		result = result[:maxQueryLen]
	}

	return result, nil
}

// runPicker wires the engine and runs the Bubble Tea TUI.
func runPicker(cfg *config.Config, opts *pickerOpts) int {
	// TUI chatter goes to stderr only when debugging; default to quiet.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if os.Getenv("SEARCHCORE_DEBUG") == "1" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	dbPath := cfg.Storage.DatabasePath
	if dbPath == "" {
		paths := config.DefaultPaths()
		if err := os.MkdirAll(filepath.Dir(paths.DatabaseFile()), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "searchcore-picker: failed to create data directory: %v\n", err)
			return exitFallback
		}
		dbPath = paths.DatabaseFile()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: failed to open database: %v\n", err)
		return exitFallback
	}
	defer db.Close()

	hist, err := history.NewStore(history.Config{
		Capacity:  cfg.History.Capacity,
		Retention: time24h(cfg.History.RetentionDays),
	}, history.NewKVBackend(db), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: failed to open history: %v\n", err)
		return exitFallback
	}
	defer hist.Close()

	eng, err := engine.New(engine.Options{
		Config:   cfg,
		Logger:   logger,
		History:  hist,
		Embedder: embed.NewHashingProvider(0),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: failed to build engine: %v\n", err)
		return exitFallback
	}
	defer eng.Close()

	provider := picker.NewEngineProvider(eng, cfg.Profile.Interests)
	model := picker.NewModel(picker.DefaultTabs(), provider)
	if opts.query != "" {
		model = model.WithQuery(opts.query)
	}

	// Open /dev/tty for TUI input/output since stdout is used for the result.
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: cannot open /dev/tty: %v\n", err)
		return exitFallback
	}
	defer tty.Close()

	// Detect color profile from the tty and apply it to the default renderer.
	// When invoked via $(searchcore-picker ...), stdout is a pipe so lipgloss
	// defaults to Ascii (no color). We detect from the real tty instead.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)

	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "searchcore-picker: TUI error: %v\n", err)
		return exitFallback
	}

	m, ok := finalModel.(picker.Model)
	if !ok {
		fmt.Fprintln(os.Stderr, "searchcore-picker: unexpected model type")
		return exitFallback
	}

	if m.IsCancelled() {
		return exitCancelled
	}

	if result := m.Result(); result != "" {
		fmt.Fprintln(os.Stdout, result)
	}

	return exitSuccess
}

func time24h(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
