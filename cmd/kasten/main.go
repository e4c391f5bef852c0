package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"

	"github.com/vidyasagar/kasten/internal/app"
	"github.com/vidyasagar/kasten/internal/storage"
	"github.com/vidyasagar/kasten/internal/theme"
)

var version = "0.1.0"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		themeFlag   = flag.String("theme", "", "Color theme for this run (default, gruvbox, catppuccin, nord, dracula, solarized, tokyonight)")
		dbFlag      = flag.String("db", "", "Path to the note database (overrides config)")
		debugFlag   = flag.Bool("debug", false, "Write a debug log next to the database")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "kasten %s - a terminal browser for your zettelkasten\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage: kasten [options] [note-id]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  kasten                    open the browse screen\n")
		fmt.Fprintf(os.Stderr, "  kasten spaced-repetition  open a note and start a trail\n")
		fmt.Fprintf(os.Stderr, "  kasten -theme gruvbox     pick a theme for this run\n")
		fmt.Fprintf(os.Stderr, "  kasten -db /tmp/scratch.db  browse an alternate box\n")
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("kasten %s\n", version)
		os.Exit(0)
	}

	cfg, err := storage.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		def := storage.DefaultConfig()
		cfg = &def
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if !theme.Set(cfg.Theme) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\n", cfg.Theme)
		fmt.Fprintf(os.Stderr, "Available themes: ")
		for i, t := range theme.List() {
			if i > 0 {
				fmt.Fprintf(os.Stderr, ", ")
			}
			fmt.Fprintf(os.Stderr, "%s", t)
		}
		fmt.Fprintf(os.Stderr, "\n")
		os.Exit(1)
	}

	setupLogging(*debugFlag)

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving database path: %v\n", err)
		os.Exit(1)
	}

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Debug("starting", "version", version, "db", dbPath, "theme", cfg.Theme)

	store := storage.NewStore(db)
	m := app.New(store, cfg, flag.Arg(0))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	slog.Debug("exiting")
}

// setupLogging routes slog to a file when debugging. The terminal
// belongs to the TUI, so stdout and stderr are never an option while
// the program runs.
func setupLogging(debug bool) {
	if !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}
	dir, err := storage.DataDir()
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
