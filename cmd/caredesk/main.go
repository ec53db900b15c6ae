package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rkrishnan/caredesk/internal/app"
	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/store"
	"github.com/rkrishnan/caredesk/internal/toast"
)

func main() {
	var (
		configPath string
		dbPath     string
	)

	flag.StringVar(&configPath, "config", model.DefaultConfigPath(),
		"path to the YAML configuration file")
	flag.StringVar(&dbPath, "db", defaultDBPath(),
		"path to the local SQLite cache")
	flag.Parse()

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: creating data directory: %v\n", err)
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: opening store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	surface := toast.NewStackSurface()
	toasts := toast.New(surface,
		toast.WithClock(clock.New()),
		toast.WithDefaultDuration(
			time.Duration(cfg.Toast.DurationMs)*time.Millisecond,
		),
		toast.WithEnterDelay(
			time.Duration(cfg.Toast.EnterDelayMs)*time.Millisecond,
		),
		toast.WithExitDuration(
			time.Duration(cfg.Toast.ExitMs)*time.Millisecond,
		),
	)

	program := tea.NewProgram(
		app.New(s, cfg, toasts, surface),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// defaultDBPath returns ~/.local/share/caredesk/caredesk.db, falling
// back to the working directory when the home directory is unknown.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "caredesk.db"
	}
	return filepath.Join(home, ".local", "share", "caredesk", "caredesk.db")
}
