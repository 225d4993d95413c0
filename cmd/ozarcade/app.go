package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/ozembnic-arcade/internal/config"
	"github.com/vovakirdan/ozembnic-arcade/internal/core"
	"github.com/vovakirdan/ozembnic-arcade/internal/ledger"
	"github.com/vovakirdan/ozembnic-arcade/internal/platform/tui"
	"github.com/vovakirdan/ozembnic-arcade/internal/storage"
)

// app is the wiring every command starts from.
type app struct {
	cfg     config.Config
	store   *storage.Store
	ledger  *ledger.Ledger
	logger  *log.Logger
	logFile *os.File
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to ~/.ozembnic/arcade.log so the alt screen stays clean.
// It falls back to discarding logs when the file cannot be opened.
func fileLogger(prefix string) (*log.Logger, *os.File) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), nil
	}
	dir := filepath.Join(home, ".ozembnic")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), nil
	}
	return newLogger(f, prefix), f
}

// openApp loads configuration, opens the database and the ledger. With
// interactive set, logs go to a file instead of stderr.
func openApp(interactive bool) (*app, error) {
	a := &app{}
	if interactive {
		a.logger, a.logFile = fileLogger("ozarcade")
	} else {
		a.logger = newLogger(os.Stderr, "ozarcade")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		a.close()
		return nil, err
	}
	a.cfg = cfg

	store, err := storage.Open(flagDBPath)
	if err != nil {
		a.close()
		return nil, err
	}
	a.store = store

	a.ledger = ledger.Open(store, ledger.WithLogger(a.logger))
	return a, nil
}

// close releases the database and the log file. Safe to call twice, since
// commands close explicitly before os.Exit.
func (a *app) close() {
	if a.store != nil {
		//nolint:errcheck // Best-effort close on exit
		a.store.Close()
		a.store = nil
	}
	if a.logFile != nil {
		//nolint:errcheck // Best-effort close on exit
		a.logFile.Close()
		a.logFile = nil
	}
}

// redeemer returns a redeemer for player that records to the database.
func (a *app) redeemer(player string) *ledger.Redeemer {
	return ledger.NewRedeemer(a.ledger, ledger.NewCatalog(a.cfg.Rewards),
		ledger.WithRecorder(a.store),
		ledger.WithPlayer(player),
		ledger.WithRedeemerLogger(a.logger),
	)
}

// sprite loads the configured bird image. A missing file keeps the circle.
func (a *app) sprite() *core.Sprite {
	if a.cfg.Bird.Sprite == "" {
		return nil
	}
	s, err := core.LoadSprite(a.cfg.Bird.Sprite)
	if err != nil {
		a.logger.Warn("cannot load bird sprite, drawing a circle", "path", a.cfg.Bird.Sprite, "error", err)
		return nil
	}
	return s
}

// env builds the TUI environment for a local player.
func (a *app) env() tui.Env {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	player := os.Getenv("USER")
	return tui.Env{
		Config: a.cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Ledger:   a.ledger,
		Redeemer: a.redeemer(player),
		Store:    a.store,
		Sprite:   a.sprite(),
		Logger:   a.logger,
		Player:   player,
	}
}

// mustOpenApp is openApp for commands that cannot do anything without it.
func mustOpenApp(interactive bool) *app {
	a, err := openApp(interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}
