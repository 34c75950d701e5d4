package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catcher/internal/catch"
	"github.com/vovakirdan/catcher/internal/config"
	"github.com/vovakirdan/catcher/internal/highscore"
	"github.com/vovakirdan/catcher/internal/platform/tui"
	"github.com/vovakirdan/catcher/internal/storage"
)

// logSink selects where the process logs. The interactive TUI owns the
// terminal, so it logs to a file.
type logSink int

const (
	logToStderr logSink = iota
	logToFile
)

// env is everything a command needs, built from config and flags.
type env struct {
	cfg     config.CatchConfig
	rules   catch.Rules
	logger  *log.Logger
	store   storage.Store // nil if the store could not be opened
	logFile io.Closer
}

// loadEnv loads config, applies flag overrides, builds the logger and the
// rules, and opens the store. A store failure is returned only if
// requireStore is set; otherwise it is logged and the store is left nil.
func loadEnv(ctx context.Context, sink logSink, requireStore bool) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg)

	e := &env{cfg: cfg}
	var out io.Writer = os.Stderr
	if sink == logToFile && cfg.Log.File != "" {
		f, fileErr := openLogFile(cfg.Log.File)
		if fileErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", fileErr)
			out = io.Discard
		} else {
			out = f
			e.logFile = f
		}
	}

	e.logger, err = newLogger(cfg.Log, out)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.rules, err = catch.RulesFromConfig(cfg)
	if err != nil {
		e.Close()
		return nil, err
	}
	for _, note := range e.rules.Fallbacks {
		e.logger.Warn("asset fallback", "detail", note)
	}

	e.store, err = storage.Open(ctx, cfg.Store)
	if err != nil {
		if requireStore {
			e.Close()
			return nil, err
		}
		e.logger.Warn("could not open scores store, scores will not be saved", "driver", cfg.Store.Driver, "error", err)
		e.store = nil
	}

	return e, nil
}

// services bundles the env for the TUI.
func (e *env) services(cues catch.CueSink) *tui.Services {
	svc := &tui.Services{
		Rules:  e.rules,
		Cues:   cues,
		Logger: e.logger,
	}
	if e.store != nil {
		svc.Store = e.store
		svc.Scores = highscore.NewClient(e.store, e.logger)
	}
	return svc
}

// Close releases the store and the log file.
func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil && e.logger != nil {
			e.logger.Warn("closing store", "error", err)
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func applyFlags(cfg *config.CatchConfig) {
	if flagDBPath != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.DSN = flagDBPath
	}
	if flagStore != "" {
		cfg.Store.Driver = flagStore
	}
	if flagDSN != "" {
		cfg.Store.DSN = flagDSN
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
}

// newLogger builds the process logger from the log section of the config.
func newLogger(cfg config.LogConfig, w io.Writer) (*log.Logger, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		lvl, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = lvl
	}

	var formatter log.Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "catcher",
		Level:           level,
		Formatter:       formatter,
	}), nil
}

func openLogFile(path string) (*os.File, error) {
	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
