package main

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/catcher/internal/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LogConfig{Level: "warn", Format: "logfmt"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown", "player", "alice")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "player=alice")
	assert.Contains(t, out, "prefix=catcher")

	_, err = newLogger(config.LogConfig{Level: "loud"}, &buf)
	assert.Error(t, err)
	_, err = newLogger(config.LogConfig{Format: "xml"}, &buf)
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	t.Cleanup(func() {
		flagDBPath, flagStore, flagDSN, flagLogLevel, flagMute = "", "", "", "", false
	})

	cfg := config.DefaultCatchConfig()
	flagDBPath = "/tmp/scores.db"
	flagLogLevel = "debug"
	flagMute = true
	applyFlags(&cfg)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/scores.db", cfg.Store.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Audio.Enabled)

	cfg = config.DefaultCatchConfig()
	flagDBPath, flagMute = "", false
	flagStore = "memory"
	applyFlags(&cfg)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.True(t, cfg.Audio.Enabled)
}
