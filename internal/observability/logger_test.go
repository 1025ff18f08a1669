package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/quake-severity-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		level     string
		enabled   slog.Level
		disabled  slog.Level
		checkLess bool
	}{
		{level: "debug", enabled: slog.LevelDebug},
		{level: "info", enabled: slog.LevelInfo, disabled: slog.LevelDebug, checkLess: true},
		{level: "warn", enabled: slog.LevelWarn, disabled: slog.LevelInfo, checkLess: true},
		{level: "error", enabled: slog.LevelError, disabled: slog.LevelWarn, checkLess: true},
		{level: "bogus", enabled: slog.LevelInfo, disabled: slog.LevelDebug, checkLess: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(&config.Config{LogLevel: tt.level, LogFormat: "json"})
			require.NotNil(t, logger)
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			if tt.checkLess {
				assert.False(t, logger.Enabled(context.Background(), tt.disabled))
			}
		})
	}
}

func TestNewLogger_Handler(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	jsonLogger := NewLogger(&config.Config{LogLevel: "info", LogFormat: "json"})
	assert.IsType(t, &slog.JSONHandler{}, jsonLogger.Handler())

	textLogger := NewLogger(&config.Config{LogLevel: "info", LogFormat: "text"})
	assert.IsType(t, &slog.TextHandler{}, textLogger.Handler())
}

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "text"})
	assert.Same(t, logger, slog.Default())
}
