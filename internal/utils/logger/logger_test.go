package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"golang.org/x/exp/slog"

	"multistopwatch/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		env            string
		expectedLevel  slog.Level
		expectedPretty bool
	}{
		{
			name:           "local environment",
			env:            config.EnvLocal,
			expectedLevel:  slog.LevelDebug,
			expectedPretty: true,
		},
		{
			name:           "dev environment",
			env:            config.EnvDev,
			expectedLevel:  slog.LevelDebug,
			expectedPretty: false,
		},
		{
			name:           "prod environment",
			env:            config.EnvProd,
			expectedLevel:  slog.LevelInfo,
			expectedPretty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.expectedLevel <= slog.LevelInfo, logger.Enabled(ctx, slog.LevelInfo))

			_, pretty := logger.Handler().(*prettyHandler)
			assert.Equal(t, tt.expectedPretty, pretty)
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestNewWithLevel(t *testing.T) {
	ctx := context.Background()

	// явный уровень важнее окружения
	warn := NewWithLevel(config.EnvLocal, "warn")
	assert.False(t, warn.Enabled(ctx, slog.LevelInfo))
	assert.True(t, warn.Enabled(ctx, slog.LevelWarn))

	debug := NewWithLevel(config.EnvProd, "DEBUG")
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))

	// неизвестный уровень игнорируется
	fallback := NewWithLevel(config.EnvProd, "loud")
	assert.False(t, fallback.Enabled(ctx, slog.LevelDebug))
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := build(&buf, config.EnvDev, "")

	log.Info("stopwatch created", "hash", "lq8abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stopwatch created", entry["msg"])
	assert.Equal(t, "lq8abc", entry["hash"])
}

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	log := build(&buf, config.EnvLocal, "").With("component", "kv").WithGroup("op")

	log.Error("failed to write to store", "key", "k", "error", errors.New("disk full"))

	out := buf.String()
	assert.Contains(t, out, "ERROR:")
	assert.Contains(t, out, "failed to write to store")
	assert.Contains(t, out, `"component": "kv"`)
	assert.Contains(t, out, `"op.key": "k"`)
	assert.Contains(t, out, `"op.error": "disk full"`)
}
