package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"multistopwatch/internal/config"
)

// New создает логгер под окружение: local - цветной вывод, dev/prod - JSON
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel делает то же, что New, но явный уровень (debug|info|warn|error)
// имеет приоритет над уровнем окружения
func NewWithLevel(env, level string) *slog.Logger {
	return build(os.Stderr, env, level)
}

func build(out io.Writer, env, level string) *slog.Logger {
	lvl := envLevel(env)
	if parsed, ok := parseLevel(level); ok {
		lvl = parsed
	}

	switch env {
	case config.EnvProd, config.EnvDev:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl}))
	default:
		return slog.New(newPrettyHandler(out, &slog.HandlerOptions{Level: lvl}))
	}
}

func envLevel(env string) slog.Level {
	if env == config.EnvProd {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}

func setupPrettySlog() *slog.Logger {
	return slog.New(newPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
