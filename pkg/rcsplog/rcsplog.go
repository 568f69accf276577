// Package rcsplog is rcsppd's structured logger: log/slog with an optional
// rotated file sink, configured from pkg/config.LogConfig.
package rcsplog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rcspp-go/rcspp/pkg/config"
)

// Log is the process-wide logger, set by Init. It defaults to a plain
// stdout text logger so packages may log before Init runs (e.g. during flag
// parsing failures).
var Log = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init builds Log from the daemon's log configuration.
func Init(cfg config.LogConfig) {
	var lvl slog.Level
	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var writer io.Writer
	switch cfg.Output {
	case "file":
		path := cfg.FilePath
		if path == "" {
			path = "rcsppd.log"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			writer = os.Stdout
		} else {
			writer = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
				Compress:   cfg.Compress,
			}
		}
	default:
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl == slog.LevelDebug}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	Log = slog.New(handler)
}

// WithRun scopes a logger to one engine.Run invocation.
func WithRun(runID string) *slog.Logger {
	return Log.With("run_id", runID)
}

// WithPhase scopes a logger to a pipeline phase (build, preprocess, search).
func WithPhase(phase string) *slog.Logger {
	return Log.With("phase", phase)
}

func Debug(msg string, args ...any) { Log.Debug(msg, args...) }
func Info(msg string, args ...any)  { Log.Info(msg, args...) }
func Warn(msg string, args ...any)  { Log.Warn(msg, args...) }
func Error(msg string, args ...any) { Log.Error(msg, args...) }

// Fatal logs at error level then exits the process; reserved for
// unrecoverable startup failures in cmd/rcsppd.
func Fatal(msg string, args ...any) {
	Log.Error(msg, args...)
	os.Exit(1)
}
