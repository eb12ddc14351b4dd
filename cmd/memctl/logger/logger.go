// Package logger holds memctl's process-wide slog logger. Logging is off
// until Init enables it, so library debug records cost nothing by default.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger. It discards everything until Init is called
// with Enabled set.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	logPrefix    = "memctl-"
	logSuffix    = ".log"
	retainLogs   = 30 * 24 * time.Hour
	fileNameDate = "2006-01-02"
)

// Options configures Init.
type Options struct {
	Enabled bool       // leave false to keep logging disabled
	LogDir  string     // log directory, default ~/.memctl/logs
	Level   slog.Level // minimum level, default slog.LevelInfo
}

// Init points L at a dated log file under the log directory, pruning
// files older than the retention window. With Enabled false it resets L
// to the discarding logger.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	dir := opts.LogDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving log dir: %w", err)
		}
		dir = filepath.Join(home, ".memctl", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	prune(dir)

	name := logPrefix + time.Now().Format(fileNameDate) + logSuffix
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

// prune removes log files past the retention window. Best effort.
func prune(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > retainLogs {
			os.Remove(filepath.Join(dir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
