// Package logging provides the application logger. The TUI owns the
// terminal, so nothing is written anywhere by default; -verbose sends
// structured logs to a per-day file under the temp directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
)

// L returns the application logger. Safe to call before Init.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init configures logging. With verbose off it stays a no-op logger.
// With verbose on, debug-level logs go to geotask_YYYY-MM-DD.log in the
// system temp directory.
func Init(verbose bool) error {
	if !verbose {
		return nil
	}

	name := fmt.Sprintf("geotask_%s.log", time.Now().Format("2006-01-02"))
	path := filepath.Join(os.TempDir(), name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	logFile = f
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	logger.Info("verbose logging enabled", "file", path)
	return nil
}

// Close flushes and closes the log file if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
