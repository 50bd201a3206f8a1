package store

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// Config holds the settings for the underlying key-value database.
type Config struct {
	// Dir is the directory for the database files. Required unless InMemory.
	Dir string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool

	// SyncWrites makes every mutation hit disk before returning.
	SyncWrites bool

	// Logger receives store and database events. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the settings used by the application:
// durable synchronous writes, single version per key.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:        dir,
		SyncWrites: true,
	}
}

// InMemoryConfig returns settings for tests: no disk I/O, no sync.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// openDB opens the BadgerDB instance described by cfg, creating the
// directory if needed.
func openDB(cfg Config) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, fmt.Errorf("store: directory is required for a persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store database: %w", err)
	}
	return db, nil
}
