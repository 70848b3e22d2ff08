// Package logging keeps a process-wide registry of named zap loggers.
// Every module asks for its logger by name; the same configured instance
// is returned on every call instead of being rebuilt ad hoc.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config carries the only two knobs: minimum level and an optional
// shared log file. Console output is always enabled.
type Config struct {
	Level string
	File  string
}

var (
	mu       sync.Mutex
	root     *zap.Logger
	registry = make(map[string]*zap.Logger)
)

// Setup builds the root logger from cfg. It must be called once at
// startup, before any Named lookups happen on the hot path; calling it
// again replaces the root and drops cached named loggers.
func Setup(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level))
	}

	mu.Lock()
	defer mu.Unlock()
	root = zap.New(zapcore.NewTee(cores...))
	registry = make(map[string]*zap.Logger)
	return nil
}

// Named returns the configured logger for the given module name,
// creating and caching it on first use. Safe to call before Setup;
// a default info-level console logger is used until then.
func Named(name string) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := registry[name]; ok {
		return l
	}
	if root == nil {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		root = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), zapcore.InfoLevel))
	}
	l := root.Named(name)
	registry[name] = l
	return l
}
