// Package logger provides structured debug logging scoped by functional area.
//
// Each subsystem logs under its own area (ollama, history, batch, and so on)
// so noisy areas can be silenced independently while debugging. Output goes
// to a log file under the data directory when debug is enabled, and is a
// no-op otherwise.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Area identifies a logging subsystem.
type Area string

const (
	AreaGeneral  Area = "general"
	AreaOllama   Area = "ollama"
	AreaHistory  Area = "history"
	AreaBatch    Area = "batch"
	AreaSnippets Area = "snippets"
	AreaPreview  Area = "preview"
	AreaStorage  Area = "storage"
)

// Logger wraps a zap sugared logger with per-area filtering.
type Logger struct {
	mu       sync.RWMutex
	sugar    *zap.SugaredLogger
	disabled map[Area]bool
}

// New builds a debug logger writing to logs/debug.log under dataDir.
// When debug is false all log calls are discarded.
func New(dataDir string, debug bool) (*Logger, error) {
	if !debug {
		return Nop(), nil
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{filepath.Join(logDir, "debug.log")}
	cfg.ErrorOutputPaths = []string{filepath.Join(logDir, "debug.log")}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		sugar:    zapLogger.Sugar(),
		disabled: parseDisabledAreas(os.Getenv("FLIPFLOP_LOG_DISABLE")),
	}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{
		sugar:    zap.NewNop().Sugar(),
		disabled: map[Area]bool{},
	}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// SetAreaEnabled toggles logging for a single area.
func (l *Logger) SetAreaEnabled(area Area, enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disabled[area] = !enabled
}

func (l *Logger) areaOff(area Area) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.disabled[area]
}

// Debug logs a debug entry for the given area.
func (l *Logger) Debug(area Area, msg string, keysAndValues ...interface{}) {
	if l.areaOff(area) {
		return
	}
	l.sugar.Debugw(msg, append([]interface{}{"area", string(area)}, keysAndValues...)...)
}

// Info logs an info entry for the given area.
func (l *Logger) Info(area Area, msg string, keysAndValues ...interface{}) {
	if l.areaOff(area) {
		return
	}
	l.sugar.Infow(msg, append([]interface{}{"area", string(area)}, keysAndValues...)...)
}

// Warn logs a warning entry for the given area.
func (l *Logger) Warn(area Area, msg string, keysAndValues ...interface{}) {
	if l.areaOff(area) {
		return
	}
	l.sugar.Warnw(msg, append([]interface{}{"area", string(area)}, keysAndValues...)...)
}

// Error logs an error entry for the given area.
func (l *Logger) Error(area Area, msg string, keysAndValues ...interface{}) {
	if l.areaOff(area) {
		return
	}
	l.sugar.Errorw(msg, append([]interface{}{"area", string(area)}, keysAndValues...)...)
}

// parseDisabledAreas reads a comma-separated area list, e.g. "ollama,batch".
func parseDisabledAreas(raw string) map[Area]bool {
	disabled := make(map[Area]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		disabled[Area(part)] = true
	}
	return disabled
}
