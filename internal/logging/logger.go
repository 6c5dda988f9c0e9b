// Package logging builds the zap logger used by aidoc.
// The terminal belongs to the UI, so entries are written to a file.
// Logging is controlled by logging.debug_mode in the config - when false, nothing is written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aidoc/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem; it becomes the zap logger name.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config, shutdown
	CategorySession Category = "session" // Command dispatch
	CategoryAPI     Category = "api"     // Gemini calls
	CategoryExport  Category = "export"  // Markdown -> PDF
	CategoryBrowser Category = "browser" // Headless Chrome lifecycle
)

// New returns a logger for cfg. When logging is disabled and verbose is false it
// returns a no-op logger. verbose forces the debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	if !cfg.Enabled() && !verbose {
		return zap.NewNop(), nil
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	path := cfg.File
	if path == "" {
		path = config.DefaultConfig().Logging.File
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// For returns the named child logger for a category. A nil logger yields a no-op.
func For(l *zap.Logger, category Category) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(string(category))
}

func parseLevel(raw string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", raw)
	}
}
