package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fitcoach/internal/config"
)

// New builds a zap logger from the [log] section. Output goes to stderr.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	zc, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}
	return zc.Build()
}

// NewFile is New with output redirected to a file, for the TUI where
// stderr writes would corrupt the alternate screen.
func NewFile(cfg config.LogConfig, path string) (*zap.Logger, error) {
	zc, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func buildConfig(cfg config.LogConfig) (zap.Config, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("parsing log level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	return zc, nil
}
