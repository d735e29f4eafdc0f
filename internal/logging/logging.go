// Package logging builds the application zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"docsum/internal/config"
)

// New returns a production (json) or development (console) logger writing
// to cfg.Output at cfg.Level.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	var zc zap.Config
	switch cfg.Format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	case "json", "":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log format: %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// ForTerminalUI silences loggers that would write over the full-screen UI.
func ForTerminalUI(cfg config.LogConfig, logger *zap.Logger) *zap.Logger {
	if cfg.Output == "" || cfg.Output == "stderr" || cfg.Output == "stdout" {
		return zap.NewNop()
	}
	return logger
}
