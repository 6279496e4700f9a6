// Package logging builds the zap logger shared by the CLI and the HTTP server.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the verbosity selected in configuration
type Level string

const (
	LevelOff   Level = "off"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// ParseLevel accepts off, info or debug (case-insensitive); empty means info
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case "", LevelInfo:
		return LevelInfo, nil
	case LevelOff:
		return LevelOff, nil
	case LevelDebug:
		return LevelDebug, nil
	default:
		return "", fmt.Errorf("invalid log level: %s (expected off, info or debug)", s)
	}
}

// New returns a JSON logger writing to stderr. LevelOff yields a no-op logger.
func New(level Level) (*zap.Logger, error) {
	if level == LevelOff {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	if level == LevelDebug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Development = true
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("bakeplan"), nil
}
