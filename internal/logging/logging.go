// Package logging builds the zap logger used by the command line.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel overrides the log level when no level is given explicitly.
const EnvLevel = "TRANSHEET_LOG_LEVEL"

// DefaultLevel keeps routine conversions quiet.
const DefaultLevel = zapcore.WarnLevel

// ParseLevel maps a level name to a zap level. An empty name yields
// DefaultLevel.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return DefaultLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}

// ResolveLevel returns level, or the value of EnvLevel when level is empty.
func ResolveLevel(level string) string {
	if level != "" {
		return level
	}
	return os.Getenv(EnvLevel)
}

// New returns a console logger writing to w. A nil w means stderr.
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(ResolveLevel(level))
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}
