package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/danieljhkim/transheet/internal/clock"
	"github.com/danieljhkim/transheet/internal/config"
	"github.com/danieljhkim/transheet/internal/engine"
	"github.com/danieljhkim/transheet/internal/fsops"
	"github.com/danieljhkim/transheet/internal/hash"
	"github.com/danieljhkim/transheet/internal/logging"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	settings, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(settings)
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}

	return engine.New(fs, hasher, clk, log, settings), nil
}

// newLogger picks the level from --log-level, then $TRANSHEET_LOG_LEVEL,
// then the settings file.
func newLogger(settings config.Settings) (*zap.Logger, error) {
	level := logging.ResolveLevel(logLevel)
	if level == "" {
		level = settings.Log.Level
	}
	log, err := logging.New(level, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log, nil
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
