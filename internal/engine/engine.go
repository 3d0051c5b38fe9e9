// Package engine provides the conversions behind the transheet commands.
//
// The engine package acts as the orchestration layer between CLI commands and
// the lower-level packages. It reads documents and tables, runs the tree
// conversions, plans the outputs and writes them.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Export: documents directory -> one table file
//   - Import: table file -> documents directory
//   - Inspect: read-only summary of a documents directory
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/transheet/internal/clock"
	"github.com/danieljhkim/transheet/internal/config"
	"github.com/danieljhkim/transheet/internal/fsops"
	"github.com/danieljhkim/transheet/internal/hash"
	"github.com/danieljhkim/transheet/internal/planner"
)

const filePerm = 0644

// Engine orchestrates all transheet operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	hasher   hash.Hasher
	clock    clock.Clock
	log      *zap.Logger
	settings config.Settings
}

// New creates a new Engine with the given dependencies. A nil log discards
// all messages.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	log *zap.Logger,
	settings config.Settings,
) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		fs:       fs,
		hasher:   hasher,
		clock:    clk,
		log:      log,
		settings: settings,
	}
}

// Settings returns the settings the engine was created with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// executePlan writes every OpWrite operation of plan and returns the
// operations that were executed.
func (e *Engine) executePlan(ctx context.Context, plan *planner.WritePlan) ([]planner.Operation, error) {
	applied := []planner.Operation{}
	for _, op := range plan.Operations {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		switch op.Type {
		case planner.OpUnchanged:
			e.log.Debug("file unchanged", zap.String("path", op.DestPath))
			continue
		case planner.OpWrite:
			if err := e.fs.AtomicWrite(op.DestPath, op.Data, filePerm); err != nil {
				return applied, fmt.Errorf("failed to write %s: %w", op.DestPath, err)
			}
			e.log.Info("file written", zap.String("path", op.DestPath), zap.Int("bytes", len(op.Data)))
			applied = append(applied, op)
		default:
			return applied, fmt.Errorf("unknown operation type: %s", op.Type)
		}
	}
	return applied, nil
}

// requireSource returns ErrSourceNotFound unless path exists and is a
// directory (wantDir) or a regular file.
func (e *Engine) requireSource(path string, wantDir bool) error {
	info, err := e.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if wantDir && !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrValidation, path)
	}
	if !wantDir && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrValidation, path)
	}
	return nil
}

// extension returns the requested document extension, or the configured
// one when ext is empty.
func (e *Engine) extension(ext string) (string, error) {
	if ext == "" {
		return e.settings.Documents.Extension, nil
	}
	if err := config.ValidateExtension(ext); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return ext, nil
}
