package engine

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/danieljhkim/transheet/internal/clock"
	"github.com/danieljhkim/transheet/internal/convert"
	"github.com/danieljhkim/transheet/internal/planner"
	"github.com/danieljhkim/transheet/internal/sheet"
)

// Import converts a table file into a directory of documents.
//
// Algorithm steps:
// 1. Check that the table exists and the output is not a file
// 2. Build one tree per (domain, locale) from the rows
// 3. Encode every non-empty tree; empty ones are gated
// 4. Plan all writes before touching the output directory
// 5. Write documents atomically (if not DryRun)
func (e *Engine) Import(ctx context.Context, req *ImportRequest) (*ImportResult, error) {
	start := e.clock.Now()

	if req.TablePath == "" || req.OutDir == "" {
		return nil, fmt.Errorf("%w: table path and output directory are required", ErrValidation)
	}
	if err := e.requireSource(req.TablePath, false); err != nil {
		return nil, err
	}
	if info, err := e.fs.Stat(req.OutDir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrValidation, req.OutDir)
	}
	format, err := sheet.FormatFromPath(req.TablePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	ext, err := e.extension(req.Extension)
	if err != nil {
		return nil, err
	}
	cdc, err := e.codecFor(ext)
	if err != nil {
		return nil, err
	}

	data, err := e.fs.ReadFile(req.TablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.TablePath, err)
	}
	src, err := sheet.NewReader(format, bytes.NewReader(data), e.sheetOptions(req.Sheet))
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", req.TablePath, err)
	}

	builder := convert.NewTreeBuilder(req.IncludeEmpty, e.log)
	if err := builder.AddAll(src); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", req.TablePath, err)
	}
	catalog := builder.Catalog()

	targets := []planner.Target{}
	for _, doc := range catalog.Documents() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.validateNames(doc.Domain, doc.Locale); err != nil {
			return nil, err
		}
		encoded, err := cdc.Encode(doc.Tree)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s/%s: %w", doc.Domain, doc.Locale, err)
		}
		targets = append(targets, planner.Target{
			Path:   filepath.Join(req.OutDir, DocumentName(doc.Domain, doc.Locale, ext)),
			Domain: doc.Domain,
			Locale: doc.Locale,
			Data:   encoded,
		})
	}

	plan, err := planner.BuildWritePlan(targets, e.fs, e.hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to build write plan: %w", err)
	}
	for _, doc := range catalog.Gated() {
		plan.AddGated(doc.Domain, doc.Locale)
		e.log.Info("document not written: no values", zap.String("domain", doc.Domain), zap.String("locale", doc.Locale))
	}

	stats := builder.Stats()
	result := &ImportResult{
		Plan:           plan,
		Applied:        []planner.Operation{},
		Unchanged:      plan.Unchanged(),
		Gated:          plan.Gated,
		Locales:        catalog.Locales(),
		Rows:           stats.Rows,
		Leaves:         stats.Leaves,
		Duplicates:     stats.Duplicates,
		ShapeConflicts: stats.ShapeConflicts,
	}

	if plan.HasConflicts() {
		result.Duration = clock.Since(e.clock, start)
		return result, fmt.Errorf("%w: %d conflicts detected", ErrConflict, len(plan.Conflicts))
	}

	if !req.DryRun {
		if err := e.fs.MkdirAll(req.OutDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		applied, err := e.executePlan(ctx, plan)
		result.Applied = applied
		if err != nil {
			result.Duration = clock.Since(e.clock, start)
			if len(applied) == 0 {
				return result, err
			}
			e.log.Warn("import stopped after a partial write",
				zap.Int("written", len(applied)),
				zap.Int("planned", len(plan.Writes())),
				zap.Error(err))
			return result, fmt.Errorf("%w (%d of %d documents written): %w",
				ErrPartialWrite, len(applied), len(plan.Writes()), err)
		}
	}

	result.Duration = clock.Since(e.clock, start)
	e.log.Info("import finished",
		zap.String("table", req.TablePath),
		zap.Int("rows", stats.Rows),
		zap.Int("written", len(result.Applied)),
		zap.Int("unchanged", len(result.Unchanged)),
		zap.Int("gated", len(result.Gated)),
		zap.Duration("duration", result.Duration))
	return result, nil
}
