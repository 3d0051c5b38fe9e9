package engine

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/transheet/internal/clock"
	"github.com/danieljhkim/transheet/internal/convert"
	"github.com/danieljhkim/transheet/internal/planner"
	"github.com/danieljhkim/transheet/internal/sheet"
)

// Export converts a directory of documents into one table file.
//
// Algorithm steps:
// 1. Check that the documents directory exists
// 2. Decode every document, skipping the ones that do not decode
// 3. Reconcile identifiers across locales and emit rows
// 4. Render the whole table in memory
// 5. Plan the write (unchanged tables are not rewritten)
// 6. Write the table atomically (if not DryRun)
func (e *Engine) Export(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	start := e.clock.Now()

	if req.DocsDir == "" || req.TablePath == "" {
		return nil, fmt.Errorf("%w: documents directory and table path are required", ErrValidation)
	}
	if err := e.requireSource(req.DocsDir, true); err != nil {
		return nil, err
	}
	format, err := sheet.FormatFromPath(req.TablePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ext, err := e.extension(req.Extension)
	if err != nil {
		return nil, err
	}
	set, err := e.loadDocuments(ctx, req.DocsDir, ext)
	if err != nil {
		return nil, err
	}

	rows := convert.TreesToRows(set.catalog)
	locales := set.catalog.Locales()
	data, err := e.renderTable(format, req.Sheet, locales, rows)
	if err != nil {
		return nil, err
	}

	plan, err := planner.BuildWritePlan([]planner.Target{{Path: req.TablePath, Data: data}}, e.fs, e.hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to build write plan: %w", err)
	}

	result := &ExportResult{
		Plan:      plan,
		TablePath: req.TablePath,
		Documents: set.documents,
		Skipped:   set.skipped,
		Locales:   locales,
		Rows:      len(rows),
	}

	if plan.HasConflicts() {
		result.Duration = clock.Since(e.clock, start)
		return result, fmt.Errorf("%w: %s", ErrConflict, plan.Conflicts[0].Reason)
	}

	if !req.DryRun {
		applied, err := e.executePlan(ctx, plan)
		if err != nil {
			return nil, err
		}
		result.Written = len(applied) > 0
	}

	result.Duration = clock.Since(e.clock, start)
	e.log.Info("export finished",
		zap.String("table", req.TablePath),
		zap.Int("documents", len(set.documents)),
		zap.Int("skipped", len(set.skipped)),
		zap.Int("rows", len(rows)),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (e *Engine) sheetOptions(sheetName string) sheet.Options {
	if sheetName == "" {
		sheetName = e.settings.Sheet.Name
	}
	return sheet.Options{
		Sheet: sheetName,
		CSV: sheet.CSVOptions{
			Delimiter: e.settings.CSV.DelimiterRune(),
			BOM:       e.settings.CSV.BOM,
		},
	}
}

// renderTable writes the header and rows into memory.
func (e *Engine) renderTable(format sheet.Format, sheetName string, locales []string, rows []*sheet.Row) ([]byte, error) {
	var buf bytes.Buffer
	w, err := sheet.NewWriter(format, &buf, e.sheetOptions(sheetName), sheet.Header(locales))
	if err != nil {
		return nil, fmt.Errorf("failed to create table writer: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to render row %s/%s: %w", row.Domain(), row.ID(), err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to render table: %w", err)
	}
	return buf.Bytes(), nil
}
