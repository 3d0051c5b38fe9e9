package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/transheet/internal/convert"
)

// Inspect summarizes a documents directory without writing anything.
func (e *Engine) Inspect(ctx context.Context, req *InspectRequest) (*InspectResult, error) {
	if req.DocsDir == "" {
		return nil, fmt.Errorf("%w: documents directory is required", ErrValidation)
	}
	if err := e.requireSource(req.DocsDir, true); err != nil {
		return nil, err
	}

	ext, err := e.extension(req.Extension)
	if err != nil {
		return nil, err
	}
	set, err := e.loadDocuments(ctx, req.DocsDir, ext)
	if err != nil {
		return nil, err
	}

	locales := set.catalog.Locales()
	ids := convert.CollectIDs(set.catalog)

	domains := make([]DomainSummary, 0, len(ids))
	for _, d := range ids {
		summary := DomainSummary{
			Domain:  d.Domain,
			Locales: map[string]int{},
			IDs:     len(d.IDs),
		}
		for _, locale := range locales {
			t, ok := set.catalog.Tree(d.Domain, locale)
			if !ok {
				summary.Missing = append(summary.Missing, locale)
				continue
			}
			summary.Locales[locale] = t.LeafCount()
		}
		domains = append(domains, summary)
	}

	return &InspectResult{
		Dir:       req.DocsDir,
		Locales:   locales,
		Domains:   domains,
		Documents: set.documents,
		Skipped:   set.skipped,
	}, nil
}
