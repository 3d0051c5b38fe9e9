package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/transheet/internal/codec"
	"github.com/danieljhkim/transheet/internal/convert"
	"github.com/danieljhkim/transheet/internal/tree"
)

// documentSet is the decoded content of a documents directory.
type documentSet struct {
	catalog   *convert.Catalog
	documents []DocumentInfo
	skipped   []SkippedDocument
}

func (e *Engine) codecFor(ext string) (codec.Codec, error) {
	c, err := codec.ForExtension(ext, e.settings.Documents.Indent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return c, nil
}

// loadDocuments decodes every <domain>.<locale>.<ext> file in dir, in file
// name order. Documents that fail to decode, or whose keys are empty or
// contain the identifier separator, are logged and skipped; a badly named
// document fails the whole load.
func (e *Engine) loadDocuments(ctx context.Context, dir, ext string) (*documentSet, error) {
	cdc, err := e.codecFor(ext)
	if err != nil {
		return nil, err
	}

	paths, err := e.fs.Glob(dir, "*."+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	set := &documentSet{
		catalog:   convert.NewCatalog(),
		documents: []DocumentInfo{},
		skipped:   []SkippedDocument{},
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		domain, locale, err := ParseDocumentName(path, ext)
		if err != nil {
			return nil, err
		}

		data, err := e.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		t, err := cdc.Decode(data)
		if err == nil {
			// Keys must survive the trip through dotted identifiers.
			err = tree.ValidateKeys(t)
		}
		if err != nil {
			e.log.Warn("document skipped", zap.String("path", path), zap.Error(err))
			set.skipped = append(set.skipped, SkippedDocument{Path: path, Reason: err.Error()})
			continue
		}

		if !convert.ValidTag(locale) && !set.catalog.Registry().Contains(locale) {
			e.log.Warn("locale is not a BCP 47 language tag", zap.String("locale", locale), zap.String("path", path))
		}
		set.catalog.Put(domain, locale, t)
		set.documents = append(set.documents, DocumentInfo{
			Domain: domain,
			Locale: locale,
			Path:   path,
			Leaves: t.LeafCount(),
		})
		e.log.Debug("document read", zap.String("path", path), zap.Int("leaves", t.LeafCount()))
	}
	return set, nil
}
