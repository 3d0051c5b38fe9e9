package convert

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/danieljhkim/transheet/internal/sheet"
	"github.com/danieljhkim/transheet/internal/tree"
)

// ErrMissingDomain indicates a row with an empty domain cell.
var ErrMissingDomain = errors.New("row has no domain")

// BuildStats counts what a TreeBuilder did.
type BuildStats struct {
	// Rows is the number of rows added.
	Rows int

	// Leaves is the number of (row, locale) values merged into trees.
	Leaves int

	// EmptySkipped is the number of empty values left out.
	EmptySkipped int

	// Duplicates is the number of values dropped because an earlier row
	// already held the same identifier.
	Duplicates int

	// ShapeConflicts is the number of values dropped because the identifier
	// collides with a group of keys, or the reverse.
	ShapeConflicts int
}

// TreeBuilder accumulates table rows into one tree per (domain, locale).
// A builder serves a single conversion.
type TreeBuilder struct {
	includeEmpty bool
	catalog      *Catalog
	log          *zap.Logger
	stats        BuildStats
}

// NewTreeBuilder creates a builder. When includeEmpty is false, empty cells
// are left out of the trees. log may be nil.
func NewTreeBuilder(includeEmpty bool, log *zap.Logger) *TreeBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &TreeBuilder{
		includeEmpty: includeEmpty,
		catalog:      NewCatalog(),
		log:          log,
	}
}

// Add merges one row into the catalog. Earlier rows win on identifier
// collisions within a (domain, locale).
func (b *TreeBuilder) Add(row *sheet.Row) error {
	b.stats.Rows++

	domain := row.Domain()
	if domain == "" {
		return fmt.Errorf("row %d: %w (id %q)", b.stats.Rows, ErrMissingDomain, row.ID())
	}
	path, err := tree.ParsePath(row.ID())
	if err != nil {
		return fmt.Errorf("row %d in domain %q: %w", b.stats.Rows, domain, err)
	}

	for _, locale := range row.Locales() {
		if b.catalog.Registry().Register(locale) && !ValidTag(locale) {
			b.log.Warn("locale column is not a BCP 47 language tag", zap.String("locale", locale))
		}
		acc := b.catalog.Ensure(domain, locale)

		value := row.Value(locale)
		if value == "" && !b.includeEmpty {
			b.stats.EmptySkipped++
			continue
		}

		branch, err := tree.Expand(path, value)
		if err != nil {
			return fmt.Errorf("row %d in domain %q: %w", b.stats.Rows, domain, err)
		}
		before := b.stats.Duplicates + b.stats.ShapeConflicts
		acc.MergeFrom(branch, b.conflictFunc(domain, locale))
		if b.stats.Duplicates+b.stats.ShapeConflicts == before {
			b.stats.Leaves++
		}
	}
	return nil
}

func (b *TreeBuilder) conflictFunc(domain, locale string) tree.ConflictFunc {
	return func(c tree.Conflict) {
		fields := []zap.Field{
			zap.String("domain", domain),
			zap.String("locale", locale),
			zap.String("id", c.Path.String()),
		}
		if c.ShapeMismatch() {
			b.stats.ShapeConflicts++
			b.log.Warn("translation dropped: identifier is both a value and a group",
				append(fields, zap.Stringer("kept", c.Kept), zap.Stringer("dropped", c.Dropped))...)
			return
		}
		b.stats.Duplicates++
		b.log.Debug("duplicate identifier, keeping the first value", fields...)
	}
}

// Catalog returns the trees built so far.
func (b *TreeBuilder) Catalog() *Catalog {
	return b.catalog
}

// Stats returns the counters collected so far.
func (b *TreeBuilder) Stats() BuildStats {
	return b.stats
}

// BuildTrees reads every row of src into a fresh catalog.
func BuildTrees(src sheet.Source, includeEmpty bool, log *zap.Logger) (*Catalog, error) {
	b := NewTreeBuilder(includeEmpty, log)
	if err := b.AddAll(src); err != nil {
		return nil, err
	}
	return b.Catalog(), nil
}

// AddAll adds every row of src.
func (b *TreeBuilder) AddAll(src sheet.Source) error {
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read row %d: %w", b.stats.Rows+1, err)
		}
		if err := b.Add(row); err != nil {
			return err
		}
	}
}
