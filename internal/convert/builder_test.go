package convert_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danieljhkim/transheet/internal/convert"
	"github.com/danieljhkim/transheet/internal/sheet"
	"github.com/danieljhkim/transheet/internal/tree"
	"github.com/danieljhkim/transheet/internal/tree/treetest"
)

func row(kv ...string) *sheet.Row {
	r := sheet.NewRow()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

func build(t *testing.T, includeEmpty bool, rows ...*sheet.Row) *convert.Catalog {
	t.Helper()
	c, err := convert.BuildTrees(sheet.NewSliceSource(rows), includeEmpty, nil)
	require.NoError(t, err)
	return c
}

func TestBuildTrees_SkipsEmptyValues(t *testing.T) {
	c := build(t, false, row("domain", "app", "id", "home.title", "en", "Home", "cs", ""))

	en, ok := c.Tree("app", "en")
	require.True(t, ok)
	treetest.AssertEqual(t, treetest.New("home", treetest.New("title", "Home")), en)

	docs := c.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "app", docs[0].Domain)
	assert.Equal(t, "en", docs[0].Locale)

	gated := c.Gated()
	require.Len(t, gated, 1)
	assert.Equal(t, "cs", gated[0].Locale)
	assert.True(t, gated[0].Tree.IsEmpty())

	// The empty column still takes part in column order.
	assert.Equal(t, []string{"en", "cs"}, c.Locales())
}

func TestBuildTrees_IncludeEmpty(t *testing.T) {
	c := build(t, true, row("domain", "app", "id", "home.title", "en", "Home", "cs", ""))

	cs, ok := c.Tree("app", "cs")
	require.True(t, ok)
	treetest.AssertEqual(t, treetest.New("home", treetest.New("title", "")), cs)
	assert.Len(t, c.Documents(), 2)
	assert.Empty(t, c.Gated())
}

func TestBuildTrees_FirstRowWins(t *testing.T) {
	c := build(t, false,
		row("domain", "app", "id", "a.b", "en", "first"),
		row("domain", "app", "id", "a.c", "en", "second"),
		row("domain", "app", "id", "a.b", "en", "third"),
		row("domain", "web", "id", "a.b", "en", "other domain"),
	)

	app, _ := c.Tree("app", "en")
	treetest.AssertEqual(t, treetest.New("a", treetest.New("b", "first", "c", "second")), app)
	web, _ := c.Tree("web", "en")
	treetest.AssertEqual(t, treetest.New("a", treetest.New("b", "other domain")), web)
	assert.Equal(t, []string{"app", "web"}, c.Domains())
}

func TestTreeBuilder_ShapeConflictIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := convert.NewTreeBuilder(false, zap.New(core))

	require.NoError(t, b.Add(row("domain", "app", "id", "menu", "en", "Menu")))
	require.NoError(t, b.Add(row("domain", "app", "id", "menu.open", "en", "Open")))
	require.NoError(t, b.Add(row("domain", "app", "id", "menu", "en", "Again")))

	got, _ := b.Catalog().Tree("app", "en")
	treetest.AssertEqual(t, treetest.New("menu", "Menu"), got)

	stats := b.Stats()
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1, stats.Leaves)
	assert.Equal(t, 1, stats.ShapeConflicts)
	assert.Equal(t, 1, stats.Duplicates)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, "menu", fields["id"])
	assert.Equal(t, "en", fields["locale"])
	assert.Equal(t, "leaf", fields["kept"])
	assert.Equal(t, "branch", fields["dropped"])

	assert.Equal(t, 1, logs.FilterMessageSnippet("duplicate identifier").Len())
}

func TestTreeBuilder_WarnsOnOddLocaleOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := convert.NewTreeBuilder(false, zap.New(core))

	require.NoError(t, b.Add(row("domain", "app", "id", "a", "en_US", "x", "not a locale!", "y")))
	require.NoError(t, b.Add(row("domain", "app", "id", "b", "en_US", "x", "not a locale!", "y")))

	entries := logs.FilterField(zap.String("locale", "not a locale!")).All()
	assert.Len(t, entries, 1)
	assert.Zero(t, logs.FilterField(zap.String("locale", "en_US")).Len())
}

func TestTreeBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  *sheet.Row
		want error
	}{
		{"empty id", row("domain", "app", "id", "", "en", "x"), tree.ErrInvalidPath},
		{"empty segment", row("domain", "app", "id", "a..b", "en", "x"), tree.ErrInvalidPath},
		{"empty domain", row("domain", "", "id", "a", "en", "x"), convert.ErrMissingDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := convert.NewTreeBuilder(false, nil)
			err := b.Add(tt.row)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "row 1")
		})
	}
}

type failingSource struct {
	rows []*sheet.Row
	err  error
}

func (f *failingSource) Next() (*sheet.Row, error) {
	if len(f.rows) == 0 {
		return nil, f.err
	}
	r := f.rows[0]
	f.rows = f.rows[1:]
	return r, nil
}

func TestBuildTrees_SourceError(t *testing.T) {
	boom := errors.New("boom")
	src := &failingSource{rows: []*sheet.Row{row("domain", "app", "id", "a", "en", "x")}, err: boom}

	c, err := convert.BuildTrees(src, false, nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "row 2")
	assert.Nil(t, c)
}

func TestBuildTrees_FreshRegistryPerCall(t *testing.T) {
	first := build(t, false, row("domain", "app", "id", "a", "de", "x", "en", "y"))
	second := build(t, false, row("domain", "app", "id", "a", "en", "y"))

	assert.Equal(t, []string{"de", "en"}, first.Locales())
	assert.Equal(t, []string{"en"}, second.Locales())
}
