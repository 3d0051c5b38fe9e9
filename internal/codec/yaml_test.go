package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/transheet/internal/tree"
	"github.com/danieljhkim/transheet/internal/tree/treetest"
)

func TestYAML_DecodeKeepsOrder(t *testing.T) {
	doc := `
zebra: Z
home:
    title: Home
    menu:
        open: Open
        close: Close
apple: A
`
	got, err := NewYAML(0).Decode([]byte(doc))
	require.NoError(t, err)

	treetest.AssertEqual(t, treetest.New(
		"zebra", "Z",
		"home", treetest.New(
			"title", "Home",
			"menu", treetest.New("open", "Open", "close", "Close"),
		),
		"apple", "A",
	), got)
}

func TestYAML_DecodeScalars(t *testing.T) {
	doc := `
count: 3
flag: true
nothing: ~
blank:
quoted: ""
list:
    - first
    - second
`
	got, err := NewYAML(0).Decode([]byte(doc))
	require.NoError(t, err)

	treetest.AssertEqual(t, treetest.New(
		"count", "3",
		"flag", "true",
		"nothing", "",
		"blank", "",
		"quoted", "",
		"list", treetest.New("0", "first", "1", "second"),
	), got)
}

func TestYAML_DecodeAliases(t *testing.T) {
	doc := `
base: &b
    ok: OK
copy: *b
`
	got, err := NewYAML(0).Decode([]byte(doc))
	require.NoError(t, err)

	v, ok := got.Lookup(tree.Path{"copy", "ok"})
	require.True(t, ok)
	assert.Equal(t, "OK", v)
}

func TestYAML_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"empty", "", ErrEmptyDocument},
		{"comment only", "# nothing here\n", ErrEmptyDocument},
		{"scalar root", "just text\n", ErrNotMapping},
		{"sequence root", "- a\n- b\n", ErrNotMapping},
		{"malformed", "a: [unclosed\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAML(0).Decode([]byte(tt.doc))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestYAML_Encode(t *testing.T) {
	tr := treetest.New(
		"home", treetest.New("title", "Home", "code", "007"),
		"empty", "",
		"done", "true",
	)

	data, err := NewYAML(2).Encode(tr)
	require.NoError(t, err)

	want := "home:\n" +
		"  title: Home\n" +
		"  code: \"007\"\n" +
		"empty: \"\"\n" +
		"done: \"true\"\n"
	assert.Equal(t, want, string(data))
}

func TestYAML_RoundTrip(t *testing.T) {
	tr := treetest.New(
		"b", "second key first",
		"a", treetest.New(
			"multi", "line one\nline two",
			"colon", "a: b",
			"hash", "# not a comment",
			"null", "null",
			"num", "1.50",
		),
		"unicode", "Příliš žluťoučký kůň",
	)

	c := NewYAML(0)
	data, err := c.Encode(tr)
	require.NoError(t, err)

	got, err := c.Decode(data)
	require.NoError(t, err)
	treetest.AssertEqual(t, tr, got)
}

func TestForExtension(t *testing.T) {
	for _, ext := range []string{"yaml", ".yml", "YAML"} {
		c, err := ForExtension(ext, 0)
		require.NoError(t, err, ext)
		assert.IsType(t, &YAML{}, c)
	}
	for _, ext := range []string{"neon", ".NEON"} {
		c, err := ForExtension(ext, 0)
		require.NoError(t, err, ext)
		assert.IsType(t, &NEON{}, c)
	}

	_, err := ForExtension("json", 0)
	require.ErrorIs(t, err, ErrUnknownExtension)
}
