package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/transheet/internal/tree"
	"github.com/danieljhkim/transheet/internal/tree/treetest"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name      string
		primary   *tree.Tree
		secondary *tree.Tree
		want      *tree.Tree
	}{
		{
			name:      "left bias on leaves",
			primary:   treetest.New("a", "1"),
			secondary: treetest.New("a", "2"),
			want:      treetest.New("a", "1"),
		},
		{
			name:      "recurses into branches",
			primary:   treetest.New("a", treetest.New("x", "1")),
			secondary: treetest.New("a", treetest.New("y", "2")),
			want:      treetest.New("a", treetest.New("x", "1", "y", "2")),
		},
		{
			name:      "keys only in secondary are appended",
			primary:   treetest.New("b", "1"),
			secondary: treetest.New("a", "2", "c", treetest.New("d", "3")),
			want:      treetest.New("b", "1", "a", "2", "c", treetest.New("d", "3")),
		},
		{
			name:      "primary leaf beats secondary branch",
			primary:   treetest.New("a", "1"),
			secondary: treetest.New("a", treetest.New("x", "2")),
			want:      treetest.New("a", "1"),
		},
		{
			name:      "primary branch beats secondary leaf",
			primary:   treetest.New("a", treetest.New("x", "1")),
			secondary: treetest.New("a", "2"),
			want:      treetest.New("a", treetest.New("x", "1")),
		},
		{
			name:      "empty primary",
			primary:   tree.New(),
			secondary: treetest.New("a", "1"),
			want:      treetest.New("a", "1"),
		},
		{
			name:      "nil secondary",
			primary:   treetest.New("a", "1"),
			secondary: nil,
			want:      treetest.New("a", "1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			treetest.AssertEqual(t, tt.want, tree.Merge(tt.primary, tt.secondary))
		})
	}
}

func TestMerge_Idempotent(t *testing.T) {
	tr := treetest.New("a", treetest.New("x", "1", "y", treetest.New("z", "2")), "b", "3")

	treetest.AssertEqual(t, tr, tree.Merge(tr, tr))
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	primary := treetest.New("a", treetest.New("x", "1"))
	secondary := treetest.New("a", treetest.New("y", "2"))

	merged := tree.Merge(primary, secondary)
	n, _ := merged.Get("a")
	n.Tree().SetLeaf("z", "3")

	assert.Equal(t, `{a: {x: "1"}}`, primary.String())
	assert.Equal(t, `{a: {y: "2"}}`, secondary.String())
}

func TestMerge_NotCommutative(t *testing.T) {
	a := treetest.New("k", "1")
	b := treetest.New("k", "2")

	assert.False(t, tree.Merge(a, b).Equal(tree.Merge(b, a)))
}

func TestMergeFrom_ReportsConflicts(t *testing.T) {
	acc := treetest.New("home", treetest.New("title", "Home"), "footer", "Bye")

	var conflicts []tree.Conflict
	acc.MergeFrom(treetest.New(
		"home", treetest.New("title", treetest.New("short", "H")),
		"footer", "Later",
	), func(c tree.Conflict) {
		conflicts = append(conflicts, c)
	})

	require.Len(t, conflicts, 2)

	assert.Equal(t, "home.title", conflicts[0].Path.String())
	assert.Equal(t, tree.KindLeaf, conflicts[0].Kept)
	assert.Equal(t, tree.KindBranch, conflicts[0].Dropped)
	assert.True(t, conflicts[0].ShapeMismatch())

	assert.Equal(t, "footer", conflicts[1].Path.String())
	assert.False(t, conflicts[1].ShapeMismatch())

	treetest.AssertEqual(t, treetest.New("home", treetest.New("title", "Home"), "footer", "Bye"), acc)
}

func TestMergeFrom_CopiesIncomingBranches(t *testing.T) {
	acc := tree.New()
	incoming := treetest.New("a", treetest.New("b", "1"))
	acc.MergeFrom(incoming, nil)

	n, _ := incoming.Get("a")
	n.Tree().SetLeaf("c", "2")

	assert.Equal(t, `{a: {b: "1"}}`, acc.String())
}
