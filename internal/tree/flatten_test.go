package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/transheet/internal/tree"
	"github.com/danieljhkim/transheet/internal/tree/treetest"
)

func ids(entries []tree.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID()+"="+e.Value)
	}
	return out
}

func TestFlatten_InsertionOrder(t *testing.T) {
	tr := treetest.New("b", "2", "a", treetest.New("c", "3"))

	assert.Equal(t, []string{"b=2", "a.c=3"}, ids(tree.Entries(tr)))
}

func TestFlatten_DepthFirst(t *testing.T) {
	tr := treetest.New(
		"x", treetest.New(
			"y", treetest.New("z", "1"),
			"w", "2",
		),
		"v", "3",
		"u", treetest.New("t", "4"),
	)

	assert.Equal(t, []string{"x.y.z=1", "x.w=2", "v=3", "u.t=4"}, ids(tree.Entries(tr)))
}

func TestFlatten_EmptyBranchYieldsNothing(t *testing.T) {
	tr := treetest.New("a", treetest.New(), "b", "")

	assert.Equal(t, []string{"b="}, ids(tree.Entries(tr)))
	assert.Empty(t, tree.Entries(tree.New()))
	assert.Empty(t, tree.Entries(nil))
}

func TestFlatten_Restartable(t *testing.T) {
	seq := tree.Flatten(treetest.New("a", "1", "b", treetest.New("c", "2")))

	var first, second []string
	for p, v := range seq {
		first = append(first, p.String()+"="+v)
	}
	for p, v := range seq {
		second = append(second, p.String()+"="+v)
	}
	assert.Equal(t, first, second)
}

func TestFlatten_EarlyStop(t *testing.T) {
	tr := treetest.New("a", treetest.New("b", "1", "c", "2"), "d", "3")

	var seen []string
	for p := range tree.Flatten(tr) {
		seen = append(seen, p.String())
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.b", "a.c"}, seen)
}

func TestFlatten_PathsAreIndependent(t *testing.T) {
	tr := treetest.New("a", treetest.New("b", "1", "c", "2"))

	var paths []tree.Path
	for p := range tree.Flatten(tr) {
		paths = append(paths, p)
	}
	require.Len(t, paths, 2)
	assert.Equal(t, "a.b", paths[0].String())
	assert.Equal(t, "a.c", paths[1].String())
}

// Rebuilding a tree from its flattened leaves reproduces it exactly.
func TestFlatten_RoundTripThroughExpandAndMerge(t *testing.T) {
	orig := treetest.New(
		"home", treetest.New(
			"title", "Home",
			"menu", treetest.New("open", "Open", "close", "Close"),
		),
		"footer", "Bye",
		"about", treetest.New("team", treetest.New("lead", "Ann")),
	)

	var acc *tree.Tree
	for p, v := range tree.Flatten(orig) {
		branch, err := tree.Expand(p, v)
		require.NoError(t, err)
		if acc == nil {
			acc = branch
			continue
		}
		acc = tree.Merge(acc, branch)
	}

	treetest.AssertEqual(t, orig, acc)
}
