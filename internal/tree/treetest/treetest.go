// Package treetest provides helpers for writing tree literals in tests.
package treetest

import (
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"

	"github.com/danieljhkim/transheet/internal/tree"
)

// New builds a tree from alternating keys and values. A value is either a
// string (leaf) or a *tree.Tree (branch). It panics on malformed input.
//
//	treetest.New("b", "2", "a", treetest.New("c", "3"))
func New(kv ...any) *tree.Tree {
	if len(kv)%2 != 0 {
		panic("treetest.New: odd number of arguments")
	}
	t := tree.New()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("treetest.New: key %v is %T, want string", kv[i], kv[i]))
		}
		switch v := kv[i+1].(type) {
		case string:
			t.SetLeaf(key, v)
		case *tree.Tree:
			t.Set(key, tree.Branch(v))
		default:
			panic(fmt.Sprintf("treetest.New: value for %q is %T", key, v))
		}
	}
	return t
}

// AssertEqual fails the test when the trees differ in keys, order or values.
func AssertEqual(t testing.TB, want, got *tree.Tree) bool {
	t.Helper()
	if want.Equal(got) {
		return true
	}
	return assert.Fail(t, "trees differ",
		"want: %s\ngot:  %s\nentries:\n%s", want, got, spew.Sdump(tree.Entries(got)))
}
