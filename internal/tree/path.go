package tree

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins the segments of a dotted identifier.
const Separator = "."

// ErrInvalidPath is returned for identifiers that do not resolve to a
// non-empty sequence of non-empty segments.
var ErrInvalidPath = errors.New("invalid path")

// Path locates a leaf within a tree, one key per level.
type Path []string

// ParsePath splits a dotted identifier into a Path.
func ParsePath(id string) (Path, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidPath)
	}

	parts := strings.Split(id, Separator)
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, id)
		}
	}

	return Path(parts), nil
}

// String joins the segments with Separator.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Child returns a new path with key appended. The receiver is not modified.
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// Expand builds the single-branch tree {p0: {p1: {... {pn: value}}}}.
func Expand(path Path, value string) (*Tree, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrInvalidPath)
	}

	// Built leaf-first so every level is a fresh tree.
	node := Leaf(value)
	for i := len(path) - 1; i > 0; i-- {
		level := New()
		level.Set(path[i], node)
		node = Branch(level)
	}

	root := New()
	root.Set(path[0], node)
	return root, nil
}

// ValidateKeys checks that every key of t, at any depth, can be a segment of
// a dotted identifier: non-empty and free of Separator. Such trees flatten
// to identifiers that ParsePath accepts and that never collide.
func ValidateKeys(t *Tree) error {
	return validateKeys(t, nil)
}

func validateKeys(t *Tree, prefix Path) error {
	for _, key := range t.Keys() {
		if key == "" || strings.Contains(key, Separator) {
			where := "at top level"
			if len(prefix) > 0 {
				where = "under " + prefix.String()
			}
			return fmt.Errorf("%w: key %q %s cannot be part of an identifier", ErrInvalidPath, key, where)
		}
		n, _ := t.Get(key)
		if n.IsBranch() {
			if err := validateKeys(n.Tree(), prefix.Child(key)); err != nil {
				return err
			}
		}
	}
	return nil
}
