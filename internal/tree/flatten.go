package tree

import "iter"

// Entry is one flattened leaf.
type Entry struct {
	Path  Path
	Value string
}

// ID returns the dotted identifier of the entry.
func (e Entry) ID() string {
	return e.Path.String()
}

// Flatten yields one (path, value) pair per leaf, depth-first, visiting keys
// in insertion order and finishing each branch before its next sibling.
// The sequence can be ranged over any number of times; every yielded Path is
// a fresh slice.
func Flatten(t *Tree) iter.Seq2[Path, string] {
	return func(yield func(Path, string) bool) {
		if t == nil {
			return
		}
		walk(t, nil, yield)
	}
}

// walk returns false once yield asks to stop.
func walk(t *Tree, prefix Path, yield func(Path, string) bool) bool {
	for _, key := range t.keys {
		n := t.nodes[key]
		path := prefix.Child(key)
		if n.IsBranch() {
			if !walk(n.branch, path, yield) {
				return false
			}
			continue
		}
		if !yield(path, n.value) {
			return false
		}
	}
	return true
}

// Entries collects Flatten(t) into a slice.
func Entries(t *Tree) []Entry {
	var entries []Entry
	for path, value := range Flatten(t) {
		entries = append(entries, Entry{Path: path, Value: value})
	}
	return entries
}
