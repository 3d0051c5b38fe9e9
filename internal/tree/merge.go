package tree

// Conflict describes a secondary node dropped by a merge because the primary
// side already held the key and the two nodes were not both branches.
type Conflict struct {
	// Path locates the contested key from the merge root.
	Path Path

	// Kept is the kind of the primary node that stayed in the result.
	Kept Kind

	// Dropped is the kind of the secondary node that was discarded.
	Dropped Kind
}

// ShapeMismatch reports a leaf/branch clash. These conflicts silently lose a
// whole subtree (or a leaf) and are the ones worth surfacing to users.
func (c Conflict) ShapeMismatch() bool {
	return c.Kept != c.Dropped
}

// ConflictFunc receives every conflict found by MergeFrom.
type ConflictFunc func(Conflict)

// Merge deep-merges secondary into a copy of primary and returns the copy.
// Neither input is modified. On a key present in both, two branches are
// merged recursively; in every other case primary's node wins.
func Merge(primary, secondary *Tree) *Tree {
	var out *Tree
	if primary == nil {
		out = New()
	} else {
		out = primary.Clone()
	}
	out.MergeFrom(secondary, nil)
	return out
}

// MergeFrom merges secondary into t in place with the same first-write-wins
// rules as Merge. Nodes taken from secondary are deep-copied. onConflict may
// be nil.
func (t *Tree) MergeFrom(secondary *Tree, onConflict ConflictFunc) {
	if secondary == nil {
		return
	}
	t.mergeFrom(secondary, nil, onConflict)
}

func (t *Tree) mergeFrom(secondary *Tree, prefix Path, onConflict ConflictFunc) {
	for _, key := range secondary.keys {
		incoming := secondary.nodes[key]
		existing, ok := t.nodes[key]
		if !ok {
			t.Set(key, incoming.clone())
			continue
		}
		if existing.IsBranch() && incoming.IsBranch() {
			existing.branch.mergeFrom(incoming.branch, prefix.Child(key), onConflict)
			continue
		}
		if onConflict != nil {
			onConflict(Conflict{
				Path:    prefix.Child(key),
				Kept:    existing.kind,
				Dropped: incoming.kind,
			})
		}
	}
}
