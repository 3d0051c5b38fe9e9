package tree

import (
	"strconv"
	"strings"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	KindLeaf Kind = iota
	KindBranch
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Node is either a leaf string value or a nested Tree.
type Node struct {
	kind   Kind
	value  string
	branch *Tree
}

// Leaf returns a leaf node holding value.
func Leaf(value string) Node {
	return Node{kind: KindLeaf, value: value}
}

// Branch returns a node holding the nested tree t. A nil t is treated as an
// empty tree.
func Branch(t *Tree) Node {
	if t == nil {
		t = New()
	}
	return Node{kind: KindBranch, branch: t}
}

// Kind reports which variant the node holds.
func (n Node) Kind() Kind {
	return n.kind
}

// IsLeaf reports whether the node is a leaf.
func (n Node) IsLeaf() bool {
	return n.kind == KindLeaf
}

// IsBranch reports whether the node is a nested tree.
func (n Node) IsBranch() bool {
	return n.kind == KindBranch
}

// Value returns the leaf value, or "" for a branch.
func (n Node) Value() string {
	return n.value
}

// Tree returns the nested tree, or nil for a leaf.
func (n Node) Tree() *Tree {
	return n.branch
}

func (n Node) clone() Node {
	if n.kind == KindBranch {
		return Branch(n.branch.Clone())
	}
	return n
}

func (n Node) equal(other Node) bool {
	if n.kind != other.kind {
		return false
	}
	if n.kind == KindLeaf {
		return n.value == other.value
	}
	return n.branch.Equal(other.branch)
}

// Tree is an insertion-ordered mapping from string keys to nodes.
// The zero value is not usable; create trees with New.
type Tree struct {
	keys  []string
	nodes map[string]Node
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{nodes: make(map[string]Node)}
}

// Len returns the number of direct keys.
func (t *Tree) Len() int {
	return len(t.keys)
}

// IsEmpty reports whether the tree has no keys.
func (t *Tree) IsEmpty() bool {
	return len(t.keys) == 0
}

// Keys returns the direct keys in insertion order.
func (t *Tree) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Get returns the node stored under key.
func (t *Tree) Get(key string) (Node, bool) {
	n, ok := t.nodes[key]
	return n, ok
}

// Set stores node under key. A new key is appended; an existing key keeps its
// position and has its node replaced.
func (t *Tree) Set(key string, node Node) {
	if _, ok := t.nodes[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.nodes[key] = node
}

// SetLeaf is shorthand for Set(key, Leaf(value)).
func (t *Tree) SetLeaf(key, value string) {
	t.Set(key, Leaf(value))
}

// Lookup walks path and returns the leaf value found there.
func (t *Tree) Lookup(path Path) (string, bool) {
	if len(path) == 0 {
		return "", false
	}
	cur := t
	for i, seg := range path {
		n, ok := cur.nodes[seg]
		if !ok {
			return "", false
		}
		if i == len(path)-1 {
			if !n.IsLeaf() {
				return "", false
			}
			return n.value, true
		}
		if !n.IsBranch() {
			return "", false
		}
		cur = n.branch
	}
	return "", false
}

// LeafCount returns the number of leaves in the whole tree.
func (t *Tree) LeafCount() int {
	count := 0
	for _, key := range t.keys {
		n := t.nodes[key]
		if n.IsBranch() {
			count += n.branch.LeafCount()
		} else {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	out := &Tree{
		keys:  make([]string, 0, len(t.keys)),
		nodes: make(map[string]Node, len(t.nodes)),
	}
	for _, key := range t.keys {
		out.keys = append(out.keys, key)
		out.nodes[key] = t.nodes[key].clone()
	}
	return out
}

// Equal reports whether both trees hold the same keys, in the same order,
// with equal nodes.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.keys) != len(other.keys) {
		return false
	}
	for i, key := range t.keys {
		if other.keys[i] != key {
			return false
		}
		if !t.nodes[key].equal(other.nodes[key]) {
			return false
		}
	}
	return true
}

// String renders the tree on one line, e.g. {b: "2", a: {c: "3"}}.
func (t *Tree) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder) {
	sb.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		n := t.nodes[key]
		if n.IsBranch() {
			n.branch.write(sb)
		} else {
			sb.WriteString(strconv.Quote(n.value))
		}
	}
	sb.WriteByte('}')
}
