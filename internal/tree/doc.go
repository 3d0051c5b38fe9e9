// Package tree models one domain's translations for one locale as an ordered
// tree of string keys.
//
// A Tree maps keys to Nodes, and a Node is either a leaf string or a nested
// Tree. Key insertion order is preserved everywhere: it decides the order in
// which Flatten yields dotted paths and the order in which documents are
// encoded.
//
// Key operations:
//   - ParsePath / Expand: dotted identifier to single-branch tree
//   - Flatten: tree to (path, value) pairs, depth-first in key order
//   - Merge / MergeFrom: first-write-wins deep merge
package tree
