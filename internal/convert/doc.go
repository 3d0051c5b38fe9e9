// Package convert implements both directions of the table/tree transform.
//
// Rows to trees: TreeBuilder expands each row's dotted id into a branch per
// locale column and merges it into the (domain, locale) accumulator, first
// row winning on collisions.
//
// Trees to rows: CollectIDs flattens every locale's tree and reconciles the
// identifier order across locales of a domain; EmitRows then builds one row
// per identifier with a cell for every registered locale.
//
// Both directions share Catalog, which holds the trees and the locale
// registry for exactly one conversion.
package convert
