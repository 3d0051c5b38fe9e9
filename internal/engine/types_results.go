package engine

import (
	"time"

	"github.com/danieljhkim/transheet/internal/planner"
)

// DocumentInfo describes one (domain, locale) document.
type DocumentInfo struct {
	Domain string `json:"domain"`
	Locale string `json:"locale"`
	Path   string `json:"path"`
	Leaves int    `json:"leaves"`
}

// SkippedDocument is a document that could not be decoded.
type SkippedDocument struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ExportResult represents the result of an export.
type ExportResult struct {
	// Plan is the generated plan (one operation for the table)
	Plan *planner.WritePlan `json:"-"`

	// Written is true when the table was written (false on dry runs and
	// when the file already had the same content)
	Written bool `json:"written"`

	// TablePath is the table file
	TablePath string `json:"table"`

	// Documents lists the documents that were read, in file name order
	Documents []DocumentInfo `json:"documents"`

	// Skipped lists documents that could not be decoded
	Skipped []SkippedDocument `json:"skipped"`

	// Locales is the table's locale column order
	Locales []string `json:"locales"`

	// Rows is the number of table rows, header excluded
	Rows int `json:"rows"`

	// Duration is how long the conversion took
	Duration time.Duration `json:"duration"`
}

// ImportResult represents the result of an import.
type ImportResult struct {
	// Plan is the generated plan
	Plan *planner.WritePlan `json:"-"`

	// Applied is the list of operations that were executed (empty if DryRun)
	Applied []planner.Operation `json:"written"`

	// Unchanged lists documents whose files already held the same content
	Unchanged []planner.Operation `json:"unchanged"`

	// Gated lists (domain, locale) pairs whose trees were empty
	Gated []planner.Gated `json:"gated"`

	// Locales is the registry order of the table's locale columns
	Locales []string `json:"locales"`

	// Rows is the number of table rows read
	Rows int `json:"rows"`

	// Leaves is the number of values stored in documents
	Leaves int `json:"leaves"`

	// Duplicates counts values dropped because an earlier row had the same id
	Duplicates int `json:"duplicates"`

	// ShapeConflicts counts values dropped because an id was both a value
	// and a group of keys
	ShapeConflicts int `json:"shape_conflicts"`

	// Duration is how long the conversion took
	Duration time.Duration `json:"duration"`
}

// DomainSummary aggregates the documents of one domain.
type DomainSummary struct {
	Domain  string         `json:"domain"`
	Locales map[string]int `json:"locales"`

	// Missing lists locales present elsewhere but not in this domain
	Missing []string `json:"missing,omitempty"`

	// IDs is the number of distinct identifiers across the domain's locales
	IDs int `json:"ids"`
}

// InspectResult summarizes a documents directory.
type InspectResult struct {
	Dir       string            `json:"dir"`
	Locales   []string          `json:"locales"`
	Domains   []DomainSummary   `json:"domains"`
	Documents []DocumentInfo    `json:"documents"`
	Skipped   []SkippedDocument `json:"skipped"`
}
