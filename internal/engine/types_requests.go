package engine

// ExportRequest represents a request to convert a documents directory into
// one table file.
type ExportRequest struct {
	// DocsDir is the directory holding <domain>.<locale>.<ext> documents
	DocsDir string

	// TablePath is the table file to write; its extension picks the format
	TablePath string

	// Extension overrides the configured document extension
	Extension string

	// Sheet overrides the configured XLSX worksheet name
	Sheet string

	// DryRun performs planning only without writing the table
	DryRun bool
}

// ImportRequest represents a request to convert a table file into a
// documents directory.
type ImportRequest struct {
	// TablePath is the table file to read
	TablePath string

	// OutDir is the directory receiving the documents; created if missing
	OutDir string

	// IncludeEmpty keeps empty cells as empty leaf values
	IncludeEmpty bool

	// Extension overrides the configured document extension
	Extension string

	// Sheet overrides the configured XLSX worksheet name
	Sheet string

	// DryRun performs planning only without writing documents
	DryRun bool
}

// InspectRequest represents a request to summarize a documents directory.
type InspectRequest struct {
	// DocsDir is the directory holding the documents
	DocsDir string

	// Extension overrides the configured document extension
	Extension string
}
