package engine

import "errors"

var (
	// ErrSourceNotFound indicates the input directory or table does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrInvalidDocumentName indicates a document name that is not
	// <domain>.<locale>.<ext>, or a domain or locale that cannot be used as one.
	ErrInvalidDocumentName = errors.New("invalid document name")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates an output could not be planned safely.
	ErrConflict = errors.New("conflict detected")

	// ErrPartialWrite indicates an import that failed after writing some of
	// its documents. Each written document is complete; running the import
	// again writes the rest.
	ErrPartialWrite = errors.New("import stopped part way")
)
