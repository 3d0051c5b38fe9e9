// Package codec encodes translation trees to and from their document text.
//
// Documents are block-style YAML or NEON mappings. Both codecs keep key order
// through a decode/encode cycle: YAML through the yaml.v3 node API, which a
// round trip through map[string]any would lose, and NEON through its own
// line parser.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danieljhkim/transheet/internal/tree"
)

var (
	// ErrEmptyDocument indicates a document with no content.
	ErrEmptyDocument = errors.New("empty document")

	// ErrNotMapping indicates a document whose root is not a key/value mapping.
	ErrNotMapping = errors.New("document root is not a mapping")

	// ErrUnknownExtension indicates a document extension no codec serves.
	ErrUnknownExtension = errors.New("unknown document extension")
)

// Codec converts between a tree and its serialized document.
type Codec interface {
	// Decode parses a document. Any error means the document is unusable.
	Decode(data []byte) (*tree.Tree, error)

	// Encode serializes a tree.
	Encode(t *tree.Tree) ([]byte, error)
}

// ForExtension returns the codec serving documents with the given file
// extension (with or without the leading dot). indent is the number of
// spaces per nesting level; zero selects the default.
func ForExtension(ext string, indent int) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return NewYAML(indent), nil
	case "neon":
		return NewNEON(indent), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
}
