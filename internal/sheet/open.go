package sheet

import (
	"fmt"
	"io"
)

// Options configures format-independent table access.
type Options struct {
	// Sheet names the XLSX worksheet. Empty means the first sheet when
	// reading and the default sheet when writing.
	Sheet string

	// CSV holds CSV-specific settings.
	CSV CSVOptions
}

// NewReader creates a Source for the given format.
func NewReader(format Format, r io.Reader, opts Options) (Source, error) {
	switch format {
	case FormatCSV:
		return NewCSVReader(r, opts.CSV), nil
	case FormatXLSX:
		return NewXLSXReader(r, opts.Sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// NewWriter creates a Sink for the given format with a fixed header.
func NewWriter(format Format, w io.Writer, opts Options, header []string) (Sink, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w, opts.CSV, header), nil
	case FormatXLSX:
		return NewXLSXWriter(w, opts.Sheet, header)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
