package sheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a table file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the table format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (want .csv or .xlsx)", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Header returns the canonical column order: domain, id, then locales.
func Header(locales []string) []string {
	cols := make([]string, 0, len(locales)+2)
	cols = append(cols, FieldDomain, FieldID)
	return append(cols, locales...)
}

// bom is the UTF-8 byte order mark some spreadsheet tools prepend to CSV.
const bom = "\ufeff"

// header is a validated column list shared by the readers.
type header []string

func parseHeader(cells []string) (header, error) {
	h := make(header, len(cells))
	for i, c := range cells {
		h[i] = strings.TrimSpace(c)
	}
	if len(h) > 0 {
		h[0] = strings.TrimPrefix(h[0], bom)
	}

	hasDomain, hasID := false, false
	for _, name := range h {
		switch name {
		case FieldDomain:
			hasDomain = true
		case FieldID:
			hasID = true
		}
	}
	if !hasDomain {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, FieldDomain)
	}
	if !hasID {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, FieldID)
	}
	return h, nil
}

// row maps cells onto the header. Missing trailing cells become "", unnamed
// columns are ignored. It returns nil for a row whose cells are all blank.
func (h header) row(cells []string) *Row {
	blank := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil
	}

	row := NewRow()
	for i, name := range h {
		if name == "" {
			continue
		}
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		row.Set(name, value)
	}
	return row
}
