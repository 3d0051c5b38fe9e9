// Package sheet reads and writes translation tables.
//
// A table has one row per translation identifier. The domain and id columns
// locate the entry; every other column is a locale code holding that
// locale's text. Sources and sinks exist for CSV (encoding/csv) and XLSX
// (excelize).
package sheet

import (
	"errors"
	"io"
	"slices"
)

const (
	// FieldDomain names the column holding the translation domain.
	FieldDomain = "domain"

	// FieldID names the column holding the dotted identifier.
	FieldID = "id"
)

var (
	// ErrMissingColumn indicates a table header without a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat indicates a table file extension with no reader or writer.
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// Row is an ordered mapping from column name to cell value.
type Row struct {
	names  []string
	values map[string]string
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Set stores value under name, appending name if it is new.
func (r *Row) Set(name, value string) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get returns the value stored under name.
func (r *Row) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns the value stored under name, or "".
func (r *Row) Value(name string) string {
	return r.values[name]
}

// Names returns the column names in order.
func (r *Row) Names() []string {
	return slices.Clone(r.names)
}

// Domain returns the domain column.
func (r *Row) Domain() string {
	return r.values[FieldDomain]
}

// ID returns the id column.
func (r *Row) ID() string {
	return r.values[FieldID]
}

// Locales returns every column name except domain and id, in order.
func (r *Row) Locales() []string {
	locales := make([]string, 0, len(r.names))
	for _, name := range r.names {
		if name == FieldDomain || name == FieldID {
			continue
		}
		locales = append(locales, name)
	}
	return locales
}

// Values returns the cell values in column order.
func (r *Row) Values() []string {
	out := make([]string, len(r.names))
	for i, name := range r.names {
		out[i] = r.values[name]
	}
	return out
}

// Source yields table rows in order. Next returns io.EOF after the last row.
type Source interface {
	Next() (*Row, error)
}

// Sink accepts rows in emission order. Close flushes everything written.
type Sink interface {
	Write(row *Row) error
	Close() error
}

// SliceSource serves rows from memory.
type SliceSource struct {
	rows []*Row
	pos  int
}

// NewSliceSource creates a Source over rows.
func NewSliceSource(rows []*Row) *SliceSource {
	return &SliceSource{rows: rows}
}

// Next returns the next row or io.EOF.
func (s *SliceSource) Next() (*Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

// ReadAll drains src.
func ReadAll(src Source) ([]*Row, error) {
	var rows []*Row
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}
