package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// CSVOptions configures CSV reading and writing.
type CSVOptions struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune

	// BOM prefixes written files with a UTF-8 byte order mark so that
	// spreadsheet tools detect the encoding. Readers always strip it.
	BOM bool
}

func (o CSVOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// CSVReader is a Source over CSV data whose first record is the header.
type CSVReader struct {
	r      *csv.Reader
	header header
}

// NewCSVReader creates a CSV source reading from r.
func NewCSVReader(r io.Reader, opts CSVOptions) *CSVReader {
	cr := csv.NewReader(r)
	cr.Comma = opts.delimiter()
	cr.FieldsPerRecord = -1
	return &CSVReader{r: cr}
}

// Next returns the next non-blank row.
func (c *CSVReader) Next() (*Row, error) {
	if c.header == nil {
		record, err := c.r.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty table", ErrMissingColumn)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		if c.header, err = parseHeader(record); err != nil {
			return nil, err
		}
	}

	for {
		record, err := c.r.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if row := c.header.row(record); row != nil {
			return row, nil
		}
	}
}

// CSVWriter is a Sink producing CSV with a fixed header.
type CSVWriter struct {
	out         io.Writer
	w           *csv.Writer
	header      []string
	bom         bool
	wroteHeader bool
}

// NewCSVWriter creates a CSV sink. header fixes the column order; cells are
// looked up in each row by name.
func NewCSVWriter(w io.Writer, opts CSVOptions, header []string) *CSVWriter {
	cw := csv.NewWriter(w)
	cw.Comma = opts.delimiter()
	return &CSVWriter{out: w, w: cw, header: header, bom: opts.BOM}
}

func (c *CSVWriter) writeHeader() error {
	if c.wroteHeader {
		return nil
	}
	c.wroteHeader = true
	if c.bom {
		if _, err := io.WriteString(c.out, bom); err != nil {
			return fmt.Errorf("failed to write byte order mark: %w", err)
		}
	}
	if err := c.w.Write(c.header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// Write appends one row.
func (c *CSVWriter) Write(row *Row) error {
	if err := c.writeHeader(); err != nil {
		return err
	}
	record := make([]string, len(c.header))
	for i, name := range c.header {
		record[i] = row.Value(name)
	}
	if err := c.w.Write(record); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// Close writes the header if no row was written and flushes.
func (c *CSVWriter) Close() error {
	if err := c.writeHeader(); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}
