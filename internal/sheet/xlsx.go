package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize creates in a new workbook.
const defaultSheet = "Sheet1"

// XLSXReader is a Source over one worksheet whose first row is the header.
type XLSXReader struct {
	header header
	rows   [][]string
	pos    int
}

// NewXLSXReader loads the worksheet named sheetName from r, or the first
// worksheet when sheetName is empty.
func NewXLSXReader(r io.Reader, sheetName string) (*XLSXReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrMissingColumn)
		}
		sheetName = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in workbook", sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMissingColumn, sheetName)
	}

	h, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	return &XLSXReader{header: h, rows: rows[1:]}, nil
}

// Next returns the next non-blank row.
func (x *XLSXReader) Next() (*Row, error) {
	for x.pos < len(x.rows) {
		cells := x.rows[x.pos]
		x.pos++
		if row := x.header.row(cells); row != nil {
			return row, nil
		}
	}
	return nil, io.EOF
}

// XLSXWriter is a Sink building a single-sheet workbook in memory. The
// workbook is written to the underlying writer on Close.
type XLSXWriter struct {
	out    io.Writer
	f      *excelize.File
	sheet  string
	header []string
	next   int
}

// NewXLSXWriter creates an XLSX sink. An empty sheetName keeps excelize's
// default sheet name.
func NewXLSXWriter(w io.Writer, sheetName string, header []string) (*XLSXWriter, error) {
	f := excelize.NewFile()
	sheet := defaultSheet
	if sheetName != "" && sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", sheetName, err)
		}
		sheet = sheetName
	}

	x := &XLSXWriter{out: w, f: f, sheet: sheet, header: header, next: 1}
	if err := x.writeCells(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return x, nil
}

func (x *XLSXWriter) writeCells(cells []string) error {
	addr, err := excelize.CoordinatesToCellName(1, x.next)
	if err != nil {
		return err
	}
	if err := x.f.SetSheetRow(x.sheet, addr, &cells); err != nil {
		return err
	}
	x.next++
	return nil
}

// Write appends one row below the previous one.
func (x *XLSXWriter) Write(row *Row) error {
	cells := make([]string, len(x.header))
	for i, name := range x.header {
		cells[i] = row.Value(name)
	}
	if err := x.writeCells(cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", x.next, err)
	}
	return nil
}

// Close serializes the workbook and releases it.
func (x *XLSXWriter) Close() error {
	defer func() {
		_ = x.f.Close()
	}()
	if _, err := x.f.WriteTo(x.out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
