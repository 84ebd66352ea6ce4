// Package dataset holds tabular data in memory and moves it to and from
// comma-separated files.
package dataset

import "fmt"

// Dataset is a header plus rows of string cells. Every row has exactly
// len(Columns) cells.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty dataset with the given header.
func New(columns ...string) *Dataset {
	return &Dataset{Columns: columns}
}

// Append adds a row. The row must match the header width.
func (d *Dataset) Append(row []string) error {
	if len(row) != len(d.Columns) {
		return fmt.Errorf("row has %d cells, header has %d columns", len(row), len(d.Columns))
	}
	d.Rows = append(d.Rows, row)
	return nil
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of name in the header, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns every cell of the named column in row order.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	cells := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		cells[i] = row[idx]
	}
	return cells, true
}

// NullCount counts null cells in the named column.
func (d *Dataset) NullCount(name string) (int, bool) {
	cells, ok := d.Column(name)
	if !ok {
		return 0, false
	}
	n := 0
	for _, cell := range cells {
		if IsNull(cell) {
			n++
		}
	}
	return n, true
}
