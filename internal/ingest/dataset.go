// Package ingest decodes uploaded workbook exports into a tabular dataset.
package ingest

// Dataset is one decoded table: a header row plus data rows, with cells
// addressed by exact column name. Column matching is case- and
// punctuation-sensitive, mirroring the export's fixed schema.
type Dataset struct {
	header  []string
	columns map[string]int
	rows    [][]string
}

// NewDataset builds a dataset from a header row and data rows. When a column
// name repeats, the first occurrence wins.
func NewDataset(header []string, rows [][]string) *Dataset {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	return &Dataset{header: header, columns: columns, rows: rows}
}

// HasColumn reports whether the header contains the exact column name.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.columns[name]
	return ok
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Cell returns the value at row/column, or the empty string when the column
// is absent or the row is shorter than the header.
func (d *Dataset) Cell(row int, column string) string {
	idx, ok := d.columns[column]
	if !ok || row < 0 || row >= len(d.rows) {
		return ""
	}
	cells := d.rows[row]
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// Columns returns the header in sheet order.
func (d *Dataset) Columns() []string {
	return d.header
}
