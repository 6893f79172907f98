package models

// Record is one data row keyed by header column name. Values are the raw cell text.
type Record map[string]string

// Table is an in-memory CSV file: the header columns and every data row in input order
type Table struct {
	Columns []string
	Rows    []Record
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the header position of a column, or -1 if absent
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Has reports whether the header contains column
func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// Missing returns the subset of columns not present in the header, in the order given
func (t *Table) Missing(columns ...string) []string {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Records returns the table as header + rows of cells in header order
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, len(t.Columns))
	copy(header, t.Columns)
	out = append(out, header)

	for _, rec := range t.Rows {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = rec[c]
		}
		out = append(out, row)
	}
	return out
}
