// Package dataset provides the tabular input abstraction for the RCA engine.
//
// A Table is an ordered collection of rows with named fields. The engine does
// not care how the table was produced, only that column names are resolvable;
// CSV ingestion is provided here for the CLI.
package dataset

// Record is a single row of named fields. Missing fields are simply absent
// from the map; consumers treat absent and empty values the same way.
type Record map[string]string

// Table is an ordered tabular dataset. Row order is irrelevant for analysis
// but kept stable so that tied counts produce deterministic output.
type Table struct {
	Columns []string
	Rows    []Record
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table schema contains the given column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
