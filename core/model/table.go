package model

import "strings"

// Row is one record of a parameter table. Fields are kept as raw strings so
// that values round-trip without reformatting.
type Row []string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	cp := make(Row, len(r))
	copy(cp, r)
	return cp
}

// Table is an ordered sequence of rows sharing the column schema in Header.
type Table struct {
	Header []string
	Rows   []Row
}

// Column returns the index of the named column or -1 when the table has no
// such column. Surrounding whitespace in header cells is ignored.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }
