// Package expand replaces wildcard years in OSeMOSYS parameter tables with
// one explicit row per year of the model horizon.
package expand

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kilianp07/osemosys-il/core/model"
)

const (
	// DefaultYearColumn is the OSeMOSYS name of the year dimension.
	DefaultYearColumn = "YEAR"
	// DefaultWildcard stands for every year of the model horizon.
	DefaultWildcard = "*"
)

// RowError describes a data row that was skipped because its field count
// does not match the header.
type RowError struct {
	// Row is the 1-based index of the data row, the header excluded.
	Row    int
	Fields int
	Want   int
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %d fields, want %d", e.Row, e.Fields, e.Want)
}

// Result summarises one expansion.
type Result struct {
	Input  int
	Output int
	// Wildcards counts the source rows carrying the wildcard sentinel.
	Wildcards int
	// Expanded counts the rows generated from wildcard rows.
	Expanded int
	// Dropped counts wildcard rows removed because the year set was empty.
	Dropped      int
	Skipped      []RowError
	NoYearColumn bool
}

// Changed reports whether the output differs from the input.
func (r Result) Changed() bool {
	return r.Wildcards > 0 || len(r.Skipped) > 0
}

// Expander rewrites wildcard rows. The zero value uses the OSeMOSYS defaults.
type Expander struct {
	YearColumn string
	Wildcard   string
}

// New returns an Expander with the default column and sentinel.
func New() Expander {
	return Expander{YearColumn: DefaultYearColumn, Wildcard: DefaultWildcard}
}

// Column returns the name of the year column.
func (e Expander) Column() string {
	if e.YearColumn == "" {
		return DefaultYearColumn
	}
	return e.YearColumn
}

func (e Expander) wildcard() string {
	if e.Wildcard == "" {
		return DefaultWildcard
	}
	return e.Wildcard
}

// IsWildcard reports whether a year field holds the sentinel.
func (e Expander) IsWildcard(field string) bool {
	return strings.TrimSpace(field) == e.wildcard()
}

// Expand returns a new table in which each wildcard row is replaced, at its
// own position, by one copy per year of years. Other rows are passed through
// untouched and the header is reused verbatim. The input table is not
// modified.
func (e Expander) Expand(t model.Table, years model.YearSet) (model.Table, Result) {
	res := Result{Input: len(t.Rows)}
	col := t.Column(e.Column())
	if col < 0 {
		res.NoYearColumn = true
		res.Output = len(t.Rows)
		return t, res
	}

	want := len(t.Header)
	labels := make([]string, 0, years.Len())
	for _, y := range years.Years() {
		labels = append(labels, strconv.Itoa(y))
	}

	out := model.Table{Header: t.Header, Rows: make([]model.Row, 0, len(t.Rows))}
	for i, row := range t.Rows {
		if len(row) != want {
			res.Skipped = append(res.Skipped, RowError{Row: i + 1, Fields: len(row), Want: want})
			continue
		}
		if !e.IsWildcard(row[col]) {
			out.Rows = append(out.Rows, row)
			continue
		}
		res.Wildcards++
		if len(labels) == 0 {
			res.Dropped++
			continue
		}
		for _, y := range labels {
			r := row.Clone()
			r[col] = y
			out.Rows = append(out.Rows, r)
		}
		res.Expanded += len(labels)
	}
	res.Output = len(out.Rows)
	return out, res
}

// HasWildcards reports whether any row of t carries the sentinel.
func (e Expander) HasWildcards(t model.Table) bool {
	col := t.Column(e.Column())
	if col < 0 {
		return false
	}
	for _, row := range t.Rows {
		if col < len(row) && e.IsWildcard(row[col]) {
			return true
		}
	}
	return false
}
