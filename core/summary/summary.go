// Package summary computes descriptive statistics of a parameter table's
// value column. It is a reporting aid only: values are not range-checked.
package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/osemosys-il/core/model"
)

// DefaultValueColumn is the OSeMOSYS name of the parameter value column.
const DefaultValueColumn = "VALUE"

// Stats describes the numeric content of a table.
type Stats struct {
	Rows      int
	Numeric   int
	Min       float64
	Max       float64
	Mean      float64
	StdDev    float64
	Wildcards int
	// Years lists the distinct explicit years found in the year column.
	Years model.YearSet
}

// Summarize computes statistics over valueCol. Non-numeric values are
// counted in Rows but not in Numeric. yearCol and wildcard identify the
// year column; an empty yearCol skips year accounting.
func Summarize(t model.Table, valueCol, yearCol, wildcard string) (Stats, error) {
	vc := t.Column(valueCol)
	if vc < 0 {
		return Stats{}, fmt.Errorf("no %s column", valueCol)
	}
	yc := -1
	if yearCol != "" {
		yc = t.Column(yearCol)
	}

	st := Stats{Rows: len(t.Rows)}
	values := make([]float64, 0, len(t.Rows))
	var years []int
	for _, row := range t.Rows {
		if vc < len(row) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[vc]), 64); err == nil && !math.IsNaN(v) {
				values = append(values, v)
			}
		}
		if yc < 0 || yc >= len(row) {
			continue
		}
		field := strings.TrimSpace(row[yc])
		if field == wildcard {
			st.Wildcards++
			continue
		}
		if y, err := strconv.Atoi(field); err == nil {
			years = append(years, y)
		}
	}
	st.Years = model.NewYearSet(years...)
	st.Numeric = len(values)
	if len(values) == 0 {
		return st, nil
	}
	st.Min = floats.Min(values)
	st.Max = floats.Max(values)
	st.Mean, st.StdDev = stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		st.StdDev = 0
	}
	return st, nil
}
