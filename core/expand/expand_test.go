package expand

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/osemosys-il/core/model"
)

var header = []string{"REGION", "TECHNOLOGY", "TIMESLICE", "YEAR", "VALUE"}

func TestExpandSolarScenario(t *testing.T) {
	tbl := model.Table{Header: header, Rows: []model.Row{
		{"ISRAEL", "PWR_Solar_Utility", "SUMMER_DAY", "*", "0.3"},
	}}
	out, res := New().Expand(tbl, model.NewYearSet(2015, 2016, 2017))

	assert.Equal(t, []model.Row{
		{"ISRAEL", "PWR_Solar_Utility", "SUMMER_DAY", "2015", "0.3"},
		{"ISRAEL", "PWR_Solar_Utility", "SUMMER_DAY", "2016", "0.3"},
		{"ISRAEL", "PWR_Solar_Utility", "SUMMER_DAY", "2017", "0.3"},
	}, out.Rows)
	assert.Equal(t, 1, res.Wildcards)
	assert.Equal(t, 3, res.Expanded)
	assert.Equal(t, 3, res.Output)
	assert.True(t, res.Changed())
}

func TestExpandDefaultHorizon(t *testing.T) {
	tbl := model.Table{Header: header, Rows: []model.Row{
		{"ISRAEL", "PWR_Gas_CCGT", "WINTER_NIGHT", "*", "0.85"},
	}}
	out, _ := New().Expand(tbl, model.DefaultYearSet())
	require.Len(t, out.Rows, 36)
	assert.Equal(t, "2015", out.Rows[0][3])
	assert.Equal(t, "2050", out.Rows[35][3])
}

func TestExpandKeepsPosition(t *testing.T) {
	tbl := model.Table{Header: header, Rows: []model.Row{
		{"ISRAEL", "A", "S", "2020", "1"},
		{"ISRAEL", "B", "S", " * ", "2"},
		{"ISRAEL", "C", "S", "2015", "3"},
	}}
	out, _ := New().Expand(tbl, model.NewYearSet(2015, 2016))
	var techs []string
	for _, r := range out.Rows {
		techs = append(techs, r[1]+r[3])
	}
	assert.Equal(t, []string{"A2020", "B2015", "B2016", "C2015"}, techs)
}

func TestExpandEmptyYearSetDropsWildcards(t *testing.T) {
	tbl := model.Table{Header: header, Rows: []model.Row{
		{"ISRAEL", "A", "S", "*", "1"},
		{"ISRAEL", "B", "S", "2015", "2"},
	}}
	out, res := New().Expand(tbl, model.YearSet{})
	assert.Equal(t, []model.Row{{"ISRAEL", "B", "S", "2015", "2"}}, out.Rows)
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, 0, res.Expanded)
}

func TestExpandSkipsMalformedRows(t *testing.T) {
	tbl := model.Table{Header: header, Rows: []model.Row{
		{"ISRAEL", "A", "S", "*", "1"},
		{"ISRAEL", "broken"},
		{"ISRAEL", "B", "S", "2015", "2", "extra"},
		{"ISRAEL", "C", "S", "2016", "3"},
	}}
	out, res := New().Expand(tbl, model.NewYearSet(2015))
	assert.Len(t, out.Rows, 2)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, RowError{Row: 2, Fields: 2, Want: 5}, res.Skipped[0])
	assert.Equal(t, RowError{Row: 3, Fields: 6, Want: 5}, res.Skipped[1])
	assert.EqualError(t, res.Skipped[0], "row 2: 2 fields, want 5")
}

func TestExpandWithoutYearColumn(t *testing.T) {
	tbl := model.Table{Header: []string{"REGION", "VALUE"}, Rows: []model.Row{{"ISRAEL", "*"}}}
	out, res := New().Expand(tbl, model.DefaultYearSet())
	assert.True(t, res.NoYearColumn)
	assert.False(t, res.Changed())
	assert.Equal(t, tbl, out)
}

func TestExpandKeepsDuplicateKeys(t *testing.T) {
	tbl := model.Table{Header: header, Rows: []model.Row{
		{"ISRAEL", "A", "S", "2015", "9"},
		{"ISRAEL", "A", "S", "*", "1"},
	}}
	out, _ := New().Expand(tbl, model.NewYearSet(2015, 2016))
	assert.Equal(t, []model.Row{
		{"ISRAEL", "A", "S", "2015", "9"},
		{"ISRAEL", "A", "S", "2015", "1"},
		{"ISRAEL", "A", "S", "2016", "1"},
	}, out.Rows)
}

func TestExpandCustomColumnAndSentinel(t *testing.T) {
	e := Expander{YearColumn: "Y", Wildcard: "ALL"}
	tbl := model.Table{Header: []string{"Y", "V"}, Rows: []model.Row{{"ALL", "1"}, {"*", "2"}}}
	out, res := e.Expand(tbl, model.NewYearSet(2030))
	assert.Equal(t, []model.Row{{"2030", "1"}, {"*", "2"}}, out.Rows)
	assert.Equal(t, 1, res.Wildcards)
}

func TestExpandDoesNotModifyInput(t *testing.T) {
	tbl := model.Table{Header: header, Rows: []model.Row{{"ISRAEL", "A", "S", "*", "1"}}}
	_, _ = New().Expand(tbl, model.NewYearSet(2015))
	assert.Equal(t, "*", tbl.Rows[0][3])
}

func TestHasWildcards(t *testing.T) {
	e := New()
	assert.True(t, e.HasWildcards(model.Table{Header: header, Rows: []model.Row{{"I", "A", "S", "*", "1"}}}))
	assert.False(t, e.HasWildcards(model.Table{Header: header, Rows: []model.Row{{"I", "A", "S", "2015", "1"}}}))
	assert.False(t, e.HasWildcards(model.Table{Header: header, Rows: []model.Row{{"I", "A"}}}))
}

func randomTable(r *rand.Rand) model.Table {
	tbl := model.Table{Header: header}
	n := r.Intn(40)
	for i := 0; i < n; i++ {
		year := strconv.Itoa(2015 + r.Intn(36))
		if r.Intn(3) == 0 {
			year = "*"
		}
		tbl.Rows = append(tbl.Rows, model.Row{
			"ISRAEL", fmt.Sprintf("TECH_%d", i), "SUMMER_DAY", year, strconv.Itoa(r.Intn(100)),
		})
	}
	return tbl
}

func randomYears(r *rand.Rand) model.YearSet {
	n := r.Intn(6)
	years := make([]int, n)
	for i := range years {
		years[i] = 2015 + r.Intn(36)
	}
	return model.NewYearSet(years...)
}

// Explicit rows are reproduced exactly and every wildcard row yields one
// row per year.
func TestExpandProperties(t *testing.T) {
	e := New()
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		tbl := randomTable(r)
		years := randomYears(r)
		out, res := e.Expand(tbl, years)

		require.Equal(t, tbl.Header, out.Header)

		var explicitIn, explicitOut []model.Row
		perTech := map[string][]string{}
		wildTechs := map[string]bool{}
		for _, row := range tbl.Rows {
			if row[3] == "*" {
				wildTechs[row[1]] = true
			} else {
				explicitIn = append(explicitIn, row)
			}
		}
		for _, row := range out.Rows {
			if wildTechs[row[1]] {
				perTech[row[1]] = append(perTech[row[1]], row[3])
				continue
			}
			explicitOut = append(explicitOut, row)
		}
		require.Equal(t, explicitIn, explicitOut)

		var want []string
		for _, y := range years.Years() {
			want = append(want, strconv.Itoa(y))
		}
		for tech := range wildTechs {
			require.Equal(t, want, perTech[tech], tech)
		}
		require.Equal(t, len(explicitIn)+len(wildTechs)*years.Len(), res.Output)
	}
}

func TestExpandIdempotent(t *testing.T) {
	e := New()
	r := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		years := model.NewYearSet(2015, 2020, 2025)
		once, _ := e.Expand(randomTable(r), years)
		twice, res := e.Expand(once, years)
		require.Equal(t, once, twice)
		require.False(t, res.Changed())
	}
}
