// Package export renders run summaries for downstream tooling. The JSON form
// is meant for CI pipelines that check a data directory before solving; the
// CSV form lists one row per processed table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kilianp07/osemosys-il/core/driver"
)

// FileReport is the serialised form of a driver.FileResult.
type FileReport struct {
	File      string `json:"file"`
	Output    string `json:"output"`
	RowsIn    int    `json:"rows_in"`
	RowsOut   int    `json:"rows_out"`
	Wildcards int    `json:"wildcards"`
	Dropped   int    `json:"dropped"`
	Skipped   int    `json:"skipped"`
	Written   bool   `json:"written"`
	Error     string `json:"error,omitempty"`
}

// Report is the serialised form of a driver.RunSummary.
type Report struct {
	RunID      string       `json:"run_id"`
	Mode       string       `json:"mode"`
	Dir        string       `json:"dir"`
	Years      []int        `json:"years"`
	YearSource string       `json:"year_source"`
	Failed     int          `json:"failed"`
	Started    time.Time    `json:"started"`
	Finished   time.Time    `json:"finished"`
	Files      []FileReport `json:"files"`
}

// NewReport converts a run summary.
func NewReport(sum driver.RunSummary) Report {
	r := Report{
		RunID:      sum.RunID,
		Mode:       sum.Mode,
		Dir:        sum.Dir,
		Years:      sum.Years.Years(),
		YearSource: sum.Source.String(),
		Failed:     sum.Failed,
		Started:    sum.Started,
		Finished:   sum.Finished,
		Files:      make([]FileReport, 0, len(sum.Files)),
	}
	for _, f := range sum.Files {
		fr := FileReport{
			File:      filepath.Base(f.Input),
			Output:    f.Output,
			RowsIn:    f.Expansion.Input,
			RowsOut:   f.Expansion.Output,
			Wildcards: f.Expansion.Wildcards,
			Dropped:   f.Expansion.Dropped,
			Skipped:   len(f.Expansion.Skipped),
			Written:   f.Written,
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		r.Files = append(r.Files, fr)
	}
	return r
}

// WriteJSON writes the run report to w in JSON format.
func WriteJSON(w io.Writer, sum driver.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(sum))
}

// WriteCSV writes one line per processed file.
func WriteCSV(w io.Writer, sum driver.RunSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"file", "rows_in", "rows_out", "wildcards", "dropped", "skipped", "written", "error"}); err != nil {
		return err
	}
	for _, f := range NewReport(sum).Files {
		rec := []string{
			f.File,
			strconv.Itoa(f.RowsIn),
			strconv.Itoa(f.RowsOut),
			strconv.Itoa(f.Wildcards),
			strconv.Itoa(f.Dropped),
			strconv.Itoa(f.Skipped),
			strconv.FormatBool(f.Written),
			f.Error,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
