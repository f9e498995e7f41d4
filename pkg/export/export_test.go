package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/osemosys-il/core/driver"
	"github.com/kilianp07/osemosys-il/core/expand"
	"github.com/kilianp07/osemosys-il/core/model"
	"github.com/kilianp07/osemosys-il/core/years"
)

func sampleSummary() driver.RunSummary {
	return driver.RunSummary{
		RunID:  "run-1",
		Mode:   driver.ModeDirectory,
		Dir:    "data",
		Years:  model.YearRange(2015, 2016),
		Source: years.SourceFile,
		Failed: 1,
		Files: []driver.FileResult{
			{Input: "data/CapacityFactor.csv", Output: "data/CapacityFactor.csv", Written: true,
				Expansion: expand.Result{Input: 1, Output: 2, Wildcards: 1, Expanded: 2}},
			{Input: "data/Broken.csv", Err: errors.New("bad quote")},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleSummary()))
	var r Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	assert.Equal(t, "file", r.YearSource)
	assert.Equal(t, []int{2015, 2016}, r.Years)
	require.Len(t, r.Files, 2)
	assert.Equal(t, "CapacityFactor.csv", r.Files[0].File)
	assert.Equal(t, "bad quote", r.Files[1].Error)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSummary()))
	assert.Equal(t, "file,rows_in,rows_out,wildcards,dropped,skipped,written,error\n"+
		"CapacityFactor.csv,1,2,1,0,0,true,\n"+
		"Broken.csv,0,0,0,0,0,false,bad quote\n", buf.String())
}
