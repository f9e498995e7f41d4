// Package driver applies wildcard expansion to a single parameter file or to
// every parameter file of a model data directory.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/osemosys-il/core/expand"
	"github.com/kilianp07/osemosys-il/core/logger"
	"github.com/kilianp07/osemosys-il/core/metrics"
	"github.com/kilianp07/osemosys-il/core/model"
	"github.com/kilianp07/osemosys-il/core/years"
)

// ErrInputNotFound is returned when the input file or directory is missing.
var ErrInputNotFound = errors.New("input not found")

// DefaultPattern selects the files processed in directory mode.
const DefaultPattern = "*.csv"

// Run modes reported in run summaries.
const (
	ModeFile      = "file"
	ModeDirectory = "directory"
)

// FileResult describes the outcome for one table.
type FileResult struct {
	Input     string
	Output    string
	Expansion expand.Result
	// Written is false when the output already matched and nothing was written.
	Written  bool
	Duration time.Duration
	Err      error
}

// RunSummary aggregates one invocation.
type RunSummary struct {
	RunID    string
	Mode     string
	Dir      string
	Years    model.YearSet
	Source   years.Source
	Files    []FileResult
	Failed   int
	Started  time.Time
	Finished time.Time
}

// RowsOut returns the number of rows written across all files.
func (s RunSummary) RowsOut() int {
	n := 0
	for _, f := range s.Files {
		if f.Err == nil {
			n += f.Expansion.Output
		}
	}
	return n
}

// Driver reads tables from the store, expands them and writes them back.
type Driver struct {
	Store    model.TableStore
	Expander expand.Expander
	Years    years.Resolver
	Sink     metrics.MetricsSink
	Log      logger.Logger
	// Pattern is the glob matched against file names in directory mode.
	Pattern string
	// SetsFile names the reference table, which is never expanded.
	SetsFile string

	now func() time.Time
}

// New returns a Driver with default pattern and sets file name.
func New(store model.TableStore, exp expand.Expander, res years.Resolver, sink metrics.MetricsSink, log logger.Logger) *Driver {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Driver{
		Store:    store,
		Expander: exp,
		Years:    res,
		Sink:     sink,
		Log:      log,
		Pattern:  DefaultPattern,
		SetsFile: years.DefaultSetsFile,
		now:      time.Now,
	}
}

// ExpandFile expands in and writes the result to out. An empty out
// overwrites the input in place.
func (d *Driver) ExpandFile(ctx context.Context, in, out string) (FileResult, error) {
	if err := ctx.Err(); err != nil {
		return FileResult{Input: in}, err
	}
	if _, err := os.Stat(in); err != nil {
		return FileResult{Input: in}, inputError(in, err)
	}
	if out == "" {
		out = in
	}
	sum := d.begin(ModeFile, filepath.Dir(in))
	ys, src, err := d.Years.Resolve(sum.Dir)
	if err != nil {
		return FileResult{Input: in, Output: out}, fmt.Errorf("resolve years: %w", err)
	}
	sum.Years, sum.Source = ys, src

	res := d.process(sum.RunID, in, out, ys)
	sum.Files = append(sum.Files, res)
	if res.Err != nil {
		sum.Failed++
	}
	d.finish(&sum)
	return res, res.Err
}

// ExpandDir expands every file of dir matching the driver pattern. Results
// go to outDir, created when needed, or back into dir when outDir is empty.
// Failures of individual files do not stop the run; they are returned
// joined once every file has been attempted.
func (d *Driver) ExpandDir(ctx context.Context, dir, outDir string) (RunSummary, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return RunSummary{Dir: dir}, inputError(dir, err)
	}
	if !info.IsDir() {
		return RunSummary{Dir: dir}, fmt.Errorf("%s is not a directory", dir)
	}
	files, err := d.listFiles(dir)
	if err != nil {
		return RunSummary{Dir: dir}, err
	}

	sum := d.begin(ModeDirectory, dir)
	ys, src, err := d.Years.Resolve(dir)
	if err != nil {
		return sum, fmt.Errorf("resolve years: %w", err)
	}
	sum.Years, sum.Source = ys, src

	target := dir
	if outDir != "" && filepath.Clean(outDir) != filepath.Clean(dir) {
		target = outDir
		if err := os.MkdirAll(target, 0o755); err != nil {
			return sum, fmt.Errorf("create output directory: %w", err)
		}
		if err := d.mirrorSets(dir, target); err != nil {
			return sum, err
		}
	}

	d.infof(sum.RunID, "expanding %d files in %s with years %s (%s)", len(files), dir, ys, src)
	var errs []error
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res := d.process(sum.RunID, filepath.Join(dir, name), filepath.Join(target, name), ys)
		sum.Files = append(sum.Files, res)
		if res.Err != nil {
			sum.Failed++
			errs = append(errs, res.Err)
		}
	}
	d.finish(&sum)
	return sum, errors.Join(errs...)
}

// Close flushes sinks that export data at the end of a run.
func (d *Driver) Close() error {
	if f, ok := d.Sink.(metrics.Flusher); ok {
		return f.Flush()
	}
	return nil
}

func (d *Driver) listFiles(dir string) ([]string, error) {
	pattern := d.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == d.SetsFile {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// mirrorSets copies the reference table so the output directory can be
// expanded or loaded on its own.
func (d *Driver) mirrorSets(dir, target string) error {
	src := filepath.Join(dir, d.SetsFile)
	if _, err := os.Stat(src); err != nil {
		return nil
	}
	if err := d.Store.Copy(src, filepath.Join(target, d.SetsFile)); err != nil {
		return fmt.Errorf("copy %s: %w", d.SetsFile, err)
	}
	return nil
}

func (d *Driver) process(runID, in, out string, ys model.YearSet) (res FileResult) {
	start := d.clock()
	res = FileResult{Input: in, Output: out}
	defer func() {
		res.Duration = d.clock().Sub(start)
		d.record(runID, &res)
	}()

	t, err := d.Store.Read(in)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", in, err)
		d.errorf(runID, in, "%v", res.Err)
		return res
	}
	expanded, r := d.Expander.Expand(t, ys)
	res.Expansion = r
	for _, re := range r.Skipped {
		d.warnf(runID, in, "skipped malformed %v", re)
	}
	switch {
	case r.NoYearColumn:
		d.warnf(runID, in, "no %s column, file unchanged", d.Expander.Column())
	case r.Dropped > 0:
		d.warnf(runID, in, "year set is empty, dropped %d wildcard rows", r.Dropped)
	}

	if !r.Changed() {
		if filepath.Clean(in) != filepath.Clean(out) {
			if err := d.Store.Copy(in, out); err != nil {
				res.Err = fmt.Errorf("copy %s: %w", out, err)
				d.errorf(runID, in, "%v", res.Err)
				return res
			}
			res.Written = true
		}
		d.infof(runID, "%s: no wildcard entries, %d rows unchanged", filepath.Base(in), r.Input)
		return res
	}
	if err := d.Store.Write(out, expanded); err != nil {
		res.Err = fmt.Errorf("write %s: %w", out, err)
		d.errorf(runID, in, "%v", res.Err)
		return res
	}
	res.Written = true
	d.infof(runID, "%s: expanded %d wildcard rows to %d rows, saved to %s", filepath.Base(in), r.Wildcards, r.Output, out)
	return res
}

func (d *Driver) begin(mode, dir string) RunSummary {
	return RunSummary{RunID: uuid.NewString(), Mode: mode, Dir: dir, Started: d.clock()}
}

func (d *Driver) finish(sum *RunSummary) {
	sum.Finished = d.clock()
	ev := metrics.RunEvent{
		RunID:      sum.RunID,
		Mode:       sum.Mode,
		Files:      len(sum.Files),
		Failed:     sum.Failed,
		RowsOut:    sum.RowsOut(),
		Years:      sum.Years.Len(),
		YearSource: sum.Source.String(),
		Duration:   sum.Finished.Sub(sum.Started),
		Time:       sum.Finished,
	}
	if rec, ok := d.Sink.(metrics.RunRecorder); ok {
		if err := rec.RecordRun(ev); err != nil {
			d.errorf(sum.RunID, "", "record run: %v", err)
		}
	}
}

func (d *Driver) record(runID string, res *FileResult) {
	ev := metrics.FileEvent{
		RunID:     runID,
		File:      filepath.Base(res.Input),
		Input:     res.Expansion.Input,
		Output:    res.Expansion.Output,
		Wildcards: res.Expansion.Wildcards,
		Expanded:  res.Expansion.Expanded,
		Dropped:   res.Expansion.Dropped,
		Skipped:   len(res.Expansion.Skipped),
		Changed:   res.Expansion.Changed(),
		Duration:  res.Duration,
		Time:      d.clock(),
	}
	if res.Err != nil {
		ev.Err = res.Err.Error()
	}
	if err := d.Sink.RecordFile(ev); err != nil {
		d.errorf(runID, res.Input, "record metrics: %v", err)
	}
}

func (d *Driver) clock() time.Time {
	if d.now == nil {
		return time.Now()
	}
	return d.now()
}

func inputError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	return fmt.Errorf("stat %s: %w", path, err)
}
