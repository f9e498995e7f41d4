// Package years resolves the model horizon used to expand wildcard rows.
//
// The horizon is read from the SETS.csv reference table stored next to the
// parameter files. A missing or unreadable reference table is not an error:
// the loader falls back to the 2015-2050 default range and logs a warning.
package years

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/osemosys-il/core/logger"
	"github.com/kilianp07/osemosys-il/core/model"
)

// Source tells where a year set came from.
type Source int

const (
	// SourceFile means the reference table was read successfully.
	SourceFile Source = iota
	// SourceDefault means no reference table exists.
	SourceDefault
	// SourceFallback means a reference table exists but could not be used.
	SourceFallback
	// SourceExplicit means the years were supplied by configuration.
	SourceExplicit
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceDefault:
		return "default"
	case SourceFallback:
		return "fallback"
	case SourceExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Resolver returns the year set applicable to the tables stored in dir.
type Resolver interface {
	Resolve(dir string) (model.YearSet, Source, error)
}

// Fixed always resolves to the same years.
type Fixed struct {
	Years model.YearSet
}

// Resolve implements Resolver.
func (f Fixed) Resolve(string) (model.YearSet, Source, error) {
	return f.Years, SourceExplicit, nil
}

// Default names of the reference table and its columns.
const (
	DefaultSetsFile    = "SETS.csv"
	DefaultSetColumn   = "SET"
	DefaultValueColumn = "VALUE"
	DefaultSetName     = "YEAR"
)

// Loader reads the year set from a reference table.
type Loader struct {
	Store       model.TableReader
	SetsFile    string
	SetColumn   string
	ValueColumn string
	SetName     string
	// Default is used when the reference table is absent or unusable.
	Default model.YearSet
	Log     logger.Logger
}

// NewLoader returns a Loader using the OSeMOSYS column names and the
// 2015-2050 default horizon.
func NewLoader(store model.TableReader, log logger.Logger) *Loader {
	return &Loader{
		Store:       store,
		SetsFile:    DefaultSetsFile,
		SetColumn:   DefaultSetColumn,
		ValueColumn: DefaultValueColumn,
		SetName:     DefaultSetName,
		Default:     model.DefaultYearSet(),
		Log:         log,
	}
}

// Resolve implements Resolver.
func (l *Loader) Resolve(dir string) (model.YearSet, Source, error) {
	return l.Load(dir)
}

// Load returns the years listed in dir's reference table. Only I/O failures
// other than a missing file are returned as errors.
func (l *Loader) Load(dir string) (model.YearSet, Source, error) {
	path := filepath.Join(dir, l.SetsFile)
	t, err := l.Store.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.warnf("%s not found, using default years %s", path, l.Default)
		return l.Default, SourceDefault, nil
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return model.YearSet{}, SourceFallback, fmt.Errorf("read %s: %w", path, err)
	}
	if err != nil {
		l.warnf("%s unreadable (%v), using default years %s", path, err, l.Default)
		return l.Default, SourceFallback, nil
	}
	ys, err := l.parse(t)
	if err != nil {
		l.warnf("%s: %v, using default years %s", path, err, l.Default)
		return l.Default, SourceFallback, nil
	}
	return ys, SourceFile, nil
}

func (l *Loader) parse(t model.Table) (model.YearSet, error) {
	setCol := t.Column(l.SetColumn)
	valCol := t.Column(l.ValueColumn)
	if setCol < 0 || valCol < 0 {
		return model.YearSet{}, fmt.Errorf("missing %s or %s column", l.SetColumn, l.ValueColumn)
	}
	var years []int
	for i, row := range t.Rows {
		if setCol >= len(row) || valCol >= len(row) {
			return model.YearSet{}, fmt.Errorf("row %d: too few fields", i+1)
		}
		if strings.TrimSpace(row[setCol]) != l.SetName {
			continue
		}
		y, err := parseYear(row[valCol])
		if err != nil {
			return model.YearSet{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		years = append(years, y)
	}
	if len(years) == 0 {
		return model.YearSet{}, fmt.Errorf("no %s entries", l.SetName)
	}
	return model.NewYearSet(years...), nil
}

// parseYear accepts integers and integral floats such as "2015.0", which
// spreadsheet exports tend to produce.
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return int(f), nil
}

func (l *Loader) warnf(format string, args ...any) {
	if l.Log != nil {
		l.Log.Warnf(format, args...)
	}
}
