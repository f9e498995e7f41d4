package config

import (
	"fmt"
	"path/filepath"

	"github.com/kilianp07/osemosys-il/core/driver"
	"github.com/kilianp07/osemosys-il/core/expand"
	"github.com/kilianp07/osemosys-il/core/model"
	"github.com/kilianp07/osemosys-il/core/years"
)

// ExpandConfig controls how wildcard rows are recognised and expanded.
type ExpandConfig struct {
	// YearColumn is the header of the year column.
	YearColumn string `json:"year_column"`
	// Wildcard is the sentinel standing for every year.
	Wildcard string `json:"wildcard"`
	// SetsFile is the reference table listing the model years.
	SetsFile string `json:"sets_file"`
	// Pattern selects the files processed in directory mode.
	Pattern string `json:"pattern"`
	// Years overrides the reference table when Start and End are set.
	Years YearsConfig `json:"years"`
	// Default is the horizon used when the reference table is unusable.
	Default YearsConfig `json:"default"`
}

// YearsConfig is an inclusive year range. The zero value means unset.
type YearsConfig struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsSet reports whether a range was configured.
func (y YearsConfig) IsSet() bool { return y.Start != 0 || y.End != 0 }

// Set returns the configured years.
func (y YearsConfig) Set() model.YearSet { return model.YearRange(y.Start, y.End) }

func (y YearsConfig) validate() error {
	if !y.IsSet() {
		return nil
	}
	if y.Start == 0 || y.End == 0 {
		return fmt.Errorf("both start and end are required")
	}
	if y.End < y.Start {
		return fmt.Errorf("end %d is before start %d", y.End, y.Start)
	}
	return nil
}

// SetDefaults applies the OSeMOSYS conventions.
func (c *ExpandConfig) SetDefaults() {
	if c.YearColumn == "" {
		c.YearColumn = expand.DefaultYearColumn
	}
	if c.Wildcard == "" {
		c.Wildcard = expand.DefaultWildcard
	}
	if c.SetsFile == "" {
		c.SetsFile = years.DefaultSetsFile
	}
	if c.Pattern == "" {
		c.Pattern = driver.DefaultPattern
	}
	if !c.Default.IsSet() {
		c.Default = YearsConfig{Start: model.DefaultStartYear, End: model.DefaultEndYear}
	}
}

// Validate checks mandatory fields.
func (c ExpandConfig) Validate() error {
	if _, err := filepath.Match(c.Pattern, "x.csv"); err != nil {
		return fmt.Errorf("pattern %q: %w", c.Pattern, err)
	}
	if filepath.Base(c.SetsFile) != c.SetsFile {
		return fmt.Errorf("sets_file must be a file name, got %q", c.SetsFile)
	}
	if err := c.Years.validate(); err != nil {
		return fmt.Errorf("years: %w", err)
	}
	if err := c.Default.validate(); err != nil {
		return fmt.Errorf("default: %w", err)
	}
	return nil
}

// Expander builds the row expander described by the configuration.
func (c ExpandConfig) Expander() expand.Expander {
	return expand.Expander{YearColumn: c.YearColumn, Wildcard: c.Wildcard}
}
