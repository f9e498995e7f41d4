package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Model horizon used when no reference table lists the years.
const (
	DefaultStartYear = 2015
	DefaultEndYear   = 2050
)

// ErrInvalidRange is returned when a year range cannot be parsed.
var ErrInvalidRange = errors.New("invalid year range")

// YearSet is a strictly increasing list of distinct years.
type YearSet struct {
	years []int
}

// NewYearSet sorts the given years and removes duplicates.
func NewYearSet(years ...int) YearSet {
	cp := make([]int, len(years))
	copy(cp, years)
	sort.Ints(cp)
	out := cp[:0]
	for i, y := range cp {
		if i > 0 && y == cp[i-1] {
			continue
		}
		out = append(out, y)
	}
	return YearSet{years: out}
}

// YearRange returns every year from start to end inclusive. The set is empty
// when end is before start.
func YearRange(start, end int) YearSet {
	if end < start {
		return YearSet{}
	}
	years := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		years = append(years, y)
	}
	return YearSet{years: years}
}

// DefaultYearSet is the 2015-2050 horizon of the Israel model.
func DefaultYearSet() YearSet { return YearRange(DefaultStartYear, DefaultEndYear) }

// ParseYearSet parses either a range "2015-2050" or a comma separated list
// "2015,2020,2025".
func ParseYearSet(s string) (YearSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return YearSet{}, fmt.Errorf("%w: empty", ErrInvalidRange)
	}
	if from, to, ok := strings.Cut(s, "-"); ok && !strings.Contains(s, ",") {
		start, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return YearSet{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		end, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return YearSet{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		if end < start {
			return YearSet{}, fmt.Errorf("%w: %d is before %d", ErrInvalidRange, end, start)
		}
		return YearRange(start, end), nil
	}
	parts := strings.Split(s, ",")
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		y, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return YearSet{}, fmt.Errorf("%w: %q", ErrInvalidRange, p)
		}
		years = append(years, y)
	}
	return NewYearSet(years...), nil
}

// Len returns the number of years in the set.
func (s YearSet) Len() int { return len(s.years) }

// Years returns a copy of the years in increasing order.
func (s YearSet) Years() []int {
	cp := make([]int, len(s.years))
	copy(cp, s.years)
	return cp
}

// Contains reports whether y is part of the set.
func (s YearSet) Contains(y int) bool {
	i := sort.SearchInts(s.years, y)
	return i < len(s.years) && s.years[i] == y
}

// First returns the earliest year, or 0 for an empty set.
func (s YearSet) First() int {
	if len(s.years) == 0 {
		return 0
	}
	return s.years[0]
}

// Last returns the latest year, or 0 for an empty set.
func (s YearSet) Last() int {
	if len(s.years) == 0 {
		return 0
	}
	return s.years[len(s.years)-1]
}

// String renders contiguous sets as "first-last" and others as a list.
func (s YearSet) String() string {
	switch len(s.years) {
	case 0:
		return "[]"
	case 1:
		return strconv.Itoa(s.years[0])
	}
	if s.Last()-s.First()+1 == len(s.years) {
		return fmt.Sprintf("%d-%d", s.First(), s.Last())
	}
	parts := make([]string, len(s.years))
	for i, y := range s.years {
		parts[i] = strconv.Itoa(y)
	}
	return strings.Join(parts, ",")
}
