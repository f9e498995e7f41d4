package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewYearSetSortsAndDeduplicates(t *testing.T) {
	s := NewYearSet(2020, 2015, 2020, 2017, 2015)
	assert.Equal(t, []int{2015, 2017, 2020}, s.Years())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2017))
	assert.False(t, s.Contains(2016))
}

func TestYearsReturnsCopy(t *testing.T) {
	s := YearRange(2015, 2017)
	ys := s.Years()
	ys[0] = 1999
	assert.Equal(t, 2015, s.First())
}

func TestDefaultYearSet(t *testing.T) {
	s := DefaultYearSet()
	assert.Equal(t, 36, s.Len())
	assert.Equal(t, 2015, s.First())
	assert.Equal(t, 2050, s.Last())
	assert.Equal(t, "2015-2050", s.String())
}

func TestYearRangeEmpty(t *testing.T) {
	s := YearRange(2020, 2019)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.First())
	assert.Equal(t, "[]", s.String())
}

func TestParseYearSet(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"2015-2017", []int{2015, 2016, 2017}},
		{" 2030 - 2031 ", []int{2030, 2031}},
		{"2025,2015,2020", []int{2015, 2020, 2025}},
		{"2040", []int{2040}},
	}
	for _, c := range cases {
		s, err := ParseYearSet(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, s.Years(), c.in)
	}
}

func TestParseYearSetErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "2020-2015", "2015-x", "2015,,2016"} {
		_, err := ParseYearSet(in)
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%q: expected ErrInvalidRange, got %v", in, err)
		}
	}
}

func TestYearSetStringList(t *testing.T) {
	assert.Equal(t, "2015,2020", NewYearSet(2020, 2015).String())
}
