package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordSink struct {
	files, runs, flushes int
	err                  error
}

func (r *recordSink) RecordFile(FileEvent) error {
	r.files++
	return r.err
}

func (r *recordSink) RecordRun(RunEvent) error {
	r.runs++
	return nil
}

func (r *recordSink) Flush() error {
	r.flushes++
	return nil
}

type fileOnly struct{ n int }

func (f *fileOnly) RecordFile(FileEvent) error {
	f.n++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	f := &fileOnly{}
	m := NewMultiSink(s1, s2, f)
	assert.NoError(t, m.RecordFile(FileEvent{File: "a.csv"}))
	assert.NoError(t, m.RecordRun(RunEvent{}))
	assert.NoError(t, m.Flush())
	assert.Equal(t, 1, s1.files)
	assert.Equal(t, 1, s2.runs)
	assert.Equal(t, 1, s2.flushes)
	assert.Equal(t, 1, f.n)
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	assert.ErrorIs(t, m.RecordFile(FileEvent{}), boom)
	assert.Equal(t, 0, s2.files)
}
