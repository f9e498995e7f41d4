package metrics

import "time"

// FileEvent describes the expansion of a single table.
type FileEvent struct {
	RunID     string
	File      string
	Input     int
	Output    int
	Wildcards int
	Expanded  int
	Dropped   int
	Skipped   int
	Changed   bool
	Duration  time.Duration
	// Err holds the failure message, empty on success.
	Err  string
	Time time.Time
}

// RunEvent summarises one invocation over one file or one directory.
type RunEvent struct {
	RunID      string
	Mode       string
	Files      int
	Failed     int
	RowsOut    int
	Years      int
	YearSource string
	Duration   time.Duration
	Time       time.Time
}

// MetricsSink records expansion results for observability purposes.
type MetricsSink interface {
	RecordFile(ev FileEvent) error
}

// RunRecorder records run summaries.
type RunRecorder interface {
	RecordRun(ev RunEvent) error
}

// Flusher is implemented by sinks that export data or release resources
// when a run ends. Flush is called once per run.
type Flusher interface {
	Flush() error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordFile(FileEvent) error { return nil }

func (NopSink) RecordRun(RunEvent) error { return nil }

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordFile forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordFile(ev FileEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordFile(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun forwards run summaries to sinks that support them.
func (m *MultiSink) RecordRun(ev RunEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RunRecorder); ok {
			if err := rec.RecordRun(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes every sink that buffers data.
func (m *MultiSink) Flush() error {
	for _, s := range m.Sinks {
		if f, ok := s.(Flusher); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}
