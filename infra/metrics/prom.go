package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/kilianp07/osemosys-il/core/metrics"
)

// PromConfig configures how collected metrics leave the process. A batch
// run is too short-lived to be scraped, so metrics are either written to a
// node_exporter textfile or pushed to a Pushgateway when the run is flushed.
type PromConfig struct {
	Textfile    string `json:"textfile"`
	PushgateURL string `json:"pushgateway_url"`
	Job         string `json:"job"`
}

// PromSink records expansion events in Prometheus metrics.
type PromSink struct {
	cfg      PromConfig
	reg      *prometheus.Registry
	files    *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration prometheus.Histogram
	lastRun  *prometheus.GaugeVec
}

// NewPromSink registers the expansion metrics on a fresh registry.
func NewPromSink(cfg PromConfig) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.NewRegistry())
}

// NewPromSinkWithRegistry registers metrics on the provided registry.
// Collectors already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(cfg PromConfig, reg *prometheus.Registry) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if cfg.Job == "" {
		cfg.Job = "osemosys_expand"
	}
	files := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "osemosys_expand_files_total",
		Help: "Number of tables processed",
	}, []string{"status"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "osemosys_expand_rows_total",
		Help: "Rows seen during expansion by kind",
	}, []string{"kind"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "osemosys_expand_file_duration_seconds",
		Help:    "Time spent expanding a single table",
		Buckets: prometheus.DefBuckets,
	})
	lastRun := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "osemosys_expand_last_run",
		Help: "Summary of the most recent run",
	}, []string{"field"})

	var err error
	if files, err = register(reg, files); err != nil {
		return nil, err
	}
	if rows, err = register(reg, rows); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if lastRun, err = register(reg, lastRun); err != nil {
		return nil, err
	}
	return &PromSink{cfg: cfg, reg: reg, files: files, rows: rows, duration: duration, lastRun: lastRun}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Registry exposes the registry holding the sink's collectors.
func (s *PromSink) Registry() *prometheus.Registry { return s.reg }

// RecordFile updates the counters for a processed table.
func (s *PromSink) RecordFile(ev coremetrics.FileEvent) error {
	s.files.WithLabelValues(fileStatus(ev)).Inc()
	s.rows.WithLabelValues("input").Add(float64(ev.Input))
	s.rows.WithLabelValues("output").Add(float64(ev.Output))
	s.rows.WithLabelValues("wildcard").Add(float64(ev.Wildcards))
	s.rows.WithLabelValues("generated").Add(float64(ev.Expanded))
	s.rows.WithLabelValues("dropped").Add(float64(ev.Dropped))
	s.rows.WithLabelValues("skipped").Add(float64(ev.Skipped))
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordRun stores the run summary in the last-run gauges.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.lastRun.WithLabelValues("files").Set(float64(ev.Files))
	s.lastRun.WithLabelValues("failed").Set(float64(ev.Failed))
	s.lastRun.WithLabelValues("rows_out").Set(float64(ev.RowsOut))
	s.lastRun.WithLabelValues("years").Set(float64(ev.Years))
	s.lastRun.WithLabelValues("duration_seconds").Set(ev.Duration.Seconds())
	s.lastRun.WithLabelValues("timestamp_seconds").Set(float64(ev.Time.Unix()))
	return nil
}

// Flush exports the registry to the configured textfile and Pushgateway.
func (s *PromSink) Flush() error {
	if s.cfg.Textfile != "" {
		if err := prometheus.WriteToTextfile(s.cfg.Textfile, s.reg); err != nil {
			return fmt.Errorf("write textfile: %w", err)
		}
	}
	if s.cfg.PushgateURL != "" {
		if err := push.New(s.cfg.PushgateURL, s.cfg.Job).Gatherer(s.reg).Push(); err != nil {
			return fmt.Errorf("push metrics: %w", err)
		}
	}
	return nil
}
