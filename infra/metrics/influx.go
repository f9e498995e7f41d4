package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/osemosys-il/core/metrics"
	"github.com/kilianp07/osemosys-il/infra/logger"
)

// InfluxConfig holds the connection settings of an InfluxDB v2 bucket.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes expansion events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordFile writes one point per processed table.
func (s *InfluxSink) RecordFile(ev coremetrics.FileEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("expansion_file").
		AddTag("run_id", ev.RunID).
		AddTag("file", ev.File).
		AddTag("status", fileStatus(ev)).
		AddField("rows_in", ev.Input).
		AddField("rows_out", ev.Output).
		AddField("wildcards", ev.Wildcards).
		AddField("generated", ev.Expanded).
		AddField("dropped", ev.Dropped).
		AddField("skipped", ev.Skipped).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000))
	if ev.Err != "" {
		p = p.AddField("error", ev.Err)
	}
	p = p.SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRun writes the run summary.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("expansion_run").
		AddTag("run_id", ev.RunID).
		AddTag("mode", ev.Mode).
		AddTag("year_source", ev.YearSource).
		AddField("files", ev.Files).
		AddField("failed", ev.Failed).
		AddField("rows_out", ev.RowsOut).
		AddField("years", ev.Years).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Flush closes the client; the blocking write API has nothing buffered.
func (s *InfluxSink) Flush() error {
	s.client.Close()
	return nil
}

func fileStatus(ev coremetrics.FileEvent) string {
	switch {
	case ev.Err != "":
		return "failed"
	case ev.Changed:
		return "expanded"
	default:
		return "unchanged"
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
