// Package metrics defines the sink interfaces used to record expansion
// results. Concrete sinks such as the Prometheus and InfluxDB adapters live
// in infra/metrics and register themselves by name so that they can be
// selected from configuration. NewMetricsSink combines several configured
// sinks into a MultiSink.
package metrics
