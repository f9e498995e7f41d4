// Package infra contains technical adapters such as the CSV table store,
// the zerolog logger and the Prometheus and InfluxDB metrics sinks. These
// packages should depend only on the interfaces defined in the core
// packages.
package infra
