// Package metrics defines the observability surface for response reductions.
package metrics

import "time"

// Config controls the metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = "9090"
	}
}

// ReductionEvent describes one completed response aggregation.
type ReductionEvent struct {
	// Kind is "psf" or "edisp".
	Kind         string
	Observations int
	Duration     time.Duration
	Failed       bool
}

// Sink records reduction events for observability purposes.
type Sink interface {
	RecordReduction(ev ReductionEvent) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordReduction implements Sink.
func (NopSink) RecordReduction(ReductionEvent) error { return nil }
