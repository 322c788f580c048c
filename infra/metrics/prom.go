package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/sreekanth370/gammapy/core/metrics"
)

// PromSink records reduction events in Prometheus metrics.
type PromSink struct {
	reductions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPromSink registers reduction metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reductions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "irf_reductions_total",
		Help: "Total number of instrument-response reductions",
	}, []string{"kind", "failed"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "irf_reduction_duration_seconds",
		Help:    "Wall time spent per instrument-response reduction",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	if err := reg.Register(reductions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reductions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{reductions: reductions, duration: duration}, nil
}

// RecordReduction increments the reduction counter and observes the duration.
func (s *PromSink) RecordReduction(ev coremetrics.ReductionEvent) error {
	s.reductions.WithLabelValues(ev.Kind, strconv.FormatBool(ev.Failed)).Inc()
	if !ev.Failed {
		s.duration.WithLabelValues(ev.Kind).Observe(ev.Duration.Seconds())
	}
	return nil
}
