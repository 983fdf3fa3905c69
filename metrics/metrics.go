// Package metrics exposes benchmark samples as Prometheus metrics.
//
// Metrics live on a private registry rather than the global default, so a
// run can be exported to a node-exporter textfile without picking up Go
// runtime collectors.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "primbench"

// Collector records per-routine benchmark samples.
type Collector struct {
	registry *prometheus.Registry

	// SamplesTotal counts data rows recorded. Labels: routine.
	SamplesTotal *prometheus.CounterVec

	// SampleNanoseconds holds the last recorded elapsed value. Labels: routine.
	SampleNanoseconds *prometheus.GaugeVec

	// SweepSeconds holds the wall time of the last sweep. Labels: routine.
	SweepSeconds *prometheus.GaugeVec

	// FailuresTotal counts routines that ended in error. Labels: routine.
	FailuresTotal *prometheus.CounterVec
}

// New creates a Collector with its own registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		SamplesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Number of recorded benchmark samples by routine",
		}, []string{"routine"}),
		SampleNanoseconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sample_nanoseconds",
			Help:      "Elapsed nanoseconds of the last recorded sample by routine",
		}, []string{"routine"}),
		SweepSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sweep_seconds",
			Help:      "Wall-clock duration of the last size sweep by routine",
		}, []string{"routine"}),
		FailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routine_failures_total",
			Help:      "Number of routines that ended in error",
		}, []string{"routine"}),
	}
}

// Registry returns the registry holding the Collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveSample records one data row.
func (c *Collector) ObserveSample(routine string, nanos int64) {
	c.SamplesTotal.WithLabelValues(routine).Inc()
	c.SampleNanoseconds.WithLabelValues(routine).Set(float64(nanos))
}

// ObserveSweep records the wall time of a completed sweep.
func (c *Collector) ObserveSweep(routine string, d time.Duration) {
	c.SweepSeconds.WithLabelValues(routine).Set(d.Seconds())
}

// ObserveFailure records a routine that ended in error.
func (c *Collector) ObserveFailure(routine string) {
	c.FailuresTotal.WithLabelValues(routine).Inc()
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}

	return nil
}
