// Package promcollector exports trispin engine metrics to Prometheus.
//
//	c := promcollector.New(prometheus.DefaultRegisterer)
//	eng := trispin.New(trispin.WithMetricsCollector(c))
//	http.Handle("/metrics", promhttp.Handler())
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/trispin"
)

// Collector implements trispin.MetricsCollector with client_golang metrics.
type Collector struct {
	latency     *prometheus.HistogramVec
	basisSize   prometheus.Histogram
	operatorNNZ *prometheus.HistogramVec
	lookups     *prometheus.CounterVec
}

var _ trispin.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers it with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trispin_operation_duration_seconds",
			Help:    "Duration of basis construction and operator assembly",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"op", "status"}),
		basisSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trispin_basis_size",
			Help:    "Number of Bloch functions per constructed basis",
			Buckets: prometheus.ExponentialBuckets(1, 8, 10),
		}),
		operatorNNZ: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trispin_operator_nnz",
			Help:    "Stored entries per assembled operator",
			Buckets: prometheus.ExponentialBuckets(1, 8, 10),
		}, []string{"term"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trispin_basis_lookups_total",
			Help: "Basis lookups by the tier that served them",
		}, []string{"tier"}),
	}
	if reg != nil {
		reg.MustRegister(c)
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.latency.Describe(ch)
	c.basisSize.Describe(ch)
	c.operatorNNZ.Describe(ch)
	c.lookups.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.latency.Collect(ch)
	c.basisSize.Collect(ch)
	c.operatorNNZ.Collect(ch)
	c.lookups.Collect(ch)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordBasis implements trispin.MetricsCollector.
func (c *Collector) RecordBasis(size int, duration time.Duration, err error) {
	c.latency.WithLabelValues("basis", status(err)).Observe(duration.Seconds())
	if err == nil {
		c.basisSize.Observe(float64(size))
	}
}

// RecordOperator implements trispin.MetricsCollector.
func (c *Collector) RecordOperator(term trispin.Term, nnz int, duration time.Duration, err error) {
	c.latency.WithLabelValues(string(term), status(err)).Observe(duration.Seconds())
	if err == nil {
		c.operatorNNZ.WithLabelValues(string(term)).Observe(float64(nnz))
	}
}

// RecordCache implements trispin.MetricsCollector.
func (c *Collector) RecordCache(tier trispin.CacheTier) {
	c.lookups.WithLabelValues(string(tier)).Inc()
}
