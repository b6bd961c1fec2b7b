// Package metrics exposes Prometheus instrumentation for the studio.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
)

const namespace = "ledstudio"

// Metrics groups every collector. A nil *Metrics is valid and records
// nothing, so callers never need to guard.
type Metrics struct {
	reg *prometheus.Registry

	framesComputed  *prometheus.CounterVec
	clockTicks      prometheus.Counter
	codeGenerations *prometheus.CounterVec
	computeSeconds  prometheus.Histogram
	tickInterval    prometheus.Gauge
	ledCount        prometheus.Gauge
	running         prometheus.Gauge
}

// New registers the studio collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		framesComputed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "frames_computed_total",
			Help:      "LED arrays computed, by pattern",
		}, []string{"pattern"}),
		clockTicks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "clock",
			Name:      "ticks_total",
			Help:      "Animation clock ticks",
		}),
		codeGenerations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codegen",
			Name:      "generations_total",
			Help:      "Firmware sources generated, by pattern",
		}, []string{"pattern"}),
		computeSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "compute_seconds",
			Help:      "Time spent computing one LED array",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		tickInterval: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "clock",
			Name:      "interval_seconds",
			Help:      "Current delay between ticks",
		}),
		ledCount: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "strip",
			Name:      "leds",
			Help:      "Configured LED count",
		}),
		running: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "clock",
			Name:      "running",
			Help:      "1 while the animation clock is running",
		}),
	}
}

func (m *Metrics) ObserveFrame(id pattern.ID, took time.Duration) {
	if m == nil {
		return
	}
	m.framesComputed.WithLabelValues(string(id)).Inc()
	m.computeSeconds.Observe(took.Seconds())
}

func (m *Metrics) Tick() {
	if m == nil {
		return
	}
	m.clockTicks.Inc()
}

func (m *Metrics) CodeGenerated(id pattern.ID) {
	if m == nil {
		return
	}
	m.codeGenerations.WithLabelValues(string(id)).Inc()
}

func (m *Metrics) SetInterval(d time.Duration) {
	if m == nil {
		return
	}
	m.tickInterval.Set(d.Seconds())
}

func (m *Metrics) SetLEDCount(n int) {
	if m == nil {
		return
	}
	m.ledCount.Set(float64(n))
}

func (m *Metrics) SetRunning(on bool) {
	if m == nil {
		return
	}
	if on {
		m.running.Set(1)
	} else {
		m.running.Set(0)
	}
}

// Gatherer returns the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
