// Package metrics exposes provider fetch outcomes to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/honeycarbs/jobhub/internal/domain/job"
)

const namespace = "jobhub"

// Metrics holds the provider and tool collectors. It implements job.Recorder.
type Metrics struct {
	FetchesTotal   *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	JobsCached     *prometheus.GaugeVec
	DroppedTotal   *prometheus.CounterVec
	ToolCallsTotal *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}

	factory := promauto.With(reg)

	return &Metrics{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "fetches_total",
				Help:      "Completed provider fetches by outcome",
			},
			[]string{"provider", "status"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "fetch_duration_seconds",
				Help:      "Duration of provider fetches in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 0.1s to ~51s
			},
			[]string{"provider"},
		),
		JobsCached: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "jobs_cached",
				Help:      "Jobs held in the provider cache after the last fetch",
			},
			[]string{"provider"},
		),
		DroppedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "dropped_jobs_total",
				Help:      "Items dropped because they could not be turned into jobs",
			},
			[]string{"provider"},
		),
		ToolCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mcp",
				Name:      "tool_calls_total",
				Help:      "MCP tool invocations by outcome",
			},
			[]string{"tool", "outcome"},
		),
		gatherer: g,
	}
}

// ObserveFetch implements job.Recorder.
func (m *Metrics) ObserveFetch(provider string, status job.Status, jobs, dropped int, elapsed time.Duration) {
	m.FetchesTotal.WithLabelValues(provider, string(status)).Inc()
	m.FetchDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	m.JobsCached.WithLabelValues(provider).Set(float64(jobs))
	if dropped > 0 {
		m.DroppedTotal.WithLabelValues(provider).Add(float64(dropped))
	}
}

// ObserveTool counts a tool call; err decides the outcome label.
func (m *Metrics) ObserveTool(tool string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
}

// Handler serves the registered collectors in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

var _ job.Recorder = (*Metrics)(nil)
