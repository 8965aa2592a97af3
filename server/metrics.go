package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/careercompass/compass/core"
)

// Metrics holds the Prometheus instruments exported at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	agentFailures   *prometheus.CounterVec
	agentLatency    *prometheus.HistogramVec
	overallStatus   *prometheus.CounterVec
}

// NewMetrics builds a metrics set on its own registry so tests can
// instantiate servers without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_http_requests_total",
			Help: "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compass_http_request_duration_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		agentFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_agent_failures_total",
			Help: "Agent failures by agent name and error kind.",
		}, []string{"agent", "kind"}),
		agentLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compass_agent_latency_seconds",
			Help:    "Per-agent run latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"agent"}),
		overallStatus: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_guidance_overall_total",
			Help: "Guidance responses by overall status.",
		}, []string{"status"}),
	}
}

// ObserveResponse records per-agent and overall outcomes for one
// processed guidance request.
func (m *Metrics) ObserveResponse(resp core.UnifiedResponse) {
	for _, res := range resp.Results {
		m.agentLatency.WithLabelValues(res.AgentName).Observe(float64(res.LatencyMS) / 1000)
		if res.Status == core.StatusFailed && res.Err != nil {
			m.agentFailures.WithLabelValues(res.AgentName, string(res.Err.Kind)).Inc()
		}
	}
	m.overallStatus.WithLabelValues(string(resp.Overall)).Inc()
}
