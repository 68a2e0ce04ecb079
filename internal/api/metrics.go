package api

import (
	"strconv"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	requests *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	latency  prometheus.Histogram
	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "searchrank",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "searchrank",
			Name:      "recommendations_total",
			Help:      "Recommendation requests by outcome.",
		}, []string{"outcome"}),
		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "searchrank",
			Name:      "recommendation_duration_seconds",
			Help:      "Time spent fetching and ranking candidates.",
			Buckets:   prometheus.DefBuckets,
		}),
		registry: reg,
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Filter counts every request by its route template and status code.
func (m *Metrics) Filter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	chain.ProcessFilter(req, resp)

	route := req.SelectedRoutePath()
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(resp.StatusCode())).Inc()
}

func (m *Metrics) observeRecommendation(outcome string, elapsed time.Duration) {
	m.outcomes.WithLabelValues(outcome).Inc()
	m.latency.Observe(elapsed.Seconds())
}
