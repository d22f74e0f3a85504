package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeUnconfigured = "unconfigured"
	OutcomeError        = "error"
)

// Collector exposes the service's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	Estimates     *prometheus.CounterVec
	UpstreamCalls *prometheus.CounterVec
}

// NewCollector registers metrics against reg, or the default registerer when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roofs_http_requests_total",
		Help: "HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"}), "roofs_http_requests_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roofs_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "route"}), "roofs_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	estimates, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roofs_estimates_total",
		Help: "Cost estimates computed, labeled by whether damage repair was included.",
	}, []string{"damage"}), "roofs_estimates_total")
	if err != nil {
		return nil, err
	}

	upstream, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roofs_upstream_calls_total",
		Help: "Calls to geocoding, imagery, and model providers by outcome.",
	}, []string{"provider", "outcome"}), "roofs_upstream_calls_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		HTTPRequests:  requests,
		HTTPDuration:  duration,
		Estimates:     estimates,
		UpstreamCalls: upstream,
	}, nil
}

// Handler serves the collector's gatherer in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncEstimate counts a computed estimate.
func (c *Collector) IncEstimate(hasDamage bool) {
	if c == nil {
		return
	}
	c.Estimates.WithLabelValues(strconv.FormatBool(hasDamage)).Inc()
}

// IncUpstream counts a call to an external provider.
func (c *Collector) IncUpstream(provider, outcome string) {
	if c == nil {
		return
	}
	c.UpstreamCalls.WithLabelValues(provider, outcome).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
