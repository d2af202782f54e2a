package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application.
// A nil *Collector is valid and records nothing.
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Query metrics
	Queries       *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	// Loader and synthesis metrics
	PagesFetched     *prometheus.CounterVec
	LinksSynthesized prometheus.Counter
	LinksAbandoned   prometheus.Counter
	GraphNodes       prometheus.Gauge
	GraphLinks       prometheus.Gauge
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Total number of graph queries by type and outcome",
			},
			[]string{"query", "status"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Graph query duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
			[]string{"query"},
		),
		PagesFetched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_pages_fetched_total",
				Help:      "Pages requested from the people source by outcome",
			},
			[]string{"status"},
		),
		LinksSynthesized: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "links_synthesized_total",
				Help:      "Total number of links created by synthesis",
			},
		),
		LinksAbandoned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "links_abandoned_total",
				Help:      "Links dropped because sampling hit the retry cap or the node was saturated",
			},
		),
		GraphNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_nodes",
				Help:      "Nodes in the published graph",
			},
		),
		GraphLinks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_links",
				Help:      "Links in the published graph",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Queries,
		c.QueryDuration,
		c.PagesFetched,
		c.LinksSynthesized,
		c.LinksAbandoned,
		c.GraphNodes,
		c.GraphLinks,
	)

	return c
}

// Handler serves the collector's metrics in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served HTTP request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveQuery records one executed query
func (c *Collector) ObserveQuery(query string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.Queries.WithLabelValues(query, status).Inc()
	c.QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// RecordPageFetch records one page request to the people source
func (c *Collector) RecordPageFetch(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.PagesFetched.WithLabelValues("error").Inc()
		return
	}
	c.PagesFetched.WithLabelValues("success").Inc()
}

// RecordSynthesis records the outcome of one synthesis run
func (c *Collector) RecordSynthesis(created, abandoned int) {
	if c == nil {
		return
	}
	c.LinksSynthesized.Add(float64(created))
	c.LinksAbandoned.Add(float64(abandoned))
}

// SetGraphSize records the size of the published graph
func (c *Collector) SetGraphSize(nodes, links int) {
	if c == nil {
		return
	}
	c.GraphNodes.Set(float64(nodes))
	c.GraphLinks.Set(float64(links))
}
