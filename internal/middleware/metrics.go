package middleware

import (
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/valyala/fasthttp"
)

// Metrics holds the HTTP and pipeline collectors. It satisfies
// pipeline.Events so committed moves and deletes are counted.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	activeConnections prometheus.Gauge

	leadMoves     *prometheus.CounterVec
	stageDeletes  *prometheus.CounterVec
	exportsServed *prometheus.CounterVec
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		activeConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Number of in-flight HTTP requests",
			},
		),
		leadMoves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_lead_moves_total",
				Help: "Leads moved between stages",
			},
			[]string{"from", "to"},
		),
		stageDeletes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_stage_deletes_total",
				Help: "Stage delete requests by outcome",
			},
			[]string{"outcome"},
		),
		exportsServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_exports_total",
				Help: "CSV exports served by source",
			},
			[]string{"source"},
		),
	}
}

// Handler records request count and latency labelled by the matched route,
// so path parameters do not explode label cardinality.
func (m *Metrics) Handler(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		m.activeConnections.Inc()
		defer m.activeConnections.Dec()

		next(ctx)

		method := string(ctx.Method())
		path := routePath(ctx)
		m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(ctx.Response.StatusCode())).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func routePath(ctx *fasthttp.RequestCtx) string {
	if matched, ok := ctx.UserValue(router.MatchedRoutePathParam).(string); ok && matched != "" {
		return matched
	}
	return "unmatched"
}

func (m *Metrics) LeadMoved(from, to string) {
	m.leadMoves.WithLabelValues(from, to).Inc()
}

func (m *Metrics) StageDeleted(string) {
	m.stageDeletes.WithLabelValues("deleted").Inc()
}

func (m *Metrics) StageDeleteRefused(string) {
	m.stageDeletes.WithLabelValues("refused").Inc()
}

// RecordExport counts a served CSV export; source is "list" or "search".
func (m *Metrics) RecordExport(source string) {
	m.exportsServed.WithLabelValues(source).Inc()
}
