package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aevon-lab/merchant-pulse/internal/analytics"
	"github.com/aevon-lab/merchant-pulse/internal/ingestion"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pulse"

const (
	QueryOutcomeOK      = "ok"
	QueryOutcomeNoData  = "no_data"
	QueryOutcomeTimeout = "timeout"
	QueryOutcomeError   = "error"
)

// Metrics holds the Prometheus instruments for ingestion, analytics and HTTP.
// It implements ingestion.Observer and analytics.QueryObserver.
type Metrics struct {
	filesTotal    *prometheus.CounterVec
	rowsTotal     *prometheus.CounterVec
	rejectedTotal *prometheus.CounterVec
	batchDuration prometheus.Histogram
	batchRecords  prometheus.Histogram
	queryDuration *prometheus.HistogramVec
	queriesTotal  *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	peakBuffered  prometheus.Gauge
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates the instruments and registers them with registerer.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		filesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestion_files_total",
			Help:      "Ingested files by final state.",
		}, []string{"state"}),
		rowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestion_rows_total",
			Help:      "Ingested rows by outcome.",
		}, []string{"outcome"}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestion_rejected_rows_total",
			Help:      "Rejected rows by reason code.",
		}, []string{"reason"}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingestion_batch_write_seconds",
			Help:      "Latency of one batch insert transaction.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		batchRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingestion_batch_records",
			Help:      "Records per written batch.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 6),
		}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analytics_query_seconds",
			Help:      "Latency of analytics store queries.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"query"}),
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_queries_total",
			Help:      "Analytics store queries by outcome.",
		}, []string{"query", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		peakBuffered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ingestion_peak_buffered_records",
			Help:      "Largest batch buffer reached by the most recent file.",
		}),
	}

	registerer.MustRegister(
		m.filesTotal,
		m.rowsTotal,
		m.rejectedTotal,
		m.batchDuration,
		m.batchRecords,
		m.queryDuration,
		m.queriesTotal,
		m.httpRequests,
		m.httpDuration,
		m.peakBuffered,
	)
	return m
}

// BatchWritten implements ingestion.Observer.
func (m *Metrics) BatchWritten(records int, inserted int64, elapsed time.Duration) {
	m.batchDuration.Observe(elapsed.Seconds())
	m.batchRecords.Observe(float64(records))
}

// FileFinished implements ingestion.Observer.
func (m *Metrics) FileFinished(s ingestion.RunSummary) {
	m.filesTotal.WithLabelValues(string(s.State)).Inc()

	m.rowsTotal.WithLabelValues("seen").Add(float64(s.RowsSeen))
	m.rowsTotal.WithLabelValues("accepted").Add(float64(s.Accepted))
	m.rowsTotal.WithLabelValues("inserted").Add(float64(s.Inserted))
	m.rowsTotal.WithLabelValues("already_stored").Add(float64(s.AlreadyStored))
	m.rowsTotal.WithLabelValues("rejected").Add(float64(s.Rejected))
	m.rowsTotal.WithLabelValues("duplicate").Add(float64(s.Duplicates))
	m.rowsTotal.WithLabelValues("amount_coerced").Add(float64(s.CoercedAmounts))

	for reason, n := range s.RejectedByReason {
		m.rejectedTotal.WithLabelValues(string(reason)).Add(float64(n))
	}
	m.peakBuffered.Set(float64(s.PeakBuffered))
}

// QueryFinished implements analytics.QueryObserver.
func (m *Metrics) QueryFinished(query string, elapsed time.Duration, err error) {
	m.queryDuration.WithLabelValues(query).Observe(elapsed.Seconds())
	m.queriesTotal.WithLabelValues(query, ClassifyQueryOutcome(err)).Inc()
}

// ClassifyQueryOutcome maps a store query error to a low-cardinality label.
func ClassifyQueryOutcome(err error) string {
	switch {
	case err == nil:
		return QueryOutcomeOK
	case errors.Is(err, analytics.ErrNoData):
		return QueryOutcomeNoData
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, analytics.ErrQueryTimeout):
		return QueryOutcomeTimeout
	default:
		return QueryOutcomeError
	}
}

// GinMiddleware records request counts and latency per matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the exposition format for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
