// Package metrics exposes Prometheus collectors for the link intelligence service.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teedgg/linkintel/models"
)

const namespace = "linkintel"

var (
	// RequestCounter counts HTTP requests by route pattern and status
	RequestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// ResponseTime observes HTTP handler latency
	ResponseTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_response_time_seconds",
		Help:      "HTTP response time in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "path"})

	// AnalysisCounter counts completed analyses by link type and the
	// primary source of any product extraction
	AnalysisCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Completed URL analyses",
	}, []string{"type", "source"})

	// ExtractionConfidence observes merged product extraction confidence
	ExtractionConfidence = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "extraction_confidence",
		Help:      "Confidence of merged product extractions",
		Buckets:   []float64{0, 0.2, 0.35, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1},
	}, []string{"source"})

	// HealthCounter counts health check outcomes by status
	HealthCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "health_checks_total",
		Help:      "Link health checks by resulting status",
	}, []string{"status"})

	// OEmbedCounter counts oEmbed lookups by platform and outcome
	OEmbedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oembed_fetches_total",
		Help:      "oEmbed lookups by platform and outcome",
	}, []string{"platform", "outcome"})

	// CacheCounter counts enrichment cache lookups
	CacheCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Enrichment cache lookups by kind and result",
	}, []string{"kind", "result"})
)

var registerOnce sync.Once

// InitMetrics registers all collectors with the default registry.
// Calling it more than once is a no-op.
func InitMetrics() {
	registerOnce.Do(func() {
		MustRegister(prometheus.DefaultRegisterer)
	})
}

// MustRegister registers all collectors with reg
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		RequestCounter,
		ResponseTime,
		AnalysisCounter,
		ExtractionConfidence,
		HealthCounter,
		OEmbedCounter,
		CacheCounter,
	)
}

// Handler serves the default registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records a served HTTP request
func RecordRequest(method, path string, status int, duration time.Duration) {
	RequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	ResponseTime.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAnalysis records a finished analysis, including its nested
// extraction and health results when present
func RecordAnalysis(result models.AnalysisResult) {
	source := "-"
	if result.Product != nil {
		source = string(result.Product.PrimarySource)
		RecordExtraction(*result.Product)
	}
	AnalysisCounter.WithLabelValues(string(result.Classification.Type), source).Inc()

	if result.Health != nil {
		RecordHealth(result.Health.Status)
	}
}

// RecordExtraction records the confidence of a product extraction
func RecordExtraction(result models.ExtractionResult) {
	ExtractionConfidence.WithLabelValues(string(result.PrimarySource)).Observe(result.Confidence)
}

// RecordHealth records a health check result
func RecordHealth(status models.HealthStatus) {
	HealthCounter.WithLabelValues(string(status)).Inc()
}

// RecordOEmbed records an oEmbed lookup
func RecordOEmbed(platform string, found bool) {
	outcome := "miss"
	if found {
		outcome = "ok"
	}
	OEmbedCounter.WithLabelValues(platform, outcome).Inc()
}

// RecordCache records a cache lookup
func RecordCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheCounter.WithLabelValues(kind, result).Inc()
}

// DatabaseMetrics exports database/sql connection pool statistics
type DatabaseMetrics struct {
	maxOpen      prometheus.Gauge
	open         prometheus.Gauge
	inUse        prometheus.Gauge
	idle         prometheus.Gauge
	waitCount    prometheus.Gauge
	waitDuration prometheus.Gauge
}

// NewDatabaseMetrics creates pool gauges labelled with service and
// registers them with reg
func NewDatabaseMetrics(service string, reg prometheus.Registerer) *DatabaseMetrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        name,
			Help:        help,
			ConstLabels: prometheus.Labels{"service": service},
		})
	}

	m := &DatabaseMetrics{
		maxOpen:      gauge("max_open_connections", "Maximum number of open connections"),
		open:         gauge("open_connections", "Established connections, in use and idle"),
		inUse:        gauge("in_use_connections", "Connections currently in use"),
		idle:         gauge("idle_connections", "Idle connections"),
		waitCount:    gauge("wait_count", "Total connections waited for"),
		waitDuration: gauge("wait_duration_seconds", "Total time blocked waiting for a connection"),
	}
	reg.MustRegister(m.maxOpen, m.open, m.inUse, m.idle, m.waitCount, m.waitDuration)
	return m
}

// UpdateDBStats copies the current pool statistics into the gauges
func (m *DatabaseMetrics) UpdateDBStats(db *sql.DB) {
	if db == nil {
		return
	}
	stats := db.Stats()
	m.maxOpen.Set(float64(stats.MaxOpenConnections))
	m.open.Set(float64(stats.OpenConnections))
	m.inUse.Set(float64(stats.InUse))
	m.idle.Set(float64(stats.Idle))
	m.waitCount.Set(float64(stats.WaitCount))
	m.waitDuration.Set(stats.WaitDuration.Seconds())
}
