package metrics

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/teedgg/linkintel/models"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestCounter.WithLabelValues("POST", "/api/classify", "200"))
	RecordRequest("POST", "/api/classify", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(RequestCounter.WithLabelValues("POST", "/api/classify", "200"))
	if after-before != 1 {
		t.Errorf("request counter moved by %v, want 1", after-before)
	}
}

func TestRecordAnalysis(t *testing.T) {
	product := testutil.ToFloat64(AnalysisCounter.WithLabelValues("product", "structured_data"))
	embed := testutil.ToFloat64(AnalysisCounter.WithLabelValues("embed", "-"))
	broken := testutil.ToFloat64(HealthCounter.WithLabelValues("broken"))

	RecordAnalysis(models.AnalysisResult{
		Classification: models.ClassificationResult{Type: models.LinkTypeProduct},
		Product:        &models.ExtractionResult{PrimarySource: models.SourceStructuredData, Confidence: 0.95},
		Health:         &models.HealthResult{Status: models.HealthBroken},
	})
	RecordAnalysis(models.AnalysisResult{
		Classification: models.ClassificationResult{Type: models.LinkTypeEmbed},
	})

	if got := testutil.ToFloat64(AnalysisCounter.WithLabelValues("product", "structured_data")) - product; got != 1 {
		t.Errorf("product analyses moved by %v", got)
	}
	if got := testutil.ToFloat64(AnalysisCounter.WithLabelValues("embed", "-")) - embed; got != 1 {
		t.Errorf("embed analyses moved by %v", got)
	}
	if got := testutil.ToFloat64(HealthCounter.WithLabelValues("broken")) - broken; got != 1 {
		t.Errorf("broken health checks moved by %v", got)
	}
}

func TestRecordCacheAndOEmbed(t *testing.T) {
	hits := testutil.ToFloat64(CacheCounter.WithLabelValues("oembed", "hit"))
	misses := testutil.ToFloat64(CacheCounter.WithLabelValues("oembed", "miss"))
	RecordCache("oembed", true)
	RecordCache("oembed", false)
	RecordCache("oembed", false)
	if got := testutil.ToFloat64(CacheCounter.WithLabelValues("oembed", "hit")) - hits; got != 1 {
		t.Errorf("hits moved by %v", got)
	}
	if got := testutil.ToFloat64(CacheCounter.WithLabelValues("oembed", "miss")) - misses; got != 2 {
		t.Errorf("misses moved by %v", got)
	}

	ok := testutil.ToFloat64(OEmbedCounter.WithLabelValues("youtube", "ok"))
	RecordOEmbed("youtube", true)
	if got := testutil.ToFloat64(OEmbedCounter.WithLabelValues("youtube", "ok")) - ok; got != 1 {
		t.Errorf("oembed ok moved by %v", got)
	}
}

func TestMustRegisterCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg)

	RecordHealth(models.HealthHealthy)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "linkintel_health_checks_total" {
			found = true
		}
	}
	if !found {
		t.Error("health check counter not gathered from the custom registry")
	}
}

func TestInitMetricsIsIdempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "linkintel_http_requests_total") {
		t.Error("exposition is missing the request counter")
	}
}

func TestUpdateDBStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDatabaseMetrics("api", reg)

	// sql.Open does not dial; pool stats are available immediately
	conn, err := sql.Open("postgres", "host=localhost dbname=unused sslmode=disable")
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(7)

	m.UpdateDBStats(conn)
	if got := testutil.ToFloat64(m.maxOpen); got != 7 {
		t.Errorf("max open = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.open); got != 0 {
		t.Errorf("open = %v, want 0", got)
	}

	m.UpdateDBStats(nil)
}
