// Package api serves the link intelligence library over HTTP.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/teedgg/linkintel"
	"github.com/teedgg/linkintel/cache"
	"github.com/teedgg/linkintel/db"
	"github.com/teedgg/linkintel/metrics"
	"github.com/teedgg/linkintel/models"
	"github.com/teedgg/linkintel/render"
	"github.com/teedgg/linkintel/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	maxBodyBytes    = 1 << 20 // 1MB
	cacheGCInterval = 10 * time.Minute
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// ProductStore is the product library
type ProductStore interface {
	SaveProduct(p *models.Product) error
	GetByID(id string) (*models.Product, error)
	GetByURL(url string) (*models.Product, error)
	List(opts db.ListOptions) ([]*models.Product, error)
	Count() (int, error)
	DeleteByID(id string) error
	RecordHealth(result models.HealthResult) error
}

// SnapshotStore archives extraction and analysis results
type SnapshotStore interface {
	SaveExtraction(ctx context.Context, result models.ExtractionResult, name string) (string, error)
	SaveAnalysis(ctx context.Context, result models.AnalysisResult) (string, error)
	Delete(ctx context.Context, key string) error
}

// EnrichmentCache caches oEmbed metadata and health results
type EnrichmentCache interface {
	GetOEmbed(ctx context.Context, url string) (*models.OEmbedMetadata, bool)
	SetOEmbed(ctx context.Context, url string, meta *models.OEmbedMetadata) error
	GetHealth(ctx context.Context, url string) (*models.HealthResult, bool)
	SetHealth(ctx context.Context, url string, result models.HealthResult) error
}

// Server represents the API server
type Server struct {
	client      *linkintel.Client
	products    ProductStore
	archive     SnapshotStore
	cache       EnrichmentCache
	closers     []io.Closer
	healthBatch linkintel.BatchOptions
	addr        string
	server      *http.Server
	mux         *http.ServeMux
	corsEnabled bool
	log         *slog.Logger
}

// Config contains server configuration
type Config struct {
	Addr         string
	DBConfig     db.Config
	ClientConfig linkintel.Config
	Storage      StorageConfig
	Cache        cache.Config
	Render       *render.Config // nil disables headless rendering
	HealthBatch  linkintel.BatchOptions
	CORSEnabled  bool
}

// StorageConfig selects the snapshot backend
type StorageConfig struct {
	Backend  string // fs or s3
	BasePath string
	S3       storage.S3Config
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		DBConfig:     db.DefaultConfig(),
		ClientConfig: linkintel.DefaultConfig(),
		Storage:      StorageConfig{Backend: "fs", BasePath: storage.DefaultConfig().BasePath},
		Cache:        cache.Config{Path: "./badger_data"},
		HealthBatch:  linkintel.BatchOptions{Concurrency: 3, Delay: time.Second},
		CORSEnabled:  true,
	}
}

// Dependencies are the collaborators of a Server. Nil Products, Archive
// and Cache disable the features that need them.
type Dependencies struct {
	Client   *linkintel.Client
	Products ProductStore
	Archive  SnapshotStore
	Cache    EnrichmentCache
	Closers  []io.Closer // closed in order on Shutdown
	Logger   *slog.Logger
}

// NewServer creates a new API server, connecting the database, snapshot
// storage, cache and optional renderer named by config
func NewServer(config Config) (*Server, error) {
	logger := slog.Default()
	deps := Dependencies{Logger: logger}

	// Initialize database
	database, err := db.New(config.DBConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.Products = database
	deps.Closers = append(deps.Closers, database)

	backend, err := newBackend(config.Storage)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	deps.Archive = storage.NewArchive(backend)

	cacheConfig := config.Cache
	cacheConfig.Logger = logger
	enrichment, err := cache.Open(cacheConfig)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	deps.Cache = enrichment
	gcCtx, stopGC := context.WithCancel(context.Background())
	go enrichment.RunGC(gcCtx, cacheGCInterval)
	deps.Closers = append(deps.Closers, closerFunc(func() error { stopGC(); return nil }), enrichment)

	var opts []linkintel.Option
	if config.Render != nil {
		rc := *config.Render
		rc.Logger = logger
		renderer := render.New(rc)
		opts = append(opts, linkintel.WithRenderer(renderer))
		deps.Closers = append([]io.Closer{renderer}, deps.Closers...)
	}
	clientConfig := config.ClientConfig
	clientConfig.Logger = logger
	deps.Client = linkintel.New(clientConfig, opts...)

	return New(config, deps), nil
}

func newBackend(cfg StorageConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case "s3":
		return storage.NewS3Storage(context.Background(), cfg.S3)
	case "fs", "":
		return storage.New(storage.Config{BasePath: cfg.BasePath})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// New creates a server from already constructed dependencies
func New(config Config, deps Dependencies) *Server {
	if deps.Client == nil {
		deps.Client = linkintel.New(config.ClientConfig)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &Server{
		client:      deps.Client,
		products:    deps.Products,
		archive:     deps.Archive,
		cache:       deps.Cache,
		closers:     deps.Closers,
		healthBatch: config.HealthBatch,
		addr:        config.Addr,
		mux:         http.NewServeMux(),
		corsEnabled: config.CORSEnabled,
		log:         deps.Logger,
	}

	// Register routes
	s.registerRoutes()

	s.server = &http.Server{
		Addr:         config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // batch analysis of MaxInputURLs links
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// registerRoutes sets up all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", metrics.Handler())
	s.mux.HandleFunc("/api/classify", s.handleClassify)
	s.mux.HandleFunc("/api/classify/batch", s.handleClassifyBatch)
	s.mux.HandleFunc("/api/parse", s.handleParse)
	s.mux.HandleFunc("/api/oembed", s.handleOEmbed)
	s.mux.HandleFunc("/api/oembed/platforms", s.handleOEmbedPlatforms)
	s.mux.HandleFunc("/api/extract", s.handleExtract)
	s.mux.HandleFunc("/api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/api/analyze/batch", s.handleAnalyzeBatch)
	s.mux.HandleFunc("/api/health-check", s.handleHealthCheck)
	s.mux.HandleFunc("/api/health-check/batch", s.handleHealthCheckBatch)
	s.mux.HandleFunc("/api/products", s.handleListProducts)
	s.mux.HandleFunc("/api/products/", s.handleProduct) // Handles /api/products/{id}
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.middleware(s.mux), "linkintel-api",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health" && r.URL.Path != "/metrics"
		}),
	)
}

// Start starts the API server
func (s *Server) Start() error {
	s.log.Info("starting API server", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server and closes its dependencies
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down API server")
	err := s.server.Shutdown(ctx)
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil {
			s.log.Error("error closing dependency", "error", cerr)
			if err == nil {
				err = cerr
			}
		}
	}
	return err
}

// DB returns the product library connection for pool metrics, or nil
// when the library is not backed by database/sql
func (s *Server) DB() *sql.DB {
	if d, ok := s.products.(interface{ DB() *sql.DB }); ok {
		return d.DB()
	}
	return nil
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// middleware applies common middleware to all routes
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS headers
		if s.corsEnabled {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// Skip health checks and scrapes to reduce noise
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			return
		}

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.RecordRequest(r.Method, pattern, rec.status, time.Since(start))
		s.log.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := map[string]interface{}{
		"status": "healthy",
		"time":   time.Now(),
		"cache":  s.cache != nil,
	}
	if s.products != nil {
		count, err := s.products.Count()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to get count")
			return
		}
		resp["products"] = count
	}

	respondJSON(w, http.StatusOK, resp)
}

// decodeJSON reads a JSON request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
