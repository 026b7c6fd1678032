package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/teedgg/linkintel"
	"github.com/teedgg/linkintel/api"
	"github.com/teedgg/linkintel/cache"
	"github.com/teedgg/linkintel/config"
	"github.com/teedgg/linkintel/db"
	"github.com/teedgg/linkintel/metrics"
	"github.com/teedgg/linkintel/render"
	"github.com/teedgg/linkintel/storage"
	"github.com/teedgg/linkintel/tracing"
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	// Command-line flags (override config file and environment)
	configPath := flag.String("config", ".", "Directory containing config.yaml")
	port := flag.String("port", "", "Server port")
	aiURL := flag.String("ai-url", "", "Product identification service base URL")
	disableCORS := flag.Bool("disable-cors", false, "Disable CORS")
	enableRender := flag.Bool("render", false, "Render bot-protected pages in a headless browser")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *aiURL != "" {
		cfg.AI.URL = *aiURL
	}
	if *disableCORS {
		cfg.CORSEnabled = false
	}
	if *enableRender {
		cfg.Render.Enabled = true
	}

	// Setup structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("linkintel service initializing", "version", "1.0.0")

	// Initialize tracing
	tp, err := tracing.InitTracer("linkintel-api")
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
		logger.Info("tracing initialized successfully")
	}

	metrics.InitMetrics()

	// PostgreSQL database configuration (required)
	if cfg.DB.Host == "" {
		logger.Error("DB_HOST environment variable is required")
		os.Exit(1)
	}
	logger.Info("using PostgreSQL database", "host", cfg.DB.Host, "port", cfg.DB.Port, "database", cfg.DB.Name)

	clientConfig := linkintel.DefaultConfig()
	clientConfig.HTTPTimeout = cfg.Client.HTTPTimeout
	clientConfig.OEmbedTimeout = cfg.Client.OEmbedTimeout
	clientConfig.HealthTimeout = cfg.Client.HealthTimeout
	clientConfig.AnalyzeTimeout = cfg.Client.AnalyzeTimeout
	clientConfig.BrowserUserAgents = cfg.Client.BrowserUserAgents
	if cfg.Client.UserAgent != "" {
		clientConfig.UserAgent = cfg.Client.UserAgent
	}
	clientConfig.AIBaseURL = cfg.AI.URL
	if cfg.AI.Model != "" {
		clientConfig.AIModel = cfg.AI.Model
	}

	// Create server configuration
	serverConfig := api.Config{
		Addr:         ":" + cfg.Port,
		DBConfig:     db.Config{DSN: cfg.DB.DSN()},
		ClientConfig: clientConfig,
		Storage: api.StorageConfig{
			Backend:  cfg.Storage.Backend,
			BasePath: cfg.Storage.BasePath,
			S3: storage.S3Config{
				Endpoint:        cfg.Storage.S3.Endpoint,
				Region:          cfg.Storage.S3.Region,
				Bucket:          cfg.Storage.S3.Bucket,
				AccessKeyID:     cfg.Storage.S3.AccessKeyID,
				SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
				UsePathStyle:    cfg.Storage.S3.UsePathStyle,
			},
		},
		Cache: cache.Config{
			Path:      cfg.Cache.Path,
			InMemory:  cfg.Cache.InMemory,
			OEmbedTTL: cfg.Cache.OEmbedTTL,
			HealthTTL: cfg.Cache.HealthTTL,
		},
		HealthBatch: linkintel.BatchOptions{Concurrency: 3, Delay: time.Second},
		CORSEnabled: cfg.CORSEnabled,
	}
	if cfg.Render.Enabled {
		if !render.Available() && cfg.Render.Bin == "" {
			logger.Warn("headless rendering requested but no browser was found")
		}
		serverConfig.Render = &render.Config{
			Bin:       cfg.Render.Bin,
			Timeout:   cfg.Render.Timeout,
			UserAgent: clientConfig.UserAgent,
		}
	}

	// Create server
	server, err := api.NewServer(serverConfig)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	// Initialize database metrics
	dbMetrics := metrics.NewDatabaseMetrics("api", prometheus.DefaultRegisterer)
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			dbMetrics.UpdateDBStats(server.DB())
		}
	}()
	logger.Info("database metrics initialized")

	// Start server in a goroutine
	go func() {
		logger.Info("linkintel service starting",
			"port", cfg.Port,
			"database_host", cfg.DB.Host,
			"database_name", cfg.DB.Name,
			"storage_backend", cfg.Storage.Backend,
			"cache_path", cfg.Cache.Path,
			"ai_enabled", cfg.AI.URL != "",
			"render_enabled", cfg.Render.Enabled,
		)

		if err := server.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
