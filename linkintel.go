// Package linkintel classifies creator links and enriches them with embed,
// profile, product and health information.
package linkintel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/teedgg/linkintel/ai"
	"github.com/teedgg/linkintel/platforms"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultUserAgent identifies the checker to the sites it visits
	DefaultUserAgent = "TeedBot/1.0 (+https://teed.gg)"

	maxConcurrentAIRequests = 3
)

var (
	ErrInvalidURL = errors.New("invalid URL")
	ErrBlocked    = errors.New("blocked by bot protection")
	ErrNotHTML    = errors.New("response is not HTML")
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// Thresholds are the confidence values assigned by classification and
// extraction. They are tunable; the defaults reflect observed behaviour.
type Thresholds struct {
	ExactMatch          float64 // registered URL shape matched
	RetailerProductPath float64 // retailer domain with a product-looking path
	RetailerDomain      float64 // retailer domain only
	ProductHeuristic    float64 // unregistered domain with a product-looking path

	JSONLDProduct float64
	OGTitleImage  float64
	OGTitle       float64
	ScrapeFull    float64 // title and image
	ScrapeTitle   float64
	ScrapeBrand   float64 // bonus when the domain names a brand
}

// DefaultThresholds returns the default confidence values
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExactMatch:          1.0,
		RetailerProductPath: 0.85,
		RetailerDomain:      0.7,
		ProductHeuristic:    0.4,
		JSONLDProduct:       0.95,
		OGTitleImage:        0.8,
		OGTitle:             0.6,
		ScrapeFull:          0.5,
		ScrapeTitle:         0.35,
		ScrapeBrand:         0.1,
	}
}

// Config contains client configuration
type Config struct {
	HTTPTimeout    time.Duration // ceiling for any single outbound request
	OEmbedTimeout  time.Duration
	HealthTimeout  time.Duration
	AnalyzeTimeout time.Duration
	ImageTimeout   time.Duration // timeout for probing a candidate image

	MaxPageBytes  int64
	MaxImageBytes int64

	AIBaseURL string // empty disables the AI stage
	AIModel   string

	UserAgent         string
	BrowserUserAgents bool // health checks rotate desktop browser agents instead of UserAgent
	KeepTracking      bool // keep tracking query params during normalization
	Thresholds        Thresholds
	Logger            *slog.Logger
}

// DefaultConfig returns default client configuration
func DefaultConfig() Config {
	return Config{
		HTTPTimeout:    30 * time.Second,
		OEmbedTimeout:  5 * time.Second,
		HealthTimeout:  10 * time.Second,
		AnalyzeTimeout: 30 * time.Second,
		ImageTimeout:   5 * time.Second,
		MaxPageBytes:   5 * 1024 * 1024,  // 5MB
		MaxImageBytes:  10 * 1024 * 1024, // 10MB
		AIModel:        ai.DefaultModel,
		UserAgent:      DefaultUserAgent,
		Thresholds:     DefaultThresholds(),
	}
}

// Identifier resolves a product description into a product identity
type Identifier interface {
	Identify(ctx context.Context, req ai.Request) (*ai.Identification, error)
}

// Renderer loads a page in a real browser for sites that block plain HTTP clients
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Client performs the network-bound operations: oEmbed, extraction,
// health checks and analysis. A Client is safe for concurrent use.
type Client struct {
	config      Config
	httpClient  *http.Client
	classifier  *Classifier
	identifier  Identifier
	renderer    Renderer
	aiSemaphore chan struct{} // limits concurrent AI requests
	logger      *slog.Logger
	tracer      trace.Tracer
}

// Option customizes a Client
type Option func(*Client)

// WithRegistry replaces the built-in platform registry
func WithRegistry(r *platforms.Registry) Option {
	return func(c *Client) {
		c.classifier = NewClassifier(ClassifierOptions{
			Registry:     r,
			KeepTracking: c.config.KeepTracking,
			Thresholds:   c.config.Thresholds,
		})
	}
}

// WithIdentifier sets the AI identification backend
func WithIdentifier(id Identifier) Option {
	return func(c *Client) { c.identifier = id }
}

// WithRenderer enables headless rendering of bot-protected pages
func WithRenderer(r Renderer) Option {
	return func(c *Client) { c.renderer = r }
}

// WithHTTPClient replaces the HTTP client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Client. Zero-valued config fields take their defaults.
func New(config Config, opts ...Option) *Client {
	config = withDefaults(config)

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.HTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		classifier: NewClassifier(ClassifierOptions{
			KeepTracking: config.KeepTracking,
			Thresholds:   config.Thresholds,
		}),
		aiSemaphore: make(chan struct{}, maxConcurrentAIRequests),
		logger:      config.Logger,
		tracer:      otel.Tracer("linkintel"),
	}
	if config.AIBaseURL != "" {
		c.identifier = ai.NewClient(config.AIBaseURL, config.AIModel)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func withDefaults(config Config) Config {
	def := DefaultConfig()
	if config.HTTPTimeout <= 0 {
		config.HTTPTimeout = def.HTTPTimeout
	}
	if config.OEmbedTimeout <= 0 {
		config.OEmbedTimeout = def.OEmbedTimeout
	}
	if config.HealthTimeout <= 0 {
		config.HealthTimeout = def.HealthTimeout
	}
	if config.AnalyzeTimeout <= 0 {
		config.AnalyzeTimeout = def.AnalyzeTimeout
	}
	if config.ImageTimeout <= 0 {
		config.ImageTimeout = def.ImageTimeout
	}
	if config.MaxPageBytes <= 0 {
		config.MaxPageBytes = def.MaxPageBytes
	}
	if config.MaxImageBytes <= 0 {
		config.MaxImageBytes = def.MaxImageBytes
	}
	if config.AIModel == "" {
		config.AIModel = def.AIModel
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}
	if config.Thresholds == (Thresholds{}) {
		config.Thresholds = def.Thresholds
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return config
}

// Classifier returns the classifier used by the client
func (c *Client) Classifier() *Classifier {
	return c.classifier
}

// acquireAISlot acquires a slot in the AI semaphore or returns error if context is cancelled
func (c *Client) acquireAISlot(ctx context.Context) error {
	select {
	case c.aiSemaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// releaseAISlot releases a slot in the AI semaphore
func (c *Client) releaseAISlot() {
	<-c.aiSemaphore
}
