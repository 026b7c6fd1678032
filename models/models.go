package models

import "time"

// LinkType is the classification a URL resolves to
type LinkType string

const (
	LinkTypeEmbed   LinkType = "embed"
	LinkTypeSocial  LinkType = "social"
	LinkTypeProduct LinkType = "product"
	LinkTypeUnknown LinkType = "unknown"
)

// UnknownPlatform is the platform id reported when no platform matched
const UnknownPlatform = "unknown"

// ClassificationResult is the outcome of classifying a single URL
type ClassificationResult struct {
	URL           string   `json:"url"`
	NormalizedURL string   `json:"normalized_url"`
	Type          LinkType `json:"type"`
	Platform      string   `json:"platform"`
	Confidence    float64  `json:"confidence"` // 0.0 to 1.0
}

// ClassificationSummary counts batch classification results by type
type ClassificationSummary struct {
	Total    int `json:"total"`
	Embeds   int `json:"embeds"`
	Socials  int `json:"socials"`
	Products int `json:"products"`
	Unknown  int `json:"unknown"`
}

// EmbedDescriptor identifies a piece of embeddable content
type EmbedDescriptor struct {
	Platform    string          `json:"platform"`
	ContentID   string          `json:"content_id"`
	ContentType string          `json:"content_type"`
	EmbedURL    string          `json:"embed_url,omitempty"`
	OriginalURL string          `json:"original_url"`
	OEmbed      *OEmbedMetadata `json:"oembed,omitempty"`
}

// OEmbedMetadata is the normalized oEmbed response of a provider
type OEmbedMetadata struct {
	Type            string `json:"type"` // photo, video, link or rich
	Version         string `json:"version"`
	Title           string `json:"title,omitempty"`
	AuthorName      string `json:"author_name,omitempty"`
	AuthorURL       string `json:"author_url,omitempty"`
	ProviderName    string `json:"provider_name,omitempty"`
	ProviderURL     string `json:"provider_url,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	ThumbnailWidth  int    `json:"thumbnail_width,omitempty"`
	ThumbnailHeight int    `json:"thumbnail_height,omitempty"`
	HTML            string `json:"html,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	CacheAge        int    `json:"cache_age,omitempty"` // seconds
}

// SocialProfileDescriptor identifies an account on a social platform
type SocialProfileDescriptor struct {
	Platform   string `json:"platform"`
	Username   string `json:"username"`
	ProfileURL string `json:"profile_url"`
}

// ExtractionSource names the stage that produced product data
type ExtractionSource string

const (
	SourceStructuredData ExtractionSource = "structured_data"
	SourceScrape         ExtractionSource = "scrape"
	SourceAI             ExtractionSource = "ai"
	SourceNone           ExtractionSource = "none"
)

// StageResult records what one extraction stage found
type StageResult struct {
	Source       ExtractionSource `json:"source"`
	Confidence   float64          `json:"confidence"`
	Brand        string           `json:"brand,omitempty"`
	ProductName  string           `json:"product_name,omitempty"`
	Category     string           `json:"category,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
	Price        string           `json:"price,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	Availability Availability     `json:"availability,omitempty"`
	Description  string           `json:"description,omitempty"`
	Error        string           `json:"error,omitempty"`
	DurationMs   int64            `json:"duration_ms"`
}

// ExtractionResult is the merged product identity of a page
type ExtractionResult struct {
	URL              string           `json:"url"`
	Brand            string           `json:"brand,omitempty"`
	ProductName      string           `json:"product_name,omitempty"`
	FullName         string           `json:"full_name,omitempty"`
	Category         string           `json:"category,omitempty"`
	ImageURL         string           `json:"image_url,omitempty"`
	Price            string           `json:"price,omitempty"`
	Currency         string           `json:"currency,omitempty"`
	Availability     Availability     `json:"availability,omitempty"`
	Description      string           `json:"description,omitempty"`
	Confidence       float64          `json:"confidence"`
	PrimarySource    ExtractionSource `json:"primary_source"`
	Stages           []StageResult    `json:"stages,omitempty"`
	Warnings         []string         `json:"warnings,omitempty"` // Non-fatal processing warnings
	ProcessingTimeMs int64            `json:"processing_time_ms"`
}

// HealthStatus is the outcome of a link health check
type HealthStatus string

const (
	HealthHealthy     HealthStatus = "healthy"
	HealthBroken      HealthStatus = "broken"
	HealthSoft404     HealthStatus = "soft_404"
	HealthUnavailable HealthStatus = "unavailable"
	HealthBlocked     HealthStatus = "blocked"
	HealthTimeout     HealthStatus = "timeout"
	HealthError       HealthStatus = "error"
)

// Availability is the stock state advertised by a product page
type Availability string

const (
	AvailabilityInStock      Availability = "in_stock"
	AvailabilityOutOfStock   Availability = "out_of_stock"
	AvailabilityPreorder     Availability = "preorder"
	AvailabilityDiscontinued Availability = "discontinued"
	AvailabilityUnknown      Availability = "unknown"
)

// RedirectStep is one hop of a redirect chain
type RedirectStep struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
}

// HealthResult is the outcome of checking whether a link still resolves
type HealthResult struct {
	URL            string         `json:"url"`
	Alive          bool           `json:"alive"`
	SoftDead       bool           `json:"soft_dead"`
	Status         HealthStatus   `json:"status"`
	HTTPStatus     int            `json:"http_status,omitempty"`
	ResponseTimeMs int64          `json:"response_time_ms"`
	FinalURL       string         `json:"final_url,omitempty"`
	RedirectChain  []RedirectStep `json:"redirect_chain,omitempty"`
	Soft404Reason  string         `json:"soft_404_reason,omitempty"`
	Availability   Availability   `json:"availability,omitempty"`
	Error          string         `json:"error,omitempty"`
	CheckedAt      time.Time      `json:"checked_at"`
}

// HealthStats aggregates a batch of health results
type HealthStats struct {
	Total             int                  `json:"total"`
	ByStatus          map[HealthStatus]int `json:"by_status"`
	Alive             int                  `json:"alive"`
	SoftDead          int                  `json:"soft_dead"`
	AvgResponseTimeMs int64                `json:"avg_response_time_ms"`
	RedirectedPercent float64              `json:"redirected_percent"`
}

// AnalysisResult combines every enrichment of a single URL
type AnalysisResult struct {
	ID               string                   `json:"id"`
	URL              string                   `json:"url"`
	Classification   ClassificationResult     `json:"classification"`
	Embed            *EmbedDescriptor         `json:"embed,omitempty"`
	Social           *SocialProfileDescriptor `json:"social,omitempty"`
	Product          *ExtractionResult        `json:"product,omitempty"`
	Health           *HealthResult            `json:"health,omitempty"`
	Warnings         []string                 `json:"warnings,omitempty"`
	ProcessingTimeMs int64                    `json:"processing_time_ms"`
	AnalyzedAt       time.Time                `json:"analyzed_at"`
}

// Product is a persisted product library entry
type Product struct {
	ID            string           `json:"id"`
	URL           string           `json:"url"`
	Slug          string           `json:"slug"`
	Domain        string           `json:"domain"`
	Brand         string           `json:"brand,omitempty"`
	ProductName   string           `json:"product_name,omitempty"`
	FullName      string           `json:"full_name,omitempty"`
	Category      string           `json:"category,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Price         string           `json:"price,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Availability  Availability     `json:"availability,omitempty"`
	Confidence    float64          `json:"confidence"`
	PrimarySource ExtractionSource `json:"primary_source"`
	SnapshotKey   string           `json:"snapshot_key,omitempty"` // storage key of the archived extraction
	HealthStatus  HealthStatus     `json:"health_status,omitempty"`
	HealthChecked *time.Time       `json:"health_checked_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// URLRequest is the body of single-URL endpoints
type URLRequest struct {
	URL string `json:"url"`
}

// BatchRequest is the body of batch endpoints. Text is split into URLs
// when URLs is empty.
type BatchRequest struct {
	URLs []string `json:"urls,omitempty"`
	Text string   `json:"text,omitempty"`
}

// ExtractRequest is the body of the product extraction endpoint
type ExtractRequest struct {
	URL   string `json:"url"`
	Full  bool   `json:"full,omitempty"`
	Force bool   `json:"force,omitempty"` // bypass the product library
}

// AnalyzeRequestOptions toggles the optional enrichments of an analysis
type AnalyzeRequestOptions struct {
	FetchOEmbed    *bool `json:"fetch_oembed,omitempty"`
	ExtractProduct *bool `json:"extract_product,omitempty"`
	CheckHealth    bool  `json:"check_health,omitempty"`
	SkipAI         bool  `json:"skip_ai,omitempty"`
}

// AnalyzeRequest is the body of the analysis endpoints
type AnalyzeRequest struct {
	URL     string                `json:"url,omitempty"`
	URLs    []string              `json:"urls,omitempty"`
	Text    string                `json:"text,omitempty"`
	Options AnalyzeRequestOptions `json:"options"`
}

// ParseResponse holds whichever descriptor a URL parsed into
type ParseResponse struct {
	URL            string                   `json:"url"`
	Classification ClassificationResult     `json:"classification"`
	Embed          *EmbedDescriptor         `json:"embed,omitempty"`
	Social         *SocialProfileDescriptor `json:"social,omitempty"`
}

// HealthBatchResponse is the result of a batch health check
type HealthBatchResponse struct {
	Results []HealthResult `json:"results"`
	Stats   HealthStats    `json:"stats"`
}

// ClassifyBatchResponse is the result of a batch classification
type ClassifyBatchResponse struct {
	Results []ClassificationResult `json:"results"`
	Summary ClassificationSummary  `json:"summary"`
}
