package linkintel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/teedgg/linkintel/ai"
	"github.com/teedgg/linkintel/models"
	"github.com/teedgg/linkintel/platforms"
	"github.com/teedgg/linkintel/slug"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

// ExtractOptions control how far the extraction pipeline goes
type ExtractOptions struct {
	UseAI               bool // run the AI stage when earlier stages fall short
	FetchTimeout        time.Duration
	EarlyExitConfidence float64 // stop once a stage reaches this confidence
}

// QuickExtractOptions skip AI and stop at the first reasonably confident stage
func QuickExtractOptions() ExtractOptions {
	return ExtractOptions{UseAI: false, FetchTimeout: 3 * time.Second, EarlyExitConfidence: 0.7}
}

// FullExtractOptions run every stage unless structured data is near certain
func FullExtractOptions() ExtractOptions {
	return ExtractOptions{UseAI: true, FetchTimeout: 10 * time.Second, EarlyExitConfidence: 0.95}
}

// QuickExtractProduct extracts product identity without AI by default. A nil
// opts uses QuickExtractOptions; zero fields of opts take the quick defaults.
func (c *Client) QuickExtractProduct(ctx context.Context, productURL string, opts *ExtractOptions) models.ExtractionResult {
	o := QuickExtractOptions()
	if opts != nil {
		o.UseAI = opts.UseAI
		if opts.FetchTimeout > 0 {
			o.FetchTimeout = opts.FetchTimeout
		}
		if opts.EarlyExitConfidence > 0 {
			o.EarlyExitConfidence = opts.EarlyExitConfidence
		}
	}
	return c.ExtractProduct(ctx, productURL, o)
}

// FullExtractProduct runs every extraction stage including AI
func (c *Client) FullExtractProduct(ctx context.Context, productURL string) models.ExtractionResult {
	return c.ExtractProduct(ctx, productURL, FullExtractOptions())
}

// ExtractProduct runs structured data, scrape and AI stages in order and
// merges them. It always returns a result; failures to fetch the page yield
// confidence 0 with primary source none.
func (c *Client) ExtractProduct(ctx context.Context, productURL string, opts ExtractOptions) models.ExtractionResult {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "linkintel.ExtractProduct")
	defer span.End()

	result := models.ExtractionResult{
		URL:           productURL,
		PrimarySource: models.SourceNone,
	}
	finish := func() models.ExtractionResult {
		result.ProcessingTimeMs = time.Since(start).Milliseconds()
		span.SetAttributes(
			attribute.String("primary_source", string(result.PrimarySource)),
			attribute.Float64("confidence", result.Confidence),
		)
		return result
	}

	normalized, err := normalizeURL(productURL, true)
	if err != nil || strings.HasPrefix(strings.ToLower(normalized), "mailto:") {
		result.Warnings = append(result.Warnings, "invalid URL")
		return finish()
	}
	base, err := url.Parse(normalized)
	if err != nil {
		result.Warnings = append(result.Warnings, "invalid URL")
		return finish()
	}
	domain := platforms.NormalizeDomain(base.Hostname())

	page, err := c.loadPage(ctx, productURL, opts.FetchTimeout)
	if err != nil {
		c.logger.Warn("product page fetch failed", "url", productURL, "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("page fetch failed: %v", err))
		return finish()
	}
	if page.finalURL != "" {
		if u, err := url.Parse(page.finalURL); err == nil {
			base = u
		}
	}

	doc, err := html.Parse(bytes.NewReader(page.body))
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to parse HTML: %v", err))
		return finish()
	}
	gdoc := goquery.NewDocumentFromNode(doc)

	var stages []models.StageResult
	reached := func() bool {
		for _, s := range stages {
			if s.Confidence >= opts.EarlyExitConfidence {
				return true
			}
		}
		return false
	}

	stageStart := time.Now()
	structured := c.extractStructured(gdoc, base)
	structured.DurationMs = time.Since(stageStart).Milliseconds()
	stages = append(stages, structured)

	if !reached() {
		stageStart = time.Now()
		scraped := c.scrapeStage(ctx, doc, base, domain)
		scraped.DurationMs = time.Since(stageStart).Milliseconds()
		stages = append(stages, scraped)
	}

	if opts.UseAI && !reached() {
		if c.identifier == nil {
			result.Warnings = append(result.Warnings, "AI identification not configured")
		} else {
			stageStart = time.Now()
			aiStage := c.aiStage(ctx, productURL, domain, stages)
			aiStage.DurationMs = time.Since(stageStart).Milliseconds()
			if aiStage.Error != "" {
				result.Warnings = append(result.Warnings, "AI identification unavailable: "+aiStage.Error)
			}
			stages = append(stages, aiStage)
		}
	}

	result.Stages = stages
	applyMerge(&result, stages)
	return finish()
}

// loadPage fetches the page, switching to the renderer when the plain fetch
// hits bot protection
func (c *Client) loadPage(ctx context.Context, target string, timeout time.Duration) (fetchResult, error) {
	page := c.fetchPage(ctx, target, timeout)

	blocked := page.status == 403 || page.status == 429 || (page.ok() && DetectBotProtection(page.html()))
	if !blocked {
		if !page.ok() {
			return page, page.err
		}
		return page, nil
	}

	if c.renderer == nil {
		return page, ErrBlocked
	}
	c.logger.Info("page is bot protected, rendering", "url", target)
	rendered, err := c.renderer.Render(ctx, target)
	if err != nil {
		return page, fmt.Errorf("%w: render failed: %v", ErrBlocked, err)
	}
	if DetectBotProtection(rendered) {
		return page, ErrBlocked
	}
	return fetchResult{body: []byte(rendered), status: 200, finalURL: target}, nil
}

// aiStage asks the identification endpoint about the page, seeded with what
// the earlier stages found
func (c *Client) aiStage(ctx context.Context, productURL, domain string, prior []models.StageResult) models.StageResult {
	stage := models.StageResult{Source: models.SourceAI}

	var title, brand, description string
	for _, s := range prior {
		if title == "" {
			title = s.ProductName
		}
		if brand == "" {
			brand = s.Brand
		}
		if description == "" {
			description = s.Description
		}
	}
	if b, ok := BrandFromDomain(domain); ok && brand == "" {
		brand = b.Name
	}

	var parts []string
	for _, p := range []string{brand, title, slug.Humanize(slug.FromProductURL(productURL))} {
		if p != "" {
			parts = appendDistinct(parts, p)
		}
	}
	query := strings.Join(parts, " ")
	if query == "" {
		query = productURL
	}

	if err := c.acquireAISlot(ctx); err != nil {
		stage.Error = fmt.Sprintf("timed out waiting for AI slot: %v", err)
		return stage
	}
	id, err := c.identifier.Identify(ctx, ai.Request{Query: query, Description: description, URL: productURL})
	c.releaseAISlot()
	if err != nil {
		c.logger.Warn("AI identification failed", "url", productURL, "error", err)
		if !errors.Is(err, ai.ErrUnavailable) {
			err = fmt.Errorf("%w: %v", ai.ErrUnavailable, err)
		}
		stage.Error = err.Error()
		return stage
	}

	stage.Brand = id.Brand
	stage.ProductName = id.ProductName
	if stage.ProductName == "" {
		stage.ProductName = id.FullName
	}
	stage.Category = id.Category
	stage.Price = strings.TrimPrefix(id.EstimatedPrice, "$")
	stage.Confidence = clamp01(id.Confidence)
	return stage
}

// applyMerge copies the highest-confidence stage into result and fills its
// empty fields from the other stages, most confident first. Ties go to the
// earlier stage.
func applyMerge(result *models.ExtractionResult, stages []models.StageResult) {
	order := make([]int, 0, len(stages))
	for i := range stages {
		if stages[i].Error == "" && stages[i].Confidence > 0 {
			order = append(order, i)
		}
	}
	if len(order) == 0 {
		result.PrimarySource = models.SourceNone
		return
	}
	sort.SliceStable(order, func(a, b int) bool {
		return stages[order[a]].Confidence > stages[order[b]].Confidence
	})

	winner := stages[order[0]]
	result.PrimarySource = winner.Source
	result.Confidence = winner.Confidence

	fill := func(dst *string, get func(models.StageResult) string) {
		for _, i := range order {
			if *dst != "" {
				return
			}
			*dst = get(stages[i])
		}
	}
	fill(&result.Brand, func(s models.StageResult) string { return s.Brand })
	fill(&result.ProductName, func(s models.StageResult) string { return s.ProductName })
	fill(&result.ImageURL, func(s models.StageResult) string { return s.ImageURL })
	fill(&result.Category, func(s models.StageResult) string { return s.Category })
	fill(&result.Description, func(s models.StageResult) string { return s.Description })
	for _, i := range order {
		if stages[i].Price != "" {
			result.Price = stages[i].Price
			result.Currency = stages[i].Currency
			break
		}
	}
	for _, i := range order {
		if stages[i].Availability != "" {
			result.Availability = stages[i].Availability
			break
		}
	}

	result.ProductName = RemoveBrandPrefix(result.ProductName, result.Brand)
	if result.Brand != "" && result.ProductName != "" {
		result.FullName = result.Brand + " " + result.ProductName
	} else {
		result.FullName = result.ProductName
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// appendDistinct adds p unless an existing part already contains it. A part
// that p contains is replaced by p.
func appendDistinct(parts []string, p string) []string {
	lp := strings.ToLower(p)
	for i, existing := range parts {
		le := strings.ToLower(existing)
		if strings.Contains(le, lp) {
			return parts
		}
		if strings.Contains(lp, le) {
			parts[i] = p
			return parts
		}
	}
	return append(parts, p)
}
