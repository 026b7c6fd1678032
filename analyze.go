package linkintel

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teedgg/linkintel/models"
	"go.opentelemetry.io/otel/attribute"
)

const analyzeConcurrency = 5

// AnalyzeOptions toggle the optional enrichments of AnalyzeURL
type AnalyzeOptions struct {
	FetchOEmbed    bool
	ExtractProduct bool
	CheckHealth    bool
	SkipAI         bool
}

// DefaultAnalyzeOptions fetch oEmbed metadata and extract products with AI,
// without health checks
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{FetchOEmbed: true, ExtractProduct: true}
}

// AnalyzeURL classifies target and runs the enrichment for its type: embeds
// are parsed and optionally enriched with oEmbed, profiles are parsed, and
// everything else goes through product extraction. A URL whose parse fails
// falls back to product extraction.
func (c *Client) AnalyzeURL(ctx context.Context, target string, opts AnalyzeOptions) models.AnalysisResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.config.AnalyzeTimeout)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, "linkintel.AnalyzeURL")
	defer span.End()

	result := models.AnalysisResult{
		ID:             uuid.New().String(),
		URL:            target,
		Classification: c.classifier.Classify(target),
		AnalyzedAt:     start.UTC(),
	}
	span.SetAttributes(
		attribute.String("type", string(result.Classification.Type)),
		attribute.String("platform", result.Classification.Platform),
	)

	extract := false
	switch result.Classification.Type {
	case models.LinkTypeEmbed:
		embed := c.classifier.ParseEmbedURL(target)
		if embed == nil {
			extract = true
			break
		}
		if opts.FetchOEmbed {
			embed = c.EnrichEmbed(ctx, embed)
			if embed.OEmbed == nil {
				result.Warnings = append(result.Warnings, "oEmbed metadata unavailable")
			}
		}
		result.Embed = embed
	case models.LinkTypeSocial:
		result.Social = c.classifier.ParseSocialProfileURL(target)
		extract = result.Social == nil
	case models.LinkTypeProduct, models.LinkTypeUnknown:
		extract = true
	}

	if extract && opts.ExtractProduct && result.Classification.NormalizedURL != "" {
		eo := FullExtractOptions()
		eo.UseAI = !opts.SkipAI
		product := c.ExtractProduct(ctx, target, eo)
		result.Product = &product
		result.Warnings = append(result.Warnings, product.Warnings...)
	}

	if opts.CheckHealth && result.Classification.NormalizedURL != "" {
		health := c.CheckURLHealth(ctx, target)
		result.Health = &health
	}

	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result
}

// AnalyzeURLs analyzes urls with a bounded worker pool. Results are in
// input order.
func (c *Client) AnalyzeURLs(ctx context.Context, urls []string, opts AnalyzeOptions) []models.AnalysisResult {
	type job struct {
		index int
		url   string
	}

	results := make([]models.AnalysisResult, len(urls))
	jobs := make(chan job)

	var wg sync.WaitGroup
	workers := min(analyzeConcurrency, len(urls))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = c.AnalyzeURL(ctx, j.url, opts)
			}
		}()
	}

	for i, u := range urls {
		jobs <- job{index: i, url: u}
	}
	close(jobs)
	wg.Wait()
	return results
}
