package api

import (
	"net/http"

	"github.com/teedgg/linkintel"
	"github.com/teedgg/linkintel/metrics"
	"github.com/teedgg/linkintel/models"
)

// batchURLs resolves a batch request into its URL list, responding with
// an error and returning false when the batch is empty or too large
func batchURLs(w http.ResponseWriter, req models.BatchRequest) ([]string, bool) {
	urls := req.URLs
	if len(urls) == 0 && req.Text != "" {
		urls = linkintel.ParseURLsFromInput(req.Text)
	}
	if len(urls) == 0 {
		respondError(w, http.StatusBadRequest, "urls or text is required")
		return nil, false
	}
	if len(urls) > linkintel.MaxInputURLs {
		respondError(w, http.StatusBadRequest, "too many urls")
		return nil, false
	}
	return urls, true
}

// cacheKey is the normalized form of a URL, or the URL itself when it
// does not normalize
func cacheKey(raw string) string {
	if normalized, err := linkintel.NormalizeURL(raw); err == nil {
		return normalized
	}
	return raw
}

// healthKey is the URL a health check actually fetches. Tracking
// parameters are kept so URLs that differ only in them are checked apart.
func healthKey(raw string) string {
	if target, err := linkintel.HealthCheckURL(raw); err == nil {
		return target
	}
	return raw
}

// handleClassify classifies a single URL
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.URLRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	respondJSON(w, http.StatusOK, s.client.Classifier().Classify(req.URL))
}

// handleClassifyBatch classifies a list of URLs or the URLs found in text
func (s *Server) handleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	urls, ok := batchURLs(w, req)
	if !ok {
		return
	}

	results, summary := s.client.Classifier().ClassifyAll(urls)
	respondJSON(w, http.StatusOK, models.ClassifyBatchResponse{
		Results: results,
		Summary: summary,
	})
}

// handleParse returns the embed or social descriptor of a URL
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.URLRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	classifier := s.client.Classifier()
	resp := models.ParseResponse{
		URL:            req.URL,
		Classification: classifier.Classify(req.URL),
	}
	switch resp.Classification.Type {
	case models.LinkTypeEmbed:
		resp.Embed = classifier.ParseEmbedURL(req.URL)
	case models.LinkTypeSocial:
		resp.Social = classifier.ParseSocialProfileURL(req.URL)
	}
	if resp.Embed == nil && resp.Social == nil {
		respondError(w, http.StatusUnprocessableEntity, "url is not an embed or social profile")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleOEmbedPlatforms lists the platforms whose content can be enriched
// with oEmbed metadata
func (s *Server) handleOEmbedPlatforms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"platforms": s.client.OEmbedPlatforms(),
	})
}

// handleOEmbed fetches oEmbed metadata for an embed URL
func (s *Server) handleOEmbed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.URLRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	embed := s.client.Classifier().ParseEmbedURL(req.URL)
	if embed == nil {
		respondError(w, http.StatusBadRequest, "url is not a supported embed")
		return
	}

	ctx := r.Context()
	key := cacheKey(req.URL)
	if s.cache != nil {
		meta, hit := s.cache.GetOEmbed(ctx, key)
		metrics.RecordCache("oembed", hit)
		if hit {
			embed.OEmbed = meta
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"embed":  embed,
				"cached": true,
			})
			return
		}
	}

	meta := s.client.FetchOEmbed(ctx, embed.OriginalURL, embed.Platform)
	metrics.RecordOEmbed(embed.Platform, meta != nil)
	if meta == nil {
		respondError(w, http.StatusNotFound, "no oembed metadata available")
		return
	}

	if s.cache != nil {
		if err := s.cache.SetOEmbed(ctx, key, meta); err != nil {
			s.log.Warn("failed to cache oembed metadata", "url", key, "error", err)
		}
	}

	embed.OEmbed = meta
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"embed":  embed,
		"cached": false,
	})
}

// analyzeOptions returns the library options requested by opts
func analyzeOptions(opts models.AnalyzeRequestOptions) linkintel.AnalyzeOptions {
	result := linkintel.DefaultAnalyzeOptions()
	if opts.FetchOEmbed != nil {
		result.FetchOEmbed = *opts.FetchOEmbed
	}
	if opts.ExtractProduct != nil {
		result.ExtractProduct = *opts.ExtractProduct
	}
	result.CheckHealth = opts.CheckHealth
	result.SkipAI = opts.SkipAI
	return result
}

// recordAnalysis updates metrics, caches and the snapshot archive with an
// analysis result. Failures are logged.
func (s *Server) recordAnalysis(r *http.Request, result models.AnalysisResult) {
	ctx := r.Context()
	metrics.RecordAnalysis(result)

	if s.cache != nil {
		if result.Embed != nil && result.Embed.OEmbed != nil {
			if err := s.cache.SetOEmbed(ctx, cacheKey(result.URL), result.Embed.OEmbed); err != nil {
				s.log.Warn("failed to cache oembed metadata", "url", result.URL, "error", err)
			}
		}
		if result.Health != nil {
			if err := s.cache.SetHealth(ctx, healthKey(result.URL), *result.Health); err != nil {
				s.log.Warn("failed to cache health result", "url", result.URL, "error", err)
			}
		}
	}
	if result.Health != nil {
		s.recordHealth(*result.Health)
	}

	if s.archive != nil {
		if _, err := s.archive.SaveAnalysis(ctx, result); err != nil {
			s.log.Warn("failed to archive analysis", "id", result.ID, "url", result.URL, "error", err)
		}
	}
}

// handleAnalyze runs the full analysis of one URL
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.AnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	result := s.client.AnalyzeURL(r.Context(), req.URL, analyzeOptions(req.Options))
	s.recordAnalysis(r, result)

	respondJSON(w, http.StatusOK, result)
}

// handleAnalyzeBatch analyzes a list of URLs or the URLs found in text
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.AnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	urls, ok := batchURLs(w, models.BatchRequest{URLs: req.URLs, Text: req.Text})
	if !ok {
		return
	}

	results := s.client.AnalyzeURLs(r.Context(), urls, analyzeOptions(req.Options))
	for _, result := range results {
		s.recordAnalysis(r, result)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"total":   len(results),
	})
}

// recordHealth updates metrics and the product library with a health result
func (s *Server) recordHealth(result models.HealthResult) {
	metrics.RecordHealth(result.Status)
	if s.products == nil {
		return
	}
	if err := s.products.RecordHealth(result); err != nil {
		s.log.Warn("failed to record product health", "url", result.URL, "error", err)
	}
}

// cachedHealth returns a cached health result for url
func (s *Server) cachedHealth(r *http.Request, url string) (*models.HealthResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	result, hit := s.cache.GetHealth(r.Context(), healthKey(url))
	metrics.RecordCache("health", hit)
	return result, hit
}

func (s *Server) storeHealth(r *http.Request, url string, result models.HealthResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetHealth(r.Context(), healthKey(url), result); err != nil {
		s.log.Warn("failed to cache health result", "url", url, "error", err)
	}
}

// handleHealthCheck checks whether a URL is alive
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.URLRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	if cached, hit := s.cachedHealth(r, req.URL); hit {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	result := s.client.CheckURLHealth(r.Context(), req.URL)
	s.storeHealth(r, req.URL, result)
	s.recordHealth(result)

	respondJSON(w, http.StatusOK, result)
}

// handleHealthCheckBatch checks a list of URLs and aggregates the results
func (s *Server) handleHealthCheckBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	urls, ok := batchURLs(w, req)
	if !ok {
		return
	}

	results := make([]models.HealthResult, len(urls))
	var missing []string
	var missingIdx []int
	for i, u := range urls {
		if cached, hit := s.cachedHealth(r, u); hit {
			results[i] = *cached
			continue
		}
		missing = append(missing, u)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		checked := s.client.BatchCheckURLHealth(r.Context(), missing, s.healthBatch)
		for j, result := range checked {
			results[missingIdx[j]] = result
			s.storeHealth(r, missing[j], result)
			s.recordHealth(result)
		}
	}

	respondJSON(w, http.StatusOK, models.HealthBatchResponse{
		Results: results,
		Stats:   linkintel.CalculateHealthStats(results),
	})
}
