package linkintel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/teedgg/linkintel/models"
	"go.opentelemetry.io/otel/attribute"
)

const maxRedirects = 5

// soft404Patterns are phrases that only appear when the requested content
// is gone. Bare "not found" or "404" substrings never match.
var soft404Patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)this\s+item\s+is\s+(?:no\s+longer|not)\s+available`),
	regexp.MustCompile(`(?i)(?:product|item)\s+(?:was\s+)?not\s+found`),
	regexp.MustCompile(`(?i)(?:product|item|page)\s+(?:is\s+)?no\s+longer\s+(?:available|found|exists)`),
	regexp.MustCompile(`(?i)page\s+(?:you\s+requested\s+)?(?:could\s+not\s+be|cannot\s+be)\s+found`),
	regexp.MustCompile(`(?i)\bpage\s+not\s+found\b`),
	regexp.MustCompile(`(?i)has\s+been\s+(?:removed|discontinued)`),
	regexp.MustCompile(`(?i)no\s+longer\s+(?:sold|carried)`),
	regexp.MustCompile(`(?i)we\s+couldn'?t\s+find\s+(?:that|the|this)\s+(?:page|product|item)`),
	regexp.MustCompile(`(?i)(?:page|product)\s+(?:you'?re|you\s+are)\s+looking\s+for\s+(?:doesn'?t|does\s+not)\s+exist`),
	regexp.MustCompile(`(?i)video\s+(?:has\s+been\s+|is\s+)?(?:removed|deleted|unavailable)`),
	regexp.MustCompile(`(?i)this\s+(?:page|content|account)\s+isn'?t\s+available`),
	regexp.MustCompile(`(?i)account\s+(?:has\s+been\s+)?(?:suspended|deleted|terminated)`),
	regexp.MustCompile(`(?i)sorry,?\s+this\s+(?:page|listing)\s+(?:is\s+)?(?:unavailable|has\s+ended)`),
}

// validPagePatterns indicate a live product page and override soft 404 matches
var validPagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)add\s+to\s+(?:cart|bag|basket)`),
	regexp.MustCompile(`(?i)buy\s+(?:it\s+)?now`),
	regexp.MustCompile(`(?i)\bin\s+stock\b`),
	regexp.MustCompile(`(?i)schema\.org/InStock`),
}

var availabilityPatterns = []struct {
	availability models.Availability
	patterns     []*regexp.Regexp
}{
	{models.AvailabilityDiscontinued, []*regexp.Regexp{
		regexp.MustCompile(`(?i)discontinued`),
		regexp.MustCompile(`(?i)no\s+longer\s+(?:sold|available|carried)`),
	}},
	{models.AvailabilityPreorder, []*regexp.Regexp{
		regexp.MustCompile(`(?i)pre-?order`),
		regexp.MustCompile(`(?i)coming\s+soon`),
	}},
	{models.AvailabilityOutOfStock, []*regexp.Regexp{
		regexp.MustCompile(`(?i)out\s+of\s+stock`),
		regexp.MustCompile(`(?i)sold\s+out`),
		regexp.MustCompile(`(?i)currently\s+unavailable`),
		regexp.MustCompile(`(?i)notify\s+me\s+when`),
		regexp.MustCompile(`(?i)email\s+(?:me\s+)?when\s+available`),
		regexp.MustCompile(`(?i)schema\.org/OutOfStock`),
	}},
	{models.AvailabilityInStock, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bin\s*stock\b`),
		regexp.MustCompile(`(?i)add\s+to\s+(?:cart|bag|basket)`),
		regexp.MustCompile(`(?i)buy\s+now`),
		regexp.MustCompile(`(?i)schema\.org/InStock`),
	}},
}

// userAgents rotate through health checks when Config.BrowserUserAgents is set
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// DetectSoft404 reports whether a 200 page body says its content is gone,
// with the phrase that matched
func DetectSoft404(htmlDoc string) (bool, string) {
	for _, p := range validPagePatterns {
		if p.MatchString(htmlDoc) {
			return false, ""
		}
	}
	for _, p := range soft404Patterns {
		if m := p.FindString(htmlDoc); m != "" {
			return true, fmt.Sprintf("matched phrase %q", m)
		}
	}
	return false, ""
}

// DetectAvailability reads the stock state a product page advertises.
// Discontinued beats preorder, which beats out of stock, which beats in stock.
func DetectAvailability(htmlDoc string) models.Availability {
	for _, group := range availabilityPatterns {
		for _, p := range group.patterns {
			if p.MatchString(htmlDoc) {
				return group.availability
			}
		}
	}
	return models.AvailabilityUnknown
}

// HealthCheckURL returns the URL CheckURLHealth fetches for target. Unlike
// NormalizeURL it keeps tracking parameters, which can change the response.
func HealthCheckURL(target string) (string, error) {
	return normalizeURL(target, true)
}

// CheckURLHealth checks whether target still resolves. It sends HEAD,
// falling back to GET when HEAD fails or is not allowed, follows up to five
// redirects, and inspects the body of live pages for soft 404s.
func (c *Client) CheckURLHealth(ctx context.Context, target string) (result models.HealthResult) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "linkintel.CheckURLHealth")
	defer span.End()

	result = models.HealthResult{
		URL:       target,
		Status:    models.HealthError,
		CheckedAt: start.UTC(),
	}
	defer func() {
		result.ResponseTimeMs = time.Since(start).Milliseconds()
		span.SetAttributes(attribute.String("status", string(result.Status)))
	}()

	normalized, err := HealthCheckURL(target)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if !strings.HasPrefix(normalized, "http") {
		result.Error = fmt.Sprintf("%v: not an http URL", ErrInvalidURL)
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	current := normalized
	var resp *http.Response
	for {
		resp, err = c.request(ctx, current)
		if err != nil {
			break
		}
		if resp.StatusCode < 300 || resp.StatusCode > 399 {
			break
		}
		location := resp.Header.Get("Location")
		resp.Body.Close()
		if location == "" {
			break
		}
		result.RedirectChain = append(result.RedirectChain, models.RedirectStep{URL: current, StatusCode: resp.StatusCode})
		if len(result.RedirectChain) > maxRedirects {
			err = fmt.Errorf("stopped after %d redirects", maxRedirects)
			break
		}
		next, perr := resolveAgainst(current, location)
		if perr != nil {
			err = fmt.Errorf("bad redirect location %q: %w", location, perr)
			break
		}
		current = next
	}
	if current != normalized {
		result.FinalURL = current
	}

	if err != nil {
		if isTimeout(err) {
			result.Status = models.HealthTimeout
			result.Error = "request timed out"
		} else {
			result.Error = err.Error()
		}
		c.logger.Debug("health check failed", "url", target, "error", err)
		return result
	}
	defer resp.Body.Close()

	result.HTTPStatus = resp.StatusCode
	code := resp.StatusCode
	switch {
	case code >= 200 && code <= 299:
		result.Status = models.HealthHealthy
		result.Alive = true
		body, berr := c.readHealthBody(ctx, resp, current)
		if berr != nil {
			c.logger.Debug("health check body unavailable", "url", current, "error", berr)
			break
		}
		if dead, reason := DetectSoft404(body); dead {
			result.Status = models.HealthSoft404
			result.SoftDead = true
			result.Soft404Reason = reason
		} else {
			result.Availability = DetectAvailability(body)
		}
	case code == http.StatusForbidden || code == http.StatusTooManyRequests:
		result.Status = models.HealthBlocked
		result.Alive = true
	case code == http.StatusNotFound || code == http.StatusGone:
		result.Status = models.HealthBroken
	case code >= 500:
		result.Status = models.HealthUnavailable
	default:
		result.Status = models.HealthError
	}
	return result
}

// request sends HEAD without following redirects, retrying as GET when the
// server rejects HEAD
func (c *Client) request(ctx context.Context, target string) (*http.Response, error) {
	resp, err := c.doNoRedirect(ctx, http.MethodHead, target)
	if err == nil && resp.StatusCode != http.StatusMethodNotAllowed && resp.StatusCode != http.StatusNotImplemented {
		return resp, nil
	}
	if err == nil {
		resp.Body.Close()
	} else if isTimeout(err) {
		return nil, err
	}
	return c.doNoRedirect(ctx, http.MethodGet, target)
}

func (c *Client) doNoRedirect(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.healthUserAgent())
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	client := *c.httpClient
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client.Do(req)
}

// readHealthBody returns the page body for content checks. HEAD responses are
// followed by a GET.
func (c *Client) readHealthBody(ctx context.Context, resp *http.Response, target string) (string, error) {
	if resp.Request != nil && resp.Request.Method == http.MethodGet {
		body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxPageBytes))
		return string(body), err
	}
	page := c.fetchPage(ctx, target, 0)
	if !page.ok() {
		return "", page.err
	}
	return page.html(), nil
}

func (c *Client) healthUserAgent() string {
	if c.config.BrowserUserAgents {
		return userAgents[rand.IntN(len(userAgents))]
	}
	return c.config.UserAgent
}

func resolveAgainst(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return resolveURL(b, ref)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// BatchOptions control batch health checks
type BatchOptions struct {
	Concurrency int           // URLs checked at once, default 3
	Delay       time.Duration // pause between groups, default 1s
}

// BatchCheckURLHealth checks urls in groups of Concurrency, pausing Delay
// between groups. Results are in input order.
func (c *Client) BatchCheckURLHealth(ctx context.Context, urls []string, opts BatchOptions) []models.HealthResult {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 3
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}

	results := make([]models.HealthResult, len(urls))
	for i := 0; i < len(urls); i += opts.Concurrency {
		end := min(i+opts.Concurrency, len(urls))

		var wg sync.WaitGroup
		for j := i; j < end; j++ {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				results[j] = c.CheckURLHealth(ctx, urls[j])
			}(j)
		}
		wg.Wait()

		if end < len(urls) && opts.Delay > 0 {
			select {
			case <-time.After(opts.Delay):
			case <-ctx.Done():
			}
		}
	}
	return results
}

// CalculateHealthStats aggregates health results
func CalculateHealthStats(results []models.HealthResult) models.HealthStats {
	stats := models.HealthStats{
		Total:    len(results),
		ByStatus: make(map[models.HealthStatus]int),
	}
	if len(results) == 0 {
		return stats
	}

	var totalMs int64
	redirected := 0
	for _, r := range results {
		stats.ByStatus[r.Status]++
		if r.Alive {
			stats.Alive++
		}
		if r.SoftDead {
			stats.SoftDead++
		}
		totalMs += r.ResponseTimeMs
		if len(r.RedirectChain) > 0 {
			redirected++
		}
	}
	stats.AvgResponseTimeMs = int64(math.Round(float64(totalMs) / float64(len(results))))
	stats.RedirectedPercent = math.Round(float64(redirected)/float64(len(results))*1000) / 10
	return stats
}
