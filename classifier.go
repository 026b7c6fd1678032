package linkintel

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/teedgg/linkintel/models"
	"github.com/teedgg/linkintel/platforms"
)

// MaxInputURLs caps how many URLs ParseURLsFromInput returns
const MaxInputURLs = 25

// trackingParams are query parameters that identify a campaign or referrer
// and never change which resource a URL points at
var trackingParams = map[string]struct{}{
	"fbclid": {}, "fb_action_ids": {}, "fb_action_types": {}, "fb_source": {},
	"gclid": {}, "gclsrc": {}, "dclid": {}, "msclkid": {}, "twclid": {},
	"ref": {}, "ref_src": {}, "ref_url": {}, "referer": {}, "referrer": {},
	"s": {}, "t": {}, "epik": {}, "share_source": {}, "sender_device": {},
	"sender_web_id": {}, "mc_cid": {}, "mc_eid": {}, "_ga": {}, "_gl": {},
	"yclid": {}, "zanpid": {},
}

// productPathSegments are path segments retailers use for product detail pages
var productPathSegments = map[string]struct{}{
	"p": {}, "product": {}, "products": {}, "pd": {}, "dp": {}, "item": {},
	"items": {}, "detail": {}, "details": {}, "view": {}, "gp": {},
}

var (
	asinPattern        = regexp.MustCompile(`(?:^|/)B0[A-Z0-9]{8,10}(?:/|$)`)
	productQueryParams = []string{"sku", "pid", "product_id", "productid", "item_id"}
)

// ClassifierOptions configure a Classifier
type ClassifierOptions struct {
	Registry     *platforms.Registry // defaults to platforms.Default()
	KeepTracking bool
	Thresholds   Thresholds
}

// Classifier resolves URLs to link types. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	registry     *platforms.Registry
	keepTracking bool
	thresholds   Thresholds
}

// NewClassifier creates a classifier
func NewClassifier(opts ClassifierOptions) *Classifier {
	if opts.Registry == nil {
		opts.Registry = platforms.Default()
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	return &Classifier{
		registry:     opts.Registry,
		keepTracking: opts.KeepTracking,
		thresholds:   opts.Thresholds,
	}
}

var defaultClassifier = sync.OnceValue(func() *Classifier {
	return NewClassifier(ClassifierOptions{})
})

// Registry returns the platform registry the classifier matches against
func (c *Classifier) Registry() *platforms.Registry {
	return c.registry
}

// ClassifyURL classifies raw with the built-in registry
func ClassifyURL(raw string) models.ClassificationResult {
	return defaultClassifier().Classify(raw)
}

// ClassifyURLs classifies each URL and counts the results by type
func ClassifyURLs(urls []string) ([]models.ClassificationResult, models.ClassificationSummary) {
	return defaultClassifier().ClassifyAll(urls)
}

// Classify resolves raw to exactly one link type. Registered URL shapes are
// tried first (embed, then profile, then product), then retailer domains,
// then the product path heuristic. Malformed input yields unknown.
func (c *Classifier) Classify(raw string) models.ClassificationResult {
	result := models.ClassificationResult{
		URL:      raw,
		Type:     models.LinkTypeUnknown,
		Platform: models.UnknownPlatform,
	}

	normalized, err := normalizeURL(raw, c.keepTracking)
	if err != nil {
		return result
	}
	result.NormalizedURL = normalized

	if m, ok := c.registry.Match(normalized); ok {
		result.Platform = m.Platform.ID
		result.Confidence = c.thresholds.ExactMatch
		switch m.Kind {
		case platforms.KindEmbed:
			result.Type = models.LinkTypeEmbed
		case platforms.KindSocial:
			result.Type = models.LinkTypeSocial
		case platforms.KindProduct:
			result.Type = models.LinkTypeProduct
		}
		return result
	}

	u, err := url.Parse(normalized)
	if err != nil || u.Host == "" {
		// mailto addresses that failed the email pattern
		return result
	}

	if def, ok := c.registry.ByDomain(u.Hostname()); ok {
		switch def.Category {
		case platforms.CategoryShopping:
			result.Type = models.LinkTypeProduct
			result.Platform = def.ID
			result.Confidence = c.thresholds.RetailerDomain
			if hasProductPath(u) {
				result.Confidence = c.thresholds.RetailerProductPath
			}
		case platforms.CategoryVideo, platforms.CategoryMusic, platforms.CategorySocial, platforms.CategoryOther:
			// Content platform pages that are neither content nor accounts,
			// such as reserved paths and listings.
		}
		return result
	}

	if hasProductPath(u) {
		result.Type = models.LinkTypeProduct
		result.Confidence = c.thresholds.ProductHeuristic
	}
	return result
}

// ClassifyAll classifies each URL in order and counts the results by type
func (c *Classifier) ClassifyAll(urls []string) ([]models.ClassificationResult, models.ClassificationSummary) {
	results := make([]models.ClassificationResult, 0, len(urls))
	summary := models.ClassificationSummary{Total: len(urls)}
	for _, u := range urls {
		r := c.Classify(u)
		switch r.Type {
		case models.LinkTypeEmbed:
			summary.Embeds++
		case models.LinkTypeSocial:
			summary.Socials++
		case models.LinkTypeProduct:
			summary.Products++
		case models.LinkTypeUnknown:
			summary.Unknown++
		}
		results = append(results, r)
	}
	return results, summary
}

// NormalizeURL trims raw, adds a missing https scheme, lowercases the scheme
// and host, drops the fragment and trailing slash, and strips tracking
// parameters. mailto links are returned trimmed but otherwise untouched.
func NormalizeURL(raw string) (string, error) {
	return normalizeURL(raw, false)
}

func normalizeURL(raw string, keepTracking bool) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidURL
	}
	if len(s) > 7 && strings.EqualFold(s[:7], "mailto:") {
		return s, nil
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	u.Host = strings.ToLower(u.Host)
	if !validHost(u.Hostname()) {
		return "", fmt.Errorf("%w: bad host %q", ErrInvalidURL, u.Host)
	}

	u.Fragment = ""
	u.RawFragment = ""
	if !keepTracking {
		u.RawQuery = stripTracking(u.RawQuery)
	}
	if strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawPath = strings.TrimRight(u.RawPath, "/")
	}
	return u.String(), nil
}

// stripTracking removes tracking parameters while keeping the order of the rest
func stripTracking(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	parts := strings.Split(rawQuery, "&")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		key := part
		if i := strings.IndexByte(part, '='); i >= 0 {
			key = part[:i]
		}
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if isTrackingParam(key) {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "&")
}

func isTrackingParam(key string) bool {
	k := strings.ToLower(key)
	if strings.HasPrefix(k, "utm_") {
		return true
	}
	_, ok := trackingParams[k]
	return ok
}

// validHost accepts IP addresses, localhost and dotted names with an
// alphabetic top-level label
func validHost(host string) bool {
	if host == "" {
		return false
	}
	if host == "localhost" || net.ParseIP(host) != nil {
		return true
	}
	labels := strings.Split(strings.TrimSuffix(host, "."), ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" || len(l) > 63 {
			return false
		}
	}
	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if (r < 'a' || r > 'z') && r != '-' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// IsValidURL reports whether raw normalizes to an absolute http(s) or mailto URL
func IsValidURL(raw string) bool {
	_, err := NormalizeURL(raw)
	return err == nil
}

// ExtractDomain returns the normalized host of raw without www., or "" if
// raw is not a valid URL
func ExtractDomain(raw string) string {
	normalized, err := NormalizeURL(raw)
	if err != nil {
		return ""
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	return platforms.NormalizeDomain(u.Hostname())
}

func hasProductPath(u *url.URL) bool {
	for _, seg := range strings.Split(u.Path, "/") {
		if _, ok := productPathSegments[strings.ToLower(seg)]; ok {
			return true
		}
	}
	if asinPattern.MatchString(u.Path) {
		return true
	}
	q := u.Query()
	for _, key := range productQueryParams {
		if q.Get(key) != "" {
			return true
		}
	}
	return false
}

// ParseURLsFromInput splits free text on newlines, commas and whitespace and
// returns the distinct normalized URLs it contains, at most MaxInputURLs
func ParseURLsFromInput(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})

	seen := make(map[string]struct{}, len(fields))
	var urls []string
	for _, f := range fields {
		f = strings.Trim(f, "<>\"'()[]")
		if f == "" || (!strings.Contains(f, "://") && !strings.Contains(f, ".")) {
			continue
		}
		normalized, err := NormalizeURL(f)
		if err != nil {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		urls = append(urls, normalized)
		if len(urls) == MaxInputURLs {
			break
		}
	}
	return urls
}
