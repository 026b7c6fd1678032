package linkintel

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/teedgg/linkintel/platforms"
	"golang.org/x/net/html"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	storePrefix       = regexp.MustCompile(`(?i)^(?:amazon\.[a-z.]+|walmart\.com|target)\s*:\s*`)
	pricePattern      = regexp.MustCompile(`(?i)(\$|£|€|usd|eur|gbp|cad|aud)\s?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?|\d+(?:\.\d{2})?)`)

	// Trailing title segments after these separators name the site
	hardTitleSeparators = []string{" | ", " – ", " — ", " :: ", " · "}

	strongBotMarkers = []string{
		"cf-browser-verification",
		"cf-challenge",
		"challenge-platform",
		"checking your browser before accessing",
		"px-captcha",
		"/errors/validatecaptcha",
		"incapsula incident",
		"enable javascript and cookies to continue",
		"please verify you are a human",
	}
	weakBotMarkers = []string{
		"captcha",
		"access denied",
		"are you a robot",
		"robot check",
		"just a moment...",
		"request blocked",
	}
)

// weakBotPageSize bounds the pages weak markers apply to. Real product pages
// are much larger and may mention a captcha in a login form.
const weakBotPageSize = 20 * 1024

var currencySymbols = map[string]string{
	"$": "USD", "£": "GBP", "€": "EUR",
	"usd": "USD", "eur": "EUR", "gbp": "GBP", "cad": "CAD", "aud": "AUD",
}

// CleanTitle strips site names, store prefixes and redundant whitespace from
// a page title
func CleanTitle(s string) string {
	t := strings.TrimSpace(whitespacePattern.ReplaceAllString(html.UnescapeString(s), " "))
	t = storePrefix.ReplaceAllString(t, "")

	for _, sep := range hardTitleSeparators {
		if i := strings.Index(t, sep); i > 0 {
			t = t[:i]
		}
	}
	// " - " also appears inside product names, so only drop a short tail
	if i := strings.LastIndex(t, " - "); i > 0 {
		tail := t[i+3:]
		if len(tail) <= 30 && len(strings.Fields(tail)) <= 3 && len(t[:i]) >= 8 {
			t = t[:i]
		}
	}
	return strings.TrimSpace(t)
}

// RemoveBrandPrefix drops a leading brand from a product name. The name is
// returned unchanged when nothing would remain.
func RemoveBrandPrefix(name, brand string) string {
	name = strings.TrimSpace(name)
	brand = strings.TrimSpace(brand)
	if brand == "" || len(name) <= len(brand) {
		return name
	}
	if !strings.EqualFold(name[:len(brand)], brand) {
		return name
	}
	next := []rune(name[len(brand):])
	if len(next) > 0 && (unicode.IsLetter(next[0]) || unicode.IsDigit(next[0])) {
		// "Nikon" does not prefix "Nikonos"
		return name
	}
	rest := strings.TrimLeftFunc(name[len(brand):], func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == ':' || r == '|' || r == '®' || r == '™' || r == ','
	})
	if rest == "" {
		return name
	}
	return rest
}

// DetectBotProtection reports whether htmlDoc is a challenge or block page
// served instead of the requested content
func DetectBotProtection(htmlDoc string) bool {
	lower := strings.ToLower(htmlDoc)
	for _, m := range strongBotMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	if len(lower) > weakBotPageSize {
		return false
	}
	for _, m := range weakBotMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// findPrice returns the first price-looking amount in text with its ISO currency
func findPrice(text string) (price, currency string) {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	return strings.ReplaceAll(m[2], ",", ""), currencySymbols[strings.ToLower(m[1])]
}

// BrandInfo describes the brand a store domain belongs to
type BrandInfo struct {
	Domain   string
	Name     string
	Category string
	Tier     platforms.Tier
	Retailer bool
}

// BrandFromDomain looks up the brand sold on domain, falling back to the
// root domain
func BrandFromDomain(domain string) (BrandInfo, bool) {
	b, ok := platforms.BrandForDomain(domain)
	if !ok {
		return BrandInfo{}, false
	}
	return BrandInfo{
		Domain:   b.Domain,
		Name:     b.Name,
		Category: b.Category,
		Tier:     b.Tier,
		Retailer: b.Retailer,
	}, true
}

// IsRetailerDomain reports whether domain is a multi-brand retailer or a
// registered marketplace
func IsRetailerDomain(domain string) bool {
	if b, ok := platforms.BrandForDomain(domain); ok && b.Retailer {
		return true
	}
	def, ok := platforms.Default().ByDomain(domain)
	return ok && def.Category == platforms.CategoryShopping && len(def.Products) > 0
}

// extractText returns the visible text of a node, skipping scripts and styles
func extractText(n *html.Node) string {
	var buf strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.TrimSpace(buf.String())
}

// extractTextFromNode joins the text nodes under n
func extractTextFromNode(n *html.Node) string {
	var parts []string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.Join(parts, " ")
}
