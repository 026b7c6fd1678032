package slug

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLength = 100

var (
	nonSlugChars   = regexp.MustCompile("[^a-z0-9-]+")
	repeatedDashes = regexp.MustCompile("-+")
	// identifierSegment matches path segments that are ids rather than words
	identifierSegment = regexp.MustCompile(`^(?:[0-9]+|[A-Z0-9]{8,}|[a-f0-9-]{16,})$`)
	fileExtension     = regexp.MustCompile(`\.(?:html?|php|aspx?|jsp|p)$`)
)

// segments that only say "this is a product page"
var structuralSegments = map[string]struct{}{
	"p": {}, "product": {}, "products": {}, "pd": {}, "dp": {}, "item": {},
	"items": {}, "itm": {}, "ip": {}, "detail": {}, "details": {}, "view": {},
	"gp": {}, "shop": {}, "store": {}, "site": {}, "listing": {}, "buy": {},
	"en": {}, "us": {}, "en-us": {}, "en-gb": {}, "-": {},
}

// Generate creates a URL-friendly slug from a string
func Generate(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = transliterate(s)

	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = repeatedDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxLength {
		s = s[:maxLength]
		s = strings.TrimRight(s, "-")
	}

	return s
}

// GenerateWithFallback generates a slug, falling back to a default if the input produces an empty slug
func GenerateWithFallback(s, fallback string) string {
	slug := Generate(s)
	if slug == "" {
		return Generate(fallback)
	}
	return slug
}

// transliterate converts unicode characters to ASCII equivalents
func transliterate(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// isMn checks if a rune is a nonspacing mark (accents, diacritics)
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// MakeUnique appends a number to a slug to make it unique
func MakeUnique(slug string, counter int) string {
	if counter <= 0 {
		return slug
	}
	return slug + "-" + strconv.Itoa(counter)
}

// FromProductURL derives a slug from the most descriptive segment of a
// product URL path, skipping ids and structural segments like /dp/ or /p/
func FromProductURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	best := ""
	for _, seg := range strings.Split(u.Path, "/") {
		seg, _ = url.PathUnescape(seg)
		seg = fileExtension.ReplaceAllString(seg, "")
		if seg == "" || identifierSegment.MatchString(seg) {
			continue
		}
		if _, ok := structuralSegments[strings.ToLower(seg)]; ok {
			continue
		}
		// Prefer segments with several words
		if strings.Count(seg, "-")+strings.Count(seg, "_") > strings.Count(best, "-")+strings.Count(best, "_") {
			best = seg
		}
		if best == "" {
			best = seg
		}
	}
	return Generate(best)
}

// Humanize turns a slug back into space-separated words
func Humanize(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || r == '+'
	})
	return strings.Join(words, " ")
}

// FromProduct builds a product slug from its brand and name, falling back to
// the product URL
func FromProduct(brand, name, productURL string) string {
	title := strings.TrimSpace(brand + " " + name)
	if b := strings.TrimSpace(brand); b != "" && strings.HasPrefix(strings.ToLower(name), strings.ToLower(b)) {
		title = name
	}
	return GenerateWithFallback(title, FromProductURL(productURL))
}
