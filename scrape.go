package linkintel

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/teedgg/linkintel/models"
	"golang.org/x/net/html"
)

const (
	minImageDimension = 200
	maxImageMeasures  = 3
)

// imageCandidate is an <img> found on the page with its declared size
type imageCandidate struct {
	URL    string
	Alt    string
	Width  int
	Height int
}

func (i imageCandidate) declaredLarge() bool {
	return i.Width >= minImageDimension && i.Height >= minImageDimension
}

func (i imageCandidate) declared() bool {
	return i.Width > 0 || i.Height > 0
}

// scrapeStage reads the heading, the first large image and a price from the
// page body
func (c *Client) scrapeStage(ctx context.Context, doc *html.Node, base *url.URL, domain string) models.StageResult {
	stage := models.StageResult{Source: models.SourceScrape}

	title := CleanTitle(extractTitle(doc))
	stage.ProductName = title
	stage.ImageURL = c.firstLargeImage(ctx, extractImages(doc, base))
	stage.Price, stage.Currency = findPrice(extractText(doc))

	if brand, ok := BrandFromDomain(domain); ok && brand.Name != "" {
		stage.Brand = brand.Name
		stage.Category = brand.Category
	}

	t := c.config.Thresholds
	switch {
	case title != "" && stage.ImageURL != "":
		stage.Confidence = t.ScrapeFull
	case title != "":
		stage.Confidence = t.ScrapeTitle
	}
	if stage.Confidence > 0 && stage.Brand != "" {
		stage.Confidence += t.ScrapeBrand
	}
	return stage
}

// firstLargeImage returns the first image declared at least 200px on both
// sides, probing a few undeclared ones by decoding their headers
func (c *Client) firstLargeImage(ctx context.Context, images []imageCandidate) string {
	measured := 0
	for _, img := range images {
		if shouldSkipImage(img.URL) {
			continue
		}
		if img.declared() {
			if img.declaredLarge() {
				return img.URL
			}
			continue
		}
		if measured >= maxImageMeasures {
			continue
		}
		measured++
		w, h, err := c.measureImageSize(ctx, img.URL)
		if err != nil {
			c.logger.Debug("image measure failed", "url", img.URL, "error", err)
			continue
		}
		if w >= minImageDimension && h >= minImageDimension {
			return img.URL
		}
	}
	return ""
}

// extractTitle returns the first h1, falling back to the title tag
func extractTitle(n *html.Node) string {
	var h1Title, htmlTitle string

	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1":
				if h1Title == "" && n.FirstChild != nil {
					h1Title = extractTextFromNode(n)
				}
			case "title":
				if htmlTitle == "" && n.FirstChild != nil {
					htmlTitle = n.FirstChild.Data
				}
			case "script", "style", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)

	if h1Title != "" {
		return strings.TrimSpace(h1Title)
	}
	return strings.TrimSpace(htmlTitle)
}

func extractImages(n *html.Node, baseURL *url.URL) []imageCandidate {
	var images []imageCandidate
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			var img imageCandidate
			var src, dataSrc string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "src":
					src = attr.Val
				case "data-src", "data-old-hires":
					if dataSrc == "" {
						dataSrc = attr.Val
					}
				case "alt":
					img.Alt = attr.Val
				case "width":
					img.Width = parseDimension(attr.Val)
				case "height":
					img.Height = parseDimension(attr.Val)
				}
			}
			// Lazy-loaded images put a placeholder in src
			if dataSrc != "" && (src == "" || strings.HasPrefix(src, "data:")) {
				src = dataSrc
			}
			if src != "" && !strings.HasPrefix(src, "data:") {
				if imgURL, err := resolveURL(baseURL, src); err == nil {
					img.URL = imgURL
					images = append(images, img)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return images
}

func parseDimension(v string) int {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// shouldSkipImage reports whether an image URL looks like a placeholder, UI
// component or tracking pixel rather than product imagery
func shouldSkipImage(imageURL string) bool {
	urlLower := strings.ToLower(imageURL)

	skipKeywords := []string{
		"placeholder",
		"icon",
		"logo",
		"sprite",
		"avatar",
		"1x1",
		"pixel",
		"tracking",
		"spacer",
		"blank.",
		"transparent",
		"badge",
		"rating",
		"stars",
		"spinner",
		"loader",
		"loading",
		"banner",
		"promo",
	}

	for _, keyword := range skipKeywords {
		if strings.Contains(urlLower, keyword) {
			return true
		}
	}
	return false
}

// resolveURL resolves a potentially relative URL against a base URL
func resolveURL(base *url.URL, href string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	if base == nil {
		return parsed.String(), nil
	}
	return base.ResolveReference(parsed).String(), nil
}
