package linkintel

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/teedgg/linkintel/models"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

const (
	oembedMaxWidth    = 800
	oembedMaxHeight   = 600
	oembedConcurrency = 3
	maxOEmbedBytes    = 1 << 20
)

var oembedTypes = map[string]struct{}{
	"photo": {}, "video": {}, "link": {}, "rich": {},
}

// flexInt decodes integers that some providers send as strings
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	return f.UnmarshalText([]byte(strings.Trim(string(data), `"`)))
}

// UnmarshalText decodes the element text of XML responses
func (f *flexInt) UnmarshalText(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Values like "100%" carry no pixel size
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

type oembedResponse struct {
	Type            string  `json:"type" xml:"type"`
	Version         string  `json:"version" xml:"version"`
	Title           string  `json:"title" xml:"title"`
	AuthorName      string  `json:"author_name" xml:"author_name"`
	AuthorURL       string  `json:"author_url" xml:"author_url"`
	ProviderName    string  `json:"provider_name" xml:"provider_name"`
	ProviderURL     string  `json:"provider_url" xml:"provider_url"`
	ThumbnailURL    string  `json:"thumbnail_url" xml:"thumbnail_url"`
	ThumbnailWidth  flexInt `json:"thumbnail_width" xml:"thumbnail_width"`
	ThumbnailHeight flexInt `json:"thumbnail_height" xml:"thumbnail_height"`
	HTML            string  `json:"html" xml:"html"`
	Width           flexInt `json:"width" xml:"width"`
	Height          flexInt `json:"height" xml:"height"`
	CacheAge        flexInt `json:"cache_age" xml:"cache_age"`
}

// OEmbedRequestURL builds the provider request for contentURL. Non-positive
// sizes are omitted.
func OEmbedRequestURL(endpoint, contentURL string, maxWidth, maxHeight int) string {
	q := url.Values{}
	q.Set("url", contentURL)
	q.Set("format", "json")
	if maxWidth > 0 {
		q.Set("maxwidth", strconv.Itoa(maxWidth))
	}
	if maxHeight > 0 {
		q.Set("maxheight", strconv.Itoa(maxHeight))
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + q.Encode()
}

// FetchOEmbed fetches the provider's oEmbed metadata for contentURL. An empty
// platformID is resolved by classifying contentURL. It makes one attempt and
// returns nil on any failure.
func (c *Client) FetchOEmbed(ctx context.Context, contentURL, platformID string) *models.OEmbedMetadata {
	ctx, span := c.tracer.Start(ctx, "linkintel.FetchOEmbed")
	defer span.End()

	if platformID == "" {
		platformID = c.classifier.Classify(contentURL).Platform
	}
	def, ok := c.classifier.registry.Get(platformID)
	if !ok || !def.HasOEmbed() {
		return nil
	}
	span.SetAttributes(attribute.String("platform", platformID))

	meta, err := c.requestOEmbed(ctx, OEmbedRequestURL(def.OEmbedEndpoint, contentURL, oembedMaxWidth, oembedMaxHeight))
	if err != nil {
		c.logger.Debug("oembed fetch failed", "url", contentURL, "platform", platformID, "error", err)
		return nil
	}
	return meta
}

func (c *Client) requestOEmbed(ctx context.Context, requestURL string) (*models.OEmbedMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.OEmbedTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/xml;q=0.9")
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch oembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxOEmbedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read oembed: %w", err)
	}
	return decodeOEmbed(body)
}

// decodeOEmbed reads a JSON response, or the XML format when the body
// starts with markup
func decodeOEmbed(body []byte) (*models.OEmbedMetadata, error) {
	var raw oembedResponse
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '<' {
		if err := xml.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode oembed xml: %w", err)
		}
	} else if err := json.NewDecoder(bytes.NewReader(body)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode oembed: %w", err)
	}

	t := strings.ToLower(raw.Type)
	if _, ok := oembedTypes[t]; !ok {
		return nil, fmt.Errorf("invalid oembed type %q", raw.Type)
	}
	version := raw.Version
	if version == "" {
		version = "1.0"
	}
	return &models.OEmbedMetadata{
		Type:            t,
		Version:         version,
		Title:           raw.Title,
		AuthorName:      raw.AuthorName,
		AuthorURL:       raw.AuthorURL,
		ProviderName:    raw.ProviderName,
		ProviderURL:     raw.ProviderURL,
		ThumbnailURL:    raw.ThumbnailURL,
		ThumbnailWidth:  int(raw.ThumbnailWidth),
		ThumbnailHeight: int(raw.ThumbnailHeight),
		HTML:            SanitizeOEmbedHTML(raw.HTML),
		Width:           int(raw.Width),
		Height:          int(raw.Height),
		CacheAge:        int(raw.CacheAge),
	}, nil
}

// FetchOEmbedBatch fetches oEmbed metadata for several URLs at a bounded
// concurrency. URLs without metadata are absent from the result.
func (c *Client) FetchOEmbedBatch(ctx context.Context, urls []string) map[string]*models.OEmbedMetadata {
	results := make(map[string]*models.OEmbedMetadata, len(urls))
	var mu sync.Mutex

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < oembedConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				if meta := c.FetchOEmbed(ctx, u, ""); meta != nil {
					mu.Lock()
					results[u] = meta
					mu.Unlock()
				}
			}
		}()
	}

	for _, u := range urls {
		select {
		case jobs <- u:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

// DiscoverOEmbedEndpoint returns the oEmbed link a page advertises in its
// head, preferring the JSON format over XML, or ""
func DiscoverOEmbedEndpoint(htmlDoc string) string {
	doc, err := html.Parse(strings.NewReader(htmlDoc))
	if err != nil {
		return ""
	}

	var jsonHref, xmlHref string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if jsonHref != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "link" {
			var linkType, href string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "type":
					linkType = strings.ToLower(strings.TrimSpace(attr.Val))
				case "href":
					href = strings.TrimSpace(attr.Val)
				}
			}
			switch {
			case href == "":
			case linkType == "application/json+oembed":
				jsonHref = href
				return
			case linkType == "text/xml+oembed" && xmlHref == "":
				xmlHref = href
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	if jsonHref != "" {
		return jsonHref
	}
	return xmlHref
}

// HasOEmbedSupport reports whether rawURL is content on a platform with an
// oEmbed endpoint
func (c *Client) HasOEmbedSupport(rawURL string) bool {
	embed := c.classifier.ParseEmbedURL(rawURL)
	if embed == nil {
		return false
	}
	def, ok := c.classifier.registry.Get(embed.Platform)
	return ok && def.HasOEmbed()
}

// OEmbedPlatforms returns the sorted ids of platforms with an oEmbed endpoint
func (c *Client) OEmbedPlatforms() []string {
	var ids []string
	for _, def := range c.classifier.registry.All() {
		if def.HasOEmbed() {
			ids = append(ids, def.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// EnrichEmbed attaches oEmbed metadata to an embed descriptor when available
func (c *Client) EnrichEmbed(ctx context.Context, embed *models.EmbedDescriptor) *models.EmbedDescriptor {
	if embed == nil {
		return nil
	}
	if meta := c.FetchOEmbed(ctx, embed.OriginalURL, embed.Platform); meta != nil {
		embed.OEmbed = meta
	}
	return embed
}
