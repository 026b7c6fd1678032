package linkintel

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/teedgg/linkintel/models"
)

// productData is what a page declares about itself
type productData struct {
	Name        string
	Brand       string
	Image       string
	Price       string
	Currency    string
	Description string
	Category    string
	Available   string // schema.org availability URL
}

func (p productData) empty() bool {
	return p.Name == "" && p.Image == "" && p.Brand == ""
}

// extractStructured reads JSON-LD Product objects and Open Graph tags
func (c *Client) extractStructured(doc *goquery.Document, base *url.URL) models.StageResult {
	stage := models.StageResult{Source: models.SourceStructuredData}

	ld, hasLD := findJSONLDProduct(doc)
	og := extractOpenGraph(doc)

	var data productData
	switch {
	case hasLD && ld.Name != "":
		data = ld
		fillProductData(&data, og)
		stage.Confidence = c.config.Thresholds.JSONLDProduct
	case og.Name != "" && og.Image != "":
		data = og
		fillProductData(&data, ld)
		stage.Confidence = c.config.Thresholds.OGTitleImage
	case og.Name != "":
		data = og
		fillProductData(&data, ld)
		stage.Confidence = c.config.Thresholds.OGTitle
	default:
		if !ld.empty() {
			data = ld
		}
	}

	stage.ProductName = CleanTitle(data.Name)
	stage.Brand = strings.TrimSpace(data.Brand)
	stage.Price = data.Price
	stage.Currency = data.Currency
	stage.Availability = parseAvailability(data.Available)
	stage.Description = strings.TrimSpace(data.Description)
	stage.Category = data.Category
	if data.Image != "" {
		if img, err := resolveURL(base, data.Image); err == nil {
			stage.ImageURL = img
		}
	}
	return stage
}

func fillProductData(dst *productData, src productData) {
	if dst.Brand == "" {
		dst.Brand = src.Brand
	}
	if dst.Image == "" {
		dst.Image = src.Image
	}
	if dst.Price == "" {
		dst.Price = src.Price
		dst.Currency = src.Currency
	}
	if dst.Currency == "" {
		dst.Currency = src.Currency
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Category == "" {
		dst.Category = src.Category
	}
	if dst.Available == "" {
		dst.Available = src.Available
	}
}

func extractOpenGraph(doc *goquery.Document) productData {
	meta := func(keys ...string) string {
		for _, key := range keys {
			sel := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)
			if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}
	return productData{
		Name:        meta("og:title", "twitter:title"),
		Image:       meta("og:image:secure_url", "og:image", "twitter:image"),
		Price:       meta("product:price:amount", "og:price:amount"),
		Currency:    meta("product:price:currency", "og:price:currency"),
		Brand:       meta("product:brand", "og:brand"),
		Description: meta("og:description", "description"),
		Category:    meta("product:category"),
		Available:   meta("product:availability", "og:availability"),
	}
}

// findJSONLDProduct returns the first schema.org Product declared in a
// ld+json script, searching arrays and @graph containers
func findJSONLDProduct(doc *goquery.Document) (productData, bool) {
	var found productData
	var ok bool
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &v); err != nil {
			return true
		}
		if obj := findProductObject(v, 0); obj != nil {
			found, ok = productFromJSONLD(obj), true
			return false
		}
		return true
	})
	return found, ok
}

func findProductObject(v any, depth int) map[string]any {
	if depth > 6 {
		return nil
	}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if obj := findProductObject(item, depth+1); obj != nil {
				return obj
			}
		}
	case map[string]any:
		if isProductType(t["@type"]) {
			return t
		}
		for _, key := range []string{"@graph", "mainEntity", "itemListElement", "item"} {
			if inner, ok := t[key]; ok {
				if obj := findProductObject(inner, depth+1); obj != nil {
					return obj
				}
			}
		}
	}
	return nil
}

func isProductType(v any) bool {
	switch t := v.(type) {
	case string:
		s := strings.TrimPrefix(strings.TrimPrefix(t, "http://schema.org/"), "https://schema.org/")
		return s == "Product" || s == "ProductGroup" || s == "IndividualProduct"
	case []any:
		for _, item := range t {
			if isProductType(item) {
				return true
			}
		}
	}
	return false
}

func productFromJSONLD(obj map[string]any) productData {
	p := productData{
		Name:        stringField(obj["name"]),
		Brand:       nameField(obj["brand"]),
		Image:       imageField(obj["image"]),
		Description: stringField(obj["description"]),
		Category:    stringField(obj["category"]),
	}
	if p.Brand == "" {
		p.Brand = nameField(obj["manufacturer"])
	}
	if offer := firstOffer(obj["offers"]); offer != nil {
		p.Price = priceField(offer["price"])
		if p.Price == "" {
			p.Price = priceField(offer["lowPrice"])
		}
		if p.Price == "" {
			if spec, ok := offer["priceSpecification"].(map[string]any); ok {
				p.Price = priceField(spec["price"])
			}
		}
		p.Currency = stringField(offer["priceCurrency"])
		p.Available = stringField(offer["availability"])
	}
	return p
}

// parseAvailability maps a schema.org ItemAvailability value, either the
// full URL or a bare Open Graph token like "instock" or "out of stock".
func parseAvailability(raw string) models.Availability {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if i := strings.LastIndexByte(v, '/'); i >= 0 {
		v = v[i+1:]
	}
	v = strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(v))
	switch v {
	case "instock", "instoreonly", "onlineonly", "limitedavailability", "available":
		return models.AvailabilityInStock
	case "outofstock", "soldout", "oos", "unavailable":
		return models.AvailabilityOutOfStock
	case "preorder", "presale", "backorder", "pending":
		return models.AvailabilityPreorder
	case "discontinued":
		return models.AvailabilityDiscontinued
	}
	return models.AvailabilityUnknown
}

func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		if len(t) > 0 {
			return stringField(t[0])
		}
	}
	return ""
}

// nameField reads a value that is either a string or an object with a name
func nameField(v any) string {
	switch t := v.(type) {
	case map[string]any:
		return stringField(t["name"])
	case []any:
		if len(t) > 0 {
			return nameField(t[0])
		}
	}
	return stringField(v)
}

// imageField reads a string, an array of images or an ImageObject
func imageField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s := imageField(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if s := stringField(t["url"]); s != "" {
			return s
		}
		return stringField(t["contentUrl"])
	}
	return ""
}

func firstOffer(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		if inner, ok := t["offers"]; ok && stringField(t["@type"]) == "AggregateOffer" {
			if o := firstOffer(inner); o != nil && o["price"] != nil {
				return o
			}
		}
		return t
	case []any:
		for _, item := range t {
			if o := firstOffer(item); o != nil {
				return o
			}
		}
	}
	return nil
}

func priceField(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', 2, 64)
	case string:
		s := strings.TrimSpace(t)
		if price, _ := findPrice(s); price != "" {
			return price
		}
		return s
	}
	return ""
}
