package linkintel

import (
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		htmlDoc  string
		expected string
	}{
		{
			name: "h1 takes precedence over title tag",
			htmlDoc: `<!DOCTYPE html>
<html>
<head><title>Buy Trail Runner 2 | Example Outfitters</title></head>
<body><h1>Trail Runner 2</h1></body>
</html>`,
			expected: "Trail Runner 2",
		},
		{
			name: "title tag fallback",
			htmlDoc: `<!DOCTYPE html>
<html>
<head><title>Camp Stove</title></head>
<body><p>No heading here</p></body>
</html>`,
			expected: "Camp Stove",
		},
		{
			name: "nested h1 text is joined",
			htmlDoc: `<!DOCTYPE html>
<html><body><h1><span>Nano Puff</span> <em>Jacket</em></h1></body></html>`,
			expected: "Nano Puff Jacket",
		},
		{
			name: "first h1 wins",
			htmlDoc: `<!DOCTYPE html>
<html><body><h1>First</h1><h1>Second</h1></body></html>`,
			expected: "First",
		},
		{
			name:     "no title at all",
			htmlDoc:  `<!DOCTYPE html><html><body></body></html>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := html.Parse(strings.NewReader(tt.htmlDoc))
			if err != nil {
				t.Fatalf("Failed to parse HTML: %v", err)
			}
			if result := extractTitle(doc); result != tt.expected {
				t.Errorf("extractTitle() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractImages(t *testing.T) {
	htmlDoc := `<!DOCTYPE html>
<html><body>
	<img src="/a.jpg" width="640" height="480px" alt="Front">
	<img src="data:image/gif;base64,R0lGOD" data-src="https://cdn.example.com/lazy.jpg">
	<img src="data:image/gif;base64,R0lGOD">
	<img data-old-hires="//images.example.com/hires.jpg">
	<img alt="no source">
</body></html>`

	doc, err := html.Parse(strings.NewReader(htmlDoc))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	base, _ := url.Parse("https://shop.example.com/products/widget")

	images := extractImages(doc, base)
	if len(images) != 3 {
		t.Fatalf("got %d images, want 3: %+v", len(images), images)
	}
	if images[0].URL != "https://shop.example.com/a.jpg" || images[0].Width != 640 || images[0].Height != 480 {
		t.Errorf("images[0] = %+v", images[0])
	}
	if images[0].Alt != "Front" {
		t.Errorf("images[0].Alt = %q", images[0].Alt)
	}
	if images[1].URL != "https://cdn.example.com/lazy.jpg" {
		t.Errorf("lazy image = %q", images[1].URL)
	}
	if images[2].URL != "https://images.example.com/hires.jpg" {
		t.Errorf("hires image = %q", images[2].URL)
	}
}

func TestShouldSkipImage(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/images/logo.png":            true,
		"https://example.com/spacer.gif":                 true,
		"https://example.com/assets/icons/cart.svg":      true,
		"https://example.com/pixel?id=1":                 true,
		"https://cdn.example.com/products/shoe-main.jpg": false,
		"https://cdn.example.com/p/12345/large.webp":     false,
	}
	for u, want := range tests {
		if got := shouldSkipImage(u); got != want {
			t.Errorf("shouldSkipImage(%q) = %v, want %v", u, got, want)
		}
	}
}
