package linkintel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/teedgg/linkintel/platforms"
)

// newOEmbedTestClient registers a single video platform whose oEmbed endpoint
// is served by handler
func newOEmbedTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	registry := platforms.New(&platforms.Definition{
		ID:       "testvid",
		Name:     "Test Video",
		Category: platforms.CategoryVideo,
		Domains:  []string{"testvid.com"},
		Embeds: []platforms.EmbedPattern{
			{Regexp: regexp.MustCompile(`testvid\.com/v/([a-z0-9]+)`), IDGroup: 1, ContentType: "video"},
		},
		OEmbedEndpoint:   srv.URL + "/oembed",
		EmbedURLTemplate: "https://testvid.com/embed/{id}",
	}, &platforms.Definition{
		ID:       "noembed",
		Name:     "No oEmbed",
		Category: platforms.CategoryVideo,
		Domains:  []string{"noembed.com"},
		Embeds: []platforms.EmbedPattern{
			{Regexp: regexp.MustCompile(`noembed\.com/v/([a-z0-9]+)`), IDGroup: 1},
		},
	})
	return New(DefaultConfig(), WithRegistry(registry)), srv
}

func TestFetchOEmbed(t *testing.T) {
	queries := make(chan string, 1)
	client, _ := newOEmbedTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"type": "video",
			"title": "Test Video",
			"author_name": "Creator",
			"provider_name": "Test Video",
			"thumbnail_url": "https://testvid.com/thumb.jpg",
			"thumbnail_width": "480",
			"thumbnail_height": 360,
			"html": "<iframe src=\"https://testvid.com/embed/abc\"></iframe>",
			"width": 800,
			"height": "100%",
			"cache_age": 3600
		}`))
	})

	meta := client.FetchOEmbed(context.Background(), "https://testvid.com/v/abc", "")
	if meta == nil {
		t.Fatal("FetchOEmbed returned nil")
	}
	if meta.Type != "video" || meta.Version != "1.0" {
		t.Errorf("type/version = %q/%q, want video/1.0", meta.Type, meta.Version)
	}
	if meta.Title != "Test Video" || meta.AuthorName != "Creator" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.ThumbnailWidth != 480 || meta.ThumbnailHeight != 360 {
		t.Errorf("thumbnail size = %dx%d, want 480x360", meta.ThumbnailWidth, meta.ThumbnailHeight)
	}
	if meta.Width != 800 || meta.Height != 0 {
		t.Errorf("size = %dx%d, want 800x0", meta.Width, meta.Height)
	}
	if meta.CacheAge != 3600 {
		t.Errorf("CacheAge = %d, want 3600", meta.CacheAge)
	}

	gotQuery := <-queries
	for _, want := range []string{"format=json", "maxwidth=800", "maxheight=600", "url=https%3A%2F%2Ftestvid.com%2Fv%2Fabc"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestFetchOEmbedFailuresReturnNil(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"type": "video",`))
		}},
		{"invalid type", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"type": "movie", "title": "x"}`))
		}},
		{"missing type", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"title": "x"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newOEmbedTestClient(t, tt.handler)
			if meta := client.FetchOEmbed(context.Background(), "https://testvid.com/v/abc", "testvid"); meta != nil {
				t.Errorf("FetchOEmbed = %+v, want nil", meta)
			}
		})
	}
}

func TestFetchOEmbedWithoutEndpoint(t *testing.T) {
	var calls atomic.Int32
	client, _ := newOEmbedTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	if meta := client.FetchOEmbed(context.Background(), "https://noembed.com/v/abc", ""); meta != nil {
		t.Errorf("platform without endpoint returned %+v", meta)
	}
	if meta := client.FetchOEmbed(context.Background(), "https://unknown.example.com/x", ""); meta != nil {
		t.Errorf("unknown platform returned %+v", meta)
	}
	if meta := client.FetchOEmbed(context.Background(), "https://testvid.com/v/abc", "no-such-platform"); meta != nil {
		t.Errorf("unknown platform id returned %+v", meta)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("endpoint called %d times, want 0", n)
	}
}

func TestFetchOEmbedBatch(t *testing.T) {
	client, _ := newOEmbedTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("url"), "broken") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"type": "video", "version": "1.0", "title": "ok"}`))
	})

	urls := []string{
		"https://testvid.com/v/one",
		"https://testvid.com/v/two",
		"https://testvid.com/v/broken",
		"https://testvid.com/v/three",
	}
	got := client.FetchOEmbedBatch(context.Background(), urls)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if _, ok := got["https://testvid.com/v/broken"]; ok {
		t.Error("failed URL present in results")
	}
	if got["https://testvid.com/v/two"].Title != "ok" {
		t.Errorf("unexpected metadata %+v", got["https://testvid.com/v/two"])
	}
}

func TestEnrichEmbed(t *testing.T) {
	client, _ := newOEmbedTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "rich", "html": "<div></div>"}`))
	})

	embed := client.Classifier().ParseEmbedURL("https://testvid.com/v/abc")
	if embed == nil {
		t.Fatal("ParseEmbedURL returned nil")
	}
	if embed.EmbedURL != "https://testvid.com/embed/abc" {
		t.Errorf("EmbedURL = %q", embed.EmbedURL)
	}
	embed = client.EnrichEmbed(context.Background(), embed)
	if embed.OEmbed == nil || embed.OEmbed.Type != "rich" {
		t.Errorf("OEmbed = %+v, want rich metadata", embed.OEmbed)
	}
	if client.EnrichEmbed(context.Background(), nil) != nil {
		t.Error("EnrichEmbed(nil) should return nil")
	}
}

func TestOEmbedRequestURL(t *testing.T) {
	got := OEmbedRequestURL("https://www.youtube.com/oembed", "https://youtu.be/dQw4w9WgXcQ", 0, 0)
	want := "https://www.youtube.com/oembed?format=json&url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = OEmbedRequestURL("https://example.com/oembed?key=1", "https://x.test/a", 640, 0)
	if !strings.HasPrefix(got, "https://example.com/oembed?key=1&") || !strings.Contains(got, "maxwidth=640") {
		t.Errorf("got %q", got)
	}
	if strings.Contains(got, "maxheight") {
		t.Errorf("non-positive maxheight should be omitted: %q", got)
	}
}

func TestDiscoverOEmbedEndpoint(t *testing.T) {
	page := `<html><head>
		<link rel="alternate" type="text/xml+oembed" href="https://example.com/oembed.xml">
		<link rel="alternate" type="application/json+oembed" href="https://example.com/oembed?url=x&amp;format=json">
	</head><body></body></html>`
	got := DiscoverOEmbedEndpoint(page)
	if got != "https://example.com/oembed?url=x&format=json" {
		t.Errorf("got %q", got)
	}
	if got := DiscoverOEmbedEndpoint("<html><head></head></html>"); got != "" {
		t.Errorf("page without link gave %q", got)
	}
}

func TestDiscoverOEmbedEndpointXMLFallback(t *testing.T) {
	page := `<html><head>
		<link rel="alternate" type="text/xml+oembed" href="https://example.com/oembed?format=xml">
		<link rel="alternate" type="application/json+oembed" href="">
	</head><body></body></html>`
	if got := DiscoverOEmbedEndpoint(page); got != "https://example.com/oembed?format=xml" {
		t.Errorf("got %q, want the xml link", got)
	}
}

func TestFetchOEmbedXML(t *testing.T) {
	client, _ := newOEmbedTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<oembed>
	<type>video</type>
	<version>1.0</version>
	<title>XML Video</title>
	<width>640</width>
	<height> 360 </height>
	<cache_age>300</cache_age>
	<html>&lt;iframe src="https://testvid.com/embed/abc" onload="steal()"&gt;&lt;/iframe&gt;</html>
</oembed>`))
	})

	meta := client.FetchOEmbed(context.Background(), "https://testvid.com/v/abc", "")
	if meta == nil {
		t.Fatal("FetchOEmbed returned nil")
	}
	if meta.Type != "video" || meta.Title != "XML Video" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Width != 640 || meta.Height != 360 || meta.CacheAge != 300 {
		t.Errorf("size/cache = %dx%d %d", meta.Width, meta.Height, meta.CacheAge)
	}
	if !strings.Contains(meta.HTML, `src="https://testvid.com/embed/abc"`) || strings.Contains(meta.HTML, "onload") {
		t.Errorf("HTML = %q, want sanitized iframe", meta.HTML)
	}
}

func TestOEmbedSupport(t *testing.T) {
	client, _ := newOEmbedTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	if !client.HasOEmbedSupport("https://testvid.com/v/abc") {
		t.Error("testvid content should support oEmbed")
	}
	for _, u := range []string{"https://noembed.com/v/abc", "https://example.com/page", "not a url"} {
		if client.HasOEmbedSupport(u) {
			t.Errorf("HasOEmbedSupport(%q) = true", u)
		}
	}
	if got := client.OEmbedPlatforms(); len(got) != 1 || got[0] != "testvid" {
		t.Errorf("OEmbedPlatforms = %v, want [testvid]", got)
	}

	defaults := New(DefaultConfig()).OEmbedPlatforms()
	for _, id := range []string{"youtube", "vimeo", "spotify"} {
		if !slices.Contains(defaults, id) {
			t.Errorf("default OEmbedPlatforms missing %s: %v", id, defaults)
		}
	}
	if !slices.IsSorted(defaults) {
		t.Errorf("OEmbedPlatforms not sorted: %v", defaults)
	}
}

func TestSanitizeOEmbedHTML(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		notWant []string
	}{
		{
			name: "iframe kept",
			in:   `<iframe width="640" src="https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ" allowfullscreen></iframe>`,
			want: []string{`src="https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"`, `width="640"`},
		},
		{
			name:    "event handlers dropped",
			in:      `<div onclick="x()" OnMouseOver='y()'><img src="https://a.example/i.png" onerror="z()"></div>`,
			want:    []string{`<img src="https://a.example/i.png"/>`},
			notWant: []string{"onclick", "onmouseover", "onerror", "x()"},
		},
		{
			name:    "script urls dropped",
			in:      `<a href="javascript:alert(1)">x</a><a href=" JaVa Script:alert(2)">y</a><iframe src="data:text/html,hi"></iframe>`,
			notWant: []string{"javascript", "alert", "data:"},
		},
		{
			name:    "provider script kept",
			in:      `<blockquote class="twitter-tweet"><a href="https://twitter.com/x/status/1">t</a></blockquote><script async src="https://platform.twitter.com/widgets.js"></script>`,
			want:    []string{`<blockquote class="twitter-tweet">`, `src="https://platform.twitter.com/widgets.js"`},
		},
		{
			name:    "other scripts dropped",
			in:      `<p>hi</p><script>steal()</script><script src="https://evil.example/x.js"></script><script src="http://platform.twitter.com/widgets.js"></script>`,
			want:    []string{"<p>hi</p>"},
			notWant: []string{"steal", "evil", "<script"},
		},
		{
			name:    "forms dropped",
			in:      `<div><form action="https://evil.example"><input name="pw"></form>ok</div>`,
			want:    []string{"<div>ok</div>"},
			notWant: []string{"form", "input"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeOEmbedHTML(tt.in)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("got %q, want it to contain %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(strings.ToLower(got), strings.ToLower(nw)) {
					t.Errorf("got %q, want no %q", got, nw)
				}
			}
		})
	}

	if got := SanitizeOEmbedHTML("   "); got != "" {
		t.Errorf("blank input gave %q", got)
	}
}
