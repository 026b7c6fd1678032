package linkintel

import (
	"context"
	"net/http"
	"testing"

	"github.com/teedgg/linkintel/models"
)

func TestAnalyzeURLEmbed(t *testing.T) {
	client, _ := newOEmbedTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "video", "title": "Launch Video"}`))
	})

	result := client.AnalyzeURL(context.Background(), "https://testvid.com/v/abc", DefaultAnalyzeOptions())
	if result.ID == "" {
		t.Error("expected an analysis id")
	}
	if result.Classification.Type != models.LinkTypeEmbed {
		t.Fatalf("Type = %q, want embed", result.Classification.Type)
	}
	if result.Embed == nil || result.Embed.ContentID != "abc" {
		t.Fatalf("Embed = %+v", result.Embed)
	}
	if result.Embed.OEmbed == nil || result.Embed.OEmbed.Title != "Launch Video" {
		t.Errorf("OEmbed = %+v", result.Embed.OEmbed)
	}
	if result.Product != nil || result.Social != nil || result.Health != nil {
		t.Error("embed analysis carried unrelated descriptors")
	}
}

func TestAnalyzeURLEmbedWithoutOEmbed(t *testing.T) {
	client, _ := newOEmbedTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	result := client.AnalyzeURL(context.Background(), "https://testvid.com/v/abc", DefaultAnalyzeOptions())
	if result.Embed == nil {
		t.Fatal("expected the embed descriptor even without oEmbed")
	}
	if result.Embed.OEmbed != nil {
		t.Errorf("OEmbed = %+v, want nil", result.Embed.OEmbed)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about missing oEmbed metadata")
	}
}

func TestAnalyzeURLSocial(t *testing.T) {
	client := New(DefaultConfig())

	result := client.AnalyzeURL(context.Background(), "https://twitter.com/elonmusk", AnalyzeOptions{})
	if result.Social == nil || result.Social.Username != "elonmusk" {
		t.Fatalf("Social = %+v", result.Social)
	}
	if result.Product != nil || result.Embed != nil {
		t.Error("social analysis carried unrelated descriptors")
	}
}

func TestAnalyzeURLProductWithHealth(t *testing.T) {
	srv := newProductServer(t)
	client := New(DefaultConfig())

	result := client.AnalyzeURL(context.Background(), srv.URL+"/jsonld", AnalyzeOptions{
		ExtractProduct: true,
		CheckHealth:    true,
		SkipAI:         true,
	})
	if result.Product == nil {
		t.Fatal("expected a product extraction")
	}
	if result.Product.Brand != "Sony" || result.Product.PrimarySource != models.SourceStructuredData {
		t.Errorf("Product = %+v", result.Product)
	}
	if result.Health == nil || result.Health.Status != models.HealthHealthy {
		t.Errorf("Health = %+v", result.Health)
	}
}

func TestAnalyzeURLInvalid(t *testing.T) {
	client := New(DefaultConfig())

	result := client.AnalyzeURL(context.Background(), "not a url", AnalyzeOptions{ExtractProduct: true, CheckHealth: true})
	if result.Classification.Type != models.LinkTypeUnknown {
		t.Errorf("Type = %q", result.Classification.Type)
	}
	if result.Product != nil || result.Health != nil {
		t.Error("invalid URL should not be fetched")
	}
	if result.URL != "not a url" {
		t.Errorf("URL = %q", result.URL)
	}
}

func TestAnalyzeURLsPreservesOrder(t *testing.T) {
	client := New(DefaultConfig())
	urls := []string{
		"https://twitter.com/elonmusk",
		"https://github.com/octocat",
		"https://instagram.com/natgeo",
		"not a url",
		"https://www.youtube.com/@mkbhd",
		"https://x.com/nasa",
		"https://www.linkedin.com/in/someone",
	}

	results := client.AnalyzeURLs(context.Background(), urls, AnalyzeOptions{})
	if len(results) != len(urls) {
		t.Fatalf("got %d results, want %d", len(results), len(urls))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("results[%d].URL = %q, want %q", i, r.URL, urls[i])
		}
	}
	if got := client.AnalyzeURLs(context.Background(), nil, AnalyzeOptions{}); len(got) != 0 {
		t.Errorf("empty input gave %d results", len(got))
	}
}
