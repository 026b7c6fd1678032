package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRenderMissingBinary(t *testing.T) {
	r := New(Config{Bin: "/nonexistent/chromium", Logger: quietLogger()})
	defer r.Close()

	if _, err := r.Render(context.Background(), "https://example.com"); err == nil {
		t.Fatal("expected an error for a missing browser binary")
	}
}

func TestCloseWithoutLaunch(t *testing.T) {
	r := New(Config{Logger: quietLogger()})
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if r.config.Timeout != 20*time.Second {
		t.Errorf("default timeout = %v", r.config.Timeout)
	}
}

func TestRenderExecutesScripts(t *testing.T) {
	if !Available() {
		t.Skip("no browser executable available")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if ua := r.Header.Get("User-Agent"); ua != "" && !strings.Contains(ua, "LinkintelTest") && r.URL.Path == "/" {
			t.Errorf("User-Agent = %q", ua)
		}
		io.WriteString(w, `<!DOCTYPE html><html><body>
<h1 id="name">loading</h1>
<script>document.getElementById("name").textContent = "Trail Runner 2";</script>
</body></html>`)
	}))
	defer srv.Close()

	r := New(Config{UserAgent: "LinkintelTest/1.0", Timeout: 15 * time.Second, Logger: quietLogger()})
	defer r.Close()

	html, err := r.Render(context.Background(), srv.URL+"/")
	if err != nil {
		if errors.Is(err, ErrNoBrowser) {
			t.Skip(err)
		}
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html, "Trail Runner 2") {
		t.Errorf("rendered HTML does not contain script output: %s", html)
	}
}

func TestRenderClosesTabs(t *testing.T) {
	if !Available() {
		t.Skip("no browser executable available")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<!DOCTYPE html><html><body><p>ok</p></body></html>`)
	}))
	defer srv.Close()

	r := New(Config{Timeout: 15 * time.Second, Logger: quietLogger()})
	defer r.Close()

	renderPage := func() {
		t.Helper()
		if _, err := r.Render(context.Background(), srv.URL+"/"); err != nil {
			if errors.Is(err, ErrNoBrowser) {
				t.Skip(err)
			}
			t.Fatalf("Render() error = %v", err)
		}
	}
	openTabs := func() int {
		t.Helper()
		pages, err := r.browser.Pages()
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}
		return len(pages)
	}

	renderPage()
	before := openTabs()
	for i := 0; i < 3; i++ {
		renderPage()
	}
	if after := openTabs(); after != before {
		t.Errorf("open tabs = %d after three more renders, want %d", after, before)
	}
}
