// Package render loads pages in headless Chrome for sites that serve bot
// challenges to plain HTTP clients.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ErrNoBrowser is returned when no browser executable can be found
var ErrNoBrowser = errors.New("browser executable not found")

// Config contains renderer configuration
type Config struct {
	Bin       string        // browser executable, looked up when empty
	Timeout   time.Duration // per-page ceiling, on top of the caller's context
	UserAgent string
	Logger    *slog.Logger
}

// Renderer renders pages with a single lazily launched browser.
// Pages are opened per call; the browser is shared and safe for
// concurrent use.
type Renderer struct {
	config Config
	log    *slog.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// New creates a renderer. The browser starts on the first Render call.
func New(config Config) *Renderer {
	if config.Timeout <= 0 {
		config.Timeout = 20 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Renderer{
		config: config,
		log:    config.Logger.With("component", "renderer"),
	}
}

// Available reports whether a browser executable can be located
func Available() bool {
	_, ok := launcher.LookPath()
	return ok
}

func (r *Renderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	bin := r.config.Bin
	if bin == "" {
		path, ok := launcher.LookPath()
		if !ok {
			return nil, ErrNoBrowser
		}
		bin = path
	}

	l := launcher.New().Bin(bin).Headless(true).Leakless(false)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	r.log.Info("browser launched", "bin", bin)
	r.launcher = l
	r.browser = browser
	return browser, nil
}

// Render navigates to url, waits for the load event and returns the
// resulting document HTML
func (r *Renderer) Render(ctx context.Context, url string) (html string, err error) {
	browser, err := r.connect()
	if err != nil {
		return "", err
	}

	tab, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	// tab keeps the browser context so it can still be closed after pageCtx
	// is cancelled or times out.
	defer func() {
		if closeErr := tab.Close(); closeErr != nil {
			r.log.Warn("error closing page", "url", url, "error", closeErr)
		}
	}()

	pageCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	page := tab.Context(pageCtx)

	if r.config.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.config.UserAgent}); err != nil {
			return "", fmt.Errorf("failed to set user agent: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("rendering timed out for %s: %w", url, pageCtx.Err())
		}
		return "", fmt.Errorf("failed waiting for page load: %w", err)
	}

	html, err = page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

// Close shuts down the browser if it was started
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.launcher.Kill()
	r.browser = nil
	r.launcher = nil
	if err != nil {
		return fmt.Errorf("error closing browser: %w", err)
	}
	return nil
}
