package linkintel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// fetchResult is the outcome of a best-effort page fetch. err is set for
// transport failures and for non-2xx statuses; status is kept either way.
type fetchResult struct {
	body        []byte
	status      int
	finalURL    string
	contentType string
	err         error
}

func (f fetchResult) ok() bool {
	return f.err == nil
}

func (f fetchResult) html() string {
	return string(f.body)
}

// fetchPage GETs target with its own timeout and a bounded body
func (c *Client) fetchPage(ctx context.Context, target string, timeout time.Duration) fetchResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fetchResult{err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fetchResult{err: fmt.Errorf("failed to fetch URL: %w", err)}
	}
	defer resp.Body.Close()

	res := fetchResult{
		status:      resp.StatusCode,
		finalURL:    resp.Request.URL.String(),
		contentType: resp.Header.Get("Content-Type"),
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.err = fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
		return res
	}
	if ct := strings.ToLower(res.contentType); ct != "" && !strings.Contains(ct, "html") && !strings.Contains(ct, "xml") {
		res.err = fmt.Errorf("%w: %s", ErrNotHTML, res.contentType)
		return res
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxPageBytes))
	if err != nil {
		res.err = fmt.Errorf("failed to read body: %w", err)
		return res
	}
	res.body = body
	return res
}
