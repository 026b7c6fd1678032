package linkintel

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	_ "golang.org/x/image/webp"
)

// measureImageSize downloads the start of an image and decodes its dimensions
func (c *Client) measureImageSize(ctx context.Context, imageURL string) (int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.ImageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}
	if resp.ContentLength > c.config.MaxImageBytes {
		return 0, 0, fmt.Errorf("image too large: %d bytes (max: %d)", resp.ContentLength, c.config.MaxImageBytes)
	}

	cfg, format, err := image.DecodeConfig(io.LimitReader(resp.Body, c.config.MaxImageBytes))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	c.logger.Debug("measured image", "url", imageURL, "format", format, "width", cfg.Width, "height", cfg.Height)
	return cfg.Width, cfg.Height, nil
}
