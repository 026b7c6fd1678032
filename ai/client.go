// Package ai is a client for the product identification endpoint
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	DefaultModel   = "gpt-4o-mini"

	identifyPath    = "/api/identify"
	maxResponseSize = 1 << 20
)

// ErrUnavailable is returned when the endpoint cannot produce an identification
var ErrUnavailable = errors.New("ai identification unavailable")

// Request describes the product to identify
type Request struct {
	Query       string `json:"query"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Model       string `json:"model,omitempty"`
}

// Identification is the product identity the endpoint returned
type Identification struct {
	Brand          string  `json:"brand"`
	ProductName    string  `json:"productName"`
	FullName       string  `json:"fullName"`
	Category       string  `json:"category"`
	EstimatedPrice string  `json:"estimatedPrice"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
}

// identifyResponse tolerates estimatedPrice as a number or a string
type identifyResponse struct {
	Brand          string          `json:"brand"`
	ProductName    string          `json:"productName"`
	FullName       string          `json:"fullName"`
	Category       string          `json:"category"`
	EstimatedPrice json.RawMessage `json:"estimatedPrice"`
	Confidence     float64         `json:"confidence"`
	Reasoning      string          `json:"reasoning"`
}

// Client calls the identification endpoint
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a client for the endpoint at baseURL
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Identify asks the endpoint to identify the product described by req.
// Non-200 responses and undecodable bodies wrap ErrUnavailable.
func (c *Client) Identify(ctx context.Context, req Request) (*Identification, error) {
	if strings.TrimSpace(req.Query) == "" && strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrUnavailable)
	}
	if req.Model == "" {
		req.Model = c.model
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+identifyPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	var raw identifyResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	return &Identification{
		Brand:          strings.TrimSpace(raw.Brand),
		ProductName:    strings.TrimSpace(raw.ProductName),
		FullName:       strings.TrimSpace(raw.FullName),
		Category:       strings.TrimSpace(raw.Category),
		EstimatedPrice: decodePrice(raw.EstimatedPrice),
		Confidence:     raw.Confidence,
		Reasoning:      raw.Reasoning,
	}, nil
}

func decodePrice(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return ""
}
