// Package places is a client for the Google Places web service, the gateway
// that supplies restaurant search results, details and photos.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
)

const (
	defaultTimeout = 30 * time.Second
	defaultBurst   = 5

	// Response size caps.
	maxJSONBytes  = 5 << 20
	maxPhotoBytes = 10 << 20
)

// Config configures a Client.
type Config struct {
	APIKey            string
	BaseURL           string
	RequestsPerSecond int
}

// Client is a rate-limited Places gateway client.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	apiKey      string
	baseURL     string
	logger      *slog.Logger
}

// New creates a new Places client. A client without an API key is valid;
// its calls fail with a NOT_CONFIGURED error.
func New(cfg Config, logger *slog.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(rps), defaultBurst),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		logger:      logger,
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

// do issues a GET for path with query plus the API key, after waiting for the
// rate limiter.
func (c *Client) do(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if !c.Configured() {
		return nil, domainerrors.NotConfigured("Google Places API key is not configured")
	}
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	query.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Tablelog/1.0")

	c.logger.Debug("places request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeUpstream, "places request %s", path)
	}
	return resp, nil
}

// getJSON performs a request and decodes a JSON response into dest.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	resp, err := c.do(ctx, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domainerrors.Upstreamf("places %s failed: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONBytes)).Decode(dest); err != nil {
		return domainerrors.Wrapf(err, domainerrors.CodeUpstream, "parse places %s response", path)
	}
	return nil
}

func statusError(status, message string) error {
	if message != "" {
		return domainerrors.Upstreamf("Google Places API error: %s - %s", status, message)
	}
	return domainerrors.Upstreamf("Google Places API error: %s", status)
}
