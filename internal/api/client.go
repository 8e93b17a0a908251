package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.Status)
	}
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return models.ErrNetworkFailure }

type Client struct {
	httpClient *http.Client
	rateLimit  models.RateLimitSettings
	limiter    *time.Ticker
}

func NewClient(rl models.RateLimitSettings) *Client {
	interval := rl.PerDuration / time.Duration(rl.MaxRequests)

	ticker := time.NewTicker(interval)

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		rateLimit:  rl,
		limiter:    ticker,
	}
}

// Do issues a single GET. Failures are not retried; callers turn them into placeholders.
func (c *Client) Do(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	select {
	case <-c.limiter.C:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", models.ErrNetworkFailure, ctx.Err())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	logger.Debug("Making request to %s", redact(url))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request to %s failed: %v", redact(url), err)
		return nil, fmt.Errorf("%w: %v", models.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error("API returned status code %d for %s. Body: %s", resp.StatusCode, redact(url), string(body))
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", models.ErrNetworkFailure, err)
	}
	return body, nil
}

// GetJSON fetches url and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.Do(ctx, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Close releases the rate limiter.
func (c *Client) Close() {
	c.limiter.Stop()
}
