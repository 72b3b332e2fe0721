package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/observability"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the remote resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Client performs HTTP GETs with caching and retry, for fetching remote
// documentation and other reference material.
//
// Responses are cached by URL; transient failures retry with exponential
// backoff via [RetryWithBackoff]. Pass a nil cache to disable caching.
type Client struct {
	http    *http.Client
	cache   *Cache
	headers map[string]string
}

// NewClient creates a Client with the given cache and default headers.
// Headers are applied to all requests made through this client.
// Pass nil for cache to skip caching, nil for headers if none are needed.
func NewClient(cache *Cache, headers map[string]string) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		headers: headers,
	}
}

// GetText fetches url and returns the response body as a string.
// Cached responses are served without a network round trip; fresh fetches
// retry transient failures before giving up.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	var text string
	err := c.cached(ctx, url, &text, func() error {
		body, err := c.doRequest(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()

		data, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		text = string(data)
		return nil
	})
	return text, err
}

// GetJSON fetches url and JSON-decodes the response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	return c.cached(ctx, url, v, func() error {
		body, err := c.doRequest(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()
		return json.NewDecoder(body).Decode(v)
	})
}

// cached serves v from cache when possible, otherwise runs fetch with
// retries and stores the result. The fetch function must populate v.
func (c *Client) cached(ctx context.Context, key string, v any, fetch func() error) error {
	if c.cache != nil {
		if ok, _ := c.cache.Get(key, v); ok {
			observability.Cache().OnCacheHit(ctx, "http")
			return nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}
	if err := RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Set(key, v)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RetryableError{Err: &apperrors.RateLimitedError{RetryAfter: retryAfter}}
	case resp.StatusCode >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}
}
