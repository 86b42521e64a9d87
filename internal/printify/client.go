// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package printify is a thin client for the Printify catalog API.
package printify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/config"
	"github.com/retr0h/storefront/internal/telemetry"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultBackoffBase = 200 * time.Millisecond
	maxErrorBody       = 4 << 10
)

var _ Catalog = (*Client)(nil)

// Client calls the Printify API with bearer auth and retries transient
// failures with exponential backoff.
type Client struct {
	logger      *slog.Logger
	httpClient  *http.Client
	baseURL     string
	shopID      string
	maxRetries  uint64
	backoffBase time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBackoffBase sets the first retry delay.
func WithBackoffBase(
	d time.Duration,
) Option {
	return func(c *Client) {
		c.backoffBase = d
	}
}

// New creates a Client from the printify config section.
func New(
	logger *slog.Logger,
	cfg config.Printify,
	opts ...Option,
) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		logger: logger,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				base:       http.DefaultTransport,
				authHeader: "Bearer " + cfg.Token,
				logger:     logger,
			},
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		shopID:      cfg.ShopID,
		maxRetries:  uint64(max(cfg.MaxRetries, 0)),
		backoffBase: defaultBackoffBase,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type authTransport struct {
	base       http.RoundTripper
	authHeader string
	logger     *slog.Logger
}

// RoundTrip implements the http.RoundTripper interface.
func (t *authTransport) RoundTrip(
	req *http.Request,
) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", t.authHeader)
	telemetry.InjectHeader(req.Context(), req.Header)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.DebugContext(req.Context(), "printify request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return nil, err
	}

	t.logger.DebugContext(req.Context(), "printify response",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// ListShops returns the shops visible to the API token.
func (c *Client) ListShops(
	ctx context.Context,
) ([]Shop, error) {
	var shops []Shop
	if err := c.get(ctx, "/shops.json", nil, &shops); err != nil {
		return nil, err
	}

	return shops, nil
}

// ListProducts returns one page of the shop's products.
func (c *Client) ListProducts(
	ctx context.Context,
	page int,
	limit int,
) (*ProductPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out ProductPage
	path := "/shops/" + url.PathEscape(c.shopID) + "/products.json"
	if err := c.get(ctx, path, query, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetProduct returns a single product. Unknown ids map to a not-found error.
func (c *Client) GetProduct(
	ctx context.Context,
	id string,
) (*Product, error) {
	var out Product
	path := "/shops/" + url.PathEscape(c.shopID) + "/products/" + url.PathEscape(id) + ".json"
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// statusError is a non-2xx upstream response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("printify returned %d: %s", e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= http.StatusInternalServerError
}

func (c *Client) get(
	ctx context.Context,
	path string,
	query url.Values,
	out any,
) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoffBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode >= http.StatusBadRequest {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			se := &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
			if se.retryable() {
				return retry.RetryableError(se)
			}
			return se
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}

		return nil
	})
	if err == nil {
		return nil
	}

	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		return apperror.Wrap(apperror.KindNotFound, "Product not found", err)
	}

	c.logger.WarnContext(ctx, "printify call failed",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)

	return apperror.Upstream("Product catalog is unavailable", err)
}
