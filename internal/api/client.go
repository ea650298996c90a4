// Package api is the typed client for the WhatToEat REST API. It wraps
// net/http with bearer authentication, a single transparent refresh-and-retry
// cycle on 401 responses, and per-entity sub-clients for request shaping.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/whattoeat/client_layer/internal/session"
)

const defaultTimeout = 30 * time.Second

// ErrSessionExpired is returned when a 401 could not be resolved by a token
// refresh. The session has been cleared; the caller should return the user to
// the login screen.
var ErrSessionExpired = errors.New("api: session expired")

// Config configures the gateway client.
type Config struct {
	// BaseURL is the API root, e.g. https://whattoeat.example/api/v1.
	BaseURL string
	// Sessions supplies bearer credentials and receives refreshed tokens.
	Sessions *session.Store
	// HTTPClient overrides the default client (30s timeout).
	HTTPClient *http.Client
	// Logger receives request/refresh events. Nil means no logging.
	Logger *zap.Logger
	// Limiter caps outbound request rate. Nil means unlimited.
	Limiter *rate.Limiter
	// Metrics counts requests, retries and refreshes. Nil disables counting.
	Metrics *Metrics
}

// Client issues authenticated requests against the WhatToEat API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	log        *zap.Logger
	limiter    *rate.Limiter
	metrics    *Metrics
}

// New creates a gateway client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api: BaseURL must be a valid URL")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("api: Sessions is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		sessions:   cfg.Sessions,
		log:        logger,
		limiter:    cfg.Limiter,
		metrics:    cfg.Metrics,
	}, nil
}

// Sessions returns the session store the client writes through.
func (c *Client) Sessions() *session.Store { return c.sessions }

// Sub-clients.

func (c *Client) Auth() *AuthClient               { return &AuthClient{c: c} }
func (c *Client) Recipes() *RecipesClient         { return &RecipesClient{c: c} }
func (c *Client) Categories() *CategoriesClient   { return &CategoriesClient{c: c} }
func (c *Client) Ingredients() *IngredientsClient { return &IngredientsClient{c: c} }
func (c *Client) Steps() *StepsClient             { return &StepsClient{c: c} }
func (c *Client) Users() *UsersClient             { return &UsersClient{c: c} }
func (c *Client) Images() *ImagesClient           { return &ImagesClient{c: c} }

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// request describes one logical API call. The body builder is a function so
// the request can be rebuilt for the single post-refresh replay.
type request struct {
	method string
	path   string
	query  url.Values
	body   func() (io.Reader, string, error)
}

func jsonBody(v any) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("api: marshal body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func rawBody(data []byte, contentType string) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		return bytes.NewReader(data), contentType, nil
	}
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.send(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	r := request{method: http.MethodPost, path: path}
	if body != nil {
		r.body = jsonBody(body)
	}
	return c.send(ctx, r, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, request{method: http.MethodPatch, path: path, body: jsonBody(body)}, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.send(ctx, request{method: http.MethodDelete, path: path}, out)
}

// send executes a request with at most one refresh-and-retry cycle. A second
// 401 after the replay propagates as an APIError.
func (c *Client) send(ctx context.Context, r request, out any) error {
	status, body, err := c.roundTrip(ctx, r)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		if err := c.refreshSession(ctx); err != nil {
			return err
		}
		// A logout may have raced the refresh; replaying with stale
		// credentials would resurrect a session the user just ended.
		if !c.sessions.Authenticated() {
			return ErrSessionExpired
		}
		if c.metrics != nil {
			c.metrics.Retries.Inc()
		}
		status, body, err = c.roundTrip(ctx, r)
		if err != nil {
			return err
		}
	}

	if status >= 400 {
		return &APIError{StatusCode: status, Message: errorMessage(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// roundTrip performs a single HTTP exchange and drains the body.
func (c *Client) roundTrip(ctx context.Context, r request) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("api: rate limit: %w", err)
		}
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var reader io.Reader
	var contentType string
	if r.body != nil {
		var err error
		reader, contentType, err = r.body()
		if err != nil {
			return 0, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("api: create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if snap := c.sessions.Snapshot(); snap.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+snap.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("api: %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("api: read response: %w", err)
	}

	if c.metrics != nil {
		c.metrics.Requests.WithLabelValues(r.method, statusClass(resp.StatusCode)).Inc()
	}
	c.log.Debug("api request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode))

	return resp.StatusCode, body, nil
}

// refreshSession exchanges the stored refresh token for a new access token
// and writes it through the session store. On any failure the session is
// cleared and ErrSessionExpired is returned.
func (c *Client) refreshSession(ctx context.Context) error {
	snap := c.sessions.Snapshot()
	if snap.RefreshToken == "" {
		c.forceLogout()
		return ErrSessionExpired
	}

	payload, err := json.Marshal(RefreshRequest{RefreshToken: snap.RefreshToken})
	if err != nil {
		return fmt.Errorf("api: marshal refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("api: create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: refresh token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("token refresh rejected", zap.Int("status", resp.StatusCode))
		c.forceLogout()
		return ErrSessionExpired
	}

	var out RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.forceLogout()
		return fmt.Errorf("api: decode refresh response: %w", err)
	}
	if err := c.sessions.SetAccessToken(out.AccessToken); err != nil {
		return err
	}
	if c.metrics != nil {
		c.metrics.Refreshes.Inc()
	}
	c.log.Info("access token refreshed")
	return nil
}

func (c *Client) forceLogout() {
	if err := c.sessions.Logout(); err != nil {
		c.log.Warn("clear session", zap.Error(err))
	}
}

// errorMessage extracts a human-readable message from an error body. The
// backend reports failures as {"detail": ...}; other shapes fall back to the
// raw body.
func errorMessage(body []byte) string {
	var shaped struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &shaped); err == nil {
		if len(shaped.Detail) > 0 {
			var detail string
			if json.Unmarshal(shaped.Detail, &detail) == nil {
				return detail
			}
			return string(shaped.Detail)
		}
		if shaped.Message != "" {
			return shaped.Message
		}
	}
	return strings.TrimSpace(string(body))
}

func statusClass(code int) string {
	switch {
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
