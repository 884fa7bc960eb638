// Package api is the HTTP client for the booking REST API. It signs
// requests with the session token, decodes the JSON envelope and turns
// 401 responses into a global unauthorized callback.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	DefaultTimeout  = 10 * time.Second
	defaultCacheTTL = time.Minute

	maxResponseBytes = 4 << 20
)

var errServerStatus = errors.New("server error status")

// TokenSource supplies the bearer token. An empty token sends no
// Authorization header.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	// HTTPClient overrides the default client; its Timeout is left as is.
	HTTPClient *http.Client
}

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type rawResponse struct {
	status int
	body   []byte
}

type Client struct {
	base    *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*rawResponse]
	cache   *QueryCache
	log     *zap.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized func()
}

func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	log = log.With(zap.String("component", "api-client"))

	breaker := gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        "booking-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		base:    base,
		http:    httpClient,
		breaker: breaker,
		cache:   NewQueryCache(ttl),
		log:     log,
	}, nil
}

// SetTokenSource installs the request signer.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = tokens
}

// OnUnauthorized registers fn to run after any 401 response.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// InvalidateQueries drops cached reads whose key starts with prefix.
func (c *Client) InvalidateQueries(prefix string) {
	c.cache.Invalidate(prefix)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do sends one request. GETs are retried once on network errors and 5xx
// responses; mutations are never retried.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = b
	}

	endpoint := c.endpoint(path, query)
	attempts := 1
	if method == http.MethodGet {
		attempts = 2
	}

	for attempt := 1; ; attempt++ {
		err := c.send(ctx, method, endpoint, payload, out)
		if err == nil || attempt >= attempts || !retryable(err) || ctx.Err() != nil {
			return err
		}
		c.log.Warn("Retrying request", zap.String("method", method), zap.String("url", endpoint), zap.Error(err))
	}
}

func retryable(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return errors.Is(err, ErrNetwork)
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	requestID := uuid.NewString()

	raw, err := c.breaker.Execute(func() (*rawResponse, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, err
		}

		raw := &rawResponse{status: resp.StatusCode, body: b}
		if resp.StatusCode >= http.StatusInternalServerError {
			return raw, errServerStatus
		}
		return raw, nil
	})
	if raw == nil {
		c.log.Debug("Request failed", zap.String("method", method), zap.String("url", endpoint),
			zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, endpoint, err)
	}

	c.log.Debug("Request done", zap.String("method", method), zap.String("url", endpoint),
		zap.String("request_id", requestID), zap.Int("status", raw.status))

	return c.decode(raw, out)
}

func (c *Client) decode(raw *rawResponse, out any) error {
	var env envelope
	decodeErr := json.Unmarshal(raw.body, &env)

	if raw.status == http.StatusUnauthorized {
		c.unauthorized()
	}

	if raw.status < 200 || raw.status >= 300 {
		return &APIError{Status: raw.status, Message: env.Message, Errors: env.Errors}
	}

	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// unauthorized drops per-user cached reads and runs the registered hook.
func (c *Client) unauthorized() {
	c.cache.Invalidate("")

	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = collapseAPIPrefix(strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/"))
	u.RawQuery = query.Encode()
	return u.String()
}

// collapseAPIPrefix rewrites accidental /api/api/... paths to /api/...
func collapseAPIPrefix(p string) string {
	for {
		switch {
		case strings.Contains(p, "/api/api/"):
			p = strings.Replace(p, "/api/api/", "/api/", 1)
		case strings.HasSuffix(p, "/api/api"):
			p = strings.TrimSuffix(p, "/api")
		default:
			return p
		}
	}
}
