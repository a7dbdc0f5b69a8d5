// Package api talks to the Lumincoin backend. Every call returns a Result
// envelope instead of an error; authentication failures are handled here by
// a single token refresh followed by one retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"lumincoin/internal/core"
	"lumincoin/internal/log"
	"lumincoin/internal/session"
)

// LoginPath is where unauthenticated callers are sent.
const LoginPath = "/login"

// HeaderAuthToken carries the access token.
const HeaderAuthToken = "x-auth-token"

// maxAuthRetries bounds how many times one request is reissued after a
// successful token refresh.
const maxAuthRetries = 1

// Result is the envelope every request resolves to.
type Result struct {
	Error    bool
	Redirect string
	Status   int
	Body     json.RawMessage
}

// SessionStore is the part of session.Store the client needs.
type SessionStore interface {
	Get(ctx context.Context, key session.Key) (string, error)
	Write(ctx context.Context, accessToken, refreshToken string, user *core.User) error
	Clear(ctx context.Context) error
}

type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
	timeout time.Duration
	limiter *rate.Limiter
	logger  *log.Logger
	refresh singleflight.Group
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is
// wrapped with request logging.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit paces outgoing requests. rps <= 0 disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
		logger:  log.Default(log.ComponentAPI),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	hc.Transport = newTransport(hc.Transport, c.logger)
	c.http = &hc
	return c
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, path string) Result {
	return c.Request(ctx, path, http.MethodGet, true, nil)
}

// Request sends a JSON request to path (relative to the base URL).
// An empty method means GET. body is JSON-encoded when non-nil.
func (c *Client) Request(ctx context.Context, path, method string, useAuth bool, body any) Result {
	if method == "" {
		method = http.MethodGet
	}
	return c.do(ctx, path, method, useAuth, body, 0)
}

func (c *Client) do(ctx context.Context, path, method string, useAuth bool, body any, attempt int) Result {
	var result Result

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.logger.ErrorContext(ctx, "Failed to encode request body", log.FieldPath, path, log.FieldError, err)
			result.Error = true
			return result
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to build request", log.FieldPath, path, log.FieldError, err)
		result.Error = true
		return result
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token := ""
	if useAuth {
		token, _ = c.store.Get(ctx, session.AccessTokenKey)
		if token != "" {
			req.Header.Set(HeaderAuthToken, token)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			result.Error = true
			return result
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		result.Error = true
		return result
	}
	defer resp.Body.Close()

	result.Status = resp.StatusCode
	data, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(data) {
		result.Error = true
		return result
	}
	result.Body = data

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Error = true
		if useAuth && resp.StatusCode == http.StatusUnauthorized {
			switch {
			case token == "":
				result.Redirect = LoginPath
			case attempt >= maxAuthRetries:
				c.logger.WarnContext(ctx, "Request still unauthorized after refresh", log.FieldPath, path)
				result.Redirect = LoginPath
			case c.Refresh(ctx):
				return c.do(ctx, path, method, useAuth, body, attempt+1)
			default:
				result.Redirect = LoginPath
			}
		}
	}

	return result
}
