// Package api is a client for the agent platform's admin REST API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/otto8-ai/otto-admin/internal/logger"
)

// ErrNotFound matches API errors with status 404
var ErrNotFound = errors.New("not found")

// Error is a non-2xx response from the API
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the platform API
type Client struct {
	http *resty.Client
}

// Option customizes a Client
type Option func(*resty.Client)

// WithTimeout bounds every request
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

// WithRetries retries transport failures and 5xx responses
func WithRetries(count int) Option {
	return func(c *resty.Client) {
		c.SetRetryCount(count).
			SetRetryWaitTime(200 * time.Millisecond).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
			})
	}
}

// NewClient creates a client for baseURL, authenticating with token if set
func NewClient(baseURL, token string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	if token != "" {
		rc.SetAuthToken(token)
	}
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// do executes req and converts transport failures and error statuses into errors
func do(req *resty.Request, method, path string) (*resty.Response, error) {
	logger.Request(method, path)

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return resp, &Error{
			StatusCode: resp.StatusCode(),
			Method:     method,
			Path:       resp.Request.URL,
			Message:    strings.TrimSpace(resp.String()),
		}
	}
	return resp, nil
}
