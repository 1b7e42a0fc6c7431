// Package crmapi is the HTTP client for the CRM backend. It sends requests with
// bounded retry and turns every failure into a *SyncError.
package crmapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fisto/crm-sync/internal/logging"
	"github.com/fisto/crm-sync/internal/version"
)

const (
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = time.Second
	DefaultRequestTimeout = 10 * time.Second

	maxBodyBytes = 8 << 20
)

// Recorder receives one call per HTTP attempt. outcome is "ok" or "error".
type Recorder interface {
	RecordAttempt(op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAttempt(string, string) {}

// Options configures a Client. Zero values take the package defaults.
type Options struct {
	BaseURL          string
	FetchEndpoint    string
	DeleteEndpoint   string
	RegisterEndpoint string

	// MaxRetries is the total number of attempts per operation, including the first.
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration

	HTTPClient *http.Client
	Logger     logging.Logger
	Recorder   Recorder
}

// Client talks to the CRM backend.
type Client struct {
	fetchURL    string
	deleteURL   string
	registerURL string

	maxRetries int
	retryDelay time.Duration

	http      *http.Client
	userAgent string
	log       logging.Logger
	recorder  Recorder
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewClient validates the base URL and resolves the endpoint URLs against it.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	resolve := func(name, endpoint, def string) (string, error) {
		if strings.TrimSpace(endpoint) == "" {
			endpoint = def
		}
		rel, err := url.Parse(endpoint)
		if err != nil {
			return "", fmt.Errorf("parse %s endpoint: %w", name, err)
		}
		return base.ResolveReference(rel).String(), nil
	}

	c := &Client{
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		http:       opts.HTTPClient,
		userAgent:  version.UserAgent(),
		log:        opts.Logger,
		recorder:   opts.Recorder,
		sleep:      sleepContext,
	}
	if c.fetchURL, err = resolve("fetch", opts.FetchEndpoint, "fetch_employees.php"); err != nil {
		return nil, err
	}
	if c.deleteURL, err = resolve("delete", opts.DeleteEndpoint, "delete_employee.php"); err != nil {
		return nil, err
	}
	if c.registerURL, err = resolve("register", opts.RegisterEndpoint, "registration.php"); err != nil {
		return nil, err
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryDelay < 0 {
		c.retryDelay = 0
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	c.log = c.log.With("component", "crmapi")
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("base url required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url must be an absolute http(s) url: %q", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// MaxRetries returns the configured attempt budget.
func (c *Client) MaxRetries() int {
	return c.maxRetries
}

// FetchURL returns the resolved fetch endpoint.
func (c *Client) FetchURL() string {
	return c.fetchURL
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// requestFunc builds a fresh request for each attempt.
type requestFunc func(ctx context.Context) (*http.Request, error)

// response is a fully read 2xx reply.
type response struct {
	body     []byte
	attempts int
}

// send performs a request, retrying connection errors and non-2xx replies
// up to attempts times with a fixed delay. Context cancellation stops both
// the request and any pending wait.
func (c *Client) send(ctx context.Context, op string, attempts int, build requestFunc) (response, error) {
	var (
		lastErr    error
		lastStatus int
	)
	for attempt := 1; ; attempt++ {
		body, status, err := c.attempt(ctx, build)
		if err == nil {
			c.recorder.RecordAttempt(op, "ok")
			return response{body: body, attempts: attempt}, nil
		}
		c.recorder.RecordAttempt(op, "error")
		lastErr, lastStatus = err, status
		c.log.Warn("request attempt failed", "op", op, "attempt", attempt, "max_attempts", attempts, "status", status, "error", err.Error())

		if ctxErr := ctx.Err(); ctxErr != nil {
			return response{}, networkError(op, attempt, lastStatus, errors.Join(lastErr, ctxErr))
		}
		if attempt >= attempts {
			return response{}, networkError(op, attempt, lastStatus, lastErr)
		}
		if err := c.sleep(ctx, c.retryDelay); err != nil {
			return response{}, networkError(op, attempt, lastStatus, errors.Join(lastErr, err))
		}
	}
}

func (c *Client) attempt(ctx context.Context, build requestFunc) ([]byte, int, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
