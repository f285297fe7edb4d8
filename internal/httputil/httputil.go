// Package httputil fetches web resources with retries.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultMaxTries  = 3
	maxBodyBytes     = 32 << 20
)

// StatusError is returned for non-200 responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

// IsRetryableStatus reports whether a response status is worth retrying.
func IsRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Client wraps an http.Client with a fixed User-Agent and retry policy.
type Client struct {
	HTTP            *http.Client
	UserAgent       string
	MaxTries        uint
	InitialInterval time.Duration
	Log             *slog.Logger
}

func New(timeout time.Duration, userAgent string, log *slog.Logger) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		HTTP:            &http.Client{Timeout: timeout},
		UserAgent:       userAgent,
		MaxTries:        defaultMaxTries,
		InitialInterval: time.Second,
		Log:             log,
	}
}

// DoWithRetry sends the request built by newReq until it gets a 200
// response. Network errors and 429/5xx responses are retried with
// exponential backoff; other statuses fail at once with a *StatusError.
// The caller closes the returned body.
func (c *Client) DoWithRetry(ctx context.Context, newReq func(context.Context) (*http.Request, error)) (*http.Response, error) {
	operation := func() (*http.Response, error) {
		req, err := newReq(ctx)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		resp.Body.Close()
		statusErr := &StatusError{StatusCode: resp.StatusCode, URL: req.URL.String()}
		if IsRetryableStatus(resp.StatusCode) {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.InitialInterval
	bo.MaxInterval = 10 * time.Second

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.MaxTries),
		backoff.WithMaxElapsedTime(time.Minute),
		backoff.WithNotify(func(err error, next time.Duration) {
			if c.Log != nil {
				c.Log.Warn("retrying request", "error", err, "in", next)
			}
		}),
	)
}

// Get fetches url and returns the response body and headers.
// accept sets the Accept header when non-empty.
func (c *Client) Get(ctx context.Context, url, accept string) ([]byte, http.Header, error) {
	resp, err := c.DoWithRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		return req, nil
	})
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, resp.Header, nil
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
