// Package network fetches catalogue pages over HTTP with timeouts and bounded retries.
package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nrkcat/nrkcat/constant"
	"github.com/nrkcat/nrkcat/log"
	logrus "github.com/sirupsen/logrus"
)

// Client performs blocking GETs. Each attempt is bounded by the configured timeout.
type Client struct {
	http       *http.Client
	timeout    time.Duration
	retries    uint
	retryDelay time.Duration
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds a single attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries sets how many extra attempts a retryable failure gets.
func WithRetries(n uint) Option {
	return func(c *Client) {
		c.retries = n
	}
}

// WithRetryDelay sets the initial back-off between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithTransport replaces the round tripper, e.g. with NewFingerprintTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// NewClient returns a client on a tuned transport with a 30s timeout and two retries.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Transport: newTransport()},
		timeout:    30 * time.Second,
		retries:    2,
		retryDelay: 500 * time.Millisecond,
		userAgent:  constant.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// Fetch GETs url and returns the body of a 2xx response.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	entry := log.WithFields(logrus.Fields{"url": url})

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.get(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(c.retries+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			entry.Warnf("attempt %d failed: %v", n+1, err)
		}),
	)
	if err != nil {
		return nil, err
	}

	entry.Debugf("fetched %d bytes", len(body))
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: ErrCauseNetworkFailure, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &FetchError{URL: url, Cause: ErrCauseTimeout, Retryable: true, Err: err}
		}
		return nil, classifyTransport(url, err)
	}
	defer resp.Body.Close()

	if fe := classifyStatus(url, resp.StatusCode); fe != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fe
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &FetchError{URL: url, Cause: ErrCauseTimeout, Retryable: true, Err: err}
		}
		return nil, &FetchError{URL: url, Cause: ErrCauseReadBody, Retryable: true, Err: err}
	}

	return body, nil
}

func isEmptyDocument(b []byte) bool {
	switch string(b) {
	case "", "null", "[]", "{}":
		return true
	}
	return false
}

// FetchJSON GETs url and decodes the body into v. An empty body, or one holding only
// null, [] or {}, reports found == false with a nil error.
func (c *Client) FetchJSON(ctx context.Context, url string, v any) (bool, error) {
	body, err := c.Fetch(ctx, url)
	if err != nil {
		return false, err
	}

	trimmed := bytes.TrimSpace(body)
	if isEmptyDocument(trimmed) {
		return false, nil
	}

	if err := json.Unmarshal(trimmed, v); err != nil {
		return false, &FetchError{URL: url, Cause: ErrCauseDecode, Err: err}
	}
	return true, nil
}
