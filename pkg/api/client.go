// Copyright (c) 2025, Lakescan Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lakescan/lakescan/pkg/defaults"
	"github.com/lakescan/lakescan/pkg/errors"
)

// Caller is the capability collectors consume. It is satisfied by Client
// and by test fakes.
type Caller interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

// Client is an authenticated, rate-limited HTTP client for the workspace
// API. It is safe for concurrent use and holds no mutable state beyond the
// pooled transport.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	policy  RetryPolicy
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.policy = p.normalized()
	}
}

// WithHTTPClient overrides the underlying HTTP client. Used by tests and by
// callers that need custom transport behavior.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRateLimit overrides the client-side request rate.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewClient creates a workspace API client for the given base URL and
// bearer token. The base URL is used verbatim minus any trailing slash.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    newHTTPClient(),
		policy:  DefaultRetryPolicy(),
		limiter: rate.NewLimiter(rate.Limit(defaults.APIRequestsPerSecond), defaults.APIRequestBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the workspace base URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// newHTTPClient builds the pooled transport with bounded timeouts at every
// stage so no call can block indefinitely.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaults.HTTPClientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   defaults.HTTPConnectTimeout,
				KeepAlive: defaults.HTTPKeepAlive,
			}).DialContext,
			TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
			ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
			IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		},
	}
}

// Get issues an authenticated GET against the given API path, retrying
// transient failures per the configured policy, and decodes the JSON
// response into out. A nil out discards the body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	start := time.Now()
	var lastErr error

	policy := c.policy
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return contextError(ctx, path, attempt)
		}

		done, err := c.attempt(ctx, full, path, out)
		if done {
			c.observe(path, err, attempt, time.Since(start))
			return err
		}
		lastErr = err

		if attempt == policy.MaxAttempts {
			break
		}

		wait := policy.backoff(attempt)
		if ra, ok := retryAfterOf(err); ok && ra > wait {
			wait = ra
		}

		slog.Warn("retrying api call",
			"endpoint", path,
			"attempt", attempt,
			"wait", wait.String(),
			"error", err.Error())
		apiRetriesTotal.Inc()

		select {
		case <-ctx.Done():
			return contextError(ctx, path, attempt)
		case <-time.After(wait):
		}
	}

	err := errors.WrapWithContext(errors.ErrCodeUnavailable,
		fmt.Sprintf("GET %s failed after %d attempts", path, policy.MaxAttempts),
		lastErr,
		map[string]any{"endpoint": path, "attempts": policy.MaxAttempts})
	c.observe(path, err, policy.MaxAttempts, time.Since(start))
	return err
}

// transientError marks an attempt outcome that is eligible for retry. It
// carries the Retry-After hint when the remote supplied one.
type transientError struct {
	cause      error
	retryAfter time.Duration
}

func (e *transientError) Error() string { return e.cause.Error() }
func (e *transientError) Unwrap() error { return e.cause }

func retryAfterOf(err error) (time.Duration, bool) {
	if te, ok := err.(*transientError); ok && te.retryAfter > 0 {
		return te.retryAfter, true
	}
	return 0, false
}

// attempt performs one HTTP round trip. The bool result reports whether the
// outcome is final: true means return err (possibly nil) to the caller,
// false means the attempt failed transiently and may be retried.
func (c *Client) attempt(ctx context.Context, full, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return true, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to build request for %s", path), err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return true, contextError(ctx, path, 1)
		}
		return false, &transientError{cause: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return true, nil
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false, &transientError{cause: err}
		}
		if err := json.Unmarshal(body, out); err != nil {
			return true, errors.Wrap(errors.ErrCodeInvalidResponse,
				fmt.Sprintf("failed to decode response from %s", path), err)
		}
		return true, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return true, errors.NewWithContext(errors.ErrCodeUnauthorized,
			fmt.Sprintf("GET %s returned %d", path, resp.StatusCode),
			map[string]any{"endpoint": path, "status": resp.StatusCode})

	case resp.StatusCode == http.StatusNotFound:
		return true, errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("GET %s returned 404", path))

	case retryable(resp.StatusCode):
		te := &transientError{
			cause: fmt.Errorf("GET %s returned %d", path, resp.StatusCode),
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
				te.retryAfter = time.Duration(secs) * time.Second
			}
		}
		return false, te

	default:
		return true, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("GET %s returned %d", path, resp.StatusCode))
	}
}

// contextError translates a canceled or expired context into the structured
// taxonomy: deadline expiry is a TIMEOUT, explicit cancellation is reported
// as-is so callers can distinguish operator interrupts.
func contextError(ctx context.Context, path string, attempt int) error {
	code := errors.ErrCodeTimeout
	if ctx.Err() == context.Canceled {
		code = errors.ErrCodeInternal
	}
	return errors.WrapWithContext(code,
		fmt.Sprintf("GET %s abandoned", path),
		ctx.Err(),
		map[string]any{"endpoint": path, "attempts": attempt})
}

// observe records the call outcome in logs and metrics.
func (c *Client) observe(path string, err error, attempts int, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = strings.ToLower(string(errors.CodeOf(err)))
	}

	apiRequestsTotal.WithLabelValues(outcome).Inc()
	apiRequestDuration.Observe(elapsed.Seconds())

	if err != nil {
		slog.Error("api call failed",
			"endpoint", path,
			"outcome", outcome,
			"attempts", attempts,
			"error", err.Error())
		return
	}

	slog.Debug("api call",
		"endpoint", path,
		"outcome", outcome,
		"attempts", attempts,
		"elapsed", elapsed.String())
}
