/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

type idempotentKey struct{}

// WithIdempotent marks requests built with ctx as safe to repeat.
// Only marked requests are ever retried.
func WithIdempotent(ctx context.Context) context.Context {
	return context.WithValue(ctx, idempotentKey{}, true)
}

// IsIdempotent reports whether ctx was marked by WithIdempotent
func IsIdempotent(ctx context.Context) bool {
	v, _ := ctx.Value(idempotentKey{}).(bool)
	return v
}

// RetryableHTTPClient wraps an HTTP client with retry logic
type RetryableHTTPClient struct {
	client     *http.Client
	maxRetries int
	timeout    time.Duration
	backoff    time.Duration
	logger     *zap.Logger
}

// Option configures a RetryableHTTPClient
type Option func(*RetryableHTTPClient)

// WithBackoff sets the constant delay between attempts
func WithBackoff(d time.Duration) Option {
	return func(r *RetryableHTTPClient) { r.backoff = d }
}

// WithLogger sets the logger used to report retries
func WithLogger(l *zap.Logger) Option {
	return func(r *RetryableHTTPClient) { r.logger = l }
}

// WithTransport replaces the underlying transport
func WithTransport(rt http.RoundTripper) Option {
	return func(r *RetryableHTTPClient) { r.client.Transport = rt }
}

// NewRetryableHTTPClient creates a new HTTP client with retry capabilities
//
// Parameters:
//   - maxRetries: Maximum number of retry attempts for idempotent requests
//   - timeout: Timeout duration for each HTTP request
//
// Returns:
//   - *RetryableHTTPClient: A configured HTTP client with retry logic
func NewRetryableHTTPClient(maxRetries int, timeout time.Duration, opts ...Option) *RetryableHTTPClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	r := &RetryableHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		timeout:    timeout,
		backoff:    time.Second,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do executes an HTTP request with retry logic
//
// Retry behavior:
//   - Only requests whose context was marked with WithIdempotent are retried
//   - Retries on network errors or 5xx server errors
//   - Does NOT retry on 4xx client errors (non-retryable)
//   - Uses constant backoff between attempts
//   - Maximum attempts = maxRetries + 1 (initial attempt + retries)
//   - The final 5xx response is returned to the caller, not an error
func (r *RetryableHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if r.maxRetries == 0 || !IsIdempotent(ctx) || (req.Body != nil && req.GetBody == nil) {
		return r.client.Do(req)
	}

	var resp *http.Response
	attempt := 0
	b := retry.WithMaxRetries(uint64(r.maxRetries), retry.NewConstant(r.backoff))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return err
			}
			req.Body = body
		}

		res, err := r.client.Do(req)
		if err != nil {
			r.logger.Warn("Upstream request failed",
				zap.String("url", req.URL.Redacted()),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", r.maxRetries+1),
				zap.Error(err))
			return retry.RetryableError(err)
		}

		if res.StatusCode >= 500 && attempt <= r.maxRetries {
			r.logger.Warn("Upstream request returned server error, retrying",
				zap.String("url", req.URL.Redacted()),
				zap.Int("status", res.StatusCode),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", r.maxRetries+1))
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			return retry.RetryableError(fmt.Errorf("upstream returned status %d", res.StatusCode))
		}

		resp = res
		return nil
	})
	if err != nil {
		r.logger.Error("All upstream attempts failed",
			zap.String("url", req.URL.Redacted()),
			zap.Int("attempts", attempt),
			zap.Error(err))
		return nil, err
	}

	return resp, nil
}
