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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/rchristof/example-integration/internal/constants"
)

const maxMessageLen = 512

// UpstreamError represents a failed call to an external API.
// It unwraps to Kind, which defaults to constants.ErrUpstream.
type UpstreamError struct {
	Upstream  string // vercel, omnistrate
	Code      int    // HTTP status code, 0 for transport failures
	Message   string // upstream message when available
	Retryable bool
	Kind      error
}

// Error implements the error interface for UpstreamError
func (e *UpstreamError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Upstream, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Upstream, e.Message)
}

// Unwrap returns the taxonomy kind of the error
func (e *UpstreamError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return constants.ErrUpstream
}

// NewUpstreamError creates a new UpstreamError of kind ErrUpstream
func NewUpstreamError(upstream string, code int, message string) *UpstreamError {
	return &UpstreamError{
		Upstream:  upstream,
		Code:      code,
		Message:   message,
		Retryable: code == 0 || code >= 500,
	}
}

// TransportError wraps a network failure as an UpstreamError
func TransportError(upstream string, err error) *UpstreamError {
	return NewUpstreamError(upstream, 0, err.Error())
}

// BuildURL joins base URL with path segments ensuring single slashes.
// Each segment is path-escaped.
func BuildURL(base string, parts ...string) string {
	base = strings.TrimRight(base, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.Trim(p, "/")
		if trimmed == "" {
			continue
		}
		for _, subPart := range strings.Split(trimmed, "/") {
			if subPart != "" {
				segments = append(segments, url.PathEscape(subPart))
			}
		}
	}
	if len(segments) == 0 {
		return base
	}
	return base + "/" + strings.Join(segments, "/")
}

// WithQuery appends non-empty query parameters to rawURL
func WithQuery(rawURL string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + q.Encode()
}

// NewJSONRequest marshals v to JSON (if non-nil) and returns an *http.Request with Content-Type set.
func NewJSONRequest(ctx context.Context, method, url string, v interface{}) (*http.Request, error) {
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if v != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// NewFormRequest returns a POST request with a form-encoded body
func NewFormRequest(ctx context.Context, url string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// ExpectStatus reports whether code is one of expected
func ExpectStatus(code int, expected []int) bool {
	return slices.Contains(expected, code)
}

// ExtractMessage pulls a human-readable message out of an upstream error body.
// It understands {message}, {error_description}, {error:"..."} and
// {error:{message}} and falls back to the trimmed raw body.
func ExtractMessage(body []byte) string {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(body, &generic); err == nil {
		for _, key := range []string{"message", "error_description", "detail"} {
			if raw, ok := generic[key]; ok {
				var s string
				if json.Unmarshal(raw, &s) == nil && s != "" {
					return truncate(s)
				}
			}
		}
		if raw, ok := generic["error"]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				return truncate(s)
			}
			var nested struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			}
			if json.Unmarshal(raw, &nested) == nil {
				if nested.Message != "" {
					return truncate(nested.Message)
				}
				if nested.Code != "" {
					return truncate(nested.Code)
				}
			}
		}
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "no response body"
	}
	return truncate(s)
}

func truncate(s string) string {
	if len(s) > maxMessageLen {
		return s[:maxMessageLen] + "..."
	}
	return s
}
