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

package vercel

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/metrics"

	"go.uber.org/zap"
)

func (c *VercelClient) buildURL(parts ...string) string {
	return client.BuildURL(c.cfg.BaseURL, parts...)
}

// doAndDecode executes the request, checks the status against expectedCodes,
// and decodes the response JSON into out. If out is nil, the body is discarded.
// Non-expected statuses become *client.UpstreamError carrying the upstream message.
func (c *VercelClient) doAndDecode(req *http.Request, operation string, expectedCodes []int, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDurationSeconds.WithLabelValues(constants.UpstreamVercel, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(constants.UpstreamVercel, operation, "transport_error").Inc()
		c.logger.Warn("Request failed", zap.String("operation", operation), zap.Error(err))
		return client.TransportError(constants.UpstreamVercel, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(constants.UpstreamVercel, operation, strconv.Itoa(resp.StatusCode)).Inc()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return client.TransportError(constants.UpstreamVercel, err)
	}

	if !client.ExpectStatus(resp.StatusCode, expectedCodes) {
		msg := client.ExtractMessage(b)
		c.logger.Debug("Unexpected status",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return client.NewUpstreamError(constants.UpstreamVercel, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(bytes.NewReader(b)).Decode(out); err != nil {
		c.logger.Warn("Decode failed", zap.String("operation", operation), zap.Error(err))
		return client.NewUpstreamError(constants.UpstreamVercel, resp.StatusCode, "malformed response body")
	}
	return nil
}

func setBearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}
