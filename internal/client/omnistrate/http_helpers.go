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

package omnistrate

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/metrics"

	"go.uber.org/zap"
)

// buildURL joins the versioned base URL with path segments
func (c *OmnistrateClient) buildURL(parts ...string) string {
	return client.BuildURL(c.cfg.BaseURL, append([]string{c.cfg.APIVersion}, parts...)...)
}

// resourceURL is the instance collection URL, optionally for one instance
func (c *OmnistrateClient) resourceURL(subscriptionID, instanceID string) string {
	parts := []string{resourceInstancePath, c.cfg.ResourcePath}
	if instanceID != "" {
		parts = append(parts, instanceID)
	}
	return client.WithQuery(c.buildURL(parts...), map[string]string{"subscriptionId": subscriptionID})
}

// do executes the request with the given bearer and returns the status and
// buffered body. Unexpected statuses become *client.UpstreamError.
func (c *OmnistrateClient) do(req *http.Request, bearer, operation string, expectedCodes []int) (int, []byte, error) {
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDurationSeconds.WithLabelValues(constants.UpstreamOmnistrate, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(constants.UpstreamOmnistrate, operation, "transport_error").Inc()
		c.logger.Warn("Request failed", zap.String("operation", operation), zap.Error(err))
		return 0, nil, client.TransportError(constants.UpstreamOmnistrate, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(constants.UpstreamOmnistrate, operation, strconv.Itoa(resp.StatusCode)).Inc()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, client.TransportError(constants.UpstreamOmnistrate, err)
	}

	if !client.ExpectStatus(resp.StatusCode, expectedCodes) {
		msg := client.ExtractMessage(b)
		c.logger.Debug("Unexpected status",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return resp.StatusCode, b, client.NewUpstreamError(constants.UpstreamOmnistrate, resp.StatusCode, msg)
	}
	return resp.StatusCode, b, nil
}

// withKind sets the taxonomy kind of an upstream error for the given status codes
func withKind(err error, kind error, codes ...int) error {
	ue, ok := err.(*client.UpstreamError)
	if !ok {
		return err
	}
	for _, code := range codes {
		if ue.Code == code {
			ue.Kind = kind
		}
	}
	return ue
}
