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

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rchristof/example-integration/internal/metrics"
	"github.com/rchristof/example-integration/internal/utils"
	"go.uber.org/zap"
)

// WebhookAuth accepts only requests presenting the shared secret as a bearer
// token. The comparison is constant time.
func WebhookAuth(secret string, logger *zap.Logger) gin.HandlerFunc {
	expected := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if secret == "" || token == authHeader ||
			subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			GetLogger(c, logger).Warn("Rejected webhook call", zap.String("client_ip", c.ClientIP()))
			metrics.WebhookDeliveriesTotal.WithLabelValues("401").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(
				http.StatusUnauthorized, "Unauthorized", "Invalid or missing webhook credentials"))
			return
		}
		c.Next()
	}
}
