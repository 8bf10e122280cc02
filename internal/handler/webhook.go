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

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/dto"
	"github.com/rchristof/example-integration/internal/metrics"
	"github.com/rchristof/example-integration/internal/middleware"
	"github.com/rchristof/example-integration/internal/service"
	"github.com/rchristof/example-integration/internal/utils"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	webhookService *service.WebhookService
	secret         string
	logger         *zap.Logger
}

func NewWebhookHandler(webhookService *service.WebhookService, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		secret:         secret,
		logger:         logger,
	}
}

// InstanceReady handles POST /api/v1/webhooks/instance-ready
func (h *WebhookHandler) InstanceReady(c *gin.Context) {
	var req dto.InstanceReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.InstanceID == "" {
		h.reply(c, http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", "instanceId is required"))
		return
	}

	resp, err := h.webhookService.HandleInstanceReady(c.Request.Context(), req)
	switch {
	case err == nil:
		h.reply(c, http.StatusOK, resp)
	case errors.Is(err, constants.ErrDeliveryIncomplete) && resp != nil:
		// 5xx makes the sender redeliver; completed links are already gone
		h.reply(c, http.StatusInternalServerError, resp)
	default:
		status, errResp := utils.GetErrorResponse(err)
		if status >= http.StatusInternalServerError {
			middleware.GetLogger(c, h.logger).Error("Instance-ready webhook failed", zap.Error(err))
		}
		h.reply(c, status, errResp)
	}
}

func (h *WebhookHandler) reply(c *gin.Context, status int, body interface{}) {
	metrics.WebhookDeliveriesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	c.JSON(status, body)
}

func (h *WebhookHandler) RegisterRoutes(r *gin.Engine) {
	webhookGroup := r.Group("/api/v1/webhooks", middleware.WebhookAuth(h.secret, h.logger))
	{
		webhookGroup.POST("/instance-ready", h.InstanceReady)
	}
}
