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
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rchristof/example-integration/internal/dto"
	"github.com/rchristof/example-integration/internal/middleware"
	"github.com/rchristof/example-integration/internal/service"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	cookie              middleware.SessionCookie
	logger              *zap.Logger
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService, cookie middleware.SessionCookie, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		cookie:              cookie,
		logger:              logger,
	}
}

// ListSubscriptions handles GET /api/v1/subscriptions
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.subscriptionService.List(c.Request.Context(), middleware.GetSessionHandle(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to list subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.SubscriptionListResponse{Count: len(subs), List: subs})
}

// ActivePlan handles GET /api/v1/subscriptions/active
func (h *SubscriptionHandler) ActivePlan(c *gin.Context) {
	sub, err := h.subscriptionService.ActivePlan(c.Request.Context(), middleware.GetSessionHandle(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get active plan")
		return
	}
	c.JSON(http.StatusOK, dto.ActivePlanResponse{Subscription: sub})
}

// Subscribe handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	sub, created, handle, err := h.subscriptionService.Subscribe(c.Request.Context(), middleware.GetSessionHandle(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to subscribe")
		return
	}
	h.cookie.Set(c, handle)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.SubscribeResponse{Subscription: *sub, Created: created})
}

// CancelSubscription handles DELETE /api/v1/subscriptions/:subscriptionId
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	handle, err := h.subscriptionService.Cancel(c.Request.Context(), middleware.GetSessionHandle(c), c.Param("subscriptionId"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to cancel subscription")
		return
	}
	h.cookie.Set(c, handle)
	c.Status(http.StatusNoContent)
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.Engine, session gin.HandlerFunc) {
	subscriptionGroup := r.Group("/api/v1/subscriptions", session)
	{
		subscriptionGroup.GET("", h.ListSubscriptions)
		subscriptionGroup.GET("/active", h.ActivePlan)
		subscriptionGroup.POST("", h.Subscribe)
		subscriptionGroup.DELETE("/:subscriptionId", h.CancelSubscription)
	}
}
