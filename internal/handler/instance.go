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

type InstanceHandler struct {
	instanceService *service.InstanceService
	cookie          middleware.SessionCookie
	logger          *zap.Logger
}

func NewInstanceHandler(instanceService *service.InstanceService, cookie middleware.SessionCookie, logger *zap.Logger) *InstanceHandler {
	return &InstanceHandler{
		instanceService: instanceService,
		cookie:          cookie,
		logger:          logger,
	}
}

// ListRegions handles GET /api/v1/instances/regions
func (h *InstanceHandler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RegionListResponse{List: h.instanceService.Regions()})
}

// ListInstances handles GET /api/v1/instances
func (h *InstanceHandler) ListInstances(c *gin.Context) {
	ids, err := h.instanceService.List(c.Request.Context(), middleware.GetSessionHandle(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to list instances")
		return
	}
	c.JSON(http.StatusOK, dto.InstanceListResponse{Count: len(ids), List: ids})
}

// GetInstance handles GET /api/v1/instances/:instanceId
func (h *InstanceHandler) GetInstance(c *gin.Context) {
	detail, err := h.instanceService.Get(c.Request.Context(), middleware.GetSessionHandle(c), c.Param("instanceId"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get instance")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateInstance handles POST /api/v1/instances
func (h *InstanceHandler) CreateInstance(c *gin.Context) {
	var req dto.CreateInstanceRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, handle, err := h.instanceService.Create(c.Request.Context(), middleware.GetSessionHandle(c), req)
	// The instance id is recorded even when classification fails
	h.cookie.Set(c, handle)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create instance")
		return
	}
	c.JSON(provisionStatus(resp, http.StatusCreated), resp)
}

// LinkInstance handles POST /api/v1/instances/:instanceId/link
func (h *InstanceHandler) LinkInstance(c *gin.Context) {
	var req dto.LinkInstanceRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, handle, err := h.instanceService.Link(c.Request.Context(), middleware.GetSessionHandle(c), c.Param("instanceId"), req.Password)
	h.cookie.Set(c, handle)
	if err != nil {
		respondError(c, h.logger, err, "Failed to link instance")
		return
	}
	c.JSON(provisionStatus(resp, http.StatusOK), resp)
}

// DeleteInstance handles DELETE /api/v1/instances/:instanceId
func (h *InstanceHandler) DeleteInstance(c *gin.Context) {
	handle, err := h.instanceService.Delete(c.Request.Context(), middleware.GetSessionHandle(c), c.Param("instanceId"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete instance")
		return
	}
	h.cookie.Set(c, handle)
	c.Status(http.StatusAccepted)
}

func (h *InstanceHandler) RegisterRoutes(r *gin.Engine, session gin.HandlerFunc) {
	r.GET("/api/v1/instances/regions", h.ListRegions)

	instanceGroup := r.Group("/api/v1/instances", session)
	{
		instanceGroup.GET("", h.ListInstances)
		instanceGroup.POST("", h.CreateInstance)
		instanceGroup.GET("/:instanceId", h.GetInstance)
		instanceGroup.POST("/:instanceId/link", h.LinkInstance)
		instanceGroup.DELETE("/:instanceId", h.DeleteInstance)
	}
}

// provisionStatus is 202 while the secrets wait for the instance-ready webhook
func provisionStatus(resp *dto.ProvisionResponse, done int) int {
	if resp.Pending {
		return http.StatusAccepted
	}
	return done
}
