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

type ProjectHandler struct {
	projectService *service.ProjectService
	cookie         middleware.SessionCookie
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, cookie middleware.SessionCookie, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		cookie:         cookie,
		logger:         logger,
	}
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, handle, err := h.projectService.ListProjects(c.Request.Context(), middleware.GetSessionHandle(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to list projects")
		return
	}
	h.cookie.Set(c, handle)
	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Count: len(projects),
		List:  projects,
	})
}

// SelectProject handles PUT /api/v1/projects/selection
func (h *ProjectHandler) SelectProject(c *gin.Context) {
	var req dto.SelectProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	handle, err := h.projectService.Select(c.Request.Context(), middleware.GetSessionHandle(c), req.ProjectID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to select project")
		return
	}
	h.cookie.Set(c, handle)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Project selected"})
}

func (h *ProjectHandler) RegisterRoutes(r *gin.Engine, session gin.HandlerFunc) {
	projectGroup := r.Group("/api/v1/projects", session)
	{
		projectGroup.GET("", h.ListProjects)
		projectGroup.PUT("/selection", h.SelectProject)
	}
}
