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
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/service"
	"go.uber.org/zap"
)

type SecretHandler struct {
	secretService *service.SecretService
	logger        *zap.Logger
}

func NewSecretHandler(secretService *service.SecretService, logger *zap.Logger) *SecretHandler {
	return &SecretHandler{
		secretService: secretService,
		logger:        logger,
	}
}

// PublishSecrets handles POST /api/v1/secrets
func (h *SecretHandler) PublishSecrets(c *gin.Context) {
	var req dto.PublishSecretsRequest
	if !bindJSON(c, &req) {
		return
	}

	set := make(model.SecretSet, 0, len(req.Variables))
	for _, v := range req.Variables {
		set = append(set, model.Secret{Key: v.Key, Value: v.Value, Targets: v.Targets})
	}

	written, err := h.secretService.PublishForSession(c.Request.Context(), middleware.GetSessionHandle(c), set)
	if err != nil {
		respondError(c, h.logger, err, "Failed to publish environment variables")
		return
	}
	c.JSON(http.StatusOK, dto.PublishSecretsResponse{Written: written})
}

func (h *SecretHandler) RegisterRoutes(r *gin.Engine, session gin.HandlerFunc) {
	r.POST("/api/v1/secrets", session, h.PublishSecrets)
}
