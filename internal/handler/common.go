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
	"github.com/rchristof/example-integration/internal/middleware"
	"github.com/rchristof/example-integration/internal/utils"
	"go.uber.org/zap"
)

// respondError maps err once and writes it. Server side failures are logged
// with the request's correlation id.
func respondError(c *gin.Context, logger *zap.Logger, err error, action string) {
	status, resp := utils.GetErrorResponse(err)
	log := middleware.GetLogger(c, logger)
	if status >= http.StatusInternalServerError {
		log.Error(action, zap.Int("status", status), zap.Error(err))
	} else {
		log.Debug(action, zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, resp)
}

// bindJSON binds the request body and answers 400 when it is invalid
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", utils.FormatValidationError(err)))
		return false
	}
	return true
}
