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
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rchristof/example-integration/internal/dto"
	"github.com/rchristof/example-integration/internal/middleware"
	"github.com/rchristof/example-integration/internal/service"
	"github.com/rchristof/example-integration/internal/utils"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  *service.AuthService
	cookie       middleware.SessionCookie
	callbackPath string
	logger       *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, cookie middleware.SessionCookie, callbackPath string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookie:       cookie,
		callbackPath: callbackPath,
		logger:       logger,
	}
}

// Callback handles GET /callback?code=...&next=...
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(400, "Bad Request", "code is required"))
		return
	}

	handle, err := h.authService.Exchange(c.Request.Context(), code)
	if err != nil {
		respondError(c, h.logger, err, "Token exchange failed")
		return
	}
	h.cookie.Set(c, handle)
	c.Redirect(http.StatusFound, safeRedirect(c.Query("next")))
}

// Exchange handles POST /api/v1/auth/exchange
func (h *AuthHandler) Exchange(c *gin.Context) {
	var req dto.ExchangeRequest
	if !bindJSON(c, &req) {
		return
	}

	handle, err := h.authService.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, h.logger, err, "Token exchange failed")
		return
	}
	h.cookie.Set(c, handle)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Session started"})
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.SignUp(c.Request.Context(), middleware.GetSessionHandle(c), req); err != nil {
		respondError(c, h.logger, err, "Sign-up failed")
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{
		Message: "Account created. Confirm your email address, then sign in.",
	})
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	handle, err := h.authService.SignIn(c.Request.Context(), middleware.GetSessionHandle(c), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "Sign-in failed")
		return
	}
	h.cookie.Set(c, handle)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Signed in"})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetSessionHandle(c)); err != nil {
		respondError(c, h.logger, err, "Logout failed")
		return
	}
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Signed out"})
}

// Session handles GET /api/v1/auth/session[?include=user]
func (h *AuthHandler) Session(c *gin.Context) {
	resp, err := h.authService.Status(c.Request.Context(), middleware.GetSessionHandle(c), c.Query("include") == "user")
	if err != nil {
		respondError(c, h.logger, err, "Session lookup failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine, session gin.HandlerFunc) {
	r.GET(h.callbackPath, h.Callback)

	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/exchange", h.Exchange)
		authGroup.POST("/signup", session, h.SignUp)
		authGroup.POST("/signin", session, h.SignIn)
		authGroup.POST("/logout", session, h.Logout)
		authGroup.GET("/session", session, h.Session)
	}
}

// safeRedirect only allows relative paths on this host
func safeRedirect(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return next
}

