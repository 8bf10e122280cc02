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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCorrelationIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		headerID string
	}{
		{name: "generates id when absent"},
		{name: "reuses incoming id", headerID: "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CorrelationIDMiddleware(zap.NewNop()))
			var seen string
			router.GET("/test", func(c *gin.Context) {
				seen = GetCorrelationID(c)
				assert.NotNil(t, GetLogger(c, nil))
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.headerID != "" {
				req.Header.Set("x-correlation-id", tt.headerID)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(CorrelationIDHeader))
			if tt.headerID != "" {
				assert.Equal(t, tt.headerID, seen)
			}
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	cookie := SessionCookie{Name: "session", TTL: time.Hour, Secure: true}
	router := gin.New()
	router.Use(SessionMiddleware(cookie))
	router.GET("/s", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionHandle(c))
	})
	router.POST("/rotate", func(c *gin.Context) {
		cookie.Set(c, "new-handle")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
	req.Header.Set("X-Session-Token", "from-header")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "from-cookie", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/s", nil)
	req.Header.Set("X-Session-Token", "from-header")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "from-header", w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/rotate", nil)
	req.Header.Set("X-Session-Token", "old-handle")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	setCookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, "session=new-handle")
	assert.Contains(t, setCookie, "HttpOnly")
	assert.Contains(t, setCookie, "Secure")
	assert.Contains(t, setCookie, "SameSite=Strict")
	assert.Equal(t, "new-handle", w.Header().Get("X-Session-Token"))
}

func TestSessionCookie_SetUnchangedHandleWritesNothing(t *testing.T) {
	cookie := SessionCookie{Name: "session", TTL: time.Hour}
	router := gin.New()
	router.Use(SessionMiddleware(cookie))
	router.POST("/same", func(c *gin.Context) {
		cookie.Set(c, GetSessionHandle(c))
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/same", nil)
	req.Header.Set("X-Session-Token", "h1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestWebhookAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", want: http.StatusUnauthorized},
		{name: "not a bearer", header: "Basic c2VjcmV0", want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "prefix of secret", header: "Bearer s3cr", want: http.StatusUnauthorized},
		{name: "valid", header: "Bearer s3cret", want: http.StatusOK},
	}

	router := gin.New()
	router.POST("/hook", WebhookAuth("s3cret", zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader(`{}`))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestWebhookAuth_EmptySecretRejectsEverything(t *testing.T) {
	router := gin.New()
	router.POST("/hook", WebhookAuth("", zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestErrorHandlingMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandlingMiddleware(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
}
