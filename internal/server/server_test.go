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

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rchristof/example-integration/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T, backend string) *config.Server {
	return &config.Server{
		Port:        "0",
		Host:        "http://localhost:3000",
		Environment: "development",
		Vercel: config.Vercel{
			APIURL:       "http://127.0.0.1:1",
			RedirectPath: "/callback",
			Timeout:      1,
		},
		Omnistrate: config.Omnistrate{
			APIURL:        "http://127.0.0.1:1",
			AdminBearer:   "admin",
			ServiceID:     "s-1",
			ProductTierID: "pt-1",
			ResourcePath:  "sp/falkordb/v1/prod/free/model/resource",
			Timeout:       1,
		},
		Session: config.Session{
			Backend:       backend,
			TTL:           time.Hour,
			CookieName:    "session",
			EncryptionKey: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		},
		Webhook: config.Webhook{Secret: "hook"},
		Metrics: config.Metrics{Enabled: true},
		Database: config.Database{
			Driver:           "sqlite3",
			Path:             filepath.Join(t.TempDir(), "test.db"),
			MaxOpenConns:     1,
			MaxIdleConns:     1,
			ExecuteSchemaDDL: true,
		},
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestServer_Routes(t *testing.T) {
	for _, backend := range []string{"memory", "sql", "cookie"} {
		t.Run(backend, func(t *testing.T) {
			srv, err := StartIntegrationServer(testConfig(t, backend), zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { srv.Shutdown(context.Background()) })
			router := srv.GetRouter()

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), backend)

			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/instances/regions", nil))
			require.Equal(t, http.StatusOK, w.Code)
			var regions struct {
				List []struct {
					Provider string   `json:"provider"`
					Regions  []string `json:"regions"`
				} `json:"list"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regions))
			assert.NotEmpty(t, regions.List)

			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/instances", nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/instance-ready", strings.NewReader(`{"instanceId":"i-1"}`))
			req.Header.Set("Authorization", "Bearer hook")
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusNotFound, w.Code)

			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestServer_CallbackRejectsMissingCode(t *testing.T) {
	srv, err := StartIntegrationServer(testConfig(t, "memory"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	w := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoadOrCreateCert(t *testing.T) {
	dir := t.TempDir()
	first, err := loadOrCreateCert(dir, zap.NewNop())
	require.NoError(t, err)
	second, err := loadOrCreateCert(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, first.Certificate[0], second.Certificate[0])
}
