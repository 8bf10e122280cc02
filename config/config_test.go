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

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WEBHOOK_SECRET", "whsec")
	t.Setenv("OMNISTRATE_ADMIN_BEARER", "admin")
	t.Setenv("OMNISTRATE_RESOURCE_PATH", "sp-1/falkordb/v1/prod/free")
	t.Setenv("OMNISTRATE_PRODUCT_TIER_ID", "pt-free")
	t.Setenv("OMNISTRATE_SERVICE_ID", "s-1")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, "https://api.vercel.com", cfg.Vercel.APIURL)
	assert.Equal(t, "2022-09-01-00", cfg.Omnistrate.APIVersion)
	assert.False(t, cfg.IsProduction())
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{"webhook secret", "WEBHOOK_SECRET", "WEBHOOK_SECRET"},
		{"admin bearer", "OMNISTRATE_ADMIN_BEARER", "OMNISTRATE_ADMIN_BEARER"},
		{"resource path", "OMNISTRATE_RESOURCE_PATH", "OMNISTRATE_RESOURCE_PATH"},
		{"product tier", "OMNISTRATE_PRODUCT_TIER_ID", "OMNISTRATE_PRODUCT_TIER_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCookieBackendRequiresKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_BACKEND", "cookie")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("SESSION_ENCRYPTION_KEY", strings.Repeat("ab", 32))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cookie", cfg.Session.Backend)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_BACKEND", "firestore")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported session backend")
}

func TestRedirectURI(t *testing.T) {
	cfg := &Server{Host: "https://example.com/", Vercel: Vercel{RedirectPath: "/callback"}}
	assert.Equal(t, "https://example.com/callback", cfg.RedirectURI())

	cfg.Vercel.RedirectPath = "oauth/return"
	assert.Equal(t, "https://example.com/oauth/return", cfg.RedirectURI())
}

func TestDecodeKey(t *testing.T) {
	hexKey := strings.Repeat("0f", 32)
	b, err := DecodeKey(hexKey)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	b, err = DecodeKey("AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=")
	require.NoError(t, err)
	assert.Equal(t, byte(31), b[31])

	_, err = DecodeKey("short")
	assert.Error(t, err)
	_, err = DecodeKey("")
	assert.Error(t, err)
}
