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

package vercel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*VercelClient, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewVercelClient(Config{
		BaseURL:      srv.URL,
		ClientID:     "oac_client",
		ClientSecret: "shh",
		RedirectURI:  "https://integration.example.com/callback",
		Timeout:      5 * time.Second,
		MaxRetries:   2,
		Backoff:      time.Millisecond,
	})
	return c, &calls
}

func TestExchangeCode_ReturnsTokenAndTeam(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/oauth/access_token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "oac_client", r.PostForm.Get("client_id"))
		assert.Equal(t, "shh", r.PostForm.Get("client_secret"))
		assert.Equal(t, "abc", r.PostForm.Get("code"))
		assert.Equal(t, "https://integration.example.com/callback", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","team_id":"team1","token_type":"Bearer"}`))
	})

	tok, err := c.OAuth().ExchangeCode(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
	assert.Equal(t, "team1", tok.TenantID)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExchangeCode_EmptyCodeMakesNoRequest(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	for _, code := range []string{"", "   "} {
		_, err := c.OAuth().ExchangeCode(context.Background(), code)
		assert.ErrorIs(t, err, constants.ErrInvalidCode)
		assert.ErrorIs(t, err, constants.ErrInvalidInput)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestExchangeCode_UpstreamRejection(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Code was already used"}`))
	})

	_, err := c.OAuth().ExchangeCode(context.Background(), "stale")
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrUpstreamAuth)
	assert.ErrorIs(t, err, constants.ErrUpstream)

	var ue *client.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusBadRequest, ue.Code)
	assert.Equal(t, "Code was already used", ue.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExchangeCode_ServerErrorIsNotRetried(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.OAuth().ExchangeCode(context.Background(), "abc")
	assert.ErrorIs(t, err, constants.ErrUpstreamAuth)
	assert.Equal(t, int32(1), calls.Load(), "a code is single use")
}

func TestExchangeCode_MissingAccessToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"team_id":"team1"}`))
	})

	_, err := c.OAuth().ExchangeCode(context.Background(), "abc")
	assert.ErrorIs(t, err, constants.ErrUpstreamAuth)
}
