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
	"time"

	"github.com/rchristof/example-integration/internal/client"

	"go.uber.org/zap"
)

// VercelClient talks to the Vercel REST API. It is stateless; every call
// carries the per-user access token it acts with.
type VercelClient struct {
	cfg        Config
	httpClient *client.RetryableHTTPClient
	logger     *zap.Logger
}

// NewVercelClient creates a new Vercel client for the provided Config.
func NewVercelClient(cfg Config) *VercelClient {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	opts := []client.Option{client.WithLogger(logger)}
	if cfg.Backoff > 0 {
		opts = append(opts, client.WithBackoff(cfg.Backoff))
	}

	return &VercelClient{
		cfg:        cfg,
		httpClient: client.NewRetryableHTTPClient(cfg.MaxRetries, timeout, opts...),
		logger:     logger.Named("vercel"),
	}
}

// OAuth returns the token exchange service
func (c *VercelClient) OAuth() OAuthService {
	return &oauthService{client: c}
}

// Projects returns the project listing service
func (c *VercelClient) Projects() ProjectsService {
	return &projectsService{client: c}
}

// Env returns the environment variable service
func (c *VercelClient) Env() EnvService {
	return &envService{client: c}
}

// Users returns the user lookup service
func (c *VercelClient) Users() UsersService {
	return &usersService{client: c}
}
