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

package omnistrate

import (
	"time"

	"github.com/rchristof/example-integration/internal/client"

	"go.uber.org/zap"
)

// OmnistrateClient talks to the Omnistrate customer API.
// None of its requests are retried automatically.
type OmnistrateClient struct {
	cfg        Config
	httpClient *client.RetryableHTTPClient
	logger     *zap.Logger
}

// NewOmnistrateClient creates a new client for the provided Config.
func NewOmnistrateClient(cfg Config) *OmnistrateClient {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OmnistrateClient{
		cfg:        cfg,
		httpClient: client.NewRetryableHTTPClient(0, timeout, client.WithLogger(logger)),
		logger:     logger.Named("omnistrate"),
	}
}

// Accounts returns the brokered sign-up/sign-in service
func (c *OmnistrateClient) Accounts() AccountsService {
	return &accountsService{client: c}
}

// Subscriptions returns the subscription service
func (c *OmnistrateClient) Subscriptions() SubscriptionsService {
	return &subscriptionsService{client: c}
}

// Instances returns the instance service acting with a user's session token
func (c *OmnistrateClient) Instances() InstancesService {
	return &instancesService{client: c}
}

// AdminInstances returns the read-only instance service acting with the admin bearer
func (c *OmnistrateClient) AdminInstances() AdminInstancesService {
	return &adminInstancesService{client: c}
}
