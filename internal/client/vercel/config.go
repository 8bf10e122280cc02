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

	"go.uber.org/zap"
)

const (
	oauthTokenPath = "v2/oauth/access_token"
	projectsPath   = "v9/projects"
	envPathPrefix  = "v10/projects"
	userPath       = "v2/user"

	// DefaultProjectLimit bounds a listing to a single page
	DefaultProjectLimit = 100
)

// Config holds configuration for the Vercel REST API client
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// RedirectURI must byte-for-byte match the URI registered for the integration
	RedirectURI string
	Timeout     time.Duration
	// MaxRetries applies to idempotent environment variable upserts only
	MaxRetries int
	Backoff    time.Duration
	Logger     *zap.Logger
}
