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

	"go.uber.org/zap"
)

const (
	signUpPath           = "customer-user-signup"
	signInPath           = "customer-user-signin"
	subscriptionPath     = "subscription"
	resourceInstancePath = "resource-instance"

	DefaultAPIVersion = "2022-09-01-00"
)

// Config holds configuration for the Omnistrate customer API client
type Config struct {
	BaseURL    string
	APIVersion string
	// AdminBearer brokers sign-up and sign-in and reads instance details for
	// the completion webhook. It is never exposed to browsers.
	AdminBearer string
	// ResourcePath is the per-product path below resource-instance, e.g.
	// "sp-xxx/falkordb/v1/prod/<plan>/<model>/<resource>"
	ResourcePath string
	Timeout      time.Duration
	Logger       *zap.Logger
}
