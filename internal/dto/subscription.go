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

package dto

import "github.com/rchristof/example-integration/internal/model"

// SubscriptionListResponse represents the account's subscriptions
type SubscriptionListResponse struct {
	Count int                  `json:"count"`
	List  []model.Subscription `json:"list"`
}

// ActivePlanResponse holds the active free-tier subscription, or null when
// the account has none.
type ActivePlanResponse struct {
	Subscription *model.Subscription `json:"subscription"`
}

// SubscribeResponse reports the subscription recorded in the session
type SubscribeResponse struct {
	Subscription model.Subscription `json:"subscription"`
	// Created is false when an existing active subscription was reused
	Created bool `json:"created"`
}
