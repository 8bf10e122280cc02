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

package model

// SubscriptionStatus is upstream-defined; values other than the constants pass through.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionPending   SubscriptionStatus = "PENDING"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription is a billing plan of the account
type Subscription struct {
	ID            string             `json:"id"`
	ProductTierID string             `json:"productTierId,omitempty"`
	ServiceID     string             `json:"serviceId,omitempty"`
	Status        SubscriptionStatus `json:"status,omitempty"`
	TenantID      string             `json:"tenantId,omitempty"`
}

// IsActiveFor reports whether s is an ACTIVE subscription to productTierID
func (s Subscription) IsActiveFor(productTierID string) bool {
	return s.Status == SubscriptionActive && s.ProductTierID == productTierID
}

// IsPendingFor reports whether s is a PENDING subscription to productTierID
func (s Subscription) IsPendingFor(productTierID string) bool {
	return s.Status == SubscriptionPending && s.ProductTierID == productTierID
}
