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

import "time"

// PendingLink is a provisioning request whose secrets have not been published
// because the instance was not ready. Keyed by (InstanceID, ProjectID).
type PendingLink struct {
	InstanceID     string    `json:"instanceId" db:"instance_id"`
	ProjectID      string    `json:"projectId" db:"project_id"`
	AccessToken    string    `json:"-" db:"access_token"`
	SubscriptionID string    `json:"subscriptionId" db:"subscription_id"`
	TenantID       string    `json:"teamId,omitempty" db:"tenant_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Key returns the composite key "<instanceId>:<projectId>"
func (l *PendingLink) Key() string {
	return l.InstanceID + ":" + l.ProjectID
}
