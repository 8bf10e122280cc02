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

// CreateInstanceRequest holds the user supplied creation parameters
type CreateInstanceRequest struct {
	CloudProvider string `json:"cloudProvider" binding:"required"`
	Region        string `json:"region" binding:"required"`
	Name          string `json:"name" binding:"required,max=63"`
	User          string `json:"user" binding:"required,max=63"`
	Password      string `json:"password" binding:"required,min=8"`
}

// LinkInstanceRequest attaches an existing instance. The password is not
// retrievable from the provisioning API so the user supplies it again.
type LinkInstanceRequest struct {
	Password string `json:"password" binding:"required"`
}

// InstanceListResponse lists instance ids of the selected subscription
type InstanceListResponse struct {
	Count int      `json:"count"`
	List  []string `json:"list"`
}

// RegionListResponse is the provider and region catalog
type RegionListResponse struct {
	List []model.Region `json:"list"`
}

// ProvisionResponse is the outcome of creating or linking an instance
type ProvisionResponse struct {
	InstanceID string               `json:"instanceId"`
	Status     model.InstanceStatus `json:"status"`
	// Published lists the environment variables written to the project.
	// Empty while the instance is still deploying.
	Published []string `json:"published,omitempty"`
	// Pending is true when the secrets will be written by the instance-ready webhook
	Pending bool   `json:"pending"`
	Message string `json:"message"`
}
