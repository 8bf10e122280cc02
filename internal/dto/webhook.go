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

// InstanceReadyRequest is the completion notification from the provisioning backend
type InstanceReadyRequest struct {
	InstanceID string `json:"instanceId"`
	// Status is optional; when present and not RUNNING the links are kept
	Status string `json:"status,omitempty"`
}

// InstanceReadyItem is the outcome for one pending link
type InstanceReadyItem struct {
	ProjectID string   `json:"projectId"`
	Result    string   `json:"result"` // published, skipped, failed
	Published []string `json:"published,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// InstanceReadyResponse summarises a webhook delivery
type InstanceReadyResponse struct {
	InstanceID string              `json:"instanceId"`
	Published  int                 `json:"published"`
	Skipped    int                 `json:"skipped"`
	Failed     int                 `json:"failed"`
	Items      []InstanceReadyItem `json:"items"`
}
