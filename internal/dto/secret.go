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

// SecretVariable is one environment variable to publish
type SecretVariable struct {
	Key     string        `json:"key" binding:"required,envkey"`
	Value   string        `json:"value" binding:"required"`
	Targets []model.Stage `json:"target,omitempty" binding:"omitempty,dive,oneof=production preview development"`
}

// PublishSecretsRequest publishes arbitrary variables to the selected project
type PublishSecretsRequest struct {
	Variables []SecretVariable `json:"variables" binding:"required,min=1,dive"`
}

// PublishSecretsResponse lists the keys written
type PublishSecretsResponse struct {
	Written []string `json:"written"`
}
