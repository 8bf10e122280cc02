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

// Project is a deployable target on the deployment platform
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Token is the result of an OAuth code exchange
type Token struct {
	AccessToken string
	TenantID    string
}

// User is the deployment platform user behind an access token
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
}

// Region is a cloud provider and its selectable regions
type Region struct {
	Provider string   `json:"provider" yaml:"provider"`
	Regions  []string `json:"regions" yaml:"regions"`
}
