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

// ExchangeRequest carries the OAuth authorization code
type ExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

// SignUpRequest is the account creation form
type SignUpRequest struct {
	Email            string `json:"email" binding:"required,email"`
	LegalCompanyName string `json:"legalCompanyName" binding:"required,max=200"`
	Name             string `json:"name" binding:"required,max=200"`
	Password         string `json:"password" binding:"required,min=8"`
}

// SignInRequest is the account sign-in form
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// SessionResponse describes the onboarding progress of the current session
type SessionResponse struct {
	Authenticated  bool        `json:"authenticated"`
	TeamID         string      `json:"teamId,omitempty"`
	HasAccount     bool        `json:"hasAccount"`
	Email          string      `json:"email,omitempty"`
	ProjectID      string      `json:"projectId,omitempty"`
	SubscriptionID string      `json:"subscriptionId,omitempty"`
	InstanceID     string      `json:"instanceId,omitempty"`
	User           *model.User `json:"user,omitempty"`
}
