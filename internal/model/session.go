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

import (
	"slices"
	"time"
)

// Session is the accumulated onboarding state of one browser.
type Session struct {
	ID                    string     `json:"-"`
	AccessToken           string     `json:"accessToken,omitempty"`
	TenantID              string     `json:"tenantId,omitempty"`
	AccountToken          string     `json:"accountToken,omitempty"`
	AccountTokenExpiresAt *time.Time `json:"accountTokenExpiresAt,omitempty"`
	Email                 string     `json:"email,omitempty"`
	ProjectID             string     `json:"projectId,omitempty"`
	ProjectIDs            []string   `json:"projectIds,omitempty"`
	SubscriptionID        string     `json:"subscriptionId,omitempty"`
	InstanceID            string     `json:"instanceId,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	ExpiresAt             time.Time  `json:"expiresAt"`
}

// Expired reports whether the session is past its TTL at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// HasAccount reports whether an unexpired account session token is present.
func (s *Session) HasAccount(now time.Time) bool {
	if s.AccountToken == "" || s.Expired(now) {
		return false
	}
	if s.AccountTokenExpiresAt != nil && !now.Before(*s.AccountTokenExpiresAt) {
		return false
	}
	return true
}

// KnowsProject reports whether projectID was returned by the most recent listing.
func (s *Session) KnowsProject(projectID string) bool {
	return slices.Contains(s.ProjectIDs, projectID)
}

// SessionPatch is a partial update. Nil fields are left untouched by Merge.
// ClearAccount wipes the account token and its expiry.
type SessionPatch struct {
	AccessToken           *string
	TenantID              *string
	AccountToken          *string
	AccountTokenExpiresAt *time.Time
	Email                 *string
	ProjectID             *string
	ProjectIDs            *[]string
	SubscriptionID        *string
	InstanceID            *string
	ClearAccount          bool
}

// Apply copies every set field of p onto s.
func (p SessionPatch) Apply(s *Session) {
	if p.ClearAccount {
		s.AccountToken = ""
		s.AccountTokenExpiresAt = nil
	}
	if p.AccessToken != nil {
		s.AccessToken = *p.AccessToken
	}
	if p.TenantID != nil {
		s.TenantID = *p.TenantID
	}
	if p.AccountToken != nil {
		s.AccountToken = *p.AccountToken
	}
	if p.AccountTokenExpiresAt != nil {
		t := *p.AccountTokenExpiresAt
		s.AccountTokenExpiresAt = &t
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.ProjectID != nil {
		s.ProjectID = *p.ProjectID
	}
	if p.ProjectIDs != nil {
		s.ProjectIDs = slices.Clone(*p.ProjectIDs)
	}
	if p.SubscriptionID != nil {
		s.SubscriptionID = *p.SubscriptionID
	}
	if p.InstanceID != nil {
		s.InstanceID = *p.InstanceID
	}
}

// IsEmpty reports whether the patch changes nothing
func (p SessionPatch) IsEmpty() bool {
	return !p.ClearAccount && p.AccessToken == nil && p.TenantID == nil && p.AccountToken == nil &&
		p.AccountTokenExpiresAt == nil && p.Email == nil && p.ProjectID == nil && p.ProjectIDs == nil &&
		p.SubscriptionID == nil && p.InstanceID == nil
}

// Clone returns a deep copy of s
func (s *Session) Clone() *Session {
	c := *s
	c.ProjectIDs = slices.Clone(s.ProjectIDs)
	if s.AccountTokenExpiresAt != nil {
		t := *s.AccountTokenExpiresAt
		c.AccountTokenExpiresAt = &t
	}
	return &c
}

// Ptr returns a pointer to v. Used to build patches.
func Ptr[T any](v T) *T {
	return &v
}
