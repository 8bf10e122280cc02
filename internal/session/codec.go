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

package session

import (
	"encoding/json"
	"time"

	"github.com/rchristof/example-integration/internal/model"
)

// Column names, shared by the redis hash fields and the sessions table
const (
	colAccessToken           = "access_token"
	colTenantID              = "tenant_id"
	colAccountToken          = "account_token"
	colAccountTokenExpiresAt = "account_token_expires_at"
	colEmail                 = "email"
	colProjectID             = "project_id"
	colProjectIDs            = "project_ids"
	colSubscriptionID        = "subscription_id"
	colInstanceID            = "instance_id"
	colCreatedAt             = "created_at"
	colExpiresAt             = "expires_at"
)

var patchColumns = []string{
	colAccessToken, colTenantID, colAccountToken, colAccountTokenExpiresAt, colEmail,
	colProjectID, colProjectIDs, colSubscriptionID, colInstanceID,
}

// field is one column assignment. value is a string, a time.Time, or nil.
type field struct {
	name  string
	value interface{}
}

// patchFields lists the assignments a patch makes, in a stable order
func patchFields(p model.SessionPatch) []field {
	set := map[string]interface{}{}
	if p.ClearAccount {
		set[colAccountToken] = ""
		set[colAccountTokenExpiresAt] = nil
	}
	if p.AccessToken != nil {
		set[colAccessToken] = *p.AccessToken
	}
	if p.TenantID != nil {
		set[colTenantID] = *p.TenantID
	}
	if p.AccountToken != nil {
		set[colAccountToken] = *p.AccountToken
	}
	if p.AccountTokenExpiresAt != nil {
		set[colAccountTokenExpiresAt] = p.AccountTokenExpiresAt.UTC()
	}
	if p.Email != nil {
		set[colEmail] = *p.Email
	}
	if p.ProjectID != nil {
		set[colProjectID] = *p.ProjectID
	}
	if p.ProjectIDs != nil {
		set[colProjectIDs] = encodeProjectIDs(*p.ProjectIDs)
	}
	if p.SubscriptionID != nil {
		set[colSubscriptionID] = *p.SubscriptionID
	}
	if p.InstanceID != nil {
		set[colInstanceID] = *p.InstanceID
	}

	out := make([]field, 0, len(set))
	for _, col := range patchColumns {
		if v, ok := set[col]; ok {
			out = append(out, field{name: col, value: v})
		}
	}
	return out
}

// sessionFields lists every column of s
func sessionFields(s *model.Session) []field {
	var accountExp interface{}
	if s.AccountTokenExpiresAt != nil {
		accountExp = s.AccountTokenExpiresAt.UTC()
	}
	return []field{
		{colAccessToken, s.AccessToken},
		{colTenantID, s.TenantID},
		{colAccountToken, s.AccountToken},
		{colAccountTokenExpiresAt, accountExp},
		{colEmail, s.Email},
		{colProjectID, s.ProjectID},
		{colProjectIDs, encodeProjectIDs(s.ProjectIDs)},
		{colSubscriptionID, s.SubscriptionID},
		{colInstanceID, s.InstanceID},
		{colCreatedAt, s.CreatedAt.UTC()},
		{colExpiresAt, s.ExpiresAt.UTC()},
	}
}

func encodeProjectIDs(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

func decodeProjectIDs(raw string) []string {
	var ids []string
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil || len(ids) == 0 {
		return nil
	}
	return ids
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}
