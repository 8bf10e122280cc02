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

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rchristof/example-integration/internal/model"

	"github.com/redis/go-redis/v9"
)

// PendingLinkRedisRepo implements PendingLinkRepository with one redis hash
// per instance, keyed by project id.
type PendingLinkRedisRepo struct {
	client    redis.UniversalClient
	keyPrefix string
}

type storedLink struct {
	AccessToken    string    `json:"accessToken"`
	SubscriptionID string    `json:"subscriptionId"`
	TenantID       string    `json:"tenantId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewPendingLinkRedisRepo creates a redis backed pending link repository
func NewPendingLinkRedisRepo(client redis.UniversalClient, keyPrefix string) PendingLinkRepository {
	return &PendingLinkRedisRepo{client: client, keyPrefix: keyPrefix}
}

func (r *PendingLinkRedisRepo) key(instanceID string) string {
	return r.keyPrefix + "pending:" + instanceID
}

func (r *PendingLinkRedisRepo) CreatePendingLink(ctx context.Context, link *model.PendingLink) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	b, err := json.Marshal(storedLink{
		AccessToken:    link.AccessToken,
		SubscriptionID: link.SubscriptionID,
		TenantID:       link.TenantID,
		CreatedAt:      link.CreatedAt,
	})
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, r.key(link.InstanceID), link.ProjectID, b).Err()
}

func (r *PendingLinkRedisRepo) ListPendingLinksByInstance(ctx context.Context, instanceID string) ([]*model.PendingLink, error) {
	h, err := r.client.HGetAll(ctx, r.key(instanceID)).Result()
	if err != nil {
		return nil, err
	}

	links := make([]*model.PendingLink, 0, len(h))
	for projectID, raw := range h {
		var s storedLink
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("corrupt pending link %s:%s: %w", instanceID, projectID, err)
		}
		links = append(links, &model.PendingLink{
			InstanceID:     instanceID,
			ProjectID:      projectID,
			AccessToken:    s.AccessToken,
			SubscriptionID: s.SubscriptionID,
			TenantID:       s.TenantID,
			CreatedAt:      s.CreatedAt,
		})
	}
	sort.Slice(links, func(i, j int) bool {
		if !links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].CreatedAt.Before(links[j].CreatedAt)
		}
		return links[i].ProjectID < links[j].ProjectID
	})
	return links, nil
}

func (r *PendingLinkRedisRepo) DeletePendingLink(ctx context.Context, instanceID, projectID string) error {
	return r.client.HDel(ctx, r.key(instanceID), projectID).Err()
}
