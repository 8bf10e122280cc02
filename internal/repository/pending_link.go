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
	"time"

	"github.com/rchristof/example-integration/internal/database"
	"github.com/rchristof/example-integration/internal/model"
)

// PendingLinkRepo implements PendingLinkRepository on the pending_links table
type PendingLinkRepo struct {
	db *database.DB
}

// NewPendingLinkRepo creates a new pending link repository
func NewPendingLinkRepo(db *database.DB) PendingLinkRepository {
	return &PendingLinkRepo{db: db}
}

// CreatePendingLink inserts or refreshes a pending link
func (r *PendingLinkRepo) CreatePendingLink(ctx context.Context, link *model.PendingLink) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO pending_links (instance_id, project_id, access_token, subscription_id, tenant_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (instance_id, project_id) DO UPDATE SET
			access_token = excluded.access_token,
			subscription_id = excluded.subscription_id,
			tenant_id = excluded.tenant_id,
			created_at = excluded.created_at
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		link.InstanceID, link.ProjectID, link.AccessToken, link.SubscriptionID, link.TenantID, link.CreatedAt)
	return err
}

// ListPendingLinksByInstance returns every pending link of an instance, oldest first
func (r *PendingLinkRepo) ListPendingLinksByInstance(ctx context.Context, instanceID string) ([]*model.PendingLink, error) {
	query := `
		SELECT instance_id, project_id, access_token, subscription_id, tenant_id, created_at
		FROM pending_links
		WHERE instance_id = ?
		ORDER BY created_at ASC, project_id ASC
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*model.PendingLink
	for rows.Next() {
		link := &model.PendingLink{}
		if err := rows.Scan(&link.InstanceID, &link.ProjectID, &link.AccessToken,
			&link.SubscriptionID, &link.TenantID, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// DeletePendingLink removes a pending link
func (r *PendingLinkRepo) DeletePendingLink(ctx context.Context, instanceID, projectID string) error {
	query := `DELETE FROM pending_links WHERE instance_id = ? AND project_id = ?`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), instanceID, projectID)
	return err
}
