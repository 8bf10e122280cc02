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

	"github.com/rchristof/example-integration/internal/model"
)

// PendingLinkRepository defines the interface for pending link data access.
// Links are keyed by (InstanceID, ProjectID); creating an existing key
// refreshes it instead of adding a duplicate.
type PendingLinkRepository interface {
	CreatePendingLink(ctx context.Context, link *model.PendingLink) error
	ListPendingLinksByInstance(ctx context.Context, instanceID string) ([]*model.PendingLink, error)
	// DeletePendingLink removes a link. Deleting a missing link is not an error.
	DeletePendingLink(ctx context.Context, instanceID, projectID string) error
}
