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

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rchristof/example-integration/internal/client/omnistrate"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/dto"
	"github.com/rchristof/example-integration/internal/metrics"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/repository"

	"go.uber.org/zap"
)

const (
	itemPublished = "published"
	itemSkipped   = "skipped"
	itemFailed    = "failed"
)

// WebhookService completes pending links when the provisioning backend
// reports an instance as ready
type WebhookService struct {
	instances omnistrate.AdminInstancesService
	secrets   *SecretService
	links     repository.PendingLinkRepository
	logger    *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(instances omnistrate.AdminInstancesService, secrets *SecretService,
	links repository.PendingLinkRepository, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		instances: instances,
		secrets:   secrets,
		links:     links,
		logger:    logger,
	}
}

// HandleInstanceReady publishes the connection details of the instance to
// every project waiting on it. Links are processed independently and a link
// is only deleted after its secrets were written, so redelivery is safe.
//
// It returns ErrNoPendingLinks when nothing waits on the instance and
// ErrDeliveryIncomplete, together with the summary, when any link failed.
func (s *WebhookService) HandleInstanceReady(ctx context.Context, req dto.InstanceReadyRequest) (resp *dto.InstanceReadyResponse, err error) {
	defer func() { observeStep("instance_ready", err) }()

	if req.InstanceID == "" {
		return nil, constants.ErrMissingInstanceID
	}

	links, err := s.links.ListPendingLinksByInstance(ctx, req.InstanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending links: %w", err)
	}
	if len(links) == 0 {
		return nil, constants.ErrNoPendingLinks
	}

	log := s.logger.With(zap.String("instanceId", req.InstanceID))
	resp = &dto.InstanceReadyResponse{InstanceID: req.InstanceID, Items: make([]dto.InstanceReadyItem, 0, len(links))}

	// A status in the notification saves the detail lookups when it is
	// clearly not a readiness event.
	if req.Status != "" && model.ParseInstanceStatus(req.Status) != model.InstanceRunning {
		log.Info("Instance not running, keeping pending links", zap.String("status", req.Status))
		for _, link := range links {
			resp.Items = append(resp.Items, dto.InstanceReadyItem{ProjectID: link.ProjectID, Result: itemSkipped})
			resp.Skipped++
		}
		metrics.PendingLinksTotal.WithLabelValues("skipped").Add(float64(len(links)))
		return resp, nil
	}

	for _, link := range links {
		item := s.complete(ctx, link)
		switch item.Result {
		case itemPublished:
			resp.Published++
		case itemSkipped:
			resp.Skipped++
		default:
			resp.Failed++
			log.Warn("Failed to complete pending link",
				zap.String("projectId", link.ProjectID),
				zap.String("error", item.Error))
		}
		metrics.PendingLinksTotal.WithLabelValues(item.Result).Inc()
		resp.Items = append(resp.Items, item)
	}

	log.Info("Processed instance-ready notification",
		zap.Int("published", resp.Published),
		zap.Int("skipped", resp.Skipped),
		zap.Int("failed", resp.Failed))

	if resp.Failed > 0 {
		return resp, constants.ErrDeliveryIncomplete
	}
	return resp, nil
}

func (s *WebhookService) complete(ctx context.Context, link *model.PendingLink) dto.InstanceReadyItem {
	item := dto.InstanceReadyItem{ProjectID: link.ProjectID}

	detail, err := s.instances.Get(ctx, link.SubscriptionID, link.InstanceID)
	if err != nil {
		return failedItem(item, err)
	}
	if detail.Status != model.InstanceRunning {
		item.Result = itemSkipped
		return item
	}

	set, err := connectionSecrets(detail.Connection, "")
	if err != nil {
		return failedItem(item, err)
	}
	written, err := s.secrets.Publish(ctx, model.PublishTarget{
		AccessToken: link.AccessToken,
		TenantID:    link.TenantID,
		ProjectID:   link.ProjectID,
	}, set)
	item.Published = written
	if err != nil {
		return failedItem(item, err)
	}

	if err := s.links.DeletePendingLink(ctx, link.InstanceID, link.ProjectID); err != nil &&
		!errors.Is(err, constants.ErrPendingLinkNotFound) {
		return failedItem(item, fmt.Errorf("secrets published but link not removed: %w", err))
	}
	item.Result = itemPublished
	return item
}

func failedItem(item dto.InstanceReadyItem, err error) dto.InstanceReadyItem {
	item.Result = itemFailed
	item.Error = err.Error()
	return item
}
