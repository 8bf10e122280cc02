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
	"fmt"
	"time"

	"github.com/rchristof/example-integration/internal/client/omnistrate"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/dto"
	"github.com/rchristof/example-integration/internal/metrics"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/repository"
	"github.com/rchristof/example-integration/internal/session"
	"github.com/rchristof/example-integration/internal/utils"

	"go.uber.org/zap"
)

// InstanceService manages database instances of the selected subscription and
// hands their connection details to the selected project
type InstanceService struct {
	sessionAccess
	instances omnistrate.InstancesService
	secrets   *SecretService
	links     repository.PendingLinkRepository
	catalog   *utils.RegionCatalog
	logger    *zap.Logger
}

// NewInstanceService creates a new InstanceService
func NewInstanceService(instances omnistrate.InstancesService, secrets *SecretService,
	links repository.PendingLinkRepository, catalog *utils.RegionCatalog,
	store session.Store, logger *zap.Logger) *InstanceService {
	if catalog == nil {
		catalog = utils.DefaultRegionCatalog()
	}
	return &InstanceService{
		sessionAccess: newSessionAccess(store),
		instances:     instances,
		secrets:       secrets,
		links:         links,
		catalog:       catalog,
		logger:        logger,
	}
}

// Regions returns the selectable providers and regions
func (s *InstanceService) Regions() []model.Region {
	return s.catalog.Providers()
}

// List returns the instance ids of the selected subscription
func (s *InstanceService) List(ctx context.Context, handle string) ([]string, error) {
	sess, err := s.loadSubscription(ctx, handle)
	if err != nil {
		return nil, err
	}
	return s.instances.List(ctx, sess.AccountToken, sess.SubscriptionID)
}

// Get returns the observed state of one instance
func (s *InstanceService) Get(ctx context.Context, handle, instanceID string) (*model.InstanceDetail, error) {
	sess, err := s.loadSubscription(ctx, handle)
	if err != nil {
		return nil, err
	}
	return s.instances.Get(ctx, sess.AccountToken, sess.SubscriptionID, instanceID)
}

// Create provisions a new instance and either publishes its connection
// details or registers a pending link for the instance-ready webhook.
func (s *InstanceService) Create(ctx context.Context, handle string, req dto.CreateInstanceRequest) (resp *dto.ProvisionResponse, newHandle string, err error) {
	defer func() { observeStep("create_instance", err) }()

	if !s.catalog.Supports(req.CloudProvider, req.Region) {
		return nil, "", constants.ErrUnsupportedRegion
	}
	sess, err := s.loadProvisioning(ctx, handle)
	if err != nil {
		return nil, "", err
	}

	instanceID, err := s.instances.Create(ctx, sess.AccountToken, sess.SubscriptionID, model.CreateInstanceParams{
		CloudProvider: req.CloudProvider,
		Region:        req.Region,
		Name:          req.Name,
		User:          req.User,
		Password:      req.Password,
	})
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("Instance created",
		zap.String("instanceId", instanceID),
		zap.String("cloudProvider", req.CloudProvider),
		zap.String("region", req.Region))

	// Record the instance before anything else can fail so a retry finds it.
	newHandle, err = s.store.Merge(ctx, handle, model.SessionPatch{InstanceID: &instanceID})
	if err != nil {
		return nil, "", err
	}

	detail, err := s.instances.Get(ctx, sess.AccountToken, sess.SubscriptionID, instanceID)
	if err != nil {
		s.logger.Warn("Failed to describe new instance, waiting for the instance-ready webhook",
			zap.String("instanceId", instanceID), zap.Error(err))
		detail = &model.InstanceDetail{ID: instanceID, SubscriptionID: sess.SubscriptionID, Status: model.InstanceDeploying}
	}

	resp, err = s.classifyInstance(ctx, sess, detail, req.Password)
	return resp, newHandle, err
}

// Link selects an existing instance for the session's project
func (s *InstanceService) Link(ctx context.Context, handle, instanceID, password string) (resp *dto.ProvisionResponse, newHandle string, err error) {
	defer func() { observeStep("link_instance", err) }()

	if instanceID == "" {
		return nil, "", constants.ErrMissingInstanceID
	}
	sess, err := s.loadProvisioning(ctx, handle)
	if err != nil {
		return nil, "", err
	}

	detail, err := s.instances.Get(ctx, sess.AccountToken, sess.SubscriptionID, instanceID)
	if err != nil {
		return nil, "", err
	}
	// DELETING instances must not become the selected one
	if detail.Status == model.InstanceDeleting {
		return nil, "", stateError(constants.ErrInstanceUnavailable, detail)
	}

	newHandle, err = s.store.Merge(ctx, handle, model.SessionPatch{InstanceID: &instanceID})
	if err != nil {
		return nil, "", err
	}
	resp, err = s.classifyInstance(ctx, sess, detail, password)
	return resp, newHandle, err
}

// Delete removes an instance and forgets it if it was the selected one
func (s *InstanceService) Delete(ctx context.Context, handle, instanceID string) (newHandle string, err error) {
	defer func() { observeStep("delete_instance", err) }()

	if instanceID == "" {
		return "", constants.ErrMissingInstanceID
	}
	sess, err := s.loadSubscription(ctx, handle)
	if err != nil {
		return "", err
	}
	if err := s.instances.Delete(ctx, sess.AccountToken, sess.SubscriptionID, instanceID); err != nil {
		return "", err
	}
	s.logger.Info("Instance deletion requested", zap.String("instanceId", instanceID))
	if sess.InstanceID != instanceID {
		return handle, nil
	}
	return s.store.Merge(ctx, handle, model.SessionPatch{InstanceID: model.Ptr("")})
}

// loadProvisioning requires everything needed to hand an instance to a project
func (s *InstanceService) loadProvisioning(ctx context.Context, handle string) (*model.Session, error) {
	sess, err := s.loadSubscription(ctx, handle)
	if err != nil {
		return nil, err
	}
	if sess.AccessToken == "" {
		return nil, constants.ErrMissingAccessToken
	}
	if sess.ProjectID == "" {
		return nil, constants.ErrNoProjectSelected
	}
	return sess, nil
}

// classifyInstance is the only place that decides what an instance status
// means for the workflow.
func (s *InstanceService) classifyInstance(ctx context.Context, sess *model.Session, detail *model.InstanceDetail, password string) (*dto.ProvisionResponse, error) {
	resp := &dto.ProvisionResponse{InstanceID: detail.ID, Status: detail.Status}

	switch detail.Status {
	case model.InstanceDeploying:
		link := &model.PendingLink{
			InstanceID:     detail.ID,
			ProjectID:      sess.ProjectID,
			AccessToken:    sess.AccessToken,
			SubscriptionID: sess.SubscriptionID,
			TenantID:       sess.TenantID,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.links.CreatePendingLink(ctx, link); err != nil {
			return nil, fmt.Errorf("failed to register pending link: %w", err)
		}
		metrics.PendingLinksTotal.WithLabelValues("created").Inc()
		s.logger.Info("Pending link registered",
			zap.String("instanceId", link.InstanceID),
			zap.String("projectId", link.ProjectID))
		resp.Pending = true
		resp.Message = "Instance is deploying. Connection details will be added to the project when it is ready."
		return resp, nil

	case model.InstanceRunning:
		set, err := connectionSecrets(detail.Connection, password)
		if err != nil {
			return nil, err
		}
		written, err := s.secrets.Publish(ctx, publishTarget(sess), set)
		if err != nil {
			return nil, err
		}
		resp.Published = written
		resp.Message = "Connection details were added to the project."
		return resp, nil

	case model.InstanceDeleting:
		return nil, stateError(constants.ErrInstanceUnavailable, detail)

	default:
		return nil, stateError(constants.ErrUnexpectedInstanceState, detail)
	}
}

func stateError(kind error, detail *model.InstanceDetail) error {
	status := detail.RawStatus
	if status == "" {
		status = string(detail.Status)
	}
	return fmt.Errorf("%w: instance %s is %s", kind, detail.ID, status)
}
