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

	"github.com/rchristof/example-integration/internal/client/omnistrate"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/session"

	"go.uber.org/zap"
)

// FreeTier identifies the plan new accounts subscribe to
type FreeTier struct {
	ServiceID     string
	ProductTierID string
}

// SubscriptionService finds or creates the free-tier subscription
type SubscriptionService struct {
	sessionAccess
	subscriptions omnistrate.SubscriptionsService
	tier          FreeTier
	logger        *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(subscriptions omnistrate.SubscriptionsService, tier FreeTier,
	store session.Store, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		sessionAccess: newSessionAccess(store),
		subscriptions: subscriptions,
		tier:          tier,
		logger:        logger,
	}
}

// List returns every subscription of the account
func (s *SubscriptionService) List(ctx context.Context, handle string) ([]model.Subscription, error) {
	sess, err := s.loadAccount(ctx, handle)
	if err != nil {
		return nil, err
	}
	return s.subscriptions.List(ctx, sess.AccountToken)
}

// ActivePlan returns the single ACTIVE free-tier subscription, nil when
// there is none, and ErrMultipleActivePlans when there is more than one.
func (s *SubscriptionService) ActivePlan(ctx context.Context, handle string) (*model.Subscription, error) {
	sess, err := s.loadAccount(ctx, handle)
	if err != nil {
		return nil, err
	}
	return s.activePlan(ctx, sess.AccountToken)
}

func (s *SubscriptionService) activePlan(ctx context.Context, token string) (*model.Subscription, error) {
	subs, err := s.subscriptions.List(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.selectActive(subs)
}

func (s *SubscriptionService) selectActive(subs []model.Subscription) (*model.Subscription, error) {
	var active []model.Subscription
	for _, sub := range subs {
		if sub.IsActiveFor(s.tier.ProductTierID) {
			active = append(active, sub)
		}
	}
	switch len(active) {
	case 0:
		return nil, nil
	case 1:
		return &active[0], nil
	default:
		s.logger.Warn("Account has more than one active free-tier subscription", zap.Int("count", len(active)))
		return nil, constants.ErrMultipleActivePlans
	}
}

// Subscribe records the free-tier subscription in the session, creating it
// only when the account has neither an active nor a pending one. created
// reports whether a new subscription was made.
func (s *SubscriptionService) Subscribe(ctx context.Context, handle string) (sub *model.Subscription, created bool, newHandle string, err error) {
	defer func() { observeStep("subscribe", err) }()

	sess, err := s.loadAccount(ctx, handle)
	if err != nil {
		return nil, false, "", err
	}

	subs, err := s.subscriptions.List(ctx, sess.AccountToken)
	if err != nil {
		return nil, false, "", err
	}
	sub, err = s.selectActive(subs)
	if err != nil {
		return nil, false, "", err
	}
	// A subscription created moments ago may still be provisioning.
	if sub == nil {
		for i := range subs {
			if subs[i].IsPendingFor(s.tier.ProductTierID) {
				pending := subs[i]
				sub = &pending
				break
			}
		}
	}
	if sub == nil {
		id, err := s.subscriptions.Create(ctx, sess.AccountToken, s.tier.ServiceID, s.tier.ProductTierID)
		if err != nil {
			return nil, false, "", err
		}
		created = true
		sub, err = s.subscriptions.Get(ctx, sess.AccountToken, id)
		if err != nil {
			s.logger.Warn("Failed to describe new subscription", zap.String("subscriptionId", id), zap.Error(err))
			sub = &model.Subscription{ID: id, ServiceID: s.tier.ServiceID, ProductTierID: s.tier.ProductTierID}
		}
		s.logger.Info("Subscription created", zap.String("subscriptionId", id))
	}

	newHandle, err = s.store.Merge(ctx, handle, model.SessionPatch{SubscriptionID: &sub.ID})
	if err != nil {
		return nil, false, "", err
	}
	return sub, created, newHandle, nil
}

// Cancel cancels a subscription and forgets it if it was the selected one
func (s *SubscriptionService) Cancel(ctx context.Context, handle, subscriptionID string) (newHandle string, err error) {
	defer func() { observeStep("cancel_subscription", err) }()

	sess, err := s.loadAccount(ctx, handle)
	if err != nil {
		return "", err
	}
	if subscriptionID == "" {
		return "", constants.ErrNoSubscription
	}
	if err := s.subscriptions.Cancel(ctx, sess.AccountToken, subscriptionID); err != nil {
		return "", err
	}
	if sess.SubscriptionID != subscriptionID {
		return handle, nil
	}
	return s.store.Merge(ctx, handle, model.SessionPatch{
		SubscriptionID: model.Ptr(""),
		InstanceID:     model.Ptr(""),
	})
}
