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
	"time"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/metrics"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/session"
)

// sessionAccess loads and checks the session every step works on
type sessionAccess struct {
	store session.Store
	now   func() time.Time
}

func newSessionAccess(store session.Store) sessionAccess {
	return sessionAccess{store: store, now: time.Now}
}

func (a sessionAccess) load(ctx context.Context, handle string) (*model.Session, error) {
	if handle == "" {
		return nil, constants.ErrSessionNotFound
	}
	return a.store.Get(ctx, handle)
}

// loadAccount requires an unexpired account session token
func (a sessionAccess) loadAccount(ctx context.Context, handle string) (*model.Session, error) {
	s, err := a.load(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !s.HasAccount(a.now()) {
		return nil, constants.ErrMissingAccount
	}
	return s, nil
}

// loadSubscription requires an account and a selected subscription
func (a sessionAccess) loadSubscription(ctx context.Context, handle string) (*model.Session, error) {
	s, err := a.loadAccount(ctx, handle)
	if err != nil {
		return nil, err
	}
	if s.SubscriptionID == "" {
		return nil, constants.ErrNoSubscription
	}
	return s, nil
}

func publishTarget(s *model.Session) model.PublishTarget {
	return model.PublishTarget{AccessToken: s.AccessToken, TenantID: s.TenantID, ProjectID: s.ProjectID}
}

func observeStep(step string, err error) {
	metrics.OnboardingStepsTotal.WithLabelValues(step, metrics.Result(err)).Inc()
}
