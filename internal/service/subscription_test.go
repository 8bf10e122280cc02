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
	"testing"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tier = FreeTier{ServiceID: "s-falkordb", ProductTierID: freeTier}

func TestSubscriptionService_ActivePlan(t *testing.T) {
	tests := []struct {
		name    string
		subs    []model.Subscription
		wantID  string
		wantErr error
	}{
		{
			name: "none active",
			subs: []model.Subscription{
				{ID: "a", ProductTierID: freeTier, Status: model.SubscriptionCancelled},
				{ID: "b", ProductTierID: "pt-paid", Status: model.SubscriptionActive},
			},
		},
		{
			name: "one active",
			subs: []model.Subscription{
				{ID: "a", ProductTierID: freeTier, Status: model.SubscriptionPending},
				{ID: "b", ProductTierID: freeTier, Status: model.SubscriptionActive},
			},
			wantID: "b",
		},
		{
			name: "two active",
			subs: []model.Subscription{
				{ID: "a", ProductTierID: freeTier, Status: model.SubscriptionActive},
				{ID: "b", ProductTierID: freeTier, Status: model.SubscriptionActive},
			},
			wantErr: constants.ErrInconsistentState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			handle := startSession(t, store, &model.Session{AccountToken: "acct"})
			svc := NewSubscriptionService(&fakeSubscriptions{subs: tt.subs}, tier, store, testLogger())

			sub, err := svc.ActivePlan(context.Background(), handle)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantID == "" {
				assert.Nil(t, sub)
				return
			}
			require.NotNil(t, sub)
			assert.Equal(t, tt.wantID, sub.ID)
		})
	}
}

func TestSubscriptionService_SubscribeReusesActivePlan(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, &model.Session{AccountToken: "acct"})
	subs := &fakeSubscriptions{subs: []model.Subscription{{ID: "sub-1", ProductTierID: freeTier, Status: model.SubscriptionActive}}}
	svc := NewSubscriptionService(subs, tier, store, testLogger())

	for i := 0; i < 2; i++ {
		sub, created, newHandle, err := svc.Subscribe(context.Background(), handle)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "sub-1", sub.ID)
		handle = newHandle
	}
	assert.Empty(t, subs.created)

	sess, err := store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", sess.SubscriptionID)
}

func TestSubscriptionService_SubscribeCreatesOnce(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, &model.Session{AccountToken: "acct"})
	subs := &fakeSubscriptions{}
	svc := NewSubscriptionService(subs, tier, store, testLogger())

	sub, created, handle, err := svc.Subscribe(context.Background(), handle)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "sub-new", sub.ID)
	assert.Equal(t, freeTier, sub.ProductTierID)

	_, created, _, err = svc.Subscribe(context.Background(), handle)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, subs.created, 1)
}

func TestSubscriptionService_SubscribeReusesPendingPlan(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, &model.Session{AccountToken: "acct"})
	subs := &fakeSubscriptions{subs: []model.Subscription{
		{ID: "sub-other", ProductTierID: "pt-paid", Status: model.SubscriptionPending},
		{ID: "sub-pending", ProductTierID: freeTier, Status: model.SubscriptionPending},
	}}
	svc := NewSubscriptionService(subs, tier, store, testLogger())

	sub, created, newHandle, err := svc.Subscribe(context.Background(), handle)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "sub-pending", sub.ID)
	assert.Empty(t, subs.created)

	sess, err := store.Get(context.Background(), newHandle)
	require.NoError(t, err)
	assert.Equal(t, "sub-pending", sess.SubscriptionID)
}

func TestSubscriptionService_RequiresAccount(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, &model.Session{AccessToken: "tok"})
	subs := &fakeSubscriptions{}
	svc := NewSubscriptionService(subs, tier, store, testLogger())

	_, _, _, err := svc.Subscribe(context.Background(), handle)
	assert.ErrorIs(t, err, constants.ErrUnauthenticated)
	assert.Empty(t, subs.created)
}

func TestSubscriptionService_CancelClearsSelection(t *testing.T) {
	store := newTestStore()
	sess := readySession()
	sess.InstanceID = "i-1"
	handle := startSession(t, store, sess)
	subs := &fakeSubscriptions{}
	svc := NewSubscriptionService(subs, tier, store, testLogger())

	handle, err := svc.Cancel(context.Background(), handle, "sub-other")
	require.NoError(t, err)
	got, err := store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", got.SubscriptionID)

	handle, err = svc.Cancel(context.Background(), handle, "sub-1")
	require.NoError(t, err)
	got, err = store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Empty(t, got.SubscriptionID)
	assert.Empty(t, got.InstanceID)
	assert.Equal(t, []string{"sub-other", "sub-1"}, subs.canceled)
}
