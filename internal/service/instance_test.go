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
	"testing"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/dto"
	"github.com/rchristof/example-integration/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type instanceFixture struct {
	svc       *InstanceService
	instances *fakeInstances
	env       *fakeEnv
	links     *fakeLinks
	handle    string
}

func newInstanceFixture(t *testing.T, details map[string]*model.InstanceDetail) *instanceFixture {
	store := newTestStore()
	instances := &fakeInstances{details: details, newID: "i-new"}
	env := &fakeEnv{}
	links := newFakeLinks()
	secrets := NewSecretService(env, store, testLogger())
	return &instanceFixture{
		svc:       NewInstanceService(instances, secrets, links, nil, store, testLogger()),
		instances: instances,
		env:       env,
		links:     links,
		handle:    startSession(t, store, readySession()),
	}
}

func createRequest() dto.CreateInstanceRequest {
	return dto.CreateInstanceRequest{CloudProvider: "gcp", Region: "us-central1", Name: "graph", User: "falkor", Password: "s3cretpass"}
}

func TestInstanceService_CreateDeployingRegistersPendingLink(t *testing.T) {
	f := newInstanceFixture(t, map[string]*model.InstanceDetail{
		"i-new": {ID: "i-new", Status: model.InstanceDeploying},
	})

	resp, handle, err := f.svc.Create(context.Background(), f.handle, createRequest())
	require.NoError(t, err)
	assert.True(t, resp.Pending)
	assert.Equal(t, model.InstanceDeploying, resp.Status)
	assert.Empty(t, resp.Published)

	assert.Empty(t, f.env.keys())
	links, err := f.links.ListPendingLinksByInstance(context.Background(), "i-new")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "p-1", links[0].ProjectID)
	assert.Equal(t, "vercel-token", links[0].AccessToken)
	assert.Equal(t, "sub-1", links[0].SubscriptionID)
	assert.Equal(t, "team1", links[0].TenantID)

	sess, err := f.svc.store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, "i-new", sess.InstanceID)

	require.Len(t, f.instances.created, 1)
	assert.Equal(t, "s3cretpass", f.instances.created[0].Password)
}

func TestInstanceService_CreateRunningPublishes(t *testing.T) {
	f := newInstanceFixture(t, map[string]*model.InstanceDetail{
		"i-new": {ID: "i-new", Status: model.InstanceRunning, Connection: model.Connection{Hostname: "db.example.com", Port: "6379", User: "falkor"}},
	})

	resp, _, err := f.svc.Create(context.Background(), f.handle, createRequest())
	require.NoError(t, err)
	assert.False(t, resp.Pending)
	assert.Equal(t, []string{"FALKORDB_HOST", "FALKORDB_PORT", "FALKORDB_USER", "FALKORDB_PASSWORD"}, resp.Published)
	assert.Contains(t, f.env.writes, envWrite{ProjectID: "p-1", Key: "FALKORDB_PASSWORD", Value: "s3cretpass"})
	assert.Equal(t, 0, f.links.count("i-new"))
}

func TestInstanceService_NonRunningNeverPublishes(t *testing.T) {
	for _, status := range []model.InstanceStatus{model.InstanceDeploying, model.InstanceDeleting, model.InstanceUnknown} {
		t.Run(string(status), func(t *testing.T) {
			f := newInstanceFixture(t, map[string]*model.InstanceDetail{
				"i-new": {ID: "i-new", Status: status, RawStatus: string(status), Connection: model.Connection{Hostname: "h", User: "u"}},
			})

			_, _, err := f.svc.Create(context.Background(), f.handle, createRequest())
			assert.Empty(t, f.env.keys())

			switch status {
			case model.InstanceDeploying:
				assert.NoError(t, err)
				assert.Equal(t, 1, f.links.count("i-new"))
			case model.InstanceDeleting:
				assert.ErrorIs(t, err, constants.ErrInstanceUnavailable)
				assert.Equal(t, 0, f.links.count("i-new"))
			default:
				assert.ErrorIs(t, err, constants.ErrUnexpectedInstanceState)
				assert.Equal(t, 0, f.links.count("i-new"))
			}
		})
	}
}

func TestInstanceService_CreateDetailFailureWaitsForWebhook(t *testing.T) {
	f := newInstanceFixture(t, nil)
	f.instances.getErr = errors.New("connection reset")

	resp, _, err := f.svc.Create(context.Background(), f.handle, createRequest())
	require.NoError(t, err)
	assert.True(t, resp.Pending)
	assert.Equal(t, 1, f.links.count("i-new"))
}

func TestInstanceService_CreateValidation(t *testing.T) {
	f := newInstanceFixture(t, nil)

	req := createRequest()
	req.Region = "mars-north-1"
	_, _, err := f.svc.Create(context.Background(), f.handle, req)
	assert.ErrorIs(t, err, constants.ErrInvalidInput)

	store := newTestStore()
	sess := readySession()
	sess.ProjectID = ""
	handle := startSession(t, store, sess)
	svc := NewInstanceService(f.instances, NewSecretService(f.env, store, testLogger()), f.links, nil, store, testLogger())
	_, _, err = svc.Create(context.Background(), handle, createRequest())
	assert.ErrorIs(t, err, constants.ErrNoProjectSelected)

	assert.Empty(t, f.instances.created)
}

func TestInstanceService_LinkExisting(t *testing.T) {
	f := newInstanceFixture(t, map[string]*model.InstanceDetail{
		"i-run": {ID: "i-run", Status: model.InstanceRunning, Connection: model.Connection{Hostname: "h", Port: "1", User: "u"}},
		"i-del": {ID: "i-del", Status: model.InstanceDeleting},
	})

	resp, handle, err := f.svc.Link(context.Background(), f.handle, "i-run", "pw")
	require.NoError(t, err)
	assert.Len(t, resp.Published, 4)
	sess, err := f.svc.store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, "i-run", sess.InstanceID)

	_, _, err = f.svc.Link(context.Background(), handle, "i-del", "pw")
	assert.ErrorIs(t, err, constants.ErrInstanceUnavailable)
	sess, err = f.svc.store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, "i-run", sess.InstanceID)
	assert.Empty(t, f.instances.created)
}

func TestInstanceService_ListGetDelete(t *testing.T) {
	f := newInstanceFixture(t, map[string]*model.InstanceDetail{
		"i-1": {ID: "i-1", Status: model.InstanceRunning},
		"i-2": {ID: "i-2", Status: model.InstanceDeploying},
	})

	ids, err := f.svc.List(context.Background(), f.handle)
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1", "i-2"}, ids)

	detail, err := f.svc.Get(context.Background(), f.handle, "i-2")
	require.NoError(t, err)
	assert.Equal(t, model.InstanceDeploying, detail.Status)

	_, handle, err := f.svc.Link(context.Background(), f.handle, "i-2", "pw")
	require.NoError(t, err)
	handle, err = f.svc.Delete(context.Background(), handle, "i-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"i-2"}, f.instances.deleted)

	sess, err := f.svc.store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Empty(t, sess.InstanceID)
}

func TestInstanceService_RequiresSubscription(t *testing.T) {
	f := newInstanceFixture(t, nil)
	store := newTestStore()
	sess := readySession()
	sess.SubscriptionID = ""
	handle := startSession(t, store, sess)
	svc := NewInstanceService(f.instances, nil, f.links, nil, store, testLogger())

	_, err := svc.List(context.Background(), handle)
	assert.ErrorIs(t, err, constants.ErrNoSubscription)
}
