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
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/client/omnistrate"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/session"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const freeTier = "pt-free"

type fakeOAuth struct {
	token *model.Token
	err   error
}

func (f *fakeOAuth) ExchangeCode(_ context.Context, code string) (*model.Token, error) {
	if code == "" {
		return nil, constants.ErrInvalidCode
	}
	return f.token, f.err
}

type fakeUsers struct{ user *model.User }

func (f *fakeUsers) Get(context.Context, string) (*model.User, error) {
	return f.user, nil
}

type fakeAccounts struct {
	token  string
	err    error
	signUp []omnistrate.SignUpRequest
}

func (f *fakeAccounts) SignUp(_ context.Context, req omnistrate.SignUpRequest) error {
	f.signUp = append(f.signUp, req)
	return f.err
}

func (f *fakeAccounts) SignIn(context.Context, string, string) (string, error) {
	return f.token, f.err
}

type fakeProjects struct {
	projects []model.Project
	err      error
}

func (f *fakeProjects) List(context.Context, string, string) ([]model.Project, error) {
	return f.projects, f.err
}

type envWrite struct {
	ProjectID string
	Key       string
	Value     string
}

type fakeEnv struct {
	mu     sync.Mutex
	writes []envWrite
	fail   map[string]int
}

func (f *fakeEnv) Upsert(_ context.Context, _, _, projectID string, secret model.Secret) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, ok := f.fail[secret.Key]; ok {
		return client.NewUpstreamError(constants.UpstreamVercel, code, "rejected "+secret.Key)
	}
	f.writes = append(f.writes, envWrite{ProjectID: projectID, Key: secret.Key, Value: secret.Value})
	return nil
}

func (f *fakeEnv) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.writes))
	for _, w := range f.writes {
		keys = append(keys, w.Key)
	}
	return keys
}

type fakeSubscriptions struct {
	subs     []model.Subscription
	created  []string
	canceled []string
}

func (f *fakeSubscriptions) List(context.Context, string) ([]model.Subscription, error) {
	return f.subs, nil
}

func (f *fakeSubscriptions) Get(_ context.Context, _, id string) (*model.Subscription, error) {
	for _, s := range f.subs {
		if s.ID == id {
			sub := s
			return &sub, nil
		}
	}
	return nil, constants.ErrSubscriptionNotFound
}

func (f *fakeSubscriptions) Create(_ context.Context, _, serviceID, productTierID string) (string, error) {
	id := "sub-new"
	f.created = append(f.created, id)
	f.subs = append(f.subs, model.Subscription{ID: id, ServiceID: serviceID, ProductTierID: productTierID, Status: model.SubscriptionActive})
	return id, nil
}

func (f *fakeSubscriptions) Cancel(_ context.Context, _, id string) error {
	f.canceled = append(f.canceled, id)
	return nil
}

type fakeInstances struct {
	details  map[string]*model.InstanceDetail
	getErr   error
	newID    string
	created  []model.CreateInstanceParams
	deleted  []string
	getCalls int
}

func (f *fakeInstances) List(context.Context, string, string) ([]string, error) {
	ids := make([]string, 0, len(f.details))
	for id := range f.details {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeInstances) Get(_ context.Context, _, _, instanceID string) (*model.InstanceDetail, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	d, ok := f.details[instanceID]
	if !ok {
		return nil, constants.ErrInstanceNotFound
	}
	return d, nil
}

func (f *fakeInstances) Create(_ context.Context, _, _ string, params model.CreateInstanceParams) (string, error) {
	f.created = append(f.created, params)
	return f.newID, nil
}

func (f *fakeInstances) Delete(_ context.Context, _, _, instanceID string) error {
	f.deleted = append(f.deleted, instanceID)
	return nil
}

type fakeAdminInstances struct {
	details map[string]*model.InstanceDetail
	calls   int
}

func (f *fakeAdminInstances) Get(_ context.Context, _, instanceID string) (*model.InstanceDetail, error) {
	f.calls++
	d, ok := f.details[instanceID]
	if !ok {
		return nil, client.NewUpstreamError(constants.UpstreamOmnistrate, http.StatusServiceUnavailable, "unavailable")
	}
	return d, nil
}

type fakeLinks struct {
	mu    sync.Mutex
	links map[string]*model.PendingLink
	lists int
}

func newFakeLinks() *fakeLinks {
	return &fakeLinks{links: map[string]*model.PendingLink{}}
}

func (f *fakeLinks) CreatePendingLink(_ context.Context, link *model.PendingLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := *link
	f.links[l.Key()] = &l
	return nil
}

func (f *fakeLinks) ListPendingLinksByInstance(_ context.Context, instanceID string) ([]*model.PendingLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	var out []*model.PendingLink
	for _, l := range f.links {
		if l.InstanceID == instanceID {
			c := *l
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out, nil
}

func (f *fakeLinks) DeletePendingLink(_ context.Context, instanceID, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.links, instanceID+":"+projectID)
	return nil
}

func (f *fakeLinks) count(instanceID string) int {
	links, _ := f.ListPendingLinksByInstance(context.Background(), instanceID)
	return len(links)
}

func newTestStore() session.Store {
	return session.NewMemoryStore(session.Options{TTL: time.Hour})
}

// startSession stores s and returns its handle
func startSession(t *testing.T, store session.Store, s *model.Session) string {
	t.Helper()
	handle, err := store.Create(context.Background(), s)
	require.NoError(t, err)
	return handle
}

// readySession has every step before instance provisioning done
func readySession() *model.Session {
	return &model.Session{
		AccessToken:    "vercel-token",
		TenantID:       "team1",
		AccountToken:   "account-token",
		ProjectID:      "p-1",
		ProjectIDs:     []string{"p-1"},
		SubscriptionID: "sub-1",
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
