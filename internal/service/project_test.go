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
	"testing"
	"time"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_ListRemembersIDs(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, &model.Session{AccessToken: "tok"})
	projects := []model.Project{{ID: "p-1", Name: "web"}, {ID: "p-2", Name: "api"}}
	svc := NewProjectService(&fakeProjects{projects: projects}, store, testLogger())

	got, newHandle, err := svc.ListProjects(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, projects, got)

	sess, err := store.Get(context.Background(), newHandle)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "p-2"}, sess.ProjectIDs)
}

func TestProjectService_ListRequiresAccessToken(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, &model.Session{})
	svc := NewProjectService(&fakeProjects{}, store, testLogger())

	_, _, err := svc.ListProjects(context.Background(), handle)
	assert.ErrorIs(t, err, constants.ErrUnauthenticated)
}

func TestProjectService_SelectUnknownProject(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, &model.Session{AccessToken: "tok", ProjectIDs: []string{"p-1"}, ProjectID: "p-1"})
	svc := NewProjectService(&fakeProjects{}, store, testLogger())

	_, err := svc.Select(context.Background(), handle, "proj-x")
	assert.ErrorIs(t, err, constants.ErrInvalidInput)

	sess, err := store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, "p-1", sess.ProjectID)
	assert.Equal(t, []string{"p-1"}, sess.ProjectIDs)
}

func TestProjectService_SelectListedProject(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, &model.Session{AccessToken: "tok"})
	svc := NewProjectService(&fakeProjects{projects: []model.Project{{ID: "p-2"}}}, store, testLogger())

	_, handle, err := svc.ListProjects(context.Background(), handle)
	require.NoError(t, err)
	handle, err = svc.Select(context.Background(), handle, "p-2")
	require.NoError(t, err)

	sess, err := store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, "p-2", sess.ProjectID)
}

func TestProjectService_ListTooLargeForCookie(t *testing.T) {
	store, err := session.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"), session.Options{TTL: time.Hour})
	require.NoError(t, err)
	handle := startSession(t, store, &model.Session{AccessToken: "tok", TenantID: "team1"})

	projects := make([]model.Project, 100)
	for i := range projects {
		projects[i] = model.Project{ID: fmt.Sprintf("prj_%028d", i), Name: fmt.Sprintf("project-%d", i)}
	}
	svc := NewProjectService(&fakeProjects{projects: projects}, store, testLogger())

	_, newHandle, err := svc.ListProjects(context.Background(), handle)
	assert.ErrorIs(t, err, constants.ErrSessionTooLarge)
	assert.Empty(t, newHandle)

	sess, err := store.Get(context.Background(), handle)
	require.NoError(t, err)
	assert.Empty(t, sess.ProjectIDs)
}
