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

	"github.com/rchristof/example-integration/internal/client/vercel"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/session"

	"go.uber.org/zap"
)

// ProjectService lists the user's projects and records the chosen one
type ProjectService struct {
	sessionAccess
	projects vercel.ProjectsService
	logger   *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects vercel.ProjectsService, store session.Store, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		sessionAccess: newSessionAccess(store),
		projects:      projects,
		logger:        logger,
	}
}

// ListProjects returns the projects visible to the session and remembers
// their ids for Select.
func (s *ProjectService) ListProjects(ctx context.Context, handle string) (projects []model.Project, newHandle string, err error) {
	defer func() { observeStep("list_projects", err) }()

	sess, err := s.load(ctx, handle)
	if err != nil {
		return nil, "", err
	}
	if sess.AccessToken == "" {
		return nil, "", constants.ErrMissingAccessToken
	}

	projects, err = s.projects.List(ctx, sess.AccessToken, sess.TenantID)
	if err != nil {
		return nil, "", err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	newHandle, err = s.store.Merge(ctx, handle, model.SessionPatch{ProjectIDs: &ids})
	if err != nil {
		return nil, "", err
	}
	return projects, newHandle, nil
}

// Select records projectID as the target project. Only ids returned by the
// most recent listing are accepted; otherwise the session is left unchanged.
func (s *ProjectService) Select(ctx context.Context, handle, projectID string) (newHandle string, err error) {
	defer func() { observeStep("select_project", err) }()

	sess, err := s.load(ctx, handle)
	if err != nil {
		return "", err
	}
	if projectID == "" || !sess.KnowsProject(projectID) {
		return "", constants.ErrUnknownProject
	}
	return s.store.Merge(ctx, handle, model.SessionPatch{ProjectID: &projectID})
}
