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

package vercel

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
)

// ProjectsService lists the deployable projects of a tenant.
type ProjectsService interface {
	List(ctx context.Context, accessToken, teamID string) ([]model.Project, error)
}

type projectsService struct {
	client *VercelClient
}

// List returns the first page of projects. GET {baseURL}/v9/projects[?teamId=]
func (s *projectsService) List(ctx context.Context, accessToken, teamID string) ([]model.Project, error) {
	if accessToken == "" {
		return nil, constants.ErrMissingAccessToken
	}

	u := client.WithQuery(s.client.buildURL(projectsPath), map[string]string{
		"teamId": teamID,
		"limit":  strconv.Itoa(DefaultProjectLimit),
	})
	req, err := client.NewJSONRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	setBearer(req, accessToken)

	var out projectListResponse
	if err := s.client.doAndDecode(req, "list_projects", []int{200}, &out); err != nil {
		return nil, err
	}

	projects := make([]model.Project, 0, len(out.Projects))
	for _, p := range out.Projects {
		if p.ID == "" {
			continue
		}
		projects = append(projects, model.Project{ID: p.ID, Name: p.Name})
	}
	return projects, nil
}
