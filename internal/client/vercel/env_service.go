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

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
)

const envTypeEncrypted = "encrypted"

// EnvService writes environment variables into a project.
type EnvService interface {
	Upsert(ctx context.Context, accessToken, teamID, projectID string, secret model.Secret) error
}

type envService struct {
	client *VercelClient
}

// Upsert writes one variable. POST {baseURL}/v10/projects/{id}/env?upsert=true[&teamId=]
//
// The same key and target overwrite the previous value, so the request is
// marked idempotent and may be retried by the HTTP client.
func (s *envService) Upsert(ctx context.Context, accessToken, teamID, projectID string, secret model.Secret) error {
	if accessToken == "" {
		return constants.ErrMissingAccessToken
	}
	if projectID == "" {
		return constants.ErrNoProjectSelected
	}

	targets := secret.Targets
	if len(targets) == 0 {
		targets = model.AllStages
	}
	body := envVarRequest{
		Key:    secret.Key,
		Value:  secret.Value,
		Type:   envTypeEncrypted,
		Target: make([]string, 0, len(targets)),
	}
	for _, t := range targets {
		body.Target = append(body.Target, string(t))
	}

	u := client.WithQuery(s.client.buildURL(envPathPrefix, projectID, "env")+"?upsert=true", map[string]string{
		"teamId": teamID,
	})
	req, err := client.NewJSONRequest(client.WithIdempotent(ctx), http.MethodPost, u, body)
	if err != nil {
		return err
	}
	setBearer(req, accessToken)

	return s.client.doAndDecode(req, "upsert_env", []int{200, 201}, nil)
}
