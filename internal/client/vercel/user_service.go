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

// UsersService resolves the user behind an access token.
type UsersService interface {
	Get(ctx context.Context, accessToken string) (*model.User, error)
}

type usersService struct {
	client *VercelClient
}

// Get calls GET {baseURL}/v2/user
func (s *usersService) Get(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, constants.ErrMissingAccessToken
	}
	req, err := client.NewJSONRequest(ctx, http.MethodGet, s.client.buildURL(userPath), nil)
	if err != nil {
		return nil, err
	}
	setBearer(req, accessToken)

	var out userResponse
	if err := s.client.doAndDecode(req, "get_user", []int{200}, &out); err != nil {
		return nil, err
	}

	id := out.User.ID
	if id == "" {
		id = out.User.UID
	}
	return &model.User{
		ID:       id,
		Email:    out.User.Email,
		Name:     out.User.Name,
		Username: out.User.Username,
	}, nil
}
