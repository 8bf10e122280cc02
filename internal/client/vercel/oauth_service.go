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
	"errors"
	"net/url"
	"strings"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
)

// OAuthService exchanges one-time authorization codes for access tokens.
type OAuthService interface {
	ExchangeCode(ctx context.Context, code string) (*model.Token, error)
}

type oauthService struct {
	client *VercelClient
}

// ExchangeCode posts the code to {baseURL}/v2/oauth/access_token.
// Codes are single use, so the request is never retried.
func (s *oauthService) ExchangeCode(ctx context.Context, code string) (*model.Token, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, constants.ErrInvalidCode
	}

	form := url.Values{}
	form.Set("client_id", s.client.cfg.ClientID)
	form.Set("client_secret", s.client.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", s.client.cfg.RedirectURI)

	req, err := client.NewFormRequest(ctx, s.client.buildURL(oauthTokenPath), form)
	if err != nil {
		return nil, err
	}

	var out tokenResponse
	if err := s.client.doAndDecode(req, "oauth_exchange", []int{200}, &out); err != nil {
		var ue *client.UpstreamError
		if errors.As(err, &ue) {
			ue.Kind = constants.ErrUpstreamAuth
		}
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &client.UpstreamError{
			Upstream: constants.UpstreamVercel,
			Code:     200,
			Message:  "token response did not include access_token",
			Kind:     constants.ErrUpstreamAuth,
		}
	}

	return &model.Token{AccessToken: out.AccessToken, TenantID: out.TeamID}, nil
}
