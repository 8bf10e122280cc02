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

package omnistrate

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
)

// AccountsService brokers customer account operations with the admin bearer
type AccountsService interface {
	SignUp(ctx context.Context, req SignUpRequest) error
	SignIn(ctx context.Context, email, password string) (string, error)
}

type accountsService struct {
	client *OmnistrateClient
}

// unconfirmedMarkers identify sign-in rejections caused by an unverified email
var unconfirmedMarkers = []string{
	"not confirmed",
	"not verified",
	"unverified",
	"verify your email",
	"confirm your email",
	"pending verification",
}

func (s *accountsService) SignUp(ctx context.Context, body SignUpRequest) error {
	if strings.TrimSpace(body.Email) == "" || body.Password == "" {
		return constants.ErrInvalidInput
	}
	req, err := client.NewJSONRequest(ctx, http.MethodPost, s.client.buildURL(signUpPath), body)
	if err != nil {
		return err
	}
	_, _, err = s.client.do(req, s.client.cfg.AdminBearer, "signup",
		[]int{http.StatusOK, http.StatusCreated, http.StatusNoContent})
	return withKind(err, constants.ErrInvalidInput, http.StatusBadRequest, http.StatusConflict)
}

// SignIn returns the account session token. A rejection whose message says
// the email is unconfirmed unwraps to ErrAccountNotConfirmed, any other 4xx
// to ErrInvalidCredentials.
func (s *accountsService) SignIn(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", constants.ErrInvalidCredentials
	}
	req, err := client.NewJSONRequest(ctx, http.MethodPost, s.client.buildURL(signInPath),
		signInRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	status, body, err := s.client.do(req, s.client.cfg.AdminBearer, "signin", []int{http.StatusOK})
	if err != nil {
		ue, ok := err.(*client.UpstreamError)
		if ok && ue.Code >= 400 && ue.Code < 500 {
			if isUnconfirmed(ue.Message) {
				ue.Kind = constants.ErrAccountNotConfirmed
			} else {
				ue.Kind = constants.ErrInvalidCredentials
			}
		}
		return "", err
	}

	var out signInResponse
	if err := json.Unmarshal(body, &out); err != nil || out.JWTToken == "" {
		return "", client.NewUpstreamError(constants.UpstreamOmnistrate, status, "sign-in response did not include a session token")
	}
	return out.JWTToken, nil
}

func isUnconfirmed(msg string) bool {
	msg = strings.ToLower(msg)
	for _, m := range unconfirmedMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
