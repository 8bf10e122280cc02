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
	"github.com/rchristof/example-integration/internal/model"
)

// InstancesService manages database instances under a subscription using
// the account session token.
type InstancesService interface {
	List(ctx context.Context, token, subscriptionID string) ([]string, error)
	Get(ctx context.Context, token, subscriptionID, instanceID string) (*model.InstanceDetail, error)
	Create(ctx context.Context, token, subscriptionID string, params model.CreateInstanceParams) (string, error)
	Delete(ctx context.Context, token, subscriptionID, instanceID string) error
}

// AdminInstancesService reads instance details with the admin bearer
type AdminInstancesService interface {
	Get(ctx context.Context, subscriptionID, instanceID string) (*model.InstanceDetail, error)
}

type instancesService struct {
	client *OmnistrateClient
}

func (s *instancesService) List(ctx context.Context, token, subscriptionID string) ([]string, error) {
	if token == "" {
		return nil, constants.ErrMissingAccount
	}
	if subscriptionID == "" {
		return nil, constants.ErrNoSubscription
	}
	req, err := client.NewJSONRequest(ctx, http.MethodGet, s.client.resourceURL(subscriptionID, ""), nil)
	if err != nil {
		return nil, err
	}
	_, body, err := s.client.do(req, token, "list_instances", []int{http.StatusOK})
	if err != nil {
		return nil, withKind(err, constants.ErrMissingAccount, http.StatusUnauthorized)
	}
	var out instanceListResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, client.NewUpstreamError(constants.UpstreamOmnistrate, http.StatusOK, "malformed instance list")
	}
	return out.ids(), nil
}

func (s *instancesService) Get(ctx context.Context, token, subscriptionID, instanceID string) (*model.InstanceDetail, error) {
	if token == "" {
		return nil, constants.ErrMissingAccount
	}
	d, err := s.client.getInstance(ctx, token, subscriptionID, instanceID)
	return d, withKind(err, constants.ErrMissingAccount, http.StatusUnauthorized)
}

// Create requests a new instance and returns its id. The password is sent
// once and never stored.
func (s *instancesService) Create(ctx context.Context, token, subscriptionID string, params model.CreateInstanceParams) (string, error) {
	if token == "" {
		return "", constants.ErrMissingAccount
	}
	if subscriptionID == "" {
		return "", constants.ErrNoSubscription
	}
	body := createInstanceRequest{
		CloudProvider: params.CloudProvider,
		Region:        params.Region,
		RequestParams: instanceRequestParams{
			Name:             params.Name,
			FalkorDBUser:     params.User,
			FalkorDBPassword: params.Password,
		},
	}
	req, err := client.NewJSONRequest(ctx, http.MethodPost, s.client.resourceURL(subscriptionID, ""), body)
	if err != nil {
		return "", err
	}
	status, respBody, err := s.client.do(req, token, "create_instance",
		[]int{http.StatusOK, http.StatusCreated, http.StatusAccepted})
	if err != nil {
		err = withKind(err, constants.ErrMissingAccount, http.StatusUnauthorized)
		return "", withKind(err, constants.ErrInvalidInput, http.StatusBadRequest)
	}
	var out createInstanceResponse
	if err := json.Unmarshal(respBody, &out); err != nil || strings.TrimSpace(out.ID) == "" {
		return "", client.NewUpstreamError(constants.UpstreamOmnistrate, status, "create response did not include an instance id")
	}
	return out.ID, nil
}

func (s *instancesService) Delete(ctx context.Context, token, subscriptionID, instanceID string) error {
	if token == "" {
		return constants.ErrMissingAccount
	}
	if subscriptionID == "" {
		return constants.ErrNoSubscription
	}
	if instanceID == "" {
		return constants.ErrMissingInstanceID
	}
	req, err := client.NewJSONRequest(ctx, http.MethodDelete, s.client.resourceURL(subscriptionID, instanceID), nil)
	if err != nil {
		return err
	}
	_, _, err = s.client.do(req, token, "delete_instance",
		[]int{http.StatusOK, http.StatusAccepted, http.StatusNoContent})
	if err != nil {
		err = withKind(err, constants.ErrMissingAccount, http.StatusUnauthorized)
		return withKind(err, constants.ErrInstanceNotFound, http.StatusNotFound)
	}
	return nil
}

type adminInstancesService struct {
	client *OmnistrateClient
}

func (s *adminInstancesService) Get(ctx context.Context, subscriptionID, instanceID string) (*model.InstanceDetail, error) {
	return s.client.getInstance(ctx, s.client.cfg.AdminBearer, subscriptionID, instanceID)
}

func (c *OmnistrateClient) getInstance(ctx context.Context, bearer, subscriptionID, instanceID string) (*model.InstanceDetail, error) {
	if subscriptionID == "" {
		return nil, constants.ErrNoSubscription
	}
	if instanceID == "" {
		return nil, constants.ErrMissingInstanceID
	}
	req, err := client.NewJSONRequest(ctx, http.MethodGet, c.resourceURL(subscriptionID, instanceID), nil)
	if err != nil {
		return nil, err
	}
	_, body, err := c.do(req, bearer, "get_instance", []int{http.StatusOK})
	if err != nil {
		return nil, withKind(err, constants.ErrInstanceNotFound, http.StatusNotFound)
	}
	var out instanceDetailResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, client.NewUpstreamError(constants.UpstreamOmnistrate, http.StatusOK, "malformed instance detail")
	}
	return out.toModel(instanceID, subscriptionID), nil
}
