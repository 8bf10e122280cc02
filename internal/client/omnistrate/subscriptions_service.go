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
	"fmt"
	"net/http"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
)

// SubscriptionsService manages the account's billing plans
type SubscriptionsService interface {
	List(ctx context.Context, token string) ([]model.Subscription, error)
	Get(ctx context.Context, token, subscriptionID string) (*model.Subscription, error)
	Create(ctx context.Context, token, serviceID, productTierID string) (string, error)
	Cancel(ctx context.Context, token, subscriptionID string) error
}

type subscriptionsService struct {
	client *OmnistrateClient
}

func (s *subscriptionsService) List(ctx context.Context, token string) ([]model.Subscription, error) {
	if token == "" {
		return nil, constants.ErrMissingAccount
	}
	req, err := client.NewJSONRequest(ctx, http.MethodGet, s.client.buildURL(subscriptionPath), nil)
	if err != nil {
		return nil, err
	}
	_, body, err := s.client.do(req, token, "list_subscriptions", []int{http.StatusOK})
	if err != nil {
		return nil, withKind(err, constants.ErrMissingAccount, http.StatusUnauthorized)
	}

	var list subscriptionList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, client.NewUpstreamError(constants.UpstreamOmnistrate, http.StatusOK, "malformed subscription list")
	}

	out := make([]model.Subscription, 0, len(list.Subscriptions)+len(list.IDs))
	for _, p := range list.Subscriptions {
		out = append(out, p.toModel())
	}
	// Some tenants only get identifiers back; describe each one.
	for _, id := range list.IDs {
		sub, err := s.Get(ctx, token, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *sub)
	}
	return out, nil
}

func (s *subscriptionsService) Get(ctx context.Context, token, subscriptionID string) (*model.Subscription, error) {
	if token == "" {
		return nil, constants.ErrMissingAccount
	}
	if subscriptionID == "" {
		return nil, constants.ErrNoSubscription
	}
	req, err := client.NewJSONRequest(ctx, http.MethodGet, s.client.buildURL(subscriptionPath, subscriptionID), nil)
	if err != nil {
		return nil, err
	}
	_, body, err := s.client.do(req, token, "get_subscription", []int{http.StatusOK})
	if err != nil {
		err = withKind(err, constants.ErrMissingAccount, http.StatusUnauthorized)
		return nil, withKind(err, constants.ErrSubscriptionNotFound, http.StatusNotFound)
	}
	var p subscriptionPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, client.NewUpstreamError(constants.UpstreamOmnistrate, http.StatusOK, "malformed subscription")
	}
	if p.ID == "" {
		p.ID = subscriptionID
	}
	sub := p.toModel()
	return &sub, nil
}

// Create subscribes the account to the given tier and returns the new id
func (s *subscriptionsService) Create(ctx context.Context, token, serviceID, productTierID string) (string, error) {
	if token == "" {
		return "", constants.ErrMissingAccount
	}
	if serviceID == "" || productTierID == "" {
		return "", fmt.Errorf("%w: serviceId and productTierId are required", constants.ErrInvalidInput)
	}
	req, err := client.NewJSONRequest(ctx, http.MethodPost, s.client.buildURL(subscriptionPath),
		createSubscriptionRequest{ServiceID: serviceID, ProductTierID: productTierID})
	if err != nil {
		return "", err
	}
	status, body, err := s.client.do(req, token, "create_subscription", []int{http.StatusOK, http.StatusCreated})
	if err != nil {
		return "", withKind(err, constants.ErrMissingAccount, http.StatusUnauthorized)
	}
	id, err := parseSubscriptionID(body)
	if err != nil {
		return "", client.NewUpstreamError(constants.UpstreamOmnistrate, status, err.Error())
	}
	return id, nil
}

func (s *subscriptionsService) Cancel(ctx context.Context, token, subscriptionID string) error {
	if token == "" {
		return constants.ErrMissingAccount
	}
	if subscriptionID == "" {
		return constants.ErrNoSubscription
	}
	req, err := client.NewJSONRequest(ctx, http.MethodDelete, s.client.buildURL(subscriptionPath, subscriptionID), nil)
	if err != nil {
		return err
	}
	_, _, err = s.client.do(req, token, "cancel_subscription",
		[]int{http.StatusOK, http.StatusAccepted, http.StatusNoContent})
	if err != nil {
		err = withKind(err, constants.ErrMissingAccount, http.StatusUnauthorized)
		return withKind(err, constants.ErrSubscriptionNotFound, http.StatusNotFound)
	}
	return nil
}
