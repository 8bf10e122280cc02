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
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rchristof/example-integration/internal/model"
)

// SignUpRequest is the brokered customer sign-up payload
type SignUpRequest struct {
	Email            string `json:"email"`
	LegalCompanyName string `json:"legalCompanyName"`
	Name             string `json:"name"`
	Password         string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	JWTToken string `json:"jwtToken"`
}

type createSubscriptionRequest struct {
	ServiceID     string `json:"serviceId"`
	ProductTierID string `json:"productTierId"`
}

type subscriptionPayload struct {
	ID            string `json:"id"`
	ProductTierID string `json:"productTierId"`
	ServiceID     string `json:"serviceId"`
	Status        string `json:"status"`
	RootUserID    string `json:"rootUserId"`
}

func (p subscriptionPayload) toModel() model.Subscription {
	return model.Subscription{
		ID:            p.ID,
		ProductTierID: p.ProductTierID,
		ServiceID:     p.ServiceID,
		Status:        model.SubscriptionStatus(strings.ToUpper(p.Status)),
	}
}

// subscriptionList is the tagged variant of the list response. Exactly one of
// Subscriptions and IDs is populated after decoding.
type subscriptionList struct {
	Subscriptions []subscriptionPayload
	IDs           []string
}

func (l *subscriptionList) UnmarshalJSON(b []byte) error {
	var arr []subscriptionPayload
	if err := json.Unmarshal(b, &arr); err == nil {
		l.Subscriptions = arr
		return nil
	}
	var obj struct {
		Subscriptions []subscriptionPayload `json:"subscriptions"`
		IDs           []string              `json:"ids"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	l.Subscriptions = obj.Subscriptions
	if len(obj.Subscriptions) == 0 {
		l.IDs = obj.IDs
	}
	return nil
}

// parseSubscriptionID accepts {"id":"..."}, a JSON string, or a raw body with
// or without surrounding quotes.
func parseSubscriptionID(body []byte) (string, error) {
	raw := strings.TrimSpace(string(body))
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil && obj.ID != "" {
		return obj.ID, nil
	}
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil && s != "" {
		return strings.TrimSpace(s), nil
	}
	id := strings.Trim(raw, "\"' \n\t")
	if id == "" || strings.ContainsAny(id, "{}[] ") {
		return "", fmt.Errorf("unrecognised subscription id response")
	}
	return id, nil
}

type instanceListResponse struct {
	IDs       []string `json:"ids"`
	Instances []struct {
		ID string `json:"id"`
	} `json:"resourceInstances"`
}

func (r instanceListResponse) ids() []string {
	if len(r.IDs) > 0 {
		return r.IDs
	}
	out := make([]string, 0, len(r.Instances))
	for _, i := range r.Instances {
		if i.ID != "" {
			out = append(out, i.ID)
		}
	}
	return out
}

type createInstanceRequest struct {
	CloudProvider string                `json:"cloud_provider"`
	Region        string                `json:"region"`
	RequestParams instanceRequestParams `json:"requestParams"`
}

type instanceRequestParams struct {
	Name             string `json:"name"`
	FalkorDBUser     string `json:"falkordbUser"`
	FalkorDBPassword string `json:"falkordbPassword"`
}

type createInstanceResponse struct {
	ID string `json:"id"`
}

type networkEndpoint struct {
	Main            bool          `json:"main"`
	ClusterEndpoint string        `json:"clusterEndpoint"`
	ClusterPorts    []interface{} `json:"clusterPorts"`
}

type instanceDetailResponse struct {
	ID                      string                     `json:"id"`
	Status                  string                     `json:"status"`
	CloudProvider           string                     `json:"cloud_provider"`
	Region                  string                     `json:"region"`
	ResultParams            map[string]interface{}     `json:"result_params"`
	DetailedNetworkTopology map[string]networkEndpoint `json:"detailedNetworkTopology"`
}

// toModel normalizes the detail. Connection attributes are only copied for
// RUNNING instances.
func (r instanceDetailResponse) toModel(instanceID, subscriptionID string) *model.InstanceDetail {
	d := &model.InstanceDetail{
		ID:             instanceID,
		SubscriptionID: subscriptionID,
		Status:         model.ParseInstanceStatus(r.Status),
		RawStatus:      r.Status,
		CloudProvider:  r.CloudProvider,
		Region:         r.Region,
	}
	if d.Status != model.InstanceRunning {
		return d
	}

	d.Connection.User = stringParam(r.ResultParams, "falkordbUser")
	d.Connection.Hostname = stringParam(r.ResultParams, "hostname")
	d.Connection.Port = stringParam(r.ResultParams, "port")

	keys := make([]string, 0, len(r.DetailedNetworkTopology))
	for k := range r.DetailedNetworkTopology {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := r.DetailedNetworkTopology[keys[i]], r.DetailedNetworkTopology[keys[j]]
		if a.Main != b.Main {
			return a.Main
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		ep := r.DetailedNetworkTopology[k]
		if ep.ClusterEndpoint == "" {
			continue
		}
		if d.Connection.Hostname == "" {
			d.Connection.Hostname = ep.ClusterEndpoint
		}
		if d.Connection.Port == "" && len(ep.ClusterPorts) > 0 {
			d.Connection.Port = fmt.Sprint(ep.ClusterPorts[0])
		}
		break
	}
	return d
}

func stringParam(params map[string]interface{}, key string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}
