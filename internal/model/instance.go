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

package model

import "strings"

// InstanceStatus is the normalized lifecycle state of a database instance.
// Transitions are driven by the provisioning backend and only observed here.
type InstanceStatus string

const (
	InstanceDeploying InstanceStatus = "DEPLOYING"
	InstanceRunning   InstanceStatus = "RUNNING"
	InstanceDeleting  InstanceStatus = "DELETING"
	InstanceUnknown   InstanceStatus = "UNKNOWN"
)

// ParseInstanceStatus maps an upstream status string onto InstanceStatus.
// Anything unrecognised is UNKNOWN.
func ParseInstanceStatus(raw string) InstanceStatus {
	switch InstanceStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case InstanceDeploying:
		return InstanceDeploying
	case InstanceRunning:
		return InstanceRunning
	case InstanceDeleting:
		return InstanceDeleting
	default:
		return InstanceUnknown
	}
}

// Connection holds the attributes a client needs to reach the database.
// Only authoritative when the instance is RUNNING.
type Connection struct {
	Hostname string `json:"hostname,omitempty"`
	Port     string `json:"port,omitempty"`
	User     string `json:"user,omitempty"`
}

// InstanceDetail is the observed state of one instance
type InstanceDetail struct {
	ID             string         `json:"id"`
	SubscriptionID string         `json:"subscriptionId"`
	Status         InstanceStatus `json:"status"`
	RawStatus      string         `json:"rawStatus,omitempty"`
	CloudProvider  string         `json:"cloudProvider,omitempty"`
	Region         string         `json:"region,omitempty"`
	Connection     Connection     `json:"connection"`
}

// CreateInstanceParams are the end-user supplied creation parameters.
// Password is write-only; no read API returns it.
type CreateInstanceParams struct {
	CloudProvider string
	Region        string
	Name          string
	User          string
	Password      string
}
