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

// Stage is a deployment stage an environment variable is scoped to
type Stage string

const (
	StageProduction  Stage = "production"
	StagePreview     Stage = "preview"
	StageDevelopment Stage = "development"
)

// AllStages is the default target set for published secrets
var AllStages = []Stage{StageProduction, StagePreview, StageDevelopment}

// ValidStage reports whether s is a known stage
func ValidStage(s Stage) bool {
	switch s {
	case StageProduction, StagePreview, StageDevelopment:
		return true
	}
	return false
}

// Secret is one environment variable to write
type Secret struct {
	Key     string
	Value   string
	Targets []Stage
}

// SecretSet is written one key at a time, in order.
type SecretSet []Secret

// Keys returns the keys of the set in order
func (s SecretSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, sec := range s {
		keys = append(keys, sec.Key)
	}
	return keys
}

// PublishTarget identifies the project whose environment receives the secrets
type PublishTarget struct {
	AccessToken string
	TenantID    string
	ProjectID   string
}
