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

import (
	"fmt"
	"strings"

	"github.com/rchristof/example-integration/internal/constants"
)

// PublishFailure describes one key that could not be written
type PublishFailure struct {
	Key     string `json:"key"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

// PartialPublishError reports which keys of a SecretSet were written and
// which failed. It unwraps to constants.ErrPartialPublishFailure.
type PartialPublishError struct {
	Written []string
	Failed  []PublishFailure
}

func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("%s: %d of %d keys failed (%s)", constants.ErrPartialPublishFailure,
		len(e.Failed), len(e.Failed)+len(e.Written), strings.Join(e.FailedKeys(), ", "))
}

func (e *PartialPublishError) Unwrap() error {
	return constants.ErrPartialPublishFailure
}

// FailedKeys returns the keys that were not written
func (e *PartialPublishError) FailedKeys() []string {
	keys := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		keys = append(keys, f.Key)
	}
	return keys
}
