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

package utils

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	registerOnce  sync.Once
	registerErr   error
)

// IsEnvKey reports whether s is usable as an environment variable name
func IsEnvKey(s string) bool {
	return len(s) <= 256 && envKeyPattern.MatchString(s)
}

// RegisterValidators adds the custom binding tags used by the request DTOs
// to gin's validator.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		registerErr = v.RegisterValidation("envkey", func(fl validator.FieldLevel) bool {
			return IsEnvKey(fl.Field().String())
		})
	})
	return registerErr
}
