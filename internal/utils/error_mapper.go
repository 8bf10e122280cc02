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
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"

	"github.com/go-playground/validator/v10"
)

// makeError creates a standardized error response tuple
func makeError(status int, description string) (int, ErrorResponse) {
	return status, NewErrorResponse(status, http.StatusText(status), description)
}

// FormatValidationError converts validator errors to user-friendly messages (public API)
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error() // Not a validation error, return as-is
	}
	return formatValidationError(validationErrors)
}

// formatValidationError converts ValidationErrors to user-friendly messages (internal)
func formatValidationError(validationErrors validator.ValidationErrors) string {
	var messages []string
	for _, fieldError := range validationErrors {
		fieldName := getUserFriendlyFieldName(fieldError.Field())
		message := getValidationErrorMessage(fieldName, fieldError.Tag(), fieldError.Param())
		messages = append(messages, message)
	}
	return strings.Join(messages, "; ")
}

// getUserFriendlyFieldName maps struct field names to user-friendly field names
func getUserFriendlyFieldName(fieldName string) string {
	fieldMap := map[string]string{
		"Code":             "code",
		"Email":            "email",
		"Password":         "password",
		"Name":             "name",
		"LegalCompanyName": "legal company name",
		"ProjectID":        "project ID",
		"InstanceID":       "instance ID",
		"CloudProvider":    "cloud provider",
		"Region":           "region",
		"User":             "database user",
		"Key":              "key",
		"Value":            "value",
		"Variables":        "variables",
		"Targets":          "targets",
	}

	if friendly, exists := fieldMap[fieldName]; exists {
		return friendly
	}
	return strings.ToLower(fieldName)
}

// getValidationErrorMessage creates user-friendly validation error messages
func getValidationErrorMessage(fieldName, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", fieldName)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fieldName, param)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fieldName, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fieldName)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.ReplaceAll(param, " ", ", "))
	case "envkey":
		return fmt.Sprintf("%s must contain only letters, digits and underscores and not start with a digit", fieldName)
	default:
		return fmt.Sprintf("%s is invalid", fieldName)
	}
}

// GetErrorResponse maps domain errors and validation errors to HTTP status and error response
func GetErrorResponse(err error) (int, ErrorResponse) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return makeError(http.StatusBadRequest, formatValidationError(validationErrors))
	}

	status, resp := mapKind(err)

	var upstreamErr *client.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Code > 0 {
		resp.UpstreamStatus = upstreamErr.Code
	}
	var partial *model.PartialPublishError
	if errors.As(err, &partial) {
		resp.FailedKeys = partial.FailedKeys()
	}
	return status, resp
}

func mapKind(err error) (int, ErrorResponse) {
	switch {
	// Not found
	case errors.Is(err, constants.ErrNoPendingLinks),
		errors.Is(err, constants.ErrPendingLinkNotFound),
		errors.Is(err, constants.ErrSubscriptionNotFound),
		errors.Is(err, constants.ErrInstanceNotFound):
		return makeError(http.StatusNotFound, err.Error())

	case errors.Is(err, constants.ErrInvalidInput):
		return makeError(http.StatusBadRequest, err.Error())
	case errors.Is(err, constants.ErrUnauthenticated):
		return makeError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, constants.ErrAccountNotConfirmed):
		return makeError(http.StatusForbidden, "Account email has not been confirmed. Check your inbox for the confirmation link.")

	// Conflicts with observed state
	case errors.Is(err, constants.ErrInconsistentState),
		errors.Is(err, constants.ErrInstanceUnavailable),
		errors.Is(err, constants.ErrUnexpectedInstanceState):
		return makeError(http.StatusConflict, err.Error())

	case errors.Is(err, constants.ErrPartialPublishFailure),
		errors.Is(err, constants.ErrUpstream):
		return makeError(http.StatusBadGateway, err.Error())

	case errors.Is(err, constants.ErrSessionTooLarge):
		return makeError(http.StatusUnprocessableEntity,
			"Session state does not fit in a cookie. Use the redis or sql session backend for accounts with many projects.")
	default:
		return makeError(http.StatusInternalServerError, "An unexpected error occurred")
	}
}
