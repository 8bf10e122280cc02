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

package constants

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service wraps exactly one of these.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnauthenticated         = errors.New("unauthenticated")
	ErrUpstream                = errors.New("upstream error")
	ErrAccountNotConfirmed     = errors.New("account not confirmed")
	ErrInstanceUnavailable     = errors.New("instance unavailable")
	ErrUnexpectedInstanceState = errors.New("unexpected instance state")
	ErrPartialPublishFailure   = errors.New("partial publish failure")
	ErrInconsistentState       = errors.New("inconsistent state")
)

var (
	ErrInvalidCode        = fmt.Errorf("%w: authorization code is required", ErrInvalidInput)
	ErrUpstreamAuth       = fmt.Errorf("%w: token exchange rejected", ErrUpstream)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrMissingAccessToken = fmt.Errorf("%w: deployment platform access token missing", ErrUnauthenticated)
	ErrMissingAccount     = fmt.Errorf("%w: account session token missing or expired", ErrUnauthenticated)
)

var (
	ErrSessionNotFound = fmt.Errorf("%w: session not found or expired", ErrUnauthenticated)
	ErrSessionTooLarge = errors.New("session state exceeds cookie size limit")
)

var (
	ErrUnknownProject       = fmt.Errorf("%w: project was not returned by the last listing", ErrInvalidInput)
	ErrNoProjectSelected    = fmt.Errorf("%w: no project selected", ErrInvalidInput)
	ErrNoSubscription       = fmt.Errorf("%w: no subscription selected", ErrInvalidInput)
	ErrMultipleActivePlans  = fmt.Errorf("%w: more than one active free-tier subscription", ErrInconsistentState)
	ErrUnsupportedRegion    = fmt.Errorf("%w: unsupported cloud provider or region", ErrInvalidInput)
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInstanceNotFound     = errors.New("instance not found")
)

var (
	ErrPendingLinkNotFound = errors.New("pending link not found")
	ErrNoPendingLinks      = errors.New("no pending links for instance")
	ErrMissingInstanceID   = fmt.Errorf("%w: instanceId is required", ErrInvalidInput)
	ErrDeliveryIncomplete  = errors.New("one or more pending links could not be completed")
)
