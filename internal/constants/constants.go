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

// Session propagation
const (
	SessionHeader = "X-Session-Token"
	// SessionHandleKey is the gin context key holding the session handle
	SessionHandleKey = "session_handle"
)

// Environment variable names written into the linked project
const (
	EnvFalkorDBHost     = "FALKORDB_HOST"
	EnvFalkorDBPort     = "FALKORDB_PORT"
	EnvFalkorDBUser     = "FALKORDB_USER"
	EnvFalkorDBPassword = "FALKORDB_PASSWORD"
)

// Session store backends
const (
	SessionBackendMemory = "memory"
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
	SessionBackendSQL    = "sql"
)

// Upstream names used in errors and metrics
const (
	UpstreamVercel     = "vercel"
	UpstreamOmnistrate = "omnistrate"
)

// MaxCookieBytes is the largest sealed session accepted by browsers in a single cookie
const MaxCookieBytes = 4000
