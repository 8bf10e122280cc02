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

package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/utils"
)

// SessionCookie describes the browser cookie carrying the session handle
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// SessionMiddleware reads the session handle from the cookie or the
// X-Session-Token header. Requests without one are rejected with 401.
func SessionMiddleware(cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := cookie.read(c)
		if handle == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(
				http.StatusUnauthorized, "Unauthorized", "Session is required. Complete the Vercel authorization first."))
			return
		}
		c.Set(constants.SessionHandleKey, handle)
		c.Next()
	}
}

func (sc SessionCookie) read(c *gin.Context) string {
	if v, err := c.Cookie(sc.Name); err == nil && v != "" {
		return v
	}
	return c.GetHeader(constants.SessionHeader)
}

// GetSessionHandle returns the handle stored by SessionMiddleware
func GetSessionHandle(c *gin.Context) string {
	return c.GetString(constants.SessionHandleKey)
}

// Set hands a new session handle back to the browser. Nothing is written
// when the handle did not change.
func (sc SessionCookie) Set(c *gin.Context, handle string) {
	if handle == "" || handle == GetSessionHandle(c) {
		return
	}
	c.Set(constants.SessionHandleKey, handle)
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sc.Name,
		Value:    handle,
		Path:     "/",
		MaxAge:   int(sc.TTL.Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	c.Header(constants.SessionHeader, handle)
}

// Clear expires the session cookie
func (sc SessionCookie) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
