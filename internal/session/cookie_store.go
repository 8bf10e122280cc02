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

package session

import (
	"context"
	"encoding/json"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
)

// CookieStore keeps the whole session inside an encrypted cookie.
// There is no server-side state, so Delete only relies on the caller
// clearing the cookie and concurrent merges from one browser are last-write-wins.
type CookieStore struct {
	opts   Options
	sealer *Sealer
	limit  int
}

type cookiePayload struct {
	ID      string         `json:"id"`
	Session *model.Session `json:"s"`
}

// NewCookieStore creates a CookieStore sealing with key
func NewCookieStore(key []byte, opts Options) (*CookieStore, error) {
	sealer, err := NewSealer(key)
	if err != nil {
		return nil, err
	}
	return &CookieStore{opts: opts.withDefaults(), sealer: sealer, limit: constants.MaxCookieBytes}, nil
}

func (c *CookieStore) Create(_ context.Context, s *model.Session) (string, error) {
	stored, err := c.opts.stamp(s)
	if err != nil {
		return "", err
	}
	return c.seal(stored)
}

func (c *CookieStore) Get(_ context.Context, handle string) (*model.Session, error) {
	return c.open(handle)
}

func (c *CookieStore) Merge(_ context.Context, handle string, patch model.SessionPatch) (string, error) {
	s, err := c.open(handle)
	if err != nil {
		return "", err
	}
	patch.Apply(s)
	return c.seal(s)
}

func (c *CookieStore) Delete(context.Context, string) error {
	return nil
}

func (c *CookieStore) seal(s *model.Session) (string, error) {
	b, err := json.Marshal(cookiePayload{ID: s.ID, Session: s})
	if err != nil {
		return "", err
	}
	sealed, err := c.sealer.Seal(b)
	if err != nil {
		return "", err
	}
	if len(sealed) > c.limit {
		return "", constants.ErrSessionTooLarge
	}
	return sealed, nil
}

// open treats any undecryptable or expired value as a missing session
func (c *CookieStore) open(handle string) (*model.Session, error) {
	if handle == "" {
		return nil, constants.ErrSessionNotFound
	}
	b, err := c.sealer.Open(handle)
	if err != nil {
		return nil, constants.ErrSessionNotFound
	}
	var p cookiePayload
	if err := json.Unmarshal(b, &p); err != nil || p.Session == nil {
		return nil, constants.ErrSessionNotFound
	}
	p.Session.ID = p.ID
	if p.Session.Expired(c.opts.Clock.Now()) {
		return nil, constants.ErrSessionNotFound
	}
	return p.Session, nil
}
