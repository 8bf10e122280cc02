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
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rchristof/example-integration/internal/model"
)

// Store persists onboarding sessions between wizard steps.
//
// Every method takes the handle the browser presented and Create and Merge
// return the handle to send back. Server-side stores return the session id
// unchanged; the cookie store returns a freshly sealed payload.
//
// Merge applies only the fields set in the patch, so two concurrent merges of
// different fields both survive on server-side backends.
type Store interface {
	Create(ctx context.Context, s *model.Session) (string, error)
	Get(ctx context.Context, handle string) (*model.Session, error)
	Merge(ctx context.Context, handle string, patch model.SessionPatch) (string, error)
	Delete(ctx context.Context, handle string) error
}

// Sweeper is implemented by stores that need expired sessions removed periodically
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Options are shared by every backend
type Options struct {
	TTL   time.Duration
	Clock Clock
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 24 * time.Hour
	}
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
	return o
}

// stamp assigns an id and the lifetime to a new session
func (o Options) stamp(s *model.Session) (*model.Session, error) {
	c := s.Clone()
	if c.ID == "" {
		id, err := NewID()
		if err != nil {
			return nil, err
		}
		c.ID = id
	}
	now := o.Clock.Now().UTC()
	c.CreatedAt = now
	c.ExpiresAt = now.Add(o.TTL)
	return c, nil
}

// NewID returns 32 random bytes hex encoded
func NewID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
