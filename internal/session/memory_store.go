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
	"sync"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"
)

// MemoryStore keeps sessions in process memory. Suitable for a single
// replica and for tests.
type MemoryStore struct {
	opts     Options
	mu       sync.Mutex
	sessions map[string]*model.Session
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		opts:     opts.withDefaults(),
		sessions: make(map[string]*model.Session),
	}
}

func (m *MemoryStore) Create(_ context.Context, s *model.Session) (string, error) {
	stored, err := m.opts.stamp(s)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[stored.ID] = stored
	return stored.ID, nil
}

func (m *MemoryStore) Get(_ context.Context, handle string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(handle)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Merge(_ context.Context, handle string, patch model.SessionPatch) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(handle)
	if err != nil {
		return "", err
	}
	patch.Apply(s)
	return handle, nil
}

func (m *MemoryStore) Delete(_ context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, handle)
	return nil
}

// Sweep drops expired sessions
func (m *MemoryStore) Sweep(_ context.Context) (int64, error) {
	now := m.opts.Clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// lookup must be called with mu held
func (m *MemoryStore) lookup(handle string) (*model.Session, error) {
	s, ok := m.sessions[handle]
	if !ok {
		return nil, constants.ErrSessionNotFound
	}
	if s.Expired(m.opts.Clock.Now()) {
		delete(m.sessions, handle)
		return nil, constants.ErrSessionNotFound
	}
	return s, nil
}
