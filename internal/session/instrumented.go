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

	"github.com/rchristof/example-integration/internal/metrics"
	"github.com/rchristof/example-integration/internal/model"
)

// instrumented counts store operations per backend
type instrumented struct {
	Store
	backend string
}

// WithMetrics wraps s so every operation is counted under backend
func WithMetrics(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (i *instrumented) observe(op string, err error) {
	metrics.SessionOperationsTotal.WithLabelValues(i.backend, op, metrics.Result(err)).Inc()
}

func (i *instrumented) Create(ctx context.Context, s *model.Session) (string, error) {
	h, err := i.Store.Create(ctx, s)
	i.observe("create", err)
	return h, err
}

func (i *instrumented) Get(ctx context.Context, handle string) (*model.Session, error) {
	s, err := i.Store.Get(ctx, handle)
	i.observe("get", err)
	return s, err
}

func (i *instrumented) Merge(ctx context.Context, handle string, patch model.SessionPatch) (string, error) {
	h, err := i.Store.Merge(ctx, handle, patch)
	i.observe("merge", err)
	return h, err
}

func (i *instrumented) Delete(ctx context.Context, handle string) error {
	err := i.Store.Delete(ctx, handle)
	i.observe("delete", err)
	return err
}

// Sweep forwards to the wrapped store when it supports sweeping
func (i *instrumented) Sweep(ctx context.Context) (int64, error) {
	sw, ok := i.Store.(Sweeper)
	if !ok {
		return 0, nil
	}
	n, err := sw.Sweep(ctx)
	i.observe("sweep", err)
	return n, err
}
