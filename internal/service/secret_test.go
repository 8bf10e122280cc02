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

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretService_PartialFailure(t *testing.T) {
	env := &fakeEnv{fail: map[string]int{"KEY_2": http.StatusBadRequest}}
	svc := NewSecretService(env, newTestStore(), testLogger())

	written, err := svc.Publish(context.Background(),
		model.PublishTarget{AccessToken: "tok", ProjectID: "p-1"},
		model.SecretSet{{Key: "KEY_1", Value: "a"}, {Key: "KEY_2", Value: "b"}, {Key: "KEY_3", Value: "c"}})

	assert.ErrorIs(t, err, constants.ErrPartialPublishFailure)
	var pe *model.PartialPublishError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"KEY_2"}, pe.FailedKeys())
	assert.Equal(t, http.StatusBadRequest, pe.Failed[0].Status)
	assert.Equal(t, "rejected KEY_2", pe.Failed[0].Message)
	assert.Equal(t, []string{"KEY_1", "KEY_3"}, written)
	assert.Equal(t, []string{"KEY_1", "KEY_3"}, env.keys())
}

func TestSecretService_RequiresTarget(t *testing.T) {
	env := &fakeEnv{}
	svc := NewSecretService(env, newTestStore(), testLogger())
	set := model.SecretSet{{Key: "K", Value: "V"}}

	_, err := svc.Publish(context.Background(), model.PublishTarget{ProjectID: "p-1"}, set)
	assert.ErrorIs(t, err, constants.ErrUnauthenticated)

	_, err = svc.Publish(context.Background(), model.PublishTarget{AccessToken: "tok"}, set)
	assert.ErrorIs(t, err, constants.ErrInvalidInput)
	assert.Empty(t, env.keys())
}

func TestSecretService_PublishForSession(t *testing.T) {
	store := newTestStore()
	handle := startSession(t, store, readySession())
	env := &fakeEnv{}
	svc := NewSecretService(env, store, testLogger())

	written, err := svc.PublishForSession(context.Background(), handle, model.SecretSet{{Key: "API_URL", Value: "https://x"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"API_URL"}, written)
	assert.Equal(t, []envWrite{{ProjectID: "p-1", Key: "API_URL", Value: "https://x"}}, env.writes)
}

func TestConnectionSecrets(t *testing.T) {
	set, err := connectionSecrets(model.Connection{Hostname: "db.example.com", Port: "6379", User: "falkor"}, "secret")
	require.NoError(t, err)
	assert.Equal(t, []string{"FALKORDB_HOST", "FALKORDB_PORT", "FALKORDB_USER", "FALKORDB_PASSWORD"}, set.Keys())

	set, err = connectionSecrets(model.Connection{Hostname: "db.example.com", User: "falkor"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"FALKORDB_HOST", "FALKORDB_USER"}, set.Keys())

	_, err = connectionSecrets(model.Connection{Hostname: "db.example.com"}, "secret")
	assert.ErrorIs(t, err, constants.ErrUpstream)
}
