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
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/model"

	"github.com/redis/go-redis/v9"
)

//go:embed merge.lua
var mergeLuaScript string

// RedisStore keeps each session in a redis hash that expires with the session.
type RedisStore struct {
	opts      Options
	client    redis.UniversalClient
	keyPrefix string
	merge     *redis.Script
}

// NewRedisStore creates a RedisStore. keyPrefix is prepended to every key,
// e.g. "falkordb-vercel:".
func NewRedisStore(client redis.UniversalClient, keyPrefix string, opts Options) *RedisStore {
	return &RedisStore{
		opts:      opts.withDefaults(),
		client:    client,
		keyPrefix: keyPrefix,
		merge:     redis.NewScript(mergeLuaScript),
	}
}

func (r *RedisStore) key(id string) string {
	return r.keyPrefix + "session:" + id
}

func (r *RedisStore) Create(ctx context.Context, s *model.Session) (string, error) {
	stored, err := r.opts.stamp(s)
	if err != nil {
		return "", err
	}
	key := r.key(stored.ID)
	values := redisValues(sessionFields(stored))
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, values...)
		pipe.ExpireAt(ctx, key, stored.ExpiresAt)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return stored.ID, nil
}

func (r *RedisStore) Get(ctx context.Context, handle string) (*model.Session, error) {
	if handle == "" {
		return nil, constants.ErrSessionNotFound
	}
	h, err := r.client.HGetAll(ctx, r.key(handle)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if len(h) == 0 {
		return nil, constants.ErrSessionNotFound
	}
	s := sessionFromHash(handle, h)
	if s.Expired(r.opts.Clock.Now()) {
		return nil, constants.ErrSessionNotFound
	}
	return s, nil
}

// Merge writes only the patched fields in a single script call
func (r *RedisStore) Merge(ctx context.Context, handle string, patch model.SessionPatch) (string, error) {
	if handle == "" {
		return "", constants.ErrSessionNotFound
	}
	args := append([]interface{}{r.opts.Clock.Now().UnixMilli()}, redisValues(patchFields(patch))...)
	ok, err := r.merge.Run(ctx, r.client, []string{r.key(handle)}, args...).Int()
	if err != nil {
		return "", fmt.Errorf("failed to merge session: %w", err)
	}
	if ok == 0 {
		return "", constants.ErrSessionNotFound
	}
	return handle, nil
}

func (r *RedisStore) Delete(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	if err := r.client.Del(ctx, r.key(handle)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// redisValues flattens fields into HSET arguments. Times are unix milliseconds.
func redisValues(fields []field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		var v string
		switch t := f.value.(type) {
		case string:
			v = t
		case time.Time:
			v = strconv.FormatInt(t.UnixMilli(), 10)
		}
		out = append(out, f.name, v)
	}
	return out
}

func sessionFromHash(id string, h map[string]string) *model.Session {
	return &model.Session{
		ID:                    id,
		AccessToken:           h[colAccessToken],
		TenantID:              h[colTenantID],
		AccountToken:          h[colAccountToken],
		AccountTokenExpiresAt: timePtr(parseMillis(h[colAccountTokenExpiresAt])),
		Email:                 h[colEmail],
		ProjectID:             h[colProjectID],
		ProjectIDs:            decodeProjectIDs(h[colProjectIDs]),
		SubscriptionID:        h[colSubscriptionID],
		InstanceID:            h[colInstanceID],
		CreatedAt:             parseMillis(h[colCreatedAt]),
		ExpiresAt:             parseMillis(h[colExpiresAt]),
	}
}

func parseMillis(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
