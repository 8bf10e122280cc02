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

package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rchristof/example-integration/config"
	"github.com/rchristof/example-integration/internal/database"
	"github.com/rchristof/example-integration/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repositories(t *testing.T) map[string]func(t *testing.T) PendingLinkRepository {
	return map[string]func(t *testing.T) PendingLinkRepository{
		"sql": func(t *testing.T) PendingLinkRepository {
			db, err := database.NewConnection(&config.Database{Driver: "sqlite3", Path: filepath.Join(t.TempDir(), "test.db"), MaxIdleConns: 1})
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })
			require.NoError(t, db.InitSchema(""))
			return NewPendingLinkRepo(db)
		},
		"redis": func(t *testing.T) PendingLinkRepository {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { client.Close() })
			return NewPendingLinkRedisRepo(client, "test:"+strings.ReplaceAll(t.Name(), "/", ":")+":")
		},
	}
}

func TestPendingLinks_CreateListDelete(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			base := time.Now().UTC().Truncate(time.Second)

			require.NoError(t, repo.CreatePendingLink(ctx, &model.PendingLink{
				InstanceID: "inst-1", ProjectID: "prj_b", AccessToken: "tok-b", SubscriptionID: "sub-1", CreatedAt: base,
			}))
			require.NoError(t, repo.CreatePendingLink(ctx, &model.PendingLink{
				InstanceID: "inst-1", ProjectID: "prj_a", AccessToken: "tok-a", SubscriptionID: "sub-1", CreatedAt: base.Add(time.Second),
			}))
			require.NoError(t, repo.CreatePendingLink(ctx, &model.PendingLink{
				InstanceID: "inst-2", ProjectID: "prj_a", AccessToken: "tok-c", SubscriptionID: "sub-2",
			}))

			links, err := repo.ListPendingLinksByInstance(ctx, "inst-1")
			require.NoError(t, err)
			require.Len(t, links, 2)
			assert.Equal(t, "prj_b", links[0].ProjectID)
			assert.Equal(t, "tok-b", links[0].AccessToken)
			assert.Equal(t, "prj_a", links[1].ProjectID)

			require.NoError(t, repo.DeletePendingLink(ctx, "inst-1", "prj_b"))
			require.NoError(t, repo.DeletePendingLink(ctx, "inst-1", "prj_b"))

			links, err = repo.ListPendingLinksByInstance(ctx, "inst-1")
			require.NoError(t, err)
			require.Len(t, links, 1)
			assert.Equal(t, "prj_a", links[0].ProjectID)

			links, err = repo.ListPendingLinksByInstance(ctx, "inst-missing")
			require.NoError(t, err)
			assert.Empty(t, links)
		})
	}
}

func TestPendingLinks_CreateRefreshesExistingKey(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			require.NoError(t, repo.CreatePendingLink(ctx, &model.PendingLink{
				InstanceID: "inst-1", ProjectID: "prj_a", AccessToken: "old", SubscriptionID: "sub-1",
			}))
			require.NoError(t, repo.CreatePendingLink(ctx, &model.PendingLink{
				InstanceID: "inst-1", ProjectID: "prj_a", AccessToken: "new", SubscriptionID: "sub-1",
			}))

			links, err := repo.ListPendingLinksByInstance(ctx, "inst-1")
			require.NoError(t, err)
			require.Len(t, links, 1)
			assert.Equal(t, "new", links[0].AccessToken)
		})
	}
}
