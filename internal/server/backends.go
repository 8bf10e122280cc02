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

package server

import (
	"context"
	"fmt"
	"time"

	"github.com/rchristof/example-integration/config"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/database"
	"github.com/rchristof/example-integration/internal/repository"
	"github.com/rchristof/example-integration/internal/session"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// backends holds the storage chosen by SESSION_BACKEND. Pending links live in
// redis when sessions do, otherwise in the SQL database, since cookie and
// memory sessions cannot be read by the webhook.
type backends struct {
	store session.Store
	links repository.PendingLinkRepository
	db    *database.DB
	redis redis.UniversalClient
}

func openBackends(cfg *config.Server, logger *zap.Logger) (*backends, error) {
	opts := session.Options{TTL: cfg.Session.TTL}
	b := &backends{}

	if cfg.Session.Backend == constants.SessionBackendRedis {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		b.store = session.NewRedisStore(b.redis, cfg.Redis.KeyPrefix, opts)
		b.links = repository.NewPendingLinkRedisRepo(b.redis, cfg.Redis.KeyPrefix)
		logger.Info("Using redis session backend", zap.String("addr", cfg.Redis.Addr))
		return b, nil
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	// Skip when the DB user lacks DDL privileges
	if cfg.Database.ExecuteSchemaDDL {
		if err := db.InitSchema(cfg.DBSchemaPath); err != nil {
			db.Close()
			return nil, err
		}
	} else {
		logger.Info("Skipping schema DDL execution (DATABASE_EXECUTE_SCHEMA_DDL=false)")
	}
	b.db = db
	b.links = repository.NewPendingLinkRepo(db)

	switch cfg.Session.Backend {
	case constants.SessionBackendSQL:
		b.store = session.NewSQLStore(db, opts)
	case constants.SessionBackendCookie:
		key, err := config.DecodeKey(cfg.Session.EncryptionKey)
		if err != nil {
			db.Close()
			return nil, err
		}
		b.store, err = session.NewCookieStore(key, opts)
		if err != nil {
			db.Close()
			return nil, err
		}
	default:
		b.store = session.NewMemoryStore(opts)
	}
	logger.Info("Using session backend",
		zap.String("backend", cfg.Session.Backend),
		zap.String("database", db.Driver()))
	return b, nil
}

// ping checks the shared storage used by this instance
func (b *backends) ping(ctx context.Context) error {
	if b.redis != nil {
		return b.redis.Ping(ctx).Err()
	}
	if b.db != nil {
		return b.db.PingContext(ctx)
	}
	return nil
}

func (b *backends) close() error {
	if b.redis != nil {
		return b.redis.Close()
	}
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// sweep deletes expired sessions periodically until ctx is done
func sweep(ctx context.Context, sweeper session.Sweeper, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sweeper.Sweep(ctx)
			if err != nil {
				logger.Warn("Session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("Expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
