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
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/database"
	"github.com/rchristof/example-integration/internal/model"
)

// SQLStore keeps sessions in the sessions table
type SQLStore struct {
	opts Options
	db   *database.DB
}

// NewSQLStore creates a SQLStore on an initialised database
func NewSQLStore(db *database.DB, opts Options) *SQLStore {
	return &SQLStore{opts: opts.withDefaults(), db: db}
}

func (r *SQLStore) Create(ctx context.Context, s *model.Session) (string, error) {
	stored, err := r.opts.stamp(s)
	if err != nil {
		return "", err
	}
	fields := sessionFields(stored)
	cols := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+1)
	cols = append(cols, "id")
	args = append(args, stored.ID)
	for _, f := range fields {
		cols = append(cols, f.name)
		args = append(args, f.value)
	}
	query := fmt.Sprintf("INSERT INTO sessions (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return stored.ID, nil
}

func (r *SQLStore) Get(ctx context.Context, handle string) (*model.Session, error) {
	query := `
		SELECT id, access_token, tenant_id, account_token, account_token_expires_at, email,
			project_id, project_ids, subscription_id, instance_id, created_at, expires_at
		FROM sessions WHERE id = ? AND expires_at > ?`

	s := &model.Session{}
	var accountExp sql.NullTime
	var projectIDs string
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), handle, r.now()).Scan(
		&s.ID, &s.AccessToken, &s.TenantID, &s.AccountToken, &accountExp, &s.Email,
		&s.ProjectID, &projectIDs, &s.SubscriptionID, &s.InstanceID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, constants.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if accountExp.Valid {
		s.AccountTokenExpiresAt = timePtr(accountExp.Time)
	}
	s.ProjectIDs = decodeProjectIDs(projectIDs)
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = s.ExpiresAt.UTC()
	return s, nil
}

// Merge updates only the patched columns in one statement
func (r *SQLStore) Merge(ctx context.Context, handle string, patch model.SessionPatch) (string, error) {
	fields := patchFields(patch)
	sets := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+2)
	for _, f := range fields {
		sets = append(sets, f.name+" = ?")
		args = append(args, f.value)
	}
	if len(sets) == 0 {
		// still confirm the session exists
		if _, err := r.Get(ctx, handle); err != nil {
			return "", err
		}
		return handle, nil
	}
	args = append(args, handle, r.now())

	query := "UPDATE sessions SET " + strings.Join(sets, ", ") + " WHERE id = ? AND expires_at > ?"
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return "", fmt.Errorf("failed to merge session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to merge session: %w", err)
	}
	if n == 0 {
		return "", constants.ErrSessionNotFound
	}
	return handle, nil
}

func (r *SQLStore) Delete(ctx context.Context, handle string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sessions WHERE id = ?`), handle); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Sweep deletes expired rows
func (r *SQLStore) Sweep(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sessions WHERE expires_at <= ?`), r.now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLStore) now() time.Time {
	return r.opts.Clock.Now().UTC()
}
