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

package database

import (
	"path/filepath"
	"testing"

	"github.com/rchristof/example-integration/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a temporary SQLite database with the schema applied
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnection(&config.Database{Driver: "sqlite3", Path: filepath.Join(t.TempDir(), "test.db"), MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema(""))
	return db
}

func TestInitSchema_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.InitSchema(""))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('sessions', 'pending_links')`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(&config.Database{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestRebind(t *testing.T) {
	pg := &DB{driver: "postgres"}
	lite := &DB{driver: "sqlite3"}
	q := "UPDATE t SET a = ?, b = ? WHERE id = ?"

	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", pg.Rebind(q))
	assert.Equal(t, q, lite.Rebind(q))
	assert.Equal(t, "SELECT 1", pg.Rebind("SELECT 1"))
}

func TestSplitSQLStatements(t *testing.T) {
	stmts := splitSQLStatements(`
-- leading comment
CREATE TABLE a (x TEXT DEFAULT 'a;b');
/* block
   comment */
CREATE INDEX i ON a(x);
`)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (x TEXT DEFAULT 'a;b')", stmts[0])
	assert.Equal(t, "CREATE INDEX i ON a(x)", stmts[1])
}

func TestSplitSQLStatements_PostgresSchema(t *testing.T) {
	stmts := splitSQLStatements(postgresSchema)
	assert.Len(t, stmts, 3)
}
