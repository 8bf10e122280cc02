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
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rchristof/example-integration/config"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
)

//go:embed schema.sqlite.sql
var sqliteSchema string

//go:embed schema.postgres.sql
var postgresSchema string

var blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

// DB holds the database connection
type DB struct {
	*sql.DB
	driver string // Database driver name (sqlite3, postgres)
}

// Driver returns the underlying database driver name (e.g., sqlite3, postgres).
func (db *DB) Driver() string {
	return db.driver
}

// IsPostgres reports whether the connection uses the PostgreSQL driver
func (db *DB) IsPostgres() bool {
	return db.driver == "postgres" || db.driver == "postgresql"
}

// NewConnection creates a new database connection using configuration
func NewConnection(cfg *config.Database) (*DB, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case "sqlite3":
		if cfg.Path != ":memory:" {
			dir := filepath.Dir(cfg.Path)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		db, err = sql.Open("sqlite3", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// A single writer avoids SQLITE_BUSY between concurrent webhook deliveries.
		// It also keeps an in-memory database on one connection.
		db.SetMaxOpenConns(1)
	case "postgres", "postgresql":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		)

		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, driver: cfg.Driver}, nil
}

// InitSchema creates the sessions and pending_links tables.
// If dbSchemaPath is set, schema.{sqlite,postgres}.sql is read from its
// directory; otherwise the embedded schema is used.
func (db *DB) InitSchema(dbSchemaPath string) error {
	var schemaFile, schemaSQL string
	switch {
	case db.driver == "sqlite3":
		schemaFile, schemaSQL = "schema.sqlite.sql", sqliteSchema
	case db.IsPostgres():
		schemaFile, schemaSQL = "schema.postgres.sql", postgresSchema
	default:
		return fmt.Errorf("unsupported database driver for schema initialization: %s", db.driver)
	}

	if dbSchemaPath != "" {
		schemaPath := filepath.Join(filepath.Dir(dbSchemaPath), schemaFile)
		b, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("failed to read schema file %s: %w", schemaPath, err)
		}
		schemaSQL = string(b)
	}

	// PostgreSQL does not handle multi-statement Exec()
	if db.IsPostgres() {
		return db.initSchemaPostgres(schemaSQL)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// initSchemaPostgres executes the statements one by one within a transaction
func (db *DB) initSchemaPostgres(schemaSQL string) error {
	statements := splitSQLStatements(schemaSQL)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			firstLine := stmt
			if idx := strings.Index(stmt, "\n"); idx > 0 {
				firstLine = stmt[:idx]
			}
			return fmt.Errorf("failed to execute schema statement %d/%d: %w\nFirst line: %s", i+1, len(statements), err, firstLine)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// splitSQLStatements splits SQL by semicolons outside string literals and
// drops block comments and leading line comments.
func splitSQLStatements(sql string) []string {
	sql = blockCommentRe.ReplaceAllString(sql, "\n")

	var statements []string
	current := strings.Builder{}
	inString := false

	flush := func() {
		if stmt := removeLeadingComments(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for _, r := range sql {
		if r == '\'' {
			inString = !inString
		}
		if !inString && r == ';' {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return statements
}

// removeLeadingComments removes leading comment lines from a statement
func removeLeadingComments(stmt string) string {
	lines := strings.Split(stmt, "\n")
	for len(lines) > 0 {
		trimmed := strings.TrimSpace(lines[0])
		if trimmed != "" && !strings.HasPrefix(trimmed, "--") {
			break
		}
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Rebind converts a SQL query with `?` placeholders to the appropriate format
// for the current database driver. For PostgreSQL, converts `?` to `$1, $2, ...`.
// For SQLite, leaves `?` as-is.
func (db *DB) Rebind(query string) string {
	if !db.IsPostgres() {
		return query
	}
	parts := strings.Split(query, "?")
	if len(parts) == 1 {
		return query
	}

	var result strings.Builder
	for i, part := range parts {
		if i > 0 {
			result.WriteString(fmt.Sprintf("$%d", i))
		}
		result.WriteString(part)
	}
	return result.String()
}
