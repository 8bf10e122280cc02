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

package config

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Server holds the configuration parameters for the application.
type Server struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Server configurations
	Port string `envconfig:"PORT" default:"3000"`
	// Host is the public base URL of this service. The OAuth redirect URI is
	// derived from it and must match the one registered with Vercel.
	Host        string `envconfig:"HOST" default:"http://localhost:3000"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Region catalog override (YAML). Empty means built-in defaults.
	CatalogPath string `envconfig:"CATALOG_PATH" default:""`

	Vercel     Vercel     `envconfig:"VERCEL"`
	Omnistrate Omnistrate `envconfig:"OMNISTRATE"`
	Session    Session    `envconfig:"SESSION"`
	Redis      Redis      `envconfig:"REDIS"`
	Webhook    Webhook    `envconfig:"WEBHOOK"`
	Metrics    Metrics    `envconfig:"METRICS"`

	// Database configurations
	Database     Database `envconfig:"DATABASE"`
	DBSchemaPath string   `envconfig:"DB_SCHEMA_PATH" default:""`

	// TLS configurations
	TLS TLS `envconfig:"TLS"`
}

// Vercel holds the integration credentials and endpoint of the deployment platform
type Vercel struct {
	ClientID     string `envconfig:"CLIENT_ID" default:""`
	ClientSecret string `envconfig:"CLIENT_SECRET" default:""`
	APIURL       string `envconfig:"API_URL" default:"https://api.vercel.com"`
	RedirectPath string `envconfig:"REDIRECT_PATH" default:"/callback"`
	Timeout      int    `envconfig:"TIMEOUT" default:"15"` // seconds
	// MaxRetries applies only to idempotent writes (environment variable upserts)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"2"`
}

// Omnistrate holds the account API configuration.
type Omnistrate struct {
	APIURL     string `envconfig:"API_URL" default:"https://api.omnistrate.cloud"`
	APIVersion string `envconfig:"API_VERSION" default:"2022-09-01-00"`
	// AdminBearer is the brokering service credential. It never leaves the server.
	AdminBearer   string `envconfig:"ADMIN_BEARER" default:""`
	ServiceID     string `envconfig:"SERVICE_ID" default:""`
	ProductTierID string `envconfig:"PRODUCT_TIER_ID" default:""`
	ResourcePath  string `envconfig:"RESOURCE_PATH" default:""`
	Timeout       int    `envconfig:"TIMEOUT" default:"30"` // seconds
}

// Session holds session store configuration
type Session struct {
	// Backend is one of memory, cookie, redis, sql
	Backend    string        `envconfig:"BACKEND" default:"memory"`
	TTL        time.Duration `envconfig:"TTL" default:"24h"`
	CookieName string        `envconfig:"COOKIE_NAME" default:"session"`
	// EncryptionKey seals cookie sessions. 32 bytes, base64 or hex encoded.
	EncryptionKey string `envconfig:"ENCRYPTION_KEY" default:""`
}

// Redis holds redis connection configuration
type Redis struct {
	Addr      string `envconfig:"ADDR" default:"localhost:6379"`
	Password  string `envconfig:"PASSWORD" default:""`
	DB        int    `envconfig:"DB" default:"0"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"falkordb-vercel:"`
}

// Webhook holds the shared secret presented by the provisioning backend
type Webhook struct {
	Secret string `envconfig:"SECRET" default:""`
}

// Metrics toggles the prometheus endpoint
type Metrics struct {
	Enabled bool `envconfig:"ENABLED" default:"true"`
}

// TLS holds TLS certificate configuration
type TLS struct {
	Enabled bool   `envconfig:"ENABLED" default:"false"`
	CertDir string `envconfig:"CERT_DIR" default:"./data/certs"`
}

// Database holds database-specific configuration
type Database struct {
	Driver string `envconfig:"DRIVER" default:"sqlite3"`
	// DBPath is the file path for SQLite databases.
	// Use DATABASE_DB_PATH to override; keeping it distinct from the OS PATH variable.
	Path            string `envconfig:"DB_PATH" default:"./data/integration.db"`
	Host            string `envconfig:"HOST" default:"localhost"`
	Port            int    `envconfig:"PORT" default:"5432"`
	Name            string `envconfig:"NAME" default:"integration"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	SSLMode         string `envconfig:"SSL_MODE" default:"disable"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME" default:"300"` // seconds

	// Set to false when the DB user lacks DDL privileges.
	ExecuteSchemaDDL bool `envconfig:"EXECUTE_SCHEMA_DDL" default:"true"`
}

// IsProduction reports whether cookies must be marked Secure
func (s *Server) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// RedirectURI is the OAuth redirect URI registered for this integration
func (s *Server) RedirectURI() string {
	return strings.TrimRight(s.Host, "/") + "/" + strings.TrimLeft(s.Vercel.RedirectPath, "/")
}

// package-level variable and mutex for thread safety
var (
	processOnce     sync.Once
	settingInstance *Server
)

// GetConfig initializes and returns a singleton instance of the Server struct.
// It uses sync.Once so the environment is read only once. If loading or
// validation fails the function panics.
func GetConfig() *Server {
	var err error
	processOnce.Do(func() {
		settingInstance, err = Load()
	})
	if err != nil {
		panic(err)
	}
	return settingInstance
}

// Load reads the configuration from the environment and validates it.
func Load() (*Server, error) {
	cfg := &Server{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Server) error {
	if cfg.Webhook.Secret == "" {
		return fmt.Errorf("webhook secret is not configured (WEBHOOK_SECRET)")
	}
	if cfg.Omnistrate.AdminBearer == "" {
		return fmt.Errorf("omnistrate admin bearer is not configured (OMNISTRATE_ADMIN_BEARER)")
	}
	if cfg.Omnistrate.ResourcePath == "" {
		return fmt.Errorf("omnistrate resource path is not configured (OMNISTRATE_RESOURCE_PATH)")
	}
	if cfg.Omnistrate.ProductTierID == "" || cfg.Omnistrate.ServiceID == "" {
		return fmt.Errorf("free tier is not configured (OMNISTRATE_PRODUCT_TIER_ID, OMNISTRATE_SERVICE_ID)")
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	switch cfg.Session.Backend {
	case "memory", "redis", "sql":
	case "cookie":
		if _, err := DecodeKey(cfg.Session.EncryptionKey); err != nil {
			return fmt.Errorf("invalid SESSION_ENCRYPTION_KEY: %w", err)
		}
	default:
		return fmt.Errorf("unsupported session backend: %s", cfg.Session.Backend)
	}
	return nil
}

// DecodeKey decodes a 32-byte key given in base64 or hex form
func DecodeKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("key is empty")
	}
	if b, err := hex.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	return nil, fmt.Errorf("key must decode to 32 bytes")
}
