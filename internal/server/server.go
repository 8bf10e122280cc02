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
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rchristof/example-integration/config"
	"github.com/rchristof/example-integration/internal/client/omnistrate"
	"github.com/rchristof/example-integration/internal/client/vercel"
	"github.com/rchristof/example-integration/internal/handler"
	"github.com/rchristof/example-integration/internal/metrics"
	"github.com/rchristof/example-integration/internal/middleware"
	"github.com/rchristof/example-integration/internal/service"
	"github.com/rchristof/example-integration/internal/session"
	"github.com/rchristof/example-integration/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sweepInterval = 10 * time.Minute

type Server struct {
	cfg        *config.Server
	router     *gin.Engine
	backends   *backends
	logger     *zap.Logger
	httpServer *http.Server
	stopSweep  context.CancelFunc
}

// StartIntegrationServer creates a new server instance with all dependencies initialized
func StartIntegrationServer(cfg *config.Server, logger *zap.Logger) (*Server, error) {
	if err := utils.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	metrics.Enabled = cfg.Metrics.Enabled
	metrics.Init()

	catalog := utils.DefaultRegionCatalog()
	if cfg.CatalogPath != "" {
		loaded, err := utils.LoadRegionCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	b, err := openBackends(cfg, logger)
	if err != nil {
		return nil, err
	}
	store := session.WithMetrics(b.store, cfg.Session.Backend)

	// Initialize upstream clients
	vercelClient := vercel.NewVercelClient(vercel.Config{
		BaseURL:      cfg.Vercel.APIURL,
		ClientID:     cfg.Vercel.ClientID,
		ClientSecret: cfg.Vercel.ClientSecret,
		RedirectURI:  cfg.RedirectURI(),
		Timeout:      time.Duration(cfg.Vercel.Timeout) * time.Second,
		MaxRetries:   cfg.Vercel.MaxRetries,
		Logger:       logger,
	})
	omnistrateClient := omnistrate.NewOmnistrateClient(omnistrate.Config{
		BaseURL:      cfg.Omnistrate.APIURL,
		APIVersion:   cfg.Omnistrate.APIVersion,
		AdminBearer:  cfg.Omnistrate.AdminBearer,
		ResourcePath: cfg.Omnistrate.ResourcePath,
		Timeout:      time.Duration(cfg.Omnistrate.Timeout) * time.Second,
		Logger:       logger,
	})

	// Initialize services
	authService := service.NewAuthService(vercelClient.OAuth(), vercelClient.Users(), omnistrateClient.Accounts(), store, logger)
	projectService := service.NewProjectService(vercelClient.Projects(), store, logger)
	subscriptionService := service.NewSubscriptionService(omnistrateClient.Subscriptions(), service.FreeTier{
		ServiceID:     cfg.Omnistrate.ServiceID,
		ProductTierID: cfg.Omnistrate.ProductTierID,
	}, store, logger)
	secretService := service.NewSecretService(vercelClient.Env(), store, logger)
	instanceService := service.NewInstanceService(omnistrateClient.Instances(), secretService, b.links, catalog, store, logger)
	webhookService := service.NewWebhookService(omnistrateClient.AdminInstances(), secretService, b.links, logger)

	cookie := middleware.SessionCookie{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.IsProduction(),
	}
	requireSession := middleware.SessionMiddleware(cookie)

	// Setup router
	router := gin.New()
	router.Use(middleware.CorrelationIDMiddleware(logger))
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger, "/health", "/metrics"))
	if cfg.Metrics.Enabled {
		router.Use(middleware.MetricsMiddleware())
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Host}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Session-Token", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{"X-Session-Token", middleware.CorrelationIDHeader}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Register routes
	handler.NewAuthHandler(authService, cookie, cfg.Vercel.RedirectPath, logger).RegisterRoutes(router, requireSession)
	handler.NewProjectHandler(projectService, cookie, logger).RegisterRoutes(router, requireSession)
	handler.NewSubscriptionHandler(subscriptionService, cookie, logger).RegisterRoutes(router, requireSession)
	handler.NewInstanceHandler(instanceService, cookie, logger).RegisterRoutes(router, requireSession)
	handler.NewSecretHandler(secretService, logger).RegisterRoutes(router, requireSession)
	handler.NewWebhookHandler(webhookService, cfg.Webhook.Secret, logger).RegisterRoutes(router)

	s := &Server{
		cfg:      cfg,
		router:   router,
		backends: b,
		logger:   logger,
	}
	router.GET("/health", s.health)
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	if sweeper, ok := store.(session.Sweeper); ok {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopSweep = cancel
		go sweep(ctx, sweeper, sweepInterval, logger)
	}

	return s, nil
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.backends.ping(ctx); err != nil {
		s.logger.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "backend": s.cfg.Session.Backend})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": s.cfg.Session.Backend})
}

// Start serves until Shutdown is called. With TLS enabled a self-signed
// certificate is used for development.
func (s *Server) Start() error {
	if s.cfg.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	s.httpServer = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var err error
	if s.cfg.TLS.Enabled {
		cert, certErr := loadOrCreateCert(s.cfg.TLS.CertDir, s.logger)
		if certErr != nil {
			return certErr
		}
		s.httpServer.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		s.logger.Info("Starting HTTPS server", zap.String("addr", s.httpServer.Addr))
		err = s.httpServer.ListenAndServeTLS("", "")
	} else {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
		err = s.httpServer.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests, waits for in-flight ones and releases storage
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopSweep != nil {
		s.stopSweep()
	}
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if closeErr := s.backends.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// GetRouter returns the gin router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
