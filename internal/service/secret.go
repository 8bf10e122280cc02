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

	"github.com/rchristof/example-integration/internal/client"
	"github.com/rchristof/example-integration/internal/client/vercel"
	"github.com/rchristof/example-integration/internal/constants"
	"github.com/rchristof/example-integration/internal/metrics"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/session"

	"go.uber.org/zap"
)

// SecretService writes environment variables into a project
type SecretService struct {
	sessionAccess
	env    vercel.EnvService
	logger *zap.Logger
}

// NewSecretService creates a new SecretService
func NewSecretService(env vercel.EnvService, store session.Store, logger *zap.Logger) *SecretService {
	return &SecretService{
		sessionAccess: newSessionAccess(store),
		env:           env,
		logger:        logger,
	}
}

// Publish upserts every secret, one call per key, and keeps going past
// failures. It returns the written keys and, when any key failed, a
// *model.PartialPublishError.
func (s *SecretService) Publish(ctx context.Context, target model.PublishTarget, secrets model.SecretSet) ([]string, error) {
	if target.AccessToken == "" {
		return nil, constants.ErrMissingAccessToken
	}
	if target.ProjectID == "" {
		return nil, constants.ErrNoProjectSelected
	}

	written := make([]string, 0, len(secrets))
	var failed []model.PublishFailure
	for _, secret := range secrets {
		err := s.env.Upsert(ctx, target.AccessToken, target.TenantID, target.ProjectID, secret)
		metrics.SecretsPublishedTotal.WithLabelValues(metrics.Result(err)).Inc()
		if err != nil {
			failure := model.PublishFailure{Key: secret.Key, Message: err.Error()}
			var ue *client.UpstreamError
			if errors.As(err, &ue) {
				failure.Status = ue.Code
				failure.Message = ue.Message
			}
			s.logger.Warn("Failed to publish environment variable",
				zap.String("projectId", target.ProjectID),
				zap.String("key", secret.Key),
				zap.Int("status", failure.Status))
			failed = append(failed, failure)
			continue
		}
		written = append(written, secret.Key)
	}

	if len(failed) > 0 {
		return written, &model.PartialPublishError{Written: written, Failed: failed}
	}
	s.logger.Info("Published environment variables",
		zap.String("projectId", target.ProjectID),
		zap.Strings("keys", written))
	return written, nil
}

// PublishForSession publishes user supplied variables to the session's project
func (s *SecretService) PublishForSession(ctx context.Context, handle string, secrets model.SecretSet) (written []string, err error) {
	defer func() { observeStep("publish_secrets", err) }()

	sess, err := s.load(ctx, handle)
	if err != nil {
		return nil, err
	}
	return s.Publish(ctx, publishTarget(sess), secrets)
}

// connectionSecrets builds the FALKORDB_* variables for a RUNNING instance.
// The password is only known while the user is in the request.
func connectionSecrets(conn model.Connection, password string) (model.SecretSet, error) {
	if conn.User == "" {
		return nil, client.NewUpstreamError(constants.UpstreamOmnistrate, http.StatusOK,
			"instance detail did not include the database user")
	}
	var set model.SecretSet
	add := func(key, value string) {
		if value != "" {
			set = append(set, model.Secret{Key: key, Value: value})
		}
	}
	add(constants.EnvFalkorDBHost, conn.Hostname)
	add(constants.EnvFalkorDBPort, conn.Port)
	add(constants.EnvFalkorDBUser, conn.User)
	add(constants.EnvFalkorDBPassword, password)
	return set, nil
}
