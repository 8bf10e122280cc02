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
	"strings"
	"time"

	"github.com/rchristof/example-integration/internal/client/omnistrate"
	"github.com/rchristof/example-integration/internal/client/vercel"
	"github.com/rchristof/example-integration/internal/dto"
	"github.com/rchristof/example-integration/internal/model"
	"github.com/rchristof/example-integration/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AuthService covers the token exchange and the account sign-up/sign-in steps
type AuthService struct {
	sessionAccess
	oauth    vercel.OAuthService
	users    vercel.UsersService
	accounts omnistrate.AccountsService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(oauth vercel.OAuthService, users vercel.UsersService, accounts omnistrate.AccountsService,
	store session.Store, logger *zap.Logger) *AuthService {
	return &AuthService{
		sessionAccess: newSessionAccess(store),
		oauth:         oauth,
		users:         users,
		accounts:      accounts,
		logger:        logger,
	}
}

// Exchange trades the authorization code for an access token and starts a
// new session. It returns the session handle.
func (s *AuthService) Exchange(ctx context.Context, code string) (handle string, err error) {
	defer func() { observeStep("exchange", err) }()

	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return "", err
	}
	handle, err = s.store.Create(ctx, &model.Session{AccessToken: token.AccessToken, TenantID: token.TenantID})
	if err != nil {
		return "", err
	}
	s.logger.Info("Session started", zap.Bool("team", token.TenantID != ""))
	return handle, nil
}

// SignUp creates an account. Success means the confirmation email was queued.
func (s *AuthService) SignUp(ctx context.Context, handle string, req dto.SignUpRequest) (err error) {
	defer func() { observeStep("signup", err) }()

	if _, err := s.load(ctx, handle); err != nil {
		return err
	}
	return s.accounts.SignUp(ctx, omnistrate.SignUpRequest{
		Email:            req.Email,
		LegalCompanyName: req.LegalCompanyName,
		Name:             req.Name,
		Password:         req.Password,
	})
}

// SignIn stores the account session token in the session
func (s *AuthService) SignIn(ctx context.Context, handle, email, password string) (newHandle string, err error) {
	defer func() { observeStep("signin", err) }()

	sess, err := s.load(ctx, handle)
	if err != nil {
		return "", err
	}
	token, err := s.accounts.SignIn(ctx, email, password)
	if err != nil {
		return "", err
	}
	// The previous token's expiry must not outlive it.
	patch := model.SessionPatch{
		ClearAccount:          true,
		AccountToken:          &token,
		AccountTokenExpiresAt: tokenExpiry(token),
		Email:                 &email,
	}
	// Subscriptions and instances belong to the account that created them.
	if !strings.EqualFold(sess.Email, email) {
		patch.SubscriptionID = model.Ptr("")
		patch.InstanceID = model.Ptr("")
	}
	return s.store.Merge(ctx, handle, patch)
}

// Logout ends the session
func (s *AuthService) Logout(ctx context.Context, handle string) error {
	return s.store.Delete(ctx, handle)
}

// Status reports the onboarding progress. With includeUser the deployment
// platform user is looked up too.
func (s *AuthService) Status(ctx context.Context, handle string, includeUser bool) (*dto.SessionResponse, error) {
	sess, err := s.load(ctx, handle)
	if err != nil {
		return nil, err
	}
	resp := &dto.SessionResponse{
		Authenticated:  sess.AccessToken != "",
		TeamID:         sess.TenantID,
		HasAccount:     sess.HasAccount(s.now()),
		ProjectID:      sess.ProjectID,
		SubscriptionID: sess.SubscriptionID,
		InstanceID:     sess.InstanceID,
	}
	if resp.HasAccount {
		resp.Email = sess.Email
	}
	if includeUser && sess.AccessToken != "" {
		user, err := s.users.Get(ctx, sess.AccessToken)
		if err != nil {
			return nil, err
		}
		resp.User = user
	}
	return resp, nil
}

// tokenExpiry reads the exp claim without verifying the signature. The token
// is only forwarded to its issuer; the claim decides when to ask the user to
// sign in again. Opaque tokens have no expiry.
func tokenExpiry(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time.UTC()
	return &t
}
