// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/dishhub/internal/platform/apperr"
	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
	"github.com/taibuivan/dishhub/internal/platform/sec"
	"github.com/taibuivan/dishhub/internal/platform/validate"
	"github.com/taibuivan/dishhub/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs and verifies access tokens.
type TokenProvider interface {
	Issue(userID, login, role string, ttl time.Duration) (string, *sec.AuthClaims, error)
	Parse(token string) (*sec.AuthClaims, error)
}

var errInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

// Service implements the account and session use cases.
type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	tokens   TokenProvider
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(accounts AccountRepository, sessions SessionRepository, tokens TokenProvider, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// # Authentication Flow

// LoginResult is a freshly issued token and the account it belongs to.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Account     *Account
}

/*
Login checks the credentials and opens a session.

Description: An unknown login and a wrong password produce the same error so
the endpoint cannot be used to enumerate accounts.

Parameters:
  - context: context.Context
  - login: string
  - password: string

Returns:
  - *LoginResult: Signed token with its expiry
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, login, password string) (*LoginResult, error) {
	account, err := service.accounts.FindByLogin(context, strings.TrimSpace(login))
	if errors.Is(err, dberr.ErrNotFound) {
		sec.PasswordMatches(password, "")
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !sec.PasswordMatches(password, account.PasswordHash) {
		return nil, errInvalidCredentials
	}

	token, claims, err := service.tokens.Issue(account.ID, account.Login, string(account.Role), service.tokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	session := &Session{
		ID:        claims.ID,
		UserID:    account.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := service.sessions.Save(context, session, service.tokenTTL); err != nil {
		return nil, apperr.Internal(err)
	}

	service.log(context).InfoContext(context, "user_logged_in",
		slog.String("user_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	return &LoginResult{AccessToken: token, ExpiresAt: session.ExpiresAt, Account: account}, nil
}

// Logout ends the session of the given token. Ending an already ended
// session is not an error.
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {
	if err := service.sessions.Delete(context, claims.ID); err != nil {
		return apperr.Internal(err)
	}

	service.log(context).InfoContext(context, "user_logged_out", slog.String("user_id", claims.UserID))
	return nil
}

/*
VerifyToken validates a bearer token for the authentication middleware.

Description: The signature and expiry are checked first, then the session the
token was issued with must still exist.

Returns:
  - *sec.AuthClaims: Claims of a live token
  - error: Unauthorized, or a session store failure
*/
func (service *Service) VerifyToken(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.Parse(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	alive, err := service.sessions.Exists(context, claims.ID)
	if err != nil {
		return nil, err
	}
	if !alive {
		return nil, apperr.Unauthorized("Session has ended")
	}

	return claims, nil
}

// # Account Management

/*
CreateAccount validates and stores a new account with a hashed password.

Returns:
  - *Account: The stored account
  - error: ValidationError (including a taken login), or storage failures
*/
func (service *Service) CreateAccount(context context.Context, login, password string, role sec.UserRole) (*Account, error) {
	login = strings.TrimSpace(login)

	validator := &validate.Validator{}
	validator.
		Required(FieldLogin, login).
		Between(FieldLogin, login, MinLoginLength, MaxLoginLength).
		Required(FieldPassword, password).
		Custom(FieldPassword, len(password) < MinPasswordLength, fmt.Sprintf("Minimum %d characters", MinPasswordLength)).
		Custom(FieldPassword, len(password) > MaxPasswordLength, fmt.Sprintf("Maximum %d bytes", MaxPasswordLength)).
		Custom(FieldRole, !role.Valid(), "Must be one of: admin, guest")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	account := &Account{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
		Role:         role,
	}
	if err := service.accounts.Create(context, account); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, validate.FieldFailure(FieldLogin, "Login is already taken")
		}
		return nil, err
	}

	service.log(context).InfoContext(context, "account_created",
		slog.String("user_id", account.ID),
		slog.String("role", string(role)),
	)
	return account, nil
}

// RoleOf returns the stored role of an account, or dberr.ErrNotFound.
func (service *Service) RoleOf(context context.Context, userID string) (sec.UserRole, error) {
	if !uuid.Valid(userID) {
		return "", dberr.ErrNotFound
	}

	account, err := service.accounts.FindByID(context, userID)
	if err != nil {
		return "", err
	}
	return account.Role, nil
}

// Profile returns the account behind an authenticated principal.
func (service *Service) Profile(context context.Context, userID string) (*Account, error) {
	if !uuid.Valid(userID) {
		return nil, apperr.NotFound("Account")
	}

	account, err := service.accounts.FindByID(context, userID)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFound("Account")
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (service *Service) log(context context.Context) *slog.Logger {
	return ctxutil.LoggerOr(context, service.logger)
}
