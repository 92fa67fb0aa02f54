// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds the security primitives shared by the auth service and
// the HTTP middleware: HS256 access tokens, bcrypt password hashes and the
// role model.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/dishhub/pkg/uuid"
)

// ErrEmptySecret is returned by NewTokenService for an empty signing key.
var ErrEmptySecret = errors.New("sec: empty token signing secret")

// AuthClaims is the access token payload and, once verified, the request
// principal.
//
// The jti (RegisteredClaims.ID) names the server side session; a token whose
// session is gone is rejected even before it expires. Role is informational
// only, decisions that depend on it re-read the account.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
	Login  string `json:"lgn"`
	Role   string `json:"rol"`
}

// TokenService signs and checks HS256 tokens for one issuer.
type TokenService struct {
	key    []byte
	issuer string
	parser *jwt.Parser
}

func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{
		key:    []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

// Issue signs a token valid for ttl and returns it with its claims, whose ID
// the caller stores as the session key.
func (service *TokenService) Issue(userID, login, role string, ttl time.Duration) (string, *AuthClaims, error) {
	now := time.Now()
	claims := &AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Issuer:    service.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Login:  login,
		Role:   role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.key)
	if err != nil {
		return "", nil, fmt.Errorf("sec: sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies signature, algorithm, issuer and expiry.
func (service *TokenService) Parse(token string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if _, err := service.parser.ParseWithClaims(token, claims, service.keyFunc); err != nil {
		return nil, fmt.Errorf("sec: parse token: %w", err)
	}
	if claims.UserID == "" || claims.ID == "" {
		return nil, errors.New("sec: token lacks subject or id")
	}
	return claims, nil
}

func (service *TokenService) keyFunc(*jwt.Token) (any, error) {
	return service.key, nil
}
