// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements accounts, login sessions and token verification.

# Architecture

  - Accounts live in PostgreSQL (users.account) with bcrypt password hashes.
  - Each issued token has a session in Redis keyed by the token id, so logout
    revokes a token before it expires.
  - There is no self registration. Accounts are created from the CLI.
*/
package auth

import (
	"time"

	"github.com/taibuivan/dishhub/internal/platform/sec"
)

// # Domain Entities

// Account is a user allowed to sign in.
type Account struct {
	ID           string       `json:"id"`
	Login        string       `json:"login"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session is the server-side record of an issued access token.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// # Field Identifiers

const (
	FieldLogin    = "login"
	FieldPassword = "password"
	FieldRole     = "role"
)

// # Account Constraints

const (
	MinLoginLength    = 3
	MaxLoginLength    = 64
	MinPasswordLength = 8

	// bcrypt ignores input past 72 bytes.
	MaxPasswordLength = 72
)
