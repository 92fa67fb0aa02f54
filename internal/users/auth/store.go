// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Data Access Contracts

// AccountRepository defines the data access contract for accounts.
type AccountRepository interface {
	// FindByLogin returns dberr.ErrNotFound for an unknown login.
	FindByLogin(context context.Context, login string) (*Account, error)

	// FindByID returns dberr.ErrNotFound for an unknown id.
	FindByID(context context.Context, id string) (*Account, error)

	Create(context context.Context, account *Account) error
}

// SessionRepository stores live sessions with a time to live.
type SessionRepository interface {
	Save(context context.Context, session *Session, ttl time.Duration) error

	// Exists reports whether the session is still alive.
	Exists(context context.Context, sessionID string) (bool, error)

	// Delete is idempotent.
	Delete(context context.Context, sessionID string) error
}
