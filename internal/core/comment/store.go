// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/dishhub/internal/platform/sec"
)

// Repository persists comments. Every method is scoped to a dish.
type Repository interface {
	Create(context context.Context, comment *Comment) error

	// FindByID returns dberr.ErrNotFound unless the comment belongs to dishID.
	FindByID(context context.Context, dishID, commentID string) (*Comment, error)

	// ListByDish returns comments ordered by creation time.
	ListByDish(context context.Context, dishID string) ([]*Comment, error)

	// Delete reports whether a comment of dishID was removed.
	Delete(context context.Context, dishID, commentID string) (bool, error)

	// DeleteByDish removes every comment of dishID and returns how many.
	DeleteByDish(context context.Context, dishID string) (int64, error)
}

// DishLookup tells whether a dish exists.
type DishLookup interface {
	Exists(context context.Context, dishID string) (bool, error)
}

// RoleLookup resolves the current role of an account. It returns
// dberr.ErrNotFound when the account does not exist.
type RoleLookup interface {
	RoleOf(context context.Context, userID string) (sec.UserRole, error)
}
