// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/dishhub/internal/platform/apperr"
	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
	"github.com/taibuivan/dishhub/pkg/uuid"
)

// # Service Layer

// Service manages comments as subordinates of dishes.
type Service struct {
	repo   Repository
	dishes DishLookup
	roles  RoleLookup
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, dishes DishLookup, roles RoleLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		dishes: dishes,
		roles:  roles,
		logger: logger,
	}
}

// # Comment Management

/*
Add stores a comment on a dish on behalf of the principal.

Description: The principal's role is read from the account store rather than
from the token, so a demoted admin stops getting the "admin" prefix at once.
A principal with no account is an internal inconsistency: the gate let in a
user the store does not know.

Parameters:
  - context: context.Context
  - dishID: string
  - principalID: string (authenticated account id)
  - author: string (display name supplied by the client)
  - body: string (3 to 255 characters)

Returns:
  - *Comment: The stored comment
  - error: NotFound (dish), ValidationError, InternalError
*/
func (service *Service) Add(context context.Context, dishID, principalID, author, body string) (*Comment, error) {

	// ── 1. Parent dish ──────────────────────────────────────────────────
	if err := service.requireDish(context, dishID); err != nil {
		return nil, err
	}

	// ── 2. Principal role ───────────────────────────────────────────────
	role, err := service.roles.RoleOf(context, principalID)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.Internal(fmt.Errorf("comment: principal %q has no account", principalID))
	}
	if err != nil {
		return nil, err
	}

	// ── 3. Field rules on the stored author ─────────────────────────────
	author = Annotate(role, author)
	if err := ValidateBody(author, body); err != nil {
		return nil, err
	}

	// ── 4. Persist ──────────────────────────────────────────────────────
	comment := &Comment{
		ID:     uuid.New(),
		DishID: dishID,
		Author: author,
		Body:   body,
	}
	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "comment_created",
		slog.String("dish_id", dishID),
		slog.String("comment_id", comment.ID),
	)

	return comment, nil
}

// Get returns one comment of a dish.
func (service *Service) Get(context context.Context, dishID, commentID string) (*Comment, error) {
	if err := service.requireDish(context, dishID); err != nil {
		return nil, err
	}
	if !uuid.Valid(commentID) {
		return nil, apperr.NotFound("Comment")
	}

	comment, err := service.repo.FindByID(context, dishID, commentID)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFound("Comment")
	}
	return comment, err
}

// ListByDish returns the comments of a dish, oldest first.
func (service *Service) ListByDish(context context.Context, dishID string) ([]*Comment, error) {
	if err := service.requireDish(context, dishID); err != nil {
		return nil, err
	}
	return service.repo.ListByDish(context, dishID)
}

// Remove deletes one comment of a dish.
func (service *Service) Remove(context context.Context, dishID, commentID string) error {
	if err := service.requireDish(context, dishID); err != nil {
		return err
	}
	if !uuid.Valid(commentID) {
		return apperr.NotFound("Comment")
	}

	removed, err := service.repo.Delete(context, dishID, commentID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("Comment")
	}

	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "comment_deleted",
		slog.String("dish_id", dishID),
		slog.String("comment_id", commentID),
	)
	return nil
}

// PurgeByDish removes every comment of a dish. The dish itself is not
// checked; this is the first step of deleting it.
func (service *Service) PurgeByDish(context context.Context, dishID string) (int64, error) {
	return service.repo.DeleteByDish(context, dishID)
}

// requireDish maps an unknown or malformed dish id to NotFound.
func (service *Service) requireDish(context context.Context, dishID string) error {
	if !uuid.Valid(dishID) {
		return apperr.NotFound("Dish")
	}

	exists, err := service.dishes.Exists(context, dishID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Dish")
	}
	return nil
}
