// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/dishhub/internal/core/comment"
	"github.com/taibuivan/dishhub/internal/core/image"
	"github.com/taibuivan/dishhub/internal/platform/apperr"
	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
	"github.com/taibuivan/dishhub/pkg/pointer"
	"github.com/taibuivan/dishhub/pkg/uuid"
)

// # Collaborators

// Comments is the part of the comment service a dish needs.
type Comments interface {
	ListByDish(context context.Context, dishID string) ([]*comment.Comment, error)
	PurgeByDish(context context.Context, dishID string) (int64, error)
}

// Images is the image lifecycle a dish drives.
type Images interface {
	Stage(context context.Context, upload *image.Upload) (string, error)
	Commit(context context.Context, dishID, next, previous string)
	Discard(context context.Context, filename string)
	CleanupOnDestroy(context context.Context, dishID, filename string)
}

// # Service Layer

// Service orchestrates a dish with its image, tags and comments. There are no
// persistence hooks: every side effect is an explicit step below.
type Service struct {
	repo       Repository
	reconciler *Reconciler
	comments   Comments
	images     Images
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, tags TagResolver, comments Comments, images Images, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		reconciler: NewReconciler(repo, tags, logger),
		comments:   comments,
		images:     images,
		logger:     logger,
	}
}

// # Dish Management

/*
Create validates and stores a new dish.

Description: All fields are checked, including the title pre-check, before
anything is written. The image is staged next and the row inserted; if the
insert fails the staged file is discarded. Tags are reconciled last.

Parameters:
  - context: context.Context
  - input: NewDish

Returns:
  - *Dish: The created dish with its tag names
  - error: ValidationError, or a store failure
*/
func (service *Service) Create(context context.Context, input NewDish) (*Dish, error) {

	// ── 1. Validate ─────────────────────────────────────────────────────
	taken, err := service.titleTaken(context, &input.Title, "")
	if err != nil {
		return nil, err
	}
	if err := ValidateNew(input, taken); err != nil {
		return nil, err
	}

	// ── 2. Stage image ──────────────────────────────────────────────────
	filename, err := service.images.Stage(context, input.Image)
	if err != nil {
		return nil, err
	}

	// ── 3. Insert row ───────────────────────────────────────────────────
	dish := &Dish{
		ID:    uuid.New(),
		Title: input.Title,
		Anons: input.Anons,
		Text:  input.Text,
		Image: filename,
	}
	if err := service.repo.Create(context, dish); err != nil {
		service.images.Discard(context, filename)
		if isTitleCollision(err) {
			return nil, TitleTakenError()
		}
		return nil, err
	}

	// ── 4. Tags ─────────────────────────────────────────────────────────
	tags, err := service.reconciler.Reconcile(context, dish.ID, input.Tags)
	if err != nil {
		return nil, err
	}
	dish.Tags = orEmpty(tags)

	service.log(context).InfoContext(context, "dish_created",
		slog.String("dish_id", dish.ID),
		slog.Int("tags", len(dish.Tags)),
	)

	return dish, nil
}

/*
Update applies a partial change to a dish.

Description: Only supplied fields are validated and written. A new image is
staged before the row update and the previous file removed after it, so the
row never points at a missing file. Tags are replaced only when supplied.

Returns:
  - *Dish: The updated dish with its tag names
  - error: NotFound, ValidationError, or a store failure
*/
func (service *Service) Update(context context.Context, id string, patch Patch) (*Dish, error) {

	// ── 1. Load ─────────────────────────────────────────────────────────
	existing, err := service.find(context, id)
	if err != nil {
		return nil, err
	}

	// ── 2. Validate supplied fields ─────────────────────────────────────
	taken, err := service.titleTaken(context, patch.Title, id)
	if err != nil {
		return nil, err
	}
	if err := ValidatePatch(patch, taken); err != nil {
		return nil, err
	}

	// ── 3. Stage image ──────────────────────────────────────────────────
	row := RowPatch{Title: patch.Title, Anons: patch.Anons, Text: patch.Text}

	staged := ""
	if patch.Image != nil {
		staged, err = service.images.Stage(context, patch.Image)
		if err != nil {
			return nil, err
		}
		row.Image = &staged
	}

	// ── 4. Write row ────────────────────────────────────────────────────
	updated, err := service.repo.Update(context, id, row)
	if err != nil {
		service.images.Discard(context, staged)
		switch {
		case isTitleCollision(err):
			return nil, TitleTakenError()
		case errors.Is(err, dberr.ErrNotFound):
			return nil, apperr.NotFound("Dish")
		}
		return nil, err
	}

	// ── 5. Drop the replaced image ──────────────────────────────────────
	if staged != "" {
		service.images.Commit(context, id, staged, existing.Image)
	}

	// ── 6. Tags ─────────────────────────────────────────────────────────
	tags, err := service.reconciler.Reconcile(context, id, patch.Tags)
	if err != nil {
		return nil, err
	}
	updated.Tags = orEmpty(tags)

	service.log(context).InfoContext(context, "dish_updated",
		slog.String("dish_id", id),
		slog.Bool("image_replaced", staged != ""),
		slog.Bool("tags_replaced", patch.Tags != nil),
	)

	return updated, nil
}

/*
Delete removes a dish and everything that hangs off it.

Description: Comments go first; if that fails nothing else is touched. The
image file is removed best-effort, the tag links are cleared and the row is
deleted last. Tags themselves stay in the registry. Once comments are gone
there is no rollback: a later failure is reported as InternalError.

Returns:
  - error: NotFound, or InternalError
*/
func (service *Service) Delete(context context.Context, id string) error {
	existing, err := service.find(context, id)
	if err != nil {
		return err
	}

	// ── 1. Comments ─────────────────────────────────────────────────────
	purged, err := service.comments.PurgeByDish(context, id)
	if err != nil {
		return apperr.InternalMsg("Failed to delete dish comments", err)
	}

	// ── 2. Image ────────────────────────────────────────────────────────
	service.images.CleanupOnDestroy(context, id, existing.Image)

	// ── 3. Tag links ────────────────────────────────────────────────────
	if _, err := service.reconciler.Reconcile(context, id, pointer.To("")); err != nil {
		return apperr.InternalMsg("Failed to delete dish tags", err)
	}

	// ── 4. Row ──────────────────────────────────────────────────────────
	removed, err := service.repo.Delete(context, id)
	if err != nil {
		return apperr.InternalMsg("Failed to delete dish", err)
	}
	if !removed {
		return apperr.NotFound("Dish")
	}

	service.log(context).InfoContext(context, "dish_deleted",
		slog.String("dish_id", id),
		slog.Int64("comments", purged),
	)
	return nil
}

// Get returns a dish with its tags and comments.
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	dish, err := service.find(context, id)
	if err != nil {
		return nil, err
	}

	comments, err := service.comments.ListByDish(context, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Dish: dish, Comments: comments}, nil
}

// List returns every dish, or the ones carrying a tag that contains filter.Tag.
func (service *Service) List(context context.Context, filter Filter) ([]*Dish, error) {
	return service.repo.List(context, filter)
}

// Exists reports whether a dish with id is stored. Malformed ids do not exist.
func (service *Service) Exists(context context.Context, id string) (bool, error) {
	if !uuid.Valid(id) {
		return false, nil
	}
	return service.repo.Exists(context, id)
}

// # Helpers

func (service *Service) find(context context.Context, id string) (*Dish, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Dish")
	}

	dish, err := service.repo.FindByID(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFound("Dish")
	}
	return dish, err
}

// titleTaken runs the uniqueness pre-check only for a supplied, non-blank title.
func (service *Service) titleTaken(context context.Context, title *string, excludeID string) (bool, error) {
	if title == nil || *title == "" {
		return false, nil
	}
	return service.repo.TitleTaken(context, *title, excludeID)
}

func (service *Service) log(context context.Context) *slog.Logger {
	return ctxutil.LoggerOr(context, service.logger)
}

func orEmpty(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
