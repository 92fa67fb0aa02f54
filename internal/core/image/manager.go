// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/internal/platform/storage"
)

// Manager applies the image lifecycle on a [storage.ContentStore].
type Manager struct {
	store  storage.ContentStore
	logger *slog.Logger
}

// NewManager creates a Manager.
func NewManager(store storage.ContentStore, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

/*
Stage validates the upload and writes it under a generated name.

Returns:
  - string: the stored file name, to be written into the dish row
  - error: ValidationError for a bad upload, otherwise a wrapped store error
*/
func (manager *Manager) Stage(ctx context.Context, upload *Upload) (string, error) {
	if err := Validate(upload); err != nil {
		return "", err
	}

	filename := FileName(upload.Name)
	if err := manager.store.Save(ctx, filename, upload.Body, upload.Size); err != nil {
		return "", fmt.Errorf("image: stage %s: %w", filename, err)
	}

	manager.log(ctx).DebugContext(ctx, "image_staged", slog.String("file", filename))
	return filename, nil
}

// Commit removes previous once the dish row references next. Nothing happens
// when there is no previous file or the name did not change.
func (manager *Manager) Commit(ctx context.Context, dishID, next, previous string) {
	if previous == "" || previous == next {
		return
	}
	manager.remove(ctx, previous, slog.String("dish_id", dishID), slog.String("reason", "replaced"))
}

// Discard removes a staged file that no row ended up referencing.
func (manager *Manager) Discard(ctx context.Context, filename string) {
	if filename == "" {
		return
	}
	manager.remove(ctx, filename, slog.String("reason", "discarded"))
}

// CleanupOnDestroy removes the file of a dish being deleted. A file that is
// already gone is fine.
func (manager *Manager) CleanupOnDestroy(ctx context.Context, dishID, filename string) {
	if filename == "" {
		return
	}
	manager.remove(ctx, filename, slog.String("dish_id", dishID), slog.String("reason", "dish_deleted"))
}

func (manager *Manager) remove(ctx context.Context, filename string, attrs ...any) {
	logger := manager.log(ctx).With(attrs...)

	err := manager.store.Delete(ctx, filename)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "image_deleted", slog.String("file", filename))
	case errors.Is(err, storage.ErrObjectNotFound):
		logger.DebugContext(ctx, "image_already_gone", slog.String("file", filename))
	default:
		logger.WarnContext(ctx, "image_cleanup_failed",
			slog.String("file", filename),
			slog.Any("error", err),
		)
	}
}

// log prefers the request logger so cleanup lines carry the request id.
func (manager *Manager) log(ctx context.Context) *slog.Logger {
	return ctxutil.LoggerOr(ctx, manager.logger)
}
