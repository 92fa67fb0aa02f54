// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/taibuivan/dishhub/internal/core/tag"
	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/pkg/slice"
)

// TagResolver maps tag names to ids, creating the missing ones.
type TagResolver interface {
	ResolveOrCreate(context context.Context, names []string) (map[string]string, error)
}

// Reconciler makes the tag set of a dish equal to a requested list.
type Reconciler struct {
	links  AssociationStore
	tags   TagResolver
	logger *slog.Logger
}

// NewReconciler constructs a [Reconciler]. A nil logger discards output.
func NewReconciler(links AssociationStore, tags TagResolver, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{links: links, tags: tags, logger: logger}
}

/*
Reconcile replaces the tag set of a dish with the requested one.

Description: requested is the raw comma separated value. nil leaves the
associations untouched, "" removes them all. Only the difference is written:
names already linked are neither resolved nor re-inserted, so repeating the
same request changes nothing.

Returns:
  - []string: the sorted tag names now associated with the dish
  - error: tag resolution or store failure
*/
func (reconciler *Reconciler) Reconcile(context context.Context, dishID string, requested *string) ([]string, error) {
	current, err := reconciler.links.CurrentTags(context, dishID)
	if err != nil {
		return nil, err
	}

	if requested == nil {
		return slices.Sorted(maps.Keys(current)), nil
	}

	desired := tag.ParseList(*requested)
	linked := slices.Collect(maps.Keys(current))

	// ── 1. Unlink what is no longer requested ───────────────────────────
	stale := slice.Difference(linked, desired)
	if len(stale) > 0 {
		ids := slice.Map(stale, func(name string) string { return current[name] })
		if err := reconciler.links.RemoveTags(context, dishID, ids); err != nil {
			return nil, err
		}
	}

	// ── 2. Link what is new ─────────────────────────────────────────────
	missing := slice.Difference(desired, linked)
	if len(missing) > 0 {
		resolved, err := reconciler.tags.ResolveOrCreate(context, missing)
		if err != nil {
			return nil, err
		}

		ids := slice.Map(missing, func(name string) string { return resolved[name] })
		if err := reconciler.links.AddTags(context, dishID, ids); err != nil {
			return nil, err
		}
	}

	if len(stale) > 0 || len(missing) > 0 {
		ctxutil.LoggerOr(context, reconciler.logger).DebugContext(context, "dish_tags_reconciled",
			slog.String("dish_id", dishID),
			slog.Int("added", len(missing)),
			slog.Int("removed", len(stale)),
		)
	}

	return desired, nil
}
