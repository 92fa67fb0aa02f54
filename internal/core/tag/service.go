package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
	"github.com/taibuivan/dishhub/pkg/uuid"
)

// Registry maps tag names to tag identities, creating tags on first use.
// It has no delete path.
type Registry struct {
	repo   Repository
	logger *slog.Logger
}

func NewRegistry(repo Repository, logger *slog.Logger) *Registry {
	return &Registry{
		repo:   repo,
		logger: logger,
	}
}

/*
ResolveOrCreate returns the id of every name, creating missing tags.

Names are normalized first; empty names are ignored and an empty input yields
an empty map. Distinct names resolve concurrently. A concurrent request that
creates the same name first is not an error: the registry re-reads the row it
inserted.

Returns:
  - map[string]string: normalized name to tag id
  - error: the first store failure, if any
*/
func (registry *Registry) ResolveOrCreate(ctx context.Context, names []string) (map[string]string, error) {
	result := make(map[string]string, len(names))

	pending := make(map[string]struct{}, len(names))
	for _, name := range names {
		if normalized := Normalize(name); normalized != "" {
			pending[normalized] = struct{}{}
		}
	}
	if len(pending) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(constants.TagResolveConcurrency)

	for name := range pending {
		group.Go(func() error {
			id, err := registry.resolveOne(groupCtx, name)
			if err != nil {
				return fmt.Errorf("tag %q: %w", name, err)
			}

			mu.Lock()
			result[name] = id
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (registry *Registry) resolveOne(ctx context.Context, name string) (string, error) {

	// ── 1. Existing tag ─────────────────────────────────────────────────
	existing, err := registry.repo.FindByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return "", err
	}

	// ── 2. Create ───────────────────────────────────────────────────────
	candidate := &Tag{ID: uuid.New(), Name: name}
	created, err := registry.repo.Create(ctx, candidate)
	if err != nil && !dberr.IsUniqueViolation(err) {
		return "", err
	}
	if created {
		ctxutil.LoggerOr(ctx, registry.logger).DebugContext(ctx, "tag_created", slog.String("name", name))
		return candidate.ID, nil
	}

	// ── 3. Lost the race, read the winner ───────────────────────────────
	existing, err = registry.repo.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	return existing.ID, nil
}

func (registry *Registry) List(context context.Context) ([]*Tag, error) {
	return registry.repo.List(context)
}
