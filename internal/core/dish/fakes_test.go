// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishhub/internal/core/comment"
	"github.com/taibuivan/dishhub/internal/core/dish"
	"github.com/taibuivan/dishhub/internal/core/image"
	"github.com/taibuivan/dishhub/internal/core/tag"
	"github.com/taibuivan/dishhub/internal/platform/apperr"
	"github.com/taibuivan/dishhub/internal/platform/database/schema"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
	"github.com/taibuivan/dishhub/internal/platform/storage"
	"github.com/taibuivan/dishhub/pkg/uuid"
)

// # Catalog Fake

// memoryCatalog stores dishes, tags and links in maps. It implements both
// dish.Repository and dish.TagResolver so names and links stay consistent.
type memoryCatalog struct {
	mu     sync.Mutex
	dishes map[string]*dish.Dish
	tags   map[string]string // name -> id
	links  map[string]map[string]struct{}
	clock  time.Time

	// hideTitles makes TitleTaken answer false, as if a concurrent request
	// inserted the same title right after the pre-check.
	hideTitles bool

	// violated overrides the constraint named by a unique violation.
	violated string

	addCalls    int
	removeCalls int
	resolved    [][]string
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		dishes: make(map[string]*dish.Dish),
		tags:   make(map[string]string),
		links:  make(map[string]map[string]struct{}),
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (catalog *memoryCatalog) uniqueViolation(action string) error {
	constraint := schema.CatalogDish.TitleKey
	if catalog.violated != "" {
		constraint = catalog.violated
	}
	return dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}, action)
}

func (catalog *memoryCatalog) tagNames(dishID string) []string {
	names := make([]string, 0)
	for name, id := range catalog.tags {
		if _, ok := catalog.links[dishID][id]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (catalog *memoryCatalog) snapshot(stored *dish.Dish) *dish.Dish {
	copied := *stored
	copied.Tags = catalog.tagNames(stored.ID)
	return &copied
}

func (catalog *memoryCatalog) Exists(_ context.Context, id string) (bool, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	_, ok := catalog.dishes[id]
	return ok, nil
}

func (catalog *memoryCatalog) FindByID(_ context.Context, id string) (*dish.Dish, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	stored, ok := catalog.dishes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return catalog.snapshot(stored), nil
}

func (catalog *memoryCatalog) TitleTaken(_ context.Context, title, excludeID string) (bool, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	if catalog.hideTitles {
		return false, nil
	}
	for _, stored := range catalog.dishes {
		if stored.Title == title && stored.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (catalog *memoryCatalog) titleUsed(title, excludeID string) bool {
	for _, stored := range catalog.dishes {
		if stored.Title == title && stored.ID != excludeID {
			return true
		}
	}
	return false
}

func (catalog *memoryCatalog) Create(_ context.Context, d *dish.Dish) error {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	if catalog.titleUsed(d.Title, "") {
		return catalog.uniqueViolation("create_dish")
	}

	catalog.clock = catalog.clock.Add(time.Second)
	d.CreatedAt, d.UpdatedAt = catalog.clock, catalog.clock

	stored := *d
	catalog.dishes[d.ID] = &stored
	return nil
}

func (catalog *memoryCatalog) Update(_ context.Context, id string, patch dish.RowPatch) (*dish.Dish, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	stored, ok := catalog.dishes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if patch.Title != nil && catalog.titleUsed(*patch.Title, id) {
		return nil, catalog.uniqueViolation("update_dish")
	}

	apply := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}
	apply(&stored.Title, patch.Title)
	apply(&stored.Anons, patch.Anons)
	apply(&stored.Text, patch.Text)
	apply(&stored.Image, patch.Image)
	stored.UpdatedAt = stored.UpdatedAt.Add(time.Minute)

	copied := *stored
	return &copied, nil
}

func (catalog *memoryCatalog) Delete(_ context.Context, id string) (bool, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	if _, ok := catalog.dishes[id]; !ok {
		return false, nil
	}
	delete(catalog.dishes, id)
	delete(catalog.links, id)
	return true, nil
}

func (catalog *memoryCatalog) List(_ context.Context, filter dish.Filter) ([]*dish.Dish, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	result := make([]*dish.Dish, 0)
	for _, stored := range catalog.dishes {
		item := catalog.snapshot(stored)
		if filter.Tag != nil && !slices.ContainsFunc(item.Tags, func(name string) bool {
			return strings.Contains(name, *filter.Tag)
		}) {
			continue
		}
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (catalog *memoryCatalog) CurrentTags(_ context.Context, dishID string) (map[string]string, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	current := make(map[string]string)
	for name, id := range catalog.tags {
		if _, ok := catalog.links[dishID][id]; ok {
			current[name] = id
		}
	}
	return current, nil
}

func (catalog *memoryCatalog) AddTags(_ context.Context, dishID string, tagIDs []string) error {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	catalog.addCalls++
	if catalog.links[dishID] == nil {
		catalog.links[dishID] = make(map[string]struct{})
	}
	for _, id := range tagIDs {
		catalog.links[dishID][id] = struct{}{}
	}
	return nil
}

func (catalog *memoryCatalog) RemoveTags(_ context.Context, dishID string, tagIDs []string) error {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	catalog.removeCalls++
	for _, id := range tagIDs {
		delete(catalog.links[dishID], id)
	}
	return nil
}

func (catalog *memoryCatalog) ResolveOrCreate(_ context.Context, names []string) (map[string]string, error) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	catalog.resolved = append(catalog.resolved, slices.Clone(names))

	result := make(map[string]string, len(names))
	for _, name := range names {
		name = tag.Normalize(name)
		if name == "" {
			continue
		}
		id, ok := catalog.tags[name]
		if !ok {
			id = uuid.New()
			catalog.tags[name] = id
		}
		result[name] = id
	}
	return result, nil
}

// # Comment Fake

type commentBook struct {
	mu       sync.Mutex
	byDish   map[string][]*comment.Comment
	purgeErr error
}

func newCommentBook() *commentBook {
	return &commentBook{byDish: make(map[string][]*comment.Comment)}
}

func (book *commentBook) add(dishID, body string) {
	book.mu.Lock()
	defer book.mu.Unlock()
	book.byDish[dishID] = append(book.byDish[dishID], &comment.Comment{
		ID: uuid.New(), DishID: dishID, Author: "Jane", Body: body,
	})
}

func (book *commentBook) ListByDish(_ context.Context, dishID string) ([]*comment.Comment, error) {
	book.mu.Lock()
	defer book.mu.Unlock()
	return append([]*comment.Comment{}, book.byDish[dishID]...), nil
}

func (book *commentBook) PurgeByDish(_ context.Context, dishID string) (int64, error) {
	book.mu.Lock()
	defer book.mu.Unlock()

	if book.purgeErr != nil {
		return 0, book.purgeErr
	}
	n := int64(len(book.byDish[dishID]))
	delete(book.byDish, dishID)
	return n, nil
}

// # Fixture

type fixture struct {
	service  *dish.Service
	catalog  *memoryCatalog
	comments *commentBook
	files    *storage.Local
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	catalog := newMemoryCatalog()
	comments := newCommentBook()
	service := dish.NewService(catalog, catalog, comments, image.NewManager(files, logger), logger)

	return fixture{service: service, catalog: catalog, comments: comments, files: files}
}

func (f fixture) fileExists(t *testing.T, name string) bool {
	t.Helper()
	exists, err := f.files.Exists(context.Background(), name)
	require.NoError(t, err)
	return exists
}

func (f fixture) create(t *testing.T, title string, tags *string) *dish.Dish {
	t.Helper()
	created, err := f.service.Create(context.Background(), newDish(title, tags))
	require.NoError(t, err)
	return created
}

func photo(name string, size int) *image.Upload {
	return &image.Upload{Name: name, Size: int64(size), Body: bytes.NewReader(bytes.Repeat([]byte{0xff}, size))}
}

func newDish(title string, tags *string) dish.NewDish {
	return dish.NewDish{
		Title: title,
		Anons: "Short summary",
		Text:  "Long recipe text",
		Image: photo("pho.jpg", 64),
		Tags:  tags,
	}
}

func code(err error) string {
	if ae := apperr.As(err); ae != nil {
		return ae.Code
	}
	return ""
}

func fieldMessage(err error, field string) string {
	ae := apperr.As(err)
	if ae == nil {
		return ""
	}
	for _, detail := range ae.Details {
		if detail.Field == field {
			return detail.Message
		}
	}
	return ""
}

var errPurge = errors.New("comment store down")
