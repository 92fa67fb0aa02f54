// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishhub/internal/core/dish"
	"github.com/taibuivan/dishhub/internal/core/image"
	"github.com/taibuivan/dishhub/pkg/pointer"
	"github.com/taibuivan/dishhub/pkg/uuid"
)

// # Create

func TestService_Create(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "Pho", pointer.To(" Spicy , Soup,spicy,, "))

	assert.True(t, uuid.Valid(created.ID))
	assert.Equal(t, []string{"soup", "spicy"}, created.Tags)
	assert.True(t, strings.HasSuffix(created.Image, "-pho.jpg"))
	assert.True(t, f.fileExists(t, created.Image))

	stored, err := f.catalog.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Image, stored.Image)
	assert.Equal(t, []string{"soup", "spicy"}, stored.Tags)
}

func TestService_Create_WithoutTags(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "Pho", nil)
	assert.Equal(t, []string{}, created.Tags)
	assert.Empty(t, f.catalog.resolved)
}

/*
TestService_Create_Validation checks that field failures are reported together
and that nothing is written when validation fails.
*/
func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dish.NewDish)
		field   string
		message string
	}{
		{"missing_image", func(in *dish.NewDish) { in.Image = nil }, "image", "This field is required"},
		{"bad_extension", func(in *dish.NewDish) { in.Image = photo("pho.gif", 8) }, "image", "dish.image invalid file format"},
		{"too_large", func(in *dish.NewDish) { in.Image = &image.Upload{Name: "pho.png", Size: 2<<20 + 1} }, "image", "dish.image file size should not be greater than 2MB"},
		{"blank_title", func(in *dish.NewDish) { in.Title = "  " }, "title", "This field is required"},
		{"long_title", func(in *dish.NewDish) { in.Title = strings.Repeat("a", 256) }, "title", "Maximum 255 characters"},
		{"missing_anons", func(in *dish.NewDish) { in.Anons = "" }, "anons", "This field is required"},
		{"long_anons", func(in *dish.NewDish) { in.Anons = strings.Repeat("a", 1001) }, "anons", "Maximum 1000 characters"},
		{"missing_text", func(in *dish.NewDish) { in.Text = "" }, "text", "This field is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			input := newDish("Pho", pointer.To("soup"))
			tt.mutate(&input)

			_, err := f.service.Create(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", code(err))
			assert.Equal(t, tt.message, fieldMessage(err, tt.field))

			assert.Empty(t, f.catalog.dishes)
			assert.Empty(t, f.catalog.tags)
		})
	}
}

/*
TestService_Create_DuplicateTitle covers the pre-check and the constraint
backstop. Neither path may leave a file, a dish or a tag behind.
*/
func TestService_Create_DuplicateTitle(t *testing.T) {
	t.Run("Pre_Check", func(t *testing.T) {
		f := newFixture(t)
		first := f.create(t, "Pho", nil)

		_, err := f.service.Create(context.Background(), newDish("Pho", pointer.To("noodle")))
		assert.Equal(t, "VALIDATION_ERROR", code(err))
		assert.Equal(t, "dish.title already exists", fieldMessage(err, "title"))

		assert.Len(t, f.catalog.dishes, 1)
		assert.Empty(t, f.catalog.tags)
		assert.True(t, f.fileExists(t, first.Image))
	})

	t.Run("Constraint", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, "Pho", nil)
		f.catalog.hideTitles = true

		before := countFiles(t, f)
		_, err := f.service.Create(context.Background(), newDish("Pho", pointer.To("noodle")))
		assert.Equal(t, "dish.title already exists", fieldMessage(err, "title"))

		assert.Len(t, f.catalog.dishes, 1)
		assert.Empty(t, f.catalog.tags)
		assert.Equal(t, before, countFiles(t, f))
	})

	t.Run("Other_Constraint", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, "Pho", nil)
		f.catalog.hideTitles = true
		f.catalog.violated = "dish_slug_key"

		before := countFiles(t, f)
		_, err := f.service.Create(context.Background(), newDish("Pho", nil))
		assert.Equal(t, "CONFLICT", code(err))
		assert.Empty(t, fieldMessage(err, "title"))
		assert.Equal(t, before, countFiles(t, f))
	})
}

// # Update

func TestService_Update_Image(t *testing.T) {
	ctx := context.Background()

	t.Run("Replace", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, "Pho", nil)

		updated, err := f.service.Update(ctx, created.ID, dish.Patch{Image: photo("bun cha.PNG", 32)})
		require.NoError(t, err)

		assert.NotEqual(t, created.Image, updated.Image)
		assert.True(t, strings.HasSuffix(updated.Image, "-bun-cha.png"))
		assert.True(t, f.fileExists(t, updated.Image))
		assert.False(t, f.fileExists(t, created.Image))
	})

	t.Run("Retain", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, "Pho", nil)

		updated, err := f.service.Update(ctx, created.ID, dish.Patch{Anons: pointer.To("New summary")})
		require.NoError(t, err)

		assert.Equal(t, created.Image, updated.Image)
		assert.Equal(t, "New summary", updated.Anons)
		assert.Equal(t, created.Title, updated.Title)
		assert.True(t, f.fileExists(t, created.Image))
	})

	t.Run("Invalid_Keeps_Old", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, "Pho", nil)

		_, err := f.service.Update(ctx, created.ID, dish.Patch{Image: photo("pho.bmp", 8)})
		assert.Equal(t, "dish.image invalid file format", fieldMessage(err, "image"))
		assert.True(t, f.fileExists(t, created.Image))
		assert.Equal(t, 1, countFiles(t, f))
	})
}

/*
TestService_Update_Tags distinguishes an omitted tags field from an empty one.
*/
func TestService_Update_Tags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "Pho", pointer.To("soup,spicy"))

	omitted, err := f.service.Update(ctx, created.ID, dish.Patch{Text: pointer.To("Other text")})
	require.NoError(t, err)
	assert.Equal(t, []string{"soup", "spicy"}, omitted.Tags)

	replaced, err := f.service.Update(ctx, created.ID, dish.Patch{Tags: pointer.To("Spicy,Herbs")})
	require.NoError(t, err)
	assert.Equal(t, []string{"herbs", "spicy"}, replaced.Tags)

	cleared, err := f.service.Update(ctx, created.ID, dish.Patch{Tags: pointer.To("  ")})
	require.NoError(t, err)
	assert.Equal(t, []string{}, cleared.Tags)

	// Tags are never destroyed by dish operations.
	assert.Len(t, f.catalog.tags, 3)
}

func TestService_Update_Title(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pho := f.create(t, "Pho", nil)
	f.create(t, "Bun Cha", nil)

	t.Run("Same_Title", func(t *testing.T) {
		updated, err := f.service.Update(ctx, pho.ID, dish.Patch{Title: pointer.To("Pho")})
		require.NoError(t, err)
		assert.Equal(t, "Pho", updated.Title)
	})

	t.Run("Taken", func(t *testing.T) {
		_, err := f.service.Update(ctx, pho.ID, dish.Patch{Title: pointer.To("Bun Cha")})
		assert.Equal(t, "dish.title already exists", fieldMessage(err, "title"))
	})

	t.Run("Taken_Constraint_Discards_Image", func(t *testing.T) {
		f.catalog.hideTitles = true
		defer func() { f.catalog.hideTitles = false }()

		before := countFiles(t, f)
		_, err := f.service.Update(ctx, pho.ID, dish.Patch{
			Title: pointer.To("Bun Cha"),
			Image: photo("new.png", 16),
		})
		assert.Equal(t, "dish.title already exists", fieldMessage(err, "title"))
		assert.Equal(t, before, countFiles(t, f))
	})
}

func TestService_Update_NotFound(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"not-a-uuid", uuid.New()} {
		_, err := f.service.Update(context.Background(), id, dish.Patch{Text: pointer.To("x")})
		assert.Equal(t, "NOT_FOUND", code(err), id)
	}
}

// # Reconciliation

/*
TestReconciler_Idempotent repeats the same tag request and expects no second
write and no second resolution.
*/
func TestReconciler_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "Pho", pointer.To("soup,spicy"))

	addCalls, removeCalls, resolved := f.catalog.addCalls, f.catalog.removeCalls, len(f.catalog.resolved)

	reconciler := dish.NewReconciler(f.catalog, f.catalog, nil)
	names, err := reconciler.Reconcile(ctx, created.ID, pointer.To("Spicy, soup"))
	require.NoError(t, err)

	assert.Equal(t, []string{"soup", "spicy"}, names)
	assert.Equal(t, addCalls, f.catalog.addCalls)
	assert.Equal(t, removeCalls, f.catalog.removeCalls)
	assert.Len(t, f.catalog.resolved, resolved)
}

func TestReconciler_ResolvesOnlyNewNames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "Pho", pointer.To("soup,spicy"))

	reconciler := dish.NewReconciler(f.catalog, f.catalog, nil)
	names, err := reconciler.Reconcile(ctx, created.ID, pointer.To("spicy,herbs"))
	require.NoError(t, err)

	assert.Equal(t, []string{"herbs", "spicy"}, names)
	assert.Equal(t, []string{"herbs"}, f.catalog.resolved[len(f.catalog.resolved)-1])
}

func TestReconciler_NilLogger(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "Pho", pointer.To("soup"))

	reconciler := dish.NewReconciler(f.catalog, f.catalog, nil)

	var names []string
	require.NotPanics(t, func() {
		var err error
		names, err = reconciler.Reconcile(ctx, created.ID, pointer.To("herbs"))
		require.NoError(t, err)
	})
	assert.Equal(t, []string{"herbs"}, names)
}

// # Delete

/*
TestService_Delete removes comments, the image file and the links, and keeps
the tags.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doomed := f.create(t, "Pho", pointer.To("soup"))
	kept := f.create(t, "Bun Cha", pointer.To("soup"))
	f.comments.add(doomed.ID, "great")
	f.comments.add(doomed.ID, "again")
	f.comments.add(kept.ID, "fine")

	require.NoError(t, f.service.Delete(ctx, doomed.ID))

	_, err := f.service.Get(ctx, doomed.ID)
	assert.Equal(t, "NOT_FOUND", code(err))
	assert.Empty(t, f.comments.byDish[doomed.ID])
	assert.Len(t, f.comments.byDish[kept.ID], 1)
	assert.False(t, f.fileExists(t, doomed.Image))
	assert.True(t, f.fileExists(t, kept.Image))
	assert.Contains(t, f.catalog.tags, "soup")

	assert.Equal(t, "NOT_FOUND", code(f.service.Delete(ctx, doomed.ID)))
}

func TestService_Delete_PurgeFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "Pho", pointer.To("soup"))
	f.comments.purgeErr = errPurge

	err := f.service.Delete(ctx, created.ID)
	assert.Equal(t, "INTERNAL_ERROR", code(err))
	assert.ErrorIs(t, err, errPurge)

	// Nothing else moved.
	detail, err := f.service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"soup"}, detail.Tags)
	assert.True(t, f.fileExists(t, created.Image))
}

// # Read

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, "Pho", pointer.To("soup"))
	f.comments.add(created.ID, "first")
	f.comments.add(created.ID, "second")

	detail, err := f.service.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, detail.ID)
	assert.Equal(t, []string{"soup"}, detail.Tags)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "first", detail.Comments[0].Body)
}

/*
TestService_List filters by tag substring without duplicating dishes that
match through several tags.
*/
func TestService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	hot := f.create(t, "Hot Pot", pointer.To("spicy,spicier,soup"))
	f.create(t, "Salad", pointer.To("fresh"))
	curry := f.create(t, "Curry", pointer.To("spicy"))

	tests := []struct {
		name   string
		filter dish.Filter
		titles []string
	}{
		{"all", dish.Filter{}, []string{"Hot Pot", "Salad", "Curry"}},
		{"substring", dish.Filter{Tag: pointer.To("spic")}, []string{"Hot Pot", "Curry"}},
		{"case_sensitive", dish.Filter{Tag: pointer.To("SPIC")}, []string{}},
		{"no_match", dish.Filter{Tag: pointer.To("umami")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dishes, err := f.service.List(ctx, tt.filter)
			require.NoError(t, err)

			titles := make([]string, 0, len(dishes))
			for _, d := range dishes {
				titles = append(titles, d.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}

	dishes, err := f.service.List(ctx, dish.Filter{Tag: pointer.To("spic")})
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, hot.ID, dishes[0].ID)
	assert.Equal(t, []string{"soup", "spicier", "spicy"}, dishes[0].Tags)
	assert.Equal(t, curry.ID, dishes[1].ID)
}

func countFiles(t *testing.T, f fixture) int {
	t.Helper()
	entries, err := os.ReadDir(f.files.Root())
	require.NoError(t, err)
	return len(entries)
}
