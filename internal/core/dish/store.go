// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import (
	"context"
)

// # Repository Interfaces

// Repository persists dish rows.
type Repository interface {
	Exists(context context.Context, id string) (bool, error)

	// FindByID returns the dish with its tag names, or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*Dish, error)

	// TitleTaken reports whether another dish (not excludeID) uses title.
	TitleTaken(context context.Context, title, excludeID string) (bool, error)

	Create(context context.Context, dish *Dish) error

	// Update applies the non-nil columns and returns the row without tags.
	// It returns dberr.ErrNotFound when the row is gone.
	Update(context context.Context, id string, patch RowPatch) (*Dish, error)

	// Delete reports whether the row existed.
	Delete(context context.Context, id string) (bool, error)

	// List returns matching dishes in creation order, each with all its tags.
	List(context context.Context, filter Filter) ([]*Dish, error)

	AssociationStore
}

// AssociationStore reads and edits the dish-tag join.
type AssociationStore interface {
	// CurrentTags maps the associated tag names of a dish to their ids.
	CurrentTags(context context.Context, dishID string) (map[string]string, error)

	// AddTags links tags to a dish, ignoring links that already exist.
	AddTags(context context.Context, dishID string, tagIDs []string) error

	// RemoveTags unlinks tags from a dish.
	RemoveTags(context context.Context, dishID string, tagIDs []string) error
}
