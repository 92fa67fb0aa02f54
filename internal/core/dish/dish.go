// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import (
	"time"

	"github.com/taibuivan/dishhub/internal/core/comment"
	"github.com/taibuivan/dishhub/internal/core/image"
	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/database/schema"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
	"github.com/taibuivan/dishhub/internal/platform/validate"
)

// # Domain Entities

// Dish is a catalog entry. Tags is always the flat list of associated tag
// names ordered by name, never the join rows.
type Dish struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Anons     string    `json:"anons"`
	Text      string    `json:"text"`
	Image     string    `json:"image"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Detail is a dish together with its comments, oldest first.
type Detail struct {
	*Dish
	Comments []*comment.Comment `json:"comments"`
}

// NewDish is the input of [Service.Create].
type NewDish struct {
	Title string
	Anons string
	Text  string
	Image *image.Upload

	// Tags is the raw comma separated list. nil means the field was omitted.
	Tags *string
}

// Patch is the input of [Service.Update]. A nil field keeps its stored value.
type Patch struct {
	Title *string
	Anons *string
	Text  *string
	Image *image.Upload

	// Tags replaces the whole tag set when non-nil; "" clears it.
	Tags *string
}

// Filter narrows [Service.List].
type Filter struct {
	// Tag keeps dishes with at least one tag whose name contains it
	// (case-sensitive substring). nil disables the filter.
	Tag *string
}

// RowPatch carries the column changes of an update once the image has been
// staged. nil columns are left as stored.
type RowPatch struct {
	Title *string
	Anons *string
	Text  *string
	Image *string
}

// # Field Identifiers

const (
	FieldTitle = "title"
	FieldAnons = "anons"
	FieldText  = "text"
	FieldTags  = "tags"
)

const msgTitleTaken = "dish.title already exists"

// # Validation

/*
ValidateNew checks a dish about to be created.

Description: Pure function over the input. The caller looks up whether the
title is already used and passes the answer in, so this can run before any
write and without a store.

Returns:
  - error: ValidationError carrying every failed field, or nil
*/
func ValidateNew(input NewDish, titleTaken bool) error {
	validator := &validate.Validator{}

	titleRules(validator, input.Title, titleTaken)
	anonsRules(validator, input.Anons)
	textRules(validator, input.Text)
	image.Rules(validator, input.Image)

	return validator.Err()
}

// ValidatePatch checks the supplied fields of an update only.
func ValidatePatch(patch Patch, titleTaken bool) error {
	validator := &validate.Validator{}

	if patch.Title != nil {
		titleRules(validator, *patch.Title, titleTaken)
	}
	if patch.Anons != nil {
		anonsRules(validator, *patch.Anons)
	}
	if patch.Text != nil {
		textRules(validator, *patch.Text)
	}
	if patch.Image != nil {
		image.Rules(validator, patch.Image)
	}

	return validator.Err()
}

// TitleTakenError is the error reported when a title collides, either on the
// pre-check or on the unique constraint.
func TitleTakenError() error {
	return validate.FieldFailure(FieldTitle, msgTitleTaken)
}

// isTitleCollision reports a unique violation of the dish title constraint.
// Other unique violations keep their CONFLICT mapping.
func isTitleCollision(err error) bool {
	return dberr.IsUniqueViolation(err) && dberr.ConstraintName(err) == schema.CatalogDish.TitleKey
}

func titleRules(validator *validate.Validator, title string, taken bool) {
	validator.
		Required(FieldTitle, title).
		MaxLen(FieldTitle, title, constants.MaxTitleLength).
		Custom(FieldTitle, taken, msgTitleTaken)
}

func anonsRules(validator *validate.Validator, anons string) {
	validator.
		Required(FieldAnons, anons).
		MaxLen(FieldAnons, anons, constants.MaxAnonsLength)
}

func textRules(validator *validate.Validator, text string) {
	validator.Required(FieldText, text)
}
