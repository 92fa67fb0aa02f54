// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package image owns the link between a dish's image field and the file on the
content store.

Lifecycle of a file:

  - Validate: extension allow-list and the 2 MiB cap, checked before any write.
  - Stage: the upload is written under a freshly generated name.
  - Commit: once the dish row references the new name, the previous file goes.
  - Discard: a staged file whose row write failed is removed again.
  - CleanupOnDestroy: the file of a deleted dish is removed.

Deletes are best-effort. A failed delete is logged and never reported as a
failure of the dish operation that triggered it.
*/
package image

import (
	"io"
	"path"
	"strings"

	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/validate"
	"github.com/taibuivan/dishhub/pkg/slug"
	"github.com/taibuivan/dishhub/pkg/uuid"
)

// Field is the request field carrying the image.
const Field = "image"

// AllowedExtensions lists accepted file extensions (matched case-insensitively).
var AllowedExtensions = []string{".png", ".jpg", ".jpeg"}

const (
	msgInvalidFormat = "dish.image invalid file format"
	msgTooLarge      = "dish.image file size should not be greater than 2MB"
)

// Upload is an image received from a client.
type Upload struct {
	// Name is the client-side file name; only its extension and base are used.
	Name string
	// Size is the declared byte size.
	Size int64
	// Body streams the file content.
	Body io.Reader
}

// Rules adds the image constraints to v. A nil upload fails the required rule.
func Rules(v *validate.Validator, upload *Upload) *validate.Validator {
	if upload == nil {
		return v.Custom(Field, true, "This field is required")
	}

	return v.
		Extension(Field, upload.Name, msgInvalidFormat, AllowedExtensions...).
		MaxBytes(Field, upload.Size, constants.MaxImageSize, msgTooLarge)
}

// Validate checks an upload on its own.
func Validate(upload *Upload) error {
	return Rules(&validate.Validator{}, upload).Err()
}

// FileName derives a unique store name from the client file name:
// "<uuidv7>-<slug of base><lower-case ext>". The slug part is omitted when
// nothing readable is left of the base name.
func FileName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	base := slug.From(strings.TrimSuffix(path.Base(original), path.Ext(original)))

	if base == "" {
		return uuid.New() + ext
	}
	return uuid.New() + "-" + base + ext
}
