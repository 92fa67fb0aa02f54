// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"strings"
	"time"

	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/sec"
	"github.com/taibuivan/dishhub/internal/platform/validate"
)

// # Domain Entities

// Comment is a note left on one dish. It cannot exist without its dish and
// every lookup is scoped by the dish id.
type Comment struct {
	ID        string    `json:"id"`
	DishID    string    `json:"dish_id"`
	Author    string    `json:"author"`
	Body      string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Request field names, used in validation details.
const (
	FieldAuthor  = "author"
	FieldComment = "comment"
)

// # Validation

// ValidateBody checks the author as it will be stored (after [Annotate]) and
// the body of a new comment. An admin may leave the author blank.
func ValidateBody(author, body string) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldAuthor, author).
		MaxLen(FieldAuthor, author, constants.MaxAuthorLength)

	validator.Between(FieldComment, body, constants.MinCommentLength, constants.MaxCommentLength)

	return validator.Err()
}

// Annotate returns the author name to store for a principal of the given
// role. Admin comments are prefixed with "admin".
func Annotate(role sec.UserRole, author string) string {
	if role.IsAdmin() {
		return strings.TrimSpace("admin " + author)
	}
	return author
}
