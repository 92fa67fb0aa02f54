// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field rule failures into one VALIDATION_ERROR.
//
// # Architecture
//
// Rules run in the service layer (and in the free-standing dish, image and
// comment validators) before any store write. Handlers only check that a
// body could be decoded.
//
// # Semantics
//
// The result is a field → message mapping: once a field has failed, later
// rules on the same field are skipped, so "title" reports "This field is
// required" rather than a length message as well.
package validate

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/dishhub/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

const msgRequired = "This field is required"

// Validator accumulates failures. It is not safe for concurrent use; build
// one per operation.
type Validator struct {
	errs   []apperr.FieldError
	failed map[string]bool
}

// Required fails on an empty or whitespace-only value.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", msgRequired)
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// Between checks the rune count against [min, max].
func (v *Validator) Between(field, value string, min, max int) *Validator {
	n := utf8.RuneCountInString(value)
	return v.Custom(field, n < min || n > max, fmt.Sprintf("Must be between %d and %d characters", min, max))
}

// Extension fails with message unless the file name ends in one of allowed
// (leading dot included), compared case-insensitively.
func (v *Validator) Extension(field, filename, message string, allowed ...string) *Validator {
	ext := strings.ToLower(path.Ext(filename))
	return v.Custom(field, !slices.Contains(allowed, ext), message)
}

// MaxBytes fails with message when size exceeds max. The caller words the
// limit ("2MB") because byte counts read poorly.
func (v *Validator) MaxBytes(field string, size, max int64, message string) *Validator {
	return v.Custom(field, size > max, message)
}

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if !failed || v.failed[field] {
		return v
	}
	if v.failed == nil {
		v.failed = make(map[string]bool)
	}
	v.failed[field] = true
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns a VALIDATION_ERROR listing every failed field, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// FieldFailure builds a VALIDATION_ERROR for one field, used when the
// failure is only known after a store call (a unique violation).
func FieldFailure(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
