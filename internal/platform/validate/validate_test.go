// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishhub/internal/platform/apperr"
	"github.com/taibuivan/dishhub/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Pho Bo", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Between checks rune-based length bounds.
*/
func TestValidator_Between(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"too_short", "ab", false},
		{"lower_bound", "abc", true},
		{"multibyte_counts_runes", "phở", true},
		{"upper_bound", strings.Repeat("x", 255), true},
		{"too_long", strings.Repeat("x", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Between("comment", tt.value, 3, 255)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Extension checks the case-insensitive allow-list.
*/
func TestValidator_Extension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		isValid  bool
	}{
		{"png", "pho.png", true},
		{"upper_jpeg", "PHO.JPEG", true},
		{"mixed_jpg", "pho.JpG", true},
		{"gif", "pho.gif", false},
		{"no_extension", "pho", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Extension("image", tt.filename, "bad format", ".png", ".jpg", ".jpeg")

			if tt.isValid {
				assert.False(t, v.HasErrors())
				return
			}
			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "bad format", ae.Details[0].Message)
		})
	}
}

func TestValidator_Chain(t *testing.T) {
	err := (&validate.Validator{}).
		Required("title", "Pho").
		MaxLen("title", "Pho", 10).
		MaxBytes("image", 1024, 2048, "too large").
		Err()

	assert.NoError(t, err)
}

/*
TestValidator_FirstFailureWins checks that a field reports only its first
failed rule while other fields still accumulate.
*/
func TestValidator_FirstFailureWins(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").
		MaxLen("title", "", 0).
		Custom("title", true, "dish.title already exists").
		MaxBytes("image", 4096, 2048, "too large").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, map[string]string{
		"title": "This field is required",
		"image": "too large",
	}, ae.Fields())
	assert.Len(t, ae.Details, 2)
}

func TestFieldFailure(t *testing.T) {
	ae := validate.FieldFailure("login", "Login is already taken")

	assert.Equal(t, apperr.CodeValidation, ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "Login is already taken", ae.Details[0].Message)
}
