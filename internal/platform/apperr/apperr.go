// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the classified failures every DishHub operation
reports.

A service returns an [*AppError] whose Code names the class (validation,
not found, internal, ...). The HTTP layer maps it to a status through
HTTPStatus and renders Message and Details; Cause never leaves the process.

Classes:

  - VALIDATION_ERROR: one or more field rules failed, see Details.
  - NOT_FOUND: the dish, comment or account does not exist in that scope.
  - UNAUTHORIZED / FORBIDDEN: produced by the auth gate, never by the catalog.
  - RATE_LIMITED: the caller must wait RetryAfter before retrying.
  - INTERNAL_ERROR: store or file-system failure.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error codes, also the "code" field of error responses.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is a classified failure.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Details    []FieldError `json:"details,omitempty"`

	// RetryAfter is set on RATE_LIMITED errors.
	RetryAfter time.Duration `json:"-"`

	// Cause is logged server-side and never rendered.
	Cause error `json:"-"`
}

// FieldError is one failed field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Fields returns Details as a field → message map. When a field failed more
// than one rule the first message wins.
func (e *AppError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Details))
	for _, detail := range e.Details {
		if _, seen := fields[detail.Field]; !seen {
			fields[detail.Field] = detail.Message
		}
	}
	return fields
}

func newError(code string, status int, msg string) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound names the missing resource: NotFound("Dish") → "Dish not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

func Unauthorized(msg string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, msg)
}

// Conflict is used for unique violations no service maps to a field.
func Conflict(msg string) *AppError {
	return newError(CodeConflict, http.StatusConflict, msg)
}

func ValidationError(msg string, details ...FieldError) *AppError {
	err := newError(CodeValidation, http.StatusBadRequest, msg)
	err.Details = details
	return err
}

// RateLimited tells the caller to wait retryAfter (rounded up to seconds).
func RateLimited(retryAfter time.Duration) *AppError {
	seconds := int((retryAfter + time.Second - 1) / time.Second)
	err := newError(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests. Try again in %ds.", seconds))
	err.RetryAfter = time.Duration(seconds) * time.Second
	return err
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return InternalMsg("An unexpected error occurred", cause)
}

// InternalMsg names the step that failed (for example a delete cascade)
// while keeping the cause server-side.
func InternalMsg(msg string, cause error) *AppError {
	err := newError(CodeInternal, http.StatusInternalServerError, msg)
	err.Cause = cause
	return err
}

// # Helpers

// As extracts the [*AppError] from err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
