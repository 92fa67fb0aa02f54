// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values set by the
// middleware chain: correlation id, principal claims and the request logger.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/dishhub/internal/platform/ctxkey"
	"github.com/taibuivan/dishhub/internal/platform/sec"
)

// lookup returns the value stored under key when it has type T.
func lookup[T any](ctx context.Context, key ctxkey.Key) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// GetRequestID returns "" outside of a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, ctxkey.RequestID)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// GetLogger returns the request logger or [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	return LoggerOr(ctx, slog.Default())
}

// LoggerOr returns the request logger, or fallback when the call does not
// come from an HTTP request (CLI commands, startup).
func LoggerOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, ctxkey.Logger); ok && logger != nil {
		return logger
	}
	return fallback
}

// # Principal

// WithAuthUser attaches verified claims. Only the Authenticate middleware
// and tests call it.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.Principal, claims)
}

// GetAuthUser returns the caller's claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := lookup[*sec.AuthClaims](ctx, ctxkey.Principal)
	return claims
}
