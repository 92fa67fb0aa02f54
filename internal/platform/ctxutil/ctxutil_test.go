// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishhub/internal/platform/ctxkey"
	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/internal/platform/sec"
)

func TestContext_Empty(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
}

func TestContext_Values(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	claims := &sec.AuthClaims{UserID: "chef-1", Role: string(sec.RoleAdmin)}

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithAuthUser(ctx, claims)

	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
	assert.Same(t, logger, ctxutil.LoggerOr(ctx, slog.Default()))

	principal := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, principal)
	assert.Equal(t, "chef-1", principal.UserID)
}

func TestLoggerOr_Fallback(t *testing.T) {
	fallback := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Same(t, fallback, ctxutil.LoggerOr(context.Background(), fallback))

	// A value of the wrong type under the logger key is ignored.
	ctx := context.WithValue(context.Background(), ctxkey.Logger, "not a logger")
	assert.Same(t, fallback, ctxutil.LoggerOr(ctx, fallback))
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "request_id", ctxkey.RequestID.String())
	assert.Equal(t, "principal", ctxkey.Principal.String())
	assert.Equal(t, "unknown", ctxkey.Key(0).String())
}
