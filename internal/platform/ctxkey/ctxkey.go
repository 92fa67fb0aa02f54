// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey declares the keys under which a request carries its
// correlation id, its principal and its logger. Only ctxutil reads them.
package ctxkey

// Key is a distinct type, so its values never collide with keys of other
// packages even when the underlying numbers match.
type Key uint8

const (
	// RequestID holds the X-Request-ID correlation string.
	RequestID Key = iota + 1

	// Principal holds the *sec.AuthClaims of the signed-in caller.
	Principal

	// Logger holds the request-scoped *slog.Logger.
	Logger
)

func (k Key) String() string {
	switch k {
	case RequestID:
		return "request_id"
	case Principal:
		return "principal"
	case Logger:
		return "logger"
	default:
		return "unknown"
	}
}
