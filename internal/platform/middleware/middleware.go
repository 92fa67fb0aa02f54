// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the http.Handler decorators mounted by the api
package, in the order the router applies them:

  - RequestID and AccessLog: correlation id and one log line per request.
  - RateLimiter: per-client token buckets.
  - PanicRecovery: converts a panic into a 500 envelope.
  - CORS: origin allow-list.
  - Authenticate, RequireAuth, RequireRole: bearer tokens and role gates.

Every rejection is written through the respond package so clients always
receive the standard error envelope.
*/
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/taibuivan/dishhub/internal/platform/constants"
)

// RealIP returns the client address, preferring X-Real-IP, then the first hop
// of X-Forwarded-For, then the connection's remote host.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}
	if hops := request.Header.Get(constants.HeaderXForwardedFor); hops != "" {
		first, _, _ := strings.Cut(hops, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(request.RemoteAddr); err == nil {
		return host
	}
	return request.RemoteAddr
}
