// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, upload limits, and cross-cutting keys
that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and session prefixes.
  - Catalog: Field limits for dishes, comments and images.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "dishhub-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Multipart image uploads need more headroom than plain JSON bodies.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// LoginRateLimit is the number of login attempts allowed per IP per LoginRateWindow.
	LoginRateLimit = 20

	// LoginRateWindow is the sliding window for LoginRateLimit.
	LoginRateWindow = time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "dishhub.app"
)

// # Catalog Limits

const (
	// MaxTitleLength bounds dish titles.
	MaxTitleLength = 255

	// MaxAnonsLength bounds the dish short summary.
	MaxAnonsLength = 1000

	// MinCommentLength and MaxCommentLength bound comment bodies (in runes).
	MinCommentLength = 3
	MaxCommentLength = 255

	// MaxAuthorLength bounds comment author names.
	MaxAuthorLength = 255

	// MaxImageSize is the largest accepted dish image (2 MiB).
	MaxImageSize = 2 << 20

	// MaxUploadMemory is the multipart memory budget before spilling to disk.
	MaxUploadMemory = 4 << 20

	// TagResolveConcurrency bounds concurrent get-or-create calls per request.
	TagResolveConcurrency = 4
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "auth:session:"
)
