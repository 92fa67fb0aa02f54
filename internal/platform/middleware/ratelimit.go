// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/dishhub/internal/platform/apperr"
	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/respond"
)

type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

/*
RateLimiter keeps one token bucket per client IP.

A background sweep forgets clients idle for longer than
constants.RateLimitClientTTL. The sweep runs until the context given to
[NewRateLimiter] is cancelled; [RateLimiter.Done] closes once it has returned.
*/
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	limit rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	done chan struct{}
}

// NewRateLimiter allows rps requests per second per client with bursts of up
// to burst requests.
func NewRateLimiter(context context.Context, rps float64, burst int) *RateLimiter {
	limiter := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		idle:     constants.RateLimitClientTTL,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go limiter.sweep(context, constants.RateLimitCleanupInterval)
	return limiter
}

func (limiter *RateLimiter) Done() <-chan struct{} {
	return limiter.done
}

func (limiter *RateLimiter) sweep(context context.Context, every time.Duration) {
	defer close(limiter.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-context.Done():
			return
		case <-ticker.C:
			limiter.forgetIdle()
		}
	}
}

func (limiter *RateLimiter) forgetIdle() {
	cutoff := limiter.now().Add(-limiter.idle)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	for ip, v := range limiter.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(limiter.visitors, ip)
		}
	}
}

// take spends one token from ip's bucket, creating the bucket on first sight.
func (limiter *RateLimiter) take(ip string) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	v, ok := limiter.visitors[ip]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.visitors[ip] = v
	}
	v.lastSeen = limiter.now()
	return v.bucket.Allow()
}

// refill is the time one token takes to come back; it becomes Retry-After.
func (limiter *RateLimiter) refill() time.Duration {
	if limiter.limit <= 0 || limiter.limit == rate.Inf {
		return time.Second
	}
	return time.Duration(float64(time.Second) / float64(limiter.limit))
}

// Handler rejects a request with 429 RATE_LIMITED once its client's bucket is
// empty.
func (limiter *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if limiter.take(RealIP(request)) {
			next.ServeHTTP(writer, request)
			return
		}
		respond.Error(writer, request, apperr.RateLimited(limiter.refill()))
	})
}
