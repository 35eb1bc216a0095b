// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultLimiterTTL is how long an idle client keeps its bucket
const DefaultLimiterTTL = 15 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*limiterEntry
	rate       rate.Limit
	burst      int
	ttl        time.Duration
	trustProxy bool
	lastSweep  time.Time
	now        func() time.Time
}

type LimiterOption func(*RateLimiter)

// WithTrustedProxy keys buckets by GetClientIP instead of RemoteAddr.
// Only enable it behind a proxy that overwrites X-Forwarded-For.
func WithTrustedProxy(trust bool) LimiterOption {
	return func(rl *RateLimiter) {
		rl.trustProxy = trust
	}
}

// WithIdleTTL sets how long an idle bucket is kept
func WithIdleTTL(ttl time.Duration) LimiterOption {
	return func(rl *RateLimiter) {
		if ttl > 0 {
			rl.ttl = ttl
		}
	}
}

// NewRateLimiter allows perMinute requests per IP with the given burst.
// A perMinute of 0 or less disables limiting.
func NewRateLimiter(perMinute, burst int, opts ...LimiterOption) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		burst:    burst,
		ttl:      DefaultLimiterTTL,
		now:      time.Now,
	}
	if perMinute > 0 {
		rl.rate = rate.Every(time.Minute / time.Duration(perMinute))
		if rl.burst <= 0 {
			rl.burst = 1
		}
	}
	for _, opt := range opts {
		opt(rl)
	}
	rl.lastSweep = rl.now()
	return rl
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.ttl {
		for key, e := range rl.limiters {
			if now.Sub(e.lastSeen) >= rl.ttl {
				delete(rl.limiters, key)
			}
		}
		rl.lastSweep = now
	}

	e, ok := rl.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Len returns the number of tracked clients
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Allow reports whether a request from ip may proceed
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.rate == 0 {
		return true
	}
	return rl.limiter(ip).Allow()
}

// Key returns the bucket key for r. Forwarding headers count only when the
// limiter trusts its proxy.
func (rl *RateLimiter) Key(r *http.Request) string {
	if rl.trustProxy {
		return GetClientIP(r)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Limit wraps a handler, answering 429 once the client exceeds its budget
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.Key(r)) {
			ErrorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next(w, r)
	}
}
