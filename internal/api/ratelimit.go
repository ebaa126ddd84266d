package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps requests per client within a fixed window. Used on
// the mutating routes so a misbehaving client cannot spam interactions.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	span    time.Duration
}

type window struct {
	used    int
	started time.Time
}

// NewRateLimiter allows limit requests per client per span.
func NewRateLimiter(limit int, span time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		span:    span,
	}
}

// Allow records one request for the client and reports whether it fits
// in the current window.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[client]
	if !ok || now.Sub(w.started) >= rl.span {
		rl.sweep(now)
		rl.clients[client] = &window{used: 1, started: now}
		return true
	}
	if w.used < rl.limit {
		w.used++
		return true
	}
	return false
}

// RetryAfter returns whole seconds until the client's window resets.
func (rl *RateLimiter) RetryAfter(client string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.clients[client]
	if !ok {
		return 0
	}
	left := rl.span - time.Since(w.started)
	if left <= 0 {
		return 0
	}
	return int(left.Seconds()) + 1
}

// sweep drops windows stale by more than a full span. Called with the
// lock held whenever a fresh window is opened, so no background
// goroutine is needed.
func (rl *RateLimiter) sweep(now time.Time) {
	for client, w := range rl.clients {
		if now.Sub(w.started) >= 2*rl.span {
			delete(rl.clients, client)
		}
	}
}

// clientKey identifies the caller: first hop of X-Forwarded-For when
// present, otherwise the remote address without its port.
func clientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimited wraps a handler with the limiter; nil limiter passes
// everything through.
func rateLimited(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	if rl == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		client := clientKey(r)
		if !rl.Allow(client) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(client)))
			httpError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}
