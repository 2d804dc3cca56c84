// Package middleware provides the storefront's HTTP middleware: access
// logging, panic recovery and per-client rate limiting.
package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/saborexpress/pkg/response"
)

// bucket tracks a fixed-window request count for one client.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(max int, window time.Duration, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}

	b.count++
	return b.count <= max
}

func (b *bucket) expired(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return now.After(b.resetAt)
}

// limiter holds the buckets of one RateLimit middleware.
type limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	max       int
	window    time.Duration
	nextSweep time.Time
}

// get returns the bucket of ip. Once per window it first evicts the buckets
// whose window has expired, so memory stays bounded without a background
// goroutine.
func (l *limiter) get(ip string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if b.expired(now) {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.window)
	}

	if b, ok := l.buckets[ip]; ok {
		return b
	}
	b := &bucket{}
	l.buckets[ip] = b
	return b
}

func (l *limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RateLimit returns a middleware that limits each client IP to max requests
// per window. max <= 0 disables limiting. X-Forwarded-For is only read when
// trustProxy is set, i.e. when a reverse proxy in front of the server
// overwrites it.
//
//	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute, config.TrustProxy()))
func RateLimit(max int, window time.Duration, trustProxy bool) func(http.Handler) http.Handler {
	if max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := &limiter{buckets: map[string]*bucket{}, max: max, window: window}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			if !l.get(clientIP(r, trustProxy), now).allow(l.max, l.window, now) {
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				response.Error(w, http.StatusTooManyRequests, "Demasiadas solicitudes")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the remote address without its port. Behind a trusted
// proxy it returns the first X-Forwarded-For hop instead.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			return strings.TrimSpace(first)
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
