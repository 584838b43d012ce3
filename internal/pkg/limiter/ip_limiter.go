/*
Package limiter provides per-client-IP rate limiting on top of golang.org/x/time/rate.

Each IP owns a token bucket. A background goroutine forgets buckets that have refilled
completely, so idle visitors do not accumulate in memory.
*/
package limiter

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"voxroom/internal/pkg/errs"
	"voxroom/internal/pkg/logx"
	"voxroom/internal/pkg/resp"
)

// cleanupInterval is how often idle buckets are evicted.
const cleanupInterval = 3 * time.Minute

// IPRateLimiter hands out one token bucket per client IP address.
type IPRateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter

	// r is the refill rate in events per second.
	r rate.Limit

	// b is the bucket size.
	b int
}

// NewIPRateLimiter creates a limiter with refill rate r and burst b.
// The eviction goroutine runs until ctx is cancelled.
func NewIPRateLimiter(ctx context.Context, r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go i.cleanUpVisitors(ctx)

	return i
}

// GetLimiter returns the bucket for ip, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limits[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists = i.limits[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.limits[ip] = limiter
	}

	return limiter
}

// Allow consumes one token from the bucket of the request's client IP.
func (i *IPRateLimiter) Allow(r *http.Request) bool {
	return i.GetLimiter(ClientIP(r)).Allow()
}

// evictIdle removes buckets that are full at now and returns how many were removed.
func (i *IPRateLimiter) evictIdle(now time.Time) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	removed := 0
	for ip, limiter := range i.limits {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(i.limits, ip)
			removed++
		}
	}

	return removed
}

func (i *IPRateLimiter) cleanUpVisitors(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed := i.evictIdle(now)

			i.mu.RLock()
			active := len(i.limits)
			i.mu.RUnlock()

			logx.Logger().Debug().
				Int("removed", removed).
				Int("active", active).
				Msg("Rate limiter cleanup finished")
		}
	}
}

// Middleware rejects requests over the limit with ErrRateLimitExceeded (HTTP 429).
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.Allow(r) {
			logx.Warn("Request rejected: rate limit exceeded", "ip", logx.AnonymizeIP(r.RemoteAddr), "uri", r.RequestURI)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the host part of r.RemoteAddr.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if ip == "" {
		return "unknown_ip"
	}

	return ip
}
