// Package abuse rejects traffic that looks automated or hostile before it
// reaches validation and storage.
package abuse

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mashkanta-plus/leads-api/pkg/logging"
)

// Limiter is the rate-limit ledger contract. The in-process implementation
// is correct for a single instance only; the Redis one is the shared-store
// swap-in behind the same interface.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// ClientKey derives the rate-limit key for a request: first x-forwarded-for
// entry, else x-real-ip, else a sentinel.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-Ip")); xri != "" {
		return xri
	}
	return "unknown"
}

type window struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a fixed-window limiter held in process memory. State does
// not survive restarts and is not shared across instances; abuse tolerance
// here does not need to be exact.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*window
	max     int
	period  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter allows max requests per key within each period.
func NewMemoryLimiter(max int, period time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		entries: make(map[string]*window),
		max:     max,
		period:  period,
		now:     time.Now,
	}
	go l.cleanup()
	return l
}

// Allow reports whether the request keyed by key fits in the current window.
// An elapsed window resets the counter to 1 and starts a new window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries[key]
	if !ok || now.After(w.resetTime) {
		l.entries[key] = &window{count: 1, resetTime: now.Add(l.period)}
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

func (l *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		now := l.now()
		for key, w := range l.entries {
			if now.After(w.resetTime) {
				delete(l.entries, key)
			}
		}
		l.mu.Unlock()
	}
}

// RedisLimiter is the shared-store ledger for multi-instance deployments.
// INCR with a TTL set on the first hit of the window gives the same
// fixed-window semantics as MemoryLimiter.
type RedisLimiter struct {
	client *redis.Client
	max    int
	period time.Duration
	logger *logging.Logger
}

// NewRedisLimiter creates a limiter backed by the given Redis client.
func NewRedisLimiter(client *redis.Client, max int, period time.Duration, logger *logging.Logger) *RedisLimiter {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisLimiter{client: client, max: max, period: period, logger: logger}
}

// Allow increments the per-key counter. Redis unavailability fails open:
// dropping legitimate leads costs more than letting a burst through.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := "ratelimit:" + key
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request", "error", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.period).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed", "error", err, "key", key)
		}
	}
	return count <= int64(l.max)
}
