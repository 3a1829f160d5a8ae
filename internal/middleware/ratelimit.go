package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
	"github.com/Manohar-jami/Job-Portal-Api/internal/response"
)

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// MemoryLimiter keeps one token bucket per key. Buckets idle for longer
// than the idle window are dropped by Cleanup.
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*memoryBucket
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type memoryBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter allows perMinute events per key, all of them usable in a
// burst.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	return &MemoryLimiter{
		limiters: make(map[string]*memoryBucket),
		rate:     rate.Limit(float64(perMinute) / 60),
		burst:    perMinute,
		idle:     2 * time.Minute,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	now := l.now()
	bucket, ok := l.limiters[key]
	if !ok {
		bucket = &memoryBucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = bucket
	}
	bucket.lastSeen = now
	l.mu.Unlock()
	return bucket.limiter.AllowN(now, 1)
}

// Cleanup drops buckets not used within the idle window. A bucket idle that
// long has refilled, so dropping it loses no state.
func (l *MemoryLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-l.idle)
	removed := 0
	for key, bucket := range l.limiters {
		if bucket.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Len reports how many keys are tracked.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (l *MemoryLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := l.Cleanup(); n > 0 {
					zerolog.Ctx(ctx).Debug().Int("removed", n).Msg("rate limiter buckets evicted")
				}
			}
		}
	}()
}

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter is a fixed-window counter shared by every API instance. It
// fails open when Redis is unreachable.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key}, l.window.Milliseconds(), l.limit).Int64()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	return allowed == 1
}

// RateLimit rejects with 429 once keyFn's key is over the limit. An empty
// key or nil limiter lets the request through.
func RateLimit(limiter Limiter, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}
		if !limiter.Allow(c.Request.Context(), key) {
			response.Error(c, apperrors.New(apperrors.KindRateLimited, "Request was throttled.", nil))
			return
		}
		c.Next()
	}
}
