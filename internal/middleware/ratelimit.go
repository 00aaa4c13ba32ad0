package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/metrics"
	"github.com/stemsi/tutorhub-backend/internal/response"
)

// visitorTTL is how long an idle client keeps its bucket.
const visitorTTL = 10 * time.Minute

// RateLimiter is a per-IP token bucket. Buckets refill continuously at
// rate tokens per interval and hold at most rate tokens.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	name     string
	burst    float64
	interval time.Duration
	now      func() time.Time
}

type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter allowing rate requests per interval,
// e.g. NewRateLimiter("login", 10, time.Minute). name labels the rejection
// metric.
func NewRateLimiter(name string, rate int, interval time.Duration) *RateLimiter {
	if rate < 1 {
		rate = 1
	}
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		name:     name,
		burst:    float64(rate),
		interval: interval,
		now:      time.Now,
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			rl.cleanup()
		}
	}()

	return rl
}

// allow takes a token for key. When the bucket is empty it returns the
// wait until the next token.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{tokens: rl.burst, lastSeen: now}
		rl.visitors[key] = v
	}

	refill := rl.burst * now.Sub(v.lastSeen).Seconds() / rl.interval.Seconds()
	v.tokens = math.Min(rl.burst, v.tokens+refill)
	v.lastSeen = now

	if v.tokens < 1 {
		wait := time.Duration((1 - v.tokens) * float64(rl.interval) / rl.burst)
		return false, wait
	}
	v.tokens--
	return true, 0
}

// Middleware returns a Gin middleware that rate-limits requests by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := rl.allow(c.ClientIP())
		if !ok {
			metrics.RateLimited.WithLabelValues(rl.name).Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}
