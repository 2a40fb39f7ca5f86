package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Per-caller token bucket limiting for write endpoints. Keyed by user ID when
// authenticated, client IP otherwise.

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const visitorTTL = 10 * time.Minute

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
	go rl.cleanup()
	return rl
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitors[key]
	if v == nil {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// cleanup evicts buckets nobody has touched for a while.
func (rl *rateLimiter) cleanup() {
	for range time.Tick(visitorTTL) {
		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// WriteRateLimit throttles mutating requests per caller. Safe methods pass
// through untouched.
func WriteRateLimit(perSecond float64, burst int) gin.HandlerFunc {
	rl := newRateLimiter(perSecond, burst)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, exists := c.Get("userID"); exists {
			if id, ok := userID.(string); ok {
				key = id
			}
		}

		if !rl.allow(key) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
