package middleware

import (
	"sync"
	"time"

	"go-hrgql/internal/shared/apperror"
	"go-hrgql/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a key may stay silent before its bucket is
// dropped. A returning key starts with a full bucket.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out one token bucket per key (client IP or user id).
type KeyedLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	r         rate.Limit // jumlah request per detik
	b         int        // burst (kapasitas kantong)
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	return &KeyedLimiter{
		visitors: make(map[string]*visitor),
		r:        r,
		b:        b,
		idle:     limiterIdleTTL,
		now:      time.Now,
	}
}

// Allow takes one token from key's bucket. Stale buckets are swept at most
// once per idle period, on the request path.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.r, l.b)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (l *KeyedLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idle {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// Len reports how many keys currently hold a bucket.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func tooManyRequests(c *gin.Context) {
	e := apperror.ErrTooManyRequests
	response.Error(c, e.HTTPStatus, e.Code, e.Message)
}

// RateLimitByIP: r = request per detik, b = burst
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(NewKeyedLimiter(r, b), func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByUser limits authenticated callers by user id; anonymous
// requests pass through to the IP limiter.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(NewKeyedLimiter(r, b), func(c *gin.Context) string {
		return c.GetString("user_id")
	})
}

func rateLimit(l *KeyedLimiter, key func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}
		if !l.Allow(k) {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}
