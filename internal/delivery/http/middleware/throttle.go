package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

// LoginThrottle limits attempts per client IP with a token bucket.
type LoginThrottle struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginThrottle allows perMinute attempts per IP, refilled evenly.
func NewLoginThrottle(perMinute int) *LoginThrottle {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &LoginThrottle{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		idle:    10 * time.Minute,
		now:     time.Now,
		buckets: map[string]*bucket{},
	}
}

func (t *LoginThrottle) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !t.allow(c.IP()) {
			return NewAppError(fiber.StatusTooManyRequests, "Too many login attempts, try again later", nil, nil)
		}
		return c.Next()
	}
}

func (t *LoginThrottle) allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[key]
	if !ok {
		t.sweepLocked(now)
		b = &bucket{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (t *LoginThrottle) sweepLocked(now time.Time) {
	for k, b := range t.buckets {
		if now.Sub(b.lastSeen) > t.idle {
			delete(t.buckets, k)
		}
	}
}
