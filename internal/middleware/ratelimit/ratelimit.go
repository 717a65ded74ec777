package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
)

const maxTracked = 10000

type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	// OnLimit answers a rejected request. Defaults to 429.
	OnLimit echo.HandlerFunc
}

// PerMinute allows n requests per minute per client IP with a burst of n.
func PerMinute(n int) *Limiter {
	if n <= 0 {
		n = 1
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(time.Minute / time.Duration(n)),
		burst:    n,
	}
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.limiters) > maxTracked {
		l.limiters = make(map[string]*rate.Limiter)
	}
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

func (l *Limiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// ClientIP picks the address the limiter keys on. Forwarding headers are honoured only
// when trustProxy is set, and then only from loopback and private-network peers.
func ClientIP(trustProxy bool) echo.IPExtractor {
	if trustProxy {
		return echo.ExtractIPFromXFFHeader()
	}
	return echo.ExtractIPDirect()
}

// Middleware keys on c.RealIP(); install ClientIP as the server's IPExtractor.
func (l *Limiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.RealIP()
		if l.Allow(key) {
			return next(c)
		}
		logging.FromContext(c.Request().Context()).Warn("rate_limit_exceeded", "key", key, "path", c.Path())
		if l.OnLimit != nil {
			return l.OnLimit(c)
		}
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}
}
