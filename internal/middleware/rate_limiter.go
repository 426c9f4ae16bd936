package middleware

import (
	"sync"
	"time"

	"txn-search/internal/errors"
	"txn-search/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiterConfig sets the per-client token bucket
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL is how long an idle client's bucket is kept
	IdleTTL time.Duration
}

// DefaultRateLimiterConfig allows 20 req/s with bursts of 40
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{RequestsPerSecond: 20, Burst: 40, IdleTTL: 3 * time.Minute}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorStore struct {
	cfg         RateLimiterConfig
	now         func() time.Time
	mu          sync.Mutex
	visitors    map[string]*visitor
	lastCleanup time.Time
}

func newVisitorStore(cfg RateLimiterConfig) *visitorStore {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRateLimiterConfig().RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig().Burst
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultRateLimiterConfig().IdleTTL
	}
	return &visitorStore{
		cfg:      cfg,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// RateLimiter rejects clients that exceed their token bucket with SYSTEM_006.
// Clients are keyed by echo's RealIP.
func RateLimiter(cfg RateLimiterConfig) echo.MiddlewareFunc {
	store := newVisitorStore(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !store.allow(c.RealIP()) {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

func (s *visitorStore) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictIdle(now)

	v, exists := s.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), s.cfg.Burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evictIdle drops idle buckets at most once a minute; callers hold mu
func (s *visitorStore) evictIdle(now time.Time) {
	if now.Sub(s.lastCleanup) < time.Minute {
		return
	}
	s.lastCleanup = now
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.cfg.IdleTTL {
			delete(s.visitors, ip)
		}
	}
}
