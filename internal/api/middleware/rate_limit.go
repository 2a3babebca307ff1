package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	apiErrors "tecsoqr/internal/pkg/errors"
	"tecsoqr/internal/platform/config"
)

// Limit classes.
const (
	LimitRead     = "read"
	LimitGenerate = "generate"
	LimitBulk     = "bulk"
)

type RateLimiter struct {
	store  *sync.Map // map[string]*Bucket
	limits map[string]int
	now    func() time.Time
}

type Bucket struct {
	tokens     int
	lastRefill time.Time
	mu         sync.Mutex
	lastAccess time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		store: &sync.Map{},
		limits: map[string]int{
			LimitRead:     cfg.ReadPerMinute,
			LimitGenerate: cfg.GeneratePerMinute,
			LimitBulk:     cfg.BulkPerMinute,
		},
		now: time.Now,
	}
}

// Cleanup drops buckets idle for longer than idle. Run it from a ticker.
func (rl *RateLimiter) Cleanup(idle time.Duration) {
	now := rl.now()
	rl.store.Range(func(key, value interface{}) bool {
		bucket := value.(*Bucket)
		bucket.mu.Lock()
		if now.Sub(bucket.lastAccess) > idle {
			rl.store.Delete(key)
		}
		bucket.mu.Unlock()
		return true
	})
}

// Allow takes one token from key's bucket, refilling at limit per minute.
func (rl *RateLimiter) Allow(key string, limit int) bool {
	now := rl.now()

	val, _ := rl.store.LoadOrStore(key, &Bucket{
		tokens:     limit,
		lastRefill: now,
		lastAccess: now,
	})

	bucket := val.(*Bucket)
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.lastAccess = now

	elapsed := now.Sub(bucket.lastRefill)
	refillRate := float64(limit) / 60.0
	refillTokens := int(elapsed.Seconds() * refillRate)

	if refillTokens > 0 {
		bucket.tokens = min(bucket.tokens+refillTokens, limit)
		bucket.lastRefill = now
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}

	return false
}

func (rl *RateLimiter) Limit(limitType string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			limit := rl.limits[limitType]
			if limit <= 0 {
				next(w, r)
				return
			}

			var key string
			if apiKey := APIKeyFrom(r.Context()); apiKey != nil {
				key = fmt.Sprintf("%s:%s", apiKey.ID, limitType)
			} else {
				key = fmt.Sprintf("%s:%s", clientIP(r), limitType)
			}

			if !rl.Allow(key, limit) {
				w.Header().Set("Retry-After", strconv.Itoa(60/limit+1))
				apiErrors.WriteError(w, http.StatusTooManyRequests, apiErrors.ErrCodeRateLimitExceeded, "Rate limit exceeded", nil)
				return
			}

			next(w, r)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
