package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Rate limit profiles. Override with RATELIMIT_{AUTH,WRITE,READ}_{REQUESTS,WINDOW_SEC,BURST}.
var (
	// AuthLimit guards credential endpoints against brute force.
	AuthLimit = RateLimitConfig{Requests: 10, Window: time.Minute, Burst: 10}

	// WriteLimit applies to authenticated mutations.
	WriteLimit = RateLimitConfig{Requests: 120, Window: time.Minute, Burst: 60}

	// ReadLimit applies to authenticated reads.
	ReadLimit = RateLimitConfig{Requests: 600, Window: time.Minute, Burst: 200}
)

func init() {
	AuthLimit = RateLimitFromEnv("AUTH", AuthLimit)
	WriteLimit = RateLimitFromEnv("WRITE", WriteLimit)
	ReadLimit = RateLimitFromEnv("READ", ReadLimit)
}

// RateLimitFromEnv overlays RATELIMIT_<prefix>_* variables onto def.
func RateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	read := func(field string) (int, bool) {
		n, err := strconv.Atoi(os.Getenv("RATELIMIT_" + prefix + "_" + field))
		return n, err == nil && n > 0
	}
	cfg := def
	if n, ok := read("REQUESTS"); ok {
		cfg.Requests = n
	}
	if n, ok := read("WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := read("BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

// KeyExtractor groups requests into rate limit buckets.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor uses the first X-Forwarded-For hop, X-Real-IP, or the peer address.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserIDKeyExtractor uses the authenticated caller, or "" when anonymous.
func UserIDKeyExtractor(r *http.Request) string {
	if id, ok := IdentityFromContext(r.Context()); ok {
		return id.UserID
	}
	return ""
}

// FirstKeyExtractor returns the first non-empty key.
func FirstKeyExtractor(extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		for _, ex := range extractors {
			if k := ex(r); k != "" {
				return k
			}
		}
		return ""
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type keyedLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
}

func (kl *keyedLimiter) allow(key string, now time.Time) (bool, time.Duration) {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	if now.Sub(kl.lastSweep) > kl.idleAfter {
		for k, b := range kl.buckets {
			if now.Sub(b.lastSeen) > kl.idleAfter {
				delete(kl.buckets, k)
			}
		}
		kl.lastSweep = now
	}

	b, ok := kl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.buckets[key] = b
	}
	b.lastSeen = now

	if b.limiter.AllowN(now, 1) {
		return true, 0
	}
	r := b.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return false, delay
}

// RateLimitMiddleware rejects requests over cfg with 429 and Retry-After.
func RateLimitMiddleware(cfg RateLimitConfig, key KeyExtractor) Middleware {
	kl := &keyedLimiter{
		buckets:   make(map[string]*bucket),
		limit:     rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:     cfg.Burst,
		idleAfter: max(cfg.Window, 5*time.Minute),
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			ok, delay := kl.allow(k, time.Now())
			if !ok {
				retryAfter := max(int(delay.Seconds()+0.5), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
				slogx.FromContext(r.Context()).Warn("rate limit exceeded",
					"key", k,
					"retry_after", retryAfter,
				)
				WriteError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser buckets by user, falling back to IP for anonymous callers.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, FirstKeyExtractor(UserIDKeyExtractor, IPKeyExtractor))
}
