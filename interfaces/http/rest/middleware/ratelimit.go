package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether a client identified by key may proceed
type Limiter interface {
	Allow(key string) bool
}

// TokenBucket keeps one token bucket limiter per key. Every key starts
// with burst tokens and regains one token per refill interval.
type TokenBucket struct {
	mu        sync.Mutex
	limiters  map[string]*keyedLimiter
	limit     rate.Limit
	burst     int
	refill    time.Duration
	idleAfter time.Duration
	lastPrune time.Time
	now       func() time.Time
}

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewTokenBucket creates a limiter. Keys idle for an hour are dropped.
func NewTokenBucket(burst int, refill time.Duration) *TokenBucket {
	return &TokenBucket{
		limiters:  make(map[string]*keyedLimiter),
		limit:     rate.Every(refill),
		burst:     burst,
		refill:    refill,
		idleAfter: time.Hour,
		now:       time.Now,
	}
}

// Allow takes a token for key if one is available
func (l *TokenBucket) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	kl, ok := l.limiters[key]
	if !ok {
		kl = &keyedLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = kl
	}
	kl.lastSeen = now
	return kl.limiter.AllowN(now, 1)
}

// RetryAfter is the wait until the next token
func (l *TokenBucket) RetryAfter() time.Duration {
	return l.refill
}

// prune drops idle keys at most once per idle period. Callers hold l.mu.
func (l *TokenBucket) prune(now time.Time) {
	if now.Sub(l.lastPrune) < l.idleAfter {
		return
	}
	for key, kl := range l.limiters {
		if now.Sub(kl.lastSeen) > l.idleAfter {
			delete(l.limiters, key)
		}
	}
	l.lastPrune = now
}

// RateLimit rejects mutating requests from clients that ran out of tokens.
// Reads are never limited. Clients are keyed by remote IP, so RealIP must
// run first when behind a proxy.
func RateLimit(limiter Limiter, retryAfter time.Duration, reject http.HandlerFunc) func(http.Handler) http.Handler {
	seconds := strconv.Itoa(max(1, int(retryAfter.Round(time.Second)/time.Second)))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow(clientKey(r)) {
				w.Header().Set("Retry-After", seconds)
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
