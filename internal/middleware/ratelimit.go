package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/daybook-labs/daybook-backend/pkg/clientip"
)

const (
	summaryRateKeyPrefix = "ratelimit:summary:"
	maxBufferedBodyBytes = 64 << 10
)

// ParseRate parses a "count/period" ceiling such as "5/minute" or
// "60/hour". Supported periods: second, minute, hour, day.
func ParseRate(s string) (int, time.Duration, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid rate %q: expected count/period", s)
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || count <= 0 {
		return 0, 0, fmt.Errorf("invalid rate %q: count must be a positive integer", s)
	}
	var window time.Duration
	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "second":
		window = time.Second
	case "minute":
		window = time.Minute
	case "hour":
		window = time.Hour
	case "day":
		window = 24 * time.Hour
	default:
		return 0, 0, fmt.Errorf("invalid rate %q: unknown period", s)
	}
	return count, window, nil
}

// SummaryRateLimiter guards the generation endpoint with two ceilings: a
// per-user windowed counter in Redis (keyed on the request body's user_id,
// falling back to client IP) and a process-wide token bucket. Redis being
// absent or down fails open; the endpoint stays usable without per-user
// ceilings.
type SummaryRateLimiter struct {
	redis         *redis.Client // nil disables the per-user ceiling
	perUserMax    int
	perUserWindow time.Duration
	global        *rate.Limiter
	globalMax     int
}

func NewSummaryRateLimiter(redisClient *redis.Client, perUser, global string) (*SummaryRateLimiter, error) {
	perUserMax, perUserWindow, err := ParseRate(perUser)
	if err != nil {
		return nil, fmt.Errorf("per-user rate limit: %w", err)
	}
	globalMax, globalWindow, err := ParseRate(global)
	if err != nil {
		return nil, fmt.Errorf("global rate limit: %w", err)
	}

	return &SummaryRateLimiter{
		redis:         redisClient,
		perUserMax:    perUserMax,
		perUserWindow: perUserWindow,
		global:        rate.NewLimiter(rate.Limit(float64(globalMax)/globalWindow.Seconds()), globalMax),
		globalMax:     globalMax,
	}, nil
}

// rateKey identifies the caller: the body's user_id when present, else the
// client IP. The consumed body is restored for the next handler.
func (l *SummaryRateLimiter) rateKey(r *http.Request) string {
	if r.Body != nil {
		buf, err := io.ReadAll(io.LimitReader(r.Body, maxBufferedBodyBytes))
		r.Body.Close()
		if err == nil {
			r.Body = io.NopCloser(bytes.NewReader(buf))
			var body struct {
				UserID string `json:"user_id"`
			}
			if jsonErr := json.Unmarshal(buf, &body); jsonErr == nil && body.UserID != "" {
				return "user:" + body.UserID
			}
		}
	}
	return "ip:" + clientip.RealClientIP(r)
}

// Middleware applies both ceilings and responds 429 when either is hit.
func (l *SummaryRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.global.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.globalMax))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Rate limit exceeded. Please try again later."}`))
			return
		}

		if l.redis != nil {
			key := summaryRateKeyPrefix + l.rateKey(r)
			ctx := r.Context()

			count, err := l.redis.Incr(ctx, key).Result()
			if err == nil {
				if count == 1 {
					l.redis.Expire(ctx, key, l.perUserWindow)
				}
				if count > int64(l.perUserMax) {
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.perUserMax))
					w.Header().Set("X-RateLimit-Remaining", "0")
					w.WriteHeader(http.StatusTooManyRequests)
					w.Write([]byte(fmt.Sprintf(`{"success":false,"message":"Rate limit exceeded. Please try again later.","retry_after":%d}`, int(l.perUserWindow.Seconds()))))
					return
				}
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.perUserMax))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(l.perUserMax-int(count)))
			}
			// Redis errors fall through: fail open rather than block the
			// endpoint on a cache outage.
		}

		next.ServeHTTP(w, r)
	})
}
