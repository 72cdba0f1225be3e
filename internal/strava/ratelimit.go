package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Strava rate limits:
// - 100 requests per 15 minutes
// - 1000 requests per day

const (
	defaultShortLimit = 100
	defaultDailyLimit = 1000
	shortWindow       = 15 * time.Minute
	minInterval       = 150 * time.Millisecond
)

// window is one usage counter that resets at a fixed time.
type window struct {
	limit    int
	usage    int
	resetsAt time.Time
	next     func(now time.Time) time.Time
}

func (w *window) roll(now time.Time) {
	if now.After(w.resetsAt) {
		w.usage = 0
		w.resetsAt = w.next(now)
	}
}

func (w *window) exhausted() bool {
	return w.usage >= w.limit
}

func nextShortReset(now time.Time) time.Time { return now.Add(shortWindow) }

// Strava's daily window resets at midnight UTC.
func nextDailyReset(now time.Time) time.Time {
	return now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
}

// RateLimiter manages Strava API rate limits
type RateLimiter struct {
	mu sync.Mutex

	short window
	daily window

	minInterval time.Duration
	lastRequest time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a new rate limiter with Strava's limits
func NewRateLimiter() *RateLimiter {
	r := &RateLimiter{
		minInterval: minInterval,
		now:         time.Now,
		sleep:       sleepCtx,
	}
	now := r.now()
	r.short = window{limit: defaultShortLimit, resetsAt: nextShortReset(now), next: nextShortReset}
	r.daily = window{limit: defaultDailyLimit, resetsAt: nextDailyReset(now), next: nextDailyReset}
	return r
}

// Wait blocks until a request can be made without exceeding rate limits
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range []*window{&r.short, &r.daily} {
		w.roll(r.now())
		if !w.exhausted() {
			continue
		}
		if err := r.sleepUnlocked(ctx, w.resetsAt.Sub(r.now())); err != nil {
			return err
		}
		w.usage = 0
		w.resetsAt = w.next(r.now())
	}

	// Enforce minimum interval between requests
	if elapsed := r.now().Sub(r.lastRequest); elapsed < r.minInterval {
		if err := r.sleepUnlocked(ctx, r.minInterval-elapsed); err != nil {
			return err
		}
	}

	r.short.usage++
	r.daily.usage++
	r.lastRequest = r.now()
	return nil
}

// sleepUnlocked releases the lock while waiting. Must be called with mu
// held; returns with mu held.
func (r *RateLimiter) sleepUnlocked(ctx context.Context, d time.Duration) error {
	r.mu.Unlock()
	defer r.mu.Lock()
	return r.sleep(ctx, d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdateFromHeaders updates rate limit state from Strava response headers
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Strava returns: X-RateLimit-Limit: "100,1000" and X-RateLimit-Usage: "34,512"
	if short, daily, ok := parsePair(h.Get("X-RateLimit-Usage")); ok {
		r.short.usage, r.daily.usage = short, daily
	}
	if short, daily, ok := parsePair(h.Get("X-RateLimit-Limit")); ok {
		r.short.limit, r.daily.limit = short, daily
	}
}

func parsePair(v string) (int, int, bool) {
	parts := strings.Split(v, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}

// Status returns current rate limit status
func (r *RateLimiter) Status() (shortRemaining, dailyRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.short.limit - r.short.usage, r.daily.limit - r.daily.usage
}

// Usage returns current usage counts
func (r *RateLimiter) Usage() (shortUsage, dailyUsage int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.short.usage, r.daily.usage
}
