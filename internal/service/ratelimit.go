package service

import (
	"sync"
	"time"
)

// SlidingWindow is an in-memory rate limiter keeping a log of recent request
// timestamps per route group. All callers of a group share one budget; the
// state is local to the process.
type SlidingWindow struct {
	mu       sync.Mutex
	windows  map[string][]time.Time
	limit    int
	interval time.Duration
	now      func() time.Time
}

// NewSlidingWindow creates a limiter admitting at most limit requests per
// group within any trailing interval.
func NewSlidingWindow(limit int, interval time.Duration) *SlidingWindow {
	return &SlidingWindow{
		windows:  make(map[string][]time.Time),
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (sw *SlidingWindow) WithClock(now func() time.Time) *SlidingWindow {
	sw.now = now
	return sw
}

// Admit records a request for group and reports whether it is within the
// limit. Rejected requests stay in the window, so a sustained burst keeps
// being refused until the window drains.
func (sw *SlidingWindow) Admit(group string) bool {
	allowed, _ := sw.Decide(group)
	return allowed
}

// Decide is Admit that also returns the limiter-clock time the decision was
// taken at.
func (sw *SlidingWindow) Decide(group string) (bool, time.Time) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	window := append(sw.windows[group], now)

	// Timestamps are appended in order, so expired ones sit at the front.
	cutoff := now.Add(-sw.interval)
	evict := 0
	for evict < len(window) && window[evict].Before(cutoff) {
		evict++
	}
	window = window[evict:]
	sw.windows[group] = window

	return len(window) <= sw.limit, now
}

// Len returns the number of timestamps currently retained for group.
func (sw *SlidingWindow) Len(group string) int {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return len(sw.windows[group])
}
