package service_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/msomdec/pokedex/internal/service"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestSlidingWindow_AllowsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	sw := service.NewSlidingWindow(10, time.Second).WithClock(clock.Now)

	for i := 0; i < 10; i++ {
		if !sw.Admit("users") {
			t.Fatalf("request %d should be allowed", i+1)
		}
		clock.Advance(10 * time.Millisecond)
	}

	if sw.Admit("users") {
		t.Fatal("11th request within the interval should be denied")
	}
}

func TestSlidingWindow_DrainsAfterInterval(t *testing.T) {
	clock := newFakeClock()
	sw := service.NewSlidingWindow(2, time.Second).WithClock(clock.Now)

	for i := 0; i < 5; i++ {
		sw.Admit("collection")
	}
	if sw.Admit("collection") {
		t.Fatal("expected rejection while the window is full")
	}

	clock.Advance(time.Second + time.Millisecond)

	if !sw.Admit("collection") {
		t.Fatal("expected admission once the window drained")
	}
	if got := sw.Len("collection"); got != 1 {
		t.Fatalf("expected only the new event retained, got %d", got)
	}
}

func TestSlidingWindow_RejectedRequestsKeepRefusing(t *testing.T) {
	clock := newFakeClock()
	sw := service.NewSlidingWindow(2, time.Second).WithClock(clock.Now)

	sw.Admit("g")
	sw.Admit("g")

	// A steady stream every 400ms never lets the window fall to the limit,
	// because rejected events are retained too.
	for i := 0; i < 5; i++ {
		clock.Advance(400 * time.Millisecond)
		if sw.Admit("g") {
			t.Fatalf("request %d of sustained burst should be denied", i+1)
		}
	}
}

func TestSlidingWindow_BoundaryIsInclusive(t *testing.T) {
	clock := newFakeClock()
	sw := service.NewSlidingWindow(1, time.Second).WithClock(clock.Now)

	sw.Admit("g")
	clock.Advance(time.Second)

	// An event exactly interval old is still inside the window.
	if sw.Admit("g") {
		t.Fatal("expected rejection at exactly one interval")
	}
}

func TestSlidingWindow_GroupsAreIndependent(t *testing.T) {
	clock := newFakeClock()
	sw := service.NewSlidingWindow(1, time.Second).WithClock(clock.Now)

	if !sw.Admit("users") {
		t.Fatal("users first request should be allowed")
	}
	if sw.Admit("users") {
		t.Fatal("users second request should be denied")
	}
	if !sw.Admit("collection") {
		t.Fatal("collection has its own window")
	}
}

func TestSlidingWindow_ConcurrentBurstNeverOverAdmits(t *testing.T) {
	clock := newFakeClock()
	sw := service.NewSlidingWindow(10, time.Second).WithClock(clock.Now)

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sw.Admit("burst") {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := admitted.Load(); got != 10 {
		t.Fatalf("expected exactly 10 admissions, got %d", got)
	}
}

func TestSlidingWindow_DecideReportsClockTime(t *testing.T) {
	clock := newFakeClock()
	sw := service.NewSlidingWindow(1, time.Second).WithClock(clock.Now)

	allowed, at := sw.Decide("users")
	if !allowed || !at.Equal(clock.Now()) {
		t.Fatalf("expected allowed at %s, got %v at %s", clock.Now(), allowed, at)
	}

	clock.Advance(300 * time.Millisecond)
	allowed, at = sw.Decide("users")
	if allowed {
		t.Fatal("second request should be rejected")
	}
	if !at.Equal(clock.Now()) {
		t.Fatalf("expected decision time %s, got %s", clock.Now(), at)
	}
}
