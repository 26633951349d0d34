package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestClockCountsDownAndExpiresOnce(t *testing.T) {
	c := NewClock()
	c.interval = time.Millisecond

	var mu sync.Mutex
	var ticks []int
	var expiries int32
	done := make(chan struct{})

	c.Start(3,
		func(remaining int) {
			mu.Lock()
			ticks = append(ticks, remaining)
			mu.Unlock()
		},
		func() {
			atomic.AddInt32(&expiries, 1)
			close(done)
		},
	)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("clock never expired")
	}
	// Give a hypothetical second expiry a chance to fire.
	time.Sleep(10 * time.Millisecond)

	if n := atomic.LoadInt32(&expiries); n != 1 {
		t.Fatalf("expiry fired %d times, want exactly 1", n)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []int{2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("ticks = %v, want %v", ticks, want)
		}
	}
}

func TestClockStopPreventsExpiry(t *testing.T) {
	c := NewClock()
	c.interval = 5 * time.Millisecond

	var expiries int32
	c.Start(2, func(int) {}, func() { atomic.AddInt32(&expiries, 1) })
	c.Stop()

	time.Sleep(30 * time.Millisecond)
	if n := atomic.LoadInt32(&expiries); n != 0 {
		t.Fatalf("expiry fired %d times after Stop", n)
	}

	// Stop is idempotent.
	c.Stop()
}

func TestClockRestartReplacesRun(t *testing.T) {
	c := NewClock()
	c.interval = time.Millisecond

	var firstExpiries, secondExpiries int32
	c.Start(1000, func(int) {}, func() { atomic.AddInt32(&firstExpiries, 1) })

	done := make(chan struct{})
	c.Start(2, func(int) {}, func() {
		atomic.AddInt32(&secondExpiries, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second run never expired")
	}
	if atomic.LoadInt32(&firstExpiries) != 0 {
		t.Error("replaced run still expired")
	}
	if atomic.LoadInt32(&secondExpiries) != 1 {
		t.Error("second run did not expire exactly once")
	}
}
