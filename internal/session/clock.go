package session

import (
	"sync"
	"time"
)

// Clock is the single countdown timer for a sitting. It ticks once per
// interval (one second in production), decrementing a shared counter, and
// fires onExpire exactly once when the counter reaches zero.
//
// At most one run is ever active: Start stops any previous run before
// launching a new one, and Stop may be called any number of times. The
// clock is a convenience for the client; late submissions are judged
// server-side by the grading service regardless of what this clock says.
type Clock struct {
	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
	running  bool
}

// NewClock creates a Clock ticking once per second.
func NewClock() *Clock {
	return &Clock{interval: time.Second}
}

// Start begins counting down from seconds. Any previous run is stopped
// first, so two Start calls never leave two tickers alive. onTick receives
// the remaining seconds after each tick, including the final zero; onExpire
// fires once, immediately after the zero tick, and never again for this run.
func (c *Clock) Start(seconds int, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	c.stopLocked()
	stop := make(chan struct{})
	c.stop = stop
	c.running = true
	interval := c.interval
	c.mu.Unlock()

	go run(seconds, interval, stop, onTick, onExpire)
}

// Stop halts the countdown. Safe to call multiple times and after expiry.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Clock) stopLocked() {
	if c.running {
		close(c.stop)
		c.running = false
	}
}

func run(remaining int, interval time.Duration, stop chan struct{}, onTick func(int), onExpire func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				onTick(0)
				onExpire()
				return
			}
			onTick(remaining)
		}
	}
}
