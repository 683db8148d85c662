package backend

import (
	"sync"
	"time"
)

// throttle spaces successive reloads at least interval apart. The first
// call never waits.
type throttle struct {
	interval time.Duration
	now      func() time.Time
	sleep    func(time.Duration)

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// wait blocks until the interval since the previous call has elapsed and
// reports how long it slept.
func (t *throttle) wait() time.Duration {
	if t == nil || t.interval <= 0 {
		return 0
	}
	var slept time.Duration
	for {
		t.mu.Lock()
		now := t.now()
		remaining := t.next.Sub(now)
		if remaining <= 0 {
			t.next = now.Add(t.interval)
			t.mu.Unlock()
			return slept
		}
		t.mu.Unlock()
		if remaining > t.interval {
			remaining = t.interval
		}
		t.sleep(remaining)
		slept += remaining
	}
}
