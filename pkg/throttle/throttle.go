package throttle

import (
	"sync"
	"time"
)

// Throttle enforces a minimum interval between outbound marketplace calls.
// One instance is shared by every client talking to the same host, so the
// limit is process-wide, not per-connection.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall time.Time

	// sleep is swappable in tests.
	sleep func(time.Duration)
}

func New(interval time.Duration) *Throttle {
	return &Throttle{
		interval: interval,
		sleep:    time.Sleep,
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous call, then records the current call time.
func (t *Throttle) Wait() {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.lastCall)
	if wait := t.interval - elapsed; wait > 0 {
		t.sleep(wait)
	}

	t.lastCall = time.Now()
}
