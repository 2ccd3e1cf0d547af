package throttle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitSleepsOnlyWhenCallsAreClose(t *testing.T) {
	var slept []time.Duration

	th := New(300 * time.Millisecond)
	th.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}

	// First call: lastCall is zero, elapsed is huge, no sleep.
	th.Wait()
	assert.Empty(t, slept)

	// Immediate second call must wait out the remainder of the interval.
	th.Wait()
	assert.Len(t, slept, 1)
	assert.LessOrEqual(t, slept[0], 300*time.Millisecond)
	assert.Greater(t, slept[0], time.Duration(0))
}

func TestWaitIsSafeForConcurrentUse(t *testing.T) {
	th := New(time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th.Wait()
		}()
	}
	wg.Wait()

	assert.False(t, th.lastCall.IsZero())
}
