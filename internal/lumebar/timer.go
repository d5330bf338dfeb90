package lumebar

import (
	"sync"
	"time"
)

// boundaryTicker fires on wall-clock multiples of its interval instead of
// drifting from whenever it happened to be started; a 60s ticker started at
// 12:00:23 first fires at 12:01:00. Ticks are delivered through a single-slot
// channel, so a slow consumer coalesces ticks instead of queueing them.
type boundaryTicker struct {
	interval time.Duration
	now      func() time.Time
	C        chan time.Time
	quit     chan struct{}
	done     chan struct{}
	once     sync.Once
}

func newBoundaryTicker(interval time.Duration) *boundaryTicker {
	return &boundaryTicker{
		interval: interval,
		now:      time.Now,
		C:        make(chan time.Time, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (t *boundaryTicker) start() {
	go t.loop()
}

// stop terminates the ticker and waits for its goroutine to exit. Safe to
// call more than once.
func (t *boundaryTicker) stop() {
	t.once.Do(func() { close(t.quit) })
	<-t.done
}

func (t *boundaryTicker) loop() {
	defer close(t.done)

	for {
		timer := time.NewTimer(untilNextBoundary(t.now(), t.interval))

		select {
		case <-t.quit:
			timer.Stop()
			return
		case fired := <-timer.C:
			select {
			case t.C <- fired:
			default:
			}
		}
	}
}

// untilNextBoundary returns how long to sleep so the next wakeup lands on a
// wall-clock multiple of interval. On an exact boundary it returns the full
// interval.
func untilNextBoundary(now time.Time, interval time.Duration) time.Duration {
	return interval - time.Duration(now.UnixNano())%interval
}
