package lumebar

import (
	"testing"
	"time"
)

func TestUntilNextBoundary(t *testing.T) {
	at := func(sec, nsec int) time.Time {
		return time.Date(2026, time.April, 15, 12, 0, sec, nsec, time.UTC)
	}

	if got := untilNextBoundary(at(23, int(500*time.Millisecond)), time.Minute); got != 36500*time.Millisecond {
		t.Errorf("expected 36.5s until the next minute, got %s", got)
	}

	// On an exact boundary the next wakeup is a full interval away.
	if got := untilNextBoundary(at(0, 0), time.Minute); got != time.Minute {
		t.Errorf("expected a full interval on the boundary, got %s", got)
	}

	if got := untilNextBoundary(at(59, 0), 30*time.Second); got != time.Second {
		t.Errorf("expected 1s until the next 30s boundary, got %s", got)
	}
}

func TestBoundaryTickerDelivers(t *testing.T) {
	ticker := newBoundaryTicker(10 * time.Millisecond)
	ticker.start()

	select {
	case <-ticker.C:
	case <-time.After(time.Second):
		t.Fatal("expected a tick within the interval")
	}

	ticker.stop()
	ticker.stop() // stop is idempotent
}
