package progress

import (
	"sync"
	"testing"
)

func TestTrackerCounters(t *testing.T) {
	t.Parallel()
	tracker := NewTracker("Downloading", nil)
	tracker.SetTotal(100)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Add(10)
		}()
	}
	wg.Wait()

	done, total := tracker.Progress()
	if done != 100 || total != 100 {
		t.Fatalf("expected 100/100, got %d/%d", done, total)
	}
	fraction, ok := tracker.Fraction()
	if !ok || fraction != 1 {
		t.Fatalf("expected fraction 1, got %v (ok=%v)", fraction, ok)
	}
}

func TestTrackerFractionUnknownTotal(t *testing.T) {
	t.Parallel()
	tracker := NewTracker("Launching", nil)
	if _, ok := tracker.Fraction(); ok {
		t.Fatalf("expected no fraction while total is zero")
	}
}

func TestTrackerFinishFirstWins(t *testing.T) {
	t.Parallel()
	tracker := NewTracker("Verifying", nil)
	tracker.Finish(false)
	first, ok := tracker.FinishedAt()
	if !ok {
		t.Fatalf("expected finished")
	}
	tracker.Finish(true)
	second, _ := tracker.FinishedAt()
	if !second.Equal(first) {
		t.Fatalf("expected first finish time to stick")
	}
	if !tracker.Failed() {
		t.Fatalf("expected failed flag to be sticky")
	}
}

func TestNotifierNonBlocking(t *testing.T) {
	t.Parallel()
	var notifier Notifier
	events := notifier.Subscribe()

	// A subscriber that never drains must not block notifiers.
	for range 5 {
		notifier.Notify()
	}
	select {
	case <-events:
	default:
		t.Fatalf("expected one pending wakeup")
	}
	select {
	case <-events:
		t.Fatalf("expected wakeups to coalesce")
	default:
	}
}

func TestTrackersAppendOnly(t *testing.T) {
	t.Parallel()
	var trackers Trackers
	a := NewTracker("a", nil)
	b := NewTracker("b", nil)
	trackers.Push(a)
	trackers.Push(b)
	snapshot := trackers.Snapshot()
	if len(snapshot) != 2 || snapshot[0] != a || snapshot[1] != b {
		t.Fatalf("unexpected snapshot: %#v", snapshot)
	}
}
