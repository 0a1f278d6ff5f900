package progress

import (
	"sync"
	"sync/atomic"
	"time"
)

// Tracker carries shared per-phase progress counters. Counters are atomics
// safe for concurrent update from download tasks; the finished transition
// uses compare-and-swap so only the first finisher records the time.
type Tracker struct {
	mu    sync.RWMutex
	title string

	done  atomic.Int64
	total atomic.Int64

	finishedAt atomic.Pointer[time.Time]
	failed     atomic.Bool

	notifier *Notifier
}

// NewTracker creates a tracker that signals notifier on Notify.
func NewTracker(title string, notifier *Notifier) *Tracker {
	return &Tracker{title: title, notifier: notifier}
}

// Title returns the current phase title.
func (t *Tracker) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// SetTitle replaces the phase title.
func (t *Tracker) SetTitle(title string) {
	t.mu.Lock()
	t.title = title
	t.mu.Unlock()
}

// Add advances the done counter by n bytes.
func (t *Tracker) Add(n int64) {
	t.done.Add(n)
}

// SetTotal sets the total byte count for the phase.
func (t *Tracker) SetTotal(n int64) {
	t.total.Store(n)
}

// AddTotal grows the total byte count for the phase.
func (t *Tracker) AddTotal(n int64) {
	t.total.Add(n)
}

// Progress returns the current done and total counters.
func (t *Tracker) Progress() (done, total int64) {
	return t.done.Load(), t.total.Load()
}

// Fraction returns completion in [0, 1]; ok is false while total is unknown.
func (t *Tracker) Fraction() (fraction float64, ok bool) {
	done, total := t.Progress()
	if total == 0 {
		return 0, false
	}
	return min(max(float64(done)/float64(total), 0), 1), true
}

// Finish records completion. The first caller wins the completion time;
// a failed finish is sticky regardless of ordering.
func (t *Tracker) Finish(failed bool) {
	if failed {
		t.failed.Store(true)
	}
	now := time.Now()
	t.finishedAt.CompareAndSwap(nil, &now)
}

// FinishedAt returns the completion time if the phase has finished.
func (t *Tracker) FinishedAt() (time.Time, bool) {
	at := t.finishedAt.Load()
	if at == nil {
		return time.Time{}, false
	}
	return *at, true
}

// Failed reports whether the phase finished with an error.
func (t *Tracker) Failed() bool {
	return t.failed.Load()
}

// Notify signals subscribers that counters changed. Consumers re-read the
// shared counters; the event carries no payload.
func (t *Tracker) Notify() {
	if t.notifier != nil {
		t.notifier.Notify()
	}
}

// Trackers is the shared append-only list of phase trackers exposed to
// whatever UI observes a launch attempt.
type Trackers struct {
	mu   sync.RWMutex
	list []*Tracker
}

// Push appends a tracker to the shared list.
func (ts *Trackers) Push(t *Tracker) {
	ts.mu.Lock()
	ts.list = append(ts.list, t)
	ts.mu.Unlock()
}

// Snapshot returns the trackers pushed so far.
func (ts *Trackers) Snapshot() []*Tracker {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	out := make([]*Tracker, len(ts.list))
	copy(out, ts.list)
	return out
}
