package progress

import "sync"

// Notifier fans out payloadless "state changed" events. Sends never block:
// a subscriber that has not drained its channel keeps exactly one pending
// wakeup and re-reads shared state when it gets to it.
type Notifier struct {
	mu   sync.Mutex
	subs []chan struct{}
}

// Subscribe registers a new subscriber channel.
func (n *Notifier) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs = append(n.subs, ch)
	n.mu.Unlock()
	return ch
}

// Notify wakes every subscriber without blocking.
func (n *Notifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
