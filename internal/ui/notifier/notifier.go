// Package notifier fans out change signals from the editor state to the
// connected SSE streams.
package notifier

import (
	"strings"
	"sync"
)

// Reason is a set of view regions that changed.
type Reason uint8

// View regions.
const (
	Tree Reason = 1 << iota
	Alerts
	Breadcrumbs
	Modal
	Theme

	All = Tree | Alerts | Breadcrumbs | Modal | Theme
)

// Has reports whether r includes any of other.
func (r Reason) Has(other Reason) bool {
	return r&other != 0
}

func (r Reason) String() string {
	if r == 0 {
		return "none"
	}
	names := []string{"tree", "alerts", "breadcrumbs", "modal", "theme"}
	var parts []string
	for i, name := range names {
		if r&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Subscription receives a ping on C whenever something changed. Take returns
// and clears the regions accumulated since the last call, so a slow reader
// never loses a region even when pings coalesce.
type Subscription struct {
	C <-chan struct{}

	ch      chan struct{}
	mu      sync.Mutex
	pending Reason
}

// Take returns the accumulated regions and resets them.
func (s *Subscription) Take() Reason {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.pending
	s.pending = 0
	return r
}

func (s *Subscription) mark(r Reason) {
	s.mu.Lock()
	s.pending |= r
	s.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Notifier broadcasts change signals to all subscriptions.
type Notifier struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a listener. The caller must Unsubscribe when done.
func (n *Notifier) Subscribe() *Subscription {
	ch := make(chan struct{}, 1)
	s := &Subscription{C: ch, ch: ch}
	n.mu.Lock()
	n.subs[s] = struct{}{}
	n.mu.Unlock()
	return s
}

// Unsubscribe removes a listener and closes its channel.
func (n *Notifier) Unsubscribe(s *Subscription) {
	n.mu.Lock()
	_, ok := n.subs[s]
	delete(n.subs, s)
	n.mu.Unlock()
	if ok {
		close(s.ch)
	}
}

// Broadcast marks r on every subscription and pings it. Never blocks.
func (n *Notifier) Broadcast(r Reason) {
	if r == 0 {
		return
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	for s := range n.subs {
		s.mark(r)
	}
}

// Len returns the number of live subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}
