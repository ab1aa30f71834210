package coordinator

import (
	"slices"
	"sync"
)

// Trail is the breadcrumb state. It is replaced wholesale on every navigation.
type Trail struct {
	mu     sync.RWMutex
	labels []string
}

// NewTrail creates an empty trail.
func NewTrail() *Trail {
	return &Trail{labels: []string{}}
}

// Set replaces the trail with a copy of labels. An empty or nil slice clears it.
func (t *Trail) Set(labels []string) {
	c := slices.Clone(labels)
	if c == nil {
		c = []string{}
	}
	t.mu.Lock()
	t.labels = c
	t.mu.Unlock()
}

// Get returns a copy of the trail.
func (t *Trail) Get() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := slices.Clone(t.labels)
	if c == nil {
		c = []string{}
	}
	return c
}
