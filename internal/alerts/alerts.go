// Package alerts implements the toast alert queue: an ordered list of timed
// notifications that expire on their own unless their duration is zero.
package alerts

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDuration is how long an alert stays up when no duration is given.
const DefaultDuration = 3000 * time.Millisecond

// ErrIndexOutOfRange is returned by Close for an index with no alert.
var ErrIndexOutOfRange = errors.New("alerts: index out of range")

// Kind is the severity of an alert. The value doubles as a CSS modifier.
type Kind string

// Alert kinds.
const (
	Info    Kind = "info"
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

var titleCaser = cases.Title(language.English)

// Title returns the kind as a heading, e.g. "Warning".
func (k Kind) Title() string {
	return titleCaser.String(string(k))
}

// ParseKind maps a string to a Kind, falling back to Info.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case Success, Warning, Error:
		return Kind(s)
	default:
		return Info
	}
}

// Entry is a single alert as seen by callers.
type Entry struct {
	Text     string
	Kind     Kind
	Duration time.Duration
}

// Timer is the handle returned by an AfterFunc scheduler.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type item struct {
	Entry
	id    uint64
	timer Timer
}

// Queue is the ordered alert list. It is safe for concurrent use.
type Queue struct {
	mu              sync.Mutex
	items           []*item
	nextID          uint64
	defaultDuration time.Duration
	afterFunc       AfterFunc
	onChange        func()
}

// Option configures a Queue.
type Option func(*Queue)

// WithDefaultDuration sets the duration used when Add is called without one.
func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) {
		if d >= 0 {
			q.defaultDuration = d
		}
	}
}

// WithAfterFunc replaces the timer scheduler, mainly for tests.
func WithAfterFunc(f AfterFunc) Option {
	return func(q *Queue) {
		if f != nil {
			q.afterFunc = f
		}
	}
}

// WithOnChange registers a callback fired after an alert expires.
// Explicit Add and Close do not fire it; their callers already know.
func WithOnChange(f func()) Option {
	return func(q *Queue) {
		q.onChange = f
	}
}

// New creates an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		defaultDuration: DefaultDuration,
		afterFunc:       stdAfterFunc,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// DefaultDuration returns the duration applied when Add gets none.
func (q *Queue) DefaultDuration() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.defaultDuration
}

// Add appends an alert and returns it. The optional duration overrides the
// default; zero keeps the alert until it is closed, negative values count as zero.
func (q *Queue) Add(text string, kind Kind, duration ...time.Duration) Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	d := q.defaultDuration
	if len(duration) > 0 {
		d = max(duration[0], 0)
	}

	q.nextID++
	it := &item{
		Entry: Entry{Text: text, Kind: kind, Duration: d},
		id:    q.nextID,
	}
	if d > 0 {
		id := it.id
		it.timer = q.afterFunc(d, func() { q.expire(id) })
	}
	q.items = append(q.items, it)

	return it.Entry
}

// Close removes the alert at index. An out-of-range index leaves the queue
// untouched and returns ErrIndexOutOfRange.
func (q *Queue) Close(index int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(q.items))
	}

	it := q.items[index]
	if it.timer != nil {
		it.timer.Stop()
	}
	q.items = slices.Delete(q.items, index, index+1)
	return nil
}

// List returns a copy of the alerts in queue order.
func (q *Queue) List() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Entry, len(q.items))
	for i, it := range q.items {
		out[i] = it.Entry
	}
	return out
}

// Len returns the number of alerts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Stop cancels all pending expiry timers. Alerts stay in the queue.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, it := range q.items {
		if it.timer != nil {
			it.timer.Stop()
			it.timer = nil
		}
	}
}

// expire removes the alert with id if it is still queued.
func (q *Queue) expire(id uint64) {
	q.mu.Lock()
	idx := slices.IndexFunc(q.items, func(it *item) bool { return it.id == id })
	if idx >= 0 {
		q.items = slices.Delete(q.items, idx, idx+1)
	}
	onChange := q.onChange
	q.mu.Unlock()

	if idx >= 0 && onChange != nil {
		onChange()
	}
}
