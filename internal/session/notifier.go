package session

import (
	"sync"

	"github.com/google/uuid"
)

// Topic names one of the coordinator's change-notification channels.
type Topic string

const (
	// TopicCallstackChanged fires after any mutation of the callstack or
	// the selected frame index.
	TopicCallstackChanged Topic = "callstack-changed"

	// TopicThreadsChanged fires after any mutation of the thread map, the
	// session scalars, or the debugger mode.
	TopicThreadsChanged Topic = "threads-changed"
)

// Listener receives a zero-argument change signal.
type Listener func()

// Subscription identifies an attached listener for later detach.
type Subscription string

type listenerEntry struct {
	id Subscription
	fn Listener
}

// Notifier fans change signals out to subscribers. Listeners on one topic
// fire in attachment order; subscribers may attach and detach at any time.
type Notifier struct {
	mu        sync.Mutex
	listeners map[Topic][]listenerEntry
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[Topic][]listenerEntry)}
}

// Attach subscribes fn to the given topic. Nil listeners are ignored and
// return an empty subscription.
func (n *Notifier) Attach(topic Topic, fn Listener) Subscription {
	if fn == nil {
		return ""
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	id := Subscription(uuid.New().String())
	n.listeners[topic] = append(n.listeners[topic], listenerEntry{id: id, fn: fn})
	return id
}

// Detach removes a subscription. It reports whether anything was removed.
func (n *Notifier) Detach(sub Subscription) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for topic, entries := range n.listeners {
		for i, e := range entries {
			if e.id == sub {
				n.listeners[topic] = append(entries[:i], entries[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Fire invokes every listener attached to topic, in attachment order.
func (n *Notifier) Fire(topic Topic) {
	n.mu.Lock()
	entries := make([]listenerEntry, len(n.listeners[topic]))
	copy(entries, n.listeners[topic])
	n.mu.Unlock()

	for _, e := range entries {
		e.fn()
	}
}

// Count returns the number of listeners attached to topic.
func (n *Notifier) Count(topic Topic) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners[topic])
}
