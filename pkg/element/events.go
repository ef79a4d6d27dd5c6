package element

import (
	"maps"
	"strings"
	"sync"
)

// Event is a notification emitted by an element. Payload is a copy of the
// relevant attributes taken when the event was created.
type Event struct {
	ID       string
	Type     string
	Target   string
	Bubbles  bool
	Composed bool
	Payload  map[string]string
}

// Listener receives dispatched events.
type Listener func(Event)

type listenerEntry struct {
	id uint64
	fn Listener
}

// EventTarget is a node in a composition tree that can hold listeners and
// forward bubbling events to its parent. A target marked as a boundary stands
// for an encapsulation root: only composed events propagate past it.
type EventTarget struct {
	mu        sync.Mutex
	listeners map[string][]listenerEntry
	nextID    uint64
	parent    *EventTarget
	boundary  bool
}

// NewEventTarget returns an empty target with no parent.
func NewEventTarget() *EventTarget {
	return &EventTarget{listeners: make(map[string][]listenerEntry)}
}

// newBoundary returns a target acting as an encapsulation root under parent.
func newBoundary(parent *EventTarget) *EventTarget {
	target := NewEventTarget()
	target.boundary = true
	target.parent = parent
	return target
}

// AddEventListener registers fn for eventType and returns a function that
// removes the registration. The returned function is idempotent.
func (t *EventTarget) AddEventListener(eventType string, fn Listener) func() {
	eventType = strings.TrimSpace(eventType)
	if eventType == "" || fn == nil {
		return func() {}
	}

	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.listeners[eventType] = append(t.listeners[eventType], listenerEntry{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { t.removeListener(eventType, id) })
	}
}

func (t *EventTarget) removeListener(eventType string, id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.listeners[eventType]
	for idx, entry := range entries {
		if entry.id == id {
			t.listeners[eventType] = append(entries[:idx:idx], entries[idx+1:]...)
			break
		}
	}
	if len(t.listeners[eventType]) == 0 {
		delete(t.listeners, eventType)
	}
}

// RemoveAll drops every listener registered on t.
func (t *EventTarget) RemoveAll() {
	t.mu.Lock()
	t.listeners = make(map[string][]listenerEntry)
	t.mu.Unlock()
}

// ListenerCount reports how many listeners are registered for eventType.
func (t *EventTarget) ListenerCount(eventType string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners[eventType])
}

// SetParent attaches t under parent. Pass nil to detach.
func (t *EventTarget) SetParent(parent *EventTarget) {
	t.mu.Lock()
	t.parent = parent
	t.mu.Unlock()
}

// Parent returns the target t forwards bubbling events to.
func (t *EventTarget) Parent() *EventTarget {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.parent
}

// Dispatch delivers evt to t's listeners and, for bubbling events, to every
// ancestor. Listeners run synchronously in registration order; the caller
// does not wait on any acknowledgement.
func (t *EventTarget) Dispatch(evt Event) {
	for current := t; current != nil; {
		current.deliver(evt)
		if !evt.Bubbles {
			return
		}
		if current.isBoundary() && !evt.Composed {
			return
		}
		current = current.Parent()
	}
}

func (t *EventTarget) isBoundary() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.boundary
}

func (t *EventTarget) deliver(evt Event) {
	t.mu.Lock()
	entries := append([]listenerEntry(nil), t.listeners[evt.Type]...)
	t.mu.Unlock()

	for _, entry := range entries {
		// each listener gets its own payload copy
		delivered := evt
		delivered.Payload = maps.Clone(evt.Payload)
		entry.fn(delivered)
	}
}
