package resource

import (
	"sync"
)

// Table owns values behind integer handles.
type Table[T any] struct {
	backend   *localBackend[T]
	observers []Observer[T]
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		backend: newLocalBackend[T](),
	}
}

// Insert adds a value and returns its handle.
// Returns ErrClosed after Close.
func (t *Table[T]) Insert(value T) (Handle, error) {
	handle, err := t.backend.create(value)
	if err != nil {
		return 0, err
	}

	t.notify(Event[T]{
		Type:   EventCreated,
		Handle: handle,
		Value:  value,
	})

	return handle, nil
}

// Get retrieves a value by handle.
func (t *Table[T]) Get(handle Handle) (T, bool) {
	return t.backend.get(handle)
}

// Remove drops a resource and returns (value, true) if found.
func (t *Table[T]) Remove(handle Handle) (T, bool) {
	value, ok := t.backend.drop(handle)
	if !ok {
		return value, false
	}

	t.dropped(Event[T]{
		Type:   EventDropped,
		Handle: handle,
		Value:  value,
	})

	return value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer[T]) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live resources.
func (t *Table[T]) Len() int {
	return t.backend.len()
}

// Close drops every live resource and rejects further inserts.
// Closing twice is a no-op.
func (t *Table[T]) Close() error {
	for _, e := range t.backend.close() {
		t.dropped(e)
	}
	return nil
}

func (t *Table[T]) dropped(e Event[T]) {
	if d, ok := any(e.Value).(Dropper); ok {
		d.Drop()
	}
	t.notify(e)
}

func (t *Table[T]) notify(e Event[T]) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
