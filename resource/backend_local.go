package resource

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("resource table closed")

// localBackend is the in-memory slot store behind Table.
type localBackend[T any] struct {
	entries  []entry[T]
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry[T any] struct {
	value T
	valid bool
}

func newLocalBackend[T any]() *localBackend[T] {
	return &localBackend[T]{
		entries:  make([]entry[T], 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

func (b *localBackend[T]) create(value T) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	e := entry[T]{value: value, valid: true}

	if len(b.freeList) > 0 {
		handle := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[handle-1] = e
		return handle, nil
	}

	b.entries = append(b.entries, e)
	return Handle(len(b.entries)), nil
}

func (b *localBackend[T]) get(handle Handle) (T, bool) {
	var zero T
	if handle == 0 {
		return zero, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return zero, false
	}

	e := b.entries[idx]
	if !e.valid {
		return zero, false
	}
	return e.value, true
}

func (b *localBackend[T]) drop(handle Handle) (T, bool) {
	var zero T
	if handle == 0 {
		return zero, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return zero, false
	}

	e := &b.entries[idx]
	if !e.valid {
		return zero, false
	}

	value := e.value
	e.valid = false
	e.value = zero
	b.freeList = append(b.freeList, handle)

	return value, true
}

// close marks the backend closed and hands back every live entry.
func (b *localBackend[T]) close() []Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var live []Event[T]
	for i := range b.entries {
		if b.entries[i].valid {
			live = append(live, Event[T]{
				Type:   EventDropped,
				Handle: Handle(i + 1),
				Value:  b.entries[i].value,
			})
		}
	}

	b.entries = nil
	b.freeList = nil
	return live
}

func (b *localBackend[T]) len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}
