package affinity

import (
	"fmt"
	"io"

	"github.com/wippyai/fontguard/errors"
)

// Guard owns a handle that may only be used from the thread that created the guard.
//
// All fields except released are fixed at construction. released is written and
// read only after a successful owner check, so it is never shared across threads.
type Guard[T any] struct {
	handle    T
	source    Source
	label     string
	observers []Observer
	owner     ThreadID
	released  bool
}

// Option configures a Guard.
type Option func(*options)

type options struct {
	source    Source
	label     string
	observers []Observer
}

// WithSource selects how thread identity is determined. Defaults to Goroutine.
func WithSource(s Source) Option {
	return func(o *options) {
		if s != nil {
			o.source = s
		}
	}
}

// WithLabel names the guarded resource in errors and events.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithObserver registers observers for guard events.
func WithObserver(obs ...Observer) Option {
	return func(o *options) {
		for _, ob := range obs {
			if ob != nil {
				o.observers = append(o.observers, ob)
			}
		}
	}
}

// New wraps handle and records the calling thread as its owner.
func New[T any](handle T, opts ...Option) *Guard[T] {
	o := options{source: Goroutine}
	for _, opt := range opts {
		opt(&o)
	}
	if o.label == "" {
		o.label = fmt.Sprintf("%T", handle)
	}

	g := &Guard[T]{
		handle:    handle,
		source:    o.source,
		label:     o.label,
		observers: o.observers,
		owner:     o.source.Current(),
	}
	g.notify(EventCreated, g.owner)
	return g
}

// Owner returns the identity of the thread that created the guard.
func (g *Guard[T]) Owner() ThreadID { return g.owner }

// Label returns the resource label used in errors and events.
func (g *Guard[T]) Label() string { return g.label }

// Check reports whether the caller may use the handle.
// It returns a thread_affinity error for non-owners and a released error once
// the owner has released the handle.
func (g *Guard[T]) Check() error {
	if err := g.checkOwner(); err != nil {
		return err
	}
	if g.released {
		return errors.Released(g.label)
	}
	return nil
}

func (g *Guard[T]) checkOwner() error {
	cur := g.source.Current()
	if cur == g.owner {
		return nil
	}
	g.notify(EventViolation, cur)
	return errors.ThreadAffinity(g.label, g.source.Name(), uint64(g.owner), uint64(cur))
}

// Handle returns the handle after a successful Check.
// The caller must not let the handle escape to other threads.
func (g *Guard[T]) Handle() (T, error) {
	if err := g.Check(); err != nil {
		var zero T
		return zero, err
	}
	return g.handle, nil
}

// Run calls fn with the handle if the caller owns it.
func (g *Guard[T]) Run(fn func(T) error) error {
	if err := g.Check(); err != nil {
		return err
	}
	return fn(g.handle)
}

// Do calls fn with the guarded handle if the caller owns it and returns fn's
// result unchanged. fn is never called when the check fails.
func Do[T, R any](g *Guard[T], fn func(T) (R, error)) (R, error) {
	if err := g.Check(); err != nil {
		var zero R
		return zero, err
	}
	return fn(g.handle)
}

// Release ends the guard's lifetime. fn, when non-nil, releases the handle;
// otherwise the handle's own Release or Close method is used if it has one.
// Releasing twice from the owner is a no-op.
func (g *Guard[T]) Release(fn func(T) error) error {
	if err := g.checkOwner(); err != nil {
		return err
	}
	if g.released {
		return nil
	}
	g.released = true

	h := g.handle
	var zero T
	g.handle = zero

	var err error
	if fn != nil {
		err = fn(h)
	} else {
		err = releaseHandle(h)
	}
	g.notify(EventReleased, g.owner)

	if err != nil {
		return errors.Wrap(errors.PhaseRelease, errors.KindInvalidData, err, "release "+g.label)
	}
	return nil
}

func releaseHandle(h any) error {
	switch r := h.(type) {
	case interface{ Release() error }:
		return r.Release()
	case interface{ Release() }:
		r.Release()
	case io.Closer:
		return r.Close()
	}
	return nil
}

func (g *Guard[T]) notify(t EventType, caller ThreadID) {
	if len(g.observers) == 0 {
		return
	}
	e := Event{
		Type:   t,
		Label:  g.label,
		Source: g.source.Name(),
		Owner:  g.owner,
		Caller: caller,
	}
	for _, o := range g.observers {
		o.OnGuardEvent(e)
	}
}
