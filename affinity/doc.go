// Package affinity enforces thread affinity on resources that must only be used
// from the thread that created them.
//
// A Guard pairs a handle with the identity of the thread that constructed it.
// Every guarded access compares the caller's identity with the owner's and fails
// with a thread_affinity error before the handle is touched:
//
//	g := affinity.New(face, affinity.WithLabel("font.Face"))
//
//	n, err := affinity.Do(g, func(f *Face) (int, error) {
//	    return f.GlyphCount(), nil
//	})
//
// The guard rejects cross-thread calls, it does not serialize them. There is no
// mutex: the owner identity is immutable, so the comparison needs no
// synchronization, and state after the comparison is only ever touched by the
// owner.
//
// # Thread Identity
//
// Go has no user-visible threads, so identity is pluggable through a Source:
//
//	affinity.Goroutine  // current goroutine id (default)
//	affinity.OSThread   // OS thread id, for cgo handles bound to a native thread
//
// When using OSThread the owning goroutine must stay on one OS thread:
//
//	unpin := affinity.Pin()
//	defer unpin()
//	g := affinity.New(h, affinity.WithSource(affinity.OSThread))
//
// # Violations
//
// A violation is a caller defect, not a transient failure. The error carries the
// expected and actual identities; the correct fix is to call from the owner, never
// to retry in place.
package affinity
