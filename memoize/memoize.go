// Package memoize provides the session-scoped compute-once cache that
// descriptor identity is built on.
//
// A Func guarantees at most one execution of its compute callback per
// key, even under concurrent requests. Computations are serialized:
// a Func runs one compute at a time, so a cycle spanning two keys can
// never end up split across two goroutines waiting on each other. The
// callback receives a publish function: publishing a partially
// constructed value before recursing into its body is what lets cyclic
// graphs (class A referencing class B referencing class A) terminate:
// a re-entrant request observes the published placeholder instead of
// recursing into its own computation.
package memoize

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

type entry[V any] struct {
	placeholder V
	published   bool

	val  V
	ok   bool
	done bool
}

// Func memoizes a two-outcome computation ("value" or "absent") per key.
// Absent results are cached as firmly as present ones: a key computed as
// absent is never recomputed.
type Func[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
	compute func(K, func(V)) (V, bool)

	lock  sync.Mutex
	owner atomic.Uint64
}

// NewFunc creates a memoized function around compute. The compute
// callback must call publish with the in-flight value before triggering
// any recursion that may reach the same key; a re-entrant Get before
// publish yields absent rather than recursing forever.
func NewFunc[K comparable, V any](compute func(key K, publish func(V)) (V, bool)) *Func[K, V] {
	return &Func[K, V]{
		entries: make(map[K]*entry[V]),
		compute: compute,
	}
}

// Get returns the memoized result for key, computing it on first use.
// All computation happens under a single per-Func lock: concurrent
// callers wait for the in-flight computation to finish, while calls
// from inside a computation run re-entrantly and see published
// placeholders for keys still being built.
func (f *Func[K, V]) Get(key K) (V, bool) {
	gid := goroutineID()
	if f.owner.Load() == gid {
		return f.resolve(key)
	}
	f.lock.Lock()
	f.owner.Store(gid)
	defer func() {
		f.owner.Store(0)
		f.lock.Unlock()
	}()
	return f.resolve(key)
}

// resolve runs with the computation lock held, either directly or
// re-entrantly from inside a compute on the owning goroutine. Only the
// owner ever observes an in-flight entry.
func (f *Func[K, V]) resolve(key K) (V, bool) {
	f.mu.Lock()
	e, exists := f.entries[key]
	if exists {
		defer f.mu.Unlock()
		if e.done {
			return e.val, e.ok
		}
		if e.published {
			return e.placeholder, true
		}
		var zero V
		return zero, false
	}
	e = &entry[V]{}
	f.entries[key] = e
	f.mu.Unlock()

	completed := false
	defer func() {
		// A panicking compute settles the entry as absent so later
		// requests do not rerun it.
		if !completed {
			f.mu.Lock()
			e.done = true
			f.mu.Unlock()
		}
	}()

	v, ok := f.compute(key, func(p V) {
		f.mu.Lock()
		e.placeholder = p
		e.published = true
		f.mu.Unlock()
	})
	f.mu.Lock()
	e.val, e.ok, e.done = v, ok, true
	f.mu.Unlock()
	completed = true
	return v, ok
}

// IsCached reports whether key has a completed result. Used by tests
// and diagnostics; never consulted on the resolution path.
func (f *Func[K, V]) IsCached(key K) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, exists := f.entries[key]
	return exists && e.done
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID parses the current goroutine's id from its stack header.
// The runtime offers no direct accessor; this is the standard trick for
// re-entrancy detection. Ids start at 1, so 0 doubles as "no owner".
func goroutineID() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	id, err := strconv.ParseUint(string(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
