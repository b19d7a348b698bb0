//go:build goexperiment.arenas
// +build goexperiment.arenas

// Package arena provides a thin wrapper around Go's experimental arena package.
// It simplifies the API for use in sslcache's configuration cache.

// Package arena wraps Go's standard `arena` experimental package and hides its
// verbose low‑level API behind a tiny, stable surface.  We expose only the
// primitives required:
//   • `New()` – construct an arena.
//   • `Free()` – release all memory at once (O(1)).
//   • `NewValue[T]()` – allocate a single value of type T.
//
// The wrapper is intentionally minimal: **no pooling, no stats, no GC hooks**.
// Keeping it thin also simplifies future migration should the upstream
// `arena` API change.
//
// Concurrency
// -----------
// arena.Arena is *not* thread‑safe; the configuration cache that owns one
// already runs single-threaded per §5 of the cache's design (no concurrent
// callers reach a single cache instance), so we do not add any locking here.
//
// ⚠️  DISCLAIMER  ----------------------------------------------
// Using arenas bypasses the garbage collector; ensure objects allocated inside
// never escape to the heap **after** Free() is called. In sslcache this is
// safe because a configuration cache's arena is freed only when its owning
// generation tears down, at which point every entry it backed has already had
// its family's free() called and no caller reference points into the arena
// any more (callers hold independent heap-allocated refcount wrappers, not
// arena pointers — see pkg/object.go).
// -------------------------------------------------------------
//
// © 2025 sslcache authors. MIT License.

package arena

import (
	"arena" // standard library experimental package
)

// Arena is a thin new‑type wrapper that prevents external packages from
// directly depending on `arena.Arena`, giving us the freedom to switch to a
// different allocator if needed.

type Arena struct{ ar arena.Arena }

// New constructs an empty arena ready for allocations.
func New() *Arena {
	return &Arena{ar: *arena.NewArena()}
}

// Free releases **all** memory allocated in the arena.  After the call, any
// pointer previously returned from NewValue becomes invalid.
func (a *Arena) Free() {
	a.ar.Free()
}

// NewValue allocates zero‑initialised T inside the arena and returns a pointer to it.
// The pointer is valid until Free() on the arena.
func NewValue[T any](a *Arena) *T { return arena.New[T](&a.ar) }
