package cache

// generation.go ties a ConfigCache to the arena that backs it and to the
// generation it was reloaded from, implementing the cross-generation
// inheritance handoff (§4.4, §6 "a new Generation ... may adopt parsed
// objects from a previous generation's ConfigCache during a narrow
// single-threaded handoff window"). It plays the role the teacher's
// examples/disk_eject reload loop plays for arena-cache: one Generation
// per configuration reload, torn down in full once nothing references it.
//
// © 2025 sslcache authors. MIT License.

import (
	"time"

	"github.com/google/uuid"

	arena "github.com/Voskan/sslcache/internal/arena"
)

// Generation wraps one configuration reload's ConfigCache together with the
// arena it is allocated from. Embedders create a new Generation on every
// configuration reload, pointing it at the previous Generation so its
// ConfigCache can inherit from it, then tear the previous one down once the
// reload has fully taken over.
type Generation struct {
	ID      uuid.UUID
	Config  *ConfigCache
	Created time.Time

	arena *arena.Arena
}

// NewGeneration constructs a new Generation. prev is the Generation being
// replaced, or nil for the first load; when prev is non-nil and WithInherit
// is enabled (the default), the new ConfigCache will adopt unchanged
// objects from prev.Config instead of re-parsing them (§4.4 step 5c).
func NewGeneration(prev *Generation, opts ...Option) *Generation {
	ar := arena.New()
	var prevCache *ConfigCache
	if prev != nil {
		prevCache = prev.Config
	}
	return &Generation{
		ID:      uuid.New(),
		Config:  newConfigCache(ar, prevCache, opts...),
		Created: time.Now(),
		arena:   ar,
	}
}

// Teardown releases every object this generation's configuration cache
// still holds and frees its arena in one O(1) call. Callers must not hold
// onto a Generation's Config after calling Teardown; any handle obtained
// through Fetch before this point remains independently valid, per the
// refcounting contract in pkg/object.go.
func (g *Generation) Teardown() {
	g.Config.teardown()
}
