package cache

// connection_cache.go implements the Connection Cache (§4.5): a bounded
// cache consulted on the hot path, evicting by capacity, inactivity, and
// validity. Its recency list reuses the Entry.prev/next back-pointers
// (§4.3, §9 "cyclic ownership avoidance") the way the teacher's
// internal/clockpro list threads its metaNodes, but the eviction decision
// itself is the spec's own deterministic three-candidate-tail scan
// (§4.5.1), not CLOCK-Pro's hot/cold/test promotion.
//
// Unlike ConfigCache, entries here are plain heap allocations: the spec's
// §9 Open Question on "split node ownership" resolves in favor of letting
// Go's GC reclaim an Entry once it is both unindexed and detached from
// the recency list, with no arena involved.
//
// © 2025 sslcache authors. MIT License.

import (
	"time"

	"go.uber.org/zap"
)

// ConnectionCache is the bounded, hot-path cache (§4.5).
type ConnectionCache struct {
	index *objIndex

	head *Entry // recency list, most-recently-used first; nil when empty
	size int

	capacity        int
	inactivityLimit time.Duration
	validityLimit   time.Duration

	deps    loadDeps
	metrics metricsSink
	logger  *zap.Logger
	now     func() time.Time
}

// NewConnectionCache constructs a bounded connection cache. capacity is the
// maximum number of live entries (§4.5 Invariant 3); inactivityLimit and
// validityLimit are the two time-based eviction bounds from the same
// section. A zero duration disables that bound.
func NewConnectionCache(capacity int, inactivityLimit, validityLimit time.Duration, opts ...Option) *ConnectionCache {
	cfg := applyOptions(opts)
	return &ConnectionCache{
		index:           newObjIndex(),
		capacity:        capacity,
		inactivityLimit: inactivityLimit,
		validityLimit:   validityLimit,
		deps:            cfg.loadDeps(),
		metrics:         cfg.metrics,
		logger:          cfg.logger,
		now:             cfg.nowFn,
	}
}

// Fetch implements connection_fetch (§4.5, §6): the PKEY-password bypass,
// then lookup with inactivity/validity re-checks, then a miss path that
// creates, inserts, and evicts down to capacity.
func (c *ConnectionCache) Fetch(family Family, reference string, passwords []string) (Object, error) {
	key, err := classify(family, reference, c.deps.pathPrefix)
	if err != nil {
		return nil, err
	}

	if bypassesCache(family, passwords) {
		return opsFor(family).create(key, passwords, &c.deps)
	}

	now := c.now()

	if ent, ok := c.index.find(family, key); ok {
		if c.stale(ent, key, now) {
			c.evictEntry(ent)
		} else {
			ent.accessed = now
			c.pushFront(ent)
			c.metrics.incHit(family)
			return opsFor(family).ref(ent.object)
		}
	}
	c.metrics.incMiss(family)

	obj, cerr := opsFor(family).create(key, passwords, &c.deps)
	if cerr != nil {
		return nil, cerr
	}
	c.metrics.incCreate(family)

	ent := newDetachedEntry(key, family)
	ent.object = obj
	ent.created = now
	ent.accessed = now
	if key.Kind == KindPath {
		if fi, statErr := statFile(string(key.Bytes)); statErr == nil {
			ent.mtime = fi.ModTime()
			ent.uniq = uniqFromFileInfo(fi)
			ent.hasStat = true
		}
	}

	c.index.insert(ent)
	c.pushFront(ent)
	c.metrics.setEntries(family, c.size)

	for c.size > c.capacity {
		c.evict()
	}

	return opsFor(family).ref(ent.object)
}

// stale reports whether ent must be evicted before it can be returned, per
// §4.5 steps 2a (inactivity) and 2b (validity). The validity bound is a
// single conjunction, not two independent triggers: an expired entry is only
// reparsed if its backing file has actually changed (or vanished); a PATH
// entry whose file is untouched keeps serving the cached, pointer-stable
// object past the validity window, and a DATA entry (no backing file, so the
// file-changed half can never hold) never expires on validity alone.
func (c *ConnectionCache) stale(ent *Entry, key Key, now time.Time) bool {
	if c.inactivityLimit > 0 && now.Sub(ent.accessed) > c.inactivityLimit {
		return true
	}
	if c.validityLimit > 0 && now.Sub(ent.created) > c.validityLimit {
		return key.Kind == KindPath && c.pathChanged(ent, key)
	}
	return false
}

// pathChanged re-stats a PATH-backed entry's file and reports whether its
// mtime or device/inode identity has moved on since the entry was created
// (§3 Entry "uniq", §4.5 step 2b).
func (c *ConnectionCache) pathChanged(ent *Entry, key Key) bool {
	fi, err := statFile(string(key.Bytes))
	if err != nil {
		// The file vanished; treat as changed so the next Fetch reloads
		// (and surfaces the ErrOpenFailed the loader will now hit).
		return true
	}
	if !ent.hasStat {
		return true
	}
	return !fi.ModTime().Equal(ent.mtime) || uniqFromFileInfo(fi) != ent.uniq
}

/* -------------------------------------------------------------------------
   Recency list (MRU head, doubly linked, self-loop when detached)
   ------------------------------------------------------------------------- */

func (c *ConnectionCache) pushFront(e *Entry) {
	if c.head == e {
		return
	}
	c.remove(e)
	if c.head == nil {
		e.prev, e.next = e, e
		c.head = e
		c.size++
		return
	}
	tail := c.head.prev
	e.next = c.head
	e.prev = tail
	tail.next = e
	c.head.prev = e
	c.head = e
	c.size++
}

// remove idempotently detaches e from the recency list. Calling it on an
// already-detached entry is a no-op (§9 "idempotent self-loop detachment").
func (c *ConnectionCache) remove(e *Entry) {
	if e.detached() {
		return
	}
	if e.next == e {
		c.head = nil
	} else {
		e.prev.next = e.next
		e.next.prev = e.prev
		if c.head == e {
			c.head = e.next
		}
	}
	e.prev, e.next = e, e
	c.size--
}

// tail returns the least-recently-used entry, or nil if the list is empty.
func (c *ConnectionCache) tail() *Entry {
	if c.head == nil {
		return nil
	}
	return c.head.prev
}

/* -------------------------------------------------------------------------
   Eviction (§4.5.1)
   ------------------------------------------------------------------------- */

// evict implements the three-candidate-tail policy (§4.5.1): the tail entry
// is always evicted; the 2nd and 3rd entries counting back from the tail are
// then evicted only while each is idle past inactivityLimit, stopping at the
// first one that is not.
func (c *ConnectionCache) evict() {
	tail := c.tail()
	if tail == nil {
		return
	}
	now := c.now()

	next := c.olderNeighbor(tail)
	c.evictEntry(tail)

	for i := 0; i < 2 && next != nil; i++ {
		candidate := next
		next = c.olderNeighbor(candidate)
		if c.inactivityLimit <= 0 || now.Sub(candidate.accessed) <= c.inactivityLimit {
			break
		}
		c.evictEntry(candidate)
	}
}

// olderNeighbor returns e.prev, the entry one position closer to the head
// than e (for the tail, the next least-recently-used entry), or nil if e is
// the only entry left in the recency list.
func (c *ConnectionCache) olderNeighbor(e *Entry) *Entry {
	if e.prev == e {
		return nil
	}
	return e.prev
}

func (c *ConnectionCache) evictEntry(e *Entry) {
	c.remove(e)
	c.index.delete(e.family, e.key)
	opsFor(e.family).free(e.object)
	c.metrics.incEvict(e.family)
	c.metrics.setEntries(e.family, c.size)
}

// Teardown releases every entry the connection cache still holds. It walks
// the index rather than the recency list so it also reaches any entry a
// future extension might leave temporarily unlinked, and it logs an alert
// if the two structures disagree on population — an invariant violation
// per §4.6 that should never happen but must never panic in production.
func (c *ConnectionCache) Teardown() {
	visited := 0
	c.index.walk(func(e *Entry) bool {
		c.remove(e)
		opsFor(e.family).free(e.object)
		visited++
		return true
	})
	if c.head != nil {
		c.logger.Error("connection cache teardown left entries linked after visiting index",
			zap.Int("visited", visited))
	}
	c.size = 0
	c.head = nil
	c.index = newObjIndex()
}
