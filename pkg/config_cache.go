package cache

// config_cache.go implements the Configuration Cache (§4.4): an unbounded
// cache populated during configuration load, with cross-generation
// inheritance. Entries are allocated from an arena owned by the cache's
// Generation (see generation.go, and the "Arena-bound lifetime" design note
// in §9) — they need no individual free() on teardown, only the one
// family.free() call per entry to release the cache's own object reference,
// after which the whole arena is released in a single O(1) Free().
//
// Structurally this plays the role the teacher's shard.go put()/get() play,
// generalized from a generic K/V upsert to the specific miss-then-maybe-
// inherit-then-maybe-create sequence §4.4 requires.
//
// © 2025 sslcache authors. MIT License.

import (
	"time"

	"go.uber.org/zap"

	arena "github.com/Voskan/sslcache/internal/arena"
)

// ConfigCache is the unbounded, permanent cache used during configuration
// load (§4.4). It is never constructed directly by an embedder; it is
// reached through a Generation, which supplies the arena and the previous
// generation's cache to inherit from.
type ConfigCache struct {
	arena *arena.Arena
	index *objIndex

	prev    *ConfigCache // previous generation's cache, read-only from here
	inherit bool

	deps    loadDeps
	metrics metricsSink
	logger  *zap.Logger
	now     func() time.Time
}

func newConfigCache(ar *arena.Arena, prev *ConfigCache, opts ...Option) *ConfigCache {
	cfg := applyOptions(opts)
	return &ConfigCache{
		arena:   ar,
		index:   newObjIndex(),
		prev:    prev,
		inherit: cfg.inherit,
		deps:    cfg.loadDeps(),
		metrics: cfg.metrics,
		logger:  cfg.logger,
		now:     cfg.nowFn,
	}
}

// Fetch implements config_fetch (§6): build the key, apply the PKEY
// password-list bypass, else look up (and maybe inherit, and maybe create),
// insert, and hand the caller its own reference.
func (c *ConfigCache) Fetch(family Family, reference string, passwords []string) (Object, error) {
	key, err := classify(family, reference, c.deps.pathPrefix)
	if err != nil {
		return nil, err
	}

	if bypassesCache(family, passwords) {
		return opsFor(family).create(key, passwords, &c.deps)
	}

	if existing, ok := c.index.find(family, key); ok {
		c.metrics.incHit(family)
		return opsFor(family).ref(existing.object)
	}
	c.metrics.incMiss(family)

	ent := arena.NewValue[Entry](c.arena)
	*ent = Entry{key: key, family: family}
	// Unused in unbounded mode (§9 open question), but initialized to the
	// self-loop detached state for consistency with ConnectionCache entries.
	ent.prev, ent.next = ent, ent

	if key.Kind == KindPath {
		if fi, statErr := statFile(string(key.Bytes)); statErr == nil {
			ent.mtime = fi.ModTime()
			ent.uniq = uniqFromFileInfo(fi)
			ent.hasStat = true
		}
		// A missing file here is not an error — create() will surface it.
	}

	adopted := c.tryInherit(ent, family, key, reference)
	if !adopted {
		obj, cerr := opsFor(family).create(key, passwords, &c.deps)
		if cerr != nil {
			return nil, cerr
		}
		ent.object = obj
		ent.created = c.now()
		c.metrics.incCreate(family)
	}

	c.index.insert(ent)
	return opsFor(family).ref(ent.object)
}

// tryInherit implements §4.4 step 5c: consult the previous generation's
// cache, adopting its parsed object when inheritance is enabled and the key
// still identifies the same underlying data.
func (c *ConfigCache) tryInherit(ent *Entry, family Family, key Key, reference string) bool {
	if !c.inherit || c.prev == nil {
		return false
	}
	prevEnt, ok := c.prev.index.find(family, key)
	if !ok {
		return false
	}

	var eligible bool
	switch key.Kind {
	case KindData:
		eligible = true
	case KindPath:
		eligible = ent.hasStat && prevEnt.hasStat &&
			ent.mtime.Equal(prevEnt.mtime) && ent.uniq == prevEnt.uniq
	default:
		eligible = false
	}
	if !eligible {
		return false
	}

	obj, err := opsFor(family).ref(prevEnt.object)
	if err != nil {
		return false
	}
	ent.object = obj
	ent.created = c.now()
	c.logger.Debug("inherited object from previous generation",
		zap.String("family", family.String()),
		zap.String("reference", reference))
	c.metrics.incInherit(family)
	return true
}

// teardown frees every entry's cache-owned reference and releases the
// arena. The configuration cache never evicts during its lifetime; it is
// destroyed wholesale when its owning generation tears down (§4.4).
func (c *ConfigCache) teardown() {
	c.index.walk(func(e *Entry) bool {
		opsFor(e.family).free(e.object)
		return true
	})
	if c.arena != nil {
		c.arena.Free()
	}
}

func statFile(path string) (fileInfo, error) { return statImpl(path) }
