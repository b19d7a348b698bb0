package cache

// entry.go implements the cache node (§3 Entry) and the recency-list
// back-pointers described in the "cyclic ownership avoidance" design note
// (§9): the index and the recency list both reference the same Entry
// allocation, but only the index owns it — the next/prev pointers here are
// non-owning, and detaching is idempotent via a self-loop, exactly as the
// spec prescribes. The ring-splicing style is adapted from the teacher's
// internal/clockpro metaNode list (append/remove), stripped of CLOCK-Pro's
// hot/cold/test state machine since the connection cache instead implements
// the spec's own three-candidate-tail eviction (§4.5.1).
//
// © 2025 sslcache authors. MIT License.

import "time"

// fileIdentity is a filesystem object's device+inode pair, used to detect
// that a PATH reference now resolves to a different underlying file even
// when the size/name are unchanged (§3 Entry, "uniq").
type fileIdentity struct {
	dev, ino uint64
}

// Entry is one cached (family, key, object) record (§3).
type Entry struct {
	key    Key
	family Family
	object Object

	created  time.Time
	accessed time.Time

	mtime   time.Time
	uniq    fileIdentity
	hasStat bool

	// Recency list back-pointers, used only by the bounded connection
	// cache (Invariant 4, §3). next == this == prev means detached; a
	// freshly allocated or freshly detached entry is always in this state
	// (§4.3: "the recency link pointers are self-loops when the entry is
	// detached").
	prev, next *Entry
}

func newDetachedEntry(key Key, family Family) *Entry {
	e := &Entry{key: key, family: family}
	e.prev, e.next = e, e
	return e
}

func (e *Entry) detached() bool { return e.next == nil || e.next == e }
