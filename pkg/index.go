package cache

// index.go implements the Indexed Store (§4.3): entries ordered by the
// triple (hash, family, key-bytes), compared lexicographically in that
// order with a length-then-lexicographic byte comparator. The balancing
// itself lives in internal/avltree, which knows nothing about caches; this
// file supplies the comparator and the find/insert/delete/walk vocabulary
// the two cache types need.
//
// © 2025 sslcache authors. MIT License.

import (
	"bytes"

	"github.com/Voskan/sslcache/internal/avltree"
)

type objIndex struct {
	tree *avltree.Tree[*Entry]
}

func newObjIndex() *objIndex {
	return &objIndex{tree: avltree.New[*Entry](compareEntries)}
}

// compareEntries orders by hash, then family discriminator, then key bytes.
// Equal (hash, family) with differing bytes still orders deterministically
// because compareBytes is a total order (§4.3 Invariant 1).
func compareEntries(a, b *Entry) int {
	switch {
	case a.key.Hash != b.key.Hash:
		if a.key.Hash < b.key.Hash {
			return -1
		}
		return 1
	case a.family != b.family:
		if a.family < b.family {
			return -1
		}
		return 1
	default:
		return compareBytes(a.key.Bytes, b.key.Bytes)
	}
}

// compareBytes is length-then-lexicographic: shorter byte strings sort
// before longer ones regardless of content, and equal-length strings compare
// lexicographically (§4.3).
func compareBytes(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare(a, b)
}

func probeEntry(family Family, key Key) *Entry {
	return &Entry{family: family, key: key}
}

func (x *objIndex) find(family Family, key Key) (*Entry, bool) {
	return x.tree.Find(probeEntry(family, key))
}

func (x *objIndex) insert(e *Entry) {
	x.tree.Upsert(e)
}

func (x *objIndex) delete(family Family, key Key) bool {
	return x.tree.Delete(probeEntry(family, key))
}

func (x *objIndex) len() int { return x.tree.Len() }

// walk visits entries in key order (used by teardown, §4.6).
func (x *objIndex) walk(visit func(*Entry) bool) {
	x.tree.InOrder(visit)
}
