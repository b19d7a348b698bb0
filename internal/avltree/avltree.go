// Package avltree is a small generic self-balancing binary search tree.
//
// It backs the cache's indexed store: entries are ordered by a caller-supplied
// comparator rather than by a built-in key type, which lets pkg/index.go key
// nodes on the (hash, family, bytes) triple required by the cache without
// this package knowing anything about caches, families, or bytes.
//
// The tree carries no locking of its own; it assumes the caller already
// serialises access. Every cache built on top of it is single-threaded by
// construction (see the concurrency model in the top-level package docs), so
// no synchronisation is added here.
//
// © 2025 sslcache authors. MIT License.
package avltree

// node is one tree vertex. height is cached so rebalancing stays O(1) per
// visited node instead of re-walking subtrees.
type node[T any] struct {
	left, right *node[T]
	height      int8
	val         T
}

// Tree is an AVL tree ordered by cmp, which must return <0, 0, >0 the way
// bytes.Compare or strings.Compare do.
type Tree[T any] struct {
	root *node[T]
	cmp  func(a, b T) int
	n    int
}

// New constructs an empty tree using cmp as the total order.
func New[T any](cmp func(a, b T) int) *Tree[T] {
	return &Tree[T]{cmp: cmp}
}

// Len returns the number of stored values.
func (t *Tree[T]) Len() int { return t.n }

// Find returns the stored value comparing equal to key, if any.
func (t *Tree[T]) Find(key T) (T, bool) {
	n := t.root
	for n != nil {
		c := t.cmp(key, n.val)
		switch {
		case c == 0:
			return n.val, true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	var zero T
	return zero, false
}

// Upsert inserts v, or replaces the existing value comparing equal to it.
// It reports the replaced value and whether a replacement occurred.
func (t *Tree[T]) Upsert(v T) (old T, replaced bool) {
	t.root, old, replaced = insert(t.root, v, t.cmp)
	if !replaced {
		t.n++
	}
	return old, replaced
}

func insert[T any](n *node[T], v T, cmp func(a, b T) int) (*node[T], T, bool) {
	if n == nil {
		var zero T
		return &node[T]{val: v, height: 1}, zero, false
	}
	c := cmp(v, n.val)
	var old T
	var replaced bool
	switch {
	case c < 0:
		n.left, old, replaced = insert(n.left, v, cmp)
	case c > 0:
		n.right, old, replaced = insert(n.right, v, cmp)
	default:
		old, n.val = n.val, v
		return n, old, true
	}
	return rebalance(n), old, replaced
}

// Delete removes the value comparing equal to key. It reports whether a
// value was actually removed.
func (t *Tree[T]) Delete(key T) bool {
	var deleted bool
	t.root, deleted = remove(t.root, key, t.cmp)
	if deleted {
		t.n--
	}
	return deleted
}

func remove[T any](n *node[T], key T, cmp func(a, b T) int) (*node[T], bool) {
	if n == nil {
		return nil, false
	}
	c := cmp(key, n.val)
	var deleted bool
	switch {
	case c < 0:
		n.left, deleted = remove(n.left, key, cmp)
	case c > 0:
		n.right, deleted = remove(n.right, key, cmp)
	default:
		deleted = true
		switch {
		case n.left == nil:
			return n.right, true
		case n.right == nil:
			return n.left, true
		default:
			succ := minNode(n.right)
			n.val = succ.val
			n.right, _ = remove(n.right, succ.val, cmp)
		}
	}
	if n == nil {
		return nil, deleted
	}
	return rebalance(n), deleted
}

func minNode[T any](n *node[T]) *node[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// InOrder walks the tree from smallest to largest, stopping early if visit
// returns false. Used for teardown (§4.6 walks the index in-order) and
// diagnostic snapshots.
func (t *Tree[T]) InOrder(visit func(T) bool) {
	inOrder(t.root, visit)
}

func inOrder[T any](n *node[T], visit func(T) bool) bool {
	if n == nil {
		return true
	}
	if !inOrder(n.left, visit) {
		return false
	}
	if !visit(n.val) {
		return false
	}
	return inOrder(n.right, visit)
}

func height[T any](n *node[T]) int8 {
	if n == nil {
		return 0
	}
	return n.height
}

func max8(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}

func updateHeight[T any](n *node[T]) {
	n.height = 1 + max8(height(n.left), height(n.right))
}

func balanceFactor[T any](n *node[T]) int8 {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func rotateRight[T any](n *node[T]) *node[T] {
	l := n.left
	n.left = l.right
	l.right = n
	updateHeight(n)
	updateHeight(l)
	return l
}

func rotateLeft[T any](n *node[T]) *node[T] {
	r := n.right
	n.right = r.left
	r.left = n
	updateHeight(n)
	updateHeight(r)
	return r
}

func rebalance[T any](n *node[T]) *node[T] {
	updateHeight(n)
	switch bf := balanceFactor(n); {
	case bf > 1:
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	default:
		return n
	}
}
