package skiplist

import "sync/atomic"

const (
	// heightBits is the number of bits of refsAndHeight that store the height.
	heightBits = 5

	// MaxHeight is the maximum height of a tower.
	MaxHeight = 1 << heightBits

	heightMask = MaxHeight - 1

	// refUnit is one reference in the packed refsAndHeight word.
	refUnit = uint64(1) << heightBits

	negRefUnit = ^(refUnit - 1)
)

// link is a single immutable cell of a tower slot: the successor pointer
// together with the logical-deletion tag. Slots hold a *link behind an
// atomic pointer, so one CAS replaces pointer and tag as a unit, and a
// fresh link is allocated on every store. Links are never reused, which
// makes CAS on them ABA-free. A nil slot reads as (nil, untagged).
type link[K, V any] struct {
	next    *node[K, V]
	deleted bool
}

func deletedLink[K, V any](l *link[K, V]) bool {
	return l != nil && l.deleted
}

func linkNext[K, V any](l *link[K, V]) *node[K, V] {
	if l == nil {
		return nil
	}
	return l.next
}

// tower holds the per-level successor slots of a node. The head of a list
// is a bare full-height tower with no node around it.
type tower[K, V any] struct {
	pointers []atomic.Pointer[link[K, V]]
}

// node is a skip list node. Key and value are never mutated after the node
// is published; an upsert links a fresh node instead.
type node[K, V any] struct {
	key   K
	value V

	// refsAndHeight packs the tower height minus one in the low 5 bits and
	// the reference count in the remaining bits. The reference count equals
	// the number of live Entry handles on this node plus the number of
	// levels at which the node is currently linked into the list.
	refsAndHeight atomic.Uint64

	tower tower[K, V]
}

// newNode allocates a node with the given tower height and initial
// reference count. Key and value are written by the caller before the node
// is published.
func newNode[K, V any](height, refs int) *node[K, V] {
	n := &node[K, V]{}
	n.refsAndHeight.Store(uint64(height-1) | uint64(refs)<<heightBits)
	n.tower.pointers = make([]atomic.Pointer[link[K, V]], height)
	if nodeAllocHook != nil {
		nodeAllocHook(height)
	}
	return n
}

func (n *node[K, V]) height() int {
	return int(n.refsAndHeight.Load()&heightMask) + 1
}

// markTower tags every level of the tower from the top down. It returns
// false if level 0 was already tagged by a competing remover, so the
// caller knows not to account for the removal twice.
func (n *node[K, V]) markTower() bool {
	height := n.height()
	for level := height - 1; level >= 0; level-- {
		for {
			l := n.tower.pointers[level].Load()
			if deletedLink(l) {
				if level == 0 {
					return false
				}
				break
			}
			if n.tower.pointers[level].CompareAndSwap(l, &link[K, V]{next: linkNext(l), deleted: true}) {
				break
			}
		}
	}
	return true
}

// isRemoved reports whether the node has been logically deleted. Once
// level 0 is tagged the node is immutable to readers.
func (n *node[K, V]) isRemoved() bool {
	return deletedLink(n.tower.pointers[0].Load())
}

// tryIncrement adds one reference. It fails once the count has reached
// zero: a node being finalized is never resurrected.
func (n *node[K, V]) tryIncrement() bool {
	for {
		rh := n.refsAndHeight.Load()
		if rh>>heightBits == 0 {
			return false
		}
		next := rh + refUnit
		if next>>heightBits == 0 {
			panic("skiplist: entry reference count overflow")
		}
		if n.refsAndHeight.CompareAndSwap(rh, next) {
			return true
		}
	}
}

// decrement drops one reference, finalizing the node when the count
// reaches zero.
func (n *node[K, V]) decrement() {
	if n.refsAndHeight.Add(negRefUnit)>>heightBits == 0 {
		n.finalize()
	}
}

// finalize runs exactly once, after the last handle and the last linked
// level are gone. The collector reclaims the memory; key and value stay
// intact because a traversal that loaded this node earlier may still read
// them. The hook gives tests a deallocation signal.
func (n *node[K, V]) finalize() {
	if nodeFinalizeHook != nil {
		nodeFinalizeHook(n.key, n.value)
	}
}
