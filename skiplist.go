// Package skiplist implements a lock-free concurrent sorted map as a skip
// list. Any number of goroutines may call any operation concurrently
// without external synchronization; all coordination is done with atomic
// compare-and-swap loops, and goroutines traversing the list help finish
// removals started by others.
package skiplist

import (
	"cmp"
	"sync"
	"sync/atomic"
)

// hotData is the frequently modified state of a list, padded out to its
// own cache lines so the counters do not false-share with the head tower.
type hotData struct {
	// seed is the xorshift state for random height generation.
	seed atomic.Uint64
	// length is the approximate number of entries.
	length atomic.Int64
	// maxHeight is the highest level currently in use. It only grows and
	// is a hint for where searches start.
	maxHeight atomic.Uint32

	_ [108]byte
}

// SkipList is a lock-free sorted map. The zero value is not usable; use
// New or NewFunc.
type SkipList[K, V any] struct {
	// head is a full-height sentinel tower. It has no key or value and is
	// never reclaimed.
	head tower[K, V]

	compare func(K, K) int

	posPool sync.Pool

	hot   hotData
	stats casStats
}

// New returns an empty skip list ordered by cmp.Compare.
func New[K cmp.Ordered, V any]() *SkipList[K, V] {
	return NewFunc[K, V](cmp.Compare[K])
}

// NewFunc returns an empty skip list ordered by the given three-way
// comparator.
func NewFunc[K, V any](compare func(K, K) int) *SkipList[K, V] {
	s := &SkipList[K, V]{compare: compare}
	s.head.pointers = make([]atomic.Pointer[link[K, V]], MaxHeight)
	s.hot.seed.Store(newRandomSeed())
	s.hot.maxHeight.Store(1)
	return s
}

// Len returns the number of entries. Under concurrent modification the
// returned number is an approximation; transient negative readings clamp
// to zero.
func (s *SkipList[K, V]) Len() int {
	n := s.hot.length.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// IsEmpty reports whether the list has no entries.
func (s *SkipList[K, V]) IsEmpty() bool {
	return s.Len() == 0
}

// position records the outcome of a full search: the node holding the key
// if one was found, and for every level the exact predecessor tower plus
// the exact link observed in its slot. The links are what directed CASes
// use as their expected value.
type position[K, V any] struct {
	found *node[K, V]
	left  [MaxHeight]*tower[K, V]
	right [MaxHeight]*link[K, V]
}

// helpUnlink finishes another goroutine's removal by swinging a
// predecessor slot from the observed link (whose target is tagged) to a
// fresh untagged link to the successor. On success the unlinked node loses
// the reference this level held on it and the replacement link is
// returned; on a lost race nil is returned and the caller must restart.
func (s *SkipList[K, V]) helpUnlink(slot *atomic.Pointer[link[K, V]], curr, succ *link[K, V]) *link[K, V] {
	repl := &link[K, V]{next: linkNext(succ)}
	if slot.CompareAndSwap(curr, repl) {
		curr.next.decrement()
		return repl
	}
	return nil
}

// nextNode returns the first live node reachable through pred's level-0
// slot. Deleted nodes on the way are helped out of the list; if the chain
// is compromised the walk falls back to a bound search above lower.
func (s *SkipList[K, V]) nextNode(pred *tower[K, V], lower Bound[K]) *node[K, V] {
	curr := pred.pointers[0].Load()
	if deletedLink(curr) {
		return s.searchBound(lower, false)
	}
	for {
		c := linkNext(curr)
		if c == nil {
			return nil
		}
		succ := c.tower.pointers[0].Load()
		if deletedLink(succ) {
			if repl := s.helpUnlink(&pred.pointers[0], curr, succ); repl != nil {
				curr = repl
				continue
			}
			return s.searchBound(lower, false)
		}
		return c
	}
}

// searchBound descends the tower levels looking for the first node above
// the bound, or, when wantUpper is set, the last node below it (found by
// lookahead: advance only while the next node still satisfies the bound).
// Nodes whose level pointer is tagged are helped out of the list on the
// way; a lost helping CAS restarts the whole search because the local
// predecessor chain may be stale.
func (s *SkipList[K, V]) searchBound(b Bound[K], wantUpper bool) *node[K, V] {
search:
	for {
		level := int(s.hot.maxHeight.Load())
		for level >= 1 && s.head.pointers[level-1].Load() == nil {
			level--
		}

		var result *node[K, V]
		pred := &s.head
		for level >= 1 {
			level--
			curr := pred.pointers[level].Load()
			if deletedLink(curr) {
				continue search
			}
			for {
				c := linkNext(curr)
				if c == nil {
					break
				}
				succ := c.tower.pointers[level].Load()
				if deletedLink(succ) {
					if repl := s.helpUnlink(&pred.pointers[level], curr, succ); repl != nil {
						curr = repl
						continue
					}
					continue search
				}
				if wantUpper {
					if !s.belowUpperBound(b, c.key) {
						break
					}
					result = c
				} else if s.aboveLowerBound(b, c.key) {
					result = c
					break
				}
				pred = &c.tower
				curr = succ
			}
		}
		return result
	}
}

// searchPosition is the insertion/removal variant of searchBound: the same
// descent, but it records the exact predecessor tower and observed link at
// every level, and whether a node with exactly this key was seen.
func (s *SkipList[K, V]) searchPosition(key K, pos *position[K, V]) {
search:
	for {
		pos.found = nil
		for i := range pos.left {
			pos.left[i] = &s.head
			pos.right[i] = nil
		}

		level := int(s.hot.maxHeight.Load())
		for level >= 1 && s.head.pointers[level-1].Load() == nil {
			level--
		}

		pred := &s.head
		for level >= 1 {
			level--
			curr := pred.pointers[level].Load()
			if deletedLink(curr) {
				continue search
			}
			for {
				c := linkNext(curr)
				if c == nil {
					break
				}
				succ := c.tower.pointers[level].Load()
				if deletedLink(succ) {
					if repl := s.helpUnlink(&pred.pointers[level], curr, succ); repl != nil {
						curr = repl
						continue
					}
					continue search
				}
				r := s.compare(c.key, key)
				if r > 0 {
					break
				}
				if r == 0 {
					pos.found = c
					break
				}
				pred = &c.tower
				curr = succ
			}
			pos.left[level] = pred
			pos.right[level] = curr
		}
		return
	}
}
