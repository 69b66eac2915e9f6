package skiplist

// Entry is a reference-counted handle on a list node. Holding an Entry
// keeps the node's key and value readable even after the node is removed
// from the list, or the list itself is abandoned. Every Entry must be
// released exactly once; an unreleased Entry keeps its node alive forever.
type Entry[K, V any] struct {
	list *SkipList[K, V]
	node *node[K, V]
}

// tryAcquire wraps n in an Entry, incrementing its reference count. It
// returns nil if the count had already reached zero.
func tryAcquire[K, V any](list *SkipList[K, V], n *node[K, V]) *Entry[K, V] {
	if n != nil && n.tryIncrement() {
		return &Entry[K, V]{list: list, node: n}
	}
	return nil
}

// Key returns the entry's key.
func (e *Entry[K, V]) Key() K {
	return e.node.key
}

// Value returns the entry's value.
func (e *Entry[K, V]) Value() V {
	return e.node.value
}

// IsRemoved reports whether the entry has been removed from the list.
func (e *Entry[K, V]) IsRemoved() bool {
	return e.node.isRemoved()
}

// Release drops the reference held by the entry. The entry must not be
// used afterwards.
func (e *Entry[K, V]) Release() {
	e.node.decrement()
}

// Clone returns an independent reference to the same entry.
func (e *Entry[K, V]) Clone() *Entry[K, V] {
	e.node.tryIncrement()
	return &Entry[K, V]{list: e.list, node: e.node}
}

// Remove removes the entry from the list. It returns true if this call
// removed the entry and false if it was already removed. The reference
// held by the entry stays live either way.
func (e *Entry[K, V]) Remove() bool {
	if e.node.markTower() {
		e.list.hot.length.Add(-1)
		e.list.searchBound(Included(e.node.key), false)
		return true
	}
	return false
}

// Next returns an entry for the next live node, or nil at the end of the
// list. The receiver remains valid.
func (e *Entry[K, V]) Next() *Entry[K, V] {
	n := e.node
	for {
		n = e.list.nextNode(&n.tower, Excluded(n.key))
		if n == nil {
			return nil
		}
		if next := tryAcquire(e.list, n); next != nil {
			return next
		}
	}
}

// Prev returns an entry for the previous live node, or nil at the front
// of the list. The receiver remains valid.
func (e *Entry[K, V]) Prev() *Entry[K, V] {
	n := e.node
	for {
		n = e.list.searchBound(Excluded(n.key), true)
		if n == nil {
			return nil
		}
		if prev := tryAcquire(e.list, n); prev != nil {
			return prev
		}
	}
}

// MoveNext advances the entry to its successor, releasing the current
// reference. It returns false and leaves the entry in place at the end of
// the list.
func (e *Entry[K, V]) MoveNext() bool {
	next := e.Next()
	if next == nil {
		return false
	}
	e.node.decrement()
	e.node = next.node
	return true
}

// MovePrev moves the entry to its predecessor, releasing the current
// reference. It returns false and leaves the entry in place at the front
// of the list.
func (e *Entry[K, V]) MovePrev() bool {
	prev := e.Prev()
	if prev == nil {
		return false
	}
	e.node.decrement()
	e.node = prev.node
	return true
}
