package skiplist

// Iter is a bidirectional cursor over a key range. Next advances the
// front of the cursor and Prev advances the back; the two ends close in
// on each other and the iterator is exhausted once they meet. Key and
// Value report the element produced by the most recent successful Next or
// Prev.
//
// The cursor tracks live positions in the list: elements inserted or
// removed concurrently may or may not be observed, but keys are always
// produced in strictly ascending order from Next and strictly descending
// order from Prev.
type Iter[K, V any] struct {
	list  *SkipList[K, V]
	head  *node[K, V]
	tail  *node[K, V]
	lower Bound[K]
	upper Bound[K]

	key   K
	value V
	valid bool
	done  bool
}

// Iter returns a cursor over the whole list.
func (s *SkipList[K, V]) Iter() *Iter[K, V] {
	return s.Range(Unbounded[K](), Unbounded[K]())
}

// Range returns a cursor over the entries between the lower and upper
// bounds.
func (s *SkipList[K, V]) Range(lower, upper Bound[K]) *Iter[K, V] {
	return &Iter[K, V]{list: s, lower: lower, upper: upper}
}

// Valid reports whether the cursor currently points at an element.
func (it *Iter[K, V]) Valid() bool {
	return it.valid
}

// Key returns the key at the cursor's current position. It should only be
// called when Valid reports true.
func (it *Iter[K, V]) Key() K {
	var zero K
	if !it.valid {
		return zero
	}
	return it.key
}

// Value returns the value at the cursor's current position. It should
// only be called when Valid reports true.
func (it *Iter[K, V]) Value() V {
	var zero V
	if !it.valid {
		return zero
	}
	return it.value
}

// Next advances the front of the cursor and reports whether an element
// was produced. The first call positions the cursor at the start of the
// range.
func (it *Iter[K, V]) Next() bool {
	if it.done {
		return false
	}

	var n *node[K, V]
	if it.head == nil {
		n = it.list.searchBound(it.lower, false)
	} else {
		n = it.list.nextNode(&it.head.tower, Excluded(it.head.key))
	}
	if n != nil {
		upper := it.upper
		if it.tail != nil {
			upper = Excluded(it.tail.key)
		}
		if !it.list.belowUpperBound(upper, n.key) {
			n = nil
		}
	}
	if n == nil {
		it.exhaust()
		return false
	}

	it.head = n
	it.key = n.key
	it.value = n.value
	it.valid = true
	return true
}

// Prev advances the back of the cursor and reports whether an element was
// produced. The first call positions the cursor at the end of the range.
func (it *Iter[K, V]) Prev() bool {
	if it.done {
		return false
	}

	var n *node[K, V]
	if it.tail == nil {
		n = it.list.searchBound(it.upper, true)
	} else {
		n = it.list.searchBound(Excluded(it.tail.key), true)
	}
	if n != nil {
		lower := it.lower
		if it.head != nil {
			lower = Excluded(it.head.key)
		}
		if !it.list.aboveLowerBound(lower, n.key) {
			n = nil
		}
	}
	if n == nil {
		it.exhaust()
		return false
	}

	it.tail = n
	it.key = n.key
	it.value = n.value
	it.valid = true
	return true
}

func (it *Iter[K, V]) exhaust() {
	it.done = true
	it.valid = false
	it.head = nil
	it.tail = nil
	var zeroK K
	var zeroV V
	it.key = zeroK
	it.value = zeroV
}
