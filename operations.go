package skiplist

// Front returns an entry for the smallest key, or nil if the list is
// empty.
func (s *SkipList[K, V]) Front() *Entry[K, V] {
	for {
		n := s.nextNode(&s.head, Unbounded[K]())
		if n == nil {
			return nil
		}
		if e := tryAcquire(s, n); e != nil {
			return e
		}
	}
}

// Back returns an entry for the largest key, or nil if the list is empty.
func (s *SkipList[K, V]) Back() *Entry[K, V] {
	for {
		n := s.searchBound(Unbounded[K](), true)
		if n == nil {
			return nil
		}
		if e := tryAcquire(s, n); e != nil {
			return e
		}
	}
}

// Get returns the value stored under key.
func (s *SkipList[K, V]) Get(key K) (V, bool) {
	n := s.searchBound(Included(key), false)
	if n == nil || s.compare(n.key, key) != 0 {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether the list holds the key.
func (s *SkipList[K, V]) Contains(key K) bool {
	_, ok := s.Get(key)
	return ok
}

// GetEntry returns an entry for the key, or nil if it is absent.
func (s *SkipList[K, V]) GetEntry(key K) *Entry[K, V] {
	for {
		n := s.searchBound(Included(key), false)
		if n == nil || s.compare(n.key, key) != 0 {
			return nil
		}
		if e := tryAcquire(s, n); e != nil {
			return e
		}
	}
}

// LowerBound returns an entry for the first key above the bound, or nil
// if there is none.
func (s *SkipList[K, V]) LowerBound(b Bound[K]) *Entry[K, V] {
	for {
		n := s.searchBound(b, false)
		if n == nil {
			return nil
		}
		if e := tryAcquire(s, n); e != nil {
			return e
		}
	}
}

// UpperBound returns an entry for the last key below the bound, or nil if
// there is none.
func (s *SkipList[K, V]) UpperBound(b Bound[K]) *Entry[K, V] {
	for {
		n := s.searchBound(b, true)
		if n == nil {
			return nil
		}
		if e := tryAcquire(s, n); e != nil {
			return e
		}
	}
}

// GetOrInsert returns an entry for the existing key, inserting the
// key-value pair first if the key is absent.
func (s *SkipList[K, V]) GetOrInsert(key K, value V) *Entry[K, V] {
	return s.insertInternal(key, value, false)
}

// Insert inserts a key-value pair and returns an entry for it. An
// existing entry under the same key is removed before the new one is
// linked; concurrent readers may transiently observe the key absent while
// the replacement is in flight.
func (s *SkipList[K, V]) Insert(key K, value V) *Entry[K, V] {
	return s.insertInternal(key, value, true)
}

func (s *SkipList[K, V]) insertInternal(key K, value V, replace bool) *Entry[K, V] {
	pos := s.acquirePosition()
	defer s.releasePosition(pos)

	for {
		s.searchPosition(key, pos)
		r := pos.found
		if r == nil {
			break
		}
		if replace {
			// Mark the existing entry and search again; the new node is
			// linked only once the old one is logically gone.
			if r.markTower() {
				s.hot.length.Add(-1)
			}
			continue
		}
		if e := tryAcquire(s, r); e != nil {
			return e
		}
		// The node is already being finalized, so insert anyway.
		break
	}

	// One reference for the returned entry, one for the level-0 linkage.
	height := s.randomHeight()
	n := newNode[K, V](height, 2)
	n.key = key
	n.value = value
	s.hot.length.Add(1)

	for {
		n.tower.pointers[0].Store(&link[K, V]{next: linkNext(pos.right[0])})
		if pos.left[0].pointers[0].CompareAndSwap(pos.right[0], &link[K, V]{next: n}) {
			s.stats.successes.Add(1)
			break
		}
		s.stats.retries.Add(1)

		s.searchPosition(key, pos)
		if r := pos.found; r != nil {
			if replace {
				if r.markTower() {
					s.hot.length.Add(-1)
				}
			} else if e := tryAcquire(s, r); e != nil {
				// Someone else inserted the key first; discard the
				// speculative node.
				n.finalize()
				s.hot.length.Add(-1)
				return e
			}
		}
	}

	entry := &Entry[K, V]{list: s, node: n}

	// Link the upper levels. Only level 0 is required for correctness, so
	// a partially built tower is always safe to abandon.
build:
	for level := 1; level < height; level++ {
		for {
			pred := pos.left[level]
			succ := pos.right[level]

			next := n.tower.pointers[level].Load()
			if deletedLink(next) {
				break build
			}

			if sn := linkNext(succ); sn != nil && s.compare(sn.key, key) == 0 {
				// The successor is a concurrently inserted node with this
				// key; refresh the position until it has been unlinked.
				s.searchPosition(key, pos)
				continue
			}

			if !n.tower.pointers[level].CompareAndSwap(next, &link[K, V]{next: linkNext(succ)}) {
				break build
			}
			n.refsAndHeight.Add(refUnit)
			if pred.pointers[level].CompareAndSwap(succ, &link[K, V]{next: n}) {
				break
			}
			n.refsAndHeight.Add(negRefUnit)
			s.searchPosition(key, pos)
		}
	}

	if deletedLink(n.tower.pointers[height-1].Load()) {
		// Removed while the tower was being built: run one search so the
		// tagged node is promptly unlinked rather than lingering.
		s.searchBound(Included(key), false)
	}
	return entry
}

// Remove removes the entry with the given key and returns it, or nil if
// the key is absent. The returned entry must be released.
func (s *SkipList[K, V]) Remove(key K) *Entry[K, V] {
	pos := s.acquirePosition()
	defer s.releasePosition(pos)

	for {
		s.searchPosition(key, pos)
		n := pos.found
		if n == nil {
			return nil
		}

		// Hold a reference before marking so the returned entry cannot be
		// finalized under us.
		entry := tryAcquire(s, n)
		if entry == nil {
			continue
		}
		if !n.markTower() {
			// Someone else removed it first; try again with a fresh search.
			entry.Release()
			continue
		}

		s.hot.length.Add(-1)
		for level := n.height() - 1; level >= 0; level-- {
			succ := n.tower.pointers[level].Load()
			expected := pos.right[level]
			if expected != nil && expected.next == n &&
				pos.left[level].pointers[level].CompareAndSwap(expected, &link[K, V]{next: linkNext(succ)}) {
				n.decrement()
			} else {
				// A concurrent structural change raced ahead; one bound
				// search lets the helping mechanism finish the unlink.
				s.searchBound(Included(key), false)
				break
			}
		}
		return entry
	}
}

// PopFront removes and returns the entry with the smallest key, or nil if
// the list is empty.
func (s *SkipList[K, V]) PopFront() *Entry[K, V] {
	for {
		e := s.Front()
		if e == nil {
			return nil
		}
		if e.Remove() {
			return e
		}
		e.Release()
	}
}

// PopBack removes and returns the entry with the largest key, or nil if
// the list is empty.
func (s *SkipList[K, V]) PopBack() *Entry[K, V] {
	for {
		e := s.Back()
		if e == nil {
			return nil
		}
		if e.Remove() {
			return e
		}
		e.Release()
	}
}

// Clear removes every entry. Entries are marked in batches of a fixed
// size, re-resolving the front of the list between batches so helping
// work from concurrent searches can keep pace with a long clear.
func (s *SkipList[K, V]) Clear() {
	const batchSize = 100
	for {
		n := s.nextNode(&s.head, Unbounded[K]())
		for i := 0; i < batchSize; i++ {
			if n == nil {
				return
			}
			next := s.nextNode(&n.tower, Excluded(n.key))
			if n.markTower() {
				s.hot.length.Add(-1)
			}
			n = next
		}
	}
}
