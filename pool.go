package skiplist

// acquirePosition returns a search position buffer, reusing one from the
// pool when available. A position is only ever used by a single goroutine
// between acquire and release.
func (s *SkipList[K, V]) acquirePosition() *position[K, V] {
	if p, ok := s.posPool.Get().(*position[K, V]); ok {
		return p
	}
	return &position[K, V]{}
}

// releasePosition clears the buffer so pooled positions do not pin nodes,
// then hands it back.
func (s *SkipList[K, V]) releasePosition(p *position[K, V]) {
	p.found = nil
	for i := range p.left {
		p.left[i] = nil
		p.right[i] = nil
	}
	s.posPool.Put(p)
}
