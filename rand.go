package skiplist

import (
	"math/bits"
	"time"
)

const defaultSeed = uint64(0xdeadbeefcafebabe)

func newRandomSeed() uint64 {
	seed := uint64(time.Now().UnixNano())
	if seed == 0 {
		seed = defaultSeed
	}
	return seed
}

// randomHeight draws a tower height from a geometric distribution capped
// at MaxHeight, using an xorshift generator over the list's seed word.
// The height is then walked down while the head slot two levels below is
// still empty, so a tall node is not created before the levels under it
// are in use, and the list-wide maxHeight hint is raised if needed.
func (s *SkipList[K, V]) randomHeight() int {
	seed := s.hot.seed.Load()
	seed ^= seed << 13
	seed ^= seed >> 17
	seed ^= seed << 5
	if seed == 0 {
		seed = defaultSeed
	}
	s.hot.seed.Store(seed)

	height := bits.TrailingZeros64(seed) + 1
	if height > MaxHeight {
		height = MaxHeight
	}
	for height >= 4 && s.head.pointers[height-2].Load() == nil {
		height--
	}

	for {
		max := s.hot.maxHeight.Load()
		if uint32(height) <= max || s.hot.maxHeight.CompareAndSwap(max, uint32(height)) {
			break
		}
	}
	return height
}
