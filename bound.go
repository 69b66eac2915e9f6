package skiplist

// BoundKind tells how a Bound constrains a key range.
type BoundKind uint8

const (
	// BoundUnbounded places no constraint.
	BoundUnbounded BoundKind = iota
	// BoundIncluded admits keys equal to the bound key.
	BoundIncluded
	// BoundExcluded rejects keys equal to the bound key.
	BoundExcluded
)

// Bound is one end of a key range.
type Bound[K any] struct {
	Kind BoundKind
	Key  K
}

// Unbounded returns the open bound.
func Unbounded[K any]() Bound[K] {
	return Bound[K]{Kind: BoundUnbounded}
}

// Included returns an inclusive bound at key.
func Included[K any](key K) Bound[K] {
	return Bound[K]{Kind: BoundIncluded, Key: key}
}

// Excluded returns an exclusive bound at key.
func Excluded[K any](key K) Bound[K] {
	return Bound[K]{Kind: BoundExcluded, Key: key}
}

func (s *SkipList[K, V]) aboveLowerBound(b Bound[K], key K) bool {
	switch b.Kind {
	case BoundUnbounded:
		return true
	case BoundIncluded:
		return s.compare(key, b.Key) >= 0
	default:
		return s.compare(key, b.Key) > 0
	}
}

func (s *SkipList[K, V]) belowUpperBound(b Bound[K], key K) bool {
	switch b.Kind {
	case BoundUnbounded:
		return true
	case BoundIncluded:
		return s.compare(key, b.Key) <= 0
	default:
		return s.compare(key, b.Key) < 0
	}
}
