package skiplist

import "sync/atomic"

// casStats counts bottom-level insert CAS outcomes. The counters enable
// contention analysis in benchmarks.
type casStats struct {
	retries   atomic.Int64
	successes atomic.Int64
}

// InsertCASStats reports the total number of CAS retries and successful
// insertions observed at the skip list's bottom level.
func (s *SkipList[K, V]) InsertCASStats() (retries, successes int64) {
	return s.stats.retries.Load(), s.stats.successes.Load()
}
