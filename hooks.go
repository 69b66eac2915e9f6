package skiplist

// Test hooks (kept separate so instrumentation doesn't clutter logic).
// These are intended solely for test instrumentation and must not perform
// blocking or mutating operations that affect production correctness.
var (
	// nodeAllocHook is invoked after a node allocation with its tower height.
	nodeAllocHook func(height int)

	// nodeFinalizeHook is invoked when a node's reference count reaches zero
	// and the node is handed back to the collector.
	nodeFinalizeHook func(key, value any)
)
