package syntax

import "sync/atomic"

// ModificationTracker is a monotonic counter advanced whenever the structure
// of the containing file changes. Caches keyed on Count() recompute when the
// counter has moved; redundant recomputation is harmless.
type ModificationTracker struct {
	count atomic.Int64
}

func (t *ModificationTracker) Count() int64 {
	return t.count.Load()
}

func (t *ModificationTracker) Bump() {
	t.count.Add(1)
}
