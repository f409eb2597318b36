// Package idgen generates process-wide monotonic component identity.
// Grounded on buffer.RevisionID/NewRevisionID's atomic counter pattern.
package idgen

import "sync/atomic"

// ComponentId identifies an editor/component instance for the
// lifetime of the process. Never reused, never persisted.
type ComponentId int64

var counter int64

// Next returns the next unique ComponentId.
func Next() ComponentId {
	return ComponentId(atomic.AddInt64(&counter, 1))
}
