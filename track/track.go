// Package track provides pool.Tracker implementations for allocation
// accounting: cheap lifetime counters and call-site capture for hunting
// down slots that never get freed.
package track

import (
	"sync/atomic"

	"github.com/joshuapare/memkit/pool"
)

// Counter tallies allocation traffic. Unlike a pool itself, a Counter is
// safe to share: several pools can report into one Counter concurrently.
type Counter struct {
	allocs atomic.Uint64
	frees  atomic.Uint64
}

var _ pool.Tracker = (*Counter)(nil)

func (c *Counter) TrackAlloc(pool.Ref) { c.allocs.Add(1) }

func (c *Counter) TrackFree(pool.Ref) { c.frees.Add(1) }

// Allocs returns the total allocations observed.
func (c *Counter) Allocs() uint64 { return c.allocs.Load() }

// Frees returns the total frees observed.
func (c *Counter) Frees() uint64 { return c.frees.Load() }

// Live returns allocations minus frees. Negative values mean the counter
// was attached after some slots were already live.
func (c *Counter) Live() int64 {
	return int64(c.allocs.Load()) - int64(c.frees.Load())
}

// Reset zeroes both tallies.
func (c *Counter) Reset() {
	c.allocs.Store(0)
	c.frees.Store(0)
}

// multi fans traffic out to several trackers.
type multi []pool.Tracker

var _ pool.Tracker = multi(nil)

func (m multi) TrackAlloc(ref pool.Ref) {
	for _, t := range m {
		t.TrackAlloc(ref)
	}
}

func (m multi) TrackFree(ref pool.Ref) {
	for _, t := range m {
		t.TrackFree(ref)
	}
}

// Multi combines trackers into one, calling each in order. Attach it when
// a pool should feed both a Counter and a Sites recorder.
func Multi(trackers ...pool.Tracker) pool.Tracker {
	return multi(trackers)
}
