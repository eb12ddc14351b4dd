// Package pool provides fixed-size slot allocators that hand out stable
// references to uniform records, amortizing allocation cost across blocks.
//
// # Overview
//
// A pool carves slots out of fixed-size blocks. Allocation pops a slot from
// the free list when one is available, otherwise bumps a cursor through the
// newest block, and only when every block is full does the pool request a
// new one. Freed slots are threaded onto the free list for reuse, so churn
// of short-lived records settles into a steady state with no allocation at
// all.
//
// Blocks are acquired lazily: constructing a pool allocates nothing until
// the first Alloc. By default a pool also releases every block once the
// last live slot is freed, returning to its pristine state.
//
// # Pool vs RawPool
//
// Pool[T] is the typed allocator. Every slot carries a liveness tag, so
// stale and double frees are detected and reported instead of corrupting
// the free list:
//
//	p := pool.New[Record](nil)
//	ref, rec, err := p.Alloc()
//	if err != nil {
//		return err
//	}
//	rec.ID = 7
//	...
//	if err := p.Free(ref); err != nil {
//		return err
//	}
//
// RawPool manages untyped byte slots. It stores its free-list links inside
// the freed slots themselves, adding zero overhead per slot, and its block
// memory can come from a custom BlockSource such as MmapSource. In
// exchange it trusts its callers: freeing a ref twice corrupts the free
// list. Use Pool unless the byte-level control matters.
//
// # Accounting
//
// Stats returns cumulative and point-in-time counters. A Tracker can be
// attached through Config to observe every Alloc and Free, which is how
// package track builds leak reports.
//
// # Thread Safety
//
// Pools are not safe for concurrent use. Callers that share a pool across
// goroutines must provide their own synchronization.
package pool
