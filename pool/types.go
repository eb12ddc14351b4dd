package pool

// DefaultPerBlock is the number of slots carved per block when the
// configuration does not say otherwise.
const DefaultPerBlock = 64

// Ref identifies a slot within its pool. Refs are stable for the lifetime
// of the allocation and are never remapped by pool growth. A Ref is only
// meaningful to the pool that issued it.
type Ref uint32

// NilRef is the zero-allocation sentinel. No successful Alloc returns it.
const NilRef = Ref(^uint32(0))

// Tracker observes allocation traffic. Both methods are called after the
// operation succeeded. Implementations live in package track.
type Tracker interface {
	TrackAlloc(ref Ref)
	TrackFree(ref Ref)
}

// Stats is a snapshot of a pool's counters.
type Stats struct {
	Allocs   uint64 // successful Alloc calls over the pool's lifetime
	Frees    uint64 // successful Free calls over the pool's lifetime
	Reclaims uint64 // times every block was released automatically
	Live     int    // slots currently allocated
	FreeList int    // freed slots parked for reuse
	Blocks   int    // blocks currently held
	Capacity int    // total slots across held blocks
}
