package pool

import (
	"fmt"
	"log/slog"
)

// DefaultConfig is used when New or NewRaw is called with a nil config.
var DefaultConfig = Config{
	PerBlock: DefaultPerBlock,
	Reclaim:  true,
}

// Config controls pool behavior. Pass nil to New for DefaultConfig.
type Config struct {
	// PerBlock is the number of slots per block. Non-positive values fall
	// back to DefaultPerBlock.
	PerBlock int

	// MaxBlocks caps how many blocks the pool may hold. Zero means
	// unlimited. Alloc returns ErrPoolFull once the cap is reached and
	// every slot is live.
	MaxBlocks int

	// Reclaim releases every block once the last live slot is freed. The
	// next Alloc starts the pool over from nothing.
	Reclaim bool

	// ZeroOnFree clears slot contents when they are freed, so stale data
	// never leaks into the next allocation of the slot.
	ZeroOnFree bool

	// Logger receives debug records for block growth and reclaim. Nil
	// discards them.
	Logger *slog.Logger

	// Tracker observes every successful Alloc and Free.
	Tracker Tracker
}

// slot is one allocation cell. next is the free-list link and is only
// meaningful while live is false.
type slot[T any] struct {
	val  T
	next Ref
	live bool
}

// Pool is a typed slot allocator. Slots are tagged with their liveness, so
// Free and Get reject refs that are stale, foreign, or freed twice.
//
// A Pool is not safe for concurrent use.
type Pool[T any] struct {
	per     int
	max     int
	reclaim bool
	zero    bool
	log     *slog.Logger
	track   Tracker

	blocks   [][]slot[T]
	next     Ref // lowest never-carved slot index
	freeHead Ref
	freeLen  int
	live     int

	allocs   uint64
	frees    uint64
	reclaims uint64
}

// New creates an empty pool for values of type T. A nil cfg selects
// DefaultConfig. No block is allocated until the first Alloc.
func New[T any](cfg *Config) *Pool[T] {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	per := cfg.PerBlock
	if per <= 0 {
		per = DefaultPerBlock
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pool[T]{
		per:      per,
		max:      cfg.MaxBlocks,
		reclaim:  cfg.Reclaim,
		zero:     cfg.ZeroOnFree,
		log:      log,
		track:    cfg.Tracker,
		freeHead: NilRef,
	}
}

// Alloc returns a ref and a pointer to a zero-initialized slot. Freed
// slots are reused before new ones are carved; a new block is added only
// when every held slot is live. Fails with ErrPoolFull at the block cap
// or when the ref space is spent, leaving the pool untouched.
func (p *Pool[T]) Alloc() (Ref, *T, error) {
	if p.freeHead != NilRef {
		ref := p.freeHead
		s := p.deref(ref)
		p.freeHead = s.next
		p.freeLen--
		if !p.zero {
			// Slots zeroed on free are already clean.
			var z T
			s.val = z
		}
		s.live = true
		s.next = NilRef
		p.live++
		p.allocs++
		if p.track != nil {
			p.track.TrackAlloc(ref)
		}
		return ref, &s.val, nil
	}

	// The carve cursor stops one short of NilRef; the sentinel is never
	// issued as a live ref.
	if p.next == NilRef {
		return NilRef, nil, ErrPoolFull
	}

	if int(p.next) == len(p.blocks)*p.per {
		if p.max > 0 && len(p.blocks) >= p.max {
			return NilRef, nil, ErrPoolFull
		}
		p.blocks = append(p.blocks, make([]slot[T], p.per))
		p.log.Debug("pool block added", "blocks", len(p.blocks), "slots_per_block", p.per)
	}

	ref := p.next
	p.next++
	s := p.deref(ref)
	s.live = true
	s.next = NilRef
	p.live++
	p.allocs++
	if p.track != nil {
		p.track.TrackAlloc(ref)
	}
	return ref, &s.val, nil
}

// Free releases the slot behind ref. The slot joins the free list and its
// pointer must no longer be used. Freeing an invalid or already-free ref
// is reported, not absorbed.
func (p *Pool[T]) Free(ref Ref) error {
	s, err := p.at(ref)
	if err != nil {
		return err
	}
	if !s.live {
		return fmt.Errorf("pool: free of ref %d: %w", ref, ErrNotLive)
	}

	if p.zero {
		var z T
		s.val = z
	}
	s.live = false
	s.next = p.freeHead
	p.freeHead = ref
	p.freeLen++
	p.live--
	p.frees++
	if p.track != nil {
		p.track.TrackFree(ref)
	}

	if p.live == 0 && p.reclaim {
		p.release()
		p.reclaims++
		p.log.Debug("pool reclaimed", "allocs", p.allocs, "frees", p.frees)
	}
	return nil
}

// Get returns the pointer for a live ref. The pointer stays valid until
// the ref is freed or the pool is reset.
func (p *Pool[T]) Get(ref Ref) (*T, error) {
	s, err := p.at(ref)
	if err != nil {
		return nil, err
	}
	if !s.live {
		return nil, fmt.Errorf("pool: get of ref %d: %w", ref, ErrNotLive)
	}
	return &s.val, nil
}

// Live returns the number of currently allocated slots.
func (p *Pool[T]) Live() int { return p.live }

// Blocks returns the number of blocks currently held.
func (p *Pool[T]) Blocks() int { return len(p.blocks) }

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Allocs:   p.allocs,
		Frees:    p.frees,
		Reclaims: p.reclaims,
		Live:     p.live,
		FreeList: p.freeLen,
		Blocks:   len(p.blocks),
		Capacity: len(p.blocks) * p.per,
	}
}

// Reset drops every block and invalidates all outstanding refs, live or
// not. Lifetime counters are kept.
func (p *Pool[T]) Reset() {
	p.release()
	p.log.Debug("pool reset", "allocs", p.allocs, "frees", p.frees)
}

// release returns the pool to its empty, lazily-initialized state.
func (p *Pool[T]) release() {
	p.blocks = nil
	p.next = 0
	p.freeHead = NilRef
	p.freeLen = 0
	p.live = 0
}

// at validates ref and returns its slot.
func (p *Pool[T]) at(ref Ref) (*slot[T], error) {
	if ref >= p.next {
		return nil, fmt.Errorf("pool: ref %d: %w", ref, ErrBadRef)
	}
	return p.deref(ref), nil
}

// deref maps a carved ref to its slot. Callers ensure ref < p.next.
func (p *Pool[T]) deref(ref Ref) *slot[T] {
	return &p.blocks[int(ref)/p.per][int(ref)%p.per]
}
