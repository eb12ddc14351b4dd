package pool

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/memkit/internal/bounds"
)

// linkSize is the number of slot bytes a free-list link occupies. Element
// sizes below this are raised to it, so every freed slot can hold its link.
const linkSize = 4

// DefaultRawConfig is used when NewRaw is called with a nil config.
var DefaultRawConfig = RawConfig{
	Reclaim: true,
}

// RawConfig controls a RawPool. Pass nil to NewRaw for DefaultRawConfig.
type RawConfig struct {
	// Source provides block memory. Nil selects HeapSource.
	Source BlockSource

	// MaxBlocks caps how many blocks the pool may hold. Zero means
	// unlimited.
	MaxBlocks int

	// Reclaim returns every block to the source once the last live slot
	// is freed.
	Reclaim bool

	// ZeroOnFree clears the slot's payload bytes when it is freed. The
	// first linkSize bytes still carry the free-list link.
	ZeroOnFree bool

	// Logger receives debug records for block growth and reclaim. Nil
	// discards them.
	Logger *slog.Logger

	// Tracker observes every successful Alloc and Free.
	Tracker Tracker
}

// RawPool is an untyped slot allocator. Free slots store their free-list
// link in their own first bytes, so bookkeeping costs nothing per slot.
//
// RawPool trusts its callers: it validates that a ref is in range but
// keeps no liveness tags, so freeing a ref twice silently corrupts the
// free list. Pool is the checked alternative.
//
// A RawPool is not safe for concurrent use.
type RawPool struct {
	elem    int
	per     int
	src     BlockSource
	max     int
	reclaim bool
	zero    bool
	log     *slog.Logger
	track   Tracker

	blocks   [][]byte
	next     Ref // lowest never-carved slot index
	freeHead Ref
	freeLen  int
	live     int
	closed   bool

	allocs   uint64
	frees    uint64
	reclaims uint64
}

// NewRaw creates a pool of elemSize-byte slots, perBlock slots to a block.
// Element sizes smaller than linkSize are raised to it; non-positive sizes
// fail with ErrBadSize. Non-positive perBlock falls back to
// DefaultPerBlock. No block is requested from the source until the first
// Alloc.
func NewRaw(elemSize, perBlock int, cfg *RawConfig) (*RawPool, error) {
	if elemSize <= 0 {
		return nil, fmt.Errorf("pool: element size %d: %w", elemSize, ErrBadSize)
	}
	if elemSize < linkSize {
		elemSize = linkSize
	}
	if perBlock <= 0 {
		perBlock = DefaultPerBlock
	}
	if _, ok := bounds.Mul(perBlock, elemSize); !ok {
		return nil, fmt.Errorf("pool: block of %d slots x %d bytes: %w", perBlock, elemSize, ErrBadSize)
	}
	if cfg == nil {
		cfg = &DefaultRawConfig
	}
	src := cfg.Source
	if src == nil {
		src = HeapSource{}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RawPool{
		elem:     elemSize,
		per:      perBlock,
		src:      src,
		max:      cfg.MaxBlocks,
		reclaim:  cfg.Reclaim,
		zero:     cfg.ZeroOnFree,
		log:      log,
		track:    cfg.Tracker,
		freeHead: NilRef,
	}, nil
}

// ElemSize returns the slot size in bytes, after any link-size clamp.
func (p *RawPool) ElemSize() int { return p.elem }

// PerBlock returns the number of slots carved per block.
func (p *RawPool) PerBlock() int { return p.per }

// Live returns the number of currently allocated slots.
func (p *RawPool) Live() int { return p.live }

// Blocks returns the number of blocks currently held.
func (p *RawPool) Blocks() int { return len(p.blocks) }

// Stats returns a snapshot of the pool's counters.
func (p *RawPool) Stats() Stats {
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

// Alloc returns a ref and its zeroed slot bytes, len(b) == ElemSize. The
// slice aliases block memory and is capped, so it cannot be grown into a
// neighboring slot. Fails with ErrPoolFull at the block cap or when the
// ref space is spent. If the source cannot provide a needed block the
// pool is left exactly as it was and the source's error is returned.
func (p *RawPool) Alloc() (Ref, []byte, error) {
	if p.closed {
		return NilRef, nil, ErrPoolClosed
	}

	if p.freeHead != NilRef {
		ref := p.freeHead
		b := p.slice(ref)
		p.freeHead = Ref(binary.LittleEndian.Uint32(b))
		p.freeLen--
		clear(b)
		p.live++
		p.allocs++
		if p.track != nil {
			p.track.TrackAlloc(ref)
		}
		return ref, b, nil
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
		blk, err := p.src.Alloc(p.per * p.elem)
		if err != nil {
			return NilRef, nil, fmt.Errorf("pool: growing to %d blocks: %w", len(p.blocks)+1, err)
		}
		p.blocks = append(p.blocks, blk)
		p.log.Debug("raw pool block added", "blocks", len(p.blocks), "block_bytes", len(blk))
	}

	ref := p.next
	p.next++
	p.live++
	p.allocs++
	if p.track != nil {
		p.track.TrackAlloc(ref)
	}
	return ref, p.slice(ref), nil
}

// Free returns ref's slot to the free list. Only range validity is
// checked; the caller is responsible for freeing each ref exactly once.
// When reclaim is enabled and this was the last live slot, every block
// goes back to the source, and a source failure is reported here.
func (p *RawPool) Free(ref Ref) error {
	if p.closed {
		return ErrPoolClosed
	}
	if ref >= p.next {
		return fmt.Errorf("pool: ref %d: %w", ref, ErrBadRef)
	}

	b := p.slice(ref)
	if p.zero {
		clear(b)
	}
	binary.LittleEndian.PutUint32(b, uint32(p.freeHead))
	p.freeHead = ref
	p.freeLen++
	p.live--
	p.frees++
	if p.track != nil {
		p.track.TrackFree(ref)
	}

	if p.live == 0 && p.reclaim {
		if err := p.release(); err != nil {
			return fmt.Errorf("pool: reclaiming blocks: %w", err)
		}
		p.reclaims++
		p.log.Debug("raw pool reclaimed", "allocs", p.allocs, "frees", p.frees)
	}
	return nil
}

// Close returns every block to the source and marks the pool unusable.
// Close is idempotent. Pools backed by MmapSource must be closed, or their
// mappings outlive the pool.
func (p *RawPool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.release()
}

// release hands all blocks back to the source and resets slot state.
// Errors from individual blocks are joined; remaining blocks are still
// released.
func (p *RawPool) release() error {
	var errs []error
	for _, blk := range p.blocks {
		if err := p.src.Free(blk); err != nil {
			errs = append(errs, err)
		}
	}
	p.blocks = nil
	p.next = 0
	p.freeHead = NilRef
	p.freeLen = 0
	p.live = 0
	return errors.Join(errs...)
}

// slice maps a carved ref to its slot bytes. Callers ensure ref < p.next.
func (p *RawPool) slice(ref Ref) []byte {
	blk := p.blocks[int(ref)/p.per]
	off := (int(ref) % p.per) * p.elem
	return blk[off : off+p.elem : off+p.elem]
}
