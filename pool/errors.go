package pool

import "errors"

var (
	// ErrBadSize indicates a non-positive element size was given to NewRaw.
	ErrBadSize = errors.New("pool: element size must be positive")

	// ErrPoolFull indicates the configured block limit is reached and no
	// freed slot is available. The pool is left exactly as it was.
	ErrPoolFull = errors.New("pool: block limit reached")

	// ErrBadRef indicates a ref that never came from this pool, or one
	// whose block has since been reclaimed.
	ErrBadRef = errors.New("pool: ref out of range")

	// ErrNotLive indicates a ref whose slot is not currently allocated,
	// typically a double free or a use after free.
	ErrNotLive = errors.New("pool: ref is not live")

	// ErrPoolClosed indicates an operation on a closed RawPool.
	ErrPoolClosed = errors.New("pool: closed")
)
