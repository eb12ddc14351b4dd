package table

import "errors"

var (
	// ErrTableMutated indicates the table changed between an iterator's
	// creation and a Next call. The iterator becomes terminal; restart the
	// walk with a fresh Iter.
	ErrTableMutated = errors.New("table: mutated during iteration")
)
