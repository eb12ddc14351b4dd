package table

import (
	"errors"
	"fmt"
	"io"
)

// Iterator walks a table in bucket-ascending, chain order. It is invalid
// to keep using an iterator across mutations: Next detects a changed table
// and reports ErrTableMutated instead of walking corrupted state.
type Iterator[K, V any] struct {
	t      *Table[K, V]
	gen    uint64
	bucket int
	cur    *entry[K, V]
	key    K
	done   bool
}

// Iter returns a cursor positioned at the table's first entry. A cursor
// over an empty table is valid but immediately terminal. Call Close when
// done; iterators are recycled through an internal pool.
func (t *Table[K, V]) Iter() *Iterator[K, V] {
	it, ok := t.iters.Get().(*Iterator[K, V])
	if !ok {
		it = &Iterator[K, V]{}
	}
	it.t = t
	it.gen = t.gen
	it.done = false
	var zero K
	it.key = zero
	it.seek(0)
	return it
}

// Next returns the current entry's value and advances: first to the chain
// successor, then to the head of the next non-empty bucket. Exhaustion is
// reported as io.EOF, repeatedly and harmlessly. A mutation since Iter
// yields an error wrapping ErrTableMutated and terminates the walk.
func (it *Iterator[K, V]) Next() (V, error) {
	var zero V
	if it.done || it.t == nil {
		return zero, io.EOF
	}
	if it.gen != it.t.gen {
		it.done = true
		return zero, fmt.Errorf("table: iterator at bucket %d: %w", it.bucket, ErrTableMutated)
	}

	e := it.cur
	it.key = e.key
	if e.next != nil {
		it.cur = e.next
	} else {
		it.seek(it.bucket + 1)
	}
	return e.val, nil
}

// Key returns the key of the most recently returned value. It is only
// meaningful after a successful Next.
func (it *Iterator[K, V]) Key() K { return it.key }

// Close releases the iterator back to its table. Next on a closed iterator
// returns io.EOF.
func (it *Iterator[K, V]) Close() {
	if it == nil || it.t == nil {
		return
	}
	t := it.t
	it.t = nil
	it.cur = nil
	it.done = true
	var zero K
	it.key = zero
	t.iters.Put(it)
}

// seek positions the cursor at the head of the first non-empty bucket at
// or after index from, or marks the iterator terminal.
func (it *Iterator[K, V]) seek(from int) {
	for i := from; i < len(it.t.buckets); i++ {
		if e := it.t.buckets[i]; e != nil {
			it.bucket = i
			it.cur = e
			return
		}
	}
	it.cur = nil
	it.done = true
}

// Range calls fn for every entry until fn returns false or the walk ends.
// It reports an error wrapping ErrTableMutated if fn mutates the table.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) error {
	it := t.Iter()
	defer it.Close()
	for {
		v, err := it.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !fn(it.Key(), v) {
			return nil
		}
	}
}
