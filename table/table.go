package table

import (
	"sync"

	"github.com/joshuapare/memkit/internal/pow2"
)

const (
	// DefaultBuckets is the default (and minimum) bucket count for new tables.
	DefaultBuckets = 16

	// DefaultTolerance is the default load-factor tolerance percentage.
	DefaultTolerance = 70

	// minTolerance is the lowest accepted nonzero tolerance. Configured
	// values below this are raised to it; 0 keeps its "never resize" meaning.
	minTolerance = 50
)

// DefaultConfig is used when New is called with a nil config.
var DefaultConfig = Config{
	InitialBuckets: DefaultBuckets,
	Tolerance:      DefaultTolerance,
}

// Config controls table sizing. Pass nil to New for DefaultConfig.
type Config struct {
	// InitialBuckets is the starting bucket count. Values below
	// DefaultBuckets are raised to it, and non-powers-of-two are rounded
	// up. The normalized value is also the table's minimum size: shrinking
	// never goes below it.
	InitialBuckets int

	// Tolerance is the load-factor band as a percentage. Growth triggers
	// when count*100 >= size*Tolerance, shrinking when
	// count*100 < size*(100-Tolerance). Zero disables resizing entirely;
	// nonzero values below 50 are clamped to 50.
	Tolerance int
}

// HashFunc maps a key to an unsigned 32-bit hash. Two keys for which
// EqualFunc reports true must hash identically.
type HashFunc[K any] func(K) uint32

// EqualFunc reports whether two keys identify the same entry.
type EqualFunc[K any] func(K, K) bool

// entry is a chain node. The table owns the node; key and value are plain
// copies whose referenced memory (if any) stays the caller's responsibility.
type entry[K, V any] struct {
	key  K
	val  V
	next *entry[K, V]
}

// Table is a chained hashtable with power-of-two sizing. Key identity is
// defined entirely by the hash/equal pair supplied at construction, so any
// key type works, including types that are not comparable with ==.
//
// A Table is not safe for concurrent use.
type Table[K, V any] struct {
	hash  HashFunc[K]
	equal EqualFunc[K]

	buckets []*entry[K, V]
	count   int

	min int // normalized InitialBuckets; shrink floor
	tol int // tolerance percent, 0 = never resize

	// gen counts structural mutations. Iterators snapshot it and refuse to
	// continue once it moves.
	gen uint64

	// iters recycles Iterator structs between Iter/Close cycles.
	iters sync.Pool
}

// New creates an empty table keyed by the given hash/equal pair.
// A nil cfg selects DefaultConfig. Panics if hash or equal is nil.
func New[K, V any](hash HashFunc[K], equal EqualFunc[K], cfg *Config) *Table[K, V] {
	if hash == nil || equal == nil {
		panic("table: nil hash or equal function")
	}
	if cfg == nil {
		cfg = &DefaultConfig
	}

	n := cfg.InitialBuckets
	if n < DefaultBuckets {
		n = DefaultBuckets
	}
	n = pow2.Ceil(n)

	tol := cfg.Tolerance
	if tol != 0 && tol < minTolerance {
		tol = minTolerance
	}

	return &Table[K, V]{
		hash:    hash,
		equal:   equal,
		buckets: make([]*entry[K, V], n),
		min:     n,
		tol:     tol,
	}
}

// Len returns the number of live key/value associations.
func (t *Table[K, V]) Len() int { return t.count }

// Buckets returns the current bucket count. Always a power of two.
func (t *Table[K, V]) Buckets() int { return len(t.buckets) }

// Insert associates value with key. If the key was already present the old
// value is returned with replaced == true and the association count is
// unchanged; otherwise Insert returns the zero value and false.
//
// The growth check runs before the entry is placed: the table sizes itself
// for count+1 entries, then walks the chain. A replacing insert can
// therefore still grow the table even though the final count is unchanged.
func (t *Table[K, V]) Insert(key K, value V) (prev V, replaced bool) {
	t.count++
	if t.tol != 0 && t.count*100 >= len(t.buckets)*t.tol {
		t.resize(len(t.buckets) << 1)
	}

	t.gen++
	e := &entry[K, V]{key: key, val: value}
	idx := t.hash(key) & uint32(len(t.buckets)-1)

	var p *entry[K, V]
	for cur := t.buckets[idx]; cur != nil; cur = cur.next {
		if t.equal(key, cur.key) {
			// Splice the new entry into the old one's position, keeping
			// its successor. The replaced count bump is undone.
			e.next = cur.next
			if p == nil {
				t.buckets[idx] = e
			} else {
				p.next = e
			}
			t.count--
			return cur.val, true
		}
		p = cur
	}

	// New key: append at the tail so chain order stays insertion order.
	if p == nil {
		t.buckets[idx] = e
	} else {
		p.next = e
	}
	return prev, false
}

// Find returns the value associated with key, or (zero, false). Find never
// mutates the table and never triggers a resize.
func (t *Table[K, V]) Find(key K) (V, bool) {
	idx := t.hash(key) & uint32(len(t.buckets)-1)
	for e := t.buckets[idx]; e != nil; e = e.next {
		if t.equal(key, e.key) {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// Remove deletes key's entry and returns its value, or (zero, false) when
// the key is absent. A successful removal runs the shrink check.
func (t *Table[K, V]) Remove(key K) (V, bool) {
	idx := t.hash(key) & uint32(len(t.buckets)-1)
	var p *entry[K, V]
	for e := t.buckets[idx]; e != nil; e = e.next {
		if t.equal(key, e.key) {
			if p == nil {
				t.buckets[idx] = e.next
			} else {
				p.next = e.next
			}
			t.count--
			t.gen++
			t.shrinkCheck()
			return e.val, true
		}
		p = e
	}
	var zero V
	return zero, false
}

// Pop removes and returns the value of the first entry found scanning
// buckets in ascending index order, or (zero, false) on an empty table.
// Repeated Pop calls drain the table completely.
func (t *Table[K, V]) Pop() (V, bool) {
	for i, e := range t.buckets {
		if e == nil {
			continue
		}
		t.buckets[i] = e.next
		t.count--
		t.gen++
		t.shrinkCheck()
		return e.val, true
	}
	var zero V
	return zero, false
}

// Clear drops every entry and resets the table to its minimum bucket count.
// Key and value cleanup stays with the caller; drain with Pop first when
// values need individual disposal.
func (t *Table[K, V]) Clear() {
	t.buckets = make([]*entry[K, V], t.min)
	t.count = 0
	t.gen++
}

// shrinkCheck halves the table when occupancy falls out of the tolerance
// band. The bucket count never drops below the configured minimum.
func (t *Table[K, V]) shrinkCheck() {
	if t.tol == 0 {
		return
	}
	size := len(t.buckets)
	if size > t.min && t.count*100 < size*(100-t.tol) {
		t.resize(size >> 1)
	}
}

// resize moves every entry into a fresh bucket slice of newSize. Entries
// are relinked, not reallocated, and appended at chain tails so relative
// order within a destination bucket is preserved. O(size + count).
func (t *Table[K, V]) resize(newSize int) {
	old := t.buckets
	t.buckets = make([]*entry[K, V], newSize)
	tails := make([]*entry[K, V], newSize)
	mask := uint32(newSize - 1)

	for _, e := range old {
		for e != nil {
			next := e.next
			e.next = nil
			i := t.hash(e.key) & mask
			if tails[i] == nil {
				t.buckets[i] = e
			} else {
				tails[i].next = e
			}
			tails[i] = e
			e = next
		}
	}
}
