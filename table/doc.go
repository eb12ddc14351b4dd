// Package table implements a generic chained hashtable with automatic
// power-of-two resizing and external iteration.
//
// # Overview
//
// A Table[K, V] is a bucket array of singly-linked collision chains. Key
// identity is defined entirely by a caller-supplied hash/equal function
// pair, so any key type works, including types that are not comparable
// with == (byte slices, case-folded strings, composite views). Built-in
// pairs are provided for string, []byte, and uint32 keys.
//
// The bucket count is always a power of two, so the bucket index is
// hash(key) & (size-1). A single tolerance percentage drives both growth
// and shrinking:
//
//   - Insert grows the table (size doubles) when count*100 >= size*tolerance.
//   - Remove and Pop shrink it (size halves) when
//     count*100 < size*(100-tolerance), never below the initial size.
//
// Resizing rehashes every entry synchronously; the pause is proportional
// to size+count and amortizes across mutations. Tolerance 0 disables
// resizing for fixed-size tables.
//
// # Ownership
//
// The table owns its chain nodes and nothing else. Keys and values are
// stored by Go value semantics; any memory they reference (the backing
// array of a []byte key, a pointer value's target) stays owned by the
// caller for the life of the entry. Insert returns the displaced value on
// replacement, and Remove/Pop return the removed value, so callers can
// dispose of externally managed values. Clear does not hand values back;
// drain with Pop first when that matters.
//
// # Iteration
//
// Iter returns a cursor that yields values in bucket-ascending, chain
// order; Next reports io.EOF at exhaustion and Close recycles the cursor:
//
//	it := t.Iter()
//	defer it.Close()
//	for {
//	    v, err := it.Next()
//	    if err != nil {
//	        break // io.EOF, or ErrTableMutated
//	    }
//	    use(it.Key(), v)
//	}
//
// Mutating the table mid-walk does not corrupt the iterator: the table
// carries a generation counter and Next fails with ErrTableMutated once it
// moves. Range wraps the same traversal in a callback.
//
// # Usage Example
//
//	t := table.NewStrings[int](nil)
//	t.Insert("a", 1)
//	t.Insert("b", 2)
//	if v, ok := t.Find("b"); ok {
//	    fmt.Println(v) // 2
//	}
//	old, replaced := t.Insert("a", 10) // old == 1, replaced == true
//
// # Diagnostics
//
// Dump writes a per-bucket listing of truncated keys to any io.Writer, and
// Stats reports entry/bucket/chain shape. Neither is part of the
// data-structure contract.
//
// # Thread Safety
//
// Table instances are not thread-safe. Callers must synchronize access
// externally when sharing a table between goroutines.
package table
