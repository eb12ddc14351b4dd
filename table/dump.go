package table

import (
	"fmt"
	"io"
)

// DefaultMaxKeyBytes is how many bytes of each key's printed form Dump
// shows before truncating.
const DefaultMaxKeyBytes = 10

// emptyBucketMark is printed for buckets with no entries.
const emptyBucketMark = "---------"

// DumpOptions controls Dump output.
type DumpOptions struct {
	// MaxKeyBytes truncates each key's %v rendering to this many bytes.
	// Zero means no truncation.
	// Default: DefaultMaxKeyBytes
	MaxKeyBytes int

	// ShowValues appends =value after each key.
	// Default: false
	ShowValues bool
}

// DefaultDumpOptions returns the defaults used by diagnostic dumps.
func DefaultDumpOptions() DumpOptions {
	return DumpOptions{MaxKeyBytes: DefaultMaxKeyBytes}
}

// Dump writes one line per bucket: the zero-padded bucket index, then a
// placeholder for an empty bucket or the chain's keys in order, truncated
// and quoted. Purely diagnostic; the format is not a stable interface.
func (t *Table[K, V]) Dump(w io.Writer, opts DumpOptions) error {
	for i, e := range t.buckets {
		if e == nil {
			if _, err := fmt.Fprintf(w, "[%04d]: %s\n", i, emptyBucketMark); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "[%04d]: ", i); err != nil {
			return err
		}
		for ; e != nil; e = e.next {
			key := fmt.Sprintf("%v", e.key)
			if opts.MaxKeyBytes > 0 && len(key) > opts.MaxKeyBytes {
				key = key[:opts.MaxKeyBytes]
			}
			var err error
			if opts.ShowValues {
				_, err = fmt.Fprintf(w, "%q=%v; ", key, e.val)
			} else {
				_, err = fmt.Fprintf(w, "%q; ", key)
			}
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
